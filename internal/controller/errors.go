/*
Copyright 2024 The Service Scaler Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package controller

import "fmt"

// UserInputError wraps a defect in the ServiceScaler spec itself (a
// malformed time-range stamp, most commonly). Reconciling again won't fix
// it, but it is still returned as an error so the framework backs off
// instead of hot-looping against a spec that will never parse.
type UserInputError struct {
	Err error
}

func (e *UserInputError) Error() string {
	return fmt.Sprintf("invalid ServiceScaler spec: %v", e.Err)
}

func (e *UserInputError) Unwrap() error { return e.Err }

// StatusWriteFailure wraps an error from the status writer. It is kept
// distinct from a plain API error so Reconcile can log it without masking
// whether the HPA-side work (the part that actually matters operationally)
// succeeded.
type StatusWriteFailure struct {
	Err error
}

func (e *StatusWriteFailure) Error() string { return fmt.Sprintf("writing status: %v", e.Err) }
func (e *StatusWriteFailure) Unwrap() error { return e.Err }
