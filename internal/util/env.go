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

// Package util holds small process-environment helpers shared by
// cmd/operator and internal/controller.
package util

import (
	"os"
	"strconv"
	"time"
)

// LabelSelectorEnvVar names the environment variable that restricts which
// objects' events trigger a reconcile, via a standard Kubernetes label
// selector expression applied as an event filter (the manager cache is not
// restricted). Empty means no filtering.
const LabelSelectorEnvVar = "LABEL_SELECTOR"

// MaxConcurrentReconcilesEnvVar overrides the controller's default of one
// concurrent reconcile.
const MaxConcurrentReconcilesEnvVar = "SERVICE_SCALER_MAX_CONCURRENT_RECONCILES"

// WatchNamespaceEnvVar restricts the manager to a single namespace when set;
// empty means cluster-wide.
const WatchNamespaceEnvVar = "WATCH_NAMESPACE"

// ResolveOsEnvBool parses envName as a bool, returning defaultValue if unset
// or empty.
func ResolveOsEnvBool(envName string, defaultValue bool) (bool, error) {
	valueStr, found := os.LookupEnv(envName)
	if found && valueStr != "" {
		return strconv.ParseBool(valueStr)
	}
	return defaultValue, nil
}

// ResolveOsEnvInt parses envName as an int, returning defaultValue if unset
// or empty.
func ResolveOsEnvInt(envName string, defaultValue int) (int, error) {
	valueStr, found := os.LookupEnv(envName)
	if found && valueStr != "" {
		return strconv.Atoi(valueStr)
	}
	return defaultValue, nil
}

// ResolveOsEnvDuration parses envName as a duration, returning nil if unset
// or empty.
func ResolveOsEnvDuration(envName string) (*time.Duration, error) {
	valueStr, found := os.LookupEnv(envName)
	if found && valueStr != "" {
		value, err := time.ParseDuration(valueStr)
		if err != nil {
			return nil, err
		}
		return &value, nil
	}
	return nil, nil
}

// GetLabelSelector returns the configured watch-scope label selector, or
// empty for unrestricted.
func GetLabelSelector() string {
	return os.Getenv(LabelSelectorEnvVar)
}

// GetWatchNamespace returns the configured single-namespace scope, or empty
// for cluster-wide.
func GetWatchNamespace() string {
	return os.Getenv(WatchNamespaceEnvVar)
}
