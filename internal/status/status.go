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

// Package status writes ServiceScaler.Status via a merge patch computed
// from a freshly re-fetched copy of the object, so a finalizer change made
// in the same reconcile never races with a status write.
package status

import (
	"context"
	"time"

	"github.com/go-logr/logr"
	"github.com/pkg/errors"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/client"

	v1 "github.com/udaan-com/service-scaler/api/v1"
)

// lastUpdatedLayout is the timestamp shape stamped into LastUpdatedTime: a
// literal "Z" always followed by a signed numeric offset (e.g.
// "2026-07-31T12:00Z+0000"), never the bare "Z" Go's conditional "Z0700"
// token would print for a zero offset.
const lastUpdatedLayout = "2006-01-02T15:04Z-0700"

// Writer patches ServiceScaler status subresources.
type Writer struct {
	Client client.Client
	// Now is the clock used to stamp LastUpdatedTime; overridable for tests.
	Now func() time.Time
}

// New returns a Writer backed by c, using the real wall clock.
func New(c client.Client) *Writer {
	return &Writer{Client: c, Now: time.Now}
}

// Write re-reads the ServiceScaler named by key and patches its status to
// reflect the just-applied (or just-skipped) reconciliation. If the
// ServiceScaler has since been deleted, this is logged and treated as
// success: there is nothing left to carry a status.
func (w *Writer) Write(ctx context.Context, log logr.Logger, key types.NamespacedName, timeRangeMatch bool, resolved v1.HPAOverride, generation int64) error {
	var scaler v1.ServiceScaler
	if err := w.Client.Get(ctx, key, &scaler); err != nil {
		if apierrors.IsNotFound(err) {
			log.Info("service scaler vanished before status write, skipping", "namespace", key.Namespace, "name", key.Name)
			return nil
		}
		return errors.Wrap(err, "getting service scaler for status write")
	}

	patch := client.MergeFrom(scaler.DeepCopy())
	scaler.Status.TimeRangeMatch = timeRangeMatch
	scaler.Status.LastObservedGeneration = &generation
	scaler.Status.LastKnownConfig = resolved
	scaler.Status.LastUpdatedTime = w.Now().Format(lastUpdatedLayout)

	if err := w.Client.Status().Patch(ctx, &scaler, patch); err != nil {
		return errors.Wrap(err, "patching service scaler status")
	}
	return nil
}
