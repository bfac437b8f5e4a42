// Package finalizer adds and removes the service-scaler ownership finalizer
// on a ServiceScaler via a JSON merge patch against metadata.finalizers,
// rather than a whole-object update, so a concurrent status write can never
// be clobbered by a finalizer change or vice versa.
package finalizer

import (
	"context"
	"encoding/json"
	"fmt"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/client"

	v1 "github.com/udaan-com/service-scaler/api/v1"
)

// Ensure adds the service-scaler finalizer to scaler if it is not already
// present. scaler's in-memory Finalizers slice is updated to match on
// success, so callers don't need to re-Get.
func Ensure(ctx context.Context, c client.Client, scaler *v1.ServiceScaler) error {
	for _, f := range scaler.Finalizers {
		if f == v1.Finalizer {
			return nil
		}
	}
	next := append(append([]string{}, scaler.Finalizers...), v1.Finalizer)
	return patch(ctx, c, scaler, next)
}

// Remove strips the service-scaler finalizer from scaler, leaving any other
// finalizers untouched. scaler's in-memory Finalizers slice is updated to
// match on success.
func Remove(ctx context.Context, c client.Client, scaler *v1.ServiceScaler) error {
	var next []string
	for _, f := range scaler.Finalizers {
		if f != v1.Finalizer {
			next = append(next, f)
		}
	}
	return patch(ctx, c, scaler, next)
}

func patch(ctx context.Context, c client.Client, scaler *v1.ServiceScaler, finalizers []string) error {
	var finalizersValue any
	if len(finalizers) > 0 {
		finalizersValue = finalizers
	}

	body, err := json.Marshal(map[string]any{
		"metadata": map[string]any{
			"finalizers": finalizersValue,
		},
	})
	if err != nil {
		return fmt.Errorf("finalizer: marshaling patch for %s/%s: %w", scaler.Namespace, scaler.Name, err)
	}

	target := &v1.ServiceScaler{
		ObjectMeta: metav1.ObjectMeta{Name: scaler.Name, Namespace: scaler.Namespace},
	}
	if err := c.Patch(ctx, target, client.RawPatch(types.MergePatchType, body)); err != nil {
		return fmt.Errorf("finalizer: patching %s/%s: %w", scaler.Namespace, scaler.Name, err)
	}
	scaler.Finalizers = finalizers
	return nil
}
