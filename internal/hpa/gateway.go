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

// Package hpa is the gateway between the reconciler and the
// HorizontalPodAutoscaler objects it manages: creating one for a newly
// adopted ServiceScaler, patching its spec as the stepper resolves new
// bounds, and tearing it down on deletion.
package hpa

import (
	"context"
	"encoding/json"
	"fmt"

	autoscalingv2 "k8s.io/api/autoscaling/v2"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/utils/ptr"
	"sigs.k8s.io/controller-runtime/pkg/client"

	v1 "github.com/udaan-com/service-scaler/api/v1"
)

// defaultCPUUtilization is the target applied when a ServiceScaler's
// baseline specifies no CPU target (whether or not a memory target is set):
// an HPA cannot be created with zero metrics, so CPU at this utilization is
// the fallback.
const defaultCPUUtilization int32 = 80

// deploymentAPIVersion is the scaleTargetRef apiVersion this gateway wires
// every managed HPA to. ServiceScaler only ever targets Deployments.
const deploymentAPIVersion = "apps/v1"

// Gateway wraps a controller-runtime client with the HPA operations the
// reconciler needs. The zero value is not usable; construct with New.
type Gateway struct {
	Client client.Client
}

// New returns a Gateway backed by c.
func New(c client.Client) *Gateway {
	return &Gateway{Client: c}
}

// Get fetches the HPA with the given namespace and name, or returns the
// underlying client error (callers should check apierrors.IsNotFound).
func (g *Gateway) Get(ctx context.Context, namespace, name string) (*autoscalingv2.HorizontalPodAutoscaler, error) {
	var out autoscalingv2.HorizontalPodAutoscaler
	if err := g.Client.Get(ctx, types.NamespacedName{Namespace: namespace, Name: name}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// EnsureCreated makes sure an HPA named after scaler exists. If one already
// exists, its spec is left untouched (ownership is taken over by stamping
// the managed annotation, not by overwriting whatever spec is already
// live); otherwise a new HPA is built from scaler's baseline spec.
func (g *Gateway) EnsureCreated(ctx context.Context, scaler *v1.ServiceScaler) (*autoscalingv2.HorizontalPodAutoscaler, error) {
	existing, err := g.Get(ctx, scaler.Namespace, scaler.Name)
	if err == nil {
		if perr := g.PatchMetadata(ctx, scaler, existing); perr != nil {
			return nil, perr
		}
		return existing, nil
	}
	if !apierrors.IsNotFound(err) {
		return nil, err
	}

	built := buildHPA(scaler)
	if err := g.Client.Create(ctx, built); err != nil {
		return nil, fmt.Errorf("hpa: creating %s/%s: %w", scaler.Namespace, scaler.Name, err)
	}
	return built, nil
}

func buildHPA(scaler *v1.ServiceScaler) *autoscalingv2.HorizontalPodAutoscaler {
	annotations := map[string]string{}
	for k, v := range scaler.Annotations {
		annotations[k] = v
	}
	annotations[v1.ManagedAnnotation] = "true"
	annotations[v1.NoteAnnotationKey] = v1.NoteAnnotationValue

	labels := map[string]string{}
	for k, v := range scaler.Labels {
		labels[k] = v
	}

	return &autoscalingv2.HorizontalPodAutoscaler{
		ObjectMeta: metav1.ObjectMeta{
			Name:        scaler.Name,
			Namespace:   scaler.Namespace,
			Annotations: annotations,
			Labels:      labels,
		},
		Spec: autoscalingv2.HorizontalPodAutoscalerSpec{
			ScaleTargetRef: autoscalingv2.CrossVersionObjectReference{
				APIVersion: deploymentAPIVersion,
				Kind:       "Deployment",
				Name:       scaler.Name,
			},
			MinReplicas: ptr.To(scaler.Spec.HPA.MinReplicas),
			MaxReplicas: scaler.Spec.HPA.MaxReplicas,
			Metrics:     buildMetricsFromBaseline(scaler.Spec.HPA),
		},
	}
}

// buildMetricsFromBaseline is all-or-nothing on the baseline's CPU field,
// unlike PatchSpec's independent per-metric toggling: both targets set
// yields (cpu, memory); CPU alone (memory unset) yields (cpu) only; CPU
// unset yields a single cpu@defaultCPUUtilization metric and any memory
// target is dropped. A memory-only baseline therefore still creates with
// cpu@80, not a memory-only metric list.
func buildMetricsFromBaseline(spec v1.HPASpec) []autoscalingv2.MetricSpec {
	switch {
	case spec.TargetCPUUtilization != nil && spec.TargetMemoryUtilization != nil:
		return []autoscalingv2.MetricSpec{
			resourceMetric("cpu", *spec.TargetCPUUtilization),
			resourceMetric("memory", *spec.TargetMemoryUtilization),
		}
	case spec.TargetCPUUtilization != nil:
		return []autoscalingv2.MetricSpec{resourceMetric("cpu", *spec.TargetCPUUtilization)}
	default:
		return []autoscalingv2.MetricSpec{resourceMetric("cpu", defaultCPUUtilization)}
	}
}

func resourceMetric(name string, targetUtilization int32) autoscalingv2.MetricSpec {
	return autoscalingv2.MetricSpec{
		Type: autoscalingv2.ResourceMetricSourceType,
		Resource: &autoscalingv2.ResourceMetricSource{
			Name: corev1.ResourceName(name),
			Target: autoscalingv2.MetricTarget{
				Type:               autoscalingv2.UtilizationMetricType,
				AverageUtilization: ptr.To(targetUtilization),
			},
		},
	}
}

// PatchSpec applies resolved as a JSON merge patch against the HPA's spec,
// rebuilding the metrics list from scratch the same way each time: memory
// first if present, then cpu if present. A nil resolved utilization field
// drops that metric entirely rather than leaving a stale one behind.
func (g *Gateway) PatchSpec(ctx context.Context, namespace, name string, resolved v1.HPAOverride) error {
	if resolved.MinReplicas == nil || resolved.MaxReplicas == nil {
		return fmt.Errorf("hpa: PatchSpec requires resolved min and max replicas, got %+v", resolved)
	}

	var metrics []map[string]any
	if resolved.TargetMemoryUtilization != nil {
		metrics = append(metrics, rawResourceMetric("memory", *resolved.TargetMemoryUtilization))
	}
	if resolved.TargetCPUUtilization != nil {
		metrics = append(metrics, rawResourceMetric("cpu", *resolved.TargetCPUUtilization))
	}

	body, err := json.Marshal(map[string]any{
		"spec": map[string]any{
			"scaleTargetRef": map[string]any{
				"apiVersion": deploymentAPIVersion,
				"kind":       "Deployment",
				"name":       name,
			},
			"minReplicas": *resolved.MinReplicas,
			"maxReplicas": *resolved.MaxReplicas,
			"metrics":     metrics,
		},
	})
	if err != nil {
		return fmt.Errorf("hpa: marshaling patch for %s/%s: %w", namespace, name, err)
	}

	target := &autoscalingv2.HorizontalPodAutoscaler{
		ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: namespace},
	}
	if err := g.Client.Patch(ctx, target, client.RawPatch(types.MergePatchType, body)); err != nil {
		return fmt.Errorf("hpa: patching spec for %s/%s: %w", namespace, name, err)
	}
	return nil
}

func rawResourceMetric(name string, targetUtilization int32) map[string]any {
	return map[string]any{
		"type": "Resource",
		"resource": map[string]any{
			"name": name,
			"target": map[string]any{
				"type":               "Utilization",
				"averageUtilization": targetUtilization,
			},
		},
	}
}

// PatchMetadata merges scaler's labels (and the managed/note annotations)
// onto an HPA this gateway already owns, without touching its spec. Used
// by EnsureCreated when it adopts a pre-existing HPA.
func (g *Gateway) PatchMetadata(ctx context.Context, scaler *v1.ServiceScaler, existing *autoscalingv2.HorizontalPodAutoscaler) error {
	labels := map[string]string{}
	for k, v := range scaler.Labels {
		labels[k] = v
	}
	annotations := map[string]string{
		v1.ManagedAnnotation: "true",
		v1.NoteAnnotationKey: v1.NoteAnnotationValue,
	}

	body, err := json.Marshal(map[string]any{
		"metadata": map[string]any{
			"labels":      labels,
			"annotations": annotations,
		},
	})
	if err != nil {
		return fmt.Errorf("hpa: marshaling metadata patch for %s/%s: %w", scaler.Namespace, scaler.Name, err)
	}

	if err := g.Client.Patch(ctx, existing, client.RawPatch(types.MergePatchType, body)); err != nil {
		return fmt.Errorf("hpa: patching metadata for %s/%s: %w", scaler.Namespace, scaler.Name, err)
	}
	return nil
}

// Delete removes the HPA namespace/name, tolerating it already being gone.
func (g *Gateway) Delete(ctx context.Context, namespace, name string) error {
	target := &autoscalingv2.HorizontalPodAutoscaler{
		ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: namespace},
	}
	if err := g.Client.Delete(ctx, target); err != nil && !apierrors.IsNotFound(err) {
		return fmt.Errorf("hpa: deleting %s/%s: %w", namespace, name, err)
	}
	return nil
}
