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

package v1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// ManagedAnnotation, when set to "false" on the HPA service-scaler manages, disables
// reconciliation of that HPA's spec entirely (the kill switch). Only "true" lets the
// spec be patched: an HPA whose annotations lack this key is left alone the same way
// as "false". An HPA with no annotations at all is not checked for the switch and is
// compared on its values.
const ManagedAnnotation = "service-scaler.kubernetes.io/managed"

// NoteAnnotationKey/NoteAnnotationValue are stamped onto every HPA service-scaler
// creates or adopts, so an operator staring at `kubectl describe hpa` knows not to
// hand-edit it.
const (
	NoteAnnotationKey   = "service-scaler.kubernetes.io/note"
	NoteAnnotationValue = "DO-NOT-EDIT-THIS--EDIT-SERVICE-SCALER-INSTEAD"
)

// Finalizer is set on every ServiceScaler this controller has taken ownership of,
// and removed only once its owned HPA has been torn down.
const Finalizer = "servicescalers.scaler.udaan.io/finalizer"

// TimeRangeKind selects how a TimeRange's From/To strings are interpreted.
// +kubebuilder:validation:Enum=ZonedTime;ZonedDateTime
type TimeRangeKind string

const (
	// ZonedTime is a recurring daily window expressed as "HH:MM±HH:MM", re-evaluated
	// against today's date every reconcile.
	ZonedTime TimeRangeKind = "ZonedTime"
	// ZonedDateTime is a single absolute RFC3339 timestamp, matched once.
	ZonedDateTime TimeRangeKind = "ZonedDateTime"
)

// HPASpec is the baseline autoscaling configuration service-scaler applies outside
// of any matching time range.
type HPASpec struct {
	// MinReplicas is the HPA's baseline lower replica bound.
	// +kubebuilder:validation:Minimum=1
	MinReplicas int32 `json:"minReplicas"`
	// MaxReplicas is the HPA's baseline upper replica bound. Must be >= MinReplicas.
	// +kubebuilder:validation:Minimum=1
	MaxReplicas int32 `json:"maxReplicas"`
	// TargetCPUUtilization is the average CPU utilization target, percent. When the
	// HPA is created, nil means a CPU metric with a default of 80 is used and any
	// TargetMemoryUtilization is not attached; on later patches a nil resolved CPU
	// target removes the CPU metric.
	// +optional
	TargetCPUUtilization *int32 `json:"targetCPUUtilization,omitempty"`
	// TargetMemoryUtilization is the average memory utilization target, percent.
	// +optional
	TargetMemoryUtilization *int32 `json:"targetMemoryUtilization,omitempty"`
}

// HPAOverride carries the same four fields as HPASpec, but every field is optional:
// nil means "fall back to the baseline value for this field", distinct from a
// present zero (which, for the utilization fields, means "remove this metric").
type HPAOverride struct {
	// +optional
	MinReplicas *int32 `json:"minReplicas,omitempty"`
	// +optional
	MaxReplicas *int32 `json:"maxReplicas,omitempty"`
	// +optional
	TargetCPUUtilization *int32 `json:"targetCPUUtilization,omitempty"`
	// +optional
	TargetMemoryUtilization *int32 `json:"targetMemoryUtilization,omitempty"`
}

// ReplicaOverride wraps the HPA override applied while a TimeRange matches.
type ReplicaOverride struct {
	HPA HPAOverride `json:"hpa"`
}

// TimeRange pairs a window (recurring or absolute) with the override applied while
// that window is in effect. When multiple ranges match at once, the last one in
// spec order wins.
type TimeRange struct {
	Kind TimeRangeKind `json:"kind"`
	// From is the start of the window: "HH:MM±HH:MM" for ZonedTime, RFC3339 for
	// ZonedDateTime.
	From string `json:"from"`
	// To is the end of the window, same format as From.
	To string `json:"to"`
	// ReplicaSpec is the override applied while this range matches.
	ReplicaSpec ReplicaOverride `json:"replicaSpec"`
}

// ServiceScalerSpec is the desired state of a ServiceScaler.
type ServiceScalerSpec struct {
	// HPA is the baseline HPA configuration applied outside of any matching window.
	HPA HPASpec `json:"hpa"`
	// TimeRangeSpec is the ordered list of time-windowed overrides. Order matters:
	// on overlap, the last matching entry wins.
	// +optional
	TimeRangeSpec []TimeRange `json:"timeRangeSpec,omitempty"`
}

// ServiceScalerStatus is the last-observed state of a ServiceScaler's reconciliation.
type ServiceScalerStatus struct {
	// TimeRangeMatch records whether any TimeRange matched on the most recent reconcile.
	TimeRangeMatch bool `json:"timeRangeMatch"`
	// LastObservedGeneration is the ServiceScaler generation as of the last reconcile
	// that produced this status.
	// +optional
	LastObservedGeneration *int64 `json:"lastObservedGeneration,omitempty"`
	// LastKnownConfig is the resolved override last applied (or would have been
	// applied, on an early-exit no-op) to the owned HPA.
	LastKnownConfig HPAOverride `json:"lastKnownConfig"`
	// LastUpdatedTime is an RFC3339-ish timestamp ("2006-01-02T15:04Z-0700", e.g.
	// "2026-07-31T12:00Z+0000") of the last status write.
	LastUpdatedTime string `json:"lastUpdatedTime"`
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:resource:path=servicescalers,scope=Namespaced,shortName=ss
// +kubebuilder:printcolumn:name="Min",type="integer",JSONPath=".spec.hpa.minReplicas"
// +kubebuilder:printcolumn:name="Max",type="integer",JSONPath=".spec.hpa.maxReplicas"
// +kubebuilder:printcolumn:name="TimeRangeMatch",type="boolean",JSONPath=".status.timeRangeMatch"
// +kubebuilder:printcolumn:name="LastUpdated",type="string",JSONPath=".status.lastUpdatedTime"
// +kubebuilder:printcolumn:name="Age",type="date",JSONPath=".metadata.creationTimestamp"

// ServiceScaler declares a baseline HPA and a set of time-windowed overrides that
// this controller resolves into a live HorizontalPodAutoscaler.
type ServiceScaler struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec ServiceScalerSpec `json:"spec"`
	// +optional
	Status ServiceScalerStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true

// ServiceScalerList is a list of ServiceScaler resources.
type ServiceScalerList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []ServiceScaler `json:"items"`
}

func init() {
	SchemeBuilder.Register(&ServiceScaler{}, &ServiceScalerList{})
}
