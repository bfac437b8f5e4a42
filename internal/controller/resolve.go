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

import (
	"strings"
	"time"

	autoscalingv2 "k8s.io/api/autoscaling/v2"

	v1 "github.com/udaan-com/service-scaler/api/v1"
	"github.com/udaan-com/service-scaler/internal/stepper"
	"github.com/udaan-com/service-scaler/internal/timewindow"
)

// resolveOverride resolves the override that should be applied to the live
// HPA on this reconcile: whichever TimeRange matches now (last one wins on
// overlap), stepped gradually toward its target from the HPA's current
// live bounds, or the baseline spec if nothing matches.
//
// When a matching range leaves minReplicas or maxReplicas unspecified, the
// fallback for that bound is backfilled from the same baseline field.
func resolveOverride(now time.Time, spec v1.ServiceScalerSpec, liveMin, liveMax int32) (v1.HPAOverride, bool, error) {
	var matchedRange *v1.TimeRange
	for i := range spec.TimeRangeSpec {
		r := &spec.TimeRangeSpec[i]
		ok, err := timewindow.Match(r.From, r.To, r.Kind, now)
		if err != nil {
			return v1.HPAOverride{}, false, &UserInputError{Err: err}
		}
		if ok {
			matchedRange = r
		}
	}

	baseline := spec.HPA
	var override v1.HPAOverride
	matched := matchedRange != nil
	if matched {
		override = matchedRange.ReplicaSpec.HPA
	} else {
		override = v1.HPAOverride{
			MinReplicas:             &baseline.MinReplicas,
			MaxReplicas:             &baseline.MaxReplicas,
			TargetCPUUtilization:    baseline.TargetCPUUtilization,
			TargetMemoryUtilization: baseline.TargetMemoryUtilization,
		}
	}

	minFallback := override.MinReplicas
	if minFallback == nil {
		backfill := baseline.MinReplicas
		minFallback = &backfill
	}
	newMin, err := stepper.Step(now, liveMin, baseline.MinReplicas, *minFallback, spec.TimeRangeSpec, false)
	if err != nil {
		return v1.HPAOverride{}, false, &UserInputError{Err: err}
	}

	maxFallback := override.MaxReplicas
	if maxFallback == nil {
		backfill := baseline.MaxReplicas
		maxFallback = &backfill
	}
	newMax, err := stepper.Step(now, liveMax, baseline.MaxReplicas, *maxFallback, spec.TimeRangeSpec, true)
	if err != nil {
		return v1.HPAOverride{}, false, &UserInputError{Err: err}
	}

	cpu := override.TargetCPUUtilization
	if cpu == nil {
		cpu = baseline.TargetCPUUtilization
	}
	if cpu != nil && *cpu == 0 {
		cpu = nil
	}

	mem := override.TargetMemoryUtilization
	if mem == nil {
		mem = baseline.TargetMemoryUtilization
	}
	if mem != nil && *mem == 0 {
		mem = nil
	}

	return v1.HPAOverride{
		MinReplicas:             &newMin,
		MaxReplicas:             &newMax,
		TargetCPUUtilization:    cpu,
		TargetMemoryUtilization: mem,
	}, matched, nil
}

// earlyExit reports whether the reconciler should skip patching hpa's spec:
// either because the managed annotation's kill switch was tripped, or
// because the live spec already matches resolved exactly.
func earlyExit(hpa *autoscalingv2.HorizontalPodAutoscaler, resolved v1.HPAOverride) bool {
	if hpa.Annotations != nil {
		killSwitch := true
		if v, ok := hpa.Annotations[v1.ManagedAnnotation]; ok {
			killSwitch = strings.EqualFold(v, "false")
		}
		if killSwitch {
			return true
		}
	}

	var cpuUtil, memUtil *int32
	for i := range hpa.Spec.Metrics {
		m := hpa.Spec.Metrics[i]
		if m.Resource == nil {
			continue
		}
		switch m.Resource.Name {
		case "cpu":
			cpuUtil = m.Resource.Target.AverageUtilization
		case "memory":
			memUtil = m.Resource.Target.AverageUtilization
		}
	}

	minEq := equalInt32Ptr(hpa.Spec.MinReplicas, resolved.MinReplicas)
	maxEq := resolved.MaxReplicas != nil && hpa.Spec.MaxReplicas == *resolved.MaxReplicas
	cpuEq := equalInt32Ptr(cpuUtil, resolved.TargetCPUUtilization)
	memEq := equalInt32Ptr(memUtil, resolved.TargetMemoryUtilization)

	return minEq && maxEq && cpuEq && memEq
}

func equalInt32Ptr(a, b *int32) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
