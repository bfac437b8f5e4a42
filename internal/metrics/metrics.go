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

// Package metrics registers this controller's operational Prometheus
// metrics against controller-runtime's metrics.Registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"sigs.k8s.io/controller-runtime/pkg/metrics"
)

// DefaultNamespace is the Prometheus metric namespace every gauge/counter in
// this package is registered under.
const DefaultNamespace = "service_scaler"

var scalerLabels = []string{"namespace", "name"}

var (
	reconcilesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: DefaultNamespace,
			Name:      "reconciles_total",
			Help:      "Total number of reconciles, labeled by the classified action.",
		},
		[]string{"action"},
	)
	hpaPatchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: DefaultNamespace,
			Name:      "hpa_patches_total",
			Help:      "Total number of HPA spec patches emitted, per ServiceScaler.",
		},
		scalerLabels,
	)
	earlyExitsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: DefaultNamespace,
			Name:      "early_exits_total",
			Help:      "Total number of reconciles that resolved to a no-op early exit, per ServiceScaler.",
		},
		scalerLabels,
	)
	timeRangeMatch = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: DefaultNamespace,
			Name:      "time_range_match",
			Help:      "Whether a time range matched on the most recent reconcile (1) or not (0), per ServiceScaler.",
		},
		scalerLabels,
	)
	resolvedMinReplicas = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: DefaultNamespace,
			Name:      "resolved_min_replicas",
			Help:      "The minReplicas value resolved and applied (or that would have been applied) on the most recent reconcile.",
		},
		scalerLabels,
	)
	resolvedMaxReplicas = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: DefaultNamespace,
			Name:      "resolved_max_replicas",
			Help:      "The maxReplicas value resolved and applied (or that would have been applied) on the most recent reconcile.",
		},
		scalerLabels,
	)
)

func init() {
	metrics.Registry.MustRegister(
		reconcilesTotal,
		hpaPatchesTotal,
		earlyExitsTotal,
		timeRangeMatch,
		resolvedMinReplicas,
		resolvedMaxReplicas,
	)
}

// ObserveReconcile increments the reconciles counter for the given
// classified action ("Create", "Update", "Delete").
func ObserveReconcile(action string) {
	reconcilesTotal.WithLabelValues(action).Inc()
}

// ObserveHPAPatch records that an HPA spec patch was emitted for namespace/name.
func ObserveHPAPatch(namespace, name string) {
	hpaPatchesTotal.WithLabelValues(namespace, name).Inc()
}

// ObserveEarlyExit records that a reconcile resolved to a no-op.
func ObserveEarlyExit(namespace, name string) {
	earlyExitsTotal.WithLabelValues(namespace, name).Inc()
}

// ObserveResolution records the outcome of override resolution for namespace/name.
func ObserveResolution(namespace, name string, matched bool, min, max int32) {
	v := 0.0
	if matched {
		v = 1.0
	}
	timeRangeMatch.WithLabelValues(namespace, name).Set(v)
	resolvedMinReplicas.WithLabelValues(namespace, name).Set(float64(min))
	resolvedMaxReplicas.WithLabelValues(namespace, name).Set(float64(max))
}
