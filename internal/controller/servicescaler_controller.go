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

// Package controller implements the ServiceScaler reconciler: the dispatch
// table that turns a classified action into finalizer, HPA-gateway, and
// status-writer calls.
package controller

import (
	"context"
	"fmt"
	"time"

	"github.com/go-logr/logr"
	autoscalingv2 "k8s.io/api/autoscaling/v2"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/labels"
	"k8s.io/apimachinery/pkg/runtime"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	ctrlcontroller "sigs.k8s.io/controller-runtime/pkg/controller"
	"sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/predicate"

	v1 "github.com/udaan-com/service-scaler/api/v1"
	"github.com/udaan-com/service-scaler/internal/classify"
	"github.com/udaan-com/service-scaler/internal/finalizer"
	hpagw "github.com/udaan-com/service-scaler/internal/hpa"
	"github.com/udaan-com/service-scaler/internal/metrics"
	"github.com/udaan-com/service-scaler/internal/status"
	"github.com/udaan-com/service-scaler/internal/stepper"
	"github.com/udaan-com/service-scaler/internal/util"
)

// ServiceScalerReconciler reconciles a ServiceScaler object.
type ServiceScalerReconciler struct {
	client.Client
	Scheme *runtime.Scheme

	HPA    *hpagw.Gateway
	Status *status.Writer
}

// +kubebuilder:rbac:groups=scaler.udaan.io,resources=servicescalers,verbs=get;list;watch;update;patch
// +kubebuilder:rbac:groups=scaler.udaan.io,resources=servicescalers/status,verbs=get;update;patch
// +kubebuilder:rbac:groups=scaler.udaan.io,resources=servicescalers/finalizers,verbs=update
// +kubebuilder:rbac:groups=autoscaling,resources=horizontalpodautoscalers,verbs=get;list;watch;create;update;patch;delete

// Reconcile classifies the ServiceScaler named by req and dispatches to the
// Create, Update, or Delete branch.
func (r *ServiceScalerReconciler) Reconcile(ctx context.Context, req ctrl.Request) (ctrl.Result, error) {
	logger := log.FromContext(ctx).WithValues("namespace", req.Namespace, "name", req.Name)

	var scaler v1.ServiceScaler
	if err := r.Get(ctx, req.NamespacedName, &scaler); err != nil {
		if apierrors.IsNotFound(err) {
			return ctrl.Result{}, nil
		}
		return ctrl.Result{}, err
	}

	action := classify.Classify(&scaler.ObjectMeta)
	metrics.ObserveReconcile(string(action))
	logger.Info("reconciling", "action", action)

	switch action {
	case classify.Create:
		return r.reconcileCreate(ctx, logger, &scaler)
	case classify.Delete:
		return r.reconcileDelete(ctx, logger, &scaler)
	default:
		return r.reconcileUpdate(ctx, logger, &scaler)
	}
}

func (r *ServiceScalerReconciler) reconcileCreate(ctx context.Context, logger logr.Logger, scaler *v1.ServiceScaler) (ctrl.Result, error) {
	if err := finalizer.Ensure(ctx, r.Client, scaler); err != nil {
		return ctrl.Result{}, fmt.Errorf("ensuring finalizer: %w", err)
	}
	if _, err := r.HPA.EnsureCreated(ctx, scaler); err != nil {
		return ctrl.Result{}, fmt.Errorf("creating hpa: %w", err)
	}
	return ctrl.Result{RequeueAfter: stepper.ReconciliationPeriod}, nil
}

func (r *ServiceScalerReconciler) reconcileDelete(ctx context.Context, logger logr.Logger, scaler *v1.ServiceScaler) (ctrl.Result, error) {
	if err := r.HPA.Delete(ctx, scaler.Namespace, scaler.Name); err != nil {
		return ctrl.Result{}, fmt.Errorf("deleting hpa: %w", err)
	}
	if err := finalizer.Remove(ctx, r.Client, scaler); err != nil {
		return ctrl.Result{}, fmt.Errorf("removing finalizer: %w", err)
	}
	// No periodic requeue: a successfully deleted object has nothing left
	// to reconcile, and the API server will not emit further events for it.
	return ctrl.Result{}, nil
}

func (r *ServiceScalerReconciler) reconcileUpdate(ctx context.Context, logger logr.Logger, scaler *v1.ServiceScaler) (ctrl.Result, error) {
	baseline := scaler.Spec.HPA
	if baseline.MinReplicas == baseline.MaxReplicas {
		logger.Info("minReplicas == maxReplicas, deleting hpa instead of scaling a fixed-size target")
		if err := r.HPA.Delete(ctx, scaler.Namespace, scaler.Name); err != nil {
			return ctrl.Result{}, fmt.Errorf("deleting hpa for fixed-size target: %w", err)
		}
		return ctrl.Result{RequeueAfter: stepper.ReconciliationPeriod}, nil
	}

	live, err := r.HPA.Get(ctx, scaler.Namespace, scaler.Name)
	if err != nil {
		if !apierrors.IsNotFound(err) {
			return ctrl.Result{}, fmt.Errorf("getting hpa: %w", err)
		}
		logger.Info("hpa missing on update, recreating from baseline")
		live, err = r.HPA.EnsureCreated(ctx, scaler)
		if err != nil {
			return ctrl.Result{}, fmt.Errorf("recreating hpa: %w", err)
		}
	}

	liveMin, liveMax := liveBounds(live)
	now := time.Now()
	resolved, matched, err := resolveOverride(now, scaler.Spec, liveMin, liveMax)
	if err != nil {
		return ctrl.Result{}, err
	}
	metrics.ObserveResolution(scaler.Namespace, scaler.Name, matched, *resolved.MinReplicas, *resolved.MaxReplicas)

	if earlyExit(live, resolved) {
		metrics.ObserveEarlyExit(scaler.Namespace, scaler.Name)
		logger.V(1).Info("early exit, no-op", "timeRangeMatch", matched)
	} else {
		if err := r.HPA.PatchSpec(ctx, scaler.Namespace, scaler.Name, resolved); err != nil {
			return ctrl.Result{}, fmt.Errorf("patching hpa: %w", err)
		}
		metrics.ObserveHPAPatch(scaler.Namespace, scaler.Name)
		logger.Info("patched hpa", "timeRangeMatch", matched, "minReplicas", *resolved.MinReplicas, "maxReplicas", *resolved.MaxReplicas)
	}

	if err := r.Status.Write(ctx, logger, client.ObjectKeyFromObject(scaler), matched, resolved, scaler.Generation); err != nil {
		return ctrl.Result{}, &StatusWriteFailure{Err: err}
	}

	return ctrl.Result{RequeueAfter: stepper.ReconciliationPeriod}, nil
}

func liveBounds(hpa *autoscalingv2.HorizontalPodAutoscaler) (int32, int32) {
	minReplicas := int32(1)
	if hpa.Spec.MinReplicas != nil {
		minReplicas = *hpa.Spec.MinReplicas
	}
	return minReplicas, hpa.Spec.MaxReplicas
}

// SetupWithManager wires the reconciler into mgr, watching ServiceScalers
// directly and the HPAs they own indirectly.
func (r *ServiceScalerReconciler) SetupWithManager(mgr ctrl.Manager, opts ctrlcontroller.Options) error {
	bldr := ctrl.NewControllerManagedBy(mgr).
		For(&v1.ServiceScaler{}).
		Owns(&autoscalingv2.HorizontalPodAutoscaler{}).
		WithOptions(opts)

	if sel := labelSelectorPredicate(util.GetLabelSelector()); sel != nil {
		bldr = bldr.WithEventFilter(predicate.NewPredicateFuncs(sel))
	}

	return bldr.Complete(r)
}

// labelSelectorPredicate builds a predicate from a label selector
// expression, restricting which ServiceScalers trigger a reconcile. Returns
// nil (no filtering) for an empty or unparsable expression.
func labelSelectorPredicate(expr string) func(client.Object) bool {
	if expr == "" {
		return nil
	}
	sel, err := labels.Parse(expr)
	if err != nil {
		return nil
	}
	return func(obj client.Object) bool {
		return sel.Matches(labels.Set(obj.GetLabels()))
	}
}
