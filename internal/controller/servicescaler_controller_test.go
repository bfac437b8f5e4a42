package controller

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	autoscalingv2 "k8s.io/api/autoscaling/v2"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/utils/ptr"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"

	v1 "github.com/udaan-com/service-scaler/api/v1"
	hpagw "github.com/udaan-com/service-scaler/internal/hpa"
	"github.com/udaan-com/service-scaler/internal/status"
)

func newTestScheme(t *testing.T) *runtime.Scheme {
	t.Helper()
	scheme := runtime.NewScheme()
	require.NoError(t, v1.AddToScheme(scheme))
	require.NoError(t, autoscalingv2.AddToScheme(scheme))
	return scheme
}

func newReconciler(t *testing.T, objs ...client.Object) (*ServiceScalerReconciler, client.Client) {
	t.Helper()
	scheme := newTestScheme(t)
	c := fake.NewClientBuilder().
		WithScheme(scheme).
		WithObjects(objs...).
		WithStatusSubresource(&v1.ServiceScaler{}).
		Build()
	return &ServiceScalerReconciler{
		Client: c,
		Scheme: scheme,
		HPA:    hpagw.New(c),
		Status: status.New(c),
	}, c
}

func TestReconcile_CreateAddsFinalizerAndHPA(t *testing.T) {
	scaler := &v1.ServiceScaler{
		ObjectMeta: metav1.ObjectMeta{Name: "checkout", Namespace: "default"},
		Spec:       v1.ServiceScalerSpec{HPA: v1.HPASpec{MinReplicas: 2, MaxReplicas: 10}},
	}
	r, c := newReconciler(t, scaler)

	res, err := r.Reconcile(context.Background(), ctrl.Request{NamespacedName: types.NamespacedName{Namespace: "default", Name: "checkout"}})
	require.NoError(t, err)
	assert.Greater(t, res.RequeueAfter.Seconds(), float64(0))

	var got v1.ServiceScaler
	require.NoError(t, c.Get(context.Background(), types.NamespacedName{Namespace: "default", Name: "checkout"}, &got))
	assert.Contains(t, got.Finalizers, v1.Finalizer)

	var hpaObj autoscalingv2.HorizontalPodAutoscaler
	require.NoError(t, c.Get(context.Background(), types.NamespacedName{Namespace: "default", Name: "checkout"}, &hpaObj))
	assert.Equal(t, int32(2), *hpaObj.Spec.MinReplicas)
}

func TestReconcile_DeleteRemovesHPAAndFinalizer(t *testing.T) {
	now := metav1.Now()
	scaler := &v1.ServiceScaler{
		ObjectMeta: metav1.ObjectMeta{
			Name: "checkout", Namespace: "default",
			Finalizers:        []string{v1.Finalizer},
			DeletionTimestamp: &now,
		},
		Spec: v1.ServiceScalerSpec{HPA: v1.HPASpec{MinReplicas: 2, MaxReplicas: 10}},
	}
	existingHPA := &autoscalingv2.HorizontalPodAutoscaler{
		ObjectMeta: metav1.ObjectMeta{Name: "checkout", Namespace: "default"},
		Spec: autoscalingv2.HorizontalPodAutoscalerSpec{
			ScaleTargetRef: autoscalingv2.CrossVersionObjectReference{Kind: "Deployment", Name: "checkout"},
			MinReplicas:    ptr.To(int32(2)),
			MaxReplicas:    10,
		},
	}
	r, c := newReconciler(t, scaler, existingHPA)

	res, err := r.Reconcile(context.Background(), ctrl.Request{NamespacedName: types.NamespacedName{Namespace: "default", Name: "checkout"}})
	require.NoError(t, err)
	assert.Zero(t, res.RequeueAfter, "a successful delete should not requeue")

	var hpaObj autoscalingv2.HorizontalPodAutoscaler
	err = c.Get(context.Background(), types.NamespacedName{Namespace: "default", Name: "checkout"}, &hpaObj)
	assert.True(t, apierrors.IsNotFound(err))
}

func TestReconcile_UpdateFixedSizeDeletesHPA(t *testing.T) {
	scaler := &v1.ServiceScaler{
		ObjectMeta: metav1.ObjectMeta{Name: "checkout", Namespace: "default", Finalizers: []string{v1.Finalizer}},
		Spec:       v1.ServiceScalerSpec{HPA: v1.HPASpec{MinReplicas: 3, MaxReplicas: 3}},
	}
	existingHPA := &autoscalingv2.HorizontalPodAutoscaler{
		ObjectMeta: metav1.ObjectMeta{Name: "checkout", Namespace: "default"},
		Spec: autoscalingv2.HorizontalPodAutoscalerSpec{
			ScaleTargetRef: autoscalingv2.CrossVersionObjectReference{Kind: "Deployment", Name: "checkout"},
			MinReplicas:    ptr.To(int32(3)),
			MaxReplicas:    3,
		},
	}
	r, c := newReconciler(t, scaler, existingHPA)

	_, err := r.Reconcile(context.Background(), ctrl.Request{NamespacedName: types.NamespacedName{Namespace: "default", Name: "checkout"}})
	require.NoError(t, err)

	var hpaObj autoscalingv2.HorizontalPodAutoscaler
	err = c.Get(context.Background(), types.NamespacedName{Namespace: "default", Name: "checkout"}, &hpaObj)
	assert.True(t, apierrors.IsNotFound(err))
}

func TestReconcile_UpdatePatchesAndWritesStatus(t *testing.T) {
	scaler := &v1.ServiceScaler{
		ObjectMeta: metav1.ObjectMeta{Name: "checkout", Namespace: "default", Finalizers: []string{v1.Finalizer}, Generation: 2},
		Spec:       v1.ServiceScalerSpec{HPA: v1.HPASpec{MinReplicas: 2, MaxReplicas: 10, TargetCPUUtilization: ptr.To(int32(70))}},
	}
	existingHPA := &autoscalingv2.HorizontalPodAutoscaler{
		ObjectMeta: metav1.ObjectMeta{Name: "checkout", Namespace: "default"},
		Spec: autoscalingv2.HorizontalPodAutoscalerSpec{
			ScaleTargetRef: autoscalingv2.CrossVersionObjectReference{Kind: "Deployment", Name: "checkout"},
			MinReplicas:    ptr.To(int32(5)),
			MaxReplicas:    50,
		},
	}
	r, c := newReconciler(t, scaler, existingHPA)

	_, err := r.Reconcile(context.Background(), ctrl.Request{NamespacedName: types.NamespacedName{Namespace: "default", Name: "checkout"}})
	require.NoError(t, err)

	var got v1.ServiceScaler
	require.NoError(t, c.Get(context.Background(), types.NamespacedName{Namespace: "default", Name: "checkout"}, &got))
	require.NotNil(t, got.Status.LastObservedGeneration)
	assert.Equal(t, int64(2), *got.Status.LastObservedGeneration)
	assert.NotEmpty(t, got.Status.LastUpdatedTime)
}

func TestReconcile_MissingScalerIsNoop(t *testing.T) {
	r, _ := newReconciler(t)
	res, err := r.Reconcile(context.Background(), ctrl.Request{NamespacedName: types.NamespacedName{Namespace: "default", Name: "gone"}})
	require.NoError(t, err)
	assert.Zero(t, res.RequeueAfter)
}
