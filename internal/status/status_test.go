package status

import (
	"context"
	"testing"
	"time"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/utils/ptr"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"

	v1 "github.com/udaan-com/service-scaler/api/v1"
)

func newScheme(t *testing.T) *runtime.Scheme {
	t.Helper()
	scheme := runtime.NewScheme()
	require.NoError(t, v1.AddToScheme(scheme))
	return scheme
}

func TestWrite_PatchesStatus(t *testing.T) {
	scheme := newScheme(t)
	scaler := &v1.ServiceScaler{
		ObjectMeta: metav1.ObjectMeta{Name: "checkout", Namespace: "default", Generation: 3},
	}
	c := fake.NewClientBuilder().WithScheme(scheme).WithObjects(scaler).WithStatusSubresource(&v1.ServiceScaler{}).Build()
	w := &Writer{Client: c, Now: func() time.Time {
		return time.Date(2026, 7, 31, 12, 0, 0, 0, time.UTC)
	}}

	err := w.Write(context.Background(), logr.Discard(), types.NamespacedName{Namespace: "default", Name: "checkout"}, true, v1.HPAOverride{MinReplicas: ptr.To(int32(3))}, 3)
	require.NoError(t, err)

	var got v1.ServiceScaler
	require.NoError(t, c.Get(context.Background(), types.NamespacedName{Namespace: "default", Name: "checkout"}, &got))
	assert.True(t, got.Status.TimeRangeMatch)
	assert.Equal(t, int64(3), *got.Status.LastObservedGeneration)
	assert.Equal(t, "2026-07-31T12:00Z+0000", got.Status.LastUpdatedTime)
}

func TestWrite_PreservesNonUTCOffset(t *testing.T) {
	scheme := newScheme(t)
	scaler := &v1.ServiceScaler{
		ObjectMeta: metav1.ObjectMeta{Name: "checkout", Namespace: "default", Generation: 1},
	}
	c := fake.NewClientBuilder().WithScheme(scheme).WithObjects(scaler).WithStatusSubresource(&v1.ServiceScaler{}).Build()
	loc := time.FixedZone("+05:30", 5*60*60+30*60)
	w := &Writer{Client: c, Now: func() time.Time {
		return time.Date(2026, 7, 31, 17, 30, 0, 0, loc)
	}}

	err := w.Write(context.Background(), logr.Discard(), types.NamespacedName{Namespace: "default", Name: "checkout"}, false, v1.HPAOverride{}, 1)
	require.NoError(t, err)

	var got v1.ServiceScaler
	require.NoError(t, c.Get(context.Background(), types.NamespacedName{Namespace: "default", Name: "checkout"}, &got))
	assert.Equal(t, "2026-07-31T17:30Z+0530", got.Status.LastUpdatedTime, "the clock's local offset must survive the stamp, not be collapsed to UTC")
}

func TestWrite_SkipsWhenScalerGone(t *testing.T) {
	scheme := newScheme(t)
	c := fake.NewClientBuilder().WithScheme(scheme).Build()
	w := New(c)

	err := w.Write(context.Background(), logr.Discard(), types.NamespacedName{Namespace: "default", Name: "missing"}, false, v1.HPAOverride{}, 1)
	assert.NoError(t, err)
}
