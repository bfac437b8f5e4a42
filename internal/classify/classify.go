// Package classify determines which branch of the reconciler's dispatch table
// a ServiceScaler falls into, based purely on its object metadata.
package classify

import metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

// Action is the classified reconciliation branch for an object.
type Action string

const (
	// Create is returned for an object with no finalizers yet recorded: the
	// controller has never taken ownership of it.
	Create Action = "Create"
	// Update is returned for an object the controller already owns and that
	// is not being deleted.
	Update Action = "Update"
	// Delete is returned once a deletion timestamp has been set.
	Delete Action = "Delete"
)

// Classify inspects an object's deletion timestamp and finalizer list and
// returns the branch the reconciler should take. A non-nil deletion
// timestamp always wins, regardless of finalizer state.
func Classify(obj metav1.Object) Action {
	if obj.GetDeletionTimestamp() != nil {
		return Delete
	}
	if len(obj.GetFinalizers()) == 0 {
		return Create
	}
	return Update
}
