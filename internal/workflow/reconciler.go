// Package workflow holds the collection rules applied when entities move through the
// approval workflow. Lists are replaced wholesale on refetch; decided entities are
// removed from every pending collection that might still hold them. Nothing is ever
// synthesized into an approved or rejected collection locally; those are only filled
// by a refetch from the remote service.
package workflow

import (
	"fmt"

	"github.com/ngoconnect/ngoconnect/internal/models"
)

// Replace returns the collection to store after a list or search settles.
// Server order is kept and a nil result becomes an empty collection.
func Replace[T models.Identifiable](result []T) []T {
	out := make([]T, len(result))
	copy(out, result)
	return out
}

// RemoveByID returns a new collection without any entry whose identity is id.
// Relative order of the remaining entries is preserved. Removing an absent id is a no-op.
func RemoveByID[T models.Identifiable](items []T, id string) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if item.Identity() != id {
			out = append(out, item)
		}
	}
	return out
}

// Prepend returns a new collection with item first, dropping any older entry with the
// same identity.
func Prepend[T models.Identifiable](items []T, item T) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, item)
	for _, existing := range items {
		if existing.Identity() != item.Identity() {
			out = append(out, existing)
		}
	}
	return out
}

// Decision is an admin action on a pending entity
type Decision struct {
	ID     string
	Status models.Status
	Reason string
}

// Approve builds the decision approving id
func Approve(id string) Decision {
	return Decision{ID: id, Status: models.StatusApproved}
}

// Reject builds the decision rejecting id with reason
func Reject(id, reason string) Decision {
	return Decision{ID: id, Status: models.StatusRejected, Reason: reason}
}

// Validate checks that the decision names an entity and a terminal status
func (d Decision) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("decision requires an id")
	}
	if !models.StatusPending.CanTransitionTo(d.Status) {
		return fmt.Errorf("invalid decision status %q", d.Status)
	}
	return nil
}

// Apply moves current to the decided status, enforcing pending → approved | rejected.
func (d Decision) Apply(current models.Status) (models.Status, error) {
	if err := d.Validate(); err != nil {
		return current, err
	}
	if !current.CanTransitionTo(d.Status) {
		return current, fmt.Errorf("cannot move from %s to %s", current, d.Status)
	}
	return d.Status, nil
}
