// Package reconcile plans full-list replacement of a company's child rows.
// The editor submits the complete desired list; entries carrying a persisted
// identifier are updates, entries without one are creates, and persisted rows
// absent from the submission are deletes. The plan is pure set arithmetic so
// resubmitting an unchanged list yields an empty delete set and no creates.
package reconcile

import (
	"fmt"

	"github.com/google/uuid"
)

// Plan is the computed change set for one reconciliation pass. CreateIdx and
// UpdateIdx index into the submitted slice; DeleteIDs are persisted rows to
// remove.
type Plan struct {
	CreateIdx []int
	UpdateIdx []int
	DeleteIDs []uuid.UUID
}

// ErrUnknownID indicates a submitted entry referenced an identifier that is
// not persisted for this company.
type ErrUnknownID struct {
	ID uuid.UUID
}

func (e *ErrUnknownID) Error() string {
	return fmt.Sprintf("unknown entity id: %s", e.ID)
}

// Compute builds a Plan from the persisted identifier set and the submitted
// entries. A nil submitted identifier marks a new entity; a non-nil one must
// be present in currentIDs or the whole submission is rejected.
func Compute(currentIDs []uuid.UUID, submittedIDs []*uuid.UUID) (*Plan, error) {
	current := make(map[uuid.UUID]bool, len(currentIDs))
	for _, id := range currentIDs {
		current[id] = true
	}

	plan := &Plan{}
	kept := make(map[uuid.UUID]bool, len(submittedIDs))
	for i, id := range submittedIDs {
		if id == nil {
			plan.CreateIdx = append(plan.CreateIdx, i)
			continue
		}
		if !current[*id] {
			return nil, &ErrUnknownID{ID: *id}
		}
		plan.UpdateIdx = append(plan.UpdateIdx, i)
		kept[*id] = true
	}

	// Full diff/replace: anything persisted but not resubmitted is deleted.
	for _, id := range currentIDs {
		if !kept[id] {
			plan.DeleteIDs = append(plan.DeleteIDs, id)
		}
	}

	return plan, nil
}
