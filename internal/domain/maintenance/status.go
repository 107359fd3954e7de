// internal/domain/maintenance/status.go
package maintenance

import (
	"fmt"

	xerrors "vms-service/internal/pkg/errors"
)

// AllowTransition maps each status to the set of statuses it may move to.
// Completed and cancelled are terminal.
var AllowTransition = map[Status][]Status{
	StatusPending:    {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

// ValidStatus reports whether s is a known maintenance status.
func ValidStatus(s Status) bool {
	_, ok := AllowTransition[s]
	return ok
}

// CanTransition reports whether moving from one status to another is allowed.
// Self-transitions are rejected.
func CanTransition(from, to Status) bool {
	for _, next := range AllowTransition[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ApplyTransition moves the record to the requested status after checking the
// transition table. It returns ErrInvalidInput for anything the table forbids.
func (r *Record) ApplyTransition(to Status) error {
	if !ValidStatus(to) {
		return fmt.Errorf("unknown status %q: %w", to, xerrors.ErrInvalidInput)
	}
	if !CanTransition(r.Status, to) {
		return fmt.Errorf("cannot move %s record to %s: %w", r.Status, to, xerrors.ErrInvalidInput)
	}
	r.Status = to
	return nil
}
