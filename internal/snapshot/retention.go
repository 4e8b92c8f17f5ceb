package snapshot

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidPolicy is returned for a negative retention keep count.
var ErrInvalidPolicy = errors.New("keep count must be non-negative")

// PlanDeletions returns the identifiers that fall outside the retention
// window: everything beyond the keep most recent. The result is ordered
// newest-excess-first. Planning is pure; each returned identifier is deleted
// independently by the caller, so a failed delete never invalidates the rest
// of the plan.
func PlanDeletions(existing []string, keep int) ([]string, error) {
	if keep < 0 {
		return nil, fmt.Errorf("keep %d: %w", keep, ErrInvalidPolicy)
	}

	ids := append([]string(nil), existing...)
	sort.Sort(sort.Reverse(sort.StringSlice(ids)))

	if len(ids) <= keep {
		return nil, nil
	}
	return ids[keep:], nil
}
