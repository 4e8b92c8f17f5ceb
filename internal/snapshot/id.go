// Package snapshot implements the snapshot lifecycle logic: identifier
// allocation, retention planning, and incremental synchronization planning.
// Everything here is pure computation over snapshot identifier sets; reading
// sets from the filesystem lives in internal/repo and executing decisions
// lives in internal/btrfs.
package snapshot

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

// Identifiers have the fixed form YYYY-MM-DD-NNNN. Lexicographic order on
// well-formed identifiers equals creation order (date-major, counter-minor).
var idPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}-\d{4}$`)

// dayFormat is the date prefix of an identifier.
const dayFormat = "2006-01-02"

// maxPerDay is the highest sequence counter an identifier can carry.
const maxPerDay = 9999

// ErrAllocationExhausted is returned when more than 9999 snapshots are
// requested for a single day.
var ErrAllocationExhausted = errors.New("more than 9999 snapshots requested for one day")

// IsID reports whether name is a well-formed snapshot identifier. Directory
// entries that are not well-formed identifiers are invisible to every set
// operation in this package.
func IsID(name string) bool {
	return idPattern.MatchString(name)
}

// Allocate returns the next free identifier for today's date, given the
// identifiers already present in the repository. The result is never a member
// of existing and always sorts strictly after every member of existing: if the
// system clock has moved backwards since the newest existing snapshot was
// created, the counter keeps climbing until ordering is restored rather than
// producing an identifier that would sort before one created earlier.
//
// Allocate is pure. The caller must create the snapshot immediately; there is
// no reservation, which is acceptable under the single-writer assumption.
func Allocate(existing []string, today time.Time) (string, error) {
	day := today.Format(dayFormat)

	taken := make(map[string]struct{}, len(existing))
	newest := ""
	for _, id := range existing {
		taken[id] = struct{}{}
		if id > newest {
			newest = id
		}
	}

	for counter := 1; counter <= maxPerDay; counter++ {
		candidate := fmt.Sprintf("%s-%04d", day, counter)
		if _, exists := taken[candidate]; exists {
			continue
		}
		if candidate <= newest {
			continue
		}
		return candidate, nil
	}
	return "", fmt.Errorf("allocating identifier for %s: %w", day, ErrAllocationExhausted)
}
