package repo

import (
	"os"
	"path/filepath"
)

// Skipped records a child directory that was rejected while walking a root of
// sibling repositories. Bulk operations carry on past rejected children; the
// reasons are kept so callers can surface them instead of dropping them
// silently.
type Skipped struct {
	Path   string
	Reason error
}

// SendLocations lists the send-capable repositories directly under root:
// every child directory holding exactly one subvolume symlink. Children that
// fail validation are returned as Skipped. Ordering across siblings follows
// the directory listing and is not defined.
func SendLocations(root Location) ([]Location, []Skipped, error) {
	return children(root, func(loc Location) error {
		_, err := ResolveTarget(loc)
		return err
	})
}

// ReceiveLocations lists every child directory of root as a receive-capable
// repository. A receive-capable location carries no symlink requirement, so
// only unreadable children end up skipped.
func ReceiveLocations(root Location) ([]Location, []Skipped, error) {
	return children(root, func(Location) error { return nil })
}

func children(root Location, validate func(Location) error) ([]Location, []Skipped, error) {
	entries, err := os.ReadDir(root.Path)
	if err != nil {
		return nil, nil, err
	}

	var locs []Location
	var skipped []Skipped
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		path := filepath.Join(root.Path, entry.Name())
		loc, err := New(path)
		if err == nil {
			err = validate(loc)
		}
		if err != nil {
			skipped = append(skipped, Skipped{Path: path, Reason: err})
			continue
		}
		locs = append(locs, loc)
	}
	return locs, skipped, nil
}
