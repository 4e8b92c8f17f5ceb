// Package repo models snapshot repository locations on the filesystem.
//
// A repository location is a plain directory. A send-capable location
// additionally holds exactly one symbolic link naming the subvolume it
// snapshots; a receive-capable location holds only snapshot directories. The
// filesystem is the source of truth: nothing here caches state between calls.
package repo

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/majorcontext/btrsnap/internal/snapshot"
)

var (
	// ErrNotDirectory is returned when a location does not exist or is not
	// a directory.
	ErrNotDirectory = errors.New("path is not a directory")

	// ErrSymlinkCardinality is returned when a send-capable location does
	// not hold exactly one symlink designating its subvolume.
	ErrSymlinkCardinality = errors.New("repository must contain exactly one symlink to its subvolume")
)

// A Location is a repository directory that existed when it was constructed.
// Existence is checked once in New; contents are re-read on every call that
// needs them.
type Location struct {
	Path string
}

// New validates path and returns its absolute form as a Location. A leading
// "~" is expanded to the user's home directory.
func New(path string) (Location, error) {
	expanded := expandHome(path)
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return Location{}, fmt.Errorf("%q: %w", path, ErrNotDirectory)
	}
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return Location{}, fmt.Errorf("%q: %w", path, ErrNotDirectory)
	}
	return Location{Path: abs}, nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~"+string(os.PathSeparator)) {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// ResolveTarget returns the subvolume path designated by the location's
// single symlink, fully resolved. It re-reads the directory on every call;
// there is no cached target.
func ResolveTarget(loc Location) (string, error) {
	entries, err := os.ReadDir(loc.Path)
	if err != nil {
		return "", fmt.Errorf("reading %q: %w", loc.Path, err)
	}

	var links []string
	for _, entry := range entries {
		if entry.Type()&fs.ModeSymlink != 0 {
			links = append(links, entry.Name())
		}
	}
	if len(links) != 1 {
		return "", fmt.Errorf("%q holds %d symlinks: %w", loc.Path, len(links), ErrSymlinkCardinality)
	}

	target, err := filepath.EvalSymlinks(filepath.Join(loc.Path, links[0]))
	if err != nil {
		return "", fmt.Errorf("resolving subvolume link in %q: %w", loc.Path, err)
	}
	return target, nil
}

// Snapshots lists the snapshot identifiers present in the location, newest
// first. Directory entries whose names are not well-formed identifiers are
// ignored, as are non-directories. The set is recomputed from the filesystem
// on every call.
func Snapshots(loc Location) ([]string, error) {
	entries, err := os.ReadDir(loc.Path)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", loc.Path, err)
	}

	var ids []string
	for _, entry := range entries {
		if entry.IsDir() && snapshot.IsID(entry.Name()) {
			ids = append(ids, entry.Name())
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(ids)))
	return ids, nil
}
