// Package ops implements the top-level btrsnap operations: snapshot creation,
// retention pruning, listing, and incremental synchronization, plus their
// deep variants over a root of sibling repositories. Each operation reads the
// repository state fresh from the filesystem, plans with internal/snapshot,
// and executes through a btrfs.Transport.
package ops

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/majorcontext/btrsnap/internal/btrfs"
	"github.com/majorcontext/btrsnap/internal/log"
	"github.com/majorcontext/btrsnap/internal/repo"
	"github.com/majorcontext/btrsnap/internal/snapshot"
)

// Engine runs btrsnap operations through a Transport. Operations are
// sequential; nothing here is safe for concurrent use against the same
// repository, matching the single-writer assumption.
type Engine struct {
	transport btrfs.Transport
	now       func() time.Time
}

// New returns an Engine executing through t.
func New(t btrfs.Transport) *Engine {
	return &Engine{transport: t, now: time.Now}
}

// Snap creates a new timestamped snapshot in the repository at path of the
// subvolume its symlink designates.
func (e *Engine) Snap(path string, readonly bool) (string, error) {
	loc, err := repo.New(path)
	if err != nil {
		return "", err
	}
	target, err := repo.ResolveTarget(loc)
	if err != nil {
		return "", err
	}
	existing, err := repo.Snapshots(loc)
	if err != nil {
		return "", err
	}
	id, err := snapshot.Allocate(existing, e.now())
	if err != nil {
		return "", err
	}

	log.Debug("creating snapshot", "repo", loc.Path, "subvolume", target, "id", id, "readonly", readonly)
	if err := e.transport.CreateSnapshot(target, loc.Path, id, readonly); err != nil {
		return "", err
	}
	return fmt.Sprintf("Created snapshot %q in %q", id, loc.Path), nil
}

// SnapDeep creates a snapshot in every send-capable repository under path.
// Children without a valid subvolume symlink are skipped; a failure in one
// repository does not stop the others.
func (e *Engine) SnapDeep(path string, readonly bool) (string, error) {
	root, err := repo.New(path)
	if err != nil {
		return "", err
	}
	locs, skipped, err := repo.SendLocations(root)
	if err != nil {
		return "", err
	}
	logSkipped(skipped)
	if len(locs) == 0 {
		return fmt.Sprintf("No snapshot directories found in %q", root.Path), nil
	}

	var msgs []string
	for _, loc := range locs {
		msg, err := e.Snap(loc.Path, readonly)
		if err != nil {
			msgs = append(msgs, "Error: "+err.Error())
			continue
		}
		msgs = append(msgs, msg)
	}
	return strings.Join(msgs, "\n"), nil
}

// Unsnap deletes all but the keep most recent snapshots in the repository at
// path. Deletes are independent: one failure is reported and counted, and the
// remaining planned deletions still run.
func (e *Engine) Unsnap(path string, keep int) (string, error) {
	loc, err := repo.New(path)
	if err != nil {
		return "", err
	}
	existing, err := repo.Snapshots(loc)
	if err != nil {
		return "", err
	}
	doomed, err := snapshot.PlanDeletions(existing, keep)
	if err != nil {
		return "", err
	}
	if len(doomed) == 0 {
		return fmt.Sprintf("There are less than %d snapshot(s) in %q... not deleting any", keep, loc.Path), nil
	}

	deleted, failed := 0, 0
	for _, id := range doomed {
		if err := e.transport.DeleteSnapshot(loc.Path, id); err != nil {
			log.Warn("delete failed", "repo", loc.Path, "id", id, "error", err)
			failed++
			continue
		}
		deleted++
	}

	msg := fmt.Sprintf("Deleted %d snapshot(s) from %q. %d kept", deleted, loc.Path, keep)
	if failed > 0 {
		msg += fmt.Sprintf(" (%d failed)", failed)
	}
	return msg, nil
}

// UnsnapDeep prunes every child repository of path to keep snapshots.
func (e *Engine) UnsnapDeep(path string, keep int) (string, error) {
	root, err := repo.New(path)
	if err != nil {
		return "", err
	}
	locs, skipped, err := repo.ReceiveLocations(root)
	if err != nil {
		return "", err
	}
	logSkipped(skipped)
	if len(locs) == 0 {
		return fmt.Sprintf("No subdirectories found in %q", root.Path), nil
	}

	var msgs []string
	for _, loc := range locs {
		msg, err := e.Unsnap(loc.Path, keep)
		if err != nil {
			msgs = append(msgs, "Error: "+err.Error())
			continue
		}
		msgs = append(msgs, msg)
	}
	return strings.Join(msgs, "\n"), nil
}

// Listing is the snapshot inventory of one repository, newest first.
type Listing struct {
	Path      string   `json:"path"`
	Snapshots []string `json:"snapshots"`
}

// List returns the snapshot inventory of the repository at path.
func (e *Engine) List(path string) (Listing, error) {
	loc, err := repo.New(path)
	if err != nil {
		return Listing{}, err
	}
	ids, err := repo.Snapshots(loc)
	if err != nil {
		return Listing{}, err
	}
	return Listing{Path: loc.Path, Snapshots: ids}, nil
}

// ListDeep returns the inventory of every child repository of path, in
// filesystem listing order.
func (e *Engine) ListDeep(path string) ([]Listing, error) {
	root, err := repo.New(path)
	if err != nil {
		return nil, err
	}
	locs, skipped, err := repo.ReceiveLocations(root)
	if err != nil {
		return nil, err
	}
	logSkipped(skipped)

	listings := make([]Listing, 0, len(locs))
	for _, loc := range locs {
		listing, err := e.List(loc.Path)
		if err != nil {
			log.Warn("listing failed", "repo", loc.Path, "error", err)
			continue
		}
		listings = append(listings, listing)
	}
	return listings, nil
}

// Sync brings the repository at receivePath up to date with the send-capable
// repository at sendPath, transferring only snapshots the receive side lacks
// and using incremental streams wherever a parent is available. Steps are
// causally chained, so a failed step aborts the remainder of the plan.
func (e *Engine) Sync(sendPath, receivePath string) (string, error) {
	sendLoc, err := repo.New(sendPath)
	if err != nil {
		return "", err
	}
	// A sync source must be send-capable.
	if _, err := repo.ResolveTarget(sendLoc); err != nil {
		return "", err
	}
	recvLoc, err := repo.New(receivePath)
	if err != nil {
		return "", err
	}

	sendSet, err := repo.Snapshots(sendLoc)
	if err != nil {
		return "", err
	}
	recvSet, err := repo.Snapshots(recvLoc)
	if err != nil {
		return "", err
	}

	plan := snapshot.PlanSync(sendSet, recvSet)
	if len(plan) == 0 {
		return fmt.Sprintf("No new snapshots to copy from %q to %q", sendLoc.Path, recvLoc.Path), nil
	}

	for i, step := range plan {
		log.Debug("transferring snapshot",
			"send", sendLoc.Path, "receive", recvLoc.Path,
			"id", step.Snapshot, "parent", step.Parent,
			"step", i+1, "of", len(plan))
		if err := e.transfer(sendLoc.Path, recvLoc.Path, step); err != nil {
			return "", fmt.Errorf("copied %d of %d snapshots from %q to %q: %w",
				i, len(plan), sendLoc.Path, recvLoc.Path, err)
		}
	}
	return fmt.Sprintf("%d snapshots copied from %q to %q", len(plan), sendLoc.Path, recvLoc.Path), nil
}

// transfer executes one plan step as a producer/consumer handoff. The receive
// side blocks until the stream is drained; closing the stream reaps the
// producer and surfaces its exit status.
func (e *Engine) transfer(sendPath, receivePath string, step snapshot.Step) error {
	stream, err := e.transport.Send(sendPath, step.Snapshot, step.Parent)
	if err != nil {
		return err
	}
	recvErr := e.transport.Receive(receivePath, stream)
	closeErr := stream.Close()
	if recvErr != nil {
		return recvErr
	}
	return closeErr
}

// SyncDeep syncs every send-capable repository under sendPath to a sibling of
// the same name under receivePath, creating missing siblings so first-time
// replication starts from a valid empty receive set. Repositories fail
// independently: an aborted plan in one does not stop the others.
func (e *Engine) SyncDeep(sendPath, receivePath string) (string, error) {
	sendRoot, err := repo.New(sendPath)
	if err != nil {
		return "", err
	}
	recvRoot, err := repo.New(receivePath)
	if err != nil {
		return "", err
	}
	locs, skipped, err := repo.SendLocations(sendRoot)
	if err != nil {
		return "", err
	}
	logSkipped(skipped)
	if len(locs) == 0 {
		return fmt.Sprintf("No snapshot directories found in %q", sendRoot.Path), nil
	}

	var msgs []string
	for _, loc := range locs {
		sibling := filepath.Join(recvRoot.Path, filepath.Base(loc.Path))
		if err := os.MkdirAll(sibling, 0755); err != nil {
			msgs = append(msgs, "Error: "+err.Error())
			continue
		}
		msg, err := e.Sync(loc.Path, sibling)
		if err != nil {
			msgs = append(msgs, "Error: "+err.Error())
			continue
		}
		msgs = append(msgs, msg)
	}
	return strings.Join(msgs, "\n"), nil
}

func logSkipped(skipped []repo.Skipped) {
	for _, s := range skipped {
		log.Debug("skipping directory", "path", s.Path, "reason", s.Reason)
	}
}
