// Package btrfs wraps the btrfs-progs command line tools behind the Transport
// interface. All snapshot creation, deletion, and send/receive byte movement
// happens here; planning what to create, delete, or send lives elsewhere.
package btrfs

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strings"
)

// TransportError reports a btrfs-progs invocation that failed. Output carries
// whatever diagnostics the tool produced.
type TransportError struct {
	Op     string
	Output string
	Err    error
}

func (e *TransportError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("btrfs %s: %v\n%s", e.Op, e.Err, e.Output)
	}
	return fmt.Sprintf("btrfs %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Transport executes snapshot operations against the filesystem.
// Implementations exec btrfs-progs; tests substitute a fake.
type Transport interface {
	// CreateSnapshot snapshots the subvolume into location/id.
	CreateSnapshot(subvolume, location, id string, readonly bool) error

	// DeleteSnapshot removes the subvolume at location/id.
	DeleteSnapshot(location, id string) error

	// Send starts streaming the snapshot at location/id. A non-empty parent
	// names a snapshot in the same location already present at the
	// destination; the stream then carries only the delta. Closing the
	// stream reaps the producer and reports its exit status.
	Send(location, id, parent string) (io.ReadCloser, error)

	// Receive materializes one sent snapshot into location from stream.
	// The transfer is atomic per snapshot: a failed receive must not leave
	// a fully materialized snapshot behind (btrfs-progs guarantees this).
	Receive(location string, stream io.Reader) error
}

// CLI is the production Transport, shelling out to the btrfs binary. It needs
// appropriate privileges for most subcommands.
type CLI struct{}

func (CLI) CreateSnapshot(subvolume, location, id string, readonly bool) error {
	dest := filepath.Join(location, id)
	args := []string{"subvolume", "snapshot"}
	if readonly {
		args = append(args, "-r")
	}
	args = append(args, subvolume, dest)

	cmd := exec.Command("btrfs", args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return &TransportError{
			Op:     fmt.Sprintf("snapshot %s -> %s", subvolume, dest),
			Output: strings.TrimSpace(string(output)),
			Err:    err,
		}
	}
	return nil
}

func (CLI) DeleteSnapshot(location, id string) error {
	dest := filepath.Join(location, id)
	cmd := exec.Command("btrfs", "subvolume", "delete", dest)
	if output, err := cmd.CombinedOutput(); err != nil {
		return &TransportError{
			Op:     "subvolume delete " + dest,
			Output: strings.TrimSpace(string(output)),
			Err:    err,
		}
	}
	return nil
}

func (CLI) Send(location, id, parent string) (io.ReadCloser, error) {
	args := []string{"send"}
	if parent != "" {
		args = append(args, "-p", filepath.Join(location, parent))
	}
	args = append(args, filepath.Join(location, id))

	cmd := exec.Command("btrfs", args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, &TransportError{Op: "send " + id, Err: err}
	}
	if err := cmd.Start(); err != nil {
		return nil, &TransportError{Op: "send " + id, Err: err}
	}
	return &sendStream{out: stdout, cmd: cmd, id: id, stderr: &stderr}, nil
}

// sendStream wires the producer's stdout to the consumer and reaps the
// process on Close, surfacing a late producer failure.
type sendStream struct {
	out    io.ReadCloser
	cmd    *exec.Cmd
	id     string
	stderr *bytes.Buffer
}

func (s *sendStream) Read(p []byte) (int, error) {
	return s.out.Read(p)
}

func (s *sendStream) Close() error {
	_ = s.out.Close()
	if err := s.cmd.Wait(); err != nil {
		return &TransportError{
			Op:     "send " + s.id,
			Output: strings.TrimSpace(s.stderr.String()),
			Err:    err,
		}
	}
	return nil
}

func (CLI) Receive(location string, stream io.Reader) error {
	cmd := exec.Command("btrfs", "receive", location)
	cmd.Stdin = stream
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return &TransportError{
			Op:     "receive " + location,
			Output: strings.TrimSpace(stderr.String()),
			Err:    err,
		}
	}
	// btrfs receive exits zero on some stream errors but still complains on
	// stderr; treat any diagnostic output as failure.
	if diag := strings.TrimSpace(stderr.String()); diag != "" {
		return &TransportError{
			Op:     "receive " + location,
			Output: diag,
			Err:    errors.New("btrfs receive reported errors"),
		}
	}
	return nil
}

// Compile-time check that CLI implements Transport.
var _ Transport = CLI{}
