package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/majorcontext/btrsnap/internal/ops"
)

func TestWriteListingPlain(t *testing.T) {
	var buf bytes.Buffer
	writeListing(&buf, ops.Listing{
		Path:      "/snapshots/music",
		Snapshots: []string{"2024-01-02-0001", "2024-01-01-0001"},
	}, true)

	want := "2024-01-02-0001\n2024-01-01-0001\n"
	if buf.String() != want {
		t.Errorf("plain listing = %q, want %q", buf.String(), want)
	}
}

func TestWriteListingDecorated(t *testing.T) {
	var buf bytes.Buffer
	writeListing(&buf, ops.Listing{
		Path:      "/snapshots/music",
		Snapshots: []string{"2024-01-02-0001", "2024-01-01-0001"},
	}, false)

	out := buf.String()
	if !strings.Contains(out, "2024-01-02-0001") {
		t.Error("decorated listing should include identifiers")
	}
	if !strings.Contains(out, `contains 2 snapshot(s)`) {
		t.Errorf("decorated listing missing summary, got: %q", out)
	}
}

func TestWriteListingsSummary(t *testing.T) {
	listings := []ops.Listing{
		{Path: "/snapshots/music", Snapshots: []string{"2024-01-02-0001", "2024-01-01-0001"}},
		{Path: "/snapshots/photos", Snapshots: nil},
	}

	var buf bytes.Buffer
	writeListings(&buf, "/snapshots", listings, false)
	out := buf.String()

	if !strings.Contains(out, "2 snapshots: Newest = 2024-01-02, Oldest = 2024-01-01") {
		t.Errorf("missing per-repository summary, got: %q", out)
	}
	if !strings.Contains(out, "No snapshots") {
		t.Error("empty repository should be reported")
	}
	if !strings.Contains(out, "contains 2 snapshots in 2 subdirectories") {
		t.Errorf("missing overall summary, got: %q", out)
	}
	if !strings.Contains(out, " Summary ") {
		t.Error("missing summary separator")
	}
}

func TestWriteListingsPlainIsTabSeparated(t *testing.T) {
	listings := []ops.Listing{
		{Path: "/snapshots/music", Snapshots: []string{"2024-01-01-0001"}},
	}

	var buf bytes.Buffer
	writeListings(&buf, "/snapshots", listings, true)

	if !strings.Contains(buf.String(), "/snapshots/music") ||
		!strings.Contains(buf.String(), "2024-01-01-0001") {
		t.Errorf("plain deep listing = %q", buf.String())
	}
}

func TestCenter(t *testing.T) {
	got := center(" Summary ", 21)
	if len(got) != 21 {
		t.Errorf("center() length = %d, want 21", len(got))
	}
	if !strings.Contains(got, " Summary ") {
		t.Errorf("center() = %q", got)
	}
	if center("longer than width", 5) != "longer than width" {
		t.Error("center() should pass through strings wider than width")
	}
}
