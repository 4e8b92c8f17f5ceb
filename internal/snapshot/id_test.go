package snapshot

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func date(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("parse %q: %v", value, err)
	}
	return parsed
}

func TestIsID(t *testing.T) {
	valid := []string{"2024-01-01-0001", "1999-12-31-9999", "2024-06-01-0042"}
	for _, name := range valid {
		if !IsID(name) {
			t.Errorf("IsID(%q) = false, want true", name)
		}
	}

	invalid := []string{
		"",
		"2024-01-01",
		"2024-01-01-001",
		"2024-01-01-00001",
		"2024-1-01-0001",
		"snapshot-2024-01-01-0001",
		"2024-01-01-0001.partial",
		"target",
	}
	for _, name := range invalid {
		if IsID(name) {
			t.Errorf("IsID(%q) = true, want false", name)
		}
	}
}

func TestAllocateFirstOfDay(t *testing.T) {
	id, err := Allocate(nil, date(t, "2024-06-01"))
	if err != nil {
		t.Fatalf("Allocate() error: %v", err)
	}
	if id != "2024-06-01-0001" {
		t.Errorf("Allocate() = %q, want 2024-06-01-0001", id)
	}
}

func TestAllocateSkipsTaken(t *testing.T) {
	existing := []string{"2024-06-01-0001"}
	id, err := Allocate(existing, date(t, "2024-06-01"))
	if err != nil {
		t.Fatalf("Allocate() error: %v", err)
	}
	if id != "2024-06-01-0002" {
		t.Errorf("Allocate() = %q, want 2024-06-01-0002", id)
	}
}

// A snapshot dated in the future (clock skew) must not make Allocate hand out
// an identifier that sorts before or equal to it.
func TestAllocateClockSkewGuard(t *testing.T) {
	existing := []string{"2024-06-01-0001", "2024-06-03-0002"}

	id, err := Allocate(existing, date(t, "2024-06-03"))
	if err != nil {
		t.Fatalf("Allocate() error: %v", err)
	}
	if id != "2024-06-03-0003" {
		t.Errorf("Allocate() = %q, want 2024-06-03-0003", id)
	}

	// Newest existing is on a later day than today: no same-day counter can
	// ever sort after it.
	_, err = Allocate([]string{"2024-06-04-0001"}, date(t, "2024-06-03"))
	if !errors.Is(err, ErrAllocationExhausted) {
		t.Fatalf("Allocate() error = %v, want ErrAllocationExhausted", err)
	}
}

func TestAllocateNeverReturnsExisting(t *testing.T) {
	today := date(t, "2024-06-02")
	existing := []string{"2024-06-01-0003"}

	for i := 0; i < 50; i++ {
		id, err := Allocate(existing, today)
		if err != nil {
			t.Fatalf("Allocate() error on round %d: %v", i, err)
		}
		for _, prior := range existing {
			if id <= prior {
				t.Fatalf("Allocate() = %q does not sort after %q", id, prior)
			}
		}
		existing = append(existing, id)
	}
}

func TestAllocateExhausted(t *testing.T) {
	existing := make([]string, 0, maxPerDay)
	for counter := 1; counter <= maxPerDay; counter++ {
		existing = append(existing, fmt.Sprintf("2024-06-01-%04d", counter))
	}

	_, err := Allocate(existing, date(t, "2024-06-01"))
	if !errors.Is(err, ErrAllocationExhausted) {
		t.Fatalf("Allocate() error = %v, want ErrAllocationExhausted", err)
	}
}
