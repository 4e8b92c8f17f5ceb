package snapshot

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanDeletionsKeepsNewest(t *testing.T) {
	existing := []string{
		"2024-01-01-0001",
		"2024-01-02-0001",
		"2024-01-03-0001",
		"2024-01-04-0001",
		"2024-01-05-0001",
		"2024-01-06-0001",
		"2024-01-07-0001",
	}

	doomed, err := PlanDeletions(existing, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-01-02-0001", "2024-01-01-0001"}, doomed)
}

func TestPlanDeletionsNothingToDelete(t *testing.T) {
	existing := []string{"2024-01-01-0001", "2024-01-02-0001"}

	doomed, err := PlanDeletions(existing, 5)
	require.NoError(t, err)
	assert.Empty(t, doomed)

	doomed, err = PlanDeletions(existing, 2)
	require.NoError(t, err)
	assert.Empty(t, doomed)

	doomed, err = PlanDeletions(nil, 0)
	require.NoError(t, err)
	assert.Empty(t, doomed)
}

func TestPlanDeletionsKeepZeroDeletesEverything(t *testing.T) {
	existing := []string{"2024-01-02-0001", "2024-01-01-0001"}

	doomed, err := PlanDeletions(existing, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-01-02-0001", "2024-01-01-0001"}, doomed)
}

func TestPlanDeletionsNegativeKeep(t *testing.T) {
	_, err := PlanDeletions([]string{"2024-01-01-0001"}, -1)
	assert.ErrorIs(t, err, ErrInvalidPolicy)
}

// Deletion count is exactly max(0, len(existing)-keep) and every survivor is
// newer than every deleted identifier.
func TestPlanDeletionsCountAndOrdering(t *testing.T) {
	var existing []string
	for day := 1; day <= 9; day++ {
		existing = append(existing, fmt.Sprintf("2024-05-%02d-0001", day))
	}

	for keep := 0; keep <= 12; keep++ {
		doomed, err := PlanDeletions(existing, keep)
		require.NoError(t, err)

		want := len(existing) - keep
		if want < 0 {
			want = 0
		}
		assert.Len(t, doomed, want, "keep=%d", keep)

		for _, dead := range doomed {
			for _, id := range existing {
				if !contains(doomed, id) {
					assert.Less(t, dead, id, "keep=%d", keep)
				}
			}
		}
	}
}

func contains(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
