package snapshot

import "sort"

// Step is one transfer in a synchronization plan. An empty Parent means a
// full, non-incremental transfer; otherwise Parent names a snapshot that is
// already on the receive side, or is produced by an earlier step of the same
// plan, and sorts strictly before Snapshot.
type Step struct {
	Parent   string
	Snapshot string
}

// Incremental reports whether the step transfers a delta against a parent.
func (s Step) Incremental() bool {
	return s.Parent != ""
}

// PlanSync computes the ordered transfer steps that bring receiveSet up to
// date with sendSet. Snapshots missing on the receive side are transferred in
// ascending identifier order; the first step uses the newest common snapshot
// as its parent when that snapshot sorts before everything being transferred,
// and each later step chains off the snapshot the previous step delivered, so
// every transfer after the first is incremental against the closest possible
// ancestor.
//
// An empty plan means receiveSet already contains every member of sendSet.
//
// Known limitation, kept on purpose: when the two sides share snapshots but
// the newest common one does not sort before the oldest missing one (the
// histories have diverged), the first step silently falls back to a full
// transfer instead of reporting divergence. Changing this would change
// replication behavior existing setups rely on.
func PlanSync(sendSet, receiveSet []string) []Step {
	present := make(map[string]struct{}, len(receiveSet))
	for _, id := range receiveSet {
		present[id] = struct{}{}
	}

	var diff, common []string
	for _, id := range sendSet {
		if _, ok := present[id]; ok {
			common = append(common, id)
		} else {
			diff = append(diff, id)
		}
	}
	if len(diff) == 0 {
		return nil
	}
	sort.Strings(diff)
	sort.Strings(common)

	steps := make([]Step, 0, len(diff))

	first := Step{Snapshot: diff[0]}
	if len(common) > 0 && common[len(common)-1] < diff[0] {
		first.Parent = common[len(common)-1]
	}
	steps = append(steps, first)

	for i := 1; i < len(diff); i++ {
		steps = append(steps, Step{Parent: diff[i-1], Snapshot: diff[i]})
	}
	return steps
}
