package reconcile

import (
	"strings"

	"wpc/ir"
)

// Options tunes container matching. The thresholds are heuristics, not
// invariants, and may need recalibration as more real pages go through.
type Options struct {
	// SmallSetLimit is the target key count at or below which a single
	// overlapping fingerprint suffices.
	SmallSetLimit int
	// OverlapPercent of the target key count is required above the limit,
	// rounded up.
	OverlapPercent int
}

// DefaultOptions returns the tuned defaults.
func DefaultOptions() Options {
	return Options{SmallSetLimit: 3, OverlapPercent: 30}
}

func (o Options) sanitized() Options {
	def := DefaultOptions()
	if o.SmallSetLimit <= 0 {
		o.SmallSetLimit = def.SmallSetLimit
	}
	if o.OverlapPercent <= 0 || o.OverlapPercent > 100 {
		o.OverlapPercent = def.OverlapPercent
	}
	return o
}

func (o Options) minOverlap(want int) int {
	if want <= o.SmallSetLimit {
		return 1
	}
	return (want*o.OverlapPercent + 99) / 100
}

// state tracks consumption across one reconciliation call. Every leaf and
// container merges into at most one IR node, no matter how many regions are
// processed.
type state struct {
	usedLeaves     map[int]struct{}
	usedContainers map[int]struct{}
}

func newState() *state {
	return &state{
		usedLeaves:     make(map[int]struct{}),
		usedContainers: make(map[int]struct{}),
	}
}

// matchLeaf consumes the first unused leaf with the exact fingerprint,
// falling back to any unused leaf of the same kind. Buckets are in document
// order, so the earliest original element wins.
func (st *state) matchLeaf(idx *index, key string, kind ir.NodeKind) *leafElement {
	for _, l := range idx.byKey[key] {
		if _, used := st.usedLeaves[l.id]; !used {
			st.usedLeaves[l.id] = struct{}{}
			return l
		}
	}
	for _, l := range idx.byKind[kind] {
		if _, used := st.usedLeaves[l.id]; !used {
			st.usedLeaves[l.id] = struct{}{}
			return l
		}
	}
	return nil
}

// matchContainer consumes the unused candidate with the best overlap
// against keys, subject to the minimum overlap threshold. Candidates losing
// every comparison keep their slot for a later, better fitting target.
func (st *state) matchContainer(idx *index, opts Options, keys map[string]struct{}) *containerElement {
	if len(keys) == 0 {
		return nil
	}
	need := opts.minOverlap(len(keys))

	var best *containerElement
	bestOverlap := 0
	for _, c := range idx.containers {
		if _, used := st.usedContainers[c.id]; used {
			continue
		}
		overlap := 0
		for k := range keys {
			if _, ok := c.leafKeys[k]; ok {
				overlap++
			}
		}
		if overlap < need {
			continue
		}
		if best == nil || betterContainer(overlap, c, bestOverlap, best) {
			best, bestOverlap = c, overlap
		}
	}
	if best != nil {
		st.usedContainers[best.id] = struct{}{}
	}
	return best
}

// betterContainer orders candidates by raw overlap, then by overlap ratio
// against the candidate's own key count (cross multiplied to stay in
// integers), then by fewer own keys. Equal on all three keeps the earlier
// candidate.
func betterContainer(overlap int, c *containerElement, bestOverlap int, best *containerElement) bool {
	if overlap != bestOverlap {
		return overlap > bestOverlap
	}
	lc, lb := len(c.leafKeys), len(best.leafKeys)
	if overlap*lb != bestOverlap*lc {
		return overlap*lb > bestOverlap*lc
	}
	return lc < lb
}

// mergeClassNames unions recovered class tokens into an existing class
// string, keeping existing tokens first and dropping duplicates.
func mergeClassNames(existing string, add []string) string {
	seen := make(map[string]struct{})
	var out []string
	for _, t := range strings.Fields(existing) {
		if _, ok := seen[t]; !ok {
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	for _, t := range add {
		if _, ok := seen[t]; !ok {
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	return strings.Join(out, " ")
}
