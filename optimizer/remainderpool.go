package optimizer

import (
	"fmt"
	"sort"

	"gitlab.com/ironspan/cutstock/modules"
)

// remainderPool is the per-group ordered store of offcuts described in
// spec.md §4.3. It owns every Remainder created within its group for the
// group task's entire lifetime: nothing ever crosses a group boundary, so no
// locking is needed (spec.md §5).
//
// The pool keeps its members sorted ascending by length at all times, which
// is what lets findBestSingle do a first-fit-on-sorted-list lookup instead
// of a linear scan.
type remainderPool struct {
	key     modules.GroupKey
	members []*modules.Remainder
	nextSeq int
}

func newRemainderPool(key modules.GroupKey) *remainderPool {
	return &remainderPool{key: key}
}

// add inserts r maintaining ascending-length order. r enters as Pending
// unless the caller has already classified it (used by the MWCD revival
// path, which re-inserts a previously-Pseudo remainder as Pending).
func (p *remainderPool) add(r *modules.Remainder) {
	idx := sort.Search(len(p.members), func(i int) bool { return p.members[i].Length >= r.Length })
	p.members = append(p.members, nil)
	copy(p.members[idx+1:], p.members[idx:])
	p.members[idx] = r
}

// newRemainderID mints a sequential, group-scoped id for a freshly produced
// offcut, mirroring ModuleStockPool's "spec_xs_M{n}" scheme (spec.md §4.4)
// but for remainders.
func (p *remainderPool) newRemainderID() string {
	p.nextSeq++
	return fmt.Sprintf("%s_R%d", p.key.String(), p.nextSeq)
}

// findBestSingle returns the shortest remainder with length >= required,
// removing it from the pool (spec.md §4.3's findBestSingle + useSingle are
// fused here since every call site immediately consumes the match). Returns
// nil if no member is long enough.
func (p *remainderPool) findBestSingle(required int) *modules.Remainder {
	idx := sort.Search(len(p.members), func(i int) bool { return p.members[i].Length >= required })
	if idx == len(p.members) {
		return nil
	}
	r := p.members[idx]
	p.members = append(p.members[:idx], p.members[idx+1:]...)
	return r
}

// combination is the result of findBestCombination: the chosen remainders,
// their total length, and the resulting slack (total - required).
type combination struct {
	remainders []*modules.Remainder
	total      int
	slack      int
}

// findBestCombination searches for a multiset of 2..W pool members whose
// total length >= required, minimizing slack and, for ties, the number of
// segments (spec.md §4.3). Pool sizes are small enough in practice
// (documented as <100s per group) for exhaustive subset search over
// {2..W} to be acceptable; branches are pruned once their partial sum alone
// already exceeds the best feasible total found so far.
//
// On success the chosen members are removed from the pool atomically (no
// partial removal on a later failure) and nil is never returned alongside a
// non-empty combination.
func (p *remainderPool) findBestCombination(required, w int) *combination {
	if w < 2 || len(p.members) < 2 {
		return nil
	}
	n := len(p.members)
	var best *combination
	var bestIdx []int

	var chosen []int
	var search func(start, depth int, sum int)
	search = func(start, depth, sum int) {
		if depth >= 2 && sum >= required {
			slack := sum - required
			if best == nil || slack < best.slack || (slack == best.slack && depth < len(bestIdx)) {
				idx := append([]int(nil), chosen...)
				best = &combination{total: sum, slack: slack}
				bestIdx = idx
			}
		}
		if depth == w {
			return
		}
		for i := start; i < n; i++ {
			length := p.members[i].Length
			// Pool is sorted ascending, so once a single member alone
			// already overshoots the best known slack, every later index
			// overshoots at least as much: stop widening this branch.
			if best != nil && sum+length-required > best.slack {
				break
			}
			chosen = append(chosen, i)
			search(i+1, depth+1, sum+length)
			chosen = chosen[:len(chosen)-1]
		}
	}
	search(0, 0, 0)

	if best == nil {
		return nil
	}
	best.remainders = p.removeIndices(bestIdx)
	return best
}

// removeIndices deletes the members at the given (ascending, pool-relative)
// indices atomically and returns them in the order they were indexed,
// preserving sort order among the survivors.
func (p *remainderPool) removeIndices(indices []int) []*modules.Remainder {
	sorted := append([]int(nil), indices...)
	sort.Ints(sorted)

	removed := make([]*modules.Remainder, 0, len(sorted))
	kept := make([]*modules.Remainder, 0, len(p.members)-len(sorted))
	j := 0
	for i, m := range p.members {
		if j < len(sorted) && sorted[j] == i {
			removed = append(removed, m)
			j++
			continue
		}
		kept = append(kept, m)
	}
	p.members = kept
	return removed
}

// finalize runs the pending->real|waste transition exactly once, after all
// groups have finished packing (spec.md §4.3, §4.9): every still-Pending
// member below wasteThreshold becomes Waste, the rest become Real.
func (p *remainderPool) finalize(wasteThreshold int) {
	for _, r := range p.members {
		if r.Type != modules.Pending {
			continue
		}
		if r.Length < wasteThreshold {
			r.Type = modules.Waste
		} else {
			r.Type = modules.Real
		}
	}
}

// byID looks a still-held member up without removing it, used by
// RemainderFinalizer to copy definitive types back onto CuttingPlan.newRemainders.
func (p *remainderPool) byID(id string) *modules.Remainder {
	for _, r := range p.members {
		if r.ID == id {
			return r
		}
	}
	return nil
}
