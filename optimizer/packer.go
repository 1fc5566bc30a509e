package optimizer

import (
	"sort"
	"time"

	"gitlab.com/ironspan/cutstock/build"
	"gitlab.com/ironspan/cutstock/modules"
	"gitlab.com/ironspan/cutstock/persist"
)

// demandNode is one unit of an individual part still waiting to be packed.
// The demand list is an intrusive doubly linked list (spec.md §4.5's "index
// structure ... to support O(1) removal and O(n) scan") so the Packer can
// remove a satisfied demand mid-scan without re-sorting the rest: removal
// never changes the relative order of the survivors, which is invariant for
// the lifetime of one group's packing loop.
type demandNode struct {
	uid      int
	designID string
	length   int
	prev     *demandNode
	next     *demandNode
}

// demandList is the head/tail of the linked list plus its live count, so
// emptiness and "how many remain unfulfilled" are both O(1).
type demandList struct {
	head, tail *demandNode
	count      int
}

func newDemandList(parts []modules.DesignPart) *demandList {
	// Quantity-expand, one node per individual part, then sort descending
	// by length (spec.md §4.5). Quantity-expansion uid is just the running
	// index; it only needs to be unique within this group.
	type flat struct {
		designID string
		length   int
	}
	var flats []flat
	for _, p := range parts {
		for i := 0; i < p.Quantity; i++ {
			flats = append(flats, flat{designID: p.ID, length: p.Length})
		}
	}
	sort.SliceStable(flats, func(i, j int) bool { return flats[i].length > flats[j].length })

	dl := &demandList{}
	for i, f := range flats {
		n := &demandNode{uid: i, designID: f.designID, length: f.length}
		dl.pushBack(n)
	}
	return dl
}

func (dl *demandList) pushBack(n *demandNode) {
	if dl.tail == nil {
		dl.head, dl.tail = n, n
	} else {
		dl.tail.next = n
		n.prev = dl.tail
		dl.tail = n
	}
	dl.count++
}

func (dl *demandList) remove(n *demandNode) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		dl.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		dl.tail = n.prev
	}
	n.prev, n.next = nil, nil
	dl.count--
}

func (dl *demandList) empty() bool { return dl.count == 0 }

// simulateFirstFit computes how much of a bin of the given capacity a pure
// first-fit pass over the current demand list would pack, without mutating
// the list. Used only by the lookahead candidate scan.
func (dl *demandList) simulateFirstFit(capacity int) int {
	remaining := capacity
	packed := 0
	for n := dl.head; n != nil; n = n.next {
		if n.length <= remaining {
			remaining -= n.length
			packed += n.length
		}
	}
	return packed
}

// packer runs the FFD+lookahead loop of spec.md §4.5 for a single group.
type packer struct {
	key        modules.GroupKey
	remainders *remainderPool
	modbars   *moduleStockPool
	constraints modules.OptimizationConstraints
	log        *persist.Logger
	deadline   time.Time
}

func newPacker(key modules.GroupKey, rp *remainderPool, mp *moduleStockPool, c modules.OptimizationConstraints, log *persist.Logger, deadline time.Time) *packer {
	return &packer{key: key, remainders: rp, modbars: mp, constraints: c, log: log, deadline: deadline}
}

// packerResult is everything one call to run produces.
type packerResult struct {
	plans       []*modules.CuttingPlan
	unfulfilled int
	timedOut    bool
}

// run packs every demand in dl, drawing bins from the remainder pool first
// (single, then welded combination), falling back to a freshly opened
// module bar chosen by lookahead. It stops early, leaving dl non-empty, if
// the group's soft time budget expires (spec.md §4.7).
func (pk *packer) run(dl *demandList) packerResult {
	var plans []*modules.CuttingPlan
	timedOut := false

	for !dl.empty() {
		if time.Now().After(pk.deadline) {
			timedOut = true
			break
		}

		longest := dl.head
		plan := pk.openBinFor(longest.length, dl)

		remaining := plan.SourceLength
		var cuts []modules.Cut
		cutIdx := map[string]int{}

		for n := dl.head; n != nil; {
			next := n.next
			if n.length <= remaining {
				remaining -= n.length
				if idx, ok := cutIdx[n.designID]; ok {
					cuts[idx].Quantity++
				} else {
					cutIdx[n.designID] = len(cuts)
					cuts = append(cuts, modules.Cut{DesignID: n.designID, Length: n.length, Quantity: 1})
				}
				dl.remove(n)
			}
			n = next
		}
		plan.Cuts = cuts

		if remaining > 0 {
			chain := make([]string, 0, len(plan.UsedRemainders)+1)
			for _, used := range plan.UsedRemainders {
				chain = append(chain, used.SourceChain...)
			}
			chain = append(chain, plan.SourceID)
			r := &modules.Remainder{
				ID:             pk.remainders.newRemainderID(),
				Length:         remaining,
				GroupKey:       pk.key,
				OriginalLength: plan.SourceLength,
				ParentID:       plan.SourceID,
				SourceChain:    chain,
				Type:           modules.Pending,
			}
			if remaining < pk.constraints.WasteThreshold {
				r.Type = modules.Waste
				plan.Waste = remaining
			} else {
				pk.remainders.add(r)
				plan.NewRemainders = append(plan.NewRemainders, r)
			}
		}

		plans = append(plans, plan)
	}

	return packerResult{plans: plans, unfulfilled: dl.count, timedOut: timedOut}
}

// openBinFor implements the source-selection precedence of spec.md §4.5:
// a single remainder, then (if W>1) a welded combination, then a freshly
// opened module chosen by lookahead.
func (pk *packer) openBinFor(required int, dl *demandList) *modules.CuttingPlan {
	if r := pk.remainders.findBestSingle(required); r != nil {
		r.Type = modules.Pseudo
		r.IsConsumed = true
		return &modules.CuttingPlan{
			GroupKey:       pk.key,
			SourceType:     modules.SourceRemainder,
			SourceID:       r.ID,
			SourceLength:   r.Length,
			UsedRemainders: []*modules.Remainder{r},
		}
	}

	if pk.constraints.MaxWeldingSegments > 1 {
		if combo := pk.remainders.findBestCombination(required, pk.constraints.MaxWeldingSegments); combo != nil {
			ids := make([]string, len(combo.remainders))
			for i, r := range combo.remainders {
				r.Type = modules.Pseudo
				r.IsConsumed = true
				ids[i] = r.ID
			}
			weldID := weldCompoundID(ids)
			return &modules.CuttingPlan{
				GroupKey:       pk.key,
				SourceType:     modules.SourceRemainder,
				SourceID:       weldID,
				SourceLength:   combo.total,
				UsedRemainders: combo.remainders,
			}
		}
	}

	length := pk.lookaheadSelect(required, dl)
	bar := pk.modbars.createBar(length)
	return &modules.CuttingPlan{
		GroupKey:     pk.key,
		SourceType:   modules.SourceModule,
		SourceID:     bar.ID,
		SourceLength: bar.Length,
		ModuleType:   bar.Specification,
		ModuleLength: bar.Length,
	}
}

// lookaheadSelect implements spec.md §4.5's lookahead bin selection: among
// catalog lengths >= required, simulate a pure first-fit pass for each and
// pick the one with highest utilization, ties broken by the smaller length.
// A single candidate short-circuits the simulation entirely (spec.md §9:
// this changes nothing about the result, since utilization maximization
// degenerates trivially with one option).
func (pk *packer) lookaheadSelect(required int, dl *demandList) int {
	candidates := pk.modbars.candidatesAtLeast(required)
	if len(candidates) == 0 {
		// Caught by ConstraintValidator in the W==1 case; defensive only.
		// Force-select the longest catalog length and accept high waste.
		if build.DEBUG {
			pk.log.Debugln("no module candidate covers demand, forcing longest catalog length")
		}
		return pk.modbars.longest()
	}
	if len(candidates) == 1 {
		return candidates[0]
	}

	best := candidates[0]
	bestUtil := -1.0
	for _, c := range candidates {
		packed := dl.simulateFirstFit(c)
		util := float64(packed) / float64(c)
		if util > bestUtil || (util == bestUtil && c < best) {
			bestUtil = util
			best = c
		}
	}
	return best
}

// weldCompoundID renders the compound source id "a+b+c" spec.md §3 assigns
// to a welded CuttingPlan.
func weldCompoundID(ids []string) string {
	out := ids[0]
	for _, id := range ids[1:] {
		out += "+" + id
	}
	return out
}
