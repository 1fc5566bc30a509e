package optimizer

import (
	"sort"
	"time"

	"gitlab.com/ironspan/cutstock/modules"
	"gitlab.com/ironspan/cutstock/persist"
)

// mwcdOptimizer runs the intra-group local search of spec.md §4.6: trade a
// surviving real-remainder plan (MW) for a welded-combination plan (CD)
// whenever replacing the weld with the single remainder is a net
// improvement.
type mwcdOptimizer struct {
	key         modules.GroupKey
	remainders  *remainderPool
	constraints modules.OptimizationConstraints
	cfg         Config
	log         *persist.Logger
}

func newMWCDOptimizer(key modules.GroupKey, rp *remainderPool, c modules.OptimizationConstraints, cfg Config, log *persist.Logger) *mwcdOptimizer {
	return &mwcdOptimizer{key: key, remainders: rp, constraints: c, cfg: cfg, log: log}
}

// swapCandidate pairs an MW plan's index with a CD plan's index and the
// benefit of replacing the latter with a plan sourced from the former's
// surviving remainder.
type swapCandidate struct {
	mwIndex int
	cdIndex int
	benefit int
}

// run repeats "collect all feasible swaps, execute the single highest-
// benefit one, re-scan" until no feasible swap clears the benefit floor, the
// round cap is hit, or the deadline passes (spec.md §4.6).
func (o *mwcdOptimizer) run(plans []*modules.CuttingPlan, deadline time.Time) []*modules.CuttingPlan {
	for round := 0; round < o.cfg.MWCDMaxRounds; round++ {
		if time.Now().After(deadline) {
			break
		}
		candidates := o.feasibleSwaps(plans)
		if len(candidates) == 0 {
			break
		}
		sort.Slice(candidates, func(i, j int) bool { return candidates[i].benefit > candidates[j].benefit })
		best := candidates[0]
		plans = o.execute(plans, best)
	}
	return plans
}

// feasibleSwaps scans every (MW, CD) pair and returns the ones clearing the
// benefit floor, per the five-point predicate of spec.md §4.6.
func (o *mwcdOptimizer) feasibleSwaps(plans []*modules.CuttingPlan) []swapCandidate {
	var out []swapCandidate
	for mi, mw := range plans {
		m := mwRemainder(mw)
		if m == nil {
			continue
		}
		for ci, cd := range plans {
			if mi == ci {
				continue
			}
			if !isWeldPlan(cd) {
				continue
			}
			segments := len(cd.UsedRemainders)
			if segments < 2 {
				continue
			}
			cutTotal := cutsTotalLength(cd.Cuts)
			if m.Length < cutTotal {
				continue
			}
			slack := m.Length - cutTotal
			benefit := (segments-1)*o.cfg.WeldUnitMM - abs(slack)
			if benefit <= o.cfg.MWCDBenefitFloorMM {
				continue
			}
			if slack >= o.constraints.WasteThreshold {
				// A post-swap leftover this large would itself survive as a
				// new real remainder, meaning the "benefit" never actually
				// recovers material — spec.md §4.6 predicate 5.
				continue
			}
			out = append(out, swapCandidate{mwIndex: mi, cdIndex: ci, benefit: benefit})
		}
	}
	return out
}

// execute replaces plans[best.cdIndex] with a new plan sourced solely from
// the MW plan's remainder, marks that remainder consumed, and revives the
// CD plan's welded remainders back into the pool as Pending.
func (o *mwcdOptimizer) execute(plans []*modules.CuttingPlan, best swapCandidate) []*modules.CuttingPlan {
	mw := plans[best.mwIndex]
	cd := plans[best.cdIndex]
	m := mwRemainder(mw)
	cutTotal := cutsTotalLength(cd.Cuts)
	waste := m.Length - cutTotal

	o.remainders.removeByID(m.ID)
	m.Type = modules.Pseudo
	m.IsConsumed = true

	newPlan := &modules.CuttingPlan{
		GroupKey:       o.key,
		SourceType:     modules.SourceRemainder,
		SourceID:       m.ID,
		SourceLength:   m.Length,
		Cuts:           append([]modules.Cut(nil), cd.Cuts...),
		UsedRemainders: []*modules.Remainder{m},
	}
	if waste > 0 {
		newPlan.Waste = waste
	}

	// Drop the MW plan's own newRemainders entry: m has been consumed, it
	// no longer survives as a standalone offcut of the plan that produced
	// it.
	mw.NewRemainders = nil

	for _, used := range cd.UsedRemainders {
		used.Type = modules.Pending
		used.IsConsumed = false
		used.ConsumedAt = 0
		o.remainders.add(used)
	}

	out := make([]*modules.CuttingPlan, 0, len(plans))
	for i, p := range plans {
		if i == best.cdIndex {
			out = append(out, newPlan)
			continue
		}
		out = append(out, p)
	}
	return out
}

// mwRemainder returns a plan's surviving, still-Pending tail remainder if it
// qualifies as an MW candidate (length >= wasteThreshold, never consumed).
func mwRemainder(p *modules.CuttingPlan) *modules.Remainder {
	if len(p.NewRemainders) != 1 {
		return nil
	}
	r := p.NewRemainders[0]
	if r.Type != modules.Pending {
		return nil
	}
	return r
}

// isWeldPlan reports whether p is a CD plan: sourced from a welded
// combination of >= 2 remainders.
func isWeldPlan(p *modules.CuttingPlan) bool {
	return p.SourceType == modules.SourceRemainder && len(p.UsedRemainders) >= 2
}

func cutsTotalLength(cuts []modules.Cut) int {
	total := 0
	for _, c := range cuts {
		total += c.Length * c.Quantity
	}
	return total
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
