package optimizer

import "gitlab.com/ironspan/cutstock/modules"

// finalize runs exactly once after every group task has joined (spec.md
// §4.9): finalize() each group's pool (pending -> real|waste), then walk
// every CuttingPlan.newRemainders and copy the definitive type back onto it.
// A remainder not found in any pool has been consumed (Pseudo); that is the
// expected path and is left alone.
func finalize(outcomes []groupOutcome, wasteThreshold int) {
	for _, o := range outcomes {
		if o.remainders == nil {
			continue
		}
		o.remainders.finalize(wasteThreshold)
	}
	for _, o := range outcomes {
		if o.solution == nil {
			continue
		}
		for _, plan := range o.solution.CuttingPlans {
			for _, nr := range plan.NewRemainders {
				if found := lookup(outcomes, nr.ID); found != nil {
					nr.Type = found.Type
				}
			}
		}
	}
}

func lookup(outcomes []groupOutcome, id string) *modules.Remainder {
	for _, o := range outcomes {
		if o.remainders == nil {
			continue
		}
		if r := o.remainders.byID(id); r != nil {
			return r
		}
	}
	return nil
}
