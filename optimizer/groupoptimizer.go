package optimizer

import (
	"time"

	"gitlab.com/ironspan/cutstock/modules"
	"gitlab.com/ironspan/cutstock/persist"
)

// groupOptimizer owns one group's RemainderPool, ModuleStockPool, and
// accumulated TaskStats for the duration of its task, per spec.md §4.7. It
// is never touched by any other goroutine: the ParallelCoordinator only
// reads the *modules.GroupSolution and *remainderPool it hands back after
// the task completes.
type groupOptimizer struct {
	g          *group
	cfg        Config
	log        *persist.Logger
	remainders *remainderPool
	moduleBars *moduleStockPool
}

func newGroupOptimizer(g *group, cfg Config, log *persist.Logger) *groupOptimizer {
	return &groupOptimizer{
		g:          g,
		cfg:        cfg,
		log:        log,
		remainders: newRemainderPool(g.key),
		moduleBars: newModuleStockPool(g.key, g.moduleLengths),
	}
}

// run executes the full per-group pipeline: Packer loop, then MWCDOptimizer
// until convergence, then assembles TaskStats. The returned GroupSolution's
// CuttingPlans preserve the order they were produced in, per spec.md §5.
func (gopt *groupOptimizer) run(constraints modules.OptimizationConstraints, timeBudget time.Duration) *modules.GroupSolution {
	start := time.Now()
	deadline := start.Add(timeBudget)

	dl := newDemandList(gopt.g.parts)
	pk := newPacker(gopt.g.key, gopt.remainders, gopt.moduleBars, constraints, gopt.log, deadline)
	packRes := pk.run(dl)

	mwcd := newMWCDOptimizer(gopt.g.key, gopt.remainders, constraints, gopt.cfg, gopt.log)
	plans := mwcd.run(packRes.plans, deadline)

	stats := modules.TaskStats{
		ModulesOpened: len(gopt.moduleBars.opened),
		Unfulfilled:   packRes.unfulfilled,
		ElapsedMS:     time.Since(start).Milliseconds(),
	}
	for _, bar := range gopt.moduleBars.opened {
		stats.ModuleLength += bar.Length
	}
	for _, p := range plans {
		stats.CutCount += len(p.Cuts)
		if len(p.UsedRemainders) > 0 {
			if len(p.UsedRemainders) >= 2 {
				stats.WeldsPerformed += len(p.UsedRemainders) - 1
			}
			stats.RemaindersReused += len(p.UsedRemainders)
		}
	}

	return &modules.GroupSolution{
		GroupKey:     gopt.g.key,
		CuttingPlans: plans,
		TaskStats:    stats,
	}
}
