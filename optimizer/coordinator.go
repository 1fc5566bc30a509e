package optimizer

import (
	"time"

	"gitlab.com/NebulousLabs/errors"
	"gitlab.com/NebulousLabs/threadgroup"
	"gitlab.com/ironspan/cutstock/modules"
	"gitlab.com/ironspan/cutstock/persist"
)

// coordinator implements the ParallelCoordinator of spec.md §4.8: one
// goroutine per group, gated by a threadgroup exactly the way
// modules/renter/workerpool.go gates its worker goroutines, joined back
// into a single ordered slice of GroupSolutions plus the per-group
// remainderPool (needed downstream by the finalizer).
type coordinator struct {
	tg      threadgroup.ThreadGroup
	cfg     Config
	log     *persist.Logger
	monitor *Monitor
}

func newCoordinator(cfg Config, log *persist.Logger) *coordinator {
	return &coordinator{cfg: cfg, log: log, monitor: NewMonitor()}
}

// groupOutcome is one group task's joined result: its GroupSolution, the
// remainderPool the finalizer still needs to walk, and an error if the task
// itself could not even be launched (coordinator shutting down) or
// panicked.
type groupOutcome struct {
	key        modules.GroupKey
	solution   *modules.GroupSolution
	remainders *remainderPool
	err        error
}

// runAll fans out one goroutine per group, each threadgroup-gated, and
// blocks until every one has returned or been isolated by a launch/panic
// error. Results come back in group-key order regardless of completion
// order, preserving the determinism property of spec.md §5.
func (c *coordinator) runAll(groups []*group, constraints modules.OptimizationConstraints, timeBudget time.Duration) []groupOutcome {
	c.monitor.Begin()
	outcomes := make([]groupOutcome, len(groups))
	done := make(chan int, len(groups))

	for i, g := range groups {
		i, g := i, g
		if err := c.tg.Add(); err != nil {
			outcomes[i] = groupOutcome{key: g.key, err: errors.AddContext(err, "coordinator shutting down")}
			done <- i
			continue
		}
		go func() {
			defer c.tg.Done()
			outcomes[i] = c.runOne(g, constraints, timeBudget)
			done <- i
		}()
	}

	for range groups {
		<-done
	}
	return outcomes
}

// runOne executes a single group task with panic isolation: a panicking
// group returns an empty GroupSolution with an INTERNAL_ERROR note instead
// of taking the whole run down, per spec.md §4.8's "failure of one group
// task is isolated".
func (c *coordinator) runOne(g *group, constraints modules.OptimizationConstraints, timeBudget time.Duration) (out groupOutcome) {
	out.key = g.key
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			out.solution = &modules.GroupSolution{GroupKey: g.key}
			out.err = errors.AddContext(modules.ErrInternal, "panic in group task")
			c.log.Println("ERROR: group task panicked", g.key.String(), r)
		}
		// CPU time isn't separately observable per goroutine without
		// runtime/pprof profiling; each task runs on its own goroutine with
		// no blocking I/O, so wall time is used as its own CPU-time stand-in.
		c.monitor.Record(g.key.String(), time.Since(start), time.Since(start))
	}()

	gopt := newGroupOptimizer(g, c.cfg, c.log)
	out.solution = gopt.run(constraints, timeBudget)
	out.remainders = gopt.remainders
	return out
}

// Stop drains any in-flight group goroutines. Used by a host that wants to
// shut the coordinator down early; the core itself never calls it.
func (c *coordinator) Stop() error {
	return c.tg.Stop()
}
