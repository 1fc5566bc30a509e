package optimizer

import (
	"io"
	"time"

	"gitlab.com/NebulousLabs/errors"
	"gitlab.com/ironspan/cutstock/modules"
	"gitlab.com/ironspan/cutstock/persist"
)

// Optimize is the sole entry point of the core (spec.md §1/§6): validate,
// partition into groups, run every group's packer+MWCD task in parallel,
// finalize the remainder lifecycle, derive statistics and the audit trail,
// and assemble the result. A VALIDATION_ERROR or CONSTRAINT_ERROR aborts
// before any group work starts, per spec.md §7 — every other failure mode
// (a timed-out group, a failed consistency check) is reported inside a
// successful result instead of as a Go error.
func Optimize(req modules.OptimizeRequest, cfg Config, log *persist.Logger) (*modules.OptimizeResult, error) {
	start := time.Now()
	if log == nil {
		log = persist.NewDiscardLogger()
	}

	if req.Constraints.TimeLimitMS <= 0 {
		req.Constraints.TimeLimitMS = cfg.DefaultTimeLimit.Milliseconds()
	}
	if req.Constraints.MaxWeldingSegments <= 0 {
		req.Constraints.MaxWeldingSegments = 1
	}

	cv := Validate(req, cfg)
	if !cv.IsValid {
		kind := modules.ErrValidation
		for _, v := range cv.Violations {
			if v.Code == "WELDING_INFEASIBLE" {
				kind = modules.ErrConstraint
			}
		}
		return &modules.OptimizeResult{ConstraintValidation: cv}, errors.AddContext(kind, "request failed validation")
	}

	groups := partitionGroups(req.DesignParts, req.ModuleBars)
	timeBudget := time.Duration(req.Constraints.TimeLimitMS) * time.Millisecond

	coord := newCoordinator(cfg, log)
	fanOutStart := time.Now()
	outcomes := coord.runAll(groups, req.Constraints, timeBudget)
	concurrency := coord.monitor.Report(time.Since(fanOutStart))

	finalize(outcomes, req.Constraints.WasteThreshold)

	stats := computeStatistics(req, outcomes)
	audit := computeAuditTrail(outcomes)

	elapsed := time.Since(start)
	result := buildResult(req, cv, outcomes, stats, audit, concurrency, elapsed)

	log.Println("concurrency:", concurrency.TaskCount, "tasks, speedup", concurrency.Speedup,
		"efficiency", concurrency.Efficiency, "rating", concurrency.Rating)
	if !stats.complete.ConsistencyCheck.OK {
		log.Println("WARN: consistency check failed for", len(stats.complete.ConsistencyCheck.Violations), "group(s)")
	}
	for _, o := range outcomes {
		if o.err != nil {
			log.Println("WARN: group", o.key.String(), "error:", o.err)
		}
	}

	return result, nil
}

// NewLogger is a small convenience wrapper so a host doesn't need to import
// persist directly just to get a writer-backed Logger for Optimize.
func NewLogger(w io.Writer, name string) (*persist.Logger, error) {
	return persist.NewLogger(w, name)
}
