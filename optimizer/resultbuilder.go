package optimizer

import (
	"fmt"
	"time"

	"gitlab.com/ironspan/cutstock/modules"
)

// buildResult assembles the final OptimizeResult (spec.md §4.11): one
// GroupSolution per group keyed the way the host expects to look them up,
// the global totals and loss-rate validation, and the ProcessingStatus
// flags that tell a host every stage actually ran. ResultBuilder never
// recomputes anything statistics.go or audit.go already derived.
func buildResult(req modules.OptimizeRequest, cv modules.ConstraintValidation, outcomes []groupOutcome, stats statistics, audit auditTrail, concurrency Report, elapsed time.Duration) *modules.OptimizeResult {
	solutions := make(map[string]*modules.GroupSolution, len(outcomes))
	for _, o := range outcomes {
		key := o.key.String()
		if o.solution == nil {
			o.solution = &modules.GroupSolution{GroupKey: o.key}
		}
		if o.err != nil {
			o.solution.Err = o.err.Error()
		}
		if root, ok := audit.groupRoots[key]; ok {
			o.solution.TaskStats.AuditRoot = root
		}
		solutions[key] = o.solution
	}

	stats.complete.AuditRoot = audit.overall
	stats.complete.Concurrency = modules.ConcurrencyReport{
		TaskCount:  concurrency.TaskCount,
		WallTimeMS: concurrency.WallTime.Milliseconds(),
		CPUTimeMS:  concurrency.CPUTime.Milliseconds(),
		Speedup:    concurrency.Speedup,
		Efficiency: concurrency.Efficiency,
		Rating:     string(concurrency.Rating),
	}

	lrv := modules.LossRateValidation{IsValid: true}
	if req.Constraints.TargetLossRate > 0 && stats.global.TotalLossRate > req.Constraints.TargetLossRate {
		lrv.IsValid = false
		lrv.ErrorMessage = fmt.Sprintf("achieved loss rate %.2f%% exceeds target %.2f%%",
			stats.global.TotalLossRate, req.Constraints.TargetLossRate)
	}

	return &modules.OptimizeResult{
		Solutions:            solutions,
		TotalModuleUsed:      stats.global.TotalModuleUsed,
		TotalMaterial:        stats.global.TotalMaterial,
		TotalWaste:           stats.global.TotalWaste,
		TotalRealRemainder:   stats.global.TotalRealRemainder,
		TotalPseudoRemainder: stats.global.TotalPseudoRemainder,
		TotalLossRate:        stats.global.TotalLossRate,
		ExecutionTimeMS:      elapsed.Milliseconds(),
		LossRateValidation:   lrv,
		ConstraintValidation: cv,
		CompleteStats:        stats.complete,
		ProcessingStatus: modules.ProcessingStatus{
			IsCompleted:            true,
			RemaindersFinalized:    true,
			ReadyForRendering:      true,
			DataConsistencyChecked: true,
		},
	}
}
