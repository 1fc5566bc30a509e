package optimizer

import (
	"fmt"
	"testing"

	"gitlab.com/NebulousLabs/fastrand"
	"gitlab.com/ironspan/cutstock/modules"
	"gitlab.com/ironspan/cutstock/persist"
)

// TestOptimizeScenarioA is spec.md §8 Scenario A, exercised through the
// public entry point rather than the packer directly, so Validate,
// partitionGroups, the coordinator fan-out, finalize, statistics and the
// audit trail all run too.
func TestOptimizeScenarioA(t *testing.T) {
	req := modules.OptimizeRequest{
		DesignParts: []modules.DesignPart{
			{ID: "p1", Length: 6000, Quantity: 2, Specification: "S", CrossSection: 100},
		},
		ModuleBars:  []modules.ModuleBarInput{{ID: "m1", Length: 12000}},
		Constraints: modules.OptimizationConstraints{WasteThreshold: 100, MaxWeldingSegments: 1, TimeLimitMS: 5000},
	}

	result, err := Optimize(req, DefaultConfig(), persist.NewDiscardLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.TotalModuleUsed != 1 || result.TotalMaterial != 12000 {
		t.Fatalf("got totalModuleUsed=%d totalMaterial=%d, want 1/12000", result.TotalModuleUsed, result.TotalMaterial)
	}
	if result.TotalWaste != 0 || result.TotalRealRemainder != 0 {
		t.Fatalf("expected zero waste and zero real remainder, got waste=%d real=%d", result.TotalWaste, result.TotalRealRemainder)
	}
	if result.TotalLossRate != 0 {
		t.Fatalf("expected 0%% loss rate, got %v", result.TotalLossRate)
	}
	if !result.ProcessingStatus.IsCompleted || !result.ProcessingStatus.DataConsistencyChecked {
		t.Fatalf("expected a fully completed, consistency-checked result, got %+v", result.ProcessingStatus)
	}
}

// TestOptimizeScenarioFInfeasibleWelding is spec.md §8 Scenario F: a part
// that outgrows every module bar with welding disabled (W=1) must fail
// validation with two suggestions, and the optimizer must never run.
func TestOptimizeScenarioFInfeasibleWelding(t *testing.T) {
	req := modules.OptimizeRequest{
		DesignParts: []modules.DesignPart{
			{ID: "p1", Length: 20000, Quantity: 1, Specification: "S", CrossSection: 100},
		},
		ModuleBars:  []modules.ModuleBarInput{{ID: "m1", Length: 12000}},
		Constraints: modules.OptimizationConstraints{WasteThreshold: 100, MaxWeldingSegments: 1, TimeLimitMS: 5000},
	}

	result, err := Optimize(req, DefaultConfig(), persist.NewDiscardLogger())
	if err == nil {
		t.Fatal("expected an error for an infeasible welding constraint")
	}
	if result.ConstraintValidation.IsValid {
		t.Fatal("expected ConstraintValidation.IsValid=false")
	}
	if len(result.ConstraintValidation.Suggestions) != 2 {
		t.Fatalf("expected exactly two suggestions, got %v", result.ConstraintValidation.Suggestions)
	}
	if len(result.Solutions) != 0 {
		t.Fatal("expected the optimizer to never run when validation fails")
	}
}

// TestOptimizeScenarioETimeout is spec.md §8 Scenario E: a huge demand set
// with a 1ms time budget must still return success, report unfulfilled
// demand, and never violate the universal invariants that don't depend on
// demand satisfaction.
func TestOptimizeScenarioETimeout(t *testing.T) {
	var parts []modules.DesignPart
	for i := 0; i < 10000; i++ {
		parts = append(parts, modules.DesignPart{
			ID:            fmt.Sprintf("p%d", i),
			DisplayID:     "p",
			Length:        1000 + (i % 500),
			Quantity:      1,
			Specification: "S",
			CrossSection:  100,
		})
	}
	req := modules.OptimizeRequest{
		DesignParts: parts,
		ModuleBars:  []modules.ModuleBarInput{{ID: "m1", Length: 12000}},
		Constraints: modules.OptimizationConstraints{WasteThreshold: 100, MaxWeldingSegments: 1, TimeLimitMS: 1},
	}

	cfg := DefaultConfig()
	cfg.MaxDesignParts = 20000
	result, err := Optimize(req, cfg, persist.NewDiscardLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.CompleteStats.RequirementValidation.AllSatisfied {
		t.Fatal("expected allSatisfied=false under a 1ms time budget for 10000 demands")
	}

	for key, sol := range result.Solutions {
		for _, r := range collectRemainders(sol) {
			if r.Type == modules.Pending {
				t.Fatalf("group %s: remainder %s is still PENDING in the final result", key, r.ID)
			}
		}
		for _, plan := range sol.CuttingPlans {
			if plan.SourceType == modules.SourceRemainder && (len(plan.UsedRemainders) < 1 || len(plan.UsedRemainders) > req.Constraints.MaxWeldingSegments) {
				t.Fatalf("group %s: plan %s violates the welding bound with %d used remainders", key, plan.SourceID, len(plan.UsedRemainders))
			}
		}
	}
}

func collectRemainders(sol *modules.GroupSolution) []*modules.Remainder {
	var out []*modules.Remainder
	for _, p := range sol.CuttingPlans {
		out = append(out, p.NewRemainders...)
	}
	return out
}

// TestOptimizePropertyConservation runs a handful of randomized demand sets
// through the full pipeline and checks the conservation invariant
// (spec.md §8, invariant 1) always holds, regardless of the random shape of
// the input. fastrand is used instead of math/rand the same way the
// teacher's own tests seed random fixtures.
func TestOptimizePropertyConservation(t *testing.T) {
	for trial := 0; trial < 5; trial++ {
		n := 5 + fastrand.Intn(20)
		var parts []modules.DesignPart
		for i := 0; i < n; i++ {
			parts = append(parts, modules.DesignPart{
				ID:            string(rune('a' + i%26)),
				Length:        500 + fastrand.Intn(9000),
				Quantity:      1 + fastrand.Intn(4),
				Specification: "S",
				CrossSection:  100,
			})
		}
		req := modules.OptimizeRequest{
			DesignParts: parts,
			ModuleBars:  []modules.ModuleBarInput{{ID: "m1", Length: 12000}, {ID: "m2", Length: 6000}},
			Constraints: modules.OptimizationConstraints{WasteThreshold: 100, MaxWeldingSegments: 3, TimeLimitMS: 5000},
		}

		result, err := Optimize(req, DefaultConfig(), persist.NewDiscardLogger())
		if err != nil {
			t.Fatalf("trial %d: unexpected error: %v", trial, err)
		}
		if !result.CompleteStats.ConsistencyCheck.OK {
			t.Fatalf("trial %d: conservation violated: %v", trial, result.CompleteStats.ConsistencyCheck.Violations)
		}
	}
}
