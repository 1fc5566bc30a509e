package optimizer

import (
	"testing"
	"time"

	"gitlab.com/ironspan/cutstock/modules"
	"gitlab.com/ironspan/cutstock/persist"
)

func testConstraints(wasteThreshold, w int) modules.OptimizationConstraints {
	return modules.OptimizationConstraints{WasteThreshold: wasteThreshold, MaxWeldingSegments: w, TimeLimitMS: 5000}
}

func newTestPacker(key modules.GroupKey, lengths []int, c modules.OptimizationConstraints) (*packer, *remainderPool) {
	rp := newRemainderPool(key)
	mp := newModuleStockPool(key, lengths)
	pk := newPacker(key, rp, mp, c, persist.NewDiscardLogger(), time.Now().Add(time.Minute))
	return pk, rp
}

// TestPackerScenarioA is spec.md §8 Scenario A: no welding, perfect fit.
func TestPackerScenarioA(t *testing.T) {
	key := mustKey()
	parts := []modules.DesignPart{{ID: "p1", Length: 6000, Quantity: 2, Specification: "S", CrossSection: 100}}
	pk, _ := newTestPacker(key, []int{12000}, testConstraints(100, 1))

	res := pk.run(newDemandList(parts))
	if res.unfulfilled != 0 || res.timedOut {
		t.Fatalf("expected full satisfaction, got unfulfilled=%d timedOut=%v", res.unfulfilled, res.timedOut)
	}
	if len(res.plans) != 1 {
		t.Fatalf("expected exactly one CuttingPlan, got %d", len(res.plans))
	}
	plan := res.plans[0]
	if plan.SourceType != modules.SourceModule || plan.SourceLength != 12000 {
		t.Fatalf("expected a fresh 12000 module bar, got %+v", plan)
	}
	if len(plan.Cuts) != 1 || plan.Cuts[0].Quantity != 2 || plan.Cuts[0].Length != 6000 {
		t.Fatalf("expected cuts=[{p1,6000,2}], got %+v", plan.Cuts)
	}
	if plan.Waste != 0 || len(plan.NewRemainders) != 0 {
		t.Fatalf("expected zero waste and no remainders, got waste=%d remainders=%d", plan.Waste, len(plan.NewRemainders))
	}
}

// TestPackerScenarioB uses the parts of spec.md §8 Scenario B (7000 and 4000
// against a 12000 catalog). The first-fit pass packs 7000 first and then
// 4000 into the same bar's 5000 leftover, so a single module plan results
// and its 1000 leftover finalizes as Real: material 12000, design 11000,
// real remainder 1000.
func TestPackerScenarioB(t *testing.T) {
	key := mustKey()
	parts := []modules.DesignPart{
		{ID: "p1", Length: 7000, Quantity: 1, Specification: "S", CrossSection: 100},
		{ID: "p2", Length: 4000, Quantity: 1, Specification: "S", CrossSection: 100},
	}
	pk, rp := newTestPacker(key, []int{12000}, testConstraints(100, 1))

	res := pk.run(newDemandList(parts))
	if res.unfulfilled != 0 {
		t.Fatalf("expected full satisfaction, got unfulfilled=%d", res.unfulfilled)
	}
	if len(res.plans) != 1 {
		t.Fatalf("expected one CuttingPlan (p2 fits in the first bar's leftover), got %d", len(res.plans))
	}

	first := res.plans[0]
	if first.SourceType != modules.SourceModule || first.SourceLength != 12000 {
		t.Fatalf("expected the plan to open a fresh 12000 module, got %+v", first)
	}
	if len(first.Cuts) != 2 || first.Cuts[0].DesignID != "p1" {
		t.Fatalf("expected the plan to pack p1 first (longest first), got %+v", first.Cuts)
	}
	if first.Cuts[1].DesignID != "p2" || first.Cuts[1].Length != 4000 {
		t.Fatalf("expected the plan to pack p2 second, got %+v", first.Cuts)
	}
	if len(first.NewRemainders) != 1 || first.NewRemainders[0].Length != 1000 {
		t.Fatalf("expected a 1000 leftover remainder, got %+v", first.NewRemainders)
	}
	if first.Waste != 0 {
		t.Fatalf("expected no immediate waste, got %d", first.Waste)
	}

	rp.finalize(100)
	if first.NewRemainders[0].Type != modules.Real {
		t.Fatalf("expected the 1000 leftover to finalize as Real, got %v", first.NewRemainders[0].Type)
	}
}

func TestDemandListSortsDescendingByLength(t *testing.T) {
	parts := []modules.DesignPart{
		{ID: "a", Length: 100, Quantity: 1},
		{ID: "b", Length: 500, Quantity: 1},
		{ID: "c", Length: 300, Quantity: 1},
	}
	dl := newDemandList(parts)
	var order []string
	for n := dl.head; n != nil; n = n.next {
		order = append(order, n.designID)
	}
	want := []string{"b", "c", "a"}
	for i, w := range want {
		if order[i] != w {
			t.Fatalf("got order %v, want %v", order, want)
		}
	}
}

func TestSimulateFirstFitDoesNotMutate(t *testing.T) {
	parts := []modules.DesignPart{
		{ID: "a", Length: 7000, Quantity: 1},
		{ID: "b", Length: 4000, Quantity: 1},
	}
	dl := newDemandList(parts)
	packed := dl.simulateFirstFit(12000)
	if packed != 11000 {
		t.Fatalf("expected 11000 packed, got %d", packed)
	}
	if dl.count != 2 {
		t.Fatalf("simulateFirstFit must not mutate the list, count is now %d", dl.count)
	}
}
