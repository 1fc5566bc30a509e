// Package modules holds the data types shared across every stage of the
// cutting-stock optimizer: the catalog rows the host hands in, the
// Remainder state machine the RemainderPool and MWCDOptimizer mutate, and
// the CuttingPlan/GroupSolution shapes the optimizer emits. Keeping them in
// one leaf package (rather than inside optimizer itself) mirrors the
// teacher's own modules package: a dependency-free vocabulary that every
// other package imports, and that imports nothing of its own.
package modules

import "fmt"

// DesignPart is one row of the required-parts catalog. Quantity-expansion
// happens downstream in the Packer; DesignPart itself is immutable once
// constructed.
type DesignPart struct {
	ID            string
	DisplayID     string
	Length        int
	Quantity      int
	CrossSection  float64
	Specification string
}

// ModuleBar is a single stock bar minted by a ModuleStockPool. Module bars
// are never destroyed once opened; the pool only records that one more of a
// given nominal length has been used.
type ModuleBar struct {
	ID            string
	Length        int
	Specification string
	CrossSection  float64
}

// RemainderType is the tag in the Remainder state machine described in
// spec.md §3 and §9: pending during packing, pseudo once consumed by a
// later plan, real or waste once RemainderFinalizer runs. Transitions are
// pending->pseudo (use), pending->real|waste (finalize), and pseudo->pending
// (MWCDOptimizer revival) — pseudo, real and waste are otherwise terminal.
type RemainderType int

// The four Remainder states.
const (
	Pending RemainderType = iota
	Pseudo
	Real
	Waste
)

// String renders the lower-case wire spelling used throughout OptimizeResult
// ("pending"|"pseudo"|"real"|"waste").
func (t RemainderType) String() string {
	switch t {
	case Pending:
		return "pending"
	case Pseudo:
		return "pseudo"
	case Real:
		return "real"
	case Waste:
		return "waste"
	default:
		return "unknown"
	}
}

// MarshalJSON renders RemainderType using its wire spelling rather than the
// underlying int. Struct fields carry no json tags, so they serialize under
// their Go field names.
func (t RemainderType) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", t.String())), nil
}

// GroupKey is the composite partition key from spec.md §4.2:
// (specification, round(crossSection)). Parts and module bars only ever
// interact with other rows sharing the same GroupKey.
type GroupKey struct {
	Specification string
	CrossSection  int64
}

// String renders a stable, sortable label for the key, used both for the
// chart-data "specification label" and as the map key of
// OptimizeResult.Solutions.
func (k GroupKey) String() string {
	return fmt.Sprintf("%s_%d", k.Specification, k.CrossSection)
}

// Less orders two GroupKeys for the deterministic iteration order spec.md
// §5 and §9 require of every group-indexed map.
func (k GroupKey) Less(o GroupKey) bool {
	if k.Specification != o.Specification {
		return k.Specification < o.Specification
	}
	return k.CrossSection < o.CrossSection
}

// Remainder is one offcut, tracked from creation through its eventual
// classification as Real or Waste (or its consumption, which marks it
// Pseudo and freezes it in place for audit purposes).
type Remainder struct {
	ID            string
	Length        int
	GroupKey      GroupKey
	SourceChain   []string
	OriginalLength int
	CreatedAt     int64
	Type          RemainderType
	IsConsumed    bool
	ConsumedAt    int64
	// ParentID is the single immediate ancestor (module bar id, remainder
	// id, or compound weld id) this remainder's leftover was cut from. It
	// is the last entry of SourceChain and is carried as its own field because
	// the wire format (spec.md §6) exposes it directly as Remainder.parentId.
	ParentID string
}

// Cut is one (designId, length, quantity) line of a CuttingPlan.
type Cut struct {
	DesignID string
	Length   int
	Quantity int
}

// SourceType distinguishes a CuttingPlan opened against a fresh module bar
// from one opened against a remainder or welded remainder combination.
type SourceType int

// The two CuttingPlan source kinds.
const (
	SourceModule SourceType = iota
	SourceRemainder
)

// String renders the wire spelling ("module"|"remainder").
func (s SourceType) String() string {
	if s == SourceModule {
		return "module"
	}
	return "remainder"
}

// MarshalJSON renders SourceType using its wire spelling.
func (s SourceType) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", s.String())), nil
}

// CuttingPlan records how one source bar was sliced: a module bar, a single
// reused remainder, or a welded combination of 2..W remainders (SourceID is
// the compound id "a+b+c" in the welded case).
type CuttingPlan struct {
	GroupKey       GroupKey
	SourceType     SourceType
	SourceID       string
	SourceLength   int
	ModuleType     string
	ModuleLength   int
	Cuts           []Cut
	NewRemainders  []*Remainder
	UsedRemainders []*Remainder
	Waste          int
}

// TaskStats is the per-group accumulator spec.md §3 leaves implicit inside
// GroupSolution. Promoted to its own type because both GroupOptimizer (which
// fills it in) and StatisticsCalculator/ResultBuilder (which read it) need a
// stable shape to pass around, the same way modules.WorkerStatus is a flat
// snapshot read without locking the worker that produced it.
type TaskStats struct {
	CutCount          int
	ModulesOpened     int
	ModuleLength      int
	WeldsPerformed    int
	RemaindersReused  int
	ElapsedMS         int64
	Unfulfilled       int
	AuditRoot         string
}

// GroupSolution is one group's complete output: its ordered CuttingPlans and
// the TaskStats accumulated while producing them.
type GroupSolution struct {
	GroupKey     GroupKey
	CuttingPlans []*CuttingPlan
	TaskStats    TaskStats
	Err          string
}

// OptimizationConstraints are the per-run knobs from spec.md §3: the waste
// threshold below which an offcut is scrap, the advisory target loss rate,
// the soft per-group time budget, and the welding budget W.
type OptimizationConstraints struct {
	WasteThreshold     int
	TargetLossRate     float64
	TimeLimitMS        int64
	MaxWeldingSegments int
}
