package modules

// ModuleBarInput is one row of the input module-bar catalog (spec.md §6).
// It carries a Name in addition to the Length a ModuleStockPool actually
// cuts from, since the catalog is host-supplied and may label bars the
// optimizer itself never needs to distinguish beyond their length.
type ModuleBarInput struct {
	ID     string
	Name   string
	Length int
}

// OptimizeRequest is the sole input to the core (spec.md §6).
type OptimizeRequest struct {
	DesignParts []DesignPart
	ModuleBars  []ModuleBarInput
	Constraints OptimizationConstraints
}

// LossRateValidation reports whether the achieved overall loss rate met the
// request's advisory TargetLossRate. It never blocks the result from being
// returned; it is purely informational, per spec.md §9's note that
// targetLossRate is a reporting field.
type LossRateValidation struct {
	IsValid      bool
	ErrorMessage string
}

// ChartRow is one group's row of chart data (spec.md §4.10).
type ChartRow struct {
	GroupKey        string
	Specification   string
	LossRate        float64
	ModulesUsed     int
	Waste           int
	RealRemainder   int
	PseudoRemainder int
}

// RequirementRow compares one design id's produced vs. requested quantity.
type RequirementRow struct {
	DesignID string
	Spec     string
	Length   int
	Requested int
	Produced  int
	Satisfied bool
}

// RequirementValidation is the produced-vs-requested verification pass
// across every design id in the request.
type RequirementValidation struct {
	Rows         []RequirementRow
	AllSatisfied bool
}

// ModuleUsageRow is the per-length subtotal of a ModuleUsageStats.
type ModuleUsageRow struct {
	Length      int
	Count       int
	TotalLength int
	ByGroup     map[string]int
}

// ModuleUsageStats is the per-length module-usage breakdown (spec.md §4.10).
type ModuleUsageStats struct {
	ByLength   []ModuleUsageRow
	GrandTotal int
}

// SpecificationDetail is one group's full statistics row.
type SpecificationDetail struct {
	GroupKey           string
	Specification      string
	CrossSection       float64
	TotalMaterial      int
	DesignLengthTotal  int
	WasteTotal         int
	RealRemainderTotal int
	LossRate           float64
	Utilization        float64
	ModulesOpened      int
	WeldsPerformed     int
}

// RemainderStats summarizes surviving remainders across the whole result.
type RemainderStats struct {
	TotalReal   int
	TotalPseudo int
	TotalWaste  int
	RealByGroup map[string]int
}

// ConsistencyCheck is the result of the per-group conservation check from
// spec.md §4.10: totalMaterial = designLengthTotal + realRemainderTotal +
// wasteTotal, exactly, for every group.
type ConsistencyCheck struct {
	OK         bool
	Violations []string
}

// CompleteStats bundles every derived statistic ResultBuilder copies
// verbatim into OptimizeResult (spec.md §6).
type CompleteStats struct {
	Global                GlobalStats
	ChartData             []ChartRow
	RequirementValidation RequirementValidation
	ModuleUsageStats      ModuleUsageStats
	SpecificationDetails  []SpecificationDetail
	RemainderStats        RemainderStats
	ConsistencyCheck      ConsistencyCheck
	AuditRoot             string
	Concurrency           ConcurrencyReport
}

// ConcurrencyReport is the ParallelCoordinator's Monitor summary (spec.md
// §4.8): how many group tasks ran, how much wall/CPU time the fan-out
// consumed, and the resulting speedup/efficiency/rating.
type ConcurrencyReport struct {
	TaskCount  int
	WallTimeMS int64
	CPUTimeMS  int64
	Speedup    float64
	Efficiency float64
	Rating     string
}

// GlobalStats are the sums across every group.
type GlobalStats struct {
	TotalModuleUsed      int
	TotalMaterial        int
	TotalWaste           int
	TotalRealRemainder   int
	TotalPseudoRemainder int
	TotalLossRate        float64
	DesignLengthTotal    int
}

// ProcessingStatus are the flags ResultBuilder attaches to every result.
type ProcessingStatus struct {
	IsCompleted            bool
	RemaindersFinalized    bool
	ReadyForRendering      bool
	DataConsistencyChecked bool
}

// OptimizeResult is the sole output of the core (spec.md §6).
type OptimizeResult struct {
	Solutions            map[string]*GroupSolution
	TotalModuleUsed      int
	TotalMaterial        int
	TotalWaste           int
	TotalRealRemainder   int
	TotalPseudoRemainder int
	TotalLossRate        float64
	ExecutionTimeMS      int64
	LossRateValidation   LossRateValidation
	ConstraintValidation ConstraintValidation
	CompleteStats        CompleteStats
	ProcessingStatus     ProcessingStatus
}
