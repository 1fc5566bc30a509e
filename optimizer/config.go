// Package optimizer implements the cutting-stock optimization core:
// grouping, per-group FFD+lookahead packing, the pending/pseudo/real/waste
// remainder lifecycle, MW-CD local search, parallel fan-out across groups,
// and the deterministic statistics/consistency finalization pass.
package optimizer

import (
	"time"

	"gitlab.com/ironspan/cutstock/build"
)

// Config is the "central immutable source of defaults, legal ranges, data
// limits" spec.md §2 assigns to ConstraintConfig. It is constructed once via
// DefaultConfig and never mutated; every component that reads a limit reads
// it from here.
type Config struct {
	// MinWasteThreshold/MaxWasteThreshold bound the legal wasteThreshold.
	MinWasteThreshold int
	MaxWasteThreshold int

	// MinTimeLimitMS/MaxTimeLimitMS bound the legal timeLimit.
	MinTimeLimitMS int64
	MaxTimeLimitMS int64

	// MaxWeldingSegments is the hard ceiling on W a request may specify,
	// independent of the per-request value.
	MaxWeldingSegments int

	// MaxDesignParts/MaxModuleBars bound catalog size per request.
	MaxDesignParts int
	MaxModuleBars  int

	// MaxPartLength/MaxModuleLength bound any single row's length field.
	MaxPartLength   int
	MaxModuleLength int

	// WeldUnitMM is the fixed per-weld equivalent cost MWCDOptimizer's
	// benefit function charges against a swap (spec.md §4.6, "50 mm in
	// reference implementation").
	WeldUnitMM int

	// MWCDBenefitFloorMM is the minimum benefit a swap must clear to be
	// considered, and the convergence floor for the round loop.
	MWCDBenefitFloorMM int

	// MWCDMaxRounds bounds the MWCDOptimizer round loop (spec.md §4.6: 10).
	MWCDMaxRounds int

	// DefaultTimeLimit is what a request gets when it omits TimeLimitMS.
	// Selected per build release: generous in Standard, short in Testing so
	// property tests can exercise TIMEOUT_WARNING (Scenario E) without
	// actually waiting.
	DefaultTimeLimit time.Duration
}

// DefaultConfig returns the reference Config. The MWCD knobs default to the
// values spec.md §9 calls out by name so regression expectations carried
// over from the distilled spec keep holding.
func DefaultConfig() Config {
	return Config{
		MinWasteThreshold:  1,
		MaxWasteThreshold:  100000,
		MinTimeLimitMS:     1,
		MaxTimeLimitMS:     10 * 60 * 1000,
		MaxWeldingSegments: 8,
		MaxDesignParts:     50000,
		MaxModuleBars:      1000,
		MaxPartLength:      1000000,
		MaxModuleLength:    1000000,
		WeldUnitMM:         50,
		MWCDBenefitFloorMM: 50,
		MWCDMaxRounds:      10,
		DefaultTimeLimit: build.Select(build.Var{
			Standard: 30 * time.Second,
			Dev:      10 * time.Second,
			Testing:  25 * time.Millisecond,
		}).(time.Duration),
	}
}
