package optimizer

import (
	"fmt"

	"gitlab.com/ironspan/cutstock/modules"
)

// Validate runs the checks spec.md §4.1 assigns to ConstraintValidator, in
// order: non-empty catalogs and per-row bounds first (fatal), then welding
// feasibility (fatal only when W==1 and a part outgrows every module).
func Validate(req modules.OptimizeRequest, cfg Config) modules.ConstraintValidation {
	v := modules.ConstraintValidation{IsValid: true}

	if len(req.DesignParts) == 0 {
		v.IsValid = false
		v.Violations = append(v.Violations, modules.Violation{
			Code:    "EMPTY_DESIGN_PARTS",
			Message: "at least one design part is required",
		})
	}
	if len(req.ModuleBars) == 0 {
		v.IsValid = false
		v.Violations = append(v.Violations, modules.Violation{
			Code:    "EMPTY_MODULE_BARS",
			Message: "at least one module bar is required",
		})
	}
	if len(req.DesignParts) > cfg.MaxDesignParts {
		v.IsValid = false
		v.Violations = append(v.Violations, modules.Violation{
			Code:    "TOO_MANY_DESIGN_PARTS",
			Message: fmt.Sprintf("%d design parts exceeds the limit of %d", len(req.DesignParts), cfg.MaxDesignParts),
		})
	}
	if len(req.ModuleBars) > cfg.MaxModuleBars {
		v.IsValid = false
		v.Violations = append(v.Violations, modules.Violation{
			Code:    "TOO_MANY_MODULE_BARS",
			Message: fmt.Sprintf("%d module bars exceeds the limit of %d", len(req.ModuleBars), cfg.MaxModuleBars),
		})
	}

	for _, p := range req.DesignParts {
		if p.Length <= 0 || p.Length > cfg.MaxPartLength {
			v.IsValid = false
			v.Violations = append(v.Violations, modules.Violation{
				Code:    "INVALID_PART_LENGTH",
				Message: fmt.Sprintf("design part %q has invalid length %d", p.ID, p.Length),
				Fields:  []string{"designParts[" + p.ID + "].length"},
			})
		}
		if p.Quantity <= 0 {
			v.IsValid = false
			v.Violations = append(v.Violations, modules.Violation{
				Code:    "INVALID_PART_QUANTITY",
				Message: fmt.Sprintf("design part %q has invalid quantity %d", p.ID, p.Quantity),
				Fields:  []string{"designParts[" + p.ID + "].quantity"},
			})
		}
		if p.CrossSection <= 0 {
			v.IsValid = false
			v.Violations = append(v.Violations, modules.Violation{
				Code:    "INVALID_CROSS_SECTION",
				Message: fmt.Sprintf("design part %q has invalid crossSection %v", p.ID, p.CrossSection),
				Fields:  []string{"designParts[" + p.ID + "].crossSection"},
			})
		}
	}
	for _, m := range req.ModuleBars {
		if m.Length <= 0 || m.Length > cfg.MaxModuleLength {
			v.IsValid = false
			v.Violations = append(v.Violations, modules.Violation{
				Code:    "INVALID_MODULE_LENGTH",
				Message: fmt.Sprintf("module bar %q has invalid length %d", m.ID, m.Length),
				Fields:  []string{"moduleBars[" + m.ID + "].length"},
			})
		}
	}

	c := req.Constraints
	if c.WasteThreshold <= 0 || c.WasteThreshold < cfg.MinWasteThreshold || c.WasteThreshold > cfg.MaxWasteThreshold {
		v.IsValid = false
		v.Violations = append(v.Violations, modules.Violation{
			Code:    "INVALID_WASTE_THRESHOLD",
			Message: fmt.Sprintf("wasteThreshold must be positive and within [%d, %d]", cfg.MinWasteThreshold, cfg.MaxWasteThreshold),
		})
	}
	if c.TimeLimitMS <= 0 || c.TimeLimitMS < cfg.MinTimeLimitMS || c.TimeLimitMS > cfg.MaxTimeLimitMS {
		v.IsValid = false
		v.Violations = append(v.Violations, modules.Violation{
			Code:    "INVALID_TIME_LIMIT",
			Message: fmt.Sprintf("timeLimit must be positive and within [%d, %d] ms", cfg.MinTimeLimitMS, cfg.MaxTimeLimitMS),
		})
	}
	if c.MaxWeldingSegments < 1 || c.MaxWeldingSegments > cfg.MaxWeldingSegments {
		v.IsValid = false
		v.Violations = append(v.Violations, modules.Violation{
			Code:    "INVALID_WELDING_SEGMENTS",
			Message: fmt.Sprintf("maxWeldingSegments must be between 1 and %d", cfg.MaxWeldingSegments),
		})
	}

	// Stop here if the catalogs themselves are too broken to reason about
	// welding feasibility against.
	if !v.IsValid || len(req.ModuleBars) == 0 {
		return v
	}

	maxModuleLength := 0
	for _, m := range req.ModuleBars {
		if m.Length > maxModuleLength {
			maxModuleLength = m.Length
		}
	}

	if c.MaxWeldingSegments == 1 {
		var offending []modules.DesignPart
		longestOffender := 0
		for _, p := range req.DesignParts {
			if p.Length > maxModuleLength {
				offending = append(offending, p)
				if p.Length > longestOffender {
					longestOffender = p.Length
				}
			}
		}
		if len(offending) > 0 {
			ids := make([]string, 0, len(offending))
			for _, p := range offending {
				ids = append(ids, p.ID)
			}
			v.IsValid = false
			v.Violations = append(v.Violations, modules.Violation{
				Code:    "WELDING_INFEASIBLE",
				Message: fmt.Sprintf("%d design part(s) exceed the longest available module bar (%d mm) and welding is disabled", len(offending), maxModuleLength),
				Fields:  ids,
			})
			minSegments := (longestOffender + maxModuleLength - 1) / maxModuleLength
			if minSegments < 2 {
				minSegments = 2
			}
			v.Suggestions = append(v.Suggestions,
				fmt.Sprintf("add a module bar of length >= %d mm", longestOffender),
				fmt.Sprintf("raise maxWeldingSegments to at least %d", minSegments),
			)
		}
	}

	return v
}
