package optimizer

import (
	"fmt"
	"math"
	"sort"

	"gitlab.com/ironspan/cutstock/modules"
)

// statistics is everything StatisticsCalculator derives, handed whole to
// ResultBuilder (spec.md §4.10 / §4.11 — ResultBuilder copies this
// verbatim, it never recomputes).
type statistics struct {
	complete modules.CompleteStats
	global   modules.GlobalStats
}

// computeStatistics derives per-group and global totals, the loss rate,
// chart data, module-usage breakdown, requirement verification, and runs
// the consistency check, in the group-key-sorted order spec.md §5 requires
// for determinism.
func computeStatistics(req modules.OptimizeRequest, outcomes []groupOutcome) statistics {
	sorted := append([]groupOutcome(nil), outcomes...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].key.Less(sorted[j].key) })

	var global modules.GlobalStats
	var chart []modules.ChartRow
	var details []modules.SpecificationDetail
	var consistencyViolations []string

	moduleUsage := map[int]*modules.ModuleUsageRow{}
	var moduleLengths []int

	remStats := modules.RemainderStats{RealByGroup: map[string]int{}}
	producedByDesign := map[string]int{}

	for _, o := range sorted {
		if o.solution == nil {
			continue
		}
		groupKeyStr := o.key.String()

		totalMaterial := 0
		designLengthTotal := 0
		wasteTotal := 0
		realRemainderTotal := 0
		pseudoRemainderTotal := 0
		modulesOpened := o.solution.TaskStats.ModulesOpened
		weldsPerformed := o.solution.TaskStats.WeldsPerformed

		for _, plan := range o.solution.CuttingPlans {
			if plan.SourceType == modules.SourceModule {
				totalMaterial += plan.SourceLength
				row, ok := moduleUsage[plan.SourceLength]
				if !ok {
					row = &modules.ModuleUsageRow{Length: plan.SourceLength, ByGroup: map[string]int{}}
					moduleUsage[plan.SourceLength] = row
					moduleLengths = append(moduleLengths, plan.SourceLength)
				}
				row.Count++
				row.TotalLength += plan.SourceLength
				row.ByGroup[groupKeyStr]++
			}
			wasteTotal += plan.Waste
			for _, c := range plan.Cuts {
				designLengthTotal += c.Length * c.Quantity
				producedByDesign[c.DesignID] += c.Quantity
			}
			for _, nr := range plan.NewRemainders {
				switch nr.Type {
				case modules.Real:
					realRemainderTotal += nr.Length
				case modules.Waste:
					wasteTotal += nr.Length
				}
			}
			for _, ur := range plan.UsedRemainders {
				if ur.Type == modules.Pseudo {
					pseudoRemainderTotal += ur.Length
				}
			}
		}

		lossRate := 0.0
		if totalMaterial > 0 {
			lossRate = round2(float64(wasteTotal+realRemainderTotal) / float64(totalMaterial) * 100)
		}

		if totalMaterial != designLengthTotal+realRemainderTotal+wasteTotal {
			consistencyViolations = append(consistencyViolations, fmt.Sprintf(
				"group %s: totalMaterial=%d != designLength=%d + realRemainder=%d + waste=%d",
				groupKeyStr, totalMaterial, designLengthTotal, realRemainderTotal, wasteTotal))
		}

		global.TotalModuleUsed += modulesOpened
		global.TotalMaterial += totalMaterial
		global.TotalWaste += wasteTotal
		global.TotalRealRemainder += realRemainderTotal
		global.TotalPseudoRemainder += pseudoRemainderTotal
		global.DesignLengthTotal += designLengthTotal

		remStats.TotalReal += realRemainderTotal
		remStats.TotalPseudo += pseudoRemainderTotal
		remStats.TotalWaste += wasteTotal
		remStats.RealByGroup[groupKeyStr] = realRemainderTotal

		chart = append(chart, modules.ChartRow{
			GroupKey:        groupKeyStr,
			Specification:   o.key.Specification,
			LossRate:        lossRate,
			ModulesUsed:     modulesOpened,
			Waste:           wasteTotal,
			RealRemainder:   realRemainderTotal,
			PseudoRemainder: pseudoRemainderTotal,
		})

		details = append(details, modules.SpecificationDetail{
			GroupKey:           groupKeyStr,
			Specification:      o.key.Specification,
			CrossSection:       float64(o.key.CrossSection),
			TotalMaterial:      totalMaterial,
			DesignLengthTotal:  designLengthTotal,
			WasteTotal:         wasteTotal,
			RealRemainderTotal: realRemainderTotal,
			LossRate:           lossRate,
			Utilization:        round2(100 - lossRate),
			ModulesOpened:      modulesOpened,
			WeldsPerformed:     weldsPerformed,
		})
	}

	if global.TotalMaterial > 0 {
		global.TotalLossRate = round2(float64(global.TotalWaste+global.TotalRealRemainder) / float64(global.TotalMaterial) * 100)
	}

	sort.Ints(moduleLengths)
	var usageRows []modules.ModuleUsageRow
	grand := 0
	for _, l := range moduleLengths {
		row := *moduleUsage[l]
		usageRows = append(usageRows, row)
		grand += row.TotalLength
	}

	var reqRows []modules.RequirementRow
	allSatisfied := true
	for _, p := range req.DesignParts {
		produced := producedByDesign[p.ID]
		satisfied := produced >= p.Quantity
		if !satisfied {
			allSatisfied = false
		}
		reqRows = append(reqRows, modules.RequirementRow{
			DesignID:  p.ID,
			Spec:      p.Specification,
			Length:    p.Length,
			Requested: p.Quantity,
			Produced:  produced,
			Satisfied: satisfied,
		})
	}

	complete := modules.CompleteStats{
		Global:    global,
		ChartData: chart,
		RequirementValidation: modules.RequirementValidation{
			Rows:         reqRows,
			AllSatisfied: allSatisfied,
		},
		ModuleUsageStats: modules.ModuleUsageStats{
			ByLength:   usageRows,
			GrandTotal: grand,
		},
		SpecificationDetails: details,
		RemainderStats:       remStats,
		ConsistencyCheck: modules.ConsistencyCheck{
			OK:         len(consistencyViolations) == 0,
			Violations: consistencyViolations,
		},
	}

	return statistics{complete: complete, global: global}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
