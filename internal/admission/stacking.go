package admission

import "fmt"

// stackPortfolio decides which loaded runs get an allocation and sizes the
// equal-weight risk budget.
//
// Exclusion rules, in order:
//  1. any run that appears as the FIRST-named id of a correlation violation
//     (asymmetric on purpose — carried over for behavioral parity with the
//     source engine; run_id2 of a pair is never excluded by this rule)
//  2. any run whose first evaluation window's OOS net profit is <= 0
//
// Remaining runs are allocated 1/N each.
func stackPortfolio(runs []*loadedRun, gate CorrelationGateResult, cfg PortfolioConfig) (PortfolioStackingResult, map[string]string) {
	excluded := make(map[string]string) // run_id -> rejection reason

	for _, v := range gate.Violations {
		if _, done := excluded[v.RunID1]; !done {
			excluded[v.RunID1] = fmt.Sprintf(
				"correlation %.4f with %s exceeds threshold %.2f",
				v.Correlation, v.RunID2, gate.Threshold)
		}
	}

	for _, run := range runs {
		if _, done := excluded[run.ID()]; done {
			continue
		}
		if np := run.FirstWindowOOSNetProfit(); np <= 0 {
			excluded[run.ID()] = fmt.Sprintf("first window OOS net profit %.2f is not positive", np)
		}
	}

	result := PortfolioStackingResult{
		AllocatedRunIDs:   make([]string, 0, len(runs)),
		AllocationWeights: make(map[string]float64),
		LotsPerRun:        make(map[string]int),
		RiskBudgetTotal:   cfg.TotalCapital * cfg.TargetVolatility,
	}

	for _, run := range runs {
		if _, done := excluded[run.ID()]; done {
			continue
		}
		result.AllocatedRunIDs = append(result.AllocatedRunIDs, run.ID())
	}

	n := len(result.AllocatedRunIDs)
	if n > 0 {
		weight := 1.0 / float64(n)
		lots := clampInt(1, cfg.MinLots, cfg.MaxLots)
		for _, id := range result.AllocatedRunIDs {
			result.AllocationWeights[id] = weight
			result.LotsPerRun[id] = lots
		}
	}
	result.RiskBudgetUsed = float64(n) * cfg.RiskBudgetPerStrategy

	return result, excluded
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
