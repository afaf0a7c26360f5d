package admission

import "math"

// computeMarginalContribution attributes portfolio risk per allocated run.
//
// Volatility per run = sample standard deviation of its period returns
// (equity deltas); total risk = equal-weight mean of the individual
// volatilities (inter-run correlation deliberately ignored).
func computeMarginalContribution(runs []*loadedRun, allocated []string) MarginalContributionResult {
	result := MarginalContributionResult{
		Contributions: make(map[string]float64),
	}
	if len(allocated) == 0 {
		return result
	}

	allocatedSet := make(map[string]bool, len(allocated))
	for _, id := range allocated {
		allocatedSet[id] = true
	}

	vols := make(map[string]float64, len(allocated))
	volSum := 0.0
	for _, run := range runs {
		if !allocatedSet[run.ID()] {
			continue
		}
		vol := sampleStdDev(periodReturns(run))
		vols[run.ID()] = vol
		volSum += vol
	}

	n := float64(len(allocated))
	result.TotalRisk = volSum / n

	for id, vol := range vols {
		if result.TotalRisk == 0 {
			result.Contributions[id] = 1.0 / n
		} else {
			result.Contributions[id] = (vol / result.TotalRisk) / n
		}
	}

	if volSum > 0 {
		result.DiversificationBenefit = clampFloat(1-result.TotalRisk*n/volSum, 0, 1)
	}
	return result
}

// periodReturns extracts the run's equity deltas.
func periodReturns(run *loadedRun) []float64 {
	points := run.OOSEquity()
	if len(points) < 2 {
		return nil
	}
	returns := make([]float64, 0, len(points)-1)
	for i := 1; i < len(points); i++ {
		if !points[i].IsFinite() || !points[i-1].IsFinite() {
			continue
		}
		returns = append(returns, points[i].V-points[i-1].V)
	}
	return returns
}

// sampleStdDev computes the sample standard deviation (n-1 denominator).
// 데이터 2개 미만이면 0
func sampleStdDev(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}

	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(n)

	variance := 0.0
	for _, v := range values {
		diff := v - mean
		variance += diff * diff
	}
	variance /= float64(n - 1)

	return math.Sqrt(variance)
}
