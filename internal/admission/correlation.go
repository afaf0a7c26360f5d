package admission

import (
	"math"
	"sort"

	"github.com/wonny/aegis-wfs/internal/series"
)

// alignByTimestamp intersects two equity series on their shared timestamps,
// sorted ascending, and returns the paired values.
func alignByTimestamp(a, b []series.EquityPoint) ([]float64, []float64) {
	byTime := make(map[string]float64, len(a))
	for _, p := range a {
		if p.IsFinite() {
			byTime[p.T] = p.V
		}
	}

	shared := make([]string, 0)
	bVals := make(map[string]float64, len(b))
	for _, p := range b {
		if !p.IsFinite() {
			continue
		}
		if _, ok := byTime[p.T]; ok {
			if _, dup := bVals[p.T]; !dup {
				shared = append(shared, p.T)
			}
			bVals[p.T] = p.V
		}
	}
	sort.Strings(shared)

	xs := make([]float64, len(shared))
	ys := make([]float64, len(shared))
	for i, t := range shared {
		xs[i] = byTime[t]
		ys[i] = bVals[t]
	}
	return xs, ys
}

// pearson computes the Pearson correlation coefficient clamped to [-1,1].
// 분산 0(퇴화 입력)이면 NaN이 아니라 0.0
func pearson(xs, ys []float64) float64 {
	n := len(xs)
	if n < 2 || n != len(ys) {
		return 0.0
	}

	meanX, meanY := 0.0, 0.0
	for i := 0; i < n; i++ {
		meanX += xs[i]
		meanY += ys[i]
	}
	meanX /= float64(n)
	meanY /= float64(n)

	cov, varX, varY := 0.0, 0.0, 0.0
	for i := 0; i < n; i++ {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return 0.0
	}

	r := cov / math.Sqrt(varX*varY)
	return clampFloat(r, -1, 1)
}

// checkCorrelationGate runs the pairwise gate over the loaded runs.
// 쌍은 로드 순서 기준 (i<j) — 결과는 입력 순서에 대해 결정적
func checkCorrelationGate(runs []*loadedRun, threshold float64) CorrelationGateResult {
	result := CorrelationGateResult{
		Passed:     true,
		Violations: make([]CorrelationViolation, 0),
		Threshold:  threshold,
	}

	for i := 0; i < len(runs); i++ {
		for j := i + 1; j < len(runs); j++ {
			result.TotalPairs++

			xs, ys := alignByTimestamp(runs[i].OOSEquity(), runs[j].OOSEquity())
			r := 0.0
			if len(xs) >= 2 {
				r = pearson(xs, ys)
			}

			if math.Abs(r) > threshold {
				result.Violations = append(result.Violations, CorrelationViolation{
					RunID1:      runs[i].ID(),
					RunID2:      runs[j].ID(),
					Correlation: r,
				})
			}
		}
	}

	result.ViolatingPairs = len(result.Violations)
	result.Passed = result.ViolatingPairs == 0
	return result
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
