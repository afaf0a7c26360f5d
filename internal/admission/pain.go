package admission

import "math"

// averageAllocatedCurve builds the index-aligned average OOS equity curve
// across the allocated runs. Positions beyond a series' own length are
// skipped, not zero-filled (소스 엔진과 동일한 positional 평균 — 타임스탬프
// 조인이 아님).
func averageAllocatedCurve(runs []*loadedRun, allocated []string) []float64 {
	allocatedSet := make(map[string]bool, len(allocated))
	for _, id := range allocated {
		allocatedSet[id] = true
	}

	maxLen := 0
	curves := make([][]float64, 0, len(allocated))
	for _, run := range runs {
		if !allocatedSet[run.ID()] {
			continue
		}
		points := run.OOSEquity()
		values := make([]float64, len(points))
		for i, p := range points {
			values[i] = p.V
		}
		curves = append(curves, values)
		if len(values) > maxLen {
			maxLen = len(values)
		}
	}

	avg := make([]float64, maxLen)
	for i := 0; i < maxLen; i++ {
		sum, count := 0.0, 0
		for _, curve := range curves {
			// 비정상 값(직렬화 시 null이었던 포인트)은 평균에서 제외
			if i < len(curve) && !math.IsNaN(curve[i]) && !math.IsInf(curve[i], 0) {
				sum += curve[i]
				count++
			}
		}
		if count > 0 {
			avg[i] = sum / float64(count)
		}
	}
	return avg
}

// computePainIndex derives drawdown-severity analytics from the averaged
// equity curve. 빈 곡선(배분 0건)이면 전부 0.
func computePainIndex(avg []float64) DynamicPainIndexResult {
	result := DynamicPainIndexResult{}
	if len(avg) == 0 {
		return result
	}

	peak := avg[0]
	allTimeMax := avg[0]
	painSum := 0.0
	for _, v := range avg {
		if v > peak {
			peak = v
		}
		if v > allTimeMax {
			allTimeMax = v
		}

		ddAbs := peak - v
		if ddAbs > result.MaxDrawdownAbs {
			result.MaxDrawdownAbs = ddAbs
		}
		if peak > 0 {
			dd := ddAbs / peak
			painSum += dd
			if dd*100 > result.MaxDrawdownPct {
				result.MaxDrawdownPct = dd * 100
			}
		}
	}
	result.PainIndex = painSum / float64(len(avg))

	// underwater: 역대 최고점의 95% 아래에 머문 포인트 수
	for _, v := range avg {
		if v < 0.95*allTimeMax {
			result.UnderwaterDays++
		}
	}

	result.SeverityScore = math.Min(100, result.PainIndex*100+result.MaxDrawdownPct)
	result.RecoveryTimeDays = math.Min(365, float64(result.UnderwaterDays)*1.5)
	return result
}
