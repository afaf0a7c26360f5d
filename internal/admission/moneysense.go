package admission

import "math"

// computeMoneySense denominates the averaged-curve drawdown in currency.
// pain index와 동일한 평균 곡선을 입력으로 사용 (계약)
func computeMoneySense(avg []float64, pain DynamicPainIndexResult, cfg PortfolioConfig) MoneySenseMetric {
	metric := MoneySenseMetric{
		MDDPercentage: pain.MaxDrawdownPct,
		MDDAbsolute:   pain.MaxDrawdownAbs,
		Currency:      cfg.Currency,
		CapitalAtRisk: cfg.TotalCapital * pain.MaxDrawdownPct / 100,
	}
	if len(avg) == 0 {
		return metric
	}

	first := avg[0]
	last := avg[len(avg)-1]
	totalReturn := 0.0
	if math.Abs(first) > 0 {
		totalReturn = (last - first) / math.Abs(first)
	}

	if pain.MaxDrawdownPct > 0 {
		metric.RiskAdjustedReturn = totalReturn / pain.MaxDrawdownPct
	}
	return metric
}
