package baseline

import (
	"github.com/wonny/aegis-wfs/internal/series"
)

// PriceSeries is the raw price input for the buy-and-hold baseline.
// timestamps/close (및 open이 있으면 open도) 길이가 같아야 함
type PriceSeries struct {
	Timestamps []string  `json:"timestamps"` // ISO-8601
	Close      []float64 `json:"close"`
	Open       []float64 `json:"open,omitempty"` // optional
}

// Valid reports whether the array lengths are consistent.
func (ps PriceSeries) Valid() bool {
	if len(ps.Timestamps) != len(ps.Close) {
		return false
	}
	if len(ps.Open) > 0 && len(ps.Open) != len(ps.Close) {
		return false
	}
	return true
}

// CostModel describes the trading friction applied to the baseline
// ⭐ SSOT: 왕복 비용 계산은 여기서만
type CostModel struct {
	CommissionPerTrade float64 `json:"commission_per_trade"`
	SlippageTicks      float64 `json:"slippage_ticks"`
	TickValue          float64 `json:"tick_value"`
	Multiplier         float64 `json:"multiplier"`
}

// PerTradeCost returns the cost of a single fill (entry or exit).
func (cm CostModel) PerTradeCost() float64 {
	return cm.CommissionPerTrade + cm.SlippageTicks*cm.TickValue*cm.Multiplier
}

// RoundTripCost returns entry cost + exit cost.
func (cm CostModel) RoundTripCost() float64 {
	return cm.PerTradeCost() * 2
}

// ComputeRange produces a buy-and-hold equity curve over one price range.
// ⭐ SSOT: B&H 기준선 계산은 여기서만
//
// The curve is a linear interpolation from 0 to the net return percentage
// across the timestamps (index-proportional). This is a deliberate
// simplification for overlay against a strategy's OOS equity; it is not a
// simulation of intermediate price moves.
func ComputeRange(ps PriceSeries, cm CostModel, initialCapital, positionSize float64) []series.EquityPoint {
	if !ps.Valid() || len(ps.Close) < 2 || initialCapital == 0 {
		return []series.EquityPoint{}
	}

	entry := ps.Close[0]
	if len(ps.Open) > 0 {
		entry = ps.Open[0]
	}
	exit := ps.Close[len(ps.Close)-1]
	if entry == 0 {
		return []series.EquityPoint{}
	}

	priceReturnPct := (exit - entry) / entry * 100
	costPct := cm.RoundTripCost() * positionSize / initialCapital * 100
	netReturnPct := priceReturnPct - costPct

	n := len(ps.Timestamps)
	points := make([]series.EquityPoint, n)
	for i := 0; i < n; i++ {
		points[i] = series.EquityPoint{
			T: ps.Timestamps[i],
			V: netReturnPct * float64(i) / float64(n-1),
		}
	}
	return points
}

// ComputeSeasons computes the baseline independently per season and stitches
// the pieces so the result aligns timestamp-for-timestamp with a strategy's
// stitched OOS series.
func ComputeSeasons(seasons []PriceSeries, labels []string, cm CostModel, initialCapital, positionSize float64) ([]series.EquityPoint, []series.StitchDiagnostic) {
	bySeason := make([][]series.EquityPoint, len(seasons))
	for i, ps := range seasons {
		bySeason[i] = ComputeRange(ps, cm, initialCapital, positionSize)
	}
	return series.Stitch(bySeason, labels)
}
