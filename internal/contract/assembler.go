package contract

import (
	"time"

	"github.com/wonny/aegis-wfs/internal/baseline"
	"github.com/wonny/aegis-wfs/internal/evaluation"
	"github.com/wonny/aegis-wfs/internal/series"
)

// AssemblerInput is everything the walk-forward producer hands over to
// compose one v1.0 result document.
type AssemblerInput struct {
	RunID     string
	Strategy  string
	Symbol    string
	Timeframe string
	Currency  string

	InitialCapital float64
	PositionSize   float64
	Cost           baseline.CostModel

	SeasonLabels []string
	OOSBySeason  [][]series.EquityPoint // per-season raw OOS equity
	PriceSeasons []baseline.PriceSeries // same universe, for the B&H overlay

	Estimate EstimateSection
	Windows  []WindowResult
	Raw      evaluation.RawMetrics
}

// Assemble composes a ResearchWFSResult the way the walk-forward pipeline
// does: stitch the OOS seasons, compute the same-cost buy-and-hold overlay,
// evaluate the raw metrics, then freeze everything under the version literal.
// ⭐ SSOT: 계약 문서 조립은 여기서만 (생산자/테스트 공용)
func Assemble(in AssemblerInput) *ResearchWFSResult {
	oos, diags := series.Stitch(in.OOSBySeason, in.SeasonLabels)
	bh, _ := baseline.ComputeSeasons(in.PriceSeasons, in.SeasonLabels, in.Cost, in.InitialCapital, in.PositionSize)

	evaluator := evaluation.NewEvaluator()
	verdict := VerdictFromEvaluation(evaluator.Evaluate(in.Raw))
	metrics := MetricsFromRaw(in.Raw)

	r := &ResearchWFSResult{
		Version: Version,
		Meta: &MetaSection{
			RunID:        in.RunID,
			Strategy:     in.Strategy,
			Symbol:       in.Symbol,
			Timeframe:    in.Timeframe,
			CreatedAtUTC: time.Now().UTC().Format(time.RFC3339),
		},
		Config: &ConfigSection{
			InitialCapital: Float(in.InitialCapital),
			PositionSize:   Float(in.PositionSize),
			Currency:       in.Currency,
			Cost: CostModel{
				CommissionPerTrade: Float(in.Cost.CommissionPerTrade),
				SlippageTicks:      Float(in.Cost.SlippageTicks),
				TickValue:          Float(in.Cost.TickValue),
				Multiplier:         Float(in.Cost.Multiplier),
			},
			SeasonLabels: in.SeasonLabels,
		},
		Estimate: &in.Estimate,
		Windows:  in.Windows,
		Series: &SeriesSection{
			OOSEquity:         oos,
			Baseline:          bh,
			StitchDiagnostics: diags,
		},
		Metrics:  &metrics,
		Verdict:  &verdict,
		Warnings: make([]string, 0),
	}
	r.Sanitize()
	return r
}
