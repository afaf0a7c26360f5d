package contract

import (
	"encoding/json"
	"fmt"

	"github.com/wonny/aegis-wfs/internal/evaluation"
	"github.com/wonny/aegis-wfs/internal/series"
)

// Version is the schema version every producer must emit and every consumer
// must check. 버전 리터럴 상수 — 절대 동적으로 만들지 않음
const Version = "1.0"

// ResearchWFSResult is the versioned contract a walk-forward run emits.
// ⭐ SSOT: 상위 파이프라인(생산자)과 승인 엔진(소비자)이 합의하는 유일한 스키마
//
// All nested sections are required; Parse rejects a document that omits any
// of them instead of silently defaulting.
type ResearchWFSResult struct {
	Version  string           `json:"version"`
	Meta     *MetaSection     `json:"meta"`
	Config   *ConfigSection   `json:"config"`
	Estimate *EstimateSection `json:"estimate"`
	Windows  []WindowResult   `json:"windows"`
	Series   *SeriesSection   `json:"series"`
	Metrics  *MetricsSection  `json:"metrics"`
	Verdict  *VerdictSection  `json:"verdict"`
	Warnings []string         `json:"warnings"`
}

// MetaSection identifies the run.
type MetaSection struct {
	RunID        string `json:"run_id"`
	Strategy     string `json:"strategy"`
	Symbol       string `json:"symbol"`
	Timeframe    string `json:"timeframe"`
	CreatedAtUTC string `json:"created_at_utc"` // ISO-8601
}

// ConfigSection records the research configuration the run used.
type ConfigSection struct {
	InitialCapital Float     `json:"initial_capital"`
	PositionSize   Float     `json:"position_size"`
	Currency       string    `json:"currency"`
	Cost           CostModel `json:"cost_model"`
	SeasonLabels   []string  `json:"season_labels"`
}

// CostModel is the wire form of the trading friction assumptions.
type CostModel struct {
	CommissionPerTrade Float `json:"commission_per_trade"`
	SlippageTicks      Float `json:"slippage_ticks"`
	TickValue          Float `json:"tick_value"`
	Multiplier         Float `json:"multiplier"`
}

// EstimateSection records the research scope estimated before the run.
type EstimateSection struct {
	WindowCount       int   `json:"window_count"`
	ParamCombinations int   `json:"param_combinations"`
	TotalBars         int   `json:"total_bars"`
	EstimatedDuration Float `json:"estimated_duration_sec"`
}

// WindowResult is one season's IS/OOS outcome. Immutable once written.
// Passed의 외부 키는 "pass" (예약어라 내부 이름과 다른 유일한 필드)
type WindowResult struct {
	Season      string           `json:"season"`
	ISStart     string           `json:"is_start"`
	ISEnd       string           `json:"is_end"`
	OOSStart    string           `json:"oos_start"`
	OOSEnd      string           `json:"oos_end"`
	BestParams  map[string]Float `json:"best_params"`
	ISMetrics   WindowMetrics    `json:"is_metrics"`
	OOSMetrics  WindowMetrics    `json:"oos_metrics"`
	Passed      bool             `json:"pass"`
	FailReasons []string         `json:"fail_reasons"`
	Warnings    []string         `json:"warnings"`
}

// WindowMetrics is the closed set of per-window performance numbers.
// 열린 dict 대신 알려진 키만 갖는 구조체 (경계에서 타입 검증)
type WindowMetrics struct {
	NetProfit    Float `json:"net_profit"`
	GrossProfit  Float `json:"gross_profit"`
	GrossLoss    Float `json:"gross_loss"`
	MaxDrawdown  Float `json:"max_drawdown"`
	Trades       int   `json:"trades"`
	WinRate      Float `json:"win_rate"`
	ProfitFactor Float `json:"profit_factor"`
}

// SeriesSection carries the stitched OOS equity, the same-range buy-and-hold
// baseline and the per-season stitch diagnostics.
type SeriesSection struct {
	OOSEquity         []series.EquityPoint      `json:"oos_equity"`
	Baseline          []series.EquityPoint      `json:"baseline"`
	StitchDiagnostics []series.StitchDiagnostic `json:"stitch_diagnostics"`
}

// MetricsSection is the wire form of the aggregated walk-forward metrics.
type MetricsSection struct {
	RF                Float `json:"rf"`
	WFE               Float `json:"wfe"`
	ECR               Float `json:"ecr"`
	Trades            int   `json:"trades"`
	PassRate          Float `json:"pass_rate"`
	UlcerIndex        Float `json:"ulcer_index"`
	MaxUnderwaterDays int   `json:"max_underwater_days"`
}

// Raw converts the wire metrics to the evaluator's input type.
func (m MetricsSection) Raw() evaluation.RawMetrics {
	return evaluation.RawMetrics{
		RF:                float64(m.RF),
		WFE:               float64(m.WFE),
		ECR:               float64(m.ECR),
		Trades:            m.Trades,
		PassRate:          float64(m.PassRate),
		UlcerIndex:        float64(m.UlcerIndex),
		MaxUnderwaterDays: m.MaxUnderwaterDays,
	}
}

// MetricsFromRaw converts the evaluator's input type to its wire form.
func MetricsFromRaw(raw evaluation.RawMetrics) MetricsSection {
	return MetricsSection{
		RF:                Float(raw.RF),
		WFE:               Float(raw.WFE),
		ECR:               Float(raw.ECR),
		Trades:            raw.Trades,
		PassRate:          Float(raw.PassRate),
		UlcerIndex:        Float(raw.UlcerIndex),
		MaxUnderwaterDays: raw.MaxUnderwaterDays,
	}
}

// VerdictSection is the wire form of the evaluation verdict.
type VerdictSection struct {
	HardGatesTriggered []string      `json:"hard_gates_triggered"`
	Scores             ScoresSection `json:"scores"`
	Grade              string        `json:"grade"`
	IsTradable         bool          `json:"is_tradable"`
	Summary            string        `json:"summary"`
}

// ScoresSection is the wire form of the five-dimension scores.
type ScoresSection struct {
	Profit        Float `json:"profit"`
	Stability     Float `json:"stability"`
	Robustness    Float `json:"robustness"`
	Reliability   Float `json:"reliability"`
	Armor         Float `json:"armor"`
	TotalWeighted Float `json:"total_weighted"`
}

// VerdictFromEvaluation converts an evaluator verdict to its wire form.
func VerdictFromEvaluation(ev evaluation.EvaluationResult) VerdictSection {
	return VerdictSection{
		HardGatesTriggered: ev.HardGatesTriggered,
		Scores: ScoresSection{
			Profit:        Float(ev.Scores.Profit),
			Stability:     Float(ev.Scores.Stability),
			Robustness:    Float(ev.Scores.Robustness),
			Reliability:   Float(ev.Scores.Reliability),
			Armor:         Float(ev.Scores.Armor),
			TotalWeighted: Float(ev.Scores.TotalWeighted),
		},
		Grade:      ev.Grade,
		IsTradable: ev.IsTradable,
		Summary:    ev.Summary,
	}
}

// Validate checks the version literal and the presence of every required
// section. 누락 섹션은 조용히 기본값으로 채우지 않고 거부
func (r *ResearchWFSResult) Validate() error {
	if r.Version != Version {
		return fmt.Errorf("%w: version %q, want %q", ErrSchemaMismatch, r.Version, Version)
	}
	if r.Meta == nil {
		return fmt.Errorf("%w: missing section meta", ErrSchemaMismatch)
	}
	if r.Meta.RunID == "" {
		return fmt.Errorf("%w: meta.run_id is required", ErrSchemaMismatch)
	}
	if r.Config == nil {
		return fmt.Errorf("%w: missing section config", ErrSchemaMismatch)
	}
	if r.Estimate == nil {
		return fmt.Errorf("%w: missing section estimate", ErrSchemaMismatch)
	}
	if len(r.Windows) == 0 {
		return fmt.Errorf("%w: missing section windows", ErrSchemaMismatch)
	}
	if r.Series == nil {
		return fmt.Errorf("%w: missing section series", ErrSchemaMismatch)
	}
	if r.Metrics == nil {
		return fmt.Errorf("%w: missing section metrics", ErrSchemaMismatch)
	}
	if r.Verdict == nil {
		return fmt.Errorf("%w: missing section verdict", ErrSchemaMismatch)
	}
	return nil
}

// Sanitize scans every float field for NaN/Infinity, appends one warning per
// finding and returns the new warnings. The wire types already serialize
// non-finite values as null; this pass only makes the conversion auditable.
// 중복 호출에 안전 — 이미 기록된 경고는 다시 추가하지 않음
func (r *ResearchWFSResult) Sanitize() []string {
	found := make([]string, 0)
	note := func(path string, f Float) {
		if !f.IsFinite() {
			found = append(found, fmt.Sprintf("non-finite value at %s converted to null", path))
		}
	}

	if r.Config != nil {
		note("config.initial_capital", r.Config.InitialCapital)
		note("config.position_size", r.Config.PositionSize)
	}
	for i, w := range r.Windows {
		for k, v := range w.BestParams {
			note(fmt.Sprintf("windows[%d].best_params.%s", i, k), v)
		}
		noteWindowMetrics(&found, fmt.Sprintf("windows[%d].is_metrics", i), w.ISMetrics)
		noteWindowMetrics(&found, fmt.Sprintf("windows[%d].oos_metrics", i), w.OOSMetrics)
	}
	if r.Series != nil {
		for i, p := range r.Series.OOSEquity {
			if !p.IsFinite() {
				found = append(found, fmt.Sprintf("non-finite value at series.oos_equity[%d] converted to null", i))
			}
		}
		for i, p := range r.Series.Baseline {
			if !p.IsFinite() {
				found = append(found, fmt.Sprintf("non-finite value at series.baseline[%d] converted to null", i))
			}
		}
	}
	if r.Metrics != nil {
		note("metrics.rf", r.Metrics.RF)
		note("metrics.wfe", r.Metrics.WFE)
		note("metrics.ecr", r.Metrics.ECR)
		note("metrics.pass_rate", r.Metrics.PassRate)
		note("metrics.ulcer_index", r.Metrics.UlcerIndex)
	}

	existing := make(map[string]bool, len(r.Warnings))
	for _, w := range r.Warnings {
		existing[w] = true
	}
	fresh := found[:0]
	for _, w := range found {
		if !existing[w] {
			fresh = append(fresh, w)
		}
	}
	r.Warnings = append(r.Warnings, fresh...)
	return fresh
}

func noteWindowMetrics(found *[]string, prefix string, m WindowMetrics) {
	check := func(name string, f Float) {
		if !f.IsFinite() {
			*found = append(*found, fmt.Sprintf("non-finite value at %s.%s converted to null", prefix, name))
		}
	}
	check("net_profit", m.NetProfit)
	check("gross_profit", m.GrossProfit)
	check("gross_loss", m.GrossLoss)
	check("max_drawdown", m.MaxDrawdown)
	check("win_rate", m.WinRate)
	check("profit_factor", m.ProfitFactor)
}

// Parse deserializes and validates a ResearchWFSResult document.
func Parse(data []byte) (*ResearchWFSResult, error) {
	var r ResearchWFSResult
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadJSON, err)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// Marshal serializes a sanitized ResearchWFSResult with stable indentation.
func (r *ResearchWFSResult) Marshal() ([]byte, error) {
	r.Sanitize()
	return json.MarshalIndent(r, "", "  ")
}
