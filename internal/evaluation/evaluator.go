package evaluation

import (
	"fmt"
	"math"
	"strings"
)

// RawMetrics are the raw walk-forward metrics for a single strategy run.
// wfe/pass_rate는 계약상 [0,1]이지만 경계에서 강제하지 않음 (수식이 방어적으로 clamp)
type RawMetrics struct {
	RF                float64 `json:"rf"`        // return factor
	WFE               float64 `json:"wfe"`       // walk-forward efficiency (0..1)
	ECR               float64 `json:"ecr"`       // efficiency-to-capital ratio
	Trades            int     `json:"trades"`    // total OOS trades
	PassRate          float64 `json:"pass_rate"` // window pass rate (0..1)
	UlcerIndex        float64 `json:"ulcer_index"`
	MaxUnderwaterDays int     `json:"max_underwater_days"`
}

// Scores is the five-dimension evaluation output, each 0-100.
type Scores struct {
	Profit        float64 `json:"profit"`
	Stability     float64 `json:"stability"`
	Robustness    float64 `json:"robustness"`
	Reliability   float64 `json:"reliability"`
	Armor         float64 `json:"armor"`
	TotalWeighted float64 `json:"total_weighted"`
}

// EvaluationResult is the full verdict for one run.
// ⭐ 계약: 하드게이트가 하나라도 걸리면 grade=D, is_tradable=false (점수와 무관)
type EvaluationResult struct {
	HardGatesTriggered []string `json:"hard_gates_triggered"`
	Scores             Scores   `json:"scores"`
	Grade              string   `json:"grade"` // S, A, B, C, D
	IsTradable         bool     `json:"is_tradable"`
	Summary            string   `json:"summary"`
}

// Hard gate thresholds.
const (
	MinECR      = 1.5
	MinWFE      = 0.5
	MinPassRate = 0.6
	MinTrades   = 30
)

// Score weights. 합 = 1.00
const (
	WeightProfit      = 0.25
	WeightArmor       = 0.20
	WeightStability   = 0.25
	WeightRobustness  = 0.20
	WeightReliability = 0.10
)

// Evaluator turns raw walk-forward metrics into hard-gate flags, scores and
// a letter grade (순수 계산기)
// ⭐ SSOT: 평가 점수/등급 계산은 여기서만
type Evaluator struct{}

// NewEvaluator creates a new evaluator.
func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// HardGates checks every gate independently (no short-circuit) and returns
// one fixed descriptive string per triggered gate.
func (e *Evaluator) HardGates(raw RawMetrics) []string {
	gates := make([]string, 0)
	if raw.ECR < MinECR {
		gates = append(gates, fmt.Sprintf("ECR %.2f below minimum %.1f", raw.ECR, MinECR))
	}
	if raw.WFE < MinWFE {
		gates = append(gates, fmt.Sprintf("WFE %.2f below minimum %.1f", raw.WFE, MinWFE))
	}
	if raw.PassRate < MinPassRate {
		gates = append(gates, fmt.Sprintf("pass rate %.2f below minimum %.1f", raw.PassRate, MinPassRate))
	}
	if raw.Trades < MinTrades {
		gates = append(gates, fmt.Sprintf("trade count %d below minimum %d", raw.Trades, MinTrades))
	}
	return gates
}

// Score computes the five dimension scores, each rounded to 2 decimals.
// 모든 수식은 방어적으로 clamp — 입력 범위 이탈로 panic하지 않음
func (e *Evaluator) Score(raw RawMetrics) Scores {
	s := Scores{
		Profit:      math.Min(100, raw.RF/4.0*100),
		Stability:   clamp(60*raw.WFE+40*raw.PassRate, 0, 100),
		Robustness:  math.Min(100, raw.ECR/5.0*100),
		Reliability: math.Min(100, float64(raw.Trades)/200*100),
		Armor:       clamp(100-5*raw.UlcerIndex-2*math.Max(0, float64(raw.MaxUnderwaterDays-20)), 0, 100),
	}
	s.Profit = round2(math.Max(0, s.Profit))
	s.Stability = round2(s.Stability)
	s.Robustness = round2(math.Max(0, s.Robustness))
	s.Reliability = round2(math.Max(0, s.Reliability))
	s.Armor = round2(s.Armor)
	s.TotalWeighted = e.Total(s)
	return s
}

// Total computes the fixed-weight sum of the five scores, rounded to 2 decimals.
func (e *Evaluator) Total(s Scores) float64 {
	total := WeightProfit*s.Profit +
		WeightArmor*s.Armor +
		WeightStability*s.Stability +
		WeightRobustness*s.Robustness +
		WeightReliability*s.Reliability
	return round2(total)
}

// GradeOf maps a total score to a letter grade; any triggered hard gate
// forces "D" regardless of the total.
func (e *Evaluator) GradeOf(total float64, hardGates []string) string {
	if len(hardGates) > 0 {
		return "D"
	}
	switch {
	case total >= 90:
		return "S"
	case total >= 80:
		return "A"
	case total >= 70:
		return "B"
	case total >= 60:
		return "C"
	default:
		return "D"
	}
}

// Evaluate orchestrates gates, scores and grade into a full verdict.
// 점수는 하드게이트에 걸려도 항상 계산됨 (진단 가시성)
func (e *Evaluator) Evaluate(raw RawMetrics) EvaluationResult {
	gates := e.HardGates(raw)
	scores := e.Score(raw)
	grade := e.GradeOf(scores.TotalWeighted, gates)

	summary := fmt.Sprintf(
		"Grade %s. Scores: profit=%.2f stability=%.2f robustness=%.2f reliability=%.2f armor=%.2f total=%.2f",
		grade, scores.Profit, scores.Stability, scores.Robustness,
		scores.Reliability, scores.Armor, scores.TotalWeighted)
	if len(gates) > 0 {
		summary = "HardGate: " + strings.Join(gates, "; ")
	}

	return EvaluationResult{
		HardGatesTriggered: gates,
		Scores:             scores,
		Grade:              grade,
		IsTradable:         len(gates) == 0 && grade != "D",
		Summary:            summary,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
