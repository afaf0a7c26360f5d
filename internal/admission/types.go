package admission

// =============================================================================
// Engine stages
// =============================================================================

// Stage identifies the engine's position in its linear state machine.
// 재시도 없음 — 단방향 진행만
type Stage string

const (
	StageValidatingInputs   Stage = "VALIDATING_INPUTS"
	StageLoadingResults     Stage = "LOADING_RESULTS"
	StageBuildingConfig     Stage = "BUILDING_CONFIG"
	StageRunningAnalysis    Stage = "RUNNING_ANALYSIS"
	StageGeneratingDecision Stage = "GENERATING_DECISION"
	StageWritingArtifacts   Stage = "WRITING_ARTIFACTS"
	StageDone               Stage = "DONE"
)

// ProgressFunc receives advisory milestone callbacks. It must never influence
// the computed result; a nil ProgressFunc is valid.
type ProgressFunc func(stage Stage, message string)

// =============================================================================
// Verdicts
// =============================================================================

// Report verdicts (three-valued, internal/report contract).
const (
	VerdictAdmitted = "ADMITTED"
	VerdictPartial  = "PARTIAL"
	VerdictRejected = "REJECTED"
)

// =============================================================================
// Analysis result types
// =============================================================================

// CorrelationViolation records one pair whose correlation breaches the gate.
type CorrelationViolation struct {
	RunID1      string  `json:"run_id1"`
	RunID2      string  `json:"run_id2"`
	Correlation float64 `json:"correlation"`
}

// CorrelationGateResult is the pairwise correlation check outcome.
// 상관계수는 항상 [-1,1]로 clamp — 퇴화 입력도 NaN이 아니라 0.0
type CorrelationGateResult struct {
	Passed         bool                   `json:"passed"`
	Violations     []CorrelationViolation `json:"violations"`
	Threshold      float64                `json:"threshold"`
	TotalPairs     int                    `json:"total_pairs"`
	ViolatingPairs int                    `json:"violating_pairs"`
}

// PortfolioStackingResult is the equal-weight allocation outcome.
// allocated가 비어있지 않으면 가중치 합은 1.0
type PortfolioStackingResult struct {
	AllocatedRunIDs   []string           `json:"allocated_run_ids"`
	AllocationWeights map[string]float64 `json:"allocation_weights"`
	RiskBudgetUsed    float64            `json:"risk_budget_used"`
	RiskBudgetTotal   float64            `json:"risk_budget_total"`
	LotsPerRun        map[string]int     `json:"lots_per_run"`
}

// DynamicPainIndexResult describes drawdown severity of the averaged
// allocated-portfolio equity curve. 배분된 run이 없으면 전부 0
type DynamicPainIndexResult struct {
	PainIndex        float64 `json:"pain_index"`
	MaxDrawdownPct   float64 `json:"max_drawdown_pct"`
	MaxDrawdownAbs   float64 `json:"max_drawdown_abs"`
	UnderwaterDays   int     `json:"underwater_days"`
	RecoveryTimeDays float64 `json:"recovery_time_days"`
	SeverityScore    float64 `json:"severity_score"`
}

// MarginalContributionResult attributes portfolio risk per allocated run.
type MarginalContributionResult struct {
	Contributions          map[string]float64 `json:"contributions"`
	TotalRisk              float64            `json:"total_risk"`
	DiversificationBenefit float64            `json:"diversification_benefit"` // [0,1]
}

// MoneySenseMetric denominates the averaged-curve drawdown in currency.
type MoneySenseMetric struct {
	MDDPercentage      float64 `json:"mdd_percentage"`
	MDDAbsolute        float64 `json:"mdd_absolute"`
	Currency           string  `json:"currency"`
	CapitalAtRisk      float64 `json:"capital_at_risk"`
	RiskAdjustedReturn float64 `json:"risk_adjusted_return"`
}

// =============================================================================
// Decision & report
// =============================================================================

// AdmissionDecision is the two-valued external verdict contract.
// ⭐ 계약: verdict는 ADMITTED/REJECTED만 — PARTIAL은 ADMITTED로 접힘
// reasons는 거부된 run에 대해서만 채워짐
type AdmissionDecision struct {
	Verdict        string            `json:"verdict"` // ADMITTED | REJECTED
	AdmittedRunIDs []string          `json:"admitted_run_ids"`
	RejectedRunIDs []string          `json:"rejected_run_ids"`
	Reasons        map[string]string `json:"reasons"`
	PortfolioID    string            `json:"portfolio_id"`
	EvaluatedAtUTC string            `json:"evaluated_at_utc"`
}

// SkippedInput records one result file that failed to load.
type SkippedInput struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// AdmissionReport is the full analytical report. Its verdict keeps the
// richer three-valued form; the embedded decision collapses it.
type AdmissionReport struct {
	PortfolioID    string `json:"portfolio_id"`
	EngineRunID    string `json:"engine_run_id"`
	GeneratedAtUTC string `json:"generated_at_utc"`
	Aborted        bool   `json:"aborted"`

	LoadedRunIDs  []string       `json:"loaded_run_ids"`
	SkippedInputs []SkippedInput `json:"skipped_inputs"`

	Config      PortfolioConfig            `json:"config"`
	Correlation CorrelationGateResult      `json:"correlation"`
	Stacking    PortfolioStackingResult    `json:"stacking"`
	PainIndex   DynamicPainIndexResult     `json:"pain_index"`
	Marginal    MarginalContributionResult `json:"marginal_contribution"`
	MoneySense  MoneySenseMetric           `json:"money_sense"`

	Verdict  string            `json:"verdict"` // ADMITTED | PARTIAL | REJECTED
	Decision AdmissionDecision `json:"decision"`
	Summary  string            `json:"summary"`
}
