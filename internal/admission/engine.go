package admission

import (
	"fmt"
	"runtime/debug"
	"time"

	"github.com/google/uuid"

	"github.com/wonny/aegis-wfs/pkg/logger"
)

// Params are the caller-supplied inputs for one admission invocation.
type Params struct {
	PortfolioID string
	ResultPaths []string        // paths to ResearchWFSResult JSON files
	EvidenceDir string          // job-scoped output directory
	Override    *ConfigOverride // optional partial config override

	Progress ProgressFunc // optional, advisory only
	Abort    func() bool  // optional, checked exactly once before any work
}

// Engine runs the portfolio admission analysis
// ⭐ SSOT: 승인 분석 실행은 여기서만. 호출 간 공유 상태 없음 — 잠금 불필요
//
// The engine is a linear state machine: VALIDATING_INPUTS → LOADING_RESULTS →
// BUILDING_CONFIG → RUNNING_ANALYSIS → GENERATING_DECISION →
// WRITING_ARTIFACTS → DONE. No retries, no mid-run cancellation point.
type Engine struct {
	logger *logger.Logger
	now    func() time.Time
	newID  func() string
}

// NewEngine creates a new admission engine.
func NewEngine(log *logger.Logger) *Engine {
	return &Engine{
		logger: log,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
	}
}

// WithClock sets a custom clock (테스트 결정성용).
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// Run executes one admission invocation.
//
// Parameter validation failures return before any I/O and leave no artifacts.
// A requested abort returns an aborted report with no artifacts. Any error
// after that is written to error.txt under the evidence dir and returned so
// the caller marks the job failed.
func (e *Engine) Run(params Params) (*AdmissionReport, error) {
	e.progress(params, StageValidatingInputs, "validating parameters")
	if err := e.validateParams(params); err != nil {
		return nil, err
	}

	// 취소 체크는 분석 시작 전 정확히 1회
	if params.Abort != nil && params.Abort() {
		e.logger.WithField("portfolio_id", params.PortfolioID).Warn("Admission aborted before start")
		return &AdmissionReport{
			PortfolioID:    params.PortfolioID,
			EngineRunID:    e.newID(),
			GeneratedAtUTC: e.now().Format(time.RFC3339),
			Aborted:        true,
		}, nil
	}

	report := &AdmissionReport{
		PortfolioID:    params.PortfolioID,
		EngineRunID:    e.newID(),
		GeneratedAtUTC: e.now().Format(time.RFC3339),
	}

	if err := e.execute(params, report); err != nil {
		e.logger.WithError(err).Error("Admission run failed")
		e.writeErrorFile(params.EvidenceDir, report.EngineRunID, err)
		return nil, err
	}
	return report, nil
}

// validateParams fails fast on missing top-level parameters, before any I/O.
func (e *Engine) validateParams(params Params) error {
	if params.PortfolioID == "" {
		return ValidationError{"portfolio_id", "required"}
	}
	if len(params.ResultPaths) == 0 {
		return ValidationError{"result_paths", "must be a non-empty list"}
	}
	if params.EvidenceDir == "" {
		return ValidationError{"evidence_dir", "required"}
	}
	return params.Override.Validate()
}

// execute runs the load → config → analysis → decision → artifacts chain.
// panic도 잡아서 error로 변환 (error.txt에 전체 트레이스 기록)
func (e *Engine) execute(params Params, report *AdmissionReport) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during admission analysis: %v\n%s", r, debug.Stack())
		}
	}()

	start := e.now()

	// 1. Load & validate result documents
	e.progress(params, StageLoadingResults, fmt.Sprintf("loading %d result files", len(params.ResultPaths)))
	runs, skipped := e.loadResults(params.ResultPaths)
	if len(runs) == 0 {
		return fmt.Errorf("%w: all %d inputs failed to load", ErrNoValidResults, len(params.ResultPaths))
	}
	report.SkippedInputs = skipped
	report.LoadedRunIDs = make([]string, 0, len(runs))
	for _, run := range runs {
		report.LoadedRunIDs = append(report.LoadedRunIDs, run.ID())
	}

	// 2. Build config (defaults + override + currency resolution)
	e.progress(params, StageBuildingConfig, "merging portfolio config")
	currencies := make([]string, 0, len(runs))
	for _, run := range runs {
		currencies = append(currencies, run.Currency())
	}
	report.Config = BuildConfig(params.Override, currencies)

	// 3-7. Analytics
	e.progress(params, StageRunningAnalysis, "running correlation/risk/pain analytics")
	report.Correlation = checkCorrelationGate(runs, report.Config.CorrelationThreshold)

	stacking, rejectionReasons := stackPortfolio(runs, report.Correlation, report.Config)
	report.Stacking = stacking

	avg := averageAllocatedCurve(runs, stacking.AllocatedRunIDs)
	report.PainIndex = computePainIndex(avg)
	report.Marginal = computeMarginalContribution(runs, stacking.AllocatedRunIDs)
	report.MoneySense = computeMoneySense(avg, report.PainIndex, report.Config)

	// 8. Verdict & decision
	e.progress(params, StageGeneratingDecision, "generating admission decision")
	e.buildDecision(report, runs, rejectionReasons)

	// 9. Artifacts
	e.progress(params, StageWritingArtifacts, "writing evidence artifacts")
	if err := e.writeArtifacts(params.EvidenceDir, report); err != nil {
		return err
	}

	e.progress(params, StageDone, "admission complete")
	e.logger.WithFields(map[string]interface{}{
		"portfolio_id": report.PortfolioID,
		"verdict":      report.Verdict,
		"admitted":     len(report.Decision.AdmittedRunIDs),
		"rejected":     len(report.Decision.RejectedRunIDs),
		"duration_sec": e.now().Sub(start).Seconds(),
	}).Info("Admission completed")
	return nil
}

// buildDecision derives the three-valued report verdict and the two-valued
// external decision from the stacking outcome.
// ⭐ 계약: admitted ∪ rejected = 로드된 전체 run id (중복/누락 없음)
func (e *Engine) buildDecision(report *AdmissionReport, runs []*loadedRun, rejectionReasons map[string]string) {
	allocated := make(map[string]bool, len(report.Stacking.AllocatedRunIDs))
	for _, id := range report.Stacking.AllocatedRunIDs {
		allocated[id] = true
	}

	decision := AdmissionDecision{
		AdmittedRunIDs: make([]string, 0, len(runs)),
		RejectedRunIDs: make([]string, 0),
		Reasons:        make(map[string]string),
		PortfolioID:    report.PortfolioID,
		EvaluatedAtUTC: e.now().Format(time.RFC3339),
	}

	for _, run := range runs {
		id := run.ID()
		if allocated[id] {
			decision.AdmittedRunIDs = append(decision.AdmittedRunIDs, id)
			continue
		}
		decision.RejectedRunIDs = append(decision.RejectedRunIDs, id)
		reason, ok := rejectionReasons[id]
		if !ok {
			reason = "not allocated"
		}
		decision.Reasons[id] = reason
	}

	n, total := len(decision.AdmittedRunIDs), len(runs)
	switch {
	case n == 0:
		report.Verdict = VerdictRejected
	case n == total:
		report.Verdict = VerdictAdmitted
	default:
		report.Verdict = VerdictPartial
	}

	// 외부 결정은 2값: PARTIAL은 ADMITTED로 접힘
	decision.Verdict = VerdictAdmitted
	if n == 0 {
		decision.Verdict = VerdictRejected
	}

	report.Decision = decision
	report.Summary = fmt.Sprintf("%s: %d/%d runs admitted", report.Verdict, n, total)
}

// progress emits an advisory milestone callback. nil-safe.
func (e *Engine) progress(params Params, stage Stage, message string) {
	e.logger.WithFields(map[string]interface{}{
		"stage":        string(stage),
		"portfolio_id": params.PortfolioID,
	}).Debug(message)
	if params.Progress != nil {
		params.Progress(stage, message)
	}
}
