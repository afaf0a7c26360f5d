package admission

import (
	"fmt"
	"os"

	"github.com/wonny/aegis-wfs/internal/contract"
	"github.com/wonny/aegis-wfs/internal/series"
)

// loadedRun wraps one schema-valid result document.
type loadedRun struct {
	path   string
	result *contract.ResearchWFSResult
}

// ID returns the run id from the document meta.
func (r *loadedRun) ID() string {
	return r.result.Meta.RunID
}

// Currency returns the run's configured currency.
func (r *loadedRun) Currency() string {
	return r.result.Config.Currency
}

// OOSEquity returns the stitched out-of-sample equity series.
func (r *loadedRun) OOSEquity() []series.EquityPoint {
	return r.result.Series.OOSEquity
}

// FirstWindowOOSNetProfit returns the first evaluation window's OOS net
// profit, the stacking profitability screen input.
func (r *loadedRun) FirstWindowOOSNetProfit() float64 {
	return float64(r.result.Windows[0].OOSMetrics.NetProfit)
}

// loadResults reads and validates every supplied result path. A bad input
// (missing file, bad JSON, schema mismatch) is skipped with a log entry —
// one bad file never aborts the batch. 중복 run_id도 스킵
func (e *Engine) loadResults(paths []string) ([]*loadedRun, []SkippedInput) {
	runs := make([]*loadedRun, 0, len(paths))
	skipped := make([]SkippedInput, 0)
	seen := make(map[string]bool)

	skip := func(path, reason string) {
		e.logger.WithFields(map[string]interface{}{
			"path":   path,
			"reason": reason,
		}).Warn("Skipping result file")
		skipped = append(skipped, SkippedInput{Path: path, Reason: reason})
	}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			skip(path, fmt.Sprintf("read failed: %v", err))
			continue
		}

		result, err := contract.Parse(data)
		if err != nil {
			skip(path, err.Error())
			continue
		}

		id := result.Meta.RunID
		if seen[id] {
			skip(path, fmt.Sprintf("duplicate run_id %q", id))
			continue
		}
		seen[id] = true

		runs = append(runs, &loadedRun{path: path, result: result})
	}

	return runs, skipped
}
