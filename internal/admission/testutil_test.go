package admission

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/wonny/aegis-wfs/internal/baseline"
	"github.com/wonny/aegis-wfs/internal/contract"
	"github.com/wonny/aegis-wfs/internal/evaluation"
	"github.com/wonny/aegis-wfs/internal/series"
	"github.com/wonny/aegis-wfs/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.NewWriter(io.Discard)
}

// testResult builds a schema-valid result document whose stitched OOS equity
// equals the given values (단일 시즌이라 오프셋 0).
func testResult(runID, currency string, equity []float64, firstWindowProfit float64) *contract.ResearchWFSResult {
	points := make([]series.EquityPoint, len(equity))
	for i, v := range equity {
		points[i] = series.EquityPoint{T: fmt.Sprintf("2024-01-%02d", i+1), V: v}
	}

	return contract.Assemble(contract.AssemblerInput{
		RunID:          runID,
		Strategy:       "orb_breakout",
		Symbol:         "NQ",
		Timeframe:      "5m",
		Currency:       currency,
		InitialCapital: 100000,
		PositionSize:   1,
		Cost:           baseline.CostModel{CommissionPerTrade: 2.5, SlippageTicks: 1, TickValue: 5, Multiplier: 1},
		SeasonLabels:   []string{"2024Q1"},
		OOSBySeason:    [][]series.EquityPoint{points},
		PriceSeasons: []baseline.PriceSeries{
			{Timestamps: []string{"2024-01-01", "2024-01-02"}, Close: []float64{17000, 17100}},
		},
		Estimate: contract.EstimateSection{WindowCount: 1, ParamCombinations: 10, TotalBars: 1000},
		Windows: []contract.WindowResult{
			{
				Season:     "2024Q1",
				ISStart:    "2023-10-01", ISEnd: "2023-12-31",
				OOSStart:   "2024-01-01", OOSEnd: "2024-03-31",
				BestParams: map[string]contract.Float{"lookback": 20},
				OOSMetrics: contract.WindowMetrics{NetProfit: contract.Float(firstWindowProfit), Trades: 18},
				Passed:     firstWindowProfit > 0,
			},
		},
		Raw: evaluation.RawMetrics{RF: 3.0, WFE: 0.6, ECR: 2.5, Trades: 150, PassRate: 0.8},
	})
}

func newTestRun(runID string, equity []float64, firstWindowProfit float64) *loadedRun {
	return &loadedRun{
		path:   runID + ".json",
		result: testResult(runID, "USD", equity, firstWindowProfit),
	}
}

// writeResultFile persists a result document under dir and returns its path.
func writeResultFile(t *testing.T, dir, runID, currency string, equity []float64, firstWindowProfit float64) string {
	t.Helper()

	data, err := testResult(runID, currency, equity, firstWindowProfit).Marshal()
	if err != nil {
		t.Fatalf("marshal test result: %v", err)
	}
	path := filepath.Join(dir, runID+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write test result: %v", err)
	}
	return path
}

// listDir returns the sorted names of the directory entries.
func listDir(t *testing.T, dir string) []string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}
