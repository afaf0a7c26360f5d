package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wonny/aegis-wfs/internal/baseline"
	"github.com/wonny/aegis-wfs/internal/series"
)

// baselineCmd represents the baseline command
var baselineCmd = &cobra.Command{
	Use:   "baseline",
	Short: "동일 유니버스 Buy-and-Hold 기준선 계산",
	Long: `시즌별 가격 시계열로 B&H 기준선 곡선을 계산하고 이어붙입니다.

Input example (prices.json):
  {"labels": ["2024Q1", "2024Q2"],
   "seasons": [{"timestamps": [...], "close": [...], "open": [...]}, ...]}

Example:
  go run ./cmd/wfs baseline --prices prices.json --capital 100000 --size 1
  go run ./cmd/wfs baseline --prices prices.json --out baseline.json`,
	RunE: runBaseline,
}

var (
	baselinePricesFile string
	baselineOutFile    string
	baselineCapital    float64
	baselineSize       float64
	baselineCommission float64
	baselineSlippage   float64
	baselineTickValue  float64
	baselineMultiplier float64
)

func init() {
	rootCmd.AddCommand(baselineCmd)

	baselineCmd.Flags().StringVar(&baselinePricesFile, "prices", "", "Path to seasonal price series JSON (required)")
	baselineCmd.Flags().StringVar(&baselineOutFile, "out", "", "Write stitched curve JSON to this file instead of stdout")
	baselineCmd.Flags().Float64Var(&baselineCapital, "capital", 100000, "Initial capital")
	baselineCmd.Flags().Float64Var(&baselineSize, "size", 1, "Position size (contracts)")
	baselineCmd.Flags().Float64Var(&baselineCommission, "commission", 0, "Commission per trade")
	baselineCmd.Flags().Float64Var(&baselineSlippage, "slippage-ticks", 0, "Slippage in ticks per fill")
	baselineCmd.Flags().Float64Var(&baselineTickValue, "tick-value", 0, "Value of one tick")
	baselineCmd.Flags().Float64Var(&baselineMultiplier, "multiplier", 1, "Contract multiplier")
	_ = baselineCmd.MarkFlagRequired("prices")
}

// baselineInput is the price file layout.
type baselineInput struct {
	Labels  []string               `json:"labels"`
	Seasons []baseline.PriceSeries `json:"seasons"`
}

// baselineOutput is the stitched curve plus jump diagnostics.
type baselineOutput struct {
	Curve       []series.EquityPoint      `json:"curve"`
	Diagnostics []series.StitchDiagnostic `json:"diagnostics"`
}

func runBaseline(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(baselinePricesFile)
	if err != nil {
		return fmt.Errorf("read prices: %w", err)
	}

	var input baselineInput
	if err := json.Unmarshal(data, &input); err != nil {
		return fmt.Errorf("parse prices: %w", err)
	}
	if len(input.Seasons) == 0 {
		return fmt.Errorf("prices file has no seasons")
	}

	cost := baseline.CostModel{
		CommissionPerTrade: baselineCommission,
		SlippageTicks:      baselineSlippage,
		TickValue:          baselineTickValue,
		Multiplier:         baselineMultiplier,
	}

	curve, diags := baseline.ComputeSeasons(input.Seasons, input.Labels, cost, baselineCapital, baselineSize)

	out, err := json.MarshalIndent(baselineOutput{Curve: curve, Diagnostics: diags}, "", "  ")
	if err != nil {
		return err
	}

	if baselineOutFile != "" {
		if err := os.WriteFile(baselineOutFile, append(out, '\n'), 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		fmt.Printf("Baseline written: %s (%d points, %d seasons)\n", baselineOutFile, len(curve), len(diags))
		return nil
	}

	fmt.Println(string(out))
	return nil
}
