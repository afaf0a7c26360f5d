package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wonny/aegis-wfs/internal/evaluation"
)

// evaluateCmd represents the evaluate command
var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "원시 워크포워드 지표를 점수/등급으로 평가",
	Long: `RawMetrics JSON 파일을 읽어 하드게이트/점수/등급을 계산합니다.

Input example (raw.json):
  {"rf": 3.0, "wfe": 0.6, "ecr": 2.5, "trades": 150,
   "pass_rate": 0.8, "ulcer_index": 12.0, "max_underwater_days": 15}

Example:
  go run ./cmd/wfs evaluate --metrics raw.json`,
	RunE: runEvaluate,
}

var evaluateMetricsFile string

func init() {
	rootCmd.AddCommand(evaluateCmd)
	evaluateCmd.Flags().StringVar(&evaluateMetricsFile, "metrics", "", "Path to a RawMetrics JSON file (required)")
	_ = evaluateCmd.MarkFlagRequired("metrics")
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(evaluateMetricsFile)
	if err != nil {
		return fmt.Errorf("read metrics: %w", err)
	}

	var raw evaluation.RawMetrics
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse metrics: %w", err)
	}

	result := evaluation.NewEvaluator().Evaluate(raw)

	fmt.Println("=== Evaluation Result ===")
	fmt.Printf("Grade:       %s (tradable: %t)\n", result.Grade, result.IsTradable)
	fmt.Printf("Profit:      %.2f\n", result.Scores.Profit)
	fmt.Printf("Stability:   %.2f\n", result.Scores.Stability)
	fmt.Printf("Robustness:  %.2f\n", result.Scores.Robustness)
	fmt.Printf("Reliability: %.2f\n", result.Scores.Reliability)
	fmt.Printf("Armor:       %.2f\n", result.Scores.Armor)
	fmt.Printf("Total:       %.2f\n", result.Scores.TotalWeighted)
	for _, gate := range result.HardGatesTriggered {
		fmt.Printf("HardGate:    %s\n", gate)
	}
	fmt.Println(result.Summary)
	return nil
}
