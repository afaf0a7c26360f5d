package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "wfs",
	Short: "WFS - 워크포워드 전략 평가/승인 엔진",
	Long: `WFS Evaluation & Admission CLI

워크포워드 리서치 결과를 평가하고 공유 포트폴리오 편입 여부를 결정합니다.

Usage:
  go run ./cmd/wfs [command]

Examples:
  go run ./cmd/wfs evaluate --metrics raw.json
  go run ./cmd/wfs baseline --prices prices.json
  go run ./cmd/wfs admit --portfolio-id demo --result run1.json --result run2.json`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
