package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/wonny/aegis-wfs/internal/admission"
	"github.com/wonny/aegis-wfs/pkg/config"
	"github.com/wonny/aegis-wfs/pkg/logger"
)

// admitCmd represents the admit command
var admitCmd = &cobra.Command{
	Use:   "admit",
	Short: "포트폴리오 승인 분석 실행",
	Long: `하나 이상의 ResearchWFSResult 파일을 로드해 승인 분석을 실행합니다.

산출물 4종(portfolio_config.json, admission_report.json,
admission_decision.json, summary.txt)을 evidence 디렉터리에 기록합니다.

Example:
  go run ./cmd/wfs admit --portfolio-id demo --result run1.json --result run2.json
  go run ./cmd/wfs admit --portfolio-id demo --result run1.json --config overrides.json`,
	RunE: runAdmit,
}

var (
	admitPortfolioID string
	admitResults     []string
	admitEvidenceDir string
	admitConfigFile  string
)

func init() {
	rootCmd.AddCommand(admitCmd)

	admitCmd.Flags().StringVar(&admitPortfolioID, "portfolio-id", "", "Portfolio identifier (required)")
	admitCmd.Flags().StringArrayVar(&admitResults, "result", nil, "Path to a ResearchWFSResult JSON file (repeatable)")
	admitCmd.Flags().StringVar(&admitEvidenceDir, "evidence-dir", "", "Evidence output directory (default: <evidence_root>/<portfolio-id>)")
	admitCmd.Flags().StringVar(&admitConfigFile, "config", "", "Path to a partial portfolio config override (JSON)")
}

func runAdmit(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	log := logger.New(cfg)

	override, err := loadOverride(admitConfigFile)
	if err != nil {
		return err
	}

	evidenceDir := admitEvidenceDir
	if evidenceDir == "" && admitPortfolioID != "" {
		evidenceDir = filepath.Join(cfg.EvidenceRoot, admitPortfolioID)
	}

	engine := admission.NewEngine(log)
	report, err := engine.Run(admission.Params{
		PortfolioID: admitPortfolioID,
		ResultPaths: admitResults,
		EvidenceDir: evidenceDir,
		Override:    override,
	})
	if err != nil {
		return err
	}

	fmt.Println("=== Admission Result ===")
	fmt.Printf("Portfolio:  %s\n", report.PortfolioID)
	fmt.Printf("Verdict:    %s (decision: %s)\n", report.Verdict, report.Decision.Verdict)
	fmt.Printf("Admitted:   %d\n", len(report.Decision.AdmittedRunIDs))
	fmt.Printf("Rejected:   %d\n", len(report.Decision.RejectedRunIDs))
	fmt.Printf("Evidence:   %s\n", evidenceDir)
	return nil
}

// loadOverride reads an optional partial config override.
// 알 수 없는 키는 거부 — 조용한 오타 무시 방지
func loadOverride(path string) (*admission.ConfigOverride, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config override: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var override admission.ConfigOverride
	if err := dec.Decode(&override); err != nil {
		return nil, fmt.Errorf("parse config override: %w", err)
	}
	return &override, nil
}
