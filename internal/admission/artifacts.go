package admission

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Artifact file names. 이 4개 외의 파일은 절대 쓰지 않음 (error.txt는 실패시에만)
const (
	FileConfig   = "portfolio_config.json"
	FileReport   = "admission_report.json"
	FileDecision = "admission_decision.json"
	FileSummary  = "summary.txt"
	FileError    = "error.txt"
)

// writeArtifacts writes exactly the four evidence files, each atomically,
// under the job's evidence directory and nowhere else.
func (e *Engine) writeArtifacts(dir string, report *AdmissionReport) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create evidence dir: %w", err)
	}

	if err := writeJSONAtomic(dir, FileConfig, report.Config); err != nil {
		return err
	}
	if err := writeJSONAtomic(dir, FileReport, report); err != nil {
		return err
	}
	if err := writeJSONAtomic(dir, FileDecision, report.Decision); err != nil {
		return err
	}
	if err := writeTextAtomic(dir, FileSummary, buildSummaryText(report)); err != nil {
		return err
	}

	e.logger.WithFields(map[string]interface{}{
		"dir":   dir,
		"files": 4,
	}).Info("Evidence artifacts written")
	return nil
}

// buildSummaryText renders the human-readable recap.
func buildSummaryText(report *AdmissionReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Portfolio: %s\n", report.PortfolioID)
	fmt.Fprintf(&b, "Verdict: %s\n", report.Verdict)
	fmt.Fprintf(&b, "Admitted: %d, Rejected: %d\n",
		len(report.Decision.AdmittedRunIDs), len(report.Decision.RejectedRunIDs))

	if len(report.Decision.AdmittedRunIDs) > 0 {
		fmt.Fprintf(&b, "Admitted runs: %s\n", strings.Join(report.Decision.AdmittedRunIDs, ", "))
	}
	for _, id := range report.Decision.RejectedRunIDs {
		fmt.Fprintf(&b, "Rejected %s: %s\n", id, report.Decision.Reasons[id])
	}

	fmt.Fprintf(&b, "Risk budget: %.2f used of %.2f total\n",
		report.Stacking.RiskBudgetUsed, report.Stacking.RiskBudgetTotal)
	fmt.Fprintf(&b, "Pain index: %.4f, max drawdown: %.2f%% (%.2f %s at risk)\n",
		report.PainIndex.PainIndex, report.PainIndex.MaxDrawdownPct,
		report.MoneySense.CapitalAtRisk, report.MoneySense.Currency)
	fmt.Fprintf(&b, "%s\n", report.Summary)
	return b.String()
}

// writeErrorFile persists the failure trace for later debugging. Best
// effort — a write failure here must not mask the original error.
func (e *Engine) writeErrorFile(dir, engineRunID string, runErr error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		e.logger.WithError(err).Error("Failed to create evidence dir for error.txt")
		return
	}
	content := fmt.Sprintf("engine_run_id: %s\nerror: %v\n", engineRunID, runErr)
	if err := writeTextAtomic(dir, FileError, content); err != nil {
		e.logger.WithError(err).Error("Failed to write error.txt")
	}
}

// writeJSONAtomic marshals v with stable indentation and writes it via
// temp-file-then-rename so a concurrent reader never sees a partial file.
func writeJSONAtomic(dir, name string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}
	return writeBytesAtomic(dir, name, append(data, '\n'))
}

func writeTextAtomic(dir, name, content string) error {
	return writeBytesAtomic(dir, name, []byte(content))
}

func writeBytesAtomic(dir, name string, data []byte) error {
	tmp, err := os.CreateTemp(dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", name, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", name, err)
	}

	if err := os.Rename(tmpName, filepath.Join(dir, name)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename %s: %w", name, err)
	}
	return nil
}
