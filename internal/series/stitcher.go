package series

import (
	"fmt"
	"math"
)

// StitchDiagnostic reports the equity jump observed at a season boundary
// ⭐ 계약: 시즌당 정확히 1건 (빈 시즌 포함, 빈 시즌은 0으로 기록)
type StitchDiagnostic struct {
	Season  string  `json:"season"`
	JumpAbs float64 `json:"jump_abs"`
	JumpPct float64 `json:"jump_pct"` // percentage, not a fraction
}

// Stitch offsets and concatenates per-season equity curves into one
// continuous series.
// ⭐ SSOT: 시즌 이어붙이기 오프셋 계산은 여기서만
//
// The accumulator lastEnd starts at 0 and carries the stitched endpoint of
// the previous non-empty season. Each season's points are shifted by lastEnd
// so the combined curve is continuous, and the diagnostic records how large
// the raw jump at the boundary was relative to where the previous season
// left off.
func Stitch(bySeason [][]EquityPoint, labels []string) ([]EquityPoint, []StitchDiagnostic) {
	stitched := make([]EquityPoint, 0)
	diagnostics := make([]StitchDiagnostic, 0, len(bySeason))

	lastEnd := 0.0
	for i, season := range bySeason {
		label := seasonLabel(labels, i)

		// 빈 시즌: 0 진단만 남기고 lastEnd는 건드리지 않음
		if len(season) == 0 {
			diagnostics = append(diagnostics, StitchDiagnostic{Season: label})
			continue
		}

		jumpAbs := math.Abs(season[0].V)
		jumpPct := 0.0
		if math.Abs(lastEnd) > 0 {
			jumpPct = jumpAbs / math.Abs(lastEnd) * 100
		}
		diagnostics = append(diagnostics, StitchDiagnostic{
			Season:  label,
			JumpAbs: jumpAbs,
			JumpPct: jumpPct,
		})

		for _, p := range season {
			stitched = append(stitched, EquityPoint{T: p.T, V: p.V + lastEnd})
		}
		lastEnd = stitched[len(stitched)-1].V
	}

	return stitched, diagnostics
}

// seasonLabel returns the caller-supplied label or a positional fallback.
func seasonLabel(labels []string, i int) string {
	if i < len(labels) && labels[i] != "" {
		return labels[i]
	}
	return fmt.Sprintf("season_%d", i+1)
}
