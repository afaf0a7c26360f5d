package admission

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputePainIndex_KnownCurve(t *testing.T) {
	// peak 추적: 0,10,10,15 / drawdown: 0,0,5,0
	result := computePainIndex([]float64{0, 10, 5, 15})

	assert.InDelta(t, 0.125, result.PainIndex, 1e-12) // (0+0.5+0)/4
	assert.InDelta(t, 50.0, result.MaxDrawdownPct, 1e-12)
	assert.InDelta(t, 5.0, result.MaxDrawdownAbs, 1e-12)

	// 역대 최고 15의 95% = 14.25 아래: 0, 10, 5 → 3 포인트
	assert.Equal(t, 3, result.UnderwaterDays)
	assert.InDelta(t, 62.5, result.SeverityScore, 1e-12)   // 0.125*100 + 50
	assert.InDelta(t, 4.5, result.RecoveryTimeDays, 1e-12) // 3 * 1.5
}

func TestComputePainIndex_MonotoneCurveHasNoPain(t *testing.T) {
	result := computePainIndex([]float64{0, 1, 2, 3, 4, 100})

	assert.Equal(t, 0.0, result.PainIndex)
	assert.Equal(t, 0.0, result.MaxDrawdownPct)
	assert.Equal(t, 0.0, result.MaxDrawdownAbs)
	// 단조 증가여도 최고점의 95% 아래 구간은 존재
	assert.Equal(t, 5, result.UnderwaterDays)
}

func TestComputePainIndex_NegativePeakSkipsPctTerms(t *testing.T) {
	// peak이 0 이하인 구간은 백분율 항 없이 절대 낙폭만 기록
	result := computePainIndex([]float64{0, -5, -3})

	assert.Equal(t, 0.0, result.PainIndex)
	assert.Equal(t, 0.0, result.MaxDrawdownPct)
	assert.Equal(t, 5.0, result.MaxDrawdownAbs)
}

func TestComputePainIndex_EmptyCurve(t *testing.T) {
	result := computePainIndex(nil)
	assert.Equal(t, DynamicPainIndexResult{}, result)
}

func TestComputePainIndex_SeverityAndRecoveryCapped(t *testing.T) {
	// 극단 곡선: severity는 100, recovery는 365에서 캡
	curve := make([]float64, 400)
	curve[0] = 100
	for i := 1; i < len(curve); i++ {
		curve[i] = 1
	}

	result := computePainIndex(curve)
	assert.Equal(t, 100.0, result.SeverityScore)
	assert.Equal(t, 365.0, result.RecoveryTimeDays)
}
