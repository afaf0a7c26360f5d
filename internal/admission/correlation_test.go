package admission

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/aegis-wfs/internal/series"
)

func TestPearson_KnownValue(t *testing.T) {
	// 손으로 계산한 기준값: r = 0.6
	r := pearson([]float64{1, 2, 3, 4}, []float64{2, 1, 4, 3})
	assert.InDelta(t, 0.6, r, 1e-12)
}

func TestPearson_PerfectCorrelation(t *testing.T) {
	r := pearson([]float64{1, 2, 3, 4}, []float64{2, 4, 6, 8})
	assert.Equal(t, 1.0, r)

	r = pearson([]float64{1, 2, 3, 4}, []float64{8, 6, 4, 2})
	assert.Equal(t, -1.0, r)
}

func TestPearson_DegenerateInputsReturnZero(t *testing.T) {
	// 분산 0 → NaN이 아니라 0.0
	assert.Equal(t, 0.0, pearson([]float64{5, 5, 5}, []float64{1, 2, 3}))
	assert.Equal(t, 0.0, pearson([]float64{1, 2, 3}, []float64{7, 7, 7}))
	// 포인트 2개 미만
	assert.Equal(t, 0.0, pearson([]float64{1}, []float64{2}))
	assert.Equal(t, 0.0, pearson(nil, nil))
	assert.False(t, math.IsNaN(pearson([]float64{0, 0}, []float64{0, 0})))
}

func TestAlignByTimestamp(t *testing.T) {
	a := []series.EquityPoint{
		{T: "t1", V: 1}, {T: "t2", V: 2}, {T: "t3", V: 3},
	}
	b := []series.EquityPoint{
		{T: "t2", V: 20}, {T: "t3", V: 30}, {T: "t4", V: 40},
	}

	xs, ys := alignByTimestamp(a, b)
	assert.Equal(t, []float64{2, 3}, xs)
	assert.Equal(t, []float64{20, 30}, ys)
}

func TestAlignByTimestamp_SkipsNonFinite(t *testing.T) {
	a := []series.EquityPoint{{T: "t1", V: 1}, {T: "t2", V: math.NaN()}, {T: "t3", V: 3}}
	b := []series.EquityPoint{{T: "t1", V: 10}, {T: "t2", V: 20}, {T: "t3", V: 30}}

	xs, ys := alignByTimestamp(a, b)
	assert.Equal(t, []float64{1, 3}, xs)
	assert.Equal(t, []float64{10, 30}, ys)
}

func TestCheckCorrelationGate_ViolationAboveThreshold(t *testing.T) {
	run1 := newTestRun("run_a", []float64{1, 2, 3, 4}, 100)
	run2 := newTestRun("run_b", []float64{1, 2, 3, 4}, 100) // 동일 곡선 → r=1
	run3 := newTestRun("run_c", []float64{2, 1, 4, 3}, 100) // r=0.6, 게이트 아래

	result := checkCorrelationGate([]*loadedRun{run1, run2, run3}, 0.7)

	assert.Equal(t, 3, result.TotalPairs)
	require.Len(t, result.Violations, 1)
	assert.False(t, result.Passed)
	assert.Equal(t, 1, result.ViolatingPairs)

	v := result.Violations[0]
	assert.Equal(t, "run_a", v.RunID1)
	assert.Equal(t, "run_b", v.RunID2)
	assert.Equal(t, 1.0, v.Correlation)
}

func TestCheckCorrelationGate_FewerThanTwoSharedPointsIsZero(t *testing.T) {
	run1 := newTestRun("run_a", []float64{1, 2, 3}, 100)
	run2 := &loadedRun{path: "mem", result: testResult("run_b", "USD", nil, 100)}
	// run_b는 공유 타임스탬프가 없음 → r=0, 위반 아님
	result := checkCorrelationGate([]*loadedRun{run1, run2}, 0.7)

	assert.True(t, result.Passed)
	assert.Empty(t, result.Violations)
	assert.Equal(t, 1, result.TotalPairs)
}
