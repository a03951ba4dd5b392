package forecast

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RejectsBadParameters(t *testing.T) {
	t.Parallel()

	_, err := New(-0.1, 0.3, 0.15)
	assert.Error(t, err)

	_, err = New(1.1, 0.3, 0.15)
	assert.Error(t, err)

	_, err = New(0.5, -0.3, 0.15)
	assert.Error(t, err)

	_, err = New(0.5, 0.3, -1)
	assert.Error(t, err)

	_, err = New(0.5, 0.3, 0.15)
	assert.NoError(t, err)
}

func TestFit_GoldenSeries(t *testing.T) {
	t.Parallel()

	// Worked by hand with alpha=0.5, beta=0.3, clamp=0.15:
	//   init            L=100    T=20
	//   y=120           L=120    T=20 -> clamped to 18
	//   y=110           L=124    T=13.8
	//   y=130           L=133.9  T=12.63
	m := Default().Fit([]float64{100, 120, 110, 130})

	assert.InDelta(t, 133.9, m.Level, 1e-9)
	assert.InDelta(t, 12.63, m.Trend, 1e-9)
	assert.InDelta(t, 146.53, m.Next(), 1e-9)
	assert.GreaterOrEqual(t, m.Next(), 0.0)
}

func TestFit_DegenerateSeries(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.0, Default().Fit(nil).Next())
	assert.Equal(t, 0.0, Default().Fit([]float64{}).Next())

	// A single point forecasts itself unchanged.
	assert.Equal(t, 42.0, Default().Fit([]float64{42}).Next())
}

func TestForecast_FlooredAtZero(t *testing.T) {
	t.Parallel()

	m := Default().Fit([]float64{100, 50, 10, 1})
	require.Negative(t, m.Trend)

	// Far enough ahead the raw projection goes negative; the
	// forecast must not.
	assert.Equal(t, 0.0, m.Forecast(50))
}

func TestFit_TrendClampInvariant(t *testing.T) {
	t.Parallel()

	s := Default()
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 100; trial++ {
		n := 2 + rng.Intn(30)
		series := make([]float64, n)
		for i := range series {
			series[i] = rng.Float64()*200000 - 20000
		}

		// Replaying the prefix of the series checks the invariant
		// after every update step, not just the final one.
		for k := 2; k <= n; k++ {
			m := s.Fit(series[:k])
			limit := abs(m.Level)*s.ClampFraction + 1e-9
			assert.LessOrEqual(t, abs(m.Trend), limit)
		}
	}
}

func TestFit_MultiStepIsLinearInTrend(t *testing.T) {
	t.Parallel()

	m := Default().Fit([]float64{100, 120, 110, 130})
	assert.InDelta(t, m.Level+3*m.Trend, m.Forecast(3), 1e-9)
}
