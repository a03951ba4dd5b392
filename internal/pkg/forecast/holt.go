// Package forecast implements damped double exponential smoothing
// (Holt's linear trend) for short revenue/profit series.
package forecast

import "fmt"

const (
	DefaultAlpha         = 0.5
	DefaultBeta          = 0.3
	DefaultClampFraction = 0.15
)

// Smoother holds the smoothing parameters. Alpha weights the level,
// Beta weights the trend, ClampFraction bounds the trend relative to
// the level so a noisy short series cannot extrapolate away.
type Smoother struct {
	Alpha         float64
	Beta          float64
	ClampFraction float64
}

// New validates the parameters. Out-of-range values are a programming
// error on the caller's side, not a data problem, so they fail loudly.
func New(alpha, beta, clampFraction float64) (*Smoother, error) {
	if alpha < 0 || alpha > 1 {
		return nil, fmt.Errorf("forecast: alpha must be in [0, 1], got %v", alpha)
	}
	if beta < 0 || beta > 1 {
		return nil, fmt.Errorf("forecast: beta must be in [0, 1], got %v", beta)
	}
	if clampFraction < 0 {
		return nil, fmt.Errorf("forecast: clamp fraction must be non-negative, got %v", clampFraction)
	}
	return &Smoother{Alpha: alpha, Beta: beta, ClampFraction: clampFraction}, nil
}

// Default returns a Smoother with the standard parameters.
func Default() *Smoother {
	s, _ := New(DefaultAlpha, DefaultBeta, DefaultClampFraction)
	return s
}

// Model is the fitted level/trend state after consuming a series.
type Model struct {
	Level  float64
	Trend  float64
	points int
}

// Fit runs the recurrence over a chronological series:
//
//	L' = alpha*y + (1-alpha)*(L+T)
//	T' = beta*(L'-L) + (1-beta)*T, then |T'| clamped to |L'|*ClampFraction
//
// The level update uses the old trend; the trend update compares the
// new level against the old one. Initialization is L=series[0],
// T=series[1]-series[0].
func (s *Smoother) Fit(series []float64) Model {
	m := Model{points: len(series)}
	if len(series) == 0 {
		return m
	}
	m.Level = series[0]
	if len(series) == 1 {
		return m
	}
	m.Trend = series[1] - series[0]

	for _, y := range series[1:] {
		level := s.Alpha*y + (1-s.Alpha)*(m.Level+m.Trend)
		trend := s.Beta*(level-m.Level) + (1-s.Beta)*m.Trend

		limit := abs(level) * s.ClampFraction
		if trend > limit {
			trend = limit
		} else if trend < -limit {
			trend = -limit
		}

		m.Level = level
		m.Trend = trend
	}
	return m
}

// Forecast projects the value `steps` buckets ahead of the fitted
// series, floored at zero. Degenerate series give neutral results:
// an empty series forecasts 0, a single point forecasts itself.
func (m Model) Forecast(steps int) float64 {
	switch m.points {
	case 0:
		return 0
	case 1:
		return m.Level
	}
	v := m.Level + float64(steps)*m.Trend
	if v < 0 {
		return 0
	}
	return v
}

// Next is the one-step-ahead forecast.
func (m Model) Next() float64 {
	return m.Forecast(1)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
