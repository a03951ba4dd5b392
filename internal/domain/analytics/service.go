package analytics

import "context"

// Service is the read-only analytics surface over the aggregation
// engine. Every call recomputes from a fresh row snapshot; nothing is
// cached between calls.
type Service interface {
	Summary(ctx context.Context, p Params) (Summary, error)
	Series(ctx context.Context, p Params) ([]SeriesPoint, error)
	ExpenseCategories(ctx context.Context, p Params) ([]CategoryTotal, error)
	Anomalies(ctx context.Context, p Params) ([]Anomaly, error)
	Forecast(ctx context.Context, p Params) (ForecastResult, error)
}
