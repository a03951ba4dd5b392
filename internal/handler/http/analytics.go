package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/venuedesk/finance-backend-go/internal/domain/analytics"
	"github.com/venuedesk/finance-backend-go/internal/handler/http/response"
	"github.com/venuedesk/finance-backend-go/internal/pkg/export"
	"github.com/venuedesk/finance-backend-go/internal/pkg/timebucket"
	"github.com/venuedesk/finance-backend-go/internal/pkg/validator"
)

type AnalyticsHandler interface {
	GetSummary(w http.ResponseWriter, r *http.Request)
	GetSeries(w http.ResponseWriter, r *http.Request)
	GetExpenseCategories(w http.ResponseWriter, r *http.Request)
	ExportExpenseCategories(w http.ResponseWriter, r *http.Request)
	GetAnomalies(w http.ResponseWriter, r *http.Request)
	GetForecast(w http.ResponseWriter, r *http.Request)
}

type analyticsHandlerImpl struct {
	analyticsService analytics.Service
}

func NewAnalyticsHandler(analyticsService analytics.Service) AnalyticsHandler {
	return &analyticsHandlerImpl{
		analyticsService: analyticsService,
	}
}

// parseAnalyticsParams parses the shared filter query parameters:
// from, to, company, operator, include_extra, granularity, and the
// optional smoothing overrides alpha, beta, clamp_fraction.
func parseAnalyticsParams(r *http.Request) (analytics.Params, map[string]string) {
	q := r.URL.Query()
	var p analytics.Params
	details := make(map[string]string)

	from, ok := validator.IsValidDate(q.Get("from"))
	if !ok {
		details["from"] = "must be a date in YYYY-MM-DD format"
	}
	to, ok := validator.IsValidDate(q.Get("to"))
	if !ok {
		details["to"] = "must be a date in YYYY-MM-DD format"
	}
	p.From, p.To = from, to

	if v := q.Get("company"); v != "" {
		p.CompanyID = &v
	}
	if v := q.Get("operator"); v != "" {
		p.OperatorID = &v
	}
	p.IncludeExtraVenue = q.Get("include_extra") == "true"

	if v := q.Get("granularity"); v != "" {
		g, ok := timebucket.ParseGranularity(v)
		if !ok {
			details["granularity"] = "must be one of day, week, month, year"
		}
		p.Granularity = g
	}

	for _, f := range []struct {
		name string
		dst  **float64
	}{
		{"alpha", &p.Alpha},
		{"beta", &p.Beta},
		{"clamp_fraction", &p.ClampFraction},
	} {
		if v := q.Get(f.name); v != "" {
			parsed, err := strconv.ParseFloat(v, 64)
			if err != nil {
				details[f.name] = "must be a number"
				continue
			}
			*f.dst = &parsed
		}
	}

	if len(details) == 0 {
		details = nil
	}
	return p, details
}

// GetSummary handles GET /analytics/summary
func (h *analyticsHandlerImpl) GetSummary(w http.ResponseWriter, r *http.Request) {
	p, details := parseAnalyticsParams(r)
	if details != nil {
		response.BadRequest(w, "invalid query parameters", details)
		return
	}

	result, err := h.analyticsService.Summary(r.Context(), p)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetSeries handles GET /analytics/series
func (h *analyticsHandlerImpl) GetSeries(w http.ResponseWriter, r *http.Request) {
	p, details := parseAnalyticsParams(r)
	if details != nil {
		response.BadRequest(w, "invalid query parameters", details)
		return
	}

	result, err := h.analyticsService.Series(r.Context(), p)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetExpenseCategories handles GET /analytics/categories
func (h *analyticsHandlerImpl) GetExpenseCategories(w http.ResponseWriter, r *http.Request) {
	p, details := parseAnalyticsParams(r)
	if details != nil {
		response.BadRequest(w, "invalid query parameters", details)
		return
	}

	result, err := h.analyticsService.ExpenseCategories(r.Context(), p)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ExportExpenseCategories handles GET /analytics/categories/export.
// Amounts round to whole currency units at this boundary only.
func (h *analyticsHandlerImpl) ExportExpenseCategories(w http.ResponseWriter, r *http.Request) {
	p, details := parseAnalyticsParams(r)
	if details != nil {
		response.BadRequest(w, "invalid query parameters", details)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "xlsx" {
		response.BadRequest(w, "invalid query parameters", map[string]string{"format": "must be csv or xlsx"})
		return
	}

	categories, err := h.analyticsService.ExpenseCategories(r.Context(), p)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	table := export.CategoryTable(categories)
	filename := fmt.Sprintf("expense_categories_%s_%s.%s",
		p.From.Format("2006-01-02"), p.To.Format("2006-01-02"), format)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	switch format {
	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		err = export.WriteCSV(w, table)
	case "xlsx":
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		err = export.WriteXLSX(w, table, "Categories")
	}
	if err != nil {
		return
	}
}

// GetAnomalies handles GET /analytics/anomalies
func (h *analyticsHandlerImpl) GetAnomalies(w http.ResponseWriter, r *http.Request) {
	p, details := parseAnalyticsParams(r)
	if details != nil {
		response.BadRequest(w, "invalid query parameters", details)
		return
	}

	result, err := h.analyticsService.Anomalies(r.Context(), p)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetForecast handles GET /analytics/forecast
func (h *analyticsHandlerImpl) GetForecast(w http.ResponseWriter, r *http.Request) {
	p, details := parseAnalyticsParams(r)
	if details != nil {
		response.BadRequest(w, "invalid query parameters", details)
		return
	}

	result, err := h.analyticsService.Forecast(r.Context(), p)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
