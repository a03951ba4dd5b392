package http

import (
	"fmt"
	"net/http"

	"github.com/venuedesk/finance-backend-go/internal/domain/settlement"
	"github.com/venuedesk/finance-backend-go/internal/handler/http/response"
	"github.com/venuedesk/finance-backend-go/internal/pkg/export"
	"github.com/venuedesk/finance-backend-go/internal/pkg/validator"
)

type SettlementHandler interface {
	GetSettlements(w http.ResponseWriter, r *http.Request)
	ExportSettlements(w http.ResponseWriter, r *http.Request)
}

type settlementHandlerImpl struct {
	settlementService settlement.Service
}

func NewSettlementHandler(settlementService settlement.Service) SettlementHandler {
	return &settlementHandlerImpl{
		settlementService: settlementService,
	}
}

func parseSettlementParams(r *http.Request) (settlement.Params, map[string]string) {
	q := r.URL.Query()
	var p settlement.Params
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
	p.IncludeInactive = q.Get("include_inactive") == "true"

	if len(details) == 0 {
		details = nil
	}
	return p, details
}

// GetSettlements handles GET /settlements
func (h *settlementHandlerImpl) GetSettlements(w http.ResponseWriter, r *http.Request) {
	p, details := parseSettlementParams(r)
	if details != nil {
		response.BadRequest(w, "invalid query parameters", details)
		return
	}

	result, err := h.settlementService.Settle(r.Context(), p)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ExportSettlements handles GET /settlements/export?format=csv|xlsx.
// Amounts are rounded to whole currency units here, at the export
// boundary only.
func (h *settlementHandlerImpl) ExportSettlements(w http.ResponseWriter, r *http.Request) {
	p, details := parseSettlementParams(r)
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

	result, err := h.settlementService.Settle(r.Context(), p)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	table := export.SettlementTable(result)
	filename := fmt.Sprintf("settlements_%s_%s.%s", result.Period.From, result.Period.To, format)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	switch format {
	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		err = export.WriteCSV(w, table)
	case "xlsx":
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		err = export.WriteXLSX(w, table, "Settlements")
	}
	if err != nil {
		// Headers are already sent; nothing useful left to do beyond
		// logging at the middleware level.
		return
	}
}
