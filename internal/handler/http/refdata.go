package http

import (
	"net/http"

	"github.com/venuedesk/finance-backend-go/internal/domain/refdata"
	"github.com/venuedesk/finance-backend-go/internal/handler/http/response"
)

type RefdataHandler interface {
	ListCompanies(w http.ResponseWriter, r *http.Request)
	ListOperators(w http.ResponseWriter, r *http.Request)
	ListSalaryRules(w http.ResponseWriter, r *http.Request)
}

type refdataHandlerImpl struct {
	companyRepo  refdata.CompanyRepository
	operatorRepo refdata.OperatorRepository
	ruleRepo     refdata.SalaryRuleRepository
}

func NewRefdataHandler(
	companyRepo refdata.CompanyRepository,
	operatorRepo refdata.OperatorRepository,
	ruleRepo refdata.SalaryRuleRepository,
) RefdataHandler {
	return &refdataHandlerImpl{
		companyRepo:  companyRepo,
		operatorRepo: operatorRepo,
		ruleRepo:     ruleRepo,
	}
}

type companyResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

type operatorResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	ShortName *string `json:"short_name,omitempty"`
	IsActive  bool    `json:"is_active"`
}

type salaryRuleResponse struct {
	ID                 string `json:"id"`
	CompanyCode        string `json:"company_code"`
	ShiftType          string `json:"shift_type"`
	BasePerShift       string `json:"base_per_shift"`
	Threshold1Turnover string `json:"threshold1_turnover"`
	Threshold1Bonus    string `json:"threshold1_bonus"`
	Threshold2Turnover string `json:"threshold2_turnover"`
	Threshold2Bonus    string `json:"threshold2_bonus"`
	IsActive           bool   `json:"is_active"`
}

// ListCompanies handles GET /refdata/companies
func (h *refdataHandlerImpl) ListCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := h.companyRepo.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result := make([]companyResponse, 0, len(companies))
	for _, c := range companies {
		result = append(result, companyResponse{ID: c.ID, Name: c.Name, Code: c.Code})
	}
	response.Success(w, result)
}

// ListOperators handles GET /refdata/operators
func (h *refdataHandlerImpl) ListOperators(w http.ResponseWriter, r *http.Request) {
	operators, err := h.operatorRepo.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result := make([]operatorResponse, 0, len(operators))
	for _, o := range operators {
		result = append(result, operatorResponse{
			ID:        o.ID,
			Name:      o.Name,
			ShortName: o.ShortName,
			IsActive:  o.IsActive,
		})
	}
	response.Success(w, result)
}

// ListSalaryRules handles GET /refdata/salary-rules
func (h *refdataHandlerImpl) ListSalaryRules(w http.ResponseWriter, r *http.Request) {
	rules, err := h.ruleRepo.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result := make([]salaryRuleResponse, 0, len(rules))
	for _, rule := range rules {
		result = append(result, salaryRuleResponse{
			ID:                 rule.ID,
			CompanyCode:        rule.CompanyCode,
			ShiftType:          string(rule.ShiftType),
			BasePerShift:       rule.BasePerShift.String(),
			Threshold1Turnover: rule.Threshold1Turnover.String(),
			Threshold1Bonus:    rule.Threshold1Bonus.String(),
			Threshold2Turnover: rule.Threshold2Turnover.String(),
			Threshold2Bonus:    rule.Threshold2Bonus.String(),
			IsActive:           rule.IsActive,
		})
	}
	response.Success(w, result)
}
