package refdata

import (
	"time"

	"github.com/shopspring/decimal"
)

// Company - one venue/outlet of the business
type Company struct {
	ID   string
	Name string
	// Code is a short stable identifier used to resolve special-cased
	// venues (the "extra" venue excluded from totals by default) and to
	// key salary rules.
	Code      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ShiftType enum
type ShiftType string

const (
	ShiftDay   ShiftType = "day"
	ShiftNight ShiftType = "night"
)

// Operator - a person working shifts at the venues
type Operator struct {
	ID        string
	Name      string
	ShortName *string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DisplayName prefers the short name when one is set.
func (o Operator) DisplayName() string {
	if o.ShortName != nil && *o.ShortName != "" {
		return *o.ShortName
	}
	return o.Name
}

// SalaryRule - per (company code, shift type) base pay plus up to two
// turnover bonus tiers. A zero threshold disables its tier. Tiers are
// additive: both can fire on the same shift.
type SalaryRule struct {
	ID                 string
	CompanyCode        string
	ShiftType          ShiftType
	BasePerShift       decimal.Decimal
	Threshold1Turnover decimal.Decimal
	Threshold1Bonus    decimal.Decimal
	Threshold2Turnover decimal.Decimal
	Threshold2Bonus    decimal.Decimal
	IsActive           bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Set is an immutable in-memory snapshot of all reference data,
// loaded once per engine call. The engine never reads ambient state;
// everything it resolves comes from here.
type Set struct {
	Companies   []Company
	Operators   []Operator
	SalaryRules []SalaryRule

	companyByID   map[string]Company
	companyByCode map[string]Company
	operatorByID  map[string]Operator
	ruleByKey     map[ruleKey]SalaryRule
}

type ruleKey struct {
	companyCode string
	shiftType   ShiftType
}

// NewSet indexes the reference collections for lookup. Inactive salary
// rules are kept out of the index so they never resolve.
func NewSet(companies []Company, operators []Operator, rules []SalaryRule) *Set {
	s := &Set{
		Companies:     companies,
		Operators:     operators,
		SalaryRules:   rules,
		companyByID:   make(map[string]Company, len(companies)),
		companyByCode: make(map[string]Company, len(companies)),
		operatorByID:  make(map[string]Operator, len(operators)),
		ruleByKey:     make(map[ruleKey]SalaryRule, len(rules)),
	}
	for _, c := range companies {
		s.companyByID[c.ID] = c
		s.companyByCode[c.Code] = c
	}
	for _, o := range operators {
		s.operatorByID[o.ID] = o
	}
	for _, r := range rules {
		if !r.IsActive {
			continue
		}
		s.ruleByKey[ruleKey{r.CompanyCode, r.ShiftType}] = r
	}
	return s
}

func (s *Set) CompanyByID(id string) (Company, bool) {
	c, ok := s.companyByID[id]
	return c, ok
}

func (s *Set) CompanyByCode(code string) (Company, bool) {
	c, ok := s.companyByCode[code]
	return c, ok
}

func (s *Set) OperatorByID(id string) (Operator, bool) {
	o, ok := s.operatorByID[id]
	return o, ok
}

// RuleFor resolves the active salary rule for a company code and shift
// type. Absent rules fall back to the configured default base amount
// in the settlement engine.
func (s *Set) RuleFor(companyCode string, shiftType ShiftType) (SalaryRule, bool) {
	r, ok := s.ruleByKey[ruleKey{companyCode, shiftType}]
	return r, ok
}

// ActiveOperators returns operators with IsActive set, preserving
// input order.
func (s *Set) ActiveOperators() []Operator {
	out := make([]Operator, 0, len(s.Operators))
	for _, o := range s.Operators {
		if o.IsActive {
			out = append(out, o)
		}
	}
	return out
}
