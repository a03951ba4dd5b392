package postgresql

import (
	"context"
	"fmt"

	"github.com/venuedesk/finance-backend-go/internal/domain/refdata"
)

type referenceLoaderImpl struct {
	companyRepo  refdata.CompanyRepository
	operatorRepo refdata.OperatorRepository
	ruleRepo     refdata.SalaryRuleRepository
}

// NewReferenceLoader assembles the full reference snapshot the engine
// expects to have fully loaded before any aggregation call.
func NewReferenceLoader(
	companyRepo refdata.CompanyRepository,
	operatorRepo refdata.OperatorRepository,
	ruleRepo refdata.SalaryRuleRepository,
) refdata.Loader {
	return &referenceLoaderImpl{
		companyRepo:  companyRepo,
		operatorRepo: operatorRepo,
		ruleRepo:     ruleRepo,
	}
}

func (l *referenceLoaderImpl) Load(ctx context.Context) (*refdata.Set, error) {
	companies, err := l.companyRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load companies: %w", err)
	}
	operators, err := l.operatorRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load operators: %w", err)
	}
	rules, err := l.ruleRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load salary rules: %w", err)
	}
	return refdata.NewSet(companies, operators, rules), nil
}
