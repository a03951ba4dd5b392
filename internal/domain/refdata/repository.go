package refdata

import "context"

type CompanyRepository interface {
	List(ctx context.Context) ([]Company, error)
	GetByID(ctx context.Context, id string) (Company, error)
}

type OperatorRepository interface {
	List(ctx context.Context) ([]Operator, error)
	GetByID(ctx context.Context, id string) (Operator, error)
}

type SalaryRuleRepository interface {
	List(ctx context.Context) ([]SalaryRule, error)
}

// Loader assembles the full reference snapshot for one engine call.
type Loader interface {
	Load(ctx context.Context) (*Set, error)
}
