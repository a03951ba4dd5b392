package refdata

import "errors"

var (
	ErrCompanyNotFound    = errors.New("company not found")
	ErrOperatorNotFound   = errors.New("operator not found")
	ErrSalaryRuleNotFound = errors.New("salary rule not found")
)
