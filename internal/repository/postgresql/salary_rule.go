package postgresql

import (
	"context"
	"fmt"

	"github.com/venuedesk/finance-backend-go/internal/domain/refdata"
	"github.com/venuedesk/finance-backend-go/internal/pkg/database"
)

type salaryRuleRepositoryImpl struct {
	db *database.DB
}

func NewSalaryRuleRepository(db *database.DB) refdata.SalaryRuleRepository {
	return &salaryRuleRepositoryImpl{db: db}
}

func (r *salaryRuleRepositoryImpl) List(ctx context.Context) ([]refdata.SalaryRule, error) {
	q := GetQuerier(ctx, r.db)

	// Thresholds are stored nullable; NULL means the tier is disabled
	// and folds to zero here so the engine has one representation.
	query := `
		SELECT id, company_code, shift_type, base_per_shift,
		       COALESCE(threshold1_turnover, 0), COALESCE(threshold1_bonus, 0),
		       COALESCE(threshold2_turnover, 0), COALESCE(threshold2_bonus, 0),
		       is_active, created_at, updated_at
		FROM salary_rules
		ORDER BY company_code, shift_type
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary rules: %w", err)
	}
	defer rows.Close()

	var rules []refdata.SalaryRule
	for rows.Next() {
		var rule refdata.SalaryRule
		if err := rows.Scan(
			&rule.ID, &rule.CompanyCode, &rule.ShiftType, &rule.BasePerShift,
			&rule.Threshold1Turnover, &rule.Threshold1Bonus,
			&rule.Threshold2Turnover, &rule.Threshold2Bonus,
			&rule.IsActive, &rule.CreatedAt, &rule.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan salary rule: %w", err)
		}
		rules = append(rules, rule)
	}

	return rules, rows.Err()
}
