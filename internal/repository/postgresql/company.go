package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/venuedesk/finance-backend-go/internal/domain/refdata"
	"github.com/venuedesk/finance-backend-go/internal/pkg/database"
)

type companyRepositoryImpl struct {
	db *database.DB
}

func NewCompanyRepository(db *database.DB) refdata.CompanyRepository {
	return &companyRepositoryImpl{db: db}
}

func (r *companyRepositoryImpl) List(ctx context.Context) ([]refdata.Company, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, code, created_at, updated_at
		FROM companies
		ORDER BY name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	defer rows.Close()

	var companies []refdata.Company
	for rows.Next() {
		var c refdata.Company
		if err := rows.Scan(&c.ID, &c.Name, &c.Code, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		companies = append(companies, c)
	}

	return companies, rows.Err()
}

func (r *companyRepositoryImpl) GetByID(ctx context.Context, id string) (refdata.Company, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, code, created_at, updated_at
		FROM companies
		WHERE id = $1
	`

	var c refdata.Company
	err := q.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Code, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return refdata.Company{}, refdata.ErrCompanyNotFound
		}
		return refdata.Company{}, fmt.Errorf("failed to get company: %w", err)
	}

	return c, nil
}
