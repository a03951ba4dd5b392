package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/venuedesk/finance-backend-go/internal/domain/refdata"
	"github.com/venuedesk/finance-backend-go/internal/pkg/database"
)

type operatorRepositoryImpl struct {
	db *database.DB
}

func NewOperatorRepository(db *database.DB) refdata.OperatorRepository {
	return &operatorRepositoryImpl{db: db}
}

func (r *operatorRepositoryImpl) List(ctx context.Context) ([]refdata.Operator, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, short_name, is_active, created_at, updated_at
		FROM operators
		ORDER BY name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list operators: %w", err)
	}
	defer rows.Close()

	var operators []refdata.Operator
	for rows.Next() {
		var o refdata.Operator
		if err := rows.Scan(&o.ID, &o.Name, &o.ShortName, &o.IsActive, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan operator: %w", err)
		}
		operators = append(operators, o)
	}

	return operators, rows.Err()
}

func (r *operatorRepositoryImpl) GetByID(ctx context.Context, id string) (refdata.Operator, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, short_name, is_active, created_at, updated_at
		FROM operators
		WHERE id = $1
	`

	var o refdata.Operator
	err := q.QueryRow(ctx, query, id).Scan(&o.ID, &o.Name, &o.ShortName, &o.IsActive, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return refdata.Operator{}, refdata.ErrOperatorNotFound
		}
		return refdata.Operator{}, fmt.Errorf("failed to get operator: %w", err)
	}

	return o, nil
}
