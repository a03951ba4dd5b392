package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/venuedesk/finance-backend-go/internal/config"
	"github.com/venuedesk/finance-backend-go/internal/pkg/database"
	"github.com/venuedesk/finance-backend-go/internal/repository/postgresql"
)

// Seeds the schema and a small demonstration dataset: three venues
// (one of them the "extra" venue excluded from totals by default),
// three operators, tiered salary rules, and a week of transactions.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer db.Close()

	ctx := context.Background()

	if err := createSchema(ctx, db); err != nil {
		log.Fatal("Error creating schema: ", err)
	}

	err = postgresql.WithTransaction(ctx, db, func(tx pgx.Tx) error {
		return seed(ctx, tx, cfg.Engine.ExtraVenueCode)
	})
	if err != nil {
		log.Fatal("Error seeding data: ", err)
	}

	fmt.Println("Seed data loaded")
}

func createSchema(ctx context.Context, db *database.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS companies (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			code TEXT NOT NULL UNIQUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS operators (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			short_name TEXT,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS salary_rules (
			id UUID PRIMARY KEY,
			company_code TEXT NOT NULL,
			shift_type TEXT NOT NULL,
			base_per_shift NUMERIC NOT NULL,
			threshold1_turnover NUMERIC,
			threshold1_bonus NUMERIC,
			threshold2_turnover NUMERIC,
			threshold2_bonus NUMERIC,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			UNIQUE (company_code, shift_type)
		)`,
		`CREATE TABLE IF NOT EXISTS transactions (
			id UUID PRIMARY KEY,
			kind TEXT NOT NULL,
			date DATE NOT NULL,
			company_id UUID NOT NULL REFERENCES companies(id),
			operator_id UUID REFERENCES operators(id),
			shift_type TEXT NOT NULL DEFAULT 'day',
			category TEXT,
			amount_cash NUMERIC,
			amount_card NUMERIC,
			amount_wallet NUMERIC,
			amount_other NUMERIC
		)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_kind_date
			ON transactions (kind, date)`,
		`CREATE TABLE IF NOT EXISTS standing_debts (
			id UUID PRIMARY KEY,
			operator_id UUID NOT NULL REFERENCES operators(id),
			week_start DATE NOT NULL,
			amount NUMERIC,
			status TEXT NOT NULL DEFAULT 'active',
			note TEXT
		)`,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement failed: %w", err)
		}
	}
	return nil
}

func seed(ctx context.Context, tx pgx.Tx, extraVenueCode string) error {
	type company struct {
		id, name, code string
	}
	companies := []company{
		{uuid.NewString(), "Ramen House", "ramen"},
		{uuid.NewString(), "Noodle Bar", "noodle"},
		{uuid.NewString(), "Pop-up Stand", extraVenueCode},
	}
	for _, c := range companies {
		_, err := tx.Exec(ctx, `
			INSERT INTO companies (id, name, code)
			VALUES ($1, $2, $3)
			ON CONFLICT (code) DO NOTHING
		`, c.id, c.name, c.code)
		if err != nil {
			return fmt.Errorf("insert company %s: %w", c.code, err)
		}
	}

	type operator struct {
		id, name  string
		shortName *string
		active    bool
	}
	short := func(s string) *string { return &s }
	operators := []operator{
		{uuid.NewString(), "Aleksandra Petrova", short("Sasha"), true},
		{uuid.NewString(), "Dmitri Ivanov", short("Dima"), true},
		{uuid.NewString(), "Elena Morozova", nil, false},
	}
	for _, o := range operators {
		_, err := tx.Exec(ctx, `
			INSERT INTO operators (id, name, short_name, is_active)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (id) DO NOTHING
		`, o.id, o.name, o.shortName, o.active)
		if err != nil {
			return fmt.Errorf("insert operator %s: %w", o.name, err)
		}
	}

	rules := []struct {
		companyCode, shiftType string
		base, t1, b1, t2, b2   float64
	}{
		{"ramen", "day", 8000, 120000, 5000, 160000, 5000},
		{"ramen", "night", 9000, 100000, 5000, 140000, 5000},
		{"noodle", "day", 8000, 100000, 4000, 0, 0},
	}
	for _, r := range rules {
		_, err := tx.Exec(ctx, `
			INSERT INTO salary_rules (
				id, company_code, shift_type, base_per_shift,
				threshold1_turnover, threshold1_bonus,
				threshold2_turnover, threshold2_bonus
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (company_code, shift_type) DO NOTHING
		`, uuid.NewString(), r.companyCode, r.shiftType, r.base, r.t1, r.b1, r.t2, r.b2)
		if err != nil {
			return fmt.Errorf("insert salary rule %s/%s: %w", r.companyCode, r.shiftType, err)
		}
	}

	weekStart := mondayOf(time.Now().AddDate(0, 0, -7))
	for day := 0; day < 7; day++ {
		date := weekStart.AddDate(0, 0, day)
		for i, c := range companies[:2] {
			op := operators[day%2]
			_, err := tx.Exec(ctx, `
				INSERT INTO transactions (
					id, kind, date, company_id, operator_id, shift_type,
					amount_cash, amount_card, amount_wallet, amount_other
				)
				VALUES ($1, 'income', $2, $3, $4, 'day', $5, $6, 0, 0)
			`, uuid.NewString(), date, c.id, op.id, 45000+float64(day*1000+i*5000), 30000.0)
			if err != nil {
				return fmt.Errorf("insert income: %w", err)
			}
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO transactions (
				id, kind, date, company_id, shift_type, category,
				amount_cash, amount_card, amount_wallet, amount_other
			)
			VALUES ($1, 'expense', $2, $3, 'day', $4, $5, 0, 0, 0)
		`, uuid.NewString(), date, companies[0].id, "supplies", 12000.0)
		if err != nil {
			return fmt.Errorf("insert expense: %w", err)
		}
	}

	_, err := tx.Exec(ctx, `
		INSERT INTO standing_debts (id, operator_id, week_start, amount, status, note)
		VALUES ($1, $2, $3, $4, 'active', $5)
	`, uuid.NewString(), operators[1].id, weekStart, 3000.0, "uniform deposit")
	if err != nil {
		return fmt.Errorf("insert standing debt: %w", err)
	}

	return nil
}

func mondayOf(t time.Time) time.Time {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return d.AddDate(0, 0, -((int(d.Weekday()) + 6) % 7))
}
