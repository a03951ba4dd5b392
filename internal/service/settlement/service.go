package settlement

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/venuedesk/finance-backend-go/internal/config"
	"github.com/venuedesk/finance-backend-go/internal/domain/refdata"
	"github.com/venuedesk/finance-backend-go/internal/domain/settlement"
	"github.com/venuedesk/finance-backend-go/internal/domain/transaction"
)

type SettlementServiceImpl struct {
	recordRepo transaction.RecordRepository
	debtRepo   transaction.DebtRepository
	refLoader  refdata.Loader
	engineCfg  config.EngineConfig
}

func NewSettlementService(
	recordRepo transaction.RecordRepository,
	debtRepo transaction.DebtRepository,
	refLoader refdata.Loader,
	engineCfg config.EngineConfig,
) settlement.Service {
	return &SettlementServiceImpl{
		recordRepo: recordRepo,
		debtRepo:   debtRepo,
		refLoader:  refLoader,
		engineCfg:  engineCfg,
	}
}

func (s *SettlementServiceImpl) Settle(ctx context.Context, p settlement.Params) (settlement.Result, error) {
	if err := p.Validate(); err != nil {
		return settlement.Result{}, err
	}
	p = p.Normalized()

	refs, err := s.refLoader.Load(ctx)
	if err != nil {
		return settlement.Result{}, fmt.Errorf("failed to load reference data: %w", err)
	}

	filter := transaction.Filter{From: p.From, To: p.To, CompanyID: p.CompanyID}
	income, err := s.recordRepo.ListIncome(ctx, filter)
	if err != nil {
		return settlement.Result{}, fmt.Errorf("failed to fetch income rows: %w", err)
	}
	adjustments, err := s.recordRepo.ListAdjustments(ctx, filter)
	if err != nil {
		return settlement.Result{}, fmt.Errorf("failed to fetch adjustments: %w", err)
	}
	debts, err := s.debtRepo.ListActive(ctx, p.From, p.To)
	if err != nil {
		return settlement.Result{}, fmt.Errorf("failed to fetch standing debts: %w", err)
	}

	defaultBase := decimal.NewFromFloat(s.engineCfg.DefaultBasePerShift)
	settlements := computeSettlements(p, income, adjustments, debts, refs, defaultBase)

	total := decimal.Zero
	for _, st := range settlements {
		total = total.Add(st.FinalSalary)
	}

	return settlement.Result{
		Period: settlement.PeriodDTO{
			From: p.From.Format("2006-01-02"),
			To:   p.To.Format("2006-01-02"),
		},
		Settlements: settlements,
		TotalPayout: total,
	}, nil
}
