package transaction

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
	"github.com/venuedesk/finance-backend-go/internal/domain/refdata"
)

// Kind discriminates the transaction row variants. Income and expense
// rows carry a method-split amount; bonus/advance/debt/fine are manual
// pay adjustments attached to an operator.
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
	KindDebt    Kind = "debt"
	KindBonus   Kind = "bonus"
	KindAdvance Kind = "advance"
	KindFine    Kind = "fine"
)

// Amount is the payment-method breakdown shared by all row variants.
// NonCash and Total are derived, never stored.
type Amount struct {
	Cash   decimal.Decimal
	Card   decimal.Decimal
	Wallet decimal.Decimal
	Other  decimal.Decimal
}

// AmountFromFloats builds an Amount from raw numeric columns,
// normalizing NULLs (passed as NaN by the scanner) and non-finite
// values to zero. Bad numeric input is "no transaction", not an error.
func AmountFromFloats(cash, card, wallet, other float64) Amount {
	return Amount{
		Cash:   safeDecimal(cash),
		Card:   safeDecimal(card),
		Wallet: safeDecimal(wallet),
		Other:  safeDecimal(other),
	}
}

func safeDecimal(v float64) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}

func (a Amount) NonCash() decimal.Decimal {
	return a.Card.Add(a.Wallet).Add(a.Other)
}

func (a Amount) Total() decimal.Decimal {
	return a.Cash.Add(a.NonCash())
}

// IsCountable reports whether the row carries a positive total.
// Zero and negative rows are not valid transactions and contribute
// nothing anywhere.
func (a Amount) IsCountable() bool {
	return a.Total().IsPositive()
}

func (a Amount) Add(b Amount) Amount {
	return Amount{
		Cash:   a.Cash.Add(b.Cash),
		Card:   a.Card.Add(b.Card),
		Wallet: a.Wallet.Add(b.Wallet),
		Other:  a.Other.Add(b.Other),
	}
}

// Record is one immutable transaction row as fetched from the store.
type Record struct {
	ID         string
	Kind       Kind
	Date       time.Time
	CompanyID  string
	OperatorID *string
	ShiftType  refdata.ShiftType
	// Category applies to expense rows only; empty maps to the
	// literal "uncategorized" bucket during aggregation.
	Category *string
	Amount   Amount
}

// DebtStatus enum for standing debts
type DebtStatus string

const (
	DebtStatusActive  DebtStatus = "active"
	DebtStatusSettled DebtStatus = "settled"
)

// StandingDebt is a weekly, non-shift-linked deduction tracked apart
// from manual adjustments. WeekStart is Monday-anchored; only active
// debts are consumed by settlement.
type StandingDebt struct {
	ID         string
	OperatorID string
	WeekStart  time.Time
	Amount     decimal.Decimal
	Status     DebtStatus
	Note       *string
}

// Filter narrows row fetches to an inclusive date range plus optional
// company/operator scoping.
type Filter struct {
	From       time.Time
	To         time.Time
	CompanyID  *string
	OperatorID *string
}
