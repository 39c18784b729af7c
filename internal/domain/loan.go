package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrLoanNotFound = errors.New("loan not found")
	ErrLoanNotOwned = errors.New("loan does not belong to any of the specified customers")
)

// LoanLine is one loan as it appears on a statement.
// MonthlyPayment is derived by the statement builder and never read from storage.
type LoanLine struct {
	ID              string              `json:"loanId"`
	Category        string              `json:"category"`
	Principal       decimal.Decimal     `json:"principal"`
	AnnualRate      decimal.Decimal     `json:"interestRate"`
	TermMonths      int32               `json:"termMonths"`
	CurrentBalance  decimal.Decimal     `json:"currentBalance"`
	MonthlyPayment  decimal.NullDecimal `json:"monthlyPayment"`
	NextPaymentDate *time.Time          `json:"nextPaymentDate,omitempty"`
	AmountDue       *decimal.Decimal    `json:"amountDue,omitempty"`
}

// LoanRecord is a loan row as stored by the persistence layer
type LoanRecord struct {
	ID              int64
	AccountNumber   string
	CustomerID      string
	LoanType        string
	Principal       decimal.Decimal
	InterestRate    decimal.Decimal
	TermMonths      int32
	CurrentBalance  decimal.Decimal
	AmountDue       decimal.Decimal
	NextPaymentDate *time.Time
	Status          string
}

// Line converts the record into a statement line. The monthly payment is left unset.
func (l *LoanRecord) Line() LoanLine {
	line := LoanLine{
		ID:             l.AccountNumber,
		Category:       l.LoanType,
		Principal:      l.Principal,
		AnnualRate:     l.InterestRate,
		TermMonths:     l.TermMonths,
		CurrentBalance: l.CurrentBalance,
	}
	if l.NextPaymentDate != nil {
		d := *l.NextPaymentDate
		line.NextPaymentDate = &d
	}
	if !l.AmountDue.IsZero() {
		amt := l.AmountDue
		line.AmountDue = &amt
	}
	return line
}

type LoanRepository interface {
	GetByAccountNumber(ctx context.Context, accountNumber string) (*LoanRecord, error)
	ListByCustomer(ctx context.Context, customerID string) ([]*LoanRecord, error)
}
