package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/epimonos/statement-backend/internal/domain"
	"github.com/epimonos/statement-backend/internal/finance"
	"github.com/shopspring/decimal"
)

// StatementRequest is an un-normalized statement request. Either Customer or
// Customers must be set; Customers wins when both are.
type StatementRequest struct {
	Customer  *domain.Customer
	Customers []domain.Customer
	Loans     []domain.LoanLine
	Period    domain.BillingPeriod
	Format    domain.Format
}

// BuildStatement validates a request and produces the canonical render input.
// Monthly payments are recomputed from principal, rate and term.
func BuildStatement(req StatementRequest) (*domain.StatementData, error) {
	var customers []domain.Customer
	switch {
	case len(req.Customers) > 0:
		customers = make([]domain.Customer, len(req.Customers))
		for i, c := range req.Customers {
			customers[i] = trimCustomer(c)
		}
	case req.Customer != nil:
		customers = []domain.Customer{trimCustomer(*req.Customer)}
	default:
		return nil, domain.ErrMissingCustomer
	}

	if req.Format.Extension() == "" {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, req.Format)
	}

	period := domain.BillingPeriod{
		Start: truncateDay(req.Period.Start),
		End:   truncateDay(req.Period.End),
	}
	if period.Start.After(period.End) {
		return nil, domain.ErrInvalidBillingPeriod
	}

	if len(req.Loans) == 0 && req.Format.RequiresLoans() {
		return nil, domain.ErrNoLoanData
	}

	loans := make([]domain.LoanLine, len(req.Loans))
	for i, l := range req.Loans {
		payment, err := finance.MonthlyPayment(l.Principal, l.AnnualRate, l.TermMonths)
		if err != nil {
			return nil, fmt.Errorf("loan %q: %w", l.ID, err)
		}
		l.ID = strings.TrimSpace(l.ID)
		l.Category = strings.TrimSpace(l.Category)
		l.MonthlyPayment = decimal.NewNullDecimal(payment)
		loans[i] = l
	}

	return &domain.StatementData{
		Period:    period,
		Customers: customers,
		Loans:     loans,
		Format:    req.Format,
	}, nil
}

func trimCustomer(c domain.Customer) domain.Customer {
	return domain.Customer{
		ID:      strings.TrimSpace(c.ID),
		Name:    strings.TrimSpace(c.Name),
		Address: strings.TrimSpace(c.Address),
		Phone:   strings.TrimSpace(c.Phone),
		Email:   strings.TrimSpace(c.Email),
	}
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
