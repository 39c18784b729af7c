package service

import (
	"context"
	"strings"

	"github.com/epimonos/statement-backend/internal/domain"
	"github.com/epimonos/statement-backend/internal/finance"
	"github.com/epimonos/statement-backend/internal/render"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// CustomerService serves read-only views of stored customers and their loans
type CustomerService struct {
	customerRepo domain.CustomerRepository
	loanRepo     domain.LoanRepository
	clock        render.Clock
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo domain.CustomerRepository, loanRepo domain.LoanRepository) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		loanRepo:     loanRepo,
		clock:        render.SystemClock{},
	}
}

// WithClock replaces the clock used for overdue checks
func (s *CustomerService) WithClock(clock render.Clock) *CustomerService {
	s.clock = clock
	return s
}

// LoanSummary is a stored loan with its derived payment figures.
// ProjectedBalance is only filled in by ProjectLoans.
type LoanSummary struct {
	Line             domain.LoanLine
	Status           string
	IsOverdue        bool
	HasAmountDue     bool
	ProjectedBalance decimal.NullDecimal
}

// GetCustomer returns one customer record
func (s *CustomerService) GetCustomer(ctx context.Context, customerID string) (*domain.CustomerRecord, error) {
	return s.customerRepo.GetByCustomerID(ctx, strings.TrimSpace(customerID))
}

// ListLoans returns the customer's loans with recomputed monthly payments.
// A loan with unusable terms is listed without a payment.
func (s *CustomerService) ListLoans(ctx context.Context, customerID string) ([]LoanSummary, error) {
	customerID = strings.TrimSpace(customerID)
	if _, err := s.customerRepo.GetByCustomerID(ctx, customerID); err != nil {
		return nil, err
	}

	recs, err := s.loanRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		log.Error().Err(err).Str("customer_id", customerID).Msg("Failed to list loans")
		return nil, err
	}

	today := s.clock.Now()
	summaries := make([]LoanSummary, 0, len(recs))
	for _, rec := range recs {
		line := rec.Line()
		if payment, err := finance.MonthlyPayment(line.Principal, line.AnnualRate, line.TermMonths); err == nil {
			line.MonthlyPayment = decimal.NewNullDecimal(payment)
		} else {
			log.Warn().Err(err).Str("account_number", rec.AccountNumber).Msg("Loan has invalid terms")
		}
		summaries = append(summaries, LoanSummary{
			Line:         line,
			Status:       rec.Status,
			IsOverdue:    finance.IsOverdue(line.NextPaymentDate, today),
			HasAmountDue: finance.HasAmountDue(line.AmountDue),
		})
	}
	return summaries, nil
}

// ProjectLoans lists the customer's loans with the balance the amortization
// schedule expects after paymentsMade level payments from origination.
func (s *CustomerService) ProjectLoans(ctx context.Context, customerID string, paymentsMade int32) ([]LoanSummary, error) {
	summaries, err := s.ListLoans(ctx, customerID)
	if err != nil {
		return nil, err
	}

	for i := range summaries {
		line := summaries[i].Line
		balance, err := finance.ProjectedBalance(line.Principal, line.AnnualRate, line.TermMonths, paymentsMade)
		if err != nil {
			continue
		}
		summaries[i].ProjectedBalance = decimal.NewNullDecimal(balance)
	}
	return summaries, nil
}
