package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/epimonos/statement-backend/internal/domain"
	"github.com/epimonos/statement-backend/internal/render"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Dispatcher renders canonical statement data into a document
type Dispatcher interface {
	Dispatch(data *domain.StatementData) (*render.Document, error)
}

// RenderedStatement is a rendered document plus its reference id
type RenderedStatement struct {
	ID string
	render.Document
}

// RecordsRequest asks for a statement built from stored customers and loans.
// With no account numbers every loan of the listed customers is included.
type RecordsRequest struct {
	CustomerIDs        []string
	LoanAccountNumbers []string
	Period             domain.BillingPeriod
	Format             domain.Format
}

// StatementService normalizes requests and renders statements
type StatementService struct {
	customerRepo domain.CustomerRepository
	loanRepo     domain.LoanRepository
	dispatcher   Dispatcher
	clock        render.Clock
}

// NewStatementService creates a new StatementService
func NewStatementService(customerRepo domain.CustomerRepository, loanRepo domain.LoanRepository, dispatcher Dispatcher) *StatementService {
	return &StatementService{
		customerRepo: customerRepo,
		loanRepo:     loanRepo,
		dispatcher:   dispatcher,
		clock:        render.SystemClock{},
	}
}

// WithClock replaces the clock used for statement ids
func (s *StatementService) WithClock(clock render.Clock) *StatementService {
	s.clock = clock
	return s
}

// Generate renders a statement from caller-supplied data
func (s *StatementService) Generate(req StatementRequest) (*RenderedStatement, error) {
	data, err := BuildStatement(req)
	if err != nil {
		log.Warn().Err(err).Str("format", string(req.Format)).Msg("Rejected statement request")
		return nil, err
	}

	doc, err := s.dispatcher.Dispatch(data)
	if err != nil {
		if domain.IsValidationError(err) {
			log.Warn().Err(err).Str("format", string(data.Format)).Msg("Rejected statement request")
		} else {
			log.Error().Err(err).Str("format", string(data.Format)).Msg("Failed to render statement")
		}
		return nil, err
	}

	id := NewStatementID(s.clock.Now())
	log.Info().
		Str("statement_id", id).
		Str("format", string(doc.Format)).
		Int("customers", len(data.Customers)).
		Int("loans", len(data.Loans)).
		Int("bytes", len(doc.Bytes)).
		Msg("Statement rendered")

	return &RenderedStatement{ID: id, Document: *doc}, nil
}

// GenerateFromRecords loads customers and loans from storage and renders them.
// Every named loan must belong to one of the requested customers.
func (s *StatementService) GenerateFromRecords(ctx context.Context, req RecordsRequest) (*RenderedStatement, error) {
	if len(req.CustomerIDs) == 0 {
		return nil, domain.ErrMissingCustomer
	}

	customers := make([]domain.Customer, 0, len(req.CustomerIDs))
	owners := make(map[string]bool, len(req.CustomerIDs))
	for _, id := range req.CustomerIDs {
		id = strings.TrimSpace(id)
		rec, err := s.customerRepo.GetByCustomerID(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrCustomerNotFound) {
				return nil, fmt.Errorf("%w: %s", domain.ErrCustomerNotFound, id)
			}
			log.Error().Err(err).Str("customer_id", id).Msg("Failed to load customer")
			return nil, err
		}
		customers = append(customers, rec.Snapshot())
		owners[rec.CustomerID] = true
	}

	var loans []domain.LoanLine
	if len(req.LoanAccountNumbers) > 0 {
		for _, acct := range req.LoanAccountNumbers {
			acct = strings.TrimSpace(acct)
			rec, err := s.loanRepo.GetByAccountNumber(ctx, acct)
			if err != nil {
				if errors.Is(err, domain.ErrLoanNotFound) {
					return nil, fmt.Errorf("%w: %s", domain.ErrLoanNotFound, acct)
				}
				log.Error().Err(err).Str("account_number", acct).Msg("Failed to load loan")
				return nil, err
			}
			if !owners[rec.CustomerID] {
				return nil, fmt.Errorf("%w: %s", domain.ErrLoanNotOwned, acct)
			}
			loans = append(loans, rec.Line())
		}
	} else {
		for _, c := range customers {
			recs, err := s.loanRepo.ListByCustomer(ctx, c.ID)
			if err != nil {
				log.Error().Err(err).Str("customer_id", c.ID).Msg("Failed to list loans")
				return nil, err
			}
			for _, rec := range recs {
				loans = append(loans, rec.Line())
			}
		}
	}

	return s.Generate(StatementRequest{
		Customers: customers,
		Loans:     loans,
		Period:    req.Period,
		Format:    req.Format,
	})
}

// NewStatementID returns a reference like STMT20240131A1B2C3D4
func NewStatementID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	return "STMT" + now.Format("20060102") + strings.ToUpper(suffix)
}
