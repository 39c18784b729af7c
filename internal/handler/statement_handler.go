package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/epimonos/statement-backend/internal/domain"
	"github.com/epimonos/statement-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// HeaderStatementID carries the reference id of a rendered statement
const HeaderStatementID = "X-Statement-ID"

// StatementGenerator renders statements; satisfied by *service.StatementService
type StatementGenerator interface {
	Generate(req service.StatementRequest) (*service.RenderedStatement, error)
	GenerateFromRecords(ctx context.Context, req service.RecordsRequest) (*service.RenderedStatement, error)
}

// StatementHandler handles statement rendering requests
type StatementHandler struct {
	statementService StatementGenerator
}

// NewStatementHandler creates a new StatementHandler
func NewStatementHandler(statementService StatementGenerator) *StatementHandler {
	return &StatementHandler{statementService: statementService}
}

// RecordsStatementRequest represents the request body for rendering stored records
type RecordsStatementRequest struct {
	CustomerIDs        []string `json:"customerIds"`
	LoanAccountNumbers []string `json:"loanAccountNumbers"`
	PeriodStart        string   `json:"periodStart"`
	PeriodEnd          string   `json:"periodEnd"`
	Format             string   `json:"format"`
}

// Generate handles POST /api/statements, /api/generate-statement and /api/v1/statements.
// The body is a service.StatementPayload with either "customer" or "customers".
func (h *StatementHandler) Generate(c echo.Context) error {
	var payload service.StatementPayload
	if err := c.Bind(&payload); err != nil {
		log.Debug().Err(err).Msg("Failed to bind statement payload")
		return NewValidationError(c, "Invalid request body", nil)
	}

	req, err := payload.ToRequest()
	if err != nil {
		return statementError(c, err)
	}

	stmt, err := h.statementService.Generate(req)
	if err != nil {
		return statementError(c, err)
	}
	return sendStatement(c, stmt)
}

// GenerateFromRecords handles POST /api/v1/statements/from-records
func (h *StatementHandler) GenerateFromRecords(c echo.Context) error {
	var req RecordsStatementRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	start, err := time.Parse(domain.DateLayout, req.PeriodStart)
	if err != nil {
		return NewValidationError(c, "Invalid period start", []ValidationError{
			{Field: "periodStart", Message: "Must be in YYYY-MM-DD format"},
		})
	}
	end, err := time.Parse(domain.DateLayout, req.PeriodEnd)
	if err != nil {
		return NewValidationError(c, "Invalid period end", []ValidationError{
			{Field: "periodEnd", Message: "Must be in YYYY-MM-DD format"},
		})
	}

	format := domain.FormatPDF
	if req.Format != "" {
		if format, err = domain.ParseFormat(req.Format); err != nil {
			return statementError(c, err)
		}
	}

	stmt, err := h.statementService.GenerateFromRecords(c.Request().Context(), service.RecordsRequest{
		CustomerIDs:        req.CustomerIDs,
		LoanAccountNumbers: req.LoanAccountNumbers,
		Period:             domain.BillingPeriod{Start: start, End: end},
		Format:             format,
	})
	if err != nil {
		return statementError(c, err)
	}
	return sendStatement(c, stmt)
}

func sendStatement(c echo.Context, stmt *service.RenderedStatement) error {
	h := c.Response().Header()
	h.Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", stmt.Filename))
	h.Set(HeaderStatementID, stmt.ID)
	return c.Blob(http.StatusOK, stmt.MediaType, stmt.Bytes)
}

// statementError maps statement errors to problem details
func statementError(c echo.Context, err error) error {
	switch {
	case domain.IsValidationError(err):
		return NewValidationError(c, err.Error(), validationFields(err))
	case errors.Is(err, domain.ErrCustomerNotFound),
		errors.Is(err, domain.ErrLoanNotFound):
		return NewNotFoundError(c, err.Error())
	}
	log.Error().Err(err).Str("path", c.Request().URL.Path).Msg("Failed to generate statement")
	return NewInternalError(c, "Failed to generate statement")
}

func validationFields(err error) []ValidationError {
	switch {
	case errors.Is(err, domain.ErrMissingCustomer):
		return []ValidationError{{Field: "customers", Message: "At least one customer is required"}}
	case errors.Is(err, domain.ErrNoLoanData):
		return []ValidationError{{Field: "loans", Message: "At least one loan is required"}}
	case errors.Is(err, domain.ErrInvalidLoanTerms):
		return []ValidationError{{Field: "loans.term_months", Message: "Must be at least 1"}}
	case errors.Is(err, domain.ErrUnsupportedFormat):
		return []ValidationError{{Field: "statement_format", Message: "Must be one of pdf, xlsx, txt"}}
	case errors.Is(err, domain.ErrInvalidBillingPeriod):
		return []ValidationError{{Field: "billing_period", Message: "Start must not be after end"}}
	case errors.Is(err, domain.ErrLoanNotOwned):
		return []ValidationError{{Field: "loanAccountNumbers", Message: "Loan does not belong to the requested customers"}}
	}
	return nil
}
