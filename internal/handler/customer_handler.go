package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/epimonos/statement-backend/internal/domain"
	"github.com/epimonos/statement-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// CustomerReader serves stored customers; satisfied by *service.CustomerService
type CustomerReader interface {
	GetCustomer(ctx context.Context, customerID string) (*domain.CustomerRecord, error)
	ListLoans(ctx context.Context, customerID string) ([]service.LoanSummary, error)
	ProjectLoans(ctx context.Context, customerID string, paymentsMade int32) ([]service.LoanSummary, error)
}

// CustomerHandler handles read-only customer requests
type CustomerHandler struct {
	customerService CustomerReader
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customerService CustomerReader) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	CustomerID     string `json:"customerId"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone,omitempty"`
	MailingAddress string `json:"mailingAddress,omitempty"`
	Status         string `json:"status"`
	CustomerSince  string `json:"customerSince,omitempty"`
}

// LoanResponse represents a stored loan in API responses
type LoanResponse struct {
	AccountNumber    string  `json:"accountNumber"`
	LoanType         string  `json:"loanType"`
	Principal        string  `json:"principal"`
	InterestRate     string  `json:"interestRate"`
	TermMonths       int32   `json:"termMonths"`
	CurrentBalance   string  `json:"currentBalance"`
	AmountDue        *string `json:"amountDue,omitempty"`
	MonthlyPayment   *string `json:"monthlyPayment,omitempty"`
	NextPaymentDate  *string `json:"nextPaymentDate,omitempty"`
	ProjectedBalance *string `json:"projectedBalance,omitempty"`
	Status           string  `json:"status"`
	IsOverdue        bool    `json:"isOverdue"`
	HasAmountDue     bool    `json:"hasAmountDue"`
}

// GetCustomer handles GET /api/v1/customers/:customerId
func (h *CustomerHandler) GetCustomer(c echo.Context) error {
	customerID := strings.TrimSpace(c.Param("customerId"))
	if customerID == "" {
		return NewValidationError(c, "Customer ID is required", nil)
	}

	rec, err := h.customerService.GetCustomer(c.Request().Context(), customerID)
	if err != nil {
		if errors.Is(err, domain.ErrCustomerNotFound) {
			return NewNotFoundError(c, "Customer not found")
		}
		log.Error().Err(err).Str("customer_id", customerID).Msg("Failed to get customer")
		return NewInternalError(c, "Failed to get customer")
	}

	return c.JSON(http.StatusOK, toCustomerResponse(rec))
}

// GetLoans handles GET /api/v1/customers/:customerId/loans.
// ?afterPayments=N adds the scheduled balance after N payments.
func (h *CustomerHandler) GetLoans(c echo.Context) error {
	customerID := strings.TrimSpace(c.Param("customerId"))
	if customerID == "" {
		return NewValidationError(c, "Customer ID is required", nil)
	}

	var (
		loans []service.LoanSummary
		err   error
	)
	if raw := c.QueryParam("afterPayments"); raw != "" {
		paymentsMade, perr := strconv.ParseInt(raw, 10, 32)
		if perr != nil || paymentsMade < 0 {
			return NewValidationError(c, "Invalid afterPayments", []ValidationError{
				{Field: "afterPayments", Message: "Must be a non-negative integer"},
			})
		}
		loans, err = h.customerService.ProjectLoans(c.Request().Context(), customerID, int32(paymentsMade))
	} else {
		loans, err = h.customerService.ListLoans(c.Request().Context(), customerID)
	}
	if err != nil {
		if errors.Is(err, domain.ErrCustomerNotFound) {
			return NewNotFoundError(c, "Customer not found")
		}
		log.Error().Err(err).Str("customer_id", customerID).Msg("Failed to list loans")
		return NewInternalError(c, "Failed to list loans")
	}

	resp := make([]LoanResponse, len(loans))
	for i, l := range loans {
		resp[i] = toLoanResponse(l)
	}
	return c.JSON(http.StatusOK, resp)
}

func toCustomerResponse(rec *domain.CustomerRecord) CustomerResponse {
	resp := CustomerResponse{
		CustomerID:     rec.CustomerID,
		FirstName:      rec.FirstName,
		LastName:       rec.LastName,
		Name:           rec.FullName(),
		Email:          rec.Email,
		MailingAddress: rec.MailingAddress(),
		Status:         rec.Status,
	}
	if rec.Phone != nil {
		resp.Phone = *rec.Phone
	}
	if !rec.CustomerSince.IsZero() {
		resp.CustomerSince = rec.CustomerSince.Format(time.RFC3339)
	}
	return resp
}

func toLoanResponse(l service.LoanSummary) LoanResponse {
	line := l.Line
	resp := LoanResponse{
		AccountNumber:  line.ID,
		LoanType:       line.Category,
		Principal:      line.Principal.StringFixed(2),
		InterestRate:   line.AnnualRate.String(),
		TermMonths:     line.TermMonths,
		CurrentBalance: line.CurrentBalance.StringFixed(2),
		Status:         l.Status,
		IsOverdue:      l.IsOverdue,
		HasAmountDue:   l.HasAmountDue,
	}
	if line.AmountDue != nil {
		amt := line.AmountDue.StringFixed(2)
		resp.AmountDue = &amt
	}
	if line.MonthlyPayment.Valid {
		payment := line.MonthlyPayment.Decimal.StringFixed(2)
		resp.MonthlyPayment = &payment
	}
	if line.NextPaymentDate != nil {
		due := line.NextPaymentDate.Format(domain.DateLayout)
		resp.NextPaymentDate = &due
	}
	if l.ProjectedBalance.Valid {
		balance := l.ProjectedBalance.Decimal.StringFixed(2)
		resp.ProjectedBalance = &balance
	}
	return resp
}
