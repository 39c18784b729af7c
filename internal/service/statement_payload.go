package service

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/epimonos/statement-backend/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// StatementPayload is the wire shape of a statement request, shared by the
// HTTP endpoints and the request files read by statementctl.
type StatementPayload struct {
	Customer           *CustomerPayload  `json:"customer,omitempty" yaml:"customer,omitempty"`
	Customers          []CustomerPayload `json:"customers,omitempty" yaml:"customers,omitempty"`
	Loans              []LoanPayload     `json:"loans" yaml:"loans"`
	BillingPeriodStart string            `json:"billing_period_start" yaml:"billing_period_start"`
	BillingPeriodEnd   string            `json:"billing_period_end" yaml:"billing_period_end"`
	StatementFormat    string            `json:"statement_format" yaml:"statement_format"`
}

// CustomerPayload is one customer snapshot as sent by clients
type CustomerPayload struct {
	CustomerID string `json:"customer_id" yaml:"customer_id"`
	Name       string `json:"name" yaml:"name"`
	Address    string `json:"address" yaml:"address"`
	Phone      string `json:"phone" yaml:"phone"`
	Email      string `json:"email" yaml:"email"`
}

// LoanPayload is one loan line. MonthlyPayment is accepted for compatibility
// and ignored: the payment is always recomputed.
type LoanPayload struct {
	LoanID         string  `json:"loan_id" yaml:"loan_id"`
	LoanType       string  `json:"loan_type" yaml:"loan_type"`
	Principal      Amount  `json:"principal" yaml:"principal"`
	InterestRate   Amount  `json:"interest_rate" yaml:"interest_rate"`
	TermMonths     FlexInt `json:"term_months" yaml:"term_months"`
	CurrentBalance Amount  `json:"current_balance" yaml:"current_balance"`
	PaymentDueDate string  `json:"payment_due_date" yaml:"payment_due_date"`
	MonthlyPayment Amount  `json:"monthly_payment,omitempty" yaml:"monthly_payment,omitempty"`
	AmountDue      Amount  `json:"amount_due,omitempty" yaml:"amount_due,omitempty"`
}

// Amount is a decimal that may arrive as a number, a numeric string or an empty string
type Amount struct {
	decimal.NullDecimal
}

// NewAmount wraps a known value
func NewAmount(d decimal.Decimal) Amount {
	return Amount{decimal.NewNullDecimal(d)}
}

func (a *Amount) set(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		a.NullDecimal = decimal.NullDecimal{}
		return nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return fmt.Errorf("%w: amount %q", domain.ErrInvalidInput, raw)
	}
	a.NullDecimal = decimal.NewNullDecimal(d)
	return nil
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	return a.set(strings.Trim(string(b), `"`))
}

func (a *Amount) UnmarshalYAML(n *yaml.Node) error {
	if n.Tag == "!!null" {
		a.NullDecimal = decimal.NullDecimal{}
		return nil
	}
	return a.set(n.Value)
}

// OrZero returns the amount, or zero when it was not supplied
func (a Amount) OrZero() decimal.Decimal {
	if !a.Valid {
		return decimal.Zero
	}
	return a.Decimal
}

// FlexInt is an integer that may arrive as a number or a numeric string
type FlexInt int32

var (
	minInt32 = decimal.NewFromInt(math.MinInt32)
	maxInt32 = decimal.NewFromInt(math.MaxInt32)
)

func (f *FlexInt) set(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		*f = 0
		return nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || !d.IsInteger() {
		return fmt.Errorf("%w: integer %q", domain.ErrInvalidInput, raw)
	}
	if d.LessThan(minInt32) || d.GreaterThan(maxInt32) {
		return fmt.Errorf("%w: integer %q out of range", domain.ErrInvalidInput, raw)
	}
	*f = FlexInt(d.IntPart())
	return nil
}

func (f *FlexInt) UnmarshalJSON(b []byte) error {
	return f.set(strings.Trim(string(b), `"`))
}

func (f *FlexInt) UnmarshalYAML(n *yaml.Node) error {
	return f.set(n.Value)
}

// ToRequest converts the payload into a StatementRequest. Dates accept
// 2006-01-02 or RFC 3339; an empty format defaults to pdf.
func (p *StatementPayload) ToRequest() (StatementRequest, error) {
	var req StatementRequest

	if p.Customer != nil {
		c := p.Customer.toDomain()
		req.Customer = &c
	}
	for _, c := range p.Customers {
		req.Customers = append(req.Customers, c.toDomain())
	}

	format := domain.FormatPDF
	if strings.TrimSpace(p.StatementFormat) != "" {
		f, err := domain.ParseFormat(p.StatementFormat)
		if err != nil {
			return req, err
		}
		format = f
	}
	req.Format = format

	start, err := parseDate(p.BillingPeriodStart)
	if err != nil {
		return req, fmt.Errorf("billing_period_start: %w", err)
	}
	end, err := parseDate(p.BillingPeriodEnd)
	if err != nil {
		return req, fmt.Errorf("billing_period_end: %w", err)
	}
	req.Period = domain.BillingPeriod{Start: start, End: end}

	for _, l := range p.Loans {
		line := domain.LoanLine{
			ID:             l.LoanID,
			Category:       l.LoanType,
			Principal:      l.Principal.OrZero(),
			AnnualRate:     l.InterestRate.OrZero(),
			TermMonths:     int32(l.TermMonths),
			CurrentBalance: l.CurrentBalance.OrZero(),
		}
		if strings.TrimSpace(l.PaymentDueDate) != "" {
			due, err := parseDate(l.PaymentDueDate)
			if err != nil {
				return req, fmt.Errorf("loan %q payment_due_date: %w", l.LoanID, err)
			}
			line.NextPaymentDate = &due
		}
		if l.AmountDue.Valid {
			amt := l.AmountDue.Decimal
			line.AmountDue = &amt
		}
		req.Loans = append(req.Loans, line)
	}

	return req, nil
}

func (c CustomerPayload) toDomain() domain.Customer {
	return domain.Customer{
		ID:      c.CustomerID,
		Name:    c.Name,
		Address: c.Address,
		Phone:   c.Phone,
		Email:   c.Email,
	}
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(domain.DateLayout, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q", domain.ErrInvalidInput, raw)
	}
	return t, nil
}
