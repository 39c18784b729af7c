// Package finance holds the pure loan arithmetic used to build statements.
package finance

import (
	"fmt"
	"math"
	"time"

	"github.com/epimonos/statement-backend/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	hundred      = decimal.NewFromInt(100)
	monthsInYear = decimal.NewFromInt(12)
)

// MonthlyPayment calculates the level monthly installment (EMI) of an amortizing loan.
// Formula: P * r * (1+r)^n / ((1+r)^n - 1) with r = annualRatePercent/100/12.
// A zero rate splits the principal evenly across the term.
func MonthlyPayment(principal, annualRatePercent decimal.Decimal, termMonths int32) (decimal.Decimal, error) {
	if termMonths <= 0 {
		return decimal.Zero, domain.ErrInvalidLoanTerms
	}
	n := int64(termMonths)
	if annualRatePercent.IsZero() {
		return principal.Div(decimal.NewFromInt(n)).Round(2), nil
	}

	// float64 for the power, decimal for everything monetary
	r := monthlyRate(annualRatePercent).InexactFloat64()
	factor := math.Pow(1+r, float64(n))
	payment := principal.InexactFloat64() * r * factor / (factor - 1)
	return fromFloat(payment)
}

// MonthlyInterest is the interest one billing month adds to balance
func MonthlyInterest(balance, annualRatePercent decimal.Decimal) decimal.Decimal {
	return balance.Mul(monthlyRate(annualRatePercent)).Round(2)
}

// ProjectedBalance returns the remaining balance after paymentsMade level payments.
// The result never goes below zero.
func ProjectedBalance(principal, annualRatePercent decimal.Decimal, termMonths, paymentsMade int32) (decimal.Decimal, error) {
	payment, err := MonthlyPayment(principal, annualRatePercent, termMonths)
	if err != nil {
		return decimal.Zero, err
	}
	if paymentsMade <= 0 {
		return principal, nil
	}
	if paymentsMade >= termMonths {
		return decimal.Zero, nil
	}

	k := float64(paymentsMade)
	var remaining float64
	if annualRatePercent.IsZero() {
		remaining = principal.InexactFloat64() - payment.InexactFloat64()*k
	} else {
		r := monthlyRate(annualRatePercent).InexactFloat64()
		growth := math.Pow(1+r, k)
		remaining = principal.InexactFloat64()*growth - payment.InexactFloat64()*(growth-1)/r
	}

	balance, err := fromFloat(remaining)
	if err != nil {
		return decimal.Zero, err
	}
	if balance.IsNegative() {
		return decimal.Zero, nil
	}
	return balance, nil
}

// IsOverdue is true when a payment date is set and falls on a day before today.
// Time of day is ignored on both sides.
func IsOverdue(nextPaymentDate *time.Time, today time.Time) bool {
	if nextPaymentDate == nil {
		return false
	}
	return truncateDay(*nextPaymentDate).Before(truncateDay(today))
}

// HasAmountDue is true when an amount is present and positive
func HasAmountDue(amountDue *decimal.Decimal) bool {
	return amountDue != nil && amountDue.IsPositive()
}

// fromFloat rounds a float result to cents. Overflowed terms or amounts
// produce Inf or NaN, which decimal cannot represent.
func fromFloat(f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, fmt.Errorf("%w: payment out of range", domain.ErrInvalidLoanTerms)
	}
	return decimal.NewFromFloat(f).Round(2), nil
}

func monthlyRate(annualRatePercent decimal.Decimal) decimal.Decimal {
	return annualRatePercent.Div(hundred).Div(monthsInYear)
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
