package render

import (
	"time"

	"github.com/epimonos/statement-backend/internal/domain"
	"github.com/shopspring/decimal"
)

var testToday = time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC)

func testPeriod() domain.BillingPeriod {
	return domain.BillingPeriod{
		Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
	}
}

func testLoan(category string) domain.LoanLine {
	due := time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)
	return domain.LoanLine{
		ID:              "L1",
		Category:        category,
		Principal:       decimal.NewFromInt(200000),
		AnnualRate:      decimal.RequireFromString("4.5"),
		TermMonths:      360,
		CurrentBalance:  decimal.NewFromInt(195000),
		MonthlyPayment:  decimal.NewNullDecimal(decimal.RequireFromString("1013.37")),
		NextPaymentDate: &due,
	}
}

func testStatement(format domain.Format, customers int, loans ...domain.LoanLine) *domain.StatementData {
	all := []domain.Customer{
		{ID: "C1", Name: "Ann Lee", Address: "1 Main St", Phone: "555-0100", Email: "ann@example.com"},
		{ID: "C2", Name: "Bo Lee", Email: "bo@example.com"},
	}
	return &domain.StatementData{
		Period:    testPeriod(),
		Customers: all[:customers],
		Loans:     loans,
		Format:    format,
	}
}
