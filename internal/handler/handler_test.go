package handler

import (
	"time"

	"github.com/epimonos/statement-backend/internal/domain"
	"github.com/epimonos/statement-backend/internal/render"
	"github.com/epimonos/statement-backend/internal/service"
	"github.com/epimonos/statement-backend/internal/testutil"
	"github.com/shopspring/decimal"
)

var testToday = time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC)

func newTestServices() (*service.StatementService, *service.CustomerService) {
	customers := testutil.NewMockCustomerRepository()
	loans := testutil.NewMockLoanRepository()

	phone := "555-0100"
	street := "1 Main St"
	customers.AddCustomer(&domain.CustomerRecord{
		CustomerID:    "C1",
		FirstName:     "Ann",
		LastName:      "Lee",
		Email:         "ann@example.com",
		Phone:         &phone,
		Address:       &street,
		CustomerSince: time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC),
	})
	customers.AddCustomer(&domain.CustomerRecord{CustomerID: "C2", FirstName: "Bo", LastName: "Lee", Email: "bo@example.com"})

	past := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)
	loans.AddLoan(&domain.LoanRecord{
		AccountNumber:   "L1",
		CustomerID:      "C1",
		LoanType:        "mortgage",
		Principal:       decimal.NewFromInt(200000),
		InterestRate:    decimal.RequireFromString("4.5"),
		TermMonths:      360,
		CurrentBalance:  decimal.NewFromInt(195000),
		AmountDue:       decimal.RequireFromString("1013.37"),
		NextPaymentDate: &past,
	})
	loans.AddLoan(&domain.LoanRecord{
		AccountNumber:  "L2",
		CustomerID:     "C2",
		LoanType:       "auto",
		Principal:      decimal.NewFromInt(12000),
		InterestRate:   decimal.Zero,
		TermMonths:     12,
		CurrentBalance: decimal.NewFromInt(6000),
	})

	clock := render.FixedClock(testToday)
	dispatcher := render.NewDispatcher("Epimonos LLC", clock)
	return service.NewStatementService(customers, loans, dispatcher).WithClock(clock),
		service.NewCustomerService(customers, loans).WithClock(clock)
}
