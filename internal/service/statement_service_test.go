package service

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/epimonos/statement-backend/internal/domain"
	"github.com/epimonos/statement-backend/internal/render"
	"github.com/epimonos/statement-backend/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedToday = time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC)

// captureDispatcher records the data it was asked to render
type captureDispatcher struct {
	data *domain.StatementData
}

func (d *captureDispatcher) Dispatch(data *domain.StatementData) (*render.Document, error) {
	d.data = data
	return &render.Document{Bytes: []byte("doc"), MediaType: "text/plain", Filename: data.Filename(), Format: data.Format}, nil
}

func seedRepos() (*testutil.MockCustomerRepository, *testutil.MockLoanRepository) {
	customers := testutil.NewMockCustomerRepository()
	loans := testutil.NewMockLoanRepository()

	phone := "555-0100"
	customers.AddCustomer(&domain.CustomerRecord{CustomerID: "C1", FirstName: "Ann", LastName: "Lee", Email: "ann@example.com", Phone: &phone})
	customers.AddCustomer(&domain.CustomerRecord{CustomerID: "C2", FirstName: "Bo", LastName: "Lee", Email: "bo@example.com"})

	due := time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)
	loans.AddLoan(&domain.LoanRecord{
		AccountNumber:   "L1",
		CustomerID:      "C1",
		LoanType:        "mortgage",
		Principal:       decimal.NewFromInt(200000),
		InterestRate:    decimal.RequireFromString("4.5"),
		TermMonths:      360,
		CurrentBalance:  decimal.NewFromInt(195000),
		NextPaymentDate: &due,
	})
	loans.AddLoan(&domain.LoanRecord{
		AccountNumber:  "L2",
		CustomerID:     "C2",
		LoanType:       "auto",
		Principal:      decimal.NewFromInt(12000),
		InterestRate:   decimal.Zero,
		TermMonths:     12,
		CurrentBalance: decimal.NewFromInt(6000),
		AmountDue:      decimal.NewFromInt(1000),
	})
	return customers, loans
}

func TestGenerate_RendersWithDispatcher(t *testing.T) {
	customers, loans := seedRepos()
	svc := NewStatementService(customers, loans, render.NewDispatcher("Epimonos LLC", render.FixedClock(fixedToday))).
		WithClock(render.FixedClock(fixedToday))

	stmt, err := svc.Generate(StatementRequest{
		Customer: &domain.Customer{ID: "C1", Name: "Ann Lee"},
		Loans:    []domain.LoanLine{mortgageLine()},
		Period:   januaryPeriod(),
		Format:   domain.FormatText,
	})
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^STMT20240205[0-9A-F]{8}$`), stmt.ID)
	assert.Equal(t, "statement_C1.txt", stmt.Filename)
	assert.Equal(t, render.MediaTypeText, stmt.MediaType)
	assert.Contains(t, string(stmt.Bytes), "Loan Type: mortgage")
}

func TestGenerate_ValidationErrorsPassThrough(t *testing.T) {
	svc := NewStatementService(nil, nil, &captureDispatcher{})

	_, err := svc.Generate(StatementRequest{Period: januaryPeriod(), Format: domain.FormatPDF})
	assert.True(t, errors.Is(err, domain.ErrMissingCustomer))
}

func TestGenerateFromRecords_NamedLoans(t *testing.T) {
	customers, loans := seedRepos()
	d := &captureDispatcher{}
	svc := NewStatementService(customers, loans, d)

	stmt, err := svc.GenerateFromRecords(context.Background(), RecordsRequest{
		CustomerIDs:        []string{"C1", "C2"},
		LoanAccountNumbers: []string{"L2"},
		Period:             januaryPeriod(),
		Format:             domain.FormatPDF,
	})
	require.NoError(t, err)
	assert.Equal(t, "joint_statement_C1.pdf", stmt.Filename)

	require.Len(t, d.data.Customers, 2)
	assert.Equal(t, "Ann Lee", d.data.Customers[0].Name)
	assert.Equal(t, "555-0100", d.data.Customers[0].Phone)
	require.Len(t, d.data.Loans, 1)
	assert.Equal(t, "L2", d.data.Loans[0].ID)
	assert.Equal(t, "1000.00", d.data.Loans[0].MonthlyPayment.Decimal.StringFixed(2))
	require.NotNil(t, d.data.Loans[0].AmountDue)
}

func TestGenerateFromRecords_AllLoansOfCustomers(t *testing.T) {
	customers, loans := seedRepos()
	d := &captureDispatcher{}
	svc := NewStatementService(customers, loans, d)

	_, err := svc.GenerateFromRecords(context.Background(), RecordsRequest{
		CustomerIDs: []string{"C1", "C2"},
		Period:      januaryPeriod(),
		Format:      domain.FormatText,
	})
	require.NoError(t, err)
	require.Len(t, d.data.Loans, 2)
	assert.Equal(t, "L1", d.data.Loans[0].ID)
	assert.Equal(t, "L2", d.data.Loans[1].ID)
}

func TestGenerateFromRecords_Errors(t *testing.T) {
	customers, loans := seedRepos()
	svc := NewStatementService(customers, loans, &captureDispatcher{})
	ctx := context.Background()

	_, err := svc.GenerateFromRecords(ctx, RecordsRequest{Period: januaryPeriod(), Format: domain.FormatPDF})
	assert.True(t, errors.Is(err, domain.ErrMissingCustomer))

	_, err = svc.GenerateFromRecords(ctx, RecordsRequest{CustomerIDs: []string{"C9"}, Period: januaryPeriod(), Format: domain.FormatPDF})
	assert.True(t, errors.Is(err, domain.ErrCustomerNotFound))

	_, err = svc.GenerateFromRecords(ctx, RecordsRequest{CustomerIDs: []string{"C1"}, LoanAccountNumbers: []string{"L9"}, Period: januaryPeriod(), Format: domain.FormatPDF})
	assert.True(t, errors.Is(err, domain.ErrLoanNotFound))

	_, err = svc.GenerateFromRecords(ctx, RecordsRequest{CustomerIDs: []string{"C1"}, LoanAccountNumbers: []string{"L2"}, Period: januaryPeriod(), Format: domain.FormatPDF})
	assert.True(t, errors.Is(err, domain.ErrLoanNotOwned))
}

func TestGenerateFromRecords_RepositoryFailure(t *testing.T) {
	customers, loans := seedRepos()
	boom := errors.New("connection reset")
	loans.ListFn = func(ctx context.Context, customerID string) ([]*domain.LoanRecord, error) {
		return nil, boom
	}
	svc := NewStatementService(customers, loans, &captureDispatcher{})

	_, err := svc.GenerateFromRecords(context.Background(), RecordsRequest{CustomerIDs: []string{"C1"}, Period: januaryPeriod(), Format: domain.FormatPDF})
	assert.ErrorIs(t, err, boom)
	assert.False(t, domain.IsValidationError(err))
}

func TestNewStatementID_Unique(t *testing.T) {
	a := NewStatementID(fixedToday)
	b := NewStatementID(fixedToday)
	assert.Len(t, a, len("STMT")+8+8)
	assert.NotEqual(t, a, b)
}
