package postgres

import (
	"context"
	"errors"

	"github.com/epimonos/statement-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const loanColumns = `id, loan_account_number, customer_id, loan_type, principal_amount, interest_rate,
term_months, current_balance, amount_due, next_payment_date, loan_status`

// LoanRepository implements domain.LoanRepository using PostgreSQL
type LoanRepository struct {
	pool *pgxpool.Pool
}

// NewLoanRepository creates a new LoanRepository
func NewLoanRepository(pool *pgxpool.Pool) *LoanRepository {
	return &LoanRepository{pool: pool}
}

// GetByAccountNumber retrieves a loan by account number
func (r *LoanRepository) GetByAccountNumber(ctx context.Context, accountNumber string) (*domain.LoanRecord, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+loanColumns+` FROM loans WHERE loan_account_number = $1`, accountNumber)
	loan, err := scanLoan(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLoanNotFound
		}
		return nil, err
	}
	return loan, nil
}

// ListByCustomer retrieves every loan of a customer ordered by id
func (r *LoanRepository) ListByCustomer(ctx context.Context, customerID string) ([]*domain.LoanRecord, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+loanColumns+` FROM loans WHERE customer_id = $1 ORDER BY id`, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.LoanRecord
	for rows.Next() {
		loan, err := scanLoan(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, loan)
	}
	return result, rows.Err()
}

func scanLoan(row pgx.Row) (*domain.LoanRecord, error) {
	var (
		l                             domain.LoanRecord
		principal, rate, balance, due pgtype.Numeric
		nextPayment                   pgtype.Date
	)
	if err := row.Scan(
		&l.ID, &l.AccountNumber, &l.CustomerID, &l.LoanType, &principal, &rate,
		&l.TermMonths, &balance, &due, &nextPayment, &l.Status,
	); err != nil {
		return nil, err
	}

	l.Principal = pgNumericToDecimal(principal)
	l.InterestRate = pgNumericToDecimal(rate)
	l.CurrentBalance = pgNumericToDecimal(balance)
	l.AmountDue = pgNumericToDecimal(due)
	l.NextPaymentDate = pgDateToPtr(nextPayment)
	return &l, nil
}
