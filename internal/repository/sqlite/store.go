// Package sqlite stores customers and loans in a local SQLite file for development.
// Decimal columns are TEXT so no precision is lost.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/epimonos/statement-backend/internal/domain"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

const schema = `
CREATE TABLE IF NOT EXISTS customers (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	customer_id    TEXT NOT NULL UNIQUE,
	first_name     TEXT NOT NULL,
	last_name      TEXT NOT NULL,
	email          TEXT NOT NULL,
	phone          TEXT,
	address        TEXT,
	city           TEXT,
	state          TEXT,
	postal_code    TEXT,
	status         TEXT NOT NULL DEFAULT 'active',
	customer_since DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE IF NOT EXISTS loans (
	id                  INTEGER PRIMARY KEY AUTOINCREMENT,
	loan_account_number TEXT NOT NULL UNIQUE,
	customer_id         TEXT NOT NULL REFERENCES customers (customer_id),
	loan_type           TEXT NOT NULL,
	principal_amount    TEXT NOT NULL,
	interest_rate       TEXT NOT NULL,
	term_months         INTEGER NOT NULL,
	current_balance     TEXT NOT NULL,
	amount_due          TEXT NOT NULL DEFAULT '0',
	next_payment_date   DATE,
	loan_status         TEXT NOT NULL DEFAULT 'active'
);
CREATE INDEX IF NOT EXISTS idx_loans_customer_id ON loans (customer_id);
`

const loanColumns = `id, loan_account_number, customer_id, loan_type, principal_amount, interest_rate,
term_months, current_balance, amount_due, next_payment_date, loan_status`

// Store implements domain.CustomerRepository and domain.LoanRepository on SQLite
type Store struct {
	db *sql.DB
}

// Open opens the database at path and initializes the schema
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("could not open database: %w", err)
	}
	// one connection keeps a :memory: database alive between calls
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not connect to database: %w", err)
	}

	s := &Store{db: db}
	if err := s.InitSchema(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	log.Info().Str("path", path).Msg("SQLite database ready")
	return s, nil
}

// InitSchema creates the customer and loan tables when they do not exist
func (s *Store) InitSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("could not initialize schema: %w", err)
	}
	return nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateCustomer inserts a customer and sets its row id
func (s *Store) CreateCustomer(ctx context.Context, c *domain.CustomerRecord) error {
	if c.Status == "" {
		c.Status = "active"
	}
	if c.CustomerSince.IsZero() {
		c.CustomerSince = time.Now().UTC()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO customers (customer_id, first_name, last_name, email, phone, address, city, state, postal_code, status, customer_since)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.CustomerID, c.FirstName, c.LastName, c.Email, c.Phone, c.Address, c.City, c.State, c.PostalCode, c.Status, c.CustomerSince,
	)
	if err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}
	c.ID, err = res.LastInsertId()
	return err
}

// CreateLoan inserts a loan and sets its row id
func (s *Store) CreateLoan(ctx context.Context, l *domain.LoanRecord) error {
	if l.Status == "" {
		l.Status = "active"
	}
	var next sql.NullTime
	if l.NextPaymentDate != nil {
		next = sql.NullTime{Time: *l.NextPaymentDate, Valid: true}
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO loans (loan_account_number, customer_id, loan_type, principal_amount, interest_rate, term_months, current_balance, amount_due, next_payment_date, loan_status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.AccountNumber, l.CustomerID, l.LoanType, l.Principal, l.InterestRate, l.TermMonths, l.CurrentBalance, l.AmountDue, next, l.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to create loan: %w", err)
	}
	l.ID, err = res.LastInsertId()
	return err
}

// GetByCustomerID retrieves a customer by its public identifier
func (s *Store) GetByCustomerID(ctx context.Context, customerID string) (*domain.CustomerRecord, error) {
	var (
		c                                   domain.CustomerRecord
		phone, address, city, state, postal sql.NullString
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, customer_id, first_name, last_name, email, phone, address, city, state, postal_code, status, customer_since
		FROM customers WHERE customer_id = ?`, customerID,
	).Scan(&c.ID, &c.CustomerID, &c.FirstName, &c.LastName, &c.Email, &phone, &address, &city, &state, &postal, &c.Status, &c.CustomerSince)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	c.Phone = nullStringToPtr(phone)
	c.Address = nullStringToPtr(address)
	c.City = nullStringToPtr(city)
	c.State = nullStringToPtr(state)
	c.PostalCode = nullStringToPtr(postal)
	return &c, nil
}

// GetByAccountNumber retrieves a loan by account number
func (s *Store) GetByAccountNumber(ctx context.Context, accountNumber string) (*domain.LoanRecord, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+loanColumns+` FROM loans WHERE loan_account_number = ?`, accountNumber)
	loan, err := scanLoan(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrLoanNotFound
		}
		return nil, fmt.Errorf("failed to get loan: %w", err)
	}
	return loan, nil
}

// ListByCustomer retrieves every loan of a customer ordered by id
func (s *Store) ListByCustomer(ctx context.Context, customerID string) ([]*domain.LoanRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+loanColumns+` FROM loans WHERE customer_id = ? ORDER BY id`, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list loans: %w", err)
	}
	defer rows.Close()

	var result []*domain.LoanRecord
	for rows.Next() {
		loan, err := scanLoan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan loan: %w", err)
		}
		result = append(result, loan)
	}
	return result, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanLoan(row scanner) (*domain.LoanRecord, error) {
	var (
		l    domain.LoanRecord
		next sql.NullTime
	)
	if err := row.Scan(
		&l.ID, &l.AccountNumber, &l.CustomerID, &l.LoanType, &l.Principal, &l.InterestRate,
		&l.TermMonths, &l.CurrentBalance, &l.AmountDue, &next, &l.Status,
	); err != nil {
		return nil, err
	}
	if next.Valid {
		t := next.Time
		l.NextPaymentDate = &t
	}
	return &l, nil
}

func nullStringToPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}
