package postgres

import (
	"context"
	"errors"

	"github.com/epimonos/statement-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const getCustomerByCustomerID = `
SELECT id, customer_id, first_name, last_name, email, phone, address, city, state, postal_code, status, customer_since
FROM customers
WHERE customer_id = $1`

// CustomerRepository implements domain.CustomerRepository using PostgreSQL
type CustomerRepository struct {
	pool *pgxpool.Pool
}

// NewCustomerRepository creates a new CustomerRepository
func NewCustomerRepository(pool *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{pool: pool}
}

// GetByCustomerID retrieves a customer by its public identifier
func (r *CustomerRepository) GetByCustomerID(ctx context.Context, customerID string) (*domain.CustomerRecord, error) {
	var (
		c                                   domain.CustomerRecord
		phone, address, city, state, postal pgtype.Text
		since                               pgtype.Timestamptz
	)
	err := r.pool.QueryRow(ctx, getCustomerByCustomerID, customerID).Scan(
		&c.ID, &c.CustomerID, &c.FirstName, &c.LastName, &c.Email,
		&phone, &address, &city, &state, &postal, &c.Status, &since,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, err
	}

	c.Phone = pgTextToPtr(phone)
	c.Address = pgTextToPtr(address)
	c.City = pgTextToPtr(city)
	c.State = pgTextToPtr(state)
	c.PostalCode = pgTextToPtr(postal)
	if since.Valid {
		c.CustomerSince = since.Time
	}
	return &c, nil
}
