package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS customers (
	id             BIGSERIAL PRIMARY KEY,
	customer_id    VARCHAR(50) NOT NULL UNIQUE,
	first_name     VARCHAR(100) NOT NULL,
	last_name      VARCHAR(100) NOT NULL,
	email          VARCHAR(255) NOT NULL,
	phone          VARCHAR(20),
	address        TEXT,
	city           VARCHAR(100),
	state          VARCHAR(50),
	postal_code    VARCHAR(20),
	status         VARCHAR(20) NOT NULL DEFAULT 'active',
	customer_since TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS loans (
	id                  BIGSERIAL PRIMARY KEY,
	loan_account_number VARCHAR(50) NOT NULL UNIQUE,
	customer_id         VARCHAR(50) NOT NULL REFERENCES customers (customer_id),
	loan_type           VARCHAR(50) NOT NULL,
	principal_amount    NUMERIC(15, 2) NOT NULL,
	interest_rate       NUMERIC(5, 3) NOT NULL,
	term_months         INTEGER NOT NULL,
	current_balance     NUMERIC(15, 2) NOT NULL,
	amount_due          NUMERIC(15, 2) NOT NULL DEFAULT 0,
	next_payment_date   DATE,
	loan_status         VARCHAR(20) NOT NULL DEFAULT 'active'
);

CREATE INDEX IF NOT EXISTS idx_loans_customer_id ON loans (customer_id);
`

// InitSchema creates the customer and loan tables when they do not exist
func InitSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}
