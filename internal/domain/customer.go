package domain

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrCustomerNotFound = errors.New("customer not found")
)

// Customer is the read-only snapshot of a customer printed on a statement
type Customer struct {
	ID      string `json:"customerId"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
}

// CustomerRecord is a customer row as stored by the persistence layer
type CustomerRecord struct {
	ID            int64
	CustomerID    string
	FirstName     string
	LastName      string
	Email         string
	Phone         *string
	Address       *string
	City          *string
	State         *string
	PostalCode    *string
	Status        string
	CustomerSince time.Time
}

// FullName returns "First Last"
func (c *CustomerRecord) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// MailingAddress joins street, city and "state postal" into one line, skipping empty parts
func (c *CustomerRecord) MailingAddress() string {
	var parts []string
	if v := deref(c.Address); v != "" {
		parts = append(parts, v)
	}
	if v := deref(c.City); v != "" {
		parts = append(parts, v)
	}
	region := strings.TrimSpace(deref(c.State) + " " + deref(c.PostalCode))
	if region != "" {
		parts = append(parts, region)
	}
	return strings.Join(parts, ", ")
}

// Snapshot copies the fields a statement needs; no reference to the record is kept
func (c *CustomerRecord) Snapshot() Customer {
	return Customer{
		ID:      c.CustomerID,
		Name:    c.FullName(),
		Address: c.MailingAddress(),
		Phone:   deref(c.Phone),
		Email:   c.Email,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

type CustomerRepository interface {
	GetByCustomerID(ctx context.Context, customerID string) (*CustomerRecord, error)
}
