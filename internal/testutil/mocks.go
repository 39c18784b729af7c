package testutil

import (
	"context"
	"sync"

	"github.com/epimonos/statement-backend/internal/domain"
)

// MockCustomerRepository is a mock implementation of domain.CustomerRepository
type MockCustomerRepository struct {
	mu        sync.RWMutex
	Customers map[string]*domain.CustomerRecord
	NextID    int64
	GetFn     func(ctx context.Context, customerID string) (*domain.CustomerRecord, error)
}

// NewMockCustomerRepository creates a new MockCustomerRepository
func NewMockCustomerRepository() *MockCustomerRepository {
	return &MockCustomerRepository{
		Customers: make(map[string]*domain.CustomerRecord),
		NextID:    1,
	}
}

// AddCustomer adds a customer to the mock repository
func (m *MockCustomerRepository) AddCustomer(c *domain.CustomerRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c.ID == 0 {
		c.ID = m.NextID
		m.NextID++
	}
	if c.Status == "" {
		c.Status = "active"
	}
	m.Customers[c.CustomerID] = c
}

// GetByCustomerID retrieves a customer by its public identifier
func (m *MockCustomerRepository) GetByCustomerID(ctx context.Context, customerID string) (*domain.CustomerRecord, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, customerID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.Customers[customerID]
	if !ok {
		return nil, domain.ErrCustomerNotFound
	}
	return c, nil
}

// MockLoanRepository is a mock implementation of domain.LoanRepository
type MockLoanRepository struct {
	mu         sync.RWMutex
	Loans      map[string]*domain.LoanRecord
	ByCustomer map[string][]*domain.LoanRecord
	NextID     int64
	ListFn     func(ctx context.Context, customerID string) ([]*domain.LoanRecord, error)
}

// NewMockLoanRepository creates a new MockLoanRepository
func NewMockLoanRepository() *MockLoanRepository {
	return &MockLoanRepository{
		Loans:      make(map[string]*domain.LoanRecord),
		ByCustomer: make(map[string][]*domain.LoanRecord),
		NextID:     1,
	}
}

// AddLoan adds a loan to the mock repository
func (m *MockLoanRepository) AddLoan(l *domain.LoanRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if l.ID == 0 {
		l.ID = m.NextID
		m.NextID++
	}
	if l.Status == "" {
		l.Status = "active"
	}
	m.Loans[l.AccountNumber] = l
	m.ByCustomer[l.CustomerID] = append(m.ByCustomer[l.CustomerID], l)
}

// GetByAccountNumber retrieves a loan by account number
func (m *MockLoanRepository) GetByAccountNumber(ctx context.Context, accountNumber string) (*domain.LoanRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	l, ok := m.Loans[accountNumber]
	if !ok {
		return nil, domain.ErrLoanNotFound
	}
	return l, nil
}

// ListByCustomer retrieves every loan of a customer in insertion order
func (m *MockLoanRepository) ListByCustomer(ctx context.Context, customerID string) ([]*domain.LoanRecord, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, customerID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*domain.LoanRecord(nil), m.ByCustomer[customerID]...), nil
}
