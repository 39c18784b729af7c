package render

import (
	"strings"

	"github.com/epimonos/statement-backend/internal/domain"
	"github.com/epimonos/statement-backend/internal/policy"
)

// TextRenderer writes a plain-text statement. Values are printed as-is.
type TextRenderer struct{}

// NewTextRenderer creates a new TextRenderer
func NewTextRenderer() *TextRenderer {
	return &TextRenderer{}
}

// MediaType returns the plain-text media type
func (r *TextRenderer) MediaType() string { return MediaTypeText }

// Render writes the statement header followed by one block per loan line.
// It fails with domain.ErrNoLoanData when there are no loans.
func (r *TextRenderer) Render(data *domain.StatementData, _ policy.Bundle) ([]byte, error) {
	if len(data.Loans) == 0 {
		return nil, domain.ErrNoLoanData
	}

	lines := []string{
		"LOAN STATEMENT",
		"",
		"Customer: " + data.CustomerNames(),
		"Customer ID: " + data.Primary().ID,
		"Billing Period: " + data.Period.String(),
		"",
	}

	for _, loan := range data.Loans {
		lines = append(lines,
			"Loan Type: "+loan.Category,
			"  Principal: "+loan.Principal.String(),
			"  Interest Rate: "+loan.AnnualRate.String()+"%",
			"  Current Balance: "+loan.CurrentBalance.String(),
			"  Payment Due: "+rawDate(loan),
			"",
		)
	}

	return []byte(strings.Join(lines, "\n")), nil
}

// rawDate is the unformatted ISO due date, empty when no payment is scheduled
func rawDate(loan domain.LoanLine) string {
	if loan.NextPaymentDate == nil {
		return ""
	}
	return loan.NextPaymentDate.Format(domain.DateLayout)
}
