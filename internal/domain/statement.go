package domain

import (
	"fmt"
	"strings"
	"time"
)

// Format is the output document format of a statement
type Format string

const (
	FormatPDF         Format = "pdf"
	FormatSpreadsheet Format = "spreadsheet"
	FormatText        Format = "text"
)

// Formats lists every supported format
var Formats = []Format{FormatPDF, FormatSpreadsheet, FormatText}

// ParseFormat resolves a format selector, accepting the file-extension aliases
// the frontend sends ("xlsx", "txt")
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pdf":
		return FormatPDF, nil
	case "spreadsheet", "xlsx", "excel":
		return FormatSpreadsheet, nil
	case "text", "txt":
		return FormatText, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// Extension returns the file extension used for downloads
func (f Format) Extension() string {
	switch f {
	case FormatPDF:
		return "pdf"
	case FormatSpreadsheet:
		return "xlsx"
	case FormatText:
		return "txt"
	}
	return ""
}

// RequiresLoans reports whether an empty loan list is an error for this format
func (f Format) RequiresLoans() bool {
	return f != FormatSpreadsheet
}

// BillingPeriod is an inclusive date range. Start is never after End.
type BillingPeriod struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// DateLayout is the wire and text format of calendar dates
const DateLayout = "2006-01-02"

// String renders the period as "2024-01-01 - 2024-01-31"
func (p BillingPeriod) String() string {
	return p.Start.Format(DateLayout) + " - " + p.End.Format(DateLayout)
}

// StatementData is the canonical render input, built fresh per request
type StatementData struct {
	Period    BillingPeriod
	Customers []Customer
	Loans     []LoanLine
	Format    Format
}

// Primary returns the first customer, used for the filename and account number fallback
func (s *StatementData) Primary() Customer {
	if len(s.Customers) == 0 {
		return Customer{}
	}
	return s.Customers[0]
}

// IsJoint is true when the statement is addressed to more than one customer
func (s *StatementData) IsJoint() bool {
	return len(s.Customers) > 1
}

// CustomerNames joins all customer names with ", "
func (s *StatementData) CustomerNames() string {
	names := make([]string, len(s.Customers))
	for i, c := range s.Customers {
		names[i] = c.Name
	}
	return strings.Join(names, ", ")
}

// LeadLoan is the loan that drives presentation policy
func (s *StatementData) LeadLoan() (LoanLine, bool) {
	if len(s.Loans) == 0 {
		return LoanLine{}, false
	}
	return s.Loans[0], true
}

// Filename suggests a download name: statement_C1.pdf or joint_statement_C1.pdf
func (s *StatementData) Filename() string {
	prefix := "statement"
	if s.IsJoint() {
		prefix = "joint_statement"
	}
	return fmt.Sprintf("%s_%s.%s", prefix, s.Primary().ID, s.Format.Extension())
}
