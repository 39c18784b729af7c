package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/epimonos/statement-backend/internal/render"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const singleCustomerBody = `{
	"customer": {"customer_id": "C1", "name": "Ann Lee", "address": "1 Main St", "phone": "555-0100", "email": "ann@example.com"},
	"loans": [{"loan_id": "L1", "loan_type": "mortgage", "principal": "200000", "interest_rate": "4.5",
		"term_months": "360", "current_balance": "195000", "payment_due_date": "2024-02-15", "monthly_payment": ""}],
	"billing_period_start": "2024-01-01",
	"billing_period_end": "2024-01-31",
	"statement_format": "txt"
}`

func postJSON(t *testing.T, target, body string, h echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h(c))
	return rec
}

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) ProblemDetails {
	t.Helper()
	var p ProblemDetails
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	return p
}

func TestGenerate_SingleCustomerText(t *testing.T) {
	statements, _ := newTestServices()
	h := NewStatementHandler(statements)

	rec := postJSON(t, "/api/statements", singleCustomerBody, h.Generate)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, render.MediaTypeText, rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, "attachment; filename=statement_C1.txt", rec.Header().Get(echo.HeaderContentDisposition))
	assert.Regexp(t, `^STMT20240205[0-9A-F]{8}$`, rec.Header().Get(HeaderStatementID))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "LOAN STATEMENT\n"))
	assert.Contains(t, rec.Body.String(), "Customer: Ann Lee\n")
}

func TestGenerate_JointPDF(t *testing.T) {
	statements, _ := newTestServices()
	h := NewStatementHandler(statements)

	body := strings.Replace(singleCustomerBody,
		`"customer": {"customer_id": "C1", "name": "Ann Lee", "address": "1 Main St", "phone": "555-0100", "email": "ann@example.com"}`,
		`"customers": [{"customer_id": "C1", "name": "Ann Lee"}, {"customer_id": "C2", "name": "Bo Lee"}]`, 1)
	body = strings.Replace(body, `"statement_format": "txt"`, `"statement_format": "pdf"`, 1)

	rec := postJSON(t, "/api/generate-statement", body, h.Generate)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, render.MediaTypePDF, rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, "attachment; filename=joint_statement_C1.pdf", rec.Header().Get(echo.HeaderContentDisposition))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF-"))
}

func TestGenerate_ValidationErrors(t *testing.T) {
	statements, _ := newTestServices()
	h := NewStatementHandler(statements)

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"missing customer", `{"loans": [{"loan_id": "L1", "term_months": 12}], "billing_period_start": "2024-01-01", "billing_period_end": "2024-01-31"}`, "customers"},
		{"no loans", `{"customer": {"customer_id": "C1", "name": "Ann"}, "loans": [], "billing_period_start": "2024-01-01", "billing_period_end": "2024-01-31", "statement_format": "pdf"}`, "loans"},
		{"bad term", `{"customer": {"customer_id": "C1", "name": "Ann"}, "loans": [{"loan_id": "L1", "principal": 100, "term_months": 0}], "billing_period_start": "2024-01-01", "billing_period_end": "2024-01-31"}`, "loans.term_months"},
		{"bad format", `{"customer": {"customer_id": "C1", "name": "Ann"}, "loans": [], "billing_period_start": "2024-01-01", "billing_period_end": "2024-01-31", "statement_format": "docx"}`, "statement_format"},
		{"reversed period", `{"customer": {"customer_id": "C1", "name": "Ann"}, "loans": [{"loan_id": "L1", "principal": 100, "term_months": 1}], "billing_period_start": "2024-02-01", "billing_period_end": "2024-01-31"}`, "billing_period"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, "/api/statements", tt.body, h.Generate)
			require.Equal(t, http.StatusBadRequest, rec.Code)

			p := decodeProblem(t, rec)
			assert.Equal(t, ErrorTypeValidation, p.Type)
			require.Len(t, p.Errors, 1)
			assert.Equal(t, tt.field, p.Errors[0].Field)
		})
	}
}

func TestGenerate_MalformedBody(t *testing.T) {
	statements, _ := newTestServices()
	h := NewStatementHandler(statements)

	rec := postJSON(t, "/api/statements", `{"loans": [{"principal": "lots"}]}`, h.Generate)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid request body", decodeProblem(t, rec).Detail)
}

func TestGenerateFromRecords(t *testing.T) {
	statements, _ := newTestServices()
	h := NewStatementHandler(statements)

	body := `{"customerIds": ["C1"], "loanAccountNumbers": ["L1"], "periodStart": "2024-01-01", "periodEnd": "2024-01-31", "format": "xlsx"}`
	rec := postJSON(t, "/api/v1/statements/from-records", body, h.GenerateFromRecords)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, render.MediaTypeSpreadsheet, rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, "attachment; filename=statement_C1.xlsx", rec.Header().Get(echo.HeaderContentDisposition))
	assert.NotEmpty(t, rec.Header().Get(HeaderStatementID))
}

func TestGenerateFromRecords_Errors(t *testing.T) {
	statements, _ := newTestServices()
	h := NewStatementHandler(statements)

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"bad start", `{"customerIds": ["C1"], "periodStart": "01/01/2024", "periodEnd": "2024-01-31"}`, http.StatusBadRequest},
		{"unknown customer", `{"customerIds": ["C9"], "periodStart": "2024-01-01", "periodEnd": "2024-01-31"}`, http.StatusNotFound},
		{"unknown loan", `{"customerIds": ["C1"], "loanAccountNumbers": ["L9"], "periodStart": "2024-01-01", "periodEnd": "2024-01-31"}`, http.StatusNotFound},
		{"foreign loan", `{"customerIds": ["C1"], "loanAccountNumbers": ["L2"], "periodStart": "2024-01-01", "periodEnd": "2024-01-31"}`, http.StatusBadRequest},
		{"bad format", `{"customerIds": ["C1"], "periodStart": "2024-01-01", "periodEnd": "2024-01-31", "format": "docx"}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, "/api/v1/statements/from-records", tt.body, h.GenerateFromRecords)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
