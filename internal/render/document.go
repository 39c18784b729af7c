package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/epimonos/statement-backend/internal/domain"
	"github.com/epimonos/statement-backend/internal/finance"
	"github.com/epimonos/statement-backend/internal/policy"
	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// US Letter in points
const (
	pageWidth  = 612.0
	pageHeight = 792.0
	margin     = 50.0
)

const (
	accountNumberMax = 15
	periodMax        = 25
	graceNotice      = "*Please make your payment within the 10 day grace period as stated in the contract."
)

var summaryColumnWidths = [4]float64{136, 106, 126, 66}

// DocumentRenderer lays out a single-page PDF statement
type DocumentRenderer struct {
	companyName string
	clock       Clock
	compress    bool
}

// NewDocumentRenderer creates a new DocumentRenderer. A nil clock reads the wall clock.
func NewDocumentRenderer(companyName string, clock Clock) *DocumentRenderer {
	if clock == nil {
		clock = SystemClock{}
	}
	return &DocumentRenderer{companyName: companyName, clock: clock, compress: true}
}

// MediaType returns the PDF media type
func (r *DocumentRenderer) MediaType() string { return MediaTypePDF }

// Render draws the statement for the lead loan. Coordinates below follow a
// bottom-left origin; canvas flips them for fpdf.
func (r *DocumentRenderer) Render(data *domain.StatementData, b policy.Bundle) ([]byte, error) {
	if len(data.Loans) == 0 {
		return nil, domain.ErrNoLoanData
	}

	loan := data.Loans[0]
	customers := data.Customers
	primary := data.Primary()
	now := r.clock.Now()
	title := b.StatementTitle(len(customers))

	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetCreationDate(now)
	pdf.SetModificationDate(now)
	pdf.SetCatalogSort(true)
	pdf.SetCompression(r.compress)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(title, true)
	pdf.SetAuthor(r.companyName, true)
	pdf.AddPage()

	c := &canvas{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	y := pageHeight - margin

	// Header
	c.font("I", 20)
	c.text(margin, y, r.companyName)
	y -= 36

	c.font("B", 16)
	c.text(margin, y, title)
	y -= 30

	// Customer block
	c.font("B", 11)
	c.text(margin, y, b.CustomerHeader(len(customers)))
	y -= 20
	c.text(margin, y, data.CustomerNames())
	y -= 20

	if primary.Address != "" {
		c.text(margin, y, b.Terms.AddressLabel+" "+primary.Address)
		y -= 20
	}

	for i, cust := range customers {
		var contact []string
		if cust.Phone != "" {
			contact = append(contact, "Ph: "+cust.Phone)
		}
		if cust.Email != "" {
			contact = append(contact, "Email: "+cust.Email)
		}
		if len(contact) == 0 {
			continue
		}
		label := "Contact:"
		if len(customers) > 1 {
			label = fmt.Sprintf("Contact %d:", i+1)
		}
		c.text(margin, y, label+" "+strings.Join(contact, ", "))
		y -= 18
	}
	customerBottom := y + 5

	// Metadata column
	metaX := pageWidth - 200
	metaY := pageHeight - margin - 10
	period := data.Period.String()
	dateY := metaY - 30

	c.font("B", 10)
	c.textRight(metaX-5, metaY, "Account Number:")
	c.textRight(metaX-5, metaY-15, "Billing Period:")

	c.font("", 10)
	account := loan.ID
	if account == "" {
		account = primary.ID
	}
	c.text(metaX, metaY, Truncate(account, accountNumberMax, Ellipsis))

	if runes := []rune(period); len(runes) > periodMax {
		c.text(metaX, metaY-15, Truncate(period, periodMax, ""))
		c.text(metaX, metaY-27, Truncate(string(runes[periodMax:]), periodMax, Ellipsis))
		dateY = metaY - 42
	} else {
		c.text(metaX, metaY-15, period)
	}

	c.font("B", 10)
	c.textRight(metaX-5, dateY, "Statement Date:")
	c.font("", 10)
	c.text(metaX, dateY, FormatDate(now))

	// Highlight box
	boxHeight := 80.0
	boxY := customerBottom - boxHeight
	c.roundRect(margin, boxY, pageWidth-2*margin, boxHeight, 8, b.Theme)

	c.pdf.SetTextColor(0, 0, 0)
	c.font("B", 13)
	c.text(margin+15, boxY+50, b.PaymentHeadline()+": "+SafeCurrency(loan.MonthlyPayment))

	due := "Payment Due Date: " + FormatDueDate(loan.NextPaymentDate)
	if finance.IsOverdue(loan.NextPaymentDate, now) {
		due += " (Past Due)"
	}
	c.font("B", 11)
	c.text(margin+15, boxY+32, due)
	c.font("", 11)
	c.text(margin+15, boxY+16, graceNotice)

	// Account overview
	y = boxY - 35
	c.font("B", 12)
	c.text(margin, y, "Account Overview")
	y -= 20

	type item struct{ label, value string }
	balance := Currency(loan.CurrentBalance)
	items := []item{{"Previous Balance:", balance}}
	if b.ShowInterest {
		items = append(items, item{"Interest Accrued:", Currency(finance.MonthlyInterest(loan.CurrentBalance, loan.AnnualRate))})
	}
	if finance.HasAmountDue(loan.AmountDue) {
		items = append(items, item{"Amount Due:", Currency(*loan.AmountDue)})
	}
	items = append(items, item{"Fees:", ZeroCurrency}, item{"Current Balance:", balance})

	c.font("", 10)
	for _, it := range items {
		c.text(margin, y, it.label)
		c.text(margin+180, y, it.value)
		y -= 14
	}

	// Summary table
	y -= 25
	c.font("B", 13)
	c.text(margin, y, b.SummaryTitle)
	y -= 18

	c.font("B", 10)
	c.row(margin, y, b.Columns)
	y -= 14

	c.font("", 10)
	c.row(margin, y, [4]string{
		Truncate(period, periodMax, Ellipsis),
		SafeCurrency(loan.MonthlyPayment),
		balance,
		b.RateCell(loan.AnnualRate.String()),
	})
	y -= 5
	c.rule(margin, y, pageWidth-margin)

	if b.ShowCategory && strings.TrimSpace(loan.Category) != "" {
		y -= 20
		c.font("", 10)
		c.text(margin, y, "Loan Type: "+loan.Category)
	}

	// Footer
	footerY := 40.0
	c.font("", 8)
	c.pdf.SetTextColor(128, 128, 128)
	c.text(margin, footerY, b.FooterText)
	c.textRight(pageWidth-margin, footerY, fmt.Sprintf("Page %d", pdf.PageNo()))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// canvas draws with a bottom-left origin, the way statement coordinates are measured
type canvas struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func (c *canvas) font(style string, size float64) {
	c.pdf.SetFont("Helvetica", style, size)
}

func (c *canvas) text(x, y float64, s string) {
	c.pdf.Text(x, pageHeight-y, c.tr(s))
}

func (c *canvas) textRight(x, y float64, s string) {
	s = c.tr(s)
	c.pdf.Text(x-c.pdf.GetStringWidth(s), pageHeight-y, s)
}

func (c *canvas) row(x, y float64, cells [4]string) {
	for i, cell := range cells {
		c.text(x, y, cell)
		x += summaryColumnWidths[i]
	}
}

func (c *canvas) roundRect(x, y, w, h, radius float64, fill policy.RGB) {
	c.pdf.SetFillColor(channel(fill.R), channel(fill.G), channel(fill.B))
	c.pdf.RoundedRect(x, pageHeight-y-h, w, h, radius, "1234", "F")
}

func (c *canvas) rule(x1, y, x2 float64) {
	c.pdf.SetDrawColor(211, 211, 211)
	c.pdf.SetLineWidth(0.5)
	c.pdf.Line(x1, pageHeight-y, x2, pageHeight-y)
}

func channel(v float64) int {
	return int(decimal.NewFromFloat(v * 255).Round(0).IntPart())
}
