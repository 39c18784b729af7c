// Package policy maps a loan category to the presentation rules every renderer shares.
package policy

import (
	"fmt"
	"strings"
	"unicode"
)

// Category is the closed set of loan categories with their own presentation
type Category int

const (
	CategoryGeneric Category = iota
	CategoryRent
	CategoryMortgage
	CategoryAuto
	CategoryPersonal
	CategoryStudent
	CategoryBusiness
	CategoryCredit
	CategoryHELOC
	CategoryMedical
)

var categoryNames = map[Category]string{
	CategoryGeneric:  "generic",
	CategoryRent:     "rent",
	CategoryMortgage: "mortgage",
	CategoryAuto:     "auto",
	CategoryPersonal: "personal",
	CategoryStudent:  "student",
	CategoryBusiness: "business",
	CategoryCredit:   "credit",
	CategoryHELOC:    "heloc",
	CategoryMedical:  "medical",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("category(%d)", int(c))
}

// aliases is keyed by the normalized (lower-cased, trimmed) free-text loan type
var aliases = map[string]Category{
	"rent":      CategoryRent,
	"rental":    CategoryRent,
	"lease":     CategoryRent,
	"mortgage":  CategoryMortgage,
	"home":      CategoryMortgage,
	"house":     CategoryMortgage,
	"auto":      CategoryAuto,
	"car":       CategoryAuto,
	"vehicle":   CategoryAuto,
	"personal":  CategoryPersonal,
	"student":   CategoryStudent,
	"education": CategoryStudent,
	"business":  CategoryBusiness,
	"credit":    CategoryCredit,
	"heloc":     CategoryHELOC,
	"medical":   CategoryMedical,
}

// RGB is a colour with components in [0, 1]
type RGB struct {
	R, G, B float64
}

// Terminology names the people on a statement
type Terminology struct {
	HeaderSingle string
	HeaderPlural string
	AddressLabel string
}

var (
	tenantTerms = Terminology{
		HeaderSingle: "Tenant:",
		HeaderPlural: "Tenants:",
		AddressLabel: "Property Address:",
	}
	homeownerTerms = Terminology{
		HeaderSingle: "Homeowner:",
		HeaderPlural: "Homeowners:",
		AddressLabel: "Property Address:",
	}
	vehicleOwnerTerms = Terminology{
		HeaderSingle: "Vehicle Owner:",
		HeaderPlural: "Vehicle Owners:",
		AddressLabel: "Address:",
	}
	borrowerTerms = Terminology{
		HeaderSingle: "Borrower:",
		HeaderPlural: "Borrowers:",
		AddressLabel: "Address:",
	}
)

// DefaultTheme is the highlight colour of categories without their own theme
var DefaultTheme = RGB{0.80, 0.95, 0.80}

// Bundle is the resolved presentation policy for one loan category
type Bundle struct {
	// Key is the normalized category text the bundle was resolved from
	Key          string
	Category     Category
	DisplayName  string
	Title        string
	JointTitle   string
	IsRentLike   bool
	Terms        Terminology
	Theme        RGB
	SummaryTitle string
	Columns      [4]string
	RateLabel    string
	ShowInterest bool
	ShowCategory bool
	FooterText   string
}

type entry struct {
	displayName string
	terms       Terminology
	theme       RGB
}

var table = map[Category]entry{
	CategoryRent:     {"Rent", tenantTerms, RGB{0.75, 0.85, 0.95}},
	CategoryMortgage: {"Mortgage", homeownerTerms, RGB{0.85, 0.90, 0.95}},
	CategoryAuto:     {"Auto Loan", vehicleOwnerTerms, RGB{0.90, 0.85, 0.95}},
	CategoryPersonal: {"Personal Loan", borrowerTerms, RGB{0.95, 0.85, 0.90}},
	CategoryStudent:  {"Student Loan", borrowerTerms, RGB{0.85, 0.95, 0.90}},
	CategoryBusiness: {"Business Loan", borrowerTerms, RGB{0.95, 0.85, 0.90}},
	CategoryCredit:   {"Credit Line", borrowerTerms, RGB{0.95, 0.95, 0.80}},
	CategoryHELOC:    {"HELOC", borrowerTerms, RGB{0.80, 0.95, 0.95}},
	CategoryMedical:  {"Medical Loan", borrowerTerms, RGB{0.90, 0.85, 0.95}},
}

// Normalize lower-cases and trims a free-text loan type
func Normalize(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}

// ParseCategory maps free text onto the closed category set; unknown text is generic
func ParseCategory(category string) Category {
	if c, ok := aliases[Normalize(category)]; ok {
		return c
	}
	return CategoryGeneric
}

// Resolve returns the presentation bundle for a loan type. It never fails:
// unrecognized types get the generic loan bundle named after the type itself.
func Resolve(category string) Bundle {
	key := Normalize(category)
	cat := ParseCategory(key)

	e, ok := table[cat]
	if !ok {
		e = entry{displayName: "Loan", terms: borrowerTerms, theme: DefaultTheme}
		if key != "" {
			e.displayName = TitleCase(key)
		}
	}

	title := e.displayName + " Statement"
	if cat == CategoryGeneric && key != "" && key != "loan" {
		title = e.displayName + " Loan Statement"
	}

	rentLike := cat == CategoryRent
	b := Bundle{
		Key:          key,
		Category:     cat,
		DisplayName:  e.displayName,
		Title:        title,
		JointTitle:   "Joint Account Statement",
		IsRentLike:   rentLike,
		Terms:        e.terms,
		Theme:        e.theme,
		SummaryTitle: "Loan Summary",
		RateLabel:    "APR",
		ShowInterest: true,
		ShowCategory: key != "" && key != "loan",
		FooterText:   "For questions or support, please reach out via email.",
	}
	if rentLike {
		b.JointTitle = "Joint Tenancy Statement"
		b.SummaryTitle = "Activity Summary"
		b.RateLabel = "Rate"
		b.ShowInterest = false
		b.ShowCategory = false
		b.FooterText = "For questions about your rent or lease, please contact your property manager."
	}

	payment := "Monthly Payment"
	if rentLike {
		payment = "Monthly Rent"
	}
	b.Columns = [4]string{"Billing Period", payment, "Remaining Balance", b.RateLabel}
	return b
}

// StatementTitle picks the joint variant when more than one customer is on the statement
func (b Bundle) StatementTitle(customerCount int) string {
	if customerCount > 1 {
		return b.JointTitle
	}
	return b.Title
}

// CustomerHeader picks singular or plural terminology by customer count
func (b Bundle) CustomerHeader(customerCount int) string {
	if customerCount > 1 {
		return b.Terms.HeaderPlural
	}
	return b.Terms.HeaderSingle
}

// PaymentHeadline is the wording of the payment-due line without the amount
func (b Bundle) PaymentHeadline() string {
	switch {
	case b.Key == "rent to own":
		return "Monthly Rent To Own Payment Due"
	case b.IsRentLike:
		return "Monthly Rent Due"
	case b.Key == "" || b.Key == "loan":
		return "Monthly Payment Due"
	}
	return "Monthly " + TitleCase(b.Key) + " Payment Due"
}

// RateCell formats an annual rate for the summary table; rent shows no rate
func (b Bundle) RateCell(rate string) string {
	if b.IsRentLike {
		return "N/A"
	}
	return rate + "%"
}

// TitleCase upper-cases the first letter of every run of letters and
// lower-cases the rest, so "zzz-unknown" becomes "Zzz-Unknown"
func TitleCase(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				sb.WriteRune(unicode.ToLower(r))
			} else {
				sb.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
			continue
		}
		sb.WriteRune(r)
		prevLetter = false
	}
	return sb.String()
}
