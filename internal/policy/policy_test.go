package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve_CaseAndWhitespaceInsensitive(t *testing.T) {
	expected := Resolve("rent")
	for _, input := range []string{"RENT", " Rent ", "rent", "\tReNt\n"} {
		assert.Equal(t, expected, Resolve(input), "input %q", input)
	}
}

func TestResolve_UnknownCategory(t *testing.T) {
	b := Resolve("zzz-unknown")

	assert.Equal(t, CategoryGeneric, b.Category)
	assert.False(t, b.IsRentLike)
	assert.Equal(t, "Zzz-Unknown", b.DisplayName)
	assert.Equal(t, "Zzz-Unknown Loan Statement", b.Title)
	assert.Equal(t, "Borrower:", b.Terms.HeaderSingle)
	assert.Equal(t, DefaultTheme, b.Theme)
	assert.True(t, b.ShowCategory)
}

func TestResolve_EmptyCategory(t *testing.T) {
	b := Resolve("   ")

	assert.Equal(t, "Loan", b.DisplayName)
	assert.Equal(t, "Loan Statement", b.Title)
	assert.False(t, b.ShowCategory)
	assert.Equal(t, "Monthly Payment Due", b.PaymentHeadline())

	literal := Resolve("Loan")
	assert.Equal(t, "Loan Statement", literal.Title)
	assert.False(t, literal.ShowCategory)
}

func TestResolve_Aliases(t *testing.T) {
	tests := []struct {
		input    string
		category Category
		display  string
		title    string
	}{
		{"rent", CategoryRent, "Rent", "Rent Statement"},
		{"rental", CategoryRent, "Rent", "Rent Statement"},
		{"lease", CategoryRent, "Rent", "Rent Statement"},
		{"mortgage", CategoryMortgage, "Mortgage", "Mortgage Statement"},
		{"home", CategoryMortgage, "Mortgage", "Mortgage Statement"},
		{"house", CategoryMortgage, "Mortgage", "Mortgage Statement"},
		{"auto", CategoryAuto, "Auto Loan", "Auto Loan Statement"},
		{"car", CategoryAuto, "Auto Loan", "Auto Loan Statement"},
		{"vehicle", CategoryAuto, "Auto Loan", "Auto Loan Statement"},
		{"personal", CategoryPersonal, "Personal Loan", "Personal Loan Statement"},
		{"student", CategoryStudent, "Student Loan", "Student Loan Statement"},
		{"education", CategoryStudent, "Student Loan", "Student Loan Statement"},
		{"business", CategoryBusiness, "Business Loan", "Business Loan Statement"},
		{"credit", CategoryCredit, "Credit Line", "Credit Line Statement"},
		{"heloc", CategoryHELOC, "HELOC", "HELOC Statement"},
		{"medical", CategoryMedical, "Medical Loan", "Medical Loan Statement"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			b := Resolve(tt.input)
			assert.Equal(t, tt.category, b.Category)
			assert.Equal(t, tt.display, b.DisplayName)
			assert.Equal(t, tt.title, b.Title)
			assert.Equal(t, tt.category == CategoryRent, b.IsRentLike)
		})
	}
}

func TestResolve_AliasesShareOneBundle(t *testing.T) {
	car := Resolve("car")
	auto := Resolve("auto")
	assert.Equal(t, auto.Theme, car.Theme)
	assert.Equal(t, auto.Terms, car.Terms)
	assert.Equal(t, auto.Title, car.Title)
}

func TestResolve_RentLikeRules(t *testing.T) {
	b := Resolve("Lease")

	assert.True(t, b.IsRentLike)
	assert.Equal(t, "Activity Summary", b.SummaryTitle)
	assert.Equal(t, "Rate", b.RateLabel)
	assert.Equal(t, [4]string{"Billing Period", "Monthly Rent", "Remaining Balance", "Rate"}, b.Columns)
	assert.False(t, b.ShowInterest)
	assert.False(t, b.ShowCategory)
	assert.Equal(t, "Property Address:", b.Terms.AddressLabel)
	assert.Equal(t, "Monthly Rent Due", b.PaymentHeadline())
	assert.Equal(t, "N/A", b.RateCell("5"))
	assert.Contains(t, b.FooterText, "property manager")
}

func TestResolve_LoanRules(t *testing.T) {
	b := Resolve("mortgage")

	assert.Equal(t, "Loan Summary", b.SummaryTitle)
	assert.Equal(t, "APR", b.RateLabel)
	assert.Equal(t, [4]string{"Billing Period", "Monthly Payment", "Remaining Balance", "APR"}, b.Columns)
	assert.True(t, b.ShowInterest)
	assert.True(t, b.ShowCategory)
	assert.Equal(t, "Monthly Mortgage Payment Due", b.PaymentHeadline())
	assert.Equal(t, "4.5%", b.RateCell("4.5"))
}

func TestPaymentHeadline_RentToOwn(t *testing.T) {
	b := Resolve("Rent To Own")

	assert.False(t, b.IsRentLike)
	assert.Equal(t, "Monthly Rent To Own Payment Due", b.PaymentHeadline())
	assert.Equal(t, "Rent To Own Loan Statement", b.Title)
}

func TestStatementTitleAndHeader_ByCustomerCount(t *testing.T) {
	rent := Resolve("rent")
	assert.Equal(t, "Rent Statement", rent.StatementTitle(1))
	assert.Equal(t, "Joint Tenancy Statement", rent.StatementTitle(2))
	assert.Equal(t, "Tenant:", rent.CustomerHeader(1))
	assert.Equal(t, "Tenants:", rent.CustomerHeader(2))

	auto := Resolve("auto")
	assert.Equal(t, "Auto Loan Statement", auto.StatementTitle(1))
	assert.Equal(t, "Joint Account Statement", auto.StatementTitle(3))
	assert.Equal(t, "Vehicle Owner:", auto.CustomerHeader(1))
	assert.Equal(t, "Vehicle Owners:", auto.CustomerHeader(2))
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Zzz-Unknown", TitleCase("zzz-unknown"))
	assert.Equal(t, "Rent To Own", TitleCase("rent to own"))
	assert.Equal(t, "Boat", TitleCase("BOAT"))
	assert.Equal(t, "4X4 Truck", TitleCase("4x4 truck"))
	assert.Equal(t, "", TitleCase(""))
}

func TestCategoryString(t *testing.T) {
	assert.Equal(t, "heloc", CategoryHELOC.String())
	assert.Equal(t, "generic", ParseCategory("boat").String())
}
