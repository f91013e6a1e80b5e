package pricing

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// InvoiceWidth is the number of runes between the left and right border of every line.
const InvoiceWidth = 56

const (
	dateLayout  = time.DateOnly
	chargeGap   = 2
	titleQuote  = "BOOKING SUMMARY"
	titleIssued = "INVOICE"
)

var printer = message.NewPrinter(language.English)

type MealLine struct {
	Cuisine string
	Plan    string
	Rate    float64
}

type InvoiceMetadata struct {
	// InvoiceNumber is empty for a quote that has not been confirmed yet.
	InvoiceNumber string
	Guest         string
	ResortName    string
	Location      string
	RoomType      string
	Beds          int
	CheckIn       time.Time
	CheckOut      time.Time
	Nights        int
	Guests        int
	RoomRate      float64
	Meal          *MealLine
	TaxRate       float64
	IssuedAt      time.Time
}

// FormatAmount renders v as dollars with thousands separators, rounded half away from zero to cents.
func FormatAmount(v float64) string {
	cents := math.Round(v * 100) //nolint:mnd
	if cents == 0 {
		cents = 0 // drops the sign of -0
	}

	return printer.Sprintf("$%.2f", cents/100) //nolint:mnd
}

// FormatTaxRate renders a fraction as a percentage without trailing zeros, 0.1 -> "10%".
func FormatTaxRate(rate float64) string {
	percent := math.Round(rate*10000) / 100 //nolint:mnd

	return strconv.FormatFloat(percent, 'f', -1, 64) + "%"
}

// RenderInvoiceText lays the charges out in a bordered box. Every line is exactly
// InvoiceWidth+2 runes; labels that do not fit are truncated.
func RenderInvoiceText(c Charges, m InvoiceMetadata) string {
	var b invoiceBuilder

	title := titleQuote
	if m.InvoiceNumber != "" {
		title = titleIssued
	}

	b.border('=')
	b.center(title)
	b.border('=')

	if m.InvoiceNumber != "" {
		b.text("Invoice #: " + m.InvoiceNumber)
		b.text("Date: " + m.IssuedAt.Format(dateLayout))
	}

	b.text("Guest: " + m.Guest)

	b.divider()
	b.text("RESORT DETAILS")
	b.text("  Resort: " + m.ResortName)
	b.text("  Location: " + m.Location)
	b.text("  Room: " + m.RoomType + " (" + strconv.Itoa(m.Beds) + " beds)")

	b.divider()
	b.text("STAY DETAILS")
	b.text("  Check-in: " + m.CheckIn.Format(dateLayout))
	b.text("  Check-out: " + m.CheckOut.Format(dateLayout))
	b.text("  Nights: " + strconv.Itoa(m.Nights))
	b.text("  Guests: " + strconv.Itoa(m.Guests))

	if m.Meal != nil {
		b.divider()
		b.text("MEAL PLAN")
		b.text("  Cuisine: " + m.Meal.Cuisine)
		b.text("  Plan: " + m.Meal.Plan)
	}

	b.divider()
	b.text("CHARGES")
	b.divider()
	b.charge("  Room: "+FormatAmount(m.RoomRate)+" x "+strconv.Itoa(m.Nights)+" nights", c.RoomCharges)

	if m.Meal != nil {
		b.charge("  Meals: "+FormatAmount(m.Meal.Rate)+" x "+strconv.Itoa(m.Nights)+" days", c.FoodCharges)
	}

	b.divider()
	b.charge("  Subtotal:", c.Subtotal)
	b.charge("  Taxes ("+FormatTaxRate(m.TaxRate)+"):", c.Taxes)
	b.border('=')
	b.charge("  TOTAL AMOUNT:", c.Total)
	b.border('=')

	return b.String()
}

type invoiceBuilder struct {
	strings.Builder
}

func (b *invoiceBuilder) line(content string) {
	b.WriteString("|")
	b.WriteString(content)
	b.WriteString("|\n")
}

func (b *invoiceBuilder) border(fill rune) {
	b.WriteString("+")
	b.WriteString(strings.Repeat(string(fill), InvoiceWidth))
	b.WriteString("+\n")
}

func (b *invoiceBuilder) divider() {
	b.line(strings.Repeat("-", InvoiceWidth))
}

func (b *invoiceBuilder) text(s string) {
	b.line(fit(s, InvoiceWidth))
}

func (b *invoiceBuilder) center(s string) {
	s = truncate(s, InvoiceWidth)
	left := (InvoiceWidth - utf8.RuneCountInString(s)) / 2 //nolint:mnd

	b.line(fit(strings.Repeat(" ", left)+s, InvoiceWidth))
}

// charge right-aligns the amount against the border with at least two spaces after the label.
func (b *invoiceBuilder) charge(label string, amount float64) {
	value := FormatAmount(amount)

	labelWidth := InvoiceWidth - utf8.RuneCountInString(value) - chargeGap
	if labelWidth < 0 {
		b.line(fit(value, InvoiceWidth))

		return
	}

	b.line(fit(label, labelWidth) + strings.Repeat(" ", chargeGap) + value)
}

func fit(s string, width int) string {
	s = truncate(s, width)

	return s + strings.Repeat(" ", width-utf8.RuneCountInString(s))
}

func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}

	return string([]rune(s)[:width])
}
