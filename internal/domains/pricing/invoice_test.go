package pricing_test

import (
	"strconv"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"resort/internal/domains/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleMetadata() pricing.InvoiceMetadata {
	return pricing.InvoiceMetadata{
		InvoiceNumber: "INV-1790000000000000001",
		Guest:         "alice",
		ResortName:    "Paradise Beach Resort",
		Location:      "Maldives",
		RoomType:      "Premium",
		Beds:          2,
		CheckIn:       time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		CheckOut:      time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC),
		Nights:        3,
		Guests:        2,
		RoomRate:      200,
		Meal:          &pricing.MealLine{Cuisine: "International", Plan: "Full Board", Rate: 70},
		TaxRate:       0.10,
		IssuedAt:      time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC),
	}
}

// amountOf pulls the trailing dollar amount out of a rendered charge line.
func amountOf(t *testing.T, text, label string) float64 {
	t.Helper()

	for _, line := range strings.Split(text, "\n") {
		if !strings.Contains(line, label) {
			continue
		}

		idx := strings.LastIndex(line, "$")
		require.NotEqual(t, -1, idx, "no amount on line %q", line)

		raw := strings.TrimSuffix(strings.TrimSpace(line[idx+1:]), "|")
		value, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
		require.NoError(t, err)

		return value
	}

	t.Fatalf("label %q not found", label)

	return 0
}

func TestRenderInvoiceText_Width(t *testing.T) {
	meta := sampleMetadata()
	meta.ResortName = strings.Repeat("Very Long Resort Name ", 5)
	meta.Guest = "ĝuest-ŵith-ŭnicode-" + strings.Repeat("é", 60)

	charges, err := pricing.ComputeCharges(pricing.ChargeInput{RoomRate: 200, Beds: 2, MealRate: &meta.Meal.Rate, Nights: 3, TaxRate: 0.10})
	require.NoError(t, err)

	text := pricing.RenderInvoiceText(charges, meta)
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")

	for _, line := range lines {
		assert.Equal(t, pricing.InvoiceWidth+2, utf8.RuneCountInString(line), "line %q", line)
		assert.True(t, strings.HasPrefix(line, "|") || strings.HasPrefix(line, "+"), "line %q", line)
	}

	assert.Contains(t, text, "INVOICE")
	assert.Contains(t, text, "Invoice #: INV-1790000000000000001")
	assert.Contains(t, text, "Date: 2025-03-01")
	assert.Contains(t, text, "MEAL PLAN")
	assert.Contains(t, text, "Taxes (10%):")
}

func TestRenderInvoiceText_RoundTrip(t *testing.T) {
	meta := sampleMetadata()

	charges, err := pricing.ComputeCharges(pricing.ChargeInput{RoomRate: 200, Beds: 2, MealRate: &meta.Meal.Rate, Nights: 3, TaxRate: 0.10})
	require.NoError(t, err)

	text := pricing.RenderInvoiceText(charges, meta)

	assert.InDelta(t, charges.RoomCharges, amountOf(t, text, "Room: $"), 0.005)
	assert.InDelta(t, charges.FoodCharges, amountOf(t, text, "Meals:"), 0.005)
	assert.InDelta(t, charges.Subtotal, amountOf(t, text, "Subtotal:"), 0.005)
	assert.InDelta(t, charges.Taxes, amountOf(t, text, "Taxes"), 0.005)
	assert.InDelta(t, charges.Total, amountOf(t, text, "TOTAL AMOUNT:"), 0.005)

	assert.Equal(t, 891.0, amountOf(t, text, "TOTAL AMOUNT:"))
}

func TestRenderInvoiceText_LargeAmountsRoundTrip(t *testing.T) {
	meta := sampleMetadata()
	meta.RoomRate = 12345.678
	meta.Nights = 30

	charges, err := pricing.ComputeCharges(pricing.ChargeInput{RoomRate: meta.RoomRate, Beds: 2, Nights: meta.Nights, TaxRate: 0.075})
	require.NoError(t, err)

	meta.Meal = nil
	meta.TaxRate = 0.075
	text := pricing.RenderInvoiceText(charges, meta)

	assert.Contains(t, text, "Taxes (7.5%):")
	assert.NotContains(t, text, "MEAL PLAN")
	assert.InDelta(t, charges.Total, amountOf(t, text, "TOTAL AMOUNT:"), 0.005)
	assert.InDelta(t, charges.RoomCharges, amountOf(t, text, "Room: $"), 0.005)
}

func TestRenderInvoiceText_Quote(t *testing.T) {
	meta := sampleMetadata()
	meta.InvoiceNumber = ""
	meta.Meal = nil

	charges, err := pricing.ComputeCharges(pricing.ChargeInput{RoomRate: 100, Beds: 1, Nights: 1, TaxRate: 0.10})
	require.NoError(t, err)

	text := pricing.RenderInvoiceText(charges, meta)

	assert.Contains(t, text, "BOOKING SUMMARY")
	assert.NotContains(t, text, "Invoice #:")
	assert.NotContains(t, text, "Meals:")
	assert.Equal(t, 110.0, amountOf(t, text, "TOTAL AMOUNT:"))
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{in: 0, want: "$0.00"},
		{in: 81, want: "$81.00"},
		{in: 999.994, want: "$999.99"},
		{in: 999.996, want: "$1,000.00"},
		{in: 1234.5, want: "$1,234.50"},
		{in: 1234567.891, want: "$1,234,567.89"},
		{in: -0.001, want: "$0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, pricing.FormatAmount(tt.in))
		})
	}
}
