// Package pricing computes booking charges and renders the fixed-width invoice text.
// It performs no I/O; rounding to cents happens only when amounts are formatted.
package pricing

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var ErrInvalidInput = errors.New("invalid pricing input")

type ChargeInput struct {
	RoomRate float64
	// Beds is validated but does not affect the room charge.
	Beds     int
	MealRate *float64
	Nights   int
	TaxRate  float64
}

type Charges struct {
	RoomCharges float64 `json:"room_charges"`
	FoodCharges float64 `json:"food_charges"`
	Subtotal    float64 `json:"subtotal"`
	Taxes       float64 `json:"taxes"`
	Total       float64 `json:"total"`
}

// ComputeCharges applies room = rate x nights, food = meal x nights (0 without a meal),
// taxes = subtotal x tax rate, total = subtotal + taxes.
func ComputeCharges(in ChargeInput) (Charges, error) {
	if err := in.validate(); err != nil {
		return Charges{}, err
	}

	nights := float64(in.Nights)

	charges := Charges{
		RoomCharges: in.RoomRate * nights,
	}

	if in.MealRate != nil {
		charges.FoodCharges = *in.MealRate * nights
	}

	charges.Subtotal = charges.RoomCharges + charges.FoodCharges
	charges.Taxes = charges.Subtotal * in.TaxRate
	charges.Total = charges.Subtotal + charges.Taxes

	return charges, nil
}

func (in ChargeInput) validate() error {
	values := []float64{in.RoomRate, in.TaxRate}
	if in.MealRate != nil {
		values = append(values, *in.MealRate)
	}

	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: amounts must be finite numbers", ErrInvalidInput)
		}
	}

	switch {
	case in.RoomRate <= 0:
		return fmt.Errorf("%w: room rate must be greater than 0", ErrInvalidInput)
	case in.Beds < 1:
		return fmt.Errorf("%w: beds must be at least 1", ErrInvalidInput)
	case in.Nights < 1:
		return fmt.Errorf("%w: nights must be at least 1", ErrInvalidInput)
	case in.MealRate != nil && *in.MealRate < 0:
		return fmt.Errorf("%w: meal rate must not be negative", ErrInvalidInput)
	case in.TaxRate < 0:
		return fmt.Errorf("%w: tax rate must not be negative", ErrInvalidInput)
	}

	return nil
}

// NightsBetween counts calendar days between two dates, ignoring the time of day
// and daylight saving shifts.
func NightsBetween(checkIn, checkOut time.Time) int {
	from := time.Date(checkIn.Year(), checkIn.Month(), checkIn.Day(), 0, 0, 0, 0, time.UTC)
	to := time.Date(checkOut.Year(), checkOut.Month(), checkOut.Day(), 0, 0, 0, 0, time.UTC)

	return int(to.Sub(from).Hours() / 24) //nolint:mnd
}

// CheckOutDate returns the departure date for a stay of nights starting at checkIn.
func CheckOutDate(checkIn time.Time, nights int) time.Time {
	return checkIn.AddDate(0, 0, nights)
}
