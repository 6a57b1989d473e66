// Package pricing computes order totals from a cart, a meal slot and the
// current local time. It has no side effects.
package pricing

import (
	"time"

	"southern-spoon-api/models"

	"github.com/shopspring/decimal"
)

const (
	LunchCutoffHour  = 12
	DinnerCutoffHour = 19

	// DefaultSurcharge is the flat delivery fee once a slot's cutoff has passed
	DefaultSurcharge int64 = 50
)

// DefaultTaxRate is 5%
var DefaultTaxRate = decimal.New(5, -2)

// Rules holds the tunable pricing constants
type Rules struct {
	Surcharge int64
	TaxRate   decimal.Decimal
	Cutoffs   map[models.MealSlot]int // local hour at which the surcharge starts
}

func DefaultRules() Rules {
	return Rules{
		Surcharge: DefaultSurcharge,
		TaxRate:   DefaultTaxRate,
		Cutoffs: map[models.MealSlot]int{
			models.MealLunch:  LunchCutoffHour,
			models.MealDinner: DinnerCutoffHour,
		},
	}
}

// Quote is the price breakdown shown to the customer
type Quote struct {
	Subtotal         int64 `json:"subtotal"`
	DeliveryCharge   int64 `json:"delivery_charge"`
	Tax              int64 `json:"tax"`
	Total            int64 `json:"total"`
	SurchargeApplied bool  `json:"surcharge_applied"`
}

// Subtotal is the weighted sum of price×qty over all lines
func Subtotal(lines []models.CartLine) int64 {
	var sum int64
	for _, l := range lines {
		if l.Qty <= 0 {
			continue
		}
		sum += l.Price * int64(l.Qty)
	}
	return sum
}

// SurchargeApplies reports whether now is at or past the slot's cutoff hour.
// Slots without a cutoff never carry a surcharge.
func (r Rules) SurchargeApplies(slot models.MealSlot, now time.Time) bool {
	cutoff, ok := r.Cutoffs[slot]
	if !ok {
		return false
	}
	return now.Hour() >= cutoff
}

// Tax rounds amount×rate to the nearest integer, halves away from zero.
func (r Rules) Tax(amount int64) int64 {
	return decimal.NewFromInt(amount).Mul(r.TaxRate).Round(0).IntPart()
}

// Quote prices the cart for the given slot at time now.
// An empty cart prices to zero even past the cutoff; SurchargeApplied still
// reports the time rule so the storefront can warn about it.
func (r Rules) Quote(lines []models.CartLine, slot models.MealSlot, now time.Time) Quote {
	q := Quote{
		Subtotal:         Subtotal(lines),
		SurchargeApplied: r.SurchargeApplies(slot, now),
	}
	if q.SurchargeApplied && q.Subtotal > 0 {
		q.DeliveryCharge = r.Surcharge
	}
	q.Tax = r.Tax(q.Subtotal + q.DeliveryCharge)
	q.Total = q.Subtotal + q.DeliveryCharge + q.Tax
	return q
}
