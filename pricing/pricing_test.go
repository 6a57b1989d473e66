package pricing

import (
	"testing"
	"time"

	"southern-spoon-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, minute int) time.Time {
	return time.Date(2024, time.March, 4, hour, minute, 0, 0, time.Local)
}

func cart(pappu, fry int) []models.CartLine {
	lines := models.NewCart(models.DefaultMenu())
	lines[0].Qty = pappu
	lines[1].Qty = fry
	return lines
}

func TestQuoteExamples(t *testing.T) {
	rules := DefaultRules()

	t.Run("lunch after cutoff", func(t *testing.T) {
		q := rules.Quote(cart(2, 1), models.MealLunch, at(13, 0))
		assert.Equal(t, Quote{Subtotal: 160, DeliveryCharge: 50, Tax: 11, Total: 221, SurchargeApplied: true}, q)
	})

	t.Run("lunch before cutoff", func(t *testing.T) {
		q := rules.Quote(cart(2, 1), models.MealLunch, at(10, 0))
		assert.Equal(t, Quote{Subtotal: 160, DeliveryCharge: 0, Tax: 8, Total: 168}, q)
	})
}

func TestSurchargeCutoffs(t *testing.T) {
	rules := DefaultRules()
	tests := []struct {
		slot models.MealSlot
		now  time.Time
		want bool
	}{
		{models.MealLunch, at(0, 0), false},
		{models.MealLunch, at(11, 59), false},
		{models.MealLunch, at(12, 0), true},
		{models.MealLunch, at(23, 59), true},
		{models.MealDinner, at(12, 0), false},
		{models.MealDinner, at(18, 59), false},
		{models.MealDinner, at(19, 0), true},
		{models.MealDinner, at(22, 30), true},
		{models.MealSlot("Breakfast"), at(23, 0), false},
		{models.MealSlot(""), at(20, 0), false},
	}
	for _, tt := range tests {
		got := rules.SurchargeApplies(tt.slot, tt.now)
		if got != tt.want {
			t.Errorf("SurchargeApplies(%q, %s) = %v, want %v", tt.slot, tt.now.Format("15:04"), got, tt.want)
		}
	}
}

func TestSubtotalIsWeightedSum(t *testing.T) {
	for pappu := 0; pappu <= 6; pappu++ {
		for fry := 0; fry <= 6; fry++ {
			got := Subtotal(cart(pappu, fry))
			assert.Equal(t, int64(50*pappu+60*fry), got)
			assert.GreaterOrEqual(t, got, int64(0))
		}
	}
}

func TestQuoteTotalsAddUp(t *testing.T) {
	rules := DefaultRules()
	for _, hour := range []int{9, 12, 19, 21} {
		for _, slot := range models.MealSlots {
			for n := 0; n < 8; n++ {
				q := rules.Quote(cart(n, n/2), slot, at(hour, 0))
				assert.Equal(t, q.Subtotal+q.DeliveryCharge+q.Tax, q.Total)
				assert.Equal(t, rules.Tax(q.Subtotal+q.DeliveryCharge), q.Tax)
			}
		}
	}
}

func TestEmptyCartPricesToZero(t *testing.T) {
	q := DefaultRules().Quote(cart(0, 0), models.MealLunch, at(15, 0))
	assert.Equal(t, int64(0), q.Subtotal)
	assert.Equal(t, int64(0), q.DeliveryCharge)
	assert.Equal(t, int64(0), q.Tax)
	assert.Equal(t, int64(0), q.Total)
	assert.True(t, q.SurchargeApplied)
}

func TestTaxRounding(t *testing.T) {
	rules := DefaultRules()
	tests := []struct {
		amount int64
		want   int64
	}{
		{0, 0},
		{9, 0},   // 0.45
		{10, 1},  // 0.5 rounds up
		{30, 2},  // 1.5 rounds up
		{50, 3},  // 2.5 rounds up, not to even
		{160, 8},
		{210, 11}, // 10.5
		{229, 11}, // 11.45
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, rules.Tax(tt.amount), "tax of %d", tt.amount)
	}
}

func TestCustomRules(t *testing.T) {
	rules := DefaultRules()
	rules.Surcharge = 30
	rules.Cutoffs[models.MealDinner] = 18

	q := rules.Quote(cart(1, 0), models.MealDinner, at(18, 0))
	assert.Equal(t, int64(30), q.DeliveryCharge)
	assert.Equal(t, int64(4), q.Tax) // 80 * 0.05
	assert.Equal(t, int64(114), q.Total)
}
