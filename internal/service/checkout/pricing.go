package checkout

import "strings"

const (
	freeShippingThresholdCents = 5000
	flatShippingCents          = 599
	taxRatePercent             = 8
)

type promoRule struct {
	percentOfSubtotal int64
	flatCents         int64
}

// Promo codes are a small static table; unknown codes yield no discount.
var promoCodes = map[string]promoRule{
	"welcome10": {percentOfSubtotal: 10},
	"save5":     {flatCents: 500},
}

// Quote is the chargeable breakdown for a cart subtotal.
type Quote struct {
	SubtotalCents int64 `json:"subtotalCents"`
	ShippingCents int64 `json:"shippingCents"`
	TaxCents      int64 `json:"taxCents"`
	DiscountCents int64 `json:"discountCents"`
	TotalCents    int64 `json:"totalCents"`
}

// Price computes the chargeable total for a cart subtotal and an optional
// promo code. Shipping is free above the threshold, tax is a flat rate
// rounded half-up, and the total never goes below zero: an oversized
// discount is capped so the breakdown still sums to the total.
func Price(subtotalCents int64, promoCode string) Quote {
	q := Quote{SubtotalCents: subtotalCents}

	if subtotalCents <= freeShippingThresholdCents {
		q.ShippingCents = flatShippingCents
	}
	q.TaxCents = roundPercent(subtotalCents, taxRatePercent)

	if rule, ok := promoCodes[strings.ToLower(strings.TrimSpace(promoCode))]; ok {
		if rule.percentOfSubtotal > 0 {
			q.DiscountCents = roundPercent(subtotalCents, rule.percentOfSubtotal)
		} else {
			q.DiscountCents = rule.flatCents
		}
	}

	gross := q.SubtotalCents + q.ShippingCents + q.TaxCents
	if q.DiscountCents > gross {
		q.DiscountCents = gross
	}
	q.TotalCents = gross - q.DiscountCents
	return q
}

func roundPercent(cents, percent int64) int64 {
	return (cents*percent + 50) / 100
}
