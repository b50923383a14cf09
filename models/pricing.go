package models

// Home size tiers used by the pricing tables.
const (
	SizeSmall  = "small"
	SizeMedium = "medium"
	SizeLarge  = "large"
	SizeXLarge = "xlarge"
)

// Service frequency tiers. Discounts decrease monotonically with frequency;
// one-time carries no discount.
const (
	FrequencyWeekly   = "weekly"
	FrequencyBiweekly = "biweekly"
	FrequencyMonthly  = "monthly"
	FrequencyOneTime  = "one-time"
)

// PriceBreakdown is the itemized result of a quote. Discount applies to the base
// price only; add-ons are always charged at full price.
type PriceBreakdown struct {
	Base       float64 `bson:"base" json:"base"`
	AddOnTotal float64 `bson:"addOnTotal" json:"addOnTotal"`
	Discount   float64 `bson:"discount" json:"discount"`
	Total      float64 `bson:"total" json:"total"`
	Currency   string  `bson:"currency" json:"currency"`
}

// QuoteRequest is the payload for a price quote.
type QuoteRequest struct {
	ServiceType string   `json:"serviceType" binding:"required"`
	SizeTier    string   `json:"sizeTier"`
	Frequency   string   `json:"frequency"`
	AddOns      []string `json:"addOns"`
}
