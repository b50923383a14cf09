package pricing

import (
	"math"

	"freshnest/models"
	"freshnest/utils"

	"go.uber.org/zap"
)

// Quote computes an itemized price for a service configuration. It is pure and
// deterministic: same inputs always produce the same breakdown.
//
// The discount applies to the base price only; add-ons are charged at full price.
// Unknown tiers fall back to documented defaults instead of failing, so bad input
// never breaks the booking funnel. Every fallback emits a "pricing fallback"
// warning, which is the signal operators watch for data errors.
func Quote(serviceType, sizeTier, frequency string, addOns []string) models.PriceBreakdown {
	logger := utils.GetLogger()

	tiers, ok := basePrices[serviceType]
	if !ok {
		logger.Warn("pricing fallback: unknown service type",
			zap.String("serviceType", serviceType))
		tiers = basePrices[models.ServiceHouseCleaning]
	}

	base, ok := tiers[sizeTier]
	if !ok {
		if sizeTier != "" {
			logger.Warn("pricing fallback: unknown size tier",
				zap.String("serviceType", serviceType), zap.String("sizeTier", sizeTier))
		}
		base = tiers[DefaultSizeTier]
	}

	rate, ok := frequencyDiscounts[frequency]
	if !ok {
		if frequency != "" {
			logger.Warn("pricing fallback: unknown frequency",
				zap.String("serviceType", serviceType), zap.String("frequency", frequency))
		}
		rate = frequencyDiscounts[DefaultFrequency]
	}

	var addOnTotal float64
	for _, a := range addOns {
		fee, ok := addOnFees[a]
		if !ok {
			logger.Warn("pricing fallback: unknown add-on skipped",
				zap.String("serviceType", serviceType), zap.String("addOn", a))
			continue
		}
		addOnTotal += fee
	}

	// Each component is rounded once; the total is computed from the rounded
	// components so the breakdown always sums exactly.
	base = roundCents(base)
	addOnTotal = roundCents(addOnTotal)
	discount := roundCents(base * rate)
	total := roundCents(base - discount + addOnTotal)

	return models.PriceBreakdown{
		Base:       base,
		AddOnTotal: addOnTotal,
		Discount:   discount,
		Total:      total,
		Currency:   "USD",
	}
}

// roundCents rounds half-up to two decimal places.
func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
