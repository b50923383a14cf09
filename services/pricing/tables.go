package pricing

import "freshnest/models"

// Defaults used when a quote arrives with an unknown tier. The funnel never fails
// on bad pricing input; the fallback is logged so data errors stay visible.
const (
	DefaultSizeTier  = models.SizeMedium
	DefaultFrequency = models.FrequencyOneTime
)

// basePrices keys (serviceType, sizeTier) to a base price in USD.
var basePrices = map[string]map[string]float64{
	models.ServiceHouseCleaning: {
		models.SizeSmall:  119,
		models.SizeMedium: 149,
		models.SizeLarge:  199,
		models.SizeXLarge: 259,
	},
	models.ServiceLawnCare: {
		models.SizeSmall:  49,
		models.SizeMedium: 69,
		models.SizeLarge:  99,
		models.SizeXLarge: 139,
	},
	models.ServiceHandyman: {
		models.SizeSmall:  89,
		models.SizeMedium: 129,
		models.SizeLarge:  179,
		models.SizeXLarge: 239,
	},
	models.ServicePlumbing: {
		models.SizeSmall:  109,
		models.SizeMedium: 159,
		models.SizeLarge:  219,
		models.SizeXLarge: 289,
	},
	models.ServiceHVAC: {
		models.SizeSmall:  129,
		models.SizeMedium: 179,
		models.SizeLarge:  249,
		models.SizeXLarge: 329,
	},
	models.ServicePestControl: {
		models.SizeSmall:  99,
		models.SizeMedium: 129,
		models.SizeLarge:  169,
		models.SizeXLarge: 219,
	},
}

// frequencyDiscounts maps a frequency tier to the discount rate applied to the
// base price. Rates decrease monotonically as visits get less frequent; one-time
// carries no discount.
var frequencyDiscounts = map[string]float64{
	models.FrequencyWeekly:   0.20,
	models.FrequencyBiweekly: 0.15,
	models.FrequencyMonthly:  0.10,
	models.FrequencyOneTime:  0,
}

// addOnFees are flat per-add-on charges, never discounted.
var addOnFees = map[string]float64{
	"deep-clean":         49,
	"inside-fridge":      25,
	"inside-oven":        25,
	"interior-windows":   35,
	"laundry":            20,
	"garage":             30,
	"gutter-clearing":    45,
	"fertilization":      35,
	"pet-treatment":      30,
	"attic-inspection":   40,
	"water-heater-flush": 55,
}
