package pricing

import (
	"reflect"
	"testing"

	"freshnest/models"
)

func TestQuoteDeterministic(t *testing.T) {
	a := Quote(models.ServiceHouseCleaning, models.SizeMedium, models.FrequencyWeekly, []string{"deep-clean"})
	b := Quote(models.ServiceHouseCleaning, models.SizeMedium, models.FrequencyWeekly, []string{"deep-clean"})
	if !reflect.DeepEqual(a, b) {
		t.Errorf("same inputs produced different breakdowns: %+v vs %+v", a, b)
	}
}

func TestWeeklyMediumScenario(t *testing.T) {
	got := Quote(models.ServiceHouseCleaning, models.SizeMedium, models.FrequencyWeekly, []string{"deep-clean"})

	base := basePrices[models.ServiceHouseCleaning][models.SizeMedium]
	wantDiscount := roundCents(base * frequencyDiscounts[models.FrequencyWeekly])
	wantTotal := roundCents(base - wantDiscount + addOnFees["deep-clean"])

	if got.Base != base {
		t.Errorf("base = %v, want %v", got.Base, base)
	}
	if got.Discount != wantDiscount {
		t.Errorf("discount = %v, want %v", got.Discount, wantDiscount)
	}
	if got.Total != wantTotal {
		t.Errorf("total = %v, want %v", got.Total, wantTotal)
	}
}

func TestDiscountNeverAppliesToAddOns(t *testing.T) {
	withAddOns := Quote(models.ServiceLawnCare, models.SizeSmall, models.FrequencyWeekly, []string{"fertilization", "gutter-clearing"})
	without := Quote(models.ServiceLawnCare, models.SizeSmall, models.FrequencyWeekly, nil)

	addOnSum := addOnFees["fertilization"] + addOnFees["gutter-clearing"]
	if withAddOns.AddOnTotal != addOnSum {
		t.Errorf("addOnTotal = %v, want %v", withAddOns.AddOnTotal, addOnSum)
	}
	// The discount must be identical with or without add-ons.
	if withAddOns.Discount != without.Discount {
		t.Errorf("discount changed when add-ons were added: %v vs %v", withAddOns.Discount, without.Discount)
	}
	if diff := withAddOns.Total - (without.Total + addOnSum); diff > 0.005 || diff < -0.005 {
		t.Errorf("add-ons not charged at full price: total %v, want %v", withAddOns.Total, without.Total+addOnSum)
	}
}

func TestOneTimeHasZeroDiscount(t *testing.T) {
	got := Quote(models.ServicePlumbing, models.SizeLarge, models.FrequencyOneTime, nil)
	if got.Discount != 0 {
		t.Errorf("one-time discount = %v, want 0", got.Discount)
	}
	if got.Total != got.Base {
		t.Errorf("total = %v, want base %v", got.Total, got.Base)
	}
}

func TestFrequencyDiscountsMonotone(t *testing.T) {
	weekly := Quote(models.ServiceHVAC, models.SizeMedium, models.FrequencyWeekly, nil)
	biweekly := Quote(models.ServiceHVAC, models.SizeMedium, models.FrequencyBiweekly, nil)
	monthly := Quote(models.ServiceHVAC, models.SizeMedium, models.FrequencyMonthly, nil)
	oneTime := Quote(models.ServiceHVAC, models.SizeMedium, models.FrequencyOneTime, nil)

	if !(weekly.Discount >= biweekly.Discount && biweekly.Discount >= monthly.Discount && monthly.Discount > oneTime.Discount) {
		t.Errorf("discounts not monotone: weekly %v biweekly %v monthly %v one-time %v",
			weekly.Discount, biweekly.Discount, monthly.Discount, oneTime.Discount)
	}
}

func TestUnknownTiersFallBack(t *testing.T) {
	fallback := Quote(models.ServiceHouseCleaning, "mansion", "daily", []string{"gold-plating"})
	expected := Quote(models.ServiceHouseCleaning, DefaultSizeTier, DefaultFrequency, nil)

	if fallback.Base != expected.Base {
		t.Errorf("unknown size tier: base = %v, want default tier base %v", fallback.Base, expected.Base)
	}
	if fallback.Discount != expected.Discount {
		t.Errorf("unknown frequency: discount = %v, want %v", fallback.Discount, expected.Discount)
	}
	if fallback.AddOnTotal != 0 {
		t.Errorf("unknown add-on should be skipped, got addOnTotal %v", fallback.AddOnTotal)
	}
}

func TestUnknownServiceTypeFallsBack(t *testing.T) {
	got := Quote("chimney-sweeping", models.SizeMedium, models.FrequencyOneTime, nil)
	want := Quote(models.ServiceHouseCleaning, models.SizeMedium, models.FrequencyOneTime, nil)
	if got.Total != want.Total {
		t.Errorf("unknown service type: total = %v, want fallback %v", got.Total, want.Total)
	}
}

func TestBreakdownAlwaysSums(t *testing.T) {
	for service, tiers := range basePrices {
		for tier := range tiers {
			got := Quote(service, tier, models.FrequencyBiweekly, []string{"laundry"})
			if sum := roundCents(got.Base - got.Discount + got.AddOnTotal); got.Total != sum {
				t.Errorf("%s/%s breakdown does not sum: total %v, components %v", service, tier, got.Total, sum)
			}
		}
	}
}
