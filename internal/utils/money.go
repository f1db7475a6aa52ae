package utils

import (
	"fmt"
	"strconv"
)

const minutesPerHour = 60

// BillableHours converts an elapsed rental duration to billable hours.
// Partial hours round up: any started hour is charged in full. A
// non-positive duration still bills one hour since the minimum rental
// duration is enforced at booking creation, not here.
func BillableHours(durationMinutes int32) int32 {
	if durationMinutes <= 0 {
		return 1
	}
	hours := durationMinutes / minutesPerHour
	if durationMinutes%minutesPerHour > 0 {
		hours++
	}
	return hours
}

// BaseRentalCents is the rental charge for a duration at an hourly rate.
func BaseRentalCents(durationMinutes, pricePerHourCents int32) int32 {
	return BillableHours(durationMinutes) * pricePerHourCents
}

// PercentOf returns pct percent of amount, truncated toward zero.
func PercentOf(amountCents int32, pct int32) int32 {
	return int32(int64(amountCents) * int64(pct) / 100)
}

// FormatCents renders a minor-unit amount with thousands separators,
// e.g. 1234567 -> "1,234,567". Negative amounts keep the sign.
func FormatCents(amountCents int64) string {
	neg := amountCents < 0
	if neg {
		amountCents = -amountCents
	}
	s := strconv.FormatInt(amountCents, 10)
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}

// FormatCurrency renders an amount with its currency code appended.
func FormatCurrency(amountCents int64, currency string) string {
	return fmt.Sprintf("%s %s", FormatCents(amountCents), currency)
}
