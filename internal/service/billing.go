package service

import (
	"math"

	"evrental-backend/internal/domain"
	"evrental-backend/internal/utils"
)

// ComputeBill is the settlement calculation: base rent for the booked
// span, plus selected catalog penalties, plus an optional signed custom
// fee, minus deposits already paid. It is a pure function of its
// inputs and never touches booking state; the checkout transition is
// what commits the result.
//
// Every selected penalty must resolve against the supplied catalog. A
// reference to a missing entry fails the whole calculation rather than
// silently dropping the line item.
func ComputeBill(
	booking *domain.Booking,
	pricePerHourCents int32,
	catalog []domain.PenaltyFee,
	penalties []domain.SelectedPenalty,
	customFee *domain.CustomFee,
) (*domain.BillResult, error) {
	byID := make(map[int32]domain.PenaltyFee, len(catalog))
	for _, f := range catalog {
		byID[f.ID] = f
	}

	// All intermediates are computed in int64: line items are staff
	// input and a large quantity or span must fail loudly instead of
	// wrapping the int32 money fields.
	var penaltyCents int64
	for _, sel := range penalties {
		if sel.Quantity <= 0 {
			return nil, domain.ValidationError("penalties", "quantity must be positive")
		}
		fee, ok := byID[sel.PenaltyFeeID]
		if !ok {
			return nil, domain.CatalogError(sel.PenaltyFeeID)
		}
		penaltyCents += int64(fee.AmountCents) * int64(sel.Quantity)
		if penaltyCents > math.MaxInt32 {
			return nil, domain.ValidationError("penalties", "penalty total exceeds the representable amount")
		}
	}

	var customCents int64
	if customFee != nil {
		if customFee.Name == "" {
			return nil, domain.ValidationError("custom_fee.name", "name is required")
		}
		customCents = int64(customFee.AmountCents)
	}

	durationMinutes := booking.DurationMinutes()
	billableHours := utils.BillableHours(durationMinutes)
	baseCents := int64(billableHours) * int64(pricePerHourCents)
	if baseCents > math.MaxInt32 {
		return nil, domain.ValidationError("duration", "base rental exceeds the representable amount")
	}

	grossCents := baseCents + penaltyCents + customCents
	if grossCents > math.MaxInt32 || grossCents < math.MinInt32 {
		return nil, domain.ValidationError("amount", "bill total exceeds the representable amount")
	}
	paidCents := booking.DepositsPaidCents()
	netCents := grossCents - int64(paidCents)
	if netCents > math.MaxInt32 || netCents < math.MinInt32 {
		return nil, domain.ValidationError("amount", "bill total exceeds the representable amount")
	}

	return &domain.BillResult{
		BookingID:          booking.ID,
		BillableHours:      billableHours,
		PricePerHourCents:  pricePerHourCents,
		BaseRentalCents:    int32(baseCents),
		PenaltyCents:       int32(penaltyCents),
		CustomFeeCents:     int32(customCents),
		GrossDueCents:      int32(grossCents),
		AlreadyPaidCents:   paidCents,
		NetSettlementCents: int32(netCents),
	}, nil
}
