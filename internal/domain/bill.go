package domain

import "time"

// PenaltyFee is an immutable catalog entry: a named fee with a fixed
// amount, selectable during bill calculation.
type PenaltyFee struct {
	ID          int32     `json:"id"`
	Name        string    `json:"name"`
	AmountCents int32     `json:"amount_cents"`
	Description string    `json:"description,omitempty"`
	CreatedOn   time.Time `json:"created_on"`
}

// SelectedPenalty pairs a catalog entry with a quantity for one bill
// calculation. Quantity is always > 0; an unselected entry simply does
// not appear in the set.
type SelectedPenalty struct {
	PenaltyFeeID int32 `json:"penalty_fee_id"`
	Quantity     int32 `json:"quantity"`
}

// CustomFee is a one-off staff-entered line item. A negative amount is
// a discount. At most one per bill calculation.
type CustomFee struct {
	Name        string   `json:"name"`
	AmountCents int32    `json:"amount_cents"`
	Description string   `json:"description,omitempty"`
	PhotoKeys   []string `json:"photo_keys,omitempty"`
}

// BillResult carries every intermediate figure of one settlement
// calculation so the staff console can itemize it. It is transient:
// committing a checkout folds it into Booking.FinalFeeCents and, when
// the settlement is negative, Booking.RefundCents.
type BillResult struct {
	BookingID         int32 `json:"booking_id"`
	BillableHours     int32 `json:"billable_hours"`
	PricePerHourCents int32 `json:"price_per_hour_cents"`
	BaseRentalCents   int32 `json:"base_rental_cents"`
	PenaltyCents      int32 `json:"penalty_cents"`
	CustomFeeCents    int32 `json:"custom_fee_cents"`
	GrossDueCents     int32 `json:"gross_due_cents"`
	AlreadyPaidCents  int32 `json:"already_paid_cents"`
	// Positive: customer owes more. Negative: refund owed. Zero: settled.
	NetSettlementCents int32 `json:"net_settlement_cents"`
}
