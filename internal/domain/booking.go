package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending              BookingStatus = "PENDING"
	BookingStatusConfirmed            BookingStatus = "CONFIRMED"
	BookingStatusRenting              BookingStatus = "RENTING"
	BookingStatusCompleted            BookingStatus = "COMPLETED"
	BookingStatusCancelled            BookingStatus = "CANCELLED"
	BookingStatusCancelledAwaitRefund BookingStatus = "CANCELLED_AWAIT_REFUND"
	BookingStatusRefunded             BookingStatus = "REFUNDED"
)

// transitions is the only declaration of legal status moves. Every
// status write in the service layer goes through CanTransition; a
// status string that is not reachable from here is rejected.
var transitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:              {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed:            {BookingStatusRenting, BookingStatusCancelledAwaitRefund},
	BookingStatusRenting:              {BookingStatusCompleted},
	BookingStatusCancelledAwaitRefund: {BookingStatusRefunded},
}

// CanTransition reports whether moving a booking from one status to
// another is declared legal.
func CanTransition(from, to BookingStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether a booking in this status can never move again.
func (s BookingStatus) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// Valid reports whether s is a member of the status enumeration.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusRenting,
		BookingStatusCompleted, BookingStatusCancelled,
		BookingStatusCancelledAwaitRefund, BookingStatusRefunded:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentMethodOnline       PaymentMethod = "ONLINE"
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodOnline, PaymentMethodCash, PaymentMethodBankTransfer:
		return true
	}
	return false
}

type Booking struct {
	ID        int32         `json:"id"`
	RenterID  int32         `json:"renter_id"`
	VehicleID int32         `json:"vehicle_id"`
	StationID int32         `json:"station_id"`
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Status    BookingStatus `json:"status"`

	// Money fields are minor currency units throughout.
	ReservationDepositCents int32 `json:"reservation_deposit_cents"`
	ReservationDepositPaid  bool  `json:"reservation_deposit_paid"`
	RentalDepositCents      int32 `json:"rental_deposit_cents"`
	RentalDepositPaid       bool  `json:"rental_deposit_paid"`

	// Set at checkout; nil until the bill is committed.
	FinalFeeCents *int32 `json:"final_fee_cents,omitempty"`
	// Set only on the cancellation/refund branch or a negative settlement.
	RefundCents *int32 `json:"refund_cents,omitempty"`

	CancelReason string `json:"cancel_reason,omitempty"`

	// Check-in / check-out inspection captures.
	CheckInNote      string `json:"check_in_note,omitempty"`
	CheckInBattery   *int32 `json:"check_in_battery,omitempty"`
	CheckInMileage   *int32 `json:"check_in_mileage,omitempty"`
	CheckOutNote     string `json:"check_out_note,omitempty"`
	CheckOutBattery  *int32 `json:"check_out_battery,omitempty"`
	CheckOutMileage  *int32 `json:"check_out_mileage,omitempty"`

	// Version guards concurrent transitions: every status write carries
	// the version it read, and a mismatched write is a stale-state loss.
	Version   int32     `json:"version"`
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// DepositsPaidCents sums the deposits actually marked paid.
func (b *Booking) DepositsPaidCents() int32 {
	var total int32
	if b.ReservationDepositPaid {
		total += b.ReservationDepositCents
	}
	if b.RentalDepositPaid {
		total += b.RentalDepositCents
	}
	return total
}

// DurationMinutes is the requested rental span in whole minutes.
func (b *Booking) DurationMinutes() int32 {
	return int32(b.EndTime.Sub(b.StartTime).Minutes())
}
