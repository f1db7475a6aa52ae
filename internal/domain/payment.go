package domain

import "time"

type PaymentType string

const (
	PaymentTypeReservationDeposit PaymentType = "RESERVATION_DEPOSIT"
	PaymentTypeRentalDeposit      PaymentType = "RENTAL_DEPOSIT"
	PaymentTypeSettlement         PaymentType = "SETTLEMENT"
	PaymentTypeRefund             PaymentType = "REFUND"
)

// PaymentRecord is one money movement on a booking: deposits in,
// settlement in, refund out. Amount is positive for money received
// from the customer and negative for money paid back.
type PaymentRecord struct {
	ID          int32         `json:"id"`
	BookingID   int32         `json:"booking_id"`
	AmountCents int32         `json:"amount_cents"`
	Type        PaymentType   `json:"type"`
	Method      PaymentMethod `json:"method"`
	// Gateway invoice/transaction reference for online payments.
	ExternalRef string    `json:"external_ref,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedOn   time.Time `json:"created_on"`
}
