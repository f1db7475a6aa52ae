package domain

import "time"

// BankAccount is the refund destination. The three fields are stored
// separately from the moment the refund request is created; they are
// never folded into a free-text note.
type BankAccount struct {
	BankName      string `json:"bank_name"`
	AccountNumber string `json:"account_number"`
	HolderName    string `json:"holder_name"`
}

func (a BankAccount) Complete() bool {
	return a.BankName != "" && a.AccountNumber != "" && a.HolderName != ""
}

// RefundRequest is the compensating record created when a booking with
// a paid deposit is cancelled. It stays open until a staff member
// explicitly confirms the payout; nothing promotes it automatically.
type RefundRequest struct {
	ID          int32       `json:"id"`
	BookingID   int32       `json:"booking_id"`
	AmountCents int32       `json:"amount_cents"`
	Bank        BankAccount `json:"bank"`
	Confirmed   bool        `json:"confirmed"`
	ConfirmedBy *int32      `json:"confirmed_by,omitempty"`
	ConfirmedOn *time.Time  `json:"confirmed_on,omitempty"`
	CreatedOn   time.Time   `json:"created_on"`
}
