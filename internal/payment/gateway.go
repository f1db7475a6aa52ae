package payment

import (
	"context"

	"evrental-backend/internal/domain"
)

// Invoice is a payment request created at the gateway for an online
// deposit or settlement charge.
type Invoice struct {
	ExternalID  string
	AmountCents int32
	Description string
	PayerEmail  string
}

// InvoiceResult is the gateway's view of a created invoice.
type InvoiceResult struct {
	InvoiceID  string
	InvoiceURL string
	ExpiresAt  string
}

// Gateway is the seam to the online payment provider. Cash and bank
// transfer payments never touch it; those are confirmed by the staff
// action itself.
type Gateway interface {
	// CreateInvoice registers a charge and returns the payment URL the
	// customer completes it at.
	CreateInvoice(ctx context.Context, inv Invoice) (*InvoiceResult, error)
	// VerifyPayment checks that the referenced invoice is settled for
	// at least amountCents. A gateway outage or an unsettled invoice is
	// a retryable failure; the owning transition must not commit.
	VerifyPayment(ctx context.Context, invoiceID string, amountCents int32) error
}

// MethodNeedsGateway reports whether a payment method settles through
// the online gateway.
func MethodNeedsGateway(m domain.PaymentMethod) bool {
	return m == domain.PaymentMethodOnline
}
