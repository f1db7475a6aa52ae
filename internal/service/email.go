package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"evrental-backend/internal/logger"
	"evrental-backend/internal/utils"
)

type sendGridEmailService struct {
	apiKey    string
	fromEmail string
	fromName  string
	currency  string
}

func NewSendGridEmailService(apiKey, fromEmail, fromName, currency string) EmailService {
	return &sendGridEmailService{apiKey: apiKey, fromEmail: fromEmail, fromName: fromName, currency: currency}
}

func (s *sendGridEmailService) send(to, toName, subject, plainText, htmlContent string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, htmlContent)

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *sendGridEmailService) SendDepositConfirmation(ctx context.Context, email, name string, bookingID int32, amountCents int32) error {
	subject := fmt.Sprintf("Booking #%d Confirmed", bookingID)
	plain := fmt.Sprintf("Hi %s, your booking #%d is confirmed. Reservation deposit received: %s.", name, bookingID, utils.FormatCurrency(int64(amountCents), s.currency))
	html := fmt.Sprintf(`<p>Hi %s,</p><p>Your booking <strong>#%d</strong> is confirmed.</p><p>Reservation deposit received: <strong>%s</strong></p>`, name, bookingID, utils.FormatCurrency(int64(amountCents), s.currency))
	return s.send(email, name, subject, plain, html)
}

func (s *sendGridEmailService) SendCheckInConfirmation(ctx context.Context, email, name string, bookingID int32, depositCents int32) error {
	subject := fmt.Sprintf("Rental Started - Booking #%d", bookingID)
	plain := fmt.Sprintf("Hi %s, your rental for booking #%d has started. Rental deposit held: %s.", name, bookingID, utils.FormatCurrency(int64(depositCents), s.currency))
	html := fmt.Sprintf(`<p>Hi %s,</p><p>Your rental for booking <strong>#%d</strong> has started.</p><p>Rental deposit held: <strong>%s</strong></p>`, name, bookingID, utils.FormatCurrency(int64(depositCents), s.currency))
	return s.send(email, name, subject, plain, html)
}

func (s *sendGridEmailService) SendCheckoutReceipt(ctx context.Context, email, name string, bookingID int32, finalFeeCents, netCents int32) error {
	subject := fmt.Sprintf("Receipt - Booking #%d", bookingID)
	settle := "Nothing further is due."
	switch {
	case netCents > 0:
		settle = fmt.Sprintf("Amount settled at checkout: %s.", utils.FormatCurrency(int64(netCents), s.currency))
	case netCents < 0:
		settle = fmt.Sprintf("Refunded from your deposits: %s.", utils.FormatCurrency(int64(-netCents), s.currency))
	}
	plain := fmt.Sprintf("Hi %s, booking #%d is complete. Total bill: %s. %s", name, bookingID, utils.FormatCurrency(int64(finalFeeCents), s.currency), settle)
	html := fmt.Sprintf(`<p>Hi %s,</p><p>Booking <strong>#%d</strong> is complete.</p><p>Total bill: <strong>%s</strong></p><p>%s</p>`, name, bookingID, utils.FormatCurrency(int64(finalFeeCents), s.currency), settle)
	return s.send(email, name, subject, plain, html)
}

func (s *sendGridEmailService) SendCancellationNotice(ctx context.Context, email, name string, bookingID int32, reason string, refundCents int32) error {
	subject := fmt.Sprintf("Booking #%d Cancelled", bookingID)
	refundLine := ""
	if refundCents > 0 {
		refundLine = fmt.Sprintf(" A refund of %s will be transferred to your bank account once confirmed by our staff.", utils.FormatCurrency(int64(refundCents), s.currency))
	}
	plain := fmt.Sprintf("Hi %s, booking #%d was cancelled. Reason: %s.%s", name, bookingID, reason, refundLine)
	html := fmt.Sprintf(`<p>Hi %s,</p><p>Booking <strong>#%d</strong> was cancelled.</p><p>Reason: %s</p><p>%s</p>`, name, bookingID, reason, refundLine)
	return s.send(email, name, subject, plain, html)
}

func (s *sendGridEmailService) SendRefundConfirmation(ctx context.Context, email, name string, bookingID int32, amountCents int32) error {
	subject := fmt.Sprintf("Refund Completed - Booking #%d", bookingID)
	plain := fmt.Sprintf("Hi %s, your refund of %s for booking #%d has been transferred.", name, utils.FormatCurrency(int64(amountCents), s.currency), bookingID)
	html := fmt.Sprintf(`<p>Hi %s,</p><p>Your refund of <strong>%s</strong> for booking <strong>#%d</strong> has been transferred.</p>`, name, utils.FormatCurrency(int64(amountCents), s.currency), bookingID)
	return s.send(email, name, subject, plain, html)
}

func (s *sendGridEmailService) SendRefundReminder(ctx context.Context, staffEmail string, bookingID int32, amountCents int32, pendingDays int) error {
	subject := fmt.Sprintf("Refund Pending %d Days - Booking #%d", pendingDays, bookingID)
	plain := fmt.Sprintf("Booking #%d has a refund of %s pending staff confirmation for %d days.", bookingID, utils.FormatCurrency(int64(amountCents), s.currency), pendingDays)
	html := fmt.Sprintf(`<p>Booking <strong>#%d</strong> has a refund of <strong>%s</strong> pending staff confirmation for %d days.</p>`, bookingID, utils.FormatCurrency(int64(amountCents), s.currency), pendingDays)
	return s.send(staffEmail, "Station Staff", subject, plain, html)
}

func (s *sendGridEmailService) SendPickupReminder(ctx context.Context, email, name string, bookingID int32) error {
	subject := fmt.Sprintf("Pickup Reminder - Booking #%d", bookingID)
	plain := fmt.Sprintf("Hi %s, a reminder that your rental for booking #%d starts today. Please arrive at the station with your ID.", name, bookingID)
	html := fmt.Sprintf(`<p>Hi %s,</p><p>A reminder that your rental for booking <strong>#%d</strong> starts today.</p><p>Please arrive at the station with your ID.</p>`, name, bookingID)
	return s.send(email, name, subject, plain, html)
}

// NoopEmailService logs instead of sending. Used when no SendGrid key
// is configured (dev and tests).
type NoopEmailService struct{}

func (NoopEmailService) logSkip(kind string, bookingID int32) error {
	logger.Debug("Email skipped (no sender configured)", "kind", kind, "booking_id", bookingID)
	return nil
}

func (n NoopEmailService) SendDepositConfirmation(ctx context.Context, email, name string, bookingID int32, amountCents int32) error {
	return n.logSkip("deposit_confirmation", bookingID)
}

func (n NoopEmailService) SendCheckInConfirmation(ctx context.Context, email, name string, bookingID int32, depositCents int32) error {
	return n.logSkip("checkin_confirmation", bookingID)
}

func (n NoopEmailService) SendCheckoutReceipt(ctx context.Context, email, name string, bookingID int32, finalFeeCents, netCents int32) error {
	return n.logSkip("checkout_receipt", bookingID)
}

func (n NoopEmailService) SendCancellationNotice(ctx context.Context, email, name string, bookingID int32, reason string, refundCents int32) error {
	return n.logSkip("cancellation_notice", bookingID)
}

func (n NoopEmailService) SendRefundConfirmation(ctx context.Context, email, name string, bookingID int32, amountCents int32) error {
	return n.logSkip("refund_confirmation", bookingID)
}

func (n NoopEmailService) SendRefundReminder(ctx context.Context, staffEmail string, bookingID int32, amountCents int32, pendingDays int) error {
	return n.logSkip("refund_reminder", bookingID)
}

func (n NoopEmailService) SendPickupReminder(ctx context.Context, email, name string, bookingID int32) error {
	return n.logSkip("pickup_reminder", bookingID)
}
