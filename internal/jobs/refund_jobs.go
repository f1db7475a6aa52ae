package jobs

import (
	"context"
	"time"

	"evrental-backend/internal/logger"
)

// SendRefundReminders emails station staff about refunds that have
// been awaiting confirmation for too long. It never promotes the
// booking itself; REFUNDED requires an explicit staff action.
func (jr *JobRunner) SendRefundReminders() {
	jr.runWithRecovery("SendRefundReminders", func() {
		ctx := context.Background()

		query := `
			SELECT r.id, r.booking_id, r.amount_cents, r.created_on, u.email
			FROM refund_requests r
			JOIN bookings b ON b.id = r.booking_id
			JOIN users u ON u.station_id = b.station_id AND u.role = 'STAFF'
			WHERE r.confirmed = false
			  AND b.status = 'CANCELLED_AWAIT_REFUND'
			  AND r.created_on < $1
		`

		cutoff := time.Now().Add(-24 * time.Hour)
		rows, err := jr.db.QueryContext(ctx, query, cutoff)
		if err != nil {
			logger.Error("Failed to query pending refunds", "error", err)
			return
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			var (
				id, bookingID int32
				amountCents   int32
				createdOn     time.Time
				staffEmail    string
			)
			if err := rows.Scan(&id, &bookingID, &amountCents, &createdOn, &staffEmail); err != nil {
				logger.Error("Failed to scan pending refund", "error", err)
				continue
			}

			pendingDays := int(time.Since(createdOn).Hours() / 24)
			if err := jr.services.Email.SendRefundReminder(ctx, staffEmail, bookingID, amountCents, pendingDays); err != nil {
				logger.Error("Failed to send refund reminder",
					"booking_id", bookingID, "staff_email", staffEmail, "error", err)
				continue
			}
			count++
		}
		if err := rows.Err(); err != nil {
			logger.Error("Error iterating pending refunds", "error", err)
			return
		}

		logger.Info("Sent refund reminders", "count", count)
	})
}
