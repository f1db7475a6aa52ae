package jobs

import (
	"context"
	"time"

	"evrental-backend/internal/logger"
)

// SendPickupReminders emails renters whose confirmed booking starts
// within the next 24 hours.
func (jr *JobRunner) SendPickupReminders() {
	jr.runWithRecovery("SendPickupReminders", func() {
		ctx := context.Background()

		query := `
			SELECT b.id, u.email, u.name
			FROM bookings b
			JOIN users u ON u.id = b.renter_id
			WHERE b.status = 'CONFIRMED'
			  AND b.start_time BETWEEN $1 AND $2
		`

		now := time.Now()
		rows, err := jr.db.QueryContext(ctx, query, now, now.Add(24*time.Hour))
		if err != nil {
			logger.Error("Failed to query upcoming pickups", "error", err)
			return
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			var (
				bookingID   int32
				email, name string
			)
			if err := rows.Scan(&bookingID, &email, &name); err != nil {
				logger.Error("Failed to scan upcoming pickup", "error", err)
				continue
			}
			if err := jr.services.Email.SendPickupReminder(ctx, email, name, bookingID); err != nil {
				logger.Error("Failed to send pickup reminder", "booking_id", bookingID, "error", err)
				continue
			}
			count++
		}
		if err := rows.Err(); err != nil {
			logger.Error("Error iterating upcoming pickups", "error", err)
			return
		}

		logger.Info("Sent pickup reminders", "count", count)
	})
}

// ReportStalePending logs bookings stuck in PENDING past their start
// time. Staff follow up manually; the job does not cancel anything.
func (jr *JobRunner) ReportStalePending() {
	jr.runWithRecovery("ReportStalePending", func() {
		ctx := context.Background()

		query := `
			SELECT id, renter_id, vehicle_id, start_time
			FROM bookings
			WHERE status = 'PENDING'
			  AND start_time < $1
		`

		rows, err := jr.db.QueryContext(ctx, query, time.Now())
		if err != nil {
			logger.Error("Failed to query stale pending bookings", "error", err)
			return
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			var (
				id, renterID, vehicleID int32
				startTime               time.Time
			)
			if err := rows.Scan(&id, &renterID, &vehicleID, &startTime); err != nil {
				logger.Error("Failed to scan stale pending booking", "error", err)
				continue
			}
			logger.Warn("Booking still pending past its start time",
				"booking_id", id,
				"renter_id", renterID,
				"vehicle_id", vehicleID,
				"start_time", startTime.Format(time.RFC3339))
			count++
		}
		if err := rows.Err(); err != nil {
			logger.Error("Error iterating stale pending bookings", "error", err)
			return
		}

		logger.Info("Reported stale pending bookings", "count", count)
	})
}
