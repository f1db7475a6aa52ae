package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition_LegalEdges(t *testing.T) {
	legal := []struct{ from, to BookingStatus }{
		{BookingStatusPending, BookingStatusConfirmed},
		{BookingStatusPending, BookingStatusCancelled},
		{BookingStatusConfirmed, BookingStatusRenting},
		{BookingStatusConfirmed, BookingStatusCancelledAwaitRefund},
		{BookingStatusRenting, BookingStatusCompleted},
		{BookingStatusCancelledAwaitRefund, BookingStatusRefunded},
	}
	for _, e := range legal {
		assert.True(t, CanTransition(e.from, e.to), "%s -> %s should be legal", e.from, e.to)
	}
}

func TestCanTransition_EverythingElseIsIllegal(t *testing.T) {
	all := []BookingStatus{
		BookingStatusPending, BookingStatusConfirmed, BookingStatusRenting,
		BookingStatusCompleted, BookingStatusCancelled,
		BookingStatusCancelledAwaitRefund, BookingStatusRefunded,
	}
	legalCount := 0
	for _, from := range all {
		for _, to := range all {
			if CanTransition(from, to) {
				legalCount++
			}
		}
	}
	// Exactly the six edges of the lifecycle graph.
	assert.Equal(t, 6, legalCount)

	// Spot checks on edges that look plausible but are forbidden.
	assert.False(t, CanTransition(BookingStatusRenting, BookingStatusCancelled))
	assert.False(t, CanTransition(BookingStatusCompleted, BookingStatusRenting))
	assert.False(t, CanTransition(BookingStatusCancelled, BookingStatusRefunded))
	assert.False(t, CanTransition(BookingStatusRefunded, BookingStatusCancelledAwaitRefund))
	assert.False(t, CanTransition(BookingStatusPending, BookingStatusRenting))
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, BookingStatusCompleted.IsTerminal())
	assert.True(t, BookingStatusCancelled.IsTerminal())
	assert.True(t, BookingStatusRefunded.IsTerminal())
	assert.False(t, BookingStatusPending.IsTerminal())
	assert.False(t, BookingStatusConfirmed.IsTerminal())
	assert.False(t, BookingStatusRenting.IsTerminal())
	assert.False(t, BookingStatusCancelledAwaitRefund.IsTerminal())
}

func TestDepositsPaidCents_OnlyCountsPaid(t *testing.T) {
	b := &Booking{
		ReservationDepositCents: 500000,
		RentalDepositCents:      200000,
	}
	assert.Equal(t, int32(0), b.DepositsPaidCents())

	b.ReservationDepositPaid = true
	assert.Equal(t, int32(500000), b.DepositsPaidCents())

	b.RentalDepositPaid = true
	assert.Equal(t, int32(700000), b.DepositsPaidCents())
}

func TestDurationMinutes(t *testing.T) {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	b := &Booking{StartTime: start, EndTime: start.Add(150 * time.Minute)}
	assert.Equal(t, int32(150), b.DurationMinutes())
}
