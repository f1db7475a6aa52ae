package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evrental-backend/internal/domain"
)

func billableBooking(t *testing.T, minutes int32, reservationPaid, rentalPaid bool) *domain.Booking {
	t.Helper()
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return &domain.Booking{
		ID:                      42,
		Status:                  domain.BookingStatusRenting,
		StartTime:               start,
		EndTime:                 start.Add(time.Duration(minutes) * time.Minute),
		ReservationDepositCents: 500000,
		ReservationDepositPaid:  reservationPaid,
		RentalDepositCents:      200000,
		RentalDepositPaid:       rentalPaid,
	}
}

func TestComputeBill_BaseRentRoundsUpToFullHours(t *testing.T) {
	// 150 minutes at 100,000/hour bills 3 hours: 300,000.
	booking := billableBooking(t, 150, false, false)

	bill, err := ComputeBill(booking, 100000, nil, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, int32(3), bill.BillableHours)
	assert.Equal(t, int32(300000), bill.BaseRentalCents)
	assert.Equal(t, int32(300000), bill.GrossDueCents)
	assert.Equal(t, int32(300000), bill.NetSettlementCents)
}

func TestComputeBill_DepositsProduceNegativeSettlement(t *testing.T) {
	// Gross 300,000 against 700,000 of deposits: net -400,000.
	booking := billableBooking(t, 150, true, true)

	bill, err := ComputeBill(booking, 100000, nil, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, int32(700000), bill.AlreadyPaidCents)
	assert.Equal(t, int32(-400000), bill.NetSettlementCents)
}

func TestComputeBill_OnlyPaidDepositsCount(t *testing.T) {
	booking := billableBooking(t, 60, true, false)

	bill, err := ComputeBill(booking, 100000, nil, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, int32(500000), bill.AlreadyPaidCents)
	assert.Equal(t, int32(-400000), bill.NetSettlementCents)
}

func TestComputeBill_PenaltiesMultiplyByQuantity(t *testing.T) {
	booking := billableBooking(t, 60, false, false)
	catalog := []domain.PenaltyFee{
		{ID: 1, Name: "Scratched panel", AmountCents: 150000},
		{ID: 2, Name: "Missing helmet", AmountCents: 80000},
	}
	penalties := []domain.SelectedPenalty{
		{PenaltyFeeID: 1, Quantity: 2},
		{PenaltyFeeID: 2, Quantity: 1},
	}

	bill, err := ComputeBill(booking, 100000, catalog, penalties, nil)
	require.NoError(t, err)

	assert.Equal(t, int32(380000), bill.PenaltyCents)
	assert.Equal(t, int32(480000), bill.GrossDueCents)
}

func TestComputeBill_UnknownPenaltyFailsWholeCalculation(t *testing.T) {
	booking := billableBooking(t, 60, false, false)
	catalog := []domain.PenaltyFee{{ID: 1, Name: "Scratched panel", AmountCents: 150000}}
	penalties := []domain.SelectedPenalty{
		{PenaltyFeeID: 1, Quantity: 1},
		{PenaltyFeeID: 99, Quantity: 1},
	}

	bill, err := ComputeBill(booking, 100000, catalog, penalties, nil)
	assert.Nil(t, bill)
	assert.True(t, domain.IsKind(err, domain.ErrKindCatalog))
}

func TestComputeBill_ZeroQuantityRejected(t *testing.T) {
	booking := billableBooking(t, 60, false, false)
	catalog := []domain.PenaltyFee{{ID: 1, AmountCents: 150000}}

	_, err := ComputeBill(booking, 100000, catalog, []domain.SelectedPenalty{{PenaltyFeeID: 1, Quantity: 0}}, nil)
	assert.True(t, domain.IsKind(err, domain.ErrKindValidation))
}

func TestComputeBill_NegativeCustomFeeIsNotClamped(t *testing.T) {
	// A discount larger than the rest of the bill drives the gross and
	// the net negative; the calculator reports it as entered.
	booking := billableBooking(t, 60, true, true)
	fee := &domain.CustomFee{Name: "Goodwill discount", AmountCents: -250000}

	bill, err := ComputeBill(booking, 100000, nil, nil, fee)
	require.NoError(t, err)

	assert.Equal(t, int32(-250000), bill.CustomFeeCents)
	assert.Equal(t, int32(-150000), bill.GrossDueCents)
	assert.Equal(t, int32(-850000), bill.NetSettlementCents)
}

func TestComputeBill_CustomFeeRequiresName(t *testing.T) {
	booking := billableBooking(t, 60, false, false)

	_, err := ComputeBill(booking, 100000, nil, nil, &domain.CustomFee{AmountCents: 50000})
	assert.True(t, domain.IsKind(err, domain.ErrKindValidation))
}

func TestComputeBill_PenaltyOverflowRejected(t *testing.T) {
	booking := billableBooking(t, 60, false, false)
	catalog := []domain.PenaltyFee{{ID: 1, Name: "Deep scratch", AmountCents: 100000000}}

	// 100,000,000 x 30 exceeds the int32 money range.
	bill, err := ComputeBill(booking, 100000, catalog, []domain.SelectedPenalty{{PenaltyFeeID: 1, Quantity: 30}}, nil)
	assert.True(t, domain.IsKind(err, domain.ErrKindValidation))
	assert.Nil(t, bill)
}

func TestComputeBill_BaseRentOverflowRejected(t *testing.T) {
	// 2,200 billed hours at 1,000,000/hour wraps int32; the
	// calculation must refuse instead of producing a wrapped total.
	booking := billableBooking(t, 2200*60, false, false)

	bill, err := ComputeBill(booking, 1000000, nil, nil, nil)
	assert.True(t, domain.IsKind(err, domain.ErrKindValidation))
	assert.Nil(t, bill)
}

func TestComputeBill_IsDeterministic(t *testing.T) {
	booking := billableBooking(t, 185, true, true)
	catalog := []domain.PenaltyFee{{ID: 7, AmountCents: 120000}}
	penalties := []domain.SelectedPenalty{{PenaltyFeeID: 7, Quantity: 3}}
	fee := &domain.CustomFee{Name: "Charging cable", AmountCents: 45000}

	first, err := ComputeBill(booking, 90000, catalog, penalties, fee)
	require.NoError(t, err)
	second, err := ComputeBill(booking, 90000, catalog, penalties, fee)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
