package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBillableHours(t *testing.T) {
	tests := []struct {
		name     string
		minutes  int32
		expected int32
	}{
		{"exact hour", 60, 1},
		{"exact hours", 180, 3},
		{"partial hour rounds up", 150, 3},
		{"one minute over", 61, 2},
		{"one minute under", 59, 1},
		{"zero bills minimum hour", 0, 1},
		{"negative bills minimum hour", -30, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BillableHours(tt.minutes))
		})
	}
}

func TestBaseRentalCents(t *testing.T) {
	// 150 minutes at 100,000/hour bills 3 hours.
	assert.Equal(t, int32(300000), BaseRentalCents(150, 100000))
	assert.Equal(t, int32(100000), BaseRentalCents(60, 100000))
}

func TestPercentOf(t *testing.T) {
	assert.Equal(t, int32(200000), PercentOf(10000000, 2))
	assert.Equal(t, int32(0), PercentOf(49, 2))
	assert.Equal(t, int32(1), PercentOf(50, 2))
}

func TestFormatCents(t *testing.T) {
	tests := []struct {
		amount   int64
		expected string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{500000, "500,000"},
		{1234567, "1,234,567"},
		{-400000, "-400,000"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatCents(tt.amount))
		})
	}
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "300,000 VND", FormatCurrency(300000, "VND"))
}
