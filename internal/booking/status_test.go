package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusValid(t *testing.T) {
	for _, s := range ValidStatuses {
		assert.True(t, s.Valid(), "status %q", s)
	}
	assert.False(t, Status("").Valid())
	assert.False(t, Status("NotARealStatus").Valid())
	assert.False(t, Status("booking").Valid(), "status is case sensitive")
}

func TestRestoresStock(t *testing.T) {
	tests := []struct {
		from, to Status
		want     bool
	}{
		{StatusBooking, StatusCanceled, true},
		{StatusConfirmed, StatusCanceled, true},
		{StatusDone, StatusCanceled, true},
		{StatusCanceled, StatusCanceled, false}, // idempotent re-apply
		{StatusBooking, StatusDone, false},      // stok sudah dipotong saat create
		{StatusBooking, StatusConfirmed, false},
		{StatusCanceled, StatusBooking, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RestoresStock(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestTotalCost(t *testing.T) {
	assert.Equal(t, 300000.0, TotalCost(100000, 3))
	assert.Equal(t, 0.0, TotalCost(250000, 0))
}
