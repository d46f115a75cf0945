package bookings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusIsLive(t *testing.T) {
	assert.True(t, StatusPending.IsLive())
	assert.True(t, StatusActive.IsLive())
	assert.False(t, StatusCompleted.IsLive())
	assert.False(t, StatusCancelled.IsLive())
}

func TestStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from Status
		to   Status
		want bool
	}{
		{"pending activates on check-in", StatusPending, StatusActive, true},
		{"pending can be cancelled", StatusPending, StatusCancelled, true},
		{"pending cannot complete directly", StatusPending, StatusCompleted, false},
		{"active completes on check-out", StatusActive, StatusCompleted, true},
		{"active cannot be cancelled", StatusActive, StatusCancelled, false},
		{"completed is terminal", StatusCompleted, StatusActive, false},
		{"cancelled is terminal", StatusCancelled, StatusPending, false},
		{"cancelled cannot complete", StatusCancelled, StatusCompleted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestStatusCancelAndExtendRules(t *testing.T) {
	assert.True(t, StatusPending.CanBeCancelled())
	assert.False(t, StatusActive.CanBeCancelled())
	assert.False(t, StatusCompleted.CanBeCancelled())
	assert.False(t, StatusCancelled.CanBeCancelled())

	assert.True(t, StatusPending.CanBeExtended())
	assert.True(t, StatusActive.CanBeExtended())
	assert.False(t, StatusCompleted.CanBeExtended())
	assert.False(t, StatusCancelled.CanBeExtended())
}

func TestPaymentStatusIsValid(t *testing.T) {
	assert.True(t, PaymentPending.IsValid())
	assert.True(t, PaymentPaid.IsValid())
	assert.True(t, PaymentVoid.IsValid())
	assert.False(t, PaymentStatus("refunded").IsValid())
}
