package bookings

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestWindowsOverlap(t *testing.T) {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	at := func(minutes int) time.Time { return base.Add(time.Duration(minutes) * time.Minute) }

	tests := []struct {
		name           string
		s1, e1, s2, e2 time.Time
		want           bool
	}{
		{
			name: "identical windows overlap",
			s1:   at(0), e1: at(60), s2: at(0), e2: at(60),
			want: true,
		},
		{
			name: "partial overlap at tail",
			s1:   at(0), e1: at(60), s2: at(30), e2: at(90),
			want: true,
		},
		{
			name: "partial overlap at head",
			s1:   at(30), e1: at(90), s2: at(0), e2: at(60),
			want: true,
		},
		{
			name: "containment overlaps",
			s1:   at(0), e1: at(120), s2: at(30), e2: at(60),
			want: true,
		},
		{
			name: "back-to-back windows do not overlap",
			s1:   at(0), e1: at(60), s2: at(60), e2: at(120),
			want: false,
		},
		{
			name: "back-to-back reversed do not overlap",
			s1:   at(60), e1: at(120), s2: at(0), e2: at(60),
			want: false,
		},
		{
			name: "disjoint windows do not overlap",
			s1:   at(0), e1: at(30), s2: at(90), e2: at(120),
			want: false,
		},
		{
			name: "one minute of overlap is enough",
			s1:   at(0), e1: at(61), s2: at(60), e2: at(120),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WindowsOverlap(tt.s1, tt.e1, tt.s2, tt.e2))

			// Overlap is symmetric
			assert.Equal(t, tt.want, WindowsOverlap(tt.s2, tt.e2, tt.s1, tt.e1))
		})
	}
}

func TestValidateWindow(t *testing.T) {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		start, end time.Time
		wantErr    error
	}{
		{"valid window", base, base.Add(time.Hour), nil},
		{"zero start", time.Time{}, base, ErrInvalidWindow},
		{"zero end", base, time.Time{}, ErrInvalidWindow},
		{"end before start", base.Add(time.Hour), base, ErrInvalidWindow},
		{"zero-length window", base, base, ErrInvalidWindow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWindow(tt.start, tt.end)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestHasOverlap(t *testing.T) {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	at := func(minutes int) time.Time { return base.Add(time.Duration(minutes) * time.Minute) }

	spotA := uuid.New()
	spotB := uuid.New()
	existingID := uuid.New()

	candidates := []Booking{
		{ID: existingID, SpotID: spotA, StartTime: at(0), EndTime: at(60), Status: StatusActive},
		{ID: uuid.New(), SpotID: spotA, StartTime: at(120), EndTime: at(180), Status: StatusCancelled},
		{ID: uuid.New(), SpotID: spotB, StartTime: at(0), EndTime: at(60), Status: StatusPending},
	}

	t.Run("live booking on same spot blocks", func(t *testing.T) {
		assert.True(t, HasOverlap(candidates, spotA, at(30), at(90), nil))
	})

	t.Run("other spot does not block", func(t *testing.T) {
		assert.False(t, HasOverlap(candidates, spotA, at(200), at(260), nil))
	})

	t.Run("cancelled booking never blocks", func(t *testing.T) {
		assert.False(t, HasOverlap(candidates, spotA, at(120), at(180), nil))
	})

	t.Run("touching window does not block", func(t *testing.T) {
		assert.False(t, HasOverlap(candidates, spotA, at(60), at(120), nil))
	})

	t.Run("excluded booking does not block itself", func(t *testing.T) {
		assert.False(t, HasOverlap(candidates, spotA, at(0), at(60), &existingID))
	})
}
