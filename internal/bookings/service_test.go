package bookings

import (
	"context"
	"testing"
	"time"

	"parkly/internal/shared/config"
	"parkly/internal/spots"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepository is an in-memory Repository. Its overlap checks run the
// same pure predicate the SQL repository expresses as an indexed query.
type fakeRepository struct {
	bookings map[uuid.UUID]*Booking
	spots    map[uuid.UUID]bool
}

func newFakeRepository(spotIDs ...uuid.UUID) *fakeRepository {
	known := make(map[uuid.UUID]bool, len(spotIDs))
	for _, id := range spotIDs {
		known[id] = true
	}
	return &fakeRepository{
		bookings: make(map[uuid.UUID]*Booking),
		spots:    known,
	}
}

func (f *fakeRepository) snapshot() []Booking {
	out := make([]Booking, 0, len(f.bookings))
	for _, b := range f.bookings {
		out = append(out, *b)
	}
	return out
}

func (f *fakeRepository) CreateWithOverlapCheck(ctx context.Context, booking *Booking) error {
	if !f.spots[booking.SpotID] {
		return ErrSpotNotFound
	}
	if HasOverlap(f.snapshot(), booking.SpotID, booking.StartTime, booking.EndTime, nil) {
		return ErrSpotUnavailable
	}
	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	stored := *booking
	f.bookings[booking.ID] = &stored
	return nil
}

func (f *fakeRepository) ExtendWindowWithOverlapCheck(ctx context.Context, booking *Booking, newEnd time.Time, newTotalPrice float64) error {
	if !f.spots[booking.SpotID] {
		return ErrSpotNotFound
	}
	if HasOverlap(f.snapshot(), booking.SpotID, booking.EndTime, newEnd, &booking.ID) {
		return ErrSpotUnavailable
	}
	stored, ok := f.bookings[booking.ID]
	if !ok {
		return ErrBookingNotFound
	}
	stored.EndTime = newEnd
	stored.TotalPrice = newTotalPrice
	booking.EndTime = newEnd
	booking.TotalPrice = newTotalPrice
	return nil
}

func (f *fakeRepository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	stored, ok := f.bookings[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	copy := *stored
	return &copy, nil
}

func (f *fakeRepository) GetByRequesterID(ctx context.Context, requesterID uuid.UUID) ([]Booking, error) {
	var out []Booking
	for _, b := range f.bookings {
		if b.RequesterID == requesterID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeRepository) Update(ctx context.Context, booking *Booking) error {
	if _, ok := f.bookings[booking.ID]; !ok {
		return ErrBookingNotFound
	}
	stored := *booking
	f.bookings[booking.ID] = &stored
	return nil
}

func (f *fakeRepository) OccupiedSpotIDs(ctx context.Context, at time.Time) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	seen := make(map[uuid.UUID]bool)
	for _, b := range f.bookings {
		if b.Status.IsLive() && b.StartTime.Before(at) && b.EndTime.After(at) && !seen[b.SpotID] {
			seen[b.SpotID] = true
			ids = append(ids, b.SpotID)
		}
	}
	return ids, nil
}

type fakeSpotDirectory struct {
	spots       map[uuid.UUID]*spots.Spot
	provisioned []uuid.UUID
}

func newFakeSpotDirectory(repo *fakeRepository, spotIDs ...uuid.UUID) *fakeSpotDirectory {
	d := &fakeSpotDirectory{spots: make(map[uuid.UUID]*spots.Spot)}
	for _, id := range spotIDs {
		d.spots[id] = &spots.Spot{ID: id, Name: "spot-" + id.String()[:8]}
		repo.spots[id] = true
	}
	return d
}

func (d *fakeSpotDirectory) GetSpotByID(ctx context.Context, id uuid.UUID) (*spots.Spot, error) {
	spot, ok := d.spots[id]
	if !ok {
		return nil, spots.ErrNotFound
	}
	return spot, nil
}

func (d *fakeSpotDirectory) ProvisionSpot(ctx context.Context, id uuid.UUID, name string) (*spots.Spot, error) {
	spot := &spots.Spot{ID: id, Name: name}
	d.spots[id] = spot
	d.provisioned = append(d.provisioned, id)
	return spot, nil
}

type fakePublisher struct {
	events []string
}

func (p *fakePublisher) PublishBookingEvent(ctx context.Context, eventType string, booking *Booking) error {
	p.events = append(p.events, eventType)
	return nil
}

func testPolicy() config.BookingConfig {
	return config.BookingConfig{
		GracePeriod:          15 * time.Minute,
		PenaltyRatePerHour:   10,
		ExtensionRatePerHour: 200,
		PaymentDefault:       "paid",
		AutoProvisionSpots:   false,
	}
}

type serviceFixture struct {
	svc       Service
	repo      *fakeRepository
	directory *fakeSpotDirectory
	publisher *fakePublisher
	spotID    uuid.UUID
	clock     *time.Time
}

func newServiceFixture(t *testing.T, policy config.BookingConfig) *serviceFixture {
	t.Helper()

	spotID := uuid.New()
	repo := newFakeRepository()
	directory := newFakeSpotDirectory(repo, spotID)
	publisher := &fakePublisher{}

	svc := NewService(repo, directory, policy)
	svc.SetEventPublisher(publisher)

	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	clock := &now
	svc.(*service).now = func() time.Time { return *clock }

	return &serviceFixture{
		svc:       svc,
		repo:      repo,
		directory: directory,
		publisher: publisher,
		spotID:    spotID,
		clock:     clock,
	}
}

func (f *serviceFixture) window(startHour, endHour int) (time.Time, time.Time) {
	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	return day.Add(time.Duration(startHour) * time.Hour), day.Add(time.Duration(endHour) * time.Hour)
}

func TestCreateBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("creates pending booking with configured payment default", func(t *testing.T) {
		f := newServiceFixture(t, testPolicy())
		requester := uuid.New()
		start, end := f.window(10, 12)

		booking, err := f.svc.CreateBooking(ctx, f.spotID, requester, start, end, 120)
		require.NoError(t, err)

		assert.Equal(t, StatusPending, booking.Status)
		assert.Equal(t, PaymentPaid, booking.PaymentStatus)
		assert.Equal(t, 120.0, booking.TotalPrice)
		assert.Nil(t, booking.ActualCheckInTime)
		assert.Equal(t, []string{EventBookingCreated}, f.publisher.events)
	})

	t.Run("rejects invalid window", func(t *testing.T) {
		f := newServiceFixture(t, testPolicy())
		start, end := f.window(12, 10)

		_, err := f.svc.CreateBooking(ctx, f.spotID, uuid.New(), start, end, 120)
		assert.ErrorIs(t, err, ErrInvalidWindow)
	})

	t.Run("rejects unknown spot when auto-provision is off", func(t *testing.T) {
		f := newServiceFixture(t, testPolicy())
		start, end := f.window(10, 12)

		_, err := f.svc.CreateBooking(ctx, uuid.New(), uuid.New(), start, end, 120)
		assert.ErrorIs(t, err, ErrSpotNotFound)
	})

	t.Run("provisions unknown spot when enabled", func(t *testing.T) {
		policy := testPolicy()
		policy.AutoProvisionSpots = true
		f := newServiceFixture(t, policy)

		newSpot := uuid.New()
		f.repo.spots[newSpot] = true
		start, end := f.window(10, 12)

		booking, err := f.svc.CreateBooking(ctx, newSpot, uuid.New(), start, end, 120)
		require.NoError(t, err)
		assert.Equal(t, newSpot, booking.SpotID)
		assert.Equal(t, []uuid.UUID{newSpot}, f.directory.provisioned)
	})

	t.Run("falls back to paid on unrecognized payment default", func(t *testing.T) {
		policy := testPolicy()
		policy.PaymentDefault = "gold-bars"
		f := newServiceFixture(t, policy)
		start, end := f.window(10, 12)

		booking, err := f.svc.CreateBooking(ctx, f.spotID, uuid.New(), start, end, 120)
		require.NoError(t, err)
		assert.Equal(t, PaymentPaid, booking.PaymentStatus)
	})
}

func TestCreateBookingOverlap(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t, testPolicy())

	// Existing reservation for [10:00, 11:00)
	start, end := f.window(10, 11)
	_, err := f.svc.CreateBooking(ctx, f.spotID, uuid.New(), start, end, 60)
	require.NoError(t, err)

	t.Run("overlapping window is rejected", func(t *testing.T) {
		s, e := f.window(10, 12)
		s = s.Add(30 * time.Minute) // [10:30, 12:00)
		_, err := f.svc.CreateBooking(ctx, f.spotID, uuid.New(), s, e, 90)
		assert.ErrorIs(t, err, ErrSpotUnavailable)
	})

	t.Run("back-to-back window is accepted", func(t *testing.T) {
		s, e := f.window(11, 12)
		_, err := f.svc.CreateBooking(ctx, f.spotID, uuid.New(), s, e, 60)
		assert.NoError(t, err)
	})

	t.Run("same window on another spot is accepted", func(t *testing.T) {
		otherSpot := uuid.New()
		f.directory.spots[otherSpot] = &spots.Spot{ID: otherSpot}
		f.repo.spots[otherSpot] = true

		_, err := f.svc.CreateBooking(ctx, otherSpot, uuid.New(), start, end, 60)
		assert.NoError(t, err)
	})
}

func TestScanLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t, testPolicy())

	start, end := f.window(10, 12)
	booking, err := f.svc.CreateBooking(ctx, f.spotID, uuid.New(), start, end, 120)
	require.NoError(t, err)

	// First scan: check-in
	*f.clock = start.Add(5 * time.Minute)
	resp, err := f.svc.Scan(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, ScanTypeCheckIn, resp.Type)
	assert.Equal(t, StatusActive, resp.Booking.Status)
	require.NotNil(t, resp.Booking.ActualCheckInTime)
	assert.Equal(t, *f.clock, *resp.Booking.ActualCheckInTime)

	// Second scan: check-out, on time, no fee
	*f.clock = end.Add(-10 * time.Minute)
	resp, err = f.svc.Scan(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, ScanTypeCheckOut, resp.Type)
	assert.Equal(t, StatusCompleted, resp.Booking.Status)
	assert.Equal(t, 0.0, resp.ExtraFee)

	// Third scan: nothing left to do
	_, err = f.svc.Scan(ctx, booking.ID)
	assert.ErrorIs(t, err, ErrAlreadyCompleted)

	assert.Equal(t, []string{
		EventBookingCreated,
		EventBookingCheckedIn,
		EventBookingCheckedOut,
	}, f.publisher.events)
}

func TestCheckIn(t *testing.T) {
	ctx := context.Background()

	t.Run("second check-in is rejected and timestamp survives", func(t *testing.T) {
		f := newServiceFixture(t, testPolicy())
		start, end := f.window(10, 12)
		booking, err := f.svc.CreateBooking(ctx, f.spotID, uuid.New(), start, end, 120)
		require.NoError(t, err)

		*f.clock = start
		first, err := f.svc.CheckIn(ctx, booking.ID)
		require.NoError(t, err)

		*f.clock = start.Add(30 * time.Minute)
		_, err = f.svc.CheckIn(ctx, booking.ID)
		assert.ErrorIs(t, err, ErrAlreadyCheckedIn)

		stored, err := f.svc.GetBooking(ctx, booking.ID)
		require.NoError(t, err)
		assert.Equal(t, *first.Booking.ActualCheckInTime, *stored.ActualCheckInTime)
	})

	t.Run("check-in on cancelled booking is rejected", func(t *testing.T) {
		f := newServiceFixture(t, testPolicy())
		requester := uuid.New()
		start, end := f.window(10, 12)
		booking, err := f.svc.CreateBooking(ctx, f.spotID, requester, start, end, 120)
		require.NoError(t, err)

		_, err = f.svc.CancelBooking(ctx, booking.ID, requester)
		require.NoError(t, err)

		_, err = f.svc.CheckIn(ctx, booking.ID)
		assert.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("unknown booking", func(t *testing.T) {
		f := newServiceFixture(t, testPolicy())
		_, err := f.svc.CheckIn(ctx, uuid.New())
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestCheckOutOverstay(t *testing.T) {
	ctx := context.Background()

	t.Run("checkout without check-in is rejected", func(t *testing.T) {
		f := newServiceFixture(t, testPolicy())
		start, end := f.window(10, 12)
		booking, err := f.svc.CreateBooking(ctx, f.spotID, uuid.New(), start, end, 120)
		require.NoError(t, err)

		_, err = f.svc.CheckOut(ctx, booking.ID)
		assert.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("overstay past grace charges rounded-up hours", func(t *testing.T) {
		f := newServiceFixture(t, testPolicy())
		start, end := f.window(10, 12)
		booking, err := f.svc.CreateBooking(ctx, f.spotID, uuid.New(), start, end, 120)
		require.NoError(t, err)

		*f.clock = start
		_, err = f.svc.CheckIn(ctx, booking.ID)
		require.NoError(t, err)

		// 75 minutes past the booked end at 10/hr: two billable hours
		*f.clock = end.Add(75 * time.Minute)
		resp, err := f.svc.CheckOut(ctx, booking.ID)
		require.NoError(t, err)

		assert.Equal(t, 20.0, resp.ExtraFee)
		assert.Equal(t, 20.0, resp.Booking.ExtraFee)
		assert.Equal(t, StatusCompleted, resp.Booking.Status)
		assert.Equal(t, PaymentPaid, resp.Booking.PaymentStatus)
	})

	t.Run("departure within grace is free", func(t *testing.T) {
		f := newServiceFixture(t, testPolicy())
		start, end := f.window(10, 12)
		booking, err := f.svc.CreateBooking(ctx, f.spotID, uuid.New(), start, end, 120)
		require.NoError(t, err)

		*f.clock = start
		_, err = f.svc.CheckIn(ctx, booking.ID)
		require.NoError(t, err)

		*f.clock = end.Add(10 * time.Minute)
		resp, err := f.svc.CheckOut(ctx, booking.ID)
		require.NoError(t, err)
		assert.Equal(t, 0.0, resp.ExtraFee)
	})
}

func TestExtendBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("extension adds hours and charges the extension rate", func(t *testing.T) {
		f := newServiceFixture(t, testPolicy())
		start, end := f.window(10, 12)
		booking, err := f.svc.CreateBooking(ctx, f.spotID, uuid.New(), start, end, 120)
		require.NoError(t, err)

		resp, err := f.svc.ExtendBooking(ctx, booking.ID, 2)
		require.NoError(t, err)

		assert.Equal(t, 400.0, resp.AdditionalCost)
		assert.Equal(t, end.Add(2*time.Hour), resp.Booking.EndTime)
		assert.Equal(t, 520.0, resp.Booking.TotalPrice)
	})

	t.Run("extension into a neighbouring booking is rejected", func(t *testing.T) {
		f := newServiceFixture(t, testPolicy())
		start, end := f.window(10, 12)
		booking, err := f.svc.CreateBooking(ctx, f.spotID, uuid.New(), start, end, 120)
		require.NoError(t, err)

		// Neighbour holds [13:00, 14:00); a 2 hour extension reaches into it
		nStart, nEnd := f.window(13, 14)
		_, err = f.svc.CreateBooking(ctx, f.spotID, uuid.New(), nStart, nEnd, 60)
		require.NoError(t, err)

		_, err = f.svc.ExtendBooking(ctx, booking.ID, 2)
		assert.ErrorIs(t, err, ErrSpotUnavailable)

		// A 1 hour extension ends exactly where the neighbour starts
		resp, err := f.svc.ExtendBooking(ctx, booking.ID, 1)
		require.NoError(t, err)
		assert.Equal(t, nStart, resp.Booking.EndTime)
	})

	t.Run("non-positive hours are rejected", func(t *testing.T) {
		f := newServiceFixture(t, testPolicy())
		_, err := f.svc.ExtendBooking(ctx, uuid.New(), 0)
		assert.ErrorIs(t, err, ErrInvalidWindow)

		_, err = f.svc.ExtendBooking(ctx, uuid.New(), -1)
		assert.ErrorIs(t, err, ErrInvalidWindow)
	})

	t.Run("completed booking cannot be extended", func(t *testing.T) {
		f := newServiceFixture(t, testPolicy())
		start, end := f.window(10, 12)
		booking, err := f.svc.CreateBooking(ctx, f.spotID, uuid.New(), start, end, 120)
		require.NoError(t, err)

		*f.clock = start
		_, err = f.svc.CheckIn(ctx, booking.ID)
		require.NoError(t, err)
		*f.clock = end
		_, err = f.svc.CheckOut(ctx, booking.ID)
		require.NoError(t, err)

		_, err = f.svc.ExtendBooking(ctx, booking.ID, 1)
		assert.ErrorIs(t, err, ErrInvalidState)
	})
}

func TestCancelBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("owner cancels pending booking and payment voids", func(t *testing.T) {
		f := newServiceFixture(t, testPolicy())
		requester := uuid.New()
		start, end := f.window(10, 12)
		booking, err := f.svc.CreateBooking(ctx, f.spotID, requester, start, end, 120)
		require.NoError(t, err)

		cancelled, err := f.svc.CancelBooking(ctx, booking.ID, requester)
		require.NoError(t, err)

		assert.Equal(t, StatusCancelled, cancelled.Status)
		assert.Equal(t, PaymentVoid, cancelled.PaymentStatus)
		assert.NotNil(t, cancelled.CancelledAt)
	})

	t.Run("cancelled window frees the spot", func(t *testing.T) {
		f := newServiceFixture(t, testPolicy())
		requester := uuid.New()
		start, end := f.window(10, 12)
		booking, err := f.svc.CreateBooking(ctx, f.spotID, requester, start, end, 120)
		require.NoError(t, err)

		_, err = f.svc.CancelBooking(ctx, booking.ID, requester)
		require.NoError(t, err)

		_, err = f.svc.CreateBooking(ctx, f.spotID, uuid.New(), start, end, 120)
		assert.NoError(t, err)
	})

	t.Run("non-owner cannot cancel", func(t *testing.T) {
		f := newServiceFixture(t, testPolicy())
		start, end := f.window(10, 12)
		booking, err := f.svc.CreateBooking(ctx, f.spotID, uuid.New(), start, end, 120)
		require.NoError(t, err)

		_, err = f.svc.CancelBooking(ctx, booking.ID, uuid.New())
		assert.ErrorIs(t, err, ErrNotOwner)
	})

	t.Run("active booking cannot be cancelled", func(t *testing.T) {
		f := newServiceFixture(t, testPolicy())
		requester := uuid.New()
		start, end := f.window(10, 12)
		booking, err := f.svc.CreateBooking(ctx, f.spotID, requester, start, end, 120)
		require.NoError(t, err)

		*f.clock = start
		_, err = f.svc.CheckIn(ctx, booking.ID)
		require.NoError(t, err)

		_, err = f.svc.CancelBooking(ctx, booking.ID, requester)
		assert.ErrorIs(t, err, ErrInvalidState)
	})
}
