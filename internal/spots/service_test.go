package spots

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepository struct {
	spots map[uuid.UUID]*Spot
	order []uuid.UUID
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{spots: make(map[uuid.UUID]*Spot)}
}

func (f *fakeRepository) Create(ctx context.Context, spot *Spot) error {
	if spot.ID == uuid.Nil {
		spot.ID = uuid.New()
	}
	stored := *spot
	f.spots[spot.ID] = &stored
	f.order = append(f.order, spot.ID)
	return nil
}

func (f *fakeRepository) GetByID(ctx context.Context, id uuid.UUID) (*Spot, error) {
	stored, ok := f.spots[id]
	if !ok {
		return nil, ErrNotFound
	}
	found := *stored
	return &found, nil
}

func (f *fakeRepository) GetAll(ctx context.Context) ([]Spot, error) {
	out := make([]Spot, 0, len(f.order))
	for _, id := range f.order {
		if s, ok := f.spots[id]; ok {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeRepository) Update(ctx context.Context, spot *Spot) error {
	if _, ok := f.spots[spot.ID]; !ok {
		return ErrNotFound
	}
	stored := *spot
	f.spots[spot.ID] = &stored
	return nil
}

func (f *fakeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.spots[id]; !ok {
		return ErrNotFound
	}
	delete(f.spots, id)
	return nil
}

func TestSpotCRUD(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	svc := NewService(repo)

	created, err := svc.CreateSpot(ctx, CreateSpotRequest{
		Name:         "MG Road Basement P1",
		Address:      "14 MG Road",
		Latitude:     12.9758,
		Longitude:    77.6045,
		PricePerHour: 60,
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)

	fetched, err := svc.GetSpotByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "MG Road Basement P1", fetched.Name)

	newPrice := 75.0
	updated, err := svc.UpdateSpot(ctx, created.ID, UpdateSpotRequest{PricePerHour: &newPrice})
	require.NoError(t, err)
	assert.Equal(t, 75.0, updated.PricePerHour)
	assert.Equal(t, "MG Road Basement P1", updated.Name) // untouched fields survive

	all, err := svc.GetAllSpots(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, svc.DeleteSpot(ctx, created.ID))

	_, err = svc.GetSpotByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProvisionSpot(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeRepository())

	id := uuid.New()
	spot, err := svc.ProvisionSpot(ctx, id, "walk-up spot")
	require.NoError(t, err)

	assert.Equal(t, id, spot.ID)
	assert.Equal(t, "walk-up spot", spot.Name)
	assert.Zero(t, spot.Latitude)
	assert.Zero(t, spot.Longitude)
	assert.Zero(t, spot.PricePerHour)
}
