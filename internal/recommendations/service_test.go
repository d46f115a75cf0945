package recommendations

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

type fakeCatalog struct {
	spots []spots.Spot
}

func (f *fakeCatalog) GetAllSpots(ctx context.Context) ([]spots.Spot, error) {
	return f.spots, nil
}

type fakeOccupancy struct {
	occupied []uuid.UUID
}

func (f *fakeOccupancy) OccupiedSpotIDs(ctx context.Context, at time.Time) ([]uuid.UUID, error) {
	return f.occupied, nil
}

func testTuning() config.RecommendationConfig {
	return config.RecommendationConfig{DistanceWeight: 10}
}

// Three spots around the origin: near-and-pricey, far-and-cheap, and a
// middle option that wins on combined score.
func testSpots() []spots.Spot {
	return []spots.Spot{
		{ID: uuid.New(), Name: "near pricey", Latitude: 0.1, Longitude: 0, PricePerHour: 100},
		{ID: uuid.New(), Name: "far cheap", Latitude: 3, Longitude: 4, PricePerHour: 10},
		{ID: uuid.New(), Name: "balanced", Latitude: 0.6, Longitude: 0.8, PricePerHour: 30},
	}
}

func TestRecommendModes(t *testing.T) {
	ctx := context.Background()
	catalog := &fakeCatalog{spots: testSpots()}
	svc := NewService(catalog, &fakeOccupancy{}, testTuning())

	t.Run("cheapest orders by price", func(t *testing.T) {
		results, err := svc.Recommend(ctx, 0, 0, ModeCheapest)
		require.NoError(t, err)
		require.Len(t, results, 3)

		assert.Equal(t, "far cheap", results[0].Spot.Name)
		assert.Equal(t, "balanced", results[1].Spot.Name)
		assert.Equal(t, "near pricey", results[2].Spot.Name)
	})

	t.Run("nearest orders by distance", func(t *testing.T) {
		results, err := svc.Recommend(ctx, 0, 0, ModeNearest)
		require.NoError(t, err)
		require.Len(t, results, 3)

		assert.Equal(t, "near pricey", results[0].Spot.Name)
		assert.Equal(t, "balanced", results[1].Spot.Name)
		assert.Equal(t, "far cheap", results[2].Spot.Name)

		// Distances are straight-line from the query point
		assert.InDelta(t, 0.1, results[0].Distance, 1e-9)
		assert.InDelta(t, 1.0, results[1].Distance, 1e-9)
		assert.InDelta(t, 5.0, results[2].Distance, 1e-9)
	})

	t.Run("best orders by price plus weighted distance", func(t *testing.T) {
		results, err := svc.Recommend(ctx, 0, 0, ModeBest)
		require.NoError(t, err)
		require.Len(t, results, 3)

		// Scores at weight 10: balanced 30+10=40, far cheap 10+50=60,
		// near pricey 100+1=101
		assert.Equal(t, "balanced", results[0].Spot.Name)
		assert.Equal(t, "far cheap", results[1].Spot.Name)
		assert.Equal(t, "near pricey", results[2].Spot.Name)

		assert.InDelta(t, 40.0, results[0].Score, 1e-9)
		assert.InDelta(t, 60.0, results[1].Score, 1e-9)
		assert.InDelta(t, 101.0, results[2].Score, 1e-9)
	})

	t.Run("invalid mode falls back to best", func(t *testing.T) {
		results, err := svc.Recommend(ctx, 0, 0, Mode("teleport"))
		require.NoError(t, err)
		require.Len(t, results, 3)
		assert.Equal(t, "balanced", results[0].Spot.Name)
	})
}

func TestRecommendOccupancy(t *testing.T) {
	ctx := context.Background()
	allSpots := testSpots()

	t.Run("occupied spots are filtered out", func(t *testing.T) {
		occupancy := &fakeOccupancy{occupied: []uuid.UUID{allSpots[0].ID}}
		svc := NewService(&fakeCatalog{spots: allSpots}, occupancy, testTuning())

		results, err := svc.Recommend(ctx, 0, 0, ModeNearest)
		require.NoError(t, err)
		require.Len(t, results, 2)
		for _, r := range results {
			assert.False(t, r.IsOccupied)
			assert.NotEqual(t, allSpots[0].ID, r.Spot.ID)
		}
	})

	t.Run("fully occupied falls back to the whole set", func(t *testing.T) {
		occupancy := &fakeOccupancy{occupied: []uuid.UUID{
			allSpots[0].ID, allSpots[1].ID, allSpots[2].ID,
		}}
		svc := NewService(&fakeCatalog{spots: allSpots}, occupancy, testTuning())

		results, err := svc.Recommend(ctx, 0, 0, ModeCheapest)
		require.NoError(t, err)
		require.Len(t, results, 3)
		for _, r := range results {
			assert.True(t, r.IsOccupied)
		}
	})

	t.Run("empty catalog yields empty result", func(t *testing.T) {
		svc := NewService(&fakeCatalog{}, &fakeOccupancy{}, testTuning())

		results, err := svc.Recommend(ctx, 0, 0, ModeBest)
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}
