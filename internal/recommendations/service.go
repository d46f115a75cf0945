package recommendations

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"parkly/internal/shared/config"
	"parkly/internal/spots"
	"parkly/pkg/cache"

	"github.com/google/uuid"
)

const cacheKeyOccupiedSpots = "parkly:recommendations:occupied"

// SpotCatalog is the slice of the spot directory the engine reads
type SpotCatalog interface {
	GetAllSpots(ctx context.Context) ([]spots.Spot, error)
}

// OccupancyReader reports which spots have a live booking covering an
// instant. Implemented by the bookings repository; occupancy stays fully
// derived so it can never go stale against the booking records.
type OccupancyReader interface {
	OccupiedSpotIDs(ctx context.Context, at time.Time) ([]uuid.UUID, error)
}

// Service ranks spots for a driver's position and preference
type Service interface {
	SetCacheService(cacheService cache.Service, ttl time.Duration)
	Recommend(ctx context.Context, lat, lng float64, mode Mode) ([]ScoredSpot, error)
}

type service struct {
	catalog   SpotCatalog
	occupancy OccupancyReader
	tuning    config.RecommendationConfig

	cacheService cache.Service
	cacheTTL     time.Duration

	now func() time.Time
}

func NewService(catalog SpotCatalog, occupancy OccupancyReader, tuning config.RecommendationConfig) Service {
	return &service{
		catalog:   catalog,
		occupancy: occupancy,
		tuning:    tuning,
		now:       time.Now,
	}
}

// SetCacheService injects a short-TTL cache for the occupied-spot set
func (s *service) SetCacheService(cacheService cache.Service, ttl time.Duration) {
	s.cacheService = cacheService
	s.cacheTTL = ttl
}

// Recommend returns all candidate spots scored and ordered for the given
// mode. Unoccupied spots are preferred; if every spot is occupied the full
// candidate set is returned rather than nothing. The result is a snapshot,
// safe to call repeatedly.
func (s *service) Recommend(ctx context.Context, lat, lng float64, mode Mode) ([]ScoredSpot, error) {
	if !mode.IsValid() {
		mode = ModeBest
	}

	candidates, err := s.catalog.GetAllSpots(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load spots: %w", err)
	}

	occupied, err := s.occupiedSet(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to derive occupancy: %w", err)
	}

	scored := make([]ScoredSpot, 0, len(candidates))
	for _, spot := range candidates {
		distance := euclideanDistance(lat, lng, spot.Latitude, spot.Longitude)
		scored = append(scored, ScoredSpot{
			Spot:       spot,
			Distance:   distance,
			IsOccupied: occupied[spot.ID],
			Score:      spot.PricePerHour + distance*s.tuning.DistanceWeight,
		})
	}

	// Prefer free spots, but never filter down to an empty result
	free := make([]ScoredSpot, 0, len(scored))
	for _, sp := range scored {
		if !sp.IsOccupied {
			free = append(free, sp)
		}
	}
	if len(free) > 0 {
		scored = free
	}

	sortByMode(scored, mode)
	return scored, nil
}

func (s *service) occupiedSet(ctx context.Context) (map[uuid.UUID]bool, error) {
	var ids []uuid.UUID

	if s.cacheService != nil {
		err := s.cacheService.GetOrSet(ctx, cacheKeyOccupiedSpots, s.cacheTTL, func() (interface{}, error) {
			return s.occupancy.OccupiedSpotIDs(ctx, s.now())
		}, &ids)
		if err != nil {
			ids, err = s.occupancy.OccupiedSpotIDs(ctx, s.now())
			if err != nil {
				return nil, err
			}
		}
	} else {
		var err error
		ids, err = s.occupancy.OccupiedSpotIDs(ctx, s.now())
		if err != nil {
			return nil, err
		}
	}

	set := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

func sortByMode(scored []ScoredSpot, mode Mode) {
	switch mode {
	case ModeCheapest:
		sort.SliceStable(scored, func(i, j int) bool {
			return scored[i].Spot.PricePerHour < scored[j].Spot.PricePerHour
		})
	case ModeNearest:
		sort.SliceStable(scored, func(i, j int) bool {
			return scored[i].Distance < scored[j].Distance
		})
	default:
		sort.SliceStable(scored, func(i, j int) bool {
			return scored[i].Score < scored[j].Score
		})
	}
}

func euclideanDistance(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := lat1 - lat2
	dLng := lng1 - lng2
	return math.Sqrt(dLat*dLat + dLng*dLng)
}
