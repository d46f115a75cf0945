package spots

import (
	"context"
	"fmt"
	"time"

	"parkly/pkg/cache"

	"github.com/google/uuid"
)

const (
	cacheKeyAllSpots = "parkly:spots:all"
	cacheKeySpotByID = "parkly:spots:id:%s"
)

// Service defines the contract for spot catalog business logic
type Service interface {
	SetCacheService(cacheService cache.Service, ttl time.Duration)
	CreateSpot(ctx context.Context, req CreateSpotRequest) (*Spot, error)
	GetSpotByID(ctx context.Context, id uuid.UUID) (*Spot, error)
	GetAllSpots(ctx context.Context) ([]Spot, error)
	UpdateSpot(ctx context.Context, id uuid.UUID, req UpdateSpotRequest) (*Spot, error)
	DeleteSpot(ctx context.Context, id uuid.UUID) error

	// ProvisionSpot creates a spot with default attributes from a bare
	// identifier. Used by the booking auto-provision path only.
	ProvisionSpot(ctx context.Context, id uuid.UUID, name string) (*Spot, error)
}

type service struct {
	repo         Repository
	cacheService cache.Service
	cacheTTL     time.Duration
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// SetCacheService injects the cache service dependency
func (s *service) SetCacheService(cacheService cache.Service, ttl time.Duration) {
	s.cacheService = cacheService
	s.cacheTTL = ttl
}

func (s *service) invalidateCache(ctx context.Context) {
	if s.cacheService == nil {
		return
	}
	// Best effort: stale entries expire via TTL anyway
	_ = s.cacheService.DeletePattern(ctx, "parkly:spots:*")
}

func (s *service) CreateSpot(ctx context.Context, req CreateSpotRequest) (*Spot, error) {
	spot := &Spot{
		Name:         req.Name,
		Address:      req.Address,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		PricePerHour: req.PricePerHour,
	}

	if err := s.repo.Create(ctx, spot); err != nil {
		return nil, fmt.Errorf("failed to create spot: %w", err)
	}

	s.invalidateCache(ctx)
	return spot, nil
}

func (s *service) GetSpotByID(ctx context.Context, id uuid.UUID) (*Spot, error) {
	if s.cacheService != nil {
		var cached Spot
		key := fmt.Sprintf(cacheKeySpotByID, id)
		err := s.cacheService.GetOrSet(ctx, key, s.cacheTTL, func() (interface{}, error) {
			return s.repo.GetByID(ctx, id)
		}, &cached)
		if err == nil {
			return &cached, nil
		}
		if err == ErrNotFound {
			return nil, err
		}
		// Cache trouble falls through to the repository
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetAllSpots(ctx context.Context) ([]Spot, error) {
	if s.cacheService != nil {
		var cached []Spot
		err := s.cacheService.GetOrSet(ctx, cacheKeyAllSpots, s.cacheTTL, func() (interface{}, error) {
			return s.repo.GetAll(ctx)
		}, &cached)
		if err == nil {
			return cached, nil
		}
	}
	return s.repo.GetAll(ctx)
}

func (s *service) UpdateSpot(ctx context.Context, id uuid.UUID, req UpdateSpotRequest) (*Spot, error) {
	spot, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		spot.Name = *req.Name
	}
	if req.Address != nil {
		spot.Address = *req.Address
	}
	if req.Latitude != nil {
		spot.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		spot.Longitude = *req.Longitude
	}
	if req.PricePerHour != nil {
		spot.PricePerHour = *req.PricePerHour
	}

	if err := s.repo.Update(ctx, spot); err != nil {
		return nil, fmt.Errorf("failed to update spot: %w", err)
	}

	s.invalidateCache(ctx)
	return spot, nil
}

func (s *service) DeleteSpot(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateCache(ctx)
	return nil
}

// ProvisionSpot persists a placeholder spot carrying only an id and a name.
// Coordinates and price stay zero until the owner fills them in.
func (s *service) ProvisionSpot(ctx context.Context, id uuid.UUID, name string) (*Spot, error) {
	spot := &Spot{
		ID:   id,
		Name: name,
	}
	if err := s.repo.Create(ctx, spot); err != nil {
		return nil, fmt.Errorf("failed to provision spot: %w", err)
	}
	s.invalidateCache(ctx)
	return spot, nil
}
