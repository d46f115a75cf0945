package spots

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrNotFound is returned when the referenced spot does not exist
var ErrNotFound = errors.New("spot not found")

type Repository interface {
	Create(ctx context.Context, spot *Spot) error
	GetByID(ctx context.Context, id uuid.UUID) (*Spot, error)
	GetAll(ctx context.Context) ([]Spot, error)
	Update(ctx context.Context, spot *Spot) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, spot *Spot) error {
	return r.db.WithContext(ctx).Create(spot).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Spot, error) {
	var spot Spot
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&spot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &spot, nil
}

func (r *repository) GetAll(ctx context.Context) ([]Spot, error) {
	var result []Spot
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&result).Error
	return result, err
}

func (r *repository) Update(ctx context.Context, spot *Spot) error {
	return r.db.WithContext(ctx).Save(spot).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Spot{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
