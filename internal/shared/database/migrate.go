package database

import (
	"parkly/internal/bookings"
	"parkly/internal/spots"
	"parkly/internal/users"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&spots.Spot{},
		&bookings.Booking{},
	)
}
