package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"parkly/internal/bookings"
	"parkly/internal/shared/config"
	"parkly/internal/shared/database"
	"parkly/internal/spots"
	"parkly/internal/users"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting Parkly Database Seeder...")

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in the correct order (respecting foreign key constraints)
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"bookings",
		"spots",
		"users",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Exec("SET CONSTRAINTS ALL DEFERRED").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to defer constraints: %w", err)
	}

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	if err := tx.Exec("SET CONSTRAINTS ALL IMMEDIATE").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to restore constraints: %w", err)
	}

	return tx.Commit().Error
}

// SeedAll seeds all required data
func (s *Seeder) SeedAll() error {
	ctx := context.Background()

	userIDs, err := s.SeedUsers()
	if err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	spotIDs, err := s.SeedSpots()
	if err != nil {
		return fmt.Errorf("failed to seed spots: %w", err)
	}

	if err := s.SeedBookings(userIDs, spotIDs); err != nil {
		return fmt.Errorf("failed to seed bookings: %w", err)
	}

	// Clear Redis cache to ensure fresh state
	if err := s.db.Redis.FlushDB(ctx).Err(); err != nil {
		log.Printf("Warning: Failed to clear Redis cache: %v", err)
	}

	return nil
}

// SeedUsers creates 1 admin, 1 spot owner and 2 drivers
func (s *Seeder) SeedUsers() (map[string]uuid.UUID, error) {
	fmt.Println("  👤 Seeding users...")

	userIDs := make(map[string]uuid.UUID)

	// Hash password for all users (using "qwerty")
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("qwerty"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	usersData := []struct {
		key       string
		firstName string
		lastName  string
		email     string
		role      users.Role
	}{
		{"admin", "Admin", "User", "admin@parkly.dev", users.RoleAdmin},
		{"owner", "Priya", "Nair", "priya.nair@parkly.dev", users.RoleOwner},
		{"driver1", "Arjun", "Mehta", "arjun.mehta@parkly.dev", users.RoleDriver},
		{"driver2", "Sara", "Joseph", "sara.joseph@parkly.dev", users.RoleDriver},
	}

	for _, userData := range usersData {
		user := users.User{
			ID:        uuid.New(),
			FirstName: userData.firstName,
			LastName:  userData.lastName,
			Email:     userData.email,
			Password:  string(hashedPassword),
			Role:      userData.role,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to create user %s: %w", userData.email, err)
		}

		userIDs[userData.key] = user.ID
		fmt.Printf("    ✅ Created user: %s (%s)\n", user.Email, user.Role)
	}

	return userIDs, nil
}

// SeedSpots creates a small spread of parking spots around central Bengaluru
func (s *Seeder) SeedSpots() ([]uuid.UUID, error) {
	fmt.Println("  🅿️ Seeding spots...")

	var spotIDs []uuid.UUID

	spotsData := []struct {
		name         string
		address      string
		latitude     float64
		longitude    float64
		pricePerHour float64
	}{
		{"MG Road Basement P1", "14 MG Road", 12.9758, 77.6045, 60},
		{"Indiranagar 100ft Lot", "100 Feet Road, Indiranagar", 12.9719, 77.6412, 40},
		{"Koramangala Forum Deck", "Forum Mall, Koramangala", 12.9347, 77.6113, 50},
		{"Whitefield ITPL Yard", "ITPL Main Road, Whitefield", 12.9857, 77.7365, 25},
		{"Church Street Stack", "Church Street", 12.9753, 77.6044, 80},
	}

	for _, spotData := range spotsData {
		spot := spots.Spot{
			ID:           uuid.New(),
			Name:         spotData.name,
			Address:      spotData.address,
			Latitude:     spotData.latitude,
			Longitude:    spotData.longitude,
			PricePerHour: spotData.pricePerHour,
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&spot).Error; err != nil {
			return nil, fmt.Errorf("failed to create spot %s: %w", spotData.name, err)
		}

		spotIDs = append(spotIDs, spot.ID)
		fmt.Printf("    ✅ Created spot: %s (%.0f/hr)\n", spot.Name, spot.PricePerHour)
	}

	return spotIDs, nil
}

// SeedBookings creates a few bookings in different lifecycle states
func (s *Seeder) SeedBookings(userIDs map[string]uuid.UUID, spotIDs []uuid.UUID) error {
	fmt.Println("  📅 Seeding bookings...")

	now := time.Now()
	checkIn := now.Add(-30 * time.Minute)

	bookingsData := []struct {
		label     string
		spot      uuid.UUID
		requester uuid.UUID
		start     time.Time
		end       time.Time
		status    bookings.Status
		price     float64
		checkIn   *time.Time
	}{
		{
			label:     "upcoming",
			spot:      spotIDs[0],
			requester: userIDs["driver1"],
			start:     now.Add(2 * time.Hour),
			end:       now.Add(4 * time.Hour),
			status:    bookings.StatusPending,
			price:     120,
		},
		{
			label:     "in progress",
			spot:      spotIDs[1],
			requester: userIDs["driver2"],
			start:     now.Add(-1 * time.Hour),
			end:       now.Add(1 * time.Hour),
			status:    bookings.StatusActive,
			price:     80,
			checkIn:   &checkIn,
		},
		{
			label:     "tomorrow",
			spot:      spotIDs[2],
			requester: userIDs["driver1"],
			start:     now.Add(24 * time.Hour),
			end:       now.Add(27 * time.Hour),
			status:    bookings.StatusPending,
			price:     150,
		},
	}

	for _, data := range bookingsData {
		booking := bookings.Booking{
			ID:                uuid.New(),
			SpotID:            data.spot,
			RequesterID:       data.requester,
			StartTime:         data.start,
			EndTime:           data.end,
			Status:            data.status,
			TotalPrice:        data.price,
			PaymentStatus:     bookings.PaymentPaid,
			ActualCheckInTime: data.checkIn,
			CreatedAt:         now,
			UpdatedAt:         now,
		}

		if err := s.db.PostgreSQL.Create(&booking).Error; err != nil {
			return fmt.Errorf("failed to create %s booking: %w", data.label, err)
		}

		fmt.Printf("    ✅ Created %s booking (%s)\n", data.label, booking.Status)
	}

	return nil
}
