package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"coworkly/internal/config"
	"coworkly/internal/database"
	"coworkly/internal/domain"
	"coworkly/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM notifications")
	db.Exec("DELETE FROM reservations")
	db.Exec("DELETE FROM subscriptions")
	db.Exec("DELETE FROM seats")
	db.Exec("DELETE FROM rooms")
	db.Exec("DELETE FROM users")

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	rooms := repository.NewRoomRepository(db)
	seats := repository.NewSeatRepository(db)

	// ================== USERS ==================
	log.Println("Creating users...")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := domain.User{
		Name:         "Administrateur",
		Email:        "admin@coworkly.fr",
		PasswordHash: string(adminHash),
		Role:         domain.RoleAdmin,
	}
	if err := users.Create(ctx, &admin); err != nil {
		log.Fatal("seed admin:", err)
	}
	log.Println("Admin created: admin@coworkly.fr / admin123")

	memberEmails := []string{"claire@example.fr", "karim@example.fr", "lea@example.fr"}
	for i, email := range memberEmails {
		hash, _ := bcrypt.GenerateFromPassword([]byte("member123"), bcrypt.DefaultCost)
		member := domain.User{
			Name:         fmt.Sprintf("Membre %d", i+1),
			Email:        email,
			PasswordHash: string(hash),
			Phone:        fmt.Sprintf("+33 6 12 34 56 %02d", i+10),
			Role:         domain.RoleUser,
		}
		if err := users.Create(ctx, &member); err != nil {
			log.Fatal("seed member:", err)
		}
	}

	// ================== ROOMS & SEATS ==================
	log.Println("Creating rooms and seats...")

	type roomSeed struct {
		name        string
		description string
		capacity    int
		seatCount   int
	}
	roomSeeds := []roomSeed{
		{"Open Space", "Grand plateau partagé, lumière naturelle", 24, 24},
		{"Salle Focus", "Petite salle calme pour le travail concentré", 6, 6},
		{"Salle Réunion", "Salle équipée écran + visio", 10, 10},
	}

	for _, rs := range roomSeeds {
		room := domain.Room{
			Name:        rs.name,
			Description: rs.description,
			Capacity:    rs.capacity,
			IsAvailable: true,
		}
		if err := rooms.Create(ctx, &room); err != nil {
			log.Fatal("seed room:", err)
		}

		for n := 1; n <= rs.seatCount; n++ {
			seat := domain.Seat{
				RoomID: room.ID,
				Number: n,
				PosX:   float64((n - 1) % 6),
				PosY:   float64((n - 1) / 6),
				Status: domain.SeatAvailable,
			}
			if err := seats.Create(ctx, &seat); err != nil {
				log.Fatal("seed seat:", err)
			}
		}
		log.Printf("Room %q created with %d seats", rs.name, rs.seatCount)
	}

	log.Println("Seed complete.")
}
