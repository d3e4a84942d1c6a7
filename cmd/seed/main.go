package main

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"contacts-api/config"
	"contacts-api/pkg/helpers"
)

// Seeds a confirmed demo user with a handful of contacts for local testing.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "demo@example.com"
	password := "password123"
	username := "demoUser"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id int64
	err = db.QueryRow(`
		INSERT INTO users (username, email, password, avatar, confirmed)
		VALUES ($1, $2, $3, $4, TRUE)
		ON CONFLICT (email) DO UPDATE SET username = EXCLUDED.username
		RETURNING id
	`, username, email, hash, helpers.GravatarURL(email)).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%d email=%s password=%s\n", id, email, password)

	contacts := []struct {
		name, surname, phone, email string
		birthday                    time.Time
	}{
		{"Olya", "Shevchenko", "+380971112233", "olya@example.com", time.Date(1995, 3, 14, 0, 0, 0, 0, time.UTC)},
		{"Ivan", "Ivanov", "+380972223344", "ivan@example.com", time.Date(1990, 7, 1, 0, 0, 0, 0, time.UTC)},
		{"Boris", "Petrov", "+380973334455", "boris@example.com", time.Date(1988, 12, 24, 0, 0, 0, 0, time.UTC)},
	}
	for _, c := range contacts {
		if _, err := db.Exec(`
			INSERT INTO contacts (name, surname, phone_number, email, birthday, user_id)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, c.name, c.surname, c.phone, c.email, c.birthday, id); err != nil {
			log.Fatalf("failed to seed contact %s: %v", c.name, err)
		}
	}
	fmt.Printf("seeded %d contacts\n", len(contacts))
}
