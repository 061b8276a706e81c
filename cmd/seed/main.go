package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/inkwell-app/inkwell/config"
	"github.com/inkwell-app/inkwell/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	username := "demowriter"
	email := "demo@inkwell.local"
	password := "correcthorsebattery"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO users (username, email, password_hash)
		VALUES ($1, $2, $3)
		ON CONFLICT (username) DO UPDATE SET email = EXCLUDED.email
		RETURNING id
	`, username, email, hash).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s username=%s password=%s\n", id, username, password)

	posts := []struct {
		title string
		body  string
	}{
		{"Hello from the demo account", "This account exists so there is something to read on a fresh install."},
		{"A second post for the feed", "Follow demowriter and this shows up in your feed, newest first."},
	}
	for _, p := range posts {
		var postID string
		if err := db.QueryRow(`
			INSERT INTO posts (title, body, author_id)
			VALUES ($1, $2, $3)
			RETURNING id
		`, p.title, p.body, id).Scan(&postID); err != nil {
			log.Fatalf("failed to seed post: %v", err)
		}
		fmt.Printf("seeded post: id=%s title=%q\n", postID, p.title)
	}
}
