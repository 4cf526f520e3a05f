// seed inserts a demo user and a handful of notes into the local dev
// database. Run: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/orayachan/notesapp-backend/internal/infrastructure/postgres"
	"golang.org/x/crypto/bcrypt"
)

const (
	seedEmail    = "seed@test.local"
	seedName     = "Seed User"
	seedPassword = "seed-password"
)

type noteSpec struct {
	title   string
	content string
	tags    []string
	pinned  bool
	public  bool
}

var notes = []noteSpec{
	{"Groceries", "Milk, eggs, coffee", []string{"shopping"}, true, false},
	{"Meeting notes", "Review Q3 roadmap with the team", []string{"work", "roadmap"}, true, false},
	{"Book list", "The Go Programming Language", []string{"reading"}, false, true},
	{"Travel ideas", "Kyoto in autumn", []string{"travel", "someday"}, false, true},
	{"Scratch", "Random thoughts", nil, false, false},
}

func main() {
	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set — run: direnv allow")
	}

	pool, err := postgres.NewPool(ctx, dbURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	var userID string
	err = pool.QueryRow(ctx, `
		INSERT INTO users (full_name, email, password_hash)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET updated_at = NOW()
		RETURNING id`,
		seedName, seedEmail, string(hash),
	).Scan(&userID)
	if err != nil {
		log.Fatalf("upsert user: %v", err)
	}

	var inserted int
	for _, spec := range notes {
		tags := spec.tags
		if tags == nil {
			tags = []string{}
		}
		_, err := pool.Exec(ctx, `
			INSERT INTO notes (user_id, title, content, tags, is_pinned, is_public)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			userID, spec.title, spec.content, tags, spec.pinned, spec.public,
		)
		if err != nil {
			log.Fatalf("insert note %q: %v", spec.title, err)
		}
		inserted++
	}

	fmt.Println("Seed complete")
	fmt.Println()
	fmt.Printf("  User:     %s / %s\n", seedEmail, seedPassword)
	fmt.Printf("  User ID:  %s\n", userID)
	fmt.Printf("  Notes:    %d inserted\n", inserted)
}
