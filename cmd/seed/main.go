package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"spreadedge/internal/auth"
	"spreadedge/internal/shared/config"
	"spreadedge/internal/shared/database"
	"spreadedge/internal/users"
	"spreadedge/pkg/logger"

	"github.com/joho/godotenv"
)

type account struct {
	email    string
	password string
	role     users.Role
}

func main() {
	fmt.Println("🌱 Starting SpreadEdge Database Seeder...")

	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()
	if !cfg.Database.Enabled {
		log.Fatalf("DB_ENABLED is false, nothing to seed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	// Only Postgres is needed here
	cfg.Redis.Enabled = false
	db, err := database.InitDB(ctx, cfg, logger.New())
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	accounts := []account{
		{email: auth.TestUserEmail, password: auth.TestUserPassword, role: users.RoleUser},
	}
	if email := os.Getenv("SEED_ADMIN_EMAIL"); email != "" {
		accounts = append(accounts, account{email: email, password: os.Getenv("SEED_ADMIN_PASSWORD"), role: users.RoleAdmin})
	}

	repo := auth.NewRepository(db.PostgreSQL)

	fmt.Println("\n  👤 Seeding users...")
	for _, a := range accounts {
		created, err := auth.EnsureUser(ctx, repo, a.email, a.password, a.role)
		if err != nil {
			log.Fatalf("Failed to seed %s: %v", a.email, err)
		}
		if created {
			fmt.Printf("    ✅ Created user: %s (%s)\n", a.email, a.role)
		} else {
			fmt.Printf("    ⏭️  User exists: %s\n", a.email)
		}
	}

	fmt.Println("\n🎉 Seeding completed!")
}
