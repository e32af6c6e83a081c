//go:build ignore

package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/hugh/cardlink/internal/cardnet"
	"github.com/hugh/cardlink/internal/database"
	"github.com/hugh/cardlink/internal/store"
	"github.com/hugh/cardlink/pkg/config"
	"github.com/hugh/cardlink/pkg/idgen"
	"github.com/hugh/cardlink/pkg/util"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// Seeds a demo company with two connected cards into the configured store.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := util.NewLogger(cfg.Server.Env, cfg.Server.LogLevel)
	ctx := context.Background()

	var st store.Store
	switch cfg.Store.Backend {
	case "database":
		db, err := database.Connect(&cfg.Database, logger)
		if err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
		st = store.NewGormStore(db, logger)
	case "redis":
		st = store.NewRedisStore(redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}))
	default:
		log.Fatalf("seeding needs a durable store, STORE_BACKEND is %q", cfg.Store.Backend)
	}

	ids, err := idgen.NewSnowflake(cfg.IDs.Node)
	if err != nil {
		log.Fatalf("failed to create id generator: %v", err)
	}

	svc, err := cardnet.NewService(ctx, cardnet.Config{Store: st, IDs: ids, Logger: logger})
	if err != nil {
		log.Fatalf("failed to load card network: %v", err)
	}

	company := os.Getenv("SEED_COMPANY")
	if company == "" {
		company = "Acme Corp"
	}

	order, err := svc.PlaceOrder(ctx, cardnet.PlaceOrderInput{
		CompanyName: company,
		BrandColors: "#6366f1,#9333ea",
	})
	if err != nil {
		log.Fatalf("failed to place order: %v", err)
	}

	design, err := svc.SubmitDesign(ctx, order.ID, "classic")
	if err != nil {
		log.Fatalf("failed to submit design: %v", err)
	}

	alice, err := svc.AssignCard(ctx, design.ID, cardnet.AssignCardInput{
		Name: "Alice Example", Title: "Engineering Lead", Email: "alice@example.com",
	})
	if err != nil {
		log.Fatalf("failed to assign card: %v", err)
	}
	bob, err := svc.AssignCard(ctx, design.ID, cardnet.AssignCardInput{
		Name: "Bob Example", Title: "Product Designer", Email: "bob@example.com",
	})
	if err != nil {
		log.Fatalf("failed to assign card: %v", err)
	}

	if _, err := svc.ToggleVisibility(ctx, bob.ID); err != nil {
		log.Fatalf("failed to publish card: %v", err)
	}

	req, err := svc.SendRequest(ctx, alice.ID, bob.ID)
	if err != nil {
		log.Fatalf("failed to send request: %v", err)
	}
	if _, err := svc.AcceptRequest(ctx, bob.ID, req.ID); err != nil {
		log.Fatalf("failed to accept request: %v", err)
	}

	fmt.Println("Seeded demo data:")
	fmt.Printf("  Company: %s (order %d, design %d)\n", company, order.ID, design.ID)
	fmt.Printf("  Card:    %s id=%d\n", alice.Name, alice.ID)
	fmt.Printf("  Card:    %s id=%d (public)\n", bob.Name, bob.ID)
	fmt.Println("  Start an employee session with POST /api/v1/sessions {\"role\":\"employee\",\"card_id\":\"<id>\"}")
}
