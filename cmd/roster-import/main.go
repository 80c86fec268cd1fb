package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/dantebozzuti27/baseline-video/internal/config"
	"github.com/dantebozzuti27/baseline-video/internal/database"
	"github.com/dantebozzuti27/baseline-video/internal/handlers"
	"github.com/dantebozzuti27/baseline-video/internal/seed"
	"github.com/dantebozzuti27/baseline-video/internal/services"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Println("Usage: roster-import <roster.yaml>")
		os.Exit(1)
	}

	f, err := seed.Load(os.Args[1])
	if err != nil {
		log.Fatalf("Failed to load roster: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Store != config.StorePostgres {
		log.Fatalf("roster-import writes to Postgres; STORE is %q", cfg.Store)
	}

	ctx := context.Background()

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	res, err := seed.Apply(ctx, database.NewStore(db), f, seed.Options{
		IssueClaims: true,
		ClaimTTL:    cfg.ClaimTokenTTL,
	})
	if err != nil {
		log.Fatalf("Failed to import roster: %v", err)
	}

	emailService := services.NewEmailService(cfg.SMTP)
	sent := 0
	for _, p := range res.Players {
		if p.Claim == nil {
			fmt.Printf("%s: already has an account\n", p.Profile.DisplayName)
			continue
		}
		link := handlers.ClaimURL(cfg.BaseURL, p.Claim.Token)
		if p.Email != "" && emailService.IsConfigured() {
			if err := emailService.SendClaimLink(p.Email, p.Profile.DisplayName, res.Team.Name, link); err != nil {
				log.Printf("Failed to email %s: %v", p.Email, err)
			} else {
				sent++
				fmt.Printf("%s: claim link sent to %s\n", p.Profile.DisplayName, p.Email)
				continue
			}
		}
		fmt.Printf("%s: %s (expires %s)\n", p.Profile.DisplayName, link, p.Claim.ExpiresAt.Format("2006-01-02 15:04 MST"))
	}

	fmt.Printf("Imported %d players into %s, emailed %d claim links\n", len(res.Players), res.Team.Name, sent)
}
