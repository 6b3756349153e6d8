package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/khoahotran/portfolio-builder/adapters/persistence"
	"github.com/khoahotran/portfolio-builder/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-builder/pkg/auth"
	"github.com/khoahotran/portfolio-builder/pkg/logger"
)

// Seeds a demo account with a filled-in portfolio so the builder and the
// exports have something to show.
func main() {
	fmt.Println("adding demo user into database...")

	err := godotenv.Load()
	if err != nil {
		log.Println("warning: .env file not found, use system environment variables.")
	}

	dsn := os.Getenv("DB_DSN")
	email := os.Getenv("SEED_EMAIL")
	name := os.Getenv("SEED_NAME")
	password := os.Getenv("SEED_PASSWORD")
	if email == "" || password == "" {
		log.Fatal("SEED_EMAIL and SEED_PASSWORD are required")
	}
	if name == "" {
		name = "Demo User"
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Fatalf("cannot hash password: %v", err)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("cannot connect DB: %v", err)
	}
	defer pool.Close()

	var id uuid.UUID
	err = pool.QueryRow(ctx, `
		INSERT INTO users (id, email, name, password_hash)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE SET password_hash = EXCLUDED.password_hash, name = EXCLUDED.name
		RETURNING id
	`, uuid.New(), email, name, hash).Scan(&id)
	if err != nil {
		log.Fatalf("cannot add user: %v", err)
	}

	doc, err := demoPortfolio(portfolio.Identity{UID: id.String(), DisplayName: name, Email: email})
	if err != nil {
		log.Fatalf("cannot build demo portfolio: %v", err)
	}

	store := persistence.NewPostgresPortfolioStore(pool, logger.NewNopLogger())
	if err := store.Set(ctx, id.String(), doc, portfolio.SetOptions{Merge: false}); err != nil {
		log.Fatalf("cannot store portfolio: %v", err)
	}

	fmt.Printf("added or updated '%s' (%s) successfully!\n", email, id)
}

func demoPortfolio(id portfolio.Identity) (*portfolio.Portfolio, error) {
	p := portfolio.Seed(id)
	if err := p.SelectTemplate("modern-developer"); err != nil {
		return nil, err
	}
	if err := p.SetField(portfolio.FieldTitle, "Full-stack Developer"); err != nil {
		return nil, err
	}
	if err := p.SetField(portfolio.FieldBio, "I build web applications end to end."); err != nil {
		return nil, err
	}
	for _, s := range []string{"Go", "PostgreSQL", "React"} {
		p.AddSkill(s)
	}
	if _, err := p.AddProject(portfolio.ProjectDraft{
		Title:        "Portfolio Builder",
		Description:  "A step-by-step portfolio editor with autosave and exports.",
		Technologies: []string{"Go", "Gin"},
		Featured:     true,
	}); err != nil {
		return nil, err
	}
	if _, err := p.AddExperience(portfolio.ExperienceDraft{
		Position:  "Software Engineer",
		Company:   "Acme",
		StartDate: "2022-01",
		Current:   true,
	}); err != nil {
		return nil, err
	}
	p.UpdatedAt = time.Now().UTC()
	return p, nil
}
