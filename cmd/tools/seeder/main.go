package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
)

type templateSeed struct {
	id          string
	name        string
	description string
	previewURL  string
	isPremium   bool
	price       float64
}

var templates = []templateSeed{
	{"default", "Classic", "Clean layout with your business header", "/previews/default.png", false, 0},
	{"minimalist", "Minimalist", "Whitespace-heavy modern receipt", "/previews/minimalist.png", true, 149},
	{"bold", "Bold", "Large totals for thermal printers", "/previews/bold.png", true, 149},
	{"elegant", "Elegant", "Serif typography for boutiques", "/previews/elegant.png", true, 199},
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment variables")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn, err := pgx.Connect(ctx, dbURL)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer conn.Close(ctx)

	for _, tpl := range templates {
		_, err := conn.Exec(ctx, `
			INSERT INTO receipt_templates (id, name, description, preview_url, is_premium, price)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name,
				description = EXCLUDED.description,
				preview_url = EXCLUDED.preview_url,
				is_premium = EXCLUDED.is_premium,
				price = EXCLUDED.price`,
			tpl.id, tpl.name, tpl.description, tpl.previewURL, tpl.isPremium, tpl.price)
		if err != nil {
			log.Fatalf("seed template %s: %v", tpl.id, err)
		}
		log.Printf("seeded template %s", tpl.id)
	}

	log.Println("seeding completed")
}
