// Command seed wipes the users and sweets collections and loads demo data:
// one admin, one customer, and 50 randomly generated sweets. Accounts are
// created through the auth service so password hashing and validation run
// the same code as production registrations.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/sweetshop/inventory-api/internal/core/domain"
	"github.com/sweetshop/inventory-api/internal/core/ports"
	"github.com/sweetshop/inventory-api/internal/core/service"
	"github.com/sweetshop/inventory-api/internal/infrastructure/config"
	mongodb "github.com/sweetshop/inventory-api/internal/infrastructure/db/mongo"
	"github.com/sweetshop/inventory-api/pkg/logger"
)

var categories = []string{
	"Chocolates", "Gummies", "Hard Candies", "Baked Goods", "Traditionals", "Sours",
}

var adjectives = []string{
	"Delicious", "Sweet", "Sour", "Spicy", "Crunchy",
	"Chewy", "Creamy", "Dark", "White", "Rainbow",
}

var types = []string{
	"Bar", "Truffle", "Bear", "Pop", "Drop",
	"Cake", "Cookie", "Delight", "Surprise", "Bite",
}

const sweetCount = 50

func main() {
	ctx := context.Background()

	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() { _ = client.Disconnect(ctx) }()

	log.Info().Msg("clearing existing data")
	if _, err := db.Collection("users").DeleteMany(ctx, bson.M{}); err != nil {
		log.Fatal().Err(err).Msg("failed to clear users")
	}
	if _, err := db.Collection("sweets").DeleteMany(ctx, bson.M{}); err != nil {
		log.Fatal().Err(err).Msg("failed to clear sweets")
	}

	userRepo := mongodb.NewUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create user indexes")
	}

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiresIn, log)

	log.Info().Msg("creating accounts")
	admin, err := authService.Register(ctx, "admin", "admin@sweetshop.com", "password123")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create admin user")
	}
	// Registration always yields a customer; promote the admin directly.
	if _, err := db.Collection("users").UpdateOne(ctx,
		bson.M{"email": admin.Email},
		bson.M{"$set": bson.M{"role": domain.RoleAdmin}},
	); err != nil {
		log.Fatal().Err(err).Msg("failed to promote admin user")
	}
	if _, err := authService.Register(ctx, "customer", "demo@sweetshop.com", "password123"); err != nil {
		log.Fatal().Err(err).Msg("failed to create demo customer")
	}

	sweetRepo := mongodb.NewSweetRepository(db)
	if err := sweetRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create sweet indexes")
	}

	log.Info().Int("count", sweetCount).Msg("creating sweets")
	sweetService := service.NewSweetService(sweetRepo, log)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	for i := 0; i < sweetCount; i++ {
		adj := adjectives[rng.Intn(len(adjectives))]
		typ := types[rng.Intn(len(types))]

		input := ports.CreateSweetInput{
			Name:        fmt.Sprintf("%s %s %d", adj, typ, i+1),
			Category:    categories[rng.Intn(len(categories))],
			Price:       float64(rng.Intn(2000)+100) / 100, // 1.00 to 20.99
			Quantity:    float64(rng.Intn(100) + 1),
			Description: fmt.Sprintf("A %s %s that will satisfy your cravings.", strings.ToLower(adj), strings.ToLower(typ)),
		}

		if _, err := sweetService.Create(ctx, input); err != nil {
			log.Fatal().Err(err).Str("name", input.Name).Msg("failed to create sweet")
		}
	}

	log.Info().
		Str("admin", "admin@sweetshop.com / password123").
		Str("customer", "demo@sweetshop.com / password123").
		Msg("database seeded successfully")
}
