package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/seatswap/seatswap/internal/config"
	"github.com/seatswap/seatswap/internal/database"
	"github.com/seatswap/seatswap/internal/handler"
	"github.com/seatswap/seatswap/internal/repository"
	"github.com/seatswap/seatswap/internal/router"
)

func main() {
	// Absent .env is fine; real env vars win either way.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer func() { _ = db.Close() }()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, browse cache disabled")
	}
	cacheCfg := config.LoadCacheConfig()

	users := repository.NewUserRepo(db)
	profiles := repository.NewProfileRepo(db)
	listings := repository.NewListingRepo(db)
	messages := repository.NewMessageRepo(db)
	reviews := repository.NewReviewRepo(db)
	proofs := repository.NewProofRepo(db)
	tokens := repository.NewTokenRepo(db)

	authH := handler.NewAuthHandler(cfg, users, tokens)
	userH := handler.NewUserHandler(users, profiles, reviews, proofs, listings)
	listingH := handler.NewListingHandler(listings)
	messageH := handler.NewMessageHandler(messages, users, listings)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterPublic(e, userH, listingH, cacheCfg, rdb)
	router.RegisterProtected(e, userH, listingH, messageH, cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
