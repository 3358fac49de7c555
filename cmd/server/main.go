package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-booking/internal/config"
	"github.com/iliyamo/cinema-booking/internal/database"
	"github.com/iliyamo/cinema-booking/internal/handler"
	"github.com/iliyamo/cinema-booking/internal/middleware"
	"github.com/iliyamo/cinema-booking/internal/queue"
	"github.com/iliyamo/cinema-booking/internal/repository"
	"github.com/iliyamo/cinema-booking/internal/router"
	"github.com/iliyamo/cinema-booking/internal/session"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Sessions live in Redis; without it nobody can log in, so refuse to start.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Fatal("redis: connection failed, sessions unavailable")
	}
	sessions := session.NewStore(rdb)

	clients := repository.NewClientRepo(db)
	movies := repository.NewMovieRepo(db)
	genres := repository.NewGenreRepo(db)
	halls := repository.NewHallRepo(db)
	showings := repository.NewShowingRepo(db)
	schedules := repository.NewScheduleRepo(db)
	tickets := repository.NewTicketRepo(db)

	auth := handler.NewAuthHandler(cfg, clients, sessions)
	catalog := handler.NewCatalogHandler(movies, genres, halls, showings)
	schedule := handler.NewScheduleHandler(schedules, halls, showings, movies)
	ticket := handler.NewTicketHandler(tickets, schedules, halls, movies, showings)

	sess := middleware.Session(sessions)
	admin := middleware.RequireAdmin()
	limit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	e := echo.New()
	e.HideBanner = true
	router.RegisterRoutes(e)
	router.RegisterAuth(e, auth, sess, limit)
	router.RegisterCatalog(e, catalog, sess, admin, cache)
	router.RegisterSchedules(e, schedule, sess, admin, cache)
	router.RegisterTickets(e, ticket, sess)

	go queue.StartTicketConsumer()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
