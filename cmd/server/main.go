package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/community-events/app/internal/config"
	"github.com/community-events/app/internal/database"
	"github.com/community-events/app/internal/events"
	"github.com/community-events/app/internal/gamification"
	"github.com/community-events/app/internal/handlers"
	"github.com/community-events/app/internal/leaderboard"
	"github.com/community-events/app/internal/seed"
)

func main() {
	// Missing .env is fine; the environment wins either way.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "community-events",
		Usage: "community events platform with RSVPs, badges, and leaderboards",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP server",
				Action: runServe,
			},
			{
				Name:   "seed",
				Usage:  "reset the database and load sample data",
				Action: runSeed,
			},
		},
		DefaultCommand: "serve",
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func setupLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)
	return logger
}

func runServe(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := setupLogger(cfg.LogLevel)

	db, err := database.InitDB(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	engine := gamification.NewEngine()
	svc := events.NewService(db, engine)
	agg := leaderboard.NewAggregator(db)

	mux := http.NewServeMux()

	mux.HandleFunc("POST /register", handlers.Register(db))
	mux.HandleFunc("POST /login", handlers.Login(db))
	mux.HandleFunc("POST /logout", handlers.Logout)
	mux.HandleFunc("GET /me", handlers.RequireAuth(db, handlers.Me))

	mux.HandleFunc("GET /events", handlers.ListEvents(svc))
	mux.HandleFunc("POST /events", handlers.RequireAuth(db, handlers.CreateEvent(svc)))
	mux.HandleFunc("GET /events/{id}", handlers.GetEvent(svc))
	mux.HandleFunc("POST /events/{id}/rsvp", handlers.RequireAuth(db, handlers.SubmitRSVP(svc)))
	mux.HandleFunc("DELETE /events/{id}/rsvp", handlers.RequireAuth(db, handlers.CancelRSVP(svc)))
	mux.HandleFunc("GET /events/{id}/calendar.ics", handlers.EventICS(svc))
	mux.HandleFunc("GET /events/{id}/qrcode", handlers.EventQRCode(cfg.BaseURL, svc))
	mux.HandleFunc("GET /users/{id}/events", handlers.HostedEvents(svc))

	mux.HandleFunc("GET /admin/events/pending", handlers.RequireAuth(db, handlers.PendingEvents(svc)))
	mux.HandleFunc("POST /events/{id}/approve", handlers.RequireAuth(db, handlers.ApproveEvent(svc)))
	mux.HandleFunc("POST /events/{id}/reject", handlers.RequireAuth(db, handlers.RejectEvent(svc)))
	mux.HandleFunc("POST /events/{id}/cancel", handlers.RequireAuth(db, handlers.CancelEvent(svc)))

	mux.HandleFunc("GET /leaderboard/{kind}", handlers.Leaderboard(agg))
	mux.HandleFunc("GET /leaderboard/user/{id}", handlers.UserRanking(agg))

	logger.Info("server listening", "port", cfg.Port, "db", cfg.DBPath)
	return http.ListenAndServe(":"+cfg.Port, handlers.LogRequests(logger, mux))
}

func runSeed(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := setupLogger(cfg.LogLevel)

	db, err := database.InitDB(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := seed.Run(db, logger); err != nil {
		return err
	}
	logger.Info("seed complete", "db", cfg.DBPath)
	return nil
}
