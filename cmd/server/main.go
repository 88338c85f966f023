package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"distribution-planner/internal/api"
	"distribution-planner/internal/app"
	"distribution-planner/internal/config"
)

// main is the application composition root.
// It wires concrete adapters (SQLite or Postgres, optional Redis) behind ports and starts the HTTP server.
func main() {
	if err := config.Load(); err != nil {
		log.Fatal(err)
	}
	if err := run(context.Background()); err != nil {
		log.Fatal(err)
	}
}

// run returns instead of exiting so the stores are always closed.
func run(ctx context.Context) error {
	port := config.Get("PORT", "8080")

	stores, err := app.OpenStores(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := stores.Close(); err != nil {
			log.Printf("close stores: %v", err)
		}
	}()

	planner, err := stores.NewPlanner()
	if err != nil {
		return err
	}

	router := api.NewRouter(planner, stores.Solutions, api.Options{
		RateLimit: config.GetFloat("RATE_LIMIT_RPS", 20),
		RateBurst: config.GetInt("RATE_LIMIT_BURST", 40),
	})

	log.Printf("Server listening addr=:%s driver=%s mode=%s", port, stores.Driver, planner.Mode)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      config.GetDuration("WRITE_TIMEOUT", 60*time.Second),
		IdleTimeout:       60 * time.Second,
	}
	return srv.ListenAndServe()
}
