package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Tomlord1122/todo-app/internal/client"
	"github.com/Tomlord1122/todo-app/internal/config"
	"github.com/Tomlord1122/todo-app/internal/ui"
)

func main() {
	cfg := config.LoadUI()

	api := client.New(cfg.APIURL, cfg.RequestTimeout)
	board := ui.NewBoard(api, cfg.WriteStrategy == config.WriteStrategyRefetch)

	// Initial load; on failure the board starts empty and /?reload=1 retries.
	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	if err := board.Load(ctx); err != nil {
		log.Printf("Initial load from %s failed: %v", cfg.APIURL, err)
	}
	cancel()

	webServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      ui.NewHandler(board),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Starting web client on %s (API %s, %s writes)", webServer.Addr, cfg.APIURL, cfg.WriteStrategy)
		if err := webServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server ListenAndServe error: %v", err)
		}
	}()

	<-sigCtx.Done()
	log.Println("Shutting down web client")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := webServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown with error: %v", err)
	}
}
