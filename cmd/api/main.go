package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Tomlord1122/todo-app/internal/config"
	"github.com/Tomlord1122/todo-app/internal/database"
	"github.com/Tomlord1122/todo-app/internal/repository"
	"github.com/Tomlord1122/todo-app/internal/server"
	"github.com/Tomlord1122/todo-app/internal/service"
)

func gracefulShutdown(apiServer *http.Server, pool io.Closer, timeout time.Duration, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	log.Println("Shutting down gracefully, press Ctrl+C again to force")
	stop() // Allow Ctrl+C to force shutdown

	ctxTimeout, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := apiServer.Shutdown(ctxTimeout); err != nil {
		log.Printf("Server forced to shutdown with error: %v", err)
	}

	if pool != nil {
		log.Println("Closing database connection pool...")
		if err := pool.Close(); err != nil {
			log.Printf("Error closing database connection pool: %v", err)
		} else {
			log.Println("Database connection pool closed.")
		}
	}

	log.Println("Server exiting")
	done <- true
}

func main() {
	cfg := config.LoadAPI()

	var (
		taskRepo repository.TaskRepository
		health   server.HealthChecker
		pool     io.Closer
	)

	if cfg.Repository == config.RepositoryMemory {
		log.Println("Using in-memory task repository; tasks are lost on exit.")
		memRepo := repository.NewMemoryTaskRepository()
		taskRepo, health = memRepo, memRepo
	} else {
		dbService, err := database.New(cfg.Database)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		health, pool = dbService, dbService

		if cfg.Database.AutoMigrate {
			log.Println("Running database auto-migration...")
			if err := database.Migrate(dbService.GetDB()); err != nil {
				log.Fatalf("Failed to auto-migrate database: %v", err)
			}
			log.Println("Database auto-migration complete.")
		}

		if cfg.Repository == config.RepositorySQL {
			taskRepo = repository.NewSQLTaskRepository(dbService.SQL())
		} else {
			taskRepo = repository.NewGormTaskRepository(dbService.GetDB())
		}
	}
	log.Printf("Task repository: %s", cfg.Repository)

	taskService := service.NewTaskService(taskRepo)
	apiServer := server.NewServer(cfg, taskService, health)

	done := make(chan bool, 1)
	go gracefulShutdown(apiServer, pool, cfg.ShutdownTimeout, done)

	log.Printf("Starting server on %s", apiServer.Addr)
	err := apiServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("HTTP server ListenAndServe error: %v", err)
	}

	<-done
	log.Println("Graceful shutdown complete.")
}
