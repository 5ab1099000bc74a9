package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Tomlord1122/todo-app/internal/config"
	"github.com/Tomlord1122/todo-app/internal/database"
	"github.com/Tomlord1122/todo-app/internal/service"
)

// HealthChecker reports the state of the task store.
type HealthChecker interface {
	Health(ctx context.Context) database.HealthStats
}

type Server struct {
	port           int
	allowedOrigins []string
	taskService    service.TaskService
	health         HealthChecker
}

func NewServer(cfg config.API, taskService service.TaskService, health HealthChecker) *http.Server {
	appServer := &Server{
		port:           cfg.Port,
		allowedOrigins: cfg.AllowedOrigins,
		taskService:    taskService,
		health:         health,
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", appServer.port),
		Handler:      appServer.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return server
}
