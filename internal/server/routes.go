package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Tomlord1122/todo-app/internal/database"
	"github.com/Tomlord1122/todo-app/internal/service"
)

const apiVersion = "v1"

func (s *Server) RegisterRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", s.indexHandler)

	// /api/v1 is canonical; /api is kept for existing clients.
	r.Route("/api/"+apiVersion, s.apiRoutes)
	r.Route("/api", s.apiRoutes)

	return r
}

func (s *Server) apiRoutes(r chi.Router) {
	r.Get("/health", s.healthHandler)

	r.Route("/todos", func(r chi.Router) {
		r.Get("/", s.listTasksHandler)
		r.Post("/", s.createTaskHandler)
		r.Get("/{id}", s.getTaskHandler)
		r.Put("/{id}", s.updateTaskHandler)
		r.Patch("/{id}", s.updateTaskHandler)
		r.Delete("/{id}", s.deleteTaskHandler)
	})
}

func (s *Server) indexHandler(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Task API", "version": apiVersion})
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	stats := s.health.Health(r.Context())
	if stats.Status != database.StatusOK {
		respondWithJSON(w, http.StatusInternalServerError, stats)
		return
	}
	respondWithJSON(w, http.StatusOK, stats)
}

func (s *Server) listTasksHandler(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.taskService.ListTasks(r.Context())
	if err != nil {
		log.Printf("Error calling ListTasks service: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	respondWithJSON(w, http.StatusOK, tasks)
}

func (s *Server) getTaskHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(w, r)
	if !ok {
		return
	}

	task, err := s.taskService.GetTask(r.Context(), id)
	if err != nil {
		s.respondWithServiceError(w, "GetTask", err)
		return
	}

	respondWithJSON(w, http.StatusOK, task)
}

func (s *Server) createTaskHandler(w http.ResponseWriter, r *http.Request) {
	var req service.CreateTaskRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	task, err := s.taskService.CreateTask(r.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrTitleRequired) {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("Error calling CreateTask service: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	respondWithJSON(w, http.StatusCreated, task)
}

func (s *Server) updateTaskHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(w, r)
	if !ok {
		return
	}

	var req service.UpdateTaskRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	task, err := s.taskService.UpdateTask(r.Context(), id, req)
	if err != nil {
		s.respondWithServiceError(w, "UpdateTask", err)
		return
	}

	respondWithJSON(w, http.StatusOK, task)
}

func (s *Server) deleteTaskHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(w, r)
	if !ok {
		return
	}

	if err := s.taskService.DeleteTask(r.Context(), id); err != nil {
		s.respondWithServiceError(w, "DeleteTask", err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Task deleted"})
}

func (s *Server) respondWithServiceError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, service.ErrTaskNotFound) {
		respondWithError(w, http.StatusNotFound, "Task not found")
		return
	}
	log.Printf("Error calling %s service: %v", op, err)
	respondWithError(w, http.StatusInternalServerError, "Server error")
}

func taskID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	idStr := chi.URLParam(r, "id")
	// ids are bigint keys; a well-formed id past that range names no task
	id, err := strconv.ParseUint(idStr, 10, 63)
	if errors.Is(err, strconv.ErrRange) {
		respondWithError(w, http.StatusNotFound, "Task not found")
		return 0, false
	}
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid task ID provided")
		return 0, false
	}
	return uint(id), true
}

// decodeJSON reads a single JSON object from the request body into dst and
// answers 400 itself when the body cannot be used.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return true
	}

	var syntaxError *json.SyntaxError
	var unmarshalTypeError *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxError):
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("Request body contains badly-formed JSON (at position %d)", syntaxError.Offset))
	case errors.Is(err, io.ErrUnexpectedEOF):
		respondWithError(w, http.StatusBadRequest, "Request body contains badly-formed JSON")
	case errors.As(err, &unmarshalTypeError):
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("Request body contains an invalid value for the %q field (at position %d)", unmarshalTypeError.Field, unmarshalTypeError.Offset))
	case errors.Is(err, io.EOF):
		respondWithError(w, http.StatusBadRequest, "Request body must not be empty")
	default:
		log.Printf("Error decoding request body: %v", err)
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
	}
	return false
}

// respondWithError writes message as plain text.
func respondWithError(w http.ResponseWriter, code int, message string) {
	http.Error(w, message, code)
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Error marshaling JSON response: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Internal server error preparing response")
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}
