package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"
)

const (
	RepositoryGorm   = "gorm"
	RepositorySQL    = "sql"
	RepositoryMemory = "memory"

	WriteStrategyMerge   = "merge"
	WriteStrategyRefetch = "refetch"
)

// Database holds the connection settings of the task store.
type Database struct {
	Host        string
	Port        string
	Username    string
	Password    string
	Name        string
	SSLMode     string
	AutoMigrate bool
	LogLevel    string
}

// DSN builds a keyword/value connection string understood by pgx.
func (d Database) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		d.Host, d.Username, d.Password, d.Name, d.Port, d.SSLMode)
}

// API is the configuration of cmd/api.
type API struct {
	Port            int
	Repository      string
	AllowedOrigins  []string
	ShutdownTimeout time.Duration
	Database        Database
}

// UI is the configuration of cmd/web.
type UI struct {
	Port            int
	APIURL          string
	WriteStrategy   string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func LoadAPI() API {
	return API{
		Port:            intEnv("PORT", 5000),
		Repository:      oneOf("TASK_REPOSITORY", RepositoryGorm, RepositorySQL, RepositoryMemory),
		AllowedOrigins:  listEnv("CORS_ALLOWED_ORIGINS", []string{"https://*", "http://*"}),
		ShutdownTimeout: durationEnv("SHUTDOWN_TIMEOUT", 5*time.Second),
		Database: Database{
			Host:        stringEnv("BLUEPRINT_DB_HOST", "localhost"),
			Port:        stringEnv("BLUEPRINT_DB_PORT", "5432"),
			Username:    stringEnv("BLUEPRINT_DB_USERNAME", "postgres"),
			Password:    stringEnv("BLUEPRINT_DB_PASSWORD", "password"),
			Name:        stringEnv("BLUEPRINT_DB_DATABASE", "todo_db"),
			SSLMode:     stringEnv("BLUEPRINT_DB_SSLMODE", "disable"),
			AutoMigrate: boolEnv("BLUEPRINT_DB_AUTOMIGRATE", true),
			LogLevel:    stringEnv("BLUEPRINT_DB_LOG_LEVEL", "warn"),
		},
	}
}

func LoadUI() UI {
	return UI{
		Port:            intEnv("UI_PORT", 3000),
		APIURL:          strings.TrimRight(stringEnv("TODO_API_URL", "http://localhost:5000"), "/"),
		WriteStrategy:   oneOf("UI_WRITE_STRATEGY", WriteStrategyMerge, WriteStrategyRefetch),
		RequestTimeout:  durationEnv("UI_REQUEST_TIMEOUT", 10*time.Second),
		ShutdownTimeout: durationEnv("SHUTDOWN_TIMEOUT", 5*time.Second),
	}
}

func stringEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func intEnv(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Warning: Invalid %s environment variable '%s'. Using default %d. Error: %v", key, v, def, err)
		return def
	}
	return n
}

func boolEnv(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("Warning: Invalid %s environment variable '%s'. Using default %t. Error: %v", key, v, def, err)
		return def
	}
	return b
}

func durationEnv(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("Warning: Invalid %s environment variable '%s'. Using default %s. Error: %v", key, v, def, err)
		return def
	}
	return d
}

func listEnv(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// oneOf returns the value of key if it is one of allowed, otherwise the first allowed value.
func oneOf(key string, allowed ...string) string {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if v == "" {
		return allowed[0]
	}
	for _, a := range allowed {
		if v == a {
			return v
		}
	}
	log.Printf("Warning: Invalid %s environment variable '%s'. Using default %s.", key, v, allowed[0])
	return allowed[0]
}
