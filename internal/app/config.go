package app

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config stores runtime configuration loaded from environment variables.
type Config struct {
	AppEnv   string
	HTTPAddr string

	DBHost     string
	DBPort     int
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifeMins int

	LeaderboardDefaultLimit int
}

// LoadConfig reads configuration from the environment, consulting a .env file
// when present. The five connection parameters are required; a missing one is
// a startup failure, never a default.
func LoadConfig() (Config, error) {
	// Ignore error so the process still starts when .env is absent.
	_ = godotenv.Load()

	cfg := Config{
		AppEnv:                  envOrDefault("APP_ENV", "development"),
		HTTPAddr:                envOrDefault("HTTP_ADDR", ":8080"),
		DBHost:                  os.Getenv("DB_HOST"),
		DBName:                  os.Getenv("DB_NAME"),
		DBUser:                  os.Getenv("DB_USER"),
		DBPassword:              os.Getenv("DB_PASSWORD"),
		DBSSLMode:               envOrDefault("DB_SSLMODE", "disable"),
		DBMaxOpenConns:          intOrDefault("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns:          intOrDefault("DB_MAX_IDLE_CONNS", 25),
		DBConnMaxLifeMins:       intOrDefault("DB_CONN_MAX_LIFETIME_MINUTES", 30),
		LeaderboardDefaultLimit: intOrDefault("LEADERBOARD_DEFAULT_LIMIT", 20),
	}

	var missing []string
	for _, p := range []struct {
		key string
		val string
	}{
		{"DB_HOST", cfg.DBHost},
		{"DB_PORT", os.Getenv("DB_PORT")},
		{"DB_NAME", cfg.DBName},
		{"DB_USER", cfg.DBUser},
		{"DB_PASSWORD", cfg.DBPassword},
	} {
		if strings.TrimSpace(p.val) == "" {
			missing = append(missing, p.key)
		}
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	port, err := strconv.Atoi(strings.TrimSpace(os.Getenv("DB_PORT")))
	if err != nil || port <= 0 {
		return Config{}, fmt.Errorf("invalid DB_PORT value: %q", os.Getenv("DB_PORT"))
	}
	cfg.DBPort = port

	return cfg, nil
}

// DSN assembles a postgres connection URL from the individual parameters.
func (c Config) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.DBUser, c.DBPassword),
		Host:   fmt.Sprintf("%s:%d", c.DBHost, c.DBPort),
		Path:   c.DBName,
	}
	q := url.Values{}
	q.Set("sslmode", c.DBSSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

func envOrDefault(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func intOrDefault(key string, fallback int) int {
	n, _ := strconv.Atoi(os.Getenv(key))
	if n <= 0 {
		return fallback
	}
	return n
}
