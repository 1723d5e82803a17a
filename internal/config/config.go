package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress       string
	DatabaseURI      string
	RedisAddress     string
	AuthSecret       string
	SessionTTL       time.Duration
	FilterCategories []int
	SelectCategories []int
	HighlightTTL     time.Duration
	ShutdownTimeout  time.Duration
}

const (
	defaultRunAddress      = ":8080"
	defaultRedisAddress    = "localhost:6379"
	defaultAuthSecret      = "change-me-in-production"
	defaultSessionTTL      = 24 * time.Hour
	defaultHighlightTTL    = 30 * time.Second
	defaultShutdownTimeout = 10 * time.Second
)

var (
	defaultFilterCategories = []int{1, 2}
	defaultSelectCategories = []int{1}
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:       getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:      getString(lookup, "DATABASE_URI", ""),
		RedisAddress:     getString(lookup, "REDIS_ADDRESS", defaultRedisAddress),
		AuthSecret:       getString(lookup, "AUTH_SECRET", defaultAuthSecret),
		SessionTTL:       getDuration(lookup, "SESSION_TTL", defaultSessionTTL),
		HighlightTTL:     getDuration(lookup, "HIGHLIGHT_TTL", defaultHighlightTTL),
		ShutdownTimeout:  getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		FilterCategories: getIntList(lookup, "STATUS_FILTER_CATEGORIES", defaultFilterCategories),
		SelectCategories: getIntList(lookup, "STATUS_SELECT_CATEGORIES", defaultSelectCategories),
	}

	fs := flag.NewFlagSet("painel-pedidos", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		sessionTTLStr      = cfg.SessionTTL.String()
		highlightTTLStr    = cfg.HighlightTTL.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
		filterCatsStr      = joinInts(cfg.FilterCategories)
		selectCatsStr      = joinInts(cfg.SelectCategories)
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.RedisAddress, "r", cfg.RedisAddress, "Redis address for highlight markers")
	fs.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "Secret for signing session tokens")
	fs.StringVar(&sessionTTLStr, "session-ttl", sessionTTLStr, "Session token lifetime")
	fs.StringVar(&highlightTTLStr, "highlight-ttl", highlightTTLStr, "New-order highlight lifetime")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.StringVar(&filterCatsStr, "filter-categories", filterCatsStr, "Status catalog categories shown in the filter bar")
	fs.StringVar(&selectCatsStr, "select-categories", selectCatsStr, "Status catalog categories offered by the update selector")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.SessionTTL, err = time.ParseDuration(sessionTTLStr); err != nil {
		return nil, fmt.Errorf("invalid session ttl: %w", err)
	}

	if cfg.HighlightTTL, err = time.ParseDuration(highlightTTLStr); err != nil {
		return nil, fmt.Errorf("invalid highlight ttl: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.FilterCategories, err = parseIntList(filterCatsStr); err != nil {
		return nil, fmt.Errorf("invalid filter categories: %w", err)
	}

	if cfg.SelectCategories, err = parseIntList(selectCatsStr); err != nil {
		return nil, fmt.Errorf("invalid select categories: %w", err)
	}

	if secretFile, ok := lookup("AUTH_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read auth secret file: %w", err)
		}
		cfg.AuthSecret = string(content)
	}

	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = defaultSessionTTL
	}

	if cfg.HighlightTTL <= 0 {
		cfg.HighlightTTL = defaultHighlightTTL
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if len(cfg.FilterCategories) == 0 {
		cfg.FilterCategories = defaultFilterCategories
	}

	if len(cfg.SelectCategories) == 0 {
		cfg.SelectCategories = defaultSelectCategories
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getIntList(lookup envLookup, key string, def []int) []int {
	if v, ok := lookup(key); ok && v != "" {
		if list, err := parseIntList(v); err == nil && len(list) > 0 {
			return list
		}
	}
	return def
}

func parseIntList(raw string) ([]int, error) {
	var result []int
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, err
		}
		result = append(result, n)
	}
	return result, nil
}

func joinInts(values []int) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, strconv.Itoa(v))
	}
	return strings.Join(parts, ",")
}
