package config

import (
	"fmt"
	"strconv"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every problem found in one pass.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, v := range e {
		msgs[i] = v.Error()
	}
	return strings.Join(msgs, "\n")
}

var (
	storageDrivers  = map[string]bool{"memory": true, "redis": true, "sql": true}
	databaseDrivers = map[string]bool{"sqlite": true, "postgres": true}
	backends        = map[string]bool{"groq": true, "gemini": true, "openai": true, "A": true, "B": true, "C": true}
)

// ValidateConfig checks the loaded configuration and returns a
// ValidationErrors value listing every problem, or nil.
func ValidateConfig(cfg *Config) error {
	var errs ValidationErrors

	if port, err := strconv.Atoi(cfg.Server.Port); err != nil || port <= 0 || port > 65535 {
		errs = append(errs, ValidationError{Field: "server.port", Message: fmt.Sprintf("invalid port %q", cfg.Server.Port)})
	}

	if !storageDrivers[cfg.Storage.Driver] {
		errs = append(errs, ValidationError{Field: "storage.driver", Message: fmt.Sprintf("unknown driver %q", cfg.Storage.Driver)})
	}

	if cfg.Storage.Driver == "sql" && !databaseDrivers[cfg.Database.Driver] {
		errs = append(errs, ValidationError{Field: "database.driver", Message: fmt.Sprintf("unknown driver %q", cfg.Database.Driver)})
	}

	if cfg.Storage.Driver == "sql" && cfg.Database.Driver == "postgres" && cfg.Database.Password == "" {
		errs = append(errs, ValidationError{Field: "database.password", Message: "db_password secret is required for postgres"})
	}

	if !backends[cfg.AI.DefaultBackend] {
		errs = append(errs, ValidationError{Field: "ai.default_backend", Message: fmt.Sprintf("unknown backend %q", cfg.AI.DefaultBackend)})
	}

	if cfg.JWTSecret == "" {
		errs = append(errs, ValidationError{Field: "jwt_secret", Message: "JWT_SECRET or the jwt_secret secret is required"})
	}

	if cfg.RateLimit.Enabled && cfg.RateLimit.Limit <= 0 {
		errs = append(errs, ValidationError{Field: "rate_limit.limit", Message: "must be positive when rate limiting is enabled"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
