package config

import (
	"fmt"
	"net/url"
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

// requirements lists the settings that must be non-empty per environment.
var requirements = map[Environment][]string{
	Development: {},
	Test:        {},
	CI:          {"JWTSecret"},
	Production:  {"JWTSecret", "DBPassword", "LLM.APIKey"},
}

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// ValidateConfig checks if the configuration meets the requirements for its environment
func ValidateConfig(cfg *Config) error {
	var errs []ValidationError

	for _, field := range requirements[cfg.Env] {
		if requiredValue(cfg, field) == "" {
			errs = append(errs, ValidationError{Field: field, Message: "is required in " + string(cfg.Env)})
		}
	}

	if port, err := strconv.Atoi(cfg.ServerPort); err != nil || port <= 0 || port > 65535 {
		errs = append(errs, ValidationError{Field: "ServerPort", Message: fmt.Sprintf("invalid port %q", cfg.ServerPort)})
	}
	switch cfg.DBDriver {
	case DriverPostgres:
	case DriverSQLite:
		if cfg.Env == Production {
			errs = append(errs, ValidationError{Field: "DBDriver", Message: "sqlite is not allowed in production"})
		}
	default:
		errs = append(errs, ValidationError{Field: "DBDriver", Message: fmt.Sprintf("unsupported driver %q", cfg.DBDriver)})
	}
	if u, err := url.Parse(cfg.LLM.APIURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		errs = append(errs, ValidationError{Field: "LLM.APIURL", Message: fmt.Sprintf("invalid url %q", cfg.LLM.APIURL)})
	}
	if !logLevels[strings.ToLower(cfg.LogLevel)] {
		errs = append(errs, ValidationError{Field: "LogLevel", Message: fmt.Sprintf("unknown level %q", cfg.LogLevel)})
	}

	if len(errs) == 0 {
		return nil
	}
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return fmt.Errorf("configuration validation failed:\n%s", strings.Join(msgs, "\n"))
}

func requiredValue(cfg *Config, field string) string {
	switch field {
	case "JWTSecret":
		return cfg.JWTSecret
	case "DBPassword":
		if cfg.DBDriver == DriverSQLite {
			return "n/a"
		}
		return cfg.DBPassword
	case "LLM.APIKey":
		return cfg.LLM.APIKey
	}
	return ""
}
