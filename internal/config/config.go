package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ghadfield32/hs-bball-players-mcp-sub003/internal/platform/logging"
)

const (
	EnvDev  = "dev"
	EnvProd = "prod"
)

// Config stores runtime configuration for one pipeline invocation. It is
// built once at startup and read-only afterwards; nothing in the pipeline
// mutates it.
type Config struct {
	AppEnv      string
	ServiceName string
	LogLevel    logging.Level

	// MaxWorkers bounds the per-source worker pool.
	MaxWorkers int

	// Validation tunables. Bracket slack and the season date window are
	// empirically chosen and differ across sports, so they stay configurable
	// rather than hard constants.
	MaxPlausibleScore int
	BracketSlack      int
	WindowStartMonth  int
	WindowStartDay    int
	WindowEndMonth    int
	WindowEndDay      int
	HealthyThreshold  float64
	ErrorPenalty      float64
	WarningPenalty    float64
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	maxWorkers, err := getEnvAsInt("PIPELINE_MAX_WORKERS", 8)
	if err != nil {
		return Config{}, fmt.Errorf("parse PIPELINE_MAX_WORKERS: %w", err)
	}
	if maxWorkers <= 0 {
		return Config{}, fmt.Errorf("PIPELINE_MAX_WORKERS must be > 0")
	}

	maxPlausibleScore, err := getEnvAsInt("VALIDATION_MAX_PLAUSIBLE_SCORE", 200)
	if err != nil {
		return Config{}, fmt.Errorf("parse VALIDATION_MAX_PLAUSIBLE_SCORE: %w", err)
	}
	bracketSlack, err := getEnvAsInt("VALIDATION_BRACKET_SLACK", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse VALIDATION_BRACKET_SLACK: %w", err)
	}
	if bracketSlack < 0 {
		return Config{}, fmt.Errorf("VALIDATION_BRACKET_SLACK must be >= 0")
	}

	windowStartMonth, err := getEnvAsInt("VALIDATION_WINDOW_START_MONTH", 11)
	if err != nil {
		return Config{}, fmt.Errorf("parse VALIDATION_WINDOW_START_MONTH: %w", err)
	}
	windowStartDay, err := getEnvAsInt("VALIDATION_WINDOW_START_DAY", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse VALIDATION_WINDOW_START_DAY: %w", err)
	}
	windowEndMonth, err := getEnvAsInt("VALIDATION_WINDOW_END_MONTH", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse VALIDATION_WINDOW_END_MONTH: %w", err)
	}
	windowEndDay, err := getEnvAsInt("VALIDATION_WINDOW_END_DAY", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse VALIDATION_WINDOW_END_DAY: %w", err)
	}
	for _, month := range []int{windowStartMonth, windowEndMonth} {
		if month < 1 || month > 12 {
			return Config{}, fmt.Errorf("validation window month out of range: %d", month)
		}
	}

	healthyThreshold, err := getEnvAsFloat("VALIDATION_HEALTHY_THRESHOLD", 0.70)
	if err != nil {
		return Config{}, fmt.Errorf("parse VALIDATION_HEALTHY_THRESHOLD: %w", err)
	}
	errorPenalty, err := getEnvAsFloat("VALIDATION_ERROR_PENALTY", 0.10)
	if err != nil {
		return Config{}, fmt.Errorf("parse VALIDATION_ERROR_PENALTY: %w", err)
	}
	warningPenalty, err := getEnvAsFloat("VALIDATION_WARNING_PENALTY", 0.05)
	if err != nil {
		return Config{}, fmt.Errorf("parse VALIDATION_WARNING_PENALTY: %w", err)
	}

	return Config{
		AppEnv:            appEnv,
		ServiceName:       getEnv("SERVICE_NAME", "hs-bball-pipeline"),
		LogLevel:          parseLogLevel(getEnv("LOG_LEVEL", "info")),
		MaxWorkers:        maxWorkers,
		MaxPlausibleScore: maxPlausibleScore,
		BracketSlack:      bracketSlack,
		WindowStartMonth:  windowStartMonth,
		WindowStartDay:    windowStartDay,
		WindowEndMonth:    windowEndMonth,
		WindowEndDay:      windowEndDay,
		HealthyThreshold:  healthyThreshold,
		ErrorPenalty:      errorPenalty,
		WarningPenalty:    warningPenalty,
	}, nil
}

func parseAppEnv(v string) (string, error) {
	env := strings.ToLower(strings.TrimSpace(v))
	switch env {
	case EnvDev, EnvProd:
		return env, nil
	default:
		return "", fmt.Errorf("unsupported APP_ENV %q", v)
	}
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}
	return strconv.Atoi(value)
}

func getEnvAsFloat(key string, fallback float64) (float64, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}
	return strconv.ParseFloat(value, 64)
}
