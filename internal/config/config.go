package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/kozaktomas/namevibe/internal/constants"
)

type Config struct {
	Database  DatabaseConfig
	Dataset   DatasetConfig
	Vision    VisionConfig
	OpenAI    OpenAIConfig
	Gemini    GeminiConfig
	Admission AdmissionConfig
	Debug     DebugConfig
	Web       WebConfig
	Log       LogConfig
	Timeouts  TimeoutConfig
}

type DatabaseConfig struct {
	URL          string // PostgreSQL connection URL
	MaxOpenConns int    // Maximum open connections (default 25)
	MaxIdleConns int    // Maximum idle connections (default 5)
}

// DatasetConfig selects where names and companions are read from.
// Rate events always live in PostgreSQL.
type DatasetConfig struct {
	MySQLDSN string // MariaDB/MySQL DSN (optional, e.g. namevibe:secret@tcp(mariadb:3306)/namevibe)
}

type VisionConfig struct {
	Provider string // "gemini" (default) or "openai"
}

type OpenAIConfig struct {
	Token string
}

type GeminiConfig struct {
	APIKey string
}

type AdmissionConfig struct {
	Limit  int           // admitted calls per window (default 5)
	Window time.Duration // sliding window (default 60s)
}

// DebugConfig controls the override that returns a fixed name without classification.
// The override only applies when Enabled is set, the request's age marker equals Marker
// and, if Token is non-empty, the request carries a matching X-Debug-Token header.
type DebugConfig struct {
	Enabled    bool
	Marker     string // defaults to "999"
	Token      string
	Identifier string // exact identifier of the fixed name record
}

type WebConfig struct {
	Host           string
	Port           int
	AllowedOrigins []string
	IPRateLimit    int // coarse per-IP requests per minute across all routes, 0 disables
}

type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json or console
}

type TimeoutConfig struct {
	Classify time.Duration // per classification call (default 20s)
	Store    time.Duration // per store query (default 5s)
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

// envNonNegativeInt is envInt that also accepts zero.
func envNonNegativeInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 0 {
		return n
	}
	return defaultVal
}

// envDuration parses a Go duration ("20s", "1m"). Non-positive or invalid values use the default.
func envDuration(key string, defaultVal time.Duration) time.Duration {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if d, err := time.ParseDuration(s); err == nil && d > 0 {
		return d
	}
	return defaultVal
}

func envBool(key string) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && b
}

func envString(key, defaultVal string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return defaultVal
}

func envList(key string) []string {
	var items []string
	for item := range strings.SplitSeq(os.Getenv(key), ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

func Load() *Config {
	return &Config{
		Database: DatabaseConfig{
			URL:          os.Getenv("DATABASE_URL"),
			MaxOpenConns: envInt("DATABASE_MAX_OPEN_CONNS", 25),
			MaxIdleConns: envInt("DATABASE_MAX_IDLE_CONNS", 5),
		},
		Dataset: DatasetConfig{
			MySQLDSN: os.Getenv("DATASET_MYSQL_DSN"),
		},
		Vision: VisionConfig{
			Provider: strings.ToLower(envString("VISION_PROVIDER", "gemini")),
		},
		OpenAI: OpenAIConfig{
			Token: os.Getenv("OPENAI_TOKEN"),
		},
		Gemini: GeminiConfig{
			APIKey: os.Getenv("GEMINI_API_KEY"),
		},
		Admission: AdmissionConfig{
			Limit:  envInt("ADMISSION_LIMIT", constants.DefaultAdmissionLimit),
			Window: envDuration("ADMISSION_WINDOW", constants.DefaultAdmissionWindow),
		},
		Debug: DebugConfig{
			Enabled:    envBool("DEBUG_OVERRIDE_ENABLED"),
			Marker:     envString("DEBUG_OVERRIDE_MARKER", constants.DefaultDebugMarker),
			Token:      os.Getenv("DEBUG_OVERRIDE_TOKEN"),
			Identifier: os.Getenv("DEBUG_NAME_IDENTIFIER"),
		},
		Web: WebConfig{
			Host:           envString("WEB_HOST", "0.0.0.0"),
			Port:           envInt("WEB_PORT", 8080),
			AllowedOrigins: envList("WEB_ALLOWED_ORIGINS"),
			IPRateLimit:    envNonNegativeInt("WEB_IP_RATE_LIMIT", 120),
		},
		Log: LogConfig{
			Level:  envString("LOG_LEVEL", "info"),
			Format: envString("LOG_FORMAT", "json"),
		},
		Timeouts: TimeoutConfig{
			Classify: envDuration("CLASSIFY_TIMEOUT", constants.DefaultClassifyTimeout),
			Store:    envDuration("STORE_TIMEOUT", constants.DefaultStoreTimeout),
		},
	}
}

// DebugOverrideReady reports whether the override is enabled and has a target identifier.
func (c *Config) DebugOverrideReady() bool {
	return c.Debug.Enabled && c.Debug.Identifier != ""
}
