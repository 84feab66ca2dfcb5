package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-word2pdf/internal/config"
	"github.com/alnah/go-word2pdf/internal/fileutil"
)

// envPrefix starts every recognized environment variable.
const envPrefix = "WORD2PDF_"

// envConfig holds configuration from environment variables.
// Provides container-friendly overrides without requiring YAML files.
// Malformed numbers, sizes and durations are ignored.
type envConfig struct {
	// Tier 1 - Essential
	ConfigPath string // WORD2PDF_CONFIG: config file name or path
	Addr       string // WORD2PDF_ADDR: listen address
	Engine     string // WORD2PDF_ENGINE: text or libreoffice
	Server     string // WORD2PDF_SERVER: upload target URL

	// Tier 2 - Conversion
	FontSize    int           // WORD2PDF_FONT_SIZE: points
	Font        string        // WORD2PDF_FONT: core font name
	Margin      float64       // WORD2PDF_MARGIN: points
	LibreOffice string        // WORD2PDF_LIBREOFFICE: binary name or path
	Timeout     time.Duration // WORD2PDF_TIMEOUT: per-file LibreOffice timeout

	// Tier 3 - Server
	RequestTimeout time.Duration // WORD2PDF_REQUEST_TIMEOUT: per-request ceiling
	MaxFiles       int           // WORD2PDF_MAX_FILES
	MaxFileSize    int64         // WORD2PDF_MAX_FILE_SIZE: e.g. 200MiB
	MaxTotalSize   int64         // WORD2PDF_MAX_TOTAL_SIZE: e.g. 1GiB
	LogLevel       string        // WORD2PDF_LOG_LEVEL
	LogFormat      string        // WORD2PDF_LOG_FORMAT
	Debug          string        // WORD2PDF_DEBUG: 1/true enables stacks in 500 responses
	AssetPath      string        // WORD2PDF_ASSET_PATH: custom upload page directory
}

// knownEnvVars lists valid WORD2PDF_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	// Tier 1 - Essential
	"WORD2PDF_CONFIG": true,
	"WORD2PDF_ADDR":   true,
	"WORD2PDF_ENGINE": true,
	"WORD2PDF_SERVER": true,
	// Tier 2 - Conversion
	"WORD2PDF_FONT_SIZE":   true,
	"WORD2PDF_FONT":        true,
	"WORD2PDF_MARGIN":      true,
	"WORD2PDF_LIBREOFFICE": true,
	"WORD2PDF_TIMEOUT":     true,
	// Tier 3 - Server
	"WORD2PDF_REQUEST_TIMEOUT": true,
	"WORD2PDF_MAX_FILES":       true,
	"WORD2PDF_MAX_FILE_SIZE":   true,
	"WORD2PDF_MAX_TOTAL_SIZE":  true,
	"WORD2PDF_LOG_LEVEL":       true,
	"WORD2PDF_LOG_FORMAT":      true,
	"WORD2PDF_DEBUG":           true,
	"WORD2PDF_ASSET_PATH":      true,
	// Read by doctor only
	"WORD2PDF_CONTAINER": true,
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath:  os.Getenv("WORD2PDF_CONFIG"),
		Addr:        os.Getenv("WORD2PDF_ADDR"),
		Engine:      os.Getenv("WORD2PDF_ENGINE"),
		Server:      os.Getenv("WORD2PDF_SERVER"),
		Font:        os.Getenv("WORD2PDF_FONT"),
		LibreOffice: os.Getenv("WORD2PDF_LIBREOFFICE"),
		LogLevel:    os.Getenv("WORD2PDF_LOG_LEVEL"),
		LogFormat:   os.Getenv("WORD2PDF_LOG_FORMAT"),
		Debug:       os.Getenv("WORD2PDF_DEBUG"),
		AssetPath:   os.Getenv("WORD2PDF_ASSET_PATH"),
	}

	cfg.FontSize = envInt("WORD2PDF_FONT_SIZE")
	cfg.MaxFiles = envInt("WORD2PDF_MAX_FILES")
	cfg.Timeout = envDuration("WORD2PDF_TIMEOUT")
	cfg.RequestTimeout = envDuration("WORD2PDF_REQUEST_TIMEOUT")
	cfg.MaxFileSize = envSize("WORD2PDF_MAX_FILE_SIZE")
	cfg.MaxTotalSize = envSize("WORD2PDF_MAX_TOTAL_SIZE")

	if margin := os.Getenv("WORD2PDF_MARGIN"); margin != "" {
		if m, err := strconv.ParseFloat(margin, 64); err == nil && m >= 0 {
			cfg.Margin = m
		}
	}

	return cfg
}

func envInt(name string) int {
	if v := os.Getenv(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return 0
}

func envDuration(name string) time.Duration {
	if v := os.Getenv(name); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return 0
}

func envSize(name string) int64 {
	if v := os.Getenv(name); v != "" {
		if n, err := fileutil.ParseSize(v); err == nil && n > 0 {
			return n
		}
	}
	return 0
}

// warnUnknownEnvVars logs warnings for unrecognized WORD2PDF_* variables.
// Helps catch typos like WORD2PDF_ENGIN instead of WORD2PDF_ENGINE.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, envPrefix) {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies set environment variables over config values.
// This ensures: CLI flags > env vars > config file > defaults
// (CLI flags are applied afterwards by the command).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	// Tier 1
	if env.Addr != "" {
		cfg.Server.Addr = env.Addr
	}
	if env.Engine != "" {
		cfg.Conversion.Engine = env.Engine
	}

	// Tier 2 - Conversion
	if env.FontSize > 0 {
		cfg.Conversion.FontSize = env.FontSize
	}
	if env.Font != "" {
		cfg.Conversion.Font = env.Font
	}
	if env.Margin > 0 {
		cfg.Conversion.Margin = env.Margin
	}
	if env.LibreOffice != "" {
		cfg.LibreOffice.Binary = env.LibreOffice
	}
	if env.Timeout > 0 {
		cfg.LibreOffice.Timeout = config.Duration(env.Timeout)
	}

	// Tier 3 - Server
	if env.RequestTimeout > 0 {
		cfg.Server.RequestTimeout = config.Duration(env.RequestTimeout)
	}
	if env.MaxFiles > 0 {
		cfg.Limits.MaxFiles = env.MaxFiles
	}
	if env.MaxFileSize > 0 {
		cfg.Limits.MaxFileSize = config.ByteSize(env.MaxFileSize)
	}
	if env.MaxTotalSize > 0 {
		cfg.Limits.MaxTotalSize = config.ByteSize(env.MaxTotalSize)
	}
	if env.LogLevel != "" {
		cfg.Log.Level = env.LogLevel
	}
	if env.LogFormat != "" {
		cfg.Log.Format = env.LogFormat
	}
	if enabled, err := strconv.ParseBool(env.Debug); err == nil {
		cfg.Server.Debug = enabled
	}
	if env.AssetPath != "" {
		cfg.Server.AssetPath = env.AssetPath
	}
}
