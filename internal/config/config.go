package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-yaml"

	word2pdf "github.com/alnah/go-word2pdf"
	"github.com/alnah/go-word2pdf/internal/fileutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// MaxInputSize limits config files to prevent memory exhaustion (1MB).
const MaxInputSize = 1 << 20

// AppDir is the directory under the user config dir searched for named configs.
const AppDir = "go-word2pdf"

// Field length limits.
const (
	MaxAddrLength       = 255
	MaxFontLength       = 64
	MaxArchiveDirLength = 255
	MaxPathLength       = 4096
)

// Defaults for the server and upload limits.
const (
	DefaultAddr            = ":8080"
	DefaultRequestTimeout  = 10 * time.Minute
	DefaultShutdownTimeout = 30 * time.Second
	DefaultMaxFiles        = 100
	DefaultMaxFileSize     = ByteSize(word2pdf.DefaultMaxFileSize)
	DefaultMaxTotalSize    = ByteSize(500 << 20)
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "text"
)

// Config holds all settings of the converter server and CLI.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Limits      LimitsConfig      `yaml:"limits"`
	Conversion  ConversionConfig  `yaml:"conversion"`
	LibreOffice LibreOfficeConfig `yaml:"libreoffice"`
	Log         LogConfig         `yaml:"log"`
}

// ServerConfig defines HTTP server options.
type ServerConfig struct {
	Addr            string   `yaml:"addr"`
	RequestTimeout  Duration `yaml:"requestTimeout"`
	ShutdownTimeout Duration `yaml:"shutdownTimeout"`
	MaxConcurrent   int      `yaml:"maxConcurrent"` // 0 = derive from GOMAXPROCS
	Debug           bool     `yaml:"debug"`         // include stack traces in 500 responses
	AssetPath       string   `yaml:"assetPath"`     // directory overriding the upload page assets
}

// LimitsConfig defines upload limits, enforced by the server and the upload page.
type LimitsConfig struct {
	MaxFiles     int      `yaml:"maxFiles"`
	MaxFileSize  ByteSize `yaml:"maxFileSize"`
	MaxTotalSize ByteSize `yaml:"maxTotalSize"`
}

// ConversionConfig defines how documents are converted.
type ConversionConfig struct {
	Engine      string  `yaml:"engine"` // "text" or "libreoffice"
	FontSize    int     `yaml:"fontSize"`
	Font        string  `yaml:"font"`
	Margin      float64 `yaml:"margin"`      // points
	Compression *int    `yaml:"compression"` // 0 = store, 1-9 = deflate level
	ArchiveDir  string  `yaml:"archiveDir"`
}

// LibreOfficeConfig defines the native converter.
type LibreOfficeConfig struct {
	Binary  string   `yaml:"binary"` // empty = search PATH
	Timeout Duration `yaml:"timeout"`
}

// LogConfig defines structured logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// CompressionLevel returns the configured archive level or the default.
func (c ConversionConfig) CompressionLevel() int {
	if c.Compression == nil {
		return word2pdf.DefaultCompression
	}
	return *c.Compression
}

// Duration is a time.Duration read from strings such as "90s" or "2m".
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// ByteSize is a size in bytes read from strings such as "500MB" or "1GiB".
// It also implements pflag.Value so it can back a command-line flag.
type ByteSize int64

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *ByteSize) UnmarshalText(text []byte) error {
	n, err := fileutil.ParseSize(string(text))
	if err != nil {
		return err
	}
	*b = ByteSize(n)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (b ByteSize) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// String returns the size in IEC units.
func (b ByteSize) String() string { return fileutil.HumanSize(int64(b)) }

// Set implements pflag.Value.
func (b *ByteSize) Set(s string) error { return b.UnmarshalText([]byte(s)) }

// Type implements pflag.Value.
func (b *ByteSize) Type() string { return "size" }

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	level := word2pdf.DefaultCompression
	return &Config{
		Server: ServerConfig{
			Addr:            DefaultAddr,
			RequestTimeout:  Duration(DefaultRequestTimeout),
			ShutdownTimeout: Duration(DefaultShutdownTimeout),
		},
		Limits: LimitsConfig{
			MaxFiles:     DefaultMaxFiles,
			MaxFileSize:  DefaultMaxFileSize,
			MaxTotalSize: DefaultMaxTotalSize,
		},
		Conversion: ConversionConfig{
			Engine:      string(word2pdf.EngineText),
			FontSize:    word2pdf.DefaultFontSize,
			Font:        word2pdf.DefaultFont,
			Margin:      word2pdf.DefaultMargin,
			Compression: &level,
			ArchiveDir:  word2pdf.DefaultArchiveDir,
		},
		LibreOffice: LibreOfficeConfig{
			Timeout: Duration(word2pdf.DefaultConverterTimeout),
		},
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// fillDefaults replaces unset fields with their defaults.
func (c *Config) fillDefaults() {
	d := DefaultConfig()

	if c.Server.Addr == "" {
		c.Server.Addr = d.Server.Addr
	}
	if c.Server.RequestTimeout == 0 {
		c.Server.RequestTimeout = d.Server.RequestTimeout
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = d.Server.ShutdownTimeout
	}
	if c.Limits.MaxFiles == 0 {
		c.Limits.MaxFiles = d.Limits.MaxFiles
	}
	if c.Limits.MaxFileSize == 0 {
		c.Limits.MaxFileSize = d.Limits.MaxFileSize
	}
	if c.Limits.MaxTotalSize == 0 {
		c.Limits.MaxTotalSize = d.Limits.MaxTotalSize
	}
	if c.Conversion.Engine == "" {
		c.Conversion.Engine = d.Conversion.Engine
	}
	if c.Conversion.FontSize == 0 {
		c.Conversion.FontSize = d.Conversion.FontSize
	}
	if c.Conversion.Font == "" {
		c.Conversion.Font = d.Conversion.Font
	}
	if c.Conversion.Margin == 0 {
		c.Conversion.Margin = d.Conversion.Margin
	}
	if c.Conversion.Compression == nil {
		c.Conversion.Compression = d.Conversion.Compression
	}
	if c.Conversion.ArchiveDir == "" {
		c.Conversion.ArchiveDir = d.Conversion.ArchiveDir
	}
	if c.LibreOffice.Timeout == 0 {
		c.LibreOffice.Timeout = d.LibreOffice.Timeout
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = d.Log.Format
	}
}

// Validate checks ranges, enums and field lengths.
func (c *Config) Validate() error {
	if err := validateFieldLength("server.addr", c.Server.Addr, MaxAddrLength); err != nil {
		return err
	}
	if err := validateFieldLength("server.assetPath", c.Server.AssetPath, MaxPathLength); err != nil {
		return err
	}
	if c.Server.RequestTimeout <= 0 {
		return fmt.Errorf("%w: server.requestTimeout must be positive", ErrInvalidValue)
	}
	if c.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("%w: server.shutdownTimeout must not be negative", ErrInvalidValue)
	}
	if c.Server.MaxConcurrent < 0 {
		return fmt.Errorf("%w: server.maxConcurrent must not be negative, got %d", ErrInvalidValue, c.Server.MaxConcurrent)
	}

	if c.Limits.MaxFiles < 1 {
		return fmt.Errorf("%w: limits.maxFiles must be at least 1, got %d", ErrInvalidValue, c.Limits.MaxFiles)
	}
	if c.Limits.MaxFileSize <= 0 {
		return fmt.Errorf("%w: limits.maxFileSize must be positive", ErrInvalidValue)
	}
	if c.Limits.MaxTotalSize <= 0 {
		return fmt.Errorf("%w: limits.maxTotalSize must be positive", ErrInvalidValue)
	}

	if _, err := word2pdf.ParseEngine(c.Conversion.Engine); err != nil {
		return fmt.Errorf("conversion.engine: %w", err)
	}
	if c.Conversion.FontSize < word2pdf.MinFontSize || c.Conversion.FontSize > word2pdf.MaxFontSize {
		return fmt.Errorf("%w: conversion.fontSize must be between %d and %d, got %d",
			ErrInvalidValue, word2pdf.MinFontSize, word2pdf.MaxFontSize, c.Conversion.FontSize)
	}
	if err := validateFieldLength("conversion.font", c.Conversion.Font, MaxFontLength); err != nil {
		return err
	}
	if c.Conversion.Margin < 0 || c.Conversion.Margin > word2pdf.MaxMargin {
		return fmt.Errorf("%w: conversion.margin must be between 0 and %.0f, got %.2f",
			ErrInvalidValue, word2pdf.MaxMargin, c.Conversion.Margin)
	}
	if level := c.Conversion.CompressionLevel(); level < 0 || level > 9 {
		return fmt.Errorf("%w: conversion.compression must be between 0 and 9, got %d", ErrInvalidValue, level)
	}
	if err := validateFieldLength("conversion.archiveDir", c.Conversion.ArchiveDir, MaxArchiveDirLength); err != nil {
		return err
	}
	if strings.Contains(c.Conversion.ArchiveDir, "..") {
		return fmt.Errorf("%w: conversion.archiveDir must not contain %q", ErrInvalidValue, "..")
	}

	if err := validateFieldLength("libreoffice.binary", c.LibreOffice.Binary, MaxPathLength); err != nil {
		return err
	}
	if c.LibreOffice.Timeout < 0 {
		return fmt.Errorf("%w: libreoffice.timeout must not be negative", ErrInvalidValue)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log.level %q (must be debug, info, warn, or error)", ErrInvalidValue, c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log.format %q (must be text or json)", ErrInvalidValue, c.Log.Format)
	}

	return nil
}

// validateFieldLength returns an error if value exceeds maxLength characters.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Unset fields take their defaults; the result is validated.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", configPath, err)
	}
	return cfg, nil
}

// Parse decodes YAML config data strictly: unknown keys are errors.
func Parse(data []byte) (*Config, error) {
	if len(data) > MaxInputSize {
		return nil, fmt.Errorf("%w: input exceeds %d bytes", ErrConfigParse, MaxInputSize)
	}

	var cfg Config
	if len(strings.TrimSpace(string(data))) > 0 {
		if err := yaml.UnmarshalWithOptions(data, &cfg, yaml.Strict()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
		}
	}

	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, <user config dir>/go-word2pdf/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, AppDir, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
