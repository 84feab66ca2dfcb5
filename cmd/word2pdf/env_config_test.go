package main

// Notes:
// - loadEnvConfig: every variable is read; malformed numbers, sizes and
//   durations are ignored rather than reported.
// - applyEnvConfig: set variables override file values, unset ones leave
//   them alone.
// - Tests use t.Setenv() which prevents t.Parallel().

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-word2pdf/internal/config"
)

// ---------------------------------------------------------------------------
// TestLoadEnvConfig - Environment variable loading
// ---------------------------------------------------------------------------

func TestLoadEnvConfig(t *testing.T) {
	t.Run("Tier 1 - Essential", func(t *testing.T) {
		t.Setenv("WORD2PDF_CONFIG", "/etc/word2pdf.yaml")
		t.Setenv("WORD2PDF_ADDR", ":9000")
		t.Setenv("WORD2PDF_ENGINE", "libreoffice")
		t.Setenv("WORD2PDF_SERVER", "http://converter:8080")

		cfg := loadEnvConfig()

		if cfg.ConfigPath != "/etc/word2pdf.yaml" {
			t.Errorf("ConfigPath = %q", cfg.ConfigPath)
		}
		if cfg.Addr != ":9000" {
			t.Errorf("Addr = %q", cfg.Addr)
		}
		if cfg.Engine != "libreoffice" {
			t.Errorf("Engine = %q", cfg.Engine)
		}
		if cfg.Server != "http://converter:8080" {
			t.Errorf("Server = %q", cfg.Server)
		}
	})

	t.Run("Tier 2 - Conversion", func(t *testing.T) {
		t.Setenv("WORD2PDF_FONT_SIZE", "12")
		t.Setenv("WORD2PDF_FONT", "Courier")
		t.Setenv("WORD2PDF_MARGIN", "36.5")
		t.Setenv("WORD2PDF_LIBREOFFICE", "/opt/lo/soffice")
		t.Setenv("WORD2PDF_TIMEOUT", "90s")

		cfg := loadEnvConfig()

		if cfg.FontSize != 12 || cfg.Font != "Courier" || cfg.Margin != 36.5 {
			t.Errorf("font = %d %q %v", cfg.FontSize, cfg.Font, cfg.Margin)
		}
		if cfg.LibreOffice != "/opt/lo/soffice" {
			t.Errorf("LibreOffice = %q", cfg.LibreOffice)
		}
		if cfg.Timeout != 90*time.Second {
			t.Errorf("Timeout = %v, want 90s", cfg.Timeout)
		}
	})

	t.Run("Tier 3 - Server", func(t *testing.T) {
		t.Setenv("WORD2PDF_REQUEST_TIMEOUT", "5m")
		t.Setenv("WORD2PDF_MAX_FILES", "20")
		t.Setenv("WORD2PDF_MAX_FILE_SIZE", "10MiB")
		t.Setenv("WORD2PDF_MAX_TOTAL_SIZE", "1GiB")
		t.Setenv("WORD2PDF_LOG_LEVEL", "debug")
		t.Setenv("WORD2PDF_LOG_FORMAT", "json")
		t.Setenv("WORD2PDF_DEBUG", "true")
		t.Setenv("WORD2PDF_ASSET_PATH", "/srv/assets")

		cfg := loadEnvConfig()

		if cfg.RequestTimeout != 5*time.Minute {
			t.Errorf("RequestTimeout = %v", cfg.RequestTimeout)
		}
		if cfg.MaxFiles != 20 || cfg.MaxFileSize != 10<<20 || cfg.MaxTotalSize != 1<<30 {
			t.Errorf("limits = %d %d %d", cfg.MaxFiles, cfg.MaxFileSize, cfg.MaxTotalSize)
		}
		if cfg.LogLevel != "debug" || cfg.LogFormat != "json" || cfg.Debug != "true" || cfg.AssetPath != "/srv/assets" {
			t.Errorf("server = %+v", cfg)
		}
	})

	t.Run("malformed values are ignored", func(t *testing.T) {
		t.Setenv("WORD2PDF_FONT_SIZE", "big")
		t.Setenv("WORD2PDF_MAX_FILES", "-3")
		t.Setenv("WORD2PDF_TIMEOUT", "soon")
		t.Setenv("WORD2PDF_REQUEST_TIMEOUT", "-1m")
		t.Setenv("WORD2PDF_MAX_FILE_SIZE", "lots")
		t.Setenv("WORD2PDF_MARGIN", "-5")

		cfg := loadEnvConfig()

		if cfg.FontSize != 0 || cfg.MaxFiles != 0 || cfg.Timeout != 0 ||
			cfg.RequestTimeout != 0 || cfg.MaxFileSize != 0 || cfg.Margin != 0 {
			t.Errorf("malformed values not ignored: %+v", cfg)
		}
	})
}

// ---------------------------------------------------------------------------
// TestWarnUnknownEnvVars - Typo detection
// ---------------------------------------------------------------------------

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Setenv("WORD2PDF_ENGIN", "text")
	t.Setenv("WORD2PDF_ENGINE", "text")

	var buf bytes.Buffer
	warnUnknownEnvVars(&buf)

	if !strings.Contains(buf.String(), "warning: unknown environment variable WORD2PDF_ENGIN (typo?)") {
		t.Errorf("missing typo warning, got %q", buf.String())
	}
	if strings.Contains(buf.String(), "WORD2PDF_ENGINE ") {
		t.Errorf("known variable warned: %q", buf.String())
	}
}

// ---------------------------------------------------------------------------
// TestApplyEnvConfig - Override behavior
// ---------------------------------------------------------------------------

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	t.Run("set values override", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		applyEnvConfig(&envConfig{
			Addr:           "127.0.0.1:9000",
			Engine:         "libreoffice",
			FontSize:       14,
			Font:           "Times-Roman",
			Margin:         72,
			LibreOffice:    "soffice",
			Timeout:        time.Minute,
			RequestTimeout: 2 * time.Minute,
			MaxFiles:       5,
			MaxFileSize:    1 << 20,
			MaxTotalSize:   2 << 20,
			LogLevel:       "warn",
			LogFormat:      "json",
			Debug:          "1",
			AssetPath:      "/assets",
		}, cfg)

		if cfg.Server.Addr != "127.0.0.1:9000" || cfg.Conversion.Engine != "libreoffice" {
			t.Errorf("tier 1 not applied: %+v", cfg.Server)
		}
		if cfg.Conversion.FontSize != 14 || cfg.Conversion.Font != "Times-Roman" || cfg.Conversion.Margin != 72 {
			t.Errorf("conversion not applied: %+v", cfg.Conversion)
		}
		if cfg.LibreOffice.Binary != "soffice" || cfg.LibreOffice.Timeout.Std() != time.Minute {
			t.Errorf("libreoffice not applied: %+v", cfg.LibreOffice)
		}
		if cfg.Server.RequestTimeout.Std() != 2*time.Minute || !cfg.Server.Debug || cfg.Server.AssetPath != "/assets" {
			t.Errorf("server not applied: %+v", cfg.Server)
		}
		if cfg.Limits.MaxFiles != 5 || cfg.Limits.MaxFileSize != 1<<20 || cfg.Limits.MaxTotalSize != 2<<20 {
			t.Errorf("limits not applied: %+v", cfg.Limits)
		}
		if cfg.Log.Level != "warn" || cfg.Log.Format != "json" {
			t.Errorf("log not applied: %+v", cfg.Log)
		}
	})

	t.Run("unset values keep config", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Server.Debug = true
		applyEnvConfig(&envConfig{}, cfg)

		want := config.DefaultConfig()
		want.Server.Debug = true
		if cfg.Server != want.Server || cfg.Limits != want.Limits || cfg.Log != want.Log {
			t.Errorf("config changed by empty env: %+v", cfg)
		}
	})

	t.Run("debug can be switched off", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Server.Debug = true
		applyEnvConfig(&envConfig{Debug: "false"}, cfg)
		if cfg.Server.Debug {
			t.Error("Debug = true, want false")
		}
	})
}
