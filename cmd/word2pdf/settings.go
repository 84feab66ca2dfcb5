package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	word2pdf "github.com/alnah/go-word2pdf"
	"github.com/alnah/go-word2pdf/internal/config"
	"github.com/alnah/go-word2pdf/internal/hints"
)

// loadSettings resolves the configuration of one command: the config file
// named by --config or WORD2PDF_CONFIG, then environment overrides. Flags
// are applied by the caller, which then calls Validate.
func loadSettings(common commonFlags, env *envConfig) (*config.Config, error) {
	name := common.config
	if name == "" {
		name = env.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				return nil, fmt.Errorf("%w%s", err, hints.ForConfigNotFound(nil))
			}
			return nil, err
		}
		cfg = loaded
	}

	applyEnvConfig(env, cfg)
	return cfg, nil
}

// newConverter builds the library converter from cfg.
func newConverter(cfg *config.Config, logger *slog.Logger) (*word2pdf.Converter, error) {
	engine, err := word2pdf.ParseEngine(cfg.Conversion.Engine)
	if err != nil {
		return nil, err
	}

	opts := []word2pdf.Option{
		word2pdf.WithEngine(engine),
		word2pdf.WithFontSize(cfg.Conversion.FontSize),
		word2pdf.WithFont(cfg.Conversion.Font),
		word2pdf.WithMargin(cfg.Conversion.Margin),
		word2pdf.WithCompression(cfg.Conversion.CompressionLevel()),
		word2pdf.WithArchiveDir(cfg.Conversion.ArchiveDir),
		word2pdf.WithMaxFileSize(int64(cfg.Limits.MaxFileSize)),
		word2pdf.WithLibreOffice(cfg.LibreOffice.Binary),
		word2pdf.WithLogger(logger),
	}
	if d := cfg.LibreOffice.Timeout.Std(); d > 0 {
		opts = append(opts, word2pdf.WithConverterTimeout(d))
	}

	conv, err := word2pdf.NewConverter(opts...)
	if err != nil {
		if errors.Is(err, word2pdf.ErrConverterNotFound) {
			return nil, fmt.Errorf("%w%s", err, hints.ForConverterNotFound())
		}
		return nil, err
	}
	return conv, nil
}

// newLogger returns a slog logger writing to w per the log settings.
func newLogger(w io.Writer, lc config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(lc.Level)}
	if strings.EqualFold(lc.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}
