package main

import (
	"fmt"
	"io"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-word2pdf/internal/config"
)

// DefaultOutput is the archive written by convert and upload without -o.
const DefaultOutput = "converted-pdfs.zip"

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// conversionFlags holds flags that shape each PDF.
type conversionFlags struct {
	engine      string
	fontSize    int
	font        string
	margin      float64
	compression int
	libreoffice string
	timeout     time.Duration
}

// limitFlags holds upload limit flags.
type limitFlags struct {
	maxFiles     int
	maxFileSize  config.ByteSize
	maxTotalSize config.ByteSize
}

// serveFlags holds all flags for the serve command.
type serveFlags struct {
	common         commonFlags
	conversion     conversionFlags
	limits         limitFlags
	addr           string
	maxConcurrent  int
	requestTimeout time.Duration
	debug          bool
	assetPath      string
	logLevel       string
	logFormat      string
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common     commonFlags
	conversion conversionFlags
	output     string
}

// uploadFlags holds all flags for the upload command.
type uploadFlags struct {
	common  commonFlags
	limits  limitFlags
	server  string
	output  string
	timeout time.Duration
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addConversionFlags adds conversion flags to a FlagSet.
func addConversionFlags(fs *flag.FlagSet, f *conversionFlags) {
	fs.StringVarP(&f.engine, "engine", "e", "", "conversion engine: text, libreoffice")
	fs.IntVar(&f.fontSize, "font-size", 0, "text engine font size in points (4-72)")
	fs.StringVar(&f.font, "font", "", "text engine core font, e.g. Helvetica, Times-Roman")
	fs.Float64Var(&f.margin, "margin", 0, "page margin in points (0-200)")
	fs.IntVar(&f.compression, "compression", 0, "archive deflate level (0 = store, 1-9)")
	fs.StringVar(&f.libreoffice, "libreoffice", "", "LibreOffice binary name or path")
	fs.DurationVarP(&f.timeout, "timeout", "t", 0, "per-file LibreOffice timeout (e.g., 90s, 2m)")
}

// addLimitFlags adds upload limit flags to a FlagSet.
func addLimitFlags(fs *flag.FlagSet, f *limitFlags) {
	fs.IntVar(&f.maxFiles, "max-files", 0, "maximum files per batch")
	fs.Var(&f.maxFileSize, "max-file-size", "maximum size per file (e.g., 500MiB)")
	fs.Var(&f.maxTotalSize, "max-total-size", "maximum size per batch (e.g., 500MiB)")
}

// applyConversionFlags copies explicitly set conversion flags into cfg.
func applyConversionFlags(fs *flag.FlagSet, f *conversionFlags, cfg *config.Config) {
	if fs.Changed("engine") {
		cfg.Conversion.Engine = f.engine
	}
	if fs.Changed("font-size") {
		cfg.Conversion.FontSize = f.fontSize
	}
	if fs.Changed("font") {
		cfg.Conversion.Font = f.font
	}
	if fs.Changed("margin") {
		cfg.Conversion.Margin = f.margin
	}
	if fs.Changed("compression") {
		level := f.compression
		cfg.Conversion.Compression = &level
	}
	if fs.Changed("libreoffice") {
		cfg.LibreOffice.Binary = f.libreoffice
	}
	if fs.Changed("timeout") {
		cfg.LibreOffice.Timeout = config.Duration(f.timeout)
	}
}

// applyLimitFlags copies explicitly set limit flags into cfg.
func applyLimitFlags(fs *flag.FlagSet, f *limitFlags, cfg *config.Config) {
	if fs.Changed("max-files") {
		cfg.Limits.MaxFiles = f.maxFiles
	}
	if fs.Changed("max-file-size") {
		cfg.Limits.MaxFileSize = f.maxFileSize
	}
	if fs.Changed("max-total-size") {
		cfg.Limits.MaxTotalSize = f.maxTotalSize
	}
}

// applyServeFlags copies explicitly set serve flags into cfg.
func applyServeFlags(fs *flag.FlagSet, f *serveFlags, cfg *config.Config) {
	applyConversionFlags(fs, &f.conversion, cfg)
	applyLimitFlags(fs, &f.limits, cfg)
	if fs.Changed("addr") {
		cfg.Server.Addr = f.addr
	}
	if fs.Changed("max-concurrent") {
		cfg.Server.MaxConcurrent = f.maxConcurrent
	}
	if fs.Changed("request-timeout") {
		cfg.Server.RequestTimeout = config.Duration(f.requestTimeout)
	}
	if fs.Changed("debug") {
		cfg.Server.Debug = f.debug
	}
	if fs.Changed("asset-path") {
		cfg.Server.AssetPath = f.assetPath
	}
	if fs.Changed("log-level") {
		cfg.Log.Level = f.logLevel
	}
	if fs.Changed("log-format") {
		cfg.Log.Format = f.logFormat
	}
}

// newFlagSet returns a FlagSet that reports errors instead of exiting and
// prints usage to w on -h.
func newFlagSet(name string, w io.Writer, usage func(io.Writer)) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(w)
	fs.Usage = func() { usage(w) }
	return fs
}

// parseServeFlags parses serve command flags.
func parseServeFlags(args []string, w io.Writer) (*flag.FlagSet, *serveFlags, error) {
	fs := newFlagSet("serve", w, printServeUsage)
	f := &serveFlags{}

	fs.StringVarP(&f.addr, "addr", "a", "", "listen address (default :8080)")
	fs.IntVar(&f.maxConcurrent, "max-concurrent", 0, "batches converting at once (0 = auto)")
	fs.DurationVar(&f.requestTimeout, "request-timeout", 0, "hard ceiling per request (e.g., 10m)")
	fs.BoolVar(&f.debug, "debug", false, "include stack traces in 500 responses")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory overriding the upload page")
	fs.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn, error")
	fs.StringVar(&f.logFormat, "log-format", "", "log format: text, json")

	addCommonFlags(fs, &f.common)
	addConversionFlags(fs, &f.conversion)
	addLimitFlags(fs, &f.limits)

	if err := parse(fs, args); err != nil {
		return nil, nil, err
	}
	if fs.NArg() > 0 {
		return nil, nil, fmt.Errorf("%w: serve takes no arguments, got %q", errUsage, fs.Args())
	}
	return fs, f, nil
}

// parseConvertFlags parses convert command flags. Inputs are fs.Args().
func parseConvertFlags(args []string, w io.Writer) (*flag.FlagSet, *convertFlags, error) {
	fs := newFlagSet("convert", w, printConvertUsage)
	f := &convertFlags{}

	fs.StringVarP(&f.output, "output", "o", DefaultOutput, "archive to write")
	addCommonFlags(fs, &f.common)
	addConversionFlags(fs, &f.conversion)

	if err := parse(fs, args); err != nil {
		return nil, nil, err
	}
	return fs, f, nil
}

// parseUploadFlags parses upload command flags. Inputs are fs.Args().
func parseUploadFlags(args []string, w io.Writer) (*flag.FlagSet, *uploadFlags, error) {
	fs := newFlagSet("upload", w, printUploadUsage)
	f := &uploadFlags{}

	fs.StringVarP(&f.server, "server", "s", "", "server URL (default http://localhost:8080)")
	fs.StringVarP(&f.output, "output", "o", DefaultOutput, "archive to write")
	fs.DurationVarP(&f.timeout, "timeout", "t", 0, "request timeout (e.g., 15m)")
	addCommonFlags(fs, &f.common)
	addLimitFlags(fs, &f.limits)

	if err := parse(fs, args); err != nil {
		return nil, nil, err
	}
	return fs, f, nil
}

func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return err
		}
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	return nil
}
