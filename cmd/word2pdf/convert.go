package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	word2pdf "github.com/alnah/go-word2pdf"
	"github.com/alnah/go-word2pdf/internal/client"
	"github.com/alnah/go-word2pdf/internal/fileutil"
	"github.com/alnah/go-word2pdf/internal/hints"
)

// runConvert converts local files and directories into one archive.
func runConvert(ctx context.Context, args []string, env *Environment) error {
	fs, f, err := parseConvertFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("%w: convert needs at least one file or directory", ErrNoInput)
	}

	envCfg := loadEnvConfig()
	warnUnknownEnvVars(env.Stderr)
	cfg, err := loadSettings(f.common, envCfg)
	if err != nil {
		return err
	}
	applyConversionFlags(fs, &f.conversion, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	files, err := client.Collect(fs.Args())
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no Word documents found", ErrNoInput)
	}

	conv, err := newConverter(cfg, nil)
	if err != nil {
		return err
	}

	start := env.Now()
	batch, err := conv.ConvertBatch(ctx, files)
	if err != nil {
		return fmt.Errorf("converting: %w", err)
	}
	if err := writeArchive(f.output, batch.Archive); err != nil {
		return err
	}

	printOutcomes(env, files, batch.Outcomes, f.common)
	sum := batch.Summary()
	if !f.common.quiet {
		fmt.Fprintf(env.Stdout, "Wrote %s (%s, %d pages)", f.output, fileutil.HumanSize(int64(len(batch.Archive))), sum.Pages)
		if f.common.verbose {
			fmt.Fprintf(env.Stdout, " in %v", env.Now().Sub(start).Round(time.Millisecond))
		}
		fmt.Fprintln(env.Stdout)
	}

	if sum.Failed > 0 {
		return fmt.Errorf("%w: %d of %d", errFilesFailed, sum.Failed, sum.Total)
	}
	return nil
}

// printOutcomes reports one line per file. Failures always go to stderr.
func printOutcomes(env *Environment, files []word2pdf.File, outcomes []word2pdf.Outcome, common commonFlags) {
	for i, o := range outcomes {
		path := o.Name
		if i < len(files) {
			path = files[i].Path
		}

		if !o.OK() {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v%s\n", path, o.Err, hintFor(o.Err))
			continue
		}
		if common.quiet {
			continue
		}
		if common.verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%d pages, %v)\n", path, o.Output, o.Pages, o.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", o.Output)
		}
	}

	if !common.quiet && len(outcomes) > 1 {
		sum := (&word2pdf.Batch{Outcomes: outcomes}).Summary()
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", sum.Succeeded, sum.Failed)
	}
}

// hintFor returns an actionable hint for known per-file failures.
func hintFor(err error) string {
	switch {
	case errors.Is(err, word2pdf.ErrLegacyDocument):
		return hints.ForLegacyDocument()
	case errors.Is(err, word2pdf.ErrConverterTimeout):
		return hints.ForTimeout()
	case errors.Is(err, word2pdf.ErrConverterNotFound):
		return hints.ForConverterNotFound()
	default:
		return ""
	}
}

// writeArchive writes data to path, creating parent directories.
func writeArchive(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: %v%s", ErrWriteArchive, err, hints.ForOutputDirectory())
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: %v%s", ErrWriteArchive, err, hints.ForOutputDirectory())
	}
	return nil
}
