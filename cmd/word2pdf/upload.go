package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"

	"github.com/alnah/go-word2pdf/internal/client"
	"github.com/alnah/go-word2pdf/internal/config"
	"github.com/alnah/go-word2pdf/internal/hints"
)

// DefaultServer is the upload target without --server or WORD2PDF_SERVER.
const DefaultServer = "http://localhost:8080"

// runUpload sends local files to a running server and saves the archive.
func runUpload(ctx context.Context, args []string, env *Environment) error {
	fs, f, err := parseUploadFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("%w: upload needs at least one file or directory", ErrNoInput)
	}

	envCfg := loadEnvConfig()
	warnUnknownEnvVars(env.Stderr)
	cfg, err := loadSettings(f.common, envCfg)
	if err != nil {
		return err
	}
	applyLimitFlags(fs, &f.limits, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	target := f.server
	if target == "" {
		target = envCfg.Server
	}
	if target == "" {
		target = DefaultServer
	}
	var opts []client.Option
	if f.timeout > 0 {
		opts = append(opts, client.WithTimeout(f.timeout))
	}
	c, err := client.New(target, opts...)
	if err != nil {
		return err
	}

	files, err := client.Collect(fs.Args())
	if err != nil {
		return err
	}

	session := client.NewSession(limitsOf(cfg))
	if err := session.Select(files); err != nil {
		return err
	}
	if session.Phase() != client.PhaseReady {
		return fmt.Errorf("%w: no Word documents found", ErrNoInput)
	}
	if folder := session.Folder(); folder != "" && f.common.verbose {
		fmt.Fprintf(env.Stdout, "Folder: %s\n", folder)
	}

	if err := session.Submit(ctx, c); err != nil {
		return classifyUploadError(err, target)
	}

	out, err := os.Create(f.output)
	if err != nil {
		return fmt.Errorf("%w: %v%s", ErrWriteArchive, err, hints.ForOutputDirectory())
	}
	if _, err := session.Download(out); err != nil {
		_ = out.Close()
		return fmt.Errorf("%w: %v", ErrWriteArchive, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteArchive, err)
	}

	statuses := session.Statuses()
	failed := printStatuses(env, statuses, f.common)
	if !f.common.quiet {
		if f.common.verbose {
			fmt.Fprintf(env.Stdout, "Batch %s\n", session.BatchID())
		}
		fmt.Fprintf(env.Stdout, "Wrote %s\n", f.output)
	}

	if session.Completion() != client.FullSuccess {
		return fmt.Errorf("%w: %d of %d", errFilesFailed, failed, len(statuses))
	}
	return nil
}

// limitsOf returns the client-side limits from cfg.
func limitsOf(cfg *config.Config) client.Limits {
	return client.Limits{
		MaxFiles:     cfg.Limits.MaxFiles,
		MaxFileSize:  int64(cfg.Limits.MaxFileSize),
		MaxTotalSize: int64(cfg.Limits.MaxTotalSize),
	}
}

// printStatuses reports one line per file and returns the failure count.
func printStatuses(env *Environment, statuses []client.FileStatus, common commonFlags) int {
	failed := 0
	for _, st := range statuses {
		switch {
		case st.Status == client.StatusError:
			failed++
			fmt.Fprintf(env.Stderr, "FAILED %s: %s\n", st.Path, st.Error)
		case !common.quiet:
			fmt.Fprintf(env.Stdout, "Converted %s\n", st.Path)
		}
	}
	if !common.quiet && len(statuses) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", len(statuses)-failed, failed)
	}
	return failed
}

// classifyUploadError marks connection failures as I/O errors with a hint.
func classifyUploadError(err error, target string) error {
	var reqErr *client.RequestError
	if errors.As(err, &reqErr) {
		return err
	}
	var netErr net.Error
	var urlErr *url.Error
	if errors.As(err, &netErr) || errors.As(err, &urlErr) {
		return fmt.Errorf("%w: %v%s", ErrServerUnreachable, err, hints.ForServerUnreachable(target))
	}
	return err
}
