package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	word2pdf "github.com/alnah/go-word2pdf"
)

// versionTimeout bounds `soffice --version`, which can be slow on first run.
const versionTimeout = 20 * time.Second

// Finding severities.
type severity string

const (
	severityOK    severity = "ok"
	severityWarn  severity = "warn"
	severityError severity = "error"
)

// Report sections, in display order.
const (
	sectionEngines     = "Engines"
	sectionEnvironment = "Environment"
	sectionSystem      = "System"
)

var sections = []string{sectionEngines, sectionEnvironment, sectionSystem}

// finding is the outcome of one check.
type finding struct {
	Section  string   `json:"section"`
	Severity severity `json:"severity"`
	Name     string   `json:"name"`
	Detail   string   `json:"detail"`
}

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status      string          `json:"status"` // "ready", "warnings", "errors"
	LibreOffice libreOfficeInfo `json:"libreoffice"`
	Env         envInfo         `json:"environment"`
	Findings    []finding       `json:"findings"`
	Warnings    []string        `json:"warnings,omitempty"`
	Errors      []string        `json:"errors,omitempty"`
}

type libreOfficeInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
}

type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	CPUs          int    `json:"cpus"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"containerHint,omitempty"`
	CI            bool   `json:"ci"`
	Binary        string `json:"libreofficeBinary,omitempty"` // WORD2PDF_LIBREOFFICE
	Engine        string `json:"engine,omitempty"`            // WORD2PDF_ENGINE
	TempDir       string `json:"tempDir"`
	TempWritable  bool   `json:"tempWritable"`
}

// note records a finding. Warnings and errors are also collected as
// messages for the summary.
func (r *doctorResult) note(section string, sev severity, name, detail string) {
	r.Findings = append(r.Findings, finding{Section: section, Severity: sev, Name: name, Detail: detail})
	switch sev {
	case severityWarn:
		r.Warnings = append(r.Warnings, detail)
	case severityError:
		r.Errors = append(r.Errors, detail)
	}
}

// runDoctorCmd executes the doctor command and returns an exit code:
// 0 when conversion can run (warnings included), 1 when it cannot.
func runDoctorCmd(ctx context.Context, args []string, env *Environment) int {
	fs := newFlagSet("doctor", env.Stderr, printDoctorUsage)
	asJSON := fs.Bool("json", false, "print the report as JSON")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintln(env.Stderr, "error:", err)
		return ExitUsage
	}

	result := runDoctor(ctx)
	if *asJSON {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(ctx context.Context) *doctorResult {
	r := &doctorResult{
		Env: envInfo{
			OS:     runtime.GOOS,
			Arch:   runtime.GOARCH,
			CPUs:   runtime.GOMAXPROCS(0),
			Binary: os.Getenv("WORD2PDF_LIBREOFFICE"),
			Engine: os.Getenv("WORD2PDF_ENGINE"),
		},
	}

	r.note(sectionEngines, severityOK, "text", "built in")
	checkLibreOffice(ctx, r)
	checkEnvironment(r)
	checkTempDir(r)

	switch {
	case len(r.Errors) > 0:
		r.Status = "errors"
	case len(r.Warnings) > 0:
		r.Status = "warnings"
	default:
		r.Status = "ready"
	}
	return r
}

// checkLibreOffice detects the native converter. Only the libreoffice engine
// needs it, so a missing binary is an error only when that engine is chosen.
func checkLibreOffice(ctx context.Context, r *doctorResult) {
	path, err := word2pdf.LookupLibreOffice(r.Env.Binary)
	if err != nil {
		sev := severityWarn
		if strings.EqualFold(strings.TrimSpace(r.Env.Engine), string(word2pdf.EngineLibreOffice)) {
			sev = severityError
		}
		r.note(sectionEngines, sev, "libreoffice",
			"LibreOffice not found; .doc files need --engine libreoffice. Install LibreOffice or set WORD2PDF_LIBREOFFICE")
		return
	}
	r.LibreOffice.Found = true
	r.LibreOffice.Path = path
	r.note(sectionEngines, severityOK, "libreoffice", path)

	ctx, cancel := context.WithTimeout(ctx, versionTimeout)
	defer cancel()
	out, err := exec.CommandContext(ctx, path, "--version").Output() // #nosec G204 -- resolved binary path
	if err != nil {
		r.note(sectionEngines, severityWarn, "version", fmt.Sprintf("Could not get LibreOffice version: %v", err))
		return
	}
	r.LibreOffice.Version = strings.TrimSpace(string(out))
	r.note(sectionEngines, severityOK, "version", r.LibreOffice.Version)
}

// checkEnvironment records the platform and detects containers and CI.
func checkEnvironment(r *doctorResult) {
	r.note(sectionEnvironment, severityOK, "platform",
		fmt.Sprintf("%s/%s (%d CPUs)", r.Env.OS, r.Env.Arch, r.Env.CPUs))

	r.Env.Container, r.Env.ContainerHint = isContainer()
	if r.Env.Container {
		r.note(sectionEnvironment, severityOK, "container", "detected ("+r.Env.ContainerHint+")")
		if !r.LibreOffice.Found {
			r.note(sectionEnvironment, severityWarn, "container",
				"Container detected without LibreOffice. Install libreoffice-writer in the image for --engine libreoffice")
		}
	}

	for _, v := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"} {
		if os.Getenv(v) != "" {
			r.Env.CI = true
			r.note(sectionEnvironment, severityOK, "ci", "detected ("+v+")")
			break
		}
	}
}

// isContainer reports whether we run in a container and which signal said so.
func isContainer() (bool, string) {
	if os.Getenv("WORD2PDF_CONTAINER") == "1" {
		return true, "WORD2PDF_CONTAINER=1"
	}
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true, "/.dockerenv"
	}
	// Podman and systemd-nspawn set container=<name>.
	if v := os.Getenv("container"); v != "" {
		return true, "container=" + v
	}
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkTempDir verifies the directory the libreoffice engine works in.
func checkTempDir(r *doctorResult) {
	r.Env.TempDir = os.TempDir()
	f, err := os.CreateTemp("", "word2pdf-doctor-*")
	if err != nil {
		r.note(sectionSystem, severityError, "temp directory",
			fmt.Sprintf("Temp directory not writable: %s", r.Env.TempDir))
		return
	}
	_ = f.Close()
	_ = os.Remove(f.Name())
	r.Env.TempWritable = true
	r.note(sectionSystem, severityOK, "temp directory", "writable ("+r.Env.TempDir+")")
}

var severityMarkers = map[severity]string{
	severityOK:    "[OK]",
	severityWarn:  "[WARN]",
	severityError: "[ERROR]",
}

var statusLines = map[string]string{
	"ready":    "Status: Ready to convert",
	"warnings": "Status: Ready with warnings",
	"errors":   "Status: Not ready (see errors above)",
}

// printDoctorResult writes the human-readable report, one block per section.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "word2pdf doctor")
	for _, section := range sections {
		fmt.Fprintf(w, "\n%s\n", section)
		for _, f := range r.Findings {
			if f.Section == section {
				fmt.Fprintf(w, "  %s %s: %s\n", severityMarkers[f.Severity], f.Name, f.Detail)
			}
		}
	}
	fmt.Fprintf(w, "\n%s\n", statusLines[r.Status])
}
