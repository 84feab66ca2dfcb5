package main

// Notes:
// - Tests go through runDoctorCmd() observable outputs.
// - LibreOffice presence depends on the machine; assertions that need a
//   known state point WORD2PDF_LIBREOFFICE at a missing path.
// - Tests that set environment variables cannot use t.Parallel().

import (
	"context"
	"encoding/json"
	"runtime"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestRunDoctorCmd_JSONOutput - JSON format and structure
// ---------------------------------------------------------------------------

func TestRunDoctorCmd_JSONOutput(t *testing.T) {
	t.Parallel()

	env, stdout, _ := testEnv()
	exitCode := runDoctorCmd(context.Background(), []string{"--json"}, env)

	var result doctorResult
	if err := json.Unmarshal(stdout.Bytes(), &result); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, stdout.String())
	}
	if result.Env.OS != runtime.GOOS || result.Env.Arch != runtime.GOARCH {
		t.Errorf("platform = %s/%s", result.Env.OS, result.Env.Arch)
	}
	if result.Env.CPUs < 1 {
		t.Errorf("CPUs = %d", result.Env.CPUs)
	}

	valid := map[string]bool{"ready": true, "warnings": true, "errors": true}
	if !valid[result.Status] {
		t.Errorf("status = %q", result.Status)
	}
	if (result.Status == "errors") != (exitCode == ExitGeneral) {
		t.Errorf("status %q with exit code %d", result.Status, exitCode)
	}
}

func TestRunDoctorCmd_HumanOutput(t *testing.T) {
	t.Parallel()

	env, stdout, _ := testEnv()
	runDoctorCmd(context.Background(), nil, env)

	for _, s := range []string{"word2pdf doctor", "Engines", "[OK] text: built in", "Environment", "System", "Status:"} {
		if !strings.Contains(stdout.String(), s) {
			t.Errorf("output missing %q", s)
		}
	}
}

// ---------------------------------------------------------------------------
// TestRunDoctorCmd_LibreOffice - Missing binary per engine
// ---------------------------------------------------------------------------

func TestRunDoctorCmd_LibreOffice(t *testing.T) {
	t.Run("missing with text engine warns", func(t *testing.T) {
		t.Setenv("WORD2PDF_LIBREOFFICE", "/nonexistent/soffice")
		t.Setenv("WORD2PDF_ENGINE", "text")

		env, stdout, _ := testEnv()
		code := runDoctorCmd(context.Background(), []string{"--json"}, env)

		var result doctorResult
		if err := json.Unmarshal(stdout.Bytes(), &result); err != nil {
			t.Fatal(err)
		}
		if result.LibreOffice.Found {
			t.Error("Found = true for a missing binary")
		}
		if !containsAny(result.Warnings, "LibreOffice not found") {
			t.Errorf("warnings = %q", result.Warnings)
		}
		if containsAny(result.Errors, "LibreOffice not found") {
			t.Errorf("errors = %q", result.Errors)
		}
		if result.Status == "errors" && code != ExitGeneral {
			t.Errorf("exit code %d for status errors", code)
		}
	})

	t.Run("missing with libreoffice engine errors", func(t *testing.T) {
		t.Setenv("WORD2PDF_LIBREOFFICE", "/nonexistent/soffice")
		t.Setenv("WORD2PDF_ENGINE", "libreoffice")

		env, stdout, _ := testEnv()
		code := runDoctorCmd(context.Background(), nil, env)

		if code != ExitGeneral {
			t.Errorf("exit code = %d, want %d", code, ExitGeneral)
		}
		if !strings.Contains(stdout.String(), "Status: Not ready") {
			t.Errorf("output = %s", stdout.String())
		}
	})
}

func TestRunDoctorCmd_Flags(t *testing.T) {
	t.Parallel()

	env, _, _ := testEnv()
	if got := runDoctorCmd(context.Background(), []string{"--bogus"}, env); got != ExitUsage {
		t.Errorf("unknown flag exit code = %d, want %d", got, ExitUsage)
	}

	env, _, stderr := testEnv()
	if got := runDoctorCmd(context.Background(), []string{"-h"}, env); got != ExitSuccess {
		t.Errorf("-h exit code = %d, want %d", got, ExitSuccess)
	}
	if !strings.Contains(stderr.String(), "Usage: word2pdf doctor") {
		t.Errorf("usage not printed: %q", stderr.String())
	}
}

// ---------------------------------------------------------------------------
// TestIsContainer - Explicit override
// ---------------------------------------------------------------------------

func TestIsContainer_Override(t *testing.T) {
	t.Setenv("WORD2PDF_CONTAINER", "1")

	got, hint := isContainer()
	if !got || hint != "WORD2PDF_CONTAINER=1" {
		t.Errorf("isContainer() = %v, %q", got, hint)
	}
}

func containsAny(list []string, sub string) bool {
	for _, s := range list {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
