package main

// Notes:
// - Usage output is checked for required strings, not exact formatting.
// - runHelp: we test routing to the correct help topic.

import (
	"bytes"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestUsage - Usage text content
// ---------------------------------------------------------------------------

func TestUsage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		print    func(w *bytes.Buffer)
		required []string
	}{
		{
			name:     "main",
			print:    func(w *bytes.Buffer) { printUsage(w) },
			required: []string{"Usage: word2pdf", "serve", "convert", "upload", "doctor", "version", "help"},
		},
		{
			name:     "serve",
			print:    func(w *bytes.Buffer) { printServeUsage(w) },
			required: []string{"--addr", "--max-concurrent", "--request-timeout", "--max-files", "--engine", "--config"},
		},
		{
			name:     "convert",
			print:    func(w *bytes.Buffer) { printConvertUsage(w) },
			required: []string{"--output", "converted-pdfs.zip", "--font-size", "--margin", "--timeout", "--quiet"},
		},
		{
			name:     "upload",
			print:    func(w *bytes.Buffer) { printUploadUsage(w) },
			required: []string{"--server", "http://localhost:8080", "--max-total-size", "--verbose"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			tt.print(&buf)
			for _, s := range tt.required {
				if !strings.Contains(buf.String(), s) {
					t.Errorf("usage should contain %q", s)
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRunHelp - Topic routing
// ---------------------------------------------------------------------------

func TestRunHelp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		topic      string
		wantStdout string
		wantStderr string
	}{
		{"serve", "Usage: word2pdf serve", ""},
		{"convert", "Usage: word2pdf convert", ""},
		{"upload", "Usage: word2pdf upload", ""},
		{"doctor", "Usage: word2pdf doctor", ""},
		{"version", "Usage: word2pdf version", ""},
		{"help", "Usage: word2pdf help", ""},
		{"nope", "", "Unknown command: nope"},
	}

	for _, tt := range tests {
		t.Run(tt.topic, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := testEnv()
			runHelp([]string{tt.topic}, env)

			if tt.wantStdout != "" && !strings.Contains(stdout.String(), tt.wantStdout) {
				t.Errorf("stdout = %q, want %q", stdout.String(), tt.wantStdout)
			}
			if tt.wantStderr != "" && !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want %q", stderr.String(), tt.wantStderr)
			}
		})
	}
}
