package word2pdf

import (
	"errors"
	"testing"
)

// ---------------------------------------------------------------------------
// TestLookupLibreOffice - Binary resolution
// ---------------------------------------------------------------------------

func TestLookupLibreOffice_NotFound(t *testing.T) {
	t.Parallel()

	_, err := LookupLibreOffice("word2pdf-test-no-such-binary")
	if !errors.Is(err, ErrConverterNotFound) {
		t.Errorf("error = %v, want %v", err, ErrConverterNotFound)
	}
}

// ---------------------------------------------------------------------------
// TestFileURL - Profile URL formatting
// ---------------------------------------------------------------------------

func TestFileURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"/tmp/word2pdf-1/profile", "file:///tmp/word2pdf-1/profile"},
		{"relative/profile", "file:///relative/profile"},
	}

	for _, tt := range tests {
		if got := fileURL(tt.in); got != tt.want {
			t.Errorf("fileURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestQuoteOutput(t *testing.T) {
	t.Parallel()

	if got := quoteOutput("  \n"); got != "" {
		t.Errorf("quoteOutput(blank) = %q, want empty", got)
	}
	if got := quoteOutput(" Error: source file could not be loaded\n"); got != ": Error: source file could not be loaded" {
		t.Errorf("quoteOutput = %q", got)
	}

	long := make([]byte, maxOutput*2)
	for i := range long {
		long[i] = 'x'
	}
	if got := quoteOutput(string(long)); len(got) != len(": ")+maxOutput+len("...") {
		t.Errorf("quoteOutput(long) length = %d", len(got))
	}
}
