package word2pdf

import (
	"errors"
	"io"
	"testing"
)

// ---------------------------------------------------------------------------
// TestNewFile - In-memory files
// ---------------------------------------------------------------------------

func TestNewFile(t *testing.T) {
	t.Parallel()

	f := NewFile("a.docx", []byte("data"))
	if f.Name != "a.docx" || f.Path != "a.docx" || f.Size != 4 {
		t.Errorf("NewFile() = %+v", f)
	}

	// Each Open starts from the beginning.
	for i := 0; i < 2; i++ {
		rc, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		got, _ := io.ReadAll(rc)
		_ = rc.Close()
		if string(got) != "data" {
			t.Errorf("read %d = %q, want %q", i, got, "data")
		}
	}
}

// ---------------------------------------------------------------------------
// TestBatchSummary - Outcome counts
// ---------------------------------------------------------------------------

func TestBatchSummary(t *testing.T) {
	t.Parallel()

	b := &Batch{Outcomes: []Outcome{
		{Name: "a.docx", Pages: 2},
		{Name: "b.docx", Err: errors.New("corrupt")},
		{Name: "c.docx", Pages: 3},
	}}

	got := b.Summary()
	want := Summary{Total: 3, Succeeded: 2, Failed: 1, Pages: 5}
	if got != want {
		t.Errorf("Summary() = %+v, want %+v", got, want)
	}

	if empty := (&Batch{}).Summary(); empty != (Summary{}) {
		t.Errorf("empty Summary() = %+v", empty)
	}
}
