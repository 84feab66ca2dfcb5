package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	word2pdf "github.com/alnah/go-word2pdf"
)

// Session errors.
var (
	ErrBusy         = errors.New("a batch is being submitted")
	ErrNotReady     = errors.New("no files ready to submit")
	ErrNoArchive    = errors.New("no archive to download")
	ErrNilSubmitter = errors.New("nil submitter")
)

// Phase is the batch-level state of a Session.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseReady      Phase = "ready"
	PhaseSubmitting Phase = "submitting"
	PhaseCompleted  Phase = "completed"
)

// Status is the state of one file.
type Status string

const (
	StatusPending    Status = "pending"
	StatusConverting Status = "converting"
	StatusSuccess    Status = "success"
	StatusError      Status = "error"
)

// Completion classifies a completed batch.
type Completion string

const (
	FullSuccess Completion = "full-success"
	Partial     Completion = "partial"
	FullFailure Completion = "full-failure"
)

// FileStatus is the view of one selected file.
type FileStatus struct {
	Name   string
	Path   string
	Size   int64
	Status Status
	Error  string // set when Status is StatusError
}

// Response is a successful server answer.
type Response struct {
	Archive []byte
	Errors  []string // manifest lines "<name>: <message>"
	BatchID string
}

// Submitter sends one batch.
type Submitter interface {
	Convert(ctx context.Context, files []word2pdf.File) (*Response, error)
}

// Compile-time interface check.
var _ Submitter = (*Client)(nil)

// Session tracks one selection through submission and download.
// It is safe for concurrent use.
type Session struct {
	mu         sync.Mutex
	limits     Limits
	phase      Phase
	files      []word2pdf.File
	statuses   []FileStatus
	folder     string
	archive    []byte
	batchID    string
	completion Completion
	err        error
}

// NewSession returns an idle session validating against limits.
func NewSession(limits Limits) *Session {
	return &Session{limits: limits, phase: PhaseIdle}
}

// Select replaces the selection with the Word documents among files.
// A selection that breaks a limit is rejected and the session is left as
// it was. An empty selection leaves the session idle.
func (s *Session) Select(files []word2pdf.File) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == PhaseSubmitting {
		return ErrBusy
	}
	words := FilterWordFiles(files)
	if err := s.limits.Check(words); err != nil {
		return err
	}

	s.clear()
	s.files = words
	s.statuses = make([]FileStatus, len(words))
	for i, f := range words {
		path := f.Path
		if path == "" {
			path = f.Name
		}
		s.statuses[i] = FileStatus{Name: f.Name, Path: path, Size: f.Size, Status: StatusPending}
	}
	if len(words) > 0 {
		s.folder = folderOf(words[0].Path)
		s.phase = PhaseReady
	}
	return nil
}

// Submit sends the selection as one batch. On a response every file gets
// success or error from the manifest; when the request itself fails every
// file gets that error, which is also returned. Either way the session
// ends completed.
func (s *Session) Submit(ctx context.Context, sub Submitter) error {
	if sub == nil {
		return ErrNilSubmitter
	}

	s.mu.Lock()
	if s.phase != PhaseReady {
		s.mu.Unlock()
		return fmt.Errorf("%w: session is %s", ErrNotReady, s.phase)
	}
	s.phase = PhaseSubmitting
	for i := range s.statuses {
		s.statuses[i].Status = StatusConverting
	}
	files := s.files
	s.mu.Unlock()

	resp, err := sub.Convert(ctx, files)
	if err == nil && resp == nil {
		err = errors.New("empty response")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		for i := range s.statuses {
			s.statuses[i].Status = StatusError
			s.statuses[i].Error = err.Error()
		}
		s.err = err
	} else {
		s.archive = resp.Archive
		s.batchID = resp.BatchID
		s.assign(resp.Errors)
	}
	s.completion = s.classify()
	s.phase = PhaseCompleted
	return err
}

// assign matches manifest lines to files by their "<name>: " prefix. Each
// line is used once, so duplicate names map onto successive failures.
func (s *Session) assign(manifest []string) {
	used := make([]bool, len(manifest))
	for i := range s.statuses {
		st := &s.statuses[i]
		prefix := st.Name + ": "
		st.Status = StatusSuccess
		for j, line := range manifest {
			if !used[j] && strings.HasPrefix(line, prefix) {
				used[j] = true
				st.Status = StatusError
				st.Error = strings.TrimPrefix(line, prefix)
				break
			}
		}
	}
}

func (s *Session) classify() Completion {
	ok := 0
	for _, st := range s.statuses {
		if st.Status == StatusSuccess {
			ok++
		}
	}
	switch ok {
	case len(s.statuses):
		return FullSuccess
	case 0:
		return FullFailure
	default:
		return Partial
	}
}

// Download writes the archive of a completed batch to w.
func (s *Session) Download(w io.Writer) (int64, error) {
	s.mu.Lock()
	data := s.archive
	done := s.phase == PhaseCompleted
	s.mu.Unlock()

	if !done || data == nil {
		return 0, ErrNoArchive
	}
	n, err := w.Write(data)
	if err != nil {
		return int64(n), fmt.Errorf("writing archive: %w", err)
	}
	return int64(n), nil
}

// Reset discards the selection and any held archive.
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == PhaseSubmitting {
		return ErrBusy
	}
	s.clear()
	return nil
}

func (s *Session) clear() {
	s.phase = PhaseIdle
	s.files = nil
	s.statuses = nil
	s.folder = ""
	s.archive = nil
	s.batchID = ""
	s.completion = ""
	s.err = nil
}

// Phase returns the batch-level state.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Statuses returns a copy of the per-file states, in selection order.
func (s *Session) Statuses() []FileStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]FileStatus, len(s.statuses))
	copy(out, s.statuses)
	return out
}

// Folder returns the selected folder name, or "" for loose files.
func (s *Session) Folder() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.folder
}

// Completion returns the outcome class of a completed batch, or "".
func (s *Session) Completion() Completion {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.completion
}

// BatchID returns the server's batch ID after a successful submit.
func (s *Session) BatchID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.batchID
}

// Err returns the request error of the last submit, if any.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// folderOf returns the first segment of a relative path with at least two
// segments.
func folderOf(path string) string {
	first, _, found := strings.Cut(path, "/")
	if !found {
		return ""
	}
	return first
}
