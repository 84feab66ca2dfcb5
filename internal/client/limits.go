package client

import (
	"errors"
	"fmt"
	"strings"

	word2pdf "github.com/alnah/go-word2pdf"
	"github.com/alnah/go-word2pdf/internal/fileutil"
)

// Selection errors. A rejected selection leaves the session untouched.
var (
	ErrTooManyFiles  = errors.New("too many files")
	ErrFileTooLarge  = errors.New("file too large")
	ErrTotalTooLarge = errors.New("total size too large")
)

// Default limits, matching the server defaults.
const (
	DefaultMaxFiles     = 100
	DefaultMaxFileSize  = 500 << 20
	DefaultMaxTotalSize = 500 << 20
)

// Limits bounds one selection.
type Limits struct {
	MaxFiles     int
	MaxFileSize  int64
	MaxTotalSize int64
}

// DefaultLimits returns the limits enforced by a default server.
func DefaultLimits() Limits {
	return Limits{
		MaxFiles:     DefaultMaxFiles,
		MaxFileSize:  DefaultMaxFileSize,
		MaxTotalSize: DefaultMaxTotalSize,
	}
}

// Check validates files against the limits: count first, then every
// oversized file, then the total.
func (l Limits) Check(files []word2pdf.File) error {
	if l.MaxFiles > 0 && len(files) > l.MaxFiles {
		return fmt.Errorf("%w: %d selected, maximum %d at once", ErrTooManyFiles, len(files), l.MaxFiles)
	}

	var total int64
	var oversized []string
	for _, f := range files {
		if l.MaxFileSize > 0 && f.Size > l.MaxFileSize {
			oversized = append(oversized, fmt.Sprintf("%s (%s)", f.Name, fileutil.HumanSize(f.Size)))
		}
		total += f.Size
	}
	if len(oversized) > 0 {
		return fmt.Errorf("%w: max %s per file: %s",
			ErrFileTooLarge, fileutil.HumanSize(l.MaxFileSize), strings.Join(oversized, ", "))
	}
	if l.MaxTotalSize > 0 && total > l.MaxTotalSize {
		return fmt.Errorf("%w: %s exceeds limit of %s",
			ErrTotalTooLarge, fileutil.HumanSize(total), fileutil.HumanSize(l.MaxTotalSize))
	}
	return nil
}

// FilterWordFiles keeps .doc and .docx files, in order.
func FilterWordFiles(files []word2pdf.File) []word2pdf.File {
	kept := make([]word2pdf.File, 0, len(files))
	for _, f := range files {
		if fileutil.IsWordDocument(f.Name) {
			kept = append(kept, f)
		}
	}
	return kept
}
