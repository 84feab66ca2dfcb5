package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	word2pdf "github.com/alnah/go-word2pdf"
)

// FilesField is the repeated multipart field carrying documents.
const FilesField = "files"

// multipartSlack covers part headers and boundaries on top of the
// configured total size.
const multipartSlack = 1 << 20

var (
	errTooManyFiles = errors.New("too many files")
	errTooLarge     = errors.New("request too large")
	errInvalidForm  = errors.New("invalid form data")
)

// readUpload streams the multipart body and returns one File per non-empty
// "files" part, in upload order. Parts above maxFileSize are drained and
// returned as files that fail with word2pdf.ErrFileTooLarge, so the batch
// reports them without holding their bytes.
func readUpload(r *http.Request, maxFiles int, maxFileSize int64) ([]word2pdf.File, error) {
	mr, err := r.MultipartReader()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidForm, err)
	}

	var files []word2pdf.File
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			return files, nil
		}
		if err != nil {
			return nil, classifyReadError(err)
		}

		name := part.FileName()
		if part.FormName() != FilesField || name == "" {
			_, err := io.Copy(io.Discard, part)
			_ = part.Close()
			if err != nil {
				return nil, classifyReadError(err)
			}
			continue
		}
		if len(files) == maxFiles {
			_ = part.Close()
			return nil, fmt.Errorf("%w: more than %d", errTooManyFiles, maxFiles)
		}

		f, err := readPart(part, name, maxFileSize)
		_ = part.Close()
		if err != nil {
			return nil, classifyReadError(err)
		}
		files = append(files, f)
	}
}

func readPart(part io.Reader, name string, maxFileSize int64) (word2pdf.File, error) {
	data, err := io.ReadAll(io.LimitReader(part, maxFileSize+1))
	if err != nil {
		return word2pdf.File{}, err
	}
	if int64(len(data)) <= maxFileSize {
		return word2pdf.NewFile(name, data), nil
	}

	rest, err := io.Copy(io.Discard, part)
	if err != nil {
		return word2pdf.File{}, err
	}
	size := int64(len(data)) + rest
	return word2pdf.File{
		Name: name,
		Path: name,
		Size: size,
		Open: func() (io.ReadCloser, error) {
			return nil, fmt.Errorf("%w: %d bytes (limit %d)", word2pdf.ErrFileTooLarge, size, maxFileSize)
		},
	}, nil
}

func classifyReadError(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return fmt.Errorf("%w: body exceeds %d bytes", errTooLarge, maxErr.Limit)
	}
	return fmt.Errorf("%w: %v", errInvalidForm, err)
}

// bodyLimit is the largest accepted request body.
func bodyLimit(maxTotalSize int64) int64 {
	return maxTotalSize + multipartSlack
}

