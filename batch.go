package word2pdf

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/alnah/go-word2pdf/internal/archive"
)

// ConvertBatch converts files strictly in input order, one at a time, and
// packages every successful PDF into one archive. Each PDF is added to the
// archive and released before the next file is read, so peak memory stays
// near one file's working set plus the archive.
//
// Per-file failures are recorded in the returned Batch and never abort the
// batch. ConvertBatch returns an error only for an empty batch (ErrNoFiles),
// an archive failure (ErrArchive), or when ctx ends; no partial result is
// returned in those cases.
func (c *Converter) ConvertBatch(ctx context.Context, files []File) (*Batch, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	builder, err := archive.New(c.cfg.archiveDir, c.cfg.compression)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArchive, err)
	}

	batch := &Batch{Outcomes: make([]Outcome, 0, len(files))}
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		out := c.convertFile(ctx, f)
		if out.OK() {
			entry, err := builder.Add(out.Output, out.pdf)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrArchive, err)
			}
			out.Output = entry
			out.pdf = nil
			c.logger.Debug("converted file",
				"file", f.Name, "output", entry, "pages", out.Pages,
				"bytes", out.Size, "duration", out.Duration)
		} else {
			c.logger.Debug("file failed", "file", f.Name, "error", out.Err, "duration", out.Duration)
		}
		batch.Outcomes = append(batch.Outcomes, out)
	}

	// A deadline hit during the last file still aborts the whole batch.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	batch.Archive, err = builder.Bytes()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArchive, err)
	}
	return batch, nil
}

// readFile loads a File's content, enforcing the per-file size cap.
func (c *Converter) readFile(f File) ([]byte, error) {
	if f.Open == nil {
		return nil, errors.New("reading file: no content")
	}
	limit := c.cfg.maxFileSize
	if limit > 0 && f.Size > limit {
		return nil, fmt.Errorf("%w: %d bytes (limit %d)", ErrFileTooLarge, f.Size, limit)
	}

	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer func() { _ = rc.Close() }()

	var r io.Reader = rc
	if limit > 0 {
		r = io.LimitReader(rc, limit+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	if limit > 0 && int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrFileTooLarge, limit)
	}
	return data, nil
}
