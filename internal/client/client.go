package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	word2pdf "github.com/alnah/go-word2pdf"
	"github.com/alnah/go-word2pdf/internal/fileutil"
)

// Wire names shared with the server.
const (
	ConvertPath            = "/api/convert"
	FilesField             = "files"
	HeaderConversionErrors = "X-Conversion-Errors"
	HeaderBatchID          = "X-Batch-Id"
)

// maxErrorBody caps how much of a non-200 body is read.
const maxErrorBody = 64 << 10

// DefaultTimeout matches the default server request ceiling plus upload time.
const DefaultTimeout = 15 * time.Minute

var (
	ErrInvalidURL = errors.New("invalid server URL")
	ErrManifest   = errors.New("invalid conversion error manifest")
)

// RequestError is a non-200 answer from the server.
type RequestError struct {
	Status  int
	Message string
	Details string
}

func (e *RequestError) Error() string {
	msg := fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
	if e.Details != "" {
		msg += " (" + e.Details + ")"
	}
	return msg
}

// Client talks to a word2pdf server.
type Client struct {
	base string
	http *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client. Nil is ignored.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the overall request timeout. Panics if d is not
// positive (programmer error).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic(fmt.Sprintf("client: timeout must be positive, got %v", d))
	}
	return func(c *Client) { c.http = &http.Client{Timeout: d} }
}

// New returns a Client for the server at baseURL, e.g. "http://localhost:8080".
func New(baseURL string, opts ...Option) (*Client, error) {
	if !fileutil.IsURL(baseURL) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, baseURL)
	}
	c := &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Convert uploads files as one batch. The multipart body is streamed, so
// only one file is open at a time.
func (c *Client) Convert(ctx context.Context, files []word2pdf.File) (*Response, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		pw.CloseWithError(writeParts(mw, files))
	}()

	url := c.base + ConvertPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, pr)
	if err != nil {
		_ = pr.CloseWithError(err)
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		_ = pr.CloseWithError(err)
		return nil, fmt.Errorf("POST %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, readRequestError(resp)
	}

	archive, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading archive: %w", err)
	}
	manifest, err := decodeManifest(resp.Header.Get(HeaderConversionErrors))
	if err != nil {
		return nil, err
	}
	return &Response{
		Archive: archive,
		Errors:  manifest,
		BatchID: resp.Header.Get(HeaderBatchID),
	}, nil
}

func writeParts(mw *multipart.Writer, files []word2pdf.File) error {
	for _, f := range files {
		if err := writePart(mw, f); err != nil {
			return err
		}
	}
	return mw.Close()
}

func writePart(mw *multipart.Writer, f word2pdf.File) error {
	if f.Open == nil {
		return fmt.Errorf("%s: no content", f.Name)
	}
	part, err := mw.CreateFormFile(FilesField, f.Name)
	if err != nil {
		return err
	}
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("opening %s: %w", f.Name, err)
	}
	defer func() { _ = rc.Close() }()
	if _, err := io.Copy(part, rc); err != nil {
		return fmt.Errorf("sending %s: %w", f.Name, err)
	}
	return nil
}

func readRequestError(resp *http.Response) error {
	reqErr := &RequestError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var body struct {
		Error   string `json:"error"`
		Details string `json:"details"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Error != "" {
		reqErr.Message = body.Error
		reqErr.Details = body.Details
	} else if text := strings.TrimSpace(string(raw)); text != "" {
		reqErr.Details = text
	}
	return reqErr
}

// decodeManifest parses the X-Conversion-Errors value. An absent or empty
// header means every file converted.
func decodeManifest(value string) ([]string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	var lines []string
	if err := json.Unmarshal([]byte(value), &lines); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrManifest, err)
	}
	return lines, nil
}
