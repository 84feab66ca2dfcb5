// Package server exposes batch conversion over HTTP.
//
// Routes:
//
//	GET  /             upload page
//	GET  /healthz      liveness and engine name
//	POST /api/convert  multipart "files" in, ZIP of PDFs out
//
// A successful conversion answers 200 with the archive even when some files
// failed; failures are listed in the X-Conversion-Errors header as a JSON
// array of "<name>: <message>" strings.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	word2pdf "github.com/alnah/go-word2pdf"
	"github.com/alnah/go-word2pdf/internal/assets"
)

// Response headers set by POST /api/convert.
const (
	HeaderConversionErrors = "X-Conversion-Errors"
	HeaderBatchID          = "X-Batch-Id"
)

// Defaults.
const (
	DefaultMaxFiles       = 100
	DefaultMaxFileSize    = 500 << 20
	DefaultMaxTotalSize   = 500 << 20
	DefaultRequestTimeout = 10 * time.Minute
	DefaultQueueTimeout   = 30 * time.Second
	DefaultTitle          = "Word to PDF Converter"
	ArchiveFileName       = "converted-pdfs.zip"
)

// BatchConverter converts an ordered batch of files into one archive.
type BatchConverter interface {
	ConvertBatch(ctx context.Context, files []word2pdf.File) (*word2pdf.Batch, error)
	Engine() word2pdf.Engine
}

// Compile-time interface check.
var _ BatchConverter = (*word2pdf.Converter)(nil)

// Server routes conversion requests to a BatchConverter.
type Server struct {
	conv           BatchConverter
	logger         *slog.Logger
	limiter        *limiter
	page           *assets.Page
	router         chi.Router
	maxFiles       int
	maxFileSize    int64
	maxTotalSize   int64
	maxConcurrent  int
	requestTimeout time.Duration
	queueTimeout   time.Duration
	debug          bool
	title          string
	version        string
}

// Option configures a Server.
type Option func(*Server)

// WithLimits sets the upload limits. Panics if any value is not positive
// (programmer error).
func WithLimits(maxFiles int, maxFileSize, maxTotalSize int64) Option {
	if maxFiles <= 0 || maxFileSize <= 0 || maxTotalSize <= 0 {
		panic(fmt.Sprintf("server: limits must be positive, got %d/%d/%d", maxFiles, maxFileSize, maxTotalSize))
	}
	return func(s *Server) {
		s.maxFiles = maxFiles
		s.maxFileSize = maxFileSize
		s.maxTotalSize = maxTotalSize
	}
}

// WithMaxConcurrent bounds the batches converting at once. Zero derives the
// bound from GOMAXPROCS.
func WithMaxConcurrent(n int) Option {
	return func(s *Server) { s.maxConcurrent = n }
}

// WithRequestTimeout sets the hard ceiling of one conversion request.
// Panics if d is not positive (programmer error).
func WithRequestTimeout(d time.Duration) Option {
	if d <= 0 {
		panic(fmt.Sprintf("server: request timeout must be positive, got %v", d))
	}
	return func(s *Server) { s.requestTimeout = d }
}

// WithQueueTimeout sets how long a request waits for a free conversion slot
// before it is answered with 503. Panics if d is not positive.
func WithQueueTimeout(d time.Duration) Option {
	if d <= 0 {
		panic(fmt.Sprintf("server: queue timeout must be positive, got %v", d))
	}
	return func(s *Server) { s.queueTimeout = d }
}

// WithDebug adds stack traces to 500 responses.
func WithDebug(enabled bool) Option {
	return func(s *Server) { s.debug = enabled }
}

// WithLogger sets the logger. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithPage replaces the embedded upload page.
func WithPage(p *assets.Page) Option {
	return func(s *Server) { s.page = p }
}

// WithVersion sets the version shown on the upload page.
func WithVersion(v string) Option {
	return func(s *Server) { s.version = v }
}

// New creates a Server.
func New(conv BatchConverter, opts ...Option) (*Server, error) {
	if conv == nil {
		return nil, errors.New("server: nil converter")
	}

	s := &Server{
		conv:           conv,
		logger:         slog.New(slog.DiscardHandler),
		maxFiles:       DefaultMaxFiles,
		maxFileSize:    DefaultMaxFileSize,
		maxTotalSize:   DefaultMaxTotalSize,
		requestTimeout: DefaultRequestTimeout,
		queueTimeout:   DefaultQueueTimeout,
		title:          DefaultTitle,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.page == nil {
		page, err := assets.LoadIndex(assets.NewEmbeddedLoader())
		if err != nil {
			return nil, fmt.Errorf("loading upload page: %w", err)
		}
		s.page = page
	}
	s.limiter = newLimiter(ResolveConcurrency(s.maxConcurrent))
	s.router = s.routes()
	return s, nil
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// Concurrency returns the number of batches that may convert at once.
func (s *Server) Concurrency() int { return s.limiter.size() }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/healthz", s.handleHealth)
	r.With(middleware.Timeout(s.requestTimeout)).Post("/api/convert", s.handleConvert)
	return r
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := s.page.Render(w, assets.PageData{
		Title:        s.title,
		Engine:       string(s.conv.Engine()),
		Version:      s.version,
		MaxFiles:     s.maxFiles,
		MaxFileSize:  s.maxFileSize,
		MaxTotalSize: s.maxTotalSize,
	})
	if err != nil {
		s.logger.Error("rendering upload page", "error", err, "requestId", middleware.GetReqID(r.Context()))
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"engine":   string(s.conv.Engine()),
		"inFlight": s.limiter.inFlight(),
		"capacity": s.limiter.size(),
	})
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()
	batchID := uuid.NewString()
	log := s.logger.With("batchId", batchID, "requestId", middleware.GetReqID(ctx))

	defer func() {
		if rec := recover(); rec != nil {
			log.Error("conversion panicked", "panic", rec)
			s.writeFailure(w, fmt.Errorf("internal error: %v", rec))
		}
	}()

	switch s.limiter.acquire(ctx, s.queueTimeout) {
	case busy:
		log.Warn("no conversion slot available", "capacity", s.limiter.size())
		writeError(w, http.StatusServiceUnavailable, "Server busy", "")
		return
	case abandoned:
		log.Warn("request ended while queued", "error", ctx.Err())
		return
	}
	defer s.limiter.release()

	r.Body = http.MaxBytesReader(w, r.Body, bodyLimit(s.maxTotalSize))
	files, err := readUpload(r, s.maxFiles, s.maxFileSize)
	if err != nil {
		log.Warn("rejected upload", "error", err)
		switch {
		case errors.Is(err, errTooManyFiles):
			writeError(w, http.StatusBadRequest, "Too many files", err.Error())
		case errors.Is(err, errTooLarge):
			writeError(w, http.StatusRequestEntityTooLarge, "Request too large", err.Error())
		default:
			writeError(w, http.StatusBadRequest, "Invalid form data", err.Error())
		}
		return
	}
	if len(files) == 0 {
		writeError(w, http.StatusBadRequest, "No files provided", "")
		return
	}

	log.Info("converting batch", "files", len(files))
	batch, err := s.conv.ConvertBatch(ctx, files)
	if err != nil {
		if ctx.Err() != nil {
			// The timeout middleware answers 504; a gone client needs nothing.
			log.Warn("batch aborted", "error", err, "duration", time.Since(start))
			return
		}
		if errors.Is(err, word2pdf.ErrNoFiles) {
			writeError(w, http.StatusBadRequest, "No files provided", "")
			return
		}
		log.Error("batch failed", "error", err, "duration", time.Since(start))
		s.writeFailure(w, err)
		return
	}

	for _, o := range batch.Outcomes {
		if !o.OK() {
			log.Warn("file failed", "file", o.Name, "error", o.Err)
		}
	}
	sum := batch.Summary()
	log.Info("batch converted",
		"files", sum.Total, "succeeded", sum.Succeeded, "failed", sum.Failed,
		"pages", sum.Pages, "bytes", len(batch.Archive), "duration", time.Since(start))

	h := w.Header()
	if manifest := batch.Errors(); len(manifest) > 0 {
		value, err := headerJSON(manifest)
		if err != nil {
			s.writeFailure(w, err)
			return
		}
		h.Set(HeaderConversionErrors, value)
	}
	h.Set(HeaderBatchID, batchID)
	h.Set("Content-Type", "application/zip")
	h.Set("Content-Disposition", "attachment; filename="+ArchiveFileName)
	h.Set("Content-Length", strconv.Itoa(len(batch.Archive)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(batch.Archive); err != nil {
		log.Warn("writing archive", "error", err)
	}
}

// writeFailure answers a batch-level failure.
func (s *Server) writeFailure(w http.ResponseWriter, err error) {
	body := errorBody{Error: "Failed to convert files", Details: err.Error()}
	if s.debug {
		body.Stack = string(debug.Stack())
	}
	writeJSON(w, http.StatusInternalServerError, body)
}

// requestLogger logs one line per request with its status and duration.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"requestId", middleware.GetReqID(r.Context()))
		})
	}
}
