package assets

import "errors"

// Resolver combines custom and embedded loaders. When a custom directory is
// configured it is tried first, and missing assets fall back to the
// embedded copies.
type Resolver struct {
	custom   Loader // nil if no custom path configured
	embedded Loader
}

// NewResolver creates a Resolver. An empty customBasePath uses embedded
// assets only. A non-empty path must be a readable directory.
func NewResolver(customBasePath string) (*Resolver, error) {
	r := &Resolver{embedded: NewEmbeddedLoader()}

	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		r.custom = fsLoader
	}
	return r, nil
}

// LoadPage implements Loader.
func (r *Resolver) LoadPage(name string) (string, error) {
	return r.loadWithFallback(func(l Loader) (string, error) { return l.LoadPage(name) })
}

// LoadStyle implements Loader.
func (r *Resolver) LoadStyle(name string) (string, error) {
	return r.loadWithFallback(func(l Loader) (string, error) { return l.LoadStyle(name) })
}

func (r *Resolver) loadWithFallback(loadFn func(Loader) (string, error)) (string, error) {
	if r.custom == nil {
		return loadFn(r.embedded)
	}

	content, err := loadFn(r.custom)
	if err == nil {
		return content, nil
	}
	// Validation and I/O errors are not masked by the fallback.
	if !isNotFoundError(err) {
		return "", err
	}
	return loadFn(r.embedded)
}

func isNotFoundError(err error) bool {
	return errors.Is(err, ErrPageNotFound) || errors.Is(err, ErrStyleNotFound)
}

// HasCustomLoader returns true if a custom asset directory is configured.
func (r *Resolver) HasCustomLoader() bool {
	return r.custom != nil
}

// Compile-time interface check.
var _ Loader = (*Resolver)(nil)
