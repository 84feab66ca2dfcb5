package assets

import (
	"embed"
	"fmt"
)

//go:embed web/pages/*.html
var pages embed.FS

//go:embed web/styles/*.css
var styles embed.FS

// EmbeddedLoader loads assets compiled into the binary.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadPage implements Loader.
func (e *EmbeddedLoader) LoadPage(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	content, err := pages.ReadFile("web/pages/" + name + ".html")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrPageNotFound, name)
	}
	return string(content), nil
}

// LoadStyle implements Loader.
func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	content, err := styles.ReadFile("web/styles/" + name + ".css")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrStyleNotFound, name)
	}
	return string(content), nil
}

// Compile-time interface check.
var _ Loader = (*EmbeddedLoader)(nil)
