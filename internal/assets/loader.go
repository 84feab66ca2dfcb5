package assets

// Loader defines the contract for loading page templates and stylesheets.
type Loader interface {
	// LoadPage loads an HTML page template by name (without .html extension).
	// Returns ErrPageNotFound if the page doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadPage(name string) (string, error)

	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadStyle(name string) (string, error)
}

// Built-in asset names.
const (
	IndexPage    = "index"
	DefaultStyle = "default"
)
