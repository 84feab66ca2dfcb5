// Package assets provides the upload page served by the converter server.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	Loader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in page)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── Resolver          - combines both with custom-first fallback
//
// A custom directory may override the page template, the stylesheet, or
// both. Anything it lacks falls back to the embedded copy.
//
// # Directory Structure
//
//	{basePath}/
//	├── pages/
//	│   └── {name}.html          # html/template page (e.g., index.html)
//	└── styles/
//	    └── {name}.css           # stylesheet inlined into the page
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
