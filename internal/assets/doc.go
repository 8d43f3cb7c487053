// Package assets provides the stylesheets, scripts and document template
// bundled with converted HTML.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in assets)
//	    ├── FilesystemLoader  - loads from a custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// AssetResolver is the loader used by the converter: an asset found in the
// custom directory overrides the built-in one of the same name.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css        # stylesheets scoped to .lexical-content
//	├── scripts/
//	│   └── {name}.js         # browser scripts (code-blocks.js)
//	└── templates/
//	    └── {name}.html       # html/template document wrappers
//
// # Syntax Highlighting
//
// HighlightCSS derives colors for the editor's code-highlight token classes
// (.highlight-keyword, .highlight-string, ...) from a chroma style.
//
// # Security
//
// Asset names are validated to prevent path traversal. FilesystemLoader
// resolves symlinks and verifies paths stay within basePath.
package assets
