package lexical2html

import (
	"time"

	"go.uber.org/zap"

	"github.com/alnah/go-lexical2html/internal/render"
)

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout        time.Duration
	styleInput     string // name, file path or inline CSS
	prefix         string
	minifyCSS      bool
	scriptEnabled  bool
	minifyScript   bool
	highlightStyle string
	assetPath      string
	baseURL        string
	lang           string
	idGenerator    render.IDGenerator
}

// defaultTimeout bounds PDF page loading when the context has no deadline.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the PDF page-load timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("lexical2html: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithLogger sets the logger used for conversion diagnostics.
// A nil logger is ignored; the default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Converter) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithStyle sets the stylesheet. The value is resolved as:
//   - a file path when it contains a path separator ("./brand.css"),
//   - inline CSS when it contains "{",
//   - otherwise a style name looked up through the asset loader.
//
// Every ".lexical-content" selector in the result is rewritten by WithPrefix.
func WithStyle(style string) Option {
	return func(c *Converter) {
		c.cfg.styleInput = style
	}
}

// WithPrefix replaces the "lexical-content" wrapper class, both in the
// stylesheet and on the bundle's wrapper div. Must be a valid CSS class name.
func WithPrefix(prefix string) Option {
	return func(c *Converter) {
		c.cfg.prefix = prefix
	}
}

// WithMinifyCSS strips comments and whitespace from the stylesheet.
func WithMinifyCSS(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.minifyCSS = enabled
	}
}

// WithScript toggles the copy/fold interaction script in ShapeFull and
// ShapeDocument bundles. Enabled by default.
func WithScript(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.scriptEnabled = enabled
	}
}

// WithMinifyScript strips comment lines and indentation from the script.
func WithMinifyScript(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.minifyScript = enabled
	}
}

// WithHighlightStyle appends token colors for code-highlight spans taken from
// a chroma style (e.g. "github", "monokai"). Empty disables it.
func WithHighlightStyle(name string) Option {
	return func(c *Converter) {
		c.cfg.highlightStyle = name
	}
}

// WithAssetPath loads styles, scripts and templates from basePath first,
// falling back to the embedded defaults.
func WithAssetPath(basePath string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = basePath
	}
}

// WithAssetLoader sets a custom asset loader. Takes precedence over WithAssetPath.
func WithAssetLoader(loader AssetLoader) Option {
	return func(c *Converter) {
		c.publicAssetLoader = loader
	}
}

// WithBaseURL resolves relative image sources and link targets against
// baseURL. Must be an absolute http or https URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Converter) {
		c.cfg.baseURL = baseURL
	}
}

// WithLang sets the lang attribute of ShapeDocument output (default "en").
func WithLang(lang string) Option {
	return func(c *Converter) {
		c.cfg.lang = lang
	}
}

// WithIDGenerator replaces the random element-id generator. Useful for
// reproducible output in tests and snapshots.
func WithIDGenerator(gen func() string) Option {
	return func(c *Converter) {
		c.cfg.idGenerator = gen
	}
}
