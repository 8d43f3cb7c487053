package lexical2html

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/alnah/go-lexical2html/internal/assets"
	"github.com/alnah/go-lexical2html/internal/fileutil"
	"github.com/alnah/go-lexical2html/internal/pipeline"
	"github.com/alnah/go-lexical2html/internal/render"
)

// Converter turns Lexical documents into HTML bundles and, on request, PDF.
// Create with NewConverter, use Convert for conversion, and Close when done.
// A Converter is safe for concurrent use; PDF renders share one browser and
// are serialized.
type Converter struct {
	cfg               converterConfig
	logger            *zap.Logger
	assetLoader       assets.AssetLoader
	publicAssetLoader AssetLoader // from WithAssetLoader
	engine            *render.Engine
	assembler         *pipeline.Assembler
	pdfConverter      pdfConverter
}

// NewConverter creates a Converter. Assets are resolved and the stylesheet
// and script are prepared once here, so every Convert call shares them.
// Returns an error if an asset cannot be loaded or an option is invalid.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			timeout:       defaultTimeout,
			styleInput:    DefaultStyle,
			prefix:        pipeline.DefaultPrefix,
			scriptEnabled: true,
			lang:          pipeline.DefaultLang,
		},
		logger:      zap.NewNop(),
		assetLoader: assets.NewEmbeddedLoader(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
		if err != nil {
			return nil, convertAssetError(err)
		}
		c.assetLoader = resolver
	}
	if c.publicAssetLoader != nil {
		c.assetLoader = &publicToInternalAdapter{pub: c.publicAssetLoader}
	}

	if err := pipeline.ValidatePrefix(c.cfg.prefix); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCSSPrefix, c.cfg.prefix)
	}
	if c.cfg.baseURL != "" {
		if _, err := pipeline.ParseBaseURL(c.cfg.baseURL); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
		}
	}

	css, err := c.buildStylesheet()
	if err != nil {
		return nil, err
	}

	script, err := c.buildScript()
	if err != nil {
		return nil, err
	}

	tmpl, err := c.assetLoader.LoadTemplate(DefaultTemplate)
	if err != nil {
		return nil, fmt.Errorf("loading document template: %w", convertAssetError(err))
	}

	c.assembler, err = pipeline.NewAssembler(pipeline.AssemblerConfig{
		CSS:      css,
		Script:   script,
		Template: tmpl,
		Prefix:   c.cfg.prefix,
		Lang:     c.cfg.lang,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing assembler: %w", err)
	}

	c.engine = render.New(render.WithIDGenerator(c.cfg.idGenerator))

	// Create PDF converter if not injected (e.g., by tests). The browser
	// itself is only launched on the first PDF request.
	if c.pdfConverter == nil {
		c.pdfConverter = newRodConverter(c.cfg.timeout)
	}

	return c, nil
}

// CSS returns the prepared stylesheet shared by every conversion.
func (c *Converter) CSS() string {
	return c.assembler.CSS()
}

// Script returns the prepared interaction script, or "" when disabled.
func (c *Converter) Script() string {
	return c.assembler.Script()
}

// Prefix returns the wrapper class used by the stylesheet and bundles.
func (c *Converter) Prefix() string {
	return c.assembler.Prefix()
}

// Convert decodes the input, renders it and bundles it in the requested shape.
// Node-level problems never fail the call; they are reported in
// Stats.Errors and the affected node is replaced by an HTML comment.
// The context is used for cancellation and bounds PDF rendering.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	start := time.Now()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	shape, err := resolveShape(input.Shape)
	if err != nil {
		return nil, err
	}

	doc, err := c.resolveDocument(input)
	if err != nil {
		return nil, err
	}

	out := c.engine.Convert(doc)
	for _, diag := range out.Errors {
		c.logger.Warn("conversion diagnostic", zap.String("diagnostic", diag))
	}

	fragment := out.HTML
	if c.cfg.baseURL != "" {
		fragment, err = pipeline.RewriteURLs(fragment, c.cfg.baseURL)
		if err != nil {
			return nil, fmt.Errorf("rewriting URLs: %w", err)
		}
	}

	bundle, err := c.assembler.Assemble(ctx, fragment, shape, input.Title)
	if err != nil {
		return nil, fmt.Errorf("assembling %s bundle: %w", shape, err)
	}

	res := &ConvertResult{
		HTML:   fragment,
		CSS:    c.assembler.CSS(),
		Script: c.assembler.Script(),
		Bundle: bundle,
		Stats: Stats{
			NodeCount: out.NodeCount,
			Errors:    out.Errors,
		},
	}

	if input.PDF {
		res.PDF, err = c.renderPDF(ctx, fragment, shape, bundle, input.Title)
		if err != nil {
			return nil, err
		}
	}

	res.Stats.Duration = time.Since(start)
	c.logger.Debug("converted document",
		zap.String("shape", string(shape)),
		zap.Int("nodes", res.Stats.NodeCount),
		zap.Int("diagnostics", len(res.Stats.Errors)),
		zap.Int("bytes", len(res.Bundle)),
		zap.Bool("pdf", input.PDF),
		zap.Duration("duration", res.Stats.Duration),
	)

	return res, nil
}

// Close releases resources (headless Chrome browser).
func (c *Converter) Close() error {
	if c.pdfConverter != nil {
		return c.pdfConverter.Close()
	}
	return nil
}

// renderPDF prints the document shape. A document bundle already requested
// by the caller is reused.
func (c *Converter) renderPDF(ctx context.Context, fragment string, shape pipeline.Shape, bundle, title string) ([]byte, error) {
	page := bundle
	if shape != pipeline.ShapeDocument {
		var err error
		page, err = c.assembler.Assemble(ctx, fragment, pipeline.ShapeDocument, title)
		if err != nil {
			return nil, fmt.Errorf("assembling document for PDF: %w", err)
		}
	}

	pdf, err := c.pdfConverter.ToPDF(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}
	return pdf, nil
}

// resolveDocument returns the decoded document from input.
//
// This is a TRUST BOUNDARY for direct library users who build Input manually.
func (c *Converter) resolveDocument(input Input) (*Document, error) {
	if input.Document != nil {
		return input.Document, nil
	}
	return ParseDocument(input.JSON)
}

// resolveShape maps the public shape onto the assembler's, applying the default.
func resolveShape(s Shape) (pipeline.Shape, error) {
	if err := s.Validate(); err != nil {
		return "", err
	}
	shape, err := pipeline.ParseShape(string(s))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidShape, err)
	}
	return shape, nil
}

// buildStylesheet resolves the style input, appends highlight colors,
// then applies the prefix and optional minification.
func (c *Converter) buildStylesheet() (string, error) {
	css, err := c.resolveStyle()
	if err != nil {
		return "", err
	}

	if c.cfg.highlightStyle != "" {
		highlight, err := assets.HighlightCSS(c.cfg.highlightStyle)
		if err != nil {
			return "", convertAssetError(err)
		}
		css += "\n" + highlight
	}

	css = pipeline.ApplyPrefix(css, c.cfg.prefix)
	if c.cfg.minifyCSS {
		css = pipeline.MinifyCSS(css)
	}
	return css, nil
}

// resolveStyle resolves the style input (name, path, or CSS content) to CSS content.
// An empty input means no stylesheet.
func (c *Converter) resolveStyle() (string, error) {
	input := c.cfg.styleInput
	if input == "" {
		return "", nil
	}

	// File path? (contains / or \)
	if fileutil.IsFilePath(input) {
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return "", fmt.Errorf("%w: %s", ErrStyleNotFound, input)
			}
			return "", fmt.Errorf("loading style file %q: %w", input, err)
		}
		return string(content), nil
	}

	// CSS content? (contains {)
	if fileutil.IsCSS(input) {
		return input, nil
	}

	// Style name -> use asset loader
	css, err := c.assetLoader.LoadStyle(input)
	if err != nil {
		return "", fmt.Errorf("loading style %q: %w", input, convertAssetError(err))
	}
	return css, nil
}

// buildScript loads and prepares the interaction script, if enabled.
func (c *Converter) buildScript() (string, error) {
	if !c.cfg.scriptEnabled {
		return "", nil
	}
	js, err := c.assetLoader.LoadScript(DefaultScript)
	if err != nil {
		return "", fmt.Errorf("loading script: %w", convertAssetError(err))
	}
	if c.cfg.minifyScript {
		js = pipeline.MinifyScript(js)
	}
	return js, nil
}
