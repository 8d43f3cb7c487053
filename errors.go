package lexical2html

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyInput      = errors.New("input document cannot be empty")
	ErrInvalidDocument = errors.New("invalid Lexical document")
	ErrInvalidShape    = errors.New("invalid bundle shape")
	ErrPDFGeneration   = errors.New("PDF generation failed")
	ErrBrowserConnect  = errors.New("failed to connect to browser")
	ErrPageCreate      = errors.New("failed to create browser page")
	ErrPageLoad        = errors.New("failed to load page")
	ErrPoolClosed      = errors.New("converter pool is closed")

	// Stylesheet errors.
	ErrInvalidCSSPrefix       = errors.New("invalid CSS prefix")
	ErrHighlightStyleNotFound = errors.New("highlight style not found")

	// Link rewriting errors.
	ErrInvalidBaseURL = errors.New("invalid base URL")

	// Asset loading errors.
	ErrStyleNotFound    = errors.New("style not found")
	ErrScriptNotFound   = errors.New("script not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")
)
