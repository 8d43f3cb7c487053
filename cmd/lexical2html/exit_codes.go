package main

import (
	"context"
	"errors"
	"os"

	lexical2html "github.com/alnah/go-lexical2html"
	"github.com/alnah/go-lexical2html/internal/config"
	"github.com/alnah/go-lexical2html/internal/hints"
)

// Exit codes for the lexical2html CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, input document or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, lexical2html.ErrBrowserConnect) ||
		errors.Is(err, lexical2html.ErrPageCreate) ||
		errors.Is(err, lexical2html.ErrPageLoad) ||
		errors.Is(err, lexical2html.ErrPDFGeneration) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrNoDocuments) ||
		errors.Is(err, ErrEnvFile) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrConfigInvalid) ||
		errors.Is(err, lexical2html.ErrEmptyInput) ||
		errors.Is(err, lexical2html.ErrInvalidDocument) ||
		errors.Is(err, lexical2html.ErrInvalidShape) ||
		errors.Is(err, lexical2html.ErrInvalidCSSPrefix) ||
		errors.Is(err, lexical2html.ErrInvalidBaseURL) ||
		errors.Is(err, lexical2html.ErrStyleNotFound) ||
		errors.Is(err, lexical2html.ErrScriptNotFound) ||
		errors.Is(err, lexical2html.ErrTemplateNotFound) ||
		errors.Is(err, lexical2html.ErrHighlightStyleNotFound) ||
		errors.Is(err, lexical2html.ErrInvalidAssetPath) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrUnsupportedShell) {
		return ExitUsage
	}

	return ExitGeneral
}

// hintFor returns an actionable hint for err, or "" when none applies.
func hintFor(err error) string {
	switch {
	case errors.Is(err, lexical2html.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, lexical2html.ErrEmptyInput),
		errors.Is(err, lexical2html.ErrInvalidDocument):
		return hints.ForInvalidDocument()
	case errors.Is(err, lexical2html.ErrStyleNotFound):
		return hints.ForStyleNotFound(lexical2html.Styles())
	case errors.Is(err, lexical2html.ErrHighlightStyleNotFound):
		return hints.ForStyleNotFound(lexical2html.HighlightStyles())
	}
	return ""
}
