package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/alnah/go-lexical2html/internal/config"
)

// envPrefix namespaces every variable read by the CLI.
const envPrefix = "LEXICAL2HTML_"

// defaultEnvFile is loaded when present; a missing default file is not an error.
const defaultEnvFile = ".env"

// ErrEnvFile is returned when an explicitly requested .env file cannot be read.
var ErrEnvFile = errors.New("failed to load env file")

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // LEXICAL2HTML_CONFIG
	LogFile    string // LEXICAL2HTML_LOG_FILE
	Workers    int    // LEXICAL2HTML_WORKERS

	InputDir  string // LEXICAL2HTML_INPUT_DIR
	OutputDir string // LEXICAL2HTML_OUTPUT_DIR
	Shape     string // LEXICAL2HTML_SHAPE

	Style          string // LEXICAL2HTML_STYLE
	Prefix         string // LEXICAL2HTML_PREFIX
	HighlightStyle string // LEXICAL2HTML_HIGHLIGHT_STYLE
	AssetPath      string // LEXICAL2HTML_ASSET_PATH

	Title   string // LEXICAL2HTML_TITLE
	Lang    string // LEXICAL2HTML_LANG
	BaseURL string // LEXICAL2HTML_BASE_URL

	Timeout string // LEXICAL2HTML_TIMEOUT
	Addr    string // LEXICAL2HTML_ADDR
}

// knownEnvVars lists valid LEXICAL2HTML_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"LEXICAL2HTML_CONFIG":          true,
	"LEXICAL2HTML_LOG_FILE":        true,
	"LEXICAL2HTML_WORKERS":         true,
	"LEXICAL2HTML_INPUT_DIR":       true,
	"LEXICAL2HTML_OUTPUT_DIR":      true,
	"LEXICAL2HTML_SHAPE":           true,
	"LEXICAL2HTML_STYLE":           true,
	"LEXICAL2HTML_PREFIX":          true,
	"LEXICAL2HTML_HIGHLIGHT_STYLE": true,
	"LEXICAL2HTML_ASSET_PATH":      true,
	"LEXICAL2HTML_TITLE":           true,
	"LEXICAL2HTML_LANG":            true,
	"LEXICAL2HTML_BASE_URL":        true,
	"LEXICAL2HTML_TIMEOUT":         true,
	"LEXICAL2HTML_ADDR":            true,
	"LEXICAL2HTML_CONTAINER":       true, // read by doctor
}

// loadDotEnv reads KEY=VALUE pairs from path into the process environment.
// Variables already set are left untouched, so the real environment wins.
func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if path == defaultEnvFile && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("%w: %s: %v", ErrEnvFile, path, err)
	}
	return nil
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath:     os.Getenv("LEXICAL2HTML_CONFIG"),
		LogFile:        os.Getenv("LEXICAL2HTML_LOG_FILE"),
		InputDir:       os.Getenv("LEXICAL2HTML_INPUT_DIR"),
		OutputDir:      os.Getenv("LEXICAL2HTML_OUTPUT_DIR"),
		Shape:          os.Getenv("LEXICAL2HTML_SHAPE"),
		Style:          os.Getenv("LEXICAL2HTML_STYLE"),
		Prefix:         os.Getenv("LEXICAL2HTML_PREFIX"),
		HighlightStyle: os.Getenv("LEXICAL2HTML_HIGHLIGHT_STYLE"),
		AssetPath:      os.Getenv("LEXICAL2HTML_ASSET_PATH"),
		Title:          os.Getenv("LEXICAL2HTML_TITLE"),
		Lang:           os.Getenv("LEXICAL2HTML_LANG"),
		BaseURL:        os.Getenv("LEXICAL2HTML_BASE_URL"),
		Timeout:        os.Getenv("LEXICAL2HTML_TIMEOUT"),
		Addr:           os.Getenv("LEXICAL2HTML_ADDR"),
	}

	// Invalid or non-positive values are ignored
	if workers := os.Getenv("LEXICAL2HTML_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars writes a warning for each unrecognized LEXICAL2HTML_* variable.
// Helps catch typos like LEXICAL2HTML_STYEL.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig overlays set environment variables on cfg.
// Precedence is flags > env > config file > defaults; flags are merged
// afterwards by each command.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	overrides := []struct {
		value string
		dst   *string
	}{
		{env.InputDir, &cfg.Input.DefaultDir},
		{env.OutputDir, &cfg.Output.DefaultDir},
		{env.Shape, &cfg.Output.Shape},
		{env.Style, &cfg.CSS.Style},
		{env.Prefix, &cfg.CSS.Prefix},
		{env.HighlightStyle, &cfg.CSS.HighlightStyle},
		{env.AssetPath, &cfg.Assets.BasePath},
		{env.Title, &cfg.Document.Title},
		{env.Lang, &cfg.Document.Lang},
		{env.BaseURL, &cfg.Links.BaseURL},
		{env.Timeout, &cfg.PDF.Timeout},
		{env.Addr, &cfg.Server.Addr},
	}
	for _, o := range overrides {
		if o.value != "" {
			*o.dst = o.value
		}
	}
}
