// Package config loads and validates the YAML configuration shared by the
// CLI, the HTTP server and the MCP server.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/alnah/go-lexical2html/internal/fileutil"
	"github.com/alnah/go-lexical2html/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrConfigInvalid   = errors.New("invalid config")
)

// AppDirName is the directory under the user config dir searched for configs.
const AppDirName = "go-lexical2html"

// Defaults applied by DefaultConfig.
const (
	DefaultShape       = "full"
	DefaultStyle       = "default"
	DefaultPrefix      = "lexical-content"
	DefaultLang        = "en"
	DefaultPDFTimeout  = "30s"
	DefaultAddr        = ":8080"
	DefaultCacheSize   = 256
	DefaultReadTimeout = "10s"
)

// Field limits.
const (
	MaxTitleLength  = 200
	MaxPrefixLength = 64
	MaxURLLength    = 2048
	MaxCacheSize    = 100000
	MaxPDFTimeout   = 10 * time.Minute
)

var (
	prefixRule = validation.Match(regexp.MustCompile(`^-?[_a-zA-Z][_a-zA-Z0-9-]*$`)).
			Error("must be a valid CSS class name")
	langRule = validation.Match(regexp.MustCompile(`^[A-Za-z]{2,3}(-[A-Za-z0-9]{1,8})*$`)).
			Error("must be a BCP 47 language tag")
	shapes = []any{"fragment", "style", "full", "document"}
)

func init() {
	// Report field names as they are spelled in the YAML file.
	validation.ErrorTag = "yaml"
}

// Config holds all configuration.
type Config struct {
	Input    InputConfig    `yaml:"input"`
	Output   OutputConfig   `yaml:"output"`
	CSS      CSSConfig      `yaml:"css"`
	Script   ScriptConfig   `yaml:"script"`
	Document DocumentConfig `yaml:"document"`
	Links    LinksConfig    `yaml:"links"`
	Assets   AssetsConfig   `yaml:"assets"`
	PDF      PDFConfig      `yaml:"pdf"`
	Server   ServerConfig   `yaml:"server"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = next to source)
	Shape      string `yaml:"shape"`      // fragment, style, full, document
}

// Validate validates the output configuration.
func (c *OutputConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Shape, validation.In(shapes...)),
	)
}

// CSSConfig defines stylesheet options.
type CSSConfig struct {
	Style          string `yaml:"style"`          // style name, file path or inline CSS
	Prefix         string `yaml:"prefix"`         // wrapper class replacing lexical-content
	Minify         bool   `yaml:"minify"`         // minify the bundled stylesheet
	HighlightStyle string `yaml:"highlightStyle"` // chroma style for code-highlight colors (empty = none)
}

// Validate validates the CSS configuration.
func (c *CSSConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Prefix, validation.Length(1, MaxPrefixLength), prefixRule),
		validation.Field(&c.HighlightStyle, validation.Length(1, 64)),
	)
}

// ScriptConfig defines interaction script options.
type ScriptConfig struct {
	Enabled bool `yaml:"enabled"`
	Minify  bool `yaml:"minify"`
}

// DocumentConfig defines the full-document wrapper.
type DocumentConfig struct {
	Title string `yaml:"title"`
	Lang  string `yaml:"lang"`
}

// Validate validates the document configuration.
func (c *DocumentConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Title, validation.Length(0, MaxTitleLength)),
		validation.Field(&c.Lang, langRule),
	)
}

// LinksConfig defines link rewriting.
type LinksConfig struct {
	BaseURL string `yaml:"baseURL"` // resolve relative src/href against this (empty = off)
}

// Validate validates the links configuration.
func (c *LinksConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.BaseURL, validation.Length(0, MaxURLLength), is.URL),
	)
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// PDFConfig defines PDF output options.
type PDFConfig struct {
	Enabled bool   `yaml:"enabled"`
	Timeout string `yaml:"timeout"` // Go duration, e.g. "30s"
}

// Validate validates the PDF configuration.
func (c *PDFConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Timeout, validation.By(durationWithin(MaxPDFTimeout))),
	)
}

// TimeoutDuration returns the parsed timeout, or zero when unset or invalid.
func (c *PDFConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// ServerConfig defines the HTTP service.
type ServerConfig struct {
	Addr        string `yaml:"addr"`
	CacheSize   int    `yaml:"cacheSize"`   // converted results kept in memory (0 = no cache)
	ReadTimeout string `yaml:"readTimeout"` // Go duration
}

// Validate validates the server configuration.
func (c *ServerConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Addr, validation.Required),
		validation.Field(&c.CacheSize, validation.Min(0), validation.Max(MaxCacheSize)),
		validation.Field(&c.ReadTimeout, validation.By(durationWithin(time.Hour))),
	)
}

// ReadTimeoutDuration returns the parsed read timeout, or zero when unset or invalid.
func (c *ServerConfig) ReadTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ReadTimeout)
	return d
}

// durationWithin accepts empty strings and positive durations up to limit.
func durationWithin(limit time.Duration) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		if s == "" {
			return nil
		}
		d, err := time.ParseDuration(s)
		if err != nil {
			return errors.New("must be a duration such as 30s or 2m")
		}
		if d <= 0 || d > limit {
			return fmt.Errorf("must be between 0 and %s", limit)
		}
		return nil
	}
}

// Validate checks every section. Called automatically by LoadConfig, but
// available for consumers who construct Config manually.
func (c *Config) Validate() error {
	sections := []struct {
		name string
		v    validation.Validatable
	}{
		{"output", &c.Output},
		{"css", &c.CSS},
		{"document", &c.Document},
		{"links", &c.Links},
		{"pdf", &c.PDF},
		{"server", &c.Server},
	}
	for _, s := range sections {
		if err := s.v.Validate(); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrConfigInvalid, s.name, err)
		}
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Output:   OutputConfig{Shape: DefaultShape},
		CSS:      CSSConfig{Style: DefaultStyle, Prefix: DefaultPrefix},
		Script:   ScriptConfig{Enabled: true},
		Document: DocumentConfig{Lang: DefaultLang},
		PDF:      PDFConfig{Timeout: DefaultPDFTimeout},
		Server: ServerConfig{
			Addr:        DefaultAddr,
			CacheSize:   DefaultCacheSize,
			ReadTimeout: DefaultReadTimeout,
		},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Values absent from the file keep their DefaultConfig value.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	} else if !fileutil.FileExists(configPath) {
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
	}

	cfg := DefaultConfig()
	if err := yamlutil.ReadFileStrict(configPath, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths lists the locations tried for a config name, in order:
// the current directory, then the user config directory, each with
// .yaml before .yml.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, AppDirName, name+ext))
		}
	}
	return paths
}

func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
