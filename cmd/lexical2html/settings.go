package main

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	lexical2html "github.com/alnah/go-lexical2html"
	"github.com/alnah/go-lexical2html/internal/config"
	"github.com/alnah/go-lexical2html/internal/hints"
)

// resolveConfig builds the effective configuration in precedence order:
// defaults, the config file, then LEXICAL2HTML_* variables (after loading
// the .env file). Commands merge their flags on top.
func resolveConfig(common *commonFlags, stderr io.Writer) (*config.Config, *envConfig, error) {
	if err := loadDotEnv(common.envFile); err != nil {
		return nil, nil, err
	}
	warnUnknownEnvVars(stderr)
	env := loadEnvConfig()

	cfg := config.DefaultConfig()

	name := common.config
	if name == "" {
		name = env.ConfigPath
	}
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				return nil, nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
			}
			return nil, nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	applyEnvConfig(env, cfg)
	if common.logFile == "" {
		common.logFile = env.LogFile
	}

	return cfg, env, nil
}

// converterOptions maps the effective configuration to converter options.
// The library logger only reports diagnostics in verbose mode; otherwise
// the CLI prints them itself.
func converterOptions(cfg *config.Config, logger *zap.Logger, verbose bool) []lexical2html.Option {
	libLogger := logger.Named("converter")
	if !verbose {
		libLogger = libLogger.WithOptions(zap.IncreaseLevel(zapcore.ErrorLevel))
	}

	opts := []lexical2html.Option{
		lexical2html.WithLogger(libLogger),
		lexical2html.WithStyle(cfg.CSS.Style),
		lexical2html.WithMinifyCSS(cfg.CSS.Minify),
		lexical2html.WithHighlightStyle(cfg.CSS.HighlightStyle),
		lexical2html.WithScript(cfg.Script.Enabled),
		lexical2html.WithMinifyScript(cfg.Script.Minify),
		lexical2html.WithAssetPath(cfg.Assets.BasePath),
		lexical2html.WithBaseURL(cfg.Links.BaseURL),
	}
	if cfg.CSS.Prefix != "" {
		opts = append(opts, lexical2html.WithPrefix(cfg.CSS.Prefix))
	}
	if cfg.Document.Lang != "" {
		opts = append(opts, lexical2html.WithLang(cfg.Document.Lang))
	}
	if d := cfg.PDF.TimeoutDuration(); d > 0 {
		opts = append(opts, lexical2html.WithTimeout(d))
	}
	return opts
}
