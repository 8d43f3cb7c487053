package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"syscall"

	"go.uber.org/zap"

	lexical2html "github.com/alnah/go-lexical2html"
	"github.com/alnah/go-lexical2html/internal/config"
	"github.com/alnah/go-lexical2html/internal/hints"
	"github.com/alnah/go-lexical2html/internal/server"
)

// parseServeFlags parses serve command flags.
func parseServeFlags(args []string, w io.Writer) (*serveFlags, error) {
	f := &serveFlags{}
	rest, err := parseFlagSet(newServeFlagSet(f), &f.common, args, w, printServeUsage)
	if err != nil {
		return nil, err
	}
	if len(rest) > 0 {
		return nil, fmt.Errorf("%w: serve takes no arguments, got %q", ErrUsage, rest)
	}
	return f, nil
}

// mergeServeFlags applies explicitly set serve flags over cfg.
func mergeServeFlags(f *serveFlags, cfg *config.Config) {
	mergeStyleFlags(&f.common, &f.style, cfg)
	mergeDocumentFlags(&f.common, &f.document, cfg)
	if f.common.changed("addr") {
		cfg.Server.Addr = f.addr
	}
	if f.common.changed("cache-size") {
		cfg.Server.CacheSize = f.cacheSize
	}
	if f.common.changed("read-timeout") {
		cfg.Server.ReadTimeout = f.readTimeout
	}
}

// runServe starts the HTTP service and blocks until ctx is canceled.
func runServe(ctx context.Context, args []string, env *Environment) error {
	flags, err := parseServeFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	cfg, _, err := resolveConfig(&flags.common, env.Stderr)
	if err != nil {
		return err
	}
	mergeServeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, closeLogger := newLogger(env.Stderr, &flags.common)
	defer closeLogger()

	conv, err := lexical2html.NewConverter(converterOptions(cfg, logger, flags.common.verbose)...)
	if err != nil {
		return err
	}
	defer func() { _ = conv.Close() }()

	srv, err := server.New(conv, server.Config{
		Addr:        cfg.Server.Addr,
		CacheSize:   cfg.Server.CacheSize,
		ReadTimeout: cfg.Server.ReadTimeoutDuration(),
	}, logger.Named("http"))
	if err != nil {
		return err
	}

	logger.Debug("server config",
		zap.String("addr", cfg.Server.Addr),
		zap.Int("cache_size", cfg.Server.CacheSize),
		zap.String("shape", cfg.Output.Shape),
	)

	if err := srv.ListenAndServe(ctx); err != nil {
		if errors.Is(err, syscall.EADDRINUSE) {
			return fmt.Errorf("%w%s", err, hints.ForAddressInUse(cfg.Server.Addr))
		}
		return err
	}
	return nil
}
