package main

import (
	"fmt"
	"io"

	lexical2html "github.com/alnah/go-lexical2html"
	"github.com/alnah/go-lexical2html/internal/mcpserver"
)

// parseMCPFlags parses mcp command flags.
func parseMCPFlags(args []string, w io.Writer) (*mcpFlags, error) {
	f := &mcpFlags{}
	rest, err := parseFlagSet(newMCPFlagSet(f), &f.common, args, w, printMCPUsage)
	if err != nil {
		return nil, err
	}
	if len(rest) > 0 {
		return nil, fmt.Errorf("%w: mcp takes no arguments, got %q", ErrUsage, rest)
	}
	return f, nil
}

// runMCP serves the conversion tools over stdio. Stdout carries the
// protocol, so all logging goes to stderr.
func runMCP(args []string, env *Environment) error {
	flags, err := parseMCPFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	cfg, _, err := resolveConfig(&flags.common, env.Stderr)
	if err != nil {
		return err
	}
	mergeStyleFlags(&flags.common, &flags.style, cfg)
	mergeDocumentFlags(&flags.common, &flags.document, cfg)
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

	logger.Info("serving MCP tools on stdio")
	return mcpserver.New(conv, Version).ServeStdio()
}
