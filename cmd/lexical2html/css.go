package main

import (
	"fmt"
	"io"
	"strings"

	lexical2html "github.com/alnah/go-lexical2html"
)

// parseCSSFlags parses css command flags.
func parseCSSFlags(args []string, w io.Writer) (*cssFlags, error) {
	f := &cssFlags{}
	rest, err := parseFlagSet(newCSSFlagSet(f), &f.common, args, w, printCSSUsage)
	if err != nil {
		return nil, err
	}
	if len(rest) > 0 {
		return nil, fmt.Errorf("%w: css takes no arguments, got %q", ErrUsage, rest)
	}
	return f, nil
}

// runCSS prints the stylesheet that converted bundles embed, so it can be
// served separately from fragment output.
func runCSS(args []string, env *Environment) error {
	flags, err := parseCSSFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	if flags.list {
		fmt.Fprintf(env.Stdout, "Styles: %s\n", strings.Join(lexical2html.Styles(), ", "))
		fmt.Fprintf(env.Stdout, "Highlight styles: %s\n", strings.Join(lexical2html.HighlightStyles(), ", "))
		return nil
	}

	cfg, _, err := resolveConfig(&flags.common, env.Stderr)
	if err != nil {
		return err
	}
	mergeStyleFlags(&flags.common, &flags.style, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, closeLogger := newLogger(env.Stderr, &flags.common)
	defer closeLogger()

	opts := append(converterOptions(cfg, logger, flags.common.verbose), lexical2html.WithScript(false))
	conv, err := lexical2html.NewConverter(opts...)
	if err != nil {
		return err
	}
	defer func() { _ = conv.Close() }()

	css := conv.CSS()
	if css != "" && !strings.HasSuffix(css, "\n") {
		css += "\n"
	}
	_, err = io.WriteString(env.Stdout, css)
	return err
}
