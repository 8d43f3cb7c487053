package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	lexical2html "github.com/alnah/go-lexical2html"
	"github.com/alnah/go-lexical2html/internal/config"
	"github.com/alnah/go-lexical2html/internal/fileutil"
)

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string, w io.Writer) (*convertFlags, []string, error) {
	f := &convertFlags{}
	rest, err := parseFlagSet(newConvertFlagSet(f), &f.common, args, w, printConvertUsage)
	if err != nil {
		return nil, nil, err
	}
	return f, rest, nil
}

// mergeConvertFlags applies explicitly set convert flags over cfg.
func mergeConvertFlags(f *convertFlags, cfg *config.Config) {
	mergeStyleFlags(&f.common, &f.style, cfg)
	mergeDocumentFlags(&f.common, &f.document, cfg)
	if f.common.changed("pdf") {
		cfg.PDF.Enabled = f.pdf
	}
	if f.common.changed("timeout") {
		cfg.PDF.Timeout = f.timeout
	}
}

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	cfg, envCfg, err := resolveConfig(&flags.common, env.Stderr)
	if err != nil {
		return err
	}
	mergeConvertFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	workers := flags.workers
	if !flags.common.changed("workers") && envCfg.Workers > 0 {
		workers = envCfg.Workers
	}
	if err := validateWorkers(workers); err != nil {
		return err
	}

	logger, closeLogger := newLogger(env.Stderr, &flags.common)
	defer closeLogger()

	inputPath, err := resolveInputPath(positional, cfg)
	if err != nil {
		return err
	}

	params := &conversionParams{
		shape: lexical2html.Shape(cfg.Output.Shape),
		title: cfg.Document.Title,
		pdf:   cfg.PDF.Enabled,
	}
	opts := converterOptions(cfg, logger, flags.common.verbose)

	if inputPath == stdinInput {
		return convertStdin(ctx, env, flags, params, opts)
	}

	files, err := discoverFiles(inputPath, resolveOutputDir(flags.output, cfg))
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w in %s", ErrNoDocuments, inputPath)
	}

	poolSize := min(lexical2html.ResolvePoolSize(workers), len(files))
	logger.Debug("starting conversion",
		zap.Int("files", len(files)),
		zap.Int("workers", poolSize),
		zap.String("shape", string(params.shape)),
		zap.Bool("pdf", params.pdf),
	)

	pool := lexical2html.NewConverterPool(poolSize, opts...)
	defer func() {
		if err := pool.Close(); err != nil {
			logger.Warn("closing converter pool", zap.Error(err))
		}
	}()

	start := time.Now()
	results := convertBatch(ctx, &poolAdapter{pool: pool}, files, params)
	failed := printResults(results, flags.common.quiet, flags.common.verbose, env)
	logger.Debug("conversion finished", zap.Duration("duration", time.Since(start)), zap.Int("failed", failed))

	if len(results) == 1 && results[0].Err != nil {
		return fmt.Errorf("%s: %w", results[0].InputPath, results[0].Err)
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d files", ErrConversionFailed, failed, len(results))
	}
	return nil
}

// convertStdin converts one document read from stdin. The bundle goes to
// -o when given, otherwise to stdout with stats on stderr.
func convertStdin(ctx context.Context, env *Environment, flags *convertFlags, params *conversionParams, opts []lexical2html.Option) error {
	if params.pdf && flags.output == "" {
		return fmt.Errorf("%w: --pdf with stdin input requires -o", ErrUsage)
	}

	data, err := io.ReadAll(env.Stdin)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadInput, err)
	}

	conv, err := lexical2html.NewConverter(opts...)
	if err != nil {
		return err
	}
	defer func() { _ = conv.Close() }()

	res, err := conv.Convert(ctx, lexical2html.Input{
		JSON:  data,
		Shape: params.shape,
		Title: params.title,
		PDF:   params.pdf,
	})
	if err != nil {
		return err
	}

	if flags.output == "" {
		if _, err := io.WriteString(env.Stdout, res.Bundle); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
		if !flags.common.quiet {
			printStats(env.Stderr, res.Stats, "")
		}
		return nil
	}

	result := ConversionResult{InputPath: stdinInput, OutputPath: flags.output, Stats: res.Stats}
	if err := os.MkdirAll(filepath.Dir(flags.output), dirPermissions); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	// #nosec G306 -- HTML files are meant to be readable
	if err := os.WriteFile(flags.output, []byte(res.Bundle), filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	if params.pdf {
		result.PDFPath = fileutil.ReplaceExt(flags.output, ".pdf")
		// #nosec G306 -- PDFs are meant to be readable
		if err := os.WriteFile(result.PDFPath, res.PDF, filePermissions); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
	}
	if !flags.common.quiet {
		printResult(result, false, env)
	}
	return nil
}
