package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	lexical2html "github.com/alnah/go-lexical2html"
	"github.com/alnah/go-lexical2html/internal/fileutil"
	"github.com/alnah/go-lexical2html/internal/hints"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Sentinel errors for batch operations.
var (
	ErrReadInput        = errors.New("failed to read input document")
	ErrWriteOutput      = errors.New("failed to write output file")
	ErrConversionFailed = errors.New("conversion failed")
)

// CLIConverter is the conversion surface the CLI needs.
type CLIConverter interface {
	Convert(ctx context.Context, input lexical2html.Input) (*lexical2html.ConvertResult, error)
}

// Compile-time interface implementation check.
var _ CLIConverter = (*lexical2html.Converter)(nil)

// Pool abstracts converter pool operations for testability.
type Pool interface {
	Acquire() (CLIConverter, error)
	Release(CLIConverter)
	Size() int
}

// poolAdapter exposes a *lexical2html.ConverterPool as a Pool.
type poolAdapter struct {
	pool *lexical2html.ConverterPool
}

func (a *poolAdapter) Acquire() (CLIConverter, error) {
	conv, err := a.pool.Acquire()
	if err != nil {
		return nil, err
	}
	return conv, nil
}

// Release panics on a converter the pool did not hand out.
func (a *poolAdapter) Release(c CLIConverter) {
	conv, ok := c.(*lexical2html.Converter)
	if !ok {
		panic(fmt.Sprintf("poolAdapter.Release: unexpected type %T", c))
	}
	a.pool.Release(conv)
}

func (a *poolAdapter) Size() int {
	return a.pool.Size()
}

// conversionParams groups parameters shared across a batch.
type conversionParams struct {
	shape lexical2html.Shape
	title string // empty = derive from file name
	pdf   bool
}

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	PDFPath    string
	Stats      lexical2html.Stats
	Err        error
	Duration   time.Duration
}

// convertBatch converts files concurrently, at most pool.Size() at a time.
// Results keep the order of files.
func convertBatch(ctx context.Context, pool Pool, files []FileToConvert, params *conversionParams) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	results := make([]ConversionResult, len(files))

	var g errgroup.Group
	g.SetLimit(pool.Size())

	for i, f := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = ConversionResult{InputPath: f.InputPath, Err: err}
				return nil
			}

			conv, err := pool.Acquire()
			if err != nil {
				results[i] = ConversionResult{InputPath: f.InputPath, Err: err}
				return nil
			}
			defer pool.Release(conv)

			results[i] = convertFile(ctx, conv, f, params)
			return nil
		})
	}

	// Per-file errors live in results.
	_ = g.Wait()
	return results
}

// convertFile processes a single file and returns the result.
func convertFile(ctx context.Context, conv CLIConverter, f FileToConvert, params *conversionParams) ConversionResult {
	start := time.Now()
	result := ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}
	fail := func(err error) ConversionResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	data, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		return fail(fmt.Errorf("%w: %v", ErrReadInput, err))
	}

	title := params.title
	if title == "" {
		title = fileutil.ReplaceExt(filepath.Base(f.InputPath), "")
	}

	res, err := conv.Convert(ctx, lexical2html.Input{
		JSON:  data,
		Shape: params.shape,
		Title: title,
		PDF:   params.pdf,
	})
	if err != nil {
		return fail(err)
	}
	result.Stats = res.Stats

	if err := os.MkdirAll(filepath.Dir(f.OutputPath), dirPermissions); err != nil {
		return fail(fmt.Errorf("creating output directory: %w%s", err, hints.ForOutputDirectory()))
	}

	// #nosec G306 -- HTML files are meant to be readable
	if err := os.WriteFile(f.OutputPath, []byte(res.Bundle), filePermissions); err != nil {
		return fail(fmt.Errorf("%w: %v", ErrWriteOutput, err))
	}

	if params.pdf {
		result.PDFPath = fileutil.ReplaceExt(f.OutputPath, ".pdf")
		// #nosec G306 -- PDFs are meant to be readable
		if err := os.WriteFile(result.PDFPath, res.PDF, filePermissions); err != nil {
			return fail(fmt.Errorf("%w: %v", ErrWriteOutput, err))
		}
	}

	result.Duration = time.Since(start)
	return result
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
	Warnings  int
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
			continue
		}
		summary.Succeeded++
		summary.Warnings += len(r.Stats.Errors)
	}
	return summary
}

// printResult writes one conversion outcome. Failures are left to the caller.
func printResult(r ConversionResult, verbose bool, env *Environment) {
	if verbose {
		fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
	} else {
		fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
	}
	if r.PDFPath != "" {
		fmt.Fprintf(env.Stdout, "Created %s\n", r.PDFPath)
	}
	printStats(env.Stdout, r.Stats, "  ")
}

// printStats writes the node and warning counts, then each diagnostic.
func printStats(w io.Writer, st lexical2html.Stats, indent string) {
	fmt.Fprintf(w, "%sNodes: %d\n", indent, st.NodeCount)
	fmt.Fprintf(w, "%sWarnings: %d\n", indent, len(st.Errors))
	for _, d := range st.Errors {
		fmt.Fprintf(w, "%s  - %s\n", indent, strings.TrimSpace(d))
	}
}

// printResults outputs conversion results and returns the number of failures.
// A single failed file is not printed: its error becomes the command error.
func printResults(results []ConversionResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			if len(results) > 1 {
				fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			}
			continue
		}
		if !quiet {
			printResult(r, verbose, env)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed, %d warnings\n", summary.Succeeded, summary.Failed, summary.Warnings)
	}

	return summary.Failed
}
