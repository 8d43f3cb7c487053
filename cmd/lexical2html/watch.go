package main

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	lexical2html "github.com/alnah/go-lexical2html"
	"github.com/alnah/go-lexical2html/internal/fileutil"
)

// parseWatchFlags parses watch command flags and returns positional args.
func parseWatchFlags(args []string, w io.Writer) (*watchFlags, []string, error) {
	f := &watchFlags{}
	rest, err := parseFlagSet(newWatchFlagSet(f), &f.common, args, w, printWatchUsage)
	if err != nil {
		return nil, nil, err
	}
	if f.debounce <= 0 {
		return nil, nil, fmt.Errorf("%w: --debounce must be positive", ErrUsage)
	}
	if strings.HasSuffix(strings.ToLower(f.output), ".html") {
		return nil, nil, fmt.Errorf("%w: watch --output must be a directory", ErrUsage)
	}
	return f, rest, nil
}

// runWatch reconverts documents under a directory as they change, until
// the context is canceled.
func runWatch(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseWatchFlags(args, env.Stderr)
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

	root, err := resolveInputPath(positional, cfg)
	if err != nil {
		return err
	}
	if !fileutil.DirExists(root) {
		return fmt.Errorf("watching %s: %w", root, os.ErrNotExist)
	}

	logger, closeLogger := newLogger(env.Stderr, &flags.common)
	defer closeLogger()

	conv, err := lexical2html.NewConverter(converterOptions(cfg, logger, flags.common.verbose)...)
	if err != nil {
		return err
	}
	defer func() { _ = conv.Close() }()

	w := &watcher{
		root:      root,
		outputDir: resolveOutputDir(flags.output, cfg),
		conv:      conv,
		params: &conversionParams{
			shape: lexical2html.Shape(cfg.Output.Shape),
			title: cfg.Document.Title,
		},
		debounce: flags.debounce,
		logger:   logger,
		onResult: func(r ConversionResult) {
			if r.Err != nil {
				fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
				return
			}
			if !flags.common.quiet {
				printResult(r, flags.common.verbose, env)
			}
		},
	}
	return w.run(ctx)
}

// watcher converts .json files under root after they stop changing.
type watcher struct {
	root      string
	outputDir string
	conv      CLIConverter
	params    *conversionParams
	debounce  time.Duration
	logger    *zap.Logger
	onResult  func(ConversionResult)

	ready chan struct{} // closed once directories are watched; optional
}

// run processes file events until ctx is canceled. Writes to the same file
// within the debounce window collapse into one conversion.
func (w *watcher) run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer func() { _ = fw.Close() }()

	if err := addDirsRecursive(fw, w.root); err != nil {
		return fmt.Errorf("watching %s: %w", w.root, err)
	}
	w.logger.Info("watching", zap.String("root", w.root), zap.Duration("debounce", w.debounce))
	if w.ready != nil {
		close(w.ready)
	}

	pending := make(map[string]struct{})
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watcher stopped")
			return nil

		case <-timer.C:
			w.flush(ctx, pending)
			clear(pending)

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}

			if ev.Op&fsnotify.Create != 0 {
				if info, statErr := os.Stat(ev.Name); statErr == nil && info.IsDir() {
					if addErr := addDirsRecursive(fw, ev.Name); addErr != nil {
						w.logger.Warn("watch new directory", zap.String("path", ev.Name), zap.Error(addErr))
					}
					continue
				}
			}

			if !fileutil.IsJSONFile(ev.Name) {
				continue
			}

			switch {
			case ev.Op&(fsnotify.Create|fsnotify.Write) != 0:
				pending[ev.Name] = struct{}{}
				timer.Reset(w.debounce)
			case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
				delete(pending, ev.Name)
				w.logger.Debug("document removed", zap.String("path", ev.Name))
			}

		case watchErr, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error", zap.Error(watchErr))
		}
	}
}

// flush converts every pending path, in lexical order.
func (w *watcher) flush(ctx context.Context, pending map[string]struct{}) {
	paths := make([]string, 0, len(pending))
	for p := range pending {
		paths = append(paths, p)
	}
	slices.Sort(paths)

	for _, p := range paths {
		// Removed before the debounce fired.
		if !fileutil.FileExists(p) {
			continue
		}
		f := FileToConvert{InputPath: p, OutputPath: resolveOutputPath(p, w.outputDir, w.root)}
		r := convertFile(ctx, w.conv, f, w.params)
		w.logger.Debug("converted",
			zap.String("input", r.InputPath),
			zap.String("output", r.OutputPath),
			zap.Int("nodes", r.Stats.NodeCount),
			zap.Bool("failed", r.Err != nil),
		)
		if w.onResult != nil {
			w.onResult(r)
		}
	}
}

// addDirsRecursive adds root and all its non-hidden subdirectories to the watcher.
func addDirsRecursive(fw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return fw.Add(path)
	})
}
