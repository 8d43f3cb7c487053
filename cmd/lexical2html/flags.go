package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-lexical2html/internal/config"
)

// ErrUsage wraps flag parsing and argument errors.
var ErrUsage = errors.New("invalid usage")

// defaultDebounce is how long watch waits for writes to settle.
const defaultDebounce = 300 * time.Millisecond

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	envFile string
	logFile string
	quiet   bool
	verbose bool

	set *flag.FlagSet // parsed set, for Changed lookups
}

// changed reports whether the named flag was given on the command line.
func (f *commonFlags) changed(name string) bool {
	return f.set != nil && f.set.Changed(name)
}

// styleFlags holds stylesheet, script and asset flags.
type styleFlags struct {
	style          string
	prefix         string
	highlightStyle string
	assetPath      string
	minify         bool
	noStyle        bool
	noScript       bool
	minifyScript   bool
}

// documentFlags holds bundle and document flags.
type documentFlags struct {
	shape   string
	title   string
	lang    string
	baseURL string
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common   commonFlags
	style    styleFlags
	document documentFlags
	output   string
	pdf      bool
	workers  int
	timeout  string
}

// watchFlags holds all flags for the watch command.
type watchFlags struct {
	common   commonFlags
	style    styleFlags
	document documentFlags
	output   string
	debounce time.Duration
}

// serveFlags holds all flags for the serve command.
type serveFlags struct {
	common      commonFlags
	style       styleFlags
	document    documentFlags
	addr        string
	cacheSize   int
	readTimeout string
}

// mcpFlags holds all flags for the mcp command.
type mcpFlags struct {
	common   commonFlags
	style    styleFlags
	document documentFlags
}

// cssFlags holds all flags for the css command.
type cssFlags struct {
	common commonFlags
	style  styleFlags
	list   bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVar(&f.envFile, "env-file", defaultEnvFile, "file of KEY=VALUE environment overrides")
	fs.StringVar(&f.logFile, "log-file", "", "also write JSON logs to this file (rotated)")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing and debug logs")
}

// addStyleFlags adds stylesheet flags to a FlagSet.
func addStyleFlags(fs *flag.FlagSet, f *styleFlags) {
	fs.StringVar(&f.style, "style", "", "CSS style name, file path or inline CSS")
	fs.StringVar(&f.prefix, "prefix", "", "wrapper class replacing lexical-content")
	fs.StringVar(&f.highlightStyle, "highlight-style", "", "chroma style for code-highlight colors")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.BoolVar(&f.minify, "minify", false, "minify the stylesheet")
	fs.BoolVar(&f.noStyle, "no-style", false, "disable CSS styling")
	fs.BoolVar(&f.noScript, "no-script", false, "omit the interaction script")
	fs.BoolVar(&f.minifyScript, "minify-script", false, "minify the interaction script")
}

// addDocumentFlags adds bundle and document flags to a FlagSet.
func addDocumentFlags(fs *flag.FlagSet, f *documentFlags) {
	fs.StringVar(&f.shape, "shape", "", "bundle shape: fragment, style, full, document")
	fs.StringVar(&f.title, "title", "", "document title (\"\" = file name)")
	fs.StringVar(&f.lang, "lang", "", "document language (default: en)")
	fs.StringVar(&f.baseURL, "base-url", "", "resolve relative src/href against this URL")
}

// newConvertFlagSet registers convert flags on a new FlagSet.
func newConvertFlagSet(f *convertFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.BoolVar(&f.pdf, "pdf", false, "also write a PDF (requires Chrome)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF generation timeout (e.g., 30s, 2m)")
	addCommonFlags(fs, &f.common)
	addStyleFlags(fs, &f.style)
	addDocumentFlags(fs, &f.document)
	return fs
}

// newWatchFlagSet registers watch flags on a new FlagSet.
func newWatchFlagSet(f *watchFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	fs.StringVarP(&f.output, "output", "o", "", "output directory")
	fs.DurationVar(&f.debounce, "debounce", defaultDebounce, "wait for writes to settle before converting")
	addCommonFlags(fs, &f.common)
	addStyleFlags(fs, &f.style)
	addDocumentFlags(fs, &f.document)
	return fs
}

// newServeFlagSet registers serve flags on a new FlagSet.
func newServeFlagSet(f *serveFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.StringVar(&f.addr, "addr", "", "listen address (default: "+config.DefaultAddr+")")
	fs.IntVar(&f.cacheSize, "cache-size", 0, "converted results kept in memory (0 = no cache)")
	fs.StringVar(&f.readTimeout, "read-timeout", "", "request read timeout (e.g., 10s)")
	addCommonFlags(fs, &f.common)
	addStyleFlags(fs, &f.style)
	addDocumentFlags(fs, &f.document)
	return fs
}

// newMCPFlagSet registers mcp flags on a new FlagSet.
func newMCPFlagSet(f *mcpFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	addCommonFlags(fs, &f.common)
	addStyleFlags(fs, &f.style)
	addDocumentFlags(fs, &f.document)
	return fs
}

// newCSSFlagSet registers css flags on a new FlagSet.
func newCSSFlagSet(f *cssFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("css", flag.ContinueOnError)
	fs.BoolVar(&f.list, "list", false, "list available styles and highlight styles")
	addCommonFlags(fs, &f.common)
	addStyleFlags(fs, &f.style)
	return fs
}

// parseFlagSet parses args, routing errors and usage output to w.
// Parse errors are wrapped with ErrUsage; -h/--help returns flag.ErrHelp.
func parseFlagSet(fs *flag.FlagSet, common *commonFlags, args []string, w io.Writer, usage func(io.Writer)) ([]string, error) {
	fs.SetOutput(w)
	fs.Usage = func() { usage(w) }
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	common.set = fs
	return fs.Args(), nil
}

// mergeStyleFlags applies explicitly set style flags over cfg.
func mergeStyleFlags(common *commonFlags, f *styleFlags, cfg *config.Config) {
	if common.changed("style") {
		cfg.CSS.Style = f.style
	}
	if f.noStyle {
		cfg.CSS.Style = ""
	}
	if common.changed("prefix") {
		cfg.CSS.Prefix = f.prefix
	}
	if common.changed("highlight-style") {
		cfg.CSS.HighlightStyle = f.highlightStyle
	}
	if common.changed("asset-path") {
		cfg.Assets.BasePath = f.assetPath
	}
	if common.changed("minify") {
		cfg.CSS.Minify = f.minify
	}
	if f.noScript {
		cfg.Script.Enabled = false
	}
	if common.changed("minify-script") {
		cfg.Script.Minify = f.minifyScript
	}
}

// mergeDocumentFlags applies explicitly set document flags over cfg.
func mergeDocumentFlags(common *commonFlags, f *documentFlags, cfg *config.Config) {
	if common.changed("shape") {
		cfg.Output.Shape = f.shape
	}
	if common.changed("title") {
		cfg.Document.Title = f.title
	}
	if common.changed("lang") {
		cfg.Document.Lang = f.lang
	}
	if common.changed("base-url") {
		cfg.Links.BaseURL = f.baseURL
	}
}
