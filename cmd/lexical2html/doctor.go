package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/go-rod/rod/lib/launcher"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	lexical2html "github.com/alnah/go-lexical2html"
	"github.com/alnah/go-lexical2html/internal/hints"
)

// Doctor statuses.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// doctorFlags holds all flags for the doctor command.
type doctorFlags struct {
	common commonFlags
	json   bool
}

// doctorReport is the result of every readiness check.
type doctorReport struct {
	Status   string       `json:"status"`
	Assets   assetsReport `json:"assets"`
	Config   configReport `json:"config"`
	PDF      pdfReport    `json:"pdf"`
	Platform string       `json:"platform"`
	Warnings []string     `json:"warnings,omitempty"`
	Errors   []string     `json:"errors,omitempty"`
}

type assetsReport struct {
	Styles          []string `json:"styles"`
	HighlightStyles int      `json:"highlight_styles"`
	CSSBytes        int      `json:"css_bytes"`
	ScriptBytes     int      `json:"script_bytes"`
}

type configReport struct {
	Shape  string `json:"shape"`
	Style  string `json:"style"`
	Prefix string `json:"prefix"`
}

type pdfReport struct {
	Available     bool   `json:"available"`
	Browser       string `json:"browser,omitempty"`
	Version       string `json:"version,omitempty"`
	Sandbox       bool   `json:"sandbox"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
}

// newDoctorFlagSet registers doctor flags on a new FlagSet.
func newDoctorFlagSet(f *doctorFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.BoolVar(&f.json, "json", false, "print the report as JSON")
	addCommonFlags(fs, &f.common)
	return fs
}

// runDoctor checks that the configured converter can be built and whether
// PDF output is available. HTML conversion never needs a browser, so a
// missing Chrome is a warning.
func runDoctor(args []string, env *Environment) int {
	f := &doctorFlags{}
	if _, err := parseFlagSet(newDoctorFlagSet(f), &f.common, args, env.Stderr, printDoctorUsage); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return ExitUsage
	}

	r := &doctorReport{Platform: runtime.GOOS + "/" + runtime.GOARCH}

	cfg, _, err := resolveConfig(&f.common, env.Stderr)
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		r.Errors = append(r.Errors, fmt.Sprintf("Config: %v", err))
	} else {
		r.Config = configReport{Shape: cfg.Output.Shape, Style: cfg.CSS.Style, Prefix: cfg.CSS.Prefix}
		checkAssets(r, cfg.Assets.BasePath, converterOptions(cfg, zap.NewNop(), false))
	}
	checkBrowser(r)

	switch {
	case len(r.Errors) > 0:
		r.Status = statusErrors
	case len(r.Warnings) > 0:
		r.Status = statusWarnings
	default:
		r.Status = statusReady
	}

	if f.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(r)
	} else {
		printDoctorReport(env.Stdout, r)
	}

	if r.Status == statusErrors {
		return ExitGeneral
	}
	return ExitSuccess
}

// checkAssets builds a converter from the configured options and records
// the size of its stylesheet and script.
func checkAssets(r *doctorReport, basePath string, opts []lexical2html.Option) {
	r.Assets.Styles = lexical2html.Styles()
	r.Assets.HighlightStyles = len(lexical2html.HighlightStyles())

	if basePath != "" {
		if _, err := os.Stat(basePath); err != nil {
			r.Errors = append(r.Errors, fmt.Sprintf("Asset path: %v", err))
			return
		}
	}

	conv, err := lexical2html.NewConverter(opts...)
	if err != nil {
		r.Errors = append(r.Errors, fmt.Sprintf("Assets: %v", err))
		return
	}
	defer func() { _ = conv.Close() }()

	r.Assets.CSSBytes = len(conv.CSS())
	r.Assets.ScriptBytes = len(conv.Script())
}

// checkBrowser looks for the Chrome binary used for PDF output.
func checkBrowser(r *doctorReport) {
	r.PDF.Container, r.PDF.ContainerHint = hints.DetectContainer()
	r.PDF.Sandbox = os.Getenv("ROD_NO_SANDBOX") != "1"

	bin := os.Getenv("ROD_BROWSER_BIN")
	if bin == "" {
		var found bool
		if bin, found = launcher.LookPath(); !found {
			r.Warnings = append(r.Warnings, "Chrome/Chromium not found: --pdf is unavailable (install Chrome or set ROD_BROWSER_BIN)")
			return
		}
	}
	if _, err := os.Stat(bin); err != nil {
		r.Warnings = append(r.Warnings, fmt.Sprintf("Chrome not found at %s: --pdf is unavailable", bin))
		return
	}

	r.PDF.Available = true
	r.PDF.Browser = bin
	// #nosec G204 -- bin comes from ROD_BROWSER_BIN or the launcher search
	if out, err := exec.Command(bin, "--version").Output(); err == nil {
		r.PDF.Version = strings.TrimSpace(string(out))
	}

	if r.PDF.Container && r.PDF.Sandbox {
		r.Warnings = append(r.Warnings, "Container detected but ROD_NO_SANDBOX not set. Set ROD_NO_SANDBOX=1")
	}
}

func printDoctorReport(w io.Writer, r *doctorReport) {
	fmt.Fprintln(w, "lexical2html doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Assets")
	if r.Assets.CSSBytes > 0 || r.Assets.ScriptBytes > 0 {
		fmt.Fprintf(w, "  [OK] Stylesheet: %d bytes (style %q, prefix %q)\n", r.Assets.CSSBytes, r.Config.Style, r.Config.Prefix)
		fmt.Fprintf(w, "  [OK] Script: %d bytes\n", r.Assets.ScriptBytes)
	}
	fmt.Fprintf(w, "  [OK] Styles: %s\n", strings.Join(r.Assets.Styles, ", "))
	fmt.Fprintf(w, "  [OK] Highlight styles: %d\n", r.Assets.HighlightStyles)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "PDF")
	if r.PDF.Available {
		fmt.Fprintf(w, "  [OK] Chrome: %s\n", r.PDF.Browser)
		if r.PDF.Version != "" {
			fmt.Fprintf(w, "  [OK] Version: %s\n", r.PDF.Version)
		}
		if r.PDF.Sandbox {
			fmt.Fprintln(w, "  [OK] Sandbox: enabled")
		} else {
			fmt.Fprintln(w, "  [OK] Sandbox: disabled (ROD_NO_SANDBOX=1)")
		}
	} else {
		fmt.Fprintln(w, "  [WARN] Chrome not found")
	}
	if r.PDF.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.PDF.ContainerHint)
	}
	fmt.Fprintf(w, "  [OK] Platform: %s\n", r.Platform)
	fmt.Fprintln(w)

	for _, warn := range r.Warnings {
		fmt.Fprintf(w, "[WARN] %s\n", warn)
	}
	for _, e := range r.Errors {
		fmt.Fprintf(w, "[ERROR] %s\n", e)
	}
	if len(r.Warnings)+len(r.Errors) > 0 {
		fmt.Fprintln(w)
	}

	switch r.Status {
	case statusReady:
		fmt.Fprintln(w, "Status: Ready")
	case statusWarnings:
		fmt.Fprintln(w, "Status: Ready with warnings")
	case statusErrors:
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
