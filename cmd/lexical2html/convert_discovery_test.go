package main

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/alnah/go-lexical2html/internal/config"
)

// ---------------------------------------------------------------------------
// TestDiscoverFiles
// ---------------------------------------------------------------------------

func TestDiscoverFiles(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.json"), "{}")
	writeFile(t, filepath.Join(root, "B.JSON"), "{}")
	writeFile(t, filepath.Join(root, "nested", "deep", "c.json"), "{}")
	writeFile(t, filepath.Join(root, "readme.md"), "")
	writeFile(t, filepath.Join(root, ".git", "config.json"), "{}")

	files, err := discoverFiles(root, "")
	if err != nil {
		t.Fatalf("discoverFiles() error = %v", err)
	}

	var got []string
	for _, f := range files {
		rel, _ := filepath.Rel(root, f.InputPath)
		got = append(got, rel)
	}
	sort.Strings(got)

	want := []string{"B.JSON", "a.json", filepath.Join("nested", "deep", "c.json")}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("discovered files mismatch (-want +got):\n%s", diff)
	}
}

func TestDiscoverFiles_SingleFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "doc.json")
	writeFile(t, in, "{}")

	files, err := discoverFiles(in, "")
	if err != nil {
		t.Fatalf("discoverFiles() error = %v", err)
	}
	want := []FileToConvert{{InputPath: in, OutputPath: filepath.Join(dir, "doc.html")}}
	if diff := cmp.Diff(want, files); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestDiscoverFiles_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	md := filepath.Join(dir, "doc.md")
	writeFile(t, md, "")

	if _, err := discoverFiles(md, ""); !errors.Is(err, ErrInvalidExtension) {
		t.Errorf("error = %v, want ErrInvalidExtension", err)
	}
	if _, err := discoverFiles(filepath.Join(dir, "missing"), ""); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want os.ErrNotExist", err)
	}
}

// ---------------------------------------------------------------------------
// TestResolveOutputPath
// ---------------------------------------------------------------------------

func TestResolveOutputPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		outputDir string
		baseDir   string
		want      string
	}{
		{"next to source", filepath.Join("docs", "a.json"), "", "", filepath.Join("docs", "a.html")},
		{"explicit file", filepath.Join("docs", "a.json"), "out.html", "", "out.html"},
		{"explicit file uppercase", "a.json", "OUT.HTML", "", "OUT.HTML"},
		{"flat output dir", "a.json", "out", "", filepath.Join("out", "a.html")},
		{"mirrored tree", filepath.Join("docs", "x", "a.json"), "out", "docs", filepath.Join("out", "x", "a.html")},
		{"dotted name", "v1.2.json", "", "", "v1.2.html"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := resolveOutputPath(tt.input, tt.outputDir, tt.baseDir); got != tt.want {
				t.Errorf("resolveOutputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestResolveInputPath / TestValidateWorkers
// ---------------------------------------------------------------------------

func TestResolveInputPath(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	if _, err := resolveInputPath(nil, cfg); !errors.Is(err, ErrNoInput) {
		t.Errorf("no args: error = %v, want ErrNoInput", err)
	}

	cfg.Input.DefaultDir = "inbox"
	if got, _ := resolveInputPath(nil, cfg); got != "inbox" {
		t.Errorf("default dir = %q, want inbox", got)
	}
	if got, _ := resolveInputPath([]string{"doc.json"}, cfg); got != "doc.json" {
		t.Errorf("positional = %q, want doc.json", got)
	}
	if _, err := resolveInputPath([]string{"a", "b"}, cfg); !errors.Is(err, ErrUsage) {
		t.Errorf("two args: error = %v, want ErrUsage", err)
	}
}

func TestResolveOutputDir(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Output.DefaultDir = "site"

	if got := resolveOutputDir("", cfg); got != "site" {
		t.Errorf("resolveOutputDir(\"\") = %q, want site", got)
	}
	if got := resolveOutputDir("build", cfg); got != "build" {
		t.Errorf("resolveOutputDir(build) = %q, want build", got)
	}
}

func TestValidateWorkers(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, 1, 8} {
		if err := validateWorkers(n); err != nil {
			t.Errorf("validateWorkers(%d) = %v, want nil", n, err)
		}
	}
	for _, n := range []int{-1, 9} {
		if err := validateWorkers(n); !errors.Is(err, ErrInvalidWorkerCount) {
			t.Errorf("validateWorkers(%d) = %v, want ErrInvalidWorkerCount", n, err)
		}
	}
}
