package main

// Notes:
// - Tests here use t.Setenv and so cannot run in parallel.
// - godotenv writes into the process environment; loaded keys are unset in
//   t.Cleanup.

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-lexical2html/internal/config"
)

func TestLoadEnvConfig(t *testing.T) {
	t.Setenv("LEXICAL2HTML_STYLE", "minimal")
	t.Setenv("LEXICAL2HTML_SHAPE", "document")
	t.Setenv("LEXICAL2HTML_BASE_URL", "https://cdn.example.com/")
	t.Setenv("LEXICAL2HTML_WORKERS", "3")
	t.Setenv("LEXICAL2HTML_LOG_FILE", "/tmp/l2h.log")

	env := loadEnvConfig()

	if env.Style != "minimal" || env.Shape != "document" {
		t.Errorf("Style/Shape = %q/%q", env.Style, env.Shape)
	}
	if env.BaseURL != "https://cdn.example.com/" {
		t.Errorf("BaseURL = %q", env.BaseURL)
	}
	if env.Workers != 3 {
		t.Errorf("Workers = %d, want 3", env.Workers)
	}
	if env.LogFile != "/tmp/l2h.log" {
		t.Errorf("LogFile = %q", env.LogFile)
	}
}

func TestLoadEnvConfig_InvalidWorkers(t *testing.T) {
	for _, v := range []string{"many", "0", "-2"} {
		t.Run(v, func(t *testing.T) {
			t.Setenv("LEXICAL2HTML_WORKERS", v)
			if got := loadEnvConfig().Workers; got != 0 {
				t.Errorf("Workers = %d, want 0 for %q", got, v)
			}
		})
	}
}

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Setenv("LEXICAL2HTML_STYEL", "x")
	t.Setenv("LEXICAL2HTML_STYLE", "default")

	var buf bytes.Buffer
	warnUnknownEnvVars(&buf)

	out := buf.String()
	if !strings.Contains(out, "unknown environment variable LEXICAL2HTML_STYEL") {
		t.Errorf("output = %q, want warning for the typo", out)
	}
	if strings.Contains(out, "LEXICAL2HTML_STYLE ") {
		t.Errorf("known variable reported: %q", out)
	}
}

func TestApplyEnvConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.CSS.Prefix = "from-file"
	cfg.Document.Title = "From file"

	applyEnvConfig(&envConfig{
		Prefix:  "from-env",
		Timeout: "45s",
		Addr:    "127.0.0.1:9000",
	}, cfg)

	if cfg.CSS.Prefix != "from-env" {
		t.Errorf("Prefix = %q, env should override the file", cfg.CSS.Prefix)
	}
	if cfg.Document.Title != "From file" {
		t.Errorf("Title = %q, unset env must not clear it", cfg.Document.Title)
	}
	if cfg.PDF.Timeout != "45s" || cfg.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("PDF.Timeout/Server.Addr = %q/%q", cfg.PDF.Timeout, cfg.Server.Addr)
	}
	if cfg.CSS.Style != config.DefaultStyle {
		t.Errorf("Style = %q, want default untouched", cfg.CSS.Style)
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("LEXICAL2HTML_TEST_DOTENV=from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Unsetenv("LEXICAL2HTML_TEST_DOTENV") })

	if err := loadDotEnv(path); err != nil {
		t.Fatalf("loadDotEnv() error = %v", err)
	}
	if got := os.Getenv("LEXICAL2HTML_TEST_DOTENV"); got != "from-file" {
		t.Errorf("variable = %q, want from-file", got)
	}
}

func TestLoadDotEnv_RealEnvWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("LEXICAL2HTML_TITLE=from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("LEXICAL2HTML_TITLE", "from-env")

	if err := loadDotEnv(path); err != nil {
		t.Fatalf("loadDotEnv() error = %v", err)
	}
	if got := os.Getenv("LEXICAL2HTML_TITLE"); got != "from-env" {
		t.Errorf("LEXICAL2HTML_TITLE = %q, want from-env", got)
	}
}

func TestLoadDotEnv_Missing(t *testing.T) {
	if err := loadDotEnv(""); err != nil {
		t.Errorf("loadDotEnv(\"\") = %v, want nil", err)
	}

	// No .env in the package directory.
	if err := loadDotEnv(defaultEnvFile); err != nil {
		t.Errorf("loadDotEnv(default) = %v, want nil", err)
	}

	err := loadDotEnv(filepath.Join(t.TempDir(), "missing.env"))
	if !errors.Is(err, ErrEnvFile) {
		t.Errorf("loadDotEnv(explicit missing) = %v, want ErrEnvFile", err)
	}
}

func TestRunMain_EnvOverrides(t *testing.T) {
	t.Setenv("LEXICAL2HTML_SHAPE", "fragment")

	dir := t.TempDir()
	in := filepath.Join(dir, "doc.json")
	writeFile(t, in, helloDoc)

	env, _, stderr := testEnv("")
	if code := runMain([]string{"lexical2html", "convert", in}, env); code != ExitSuccess {
		t.Fatalf("runMain() = %d, stderr: %s", code, stderr)
	}
	if got := readFile(t, filepath.Join(dir, "doc.html")); got != "<p>Hello</p>" {
		t.Errorf("output = %q, env shape should apply", got)
	}

	// Flags beat the environment.
	env, _, stderr = testEnv("")
	if code := runMain([]string{"lexical2html", "convert", in, "--shape", "style", "--no-style"}, env); code != ExitSuccess {
		t.Fatalf("runMain() = %d, stderr: %s", code, stderr)
	}
	want := `<div class="lexical-content"><p>Hello</p></div>`
	if got := readFile(t, filepath.Join(dir, "doc.html")); got != want {
		t.Errorf("output = %q, want %q (flag shape should win)", got, want)
	}
}
