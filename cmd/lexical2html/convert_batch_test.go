package main

// Notes:
// - convertBatch is driven with a mock pool so concurrency limits and
//   Acquire failures can be observed without a real converter.
// - The PDF write path uses a mock that returns fixed bytes; real PDF
//   rendering needs Chrome and is covered by the root package.

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	lexical2html "github.com/alnah/go-lexical2html"
)

// ---------------------------------------------------------------------------
// Mocks
// ---------------------------------------------------------------------------

type mockConverter struct {
	delay time.Duration
	err   error

	active    *atomic.Int32
	maxActive *atomic.Int32
}

func (m *mockConverter) Convert(ctx context.Context, in lexical2html.Input) (*lexical2html.ConvertResult, error) {
	if m.active != nil {
		n := m.active.Add(1)
		defer m.active.Add(-1)
		for {
			cur := m.maxActive.Load()
			if n <= cur || m.maxActive.CompareAndSwap(cur, n) {
				break
			}
		}
	}
	if m.delay > 0 {
		time.Sleep(m.delay)
	}
	if m.err != nil {
		return nil, m.err
	}
	res := &lexical2html.ConvertResult{
		Bundle: "<h1>" + in.Title + "</h1>",
		Stats:  lexical2html.Stats{NodeCount: 2},
	}
	if in.PDF {
		res.PDF = []byte("%PDF-1.7")
	}
	return res, nil
}

type mockPool struct {
	conv       CLIConverter
	size       int
	acquireErr error

	mu       sync.Mutex
	released int
}

func (p *mockPool) Acquire() (CLIConverter, error) {
	if p.acquireErr != nil {
		return nil, p.acquireErr
	}
	return p.conv, nil
}

func (p *mockPool) Release(CLIConverter) {
	p.mu.Lock()
	p.released++
	p.mu.Unlock()
}

func (p *mockPool) Size() int { return p.size }

func batchFiles(t *testing.T, n int) []FileToConvert {
	t.Helper()
	dir := t.TempDir()
	files := make([]FileToConvert, n)
	for i := range files {
		in := filepath.Join(dir, "doc"+string(rune('a'+i))+".json")
		writeFile(t, in, helloDoc)
		files[i] = FileToConvert{InputPath: in, OutputPath: resolveOutputPath(in, filepath.Join(dir, "out"), dir)}
	}
	return files
}

// ---------------------------------------------------------------------------
// TestConvertBatch
// ---------------------------------------------------------------------------

func TestConvertBatch_OrderAndLimit(t *testing.T) {
	t.Parallel()

	var active, maxActive atomic.Int32
	pool := &mockPool{
		conv: &mockConverter{delay: 20 * time.Millisecond, active: &active, maxActive: &maxActive},
		size: 2,
	}
	files := batchFiles(t, 6)

	results := convertBatch(context.Background(), pool, files, &conversionParams{})

	if len(results) != len(files) {
		t.Fatalf("len(results) = %d, want %d", len(results), len(files))
	}
	for i, r := range results {
		if r.InputPath != files[i].InputPath {
			t.Errorf("results[%d].InputPath = %q, want %q", i, r.InputPath, files[i].InputPath)
		}
		if r.Err != nil {
			t.Errorf("results[%d].Err = %v", i, r.Err)
		}
	}
	if got := maxActive.Load(); got > 2 {
		t.Errorf("max concurrent conversions = %d, want <= 2", got)
	}
	if pool.released != len(files) {
		t.Errorf("released = %d, want %d", pool.released, len(files))
	}
}

func TestConvertBatch_Empty(t *testing.T) {
	t.Parallel()

	if got := convertBatch(context.Background(), &mockPool{size: 1}, nil, &conversionParams{}); got != nil {
		t.Errorf("convertBatch(nil) = %v, want nil", got)
	}
}

func TestConvertBatch_AcquireError(t *testing.T) {
	t.Parallel()

	acquireErr := errors.New("pool closed")
	pool := &mockPool{size: 1, acquireErr: acquireErr}

	results := convertBatch(context.Background(), pool, batchFiles(t, 2), &conversionParams{})
	for i, r := range results {
		if !errors.Is(r.Err, acquireErr) {
			t.Errorf("results[%d].Err = %v, want %v", i, r.Err, acquireErr)
		}
	}
	if pool.released != 0 {
		t.Errorf("released = %d, want 0", pool.released)
	}
}

func TestConvertBatch_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := convertBatch(ctx, &mockPool{conv: &mockConverter{}, size: 1}, batchFiles(t, 3), &conversionParams{})
	for i, r := range results {
		if !errors.Is(r.Err, context.Canceled) {
			t.Errorf("results[%d].Err = %v, want context.Canceled", i, r.Err)
		}
	}
}

// ---------------------------------------------------------------------------
// TestConvertFile
// ---------------------------------------------------------------------------

func TestConvertFile(t *testing.T) {
	t.Parallel()

	files := batchFiles(t, 1)
	f := files[0]

	r := convertFile(context.Background(), &mockConverter{}, f, &conversionParams{pdf: true})
	if r.Err != nil {
		t.Fatalf("convertFile() error = %v", r.Err)
	}

	// Title defaults to the file stem.
	if got := readFile(t, f.OutputPath); got != "<h1>doca</h1>" {
		t.Errorf("output = %q, want title from file name", got)
	}
	if r.PDFPath != strings.TrimSuffix(f.OutputPath, ".html")+".pdf" {
		t.Errorf("PDFPath = %q", r.PDFPath)
	}
	if got := readFile(t, r.PDFPath); got != "%PDF-1.7" {
		t.Errorf("pdf content = %q", got)
	}
	if r.Stats.NodeCount != 2 {
		t.Errorf("NodeCount = %d, want 2", r.Stats.NodeCount)
	}
}

func TestConvertFile_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "doc.json")
	writeFile(t, in, helloDoc)

	t.Run("missing input", func(t *testing.T) {
		t.Parallel()

		f := FileToConvert{InputPath: filepath.Join(dir, "missing.json"), OutputPath: filepath.Join(dir, "m.html")}
		r := convertFile(context.Background(), &mockConverter{}, f, &conversionParams{})
		if !errors.Is(r.Err, ErrReadInput) {
			t.Errorf("Err = %v, want ErrReadInput", r.Err)
		}
	})

	t.Run("converter error", func(t *testing.T) {
		t.Parallel()

		convErr := errors.New("boom")
		f := FileToConvert{InputPath: in, OutputPath: filepath.Join(dir, "c.html")}
		r := convertFile(context.Background(), &mockConverter{err: convErr}, f, &conversionParams{})
		if !errors.Is(r.Err, convErr) {
			t.Errorf("Err = %v, want %v", r.Err, convErr)
		}
		if _, err := os.Stat(f.OutputPath); !os.IsNotExist(err) {
			t.Error("output written despite conversion error")
		}
	})

	t.Run("output dir is a file", func(t *testing.T) {
		t.Parallel()

		blocker := filepath.Join(dir, "blocker")
		writeFile(t, blocker, "")
		f := FileToConvert{InputPath: in, OutputPath: filepath.Join(blocker, "doc.html")}
		r := convertFile(context.Background(), &mockConverter{}, f, &conversionParams{})
		if r.Err == nil || !strings.Contains(r.Err.Error(), "creating output directory") {
			t.Errorf("Err = %v, want output directory error", r.Err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestPrintResults
// ---------------------------------------------------------------------------

func TestPrintResults(t *testing.T) {
	t.Parallel()

	results := []ConversionResult{
		{InputPath: "a.json", OutputPath: "a.html", Stats: lexical2html.Stats{NodeCount: 3, Errors: []string{"Unknown node type: sticker"}}},
		{InputPath: "b.json", Err: errors.New("bad")},
	}

	env, stdout, stderr := testEnv("")
	failed := printResults(results, false, false, env)

	if failed != 1 {
		t.Errorf("failed = %d, want 1", failed)
	}
	for _, want := range []string{"Created a.html", "Nodes: 3", "Warnings: 1", "- Unknown node type: sticker", "1 succeeded, 1 failed, 1 warnings"} {
		if !strings.Contains(stdout.String(), want) {
			t.Errorf("stdout missing %q:\n%s", want, stdout)
		}
	}
	if !strings.Contains(stderr.String(), "FAILED b.json: bad") {
		t.Errorf("stderr = %q, want FAILED line", stderr)
	}
}

func TestPrintResults_SingleFailureSilent(t *testing.T) {
	t.Parallel()

	env, stdout, stderr := testEnv("")
	failed := printResults([]ConversionResult{{InputPath: "a.json", Err: errors.New("bad")}}, false, false, env)

	if failed != 1 {
		t.Errorf("failed = %d, want 1", failed)
	}
	if stdout.Len() != 0 || stderr.Len() != 0 {
		t.Errorf("output = %q / %q, want none", stdout, stderr)
	}
}

func TestPrintResults_Verbose(t *testing.T) {
	t.Parallel()

	env, stdout, _ := testEnv("")
	printResults([]ConversionResult{{InputPath: "a.json", OutputPath: "a.html", PDFPath: "a.pdf", Duration: time.Second}}, false, true, env)

	if !strings.Contains(stdout.String(), "a.json -> a.html (1s)") {
		t.Errorf("stdout = %q, want verbose line", stdout)
	}
	if !strings.Contains(stdout.String(), "Created a.pdf") {
		t.Errorf("stdout = %q, want PDF line", stdout)
	}
}

// ---------------------------------------------------------------------------
// TestPoolAdapter
// ---------------------------------------------------------------------------

func TestPoolAdapter_ReleaseWrongType(t *testing.T) {
	t.Parallel()

	a := &poolAdapter{}
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("Release() did not panic")
		}
		if msg, _ := r.(string); !strings.Contains(msg, "unexpected type") {
			t.Errorf("panic = %v", r)
		}
	}()
	a.Release(&mockConverter{})
}
