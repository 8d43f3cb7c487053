package pipeline

// Notes:
// - MinifyCSS expectations were derived by applying the rule chain by hand.
// - Document-shape tests use a small inline template so the expected output
//   can be written out in full; one test runs the embedded template.

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/alnah/go-lexical2html/internal/assets"
)

// ---------------------------------------------------------------------------
// CSS prefix and minification
// ---------------------------------------------------------------------------

func TestValidatePrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		prefix  string
		wantErr bool
	}{
		{"empty means default", "", false},
		{"default", DefaultPrefix, false},
		{"underscore start", "_x", false},
		{"leading hyphen", "-my-content", false},
		{"digits after first", "c2", false},
		{"digit first", "2col", true},
		{"space", "my content", true},
		{"dot", ".content", true},
		{"injection", `x{}</style>`, true},
		{"too long", strings.Repeat("a", 65), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidatePrefix(tt.prefix)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidPrefix) {
					t.Errorf("ValidatePrefix(%q) error = %v, want ErrInvalidPrefix", tt.prefix, err)
				}
				return
			}
			if err != nil {
				t.Errorf("ValidatePrefix(%q) unexpected error: %v", tt.prefix, err)
			}
		})
	}
}

func TestApplyPrefix(t *testing.T) {
	t.Parallel()

	css := ".lexical-content p { margin: 0; }\n.lexical-content .code-block, .lexical-content pre { x: y; }"

	tests := []struct {
		name   string
		prefix string
		want   string
	}{
		{"empty keeps default", "", css},
		{"default unchanged", DefaultPrefix, css},
		{"custom", "article-body", ".article-body p { margin: 0; }\n.article-body .code-block, .article-body pre { x: y; }"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(tt.want, ApplyPrefix(css, tt.prefix)); diff != "" {
				t.Errorf("ApplyPrefix() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMinifyCSS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "comments and whitespace",
			input: "/* c */\n.a , .b {\n  color : red ;\n  margin: 0;\n}\n",
			want:  ".a,.b{color:red;margin:0}",
		},
		{
			name:  "multi-line comment",
			input: "/* line one\n   line two */ .x { y: z }",
			want:  ".x{y:z}",
		},
		{
			name:  "nested at-rule",
			input: "@media print {\n  .x { a: b; }\n}",
			want:  "@media print{.x{a:b}}",
		},
		{
			name:  "empty",
			input: "   \n\t ",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(tt.want, MinifyCSS(tt.input)); diff != "" {
				t.Errorf("MinifyCSS() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMinifyCSS_EmbeddedStyle(t *testing.T) {
	t.Parallel()

	css, err := assets.LoadStyle(assets.DefaultStyle)
	if err != nil {
		t.Fatalf("LoadStyle() error = %v", err)
	}
	got := MinifyCSS(css)
	if strings.Contains(got, "/*") || strings.Contains(got, "\n") {
		t.Error("minified CSS still has comments or newlines")
	}
	if strings.Count(got, "{") != strings.Count(got, "}") {
		t.Error("minified CSS has unbalanced braces")
	}
	if len(got) >= len(css) {
		t.Errorf("minified length %d not below original %d", len(got), len(css))
	}
}

func TestMinifyScript(t *testing.T) {
	t.Parallel()

	input := "// header\nfunction f() {\n\n    // inner\n    return 'a // b';\n}\n"
	want := "function f() {\nreturn 'a // b';\n}"

	if diff := cmp.Diff(want, MinifyScript(input)); diff != "" {
		t.Errorf("MinifyScript() mismatch (-want +got):\n%s", diff)
	}
}

// ---------------------------------------------------------------------------
// Injection
// ---------------------------------------------------------------------------

func TestCSSInjection_InjectCSS(t *testing.T) {
	t.Parallel()

	injector := &CSSInjection{}

	tests := []struct {
		name string
		html string
		css  string
		want string
	}{
		{
			name: "before head close",
			html: "<html><head><title>x</title></head><body></body></html>",
			css:  "p{}",
			want: "<html><head><title>x</title><style>p{}</style></head><body></body></html>",
		},
		{
			name: "uppercase head",
			html: "<HTML><HEAD></HEAD></HTML>",
			css:  "p{}",
			want: "<HTML><HEAD><style>p{}</style></HEAD></HTML>",
		},
		{
			name: "after body open with attributes",
			html: `<body class="x"><p>a</p></body>`,
			css:  "p{}",
			want: `<body class="x"><style>p{}</style><p>a</p></body>`,
		},
		{
			name: "prepend to fragment",
			html: "<p>a</p>",
			css:  "p{}",
			want: "<style>p{}</style><p>a</p>",
		},
		{
			name: "empty css",
			html: "<p>a</p>",
			css:  "",
			want: "<p>a</p>",
		},
		{
			name: "style close sequence escaped",
			html: "<p>a</p>",
			css:  "p{content:'</style><script>'}",
			want: `<style>p{content:'<\/style><script>'}</style><p>a</p>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := injector.InjectCSS(context.Background(), tt.html, tt.css)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("InjectCSS() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestScriptInjection_InjectScript(t *testing.T) {
	t.Parallel()

	injector := &ScriptInjection{}

	tests := []struct {
		name   string
		html   string
		script string
		want   string
	}{
		{
			name:   "before body close",
			html:   "<body><p>a</p></body></html>",
			script: "f()",
			want:   "<body><p>a</p><script>f()</script></body></html>",
		},
		{
			name:   "uppercase body",
			html:   "<BODY></BODY>",
			script: "f()",
			want:   "<BODY><script>f()</script></BODY>",
		},
		{
			name:   "append to fragment",
			html:   "<p>a</p>",
			script: "f()",
			want:   "<p>a</p><script>f()</script>",
		},
		{
			name:   "empty script",
			html:   "<p>a</p>",
			script: "",
			want:   "<p>a</p>",
		},
		{
			name:   "script close escaped",
			html:   "",
			script: "x = '</script>'",
			want:   `<script>x = '<\/script>'</script>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := injector.InjectScript(context.Background(), tt.html, tt.script)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("InjectScript() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestInjection_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	html := "<body></body>"
	if got := (&CSSInjection{}).InjectCSS(ctx, html, "p{}"); got != html {
		t.Errorf("InjectCSS() with cancelled context = %q, want input unchanged", got)
	}
	if got := (&ScriptInjection{}).InjectScript(ctx, html, "f()"); got != html {
		t.Errorf("InjectScript() with cancelled context = %q, want input unchanged", got)
	}
}

// ---------------------------------------------------------------------------
// Assembly
// ---------------------------------------------------------------------------

func TestParseShape(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    Shape
		wantErr bool
	}{
		{"", ShapeFull, false},
		{"fragment", ShapeFragment, false},
		{"style", ShapeStyle, false},
		{"FULL", ShapeFull, false},
		{"document", ShapeDocument, false},
		{"pdf", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := ParseShape(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidShape) {
					t.Errorf("ParseShape(%q) error = %v, want ErrInvalidShape", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseShape(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseShape(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

const testTemplate = `<html lang="{{.Lang}}"><head><title>{{.Title}}</title></head>` +
	`<body><div class="{{.Prefix}}">{{.Content}}</div></body></html>`

func newTestAssembler(t *testing.T, script string) *Assembler {
	t.Helper()
	a, err := NewAssembler(AssemblerConfig{
		CSS:      ".my p{}",
		Script:   script,
		Template: testTemplate,
		Prefix:   "my",
	})
	if err != nil {
		t.Fatalf("NewAssembler() error = %v", err)
	}
	return a
}

func TestAssembler_Assemble(t *testing.T) {
	t.Parallel()

	const fragment = "<p>a</p>"

	tests := []struct {
		name   string
		shape  Shape
		script string
		title  string
		want   string
	}{
		{
			name:  "fragment",
			shape: ShapeFragment,
			want:  fragment,
		},
		{
			name:   "style",
			shape:  ShapeStyle,
			script: "f()",
			want:   `<style>.my p{}</style><div class="my"><p>a</p></div>`,
		},
		{
			name:   "full",
			shape:  ShapeFull,
			script: "f()",
			want:   `<style>.my p{}</style><div class="my"><p>a</p></div><script>f()</script>`,
		},
		{
			name:  "full without script",
			shape: ShapeFull,
			want:  `<style>.my p{}</style><div class="my"><p>a</p></div>`,
		},
		{
			name:   "document",
			shape:  ShapeDocument,
			script: "f()",
			title:  "T & U",
			want: `<html lang="en"><head><title>T &amp; U</title><style>.my p{}</style></head>` +
				`<body><div class="my"><p>a</p></div><script>f()</script></body></html>`,
		},
		{
			name:  "document default title",
			shape: ShapeDocument,
			want: `<html lang="en"><head><title>Document</title><style>.my p{}</style></head>` +
				`<body><div class="my"><p>a</p></div></body></html>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			a := newTestAssembler(t, tt.script)
			got, err := a.Assemble(context.Background(), fragment, tt.shape, tt.title)
			if err != nil {
				t.Fatalf("Assemble() unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Assemble() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAssembler_StyleWithoutCSS(t *testing.T) {
	t.Parallel()

	a, err := NewAssembler(AssemblerConfig{})
	if err != nil {
		t.Fatalf("NewAssembler() error = %v", err)
	}
	got, err := a.Assemble(context.Background(), "x", ShapeStyle, "")
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	if want := `<div class="lexical-content">x</div>`; got != want {
		t.Errorf("Assemble() = %q, want %q", got, want)
	}
}

func TestAssembler_EmbeddedTemplate(t *testing.T) {
	t.Parallel()

	tmpl, err := assets.LoadTemplate(assets.DefaultTemplate)
	if err != nil {
		t.Fatalf("LoadTemplate() error = %v", err)
	}
	a, err := NewAssembler(AssemblerConfig{CSS: "p{}", Script: "f()", Template: tmpl, Lang: "vi"})
	if err != nil {
		t.Fatalf("NewAssembler() error = %v", err)
	}

	got, err := a.Assemble(context.Background(), "<p>hello</p>", ShapeDocument, "<Notes>")
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}

	for _, want := range []string{
		"<!DOCTYPE html>",
		`<html lang="vi">`,
		"<title>&lt;Notes&gt;</title>",
		"<style>p{}</style></head>",
		`<div class="lexical-content">`,
		"<p>hello</p>",
		"<script>f()</script></body>",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("document missing %q:\n%s", want, got)
		}
	}
}

func TestAssembler_Errors(t *testing.T) {
	t.Parallel()

	t.Run("invalid prefix", func(t *testing.T) {
		t.Parallel()

		_, err := NewAssembler(AssemblerConfig{Prefix: "bad prefix"})
		if !errors.Is(err, ErrInvalidPrefix) {
			t.Errorf("NewAssembler() error = %v, want ErrInvalidPrefix", err)
		}
	})

	t.Run("unparseable template", func(t *testing.T) {
		t.Parallel()

		_, err := NewAssembler(AssemblerConfig{Template: "{{.Content"})
		if !errors.Is(err, ErrTemplateParse) {
			t.Errorf("NewAssembler() error = %v, want ErrTemplateParse", err)
		}
	})

	t.Run("document without template", func(t *testing.T) {
		t.Parallel()

		a, err := NewAssembler(AssemblerConfig{})
		if err != nil {
			t.Fatalf("NewAssembler() error = %v", err)
		}
		_, err = a.Assemble(context.Background(), "x", ShapeDocument, "")
		if !errors.Is(err, ErrTemplateRender) {
			t.Errorf("Assemble() error = %v, want ErrTemplateRender", err)
		}
	})

	t.Run("unknown shape", func(t *testing.T) {
		t.Parallel()

		a := newTestAssembler(t, "")
		_, err := a.Assemble(context.Background(), "x", Shape("pdf"), "")
		if !errors.Is(err, ErrInvalidShape) {
			t.Errorf("Assemble() error = %v, want ErrInvalidShape", err)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		a := newTestAssembler(t, "")
		_, err := a.Assemble(ctx, "x", ShapeFragment, "")
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Assemble() error = %v, want context.Canceled", err)
		}
	})
}
