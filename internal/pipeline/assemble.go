package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"

	"github.com/alnah/go-lexical2html/internal/htmlutil"
)

// Shape selects what Assemble wraps around the converted fragment.
type Shape string

const (
	// ShapeFragment is the converted HTML alone.
	ShapeFragment Shape = "fragment"
	// ShapeStyle is <style>css</style><div class="prefix">fragment</div>.
	ShapeStyle Shape = "style"
	// ShapeFull is ShapeStyle followed by <script>js</script>.
	ShapeFull Shape = "full"
	// ShapeDocument is a complete HTML document rendered from the template.
	ShapeDocument Shape = "document"
)

// DefaultLang is the document language when none is configured.
const DefaultLang = "en"

// DefaultTitle is the document title when none is given.
const DefaultTitle = "Document"

// Sentinel errors for assembly.
var (
	ErrInvalidShape   = errors.New("invalid bundle shape")
	ErrTemplateParse  = errors.New("document template parsing failed")
	ErrTemplateRender = errors.New("document template rendering failed")
)

// Shapes lists the valid bundle shapes in documentation order.
func Shapes() []Shape {
	return []Shape{ShapeFragment, ShapeStyle, ShapeFull, ShapeDocument}
}

// ParseShape converts a name into a Shape. An empty name is ShapeFull.
func ParseShape(name string) (Shape, error) {
	if name == "" {
		return ShapeFull, nil
	}
	for _, s := range Shapes() {
		if strings.EqualFold(name, string(s)) {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q (want fragment, style, full or document)", ErrInvalidShape, name)
}

// AssemblerConfig holds the prepared assets for an Assembler.
type AssemblerConfig struct {
	CSS      string // stylesheet, already prefixed and minified as desired
	Script   string // interaction script; empty disables scripts
	Template string // html/template source for ShapeDocument
	Prefix   string // wrapper class; empty means DefaultPrefix
	Lang     string // document language; empty means DefaultLang
}

// DocumentData is the data passed to the document template.
type DocumentData struct {
	Lang    string
	Title   string
	Prefix  string
	Content template.HTML
}

// Assembler builds bundles from converted fragments. It is safe for
// concurrent use.
type Assembler struct {
	css            string
	script         string
	prefix         string
	lang           string
	tmpl           *template.Template
	cssInjector    CSSInjector
	scriptInjector ScriptInjector
}

// NewAssembler parses the document template and returns an Assembler.
func NewAssembler(cfg AssemblerConfig) (*Assembler, error) {
	if err := ValidatePrefix(cfg.Prefix); err != nil {
		return nil, err
	}

	a := &Assembler{
		css:            cfg.CSS,
		script:         cfg.Script,
		prefix:         cfg.Prefix,
		lang:           cfg.Lang,
		cssInjector:    &CSSInjection{},
		scriptInjector: &ScriptInjection{},
	}
	if a.prefix == "" {
		a.prefix = DefaultPrefix
	}
	if a.lang == "" {
		a.lang = DefaultLang
	}

	if cfg.Template != "" {
		tmpl, err := template.New("document").Parse(cfg.Template)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTemplateParse, err)
		}
		a.tmpl = tmpl
	}

	return a, nil
}

// CSS returns the prepared stylesheet.
func (a *Assembler) CSS() string { return a.css }

// Script returns the prepared script.
func (a *Assembler) Script() string { return a.script }

// Prefix returns the wrapper class.
func (a *Assembler) Prefix() string { return a.prefix }

// Assemble wraps fragment according to shape. Title is only used by
// ShapeDocument; an empty title becomes DefaultTitle.
func (a *Assembler) Assemble(ctx context.Context, fragment string, shape Shape, title string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	switch shape {
	case ShapeFragment:
		return fragment, nil
	case ShapeStyle:
		return a.styled(fragment), nil
	case ShapeFull:
		out := a.styled(fragment)
		if a.script != "" {
			out += ScriptBlock(a.script)
		}
		return out, nil
	case ShapeDocument:
		return a.document(ctx, fragment, title)
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidShape, shape)
	}
}

func (a *Assembler) styled(fragment string) string {
	wrapped := htmlutil.WrapWithTag("div", fragment, htmlutil.Attrs{{Key: "class", Value: a.prefix}})
	if a.css == "" {
		return wrapped
	}
	return StyleBlock(a.css) + wrapped
}

func (a *Assembler) document(ctx context.Context, fragment, title string) (string, error) {
	if a.tmpl == nil {
		return "", fmt.Errorf("%w: no document template configured", ErrTemplateRender)
	}
	if title == "" {
		title = DefaultTitle
	}

	var buf bytes.Buffer
	data := DocumentData{
		Lang:    a.lang,
		Title:   title,
		Prefix:  a.prefix,
		Content: template.HTML(fragment), // #nosec G203 -- converter output escapes text and attributes
	}
	if err := a.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateRender, err)
	}

	out := a.cssInjector.InjectCSS(ctx, buf.String(), a.css)
	out = a.scriptInjector.InjectScript(ctx, out, a.script)
	return out, nil
}
