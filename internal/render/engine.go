// Package render converts a Lexical node tree into an HTML fragment.
//
// The Engine walks the tree once, dispatching on each node's kind. Every
// call owns a private conversion context holding the node counter and the
// diagnostics, so one Engine can serve many goroutines. Failures never
// escape Convert: they are recorded as diagnostics and, for a single node,
// replaced by an HTML comment so siblings still render.
//
// # Diagnostics
//
//   - "Unknown node type: X": the node's children are rendered in its place.
//   - "Error converting X: msg": the node decoded badly or its rule panicked.
//   - "Error rendering excalidraw: msg": the scene was replaced by a placeholder.
//   - "Fatal error: msg": the root itself failed; HTML is empty.
package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/alnah/go-lexical2html/internal/htmlutil"
	"github.com/alnah/go-lexical2html/internal/lexical"
)

// ErrMissingRoot is reported when a document has no root node.
var ErrMissingRoot = errors.New("document has no root node")

// IDGenerator returns a unique suffix for element ids (code blocks, scenes).
type IDGenerator func() string

// Result is the output of one conversion.
type Result struct {
	HTML      string
	NodeCount int
	Errors    []string
}

// Engine converts node trees. The zero value is not usable; call New.
type Engine struct {
	newID IDGenerator
}

// Option configures an Engine.
type Option func(*Engine)

// WithIDGenerator replaces the random id generator, e.g. for stable output.
func WithIDGenerator(gen IDGenerator) Option {
	return func(e *Engine) {
		if gen != nil {
			e.newID = gen
		}
	}
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{newID: randomID}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// randomID returns the first 12 hex digits of a random UUID.
func randomID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// Convert renders the document's root.
func (e *Engine) Convert(doc *lexical.Document) Result {
	return e.ConvertNode(doc.Root())
}

// ConvertNode renders the subtree under root. A nil root, a root that
// failed to decode, or a panic outside any child yields a fatal result.
func (e *Engine) ConvertNode(root *lexical.Node) (res Result) {
	c := &convContext{engine: e}
	if root == nil {
		return c.fatal(ErrMissingRoot)
	}

	defer func() {
		if r := recover(); r != nil {
			res = c.fatal(fmt.Errorf("%v", r))
		}
	}()

	c.nodeCount++
	if err := root.Err(); err != nil {
		return c.fatal(err)
	}
	html := c.dispatch(root)

	return Result{HTML: html, NodeCount: c.nodeCount, Errors: c.errors}
}

// convContext is the per-call state threaded through the recursion.
type convContext struct {
	engine    *Engine
	nodeCount int
	errors    []string
	inCode    int // depth of enclosing code blocks
}

func (c *convContext) fatal(err error) Result {
	return Result{
		NodeCount: c.nodeCount,
		Errors:    []string{"Fatal error: " + err.Error()},
	}
}

func (c *convContext) warn(format string, args ...any) {
	c.errors = append(c.errors, fmt.Sprintf(format, args...))
}

// convertNode renders one node, isolating any failure to it.
func (c *convContext) convertNode(n *lexical.Node) (out string) {
	c.nodeCount++
	if err := n.Err(); err != nil {
		return c.fail(n, err)
	}
	if n.Type == "" {
		return ""
	}

	defer func() {
		if r := recover(); r != nil {
			out = c.fail(n, fmt.Errorf("%v", r))
		}
	}()

	return c.dispatch(n)
}

// fail records a per-node failure and returns the comment that replaces it.
func (c *convContext) fail(n *lexical.Node, err error) string {
	name := n.Type
	if name == "" {
		name = "node"
	}
	c.warn("Error converting %s: %v", name, err)
	return "<!-- Error converting " + htmlutil.EscapeHTML(name) + " -->"
}

func (c *convContext) children(n *lexical.Node) string {
	var b strings.Builder
	for i := range n.Children {
		b.WriteString(c.convertNode(&n.Children[i]))
	}
	return b.String()
}

func (c *convContext) dispatch(n *lexical.Node) string {
	switch n.Kind() {
	case lexical.KindRoot:
		return c.children(n)
	case lexical.KindParagraph:
		return c.paragraph(n)
	case lexical.KindHeading:
		return c.heading(n)
	case lexical.KindQuote:
		return htmlutil.WrapWithTag("blockquote", c.children(n), blockAttrs(n))
	case lexical.KindText:
		return c.text(n)
	case lexical.KindTab:
		return tab(n)
	case lexical.KindLinebreak:
		return c.linebreak()
	case lexical.KindList:
		return c.list(n)
	case lexical.KindListItem:
		return c.listItem(n)
	case lexical.KindLink, lexical.KindAutoLink:
		return c.link(n)
	case lexical.KindHashtag:
		return htmlutil.WrapWithTag("span", htmlutil.EscapeHTML(n.Text), htmlutil.Attrs{{Key: "class", Value: "hashtag"}})
	case lexical.KindTable:
		return c.table(n)
	case lexical.KindTableRow:
		return c.tableRow(n)
	case lexical.KindTableCell:
		return c.tableCell(n)
	case lexical.KindImage:
		return c.image(n)
	case lexical.KindInlineImage:
		return inlineImage(n)
	case lexical.KindEquation:
		return equation(n)
	case lexical.KindCode:
		return c.codeBlock(n)
	case lexical.KindCodeHighlight:
		return c.codeHighlight(n)
	case lexical.KindCollapsibleContainer:
		return c.collapsible(n)
	case lexical.KindCollapsibleTitle:
		return htmlutil.WrapWithTag("summary", c.children(n), nil)
	case lexical.KindCollapsibleContent:
		return htmlutil.WrapWithTag("div", c.children(n), htmlutil.Attrs{{Key: "class", Value: "details-content"}})
	case lexical.KindPoll:
		return poll(n)
	case lexical.KindLayoutContainer:
		return c.layoutContainer(n)
	case lexical.KindLayoutItem:
		return htmlutil.WrapWithTag("div", c.children(n), htmlutil.Attrs{{Key: "class", Value: "layout-item"}})
	case lexical.KindPageBreak:
		return htmlutil.WrapWithTag("div", "", htmlutil.Attrs{{Key: "class", Value: "page-break"}})
	case lexical.KindHorizontalRule:
		return htmlutil.SelfClosingTag("hr", nil)
	case lexical.KindExcalidraw:
		return c.drawing(n)
	case lexical.KindUnknown:
		c.warn("Unknown node type: %s", n.Type)
		return c.children(n)
	default:
		c.warn("Unknown node type: %s", n.Type)
		return c.children(n)
	}
}
