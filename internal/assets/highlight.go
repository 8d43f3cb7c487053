package assets

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultHighlightStyle is the chroma style used when none is configured.
const DefaultHighlightStyle = "github"

// highlightTokens maps the editor's code-highlight types to chroma token types.
// Order is the output order of the generated rules.
var highlightTokens = []struct {
	class string
	token chroma.TokenType
}{
	{"comment", chroma.Comment},
	{"prolog", chroma.CommentPreproc},
	{"doctype", chroma.CommentPreproc},
	{"cdata", chroma.CommentPreproc},
	{"punctuation", chroma.Punctuation},
	{"namespace", chroma.NameNamespace},
	{"property", chroma.NameAttribute},
	{"tag", chroma.NameTag},
	{"boolean", chroma.KeywordConstant},
	{"number", chroma.LiteralNumber},
	{"constant", chroma.NameConstant},
	{"symbol", chroma.LiteralStringSymbol},
	{"deleted", chroma.GenericDeleted},
	{"selector", chroma.NameTag},
	{"attr", chroma.NameAttribute},
	{"string", chroma.LiteralString},
	{"char", chroma.LiteralStringChar},
	{"builtin", chroma.NameBuiltin},
	{"inserted", chroma.GenericInserted},
	{"operator", chroma.Operator},
	{"entity", chroma.NameEntity},
	{"url", chroma.LiteralString},
	{"atrule", chroma.Keyword},
	{"keyword", chroma.Keyword},
	{"function", chroma.NameFunction},
	{"class-name", chroma.NameClass},
	{"class", chroma.NameClass},
	{"regex", chroma.LiteralStringRegex},
	{"important", chroma.KeywordReserved},
	{"variable", chroma.NameVariable},
}

// HighlightStyles returns the names of the available chroma styles.
func HighlightStyles() []string {
	return styles.Names()
}

// HighlightCSS builds `.highlight-*` rules scoped to .lexical-content from
// the named chroma style. Tokens without a color or font setting are omitted.
func HighlightCSS(styleName string) (string, error) {
	if styleName == "" {
		styleName = DefaultHighlightStyle
	}
	style, ok := styles.Registry[strings.ToLower(styleName)]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrHighlightStyleNotFound, styleName)
	}

	var b strings.Builder
	for _, ht := range highlightTokens {
		decls := entryDeclarations(style.Get(ht.token))
		if decls == "" {
			continue
		}
		fmt.Fprintf(&b, ".lexical-content .highlight-%s { %s }\n", ht.class, decls)
	}
	return b.String(), nil
}

func entryDeclarations(entry chroma.StyleEntry) string {
	var decls []string
	if entry.Colour.IsSet() {
		decls = append(decls, "color: "+entry.Colour.String()+";")
	}
	if entry.Bold == chroma.Yes {
		decls = append(decls, "font-weight: bold;")
	}
	if entry.Italic == chroma.Yes {
		decls = append(decls, "font-style: italic;")
	}
	if entry.Underline == chroma.Yes {
		decls = append(decls, "text-decoration: underline;")
	}
	return strings.Join(decls, " ")
}
