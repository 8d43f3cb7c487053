package lexical

import "slices"

// Kind identifies a node variant. The set is closed: type strings the
// converter does not know map to KindUnknown.
type Kind int

// Node kinds.
const (
	KindUnknown Kind = iota
	KindRoot
	KindParagraph
	KindHeading
	KindText
	KindTab
	KindLinebreak
	KindQuote
	KindList
	KindListItem
	KindLink
	KindAutoLink
	KindHashtag
	KindTable
	KindTableRow
	KindTableCell
	KindImage
	KindInlineImage
	KindEquation
	KindCode
	KindCodeHighlight
	KindCollapsibleContainer
	KindCollapsibleTitle
	KindCollapsibleContent
	KindPoll
	KindLayoutContainer
	KindLayoutItem
	KindPageBreak
	KindHorizontalRule
	KindExcalidraw
)

var kindNames = map[string]Kind{
	"root":                  KindRoot,
	"paragraph":             KindParagraph,
	"heading":               KindHeading,
	"text":                  KindText,
	"tab":                   KindTab,
	"linebreak":             KindLinebreak,
	"quote":                 KindQuote,
	"list":                  KindList,
	"listitem":              KindListItem,
	"link":                  KindLink,
	"autolink":              KindAutoLink,
	"hashtag":               KindHashtag,
	"table":                 KindTable,
	"tablerow":              KindTableRow,
	"tablecell":             KindTableCell,
	"image":                 KindImage,
	"inline-image":          KindInlineImage,
	"equation":              KindEquation,
	"code":                  KindCode,
	"code-highlight":        KindCodeHighlight,
	"collapsible-container": KindCollapsibleContainer,
	"collapsible-title":     KindCollapsibleTitle,
	"collapsible-content":   KindCollapsibleContent,
	"poll":                  KindPoll,
	"layout-container":      KindLayoutContainer,
	"layout-item":           KindLayoutItem,
	"page-break":            KindPageBreak,
	"horizontalrule":        KindHorizontalRule,
	"excalidraw":            KindExcalidraw,
}

// KindOf maps a node type string to its Kind.
func KindOf(typ string) Kind {
	if k, ok := kindNames[typ]; ok {
		return k
	}
	return KindUnknown
}

// String returns the node type string for k, or "unknown".
func (k Kind) String() string {
	for name, kind := range kindNames {
		if kind == k {
			return name
		}
	}
	return "unknown"
}

// TypeNames returns every recognized node type string, sorted.
func TypeNames() []string {
	names := make([]string, 0, len(kindNames))
	for name := range kindNames {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
