package htmlutil

import "strings"

// Attr is one HTML attribute.
type Attr struct {
	Key   string
	Value string
}

// Attrs is an ordered attribute list; rendering follows insertion order.
type Attrs []Attr

// Set replaces the value of key, or appends it when absent.
func (a *Attrs) Set(key, value string) {
	for i := range *a {
		if (*a)[i].Key == key {
			(*a)[i].Value = value
			return
		}
	}
	*a = append(*a, Attr{Key: key, Value: value})
}

// Get returns the value of key and whether it is present.
func (a Attrs) Get(key string) (string, bool) {
	for _, attr := range a {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return "", false
}

// BuildAttributes renders attrs as ` key="value"` pairs in order, skipping
// empty values and escaping the rest. Returns "" when nothing remains.
func BuildAttributes(attrs Attrs) string {
	var b strings.Builder
	for _, attr := range attrs {
		if attr.Value == "" {
			continue
		}
		b.WriteByte(' ')
		b.WriteString(attr.Key)
		b.WriteString(`="`)
		b.WriteString(EscapeHTML(attr.Value))
		b.WriteByte('"')
	}
	return b.String()
}

// WrapWithTag returns <tag attrs>content</tag>. Content is not escaped.
func WrapWithTag(tag, content string, attrs Attrs) string {
	return "<" + tag + BuildAttributes(attrs) + ">" + content + "</" + tag + ">"
}

// SelfClosingTag returns <tag attrs/>.
func SelfClosingTag(tag string, attrs Attrs) string {
	return "<" + tag + BuildAttributes(attrs) + "/>"
}
