package pipeline

import (
	"context"
	"strings"
)

// CSSInjector defines the contract for CSS injection into HTML.
type CSSInjector interface {
	InjectCSS(ctx context.Context, htmlContent, cssContent string) string
}

// ScriptInjector defines the contract for script injection into HTML.
type ScriptInjector interface {
	InjectScript(ctx context.Context, htmlContent, script string) string
}

// CSSInjection injects CSS as a <style> block into HTML content.
type CSSInjection struct{}

// InjectCSS inserts a <style> block into HTML content.
// Tries </head> first, then <body>, then prepends to the HTML.
// CSS content is sanitized so it cannot close the style element.
func (s *CSSInjection) InjectCSS(ctx context.Context, htmlContent, cssContent string) string {
	if cssContent == "" {
		return htmlContent
	}

	if ctx.Err() != nil {
		return htmlContent
	}

	styleBlock := StyleBlock(cssContent)
	lowerHTML := strings.ToLower(htmlContent)

	if idx := strings.Index(lowerHTML, "</head>"); idx != -1 {
		return htmlContent[:idx] + styleBlock + htmlContent[idx:]
	}

	if idx := strings.Index(lowerHTML, "<body"); idx != -1 {
		// Find the closing > of <body...>
		closeIdx := strings.Index(htmlContent[idx:], ">")
		if closeIdx != -1 {
			insertPos := idx + closeIdx + 1
			return htmlContent[:insertPos] + styleBlock + htmlContent[insertPos:]
		}
	}

	return styleBlock + htmlContent
}

// ScriptInjection injects JavaScript as a <script> block into HTML content.
type ScriptInjection struct{}

// InjectScript inserts a <script> block before </body>, or appends it when
// the document has no body end tag.
func (s *ScriptInjection) InjectScript(ctx context.Context, htmlContent, script string) string {
	if script == "" {
		return htmlContent
	}

	if ctx.Err() != nil {
		return htmlContent
	}

	scriptBlock := ScriptBlock(script)
	lowerHTML := strings.ToLower(htmlContent)

	if idx := strings.LastIndex(lowerHTML, "</body>"); idx != -1 {
		return htmlContent[:idx] + scriptBlock + htmlContent[idx:]
	}

	return htmlContent + scriptBlock
}

// StyleBlock wraps css in a <style> element.
func StyleBlock(css string) string {
	return "<style>" + sanitizeCSS(css) + "</style>"
}

// ScriptBlock wraps js in a <script> element.
func ScriptBlock(js string) string {
	return "<script>" + sanitizeScript(js) + "</script>"
}

// sanitizeCSS escapes sequences that could break out of a <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

// sanitizeScript escapes closing script tags inside the script body.
// `<\/` is equivalent to `</` inside JavaScript string literals.
func sanitizeScript(js string) string {
	return strings.ReplaceAll(js, "</", `<\/`)
}

// Compile-time interface checks.
var (
	_ CSSInjector    = (*CSSInjection)(nil)
	_ ScriptInjector = (*ScriptInjection)(nil)
)
