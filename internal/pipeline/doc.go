// Package pipeline turns a converted HTML fragment into the bundle shape the
// caller asked for.
//
// The stages after node conversion live here:
//   - Stylesheet preparation (class prefix rewrite, minification)
//   - Script preparation (minification)
//   - Base URL resolution of relative image and link targets
//   - Bundle assembly: bare fragment, styled fragment, styled fragment with
//     script, or a complete HTML document rendered from a template
//   - CSS and script injection into full documents
//
// Node conversion itself is the job of internal/render. PDF output is handled
// by the root package using headless Chrome (go-rod).
package pipeline
