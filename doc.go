// Package lexical2html converts Lexical rich-text documents to HTML.
//
// # Quick Start
//
// Create a converter, convert a document, and close when done:
//
//	conv, err := lexical2html.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, lexical2html.Input{
//	    JSON:  data, // {"editorState": {"root": ...}} or {"root": ...}
//	    Shape: lexical2html.ShapeDocument,
//	    Title: "Release notes",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("notes.html", []byte(result.Bundle), 0644)
//
// Node-level problems never fail a conversion. Unknown node types render
// their children, a node that cannot be converted becomes an HTML comment,
// and every such event is listed in result.Stats.Errors.
//
// # Bundle Shapes
//
// The converted fragment is delivered in one of four shapes:
//
//   - ShapeFragment: the fragment alone
//   - ShapeStyle: <style>css</style><div class="lexical-content">fragment</div>
//   - ShapeFull: ShapeStyle followed by <script>js</script> (default)
//   - ShapeDocument: a complete HTML page with the stylesheet and script injected
//
// ConvertResult always carries the fragment, stylesheet and script separately
// for callers that embed them on their own.
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv, err := lexical2html.NewConverter(
//	    lexical2html.WithStyle("minimal"),
//	    lexical2html.WithPrefix("article-body"),
//	    lexical2html.WithMinifyCSS(true),
//	    lexical2html.WithHighlightStyle("monokai"),
//	    lexical2html.WithBaseURL("https://cdn.example.com/media/"),
//	    lexical2html.WithLogger(logger),
//	)
//
// # Parallel Processing
//
// HTML conversion is safe for concurrent use on one Converter. For batch PDF
// output, use ConverterPool so each worker has its own browser:
//
//	pool := lexical2html.NewConverterPool(4)
//	defer pool.Close()
//
//	conv, err := pool.Acquire()
//	if err != nil {
//	    return err
//	}
//	defer pool.Release(conv)
//	result, err := conv.Convert(ctx, lexical2html.Input{JSON: data, PDF: true})
//
// # Custom Assets
//
// Override built-in styles, scripts and the document template using AssetLoader:
//
//	loader, err := lexical2html.NewAssetLoader("/path/to/assets")
//	conv, err := lexical2html.NewConverter(lexical2html.WithAssetLoader(loader))
//
// Asset directory structure:
//
//	assets/
//	├── styles/
//	│   └── brand.css
//	├── scripts/
//	│   └── code-blocks.js
//	└── templates/
//	    └── document.html
//
// Stylesheets should scope their rules under .lexical-content; the prefix
// option rewrites that class everywhere.
//
// # Browser Requirements
//
// PDF output requires Chrome/Chromium. The go-rod library automatically
// downloads a managed Chromium instance on first run (~/.cache/rod/browser/).
//
// For containers and CI environments, set ROD_NO_SANDBOX=1 to disable the
// Chrome sandbox. Use ROD_BROWSER_BIN to specify a custom Chrome binary.
package lexical2html
