package assets

// Built-in asset names.
const (
	DefaultStyle    = "default"
	DefaultScript   = "code-blocks"
	DefaultTemplate = "document"
)

// AssetLoader loads stylesheets, scripts and templates by name.
// Names never include an extension.
type AssetLoader interface {
	// LoadStyle returns ErrStyleNotFound when the style does not exist.
	LoadStyle(name string) (string, error)

	// LoadScript returns ErrScriptNotFound when the script does not exist.
	LoadScript(name string) (string, error)

	// LoadTemplate returns ErrTemplateNotFound when the template does not exist.
	LoadTemplate(name string) (string, error)
}

// assetKind describes where one kind of asset lives and how its absence is reported.
type assetKind struct {
	dir      string
	ext      string
	notFound error
}

var (
	styleKind    = assetKind{dir: "styles", ext: ".css", notFound: ErrStyleNotFound}
	scriptKind   = assetKind{dir: "scripts", ext: ".js", notFound: ErrScriptNotFound}
	templateKind = assetKind{dir: "templates", ext: ".html", notFound: ErrTemplateNotFound}
)
