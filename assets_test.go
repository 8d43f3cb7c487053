package lexical2html

// Notes:
// - Internal loaders are tested in internal/assets; here we only check that
//   the public adapter maps internal errors onto public sentinels.

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/alnah/go-lexical2html/internal/assets"
)

func TestNewAssetLoader(t *testing.T) {
	t.Parallel()

	t.Run("embedded only", func(t *testing.T) {
		t.Parallel()

		loader, err := NewAssetLoader("")
		if err != nil {
			t.Fatalf("NewAssetLoader(\"\") error = %v", err)
		}
		if _, err := loader.LoadStyle(DefaultStyle); err != nil {
			t.Errorf("LoadStyle(default) error = %v", err)
		}
		if _, err := loader.LoadScript(DefaultScript); err != nil {
			t.Errorf("LoadScript(default) error = %v", err)
		}
		if _, err := loader.LoadTemplate(DefaultTemplate); err != nil {
			t.Errorf("LoadTemplate(default) error = %v", err)
		}
	})

	t.Run("custom directory overrides", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		if err := os.MkdirAll(filepath.Join(dir, "styles"), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, "styles", "brand.css"), []byte("p{}"), 0644); err != nil {
			t.Fatal(err)
		}

		loader, err := NewAssetLoader(dir)
		if err != nil {
			t.Fatalf("NewAssetLoader() error = %v", err)
		}
		css, err := loader.LoadStyle("brand")
		if err != nil || css != "p{}" {
			t.Errorf("LoadStyle(brand) = %q, %v", css, err)
		}
		// Falls back to embedded.
		if _, err := loader.LoadStyle(DefaultStyle); err != nil {
			t.Errorf("LoadStyle(default) error = %v", err)
		}
	})

	t.Run("invalid path", func(t *testing.T) {
		t.Parallel()

		_, err := NewAssetLoader(filepath.Join(t.TempDir(), "missing"))
		if !errors.Is(err, ErrInvalidAssetPath) {
			t.Errorf("NewAssetLoader() error = %v, want ErrInvalidAssetPath", err)
		}
	})
}

func TestAssetLoader_PublicErrors(t *testing.T) {
	t.Parallel()

	loader, err := NewAssetLoader("")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		load    func() (string, error)
		wantErr error
	}{
		{"missing style", func() (string, error) { return loader.LoadStyle("nope") }, ErrStyleNotFound},
		{"missing script", func() (string, error) { return loader.LoadScript("nope") }, ErrScriptNotFound},
		{"missing template", func() (string, error) { return loader.LoadTemplate("nope") }, ErrTemplateNotFound},
		{"traversal name", func() (string, error) { return loader.LoadStyle("../etc") }, ErrInvalidAssetPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := tt.load()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestConvertAssetError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		internal error
		want     error
	}{
		{assets.ErrStyleNotFound, ErrStyleNotFound},
		{assets.ErrScriptNotFound, ErrScriptNotFound},
		{assets.ErrTemplateNotFound, ErrTemplateNotFound},
		{assets.ErrHighlightStyleNotFound, ErrHighlightStyleNotFound},
		{assets.ErrInvalidBasePath, ErrInvalidAssetPath},
		{assets.ErrPathTraversal, ErrInvalidAssetPath},
		{assets.ErrInvalidAssetName, ErrInvalidAssetPath},
	}

	for _, tt := range tests {
		t.Run(tt.internal.Error(), func(t *testing.T) {
			t.Parallel()

			wrapped := fmt.Errorf("%w: %q", tt.internal, "x")
			got := convertAssetError(wrapped)
			if !errors.Is(got, tt.want) {
				t.Errorf("convertAssetError() = %v, want %v", got, tt.want)
			}
			if got.Error() != wrapped.Error() {
				t.Errorf("message = %q, want original %q", got.Error(), wrapped.Error())
			}
		})
	}

	if convertAssetError(nil) != nil {
		t.Error("convertAssetError(nil) should be nil")
	}
	other := errors.New("disk on fire")
	if convertAssetError(other) != other {
		t.Error("unknown errors should pass through unchanged")
	}
}

func TestStyles(t *testing.T) {
	t.Parallel()

	names := Styles()
	for _, want := range []string{"default", "minimal"} {
		if !slices.Contains(names, want) {
			t.Errorf("Styles() = %v, missing %q", names, want)
		}
	}
	if !slices.Contains(HighlightStyles(), DefaultHighlightStyle) {
		t.Errorf("HighlightStyles() missing %q", DefaultHighlightStyle)
	}
}
