package popup

import (
	"embed"
	"os"
	"path/filepath"
)

//go:embed static
var static embed.FS

// Templates holds the raw HTML templates per severity plus the shared CSS.
type Templates struct {
	Error   string
	Warning string
	Info    string
	CSS     string
}

// DefaultTemplates returns the embedded popup assets.
func DefaultTemplates() Templates {
	return Templates{
		Error:   mustStatic("static/error.html"),
		Warning: mustStatic("static/warning.html"),
		Info:    mustStatic("static/info.html"),
		CSS:     mustStatic("static/ui.css"),
	}
}

// LoadTemplates reads user-provided assets from dir, falling back to the
// embedded defaults for any file that is missing.
func LoadTemplates(dir string) Templates {
	t := DefaultTemplates()
	if dir == "" {
		return t
	}
	if data, err := os.ReadFile(filepath.Join(dir, "error.html")); err == nil {
		t.Error = string(data)
	}
	if data, err := os.ReadFile(filepath.Join(dir, "warning.html")); err == nil {
		t.Warning = string(data)
	}
	if data, err := os.ReadFile(filepath.Join(dir, "info.html")); err == nil {
		t.Info = string(data)
	}
	if data, err := os.ReadFile(filepath.Join(dir, "ui.css")); err == nil {
		t.CSS = string(data)
	}
	return t
}

func mustStatic(name string) string {
	data, err := static.ReadFile(name)
	if err != nil {
		panic(err)
	}
	return string(data)
}
