// Package popup renders an alert into the display payload shown on hover.
package popup

import (
	"fmt"
	"html/template"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/vale-lint/valecore/internal/alert"
	"github.com/vale-lint/valecore/pkg/shared/files"
)

// ruleCacheSize bounds the rule-path resolution cache. Rule files rarely
// change while an editor session is open, so a stat per check is enough.
const ruleCacheSize = 256

// Link is one clickable action offered by the popup.
type Link struct {
	URL  string // a file path, an http(s) URL, or a correlation token
	Text string
}

// Payload is the rendered form of an alert, ready for the hover surface.
type Payload struct {
	Title    string
	Body     string
	Actions  []Link
	Severity alert.Severity
}

// Builder turns alerts into payloads and payloads into popup HTML.
type Builder struct {
	templates map[alert.Severity]*template.Template
	css       template.CSS
	ruleCache *lru.Cache[string, string]
}

// NewBuilder parses the severity templates and prepares the rule-path cache.
func NewBuilder(t Templates) (*Builder, error) {
	templates := make(map[alert.Severity]*template.Template)
	for severity, text := range map[alert.Severity]string{
		alert.SeverityError:      t.Error,
		alert.SeverityWarning:    t.Warning,
		alert.SeveritySuggestion: t.Info,
	} {
		parsed, err := template.New(string(severity)).Parse(text)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", severity, err)
		}
		templates[severity] = parsed
	}

	cache, err := lru.New[string, string](ruleCacheSize)
	if err != nil {
		return nil, err
	}

	return &Builder{
		templates: templates,
		css:       template.CSS(t.CSS),
		ruleCache: cache,
	}, nil
}

// Render assembles the title, body and action links for an alert.
//
// When the alert carries no description the message is the primary content
// and the check name headlines it; once a richer description exists the
// message is demoted to the title and the description becomes the body.
func (b *Builder) Render(a alert.Alert, stylesPath string) (Payload, error) {
	p := Payload{Severity: a.Severity}

	if rulePath, ok := b.rulePath(a, stylesPath); ok {
		p.Actions = append(p.Actions, Link{URL: rulePath, Text: "Edit rule"})
	}

	if a.Action.HasFix() {
		token, err := alert.EncodeToken(a)
		if err != nil {
			return Payload{}, fmt.Errorf("failed to encode fix token: %w", err)
		}
		p.Actions = append(p.Actions, Link{URL: token, Text: "Fix Alert"})
	}

	if a.Link != "" {
		p.Actions = append(p.Actions, Link{URL: a.Link, Text: "Read more"})
	}

	if a.Description == "" {
		p.Title = fmt.Sprintf("%s: %s", a.Severity.Title(), a.Check)
		p.Body = a.Message
	} else {
		p.Title = fmt.Sprintf("%s: %s", a.Severity.Title(), a.Message)
		p.Body = a.Description
	}

	return p, nil
}

// HTML renders a payload through the severity's template.
func (b *Builder) HTML(p Payload) (string, error) {
	tmpl, ok := b.templates[p.Severity]
	if !ok {
		tmpl = b.templates[alert.SeveritySuggestion]
	}

	links := make([]string, 0, len(p.Actions))
	for _, action := range p.Actions {
		links = append(links, makeLink(action.URL, action.Text))
	}

	var out strings.Builder
	err := tmpl.Execute(&out, struct {
		CSS     template.CSS
		Header  string
		Body    string
		Actions template.HTML
	}{
		CSS:     b.css,
		Header:  p.Title,
		Body:    p.Body,
		Actions: template.HTML(strings.Join(links, " | ")),
	})
	if err != nil {
		return "", fmt.Errorf("failed to render popup: %w", err)
	}
	return out.String(), nil
}

// rulePath resolves the local definition file for the alert's check,
// caching the lookup per styles path.
func (b *Builder) rulePath(a alert.Alert, stylesPath string) (string, bool) {
	if stylesPath == "" || a.Check == "" {
		return "", false
	}
	style, rule := a.StyleRule()
	if style == "" || rule == "" {
		return "", false
	}

	key := stylesPath + "\x00" + a.Check
	if cached, ok := b.ruleCache.Get(key); ok {
		return cached, cached != ""
	}

	loc := filepath.Join(stylesPath, style, rule) + ".yml"
	if err := files.ValidatePath(loc); err != nil {
		b.ruleCache.Add(key, "")
		return "", false
	}
	b.ruleCache.Add(key, loc)
	return loc, true
}

func makeLink(url, text string) string {
	escaped := template.HTMLEscapeString(url)
	return fmt.Sprintf("<a href=%q>%s</a>", escaped, template.HTMLEscapeString(text))
}
