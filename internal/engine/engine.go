// Package engine coordinates the lint pipeline: it reacts to editor events,
// invokes the linter, positions alerts in the live buffer, keeps the region
// registry current and serves hover and fix requests.
package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/vale-lint/valecore/internal/alert"
	"github.com/vale-lint/valecore/internal/document"
	"github.com/vale-lint/valecore/internal/linter"
	"github.com/vale-lint/valecore/internal/popup"
	"github.com/vale-lint/valecore/internal/registry"
	"github.com/vale-lint/valecore/pkg/shared/config"
	scerrors "github.com/vale-lint/valecore/pkg/shared/errors"
)

// EditorSurface is the rendering contract the embedding editor provides.
// Calls arrive from lint workers, so implementations must marshal onto their
// own UI flow.
type EditorSurface interface {
	// SetRegions renders the ranges for one severity class in a single batch.
	SetRegions(documentID string, class alert.Severity, ranges []document.Range)
	// ClearRegions erases every severity class for the document.
	ClearRegions(documentID string)
	ShowPopup(documentID string, point int, html string)
	StatusMessage(message string)
	OpenFile(path string)
	OpenURL(url string)
}

// Chooser presents an ordered list of options and returns the selected
// index, or -1 when the user cancelled.
type Chooser interface {
	Choose(options []string) int
}

// Engine is safe for concurrent use; each lint request runs independently.
type Engine struct {
	logger   hclog.Logger
	client   linter.Client
	registry *registry.Registry
	builder  *popup.Builder
	surface  EditorSurface

	mu   sync.RWMutex
	cfg  *config.Config
	docs map[string]*document.Document

	stylesMu    sync.Mutex
	stylesCache map[string]string // document dir -> resolved styles path
}

func New(cfg *config.Config, logger hclog.Logger, client linter.Client, builder *popup.Builder, surface EditorSurface) *Engine {
	return &Engine{
		logger:      logger,
		client:      client,
		registry:    registry.New(),
		builder:     builder,
		surface:     surface,
		cfg:         cfg,
		docs:        make(map[string]*document.Document),
		stylesCache: make(map[string]string),
	}
}

// Reconfigure swaps the settings object. Replaces the original
// reload-on-change callback with an explicit call.
func (e *Engine) Reconfigure(cfg *config.Config) {
	e.mu.Lock()
	e.cfg = cfg
	e.mu.Unlock()
	e.stylesMu.Lock()
	e.stylesCache = make(map[string]string)
	e.stylesMu.Unlock()
}

func (e *Engine) config() *config.Config {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cfg
}

// IsSupported reports whether the syntax is listed in the configuration.
// Matching is a case-insensitive substring test, so "Markdown GFM" matches a
// configured "markdown".
func (e *Engine) IsSupported(syntax string) bool {
	lowered := strings.ToLower(syntax)
	for _, supported := range e.config().Vale.Syntaxes {
		if strings.Contains(lowered, strings.ToLower(supported)) {
			return true
		}
	}
	return false
}

// Registry exposes the region registry for read-side consumers.
func (e *Engine) Registry() *registry.Registry { return e.registry }

// RegionStyle describes how one severity class should be drawn.
type RegionStyle struct {
	Scope string // color scope for the severity
	Icon  string // gutter icon name
	Style string // draw style, e.g. squiggly_underline
}

// Style returns the presentation for a severity class, combining the
// severity's scope with the configured icon and draw style.
func (e *Engine) Style(severity alert.Severity) RegionStyle {
	cfg := e.config()
	return RegionStyle{
		Scope: severity.Scope(),
		Icon:  cfg.Vale.Icon,
		Style: cfg.Vale.AlertStyle,
	}
}

// OpenDocument registers a buffer with the engine.
func (e *Engine) OpenDocument(id, path, text string) {
	e.mu.Lock()
	e.docs[id] = document.New(id, path, text)
	e.mu.Unlock()
}

// CloseDocument drops all state for a buffer.
func (e *Engine) CloseDocument(id string) {
	e.mu.Lock()
	delete(e.docs, id)
	e.mu.Unlock()
	e.registry.Forget(id)
	e.surface.ClearRegions(id)
}

// Document returns the engine's buffer snapshot for id.
func (e *Engine) Document(id string) (*document.Document, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	doc, ok := e.docs[id]
	return doc, ok
}

// OnModified records the new buffer contents and invalidates every region
// for the document before anything else happens; stale overlays never
// survive an edit. In background mode the document is re-linted immediately.
func (e *Engine) OnModified(id, text string) {
	doc, ok := e.Document(id)
	if !ok {
		return
	}
	doc.SetText(text)
	e.invalidate(id)

	if e.config().Vale.Mode == config.ModeBackground {
		e.LintAsync(id)
	}
}

// OnActivated handles a buffer gaining focus.
func (e *Engine) OnActivated(id string) {
	if e.config().Vale.Mode == config.ModeLoadAndSave {
		e.LintAsync(id)
	}
}

// OnPreSave handles an imminent save.
func (e *Engine) OnPreSave(id string) {
	switch e.config().Vale.Mode {
	case config.ModeSave, config.ModeLoadAndSave:
		e.LintAsync(id)
	}
}

// Lint runs one synchronous lint pass over the document. Invocation
// failures are terminal for the pass: nothing is rendered and the error is
// reported once. Individual alerts that no longer map onto the buffer are
// dropped without affecting the rest of the batch.
func (e *Engine) Lint(ctx context.Context, id string) error {
	doc, ok := e.Document(id)
	if !ok {
		return fmt.Errorf("unknown document %q", id)
	}

	pass := uuid.NewString()
	seq := e.registry.Begin(id)
	logger := e.logger.With("pass", pass, "document", id)

	if err := e.client.Available(ctx); err != nil {
		logger.Warn("linter unavailable, skipping pass", "error", err)
		return err
	}

	report, err := e.client.Lint(ctx, doc.Text(), doc.Path(), doc.Ext())
	if err != nil {
		logger.Error("lint pass failed", "error", err)
		return err
	}

	entries := make([]registry.Entry, 0, report.Count())
	for _, alerts := range report {
		for _, a := range alerts {
			r, err := doc.Position(a)
			if err != nil {
				var stale *scerrors.StaleOffsetError
				if errors.As(err, &stale) {
					logger.Debug("dropping stale alert", "check", a.Check, "line", a.Line)
					continue
				}
				return err
			}
			entries = append(entries, registry.Entry{Range: r, Alert: a})
		}
	}

	if !e.registry.ReplaceAll(id, seq, entries) {
		logger.Debug("dropping stale lint results", "seq", seq)
		return nil
	}

	e.renderRegions(id)
	logger.Debug("lint pass complete", "alerts", len(entries))
	return nil
}

// LintAsync runs a lint pass on its own worker instead of stalling the
// calling flow.
func (e *Engine) LintAsync(id string) {
	go func() {
		if err := e.Lint(context.Background(), id); err != nil {
			e.logger.Debug("async lint pass did not complete", "document", id, "error", err)
		}
	}()
}

// Hover serves a hover event at the given point, using the configured
// display location. A point outside every region is a no-op.
func (e *Engine) Hover(ctx context.Context, id string, point int) error {
	entry, ok := e.registry.Find(id, point)
	if !ok {
		return nil
	}

	if e.config().Vale.AlertLocation == config.LocationStatusBar {
		e.surface.StatusMessage(fmt.Sprintf("vale:%s:%s", entry.Alert.Severity, entry.Alert.Message))
		return nil
	}

	doc, _ := e.Document(id)
	payload, err := e.builder.Render(entry.Alert, e.stylesPath(ctx, doc))
	if err != nil {
		return err
	}
	html, err := e.builder.HTML(payload)
	if err != nil {
		return err
	}
	e.surface.ShowPopup(id, point, html)
	return nil
}

// renderRegions pushes the current region set to the surface, one batch per
// severity class.
func (e *Engine) renderRegions(id string) {
	grouped := e.registry.BySeverity(id)
	for _, level := range alert.Levels {
		e.surface.SetRegions(id, level, grouped[level])
	}
}

// invalidate clears rendered regions and registry state for a document.
func (e *Engine) invalidate(id string) {
	e.registry.Clear(id)
	e.surface.ClearRegions(id)
}

// stylesPath resolves and caches the rule-file root for a document's
// directory. Failures degrade to "no rule links" rather than breaking hover.
func (e *Engine) stylesPath(ctx context.Context, doc *document.Document) string {
	if doc == nil {
		return ""
	}
	dir := doc.Dir()

	e.stylesMu.Lock()
	cached, ok := e.stylesCache[dir]
	e.stylesMu.Unlock()
	if ok {
		return cached
	}

	path, err := e.client.StylesPath(ctx, dir)
	if err != nil {
		e.logger.Debug("styles path unavailable", "dir", dir, "error", err)
		path = ""
	}
	e.stylesMu.Lock()
	e.stylesCache[dir] = path
	e.stylesMu.Unlock()
	return path
}
