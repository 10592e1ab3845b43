package engine

import (
	"context"
	"os"
	"strings"

	"github.com/vale-lint/valecore/internal/alert"
	"github.com/vale-lint/valecore/internal/fixer"
)

// Navigate handles a click on a popup link. The target is a local file
// (opened in the editor), an URL (handed to the browser) or a correlation
// token carrying the alert to fix.
func (e *Engine) Navigate(ctx context.Context, id, target string, chooser Chooser) error {
	if _, err := os.Stat(target); err == nil {
		e.surface.OpenFile(target)
		return nil
	}
	if strings.HasPrefix(target, "http") {
		e.surface.OpenURL(target)
		return nil
	}
	return e.ApplyFix(ctx, id, target, chooser)
}

// ApplyFix decodes the correlation token, gathers candidate suggestions,
// lets the user pick one and splices it into the buffer.
//
// Cancellation and fix-level failures (stale region, bad index) are silent
// no-ops. A successful apply invalidates the document's regions but does not
// re-lint; the next trigger refreshes the now-stale positions.
func (e *Engine) ApplyFix(ctx context.Context, id, token string, chooser Chooser) error {
	a, err := alert.DecodeToken(token)
	if err != nil {
		return err
	}
	doc, ok := e.Document(id)
	if !ok {
		return nil
	}

	candidates, err := e.client.Suggestions(ctx, a)
	if err != nil {
		e.logger.Error("failed to fetch suggestions", "check", a.Check, "error", err)
		return err
	}
	// Removal needs no replacement text; offer the single delete option even
	// when the tool supplied no candidates.
	if a.Action.IsRemove() && len(candidates) == 0 {
		candidates = []string{""}
	}
	if len(candidates) == 0 {
		return nil
	}

	index := chooser.Choose(fixer.Options(a, candidates))
	suggestion, ok, err := fixer.Choose(candidates, index)
	if err != nil {
		e.logger.Debug("fix not applied", "check", a.Check, "error", err)
		return nil
	}
	if !ok {
		return nil // cancelled
	}

	// Positions are recomputed against the current buffer at apply time.
	r, err := doc.Position(a)
	if err != nil {
		e.logger.Debug("fix target no longer maps onto the document", "check", a.Check)
		return nil
	}
	if err := fixer.Apply(doc, a, r, suggestion); err != nil {
		e.logger.Debug("fix not applied", "check", a.Check, "error", err)
		return nil
	}

	e.invalidate(id)
	e.surface.StatusMessage("Successfully applied fix!")
	return nil
}
