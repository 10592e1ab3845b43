package engine

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vale-lint/valecore/internal/alert"
	"github.com/vale-lint/valecore/internal/document"
	"github.com/vale-lint/valecore/internal/popup"
	"github.com/vale-lint/valecore/pkg/shared/config"
	scerrors "github.com/vale-lint/valecore/pkg/shared/errors"
)

type fakeClient struct {
	mu          sync.Mutex
	available   error
	report      alert.Report
	lintErr     error
	stylesPath  string
	suggestions []string
	lintCalls   int
	linted      chan struct{}
}

func (f *fakeClient) Available(context.Context) error { return f.available }

func (f *fakeClient) Lint(context.Context, string, string, string) (alert.Report, error) {
	f.mu.Lock()
	f.lintCalls++
	f.mu.Unlock()
	if f.linted != nil {
		select {
		case f.linted <- struct{}{}:
		default:
		}
	}
	return f.report, f.lintErr
}

func (f *fakeClient) StylesPath(context.Context, string) (string, error) {
	return f.stylesPath, nil
}

func (f *fakeClient) Suggestions(_ context.Context, a alert.Alert) ([]string, error) {
	if f.suggestions != nil {
		return f.suggestions, nil
	}
	return a.Action.Params, nil
}

type fakeSurface struct {
	mu       sync.Mutex
	regions  map[alert.Severity][]document.Range
	cleared  int
	popups   []string
	statuses []string
	files    []string
	urls     []string
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{regions: make(map[alert.Severity][]document.Range)}
}

func (s *fakeSurface) SetRegions(_ string, class alert.Severity, ranges []document.Range) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.regions[class] = ranges
}

func (s *fakeSurface) ClearRegions(string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cleared++
	s.regions = make(map[alert.Severity][]document.Range)
}

func (s *fakeSurface) ShowPopup(_ string, _ int, html string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.popups = append(s.popups, html)
}

func (s *fakeSurface) StatusMessage(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses = append(s.statuses, message)
}

func (s *fakeSurface) OpenFile(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files = append(s.files, path)
}

func (s *fakeSurface) OpenURL(url string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.urls = append(s.urls, url)
}

type fakeChooser struct{ index int }

func (c fakeChooser) Choose([]string) int { return c.index }

func newTestEngine(t *testing.T, cfg *config.Config, client *fakeClient) (*Engine, *fakeSurface) {
	t.Helper()
	builder, err := popup.NewBuilder(popup.DefaultTemplates())
	require.NoError(t, err)
	surface := newFakeSurface()
	return New(cfg, hclog.NewNullLogger(), client, builder, surface), surface
}

// Line 1 and 2 take 20 characters each, so line 3 starts at offset 40.
const fixtureText = "aaaaaaaaaaaaaaaaaaa\nbbbbbbbbbbbbbbbbbbb\nthis is line three!"

func warningAt(line, start, end int) alert.Alert {
	return alert.Alert{
		Line:     line,
		Span:     [2]int{start, end},
		Severity: alert.SeverityWarning,
		Check:    "Style.Rule",
		Message:  "msg",
	}
}

func TestLintScenario(t *testing.T) {
	client := &fakeClient{report: alert.Report{"file.md": {warningAt(3, 5, 10)}}}
	e, surface := newTestEngine(t, config.Default(), client)
	e.OpenDocument("doc", "/work/file.md", fixtureText)

	require.NoError(t, e.Lint(context.Background(), "doc"))

	entries := e.Registry().Entries("doc")
	require.Len(t, entries, 1)
	assert.Equal(t, document.Range{Start: 44, End: 50}, entries[0].Range)
	assert.Equal(t, alert.SeverityWarning, entries[0].Alert.Severity)

	surface.mu.Lock()
	defer surface.mu.Unlock()
	require.Len(t, surface.regions[alert.SeverityWarning], 1)
	assert.Equal(t, document.Range{Start: 44, End: 50}, surface.regions[alert.SeverityWarning][0])
}

func TestLintToolUnavailable(t *testing.T) {
	client := &fakeClient{available: scerrors.NewToolUnavailableError("vale", nil)}
	e, surface := newTestEngine(t, config.Default(), client)
	e.OpenDocument("doc", "/work/file.md", fixtureText)

	err := e.Lint(context.Background(), "doc")
	require.Error(t, err)
	assert.Equal(t, 0, e.Registry().Len("doc"), "no regions are shown when the tool is missing")

	surface.mu.Lock()
	defer surface.mu.Unlock()
	assert.Empty(t, surface.regions)
}

func TestLintFailureIsTerminalForPass(t *testing.T) {
	client := &fakeClient{lintErr: scerrors.NewInvocationError("command", "boom", 0, nil)}
	e, _ := newTestEngine(t, config.Default(), client)
	e.OpenDocument("doc", "/work/file.md", fixtureText)

	require.Error(t, e.Lint(context.Background(), "doc"))
	assert.Equal(t, 0, e.Registry().Len("doc"), "no partial alerts applied")
}

func TestLintDropsStaleAlertsOnly(t *testing.T) {
	client := &fakeClient{report: alert.Report{"file.md": {
		warningAt(3, 5, 10),
		warningAt(99, 1, 5), // the document was shorter by the time results arrived
	}}}
	e, _ := newTestEngine(t, config.Default(), client)
	e.OpenDocument("doc", "/work/file.md", fixtureText)

	require.NoError(t, e.Lint(context.Background(), "doc"))
	assert.Equal(t, 1, e.Registry().Len("doc"), "one bad alert must not discard the batch")
}

func TestUnknownDocument(t *testing.T) {
	client := &fakeClient{}
	e, _ := newTestEngine(t, config.Default(), client)
	assert.Error(t, e.Lint(context.Background(), "nope"))
}

func TestOnModifiedClearsRegionsFirst(t *testing.T) {
	client := &fakeClient{report: alert.Report{"file.md": {warningAt(3, 5, 10)}}}
	cfg := config.Default()
	cfg.Vale.Mode = config.ModeSave
	e, surface := newTestEngine(t, cfg, client)
	e.OpenDocument("doc", "/work/file.md", fixtureText)
	require.NoError(t, e.Lint(context.Background(), "doc"))
	require.Equal(t, 1, e.Registry().Len("doc"))

	e.OnModified("doc", "edited")

	assert.Equal(t, 0, e.Registry().Len("doc"), "an edit clears every region")
	surface.mu.Lock()
	defer surface.mu.Unlock()
	assert.NotZero(t, surface.cleared)
}

func TestOnModifiedBackgroundRelints(t *testing.T) {
	client := &fakeClient{report: alert.Report{}, linted: make(chan struct{}, 1)}
	cfg := config.Default()
	cfg.Vale.Mode = config.ModeBackground
	e, _ := newTestEngine(t, cfg, client)
	e.OpenDocument("doc", "/work/file.md", fixtureText)

	e.OnModified("doc", "edited text")

	select {
	case <-client.linted:
	case <-time.After(2 * time.Second):
		t.Fatal("background mode should trigger a lint on modify")
	}
}

func TestTriggerModes(t *testing.T) {
	tests := []struct {
		name      string
		mode      string
		fire      func(e *Engine)
		wantsLint bool
	}{
		{name: "save mode on pre-save", mode: config.ModeSave, fire: func(e *Engine) { e.OnPreSave("doc") }, wantsLint: true},
		{name: "save mode on activate", mode: config.ModeSave, fire: func(e *Engine) { e.OnActivated("doc") }, wantsLint: false},
		{name: "load_and_save on activate", mode: config.ModeLoadAndSave, fire: func(e *Engine) { e.OnActivated("doc") }, wantsLint: true},
		{name: "load_and_save on pre-save", mode: config.ModeLoadAndSave, fire: func(e *Engine) { e.OnPreSave("doc") }, wantsLint: true},
		{name: "background ignores pre-save", mode: config.ModeBackground, fire: func(e *Engine) { e.OnPreSave("doc") }, wantsLint: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client := &fakeClient{report: alert.Report{}, linted: make(chan struct{}, 1)}
			cfg := config.Default()
			cfg.Vale.Mode = tc.mode
			e, _ := newTestEngine(t, cfg, client)
			e.OpenDocument("doc", "/work/file.md", fixtureText)

			tc.fire(e)

			select {
			case <-client.linted:
				if !tc.wantsLint {
					t.Fatal("unexpected lint pass")
				}
			case <-time.After(200 * time.Millisecond):
				if tc.wantsLint {
					t.Fatal("expected a lint pass")
				}
			}
		})
	}
}

func TestConcurrentLintAndEdits(t *testing.T) {
	// Background mode interleaves lint passes with buffer rewrites; run with
	// -race to verify document access stays synchronized.
	client := &fakeClient{report: alert.Report{"file.md": {warningAt(3, 5, 10)}}}
	e, _ := newTestEngine(t, config.Default(), client)
	e.OpenDocument("doc", "/work/file.md", fixtureText)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			_ = e.Lint(context.Background(), "doc")
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			e.OnModified("doc", fixtureText)
			e.OnModified("doc", "short")
		}
	}()
	wg.Wait()
}

func TestHoverPopup(t *testing.T) {
	client := &fakeClient{report: alert.Report{"file.md": {warningAt(3, 5, 10)}}}
	e, surface := newTestEngine(t, config.Default(), client)
	e.OpenDocument("doc", "/work/file.md", fixtureText)
	require.NoError(t, e.Lint(context.Background(), "doc"))

	require.NoError(t, e.Hover(context.Background(), "doc", 47))

	surface.mu.Lock()
	defer surface.mu.Unlock()
	require.Len(t, surface.popups, 1)
	assert.Contains(t, surface.popups[0], "Warning: Style.Rule")
	assert.Empty(t, surface.statuses)
}

func TestHoverStatusBar(t *testing.T) {
	client := &fakeClient{report: alert.Report{"file.md": {warningAt(3, 5, 10)}}}
	cfg := config.Default()
	cfg.Vale.AlertLocation = config.LocationStatusBar
	e, surface := newTestEngine(t, cfg, client)
	e.OpenDocument("doc", "/work/file.md", fixtureText)
	require.NoError(t, e.Lint(context.Background(), "doc"))

	require.NoError(t, e.Hover(context.Background(), "doc", 47))

	surface.mu.Lock()
	defer surface.mu.Unlock()
	require.Len(t, surface.statuses, 1)
	assert.Equal(t, "vale:warning:msg", surface.statuses[0])
	assert.Empty(t, surface.popups)
}

func TestHoverOutsideRegions(t *testing.T) {
	client := &fakeClient{report: alert.Report{"file.md": {warningAt(3, 5, 10)}}}
	e, surface := newTestEngine(t, config.Default(), client)
	e.OpenDocument("doc", "/work/file.md", fixtureText)
	require.NoError(t, e.Lint(context.Background(), "doc"))

	require.NoError(t, e.Hover(context.Background(), "doc", 0))

	surface.mu.Lock()
	defer surface.mu.Unlock()
	assert.Empty(t, surface.popups)
	assert.Empty(t, surface.statuses)
}

func TestIsSupported(t *testing.T) {
	cfg := config.Default()
	cfg.Vale.Syntaxes = []string{"Markdown", "Plain Text"}
	e, _ := newTestEngine(t, cfg, &fakeClient{})

	assert.True(t, e.IsSupported("Packages/Markdown/Markdown.sublime-syntax"))
	assert.True(t, e.IsSupported("packages/markdown gfm"))
	assert.False(t, e.IsSupported("Packages/Go/Go.sublime-syntax"))
}

func TestStyle(t *testing.T) {
	cfg := config.Default()
	cfg.Vale.Icon = "dot"
	cfg.Vale.AlertStyle = "outline"
	e, _ := newTestEngine(t, cfg, &fakeClient{})

	style := e.Style(alert.SeverityError)
	assert.Equal(t, RegionStyle{Scope: "region.redish", Icon: "dot", Style: "outline"}, style)
}

func TestReconfigure(t *testing.T) {
	e, _ := newTestEngine(t, config.Default(), &fakeClient{})
	cfg := config.Default()
	cfg.Vale.Syntaxes = []string{"AsciiDoc"}

	e.Reconfigure(cfg)

	assert.True(t, e.IsSupported("AsciiDoc"))
	assert.False(t, e.IsSupported("Markdown"))
}
