// Package linter invokes the external Vale tool, either as a local
// subprocess or through a running Vale Server, and returns its structured
// alerts.
//
// Invocations are single-shot: linting is user-triggered and idempotent to
// re-run, so a failed attempt surfaces immediately instead of retrying.
package linter

import (
	"context"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-hclog"

	"github.com/vale-lint/valecore/internal/alert"
	"github.com/vale-lint/valecore/pkg/shared/config"
)

// Invocation mode labels used in error reporting.
const (
	ModeCommand = "command"
	ModeServer  = "server"
)

// Client is the invocation contract the engine depends on.
type Client interface {
	// Available probes the tool without running a lint. A failure is a
	// ToolUnavailableError, distinct from invocation or parse failures, so
	// callers can branch on "tool missing" vs "tool failed".
	Available(ctx context.Context) error

	// Lint runs the tool against the document text. The path supplies the
	// working directory (project-local configuration) and the extension
	// drives the tool's format detection.
	Lint(ctx context.Context, text, path, ext string) (alert.Report, error)

	// StylesPath resolves the tool's rule-file root, used to link alerts to
	// their local rule definitions.
	StylesPath(ctx context.Context, path string) (string, error)

	// Suggestions returns the candidate fixes for an alert.
	Suggestions(ctx context.Context, a alert.Alert) ([]string, error)
}

// NewClient selects the invocation mode from the configuration: a configured
// server URL wins over the local binary.
func NewClient(cfg *config.Config, logger hclog.Logger, rest *resty.Client) Client {
	if config.IsServiceMode(cfg) {
		return NewServerClient(cfg.Vale.Server, rest, logger)
	}
	return NewCommandClient(cfg.Vale.Binary, cfg.Vale.Timeout, logger)
}
