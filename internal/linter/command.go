package linter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/vale-lint/valecore/internal/alert"
	scerrors "github.com/vale-lint/valecore/pkg/shared/errors"
)

// CommandClient runs the vale binary as a subprocess.
type CommandClient struct {
	binary  string
	timeout time.Duration
	logger  hclog.Logger
}

func NewCommandClient(binary string, timeout time.Duration, logger hclog.Logger) *CommandClient {
	return &CommandClient{binary: binary, timeout: timeout, logger: logger}
}

// Available reports whether the binary resolves on PATH or on disk.
func (c *CommandClient) Available(_ context.Context) error {
	_, err := c.resolve()
	return err
}

// resolve locates the binary: the configured name first, then the stock name
// on PATH when a configured explicit path no longer exists.
func (c *CommandClient) resolve() (string, error) {
	path, err := exec.LookPath(c.binary)
	if err == nil {
		return path, nil
	}
	if fallback := defaultBinary(); c.binary != fallback {
		if path, ferr := exec.LookPath(fallback); ferr == nil {
			c.logger.Debug("configured binary missing, falling back to PATH", "configured", c.binary)
			return path, nil
		}
	}
	return "", scerrors.NewToolUnavailableError(c.binary, err)
}

func defaultBinary() string {
	if runtime.GOOS == "windows" {
		return "vale.exe"
	}
	return "vale"
}

// Lint writes the text to a temporary file carrying the document's extension
// (so format detection works), runs the binary with the document's directory
// as working directory (so project-local configuration resolves) and parses
// stdout as a JSON report. The temporary file is removed on every exit path.
func (c *CommandClient) Lint(ctx context.Context, text, path, ext string) (alert.Report, error) {
	if err := c.Available(ctx); err != nil {
		return nil, err
	}

	tmp, err := os.CreateTemp("", "valecore-*"+ext)
	if err != nil {
		return nil, scerrors.NewInvocationError(ModeCommand, "", 0, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(text); err != nil {
		tmp.Close()
		return nil, scerrors.NewInvocationError(ModeCommand, "", 0, err)
	}
	if err := tmp.Close(); err != nil {
		return nil, scerrors.NewInvocationError(ModeCommand, "", 0, err)
	}

	stdout, stderr, err := c.run(ctx, filepath.Dir(path), "--output=JSON", tmp.Name())
	if err != nil {
		return nil, err
	}

	c.logger.Debug("vale finished", "path", path, "bytes", len(stdout))
	report, err := alert.ParseReport(stdout)
	if err != nil {
		c.logger.Error("unparsable vale output", "stderr", string(stderr))
		return nil, err
	}
	return report, nil
}

// StylesPath asks the binary for its resolved configuration and returns the
// StylesPath entry.
func (c *CommandClient) StylesPath(ctx context.Context, path string) (string, error) {
	if err := c.Available(ctx); err != nil {
		return "", err
	}

	stdout, _, err := c.run(ctx, path, "dump-config")
	if err != nil {
		return "", err
	}

	var dumped struct {
		StylesPath string `json:"StylesPath"`
	}
	if err := json.Unmarshal(stdout, &dumped); err != nil {
		return "", scerrors.NewParseError(err)
	}
	return dumped.StylesPath, nil
}

// Suggestions returns the alert's own candidate list; the binary carries the
// candidates inline in Action.Params.
func (c *CommandClient) Suggestions(_ context.Context, a alert.Alert) ([]string, error) {
	return append([]string(nil), a.Action.Params...), nil
}

// run executes the binary with the given working directory and arguments.
// Any stderr output marks the run as failed.
func (c *CommandClient) run(ctx context.Context, dir string, args ...string) ([]byte, []byte, error) {
	binary, err := c.resolve()
	if err != nil {
		return nil, nil, err
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return nil, nil, scerrors.NewTimeoutError(ModeCommand, c.timeout)
	}
	if stderr.Len() > 0 {
		return nil, nil, scerrors.NewInvocationError(ModeCommand, stderr.String(), 0, runErr)
	}
	// A non-zero exit with output is how vale reports error-level alerts;
	// only an empty stdout means the run itself failed.
	if runErr != nil && stdout.Len() == 0 {
		return nil, nil, scerrors.NewInvocationError(ModeCommand, "", 0, runErr)
	}
	return stdout.Bytes(), stderr.Bytes(), nil
}
