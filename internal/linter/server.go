package linter

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/url"
	"path/filepath"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-hclog"

	"github.com/vale-lint/valecore/internal/alert"
	scerrors "github.com/vale-lint/valecore/pkg/shared/errors"
)

// ServerClient talks to a running Vale Server instance.
type ServerClient struct {
	base   string
	rest   *resty.Client
	logger hclog.Logger
}

func NewServerClient(base string, rest *resty.Client, logger hclog.Logger) *ServerClient {
	return &ServerClient{base: base, rest: rest, logger: logger}
}

// ServerConfig is the subset of GET /config the engine consumes.
type ServerConfig struct {
	StylesPath  string   `json:"StylesPath"`
	GBaseStyles []string `json:"GBaseStyles"`
}

// Available probes the metadata endpoint as a lightweight reachability check.
func (c *ServerClient) Available(ctx context.Context) error {
	resp, err := c.rest.R().SetContext(ctx).Get(c.endpoint("path"))
	if err != nil {
		return scerrors.NewToolUnavailableError(c.base, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return scerrors.NewToolUnavailableError(c.base, nil)
	}
	return nil
}

// Lint posts the document to the server's lint endpoint. The body is already
// structured, so no temporary file is involved.
func (c *ServerClient) Lint(ctx context.Context, text, path, ext string) (alert.Report, error) {
	resp, err := c.rest.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"format": ext,
			"text":   text,
			"path":   filepath.Dir(path),
		}).
		Post(c.endpoint("vale"))
	if err != nil {
		return nil, c.transportError(err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, scerrors.NewInvocationError(ModeServer, "", resp.StatusCode(), nil)
	}

	c.logger.Debug("vale server responded", "path", path, "bytes", len(resp.Body()))
	return alert.ParseReport(resp.Body())
}

// Config fetches the server's resolved configuration.
func (c *ServerClient) Config(ctx context.Context) (ServerConfig, error) {
	var cfg ServerConfig
	if err := c.getJSON(ctx, "config", &cfg); err != nil {
		return ServerConfig{}, err
	}
	return cfg, nil
}

// StylesPath resolves the rule-file root from the server's metadata endpoint.
func (c *ServerClient) StylesPath(ctx context.Context, _ string) (string, error) {
	var payload struct {
		Path string `json:"path"`
	}
	if err := c.getJSON(ctx, "path", &payload); err != nil {
		return "", err
	}
	return payload.Path, nil
}

// Suggestions round-trips the alert through the server's suggest endpoint.
func (c *ServerClient) Suggestions(ctx context.Context, a alert.Alert) ([]string, error) {
	encoded, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}

	resp, err := c.rest.R().
		SetContext(ctx).
		SetFormData(map[string]string{"alert": string(encoded)}).
		Post(c.endpoint("suggest"))
	if err != nil {
		return nil, c.transportError(err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, scerrors.NewInvocationError(ModeServer, "", resp.StatusCode(), nil)
	}

	var payload struct {
		Suggestions []string `json:"suggestions"`
	}
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return nil, scerrors.NewParseError(err)
	}
	return payload.Suggestions, nil
}

func (c *ServerClient) getJSON(ctx context.Context, path string, out interface{}) error {
	resp, err := c.rest.R().SetContext(ctx).Get(c.endpoint(path))
	if err != nil {
		return c.transportError(err)
	}
	if resp.StatusCode() != http.StatusOK {
		return scerrors.NewInvocationError(ModeServer, "", resp.StatusCode(), nil)
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return scerrors.NewParseError(err)
	}
	return nil
}

func (c *ServerClient) endpoint(path string) string {
	joined, err := url.JoinPath(c.base, path)
	if err != nil {
		// The base URL is validated at configuration load; a join can only
		// fail on a malformed path constant.
		return c.base + "/" + path
	}
	return joined
}

func (c *ServerClient) transportError(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return scerrors.NewTimeoutError(ModeServer, c.rest.GetClient().Timeout)
	}
	return scerrors.NewInvocationError(ModeServer, "", 0, err)
}
