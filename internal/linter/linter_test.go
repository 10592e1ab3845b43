package linter

import (
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"

	"github.com/vale-lint/valecore/internal/alert"
	"github.com/vale-lint/valecore/pkg/shared/config"
)

func alertWithParams(params ...string) alert.Alert {
	return alert.Alert{
		Check:  "Style.Rule",
		Action: alert.Action{Name: "replace", Params: params},
	}
}

func TestNewClientSelectsMode(t *testing.T) {
	cfg := config.Default()
	cfg.Vale.Timeout = time.Second

	client := NewClient(cfg, testLogger(), resty.New())
	assert.IsType(t, &CommandClient{}, client)

	cfg.Vale.Server = "http://127.0.0.1:7777"
	client = NewClient(cfg, testLogger(), resty.New())
	assert.IsType(t, &ServerClient{}, client, "a configured server URL selects service mode")
}
