package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.NotEmpty(t, cfg.Vale.Binary)
	assert.Empty(t, cfg.Vale.Server, "subprocess mode is the default")
	assert.Equal(t, ModeSave, cfg.Vale.Mode)
	assert.Equal(t, LocationPopup, cfg.Vale.AlertLocation)
	assert.Equal(t, 450, cfg.Vale.PopupWidth)
	assert.Equal(t, 30*time.Second, cfg.Vale.Timeout)
	assert.Contains(t, cfg.Vale.Syntaxes, "Markdown")
	assert.NoError(t, ValidateConfig(cfg))
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
vale:
  server: "http://127.0.0.1:7777"
  mode: "background"
  syntaxes:
    - "Markdown"
logger:
  level: "debug"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:7777", cfg.Vale.Server)
	assert.True(t, IsServiceMode(cfg))
	assert.Equal(t, ModeBackground, cfg.Vale.Mode)
	assert.Equal(t, []string{"Markdown"}, cfg.Vale.Syntaxes)
	assert.Equal(t, "debug", cfg.Logger.Level)

	// Unset fields pick up defaults.
	assert.Equal(t, LocationPopup, cfg.Vale.AlertLocation)
	assert.Equal(t, 30*time.Second, cfg.Vale.Timeout)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yml"))
	assert.Error(t, err)
}

func TestLoadConfigDirectory(t *testing.T) {
	_, err := LoadConfig(t.TempDir())
	assert.Error(t, err)
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	path := writeConfig(t, "vale:\n  mode: \"load_and_save\"\n")
	cfg, err = LoadOrDefault(path)
	require.NoError(t, err)
	assert.Equal(t, ModeLoadAndSave, cfg.Vale.Mode)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr string
	}{
		{
			name:    "neither binary nor server",
			mutate:  func(cfg *Config) { cfg.Vale.Binary = "" },
			wantErr: "either vale.binary or vale.server",
		},
		{
			name:    "malformed server URL",
			mutate:  func(cfg *Config) { cfg.Vale.Server = "not a url" },
			wantErr: "not a valid base URL",
		},
		{
			name:    "unknown mode",
			mutate:  func(cfg *Config) { cfg.Vale.Mode = "sometimes" },
			wantErr: "vale.mode",
		},
		{
			name:    "unknown alert location",
			mutate:  func(cfg *Config) { cfg.Vale.AlertLocation = "margin" },
			wantErr: "vale.alert_location",
		},
		{
			name:    "negative timeout",
			mutate:  func(cfg *Config) { cfg.Vale.Timeout = -time.Second },
			wantErr: "must not be negative",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)

			err := ValidateConfig(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestIsServiceMode(t *testing.T) {
	cfg := Default()
	assert.False(t, IsServiceMode(cfg))

	cfg.Vale.Server = "http://127.0.0.1:7777"
	assert.True(t, IsServiceMode(cfg))
}

func TestSetThen(t *testing.T) {
	assert.Equal(t, "fallback", SetThen("", "fallback"))
	assert.Equal(t, "explicit", SetThen("explicit", "fallback"))
	assert.Equal(t, 7, SetThen(0, 7))
}
