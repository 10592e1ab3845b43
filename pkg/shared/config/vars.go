package config

import (
	"time"
)

// Trigger modes controlling when a lint pass runs.
const (
	ModeBackground  = "background"     // re-lint on every modification
	ModeSave        = "save"           // lint on save only
	ModeLoadAndSave = "load_and_save"  // lint on focus and on save
)

// Hover display locations.
const (
	LocationPopup     = "hover_popup"
	LocationStatusBar = "hover_status_bar"
)

type Config struct {
	Vale       Vale       `yaml:"vale"`
	Logger     Logger     `yaml:"logger"`
	HttpClient HttpClient `yaml:"http_client"`
}

// Vale holds the settings surface consumed by the engine.
type Vale struct {
	Binary        string        `yaml:"binary"`         // path to the vale binary (subprocess mode)
	Server        string        `yaml:"server"`         // base URL of a Vale Server instance; non-empty selects service mode
	Syntaxes      []string      `yaml:"syntaxes"`       // syntaxes the engine is allowed to lint
	Mode          string        `yaml:"mode"`           // background | save | load_and_save
	AlertLocation string        `yaml:"alert_location"` // hover_popup | hover_status_bar
	AlertStyle    string        `yaml:"alert_style"`    // solid_underline | stippled_underline | squiggly_underline | outline
	Icon          string        `yaml:"icon"`           // gutter icon name handed to the editing surface
	PopupWidth    int           `yaml:"popup_width"`
	Timeout       time.Duration `yaml:"timeout"` // per-invocation deadline for the external tool
	Debug         bool          `yaml:"debug"`
}

type Logger struct {
	Level string `yaml:"level"`
}

type HttpClient struct {
	Debug           bool            `yaml:"debug"`
	Timeout         time.Duration   `yaml:"timeout"`
	TlsClientConfig TlsClientConfig `yaml:"tls_client_config"`
	Proxy           Proxy           `yaml:"proxy"`
}

type TlsClientConfig struct {
	// Verify is a pointer so an absent field keeps verification on.
	Verify *bool `yaml:"verify"`
}

type Proxy struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

// RestyHttpClientConfig is the resolved form handed to the resty client.
type RestyHttpClientConfig struct {
	Debug              bool
	Timeout            time.Duration
	InsecureSkipVerify bool
	Proxy              string
}
