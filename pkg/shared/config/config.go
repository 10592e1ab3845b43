package config

import (
	"fmt"
	"os"
	"runtime"
	"time"

	yaml "gopkg.in/yaml.v2"
)

// DefaultSyntaxes mirrors the prose formats Vale understands out of the box.
var DefaultSyntaxes = []string{
	"Markdown", "Markdown GFM", "Plain Text", "HTML",
	"reStructuredText", "Asciidoc",
}

// Default returns a configuration populated with working defaults for
// subprocess mode.
func Default() *Config {
	binary := "vale"
	if runtime.GOOS == "windows" {
		binary += ".exe"
	}
	return &Config{
		Vale: Vale{
			Binary:        binary,
			Syntaxes:      DefaultSyntaxes,
			Mode:          ModeSave,
			AlertLocation: LocationPopup,
			AlertStyle:    "squiggly_underline",
			Icon:          "circle",
			PopupWidth:    450,
			Timeout:       30 * time.Second,
		},
	}
}

func ValidateConfigPath(path string) error {
	s, err := os.Stat(path)
	if err != nil {
		return err
	}
	if s.IsDir() {
		return fmt.Errorf("'%s' is a directory, not a file", path)
	}
	return nil
}

// LoadYAML decodes the YAML file at configPath into data.
func LoadYAML(configPath string, data interface{}) error {
	if err := ValidateConfigPath(configPath); err != nil {
		return err
	}

	file, err := os.Open(configPath)
	if err != nil {
		return err
	}
	defer file.Close()

	d := yaml.NewDecoder(file)
	if err := d.Decode(data); err != nil {
		return err
	}

	return nil
}

// LoadConfig reads configPath, applies defaults for unset fields and
// validates the result.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	if err := LoadYAML(configPath, config); err != nil {
		return nil, err
	}
	applyDefaults(config)

	if err := ValidateConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

// LoadOrDefault behaves like LoadConfig but falls back to Default when no
// file exists at configPath. Editors embedding the engine rarely ship one.
func LoadOrDefault(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return Default(), nil
	}
	return LoadConfig(configPath)
}

func applyDefaults(config *Config) {
	def := Default()

	config.Vale.Binary = SetThen(config.Vale.Binary, def.Vale.Binary)
	config.Vale.Mode = SetThen(config.Vale.Mode, def.Vale.Mode)
	config.Vale.AlertLocation = SetThen(config.Vale.AlertLocation, def.Vale.AlertLocation)
	config.Vale.AlertStyle = SetThen(config.Vale.AlertStyle, def.Vale.AlertStyle)
	config.Vale.Icon = SetThen(config.Vale.Icon, def.Vale.Icon)
	config.Vale.PopupWidth = SetThen(config.Vale.PopupWidth, def.Vale.PopupWidth)
	config.Vale.Timeout = SetThen(config.Vale.Timeout, def.Vale.Timeout)
	if len(config.Vale.Syntaxes) == 0 {
		config.Vale.Syntaxes = def.Vale.Syntaxes
	}
}
