package config

import (
	"fmt"
	"net/url"
)

var (
	validModes = map[string]bool{
		ModeBackground:  true,
		ModeSave:        true,
		ModeLoadAndSave: true,
	}
	validLocations = map[string]bool{
		LocationPopup:     true,
		LocationStatusBar: true,
	}
)

// ValidateConfig checks the settings surface for values the engine cannot act on.
func ValidateConfig(config *Config) error {
	v := config.Vale

	if v.Binary == "" && v.Server == "" {
		return fmt.Errorf("either vale.binary or vale.server must be set")
	}
	if v.Server != "" {
		u, err := url.Parse(v.Server)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("vale.server %q is not a valid base URL", v.Server)
		}
	}
	if !validModes[v.Mode] {
		return fmt.Errorf("vale.mode %q is not one of background, save, load_and_save", v.Mode)
	}
	if !validLocations[v.AlertLocation] {
		return fmt.Errorf("vale.alert_location %q is not one of hover_popup, hover_status_bar", v.AlertLocation)
	}
	if v.Timeout < 0 {
		return fmt.Errorf("vale.timeout must not be negative")
	}
	return nil
}
