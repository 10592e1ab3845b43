// Package alert holds the normalized model for Vale's structured output.
package alert

import (
	"encoding/json"
	"strings"

	scerrors "github.com/vale-lint/valecore/pkg/shared/errors"
)

// Severity is Vale's closed level set.
type Severity string

const (
	SeverityError      Severity = "error"
	SeverityWarning    Severity = "warning"
	SeveritySuggestion Severity = "suggestion"
)

// Levels lists all severities in rendering order.
var Levels = []Severity{SeverityError, SeverityWarning, SeveritySuggestion}

func (s Severity) Valid() bool {
	switch s {
	case SeverityError, SeverityWarning, SeveritySuggestion:
		return true
	}
	return false
}

// Title returns the capitalized form used in popup headers.
func (s Severity) Title() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[0])) + string(s[1:])
}

// Scope returns the color scope name editing surfaces use to tint the
// severity's regions.
func (s Severity) Scope() string {
	switch s {
	case SeverityError:
		return "region.redish"
	case SeverityWarning:
		return "region.orangish"
	default:
		return "region.bluish"
	}
}

// ActionRemove is the one action name with special splice semantics; every
// other non-empty name is a plain replacement.
const ActionRemove = "remove"

// Action is Vale's optional fix descriptor.
type Action struct {
	Name   string   `json:"Name"`
	Params []string `json:"Params"`
}

// HasFix reports whether an automatic fix is available.
func (a Action) HasFix() bool { return a.Name != "" }

// IsRemove reports whether applying the fix deletes the match instead of
// replacing it.
func (a Action) IsRemove() bool { return a.Name == ActionRemove }

// Alert is one flagged span as reported by Vale.
type Alert struct {
	File        string   `json:"-"` // keyed by the outer report map, not the JSON object
	Line        int      `json:"Line"`
	Span        [2]int   `json:"Span"` // 1-based, inclusive column offsets
	Severity    Severity `json:"Severity"`
	Check       string   `json:"Check"`
	Message     string   `json:"Message"`
	Description string   `json:"Description"`
	Link        string   `json:"Link"`
	Match       string   `json:"Match"`
	Action      Action   `json:"Action"`
}

// StyleRule splits the Check identifier ("Style.RuleName") into its parts.
func (a Alert) StyleRule() (style, rule string) {
	style, rule, _ = strings.Cut(a.Check, ".")
	return style, rule
}

// Report maps a file path to the alerts raised against it.
type Report map[string][]Alert

// ParseReport decodes Vale's JSON output and stamps each alert with the file
// it belongs to.
func ParseReport(data []byte) (Report, error) {
	var report Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, scerrors.NewParseError(err)
	}
	for file, alerts := range report {
		for i := range alerts {
			alerts[i].File = file
		}
		report[file] = alerts
	}
	return report, nil
}

// Count returns the total number of alerts across all files.
func (r Report) Count() int {
	n := 0
	for _, alerts := range r {
		n += len(alerts)
	}
	return n
}
