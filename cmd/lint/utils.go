package lint

import (
	"fmt"
	"sort"

	"github.com/fatih/color"

	"github.com/vale-lint/valecore/internal/alert"
)

var severityColors = map[alert.Severity]*color.Color{
	alert.SeverityError:      color.New(color.FgRed),
	alert.SeverityWarning:    color.New(color.FgYellow),
	alert.SeveritySuggestion: color.New(color.FgBlue),
}

// printText writes one line per alert: path:line:col severity check message.
func printText(merged alert.Report) {
	files := make([]string, 0, len(merged))
	for file := range merged {
		files = append(files, file)
	}
	sort.Strings(files)

	for _, file := range files {
		alerts := merged[file]
		sort.SliceStable(alerts, func(i, j int) bool {
			if alerts[i].Line != alerts[j].Line {
				return alerts[i].Line < alerts[j].Line
			}
			return alerts[i].Span[0] < alerts[j].Span[0]
		})

		for _, a := range alerts {
			c, ok := severityColors[a.Severity]
			if !ok {
				c = color.New()
			}
			fmt.Printf("%s:%d:%d %s %s %s\n",
				file, a.Line, a.Span[0],
				c.Sprint(a.Severity), a.Check, a.Message)
		}
	}
}
