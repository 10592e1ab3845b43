// Package report converts positioned lint results into SARIF for CI
// consumers.
package report

import (
	"sort"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/vale-lint/valecore/internal/alert"
)

const (
	toolName = "vale"
	toolURI  = "https://vale.sh"
)

// SARIF renders the report as a SARIF 2.1.0 document with one run.
func SARIF(report alert.Report) (*sarif.Report, error) {
	doc, err := sarif.New(sarif.Version210)
	if err != nil {
		return nil, err
	}
	run := sarif.NewRunWithInformationURI(toolName, toolURI)

	files := make([]string, 0, len(report))
	for file := range report {
		files = append(files, file)
	}
	sort.Strings(files)

	for _, file := range files {
		for _, a := range report[file] {
			rule := run.AddRule(a.Check)
			if a.Link != "" {
				rule.WithHelpURI(a.Link)
			}
			if a.Description != "" {
				rule.WithFullDescription(sarif.NewMultiformatMessageString(a.Description))
			}

			run.CreateResultForRule(a.Check).
				WithLevel(Level(a.Severity)).
				WithMessage(sarif.NewTextMessage(a.Message)).
				AddLocation(
					sarif.NewLocationWithPhysicalLocation(
						sarif.NewPhysicalLocation().
							WithArtifactLocation(sarif.NewSimpleArtifactLocation(file)).
							WithRegion(
								sarif.NewRegion().
									WithStartLine(a.Line).
									WithStartColumn(a.Span[0]).
									WithEndLine(a.Line).
									WithEndColumn(a.Span[1]),
							),
					),
				)
		}
	}

	doc.AddRun(run)
	return doc, nil
}

// Level maps Vale's severity set onto SARIF result levels.
func Level(severity alert.Severity) string {
	switch severity {
	case alert.SeverityError:
		return "error"
	case alert.SeverityWarning:
		return "warning"
	default:
		return "note"
	}
}
