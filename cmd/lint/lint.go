package lint

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vale-lint/valecore/internal/alert"
	"github.com/vale-lint/valecore/internal/document"
	"github.com/vale-lint/valecore/internal/linter"
	"github.com/vale-lint/valecore/internal/report"
	"github.com/vale-lint/valecore/pkg/shared/config"
	"github.com/vale-lint/valecore/pkg/shared/httpclient"
	"github.com/vale-lint/valecore/pkg/shared/logger"
)

// concurrentFiles caps the number of files linted in parallel.
const concurrentFiles = 4

// RunOptions holds the settings for the lint command.
type RunOptions struct {
	Format string
}

var allArgs RunOptions

// NewLintCmd creates a new cobra.Command for the lint command.
func NewLintCmd(appConfig func() *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:                   "lint [files]",
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		Short:                 "Run the linter over the given files",
		Args:                  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(allArgs.Format); err != nil {
				return err
			}
			return run(cmd, appConfig(), args)
		},
	}
	cmd.Flags().StringVarP(&allArgs.Format, "format", "f", "text", "output format: text, json or sarif")
	return cmd
}

func run(cmd *cobra.Command, cfg *config.Config, paths []string) error {
	log := logger.NewLogger(cfg, "valecore")
	rest := httpclient.InitializeRestyClient(log, cfg)
	client := linter.NewClient(cfg, log, rest)

	if err := client.Available(cmd.Context()); err != nil {
		return err
	}

	merged := make(alert.Report, len(paths))
	results := make([]alert.Report, len(paths))

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(concurrentFiles)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			r, err := lintFile(ctx, client, path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for _, r := range results {
		for file, alerts := range r {
			merged[file] = append(merged[file], alerts...)
		}
	}

	if err := printReport(merged, allArgs.Format); err != nil {
		return err
	}

	if n := countErrors(merged); n > 0 {
		return fmt.Errorf("%d error-level alerts", n)
	}
	return nil
}

// lintFile runs the pipeline for one file and rekeys the results by the real
// path: subprocess mode reports alerts against the temporary copy it linted.
func lintFile(ctx context.Context, client linter.Client, path string) (alert.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	doc := document.New(uuid.NewString(), abs, string(data))

	raw, err := client.Lint(ctx, doc.Text(), doc.Path(), doc.Ext())
	if err != nil {
		return nil, err
	}

	out := make(alert.Report, 1)
	for _, alerts := range raw {
		for _, a := range alerts {
			// Drop anything that cannot be positioned in the buffer we read.
			if _, err := doc.Position(a); err != nil {
				continue
			}
			a.File = path
			out[path] = append(out[path], a)
		}
	}
	return out, nil
}

func printReport(merged alert.Report, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(merged, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
	case "sarif":
		doc, err := report.SARIF(merged)
		if err != nil {
			return err
		}
		return doc.PrettyWrite(os.Stdout)
	default:
		printText(merged)
	}
	return nil
}

func countErrors(merged alert.Report) int {
	n := 0
	for _, alerts := range merged {
		for _, a := range alerts {
			if a.Severity == alert.SeverityError {
				n++
			}
		}
	}
	return n
}

func validateFormat(format string) error {
	switch format {
	case "text", "json", "sarif":
		return nil
	}
	return fmt.Errorf("unknown output format %q", format)
}
