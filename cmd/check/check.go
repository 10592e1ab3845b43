package check

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vale-lint/valecore/internal/linter"
	"github.com/vale-lint/valecore/pkg/shared/config"
	"github.com/vale-lint/valecore/pkg/shared/httpclient"
	"github.com/vale-lint/valecore/pkg/shared/logger"
)

// NewCheckCmd creates a new cobra.Command for the check command, which
// probes the configured linter without running a lint.
func NewCheckCmd(appConfig func() *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:                   "check",
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		Short:                 "Verify that the configured linter is reachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := appConfig()
			log := logger.NewLogger(cfg, "valecore")
			rest := httpclient.InitializeRestyClient(log, cfg)
			client := linter.NewClient(cfg, log, rest)

			if err := client.Available(cmd.Context()); err != nil {
				return err
			}

			if config.IsServiceMode(cfg) {
				fmt.Printf("vale server is reachable at %s\n", cfg.Vale.Server)
			} else {
				fmt.Printf("vale binary %q is available\n", cfg.Vale.Binary)
			}
			return nil
		},
	}
}
