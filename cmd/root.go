package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vale-lint/valecore/cmd/check"
	"github.com/vale-lint/valecore/cmd/lint"
	"github.com/vale-lint/valecore/cmd/version"
	"github.com/vale-lint/valecore/pkg/shared/config"
	"github.com/vale-lint/valecore/pkg/shared/files"
)

var (
	cfgFile   string
	AppConfig *config.Config
	rootCmd   = &cobra.Command{
		Use:                   "valecore [command]",
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		Short:                 "Valecore runs the Vale prose linter the way an editor would.",
		Long: `Valecore drives the Vale prose linter (binary or Vale Server) through the
	same pipeline an editor integration uses: invoke, parse, position, report.
	`,
	}
)

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is config.yml)")
	rootCmd.AddCommand(lint.NewLintCmd(appConfig))
	rootCmd.AddCommand(check.NewCheckCmd(appConfig))
	rootCmd.AddCommand(version.NewVersionCmd())
}

func appConfig() *config.Config {
	return AppConfig
}

func Execute() int {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		return 1
	}
	return 0
}

func initConfig() {
	var err error

	if cfgFile == "" {
		cfgFile = "config.yml"
	}
	cfgFile, err = files.ExpandPath(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to resolve config path: %v\n", err)
		os.Exit(1)
	}
	AppConfig, err = config.LoadOrDefault(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize config: %v\n", err)
		os.Exit(1)
	}
}
