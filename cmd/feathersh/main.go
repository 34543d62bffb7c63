// Command feathersh is a reference embedder for feather: a one-shot
// script runner and interactive REPL built on the public feather API.
package main

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	var (
		configPath string
		logLevel   string
	)

	var cfg *config
	var logger hclog.Logger

	root := &cobra.Command{
		Use:           "feathersh",
		Short:         "feathersh is a TCL interpreter built on the feather embedding library",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger = hclog.New(&hclog.LoggerOptions{
				Name:       "feathersh",
				Level:      hclog.LevelFromString(logLevel),
				Output:     os.Stderr,
				JSONFormat: false,
			})
			loaded, err := loadConfig(configPath)
			if err != nil {
				return fmt.Errorf("loading config %s: %w", configPath, err)
			}
			cfg = loaded
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if term.IsTerminal(int(os.Stdin.Fd())) {
				return runREPL(cfg, logger)
			}
			return runPipedScript(cfg, logger)
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML startup config")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level: trace, debug, info, warn, error")

	evalCmd := &cobra.Command{
		Use:   "eval <script>",
		Short: "evaluate a single script and print its result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(args[0], cfg, logger)
		},
	}

	replCmd := &cobra.Command{
		Use:   "repl",
		Short: "start an interactive read-eval-print loop",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runREPL(cfg, logger)
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "print the feathersh version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(version)
			return nil
		},
	}

	root.AddCommand(evalCmd, replCmd, versionCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "feathersh: %s\n", err)
		os.Exit(1)
	}
}
