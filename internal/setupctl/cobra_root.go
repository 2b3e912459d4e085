package setupctl

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// buildRootCmdWith constructs the command tree wired to the fn* actions.
func buildRootCmdWith(cfg *Config) *cobra.Command {
	root := &cobra.Command{
		Use:           "checkctl",
		Short:         "Provision and supervise the CheckSupport inference daemon",
		Long:          "checkctl installs the CheckSupport CLI's prerequisites, manages its\npython virtualenv and supervises the local Ollama daemon that serves\nmodel inference.",
		Version:       toolVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&cfg.LogLvl, "log-level", cfg.LogLvl, "Log level: debug|info|warn|error (defaults CHECKCTL_LOG_LEVEL or info)")
	root.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", false, "Enable debug tracing (shorthand for --log-level debug)")
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if cfg.Verbose {
			cfg.LogLvl = "debug"
		}
		SetLogLevel(cfg.LogLvl)
	}

	setupCmd := &cobra.Command{
		Use:   "setup",
		Short: "Install prerequisites, create the virtualenv, start the daemon and pull the model",
		Example: "  checkctl setup\n  checkctl setup -m demo-model:1b --skip-deps\n  checkctl setup --force --venv-name checksupport_env",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("%w: setup takes no positional arguments", ErrUsage)
			}
			return fnSetup(cfg)
		},
	}
	setupCmd.Flags().StringVarP(&cfg.Model, "model", "m", cfg.Model, "Model to pull into the daemon's store")
	setupCmd.Flags().BoolVar(&cfg.Force, "force", false, "Bypass idempotency short-circuits (reinstall, recreate the venv)")
	setupCmd.Flags().BoolVar(&cfg.SkipModel, "skip-model", false, "Skip the model pull step")
	setupCmd.Flags().BoolVar(&cfg.SkipDeps, "skip-deps", false, "Skip host dependency installation")
	setupCmd.Flags().BoolVar(&cfg.SkipVenv, "skip-venv", false, "Skip virtualenv creation")
	setupCmd.Flags().StringVar(&cfg.VenvName, "venv-name", cfg.VenvName, "Name of the managed virtualenv")
	setupCmd.Flags().StringVar(&cfg.PythonVersion, "python-version", cfg.PythonVersion, "Python version for the venv, e.g. 3.11")
	root.AddCommand(setupCmd)

	root.AddCommand(&cobra.Command{Use: "status", Short: "Report daemon liveness and API readiness", RunE: func(cmd *cobra.Command, args []string) error { return fnStatus(cfg) }})
	root.AddCommand(&cobra.Command{Use: "start", Short: "Start the daemon in the background", RunE: func(cmd *cobra.Command, args []string) error { return fnStart(cfg) }})
	root.AddCommand(&cobra.Command{Use: "stop", Short: "Stop the daemon (SIGTERM, then SIGKILL)", RunE: func(cmd *cobra.Command, args []string) error { return fnStop(cfg) }})
	root.AddCommand(&cobra.Command{Use: "restart", Short: "Stop then start the daemon", RunE: func(cmd *cobra.Command, args []string) error { return fnRestart(cfg) }})
	root.AddCommand(&cobra.Command{Use: "uninstall", Short: "Stop the daemon and remove the virtualenv", RunE: func(cmd *cobra.Command, args []string) error { return fnUninstall(cfg) }})
	root.AddCommand(&cobra.Command{Use: "update", Short: "Refresh venv dependencies and re-pull the model", RunE: func(cmd *cobra.Command, args []string) error { return fnUpdate(cfg) }})

	pullCmd := &cobra.Command{
		Use:     "pull-model NAME",
		Short:   "Pull a model into the daemon's local store",
		Example: "  checkctl pull-model mistral:instruct",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("%w: pull-model requires exactly one model name", ErrUsage)
			}
			return fnPullModel(args[0])
		},
	}
	root.AddCommand(pullCmd)

	root.AddCommand(&cobra.Command{Use: "list-models", Short: "List models present in the daemon's store", RunE: func(cmd *cobra.Command, args []string) error { return fnListModels(cfg.DaemonURL) }})
	root.AddCommand(&cobra.Command{Use: "version", Short: "Print checkctl and daemon versions", RunE: func(cmd *cobra.Command, args []string) error { return fnVersion(cfg) }})

	// completion command
	completionCmd := &cobra.Command{Use: "completion", Short: "Generate the autocompletion script for the specified shell"}
	completionCmd.AddCommand(&cobra.Command{Use: "bash", Short: "Bash completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenBashCompletion(os.Stdout) }})
	completionCmd.AddCommand(&cobra.Command{Use: "zsh", Short: "Zsh completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenZshCompletion(os.Stdout) }})
	completionCmd.AddCommand(&cobra.Command{Use: "fish", Short: "Fish completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenFishCompletion(os.Stdout, true) }})
	root.AddCommand(completionCmd)

	return root
}
