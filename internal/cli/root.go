package cli

import (
	"github.com/spf13/cobra"

	"github.com/neunenak/typst/pkg/buildinfo"
	"github.com/neunenak/typst/pkg/config"
)

// RootCommand creates the root cobra command with all subcommands
// registered. It loads environment configuration and attaches the logger
// to the command context before any subcommand runs.
func (c *CLI) RootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          appName,
		Short:        "Typst evaluates alignment directives in documents",
		Long:         `Typst lays out documents described in TOML, evaluating align calls against the writing system of the document language and reporting diagnostics for conflicting or invalid alignments.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				c.SetLogLevel(LogDebug)
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			c.Config = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.compileCommand())
	root.AddCommand(c.alignCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.historyCommand())
	root.AddCommand(c.completionCommand())

	return root
}
