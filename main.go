package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-agile/cmd"
	"github.com/mattsolo1/grove-agile/cmd/config"
	"github.com/mattsolo1/grove-agile/pkg/service"
)

var svc *service.Service

func main() {
	rootCmd := &cobra.Command{
		Use:   "agile",
		Short: "Epics, stories and tasks in a Markdown vault",
		Long: `agile keeps an Epic > Story > Task hierarchy as folders and Markdown
files inside a vault and renders filtered dashboards from agile-display blocks.`,
		SilenceUsage: true,
	}
	config.AddGlobalFlags(rootCmd)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// This runs once before any subcommand
		if cmd.Name() == "version" {
			return nil
		}
		config.InitConfig()
		var err error
		svc, err = config.InitService(config.NewLogger())
		return err
	}
	rootCmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		if svc == nil {
			return nil
		}
		return svc.Close()
	}

	// Add subcommands
	rootCmd.AddCommand(cmd.NewInitCmd(&svc))
	rootCmd.AddCommand(cmd.NewCheckCmd(&svc))
	rootCmd.AddCommand(cmd.NewNewCmd(&svc))
	rootCmd.AddCommand(cmd.NewListCmd(&svc))
	rootCmd.AddCommand(cmd.NewDisplayCmd(&svc))
	rootCmd.AddCommand(cmd.NewRenderCmd(&svc))
	rootCmd.AddCommand(cmd.NewSettingsCmd(&svc))
	rootCmd.AddCommand(cmd.NewVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
