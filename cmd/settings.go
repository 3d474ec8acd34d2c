package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-agile/pkg/service"
)

func NewSettingsCmd(svc **service.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the plugin settings of this vault",
	}

	cmd.AddCommand(newSettingsShowCmd(svc))
	cmd.AddCommand(newSettingsSetCmd(svc))

	return cmd
}

func newSettingsShowCmd(svc **service.Service) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			if jsonOutput {
				return outputJSON(cmd.OutOrStdout(), s.Settings)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Vault:        %s\n", s.VaultPath())
			fmt.Fprintf(out, "Agile folder: %s\n", s.Settings.RootPath)
			fmt.Fprintf(out, "Ribbon icon:  %t\n", s.Settings.ShowRibbon)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

func newSettingsSetCmd(svc **service.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change a setting",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "root <path>",
		Short: "Change the agile folder, renaming it on disk if it exists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			next := s.Settings
			next.RootPath = args[0]
			if err := s.UpdateSettings(next); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Agile folder set to %s\n", s.Settings.RootPath)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "ribbon <true|false>",
		Short: "Show or hide the ribbon icon",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			show, err := strconv.ParseBool(args[0])
			if err != nil {
				return fmt.Errorf("invalid value '%s': expected true or false", args[0])
			}
			next := s.Settings
			next.ShowRibbon = show
			if err := s.UpdateSettings(next); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Ribbon icon set to %t\n", show)
			return nil
		},
	})

	return cmd
}
