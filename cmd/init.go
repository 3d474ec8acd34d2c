package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-agile/pkg/service"
)

func NewInitCmd(svc **service.Service) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the agile folder in the vault",
		Long: `Create the root folder that holds all epics, stories and tasks.

The folder name comes from the plugin settings (see 'agile settings show').
An existing folder is left alone.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc

			if s.Structure.RootExists() {
				fmt.Fprintf(cmd.OutOrStdout(), "Agile folder already exists at %s\n", s.Structure.Root())
				return nil
			}
			if err := ensureRoot(cmd, s, yes); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "\nReady to use! Try 'agile new epic <name>' to create your first epic.")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Create the structure without asking")

	return cmd
}
