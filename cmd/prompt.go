package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-agile/pkg/service"
)

// confirm asks a yes/no question on the command's streams. Anything but "y"
// or "yes" declines.
func confirm(cmd *cobra.Command, question string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", question)
	var response string
	_, _ = fmt.Fscanln(cmd.InOrStdin(), &response)
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}

// ensureRoot makes sure the root folder exists, asking before creating it
// unless yes is set. Declining stops the command.
func ensureRoot(cmd *cobra.Command, s *service.Service, yes bool) error {
	if s.Structure.RootExists() {
		return nil
	}
	root := s.Structure.Root()
	if !yes && !confirm(cmd, fmt.Sprintf("Agile folder '%s' does not exist. Create the structure?", root)) {
		return fmt.Errorf("agile structure is missing: '%s'", root)
	}
	if err := s.Structure.CreateRootStructure(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", root)
	return nil
}
