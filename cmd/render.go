package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-agile/pkg/service"
)

func NewRenderCmd(svc **service.Service) *cobra.Command {
	var (
		htmlOutput bool
		output     string
	)

	cmd := &cobra.Command{
		Use:   "render <file.md>",
		Short: "Expand the agile-display blocks of a document",
		Long: `Replace every agile-display block in a Markdown document with its
dashboard and print the result. With --html the whole document is converted
to HTML.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read document: %w", err)
			}

			result, err := s.RenderDocument(context.Background(), string(data), htmlOutput)
			if err != nil {
				return err
			}

			if output != "" {
				if err := os.WriteFile(output, []byte(result), 0644); err != nil {
					return fmt.Errorf("write output: %w", err)
				}
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&htmlOutput, "html", false, "Render the document as HTML")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to a file instead of stdout")

	return cmd
}
