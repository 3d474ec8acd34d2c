package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-agile/pkg/display"
	"github.com/mattsolo1/grove-agile/pkg/render"
	"github.com/mattsolo1/grove-agile/pkg/report"
	"github.com/mattsolo1/grove-agile/pkg/service"
)

func NewDisplayCmd(svc **service.Service) *cobra.Command {
	var (
		file       string
		htmlOutput bool
		jsonOutput bool
		strict     bool
	)

	cmd := &cobra.Command{
		Use:   "display [directive lines...]",
		Short: "Render the agile dashboard",
		Long: `Build the Epic > Story > Task dashboard for an agile-display directive.

Each argument is one directive line. With --file the directive is read from a
file instead.

Examples:
  agile display
  agile display "Epic=Login" "Sort=Priority" "Completed=false"
  agile display --html -f board.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			ctx := context.Background()

			if htmlOutput && jsonOutput {
				return fmt.Errorf("--html and --json are mutually exclusive")
			}

			body := strings.Join(args, "\n")
			if file != "" {
				data, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("read directive file: %w", err)
				}
				body = string(data)
			}

			collector := &report.Collector{}
			settings := display.Parse(body, report.Tee{collector, s.Reporter})
			if strict && collector.Len() > 0 {
				return fmt.Errorf("invalid directive: %w", collector.Errors()[0])
			}

			root, err := s.Pipeline.Build(ctx, settings)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch {
			case jsonOutput:
				data, err := render.JSON(root)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(data))
			case htmlOutput:
				html, err := render.HTML(root)
				if err != nil {
					return err
				}
				fmt.Fprint(out, html)
			default:
				fmt.Fprint(out, render.Markdown(root))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Read the directive from a file")
	cmd.Flags().BoolVar(&htmlOutput, "html", false, "Output HTML")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the dashboard tree as JSON")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail on malformed directive lines instead of ignoring them")

	return cmd
}
