package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-agile/pkg/models"
	"github.com/mattsolo1/grove-agile/pkg/service"
)

func NewListCmd(svc **service.Service) *cobra.Command {
	var (
		epic     string
		story    string
		listJSON bool
	)

	cmd := &cobra.Command{
		Use:       "list <epics|stories|tasks>",
		Short:     "List epics, stories or tasks",
		Aliases:   []string{"ls"},
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"epics", "stories", "tasks"},
		Long: `List agile entities in vault order.

Examples:
  agile list epics
  agile list stories --epic Login
  agile list tasks --epic Login --story Form --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			m := s.Structure
			out := cmd.OutOrStdout()

			switch args[0] {
			case "epics":
				var epics []models.Epic
				for _, name := range m.ListEpics() {
					e := models.Epic{Name: name, Path: m.ResolveEpicPath(name).String()}
					if listJSON && e.Path != "" {
						e.Description = s.Fields.ExtractOverview(e.Path)
					}
					epics = append(epics, e)
				}
				if listJSON {
					return outputJSON(out, epics)
				}
				return printTable(out, []string{"NAME", "PATH"}, len(epics), func(i int) []string {
					return []string{epics[i].Name, epics[i].Path}
				})

			case "stories":
				if epic == "" {
					return fmt.Errorf("--epic is required to list stories")
				}
				var stories []models.Story
				for _, name := range m.ListStories(epic) {
					st := models.Story{Name: name, Epic: epic, Path: m.ResolveStoryPath(epic, name).String()}
					if listJSON && st.Path != "" {
						st.Description = s.Fields.ExtractOverview(st.Path)
					}
					stories = append(stories, st)
				}
				if listJSON {
					return outputJSON(out, stories)
				}
				return printTable(out, []string{"NAME", "PATH"}, len(stories), func(i int) []string {
					return []string{stories[i].Name, stories[i].Path}
				})

			default:
				if epic == "" || story == "" {
					return fmt.Errorf("--epic and --story are required to list tasks")
				}
				var tasks []models.Task
				for _, name := range m.ListTasks(epic, story) {
					path := m.ResolveTaskPath(epic, story, name).String()
					task := models.Task{Name: name, Epic: epic, Story: story, Path: path}
					if path != "" {
						task.Priority = s.Fields.ExtractPriority(path)
						task.Completed = s.Fields.IsCompleted(path)
						if listJSON {
							task.Description = s.Fields.ExtractOverview(path)
						}
					}
					tasks = append(tasks, task)
				}
				if listJSON {
					return outputJSON(out, tasks)
				}
				return printTable(out, []string{"NAME", "PRIORITY", "DONE", "PATH"}, len(tasks), func(i int) []string {
					done := ""
					if tasks[i].Completed {
						done = "x"
					}
					return []string{tasks[i].Name, string(tasks[i].Priority), done, tasks[i].Path}
				})
			}
		},
	}

	cmd.Flags().StringVarP(&epic, "epic", "e", "", "Epic to list stories or tasks of")
	cmd.Flags().StringVarP(&story, "story", "s", "", "Story to list tasks of")
	cmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")

	return cmd
}

func outputJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal to JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func printTable(w io.Writer, header []string, n int, row func(i int) []string) error {
	if n == 0 {
		_, err := fmt.Fprintln(w, "Nothing found")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	printRow(tw, header)
	for i := 0; i < n; i++ {
		printRow(tw, row(i))
	}
	return tw.Flush()
}

func printRow(w io.Writer, cells []string) {
	for i, c := range cells {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, c)
	}
	fmt.Fprintln(w)
}
