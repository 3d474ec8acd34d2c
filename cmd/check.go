package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-agile/pkg/frontmatter"
	"github.com/mattsolo1/grove-agile/pkg/report"
	"github.com/mattsolo1/grove-agile/pkg/service"
	"github.com/mattsolo1/grove-agile/pkg/structure"
	"github.com/mattsolo1/grove-agile/pkg/vault"
)

// NewCheckCmd validates the folder layout and the back-links of every document.
func NewCheckCmd(svc **service.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the agile folder structure",
		Long: `Walk every epic, story and task and report missing files, missing
Tasks folders, and front-matter links or dates that do not match the folders.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			out := cmd.OutOrStdout()

			collector := &report.Collector{}
			m := structure.New(s.Vault, s.Settings, collector)

			if !m.ValidateRootStructure() {
				return fmt.Errorf("agile folder '%s' is missing or empty; run 'agile init'", m.Root())
			}

			var epics, stories, tasks int
			for _, epic := range m.ListEpics() {
				epics++
				if p, ok := m.ResolveEpicPath(epic).Path(); ok {
					checkLinks(s.Vault, collector, p, "", "")
				}
				for _, story := range m.ListStories(epic) {
					stories++
					if p, ok := m.ResolveStoryPath(epic, story).Path(); ok {
						checkLinks(s.Vault, collector, p, epic, "")
					}
					for _, task := range m.ListTasks(epic, story) {
						tasks++
						if p, ok := m.ResolveTaskPath(epic, story, task).Path(); ok {
							checkLinks(s.Vault, collector, p, epic, story)
						}
					}
				}
			}

			fmt.Fprintf(out, "%s: %d epics, %d stories, %d tasks\n", m.Root(), epics, stories, tasks)
			if collector.Len() == 0 {
				fmt.Fprintln(out, "No problems found")
				return nil
			}
			for _, err := range collector.Errors() {
				fmt.Fprintf(out, "  - %v\n", err)
			}
			return fmt.Errorf("found %d problems", collector.Len())
		},
	}

	return cmd
}

// checkLinks compares the Epic and Story back-links of a document with the
// folders it lives in. Empty epic or story skips that link.
func checkLinks(v vault.Vault, r report.Reporter, path, epic, story string) {
	text, err := v.Read(path)
	if err != nil {
		r.Report(report.NewIOFailure("read file", path, err))
		return
	}
	fm, _, err := frontmatter.Parse(text)
	if err != nil {
		r.Report(report.NewMalformed(path, "invalid front-matter in '%s': %v", path, err))
		return
	}
	if fm == nil {
		r.Report(report.NewMalformed(path, "no front-matter in '%s'", path))
		return
	}
	if epic != "" && frontmatter.ParseWikiLink(fm.Epic) != epic {
		r.Report(report.NewMalformed(path, "Epic link %q in '%s' does not match folder '%s'", fm.Epic, path, epic))
	}
	if story != "" && frontmatter.ParseWikiLink(fm.Story) != story {
		r.Report(report.NewMalformed(path, "Story link %q in '%s' does not match folder '%s'", fm.Story, path, story))
	}
	if fm.DateCreated != "" {
		if _, err := frontmatter.ParseDate(fm.DateCreated); err != nil {
			r.Report(report.NewMalformed(path, "invalid Date Created %q in '%s'", fm.DateCreated, path))
		}
	}
}
