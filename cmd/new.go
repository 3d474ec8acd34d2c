package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-agile/pkg/factory"
	"github.com/mattsolo1/grove-agile/pkg/service"
)

type newOptions struct {
	description string
	tags        []string
	noEdit      bool
	yes         bool
}

func (o *newOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.description, "description", "d", "", "Overview text of the new document")
	cmd.Flags().StringSliceVarP(&o.tags, "tag", "t", nil, "Extra front-matter tags (repeatable)")
	cmd.Flags().BoolVar(&o.noEdit, "no-edit", false, "Do not open the new document in the editor")
	cmd.Flags().BoolVarP(&o.yes, "yes", "y", false, "Create the agile folder without asking if it is missing")
}

// factory returns the service factory unless the flags ask for a different one.
func (o *newOptions) factory(s *service.Service) *factory.Factory {
	if !o.noEdit && len(o.tags) == 0 {
		return s.Factory
	}
	var opts []factory.Option
	if len(o.tags) > 0 {
		opts = append(opts, factory.WithTags(o.tags...))
	}
	if !o.noEdit && !s.Config.NoEditor {
		opts = append(opts, factory.WithOpener(factory.EditorOpener{Editor: s.Config.Editor}))
	}
	return factory.New(s.Vault, s.Structure.Layout(), nil, opts...)
}

func NewNewCmd(svc **service.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create an epic, story or task",
		Long: `Create a new agile document and open it in the editor.

Examples:
  agile new epic "Login"
  agile new story "Form" --epic Login -d "The sign-in form"
  agile new task "Validate" --epic Login --story Form --priority High`,
	}

	cmd.AddCommand(newEpicCmd(svc))
	cmd.AddCommand(newStoryCmd(svc))
	cmd.AddCommand(newTaskCmd(svc))

	return cmd
}

func newEpicCmd(svc **service.Service) *cobra.Command {
	var opts newOptions

	cmd := &cobra.Command{
		Use:   "epic <name>",
		Short: "Create a new epic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			if err := ensureRoot(cmd, s, opts.yes); err != nil {
				return err
			}
			path, err := opts.factory(s).CreateEpic(args[0], opts.description)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created epic: %s\n", path)
			return nil
		},
	}
	opts.bind(cmd)

	return cmd
}

func newStoryCmd(svc **service.Service) *cobra.Command {
	var (
		opts newOptions
		epic string
	)

	cmd := &cobra.Command{
		Use:   "story <name>",
		Short: "Create a new story inside an epic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			if err := ensureRoot(cmd, s, opts.yes); err != nil {
				return err
			}
			path, err := opts.factory(s).CreateStory(args[0], opts.description, epic)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created story: %s\n", path)
			return nil
		},
	}
	opts.bind(cmd)
	cmd.Flags().StringVarP(&epic, "epic", "e", "", "Epic the story belongs to")
	_ = cmd.MarkFlagRequired("epic")

	return cmd
}

func newTaskCmd(svc **service.Service) *cobra.Command {
	var (
		opts     newOptions
		epic     string
		story    string
		priority string
	)

	cmd := &cobra.Command{
		Use:   "task <name>",
		Short: "Create a new task inside a story",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			if err := ensureRoot(cmd, s, opts.yes); err != nil {
				return err
			}
			path, err := opts.factory(s).CreateTask(args[0], opts.description, epic, story, priority)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created task: %s\n", path)
			return nil
		},
	}
	opts.bind(cmd)
	cmd.Flags().StringVarP(&epic, "epic", "e", "", "Epic the task belongs to")
	cmd.Flags().StringVarP(&story, "story", "s", "", "Story the task belongs to")
	cmd.Flags().StringVarP(&priority, "priority", "p", "Medium", "Task priority (High, Medium or Low)")
	_ = cmd.MarkFlagRequired("epic")
	_ = cmd.MarkFlagRequired("story")

	return cmd
}
