package structure

import (
	"github.com/mattsolo1/grove-agile/pkg/models"
	"github.com/mattsolo1/grove-agile/pkg/vault"
)

// Layout computes canonical entity paths for the nested layout:
//
//	<Root>/<Epic>/<Epic>.md
//	<Root>/<Epic>/<Story>/<Story>.md
//	<Root>/<Epic>/<Story>/Tasks/<Task>.md
type Layout struct {
	Root string
}

func (l Layout) EpicFolder(epic string) string {
	return vault.Join(l.Root, epic)
}

func (l Layout) EpicFile(epic string) string {
	return vault.Join(l.Root, epic, epic+models.MarkdownExt)
}

func (l Layout) StoryFolder(epic, story string) string {
	return vault.Join(l.Root, epic, story)
}

func (l Layout) StoryFile(epic, story string) string {
	return vault.Join(l.Root, epic, story, story+models.MarkdownExt)
}

func (l Layout) TasksFolder(epic, story string) string {
	return vault.Join(l.Root, epic, story, models.TasksFolderName)
}

func (l Layout) TaskFile(epic, story, task string) string {
	return vault.Join(l.Root, epic, story, models.TasksFolderName, task+models.MarkdownExt)
}
