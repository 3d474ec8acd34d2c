// Package structure owns the directory-layout contract of the agile vault and
// answers every discovery query by re-reading the live folder tree.
package structure

import (
	"errors"
	"os"
	"strings"

	"github.com/mattsolo1/grove-agile/pkg/models"
	"github.com/mattsolo1/grove-agile/pkg/report"
	"github.com/mattsolo1/grove-agile/pkg/vault"
)

// Manager validates, creates and queries the Epic/Story/Task hierarchy.
// Nothing is cached: the vault may change between any two calls.
type Manager struct {
	vault    vault.Vault
	settings models.PluginSettings
	reporter report.Reporter
	layout   Layout
}

// New creates a manager. A nil reporter discards reports.
func New(v vault.Vault, settings models.PluginSettings, reporter report.Reporter) *Manager {
	if reporter == nil {
		reporter = report.Discard
	}
	return &Manager{
		vault:    v,
		settings: settings,
		reporter: reporter,
		layout:   Layout{Root: vault.Join(settings.RootPath)},
	}
}

// Root is the vault path of the project root folder.
func (m *Manager) Root() string {
	return m.layout.Root
}

// Layout exposes the path conventions shared with the file factory.
func (m *Manager) Layout() Layout {
	return m.layout
}

// Vault returns the underlying vault.
func (m *Manager) Vault() vault.Vault {
	return m.vault
}

// ValidateRootStructure reports whether the root exists as a non-empty folder.
func (m *Manager) ValidateRootStructure() bool {
	root := m.Root()
	if !m.vault.Folder(root).OK() {
		m.reporter.Report(report.NewStructureMissing(root, "Parent directory"))
		return false
	}
	children, err := m.vault.Children(root)
	if err != nil {
		m.reporter.Report(report.NewIOFailure("list parent directory", root, err))
		return false
	}
	if len(children) == 0 {
		m.reporter.Report(&report.Error{
			Kind:    report.KindStructureMissing,
			Message: "Parent directory '" + root + "' is empty",
			Path:    root,
		})
		return false
	}
	return true
}

// RootExists reports whether the root folder exists, empty or not.
func (m *Manager) RootExists() bool {
	return m.vault.Folder(m.Root()).OK()
}

// CreateRootStructure creates the root folder. An existing root is left alone.
func (m *Manager) CreateRootStructure() error {
	root := m.Root()
	if m.vault.Folder(root).OK() {
		return nil
	}
	if err := m.vault.CreateFolder(root); err != nil {
		if errors.Is(err, os.ErrExist) {
			return nil
		}
		return report.NewIOFailure("create root folder", root, err)
	}
	return nil
}

// subfolders lists the folders directly under p, reporting a missing p.
func (m *Manager) subfolders(p, what string) []vault.Entry {
	if !m.vault.Folder(p).OK() {
		m.reporter.Report(report.NewStructureMissing(p, what))
		return nil
	}
	children, err := m.vault.Children(p)
	if err != nil {
		m.reporter.Report(report.NewIOFailure("list "+strings.ToLower(what), p, err))
		return nil
	}
	folders := make([]vault.Entry, 0, len(children))
	for _, child := range children {
		if child.IsDir {
			folders = append(folders, child)
		}
	}
	return folders
}

func names(entries []vault.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Name)
	}
	return out
}

func find(entries []vault.Entry, name string) (vault.Entry, bool) {
	for _, e := range entries {
		if e.Name == name {
			return e, true
		}
	}
	return vault.Entry{}, false
}

func (m *Manager) epicFolder(epic string) (string, bool) {
	e, ok := find(m.subfolders(m.Root(), "Parent directory"), epic)
	return e.Path, ok
}

func (m *Manager) storyFolder(epic, story string) (string, bool) {
	epicDir, ok := m.epicFolder(epic)
	if !ok {
		m.reporter.Report(report.NewStructureMissing(m.layout.EpicFolder(epic), "Epic directory"))
		return "", false
	}
	e, ok := find(m.subfolders(epicDir, "Epic directory"), story)
	return e.Path, ok
}

// tasksFolder locates the fixed-name Tasks folder of a story.
func (m *Manager) tasksFolder(epic, story string) (string, bool) {
	storyDir, ok := m.storyFolder(epic, story)
	if !ok {
		m.reporter.Report(report.NewEntityNotFound("Story", story, m.layout.StoryFolder(epic, story)))
		return "", false
	}
	e, ok := find(m.subfolders(storyDir, "Story directory"), models.TasksFolderName)
	if !ok {
		m.reporter.Report(report.NewStructureMissing(vault.Join(storyDir, models.TasksFolderName), "Tasks directory"))
		return "", false
	}
	return e.Path, true
}

// ListEpics returns the names of the folders directly under the root.
func (m *Manager) ListEpics() []string {
	return names(m.subfolders(m.Root(), "Parent directory"))
}

// ResolveEpicPath finds the epic folder by exact name and then its <name>.md.
func (m *Manager) ResolveEpicPath(epic string) vault.Lookup {
	dir, ok := m.epicFolder(epic)
	if !ok {
		m.reporter.Report(report.NewEntityNotFound("Epic", epic, m.layout.EpicFolder(epic)))
		return vault.NotFound
	}
	file := m.vault.File(vault.Join(dir, epic+models.MarkdownExt))
	if !file.OK() {
		m.reporter.Report(report.NewEntityNotFound("Epic file", epic+models.MarkdownExt, dir))
	}
	return file
}

// ListStories returns the story folder names of an epic, or nothing if the
// epic is missing.
func (m *Manager) ListStories(epic string) []string {
	dir, ok := m.epicFolder(epic)
	if !ok {
		m.reporter.Report(report.NewStructureMissing(m.layout.EpicFolder(epic), "Epic directory"))
		return []string{}
	}
	return names(m.subfolders(dir, "Epic directory"))
}

// ResolveStoryPath finds the story folder inside the epic and then its <name>.md.
func (m *Manager) ResolveStoryPath(epic, story string) vault.Lookup {
	dir, ok := m.storyFolder(epic, story)
	if !ok {
		m.reporter.Report(report.NewEntityNotFound("Story", story, m.layout.StoryFolder(epic, story)))
		return vault.NotFound
	}
	file := m.vault.File(vault.Join(dir, story+models.MarkdownExt))
	if !file.OK() {
		m.reporter.Report(report.NewEntityNotFound("Story file", story+models.MarkdownExt, dir))
	}
	return file
}

// taskFiles lists the markdown files of a story's Tasks folder.
func (m *Manager) taskFiles(epic, story string) []vault.Entry {
	dir, ok := m.tasksFolder(epic, story)
	if !ok {
		return nil
	}
	children, err := m.vault.Children(dir)
	if err != nil {
		m.reporter.Report(report.NewIOFailure("list tasks directory", dir, err))
		return nil
	}
	files := make([]vault.Entry, 0, len(children))
	for _, child := range children {
		if !child.IsDir && strings.HasSuffix(child.Name, models.MarkdownExt) {
			child.Name = strings.TrimSuffix(child.Name, models.MarkdownExt)
			files = append(files, child)
		}
	}
	return files
}

// ListTasks returns the task names of a story with the extension stripped.
func (m *Manager) ListTasks(epic, story string) []string {
	return names(m.taskFiles(epic, story))
}

// ResolveTaskPath finds a task file by its extension-stripped name.
func (m *Manager) ResolveTaskPath(epic, story, task string) vault.Lookup {
	e, ok := find(m.taskFiles(epic, story), task)
	if !ok {
		m.reporter.Report(report.NewEntityNotFound("Task", task, m.layout.TasksFolder(epic, story)))
		return vault.NotFound
	}
	return vault.Found(e.Path)
}

// RenameRoot renames a top-level vault folder named oldName. It does nothing
// when no folder matches.
func (m *Manager) RenameRoot(oldName, newName string) error {
	return m.renameChild("", oldName, newName)
}

// RenameSubfolder renames the folder oldName directly under parent.
func (m *Manager) RenameSubfolder(parent, oldName, newName string) error {
	parent = vault.Join(parent)
	if parent != "" && !m.vault.Folder(parent).OK() {
		m.reporter.Report(report.NewStructureMissing(parent, "Parent directory"))
		return nil
	}
	return m.renameChild(parent, oldName, newName)
}

func (m *Manager) renameChild(parent, oldName, newName string) error {
	if oldName == newName || newName == "" {
		return nil
	}
	children, err := m.vault.Children(parent)
	if err != nil {
		return report.NewIOFailure("list folder", parent, err)
	}
	for _, child := range children {
		if !child.IsDir || child.Name != oldName {
			continue
		}
		target := vault.Join(parent, newName)
		if err := m.vault.Rename(child.Path, target); err != nil {
			return report.NewIOFailure("rename folder", child.Path, err)
		}
	}
	return nil
}
