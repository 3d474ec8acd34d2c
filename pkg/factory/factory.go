// Package factory creates new Epic, Story and Task documents in the vault.
package factory

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/grove-agile/pkg/display"
	"github.com/mattsolo1/grove-agile/pkg/frontmatter"
	"github.com/mattsolo1/grove-agile/pkg/models"
	"github.com/mattsolo1/grove-agile/pkg/report"
	"github.com/mattsolo1/grove-agile/pkg/structure"
	"github.com/mattsolo1/grove-agile/pkg/vault"
)

// Opener shows a newly created document to the user.
type Opener interface {
	Open(path string) error
}

// Factory writes new entity documents. It never overwrites existing files.
type Factory struct {
	vault  vault.Vault
	layout structure.Layout
	opener Opener
	tags   []string
	now    func() time.Time
	logger *logrus.Entry
}

// Option configures a Factory.
type Option func(*Factory)

// WithClock replaces the clock used for Date Created.
func WithClock(now func() time.Time) Option {
	return func(f *Factory) { f.now = now }
}

// WithOpener opens each created file. Without one nothing is opened.
func WithOpener(o Opener) Option {
	return func(f *Factory) { f.opener = o }
}

// WithTags adds tags to the front-matter of every created document.
func WithTags(tags ...string) Option {
	return func(f *Factory) { f.tags = tags }
}

// New creates a factory writing into v under layout.
func New(v vault.Vault, layout structure.Layout, logger *logrus.Entry, opts ...Option) *Factory {
	if logger == nil {
		logger = logrus.NewEntry(logrus.New())
	}
	f := &Factory{
		vault:  v,
		layout: layout,
		now:    time.Now,
		logger: logger.WithField("component", "factory"),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateEpic creates <Root>/<name>/<name>.md.
func (f *Factory) CreateEpic(name, desc string) (string, error) {
	if err := ValidateName(models.KindEpic, name); err != nil {
		return "", err
	}
	if !f.vault.Folder(f.layout.Root).OK() {
		return "", report.NewStructureMissing(f.layout.Root, "Root directory")
	}

	fm := frontmatter.ForEpic(f.now())
	fm.Tags = frontmatter.MergeTags(fm.Tags, f.tags)
	scope := display.Defaults()
	scope.EpicName = name
	body := section(desc, "Stories") + display.Block(scope.String()) + "\n"
	return f.create(models.KindEpic, name, f.layout.EpicFolder(name), f.layout.EpicFile(name), frontmatter.BuildContent(fm, body))
}

// CreateStory creates <Root>/<epic>/<name>/<name>.md along with its Tasks folder.
func (f *Factory) CreateStory(name, desc, epic string) (string, error) {
	if err := ValidateName(models.KindStory, name); err != nil {
		return "", err
	}
	if err := f.requireFolder(models.KindEpic, epic, f.layout.EpicFolder(epic)); err != nil {
		return "", err
	}

	fm := frontmatter.ForStory(epic, f.now())
	fm.Tags = frontmatter.MergeTags(fm.Tags, f.tags)
	scope := display.Defaults()
	scope.EpicName, scope.StoryName = epic, name
	body := section(desc, "Tasks") + display.Block(scope.String()) + "\n"
	p, err := f.create(models.KindStory, name, f.layout.StoryFolder(epic, name), f.layout.StoryFile(epic, name), frontmatter.BuildContent(fm, body))
	if err != nil {
		return "", err
	}
	tasks := f.layout.TasksFolder(epic, name)
	if err := f.vault.CreateFolder(tasks); err != nil && !errors.Is(err, os.ErrExist) {
		return p, report.NewIOFailure("create folder", tasks, err)
	}
	return p, nil
}

// CreateTask creates <Root>/<epic>/<story>/Tasks/<name>.md. priority is
// matched case-insensitively against High, Medium and Low.
func (f *Factory) CreateTask(name, desc, epic, story, priority string) (string, error) {
	if err := ValidateName(models.KindTask, name); err != nil {
		return "", err
	}
	prio, ok := models.ParsePriority(priority)
	if !ok {
		return "", report.NewMalformed("", "invalid priority '%s' (expected High, Medium or Low)", priority)
	}
	if err := f.requireFolder(models.KindEpic, epic, f.layout.EpicFolder(epic)); err != nil {
		return "", err
	}
	if err := f.requireFolder(models.KindStory, story, f.layout.StoryFolder(epic, story)); err != nil {
		return "", err
	}

	fm := frontmatter.ForTask(epic, story, prio, f.now())
	fm.Tags = frontmatter.MergeTags(fm.Tags, f.tags)
	body := section(desc, "Notes and Exploration")
	return f.create(models.KindTask, name, f.layout.TasksFolder(epic, story), f.layout.TaskFile(epic, story, name), frontmatter.BuildContent(fm, body))
}

func (f *Factory) requireFolder(kind models.EntityKind, name, p string) error {
	if err := ValidateName(kind, name); err != nil {
		return err
	}
	if !f.vault.Folder(p).OK() {
		return report.NewEntityNotFound(string(kind), name, p)
	}
	return nil
}

// create makes folder if needed, then writes file exclusively.
func (f *Factory) create(kind models.EntityKind, name, folder, file, content string) (string, error) {
	if f.vault.File(file).OK() {
		return "", report.NewDuplicateEntity(string(kind), name, file)
	}
	if err := f.vault.CreateFolder(folder); err != nil && !errors.Is(err, os.ErrExist) {
		return "", report.NewIOFailure("create folder", folder, err)
	}
	if err := f.vault.CreateFile(file, content); err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", report.NewDuplicateEntity(string(kind), name, file)
		}
		return "", report.NewIOFailure("create file", file, err)
	}

	f.logger.WithFields(logrus.Fields{
		"kind": kind,
		"path": file,
	}).Info("Created agile document")

	if f.opener != nil {
		if err := f.opener.Open(file); err != nil {
			f.logger.WithError(err).WithField("path", file).Warn("Failed to open created document")
		}
	}
	return file, nil
}

func section(desc, heading string) string {
	var sb strings.Builder
	sb.WriteString("# Overview\n---\n")
	sb.WriteString(desc)
	sb.WriteString("\n# ")
	sb.WriteString(heading)
	sb.WriteString("\n---\n")
	return sb.String()
}

// ValidateName rejects names that cannot be used as a single file or folder
// name in the vault.
func ValidateName(kind models.EntityKind, name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return report.NewInvalidName(string(kind), name, "name is empty")
	case name != strings.TrimSpace(name):
		return report.NewInvalidName(string(kind), name, "name has leading or trailing spaces")
	case name == "." || name == "..":
		return report.NewInvalidName(string(kind), name, "name is reserved")
	case strings.ContainsAny(name, `/\`):
		return report.NewInvalidName(string(kind), name, "name contains a path separator")
	case strings.HasSuffix(strings.ToLower(name), models.MarkdownExt):
		return report.NewInvalidName(string(kind), name, "name must not include the .md extension")
	}
	return nil
}
