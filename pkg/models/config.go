package models

const (
	// DefaultRootPath is the folder, relative to the vault, holding all epics.
	DefaultRootPath = "Projects and Stories"

	// TasksFolderName is the fixed child folder of every story.
	TasksFolderName = "Tasks"

	// MarkdownExt is the extension of every entity document.
	MarkdownExt = ".md"
)

// PluginSettings is the process-wide configuration persisted in the host key-value store.
type PluginSettings struct {
	RootPath   string `json:"agileDirectoryPath"`
	ShowRibbon bool   `json:"showRibbonIcon"`
}

// DefaultPluginSettings provides the values used for any key missing from storage.
func DefaultPluginSettings() PluginSettings {
	return PluginSettings{
		RootPath:   DefaultRootPath,
		ShowRibbon: true,
	}
}
