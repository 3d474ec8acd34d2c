package structure

import (
	"path"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/grove-agile/pkg/models"
	"github.com/mattsolo1/grove-agile/pkg/report"
	"github.com/mattsolo1/grove-agile/pkg/vault"
)

const root = "Projects and Stories"

// newFixture builds a vault with one epic, one story and two tasks.
func newFixture(t *testing.T) (*Manager, *vault.FS, *report.Collector) {
	t.Helper()
	v := vault.New(afero.NewMemMapFs())
	files := map[string]string{
		root + "/Login/Login.md":               "# Overview\n---\nAllow sign-in\n# Stories\n",
		root + "/Login/Form/Form.md":           "# Overview\n---\nThe form\n# Tasks\n",
		root + "/Login/Form/Tasks/Validate.md": "Priority: High\nCompleted: false\n",
		root + "/Login/Form/Tasks/Submit.md":   "Priority: Low\nCompleted: true\n",
		root + "/Login/Form/Tasks/notes.txt":   "not a task",
		root + "/Billing/Billing.md":           "",
		root + "/stray.md":                     "",
	}
	for p, content := range files {
		dir := path.Dir(p)
		if !v.Folder(dir).OK() {
			require.NoError(t, v.CreateFolder(dir))
		}
		require.NoError(t, v.CreateFile(p, content))
	}
	require.NoError(t, v.CreateFolder(root+"/Login/Empty"))

	var c report.Collector
	return New(v, models.DefaultPluginSettings(), &c), v, &c
}

func TestValidateRootStructure(t *testing.T) {
	m, _, c := newFixture(t)
	assert.True(t, m.ValidateRootStructure())
	assert.Zero(t, c.Len())

	var missing report.Collector
	empty := New(vault.New(afero.NewMemMapFs()), models.DefaultPluginSettings(), &missing)
	assert.False(t, empty.ValidateRootStructure())
	assert.True(t, missing.Has(report.KindStructureMissing))

	require.NoError(t, empty.CreateRootStructure())
	assert.True(t, empty.RootExists())
	assert.False(t, empty.ValidateRootStructure(), "an empty root is not valid")
}

func TestCreateRootStructureIsNonFatalWhenPresent(t *testing.T) {
	m, _, _ := newFixture(t)
	assert.NoError(t, m.CreateRootStructure())
	assert.NoError(t, m.CreateRootStructure())
}

func TestListEpics(t *testing.T) {
	m, _, _ := newFixture(t)
	assert.ElementsMatch(t, []string{"Login", "Billing"}, m.ListEpics())
}

func TestListEpicsMissingRoot(t *testing.T) {
	var c report.Collector
	m := New(vault.New(afero.NewMemMapFs()), models.DefaultPluginSettings(), &c)
	assert.Empty(t, m.ListEpics())
	assert.True(t, c.Has(report.KindStructureMissing))
}

func TestResolveEpicPath(t *testing.T) {
	m, v, c := newFixture(t)

	p, ok := m.ResolveEpicPath("Login").Path()
	assert.True(t, ok)
	assert.Equal(t, root+"/Login/Login.md", p)

	assert.False(t, m.ResolveEpicPath("Nope").OK())
	assert.True(t, c.Has(report.KindEntityNotFound))

	// folder without its file
	require.NoError(t, v.CreateFolder(root+"/Orphan"))
	assert.False(t, m.ResolveEpicPath("Orphan").OK())

	// exact match only
	assert.False(t, m.ResolveEpicPath("login").OK())
}

func TestListStories(t *testing.T) {
	m, _, c := newFixture(t)
	assert.ElementsMatch(t, []string{"Form", "Empty"}, m.ListStories("Login"))
	assert.Empty(t, m.ListStories("Billing"))

	stories := m.ListStories("Missing")
	assert.NotNil(t, stories)
	assert.Empty(t, stories)
	assert.True(t, c.Has(report.KindStructureMissing))
}

func TestResolveStoryPath(t *testing.T) {
	m, _, _ := newFixture(t)
	p, ok := m.ResolveStoryPath("Login", "Form").Path()
	assert.True(t, ok)
	assert.Equal(t, root+"/Login/Form/Form.md", p)

	assert.False(t, m.ResolveStoryPath("Billing", "Form").OK(), "stories are scoped to their epic")
	assert.False(t, m.ResolveStoryPath("Login", "Empty").OK())
}

func TestListTasks(t *testing.T) {
	m, _, c := newFixture(t)
	assert.ElementsMatch(t, []string{"Validate", "Submit"}, m.ListTasks("Login", "Form"))

	assert.Empty(t, m.ListTasks("Login", "Empty"))
	assert.True(t, c.Has(report.KindStructureMissing), "missing Tasks folder is reported")

	assert.Empty(t, m.ListTasks("Nope", "Form"))
}

func TestResolveTaskPath(t *testing.T) {
	m, _, c := newFixture(t)
	p, ok := m.ResolveTaskPath("Login", "Form", "Validate").Path()
	assert.True(t, ok)
	assert.Equal(t, root+"/Login/Form/Tasks/Validate.md", p)

	assert.False(t, m.ResolveTaskPath("Login", "Form", "notes").OK())
	assert.False(t, m.ResolveTaskPath("Login", "Form", "Missing").OK())
	assert.True(t, c.Has(report.KindEntityNotFound))
}

func TestQueriesSeeLiveChanges(t *testing.T) {
	m, v, _ := newFixture(t)
	assert.Len(t, m.ListEpics(), 2)

	require.NoError(t, v.CreateFolder(root+"/Search"))
	assert.Len(t, m.ListEpics(), 3)

	require.NoError(t, v.Rename(root+"/Login", root+"/SignIn"))
	assert.False(t, m.ResolveEpicPath("Login").OK())
	assert.Empty(t, m.ListStories("Login"))
}

func TestRenameRoot(t *testing.T) {
	m, v, _ := newFixture(t)

	require.NoError(t, m.RenameRoot("Nothing", "Else"))
	assert.True(t, v.Folder(root).OK())

	require.NoError(t, m.RenameRoot(root, "Work"))
	assert.False(t, v.Folder(root).OK())
	assert.True(t, v.File("Work/Login/Login.md").OK())
}

func TestRenameSubfolder(t *testing.T) {
	m, v, c := newFixture(t)

	require.NoError(t, m.RenameSubfolder(root, "Billing", "Payments"))
	assert.True(t, v.Folder(root+"/Payments").OK())
	assert.False(t, v.Folder(root+"/Billing").OK())

	// a file with the old name is not renamed
	require.NoError(t, m.RenameSubfolder(root, "stray.md", "x"))
	assert.True(t, v.File(root+"/stray.md").OK())

	require.NoError(t, m.RenameSubfolder("Missing", "a", "b"))
	assert.True(t, c.Has(report.KindStructureMissing))
}

func TestLayout(t *testing.T) {
	l := Layout{Root: root}
	assert.Equal(t, root+"/E", l.EpicFolder("E"))
	assert.Equal(t, root+"/E/E.md", l.EpicFile("E"))
	assert.Equal(t, root+"/E/S", l.StoryFolder("E", "S"))
	assert.Equal(t, root+"/E/S/S.md", l.StoryFile("E", "S"))
	assert.Equal(t, root+"/E/S/Tasks", l.TasksFolder("E", "S"))
	assert.Equal(t, root+"/E/S/Tasks/T.md", l.TaskFile("E", "S", "T"))
}
