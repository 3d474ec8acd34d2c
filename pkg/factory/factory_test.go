package factory

import (
	"errors"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/grove-agile/pkg/content"
	"github.com/mattsolo1/grove-agile/pkg/display"
	"github.com/mattsolo1/grove-agile/pkg/frontmatter"
	"github.com/mattsolo1/grove-agile/pkg/models"
	"github.com/mattsolo1/grove-agile/pkg/report"
	"github.com/mattsolo1/grove-agile/pkg/structure"
	"github.com/mattsolo1/grove-agile/pkg/vault"
)

type recordingOpener struct {
	opened []string
	err    error
}

func (r *recordingOpener) Open(path string) error {
	r.opened = append(r.opened, path)
	return r.err
}

type fixture struct {
	vault   *vault.FS
	manager *structure.Manager
	factory *Factory
	opener  *recordingOpener
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	v := vault.New(afero.NewMemMapFs())
	m := structure.New(v, models.DefaultPluginSettings(), nil)
	require.NoError(t, m.CreateRootStructure())

	opener := &recordingOpener{}
	clock := func() time.Time { return time.Date(2024, 3, 5, 9, 30, 0, 0, time.UTC) }
	f := New(v, m.Layout(), nil, WithClock(clock), WithOpener(opener))
	return &fixture{vault: v, manager: m, factory: f, opener: opener}
}

func TestCreateEpic(t *testing.T) {
	fx := newFixture(t)

	p, err := fx.factory.CreateEpic("Login", "Let users sign in")
	require.NoError(t, err)
	assert.Equal(t, "Projects and Stories/Login/Login.md", p)
	assert.Equal(t, []string{"Login"}, fx.manager.ListEpics())
	assert.Equal(t, p, fx.manager.ResolveEpicPath("Login").String())
	assert.Equal(t, []string{p}, fx.opener.opened)

	text, err := fx.vault.Read(p)
	require.NoError(t, err)
	fm, body, err := frontmatter.Parse(text)
	require.NoError(t, err)
	require.NotNil(t, fm)
	assert.Equal(t, models.KindEpic, fm.Kind)
	assert.Equal(t, []string{"Epic", "Agile"}, fm.Tags)
	assert.Equal(t, "2024-03-05", fm.DateCreated)
	assert.Empty(t, fm.DateFinished)

	overview, ok := content.Overview(body)
	require.True(t, ok)
	assert.Equal(t, "Let users sign in", overview)

	directives := display.ExtractDirectives(body)
	require.Len(t, directives, 1)
	assert.Equal(t, "Login", display.Parse(directives[0].Body, nil).EpicName)
}

func TestCreateStory(t *testing.T) {
	fx := newFixture(t)
	_, err := fx.factory.CreateEpic("Login", "")
	require.NoError(t, err)

	p, err := fx.factory.CreateStory("Form", "The sign-in form", "Login")
	require.NoError(t, err)
	assert.Equal(t, "Projects and Stories/Login/Form/Form.md", p)
	assert.Equal(t, []string{"Form"}, fx.manager.ListStories("Login"))
	assert.True(t, fx.vault.Folder("Projects and Stories/Login/Form/Tasks").OK())
	assert.Empty(t, fx.manager.ListTasks("Login", "Form"))

	text, err := fx.vault.Read(p)
	require.NoError(t, err)
	fm, body, err := frontmatter.Parse(text)
	require.NoError(t, err)
	assert.Equal(t, "[[Login]]", fm.Epic)
	assert.Equal(t, frontmatter.FinishedPlaceholder, fm.DateFinished)

	directives := display.ExtractDirectives(body)
	require.Len(t, directives, 1)
	s := display.Parse(directives[0].Body, nil)
	assert.Equal(t, "Login", s.EpicName)
	assert.Equal(t, "Form", s.StoryName)
}

func TestCreateTaskRoundTrip(t *testing.T) {
	fx := newFixture(t)
	_, err := fx.factory.CreateEpic("Login", "")
	require.NoError(t, err)
	_, err = fx.factory.CreateStory("Form", "", "Login")
	require.NoError(t, err)

	p, err := fx.factory.CreateTask("Validate", "Check the inputs", "Login", "Form", "high")
	require.NoError(t, err)
	assert.Equal(t, []string{"Validate"}, fx.manager.ListTasks("Login", "Form"))
	assert.Equal(t, p, fx.manager.ResolveTaskPath("Login", "Form", "Validate").String())

	var c report.Collector
	for _, parser := range []content.FieldParser{
		content.NewPatternParser(fx.vault, &c),
		content.NewFrontmatterParser(fx.vault, &c),
	} {
		assert.Equal(t, models.PriorityHigh, parser.ExtractPriority(p))
		assert.False(t, parser.IsCompleted(p))
		assert.Equal(t, "Check the inputs", parser.ExtractOverview(p))
	}
	assert.Zero(t, c.Len())
}

func TestCreateRefusesDuplicates(t *testing.T) {
	fx := newFixture(t)
	p, err := fx.factory.CreateEpic("Login", "first")
	require.NoError(t, err)
	before, err := fx.vault.Read(p)
	require.NoError(t, err)

	_, err = fx.factory.CreateEpic("Login", "second")
	assert.True(t, report.Is(err, report.KindDuplicateEntity))

	after, err := fx.vault.Read(p)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Len(t, fx.opener.opened, 1)
}

func TestCreateRequiresParents(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.factory.CreateStory("Form", "", "Missing")
	assert.True(t, report.Is(err, report.KindEntityNotFound))

	_, err = fx.factory.CreateEpic("Login", "")
	require.NoError(t, err)
	_, err = fx.factory.CreateTask("Validate", "", "Login", "Missing", "Low")
	assert.True(t, report.Is(err, report.KindEntityNotFound))
	assert.False(t, fx.vault.Folder("Projects and Stories/Login/Missing").OK())
}

func TestCreateEpicWithoutRoot(t *testing.T) {
	v := vault.New(afero.NewMemMapFs())
	f := New(v, structure.Layout{Root: models.DefaultRootPath}, nil)

	_, err := f.CreateEpic("Login", "")
	assert.True(t, report.Is(err, report.KindStructureMissing))
}

func TestCreateTaskRejectsBadPriority(t *testing.T) {
	fx := newFixture(t)
	_, err := fx.factory.CreateTask("Validate", "", "Login", "Form", "urgent")
	assert.True(t, report.Is(err, report.KindMalformedDirective))
}

func TestOpenerFailureIsNotReturned(t *testing.T) {
	fx := newFixture(t)
	fx.opener.err = errors.New("no editor")

	p, err := fx.factory.CreateEpic("Login", "")
	require.NoError(t, err)
	assert.True(t, fx.vault.File(p).OK())
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name  string
		valid bool
	}{
		{"Login", true},
		{"Sign in flow", true},
		{"", false},
		{"   ", false},
		{" padded", false},
		{".", false},
		{"..", false},
		{"a/b", false},
		{`a\b`, false},
		{"Login.md", false},
		{"Login.MD", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(models.KindEpic, tt.name)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.True(t, report.Is(err, report.KindInvalidName), "got %v", err)
			}
		})
	}
}

func TestCreateWithExtraTags(t *testing.T) {
	fx := newFixture(t)
	f := New(fx.vault, fx.manager.Layout(), nil, WithTags("backend", "Agile"))

	p, err := f.CreateEpic("Login", "")
	require.NoError(t, err)
	text, err := fx.vault.Read(p)
	require.NoError(t, err)
	fm, _, err := frontmatter.Parse(text)
	require.NoError(t, err)
	assert.Equal(t, []string{"Epic", "Agile", "backend"}, fm.Tags)
}
