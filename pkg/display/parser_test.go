package display

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mattsolo1/grove-agile/pkg/models"
	"github.com/mattsolo1/grove-agile/pkg/report"
)

func TestParseDefaults(t *testing.T) {
	s := Parse("", nil)
	assert.Equal(t, Defaults(), s)
	assert.True(t, s.ShortDescription)
	assert.True(t, s.HotReload)
	assert.Equal(t, SortNone, s.Sort)
}

func TestParseFullExample(t *testing.T) {
	body := `Epic=Epic Name
Story=Story Name
Task=Task Name
ShortDescription=true
Completed=true
Sort=Alphabetical
Priority=Medium
HotReload=true`

	var c report.Collector
	s := Parse(body, &c)

	assert.Zero(t, c.Len())
	assert.Equal(t, "Epic Name", s.EpicName)
	assert.Equal(t, "Story Name", s.StoryName)
	assert.Equal(t, "Task Name", s.TaskName)
	assert.True(t, s.ShortDescription)
	assert.True(t, s.FilterCompleted)
	assert.True(t, s.Completed)
	assert.Equal(t, SortAlphabetic, s.Sort)
	assert.True(t, s.FilterPriority)
	assert.Equal(t, models.PriorityMedium, s.Priority)
	assert.True(t, s.HotReload)
}

func TestParseLastWriteWins(t *testing.T) {
	s := Parse("Completed=true\nCompleted=false", nil)
	assert.True(t, s.FilterCompleted)
	assert.False(t, s.Completed)

	s = Parse("Sort=Priority\nsort=alphabetic", nil)
	assert.Equal(t, SortAlphabetic, s.Sort)
}

func TestParseOrderInsensitive(t *testing.T) {
	a := Parse("Epic=Log\nSort=Alphabetic\nReverse=true", nil)
	b := Parse("Reverse=true\nSort=Alphabetic\nEpic=Log", nil)
	assert.Equal(t, a, b)
}

func TestParseCaseAndWhitespace(t *testing.T) {
	s := Parse("   COMPLETED=TRUE  \n\tpriority = HIGH\nSORT=PRIORITY\nreverse=True\nHotReload=FALSE\nshortdescription=false", nil)
	assert.True(t, s.FilterCompleted)
	assert.True(t, s.Completed)
	assert.Equal(t, models.PriorityHigh, s.Priority)
	assert.Equal(t, SortPriority, s.Sort)
	assert.True(t, s.Reverse)
	assert.False(t, s.HotReload)
	assert.False(t, s.ShortDescription)
}

func TestParseMalformedValuesAreReportedAndDropped(t *testing.T) {
	var c report.Collector
	s := Parse("Completed=maybe\nPriority=Urgent\nSort=random\nEpic=\nReverse=1\nTask=Keep", &c)

	assert.Equal(t, 5, c.Len())
	assert.True(t, c.Has(report.KindMalformedDirective))
	assert.False(t, s.FilterCompleted)
	assert.False(t, s.FilterPriority)
	assert.Equal(t, models.Priority(""), s.Priority)
	assert.Equal(t, SortNone, s.Sort)
	assert.Empty(t, s.EpicName)
	assert.False(t, s.Reverse)
	assert.Equal(t, "Keep", s.TaskName, "other lines still apply")
}

func TestParseIgnoresUnknownLines(t *testing.T) {
	var c report.Collector
	s := Parse("hello world\nColor=red\n# comment\nEpic=Billing", &c)
	assert.Zero(t, c.Len())
	assert.Equal(t, "Billing", s.EpicName)
}

func TestMatchers(t *testing.T) {
	s := Parse("Epic=log\nStory=FORM\nTask=valid", nil)
	assert.True(t, s.MatchEpic("Login"))
	assert.True(t, s.MatchEpic("Logout"))
	assert.False(t, s.MatchEpic("Billing"))
	assert.True(t, s.MatchStory("Signup form"))
	assert.True(t, s.MatchTask("Validate"))
	assert.False(t, s.MatchTask("Submit"))

	open := Defaults()
	assert.True(t, open.MatchEpic("anything"))
	assert.True(t, open.MatchPriority(""))
	assert.True(t, open.MatchCompleted(true))

	p := Parse("Priority=Low\nCompleted=false", nil)
	assert.True(t, p.MatchPriority(models.PriorityLow))
	assert.False(t, p.MatchPriority(models.PriorityHigh))
	assert.False(t, p.MatchPriority(""))
	assert.True(t, p.MatchCompleted(false))
	assert.False(t, p.MatchCompleted(true))
}

func TestDescribe(t *testing.T) {
	overview := "\n  First line  \nSecond line"
	assert.Equal(t, "First line", Defaults().Describe(overview))

	full := Parse("ShortDescription=false", nil)
	assert.Equal(t, overview, full.Describe(overview))

	assert.Equal(t, "", Defaults().Describe(""))
}

func TestStringRoundTrip(t *testing.T) {
	s := Parse("Epic=Login\nTask=Val\nCompleted=false\nPriority=high\nSort=priority\nReverse=true\nHotReload=false\nShortDescription=false", nil)
	assert.Equal(t, s, Parse(s.String(), nil))
	assert.Equal(t, "", Defaults().String())
}
