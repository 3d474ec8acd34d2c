package display

import (
	"regexp"
	"strings"

	"github.com/mattsolo1/grove-agile/pkg/models"
	"github.com/mattsolo1/grove-agile/pkg/report"
)

var (
	boolPattern = regexp.MustCompile(`^(true|false)$`)
	sortPattern = regexp.MustCompile(`^(alphabetic(?:al)?|priority)$`)
)

// Parse reads a directive body. Every line is matched on its own, so key order
// does not matter and a repeated key overwrites the earlier value. Lines with
// an unknown key are ignored; a known key with a bad value is reported and
// skipped.
func Parse(body string, reporter report.Reporter) Settings {
	if reporter == nil {
		reporter = report.Discard
	}
	s := Defaults()

	for n, raw := range strings.Split(body, "\n") {
		line := fold(strings.TrimSpace(raw))
		if line == "" {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		bad := func() {
			reporter.Report(report.NewMalformed("", "invalid %s value %q on line %d of agile-display", key, value, n+1))
		}

		switch key {
		case "completed":
			if !boolPattern.MatchString(value) {
				bad()
				continue
			}
			s.FilterCompleted = true
			s.Completed = value == "true"
		case "epic", "story", "task":
			if value == "" {
				bad()
				continue
			}
			// keep the original casing for display; matching folds both sides
			_, original, _ := strings.Cut(strings.TrimSpace(raw), "=")
			original = strings.TrimSpace(original)
			switch key {
			case "epic":
				s.EpicName = original
			case "story":
				s.StoryName = original
			case "task":
				s.TaskName = original
			}
		case "shortdescription":
			if !boolPattern.MatchString(value) {
				bad()
				continue
			}
			s.ShortDescription = value == "true"
		case "priority":
			p, valid := models.ParsePriority(value)
			if !valid {
				bad()
				continue
			}
			s.FilterPriority = true
			s.Priority = p
		case "sort":
			if !sortPattern.MatchString(value) {
				bad()
				continue
			}
			if value == "priority" {
				s.Sort = SortPriority
			} else {
				s.Sort = SortAlphabetic
			}
		case "reverse":
			if !boolPattern.MatchString(value) {
				bad()
				continue
			}
			s.Reverse = value == "true"
		case "hotreload":
			if !boolPattern.MatchString(value) {
				bad()
				continue
			}
			s.HotReload = value == "true"
		}
	}

	return s
}

// String renders the settings back into directive lines, omitting defaults.
func (s Settings) String() string {
	var lines []string
	if s.EpicName != "" {
		lines = append(lines, "Epic="+s.EpicName)
	}
	if s.StoryName != "" {
		lines = append(lines, "Story="+s.StoryName)
	}
	if s.TaskName != "" {
		lines = append(lines, "Task="+s.TaskName)
	}
	if !s.ShortDescription {
		lines = append(lines, "ShortDescription=false")
	}
	if s.FilterCompleted {
		lines = append(lines, "Completed="+boolString(s.Completed))
	}
	if s.FilterPriority {
		lines = append(lines, "Priority="+string(s.Priority))
	}
	switch s.Sort {
	case SortAlphabetic:
		lines = append(lines, "Sort=Alphabetical")
	case SortPriority:
		lines = append(lines, "Sort=Priority")
	}
	if s.Reverse {
		lines = append(lines, "Reverse=true")
	}
	if !s.HotReload {
		lines = append(lines, "HotReload=false")
	}
	return strings.Join(lines, "\n")
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
