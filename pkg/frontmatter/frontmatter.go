package frontmatter

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mattsolo1/grove-agile/pkg/models"
)

var (
	frontmatterPattern = regexp.MustCompile(`(?s)^---\r?\n(.*?)\r?\n---(?:\r?\n|$)(.*)`)
	wikiLinkPattern    = regexp.MustCompile(`^\[\[(.*)\]\]$`)
)

// DateLayout is the format of Date Created and Date Finished.
const DateLayout = "2006-01-02"

// FinishedPlaceholder marks an entity that has not been finished yet.
const FinishedPlaceholder = "yyyy-mm-dd"

// Frontmatter represents the metadata block at the top of an agile document
type Frontmatter struct {
	Kind         models.EntityKind `yaml:"-"`
	Epic         string            `yaml:"Epic,omitempty"`
	Story        string            `yaml:"Story,omitempty"`
	Priority     string            `yaml:"Priority,omitempty"`
	Tags         []string          `yaml:"tags,flow"`
	Completed    string            `yaml:"Completed,omitempty"`
	DateCreated  string            `yaml:"Date Created,omitempty"`
	DateFinished string            `yaml:"Date Finished,omitempty"`
}

// Parse extracts frontmatter from content and returns the parsed data and body
func Parse(content string) (*Frontmatter, string, error) {
	matches := frontmatterPattern.FindStringSubmatch(content)
	if len(matches) != 3 {
		// No frontmatter found
		return nil, content, nil
	}

	var fm Frontmatter
	if err := yaml.Unmarshal([]byte(matches[1]), &fm); err != nil {
		return nil, content, fmt.Errorf("failed to parse frontmatter: %w", err)
	}

	if fm.Tags == nil {
		fm.Tags = []string{}
	}
	fm.Kind = kindFromTags(fm.Tags)

	return &fm, matches[2], nil
}

func kindFromTags(tags []string) models.EntityKind {
	for _, tag := range tags {
		switch {
		case strings.EqualFold(tag, string(models.KindEpic)):
			return models.KindEpic
		case strings.EqualFold(tag, string(models.KindStory)):
			return models.KindStory
		case strings.EqualFold(tag, string(models.KindTask)):
			return models.KindTask
		}
	}
	return ""
}

// IsCompleted interprets the Completed field; anything but "true" is false.
func (fm *Frontmatter) IsCompleted() bool {
	return strings.EqualFold(strings.TrimSpace(fm.Completed), "true")
}

// ForEpic returns the frontmatter of a new epic.
func ForEpic(created time.Time) *Frontmatter {
	return &Frontmatter{
		Kind:        models.KindEpic,
		Tags:        []string{string(models.KindEpic), models.ProjectTag},
		DateCreated: FormatDate(created),
	}
}

// ForStory returns the frontmatter of a new story linked to its epic.
func ForStory(epic string, created time.Time) *Frontmatter {
	return &Frontmatter{
		Kind:         models.KindStory,
		Epic:         WikiLink(epic),
		Tags:         []string{string(models.KindStory), models.ProjectTag},
		DateCreated:  FormatDate(created),
		DateFinished: FinishedPlaceholder,
	}
}

// ForTask returns the frontmatter of a new, uncompleted task.
func ForTask(epic, story string, priority models.Priority, created time.Time) *Frontmatter {
	return &Frontmatter{
		Kind:         models.KindTask,
		Epic:         WikiLink(epic),
		Story:        WikiLink(story),
		Priority:     string(priority),
		Tags:         []string{string(models.KindTask), models.ProjectTag},
		Completed:    "false",
		DateCreated:  FormatDate(created),
		DateFinished: FinishedPlaceholder,
	}
}

// Build creates the frontmatter block in a fixed field order
func Build(fm *Frontmatter) string {
	var sb strings.Builder

	sb.WriteString("---\n")

	// Back-links first, as the editor shows them at the top
	if fm.Epic != "" {
		sb.WriteString(fmt.Sprintf("Epic: %q\n", fm.Epic))
	}
	if fm.Story != "" {
		sb.WriteString(fmt.Sprintf("Story: %q\n", fm.Story))
	}
	if fm.Priority != "" {
		sb.WriteString(fmt.Sprintf("Priority: %s\n", fm.Priority))
	}
	sb.WriteString(fmt.Sprintf("tags: %s\n", formatYAMLArray(fm.Tags)))
	if fm.Kind == models.KindTask {
		completed := "false"
		if fm.IsCompleted() {
			completed = "true"
		}
		sb.WriteString(fmt.Sprintf("Completed: %s\n", completed))
	}
	if fm.DateCreated != "" {
		sb.WriteString(fmt.Sprintf("Date Created: %s\n", fm.DateCreated))
	}
	if fm.DateFinished != "" {
		sb.WriteString(fmt.Sprintf("Date Finished: %s\n", fm.DateFinished))
	}

	sb.WriteString("---")

	return sb.String()
}

// BuildContent combines frontmatter and body content into a complete document
func BuildContent(fm *Frontmatter, bodyContent string) string {
	return Build(fm) + "\n" + strings.TrimPrefix(bodyContent, "\n")
}

// WikiLink formats name as an editor link.
func WikiLink(name string) string {
	return "[[" + name + "]]"
}

// ParseWikiLink strips the brackets from a link; plain text is returned as is.
func ParseWikiLink(s string) string {
	s = strings.TrimSpace(s)
	if m := wikiLinkPattern.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return s
}

// FormatDate formats t as a frontmatter date
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a frontmatter date
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(s))
}

// formatYAMLArray formats a string slice as a YAML flow-style array
func formatYAMLArray(items []string) string {
	if len(items) == 0 {
		return "[]"
	}

	quotedItems := make([]string, len(items))
	for i, item := range items {
		if needsQuoting(item) {
			quotedItems[i] = fmt.Sprintf("%q", item)
		} else {
			quotedItems[i] = item
		}
	}

	return fmt.Sprintf("[%s]", strings.Join(quotedItems, ", "))
}

// needsQuoting checks if a string needs to be quoted in YAML
func needsQuoting(s string) bool {
	return strings.ContainsAny(s, ",:[]{}\"'")
}

// MergeTags combines multiple tag sources and removes duplicates
func MergeTags(sources ...[]string) []string {
	seen := make(map[string]bool)
	result := []string{}

	for _, tags := range sources {
		for _, tag := range tags {
			if tag != "" && !seen[tag] {
				seen[tag] = true
				result = append(result, tag)
			}
		}
	}

	return result
}
