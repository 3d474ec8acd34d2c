// Package display implements the agile-display directive: its key=value
// mini-language and the filter/sort settings it produces.
package display

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/mattsolo1/grove-agile/pkg/models"
)

// SortMode selects the comparator applied to entity names.
type SortMode string

const (
	SortNone       SortMode = ""
	SortAlphabetic SortMode = "alphabetic"
	SortPriority   SortMode = "priority"
)

// Settings is the parsed form of one directive. It is built fresh for every
// render and not modified afterwards.
type Settings struct {
	EpicName  string `json:"epic,omitempty"`
	StoryName string `json:"story,omitempty"`
	TaskName  string `json:"task,omitempty"`

	FilterCompleted bool `json:"filterCompleted"`
	Completed       bool `json:"completed"`

	FilterPriority bool            `json:"filterPriority"`
	Priority       models.Priority `json:"priority,omitempty"`

	ShortDescription bool     `json:"shortDescription"`
	Sort             SortMode `json:"sort,omitempty"`
	Reverse          bool     `json:"reverse"`
	HotReload        bool     `json:"hotReload"`
}

// Defaults returns the settings of an empty directive.
func Defaults() Settings {
	return Settings{
		ShortDescription: true,
		HotReload:        true,
	}
}

// fold case-folds s. A Caser is stateful, so one is made per call.
func fold(s string) string {
	return cases.Fold().String(s)
}

func contains(name, filter string) bool {
	if filter == "" {
		return true
	}
	return strings.Contains(fold(name), fold(filter))
}

func (s Settings) MatchEpic(name string) bool {
	return contains(name, s.EpicName)
}

func (s Settings) MatchStory(name string) bool {
	return contains(name, s.StoryName)
}

func (s Settings) MatchTask(name string) bool {
	return contains(name, s.TaskName)
}

// MatchPriority reports whether p passes the priority filter.
func (s Settings) MatchPriority(p models.Priority) bool {
	return !s.FilterPriority || p == s.Priority
}

// MatchCompleted reports whether a task with the given state passes the
// completion filter.
func (s Settings) MatchCompleted(completed bool) bool {
	return !s.FilterCompleted || completed == s.Completed
}

// Describe applies the description mode: in short mode only the first
// non-blank line of the overview is kept.
func (s Settings) Describe(overview string) string {
	if !s.ShortDescription {
		return overview
	}
	for _, line := range strings.Split(overview, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}
