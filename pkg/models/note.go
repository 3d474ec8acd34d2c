package models

import "strings"

// EntityKind names one of the three levels of the agile taxonomy.
type EntityKind string

const (
	KindEpic  EntityKind = "Epic"
	KindStory EntityKind = "Story"
	KindTask  EntityKind = "Task"
)

// ProjectTag is added to the tags of every generated document.
const ProjectTag = "Agile"

// Priority is the enumerated priority of a task.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// ParsePriority matches s case-insensitively against the known levels.
func ParsePriority(s string) (Priority, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high":
		return PriorityHigh, true
	case "medium":
		return PriorityMedium, true
	case "low":
		return PriorityLow, true
	}
	return "", false
}

// Rank orders priorities High < Medium < Low; anything else sorts last.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

// Valid reports whether p is one of the three known levels.
func (p Priority) Valid() bool {
	return p.Rank() < 3
}

// Epic, Story and Task are the parsed view of an entity used by the dashboard.
type Epic struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	Description string `json:"description"`
}

type Story struct {
	Epic        string `json:"epic"`
	Name        string `json:"name"`
	Path        string `json:"path"`
	Description string `json:"description"`
}

type Task struct {
	Epic        string   `json:"epic"`
	Story       string   `json:"story"`
	Name        string   `json:"name"`
	Path        string   `json:"path"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority,omitempty"`
	Completed   bool     `json:"completed"`
}
