package tree

import (
	"github.com/mattsolo1/grove-agile/pkg/models"
)

// ItemType categorizes the nodes of a dashboard tree.
type ItemType string

const (
	TypeRoot  ItemType = "root"
	TypeEpic  ItemType = "epic"
	TypeStory ItemType = "story"
	TypeTask  ItemType = "task"
)

// NoStructuresFound is shown instead of an empty dashboard.
const NoStructuresFound = "No Agile structures found."

// Item is a single node of the dashboard: the root, an epic, a story or a task.
type Item struct {
	Type        ItemType        `json:"type"`
	Name        string          `json:"name,omitempty"`
	Path        string          `json:"path,omitempty"`
	Description string          `json:"description,omitempty"`
	Priority    models.Priority `json:"priority,omitempty"`
	Completed   bool            `json:"completed,omitempty"`

	// Placeholder is set on a root with no children.
	Placeholder string `json:"placeholder,omitempty"`

	Children []*Item `json:"children,omitempty"`
}

// NewRoot returns a root holding epics, or the placeholder when there are none.
func NewRoot(epics []*Item) *Item {
	root := &Item{Type: TypeRoot, Children: epics}
	if len(epics) == 0 {
		root.Children = nil
		root.Placeholder = NoStructuresFound
	}
	return root
}

// Empty reports whether the item has no visible children.
func (i *Item) Empty() bool {
	return len(i.Children) == 0
}

// Names returns the names of the direct children in order.
func (i *Item) Names() []string {
	names := make([]string, 0, len(i.Children))
	for _, c := range i.Children {
		names = append(names, c.Name)
	}
	return names
}

// Walk visits the item and its descendants depth-first, passing the depth
// below the root.
func (i *Item) Walk(fn func(item *Item, depth int)) {
	var visit func(*Item, int)
	visit = func(it *Item, depth int) {
		fn(it, depth)
		for _, c := range it.Children {
			visit(c, depth+1)
		}
	}
	visit(i, 0)
}

// Count returns how many descendants have type t.
func (i *Item) Count(t ItemType) int {
	n := 0
	i.Walk(func(it *Item, _ int) {
		if it.Type == t {
			n++
		}
	})
	return n
}
