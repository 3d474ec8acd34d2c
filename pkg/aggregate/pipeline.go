// Package aggregate walks Epics, Stories and Tasks, applies the display
// filters and sort order, and builds the dashboard tree.
package aggregate

import (
	"context"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/mattsolo1/grove-agile/pkg/content"
	"github.com/mattsolo1/grove-agile/pkg/display"
	"github.com/mattsolo1/grove-agile/pkg/tree"
	"github.com/mattsolo1/grove-agile/pkg/vault"
)

// DefaultConcurrency bounds simultaneous vault reads.
const DefaultConcurrency = 8

// Querier is the part of the structure manager the pipeline walks.
type Querier interface {
	ListEpics() []string
	ResolveEpicPath(epic string) vault.Lookup
	ListStories(epic string) []string
	ResolveStoryPath(epic, story string) vault.Lookup
	ListTasks(epic, story string) []string
	ResolveTaskPath(epic, story, task string) vault.Lookup
}

// Pipeline builds dashboard trees. Sibling branches run concurrently; each
// writes only its own slot, so output order follows the sorted names.
type Pipeline struct {
	structure Querier
	fields    content.FieldParser
	sem       *semaphore.Weighted
	logger    *logrus.Entry
}

// New creates a pipeline. concurrency <= 0 selects DefaultConcurrency.
func New(q Querier, fields content.FieldParser, concurrency int, logger *logrus.Entry) *Pipeline {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	if logger == nil {
		logger = logrus.NewEntry(logrus.New())
	}
	return &Pipeline{
		structure: q,
		fields:    fields,
		sem:       semaphore.NewWeighted(int64(concurrency)),
		logger:    logger.WithField("component", "aggregate"),
	}
}

// io runs one vault operation while holding a read slot.
func (p *Pipeline) io(ctx context.Context, fn func()) error {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer p.sem.Release(1)
	fn()
	return nil
}

// Build runs the full walk. Only context cancellation is returned as an
// error; vault problems are reported by the structure manager and parser and
// simply leave entities out.
func (p *Pipeline) Build(ctx context.Context, s display.Settings) (*tree.Item, error) {
	var names []string
	if err := p.io(ctx, func() { names = p.structure.ListEpics() }); err != nil {
		return nil, err
	}
	names = filterNames(names, s.MatchEpic)
	if s.Sort == display.SortAlphabetic {
		sortNames(names, s.Reverse)
	}

	epics := make([]*tree.Item, len(names))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			item, err := p.epic(gctx, name, s)
			epics[i] = item
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	root := tree.NewRoot(compact(epics))
	p.logger.WithFields(logrus.Fields{
		"epics":   root.Count(tree.TypeEpic),
		"stories": root.Count(tree.TypeStory),
		"tasks":   root.Count(tree.TypeTask),
	}).Debug("Built agile dashboard")
	return root, nil
}

// epic returns nil when none of its stories survive filtering.
func (p *Pipeline) epic(ctx context.Context, name string, s display.Settings) (*tree.Item, error) {
	item := &tree.Item{Type: tree.TypeEpic, Name: name}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return p.io(gctx, func() {
			item.Path = p.structure.ResolveEpicPath(name).String()
			if item.Path != "" {
				item.Description = s.Describe(p.fields.ExtractOverview(item.Path))
			}
		})
	})

	var names []string
	if err := p.io(ctx, func() { names = p.structure.ListStories(name) }); err != nil {
		_ = g.Wait()
		return nil, err
	}
	names = filterNames(names, s.MatchStory)
	if s.Sort == display.SortAlphabetic {
		sortNames(names, s.Reverse)
	}

	stories := make([]*tree.Item, len(names))
	for i, story := range names {
		i, story := i, story
		g.Go(func() error {
			child, err := p.story(gctx, name, story, s)
			stories[i] = child
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	item.Children = compact(stories)
	if item.Empty() {
		return nil, nil
	}
	return item, nil
}

// story returns nil when none of its tasks survive filtering.
func (p *Pipeline) story(ctx context.Context, epic, name string, s display.Settings) (*tree.Item, error) {
	item := &tree.Item{Type: tree.TypeStory, Name: name}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return p.io(gctx, func() {
			item.Path = p.structure.ResolveStoryPath(epic, name).String()
			if item.Path != "" {
				item.Description = s.Describe(p.fields.ExtractOverview(item.Path))
			}
		})
	})

	var names []string
	if err := p.io(ctx, func() { names = p.structure.ListTasks(epic, name) }); err != nil {
		_ = g.Wait()
		return nil, err
	}
	names = filterNames(names, s.MatchTask)

	tasks := make([]*tree.Item, len(names))
	for i, task := range names {
		i, task := i, task
		g.Go(func() error {
			child, err := p.task(gctx, epic, name, task, s)
			tasks[i] = child
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	item.Children = sortTasks(compact(tasks), s)
	if item.Empty() {
		return nil, nil
	}
	return item, nil
}

// task applies the priority filter before the completion filter and reads the
// overview only for tasks that pass both.
func (p *Pipeline) task(ctx context.Context, epic, story, name string, s display.Settings) (*tree.Item, error) {
	item := &tree.Item{Type: tree.TypeTask, Name: name}
	keep := false
	err := p.io(ctx, func() {
		item.Path = p.structure.ResolveTaskPath(epic, story, name).String()
		if item.Path == "" {
			return
		}
		item.Priority = p.fields.ExtractPriority(item.Path)
		if !s.MatchPriority(item.Priority) {
			return
		}
		item.Completed = p.fields.IsCompleted(item.Path)
		if !s.MatchCompleted(item.Completed) {
			return
		}
		item.Description = s.Describe(p.fields.ExtractOverview(item.Path))
		keep = true
	})
	if err != nil || !keep {
		return nil, err
	}
	return item, nil
}

func filterNames(names []string, match func(string) bool) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if match(n) {
			out = append(out, n)
		}
	}
	return out
}

func lessName(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la != lb {
		return la < lb
	}
	return a < b
}

func sortNames(names []string, reverse bool) {
	sort.SliceStable(names, func(i, j int) bool {
		if reverse {
			return lessName(names[j], names[i])
		}
		return lessName(names[i], names[j])
	})
}

// sortTasks orders tasks alphabetically or by priority (High, Medium, Low,
// then unknown). Reverse flips the final order.
func sortTasks(tasks []*tree.Item, s display.Settings) []*tree.Item {
	switch s.Sort {
	case display.SortAlphabetic:
		sort.SliceStable(tasks, func(i, j int) bool {
			return lessName(tasks[i].Name, tasks[j].Name)
		})
	case display.SortPriority:
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].Priority.Rank() < tasks[j].Priority.Rank()
		})
	default:
		return tasks
	}
	if s.Reverse {
		for i, j := 0, len(tasks)-1; i < j; i, j = i+1, j-1 {
			tasks[i], tasks[j] = tasks[j], tasks[i]
		}
	}
	return tasks
}

func compact(items []*tree.Item) []*tree.Item {
	out := make([]*tree.Item, 0, len(items))
	for _, it := range items {
		if it != nil {
			out = append(out, it)
		}
	}
	return out
}
