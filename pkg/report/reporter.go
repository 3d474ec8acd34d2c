package report

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Reporter receives recoverable failures. Components report and then continue
// with a safe default; the presentation layer decides how to surface them.
type Reporter interface {
	Report(err error)
}

// LogReporter surfaces reports as logrus warnings.
type LogReporter struct {
	logger *logrus.Entry
}

func NewLogReporter(logger *logrus.Entry) *LogReporter {
	if logger == nil {
		logger = logrus.NewEntry(logrus.New())
	}
	return &LogReporter{logger: logger}
}

func (r *LogReporter) Report(err error) {
	if err == nil {
		return
	}
	entry := r.logger
	if rErr, ok := err.(*Error); ok {
		entry = entry.WithField("kind", rErr.Kind)
		if rErr.Path != "" {
			entry = entry.WithField("path", rErr.Path)
		}
	}
	entry.Warn(err.Error())
}

// Collector records every report. It is safe for concurrent use.
type Collector struct {
	mu   sync.Mutex
	errs []error
}

func (c *Collector) Report(err error) {
	if err == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errs = append(c.errs, err)
}

// Errors returns a copy of everything reported so far.
func (c *Collector) Errors() []error {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]error, len(c.errs))
	copy(out, c.errs)
	return out
}

// Has reports whether any collected error is of the given kind.
func (c *Collector) Has(kind Kind) bool {
	for _, err := range c.Errors() {
		if Is(err, kind) {
			return true
		}
	}
	return false
}

// Len returns the number of collected errors.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.errs)
}

// Tee fans a report out to several reporters.
type Tee []Reporter

func (t Tee) Report(err error) {
	for _, r := range t {
		if r != nil {
			r.Report(err)
		}
	}
}

type discard struct{}

func (discard) Report(error) {}

// Discard drops every report.
var Discard Reporter = discard{}
