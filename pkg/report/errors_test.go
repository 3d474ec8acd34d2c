package report

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIs(t *testing.T) {
	err := NewDuplicateEntity("Epic", "Login", "Projects and Stories/Login")
	assert.True(t, Is(err, KindDuplicateEntity))
	assert.False(t, Is(err, KindEntityNotFound))

	wrapped := fmt.Errorf("create epic: %w", err)
	assert.True(t, Is(wrapped, KindDuplicateEntity))

	assert.False(t, Is(errors.New("plain"), KindIOFailure))
	assert.False(t, Is(nil, KindIOFailure))
}

func TestIOFailureUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := NewIOFailure("write file", "a/b.md", cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "disk full")
	assert.Contains(t, err.Error(), string(KindIOFailure))
}

func TestCollector(t *testing.T) {
	var c Collector
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Report(NewMalformed("", "bad line"))
		}()
	}
	wg.Wait()
	c.Report(nil)

	assert.Equal(t, 20, c.Len())
	assert.True(t, c.Has(KindMalformedDirective))
	assert.False(t, c.Has(KindIOFailure))
}

func TestLogReporter(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	r := NewLogReporter(logrus.NewEntry(logger))
	r.Report(NewStructureMissing("Projects and Stories", "Parent directory"))

	out := buf.String()
	require.NotEmpty(t, out)
	assert.True(t, strings.Contains(out, "level=warning"))
	assert.Contains(t, out, "kind=STRUCTURE_MISSING")
	assert.Contains(t, out, `path="Projects and Stories"`)
}

func TestTee(t *testing.T) {
	var a, b Collector
	Tee{&a, nil, &b}.Report(NewInvalidName("Epic", "", "empty"))
	assert.Equal(t, 1, a.Len())
	assert.Equal(t, 1, b.Len())
}
