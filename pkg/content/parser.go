// Package content extracts the few structured fields the dashboard needs from
// an entity document: its Overview section, completion state and priority.
package content

import (
	"errors"
	"os"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mattsolo1/grove-agile/pkg/models"
	"github.com/mattsolo1/grove-agile/pkg/report"
	"github.com/mattsolo1/grove-agile/pkg/vault"
)

// FieldParser reads entity fields from a document in the vault. Failures are
// reported and turned into zero values.
type FieldParser interface {
	ExtractOverview(path string) string
	IsCompleted(path string) bool
	ExtractPriority(path string) models.Priority
}

const overviewHeading = "# Overview"

var (
	completedPattern = regexp.MustCompile(`(?i)completed:\s*(true|false)\b`)
	priorityPattern  = regexp.MustCompile(`(?im)^\s*priority:\s*["']?(high|medium|low)\b`)
	separatorPattern = regexp.MustCompile(`^-{2,}$`)
	headingPattern   = regexp.MustCompile(`(?m)^(#+)\s+(.*)$`)
	listPattern      = regexp.MustCompile(`(?m)^\s*[-*]\s+(.*)$`)
)

// PatternParser matches fields with tolerant text patterns over the raw
// document. A field may appear anywhere, front-matter or body.
type PatternParser struct {
	vault    vault.Vault
	reporter report.Reporter
}

func NewPatternParser(v vault.Vault, reporter report.Reporter) *PatternParser {
	if reporter == nil {
		reporter = report.Discard
	}
	return &PatternParser{vault: v, reporter: reporter}
}

// read loads a document, reporting a missing or unreadable file.
func read(v vault.Vault, reporter report.Reporter, path string) (string, bool) {
	if path == "" || !v.File(path).OK() {
		reporter.Report(report.NewEntityNotFound("File", path, path))
		return "", false
	}
	text, err := v.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			reporter.Report(report.NewEntityNotFound("File", path, path))
		} else {
			reporter.Report(report.NewIOFailure("read file", path, err))
		}
		return "", false
	}
	return text, true
}

func (p *PatternParser) ExtractOverview(path string) string {
	text, ok := read(p.vault, p.reporter, path)
	if !ok {
		return ""
	}
	overview, found := Overview(text)
	if !found {
		p.reporter.Report(report.NewMalformed(path, "Overview section not found in file '%s'", path))
	}
	return overview
}

func (p *PatternParser) IsCompleted(path string) bool {
	text, ok := read(p.vault, p.reporter, path)
	if !ok {
		return false
	}
	m := completedPattern.FindStringSubmatch(text)
	if m == nil {
		p.reporter.Report(report.NewMalformed(path, "Completed field not found in file '%s'", path))
		return false
	}
	return strings.EqualFold(m[1], "true")
}

func (p *PatternParser) ExtractPriority(path string) models.Priority {
	text, ok := read(p.vault, p.reporter, path)
	if !ok {
		return ""
	}
	m := priorityPattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return models.Priority(cases.Title(language.English).String(strings.ToLower(m[1])))
}

// Overview returns the text under the "# Overview" heading: one separator
// line after the heading is skipped, and capture stops at the next top-level
// heading or the end of the document.
func Overview(text string) (string, bool) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	start := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == overviewHeading {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return "", false
	}

	// skip blank lines up to an optional separator
	i := start
	for i < len(lines) && strings.TrimSpace(lines[i]) == "" {
		i++
	}
	if i < len(lines) && separatorPattern.MatchString(strings.TrimSpace(lines[i])) {
		start = i + 1
	}

	var body []string
	for _, line := range lines[start:] {
		if strings.HasPrefix(line, "# ") {
			break
		}
		body = append(body, line)
	}
	return strings.TrimSpace(strings.Join(body, "\n")), true
}

// ParseHeadings returns the text of every heading in markdown.
func ParseHeadings(markdown string) []string {
	headings := []string{}
	for _, m := range headingPattern.FindAllStringSubmatch(markdown, -1) {
		headings = append(headings, m[2])
	}
	return headings
}

// ParseLists returns the text of every bullet list item in markdown.
func ParseLists(markdown string) []string {
	items := []string{}
	for _, m := range listPattern.FindAllStringSubmatch(markdown, -1) {
		items = append(items, m[1])
	}
	return items
}
