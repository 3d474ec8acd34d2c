package content

import (
	"github.com/mattsolo1/grove-agile/pkg/frontmatter"
	"github.com/mattsolo1/grove-agile/pkg/models"
	"github.com/mattsolo1/grove-agile/pkg/report"
	"github.com/mattsolo1/grove-agile/pkg/vault"
)

// FrontmatterParser reads Completed and Priority from the YAML front-matter
// instead of matching patterns over the whole document.
type FrontmatterParser struct {
	vault    vault.Vault
	reporter report.Reporter
}

func NewFrontmatterParser(v vault.Vault, reporter report.Reporter) *FrontmatterParser {
	if reporter == nil {
		reporter = report.Discard
	}
	return &FrontmatterParser{vault: v, reporter: reporter}
}

func (p *FrontmatterParser) parse(path string) (*frontmatter.Frontmatter, string, bool) {
	text, ok := read(p.vault, p.reporter, path)
	if !ok {
		return nil, "", false
	}
	fm, body, err := frontmatter.Parse(text)
	if err != nil {
		p.reporter.Report(report.NewMalformed(path, "invalid front-matter in '%s': %v", path, err))
		return nil, text, true
	}
	return fm, body, true
}

func (p *FrontmatterParser) ExtractOverview(path string) string {
	_, body, ok := p.parse(path)
	if !ok {
		return ""
	}
	overview, found := Overview(body)
	if !found {
		p.reporter.Report(report.NewMalformed(path, "Overview section not found in file '%s'", path))
	}
	return overview
}

func (p *FrontmatterParser) IsCompleted(path string) bool {
	fm, _, ok := p.parse(path)
	if !ok {
		return false
	}
	if fm == nil || fm.Completed == "" {
		p.reporter.Report(report.NewMalformed(path, "Completed field not found in file '%s'", path))
		return false
	}
	return fm.IsCompleted()
}

func (p *FrontmatterParser) ExtractPriority(path string) models.Priority {
	fm, _, ok := p.parse(path)
	if !ok || fm == nil {
		return ""
	}
	priority, valid := models.ParsePriority(fm.Priority)
	if !valid {
		return ""
	}
	return priority
}
