// Package render turns a dashboard tree into Markdown, HTML or JSON.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/mattsolo1/grove-agile/pkg/models"
	"github.com/mattsolo1/grove-agile/pkg/tree"
)

// Markdown renders root as a nested list of wiki-links.
func Markdown(root *tree.Item) string {
	if root.Empty() {
		return root.Placeholder + "\n"
	}

	var sb strings.Builder
	for _, epic := range root.Children {
		epic.Walk(func(it *tree.Item, depth int) {
			sb.WriteString(strings.Repeat("  ", depth))
			sb.WriteString("- ")
			if it.Type == tree.TypeTask {
				if it.Completed {
					sb.WriteString("[x] ")
				} else {
					sb.WriteString("[ ] ")
				}
			}
			sb.WriteString(link(it))
			if it.Priority != "" {
				fmt.Fprintf(&sb, " (%s)", it.Priority)
			}
			if it.Description != "" {
				sb.WriteString(": ")
				sb.WriteString(strings.ReplaceAll(it.Description, "\n", " "))
			}
			sb.WriteString("\n")
		})
	}
	return sb.String()
}

// link prefers a path link so that identically named entities stay distinct.
func link(it *tree.Item) string {
	if it.Path == "" {
		return "[[" + it.Name + "]]"
	}
	return "[[" + strings.TrimSuffix(it.Path, models.MarkdownExt) + "|" + it.Name + "]]"
}

// JSON renders root as indented JSON.
func JSON(root *tree.Item) ([]byte, error) {
	data, err := json.MarshalIndent(root, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode dashboard: %w", err)
	}
	return data, nil
}

const htmlTemplate = `{{define "item"}}<div class="{{.Type}}-wrapper"{{with .Path}} data-path="{{.}}"{{end}}>
<div class="{{.Type}}-header">{{if eq .Type "task"}}{{if .Completed}}<input type="checkbox" disabled checked>{{else}}<input type="checkbox" disabled>{{end}} {{end}}<span class="{{.Type}}-name">{{.Name}}</span>{{with .Priority}} <span class="priority priority-{{.}}">{{.}}</span>{{end}}</div>
{{with .Description}}<div class="{{$.Type}}-description">{{markdown .}}</div>
{{end}}{{range .Children}}{{template "item" .}}{{end}}</div>
{{end}}<div class="agile-dashboard">
{{if .Placeholder}}<p class="agile-placeholder">{{.Placeholder}}</p>
{{else}}{{range .Children}}{{template "item" .}}{{end}}{{end}}</div>
`

var dashboard = template.Must(template.New("dashboard").Funcs(template.FuncMap{
	"markdown": markdown,
}).Parse(htmlTemplate))

// HTML renders root as nested epic, story and task wrappers. Descriptions
// are rendered as Markdown.
func HTML(root *tree.Item) (string, error) {
	var buf bytes.Buffer
	if err := dashboard.Execute(&buf, root); err != nil {
		return "", fmt.Errorf("failed to render dashboard: %w", err)
	}
	return buf.String(), nil
}

// Document renders a whole Markdown document to HTML.
func Document(md string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return buf.String(), nil
}

func markdown(md string) template.HTML {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(buf.String())
}
