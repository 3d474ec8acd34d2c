package display

import (
	"strings"
)

// Language is the info string of the fenced block that holds a directive.
const Language = "agile-display"

// Directive is one agile-display block found in a document.
type Directive struct {
	Line int    // 1-based line of the opening fence
	End  int    // 1-based line of the closing fence, or the last line
	Body string // lines between the fences
}

// ExtractDirectives returns every agile-display fenced block in markdown, in
// document order. An unterminated block runs to the end of the document.
func ExtractDirectives(markdown string) []Directive {
	lines := strings.Split(strings.ReplaceAll(markdown, "\r\n", "\n"), "\n")

	var out []Directive
	for i := 0; i < len(lines); i++ {
		fence, info, ok := openingFence(lines[i])
		if !ok {
			continue
		}
		start := i
		var body []string
		for i++; i < len(lines); i++ {
			if closesFence(lines[i], fence) {
				break
			}
			body = append(body, lines[i])
		}
		end := i + 1
		if i == len(lines) {
			end = len(lines)
		}
		if info == Language {
			out = append(out, Directive{Line: start + 1, End: end, Body: strings.Join(body, "\n")})
		}
	}
	return out
}

// Split cuts markdown around its agile-display blocks. The returned text
// has one more element than the directives: text[i] precedes directives[i].
func Split(markdown string) ([]string, []Directive) {
	directives := ExtractDirectives(markdown)
	if len(directives) == 0 {
		return []string{markdown}, nil
	}
	lines := strings.Split(strings.ReplaceAll(markdown, "\r\n", "\n"), "\n")

	text := make([]string, 0, len(directives)+1)
	next := 0
	for _, d := range directives {
		text = append(text, strings.Join(lines[next:d.Line-1], "\n"))
		next = d.End
	}
	text = append(text, strings.Join(lines[next:], "\n"))
	return text, directives
}

// Expand replaces every agile-display block in markdown, fences included,
// with the output of fn.
func Expand(markdown string, fn func(Directive) string) string {
	directives := ExtractDirectives(markdown)
	if len(directives) == 0 {
		return markdown
	}
	lines := strings.Split(strings.ReplaceAll(markdown, "\r\n", "\n"), "\n")

	var out []string
	next := 0
	for _, d := range directives {
		out = append(out, lines[next:d.Line-1]...)
		out = append(out, fn(d))
		next = d.End
	}
	out = append(out, lines[next:]...)
	return strings.Join(out, "\n")
}

// openingFence recognises ``` or ~~~ fences (three or more) and their info string.
func openingFence(line string) (fence, info string, ok bool) {
	trimmed := strings.TrimLeft(line, " ")
	if len(line)-len(trimmed) > 3 {
		return "", "", false
	}
	for _, ch := range []byte{'`', '~'} {
		n := 0
		for n < len(trimmed) && trimmed[n] == ch {
			n++
		}
		if n >= 3 {
			info = strings.TrimSpace(trimmed[n:])
			if ch == '`' && strings.Contains(info, "`") {
				return "", "", false
			}
			if fields := strings.Fields(info); len(fields) > 0 {
				info = fields[0]
			}
			return trimmed[:n], info, true
		}
	}
	return "", "", false
}

func closesFence(line, fence string) bool {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, fence) {
		return false
	}
	return strings.Trim(trimmed, fence[:1]) == ""
}

// Block wraps settings in a fenced agile-display block.
func Block(body string) string {
	return "```" + Language + "\n" + body + "\n```"
}
