// Package richtext renders CMS structured text as sanitised HTML.
package richtext

import (
	"html"
	"regexp"
	"sort"
	"strings"
	"unicode/utf16"

	"github.com/microcosm-cc/bluemonday"
)

// Block is one structured-text block: a paragraph, heading, list item or
// image.
type Block struct {
	Type  string
	Text  string
	Spans []Span
	URL   string
	Alt   string
}

// Span marks up Text between Start and End, counted in UTF-16 code units.
type Span struct {
	Start  int
	End    int
	Type   string // strong, em, hyperlink or label
	URL    string
	Target string
	Label  string
}

var labelClass = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Renderer turns blocks into HTML. It is safe for concurrent use.
type Renderer struct {
	policy *bluemonday.Policy
}

// NewRenderer creates a renderer whose output passes bluemonday's UGC
// policy, extended with label classes and link targets.
func NewRenderer() *Renderer {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").Matching(labelClass).OnElements("span", "p")
	policy.AllowAttrs("target").Matching(regexp.MustCompile(`^_(blank|self)$`)).OnElements("a")

	return &Renderer{policy: policy}
}

// HTML renders blocks. Consecutive list items are grouped into one list.
func (r *Renderer) HTML(blocks []Block) string {
	var b strings.Builder

	openList := ""
	for _, block := range blocks {
		list := listTag(block.Type)
		if list != openList {
			if openList != "" {
				b.WriteString("</" + openList + ">")
			}
			if list != "" {
				b.WriteString("<" + list + ">")
			}
			openList = list
		}
		writeBlock(&b, block)
	}
	if openList != "" {
		b.WriteString("</" + openList + ">")
	}

	return r.policy.Sanitize(b.String())
}

// Text joins the plain text of blocks with newlines.
func Text(blocks []Block) string {
	parts := make([]string, 0, len(blocks))
	for _, block := range blocks {
		if block.Text != "" {
			parts = append(parts, block.Text)
		}
	}
	return strings.Join(parts, "\n")
}

func listTag(blockType string) string {
	switch blockType {
	case "list-item":
		return "ul"
	case "o-list-item":
		return "ol"
	default:
		return ""
	}
}

func writeBlock(b *strings.Builder, block Block) {
	switch block.Type {
	case "paragraph":
		wrap(b, "p", block)
	case "heading1", "heading2", "heading3", "heading4", "heading5", "heading6":
		wrap(b, "h"+strings.TrimPrefix(block.Type, "heading"), block)
	case "preformatted":
		wrap(b, "pre", block)
	case "list-item", "o-list-item":
		wrap(b, "li", block)
	case "image":
		if block.URL == "" {
			return
		}
		b.WriteString(`<p class="block-img"><img src="` + html.EscapeString(block.URL) +
			`" alt="` + html.EscapeString(block.Alt) + `" /></p>`)
	}
}

func wrap(b *strings.Builder, tag string, block Block) {
	b.WriteString("<" + tag + ">")
	b.WriteString(renderSpans(block.Text, block.Spans))
	b.WriteString("</" + tag + ">")
}

// renderSpans interleaves span tags with the escaped text. Overlapping spans
// are closed and reopened so the output nests properly.
func renderSpans(text string, spans []Span) string {
	units := utf16.Encode([]rune(text))
	n := len(units)

	valid := make([]Span, 0, len(spans))
	for _, s := range spans {
		s.Start = max(s.Start, 0)
		s.End = min(s.End, n)
		if s.Start >= s.End || openTag(s) == "" {
			continue
		}
		valid = append(valid, s)
	}
	if len(valid) == 0 {
		return escape(units)
	}

	bounds := []int{0, n}
	for _, s := range valid {
		bounds = append(bounds, s.Start, s.End)
	}
	sort.Ints(bounds)
	bounds = compact(bounds)

	var (
		b     strings.Builder
		stack []Span
	)
	for i, pos := range bounds {
		// Close everything ending here, reopening spans that were popped on
		// the way but continue past pos.
		var reopen []Span
		for endsAt(stack, pos) {
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			b.WriteString(closeTag(top))
			if top.End != pos {
				reopen = append(reopen, top)
			}
		}
		for j := len(reopen) - 1; j >= 0; j-- {
			b.WriteString(openTag(reopen[j]))
			stack = append(stack, reopen[j])
		}

		starting := make([]Span, 0)
		for _, s := range valid {
			if s.Start == pos {
				starting = append(starting, s)
			}
		}
		sort.SliceStable(starting, func(a, c int) bool { return starting[a].End > starting[c].End })
		for _, s := range starting {
			b.WriteString(openTag(s))
			stack = append(stack, s)
		}

		if i+1 < len(bounds) {
			b.WriteString(escape(units[pos:bounds[i+1]]))
		}
	}
	for j := len(stack) - 1; j >= 0; j-- {
		b.WriteString(closeTag(stack[j]))
	}

	return b.String()
}

func endsAt(stack []Span, pos int) bool {
	for _, s := range stack {
		if s.End == pos {
			return true
		}
	}
	return false
}

func compact(sorted []int) []int {
	out := sorted[:1]
	for _, v := range sorted[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}

func escape(units []uint16) string {
	text := html.EscapeString(string(utf16.Decode(units)))
	return strings.ReplaceAll(text, "\n", "<br />")
}

func openTag(s Span) string {
	switch s.Type {
	case "strong":
		return "<strong>"
	case "em":
		return "<em>"
	case "label":
		if !labelClass.MatchString(s.Label) {
			return "<span>"
		}
		return `<span class="` + s.Label + `">`
	case "hyperlink":
		if s.URL == "" {
			return ""
		}
		tag := `<a href="` + html.EscapeString(s.URL) + `"`
		if s.Target != "" {
			tag += ` target="` + html.EscapeString(s.Target) + `"`
		}
		return tag + ">"
	default:
		return ""
	}
}

func closeTag(s Span) string {
	switch s.Type {
	case "strong":
		return "</strong>"
	case "em":
		return "</em>"
	case "label":
		return "</span>"
	case "hyperlink":
		return "</a>"
	default:
		return ""
	}
}
