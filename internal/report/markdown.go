package report

import (
	"fmt"
	"strings"

	"labreport/internal/project"
)

// RenderMarkdown renders the document as Markdown for terminal preview.
// Sections are separated by a horizontal rule where the document has a page break.
func RenderMarkdown(doc *Document) string {
	var b strings.Builder
	for i, s := range doc.Sections {
		if i > 0 {
			b.WriteString("\n---\n\n")
		}
		writeSectionMarkdown(&b, s)
	}
	return b.String()
}

func writeSectionMarkdown(b *strings.Builder, s Section) {
	fmt.Fprintf(b, "**Exp. No: %d**\n\n", s.Number)
	fmt.Fprintf(b, "## %s\n\n", strings.ToUpper(s.Heading))

	lang, _ := project.ParseLanguage(s.Language)
	for _, p := range s.Paragraphs {
		switch p.Role {
		case RoleLabel:
			fmt.Fprintf(b, "**%s**\n\n", p.Text)
		case RoleBody:
			// Markdown joins single newlines; keep outline steps on their own lines.
			fmt.Fprintf(b, "%s\n\n", strings.ReplaceAll(p.Text, "\n", "  \n"))
		case RoleCode:
			fence := codeFence(p.Text)
			fmt.Fprintf(b, "%s%s\n%s\n%s\n\n", fence, lang.FenceTag(), strings.TrimRight(p.Text, "\n"), fence)
		}
	}
}

// codeFence returns a backtick fence longer than any run inside code.
func codeFence(code string) string {
	longest, run := 0, 0
	for _, r := range code {
		if r == '`' {
			run++
			if run > longest {
				longest = run
			}
			continue
		}
		run = 0
	}
	if longest < 3 {
		return "```"
	}
	return strings.Repeat("`", longest+1)
}
