package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labreport/internal/project"
)

func TestRenderMarkdown(t *testing.T) {
	entries := []project.Entry{
		{Heading: "solveMatrix", Code: "def solveMatrix(a,b):\n    return a\n", Language: project.Python},
		{Heading: "Sorting Demo", Code: "<title>Sorting Demo</title>", Language: project.HTML},
	}
	doc, err := NewComposer(DefaultOptions()).Compose(entries)
	require.NoError(t, err)

	md := RenderMarkdown(doc)

	assert.Contains(t, md, "**Exp. No: 1**\n\n## SOLVEMATRIX\n\n**Aim:**\n\nTo write a program to solveMatrix using Python.\n\n")
	assert.Contains(t, md, "1. Start the program.  \n2. Import necessary libraries.")
	assert.Contains(t, md, "```python\ndef solveMatrix(a,b):\n    return a\n```\n")
	assert.Contains(t, md, "**Exp. No: 2**\n\n## SORTING DEMO")
	assert.Contains(t, md, "```html\n<title>Sorting Demo</title>\n```")
	assert.Contains(t, md, "**Result:**\n\n"+DefaultResultText)
	assert.Equal(t, 1, strings.Count(md, "\n---\n"), "one break between two sections")
}

func TestCodeFence(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"plain", "```"},
		{"has `tick`", "```"},
		{"nested ```fence```", "````"},
		{"deep `````", "``````"},
	}
	for _, tt := range tests {
		if got := codeFence(tt.code); got != tt.want {
			t.Errorf("codeFence(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}
}
