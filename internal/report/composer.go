package report

import (
	"errors"
	"fmt"
	"strings"

	"labreport/internal/logging"
	"labreport/internal/project"
)

// ErrNoEntries is returned when there is nothing to put in the report.
var ErrNoEntries = errors.New("no entries")

const (
	DefaultPaddingLines      = 12
	DefaultResultSpaceBefore = 120.0
	DefaultResultText        = "Thus the program has been successfully executed or created."
	DefaultTitle             = "Final Project Report"

	labelSize   = 12.0
	headingSize = 14.0
	bodySize    = 11.0
	spaceAfter  = 6.0
	black       = "000000"
)

// Options tune the fixed experiment layout.
type Options struct {
	PaddingLines        int
	ResultSpaceBeforePt float64
	ResultText          string
}

// DefaultOptions returns the standard layout.
func DefaultOptions() Options {
	return Options{
		PaddingLines:        DefaultPaddingLines,
		ResultSpaceBeforePt: DefaultResultSpaceBefore,
		ResultText:          DefaultResultText,
	}
}

// Composer turns entries into a Document.
type Composer struct {
	opts Options
}

// NewComposer returns a composer. Zero-valued options fall back to the
// defaults, except PaddingLines where a negative value disables padding.
func NewComposer(opts Options) *Composer {
	if opts.PaddingLines == 0 {
		opts.PaddingLines = DefaultPaddingLines
	}
	if opts.PaddingLines < 0 {
		opts.PaddingLines = 0
	}
	if opts.ResultSpaceBeforePt == 0 {
		opts.ResultSpaceBeforePt = DefaultResultSpaceBefore
	}
	if opts.ResultText == "" {
		opts.ResultText = DefaultResultText
	}
	return &Composer{opts: opts}
}

// Compose lays out one numbered section per entry, in order.
func (c *Composer) Compose(entries []project.Entry) (*Document, error) {
	if len(entries) == 0 {
		logging.ComposerWarn("compose called with no entries")
		return nil, ErrNoEntries
	}

	doc := &Document{Title: DefaultTitle, Sections: make([]Section, 0, len(entries))}
	for i, e := range entries {
		doc.Sections = append(doc.Sections, c.section(i+1, e))
	}
	logging.Composer("composed %d sections", len(doc.Sections))
	return doc, nil
}

// AimSentence is the templated Aim statement for an entry.
func AimSentence(heading string, lang project.Language) string {
	return fmt.Sprintf("To write a program to %s using %s.", heading, lang)
}

func (c *Composer) section(n int, e project.Entry) Section {
	s := Section{
		Number:   n,
		Heading:  e.Heading,
		Language: e.Language.String(),
	}

	s.Paragraphs = append(s.Paragraphs,
		number(n),
		Paragraph{Role: RoleTitle, Text: strings.ToUpper(e.Heading), Bold: true, SizePt: headingSize, Align: AlignCenter, SpaceAfterPt: spaceAfter, Color: black},
		label("Aim:"),
		body(AimSentence(e.Heading, e.Language)),
		label("Algorithm:"),
		body(project.Outline(e.Code, e.Language)),
		label("Program Code:"),
		codeBlock(e.Code),
	)
	for i := 0; i < c.opts.PaddingLines; i++ {
		s.Paragraphs = append(s.Paragraphs, Paragraph{})
	}

	result := label("Result:")
	result.SpaceBeforePt = c.opts.ResultSpaceBeforePt
	s.Paragraphs = append(s.Paragraphs, result, body(c.opts.ResultText))
	return s
}

func number(n int) Paragraph {
	p := label(fmt.Sprintf("Exp. No: %d", n))
	p.Role = RoleNumber
	return p
}

func label(text string) Paragraph {
	return Paragraph{Role: RoleLabel, Text: text, Bold: true, SizePt: labelSize, SpaceAfterPt: spaceAfter, Color: black}
}

func body(text string) Paragraph {
	return Paragraph{Role: RoleBody, Text: text, SizePt: bodySize, SpaceAfterPt: spaceAfter, Color: black}
}

func codeBlock(text string) Paragraph {
	p := body(text)
	p.Role = RoleCode
	return p
}
