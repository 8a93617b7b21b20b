// Package report lays collected entries out as a document of numbered
// experiment sections and hands the result to a writer.
package report

// Alignment is the horizontal alignment of a paragraph.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
)

// Role says what part of an experiment a paragraph carries.
type Role int

const (
	RolePadding Role = iota
	RoleNumber
	RoleTitle
	RoleLabel
	RoleBody
	RoleCode
)

// Paragraph is one block of text with its formatting. A zero SizePt means the
// writer's default size. Text may contain "\n" line breaks and "\t" tabs.
type Paragraph struct {
	Role          Role
	Text          string
	Bold          bool
	SizePt        float64
	Align         Alignment
	SpaceBeforePt float64
	SpaceAfterPt  float64
	Color         string // RGB hex without '#', empty for the writer default
}

// Section is one experiment. Every section after the first starts on a new page.
type Section struct {
	Number     int
	Heading    string
	Language   string
	Paragraphs []Paragraph
}

// Document is the composed report.
type Document struct {
	Title    string
	Sections []Section

	// SavedTo is set once the document has been written.
	SavedTo string
}

// Saved reports whether the document has been written.
func (d *Document) Saved() bool { return d.SavedTo != "" }
