package report

import (
	"errors"
	"fmt"

	"labreport/internal/logging"
	"labreport/internal/project"
)

// ErrSave wraps any failure to write the document.
var ErrSave = errors.New("save failed")

// DefaultOutput is the file name used when none is configured.
const DefaultOutput = "Final_Project_Report.docx"

// Writer persists a composed document.
type Writer interface {
	WriteDocument(path string, doc *Document) error
}

// Generator composes entries and saves the result.
type Generator struct {
	composer *Composer
	writer   Writer
}

// NewGenerator wires a composer to a writer.
func NewGenerator(composer *Composer, writer Writer) *Generator {
	return &Generator{composer: composer, writer: writer}
}

// Generate composes entries and writes them to path. With no entries it
// returns ErrNoEntries and writes nothing.
func (g *Generator) Generate(entries []project.Entry, path string) (*Document, error) {
	timer := logging.StartTimer(logging.CategoryComposer, "generate")
	defer timer.Stop()

	doc, err := g.composer.Compose(entries)
	if err != nil {
		return nil, err
	}
	if err := g.writer.WriteDocument(path, doc); err != nil {
		logging.WriterError("failed to save %s: %v", path, err)
		return doc, fmt.Errorf("%w: %s: %w", ErrSave, path, err)
	}
	doc.SavedTo = path
	logging.Writer("saved %d sections to %s", len(doc.Sections), path)
	return doc, nil
}
