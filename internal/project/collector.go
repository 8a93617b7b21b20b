// Package project collects program files into report entries: it classifies
// each file by extension, guesses a heading from fixed markers in the source
// and keeps the entries in upload order.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"labreport/internal/logging"
)

// ErrRead is returned when a program file cannot be read.
var ErrRead = errors.New("read failed")

// Entry is one uploaded program: its derived heading, the verbatim source
// and the language selected for the Aim statement.
type Entry struct {
	Heading  string
	Code     string
	Language Language
	Source   string // originating path, empty for in-memory content
}

// Collector accumulates entries in arrival order. Entries are never removed.
type Collector struct {
	entries []Entry
}

// NewCollector returns an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// AddEntry classifies content by pathOrExt, derives its heading and appends it.
// It never fails: unrecognised files fall back to the default heading.
func (c *Collector) AddEntry(content, pathOrExt string, selected Language) Entry {
	return c.add(content, pathOrExt, "", selected)
}

func (c *Collector) add(content, pathOrExt, source string, selected Language) Entry {
	detected := DetectLanguage(pathOrExt)
	if source != "" {
		// A real file is classified by its extension alone; "py" is not ".py".
		detected = DetectLanguage(filepath.Ext(source))
	}
	e := Entry{
		Heading:  DeriveHeading(content, detected),
		Code:     content,
		Language: selected,
		Source:   source,
	}
	c.entries = append(c.entries, e)
	logging.CollectorDebug("entry %d: input=%q detected=%s selected=%s heading=%q",
		len(c.entries), pathOrExt, detected, selected, e.Heading)
	return e
}

// AddFile reads path as text and adds it. On a read failure nothing is added.
func (c *Collector) AddFile(path string, selected Language) (Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		logging.CollectorError("failed to read %s: %v", path, err)
		return Entry{}, fmt.Errorf("%w: %s: %w", ErrRead, path, err)
	}
	e := c.add(decodeText(data), path, path, selected)
	logging.Collector("added %s as %q", path, e.Heading)
	return e, nil
}

// AddFiles adds paths in order, stopping at the first read failure.
// Entries added before the failure are kept.
func (c *Collector) AddFiles(paths []string, selected Language) ([]Entry, error) {
	added := make([]Entry, 0, len(paths))
	for _, p := range paths {
		e, err := c.AddFile(p, selected)
		if err != nil {
			return added, err
		}
		added = append(added, e)
	}
	return added, nil
}

// Entries returns a copy of the collected entries in insertion order.
func (c *Collector) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Len returns the number of collected entries.
func (c *Collector) Len() int { return len(c.entries) }

// Empty reports whether nothing has been collected yet.
func (c *Collector) Empty() bool { return len(c.entries) == 0 }

// decodeText drops invalid UTF-8 sequences and normalises line endings to "\n".
func decodeText(data []byte) string {
	text := strings.ToValidUTF8(string(data), "")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}
