package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labreport/internal/project"
	"labreport/internal/report"
)

var fixedTime = time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)

func testWriter() *FileWriter {
	return &FileWriter{Now: func() time.Time { return fixedTime }}
}

func composeDoc(t *testing.T, entries ...project.Entry) *report.Document {
	t.Helper()
	doc, err := report.NewComposer(report.DefaultOptions()).Compose(entries)
	require.NoError(t, err)
	return doc
}

func readParts(t *testing.T, data []byte) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	parts := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		body, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		parts[f.Name] = string(body)
	}
	return parts
}

// docParagraphs decodes word/document.xml into paragraph texts and counts
// section property blocks and next-page breaks.
type docSummary struct {
	paragraphs []string
	sectPrs    int
	nextPages  int
}

func summarize(t *testing.T, documentXML string) docSummary {
	t.Helper()
	var s docSummary
	var cur *strings.Builder
	inText := false

	dec := xml.NewDecoder(strings.NewReader(documentXML))
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err, "document.xml must be well-formed")

		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "p":
				cur = &strings.Builder{}
			case "t":
				inText = true
			case "br":
				cur.WriteString("\n")
			case "tab":
				cur.WriteString("\t")
			case "sectPr":
				s.sectPrs++
			case "type":
				for _, a := range el.Attr {
					if a.Name.Local == "val" && a.Value == "nextPage" {
						s.nextPages++
					}
				}
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "p":
				s.paragraphs = append(s.paragraphs, cur.String())
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText {
				cur.Write(el)
			}
		}
	}
	return s
}

func TestWrite_PackageParts(t *testing.T) {
	doc := composeDoc(t, project.Entry{Heading: "solveMatrix", Code: "def solveMatrix(a,b):\n\treturn a", Language: project.Python})

	var buf bytes.Buffer
	require.NoError(t, testWriter().Write(&buf, doc))

	parts := readParts(t, buf.Bytes())
	for _, name := range []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"docProps/app.xml",
		"docProps/core.xml",
		"word/_rels/document.xml.rels",
		"word/styles.xml",
		"word/document.xml",
	} {
		assert.Contains(t, parts, name)
	}
	assert.Contains(t, parts["docProps/core.xml"], "2024-05-01T10:30:00Z")
	assert.Contains(t, parts["docProps/core.xml"], "<dc:title>Final Project Report</dc:title>")
}

func TestWrite_SingleSectionContent(t *testing.T) {
	doc := composeDoc(t, project.Entry{Heading: "solveMatrix", Code: "def solveMatrix(a,b):\n\treturn a", Language: project.Python})

	var buf bytes.Buffer
	require.NoError(t, testWriter().Write(&buf, doc))
	s := summarize(t, readParts(t, buf.Bytes())["word/document.xml"])

	require.GreaterOrEqual(t, len(s.paragraphs), 11)
	want := []string{
		"Exp. No: 1",
		"SOLVEMATRIX",
		"Aim:",
		"To write a program to solveMatrix using Python.",
		"Algorithm:",
		project.Outline("", project.Python),
		"Program Code:",
		"def solveMatrix(a,b):\n\treturn a",
	}
	if diff := cmp.Diff(want, s.paragraphs[:len(want)]); diff != "" {
		t.Errorf("paragraphs mismatch (-want +got):\n%s", diff)
	}
	tail := s.paragraphs[len(s.paragraphs)-2:]
	assert.Equal(t, []string{"Result:", report.DefaultResultText}, tail)

	assert.Equal(t, 1, s.sectPrs)
	assert.Equal(t, 0, s.nextPages)
}

func TestWrite_SectionBreaksBetweenExperiments(t *testing.T) {
	doc := composeDoc(t,
		project.Entry{Heading: "one", Code: "a", Language: project.Python},
		project.Entry{Heading: "Data Analysis Task", Code: "x <- 1", Language: project.R},
		project.Entry{Heading: "Page", Code: "<b>&</b>", Language: project.HTML},
	)

	var buf bytes.Buffer
	require.NoError(t, testWriter().Write(&buf, doc))
	documentXML := readParts(t, buf.Bytes())["word/document.xml"]
	s := summarize(t, documentXML)

	assert.Equal(t, 3, s.sectPrs, "one section per experiment")
	assert.Equal(t, 2, s.nextPages, "every experiment after the first starts a new page")

	var numbers []string
	for _, p := range s.paragraphs {
		if strings.HasPrefix(p, "Exp. No: ") {
			numbers = append(numbers, p)
		}
	}
	assert.Equal(t, []string{"Exp. No: 1", "Exp. No: 2", "Exp. No: 3"}, numbers)

	assert.Contains(t, s.paragraphs, "<b>&</b>", "code text is escaped and round-trips")
	assert.Contains(t, documentXML, "&lt;b&gt;&amp;&lt;/b&gt;")
}

func TestWrite_Formatting(t *testing.T) {
	doc := composeDoc(t, project.Entry{Heading: "fmt", Code: "x", Language: project.Python})

	var buf bytes.Buffer
	require.NoError(t, testWriter().Write(&buf, doc))
	documentXML := readParts(t, buf.Bytes())["word/document.xml"]

	assert.Contains(t, documentXML, `<w:jc w:val="center"/>`)
	assert.Contains(t, documentXML, `<w:sz w:val="28"/>`, "14pt title")
	assert.Contains(t, documentXML, `<w:sz w:val="24"/>`, "12pt labels")
	assert.Contains(t, documentXML, `<w:sz w:val="22"/>`, "11pt body")
	assert.Contains(t, documentXML, `<w:spacing w:before="2400" w:after="120"/>`, "Result pushed down by 120pt")
	assert.Contains(t, documentXML, `<w:color w:val="000000"/>`)
	assert.Equal(t, report.DefaultPaddingLines, strings.Count(documentXML, "<w:p/>"))
}

func TestWrite_PageGeometry(t *testing.T) {
	doc := composeDoc(t,
		project.Entry{Heading: "one", Code: "x", Language: project.Python},
		project.Entry{Heading: "two", Code: "y", Language: project.R},
	)

	var buf bytes.Buffer
	require.NoError(t, testWriter().Write(&buf, doc))
	documentXML := readParts(t, buf.Bytes())["word/document.xml"]

	// Letter, 1in top/bottom, 1.25in sides, on every section.
	assert.Equal(t, 2, strings.Count(documentXML, `<w:pgSz w:w="12240" w:h="15840"/>`))
	assert.Equal(t, 2, strings.Count(documentXML,
		`<w:pgMar w:top="1440" w:right="1800" w:bottom="1440" w:left="1800" w:header="720" w:footer="720" w:gutter="0"/>`))
}

func TestWriteDocument_SavesFile(t *testing.T) {
	doc := composeDoc(t, project.Entry{Heading: "save", Code: "x", Language: project.Python})
	path := filepath.Join(t.TempDir(), "out.docx")

	require.NoError(t, testWriter().WriteDocument(path, doc))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, readParts(t, data), "word/document.xml")
}

func TestWriteDocument_Failure(t *testing.T) {
	doc := composeDoc(t, project.Entry{Heading: "fail", Code: "x", Language: project.Python})
	path := filepath.Join(t.TempDir(), "no-such-dir", "out.docx")

	err := testWriter().WriteDocument(path, doc)
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestWrite_Deterministic(t *testing.T) {
	doc := composeDoc(t, project.Entry{Heading: "same", Code: "x", Language: project.R})

	var a, b bytes.Buffer
	require.NoError(t, testWriter().Write(&a, doc))
	require.NoError(t, testWriter().Write(&b, doc))
	assert.Equal(t, a.Bytes(), b.Bytes())
}
