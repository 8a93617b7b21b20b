// Package docx writes a report.Document as a WordprocessingML (.docx) package.
//
// Only the parts Word needs to open the file are produced: content types,
// package relationships, the main document, a style sheet and the core/app
// property parts. Each report section becomes a Word section; every section
// after the first starts on a new page.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"labreport/internal/logging"
	"labreport/internal/report"
)

const (
	nsMain = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsRel  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"

	// Letter page with Word's default margins, in twentieths of a point.
	pageWidth    = 12240
	pageHeight   = 15840
	marginTopBot = 1440
	marginSides  = 1800
)

// FileWriter saves documents to disk. It implements report.Writer.
type FileWriter struct {
	// Now stamps the package; time.Now when nil.
	Now func() time.Time
}

// NewFileWriter returns a writer stamping documents with the current time.
func NewFileWriter() *FileWriter {
	return &FileWriter{Now: time.Now}
}

// WriteDocument renders doc in memory and then writes it to path, so a
// render failure never leaves a partial file behind.
func (fw *FileWriter) WriteDocument(path string, doc *report.Document) error {
	var buf bytes.Buffer
	if err := fw.Write(&buf, doc); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	logging.Writer("wrote %s (%d bytes)", path, buf.Len())
	return nil
}

// Write emits the .docx package for doc to w.
func (fw *FileWriter) Write(w io.Writer, doc *report.Document) error {
	now := time.Now
	if fw.Now != nil {
		now = fw.Now
	}
	stamp := now().UTC().Truncate(time.Second)

	parts := []struct {
		name string
		body string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", packageRelsXML},
		{"docProps/app.xml", appXML},
		{"docProps/core.xml", coreXML(doc.Title, stamp)},
		{"word/_rels/document.xml.rels", documentRelsXML},
		{"word/styles.xml", stylesXML},
		{"word/document.xml", documentXML(doc)},
	}

	zw := zip.NewWriter(w)
	for _, p := range parts {
		fh := &zip.FileHeader{Name: p.name, Method: zip.Deflate, Modified: stamp}
		f, err := zw.CreateHeader(fh)
		if err != nil {
			return fmt.Errorf("failed to add %s: %w", p.name, err)
		}
		if _, err := io.WriteString(f, p.body); err != nil {
			return fmt.Errorf("failed to write %s: %w", p.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finish package: %w", err)
	}
	return nil
}

// documentXML renders the main document part.
func documentXML(doc *report.Document) string {
	var b strings.Builder
	b.WriteString(xml.Header)
	fmt.Fprintf(&b, `<w:document xmlns:w="%s" xmlns:r="%s"><w:body>`, nsMain, nsRel)

	last := len(doc.Sections) - 1
	for i, s := range doc.Sections {
		for j, p := range s.Paragraphs {
			// A section ends with a paragraph carrying its properties,
			// except the final one, whose properties close the body.
			closing := ""
			if i < last && j == len(s.Paragraphs)-1 {
				closing = sectionProps(i)
			}
			writeParagraph(&b, p, closing)
		}
		if i < last && len(s.Paragraphs) == 0 {
			writeParagraph(&b, report.Paragraph{}, sectionProps(i))
		}
	}
	b.WriteString(sectionProps(last))
	b.WriteString(`</w:body></w:document>`)
	return b.String()
}

// sectionProps describes section i. Sections after the first open on a new page.
func sectionProps(i int) string {
	var b strings.Builder
	b.WriteString(`<w:sectPr>`)
	if i > 0 {
		b.WriteString(`<w:type w:val="nextPage"/>`)
	}
	fmt.Fprintf(&b, `<w:pgSz w:w="%d" w:h="%d"/>`, pageWidth, pageHeight)
	fmt.Fprintf(&b, `<w:pgMar w:top="%d" w:right="%d" w:bottom="%d" w:left="%d" w:header="720" w:footer="720" w:gutter="0"/>`,
		marginTopBot, marginSides, marginTopBot, marginSides)
	b.WriteString(`</w:sectPr>`)
	return b.String()
}

func writeParagraph(b *strings.Builder, p report.Paragraph, sectPr string) {
	pPr := paragraphProps(p) + sectPr
	if pPr == "" && p.Text == "" {
		b.WriteString(`<w:p/>`)
		return
	}

	b.WriteString(`<w:p>`)
	if pPr != "" {
		b.WriteString(`<w:pPr>`)
		b.WriteString(pPr)
		b.WriteString(`</w:pPr>`)
	}
	if p.Text != "" {
		b.WriteString(`<w:r>`)
		if rPr := runProps(p); rPr != "" {
			b.WriteString(`<w:rPr>`)
			b.WriteString(rPr)
			b.WriteString(`</w:rPr>`)
		}
		writeRunText(b, p.Text)
		b.WriteString(`</w:r>`)
	}
	b.WriteString(`</w:p>`)
}

// paragraphProps renders spacing and justification, in schema order.
func paragraphProps(p report.Paragraph) string {
	var b strings.Builder
	if p.SpaceBeforePt > 0 || p.SpaceAfterPt > 0 {
		b.WriteString(`<w:spacing`)
		if p.SpaceBeforePt > 0 {
			fmt.Fprintf(&b, ` w:before="%d"`, twips(p.SpaceBeforePt))
		}
		if p.SpaceAfterPt > 0 {
			fmt.Fprintf(&b, ` w:after="%d"`, twips(p.SpaceAfterPt))
		}
		b.WriteString(`/>`)
	}
	if p.Align == report.AlignCenter {
		b.WriteString(`<w:jc w:val="center"/>`)
	}
	return b.String()
}

// runProps renders bold, colour and size, in schema order.
func runProps(p report.Paragraph) string {
	var b strings.Builder
	if p.Bold {
		b.WriteString(`<w:b/><w:bCs/>`)
	}
	if p.Color != "" {
		fmt.Fprintf(&b, `<w:color w:val="%s"/>`, p.Color)
	}
	if p.SizePt > 0 {
		hp := halfPoints(p.SizePt)
		fmt.Fprintf(&b, `<w:sz w:val="%d"/><w:szCs w:val="%d"/>`, hp, hp)
	}
	return b.String()
}

// writeRunText emits text with "\n" as line breaks and "\t" as tabs.
func writeRunText(b *strings.Builder, text string) {
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			b.WriteString(`<w:br/>`)
		}
		for j, chunk := range strings.Split(line, "\t") {
			if j > 0 {
				b.WriteString(`<w:tab/>`)
			}
			if chunk == "" {
				continue
			}
			b.WriteString(`<w:t xml:space="preserve">`)
			_ = xml.EscapeText(b, []byte(chunk))
			b.WriteString(`</w:t>`)
		}
	}
}

func twips(pt float64) int      { return int(math.Round(pt * 20)) }
func halfPoints(pt float64) int { return int(math.Round(pt * 2)) }

func coreXML(title string, created time.Time) string {
	var esc strings.Builder
	_ = xml.EscapeText(&esc, []byte(title))
	ts := created.Format(time.RFC3339)
	return xml.Header +
		`<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties"` +
		` xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/"` +
		` xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">` +
		`<dc:title>` + esc.String() + `</dc:title>` +
		`<dc:creator>labreport</dc:creator>` +
		`<dcterms:created xsi:type="dcterms:W3CDTF">` + ts + `</dcterms:created>` +
		`<dcterms:modified xsi:type="dcterms:W3CDTF">` + ts + `</dcterms:modified>` +
		`</cp:coreProperties>`
}

const contentTypesXML = xml.Header +
	`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
	`<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>` +
	`<Override PartName="/docProps/core.xml" ContentType="application/vnd.openxmlformats-package.core-properties+xml"/>` +
	`<Override PartName="/docProps/app.xml" ContentType="application/vnd.openxmlformats-officedocument.extended-properties+xml"/>` +
	`</Types>`

const packageRelsXML = xml.Header +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties" Target="docProps/core.xml"/>` +
	`<Relationship Id="rId3" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties" Target="docProps/app.xml"/>` +
	`</Relationships>`

const documentRelsXML = xml.Header +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>` +
	`</Relationships>`

const appXML = xml.Header +
	`<Properties xmlns="http://schemas.openxmlformats.org/officeDocument/2006/extended-properties">` +
	`<Application>labreport</Application>` +
	`</Properties>`

const stylesXML = xml.Header +
	`<w:styles xmlns:w="` + nsMain + `">` +
	`<w:docDefaults>` +
	`<w:rPrDefault><w:rPr><w:rFonts w:ascii="Calibri" w:hAnsi="Calibri" w:eastAsia="Calibri" w:cs="Calibri"/>` +
	`<w:sz w:val="22"/><w:szCs w:val="22"/></w:rPr></w:rPrDefault>` +
	`<w:pPrDefault><w:pPr><w:spacing w:after="200" w:line="276" w:lineRule="auto"/></w:pPr></w:pPrDefault>` +
	`</w:docDefaults>` +
	`<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/><w:qFormat/></w:style>` +
	`</w:styles>`
