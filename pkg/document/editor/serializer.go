package editor

import (
	"bytes"
	"strings"

	"github.com/flashresume/flashresume/pkg/document"
)

// Preamble, BoundaryMarker and the heading prefix form the dialect shared
// with the parser and with anything that splices saved content into a
// theme. BoundaryMarker must not change without versioning.
const (
	Preamble       = `#import "src/resume.typ": *`
	BoundaryMarker = "#show: resume.with(author-info)"
	HeadingPrefix  = "= "
)

const banner = "// =============================================================================="

// Serialize renders blocks as canonical markup: preamble, personal
// information, the theme boundary and then every non-empty section in
// schema order with its heading.
func Serialize(blocks document.Blocks, schema *document.Schema) []byte {
	if schema == nil {
		schema = document.DefaultSchema()
	}

	var buf bytes.Buffer

	_, _ = buf.WriteString(Preamble)
	_, _ = buf.WriteString("\n\n")

	for _, block := range blocks.InSection(document.SectionPersonalInfo) {
		writeBody(&buf, block.Body)
	}

	writeBanner(&buf, "APPLY THEME WITH DATA")
	_, _ = buf.WriteString(BoundaryMarker)
	_, _ = buf.WriteString("\n\n")
	writeBanner(&buf, "RESUME CONTENT")
	_ = buf.WriteByte('\n')

	for _, section := range schema.Sections() {
		if section.ID == document.SectionPersonalInfo {
			continue
		}

		sectionBlocks := blocks.InSection(section.ID)
		if len(sectionBlocks) == 0 {
			continue
		}

		_, _ = buf.WriteString(HeadingPrefix)
		_, _ = buf.WriteString(section.Title)
		_, _ = buf.WriteString("\n\n")

		for _, block := range sectionBlocks {
			writeBody(&buf, block.Body)
		}
	}

	return buf.Bytes()
}

func writeBanner(buf *bytes.Buffer, title string) {
	_, _ = buf.WriteString(banner)
	_ = buf.WriteByte('\n')
	_, _ = buf.WriteString("// ")
	_, _ = buf.WriteString(title)
	_ = buf.WriteByte('\n')
	_, _ = buf.WriteString(banner)
	_ = buf.WriteByte('\n')
}

func writeBody(buf *bytes.Buffer, body string) {
	body = trimBlankLines(body)
	if body == "" {
		return
	}
	_, _ = buf.WriteString(body)
	_, _ = buf.WriteString("\n\n")
}

// trimBlankLines drops whitespace-only lines around body and keeps the
// indentation of the remaining ones.
func trimBlankLines(body string) string {
	lines := strings.Split(strings.ReplaceAll(body, "\r\n", "\n"), "\n")

	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}

	return strings.Join(lines[start:end], "\n")
}
