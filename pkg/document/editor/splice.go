package editor

import (
	"bytes"

	"github.com/pkg/errors"
)

var ErrBoundaryNotFound = errors.New("boundary marker not found")

// SplitAtBoundary splits text at the first line equal to [BoundaryMarker],
// ignoring surrounding whitespace. header ends with the marker line
// including its newline. ok is false when there is no marker.
func SplitAtBoundary(text []byte) (header, content []byte, ok bool) {
	text = bytes.ReplaceAll(text, []byte("\r\n"), []byte("\n"))

	offset := 0
	for offset < len(text) {
		end := bytes.IndexByte(text[offset:], '\n')
		next := len(text)
		if end >= 0 {
			next = offset + end + 1
		}

		line := bytes.TrimSpace(text[offset:next])
		if string(line) == BoundaryMarker {
			return text[:next], text[next:], true
		}

		offset = next
	}

	return nil, text, false
}

// Splice replaces everything after the boundary in template with the user
// content of doc. When doc carries no boundary it is used whole.
func Splice(template, doc []byte) ([]byte, error) {
	header, _, ok := SplitAtBoundary(template)
	if !ok {
		return nil, errors.WithStack(ErrBoundaryNotFound)
	}

	_, content, _ := SplitAtBoundary(doc)

	var buf bytes.Buffer
	_, _ = buf.Write(header)
	if len(header) > 0 && header[len(header)-1] != '\n' {
		_ = buf.WriteByte('\n')
	}
	_, _ = buf.Write(content)

	return buf.Bytes(), nil
}
