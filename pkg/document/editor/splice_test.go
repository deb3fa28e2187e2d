package editor

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitAtBoundary(t *testing.T) {
	t.Run("Marker", func(t *testing.T) {
		header, content, ok := SplitAtBoundary([]byte("#import \"x\"\n  #show: resume.with(author-info)  \n= Projects\n"))
		require.True(t, ok)
		assert.Equal(t, "#import \"x\"\n  #show: resume.with(author-info)  \n", string(header))
		assert.Equal(t, "= Projects\n", string(content))
	})

	t.Run("MarkerOnLastLine", func(t *testing.T) {
		header, content, ok := SplitAtBoundary([]byte("a\n" + BoundaryMarker))
		require.True(t, ok)
		assert.Equal(t, "a\n"+BoundaryMarker, string(header))
		assert.Empty(t, content)
	})

	t.Run("NoMarker", func(t *testing.T) {
		header, content, ok := SplitAtBoundary([]byte("#show: other\n= Skills\n"))
		assert.False(t, ok)
		assert.Nil(t, header)
		assert.Equal(t, "#show: other\n= Skills\n", string(content))
	})

	t.Run("CRLF", func(t *testing.T) {
		header, content, ok := SplitAtBoundary([]byte("a\r\n" + BoundaryMarker + "\r\nb\r\n"))
		require.True(t, ok)
		assert.Equal(t, "a\n"+BoundaryMarker+"\n", string(header))
		assert.Equal(t, "b\n", string(content))
	})
}

func TestSplice(t *testing.T) {
	template := []byte("#import \"src/modern.typ\": *\n#let author-info = (name: \"Theme\")\n" + BoundaryMarker + "\n= Sample\n#item[sample]\n")

	t.Run("SerializedDocument", func(t *testing.T) {
		doc := Serialize(parseSequential(t, "#item[\n  - mine\n]\n"), nil)

		result, err := Splice(template, doc)
		require.NoError(t, err)

		_, docContent, _ := SplitAtBoundary(doc)
		assert.Equal(t, "#import \"src/modern.typ\": *\n#let author-info = (name: \"Theme\")\n"+BoundaryMarker+"\n"+string(docContent), string(result))
		assert.NotContains(t, string(result), "#item[sample]")
	})

	t.Run("ContentOnly", func(t *testing.T) {
		result, err := Splice(template, []byte("= Skills\n#skill(category: \"Go\")\n"))
		require.NoError(t, err)
		assert.Equal(t, "#import \"src/modern.typ\": *\n#let author-info = (name: \"Theme\")\n"+BoundaryMarker+"\n= Skills\n#skill(category: \"Go\")\n", string(result))
	})

	t.Run("TemplateMarkerOnLastLine", func(t *testing.T) {
		result, err := Splice([]byte(BoundaryMarker), []byte("= Skills\n"))
		require.NoError(t, err)
		assert.Equal(t, BoundaryMarker+"\n= Skills\n", string(result))
	})

	t.Run("TemplateWithoutMarker", func(t *testing.T) {
		_, err := Splice([]byte("#import \"x\"\n"), []byte("= Skills\n"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrBoundaryNotFound))
	})
}
