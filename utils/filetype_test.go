package utils

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildOOXML assembles a minimal Office Open XML container: a zip whose
// first entry is [Content_Types].xml followed by the format's marker
// directory, which is what content sniffing keys on.
func buildOOXML(t *testing.T, markerFile string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, name := range []string{"[Content_Types].xml", "_rels/.rels", markerFile} {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte("<xml/>"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestValidFileExtension(t *testing.T) {
	assert.True(t, ValidFileExtension("report.docx"))
	assert.True(t, ValidFileExtension("Deck.PPTX"))
	assert.True(t, ValidFileExtension("numbers.xlsx"))
	assert.False(t, ValidFileExtension("malware.exe"))
	assert.False(t, ValidFileExtension("notes.txt"))
	assert.False(t, ValidFileExtension("archive.docx.zip"))
	assert.False(t, ValidFileExtension("noextension"))
}

func TestValidFileContentOffice(t *testing.T) {
	tests := []struct {
		marker string
		want   string
	}{
		{"word/document.xml", "application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
		{"xl/workbook.xml", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"},
		{"ppt/presentation.xml", "application/vnd.openxmlformats-officedocument.presentationml.presentation"},
	}
	for _, tc := range tests {
		detected, ok := ValidFileContent(buildOOXML(t, tc.marker))
		assert.True(t, ok, "expected %s to be accepted", tc.marker)
		assert.Equal(t, tc.want, detected)
	}
}

func TestValidFileContentRejectsNonOffice(t *testing.T) {
	detected, ok := ValidFileContent([]byte("just some plain text pretending to be a docx"))
	assert.False(t, ok)
	assert.NotEmpty(t, detected)

	// A plain zip without OOXML structure is not an office document.
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.Create("readme.txt")
	require.NoError(t, err)
	_, err = f.Write([]byte("hello"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	_, ok = ValidFileContent(buf.Bytes())
	assert.False(t, ok)
}
