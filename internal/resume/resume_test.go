package resume

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.md")
	require.NoError(t, os.WriteFile(path, []byte("  Jane   Doe \r\n\r\n\r\nSkills:  Go,\tDocker\n"), 0o600))

	text, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\n\nSkills: Go, Docker", text)
}

func TestLoadStdin(t *testing.T) {
	text, err := Load(Stdin, strings.NewReader("Python developer\n"))
	require.NoError(t, err)
	assert.Equal(t, "Python developer", text)
}

func TestExtractHTML(t *testing.T) {
	page := `<html><head><title>CV</title><style>p{color:red}</style></head>
<body><h1>Jane Doe</h1><script>alert(1)</script><p>Backend  intern</p><ul><li>Go</li><li>SQL</li></ul></body></html>`

	text, err := Extract(MimeHTML, []byte(page))
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nBackend intern\nGo\nSQL", text)
}

func TestExtractDocx(t *testing.T) {
	data := buildDocx(t, `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`+
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`+
		`<w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>`+
		`<w:p><w:r><w:t>Skills: Go, </w:t></w:r><w:r><w:t>Kubernetes</w:t></w:r></w:p>`+
		`</w:body></w:document>`)

	path := filepath.Join(t.TempDir(), "resume.docx")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	text, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nSkills: Go, Kubernetes", text)
}

func TestDetectMime(t *testing.T) {
	t.Parallel()

	assert.Equal(t, MimePDF, DetectMime("cv.PDF", nil))
	assert.Equal(t, MimeText, DetectMime("-", []byte("plain resume text")))
	assert.Equal(t, MimeHTML, DetectMime("cv", []byte("<!DOCTYPE html><html><body>x</body></html>")))
	assert.Equal(t, MimePDF, DetectMime("upload", []byte("%PDF-1.4\n%µ¶\n")))
}

func TestExtractUnsupported(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

	_, err := Extract(DetectMime("photo", png), png)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file type: image/png")
}

func buildDocx(t *testing.T, document string) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	files := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"></Types>`,
		"word/document.xml":   document,
		"word/_rels/document.xml.rels": `<?xml version="1.0" encoding="UTF-8"?>` +
			`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`,
	}
	for name, content := range files {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	return buf.Bytes()
}
