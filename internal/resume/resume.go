// Package resume extracts plain text from resume files.
package resume

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

const (
	MimeText = "text/plain"
	MimeHTML = "text/html"
	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

	// Stdin is the path that reads the resume from standard input.
	Stdin = "-"
)

var extensions = map[string]string{
	".txt":      MimeText,
	".md":       MimeText,
	".markdown": MimeText,
	".html":     MimeHTML,
	".htm":      MimeHTML,
	".pdf":      MimePDF,
	".docx":     MimeDOCX,
}

// Load reads the resume at path, or from stdin when path is "-", and returns its text.
func Load(path string, stdin io.Reader) (string, error) {
	var (
		data []byte
		err  error
	)

	if path == Stdin {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read resume: %w", err)
	}

	return Extract(DetectMime(path, data), data)
}

// DetectMime trusts known file extensions and sniffs the content otherwise.
func DetectMime(path string, data []byte) string {
	if mime, ok := extensions[strings.ToLower(filepath.Ext(path))]; ok {
		return mime
	}

	detected := mimetype.Detect(data)
	for _, known := range []string{MimeText, MimeHTML, MimePDF, MimeDOCX} {
		if detected.Is(known) {
			return known
		}
	}
	return detected.String()
}

// Extract converts the document bytes into normalized plain text.
func Extract(mime string, data []byte) (string, error) {
	var (
		text string
		err  error
	)

	switch mime {
	case MimeText:
		text = string(data)
	case MimeHTML:
		text, err = extractHTMLText(bytes.NewReader(data))
	case MimePDF:
		text, err = extractPDFText(data)
	case MimeDOCX:
		text, err = extractDocxText(data)
	default:
		return "", fmt.Errorf("unsupported file type: %s", mime)
	}
	if err != nil {
		return "", err
	}

	return normalize(text), nil
}

func extractHTMLText(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("failed to parse html: %w", err)
	}

	doc.Find("script, style, noscript").Remove()
	doc.Find("p, li, h1, h2, h3, h4, h5, h6, div, tr, br").AfterHtml("\n")

	return doc.Find("body").Text(), nil
}

func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to read pdf page %d: %w", i, err)
		}
		b.WriteString(text)
		b.WriteString("\n")
	}
	return b.String(), nil
}

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	// The editable content is the raw document XML; paragraphs become lines.
	content := strings.ReplaceAll(doc.Editable().GetContent(), "</w:p>", "</w:p>\n")

	markup, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("failed to read docx content: %w", err)
	}
	return markup.Text(), nil
}

// normalize trims every line, collapses inner whitespace and keeps at most
// one blank line between blocks.
func normalize(text string) string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	out := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			if !blank && len(out) > 0 {
				out = append(out, "")
			}
			blank = true
			continue
		}
		blank = false
		out = append(out, line)
	}

	return strings.TrimSpace(strings.Join(out, "\n"))
}
