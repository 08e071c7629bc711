package clips

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDocument() Document {
	return Document{
		ContentType:  ContentClientReport,
		Language:     LangEnglish,
		ResearchMode: ResearchEnhanced,
		Branding:     Branding{AgencyName: "Acme Media", ClientName: "Globex"},
		Date:         time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		Result: Result{
			Text: "## Overview\nThe **key** point, see [docs](https://x.test/docs).",
			Sources: []Citation{
				{Title: "YouTube: Demo Video", URL: "https://youtu.be/abc123XYZ9"},
				{Title: "Press", URL: "https://news.test/a"},
			},
		},
	}
}

func TestRenderTXT(t *testing.T) {
	got := string(RenderTXT(testDocument()))
	want := "GENERATED BY CLIPVERB\n" +
		"Type: Client Report\n" +
		"Mode: ENHANCED\n" +
		"Language: English\n" +
		"Date: 2026-03-14 09:30:00\n" +
		"Agency: Acme Media\n" +
		"Prepared For: Globex\n" +
		"\n-------------------\n\n" +
		"## Overview\nThe **key** point, see [docs](https://x.test/docs)." +
		"\n\n-------------------\nSOURCES ANALYZED:\n" +
		"- YouTube: Demo Video: https://youtu.be/abc123XYZ9\n" +
		"- Press: https://news.test/a\n"
	assert.Equal(t, want, got)
}

func TestRenderTXTMinimal(t *testing.T) {
	doc := testDocument()
	doc.Branding = Branding{}
	doc.Result.Sources = nil
	got := string(RenderTXT(doc))
	assert.NotContains(t, got, "Agency:")
	assert.NotContains(t, got, "Prepared For:")
	assert.NotContains(t, got, "SOURCES ANALYZED")
}

func TestRenderPDF(t *testing.T) {
	doc := testDocument()
	doc.Result.Text = strings.Repeat("A long paragraph of generated text. ", 400)

	data, err := RenderPDF(doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	assert.Contains(t, string(data[len(data)-16:]), "%%EOF")
}

func TestLoadPDFFont(t *testing.T) {
	dir := t.TempDir()
	notFont := filepath.Join(dir, "font.ttf")
	require.NoError(t, os.WriteFile(notFont, []byte("definitely not a font file"), 0o644))

	assert.Nil(t, loadPDFFont(""))
	assert.Nil(t, loadPDFFont(filepath.Join(dir, "missing.ttf")))
	assert.Nil(t, loadPDFFont(notFont))
}

func TestRenderPDFWithoutFontFallsBack(t *testing.T) {
	doc := testDocument()
	doc.Language = LangTamil
	doc.Result.Text = "தமிழ் உள்ளடக்கம்"

	data, err := renderPDF(doc, nil)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	assert.NotContains(t, string(data), "/CIDFontType2")
}

func TestRenderPDFEmbedsUTF8Font(t *testing.T) {
	const dejavu = "/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf"
	font := loadPDFFont(dejavu)
	if font == nil {
		t.Skipf("%s not available", dejavu)
	}
	doc := testDocument()
	doc.Language = LangHindi
	doc.Branding.AgencyName = "Ακμή"
	doc.Result.Text = "Привет, это тест. हिंदी पाठ"

	data, err := renderPDF(doc, font)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	assert.Contains(t, string(data), "/CIDFontType2")
	assert.Contains(t, string(data), "/FontFile2")
}

func TestLogoImageType(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n0000")
	jpg := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0, 0, 0, 0}
	assert.Equal(t, "PNG", logoImageType(png))
	assert.Equal(t, "JPG", logoImageType(jpg))
	assert.Equal(t, "", logoImageType([]byte("GIF89a")))
	assert.Equal(t, "", logoImageType(nil))
}

func TestExportFileName(t *testing.T) {
	name := ExportFileName(ContentTwitterThread, "pdf")
	assert.Regexp(t, regexp.MustCompile(`^ClipVerb_X__Twitter__Thread_[0-9a-f]{8}\.pdf$`), name)
	assert.NotEqual(t, name, ExportFileName(ContentTwitterThread, "pdf"))
}

func TestExportWritesFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	path, err := Export(dir, "TXT", testDocument())
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path))
	assert.True(t, strings.HasSuffix(path, ".txt"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("GENERATED BY CLIPVERB")))

	_, err = Export(dir, "docx", testDocument())
	assert.ErrorIs(t, err, ErrConfiguration)
}
