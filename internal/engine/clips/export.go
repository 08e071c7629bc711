package clips

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"

	"github.com/anatolykoptev/go_clipverb/internal/engine"
)

// Export formats.
const (
	FormatTXT = "txt"
	FormatPDF = "pdf"
)

// Document is a finished piece plus the details printed in its header.
type Document struct {
	ContentType  ContentType
	Language     Language
	ResearchMode ResearchMode
	Branding     Branding
	Date         time.Time
	Result       Result
}

const rule = "-------------------"

// RenderTXT lays the document out as a plain-text report.
func RenderTXT(doc Document) []byte {
	var sb strings.Builder
	sb.WriteString("GENERATED BY CLIPVERB\n")
	fmt.Fprintf(&sb, "Type: %s\n", doc.ContentType)
	fmt.Fprintf(&sb, "Mode: %s\n", strings.ToUpper(string(doc.ResearchMode)))
	fmt.Fprintf(&sb, "Language: %s\n", doc.Language)
	fmt.Fprintf(&sb, "Date: %s\n", doc.Date.Format("2006-01-02 15:04:05"))
	if doc.Branding.AgencyName != "" {
		fmt.Fprintf(&sb, "Agency: %s\n", doc.Branding.AgencyName)
	}
	if doc.Branding.ClientName != "" {
		fmt.Fprintf(&sb, "Prepared For: %s\n", doc.Branding.ClientName)
	}
	sb.WriteString("\n" + rule + "\n\n")
	sb.WriteString(doc.Result.Text)

	if len(doc.Result.Sources) > 0 {
		sb.WriteString("\n\n" + rule + "\nSOURCES ANALYZED:\n")
		for _, s := range doc.Result.Sources {
			fmt.Fprintf(&sb, "- %s: %s\n", s.Title, s.URL)
		}
	}
	return []byte(sb.String())
}

// logoImageType maps a logo's sniffed content type to an fpdf image type.
func logoImageType(logo []byte) string {
	switch http.DetectContentType(logo) {
	case "image/png":
		return "PNG"
	case "image/jpeg":
		return "JPG"
	default:
		return ""
	}
}

// bodyFont is the family name the optional UTF-8 font is registered under.
const bodyFont = "clipverb-body"

// RenderPDF lays the document out as an A4 report. With engine.Cfg.PDFFontPath
// set, text uses that UTF-8 font; otherwise core fonts translate to cp1252
// and unsupported runes degrade.
func RenderPDF(doc Document) ([]byte, error) {
	return renderPDF(doc, loadPDFFont(engine.Cfg.PDFFontPath))
}

// loadPDFFont reads a TrueType font, or returns nil when path is empty or
// the file is not usable.
func loadPDFFont(path string) []byte {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("clips: pdf font unavailable, using core fonts", slog.String("path", path), slog.Any("error", err))
		return nil
	}
	// fpdf writes parse failures to stdout, which is the MCP transport.
	if !isTrueType(data) {
		slog.Warn("clips: pdf font is not TrueType, using core fonts", slog.String("path", path))
		return nil
	}
	return data
}

func isTrueType(b []byte) bool {
	return len(b) > 12 && (bytes.HasPrefix(b, []byte{0, 1, 0, 0}) || bytes.HasPrefix(b, []byte("true")))
}

func renderPDF(doc Document, font []byte) ([]byte, error) {
	const (
		margin   = 20.0
		logoSize = 30.0
	)
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.AliasNbPages("")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	setFont := pdf.SetFont
	if font != nil {
		pdf.AddUTF8FontFromBytes(bodyFont, "", font)
		pdf.SetFont(bodyFont, "", 11)
		if pdf.Err() {
			slog.Warn("clips: pdf font rejected, using core fonts", slog.Any("error", pdf.Error()))
			return renderPDF(doc, nil)
		}
		tr = func(s string) string { return s }
		setFont = func(_, _ string, size float64) { pdf.SetFont(bodyFont, "", size) }
	}
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(150, 150, 150)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()
	pageW, _ := pdf.GetPageSize()

	// Brand header.
	b := doc.Branding
	y := margin
	setFont("Helvetica", "B", 22)
	pdf.SetTextColor(50, 50, 50)
	if tp := logoImageType(b.Logo); tp != "" {
		opts := fpdf.ImageOptions{ImageType: tp}
		pdf.RegisterImageOptionsReader("logo", opts, bytes.NewReader(b.Logo))
		pdf.ImageOptions("logo", margin, y, logoSize, logoSize, false, opts, 0, "")
		if b.AgencyName != "" {
			pdf.Text(margin+logoSize+10, y+12, tr(strings.ToUpper(b.AgencyName)))
		}
		y += 45
	} else {
		title := "ClipVerb Report"
		if b.AgencyName != "" {
			title = strings.ToUpper(b.AgencyName)
		}
		pdf.Text(margin, y, tr(title))
		y += 20
	}

	if b.ClientName != "" {
		setFont("Helvetica", "", 12)
		pdf.SetTextColor(100, 100, 100)
		pdf.Text(margin, y, tr("PREPARED FOR: "+strings.ToUpper(b.ClientName)))
		y += 8
	}

	setFont("Helvetica", "", 10)
	pdf.SetTextColor(150, 150, 150)
	pdf.Text(margin, y, tr(fmt.Sprintf("%s | %s | %s", doc.ContentType, doc.Language, doc.Date.Format("2006-01-02"))))
	y += 15

	pdf.SetDrawColor(200, 200, 200)
	pdf.Line(margin, y, pageW-margin, y)
	y += 10

	// Body.
	pdf.SetXY(margin, y)
	setFont("Times", "", 11)
	pdf.SetTextColor(0, 0, 0)
	pdf.MultiCell(0, 6, tr(engine.StripMarkdown(doc.Result.Text)), "", "L", false)

	if len(doc.Result.Sources) > 0 {
		pdf.Ln(10)
		setFont("Helvetica", "B", 10)
		pdf.CellFormat(0, 6, "SOURCES ANALYZED:", "", 1, "L", false, 0, "")
		setFont("Helvetica", "", 8)
		pdf.SetTextColor(100, 100, 100)
		for _, s := range doc.Result.Sources {
			pdf.MultiCell(0, 4, tr(fmt.Sprintf("- %s (%s)", s.Title, s.URL)), "", "L", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportFileName builds ClipVerb_<type>_<id>.<ext> with a filesystem-safe type.
func ExportFileName(ct ContentType, ext string) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			return r
		default:
			return '_'
		}
	}, string(ct))
	return fmt.Sprintf("ClipVerb_%s_%s.%s", safe, uuid.NewString()[:8], ext)
}

// Export renders doc in format and writes it under dir. Returns the path.
func Export(dir, format string, doc Document) (string, error) {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(format) {
	case FormatTXT:
		data = RenderTXT(doc)
	case FormatPDF:
		data, err = RenderPDF(doc)
		if err != nil {
			return "", err
		}
	default:
		return "", fmt.Errorf("%w: unknown export format %q", ErrConfiguration, format)
	}

	path, err := WriteAsset(dir, ExportFileName(doc.ContentType, strings.ToLower(format)), data)
	if err != nil {
		return "", err
	}
	engine.IncrExports()
	return path, nil
}

// WriteAsset writes data to dir/name, creating dir if needed.
func WriteAsset(dir, name string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	return path, nil
}
