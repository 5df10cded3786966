package pdfform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Minimal hand-assembled documents with a correct xref table, one text line
// per page. Good enough for both reader libraries without shipping binary
// fixtures.

func escapeTextLiteral(text string) string {
	escaped := strings.ReplaceAll(text, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, "(", `\(`)
	escaped = strings.ReplaceAll(escaped, ")", `\)`)
	return escaped
}

func contentStream(text string) string {
	return "BT\n/F1 12 Tf\n72 720 Td\n(" + escapeTextLiteral(text) + ") Tj\nET"
}

func writeXref(b *strings.Builder, offsets []int) {
	xrefOffset := b.Len()
	fmt.Fprintf(b, "xref\n0 %d\n", len(offsets))
	b.WriteString("0000000000 65535 f \n")
	for _, off := range offsets[1:] {
		fmt.Fprintf(b, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(b, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets), xrefOffset)
}

// buildTextPDF assembles a document with one page per entry of pageTexts.
func buildTextPDF(pageTexts ...string) []byte {
	n := len(pageTexts)
	fontObj := 3 + 2*n

	var b strings.Builder
	b.WriteString("%PDF-1.4\n")
	offsets := make([]int, fontObj+1)

	offsets[1] = b.Len()
	b.WriteString("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")

	kids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		kids = append(kids, fmt.Sprintf("%d 0 R", 3+2*i))
	}
	offsets[2] = b.Len()
	fmt.Fprintf(&b, "2 0 obj\n<< /Type /Pages /Kids [%s] /Count %d >>\nendobj\n", strings.Join(kids, " "), n)

	for i, text := range pageTexts {
		pageObj := 3 + 2*i
		streamObj := 4 + 2*i
		stream := contentStream(text)

		offsets[pageObj] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents %d 0 R /Resources << /Font << /F1 %d 0 R >> >> >>\nendobj\n",
			pageObj, streamObj, fontObj)

		offsets[streamObj] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", streamObj, len(stream), stream)
	}

	offsets[fontObj] = b.Len()
	fmt.Fprintf(&b, "%d 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>\nendobj\n", fontObj)

	writeXref(&b, offsets)
	return []byte(b.String())
}

// buildFormPDF assembles a one-page document carrying an AcroForm with a
// named text field (string value) and a checkbox (name value), both
// annotated on page 1.
func buildFormPDF(pageText string) []byte {
	stream := contentStream(pageText)

	var b strings.Builder
	b.WriteString("%PDF-1.4\n")
	offsets := make([]int, 8)

	offsets[1] = b.Len()
	b.WriteString("1 0 obj\n<< /Type /Catalog /Pages 2 0 R /AcroForm << /Fields [5 0 R 6 0 R] >> >>\nendobj\n")

	offsets[2] = b.Len()
	b.WriteString("2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n")

	offsets[3] = b.Len()
	b.WriteString("3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources << /Font << /F1 7 0 R >> >> /Annots [5 0 R 6 0 R] >>\nendobj\n")

	offsets[4] = b.Len()
	fmt.Fprintf(&b, "4 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", len(stream), stream)

	offsets[5] = b.Len()
	b.WriteString("5 0 obj\n<< /Type /Annot /Subtype /Widget /FT /Tx /T (applicant_name) /V (Jane Doe) /Rect [100 600 300 620] >>\nendobj\n")

	offsets[6] = b.Len()
	b.WriteString("6 0 obj\n<< /Type /Annot /Subtype /Widget /FT /Btn /T (has_attorney) /V /Yes /Rect [100 560 120 580] >>\nendobj\n")

	offsets[7] = b.Len()
	b.WriteString("7 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>\nendobj\n")

	writeXref(&b, offsets)
	return []byte(b.String())
}

func writeFixture(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("writing fixture %s: %v", name, err)
	}
	return path
}
