package pdfform

import (
	"fmt"
	"html"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Spacing constants for the row-based layout renderer.
const (
	columnGapThreshold = 14.0 // horizontal gap treated as a column break
	rowTolerance       = 3.0  // max Y delta for texts on the same line
	blockGapThreshold  = 18.0 // vertical gap that closes a text block
)

// pageTextFunc is the common signature every extraction strategy shares.
// Strategies are tried in order with early exit on the first non-empty
// result.
type pageTextFunc func(page pdf.Page) (string, error)

// extractionMethod pairs a strategy with the name recorded for diagnostics
// when the document-wide fallback has to report which method succeeded.
type extractionMethod struct {
	name    string
	extract pageTextFunc
}

// alternateMethods are the document-wide fallback strategies, tried per page
// when the primary pass produced nothing anywhere in the document.
func alternateMethods() []extractionMethod {
	return []extractionMethod{
		{name: "text", extract: plainText},
		{name: "html", extract: htmlText},
		{name: "words", extract: wordsText},
	}
}

// PageText extracts text from one page: layout-preserving extraction first,
// plain extraction second, and a literal sentinel when both come up empty.
// One empty page never fails the document.
func PageText(page pdf.Page) string {
	if text, err := safePageText(layoutText, page); err == nil && strings.TrimSpace(text) != "" {
		return text
	}
	if text, err := safePageText(plainText, page); err == nil && strings.TrimSpace(text) != "" {
		return text
	}
	return noTextSentinel
}

// layoutText renders the page row by row, preserving horizontal ordering and
// approximating column gaps with extra spacing.
func layoutText(page pdf.Page) (string, error) {
	rows, err := page.GetTextByRow()
	if err != nil {
		return "", fmt.Errorf("row extraction failed: %w", err)
	}

	var b strings.Builder
	for _, row := range rows {
		if len(row.Content) == 0 {
			continue
		}
		spans := make([]pdf.Text, len(row.Content))
		copy(spans, row.Content)
		sort.Slice(spans, func(i, j int) bool { return spans[i].X < spans[j].X })

		for i, span := range spans {
			if i > 0 {
				gap := span.X - (spans[i-1].X + spans[i-1].W)
				if gap > columnGapThreshold {
					b.WriteString("    ")
				} else if !strings.HasSuffix(spans[i-1].S, " ") && !strings.HasPrefix(span.S, " ") {
					b.WriteString(" ")
				}
			}
			b.WriteString(span.S)
		}
		b.WriteString("\n")
	}
	return b.String(), nil
}

// plainText is the basic non-layout extraction.
func plainText(page pdf.Page) (string, error) {
	return page.GetPlainText(nil)
}

// htmlText renders each text row as a paragraph element. The structure
// survives even when plain extraction mangles the encoding.
func htmlText(page pdf.Page) (string, error) {
	rows, err := page.GetTextByRow()
	if err != nil {
		return "", fmt.Errorf("row extraction failed: %w", err)
	}

	var b strings.Builder
	for _, row := range rows {
		var line strings.Builder
		for _, span := range row.Content {
			line.WriteString(span.S)
		}
		if strings.TrimSpace(line.String()) == "" {
			continue
		}
		b.WriteString("<p>")
		b.WriteString(html.EscapeString(line.String()))
		b.WriteString("</p>\n")
	}
	return b.String(), nil
}

// wordsText joins the raw positioned text items of the page with spaces.
func wordsText(page pdf.Page) (string, error) {
	content := page.Content()
	words := make([]string, 0, len(content.Text))
	for _, t := range content.Text {
		s := strings.TrimSpace(t.S)
		if s != "" {
			words = append(words, s)
		}
	}
	return strings.Join(words, " "), nil
}

// safePageText runs fn with panic recovery; malformed content streams in the
// underlying parser must not take down the whole document.
func safePageText(fn pageTextFunc, page pdf.Page) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during page text extraction: %v", r)
		}
	}()
	return fn(page)
}
