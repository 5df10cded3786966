package pdfform

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// OCRTextSource recognizes text in a page image. Implementations live
// outside this package; a nil source disables the OCR fallback.
type OCRTextSource interface {
	RecognizeText(ctx context.Context, image []byte) (string, error)
}

// TextAssembler concatenates per-page extraction output into one page-tagged
// content string, falling back to alternate extraction methods and finally
// OCR when direct extraction yields nothing.
type TextAssembler struct {
	ocr  OCRTextSource
	conf *model.Configuration
}

// NewTextAssembler creates an assembler. The OCR source may be nil.
func NewTextAssembler(ocr OCRTextSource) *TextAssembler {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &TextAssembler{ocr: ocr, conf: conf}
}

// AssembleText extracts the document's full text content with page markers
// and table blocks. It returns the assembled content plus any per-page
// degradations that were absorbed along the way. The only hard failure is
// total extraction failure across every method and every page.
func (a *TextAssembler) AssembleText(ctx context.Context, filePath string) (string, []string, error) {
	f, reader, err := pdf.Open(filePath)
	if err != nil {
		return "", nil, extractionError(fmt.Errorf("cannot open document: %w", err))
	}
	defer f.Close()

	var parts []string
	var warnings []string
	anyText := false

	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		parts = append(parts, pageMarker(pageNum))

		page := reader.Page(pageNum)
		if page.V.IsNull() {
			warnings = append(warnings, fmt.Sprintf("page %d: invalid page object", pageNum))
			parts = append(parts, noTextSentinel)
			continue
		}

		text := PageText(page)
		parts = append(parts, text)
		if text != noTextSentinel && strings.TrimSpace(text) != "" {
			anyText = true
		}

		for _, table := range pageTablesSafe(page, pageNum, &warnings) {
			parts = append(parts, table)
		}
	}

	if anyText {
		return strings.Join(parts, "\n"), warnings, nil
	}

	// Document-wide fallback: every page of the primary pass was empty.
	log.Printf("pdfform: primary extraction empty for %s, trying alternate methods", filepath.Base(filePath))
	content, altWarnings, err := a.assembleWithAlternateMethods(reader)
	warnings = append(warnings, altWarnings...)
	if err == nil {
		return content, warnings, nil
	}

	if a.ocr != nil {
		log.Printf("pdfform: alternate methods empty for %s, trying OCR", filepath.Base(filePath))
		content, ocrWarnings, ocrErr := a.assembleWithOCR(ctx, filePath, reader.NumPage())
		warnings = append(warnings, ocrWarnings...)
		if ocrErr == nil {
			return content, warnings, nil
		}
		return "", warnings, extractionError(ocrErr)
	}

	return "", warnings, err
}

// assembleWithAlternateMethods retries every page with the alternate
// extraction modes, taking the first method that returns content and
// recording which one succeeded.
func (a *TextAssembler) assembleWithAlternateMethods(reader *pdf.Reader) (string, []string, error) {
	var parts []string
	var warnings []string
	var lastErr error
	anyText := false

	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		parts = append(parts, pageMarker(pageNum))

		page := reader.Page(pageNum)
		if page.V.IsNull() {
			parts = append(parts, noTextSentinel)
			continue
		}

		extracted := false
		for _, method := range alternateMethods() {
			text, err := safePageText(method.extract, page)
			if err != nil {
				lastErr = err
				warnings = append(warnings, fmt.Sprintf("page %d: %s method failed: %v", pageNum, method.name, err))
				continue
			}
			if strings.TrimSpace(text) == "" {
				continue
			}
			parts = append(parts, fmt.Sprintf("[Extracted using %s method]", method.name))
			parts = append(parts, text)
			extracted = true
			anyText = true
			break
		}
		if !extracted {
			parts = append(parts, "[No text could be extracted from this page]")
		}
	}

	if !anyText {
		return "", warnings, extractionError(lastErr)
	}
	return strings.Join(parts, "\n"), warnings, nil
}

// assembleWithOCR extracts the embedded page images and runs them through
// the configured OCR source. Scanned documents typically carry one full-page
// image per page.
func (a *TextAssembler) assembleWithOCR(ctx context.Context, filePath string, pageCount int) (string, []string, error) {
	var parts []string
	var warnings []string
	var lastErr error
	anyText := false

	for pageNum := 1; pageNum <= pageCount; pageNum++ {
		parts = append(parts, pageMarker(pageNum))

		images, err := a.pageImages(filePath, pageNum)
		if err != nil {
			lastErr = err
			warnings = append(warnings, fmt.Sprintf("page %d: image extraction failed: %v", pageNum, err))
			parts = append(parts, noTextSentinel)
			continue
		}
		if len(images) == 0 {
			parts = append(parts, noTextSentinel)
			continue
		}

		var pageText strings.Builder
		for _, img := range images {
			text, err := a.ocr.RecognizeText(ctx, img)
			if err != nil {
				lastErr = err
				warnings = append(warnings, fmt.Sprintf("page %d: OCR failed: %v", pageNum, err))
				continue
			}
			if strings.TrimSpace(text) != "" {
				pageText.WriteString(text)
				pageText.WriteString("\n")
			}
		}

		if strings.TrimSpace(pageText.String()) == "" {
			parts = append(parts, noTextSentinel)
			continue
		}
		parts = append(parts, "[Extracted using OCR]")
		parts = append(parts, pageText.String())
		anyText = true
	}

	if !anyText {
		if lastErr == nil {
			lastErr = fmt.Errorf("no recognizable page images")
		}
		return "", warnings, lastErr
	}
	return strings.Join(parts, "\n"), warnings, nil
}

// pageImages extracts the embedded images of a single page into a temp
// directory and returns their bytes.
func (a *TextAssembler) pageImages(filePath string, pageNum int) ([][]byte, error) {
	tmpDir, err := os.MkdirTemp("", "immiform-ocr-*")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmpDir)

	pages := []string{fmt.Sprintf("%d", pageNum)}
	if err := api.ExtractImagesFile(filePath, tmpDir, pages, a.conf); err != nil {
		return nil, fmt.Errorf("pdfcpu image extraction: %w", err)
	}

	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		return nil, err
	}

	var images [][]byte
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(tmpDir, entry.Name()))
		if err != nil {
			continue
		}
		images = append(images, data)
	}
	return images, nil
}

// pageTablesSafe wraps table detection with panic recovery so one malformed
// content stream cannot abort the page.
func pageTablesSafe(page pdf.Page, pageNum int, warnings *[]string) (tables []string) {
	defer func() {
		if r := recover(); r != nil {
			*warnings = append(*warnings, fmt.Sprintf("page %d: table detection panicked: %v", pageNum, r))
			tables = nil
		}
	}()
	return PageTables(page)
}

// pageMarker renders the page delimiter for 1-based page n.
func pageMarker(n int) string {
	return fmt.Sprintf("\n%s%d%s\n", pageMarkerPrefix, n, pageMarkerSuffix)
}

// SplitPages splits page-tagged content back into per-page chunks using the
// same marker convention the assembler emits. The reconstructor uses this to
// decide the rebuilt document's page count.
func SplitPages(content string) []string {
	segments := strings.Split(content, pageMarkerPrefix)

	var chunks []string
	for _, seg := range segments {
		if strings.TrimSpace(seg) == "" {
			continue
		}
		// Drop the marker remainder ("n ===") up to the first newline.
		if idx := strings.Index(seg, "\n"); idx >= 0 && strings.Contains(seg[:idx], pageMarkerSuffix[1:]) {
			seg = seg[idx+1:]
		}
		chunks = append(chunks, seg)
	}
	return chunks
}
