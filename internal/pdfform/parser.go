package pdfform

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Parser runs the full extraction pipeline over one document. Parsing is
// synchronous and single-threaded: later heuristics depend on page order,
// and the document-wide fallback has to observe that every prior page came
// up empty. Callers may run independent documents concurrently.
type Parser struct {
	assembler *TextAssembler
	fields    *InteractiveFieldExtractor
	metadata  *MetadataExtractor
	conf      *model.Configuration
}

// NewParser creates a parser. The OCR source may be nil, which disables the
// OCR fallback for image-only pages.
func NewParser(ocr OCRTextSource) *Parser {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &Parser{
		assembler: NewTextAssembler(ocr),
		fields:    NewInteractiveFieldExtractor(),
		metadata:  NewMetadataExtractor(),
		conf:      conf,
	}
}

// ParseImmigrationForm validates the input and extracts text, form fields,
// and metadata. The result triple is stable in shape even when individual
// extraction methods fail gracefully.
func (p *Parser) ParseImmigrationForm(ctx context.Context, filePath string) (*ParseResult, error) {
	if err := p.validate(filePath); err != nil {
		return nil, err
	}

	log.Printf("pdfform: parsing %s", filepath.Base(filePath))

	content, warnings, err := p.assembler.AssembleText(ctx, filePath)
	if err != nil {
		return nil, err
	}

	meta, metaWarnings := p.metadata.ExtractMetadata(filePath)
	warnings = append(warnings, metaWarnings...)

	fields, fieldWarnings, err := p.fields.ExtractFields(filePath)
	warnings = append(warnings, fieldWarnings...)
	if err != nil {
		// Unable to read widgets at all: treated as zero interactive fields.
		warnings = append(warnings, fmt.Sprintf("interactive field extraction failed: %v", err))
		fields = nil
	}

	if len(fields) == 0 {
		log.Printf("pdfform: no interactive fields in %s, detecting from text patterns", filepath.Base(filePath))
		fields = DetectFields(SplitPages(content))
	}
	fields = uniqueNames(fields)

	AnalyzeFormStructure(content, fields).apply(&meta)

	log.Printf("pdfform: parsed %s: %d pages, %d fields, form type %s",
		filepath.Base(filePath), meta.TotalPages, len(fields), meta.FormType)

	return &ParseResult{
		Content:  content,
		Fields:   fields,
		Metadata: meta,
		Warnings: warnings,
	}, nil
}

// validate rejects unusable input before any extraction begins.
func (p *Parser) validate(filePath string) error {
	info, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return validationError("file not found: %s", filePath)
	}
	if err != nil {
		return validationError("cannot access file: %v", err)
	}
	if info.IsDir() {
		return validationError("path is a directory: %s", filePath)
	}
	if !strings.HasSuffix(strings.ToLower(filePath), ".pdf") {
		return validationError("file must be a PDF: %s", filePath)
	}
	if info.Size() == 0 {
		return validationError("file is empty: %s", filePath)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return validationError("cannot open file: %v", err)
	}
	defer file.Close()

	ctx, err := api.ReadContext(file, p.conf)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "encrypt") ||
			strings.Contains(strings.ToLower(err.Error()), "password") {
			return validationError("document is encrypted and cannot be processed")
		}
		return validationError("invalid or corrupted PDF: %v", err)
	}
	if ctx.Encrypt != nil {
		return validationError("document is encrypted and cannot be processed")
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return validationError("invalid or corrupted PDF: %v", err)
	}
	if ctx.PageCount == 0 {
		return validationError("document has no pages")
	}
	return nil
}

// uniqueNames disambiguates colliding field names with a numeric suffix.
// Field names must be unique within one extraction result.
func uniqueNames(fields []FormField) []FormField {
	seen := make(map[string]int, len(fields))
	for i := range fields {
		name := fields[i].Name
		n, ok := seen[name]
		if !ok {
			seen[name] = 1
			continue
		}
		// The suffixed candidate may itself be taken; keep counting up
		// until a free name appears.
		candidate := name
		for {
			n++
			candidate = fmt.Sprintf("%s_%d", name, n)
			if _, taken := seen[candidate]; !taken {
				break
			}
		}
		seen[name] = n
		seen[candidate] = 1
		fields[i].Name = candidate
	}
	return fields
}
