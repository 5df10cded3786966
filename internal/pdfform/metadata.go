package pdfform

import (
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// MetadataExtractor reads page count and embedded document properties.
// Individual missing properties are defaulted, never an error; a failed
// document read still reports the stat-based file size.
type MetadataExtractor struct {
	conf *model.Configuration
}

// NewMetadataExtractor creates a metadata extractor.
func NewMetadataExtractor() *MetadataExtractor {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &MetadataExtractor{conf: conf}
}

// ExtractMetadata reads the document's base metadata. The returned warnings
// record degradations; the metadata itself is always usable.
func (m *MetadataExtractor) ExtractMetadata(filePath string) (FormMetadata, []string) {
	meta := FormMetadata{
		Title:    DefaultTitle,
		FormType: "unknown",
	}
	var warnings []string

	// File size comes from the filesystem, independent of document health.
	if info, err := os.Stat(filePath); err == nil {
		meta.FileSize = info.Size()
	} else {
		warnings = append(warnings, fmt.Sprintf("metadata: stat failed: %v", err))
	}

	file, err := os.Open(filePath)
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("metadata: open failed: %v", err))
		return meta, warnings
	}
	defer file.Close()

	ctx, err := api.ReadContext(file, m.conf)
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("metadata: document read failed: %v", err))
		return meta, warnings
	}
	if err := ctx.EnsurePageCount(); err == nil {
		meta.TotalPages = ctx.PageCount
	} else {
		warnings = append(warnings, fmt.Sprintf("metadata: page count unresolved: %v", err))
	}

	if ctx.Info == nil {
		return meta, warnings
	}
	infoDict, err := ctx.DereferenceDict(*ctx.Info)
	if err != nil || infoDict == nil {
		warnings = append(warnings, "metadata: info dictionary unreadable")
		return meta, warnings
	}

	read := func(key string) string {
		obj, found := infoDict.Find(key)
		if !found {
			return ""
		}
		s, err := ctx.DereferenceStringOrHexLiteral(obj, model.V10, nil)
		if err != nil {
			return ""
		}
		return s
	}

	if title := read("Title"); title != "" {
		meta.Title = title
	}
	meta.Author = read("Author")
	meta.Subject = read("Subject")
	meta.Creator = read("Creator")
	meta.Producer = read("Producer")
	meta.CreationDate = read("CreationDate")
	meta.ModificationDate = read("ModDate")

	return meta, warnings
}
