// Package service orchestrates the full document pipeline: parse, translate,
// rebuild, store.
package service

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/immiform/immiform/internal/pdfform"
	"github.com/immiform/immiform/internal/storage"
	"github.com/immiform/immiform/internal/translate"
)

const translatedPrefix = "translated_"

// TranslationRecord describes a completed translation run.
type TranslationRecord struct {
	OriginalName   string   `json:"original_name"`
	TranslatedName string   `json:"translated_name"`
	StoredKey      string   `json:"stored_key"`
	Location       string   `json:"location"`
	URL            string   `json:"url,omitempty"`
	FormType       string   `json:"form_type"`
	FieldCount     int      `json:"field_count"`
	PageCount      int      `json:"page_count"`
	Warnings       []string `json:"warnings,omitempty"`
}

// TranslationService runs documents through the parse, translate, rebuild
// and store stages in order. Each stage failure aborts the run.
type TranslationService struct {
	parser        *pdfform.Parser
	translator    translate.Translator
	reconstructor *pdfform.Reconstructor
	store         storage.ObjectStorage

	sourceLanguage string
	targetLanguage string
	maxFileSize    int64
}

// NewTranslationService creates a service wired to the given collaborators.
// maxFileSize of zero disables the size check.
func NewTranslationService(
	parser *pdfform.Parser,
	translator translate.Translator,
	reconstructor *pdfform.Reconstructor,
	store storage.ObjectStorage,
	sourceLanguage, targetLanguage string,
	maxFileSize int64,
) *TranslationService {
	return &TranslationService{
		parser:         parser,
		translator:     translator,
		reconstructor:  reconstructor,
		store:          store,
		sourceLanguage: sourceLanguage,
		targetLanguage: targetLanguage,
		maxFileSize:    maxFileSize,
	}
}

// ParseDocument runs only the extraction and analysis stages.
func (s *TranslationService) ParseDocument(ctx context.Context, filePath string) (*pdfform.ParseResult, error) {
	if err := s.checkSize(filePath); err != nil {
		return nil, err
	}
	return s.parser.ParseImmigrationForm(ctx, filePath)
}

func (s *TranslationService) checkSize(filePath string) error {
	if s.maxFileSize <= 0 {
		return nil
	}
	info, err := os.Stat(filePath)
	if err != nil {
		return fmt.Errorf("%w: cannot stat file: %v", pdfform.ErrInputValidation, err)
	}
	if info.Size() > s.maxFileSize {
		return fmt.Errorf("%w: file size %d exceeds limit %d", pdfform.ErrInputValidation, info.Size(), s.maxFileSize)
	}
	return nil
}

// TranslateDocument runs the full pipeline on filePath and returns a record
// pointing at the stored rebuilt document.
func (s *TranslationService) TranslateDocument(ctx context.Context, filePath string) (*TranslationRecord, error) {
	originalName := filepath.Base(filePath)

	if err := s.checkSize(filePath); err != nil {
		return nil, err
	}

	log.Printf("parsing %s", originalName)
	result, err := s.parser.ParseImmigrationForm(ctx, filePath)
	if err != nil {
		return nil, err
	}
	for _, w := range result.Warnings {
		log.Printf("warning: %s", w)
	}

	log.Printf("translating %d pages, %d fields (%s -> %s)",
		result.Metadata.TotalPages, result.Metadata.FieldCount,
		s.sourceLanguage, s.targetLanguage)
	prompt := translate.BuildTranslationPrompt(result, s.sourceLanguage, s.targetLanguage)
	translated, err := s.translator.Translate(ctx, prompt, s.sourceLanguage, s.targetLanguage)
	if err != nil {
		return nil, fmt.Errorf("translation failed: %w", err)
	}

	translatedName := translatedPrefix + originalName

	workDir, err := os.MkdirTemp("", "immiform-rebuild-")
	if err != nil {
		return nil, fmt.Errorf("creating work directory: %w", err)
	}
	defer os.RemoveAll(workDir)

	rebuiltPath := filepath.Join(workDir, translatedName)
	log.Printf("rebuilding %s", translatedName)
	if err := s.reconstructor.RebuildDocument(filePath, translated, result.Fields, result.Metadata, rebuiltPath); err != nil {
		return nil, err
	}

	record, err := s.storeDocument(ctx, rebuiltPath, translatedName)
	if err != nil {
		return nil, err
	}

	record.OriginalName = originalName
	record.FormType = result.Metadata.FormType
	record.FieldCount = result.Metadata.FieldCount
	record.PageCount = result.Metadata.TotalPages
	record.Warnings = result.Warnings
	return record, nil
}

func (s *TranslationService) storeDocument(ctx context.Context, path, name string) (*TranslationRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening rebuilt document: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat rebuilt document: %w", err)
	}

	key := uuid.New().String() + "/" + name
	out, err := s.store.Upload(ctx, storage.UploadInput{
		Key:         key,
		Body:        f,
		ContentType: "application/pdf",
		Size:        info.Size(),
	})
	if err != nil {
		return nil, fmt.Errorf("storing rebuilt document: %w", err)
	}

	url, err := s.store.GetURL(ctx, key)
	if err != nil {
		log.Printf("warning: could not resolve URL for %s: %v", key, err)
		url = ""
	}

	return &TranslationRecord{
		TranslatedName: name,
		StoredKey:      key,
		Location:       out.Location,
		URL:            url,
	}, nil
}
