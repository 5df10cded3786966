package translate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/immiform/immiform/internal/pdfform"
)

// BuildTranslationPrompt renders the parse result triple into the prompt
// handed to the translation model. Field names and page markers must survive
// translation unchanged so the reconstructor can split the output back into
// pages.
func BuildTranslationPrompt(result *pdfform.ParseResult, sourceLanguage, targetLanguage string) string {
	languageContext := ""
	if sourceLanguage != "" && sourceLanguage != "auto" {
		languageContext = fmt.Sprintf("from %s ", sourceLanguage)
	}

	fieldsJSON, err := json.MarshalIndent(result.Fields, "", "  ")
	if err != nil {
		fieldsJSON = []byte("[]")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "IMMIGRATION FORM TRANSLATION\n%sto %s\n\n", languageContext, targetLanguage)

	b.WriteString("=== ORIGINAL FORM CONTENT ===\n")
	b.WriteString(result.Content)
	b.WriteString("\n\n=== FORM STRUCTURE ===\n")
	fmt.Fprintf(&b, "Total Pages: %d\n", result.Metadata.TotalPages)
	fmt.Fprintf(&b, "Document Title: %s\n", result.Metadata.Title)
	fmt.Fprintf(&b, "Form Type: %s\n\n", result.Metadata.FormType)

	b.WriteString("Form Fields Detected:\n")
	b.Write(fieldsJSON)

	b.WriteString("\n\n=== TRANSLATION REQUIREMENTS ===\n\n")
	fmt.Fprintf(&b, "TARGET LANGUAGE: %s\n\n", targetLanguage)
	b.WriteString("CRITICAL INSTRUCTIONS:\n")
	fmt.Fprintf(&b, "1. COMPLETE TRANSLATION: Translate ALL text content to %s\n", targetLanguage)
	b.WriteString("2. PRESERVE STRUCTURE: Keep every '=== PAGE n ===' marker exactly as it appears\n")
	b.WriteString("3. FIELD INTEGRITY: Keep field names/IDs unchanged for technical compatibility\n")
	fmt.Fprintf(&b, "4. LEGAL ACCURACY: Use official immigration terminology in %s\n", targetLanguage)
	fmt.Fprintf(&b, "5. CULTURAL ADAPTATION: Use appropriate date formats and conventions for %s\n", targetLanguage)
	b.WriteString("\nOUTPUT FORMAT:\nReturn the complete translated form maintaining the page-marker structure.\n")

	return b.String()
}
