package pdfform

import (
	"fmt"
	"regexp"
	"strings"
)

// labelPattern is one entry of the detection catalogue: a label pattern, the
// field type it implies, and the canonical name used to build field ids.
type labelPattern struct {
	re        *regexp.Regexp
	fieldType FieldType
	canonical string
}

// fieldPatterns is the ordered catalogue of recognizable immigration-form
// labels. Each label pattern expects a trailing run of separator,
// underscore, or blank characters where the fillable area would be. The run
// is permissive: a single space qualifies, so these patterns only run as a
// fallback when the document carries no interactive widgets at all. The
// checkbox catch-all instead matches a checkbox glyph followed by a label.
var fieldPatterns = []labelPattern{
	// Name parts
	{regexp.MustCompile(`(?i)(first\s+name|given\s+name)[\s:_.]*([_\s.]+)`), FieldTypeText, "first_name"},
	{regexp.MustCompile(`(?i)(last\s+name|family\s+name|surname)[\s:_.]*([_\s.]+)`), FieldTypeText, "last_name"},
	{regexp.MustCompile(`(?i)(middle\s+name)[\s:_.]*([_\s.]+)`), FieldTypeText, "middle_name"},

	// Dates
	{regexp.MustCompile(`(?i)(date\s+of\s+birth|birth\s+date)[\s:_.]*([_\s.]+)`), FieldTypeDate, "date_of_birth"},
	{regexp.MustCompile(`(?i)(date)[\s:_.]*([_\s.]+)`), FieldTypeDate, "date_field"},

	// Address components
	{regexp.MustCompile(`(?i)(address)[\s:_.]*([_\s.]+)`), FieldTypeText, "address"},
	{regexp.MustCompile(`(?i)(city)[\s:_.]*([_\s.]+)`), FieldTypeText, "city"},
	{regexp.MustCompile(`(?i)(state|province)[\s:_.]*([_\s.]+)`), FieldTypeText, "state"},
	{regexp.MustCompile(`(?i)(zip\s+code|postal\s+code)[\s:_.]*([_\s.]+)`), FieldTypeText, "postal_code"},
	{regexp.MustCompile(`(?i)(country)[\s:_.]*([_\s.]+)`), FieldTypeText, "country"},

	// Identifiers
	{regexp.MustCompile(`(?i)(passport\s+number)[\s:_.]*([_\s.]+)`), FieldTypeText, "passport_number"},
	{regexp.MustCompile(`(?i)(social\s+security|ssn)[\s:_.]*([_\s.]+)`), FieldTypeText, "ssn"},
	{regexp.MustCompile(`(?i)(case\s+number)[\s:_.]*([_\s.]+)`), FieldTypeText, "case_number"},

	// Contact
	{regexp.MustCompile(`(?i)(phone|telephone)[\s:_.]*([_\s.]+)`), FieldTypeText, "phone"},
	{regexp.MustCompile(`(?i)(email)[\s:_.]*([_\s.]+)`), FieldTypeText, "email"},

	// Choice fields
	{regexp.MustCompile(`(?i)(gender|sex)[\s:_.]*\s*(?:\[\s*\]\s*(male|female|m|f)|☐\s*(male|female|m|f))`), FieldTypeRadio, "gender"},
	{regexp.MustCompile(`(?i)(marital\s+status)[\s:_.]*`), FieldTypeRadio, "marital_status"},

	// Generic checkbox glyph followed by its label
	{regexp.MustCompile(`(?:\[\s*\]|☐)\s*([A-Za-z\s]+)`), FieldTypeCheckbox, "checkbox_field"},
}

// DetectFields scans per-page text for catalogued label patterns and
// synthesizes non-interactive field records. Pattern-detected fields carry
// no coordinates and no value. Duplicate matches on one page stay
// distinguishable through their 1-based match index; overlapping patterns
// (a generic date label also matching a date-of-birth label) each emit their
// own field.
func DetectFields(pages []string) []FormField {
	var fields []FormField

	for pageIdx, text := range pages {
		if strings.TrimSpace(text) == "" {
			continue
		}
		pageNum := pageIdx + 1

		for _, pattern := range fieldPatterns {
			matches := pattern.re.FindAllStringSubmatch(text, -1)
			for matchIdx, match := range matches {
				label := match[0]
				if len(match) > 1 && match[1] != "" {
					label = match[1]
				}
				fields = append(fields, FormField{
					Name:       fmt.Sprintf("%s_%d_%d", pattern.canonical, pageNum, matchIdx+1),
					FieldType:  pattern.fieldType,
					Label:      strings.TrimSpace(label),
					Value:      "",
					Required:   false,
					PageNumber: pageNum,
				})
			}
		}
	}
	return fields
}
