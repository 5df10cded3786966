package pdfform

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeFormStructure_FormTypeCatalogue(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{"adjustment of status", "Application to Register Permanent Residence or Adjust Status", "i-485"},
		{"alien relative petition", "Petition for Alien Relative filed on behalf of...", "i-130"},
		{"work permit", "Application for Employment Authorization", "i-765"},
		{"green card replacement", "Application to Replace Permanent Resident Card", "i-90"},
		{"advance parole", "Application for Travel Document", "i-131"},
		{"naturalization", "Application for Naturalization", "n-400"},
		{"remove conditions", "Petition to Remove Conditions on Residence", "i-751"},
		{"unrecognized", "Some other government form", "immigration"},
		{"case insensitive", "APPLICATION FOR NATURALIZATION", "n-400"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis := AnalyzeFormStructure(tt.content, nil)
			assert.Equal(t, tt.expected, analysis.FormType)
		})
	}
}

func TestAnalyzeFormStructure_CatalogueOrderBreaksTies(t *testing.T) {
	// Text matching both the i-485 and n-400 entries resolves to the
	// earlier catalogue entry.
	content := "adjustment of status and naturalization"
	analysis := AnalyzeFormStructure(content, nil)
	assert.Equal(t, "i-485", analysis.FormType)
}

func TestAnalyzeFormStructure_Complexity(t *testing.T) {
	tests := []struct {
		fieldCount   int
		complexity   string
		expectedTime string
	}{
		{0, ComplexityLow, "10-20 minutes"},
		{19, ComplexityLow, "10-20 minutes"},
		{20, ComplexityMedium, "15-30 minutes"},
		{50, ComplexityMedium, "15-30 minutes"},
		{51, ComplexityHigh, "30-60 minutes"},
		{70, ComplexityHigh, "30-60 minutes"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d_fields", tt.fieldCount), func(t *testing.T) {
			fields := make([]FormField, tt.fieldCount)
			analysis := AnalyzeFormStructure("", fields)
			assert.Equal(t, tt.complexity, analysis.Complexity)
			assert.Equal(t, tt.expectedTime, analysis.EstimatedCompletionTime)
			assert.Equal(t, tt.fieldCount, analysis.FieldCount)
		})
	}
}

func TestAnalyzeFormStructure_Sections(t *testing.T) {
	content := `Part 1. Personal Information
Part 2. Contact Information
Part 8. Signature`

	analysis := AnalyzeFormStructure(content, nil)
	assert.Equal(t, []string{"personal information", "contact information", "signature"}, analysis.DetectedSections)
}

func TestAnalyzeFormStructure_NoSections(t *testing.T) {
	analysis := AnalyzeFormStructure("nothing recognizable here", nil)
	assert.Empty(t, analysis.DetectedSections)
}

func TestStructureAnalysis_Apply(t *testing.T) {
	meta := FormMetadata{Title: "My Form", TotalPages: 3}
	analysis := StructureAnalysis{
		FormType:                "n-400",
		DetectedSections:        []string{"signature"},
		Complexity:              ComplexityHigh,
		EstimatedCompletionTime: "30-60 minutes",
		FieldCount:              61,
	}

	analysis.apply(&meta)

	assert.Equal(t, "My Form", meta.Title)
	assert.Equal(t, 3, meta.TotalPages)
	assert.Equal(t, "n-400", meta.FormType)
	assert.Equal(t, []string{"signature"}, meta.DetectedSections)
	assert.Equal(t, ComplexityHigh, meta.Complexity)
	assert.Equal(t, 61, meta.FieldCount)
}
