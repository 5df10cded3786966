package pdfform

import "strings"

// Field-count thresholds for complexity tiers.
const (
	lowComplexityFieldCount  = 20
	highComplexityFieldCount = 50
)

// formTypeEntry maps a known immigration-form code to its characteristic
// phrases. Catalogue order is a tie-break policy: the first entry with any
// matching phrase wins.
type formTypeEntry struct {
	code    string
	phrases []string
}

var formTypeCatalogue = []formTypeEntry{
	{"i-485", []string{"adjustment of status", "register permanent residence"}},
	{"i-130", []string{"petition for alien relative", "immediate relative"}},
	{"i-765", []string{"employment authorization", "work permit"}},
	{"i-90", []string{"replace permanent resident card", "green card replacement"}},
	{"i-131", []string{"travel document", "advance parole"}},
	{"n-400", []string{"naturalization", "citizenship"}},
	{"i-751", []string{"remove conditions", "conditional permanent resident"}},
}

// sectionCatalogue is the fixed set of canonical section names checked for
// presence in the assembled text. All matches are recorded.
var sectionCatalogue = []string{
	"personal information",
	"biographic information",
	"contact information",
	"employment history",
	"education",
	"travel history",
	"criminal history",
	"family information",
	"supporting documents",
	"declaration",
	"signature",
}

// StructureAnalysis holds the structural metadata derived from a parse.
type StructureAnalysis struct {
	FormType                string
	DetectedSections        []string
	Complexity              string
	EstimatedCompletionTime string
	FieldCount              int
}

// AnalyzeFormStructure derives form type, detected sections, complexity
// tier, and estimated completion time from assembled text and the extracted
// field list. It is a pure function of its inputs.
func AnalyzeFormStructure(content string, fields []FormField) StructureAnalysis {
	analysis := StructureAnalysis{
		FormType:                "immigration",
		Complexity:              ComplexityMedium,
		EstimatedCompletionTime: "15-30 minutes",
		FieldCount:              len(fields),
	}

	lower := strings.ToLower(content)

	for _, entry := range formTypeCatalogue {
		for _, phrase := range entry.phrases {
			if strings.Contains(lower, phrase) {
				analysis.FormType = entry.code
				break
			}
		}
		if analysis.FormType != "immigration" {
			break
		}
	}

	for _, section := range sectionCatalogue {
		if strings.Contains(lower, section) {
			analysis.DetectedSections = append(analysis.DetectedSections, section)
		}
	}

	switch {
	case len(fields) < lowComplexityFieldCount:
		analysis.Complexity = ComplexityLow
		analysis.EstimatedCompletionTime = "10-20 minutes"
	case len(fields) > highComplexityFieldCount:
		analysis.Complexity = ComplexityHigh
		analysis.EstimatedCompletionTime = "30-60 minutes"
	}

	return analysis
}

// apply merges the analysis into base metadata.
func (a StructureAnalysis) apply(meta *FormMetadata) {
	meta.FormType = a.FormType
	meta.DetectedSections = a.DetectedSections
	meta.Complexity = a.Complexity
	meta.EstimatedCompletionTime = a.EstimatedCompletionTime
	meta.FieldCount = a.FieldCount
}
