package pdfform

// FieldType represents the type of a form field
type FieldType string

const (
	FieldTypeText      FieldType = "text"
	FieldTypeButton    FieldType = "button"
	FieldTypeCheckbox  FieldType = "checkbox"
	FieldTypeRadio     FieldType = "radio_button"
	FieldTypeDropdown  FieldType = "dropdown"
	FieldTypeListbox   FieldType = "listbox"
	FieldTypeSignature FieldType = "signature"
	FieldTypeDate      FieldType = "date"
)

// Widget type codes as exposed by interactive form widgets. Codes outside
// the table fall back to text.
const (
	widgetCodeText      = 0
	widgetCodeButton    = 1
	widgetCodeCheckbox  = 2
	widgetCodeRadio     = 3
	widgetCodeDropdown  = 4
	widgetCodeListbox   = 5
	widgetCodeSignature = 6
)

var fieldTypeForCode = map[int]FieldType{
	widgetCodeText:      FieldTypeText,
	widgetCodeButton:    FieldTypeButton,
	widgetCodeCheckbox:  FieldTypeCheckbox,
	widgetCodeRadio:     FieldTypeRadio,
	widgetCodeDropdown:  FieldTypeDropdown,
	widgetCodeListbox:   FieldTypeListbox,
	widgetCodeSignature: FieldTypeSignature,
}

// Coordinates is the bounding box of a field widget in page units.
type Coordinates struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// FormField represents a single form field, either backed by an interactive
// widget or synthesized from text patterns. Fields are created once during
// extraction and never mutated afterward.
type FormField struct {
	Name        string       `json:"name"`
	FieldType   FieldType    `json:"field_type"`
	Label       string       `json:"label,omitempty"`
	Value       string       `json:"value,omitempty"`
	Options     []string     `json:"options,omitempty"`
	Required    bool         `json:"required"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
	PageNumber  int          `json:"page_number"`
}

// Complexity tiers derived from field count.
const (
	ComplexityLow    = "low"
	ComplexityMedium = "medium"
	ComplexityHigh   = "high"
)

// FormMetadata holds document properties plus the structural fields added by
// the analyzer after extraction completes.
type FormMetadata struct {
	TotalPages       int    `json:"total_pages"`
	Title            string `json:"title"`
	FileSize         int64  `json:"file_size"`
	Author           string `json:"author,omitempty"`
	Subject          string `json:"subject,omitempty"`
	Creator          string `json:"creator,omitempty"`
	Producer         string `json:"producer,omitempty"`
	CreationDate     string `json:"creation_date,omitempty"`
	ModificationDate string `json:"modification_date,omitempty"`

	// Analyzer-added fields
	FormType                string   `json:"form_type"`
	DetectedSections        []string `json:"detected_sections"`
	Complexity              string   `json:"complexity"`
	EstimatedCompletionTime string   `json:"estimated_completion_time"`
	FieldCount              int      `json:"field_count"`
}

// ParseResult is the triple handed to downstream translation. It is
// immutable once produced; the reconstructor builds a new artifact and never
// writes through to the source document.
type ParseResult struct {
	Content  string       `json:"content"`
	Fields   []FormField  `json:"fields"`
	Metadata FormMetadata `json:"metadata"`

	// Warnings records per-page and per-widget degradations that were
	// absorbed during extraction.
	Warnings []string `json:"warnings,omitempty"`
}

// Literal markers used to assemble extracted content and to drive
// reconstruction page-splitting.
const (
	pageMarkerPrefix = "=== PAGE "
	pageMarkerSuffix = " ==="
	noTextSentinel   = "[No text content found on this page]"
)

// DefaultTitle is reported when the document carries no title of its own.
const DefaultTitle = "Immigration Form"
