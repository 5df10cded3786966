package pdfform

import (
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// AcroForm field flag bits.
const (
	fieldFlagRadio      = 1 << 15
	fieldFlagPushbutton = 1 << 16
	fieldFlagCombo      = 1 << 17
)

// InteractiveFieldExtractor reads native form widgets into normalized
// FormField records.
type InteractiveFieldExtractor struct {
	conf *model.Configuration
}

// NewInteractiveFieldExtractor creates an extractor with relaxed validation,
// which keeps malformed but recoverable documents readable.
func NewInteractiveFieldExtractor() *InteractiveFieldExtractor {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &InteractiveFieldExtractor{conf: conf}
}

// ExtractFields enumerates the document's interactive widgets. A malformed
// widget is skipped, never fatal; the error return covers only the inability
// to read the document at all, which callers treat as "zero interactive
// fields" and fall through to pattern detection.
func (e *InteractiveFieldExtractor) ExtractFields(filePath string) ([]FormField, []string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open document: %w", err)
	}
	defer file.Close()

	ctx, err := api.ReadContext(file, e.conf)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot read document: %w", err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, nil, fmt.Errorf("cannot resolve page tree: %w", err)
	}

	pageByObjNr, warnings := widgetPageIndex(ctx)

	rootDict, err := ctx.Catalog()
	if err != nil {
		return nil, warnings, fmt.Errorf("cannot read catalog: %w", err)
	}

	acroFormObj, found := rootDict.Find("AcroForm")
	if !found {
		return nil, warnings, nil
	}
	acroFormDict, err := ctx.DereferenceDict(acroFormObj)
	if err != nil || acroFormDict == nil {
		return nil, warnings, nil
	}

	fieldsObj, found := acroFormDict.Find("Fields")
	if !found {
		return nil, warnings, nil
	}
	fieldsArray, err := ctx.DereferenceArray(fieldsObj)
	if err != nil {
		return nil, warnings, nil
	}

	var fields []FormField
	for _, ref := range fieldsArray {
		e.collectField(ctx, ref, pageByObjNr, &fields, &warnings)
	}
	return fields, warnings, nil
}

// collectField processes one entry of the Fields array, recursing into Kids
// when the field fans out into separate widget annotations.
func (e *InteractiveFieldExtractor) collectField(
	ctx *model.Context, ref types.Object,
	pageByObjNr map[int]int, fields *[]FormField, warnings *[]string,
) {
	objNr := 0
	if indRef, ok := ref.(types.IndirectRef); ok {
		objNr = indRef.ObjectNumber.Value()
	}

	fieldDict, err := ctx.DereferenceDict(ref)
	if err != nil || fieldDict == nil {
		*warnings = append(*warnings, fmt.Sprintf("field object %d unreadable, skipped", objNr))
		return
	}

	// Non-terminal fields carry their widgets in Kids. A Kid that itself has
	// an FT or Rect is a widget of its own.
	_, hasFT := fieldDict.Find("FT")
	_, hasRect := fieldDict.Find("Rect")
	if !hasFT && !hasRect {
		if kidsObj, found := fieldDict.Find("Kids"); found {
			if kids, err := ctx.DereferenceArray(kidsObj); err == nil {
				for _, kid := range kids {
					e.collectField(ctx, kid, pageByObjNr, fields, warnings)
				}
				return
			}
		}
	}

	field, err := e.widgetField(ctx, fieldDict, objNr, pageByObjNr, len(*fields))
	if err != nil {
		*warnings = append(*warnings, fmt.Sprintf("field object %d: %v", objNr, err))
		return
	}
	if field != nil {
		*fields = append(*fields, *field)
	}
}

// widgetField maps one widget dictionary to a FormField.
func (e *InteractiveFieldExtractor) widgetField(
	ctx *model.Context, fieldDict types.Dict,
	objNr int, pageByObjNr map[int]int, extracted int,
) (*FormField, error) {
	field := &FormField{
		FieldType:  FieldTypeText,
		Required:   false, // widgets do not reliably expose this
		PageNumber: 1,
	}

	if nameObj, found := fieldDict.Find("T"); found {
		if name, err := ctx.DereferenceStringOrHexLiteral(nameObj, model.V10, nil); err == nil {
			field.Name = name
		}
	}
	if field.Name == "" {
		// Positional placeholder keyed to the running count keeps names
		// unique without a global renumbering pass.
		field.Name = fmt.Sprintf("field_%d", extracted+1)
	}

	code, hasToggle := e.widgetCode(ctx, fieldDict)
	options := e.widgetOptions(ctx, fieldDict)

	if typ, ok := fieldTypeForCode[code]; ok {
		field.FieldType = typ
	}
	if len(options) > 0 {
		field.FieldType = FieldTypeDropdown
		field.Options = options
	} else if code < 0 && hasToggle {
		field.FieldType = FieldTypeCheckbox
	}

	if valueObj, found := fieldDict.Find("V"); found {
		field.Value = e.widgetValue(ctx, valueObj)
	}

	if rectObj, found := fieldDict.Find("Rect"); found {
		field.Coordinates = parseRect(ctx, rectObj)
	}

	if page, ok := pageByObjNr[objNr]; ok {
		field.PageNumber = page
	}

	return field, nil
}

// widgetCode derives the classic numeric widget code from the field's FT
// entry and flags. It also reports whether the widget exposes a toggle
// state. Unknown types yield -1.
func (e *InteractiveFieldExtractor) widgetCode(ctx *model.Context, fieldDict types.Dict) (int, bool) {
	var flags types.Integer
	if flagsObj, found := fieldDict.Find("Ff"); found {
		if f, err := ctx.DereferenceInteger(flagsObj); err == nil && f != nil {
			flags = *f
		}
	}

	ftObj, found := fieldDict.Find("FT")
	if !found {
		// Inherited type from a parent field.
		if parentObj, ok := fieldDict.Find("Parent"); ok {
			if parentDict, err := ctx.DereferenceDict(parentObj); err == nil && parentDict != nil {
				return e.widgetCode(ctx, parentDict)
			}
		}
		_, hasAS := fieldDict.Find("AS")
		return -1, hasAS
	}

	ftName, err := ctx.DereferenceName(ftObj, model.V10, nil)
	if err != nil {
		return -1, false
	}

	switch ftName {
	case "Tx":
		return widgetCodeText, false
	case "Btn":
		switch {
		case flags&fieldFlagPushbutton != 0:
			return widgetCodeButton, false
		case flags&fieldFlagRadio != 0:
			return widgetCodeRadio, true
		default:
			return widgetCodeCheckbox, true
		}
	case "Ch":
		if flags&fieldFlagCombo != 0 {
			return widgetCodeDropdown, false
		}
		return widgetCodeListbox, false
	case "Sig":
		return widgetCodeSignature, false
	default:
		return -1, false
	}
}

// widgetOptions extracts the choice list (Opt). Entries may be plain strings
// or [export, display] pairs; the display value wins.
func (e *InteractiveFieldExtractor) widgetOptions(ctx *model.Context, fieldDict types.Dict) []string {
	optObj, found := fieldDict.Find("Opt")
	if !found {
		return nil
	}
	optArray, err := ctx.DereferenceArray(optObj)
	if err != nil {
		return nil
	}

	var options []string
	for _, opt := range optArray {
		if s, err := ctx.DereferenceStringOrHexLiteral(opt, model.V10, nil); err == nil {
			options = append(options, s)
			continue
		}
		if pair, err := ctx.DereferenceArray(opt); err == nil && len(pair) >= 2 {
			if display, err := ctx.DereferenceStringOrHexLiteral(pair[1], model.V10, nil); err == nil {
				options = append(options, display)
			}
		}
	}
	return options
}

// widgetValue renders the current field value as a string.
func (e *InteractiveFieldExtractor) widgetValue(ctx *model.Context, valueObj types.Object) string {
	if s, err := ctx.DereferenceStringOrHexLiteral(valueObj, model.V10, nil); err == nil {
		return s
	}
	if name, err := ctx.DereferenceName(valueObj, model.V10, nil); err == nil {
		return string(name)
	}
	return ""
}

// parseRect converts a Rect array into page-unit coordinates.
func parseRect(ctx *model.Context, rectObj types.Object) *Coordinates {
	rectArray, err := ctx.DereferenceArray(rectObj)
	if err != nil || len(rectArray) != 4 {
		return nil
	}

	coords := make([]float64, 4)
	for i, c := range rectArray {
		if f, err := ctx.DereferenceNumber(c); err == nil {
			coords[i] = f
		}
	}
	return &Coordinates{
		X:      coords[0],
		Y:      coords[1],
		Width:  coords[2] - coords[0],
		Height: coords[3] - coords[1],
	}
}

// widgetPageIndex walks the page tree and maps each page annotation's object
// number to its 1-based page number. A failure here degrades to "page 1"
// for every widget rather than aborting extraction.
func widgetPageIndex(ctx *model.Context) (map[int]int, []string) {
	index := make(map[int]int)
	var warnings []string

	rootDict, err := ctx.Catalog()
	if err != nil {
		return index, []string{fmt.Sprintf("page index: catalog unreadable: %v", err)}
	}
	pagesObj, found := rootDict.Find("Pages")
	if !found {
		return index, nil
	}

	pageNum := 0
	var walk func(obj types.Object)
	walk = func(obj types.Object) {
		d, err := ctx.DereferenceDict(obj)
		if err != nil || d == nil {
			warnings = append(warnings, "page index: unreadable page tree node")
			return
		}

		if typeObj, found := d.Find("Type"); found {
			if name, err := ctx.DereferenceName(typeObj, model.V10, nil); err == nil && name == "Pages" {
				if kidsObj, found := d.Find("Kids"); found {
					if kids, err := ctx.DereferenceArray(kidsObj); err == nil {
						for _, kid := range kids {
							walk(kid)
						}
					}
				}
				return
			}
		}

		// Leaf page.
		pageNum++
		annotsObj, found := d.Find("Annots")
		if !found {
			return
		}
		annots, err := ctx.DereferenceArray(annotsObj)
		if err != nil {
			return
		}
		for _, annot := range annots {
			if indRef, ok := annot.(types.IndirectRef); ok {
				index[indRef.ObjectNumber.Value()] = pageNum
			}
		}
	}
	walk(pagesObj)

	return index, warnings
}
