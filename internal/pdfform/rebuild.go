package pdfform

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/color"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// Layout constants for the simplified re-layout. The rebuilt page is not a
// structure-preserving rendition of the original; translated text starts at
// a fixed top-left origin.
const (
	rebuildTextOriginX = 72.0
	rebuildTextOriginY = 72.0
	rebuildFontSize    = 10
	fieldLabelFontSize = 8

	// A4 in points, used when page dimensions cannot be resolved.
	fallbackPageWidth  = 595.276
	fallbackPageHeight = 841.890
)

// defaultFieldBox is used for fields whose original bounding box is unknown.
var defaultFieldBox = Coordinates{X: 100, Y: 100, Width: 150, Height: 20}

// RebuildAuthor is stamped on output documents lacking an author.
const RebuildAuthor = "Rebuilder"

// Reconstructor produces a translated document from the original template,
// the translated page-tagged text, the original field list, and metadata.
type Reconstructor struct {
	conf *model.Configuration
}

// NewReconstructor creates a reconstructor.
func NewReconstructor() *Reconstructor {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &Reconstructor{conf: conf}
}

// RebuildDocument writes a new document to outputPath. The original at
// templatePath is opened as a structural template and never modified. Page
// count of the output tracks the page-marker count of the translated text,
// growing with blank pages when the translation implies more pages than the
// template had. Any failure aborts the rebuild; no partial file survives.
func (r *Reconstructor) RebuildDocument(
	templatePath, translatedContent string,
	fields []FormField, meta FormMetadata,
	outputPath string,
) (err error) {
	defer func() {
		if err != nil {
			os.Remove(outputPath)
		}
	}()

	if err := copyFile(templatePath, outputPath); err != nil {
		return reconstructionError("copy template", err)
	}

	pageCount, err := api.PageCountFile(outputPath)
	if err != nil {
		return reconstructionError("read template", err)
	}

	chunks := SplitPages(translatedContent)
	log.Printf("pdfform: rebuilding %s: %d template pages, %d translated chunks",
		filepath.Base(outputPath), pageCount, len(chunks))

	for pageCount < len(chunks) {
		last := []string{fmt.Sprintf("%d", pageCount)}
		if err := api.InsertPagesFile(outputPath, "", last, false, nil, r.conf); err != nil {
			return reconstructionError("append blank page", err)
		}
		pageCount++
	}

	dims, err := r.pageDims(outputPath)
	if err != nil {
		return reconstructionError("read page dimensions", err)
	}

	for i, chunk := range chunks {
		pageNum := i + 1
		if err := r.erasePage(outputPath, pageNum, dims); err != nil {
			return reconstructionError(fmt.Sprintf("erase page %d", pageNum), err)
		}
		if err := r.writePageText(outputPath, pageNum, chunk); err != nil {
			return reconstructionError(fmt.Sprintf("write page %d", pageNum), err)
		}
	}

	for _, field := range fields {
		if field.PageNumber < 1 || field.PageNumber > pageCount {
			continue
		}
		if err := r.overlayFieldLabel(outputPath, field); err != nil {
			return reconstructionError(fmt.Sprintf("overlay field %s", field.Name), err)
		}
	}

	if err := r.stampMetadata(outputPath, meta); err != nil {
		return reconstructionError("stamp metadata", err)
	}

	return nil
}

// pageDims resolves per-page dimensions, falling back to A4.
func (r *Reconstructor) pageDims(filePath string) ([]types.Dim, error) {
	ctx, err := api.ReadContextFile(filePath)
	if err != nil {
		return nil, err
	}
	dims, err := ctx.PageDims()
	if err != nil || len(dims) == 0 {
		return []types.Dim{{Width: fallbackPageWidth, Height: fallbackPageHeight}}, nil
	}
	return dims, nil
}

func dimFor(dims []types.Dim, pageNum int) types.Dim {
	if pageNum >= 1 && pageNum <= len(dims) {
		return dims[pageNum-1]
	}
	return types.Dim{Width: fallbackPageWidth, Height: fallbackPageHeight}
}

// erasePage paints the page with a solid white fill so the original content
// no longer shows through.
func (r *Reconstructor) erasePage(filePath string, pageNum int, dims []types.Dim) error {
	dim := dimFor(dims, pageNum)
	bg := color.White
	wm := &model.Watermark{
		Mode:       model.WMText,
		TextString: " ",
		FontName:   "Helvetica",
		FontSize:   rebuildFontSize,
		Color:      color.White,
		BgColor:    &bg,
		Opacity:    1.0,
		OnTop:      true,
		Pos:        types.TopLeft,
		Width:      int(dim.Width),
		Height:     int(dim.Height),
	}
	// The struct literal cannot initialize the library's unexported cache
	// maps; Recycle allocates them so AddWatermarksFile doesn't panic.
	wm.Recycle()
	pages := []string{fmt.Sprintf("%d", pageNum)}
	return api.AddWatermarksFile(filePath, "", pages, wm, r.conf)
}

// writePageText places the translated chunk at the fixed top-left origin.
func (r *Reconstructor) writePageText(filePath string, pageNum int, text string) error {
	if text == "" {
		return nil
	}
	desc := fmt.Sprintf("pos:tl, off:%.0f -%.0f, points:%d, scalefactor:1 abs, fillc:#000000, rot:0",
		rebuildTextOriginX, rebuildTextOriginY, rebuildFontSize)
	wm, err := api.TextWatermark(text, desc, true, false, types.POINTS)
	if err != nil {
		return err
	}
	pages := []string{fmt.Sprintf("%d", pageNum)}
	return api.AddWatermarksFile(filePath, "", pages, wm, r.conf)
}

// overlayFieldLabel draws the field's name inside its original bounding box,
// or a fixed default box when the box is unknown. Field values are not
// reinserted here.
func (r *Reconstructor) overlayFieldLabel(filePath string, field FormField) error {
	box := defaultFieldBox
	if field.Coordinates != nil {
		box = *field.Coordinates
	}
	desc := fmt.Sprintf("pos:bl, off:%.1f %.1f, points:%d, scalefactor:1 abs, fillc:#0000FF, rot:0",
		box.X, box.Y, fieldLabelFontSize)
	wm, err := api.TextWatermark(field.Name, desc, true, false, types.POINTS)
	if err != nil {
		return err
	}
	pages := []string{fmt.Sprintf("%d", field.PageNumber)}
	return api.AddWatermarksFile(filePath, "", pages, wm, r.conf)
}

// stampMetadata sets title, author, and subject on the output's Info
// dictionary.
func (r *Reconstructor) stampMetadata(filePath string, meta FormMetadata) error {
	ctx, err := api.ReadContextFile(filePath)
	if err != nil {
		return err
	}

	title := meta.Title
	if title == "" {
		title = DefaultTitle
	}
	author := meta.Author
	if author == "" {
		author = RebuildAuthor
	}
	subject := meta.FormType
	if subject == "" {
		subject = "Form Reconstruction"
	}

	var infoDict types.Dict
	if ctx.Info != nil {
		if d, err := ctx.DereferenceDict(*ctx.Info); err == nil && d != nil {
			infoDict = d
		}
	}
	if infoDict == nil {
		infoDict = types.NewDict()
		indRef, err := ctx.IndRefForNewObject(infoDict)
		if err != nil {
			return err
		}
		ctx.Info = indRef
	}

	infoDict["Title"] = types.StringLiteral(title)
	infoDict["Author"] = types.StringLiteral(author)
	infoDict["Subject"] = types.StringLiteral(subject)

	return api.WriteContextFile(ctx, filePath)
}

// copyFile copies src to dst, truncating dst if it exists.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
