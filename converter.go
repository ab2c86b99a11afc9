package pdf2md

import (
	"context"
	"fmt"
	"strings"

	"github.com/tsawler/pdf2md/layout"
	"github.com/tsawler/pdf2md/markdown"
	"github.com/tsawler/pdf2md/model"
	"github.com/tsawler/pdf2md/reader"
)

// Converter provides a fluent interface for converting PDF documents to
// markdown. Each configuration method returns a new Converter instance,
// making it safe for concurrent use and allowing method chaining.
type Converter struct {
	// Source: exactly one of filename, reader, or doc is the origin.
	filename string
	reader   *reader.Reader

	// Pre-decoded input, used instead of the reader when docLoaded is set.
	doc       *model.Document
	payloads  []model.ImagePayload
	docLoaded bool

	// Configuration
	options ConvertOptions

	// Accumulated error (fail-fast)
	err error

	// Warnings accumulated during processing
	warnings []Warning
}

// clone creates a shallow copy of the Converter with a deep copy of
// options. Each chain method returns a new instance.
func (c *Converter) clone() *Converter {
	return &Converter{
		filename:  c.filename,
		reader:    c.reader,
		doc:       c.doc,
		payloads:  c.payloads,
		docLoaded: c.docLoaded,
		options:   c.options.clone(),
		err:       c.err,
		warnings:  append([]Warning(nil), c.warnings...),
	}
}

// ============================================================================
// Configuration Methods (return new Converter instance)
// ============================================================================

// RemoveHeaders strips pre-existing markdown heading syntax from source
// text, so all heading markup in the output comes from font-size
// classification.
//
// Example:
//
//	md, _, err := pdf2md.Open("doc.pdf").RemoveHeaders().Markdown(ctx)
func (c *Converter) RemoveHeaders() *Converter {
	newConv := c.clone()
	newConv.options.removeHeaders = true
	return newConv
}

// TableHeader sets the label line emitted above each rendered table.
// The default is "###".
//
// Example:
//
//	md, _, err := pdf2md.Open("doc.pdf").TableHeader("**Table**").Markdown(ctx)
func (c *Converter) TableHeader(label string) *Converter {
	newConv := c.clone()
	newConv.options.tableHeaderLabel = label
	return newConv
}

// SkipEmptyTables omits tables whose cells are all blank from the output.
func (c *Converter) SkipEmptyTables() *Converter {
	newConv := c.clone()
	newConv.options.skipEmptyTables = true
	return newConv
}

// KeepEmptyTableHeader keeps the table label line for tables skipped as
// empty. Only meaningful together with SkipEmptyTables.
func (c *Converter) KeepEmptyTableHeader() *Converter {
	newConv := c.clone()
	newConv.options.keepEmptyTableHeader = true
	return newConv
}

// NoImages disables image extraction. No image files are written and no
// image links appear in the markdown.
//
// Example:
//
//	md, _, err := pdf2md.Open("doc.pdf").NoImages().Markdown(ctx)
func (c *Converter) NoImages() *Converter {
	newConv := c.clone()
	newConv.options.extractImages = false
	return newConv
}

// MediaDir sets the directory extracted images are written into.
// Markdown image links use the directory's base name as their relative
// prefix. When empty, images render as links but are not persisted.
func (c *Converter) MediaDir(dir string) *Converter {
	newConv := c.clone()
	newConv.options.mediaDir = dir
	return newConv
}

// PageDemarcation sets the page boundary policy. DemarcationRule inserts
// a horizontal rule and page marker between pages; DemarcationSplit makes
// MarkdownPages the natural terminal operation.
func (c *Converter) PageDemarcation(d markdown.Demarcation) *Converter {
	newConv := c.clone()
	newConv.options.demarcation = d
	return newConv
}

// WithClassifierConfig overrides the font classification tuning.
func (c *Converter) WithClassifierConfig(config layout.ClassifierConfig) *Converter {
	newConv := c.clone()
	newConv.options.classifier = config
	return newConv
}

// WithMergeConfig overrides the content merge tuning.
func (c *Converter) WithMergeConfig(config layout.MergeConfig) *Converter {
	newConv := c.clone()
	newConv.options.merge = config
	return newConv
}

// OnProgress registers a callback for progress events.
//
// Example:
//
//	md, _, err := pdf2md.Open("doc.pdf").
//	    OnProgress(func(ev pdf2md.ProgressEvent) {
//	        fmt.Printf("%s %.0f%%\n", ev.Phase, ev.Percentage)
//	    }).
//	    Markdown(ctx)
func (c *Converter) OnProgress(fn ProgressFunc) *Converter {
	newConv := c.clone()
	newConv.options.progress = fn
	return newConv
}

// ============================================================================
// Terminal Operations (execute conversion and return results)
// ============================================================================

// Markdown runs the full conversion and returns the document as a single
// markdown string.
//
// Returns the markdown, any warnings encountered during processing, and
// an error if conversion failed. Warnings indicate non-fatal issues
// (e.g., no usable heading signal, an image file that could not be
// written) where conversion succeeded but results may be imperfect.
//
// Example:
//
//	md, warnings, err := pdf2md.Open("document.pdf").Markdown(ctx)
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", pdf2md.FormatWarnings(warnings))
//	}
func (c *Converter) Markdown(ctx context.Context) (string, []Warning, error) {
	if c.err != nil {
		return "", nil, c.err
	}

	blocks, payloads, err := c.assemble(ctx)
	if err != nil {
		return "", c.warnings, err
	}

	c.emit(ProgressEvent{Phase: PhaseRendering, Percentage: 100, Message: "rendering markdown"})

	renderer := markdown.NewRenderer(c.options.renderConfig())
	renderer.SetImages(payloads)

	text, writeErrs, err := renderer.Render(blocks)
	if err != nil {
		return "", c.warnings, err
	}
	warnings := c.collectWriteWarnings(writeErrs)

	c.emit(ProgressEvent{Phase: PhaseDone, Percentage: 100, Message: "done"})
	return text, warnings, nil
}

// MarkdownPages runs the full conversion and returns one markdown string
// per page, for the split demarcation policy. The other policies still
// work; they just yield pages without rule markers between them.
func (c *Converter) MarkdownPages(ctx context.Context) ([]markdown.PageText, []Warning, error) {
	if c.err != nil {
		return nil, nil, c.err
	}

	blocks, payloads, err := c.assemble(ctx)
	if err != nil {
		return nil, c.warnings, err
	}

	c.emit(ProgressEvent{Phase: PhaseRendering, Percentage: 100, Message: "rendering markdown"})

	renderer := markdown.NewRenderer(c.options.renderConfig())
	renderer.SetImages(payloads)

	pages, writeErrs, err := renderer.RenderPages(blocks)
	if err != nil {
		return nil, c.warnings, err
	}
	warnings := c.collectWriteWarnings(writeErrs)

	// A document with pages but no content still yields one (empty)
	// string per page.
	if len(pages) == 0 && c.doc != nil {
		for _, page := range c.doc.Pages {
			pages = append(pages, markdown.PageText{Page: page.Number})
		}
	}

	c.emit(ProgressEvent{Phase: PhaseDone, Percentage: 100, Message: "done"})
	return pages, warnings, nil
}

// Document decodes the source and returns the raw element model along
// with any extracted image payloads, without classifying or rendering.
// Useful for callers that want to drive the layout and markdown packages
// directly.
func (c *Converter) Document(ctx context.Context) (*model.Document, []model.ImagePayload, error) {
	if c.err != nil {
		return nil, nil, c.err
	}
	return c.ensureDocument(ctx)
}

// PageCount opens the source if needed and returns its page count.
func (c *Converter) PageCount() (int, error) {
	if c.err != nil {
		return 0, c.err
	}
	if c.docLoaded {
		return c.doc.PageCount(), nil
	}
	if err := c.ensureReader(); err != nil {
		return 0, err
	}
	return c.reader.PageCount(), nil
}

// ============================================================================
// Pipeline
// ============================================================================

// ensureReader opens the reader if not already open.
func (c *Converter) ensureReader() error {
	if c.reader != nil {
		return nil
	}
	if c.filename == "" {
		return fmt.Errorf("no filename specified")
	}
	r, err := reader.Open(c.filename)
	if err != nil {
		return fmt.Errorf("failed to open PDF: %w", err)
	}
	c.reader = r
	return nil
}

// ensureDocument decodes the source into the raw element model, honoring
// a pre-loaded document when one was supplied via FromDocument.
func (c *Converter) ensureDocument(ctx context.Context) (*model.Document, []model.ImagePayload, error) {
	if c.docLoaded {
		return c.doc, c.payloads, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	if err := c.ensureReader(); err != nil {
		return nil, nil, err
	}

	c.emit(ProgressEvent{
		Phase:      PhaseExtracting,
		TotalPages: c.reader.PageCount(),
		Message:    "decoding pages",
	})

	doc, payloads, err := c.reader.ReadDocument(c.options.extractImages)
	if err != nil {
		return nil, nil, err
	}
	c.doc = doc
	c.payloads = payloads
	c.docLoaded = true
	return doc, payloads, nil
}

// assemble runs decode, classification, and merge, producing the ordered
// block sequence for the whole document. Classification progress spans
// 0-50 percent and merging 50-100.
func (c *Converter) assemble(ctx context.Context) ([]model.Block, []model.ImagePayload, error) {
	doc, payloads, err := c.ensureDocument(ctx)
	if err != nil {
		return nil, nil, err
	}
	total := doc.PageCount()
	if total == 0 {
		return nil, payloads, nil
	}

	classifier := layout.NewSizeClassifierWithConfig(c.options.classifier)
	profile := layout.FontProfile{}
	hasText := false

	for i, page := range doc.Pages {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		for size, weight := range classifier.ProfilePage(page) {
			profile[size] += weight
		}
		if !hasText {
			for _, run := range page.TextRuns() {
				if strings.TrimSpace(run.Text) != "" {
					hasText = true
					break
				}
			}
		}
		c.emit(ProgressEvent{
			Phase:       PhaseClassifyingFonts,
			CurrentPage: i + 1,
			TotalPages:  total,
			Percentage:  50 * float64(i+1) / float64(total),
			Message:     fmt.Sprintf("analyzing fonts on page %d/%d", i+1, total),
		})
	}

	levels := classifier.ClassifyProfile(profile)
	if !hasText {
		c.warn(Warning{Code: WarnNoText, Message: "document contains no text"})
	} else if !levels.HasHeadings() {
		c.warn(Warning{
			Code:    WarnFontClassification,
			Message: "font sizes give no heading signal; output has no headings",
		})
	}

	merger := layout.NewMergerWithConfig(levels, c.options.mergeConfig())

	var blocks []model.Block
	for i, page := range doc.Pages {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		if i > 0 {
			blocks = append(blocks, model.PageBreak{PageNumber: page.Number})
		}

		pageBlocks, err := merger.MergePage(page)
		if err != nil {
			return nil, nil, fmt.Errorf("page %d: %w", page.Number, err)
		}
		blocks = append(blocks, pageBlocks...)

		pct := 50 + 50*float64(i+1)/float64(total)
		c.emit(ProgressEvent{
			Phase:       PhaseMergingContent,
			CurrentPage: i + 1,
			TotalPages:  total,
			Percentage:  pct,
			Message:     fmt.Sprintf("converting page %d/%d", i+1, total),
		})
		if tables := len(page.TableRegions()); tables > 0 {
			c.emit(ProgressEvent{
				Phase:       PhaseConvertingTables,
				CurrentPage: i + 1,
				TotalPages:  total,
				Percentage:  pct,
				Message:     fmt.Sprintf("converted %d tables on page %d", tables, page.Number),
			})
		}
	}

	return blocks, payloads, nil
}

// collectWriteWarnings folds secondary image write failures into the
// warning stream and returns the complete warning set for this run.
func (c *Converter) collectWriteWarnings(writeErrs []markdown.OutputWriteError) []Warning {
	for _, we := range writeErrs {
		c.warn(Warning{Code: WarnImageWrite, Page: we.Page, Message: we.Error()})
	}
	return c.warnings
}

func (c *Converter) warn(w Warning) {
	c.warnings = append(c.warnings, w)
}

func (c *Converter) emit(ev ProgressEvent) {
	if c.options.progress != nil {
		c.options.progress(ev)
	}
}
