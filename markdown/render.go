package markdown

import (
	"fmt"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/tsawler/pdf2md/model"
)

// Config holds configuration for markdown rendering. Immutable for the
// duration of one conversion.
type Config struct {
	// RemoveHeaders strips markdown heading syntax already present inside
	// source text, so the inferred structural heading is the sole source
	// of heading markup.
	// Default: false
	RemoveHeaders bool

	// TableHeaderLabel is the line emitted above every rendered table.
	// Default: "###"
	TableHeaderLabel string

	// SkipEmptyTables omits tables whose cells are all blank.
	// Default: false
	SkipEmptyTables bool

	// KeepEmptyTableHeader still emits the TableHeaderLabel line for a
	// skipped empty table.
	// Default: false
	KeepEmptyTableHeader bool

	// PageDemarcation is the page boundary policy.
	// Default: DemarcationNone
	PageDemarcation Demarcation

	// MediaDir is the directory image payloads are persisted under while
	// their ImageRef blocks render. Markdown links use the directory's
	// base name as a relative prefix. Empty disables persistence.
	MediaDir string
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		TableHeaderLabel: "###",
	}
}

// PageText is one page's rendered markdown in split mode.
type PageText struct {
	Page     int
	Markdown string
}

// Renderer serializes an ordered block sequence into markdown text.
type Renderer struct {
	config  Config
	images  map[string]model.ImagePayload
	written map[string]bool
}

// NewRenderer creates a renderer for the given configuration.
func NewRenderer(config Config) *Renderer {
	if config.TableHeaderLabel == "" {
		config.TableHeaderLabel = "###"
	}
	return &Renderer{
		config:  config,
		images:  make(map[string]model.ImagePayload),
		written: make(map[string]bool),
	}
}

// SetImages registers the extracted image payloads ImageRef blocks will
// resolve against.
func (r *Renderer) SetImages(payloads []model.ImagePayload) {
	for _, p := range payloads {
		r.images[p.ID] = p
	}
}

// headerPrefix matches a leading run of '#' characters plus whitespace.
var headerPrefix = regexp.MustCompile(`^#+\s*`)

// StripHeaderMarkup removes markdown heading syntax from the start of a
// line of text.
func StripHeaderMarkup(text string) string {
	return headerPrefix.ReplaceAllString(strings.TrimSpace(text), "")
}

// Render serializes blocks into a single markdown string. Page breaks are
// ignored or rendered as rules according to the configured demarcation.
// The returned write errors are secondary image-persistence failures; the
// text is complete and valid whenever the error is nil.
func (r *Renderer) Render(blocks []model.Block) (string, []OutputWriteError, error) {
	var sb strings.Builder
	var writeErrs []OutputWriteError

	for _, block := range blocks {
		if pb, ok := block.(model.PageBreak); ok {
			if r.config.PageDemarcation == DemarcationRule {
				fmt.Fprintf(&sb, "\n---\n\n*Page %d*\n\n", pb.PageNumber)
			}
			continue
		}
		if err := r.renderBlock(&sb, block, &writeErrs); err != nil {
			return "", writeErrs, err
		}
	}
	return sb.String(), writeErrs, nil
}

// RenderPages serializes blocks into one markdown string per page, for
// split demarcation. The page break block terminates the accumulating
// string and tags the next one with its page number.
func (r *Renderer) RenderPages(blocks []model.Block) ([]PageText, []OutputWriteError, error) {
	if len(blocks) == 0 {
		return nil, nil, nil
	}

	var pages []PageText
	var writeErrs []OutputWriteError
	var sb strings.Builder
	current := 1

	for _, block := range blocks {
		if pb, ok := block.(model.PageBreak); ok {
			pages = append(pages, PageText{Page: current, Markdown: sb.String()})
			sb.Reset()
			current = pb.PageNumber
			continue
		}
		if err := r.renderBlock(&sb, block, &writeErrs); err != nil {
			return nil, writeErrs, err
		}
	}
	pages = append(pages, PageText{Page: current, Markdown: sb.String()})

	return pages, writeErrs, nil
}

// renderBlock emits one non-break block. Table and image handling live in
// their own files.
func (r *Renderer) renderBlock(sb *strings.Builder, block model.Block, writeErrs *[]OutputWriteError) error {
	switch b := block.(type) {
	case model.Heading:
		text := strings.TrimSpace(b.Text)
		if r.config.RemoveHeaders {
			text = StripHeaderMarkup(text)
		}
		if text == "" {
			return nil
		}
		fmt.Fprintf(sb, "\n%s %s\n\n", strings.Repeat("#", b.Level), text)

	case model.Paragraph:
		text := strings.TrimSpace(b.Text)
		if r.config.RemoveHeaders {
			text = StripHeaderMarkup(text)
		}
		if text == "" {
			return nil
		}
		sb.WriteString(text)
		sb.WriteString("\n")

	case model.Table:
		r.renderTable(sb, b)

	case model.ImageRef:
		return r.renderImage(sb, b, writeErrs)
	}
	return nil
}

// renderImage emits a markdown image reference and persists the payload
// as a boundary effect. A failed write is recorded and rendering
// continues; a missing payload is structural and fatal.
func (r *Renderer) renderImage(sb *strings.Builder, ref model.ImageRef, writeErrs *[]OutputWriteError) error {
	payload, ok := r.images[ref.ImageID]
	if !ok {
		return &RenderError{Page: ref.Page, ImageID: ref.ImageID, Reason: "no extracted payload"}
	}

	link := payload.Filename()
	if r.config.MediaDir != "" {
		link = path.Join(filepath.Base(r.config.MediaDir), payload.Filename())
	}
	fmt.Fprintf(sb, "![Page %d image](%s)\n\n", ref.Page, link)

	if r.config.MediaDir != "" && !r.written[ref.ImageID] {
		r.written[ref.ImageID] = true
		if err := writeImageFile(r.config.MediaDir, payload); err != nil {
			*writeErrs = append(*writeErrs, OutputWriteError{
				Path:    filepath.Join(r.config.MediaDir, payload.Filename()),
				Page:    ref.Page,
				ImageID: ref.ImageID,
				Err:     err,
			})
		}
	}
	return nil
}
