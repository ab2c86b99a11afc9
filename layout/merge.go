package layout

import (
	"sort"
	"strings"

	"github.com/tsawler/pdf2md/model"
)

// MergeConfig holds configuration for per-page content merging.
type MergeConfig struct {
	// LineGapFactor is the multiplier applied to a run's height to decide
	// whether the next run is vertically contiguous. Runs separated by
	// more than LineGapFactor * height start a new paragraph.
	// Default: 1.5
	LineGapFactor float64

	// SameLineTolerance is the maximum difference, in points, between two
	// runs' tops for them to count as the same visual line. Runs on one
	// line are ordered left to right regardless of baseline jitter.
	// Default: 3
	SameLineTolerance float64

	// ExtractImages controls whether image regions survive the merge.
	// When false they are dropped before ordering.
	// Default: true
	ExtractImages bool
}

// DefaultMergeConfig returns sensible default configuration.
func DefaultMergeConfig() MergeConfig {
	return MergeConfig{
		LineGapFactor:     1.5,
		SameLineTolerance: 3,
		ExtractImages:     true,
	}
}

// Merger merges one page's raw elements into a reading-ordered sequence
// of content blocks, using a document-wide header level map.
type Merger struct {
	config MergeConfig
	levels *HeaderLevelMap
}

// NewMerger creates a merger with default configuration.
func NewMerger(levels *HeaderLevelMap) *Merger {
	return NewMergerWithConfig(levels, DefaultMergeConfig())
}

// NewMergerWithConfig creates a merger with custom configuration.
func NewMergerWithConfig(levels *HeaderLevelMap, config MergeConfig) *Merger {
	return &Merger{config: config, levels: levels}
}

// mergeItem is one element awaiting reading-order placement. Text runs
// carry the run itself so the fold below can coalesce them; tables and
// images carry a prebuilt block.
type mergeItem struct {
	run   *model.TextRun
	block model.Block
	y, x  float64
}

// MergePage merges a page's text runs, table regions, and image regions
// into one ordered block sequence.
//
// Text runs fully contained in a table's bounding box are dropped: their
// content was already captured as table cells, and emitting them again as
// prose would duplicate it. Surviving elements are ordered top-to-bottom,
// left-to-right. Vertically contiguous body runs coalesce into a single
// paragraph; a run whose size maps to a heading level becomes its own
// heading block, never coalesced.
func (m *Merger) MergePage(page *model.Page) ([]model.Block, error) {
	tables := page.TableRegions()

	var items []mergeItem
	for _, region := range tables {
		rows, ok := PadRows(region.Rows)
		if !ok {
			return nil, &MalformedTableError{Page: region.Page, BBox: region.BBox}
		}
		items = append(items, mergeItem{
			block: model.Table{Rows: rows, IsEmpty: IsEmptyTable(rows)},
			y:     region.BBox.Y,
			x:     region.BBox.X,
		})
	}

	for _, run := range page.TextRuns() {
		if strings.TrimSpace(run.Text) == "" {
			continue
		}
		if insideAnyTable(run.BBox, tables) {
			continue
		}
		run := run
		items = append(items, mergeItem{run: &run, y: run.Top(), x: run.Left()})
	}

	if m.config.ExtractImages {
		for _, img := range page.ImageRegions() {
			items = append(items, mergeItem{
				block: model.ImageRef{ImageID: img.ID, Page: img.Page},
				y:     img.BBox.Y,
				x:     img.BBox.X,
			})
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].y != items[j].y {
			return items[i].y < items[j].y
		}
		return items[i].x < items[j].x
	})

	// Superscripts and baseline jitter leave words on one visual line with
	// slightly different tops. Items whose tops fall within the tolerance
	// of the line's first item form one line, ordered strictly by x.
	for start := 0; start < len(items); {
		end := start + 1
		for end < len(items) && items[end].y-items[start].y <= m.config.SameLineTolerance {
			end++
		}
		sort.SliceStable(items[start:end], func(i, j int) bool {
			return items[start+i].x < items[start+j].x
		})
		start = end
	}

	var blocks []model.Block
	var para []string
	var paraBottom float64
	var paraHeight float64

	flush := func() {
		if len(para) > 0 {
			blocks = append(blocks, model.Paragraph{Text: strings.Join(para, " ")})
			para = nil
		}
	}

	for _, item := range items {
		if item.run == nil {
			flush()
			blocks = append(blocks, item.block)
			continue
		}

		run := *item.run
		if level := m.levels.Level(run.FontSize); level > 0 {
			flush()
			blocks = append(blocks, model.Heading{Level: level, Text: strings.TrimSpace(run.Text)})
			continue
		}

		gap := run.Top() - paraBottom
		limit := m.config.LineGapFactor * lineHeight(paraHeight, run)
		if len(para) > 0 && gap <= limit {
			para = append(para, strings.TrimSpace(run.Text))
		} else {
			flush()
			para = []string{strings.TrimSpace(run.Text)}
		}
		paraBottom = run.BBox.Bottom()
		paraHeight = run.BBox.Height
	}
	flush()

	return blocks, nil
}

// insideAnyTable reports whether a run's box is fully contained in any
// table region's box.
func insideAnyTable(box model.BBox, tables []model.TableRegion) bool {
	for _, t := range tables {
		if t.BBox.ContainsBox(box) {
			return true
		}
	}
	return false
}

// lineHeight picks a reference line height for the contiguity test,
// falling back to the run's own height or font size at a paragraph start.
func lineHeight(prev float64, run model.TextRun) float64 {
	if prev > 0 {
		return prev
	}
	if run.BBox.Height > 0 {
		return run.BBox.Height
	}
	return run.FontSize
}
