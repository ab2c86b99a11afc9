package pdf2md

// Phase identifies a stage of the conversion pipeline.
type Phase int

const (
	// PhaseExtracting covers opening the file and decoding raw page
	// content.
	PhaseExtracting Phase = iota
	// PhaseClassifyingFonts covers the document-wide font size pass,
	// reported over the first half of the percentage range.
	PhaseClassifyingFonts
	// PhaseMergingContent covers per-page merging into ordered blocks,
	// reported over the second half of the percentage range.
	PhaseMergingContent
	// PhaseConvertingTables is emitted for pages whose merge produced
	// table blocks, at the same percentage as the page's merge event.
	PhaseConvertingTables
	// PhaseRendering covers markdown serialization and image writes.
	PhaseRendering
	// PhaseDone is emitted exactly once, at 100 percent.
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseExtracting:
		return "extracting"
	case PhaseClassifyingFonts:
		return "classifying fonts"
	case PhaseMergingContent:
		return "merging content"
	case PhaseConvertingTables:
		return "converting tables"
	case PhaseRendering:
		return "rendering"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// ProgressEvent is a snapshot of conversion progress. Percentage runs
// from 0 to 100 across the whole conversion: the font pass covers 0-50
// and the merge pass 50-100, regardless of page count.
type ProgressEvent struct {
	Phase       Phase
	CurrentPage int // 0 when the phase is not page-scoped
	TotalPages  int
	Percentage  float64
	Message     string
}

// ProgressFunc receives progress events during conversion. Callbacks run
// synchronously on the converting goroutine, so they should return
// quickly. A nil ProgressFunc disables reporting.
type ProgressFunc func(ProgressEvent)
