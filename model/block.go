package model

// BlockType represents the kind of a classified content block.
type BlockType int

const (
	BlockTypeUnknown BlockType = iota
	BlockTypeHeading
	BlockTypeParagraph
	BlockTypeTable
	BlockTypeImageRef
	BlockTypePageBreak
)

func (bt BlockType) String() string {
	switch bt {
	case BlockTypeHeading:
		return "Heading"
	case BlockTypeParagraph:
		return "Paragraph"
	case BlockTypeTable:
		return "Table"
	case BlockTypeImageRef:
		return "ImageRef"
	case BlockTypePageBreak:
		return "PageBreak"
	default:
		return "Unknown"
	}
}

// Block is the closed variant over classified content. The merge stage
// produces an ordered []Block per document; rendering consumes it once.
// Every concrete block type lives in this package so the render switch can
// be checked for exhaustiveness against BlockType.
type Block interface {
	BlockType() BlockType
}

// Heading is a structural heading inferred from font size.
type Heading struct {
	Level int // 1-6
	Text  string
}

func (h Heading) BlockType() BlockType { return BlockTypeHeading }

// Paragraph is a run of body text, possibly coalesced from several
// vertically contiguous text runs.
type Paragraph struct {
	Text string
}

func (p Paragraph) BlockType() BlockType { return BlockTypeParagraph }

// Table is a validated cell grid. Invariant: len(Rows) >= 1 and every row
// has the same column count.
type Table struct {
	Rows    [][]string
	IsEmpty bool // every cell blank after trimming
}

func (t Table) BlockType() BlockType { return BlockTypeTable }

// RowCount returns the number of rows.
func (t Table) RowCount() int { return len(t.Rows) }

// ColCount returns the number of columns.
func (t Table) ColCount() int {
	if len(t.Rows) == 0 {
		return 0
	}
	return len(t.Rows[0])
}

// ImageRef points at an image payload extracted by the reader.
type ImageRef struct {
	ImageID string
	Page    int
}

func (i ImageRef) BlockType() BlockType { return BlockTypeImageRef }

// PageBreak marks the boundary before the page with the given number.
// The marker itself is policy-free; rendering decides what to do with it.
type PageBreak struct {
	PageNumber int
}

func (p PageBreak) BlockType() BlockType { return BlockTypePageBreak }
