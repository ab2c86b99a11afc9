package model

// ElementType represents the type of a raw page element.
type ElementType int

const (
	ElementTypeUnknown ElementType = iota
	ElementTypeTextRun
	ElementTypeTableRegion
	ElementTypeImageRegion
)

func (et ElementType) String() string {
	switch et {
	case ElementTypeTextRun:
		return "TextRun"
	case ElementTypeTableRegion:
		return "TableRegion"
	case ElementTypeImageRegion:
		return "ImageRegion"
	default:
		return "Unknown"
	}
}

// Element is the interface for all raw page elements produced by the reader.
type Element interface {
	Type() ElementType
	BoundingBox() BBox
	PageNumber() int
}

// TextRun is a positioned run of text with a uniform font size.
type TextRun struct {
	Text     string
	FontSize float64
	BBox     BBox
	Page     int // 1-indexed page number
}

func (r TextRun) Type() ElementType { return ElementTypeTextRun }
func (r TextRun) BoundingBox() BBox { return r.BBox }
func (r TextRun) PageNumber() int   { return r.Page }

// Top returns the run's vertical position (top edge).
func (r TextRun) Top() float64 { return r.BBox.Y }

// Left returns the run's horizontal position (left edge).
func (r TextRun) Left() float64 { return r.BBox.X }

// TableRegion is a detected tabular area with its extracted cell grid.
// Rows may be ragged as produced by the reader; the merge stage pads short
// rows so every row has the same column count before a Table block is built.
type TableRegion struct {
	Rows [][]string
	BBox BBox
	Page int
}

func (t TableRegion) Type() ElementType { return ElementTypeTableRegion }
func (t TableRegion) BoundingBox() BBox { return t.BBox }
func (t TableRegion) PageNumber() int   { return t.Page }

// ImageRegion is a placed image on a page, identified by the name the
// reader assigned when extracting its payload.
type ImageRegion struct {
	ID   string
	BBox BBox
	Page int
}

func (i ImageRegion) Type() ElementType { return ElementTypeImageRegion }
func (i ImageRegion) BoundingBox() BBox { return i.BBox }
func (i ImageRegion) PageNumber() int   { return i.Page }
