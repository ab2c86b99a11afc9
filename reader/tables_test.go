package reader

import (
	"reflect"
	"testing"

	"github.com/tsawler/pdf2md/model"
)

// gridCell returns one cell box of a grid anchored at (72, 200) with
// 100x30 cells, addressed by row and column.
func gridCell(row, col int) model.BBox {
	return model.NewBBox(72+float64(col)*100, 200+float64(row)*30, 100, 30)
}

// centeredRun places a small run in the middle of the given cell.
func centeredRun(cell model.BBox, text string) model.TextRun {
	c := cell.Center()
	return model.TextRun{
		Text:     text,
		FontSize: 10,
		BBox:     model.NewBBox(c.X-5, c.Y-5, 10, 10),
		Page:     1,
	}
}

func TestDetectTablesTwoByTwo(t *testing.T) {
	rects := []model.BBox{
		gridCell(0, 0), gridCell(0, 1),
		gridCell(1, 0), gridCell(1, 1),
	}
	runs := []model.TextRun{
		centeredRun(gridCell(0, 0), "A"),
		centeredRun(gridCell(0, 1), "B"),
		centeredRun(gridCell(1, 0), "1"),
		centeredRun(gridCell(1, 1), "2"),
	}

	regions := detectTables(rects, runs, 1, testPageW, testPageH)
	if len(regions) != 1 {
		t.Fatalf("got %d regions, want 1", len(regions))
	}

	want := [][]string{{"A", "B"}, {"1", "2"}}
	if !reflect.DeepEqual(regions[0].Rows, want) {
		t.Errorf("Rows = %v, want %v", regions[0].Rows, want)
	}
	bounds := regions[0].BBox
	if bounds.Left() != 72 || bounds.Top() != 200 || bounds.Width != 200 || bounds.Height != 60 {
		t.Errorf("bounds = %+v, want 72,200 200x60", bounds)
	}
	if regions[0].Page != 1 {
		t.Errorf("Page = %d, want 1", regions[0].Page)
	}
}

func TestDetectTablesTooFewCells(t *testing.T) {
	rects := []model.BBox{gridCell(0, 0), gridCell(0, 1), gridCell(1, 0)}

	if regions := detectTables(rects, nil, 1, testPageW, testPageH); regions != nil {
		t.Errorf("got %d regions from 3 rects, want none", len(regions))
	}
}

func TestDetectTablesSingleColumnRejected(t *testing.T) {
	rects := []model.BBox{
		gridCell(0, 0), gridCell(1, 0), gridCell(2, 0), gridCell(3, 0),
	}

	if regions := detectTables(rects, nil, 1, testPageW, testPageH); regions != nil {
		t.Errorf("got %d regions from a single column, want none", len(regions))
	}
}

func TestDetectTablesSingleRowRejected(t *testing.T) {
	rects := []model.BBox{
		gridCell(0, 0), gridCell(0, 1), gridCell(0, 2), gridCell(0, 3),
	}

	if regions := detectTables(rects, nil, 1, testPageW, testPageH); regions != nil {
		t.Errorf("got %d regions from a single row, want none", len(regions))
	}
}

func TestDetectTablesDropsOutOfPageRects(t *testing.T) {
	rects := []model.BBox{
		gridCell(0, 0), gridCell(0, 1),
		gridCell(1, 0), gridCell(1, 1),
		model.NewBBox(-500, 200, 100, 30),
		model.NewBBox(72, testPageH+50, 100, 30),
	}

	regions := detectTables(rects, nil, 1, testPageW, testPageH)
	if len(regions) != 1 {
		t.Fatalf("got %d regions, want 1", len(regions))
	}
	if regions[0].BBox.Left() != 72 {
		t.Errorf("off-page rect widened bounds: %+v", regions[0].BBox)
	}
}

func TestDetectTablesDropsInvalidRects(t *testing.T) {
	rects := []model.BBox{
		gridCell(0, 0), gridCell(0, 1),
		gridCell(1, 0),
		model.NewBBox(72, 260, 0, 0),
	}

	if regions := detectTables(rects, nil, 1, testPageW, testPageH); regions != nil {
		t.Errorf("zero-size rect counted toward cell minimum: %d regions", len(regions))
	}
}

func TestDetectTablesSeparateClustersSortedByPosition(t *testing.T) {
	lower := func(row, col int) model.BBox {
		return model.NewBBox(72+float64(col)*100, 500+float64(row)*30, 100, 30)
	}
	rects := []model.BBox{
		lower(0, 0), lower(0, 1), lower(1, 0), lower(1, 1),
		gridCell(0, 0), gridCell(0, 1), gridCell(1, 0), gridCell(1, 1),
	}

	regions := detectTables(rects, nil, 1, testPageW, testPageH)
	if len(regions) != 2 {
		t.Fatalf("got %d regions, want 2", len(regions))
	}
	if regions[0].BBox.Top() != 200 || regions[1].BBox.Top() != 500 {
		t.Errorf("regions out of order: tops %v, %v", regions[0].BBox.Top(), regions[1].BBox.Top())
	}
}

func TestDetectTablesMissingCellLeftEmpty(t *testing.T) {
	rects := []model.BBox{
		gridCell(0, 0), gridCell(0, 1),
		gridCell(1, 0), gridCell(1, 1),
		gridCell(2, 0),
	}
	runs := []model.TextRun{centeredRun(gridCell(2, 0), "x")}

	regions := detectTables(rects, runs, 1, testPageW, testPageH)
	if len(regions) != 1 {
		t.Fatalf("got %d regions, want 1", len(regions))
	}
	rows := regions[0].Rows
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	if rows[2][0] != "x" || rows[2][1] != "" {
		t.Errorf("row 3 = %v, want [x, empty]", rows[2])
	}
}

func TestCellTextReadingOrder(t *testing.T) {
	cell := model.NewBBox(0, 0, 200, 100)
	runs := []model.TextRun{
		{Text: "below", BBox: model.NewBBox(10, 60, 40, 10)},
		{Text: "right", BBox: model.NewBBox(100, 10, 40, 10)},
		{Text: "left", BBox: model.NewBBox(10, 10, 40, 10)},
		{Text: "outside", BBox: model.NewBBox(500, 10, 40, 10)},
		{Text: "   ", BBox: model.NewBBox(60, 10, 10, 10)},
	}

	if got := cellText(cell, runs); got != "left right below" {
		t.Errorf("cellText = %q, want %q", got, "left right below")
	}
}

func TestDistinctCoordsMergesWithinTolerance(t *testing.T) {
	cluster := []model.BBox{
		model.NewBBox(72, 100, 50, 20),
		model.NewBBox(72.8, 100, 50, 20),
		model.NewBBox(130, 100, 50, 20),
	}

	lefts := distinctCoords(cluster, func(b model.BBox) float64 { return b.Left() })
	if len(lefts) != 2 {
		t.Fatalf("got %d distinct lefts %v, want 2", len(lefts), lefts)
	}
	if lefts[0] != 72 || lefts[1] != 130 {
		t.Errorf("lefts = %v, want [72 130]", lefts)
	}
}
