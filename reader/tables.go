package reader

import (
	"sort"
	"strings"

	"github.com/tsawler/pdf2md/model"
)

const (
	// edgeTolerance is how far apart two edges may be, in points, while
	// still counting as the same grid boundary.
	edgeTolerance = 2.0

	// minTableCells is the smallest number of ruling rectangles a cluster
	// needs before it is considered a table candidate.
	minTableCells = 4
)

// detectTables clusters ruling rectangles into grid-shaped table regions
// and fills each cell's text from the runs it contains. Regions whose
// bounds fall outside the page box are discarded.
func detectTables(rects []model.BBox, runs []model.TextRun, pageNum int, pageW, pageH float64) []model.TableRegion {
	var cells []model.BBox
	for _, rect := range rects {
		if !rect.IsValid() {
			continue
		}
		if rect.Left() < -edgeTolerance || rect.Top() < -edgeTolerance ||
			rect.Right() > pageW+edgeTolerance || rect.Bottom() > pageH+edgeTolerance {
			continue
		}
		cells = append(cells, rect)
	}
	if len(cells) < minTableCells {
		return nil
	}

	var regions []model.TableRegion
	for _, cluster := range clusterRects(cells) {
		if len(cluster) < minTableCells {
			continue
		}
		if region, ok := buildRegion(cluster, runs, pageNum); ok {
			regions = append(regions, region)
		}
	}

	sort.SliceStable(regions, func(i, j int) bool {
		if regions[i].BBox.Y != regions[j].BBox.Y {
			return regions[i].BBox.Y < regions[j].BBox.Y
		}
		return regions[i].BBox.X < regions[j].BBox.X
	})
	return regions
}

// clusterRects groups rectangles whose slightly-expanded bounds touch,
// so the cells of one drawn grid end up in one cluster.
func clusterRects(rects []model.BBox) [][]model.BBox {
	n := len(rects)
	assigned := make([]bool, n)
	var clusters [][]model.BBox

	for i := 0; i < n; i++ {
		if assigned[i] {
			continue
		}
		cluster := []model.BBox{rects[i]}
		assigned[i] = true

		for grew := true; grew; {
			grew = false
			for j := 0; j < n; j++ {
				if assigned[j] {
					continue
				}
				for _, member := range cluster {
					if expand(member, edgeTolerance).Intersects(rects[j]) {
						cluster = append(cluster, rects[j])
						assigned[j] = true
						grew = true
						break
					}
				}
			}
		}
		clusters = append(clusters, cluster)
	}
	return clusters
}

func expand(b model.BBox, margin float64) model.BBox {
	return model.BBox{
		X:      b.X - margin,
		Y:      b.Y - margin,
		Width:  b.Width + 2*margin,
		Height: b.Height + 2*margin,
	}
}

// buildRegion turns one cluster of cell rectangles into a table region.
// Grid boundaries come from the distinct cell lefts and tops; each grid
// position's text is gathered from the runs whose center sits inside the
// matching cell rectangle.
func buildRegion(cluster []model.BBox, runs []model.TextRun, pageNum int) (model.TableRegion, bool) {
	lefts := distinctCoords(cluster, func(b model.BBox) float64 { return b.Left() })
	tops := distinctCoords(cluster, func(b model.BBox) float64 { return b.Top() })

	// A single row of boxes is more likely a ruled separator or a text
	// frame than a table.
	if len(lefts) < 2 || len(tops) < 2 {
		return model.TableRegion{}, false
	}

	bounds := cluster[0]
	for _, b := range cluster[1:] {
		bounds = bounds.Union(b)
	}

	rows := make([][]string, len(tops))
	for i, top := range tops {
		row := make([]string, len(lefts))
		for j, left := range lefts {
			if cell, ok := cellAt(cluster, left, top); ok {
				row[j] = cellText(cell, runs)
			}
		}
		rows[i] = row
	}

	return model.TableRegion{Rows: rows, BBox: bounds, Page: pageNum}, true
}

// distinctCoords collects one representative per tolerance-distinct
// coordinate value, sorted ascending.
func distinctCoords(cluster []model.BBox, coord func(model.BBox) float64) []float64 {
	vals := make([]float64, 0, len(cluster))
	for _, b := range cluster {
		vals = append(vals, coord(b))
	}
	sort.Float64s(vals)

	var out []float64
	for _, v := range vals {
		if len(out) == 0 || v-out[len(out)-1] > edgeTolerance {
			out = append(out, v)
		}
	}
	return out
}

// cellAt finds the cluster rectangle anchored at the given grid position.
func cellAt(cluster []model.BBox, left, top float64) (model.BBox, bool) {
	for _, b := range cluster {
		if abs(b.Left()-left) <= edgeTolerance && abs(b.Top()-top) <= edgeTolerance {
			return b, true
		}
	}
	return model.BBox{}, false
}

// cellText joins the runs whose center lies inside the cell, in reading
// order.
func cellText(cell model.BBox, runs []model.TextRun) string {
	var inside []model.TextRun
	for _, run := range runs {
		if cell.Contains(run.BBox.Center()) {
			inside = append(inside, run)
		}
	}
	sort.SliceStable(inside, func(i, j int) bool {
		if inside[i].Top() != inside[j].Top() {
			return inside[i].Top() < inside[j].Top()
		}
		return inside[i].Left() < inside[j].Left()
	})

	parts := make([]string, 0, len(inside))
	for _, run := range inside {
		if t := strings.TrimSpace(run.Text); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
