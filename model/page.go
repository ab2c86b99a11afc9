package model

// Page represents a single page of raw decoded content.
type Page struct {
	Number   int     // 1-indexed page number
	Width    float64 // Page width in points
	Height   float64 // Page height in points
	Elements []Element
}

// NewPage creates a new page with given dimensions.
func NewPage(number int, width, height float64) *Page {
	return &Page{
		Number:   number,
		Width:    width,
		Height:   height,
		Elements: make([]Element, 0),
	}
}

// AddElement adds a raw element to the page.
func (p *Page) AddElement(elem Element) {
	p.Elements = append(p.Elements, elem)
}

// TextRuns returns the page's text runs in decode order.
func (p *Page) TextRuns() []TextRun {
	var runs []TextRun
	for _, elem := range p.Elements {
		if r, ok := elem.(TextRun); ok {
			runs = append(runs, r)
		}
	}
	return runs
}

// TableRegions returns the page's table regions in decode order.
func (p *Page) TableRegions() []TableRegion {
	var tables []TableRegion
	for _, elem := range p.Elements {
		if t, ok := elem.(TableRegion); ok {
			tables = append(tables, t)
		}
	}
	return tables
}

// ImageRegions returns the page's image regions in decode order.
func (p *Page) ImageRegions() []ImageRegion {
	var images []ImageRegion
	for _, elem := range p.Elements {
		if i, ok := elem.(ImageRegion); ok {
			images = append(images, i)
		}
	}
	return images
}

// Document represents a fully decoded document: an ordered sequence of
// pages owned exclusively by one conversion run.
type Document struct {
	Pages []*Page
}

// NewDocument creates a new empty document.
func NewDocument() *Document {
	return &Document{Pages: make([]*Page, 0)}
}

// AddPage appends a page to the document.
func (d *Document) AddPage(page *Page) {
	d.Pages = append(d.Pages, page)
}

// PageCount returns the total number of pages.
func (d *Document) PageCount() int {
	return len(d.Pages)
}

// AllTextRuns returns every text run across all pages in page order.
func (d *Document) AllTextRuns() []TextRun {
	var runs []TextRun
	for _, page := range d.Pages {
		runs = append(runs, page.TextRuns()...)
	}
	return runs
}
