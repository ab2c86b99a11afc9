package reader

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	pdf "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/tsawler/pdf2md/model"
)

// Reader decodes one PDF file. It validates and optimizes the cross
// reference table once at Open and serves all page reads from the
// resulting context.
type Reader struct {
	filename string
	ctx      *pdf.Context
}

// Open opens and validates a PDF file.
func Open(filename string) (*Reader, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ctx, err := api.ReadValidateAndOptimize(f, pdf.NewDefaultConfiguration())
	if err != nil {
		return nil, &DecodeError{Filename: filename, Err: err}
	}
	return &Reader{filename: filename, ctx: ctx}, nil
}

// Filename returns the path the reader was opened with.
func (r *Reader) Filename() string {
	return r.filename
}

// PageCount returns the document's total page count.
func (r *Reader) PageCount() int {
	return r.ctx.PageCount
}

// ReadDocument decodes every page into raw elements: positioned text
// runs, detected table regions, and, when withImages is set, image
// regions with their extracted payloads.
//
// Image regions are only recorded for placements whose payload was
// actually recovered, so every ImageRegion the pipeline sees can be
// resolved at render time.
func (r *Reader) ReadDocument(withImages bool) (*model.Document, []model.ImagePayload, error) {
	doc := model.NewDocument()
	var payloads []model.ImagePayload

	dims, dimsErr := r.ctx.PageDims()

	for pageNr := 1; pageNr <= r.ctx.PageCount; pageNr++ {
		width, height := 612.0, 792.0
		if dimsErr == nil && pageNr <= len(dims) {
			width, height = dims[pageNr-1].Width, dims[pageNr-1].Height
		}
		page := model.NewPage(pageNr, width, height)

		content, err := r.readPageContent(pageNr, width, height)
		if err != nil {
			return nil, nil, err
		}

		for _, run := range content.runs {
			page.AddElement(run)
		}
		for _, region := range detectTables(content.rects, content.runs, pageNr, width, height) {
			page.AddElement(region)
		}

		if withImages {
			pagePayloads, err := r.extractPageImages(pageNr)
			if err != nil {
				return nil, nil, err
			}
			payloads = append(payloads, pagePayloads...)

			known := make(map[string]bool, len(pagePayloads))
			for _, p := range pagePayloads {
				known[p.ID] = true
			}
			for _, placement := range content.images {
				id := imageID(pageNr, placement.name)
				if known[id] {
					page.AddElement(model.ImageRegion{ID: id, BBox: placement.bbox, Page: pageNr})
				}
			}
		}

		doc.AddPage(page)
	}

	return doc, payloads, nil
}

// readPageContent pulls one page's content stream and interprets it.
func (r *Reader) readPageContent(pageNr int, width, height float64) (*pageContent, error) {
	rd, err := pdfcpu.ExtractPageContent(r.ctx, pageNr)
	if err != nil {
		return nil, &DecodeError{Filename: r.filename, Page: pageNr, Err: err}
	}
	if rd == nil {
		return &pageContent{}, nil
	}
	data, err := io.ReadAll(rd)
	if err != nil {
		return nil, &DecodeError{Filename: r.filename, Page: pageNr, Err: err}
	}
	return parseContent(data, pageNr, width, height), nil
}

// extractPageImages decodes one page's image XObjects into payloads,
// sorted by ID for deterministic output.
func (r *Reader) extractPageImages(pageNr int) ([]model.ImagePayload, error) {
	if len(pdfcpu.ImageObjNrs(r.ctx, pageNr)) == 0 {
		return nil, nil
	}

	images, err := pdfcpu.ExtractPageImages(r.ctx, pageNr, false)
	if err != nil {
		return nil, &DecodeError{Filename: r.filename, Page: pageNr, Err: err}
	}

	var payloads []model.ImagePayload
	for _, img := range images {
		data, err := io.ReadAll(img)
		if err != nil {
			return nil, &DecodeError{Filename: r.filename, Page: pageNr, Err: err}
		}
		payloads = append(payloads, model.ImagePayload{
			ID:       imageID(pageNr, img.Name),
			Page:     pageNr,
			FileType: img.FileType,
			Data:     data,
		})
	}

	sort.Slice(payloads, func(i, j int) bool { return payloads[i].ID < payloads[j].ID })
	return payloads, nil
}

// imageID builds the stable identifier shared by an image's region and
// its payload.
func imageID(pageNr int, name string) string {
	return fmt.Sprintf("p%d_%s", pageNr, name)
}
