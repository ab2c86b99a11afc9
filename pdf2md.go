// Package pdf2md converts PDF documents to markdown, reconstructing
// document structure from layout: font sizes become heading levels,
// ruled grids become markdown tables, and embedded images become file
// links.
//
// Basic usage:
//
//	md, warnings, err := pdf2md.Open("document.pdf").Markdown(ctx)
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", pdf2md.FormatWarnings(warnings))
//	}
//
// With options:
//
//	md, _, err := pdf2md.Open("report.pdf").
//	    RemoveHeaders().
//	    PageDemarcation(markdown.DemarcationRule).
//	    MediaDir("report_media").
//	    Markdown(ctx)
//
// For advanced use cases, the lower-level reader, layout, and markdown
// packages are also available.
package pdf2md

import (
	"github.com/tsawler/pdf2md/model"
	"github.com/tsawler/pdf2md/reader"
)

// Open opens a PDF file and returns a Converter for fluent
// configuration. The file is read lazily, when the first terminal
// operation runs.
//
// Example:
//
//	md, warnings, err := pdf2md.Open("document.pdf").Markdown(ctx)
func Open(filename string) *Converter {
	return &Converter{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromReader creates a Converter from an already-opened reader.Reader.
// This is useful when the same file is converted more than once, or when
// the caller needs the reader for other queries first.
//
// Example:
//
//	r, err := reader.Open("document.pdf")
//	if err != nil {
//	    // handle error
//	}
//	md, warnings, err := pdf2md.FromReader(r).Markdown(ctx)
func FromReader(r *reader.Reader) *Converter {
	return &Converter{
		filename: r.Filename(),
		reader:   r,
		options:  defaultOptions(),
	}
}

// FromDocument creates a Converter over an already-decoded document and
// its image payloads, skipping the PDF decode stage entirely.
func FromDocument(doc *model.Document, payloads []model.ImagePayload) *Converter {
	return &Converter{
		doc:       doc,
		payloads:  payloads,
		docLoaded: true,
		options:   defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	count := pdf2md.Must(pdf2md.Open("document.pdf").PageCount())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustMarkdown wraps a call to Markdown() or MarkdownPages() and panics
// if the error is non-nil. It discards warnings and returns just the
// value.
//
// Example:
//
//	md := pdf2md.MustMarkdown(pdf2md.Open("document.pdf").Markdown(ctx))
func MustMarkdown[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
