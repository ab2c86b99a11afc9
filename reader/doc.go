// Package reader decodes PDF files into the raw positioned elements the
// conversion pipeline consumes.
//
// The heavy lifting of the binary format (xref tables, object streams,
// filters, encryption) is delegated to pdfcpu. This package's job is the
// layer above: walking each page's content stream to recover positioned
// text runs with their font sizes, clustering ruling rectangles into
// table regions with extracted cell grids, and locating placed images.
//
// The rest of the pipeline never reads raw document bytes; everything it
// sees comes out of [Reader.ReadDocument].
package reader
