// Package model provides the intermediate representation for document
// content as it moves through the conversion pipeline.
//
// Two families of types live here. Raw element types ([TextRun],
// [TableRegion], [ImageRegion]) are produced by the decoding reader and
// carry page positions; they are immutable once produced. Block types
// ([Heading], [Paragraph], [Table], [ImageRef], [PageBreak]) are the
// structurally classified output of the merge stage and the input to
// markdown rendering.
//
// # Coordinates
//
// All positions use top-based page coordinates: Y is the distance from the
// top of the page and increases downward, so ascending Y matches reading
// order. The reader normalizes the PDF coordinate system (origin at the
// bottom left) on the way in.
package model
