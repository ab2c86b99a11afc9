// Package layout reconstructs document structure from raw positioned
// elements.
//
// The three stages provided here form the core of the conversion pipeline:
//
//   - [SizeClassifier] performs a whole-document pass over text runs and
//     derives a [HeaderLevelMap]: which font sizes are headings, at what
//     level, and what the body text size is.
//   - [Merger] performs a per-page pass, merging text runs, table regions,
//     and image regions into a single reading-ordered sequence of
//     model.Block values, dropping text that tables already captured.
//   - Table validation (PadRows, IsEmptyTable) normalizes ragged cell
//     grids and decides emptiness once, so downstream stages never
//     re-inspect raw cells.
//
// All stages are pure: identical input always produces identical output.
package layout
