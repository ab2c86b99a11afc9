// Package markdown renders classified content blocks into markdown text.
//
// The [Renderer] walks an ordered block sequence exactly once and emits
// headings, paragraphs, pipe tables, image references, and page
// demarcation according to its [Config]. Rendering is a pure transform
// except for one boundary effect: when a media directory is configured,
// image payloads are persisted as the ImageRef blocks that reference them
// are rendered. A failed image write never corrupts the returned text; it
// surfaces as a secondary [OutputWriteError] beside the result.
package markdown
