package markdown

import "fmt"

// RenderError reports a structural rendering failure, such as an image
// reference with no extracted payload behind it. It aborts the conversion.
type RenderError struct {
	Page    int
	ImageID string
	Reason  string
}

func (e *RenderError) Error() string {
	if e.ImageID != "" {
		return fmt.Sprintf("render failed on page %d: image %s: %s", e.Page, e.ImageID, e.Reason)
	}
	return fmt.Sprintf("render failed on page %d: %s", e.Page, e.Reason)
}

// OutputWriteError reports a file-system failure while persisting an image
// payload. It is secondary: the returned markdown still contains the image
// reference, and already-computed text is not invalidated.
type OutputWriteError struct {
	Path    string
	Page    int
	ImageID string
	Err     error
}

func (e *OutputWriteError) Error() string {
	return fmt.Sprintf("writing image %s (page %d) to %s: %v", e.ImageID, e.Page, e.Path, e.Err)
}

func (e *OutputWriteError) Unwrap() error {
	return e.Err
}
