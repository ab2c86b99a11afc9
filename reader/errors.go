package reader

import "fmt"

// DecodeError reports a failure to read or decode PDF data: a broken
// cross reference table, an unreadable content stream, or an image that
// cannot be extracted. It wraps the underlying error so callers can tell
// decode failures apart from structural conversion errors.
type DecodeError struct {
	Filename string
	Page     int // 0 when the failure is not tied to a single page
	Err      error
}

func (e *DecodeError) Error() string {
	if e.Page > 0 {
		return fmt.Sprintf("decoding %s page %d: %v", e.Filename, e.Page, e.Err)
	}
	return fmt.Sprintf("decoding %s: %v", e.Filename, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
