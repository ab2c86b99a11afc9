package model

// ImagePayload carries the decoded bytes of an extracted image, keyed by
// the same ID the reader assigned to the matching ImageRegion. FileType is
// the payload's format extension without a dot ("png", "jpg", ...).
type ImagePayload struct {
	ID       string
	Page     int
	FileType string
	Data     []byte
}

// Filename returns the file name the payload is persisted under.
func (p ImagePayload) Filename() string {
	if p.FileType == "" {
		return p.ID
	}
	return p.ID + "." + p.FileType
}
