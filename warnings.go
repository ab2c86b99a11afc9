package pdf2md

import (
	"fmt"
	"strings"
)

// WarningCode identifies a class of non-fatal conversion issue.
type WarningCode string

const (
	// WarnFontClassification means font sizes gave no usable heading
	// signal, so the output contains paragraphs only.
	WarnFontClassification WarningCode = "font_classification"

	// WarnImageWrite means an image payload could not be persisted to the
	// media directory. The markdown still links the image.
	WarnImageWrite WarningCode = "image_write"

	// WarnNoText means a document decoded without any text runs.
	WarnNoText WarningCode = "no_text"
)

// Warning describes a non-fatal issue encountered during conversion.
// The conversion succeeded but the result may be imperfect.
type Warning struct {
	Code    WarningCode
	Page    int // 0 when not specific to one page
	Message string
}

func (w Warning) String() string {
	if w.Page > 0 {
		return fmt.Sprintf("[%s] page %d: %s", w.Code, w.Page, w.Message)
	}
	return fmt.Sprintf("[%s] %s", w.Code, w.Message)
}

// FormatWarnings formats warnings as a human-readable multi-line string,
// suitable for logging.
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	lines := make([]string, 0, len(warnings))
	for _, w := range warnings {
		lines = append(lines, "- "+w.String())
	}
	return strings.Join(lines, "\n")
}
