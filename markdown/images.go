package markdown

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tsawler/pdf2md/model"
)

// writeImageFile persists one image payload under dir. The bytes go to a
// temporary file first and are renamed into place, so a failure never
// leaves a partial file behind.
func writeImageFile(dir string, payload model.ImagePayload) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating media dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, payload.ID+"-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(payload.Data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing image data: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}

	final := filepath.Join(dir, payload.Filename())
	if err := os.Rename(tmpName, final); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("finalizing image file: %w", err)
	}
	return nil
}
