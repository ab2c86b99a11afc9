package reader

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOpenInvalidDataDecodeError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notapdf.pdf")
	if err := os.WriteFile(path, []byte("this is not a pdf"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Open(path)
	if err == nil {
		t.Fatal("Open succeeded on non-PDF data")
	}
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("err = %v (%T), want *DecodeError", err, err)
	}
	if decodeErr.Filename != path {
		t.Errorf("Filename = %q, want %q", decodeErr.Filename, path)
	}
	if decodeErr.Unwrap() == nil {
		t.Error("Unwrap() = nil, want wrapped cause")
	}
}

func TestDecodeErrorMessage(t *testing.T) {
	cause := io.ErrUnexpectedEOF

	whole := &DecodeError{Filename: "doc.pdf", Err: cause}
	if got := whole.Error(); !strings.Contains(got, "doc.pdf") || strings.Contains(got, "page") {
		t.Errorf("Error() = %q, want file-level message without a page", got)
	}

	paged := &DecodeError{Filename: "doc.pdf", Page: 3, Err: cause}
	if got := paged.Error(); !strings.Contains(got, "page 3") {
		t.Errorf("Error() = %q, want page number in message", got)
	}
	if !errors.Is(paged, io.ErrUnexpectedEOF) {
		t.Error("errors.Is lost the wrapped cause")
	}
}
