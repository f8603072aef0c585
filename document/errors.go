package document

import (
	"errors"
	"fmt"
)

// Sentinels matched by the typed errors below through errors.Is.
var (
	ErrNotFound      = errors.New("file not found")
	ErrUnknownFormat = errors.New("unknown file type")
	ErrParse         = errors.New("parse failure")
)

// NotFoundError is returned when a path cannot be resolved by the accessor,
// neither directly nor through its fallback locations.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("file %q not found", e.Path)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// UnknownFormatError is returned when neither the extension nor the leading
// bytes identify the file as XML or JSON.
type UnknownFormatError struct {
	Path string
}

func (e *UnknownFormatError) Error() string {
	return fmt.Sprintf("file %q has an unknown type", e.Path)
}

func (e *UnknownFormatError) Is(target error) bool {
	return target == ErrUnknownFormat
}

// ParseError wraps a failure to read or decode a classified file.
type ParseError struct {
	Path   string
	Format DocumentFormat
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s file %q: %v", e.Format, e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}
