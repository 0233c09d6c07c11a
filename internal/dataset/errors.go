package dataset

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingColumns indicates required columns are absent from the input.
	ErrMissingColumns = errors.New("missing required columns")
	// ErrMalformed indicates the input could not be parsed as a table.
	ErrMalformed = errors.New("malformed dataset")
	// ErrUnsupported indicates an input format that cannot be loaded.
	ErrUnsupported = errors.New("unsupported dataset format")
)

// MissingColumnsError lists every required column absent from a file.
type MissingColumnsError struct {
	File    string
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s: %s: %s", e.File, ErrMissingColumns.Error(), strings.Join(e.Columns, ", "))
	}
	return fmt.Sprintf("%s: %s", ErrMissingColumns.Error(), strings.Join(e.Columns, ", "))
}

func (e *MissingColumnsError) Unwrap() error { return ErrMissingColumns }
