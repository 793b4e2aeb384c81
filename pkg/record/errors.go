package record

import (
	"errors"
	"fmt"
)

// ErrEmpty marks a zero-length data file. An empty file decodes to zero
// records; callers decide whether that is reportable or fatal.
var ErrEmpty = errors.New("empty data file")

// MalformedFileError reports a buffer whose length is not an exact multiple
// of the format's record size.
type MalformedFileError struct {
	Format     Format
	Size       int
	RecordSize int
}

func (e *MalformedFileError) Error() string {
	return fmt.Sprintf("%s: file size %d is not a multiple of the %d-byte record size (%d trailing bytes)",
		e.Format.FileName(), e.Size, e.RecordSize, e.Size%e.RecordSize)
}
