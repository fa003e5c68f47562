package oma

import (
	"errors"
	"fmt"
)

// ErrBadMagic reports a buffer that does not start with the OMAF marker.
// Files failing this check are rejected outright; nothing after the first
// four bytes is examined.
var ErrBadMagic = errors.New("oma: bad magic, not an OMA file")

// TruncatedError reports a declared length that extends past the end of the
// buffer. The codec performs this check before every variable-length or
// fixed-section read, so corrupt files surface as a typed error instead of
// an out-of-bounds read. No partial record is ever returned.
type TruncatedError struct {
	Field string // section being read when the buffer ran out
	Need  int    // bytes the section required
	Have  int    // bytes remaining
}

func (e *TruncatedError) Error() string {
	return fmt.Sprintf("oma: truncated file: %s needs %d bytes, %d available", e.Field, e.Need, e.Have)
}

// IsTruncated reports whether err is a truncation failure.
func IsTruncated(err error) bool {
	var te *TruncatedError
	return errors.As(err, &te)
}
