package extract

import (
	crerr "github.com/cockroachdb/errors"
)

// ErrMalformedInput marks the one hard failure extraction can raise: a byte
// stream that cannot be decoded as its declared format. Empty extraction
// results are never reported through this error.
var ErrMalformedInput = crerr.New("malformed input document")

func markMalformed(err error, format string) error {
	return crerr.Mark(crerr.Wrapf(err, "decode %s", format), ErrMalformedInput)
}

// IsMalformedInput reports whether err carries the malformed-input mark.
func IsMalformedInput(err error) bool {
	return crerr.Is(err, ErrMalformedInput)
}
