// SPDX-License-Identifier: MIT

package condensed

import (
	"errors"
	"fmt"
)

var (
	// ErrBadMagic signals a stream that does not start with "DTWC".
	ErrBadMagic = errors.New("condensed: bad magic")

	// ErrVersion signals an unsupported format version.
	ErrVersion = errors.New("condensed: unsupported version")

	// ErrCorrupt signals a truncated stream, a bad frame or an unknown codec.
	ErrCorrupt = errors.New("condensed: corrupt stream")

	// ErrLengthMismatch signals a header length that disagrees with its block,
	// or a value count that disagrees with the header.
	ErrLengthMismatch = errors.New("condensed: length mismatch")
)

func corruptf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrCorrupt, fmt.Sprintf(format, args...))
}
