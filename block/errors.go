// SPDX-License-Identifier: MIT

package block

import "errors"

var (
	// ErrInvalidBlock signals a normalized block with an empty row or column span.
	ErrInvalidBlock = errors.New("block: empty row or column span")

	// ErrOutOfRange signals a negative bound, a negative N, or an end beyond N.
	ErrOutOfRange = errors.New("block: bound out of range")

	// ErrLengthOverflow signals a pair count that does not fit the selected counting width.
	ErrLengthOverflow = errors.New("block: pair count overflows counting width")
)
