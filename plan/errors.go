// SPDX-License-Identifier: MIT

package plan

import "errors"

var (
	// ErrAllocation signals that the index arrays could not be obtained:
	// the memory budget refused them or the row span is too large to address.
	ErrAllocation = errors.New("plan: cannot allocate index arrays")

	// ErrNilBlock signals a nil *block.Block argument.
	ErrNilBlock = errors.New("plan: nil block")
)
