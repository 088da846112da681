// SPDX-License-Identifier: MIT

package distmatrix

import "errors"

var (
	// ErrOutputTooSmall signals an output buffer shorter than the block's pair count.
	// Nothing is written when it is returned.
	ErrOutputTooSmall = errors.New("distmatrix: output buffer smaller than block length")

	// ErrShape signals inconsistent layout arguments (ndim <= 0, negative rows,
	// non-positive cols, or data shorter than rows×cols×ndim).
	ErrShape = errors.New("distmatrix: inconsistent input shape")
)
