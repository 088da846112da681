// SPDX-License-Identifier: MIT

package dtw

import "errors"

var (
	// ErrEmptyInput indicates one or both inputs are empty.
	ErrEmptyInput = errors.New("dtw: input sequences must be non-empty")

	// ErrBadInput indicates nonsensical settings (Window < -1, negative or
	// non-finite SlopePenalty / MaxDist).
	ErrBadInput = errors.New("dtw: invalid settings")

	// ErrPathNeedsMatrix indicates that path recovery requires FullMatrix mode.
	ErrPathNeedsMatrix = errors.New("dtw: ReturnPath requires MemoryMode=FullMatrix")

	// ErrDimension indicates an n-dimensional sequence whose length is not a
	// multiple of ndim, or ndim <= 0.
	ErrDimension = errors.New("dtw: sequence length is not a multiple of ndim")
)
