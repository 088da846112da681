// SPDX-License-Identifier: MIT

// Package condensed persists the compact output of one distance block.
//
// A stream is a 56-byte little-endian header followed by the values in frames:
//
//	"DTWC" | version u8 | compression u8 | reserved u16
//	N u64 | RowBegin u64 | RowEnd u64 | ColBegin u64 | ColEnd u64 | Length u64
//	frame*: [uncompressed u32][compressed u32][bytes]
//
// Each frame carries at most 256 KiB of float64 values and is compressed on its
// own with LZ4 or Zstd; a compressed size of 0 marks a raw frame. The header's
// Length must equal the pair count of its block, so a reader can size buffers
// and resume a partially computed matrix block by block.
package condensed
