// SPDX-License-Identifier: MIT

package condensed

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/katalvlaran/dtwmatrix/block"
)

// Version is the format version written by Write.
const Version = 1

// HeaderSize is the encoded size of a Header.
const HeaderSize = 56

var magic = [4]byte{'D', 'T', 'W', 'C'}

// valuesPerFrame is the number of float64 values in a full frame.
const valuesPerFrame = frameSize / 8

// Header describes a persisted block result.
type Header struct {
	N           int         // number of sequences
	Block       block.Block // normalized block
	Length      int         // number of values
	Compression Compression // payload codec; set by Read, ignored by Write
}

// NewHeader normalizes b against n and fills Length with its wide pair count.
func NewHeader(b block.Block, n int) (Header, error) {
	b.Normalize(n)
	length, err := block.Length(b, n, true)
	if err != nil {
		return Header{}, err
	}

	return Header{N: n, Block: b, Length: length}, nil
}

// check verifies that the block is valid for N and counts Length pairs.
func (h Header) check() error {
	want, err := block.Length(h.Block, h.N, true)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLengthMismatch, err)
	}
	if h.Block.RowEnd == 0 || h.Block.ColEnd == 0 {
		return fmt.Errorf("%w: block %s is not normalized", ErrLengthMismatch, h.Block)
	}
	if want != h.Length {
		return fmt.Errorf("%w: block %s holds %d pairs, header says %d", ErrLengthMismatch, h.Block, want, h.Length)
	}

	return nil
}

// Write encodes h and values to w using compression c.
//
// Implementation:
//   - Stage 1: validate h against its block and len(values) against h.Length.
//   - Stage 2: write the 56-byte little-endian header.
//   - Stage 3: write the values in frames of at most 256 KiB, each compressed
//     independently; frames that do not shrink are stored raw.
//
// Errors:
//   - ErrLengthMismatch, ErrCorrupt (unknown codec), and w's write errors.
func Write(w io.Writer, h Header, values []float64, c Compression) error {
	if !c.valid() {
		return corruptf("unknown compression %s", c)
	}
	if err := h.check(); err != nil {
		return err
	}
	if len(values) != h.Length {
		return fmt.Errorf("%w: %d values, header says %d", ErrLengthMismatch, len(values), h.Length)
	}

	bw := bufio.NewWriter(w)
	var hdr [HeaderSize]byte
	copy(hdr[0:4], magic[:])
	hdr[4] = Version
	hdr[5] = byte(c)
	le := binary.LittleEndian
	le.PutUint64(hdr[8:], uint64(h.N))
	le.PutUint64(hdr[16:], uint64(h.Block.RowBegin))
	le.PutUint64(hdr[24:], uint64(h.Block.RowEnd))
	le.PutUint64(hdr[32:], uint64(h.Block.ColBegin))
	le.PutUint64(hdr[40:], uint64(h.Block.ColEnd))
	le.PutUint64(hdr[48:], uint64(h.Length))
	if _, err := bw.Write(hdr[:]); err != nil {
		return err
	}

	buf := make([]byte, 0, min(len(values), valuesPerFrame)*8)
	for lo := 0; lo < len(values); lo += valuesPerFrame {
		chunk := values[lo:min(lo+valuesPerFrame, len(values))]
		buf = buf[:len(chunk)*8]
		for i, v := range chunk {
			le.PutUint64(buf[i*8:], math.Float64bits(v))
		}
		if err := writeFrame(bw, buf, c); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// Read decodes a stream produced by Write.
//
// The value slice grows frame by frame, so a forged Length cannot force a
// single huge allocation; a stream that ends early is ErrCorrupt.
//
// Errors:
//   - ErrBadMagic, ErrVersion, ErrCorrupt, ErrLengthMismatch.
func Read(r io.Reader) (Header, []float64, error) {
	br := bufio.NewReader(r)
	var hdr [HeaderSize]byte
	if _, err := io.ReadFull(br, hdr[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return Header{}, nil, corruptf("header: %v", err)
		}

		return Header{}, nil, err
	}
	if [4]byte(hdr[0:4]) != magic {
		return Header{}, nil, ErrBadMagic
	}
	if hdr[4] != Version {
		return Header{}, nil, fmt.Errorf("%w: %d", ErrVersion, hdr[4])
	}
	c := Compression(hdr[5])
	if !c.valid() {
		return Header{}, nil, corruptf("unknown compression %s", c)
	}

	le := binary.LittleEndian
	fields := [6]uint64{}
	for i := range fields {
		fields[i] = le.Uint64(hdr[8+i*8:])
		if fields[i] > math.MaxInt {
			return Header{}, nil, corruptf("header field %d out of range", i)
		}
	}
	h := Header{
		N: int(fields[0]),
		Block: block.Block{
			RowBegin: int(fields[1]),
			RowEnd:   int(fields[2]),
			ColBegin: int(fields[3]),
			ColEnd:   int(fields[4]),
		},
		Length:      int(fields[5]),
		Compression: c,
	}
	if err := h.check(); err != nil {
		return h, nil, err
	}

	var (
		values  []float64
		raw     = make([]byte, min(h.Length, valuesPerFrame)*8)
		scratch []byte
		err     error
	)
	for remaining := h.Length; remaining > 0; {
		k := min(remaining, valuesPerFrame)
		dst := raw[:k*8]
		if scratch, err = readFrame(br, dst, c, scratch); err != nil {
			return h, nil, err
		}
		for i := 0; i < k; i++ {
			values = append(values, math.Float64frombits(le.Uint64(dst[i*8:])))
		}
		remaining -= k
	}

	return h, values, nil
}
