// SPDX-License-Identifier: MIT

package condensed

import (
	"encoding/binary"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects the payload codec.
type Compression uint8

const (
	// None stores frames raw.
	None Compression = 0
	// LZ4 uses LZ4 block compression (fast, good for hot data).
	LZ4 Compression = 1
	// Zstd uses ZSTD block compression (better ratio, good for cold data).
	Zstd Compression = 2
)

// String returns the codec name.
func (c Compression) String() string {
	switch c {
	case None:
		return "none"
	case LZ4:
		return "lz4"
	case Zstd:
		return "zstd"
	default:
		return fmt.Sprintf("Compression(%d)", uint8(c))
	}
}

func (c Compression) valid() bool { return c <= Zstd }

const (
	// frameSize is the largest uncompressed payload of one frame.
	frameSize = 256 * 1024

	// frameHeaderSize covers [uncompressed u32][compressed u32].
	frameHeaderSize = 8
)

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() (*zstd.Encoder, error) {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder), nil
	}

	return zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault), zstd.WithEncoderConcurrency(1))
}

func putZstdEncoder(enc *zstd.Encoder) { zstdEncoderPool.Put(enc) }

func getZstdDecoder() (*zstd.Decoder, error) {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder), nil
	}

	return zstd.NewReader(nil, zstd.WithDecoderConcurrency(1), zstd.WithDecoderMaxMemory(2*frameSize))
}

func putZstdDecoder(dec *zstd.Decoder) { zstdDecoderPool.Put(dec) }

// writeFrame compresses data with c and writes one framed block to w.
// Frames that do not shrink below 90% of their size are stored raw
// (compressed size 0).
func writeFrame(w io.Writer, data []byte, c Compression) error {
	var (
		packed []byte
		err    error
	)
	switch c {
	case LZ4:
		packed, err = compressLZ4(data)
	case Zstd:
		packed, err = compressZstd(data)
	}
	if err != nil {
		return err
	}
	if len(packed) == 0 || float64(len(packed)) > float64(len(data))*0.9 {
		packed = nil
	}

	var hdr [frameHeaderSize]byte
	binary.LittleEndian.PutUint32(hdr[0:], uint32(len(data)))
	binary.LittleEndian.PutUint32(hdr[4:], uint32(len(packed)))
	if _, err = w.Write(hdr[:]); err != nil {
		return err
	}
	if packed == nil {
		_, err = w.Write(data)
	} else {
		_, err = w.Write(packed)
	}

	return err
}

func compressLZ4(data []byte) ([]byte, error) {
	dst := make([]byte, lz4.CompressBlockBound(len(data)))
	n, err := lz4.CompressBlock(data, dst, nil)
	if err != nil {
		return nil, err
	}

	return dst[:n], nil // n == 0 means incompressible
}

func compressZstd(data []byte) ([]byte, error) {
	enc, err := getZstdEncoder()
	if err != nil {
		return nil, err
	}
	defer putZstdEncoder(enc)

	return enc.EncodeAll(data, nil), nil
}

// readFrame reads one frame from r into dst (len(dst) == expected uncompressed
// size) using c for compressed frames.
//
// Errors:
//   - ErrCorrupt on size disagreement or codec failure; io.ErrUnexpectedEOF
//     is reported as ErrCorrupt too.
func readFrame(r io.Reader, dst []byte, c Compression, scratch []byte) ([]byte, error) {
	var hdr [frameHeaderSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return scratch, corruptf("frame header: %v", err)
	}
	raw := binary.LittleEndian.Uint32(hdr[0:])
	packed := binary.LittleEndian.Uint32(hdr[4:])
	if int(raw) != len(dst) {
		return scratch, corruptf("frame holds %d bytes, expected %d", raw, len(dst))
	}

	if packed == 0 {
		if _, err := io.ReadFull(r, dst); err != nil {
			return scratch, corruptf("raw frame: %v", err)
		}

		return scratch, nil
	}
	if c == None || packed > uint32(lz4.CompressBlockBound(frameSize)) {
		return scratch, corruptf("compressed frame of %d bytes under %s", packed, c)
	}
	if cap(scratch) < int(packed) {
		scratch = make([]byte, packed)
	}
	scratch = scratch[:packed]
	if _, err := io.ReadFull(r, scratch); err != nil {
		return scratch, corruptf("compressed frame: %v", err)
	}

	switch c {
	case LZ4:
		n, err := lz4.UncompressBlock(scratch, dst)
		if err != nil {
			return scratch, corruptf("lz4: %v", err)
		}
		if n != len(dst) {
			return scratch, corruptf("lz4 decoded %d bytes, expected %d", n, len(dst))
		}
	case Zstd:
		dec, err := getZstdDecoder()
		if err != nil {
			return scratch, err
		}
		defer putZstdDecoder(dec)

		out, err := dec.DecodeAll(scratch, dst[:0])
		if err != nil {
			return scratch, corruptf("zstd: %v", err)
		}
		if len(out) != len(dst) {
			return scratch, corruptf("zstd decoded %d bytes, expected %d", len(out), len(dst))
		}
		if &out[0] != &dst[0] {
			copy(dst, out)
		}
	}

	return scratch, nil
}
