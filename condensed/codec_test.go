// SPDX-License-Identifier: MIT

package condensed_test

import (
	"bytes"
	"encoding/binary"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/katalvlaran/dtwmatrix/block"
	"github.com/katalvlaran/dtwmatrix/condensed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// smooth returns values with enough redundancy for both codecs to compress.
func smooth(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i % 97)
	}

	return out
}

func noisy(n int) []float64 {
	rng := rand.New(rand.NewPCG(3, 5))
	out := make([]float64, n)
	for i := range out {
		out[i] = rng.Float64()
	}

	return out
}

func TestRoundTrip(t *testing.T) {
	// 400 sequences: 79800 values, i.e. three frames with a short tail.
	h, err := condensed.NewHeader(block.Block{}, 400)
	require.NoError(t, err)
	require.Equal(t, 400*399/2, h.Length)

	for _, c := range []condensed.Compression{condensed.None, condensed.LZ4, condensed.Zstd} {
		for name, values := range map[string][]float64{"smooth": smooth(h.Length), "noisy": noisy(h.Length)} {
			t.Run(c.String()+"/"+name, func(t *testing.T) {
				var buf bytes.Buffer
				require.NoError(t, condensed.Write(&buf, h, values, c))

				got, vals, err := condensed.Read(&buf)
				require.NoError(t, err)
				assert.Equal(t, c, got.Compression)
				assert.Equal(t, h.N, got.N)
				assert.Equal(t, block.Full(400), got.Block)
				assert.Equal(t, values, vals)
			})
		}
	}
}

func TestCompressionShrinksSmoothData(t *testing.T) {
	// 200 sequences fit one frame.
	h, err := condensed.NewHeader(block.Block{}, 200)
	require.NoError(t, err)
	values := smooth(h.Length)

	var raw, lz, zs bytes.Buffer
	require.NoError(t, condensed.Write(&raw, h, values, condensed.None))
	require.NoError(t, condensed.Write(&lz, h, values, condensed.LZ4))
	require.NoError(t, condensed.Write(&zs, h, values, condensed.Zstd))

	assert.Equal(t, condensed.HeaderSize+8+h.Length*8, raw.Len(), "one raw frame")
	assert.Less(t, lz.Len(), raw.Len())
	assert.Less(t, zs.Len(), raw.Len())
}

func TestSpecialValuesSurvive(t *testing.T) {
	h, err := condensed.NewHeader(block.Block{RowBegin: 1, RowEnd: 3}, 4)
	require.NoError(t, err)
	require.Equal(t, 3, h.Length)
	values := []float64{math.Inf(1), math.NaN(), math.Copysign(0, -1)}

	var buf bytes.Buffer
	require.NoError(t, condensed.Write(&buf, h, values, condensed.Zstd))
	_, got, err := condensed.Read(&buf)
	require.NoError(t, err)
	assert.True(t, math.IsInf(got[0], 1))
	assert.True(t, math.IsNaN(got[1]))
	assert.True(t, math.Signbit(got[2]))
}

func TestEmptyBlock(t *testing.T) {
	h, err := condensed.NewHeader(block.Block{RowBegin: 3, RowEnd: 4, ColBegin: 0, ColEnd: 2}, 4)
	require.NoError(t, err)
	require.Zero(t, h.Length)

	var buf bytes.Buffer
	require.NoError(t, condensed.Write(&buf, h, nil, condensed.LZ4))
	assert.Equal(t, condensed.HeaderSize, buf.Len())

	_, got, err := condensed.Read(&buf)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestWriteRejects(t *testing.T) {
	h, err := condensed.NewHeader(block.Block{}, 4)
	require.NoError(t, err)
	var buf bytes.Buffer

	require.ErrorIs(t, condensed.Write(&buf, h, make([]float64, 5), condensed.None), condensed.ErrLengthMismatch)

	bad := h
	bad.Length = 7
	require.ErrorIs(t, condensed.Write(&buf, bad, make([]float64, 7), condensed.None), condensed.ErrLengthMismatch)

	unnormalized := condensed.Header{N: 4, Length: 6}
	require.ErrorIs(t, condensed.Write(&buf, unnormalized, make([]float64, 6), condensed.None), condensed.ErrLengthMismatch)

	require.ErrorIs(t, condensed.Write(&buf, h, make([]float64, 6), condensed.Compression(9)), condensed.ErrCorrupt)
	assert.Zero(t, buf.Len(), "nothing is written on rejection")
}

func encode(t *testing.T, c condensed.Compression) []byte {
	t.Helper()
	h, err := condensed.NewHeader(block.Block{}, 50)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, condensed.Write(&buf, h, smooth(h.Length), c))

	return buf.Bytes()
}

func TestReadRejects(t *testing.T) {
	cases := map[string]struct {
		mutate func([]byte) []byte
		want   error
	}{
		"magic":   {func(b []byte) []byte { b[0] = 'X'; return b }, condensed.ErrBadMagic},
		"version": {func(b []byte) []byte { b[4] = 2; return b }, condensed.ErrVersion},
		"codec":   {func(b []byte) []byte { b[5] = 7; return b }, condensed.ErrCorrupt},
		"length": {func(b []byte) []byte {
			binary.LittleEndian.PutUint64(b[48:], 1000)
			return b
		}, condensed.ErrLengthMismatch},
		"block": {func(b []byte) []byte {
			binary.LittleEndian.PutUint64(b[24:], 60)
			return b
		}, condensed.ErrLengthMismatch},
		"truncated header":  {func(b []byte) []byte { return b[:20] }, condensed.ErrCorrupt},
		"truncated payload": {func(b []byte) []byte { return b[:len(b)-3] }, condensed.ErrCorrupt},
		"frame size": {func(b []byte) []byte {
			binary.LittleEndian.PutUint32(b[condensed.HeaderSize:], 16)
			return b
		}, condensed.ErrCorrupt},
		"codec swap": {func(b []byte) []byte { b[5] = byte(condensed.None); return b }, condensed.ErrCorrupt},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			data := tc.mutate(encode(t, condensed.LZ4))
			_, _, err := condensed.Read(bytes.NewReader(data))
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestReadRejectsGarbledZstd(t *testing.T) {
	data := encode(t, condensed.Zstd)
	for i := condensed.HeaderSize + 8 + 4; i < len(data); i++ {
		data[i] ^= 0xA5
	}
	_, _, err := condensed.Read(bytes.NewReader(data))
	require.ErrorIs(t, err, condensed.ErrCorrupt)
}

func TestCompressionString(t *testing.T) {
	assert.Equal(t, "none", condensed.None.String())
	assert.Equal(t, "lz4", condensed.LZ4.String())
	assert.Equal(t, "zstd", condensed.Zstd.String())
	assert.Equal(t, "Compression(9)", condensed.Compression(9).String())
}
