package bitstream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixedFields_RoundTrip(t *testing.T) {
	w := NewWriter()
	w.Emit(0xA5, 8)
	w.Emit(1, 1)
	w.Emit(2, 2)
	w.Emit(0xDEADBEEF, 32)
	w.Emit(0xFFFFFFFFFFFFFFFF, 64)

	r := NewReader(w.Bytes())

	v, err := r.Read(8)
	require.NoError(t, err)
	assert.Equal(t, uint64(0xA5), v)

	v, err = r.Read(1)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), v)

	v, err = r.Read(2)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), v)

	v, err = r.Read(32)
	require.NoError(t, err)
	assert.Equal(t, uint64(0xDEADBEEF), v)

	v, err = r.Read(64)
	require.NoError(t, err)
	assert.Equal(t, uint64(0xFFFFFFFFFFFFFFFF), v)
}

func TestVBR_RoundTrip(t *testing.T) {
	values := []uint64{0, 1, 31, 32, 127, 128, 1 << 20, 1<<63 + 17, 0xFFFFFFFFFFFFFFFF}
	widths := []uint{4, 6, 16}

	for _, width := range widths {
		w := NewWriter()
		for _, v := range values {
			w.EmitVBR(v, width)
		}

		r := NewReader(w.Bytes())
		for _, v := range values {
			got, err := r.ReadVBR(width)
			require.NoError(t, err)
			assert.Equal(t, v, got, "vbr%d value %d", width, v)
		}
	}
}

func TestBlob_RoundTrip(t *testing.T) {
	w := NewWriter()
	w.Emit(5, 3) // leave the stream unaligned before the blob
	w.EmitBlob([]byte("hello blob"))
	w.EmitBlob(nil)
	w.Emit(2, 2)

	r := NewReader(w.Bytes())

	_, err := r.Read(3)
	require.NoError(t, err)

	blob, err := r.ReadBlob()
	require.NoError(t, err)
	assert.Equal(t, []byte("hello blob"), blob)

	blob, err = r.ReadBlob()
	require.NoError(t, err)
	assert.Empty(t, blob)

	v, err := r.Read(2)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), v)
}

func TestBlocks_EnterAndEnd(t *testing.T) {
	w := NewWriter()
	w.EnterBlock(8, 4)
	w.EmitAbbrevID(FirstRecordID)
	w.EmitVBR(12345, 16)
	w.EmitAbbrevID(EndBlockID)
	w.EndBlock()

	r := NewReader(w.Bytes())

	id, err := r.ReadAbbrevID()
	require.NoError(t, err)
	assert.Equal(t, uint64(EnterBlockID), id)

	blockID, _, err := r.EnterBlock()
	require.NoError(t, err)
	assert.Equal(t, uint64(8), blockID)

	id, err = r.ReadAbbrevID()
	require.NoError(t, err)
	assert.Equal(t, uint64(FirstRecordID), id)

	v, err := r.ReadVBR(16)
	require.NoError(t, err)
	assert.Equal(t, uint64(12345), v)

	id, err = r.ReadAbbrevID()
	require.NoError(t, err)
	assert.Equal(t, uint64(EndBlockID), id)
	require.NoError(t, r.EndBlock())

	assert.True(t, r.AtEnd())
}

func TestBlocks_Skip(t *testing.T) {
	w := NewWriter()

	w.EnterBlock(0, 3)
	w.EmitAbbrevID(5)
	w.EmitBlob([]byte("ignored diagnostic content"))
	w.EmitAbbrevID(EndBlockID)
	w.EndBlock()

	w.EnterBlock(8, 4)
	w.EmitAbbrevID(7)
	w.EmitAbbrevID(EndBlockID)
	w.EndBlock()

	r := NewReader(w.Bytes())

	id, err := r.ReadAbbrevID()
	require.NoError(t, err)
	require.Equal(t, uint64(EnterBlockID), id)

	blockID, words, err := r.EnterBlock()
	require.NoError(t, err)
	require.Equal(t, uint64(0), blockID)
	require.NoError(t, r.SkipBlock(words))

	// The next entry is the second block, unaffected by the skip.
	id, err = r.ReadAbbrevID()
	require.NoError(t, err)
	require.Equal(t, uint64(EnterBlockID), id)

	blockID, _, err = r.EnterBlock()
	require.NoError(t, err)
	assert.Equal(t, uint64(8), blockID)

	id, err = r.ReadAbbrevID()
	require.NoError(t, err)
	assert.Equal(t, uint64(7), id)
}

func TestRead_Truncated(t *testing.T) {
	w := NewWriter()
	w.Emit(3, 2)

	r := NewReader(w.Bytes())
	_, err := r.Read(2)
	require.NoError(t, err)

	// Only the padding bits of the final byte remain.
	_, err = r.Read(8)
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestReadVBR_Unterminated(t *testing.T) {
	// A stream of all-ones never terminates a VBR chunk sequence: the reader
	// must fail rather than loop or overflow.
	data := []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF,
		0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}

	r := NewReader(data)
	_, err := r.ReadVBR(4)
	assert.Error(t, err)
}
