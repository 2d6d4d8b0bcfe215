package bitstream

import "errors"

// ErrTruncated is returned when a read runs off the end of the stream.
var ErrTruncated = errors.New("bitstream truncated")

// ErrMalformed is returned when the stream violates the container structure:
// an oversized field width, an unterminated VBR, or a bad block header.
var ErrMalformed = errors.New("bitstream malformed")

// Reader decodes a bitstream from an in-memory buffer.
type Reader struct {
	data []byte
	pos  uint64

	// The abbreviation width currently in effect.
	width uint

	widths []uint
}

// NewReader creates a reader over the given buffer, positioned at the start
// of the stream and outside any block.
func NewReader(data []byte) *Reader {
	return &Reader{data: data, width: TopLevelAbbrevWidth}
}

// AtEnd returns whether the stream is exhausted.
func (r *Reader) AtEnd() bool {
	return r.pos >= uint64(len(r.data))*8
}

// Read returns the next `bits` bits of the stream as a little-endian value.
func (r *Reader) Read(bits uint) (uint64, error) {
	if bits > 64 {
		return 0, ErrMalformed
	}
	if r.pos+uint64(bits) > uint64(len(r.data))*8 {
		return 0, ErrTruncated
	}

	var v uint64
	var got uint
	for got < bits {
		used := uint(r.pos % 8)
		take := 8 - used
		if bits-got < take {
			take = bits - got
		}

		chunk := uint64(r.data[r.pos/8]>>used) & (1<<take - 1)
		v |= chunk << got

		r.pos += uint64(take)
		got += take
	}

	return v, nil
}

// ReadVBR reads a variable-bit-rate integer with the given chunk width.
func (r *Reader) ReadVBR(width uint) (uint64, error) {
	payload := width - 1

	var v uint64
	var shift uint
	for {
		chunk, err := r.Read(width)
		if err != nil {
			return 0, err
		}

		if shift >= 64 {
			return 0, ErrMalformed
		}
		v |= (chunk & (1<<payload - 1)) << shift

		if chunk&(1<<payload) == 0 {
			return v, nil
		}
		shift += payload
	}
}

// ReadBlob reads a length-prefixed byte blob.
func (r *Reader) ReadBlob() ([]byte, error) {
	n, err := r.ReadVBR(16)
	if err != nil {
		return nil, err
	}
	if err := r.alignTo(8); err != nil {
		return nil, err
	}

	if r.pos/8+n > uint64(len(r.data)) {
		return nil, ErrTruncated
	}

	data := make([]byte, n)
	copy(data, r.data[r.pos/8:])
	r.pos += n * 8

	return data, nil
}

// ReadAbbrevID reads an abbreviation ID at the width currently in effect.
func (r *Reader) ReadAbbrevID() (uint64, error) {
	return r.Read(r.width)
}

// EnterBlock reads a block header after its EnterBlockID abbreviation and
// descends into the block.  It returns the block ID and the interior length
// in 32-bit words.
func (r *Reader) EnterBlock() (uint64, uint64, error) {
	blockID, err := r.ReadVBR(8)
	if err != nil {
		return 0, 0, err
	}

	abbrevWidth, err := r.ReadVBR(4)
	if err != nil {
		return 0, 0, err
	}
	if abbrevWidth == 0 || abbrevWidth > 32 {
		return 0, 0, ErrMalformed
	}

	if err := r.alignTo(32); err != nil {
		return 0, 0, err
	}

	words, err := r.Read(32)
	if err != nil {
		return 0, 0, err
	}

	r.widths = append(r.widths, r.width)
	r.width = uint(abbrevWidth)

	return blockID, words, nil
}

// EndBlock consumes the padding after an EndBlockID abbreviation and ascends
// out of the block.
func (r *Reader) EndBlock() error {
	if err := r.alignTo(32); err != nil {
		return err
	}
	if len(r.widths) == 0 {
		return ErrMalformed
	}

	r.width = r.widths[len(r.widths)-1]
	r.widths = r.widths[:len(r.widths)-1]
	return nil
}

// SkipBlock skips over a block just entered with EnterBlock, given its
// interior length in words.
func (r *Reader) SkipBlock(words uint64) error {
	skip := words * 32
	if r.pos+skip > uint64(len(r.data))*8 {
		return ErrTruncated
	}
	r.pos += skip

	if len(r.widths) == 0 {
		return ErrMalformed
	}
	r.width = r.widths[len(r.widths)-1]
	r.widths = r.widths[:len(r.widths)-1]
	return nil
}

// alignTo advances the stream to the given bit boundary.
func (r *Reader) alignTo(boundary uint64) error {
	if r.pos%boundary == 0 {
		return nil
	}

	skip := boundary - r.pos%boundary
	if r.pos+skip > uint64(len(r.data))*8 {
		return ErrTruncated
	}

	r.pos += skip
	return nil
}
