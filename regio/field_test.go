package regio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBitField_New(t *testing.T) {
	assert := assert.New(t)

	field, err := NewBitField("MODE", 4, 3, ACCESS_RW, 0b101)
	assert.NoError(err)
	assert.Equal("MODE", field.Name)
	assert.Equal(uint(4), field.Offset)
	assert.Equal(uint(3), field.Width)
	assert.Equal(ACCESS_RW, field.Access)
	assert.Equal(uint64(0b101), field.Reset)
}

func TestBitField_New_Invalid(t *testing.T) {
	assert := assert.New(t)

	_, err := NewBitField("ZERO", 0, 0, ACCESS_RW, 0)
	assert.ErrorIs(err, ErrFieldWidth)

	_, err = NewBitField("WIDE", 0, 65, ACCESS_RW, 0)
	assert.ErrorIs(err, ErrFieldWidth)

	_, err = NewBitField("EDGE", 60, 8, ACCESS_RW, 0)
	assert.ErrorIs(err, ErrFieldBounds)

	_, err = NewBitField("BAD", 0, 1, Access(42), 0)
	assert.ErrorIs(err, ErrFieldAccess)
}

func TestBitField_Mask(t *testing.T) {
	assert := assert.New(t)

	field, err := NewBitField("NIBBLE", 8, 4, ACCESS_RW, 0)
	assert.NoError(err)
	assert.Equal(uint64(0xf), field.Mask())
	assert.Equal(uint64(0xf), field.MaxValue())
	assert.Equal(uint64(0xf00), field.RegisterMask())

	// A full-width field masks the whole word.
	full, err := NewBitField("WORD", 0, 64, ACCESS_RW, 0)
	assert.NoError(err)
	assert.Equal(^uint64(0), full.Mask())
	assert.Equal(^uint64(0), full.RegisterMask())
}

// Extract(Insert(0, v)) == v for every width and offset combination.
func TestBitField_RoundTrip(t *testing.T) {
	assert := assert.New(t)

	for width := uint(1); width <= MAX_REGISTER_WIDTH; width++ {
		for offset := uint(0); offset+width <= MAX_REGISTER_WIDTH; offset++ {
			field, err := NewBitField("F", offset, width, ACCESS_RW, 0)
			assert.NoError(err)

			max := field.MaxValue()
			for _, value := range []uint64{0, 1, max / 2, max - 1, max} {
				value &= max
				word := field.Insert(0, value)
				assert.Equal(value, field.Extract(word),
					"width=%v offset=%v value=%#x", width, offset, value)
			}
		}
	}
}

func TestBitField_Insert_Truncates(t *testing.T) {
	assert := assert.New(t)

	field, err := NewBitField("TWO", 4, 2, ACCESS_RW, 0)
	assert.NoError(err)

	// Oversized values are masked, never an error.
	assert.Equal(uint64(0b11<<4), field.Insert(0, 0xff))
	assert.Equal(uint64(0b01<<4), field.Insert(0, 0b101))
}

func TestBitField_Insert_Preserves(t *testing.T) {
	assert := assert.New(t)

	field, err := NewBitField("MID", 8, 8, ACCESS_RW, 0)
	assert.NoError(err)

	word := field.Insert(0xffff_ffff_ffff_ffff, 0x5a)
	assert.Equal(uint64(0xffff_ffff_ffff_5aff), word)
}

func TestBitField_BitRange(t *testing.T) {
	assert := assert.New(t)

	single, _ := NewBitField("S", 3, 1, ACCESS_RW, 0)
	assert.Equal("[3]", single.BitRange())

	wide, _ := NewBitField("W", 4, 4, ACCESS_RW, 0)
	assert.Equal("[7:4]", wide.BitRange())
}

func TestAccess_Policy(t *testing.T) {
	assert := assert.New(t)

	assert.True(ACCESS_RW.Readable())
	assert.True(ACCESS_RW.Writable())
	assert.True(ACCESS_RO.Readable())
	assert.False(ACCESS_RO.Writable())
	assert.False(ACCESS_WO.Readable())
	assert.True(ACCESS_WO.Writable())
	assert.True(ACCESS_RW1C.Readable())
	assert.True(ACCESS_RW1C.Writable())

	assert.Equal("rw", ACCESS_RW.String())
	assert.Equal("ro", ACCESS_RO.String())
	assert.Equal("wo", ACCESS_WO.String())
	assert.Equal("rw1c", ACCESS_RW1C.String())
}
