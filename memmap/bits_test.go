package memmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseBitRange(t *testing.T) {
	assert := assert.New(t)

	cases := []struct {
		text   string
		offset uint
		width  uint
	}{
		{"[7:0]", 0, 8},
		{"[7:4]", 4, 4},
		{"[0]", 0, 1},
		{"[31]", 31, 1},
		{"15:8", 8, 8},
		{" [ 3 : 2 ] ", 2, 2},
		{"[63:0]", 0, 64},
	}

	for _, c := range cases {
		offset, width, err := ParseBitRange(c.text)
		assert.NoError(err, c.text)
		assert.Equal(c.offset, offset, c.text)
		assert.Equal(c.width, width, c.text)
	}
}

func TestParseBitRange_Invalid(t *testing.T) {
	assert := assert.New(t)

	for _, text := range []string{"", "[]", "[4:7]", "[a:b]", "[1:2:3]", "bits"} {
		_, _, err := ParseBitRange(text)
		assert.ErrorIs(err, ErrBitRange(""), text)
	}
}

func FuzzParseBitRange(f *testing.F) {
	f.Add("[7:0]")
	f.Add("[0]")
	f.Add("63:32")
	f.Add("")
	f.Add("[9999999999999:0]")

	f.Fuzz(func(t *testing.T, text string) {
		offset, width, err := ParseBitRange(text)
		if err != nil {
			return
		}
		// A successful parse yields a non-empty range with msb >= lsb.
		if width < 1 {
			t.Errorf("ParseBitRange(%q) width %v", text, width)
		}
		if offset+width < offset {
			t.Errorf("ParseBitRange(%q) overflows: offset %v width %v", text, offset, width)
		}
	})
}

func TestParseByteSize(t *testing.T) {
	assert := assert.New(t)

	cases := []struct {
		text string
		size ByteSize
	}{
		{"256", 256},
		{"0x1000", 0x1000},
		{"4K", 4096},
		{"4k", 4096},
		{"2M", 2 * 1024 * 1024},
		{"1G", 1024 * 1024 * 1024},
		{" 8 K ", 8192},
	}

	for _, c := range cases {
		size, err := ParseByteSize(c.text)
		assert.NoError(err, c.text)
		assert.Equal(c.size, size, c.text)
	}
}

func TestParseByteSize_Invalid(t *testing.T) {
	assert := assert.New(t)

	for _, text := range []string{"", "K", "4T", "lots", "-1"} {
		_, err := ParseByteSize(text)
		assert.ErrorIs(err, ErrByteSize(""), text)
	}
}

func TestParseAccess(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(ACCESS_READ_ONLY, ParseAccess("ro"))
	assert.Equal(ACCESS_READ_ONLY, ParseAccess("ReadOnly"))
	assert.Equal(ACCESS_WRITE_ONLY, ParseAccess("write-only"))
	assert.Equal(ACCESS_WRITE_1_TO_CLEAR, ParseAccess("rw1c"))
	assert.Equal(ACCESS_READ_WRITE_1_TO_CLEAR, ParseAccess("read-write-1-to-clear"))

	// Unknown spellings fall back to read-write.
	assert.Equal(ACCESS_READ_WRITE, ParseAccess("mystery"))
	assert.Equal(ACCESS_READ_WRITE, ParseAccess(""))
}
