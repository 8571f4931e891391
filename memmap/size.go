package memmap

import (
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ByteSize is a byte count that map descriptions may write as a plain
// integer or with a K/M/G suffix multiplying by powers of 1024.
type ByteSize uint64

// ParseByteSize parses "256", "0x1000", "4K", "2M" or "1G".
func ParseByteSize(text string) (size ByteSize, err error) {
	clean := strings.TrimSpace(text)
	if clean == "" {
		err = ErrByteSize(text)
		return
	}

	mult := uint64(1)
	switch clean[len(clean)-1] {
	case 'K', 'k':
		mult = 1 << 10
	case 'M', 'm':
		mult = 1 << 20
	case 'G', 'g':
		mult = 1 << 30
	}
	if mult != 1 {
		clean = strings.TrimSpace(clean[:len(clean)-1])
	}

	value, perr := strconv.ParseUint(clean, 0, 64)
	if perr != nil {
		err = ErrByteSize(text)
		return
	}

	size = ByteSize(value * mult)
	return
}

// UnmarshalYAML accepts either an integer or suffixed notation.
func (size *ByteSize) UnmarshalYAML(node *yaml.Node) (err error) {
	var value uint64
	if node.Decode(&value) == nil {
		*size = ByteSize(value)
		return
	}

	var text string
	err = node.Decode(&text)
	if err != nil {
		return
	}

	*size, err = ParseByteSize(text)
	return
}
