package memmap

import (
	"regexp"
	"strconv"
	"strings"
)

var bitRangeRe = regexp.MustCompile(`^(\d+)(?:\s*:\s*(\d+))?$`)

// ParseBitRange parses "[msb:lsb]" or single-bit "[n]" notation into a
// bit offset and width. Brackets are optional.
func ParseBitRange(text string) (offset uint, width uint, err error) {
	clean := strings.TrimSpace(strings.Trim(strings.TrimSpace(text), "[]"))

	m := bitRangeRe.FindStringSubmatch(clean)
	if m == nil {
		err = ErrBitRange(text)
		return
	}

	msb, perr := strconv.ParseUint(m[1], 10, 32)
	if perr != nil {
		err = ErrBitRange(text)
		return
	}
	if m[2] == "" {
		offset = uint(msb)
		width = 1
		return
	}

	lsb, perr := strconv.ParseUint(m[2], 10, 32)
	if perr != nil || msb < lsb {
		err = ErrBitRange(text)
		return
	}

	offset = uint(lsb)
	width = uint(msb - lsb + 1)
	return
}
