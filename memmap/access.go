package memmap

import (
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bleviet/ipcraft/regio"
)

// Access is a register or field access policy as written in a map
// description. The model keeps the two write-1-to-clear variants
// distinct; both collapse to regio.ACCESS_RW1C at runtime.
type Access string

const (
	ACCESS_READ_ONLY             = Access("read-only")
	ACCESS_WRITE_ONLY            = Access("write-only")
	ACCESS_READ_WRITE            = Access("read-write")
	ACCESS_WRITE_1_TO_CLEAR      = Access("write-1-to-clear")
	ACCESS_READ_WRITE_1_TO_CLEAR = Access("read-write-1-to-clear")
)

var accessAlias = map[string]Access{
	"ro":                    ACCESS_READ_ONLY,
	"read-only":             ACCESS_READ_ONLY,
	"readonly":              ACCESS_READ_ONLY,
	"wo":                    ACCESS_WRITE_ONLY,
	"write-only":            ACCESS_WRITE_ONLY,
	"writeonly":             ACCESS_WRITE_ONLY,
	"rw":                    ACCESS_READ_WRITE,
	"read-write":            ACCESS_READ_WRITE,
	"readwrite":             ACCESS_READ_WRITE,
	"rw1c":                  ACCESS_WRITE_1_TO_CLEAR,
	"write-1-to-clear":      ACCESS_WRITE_1_TO_CLEAR,
	"write1toclear":         ACCESS_WRITE_1_TO_CLEAR,
	"read-write-1-to-clear": ACCESS_READ_WRITE_1_TO_CLEAR,
}

// ParseAccess normalizes an access spelling ("ro", "readonly", ...).
// Unknown spellings fall back to read-write; the map-file dialect is
// deliberately permissive here.
func ParseAccess(text string) (access Access) {
	access, ok := accessAlias[strings.ToLower(strings.TrimSpace(text))]
	if !ok {
		access = ACCESS_READ_WRITE
	}
	return
}

// Runtime maps the model policy to its runtime policy.
func (access Access) Runtime() (ra regio.Access) {
	switch access {
	case ACCESS_READ_ONLY:
		ra = regio.ACCESS_RO
	case ACCESS_WRITE_ONLY:
		ra = regio.ACCESS_WO
	case ACCESS_WRITE_1_TO_CLEAR, ACCESS_READ_WRITE_1_TO_CLEAR:
		ra = regio.ACCESS_RW1C
	default:
		ra = regio.ACCESS_RW
	}
	return
}

// UnmarshalYAML accepts any recognized access spelling.
func (access *Access) UnmarshalYAML(node *yaml.Node) (err error) {
	var text string
	err = node.Decode(&text)
	if err != nil {
		return
	}

	*access = ParseAccess(text)
	return
}
