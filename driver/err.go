package driver

import (
	"strings"

	"github.com/bleviet/ipcraft/memmap"
	"github.com/bleviet/ipcraft/translate"
)

var f = translate.From

// ErrBlockUnknown names an address block the map does not contain.
type ErrBlockUnknown string

func (eb ErrBlockUnknown) Error() string {
	return f("unknown address block '%v'", string(eb))
}

func (eb ErrBlockUnknown) Is(err error) (ok bool) {
	_, ok = err.(ErrBlockUnknown)
	return
}

// ErrRegisterUnknown names a register the block does not contain.
type ErrRegisterUnknown string

func (er ErrRegisterUnknown) Error() string {
	return f("unknown register '%v'", string(er))
}

func (er ErrRegisterUnknown) Is(err error) (ok bool) {
	_, ok = err.(ErrRegisterUnknown)
	return
}

// ErrNotScalar names a definition accessed as a plain register when it
// is an array or a group.
type ErrNotScalar string

func (en ErrNotScalar) Error() string {
	return f("'%v' is not a plain register", string(en))
}

func (en ErrNotScalar) Is(err error) (ok bool) {
	_, ok = err.(ErrNotScalar)
	return
}

// ErrNotArray names a definition accessed as a register array when it
// is not one.
type ErrNotArray string

func (en ErrNotArray) Error() string {
	return f("'%v' is not a register array", string(en))
}

func (en ErrNotArray) Is(err error) (ok bool) {
	_, ok = err.(ErrNotArray)
	return
}

// ErrNotGroup names a definition accessed as a register group when it
// has no child registers.
type ErrNotGroup string

func (en ErrNotGroup) Error() string {
	return f("'%v' is not a register group", string(en))
}

func (en ErrNotGroup) Is(err error) (ok bool) {
	_, ok = err.(ErrNotGroup)
	return
}

// ErrInvalidMap refuses to bind a map that failed validation. It
// carries the complete finding list so a caller can report every
// problem at once.
type ErrInvalidMap struct {
	Name     string
	Findings []memmap.ValidationError
}

func (ei *ErrInvalidMap) Error() string {
	lines := make([]string, 0, len(ei.Findings)+1)
	lines = append(lines, f("memory map '%v' failed validation", ei.Name))
	for _, finding := range ei.Findings {
		lines = append(lines, finding.Error())
	}

	return strings.Join(lines, "\n")
}

func (ei *ErrInvalidMap) Is(err error) (ok bool) {
	_, ok = err.(*ErrInvalidMap)
	return
}
