package regio

import (
	"errors"

	"github.com/bleviet/ipcraft/translate"
)

var f = translate.From

var (
	// Bit field construction errors
	ErrFieldWidth  = errors.New(f("field width invalid"))
	ErrFieldBounds = errors.New(f("field beyond register boundary"))
	ErrFieldAccess = errors.New(f("field access unknown"))
)

// ErrFieldUnknown indicates a field name not present in the register.
type ErrFieldUnknown string

func (eu ErrFieldUnknown) Error() string {
	return f("field %v unknown", string(eu))
}

func (eu ErrFieldUnknown) Is(err error) (ok bool) {
	_, ok = err.(ErrFieldUnknown)
	return
}

// ErrFieldReadOnly indicates a write to a read-only field.
type ErrFieldReadOnly string

func (er ErrFieldReadOnly) Error() string {
	return f("field %v is read-only", string(er))
}

func (er ErrFieldReadOnly) Is(err error) (ok bool) {
	_, ok = err.(ErrFieldReadOnly)
	return
}

// ErrFieldWriteOnly indicates a read of a write-only field.
type ErrFieldWriteOnly string

func (ew ErrFieldWriteOnly) Error() string {
	return f("field %v is write-only", string(ew))
}

func (ew ErrFieldWriteOnly) Is(err error) (ok bool) {
	_, ok = err.(ErrFieldWriteOnly)
	return
}

// ErrValueRange indicates a field value wider than the field.
type ErrValueRange struct {
	Field string
	Value uint64
	Max   uint64
}

func (ev ErrValueRange) Error() string {
	return f("value %#x exceeds field %v maximum %#x", ev.Value, ev.Field, ev.Max)
}

func (ev ErrValueRange) Is(err error) (ok bool) {
	_, ok = err.(ErrValueRange)
	return
}

// ErrIndexRange indicates a register array access outside [0, Count).
type ErrIndexRange struct {
	Index int
	Count int
}

func (ei ErrIndexRange) Error() string {
	return f("index %v out of range [0, %v)", ei.Index, ei.Count)
}

func (ei ErrIndexRange) Is(err error) (ok bool) {
	_, ok = err.(ErrIndexRange)
	return
}
