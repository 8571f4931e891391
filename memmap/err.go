package memmap

import (
	"github.com/bleviet/ipcraft/translate"
)

var f = translate.From

// ErrBitRange indicates malformed "[msb:lsb]" bit notation.
type ErrBitRange string

func (eb ErrBitRange) Error() string {
	return f("'%v' is not a bit range", string(eb))
}

func (eb ErrBitRange) Is(err error) (ok bool) {
	_, ok = err.(ErrBitRange)
	return
}

// ErrByteSize indicates a malformed byte count.
type ErrByteSize string

func (es ErrByteSize) Error() string {
	return f("'%v' is not a byte size", string(es))
}

func (es ErrByteSize) Is(err error) (ok bool) {
	_, ok = err.(ErrByteSize)
	return
}

// ErrResolve reports where a structural resolution failure occurred.
type ErrResolve struct {
	Location string
	Err      error
}

func (er *ErrResolve) Error() string {
	return f("%v: %v", er.Location, er.Err)
}

func (er *ErrResolve) Unwrap() error {
	return er.Err
}
