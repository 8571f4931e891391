package mapfile

import (
	"errors"

	"github.com/bleviet/ipcraft/translate"
)

var f = translate.From

var ErrNoMap = errors.New(f("document contains no memory map"))

// ErrExpression indicates a $(...) expression that did not evaluate to
// a non-negative integer.
type ErrExpression string

func (ee ErrExpression) Error() string {
	return f("'%v' is not an integer expression", string(ee))
}

func (ee ErrExpression) Is(err error) (ok bool) {
	_, ok = err.(ErrExpression)
	return
}

// ParseError wraps a map file failure with the file path.
type ParseError struct {
	Path string
	Err  error
}

func (pe *ParseError) Error() string {
	return f("%v: %v", pe.Path, pe.Err)
}

func (pe *ParseError) Unwrap() error {
	return pe.Err
}

func (pe *ParseError) Is(err error) (ok bool) {
	_, ok = err.(*ParseError)
	return
}
