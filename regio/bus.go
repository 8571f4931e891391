package regio

import (
	"context"
	"errors"
)

// Bus is a blocking word-granularity communication medium between the
// register runtime and a physical or simulated device.
//
// Implementations must report a failed transaction (timeout, NACK,
// disconnect) by returning an error wrapping *BusError. Any other error
// is treated by the runtime as a programming defect and propagates
// unmodified; in particular the read-modify-write degraded mode never
// applies to it.
type Bus interface {
	// ReadWord reads one word from the byte address.
	ReadWord(address uint64) (value uint64, err error)
	// WriteWord writes one word to the byte address.
	WriteWord(address uint64, value uint64) error
}

// CtxBus is the suspending counterpart of Bus, for media whose
// transactions must interleave with other concurrent work between word
// operations. Implementations honor context cancellation; a cancelled
// operation mid-sequence leaves the device register indeterminate, as
// the runtime never promises compound atomicity.
type CtxBus interface {
	ReadWord(ctx context.Context, address uint64) (value uint64, err error)
	WriteWord(ctx context.Context, address uint64, value uint64) error
}

// BusError reports a failed bus transaction. It is the single designated
// failure kind of both bus interfaces.
type BusError struct {
	Op   string // "read" or "write"
	Addr uint64
	Err  error
}

func (be *BusError) Error() string {
	if be.Err == nil {
		return f("bus %v at %#x failed", be.Op, be.Addr)
	}
	return f("bus %v at %#x: %v", be.Op, be.Addr, be.Err)
}

func (be *BusError) Unwrap() error {
	return be.Err
}

// IsBusError reports whether any error in the chain is a *BusError.
func IsBusError(err error) bool {
	var be *BusError
	return errors.As(err, &be)
}
