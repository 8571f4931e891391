package regio

import (
	"context"
)

// AsCtxBus adapts a blocking bus to the suspending contract. The
// context is checked before each transaction; the transaction itself
// still blocks and is not interrupted once started.
func AsCtxBus(bus Bus) CtxBus {
	return ctxOverBus{bus: bus}
}

type ctxOverBus struct {
	bus Bus
}

func (cb ctxOverBus) ReadWord(ctx context.Context, address uint64) (value uint64, err error) {
	if err = ctx.Err(); err != nil {
		return
	}
	return cb.bus.ReadWord(address)
}

func (cb ctxOverBus) WriteWord(ctx context.Context, address, value uint64) (err error) {
	if err = ctx.Err(); err != nil {
		return
	}
	return cb.bus.WriteWord(address, value)
}

// AsBus adapts a suspending bus to the blocking contract using the
// background context.
func AsBus(bus CtxBus) Bus {
	return busOverCtx{bus: bus}
}

type busOverCtx struct {
	bus CtxBus
}

func (bc busOverCtx) ReadWord(address uint64) (value uint64, err error) {
	return bc.bus.ReadWord(context.Background(), address)
}

func (bc busOverCtx) WriteWord(address, value uint64) (err error) {
	return bc.bus.WriteWord(context.Background(), address, value)
}
