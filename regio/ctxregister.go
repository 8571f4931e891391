package regio

import (
	"context"
	"iter"
	"log"
)

// CtxRegister is the suspending counterpart of Register, bound to a
// CtxBus. The access algorithm is identical bit for bit; only the
// scheduling differs, in that every bus transaction may suspend on the
// context and interleave with other concurrent work.
//
// Cancellation between the read and the write of a compound field
// update leaves the device register as the read left it; no rollback is
// attempted.
type CtxRegister struct {
	Verbose bool // If set, logs every bus transaction.

	Name string
	Addr uint64 // Absolute byte address on the bus.

	bus CtxBus
	fieldSet
}

// NewCtxRegister binds a register at an absolute address to a
// suspending bus.
func NewCtxRegister(name string, addr uint64, bus CtxBus, fields []BitField) (reg *CtxRegister) {
	reg = &CtxRegister{
		Name:     name,
		Addr:     addr,
		bus:      bus,
		fieldSet: newFieldSet(fields),
	}

	return
}

// Field returns the descriptor of a named field.
func (reg *CtxRegister) Field(name string) (field BitField, err error) {
	return reg.field(name)
}

// Fields returns an iterator over the fields in declaration order.
func (reg *CtxRegister) Fields() iter.Seq[BitField] {
	return reg.all()
}

// ResetValue composes the register's reset value from its fields.
func (reg *CtxRegister) ResetValue() uint64 {
	return reg.reset()
}

// Read the entire register word. Bus failures propagate to the caller.
func (reg *CtxRegister) Read(ctx context.Context) (value uint64, err error) {
	value, err = reg.bus.ReadWord(ctx, reg.Addr)
	if reg.Verbose {
		log.Printf("%v: read %#x -> %#x %v", reg.Name, reg.Addr, value, err)
	}

	return
}

// Write the entire register word, exactly as given, with no masking.
func (reg *CtxRegister) Write(ctx context.Context, value uint64) (err error) {
	err = reg.bus.WriteWord(ctx, reg.Addr, value)
	if reg.Verbose {
		log.Printf("%v: write %#x <- %#x %v", reg.Name, reg.Addr, value, err)
	}

	return
}

// ReadField reads the register once and extracts the named field.
func (reg *CtxRegister) ReadField(ctx context.Context, name string) (value uint64, err error) {
	field, err := reg.checkReadable(name)
	if err != nil {
		return
	}

	word, err := reg.Read(ctx)
	if err != nil {
		return
	}

	value = field.Extract(word)
	return
}

// ReadAllFields reads the register once and extracts every field.
func (reg *CtxRegister) ReadAllFields(ctx context.Context) (values map[string]uint64, err error) {
	word, err := reg.Read(ctx)
	if err != nil {
		return
	}

	values = reg.extractAll(word)
	return
}

// WriteField updates one field with a single read-modify-write sequence.
func (reg *CtxRegister) WriteField(ctx context.Context, name string, value uint64) (err error) {
	return reg.WriteFields(ctx, map[string]uint64{name: value})
}

// WriteFields updates several fields at once: one read, every insertion,
// one write. The degraded mode on a failed initial read matches
// Register.WriteFields exactly; a cancelled context surfaces as the bus
// implementation reports it and is not treated as a bus failure unless
// wrapped in a *BusError.
func (reg *CtxRegister) WriteFields(ctx context.Context, values map[string]uint64) (err error) {
	err = reg.checkWritable(values)
	if err != nil {
		return
	}

	current, err := reg.Read(ctx)
	if err != nil {
		if !IsBusError(err) {
			return
		}
		log.Printf("%v: read %#x failed during read-modify-write: %v; assuming zero", reg.Name, reg.Addr, err)
		current = 0
	}

	return reg.Write(ctx, reg.rmw(current, values))
}
