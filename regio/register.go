package regio

import (
	"iter"
	"log"
)

// Register provides whole-register and per-field access to one word at a
// fixed absolute address on a blocking bus.
//
// A Register holds no mutable state of its own; all state lives behind
// the bus. Construction is cheap and side effect free, so building two
// handles for the same address is valid and both behave identically.
type Register struct {
	Verbose bool // If set, logs every bus transaction.

	Name string
	Addr uint64 // Absolute byte address on the bus.

	bus Bus
	fieldSet
}

// NewRegister binds a register at an absolute address to a bus.
func NewRegister(name string, addr uint64, bus Bus, fields []BitField) (reg *Register) {
	reg = &Register{
		Name:     name,
		Addr:     addr,
		bus:      bus,
		fieldSet: newFieldSet(fields),
	}

	return
}

// Field returns the descriptor of a named field.
func (reg *Register) Field(name string) (field BitField, err error) {
	return reg.field(name)
}

// Fields returns an iterator over the fields in declaration order.
func (reg *Register) Fields() iter.Seq[BitField] {
	return reg.all()
}

// ResetValue composes the register's reset value from its fields.
func (reg *Register) ResetValue() uint64 {
	return reg.reset()
}

// Read the entire register word. Bus failures propagate to the caller.
func (reg *Register) Read() (value uint64, err error) {
	value, err = reg.bus.ReadWord(reg.Addr)
	if reg.Verbose {
		log.Printf("%v: read %#x -> %#x %v", reg.Name, reg.Addr, value, err)
	}

	return
}

// Write the entire register word, exactly as given. No masking is
// applied; writing 1 bits over a write-1-to-clear field is how an
// explicit clear is performed.
func (reg *Register) Write(value uint64) (err error) {
	err = reg.bus.WriteWord(reg.Addr, value)
	if reg.Verbose {
		log.Printf("%v: write %#x <- %#x %v", reg.Name, reg.Addr, value, err)
	}

	return
}

// ReadField reads the register once and extracts the named field.
func (reg *Register) ReadField(name string) (value uint64, err error) {
	field, err := reg.checkReadable(name)
	if err != nil {
		return
	}

	word, err := reg.Read()
	if err != nil {
		return
	}

	value = field.Extract(word)
	return
}

// ReadAllFields reads the register once and extracts every field.
func (reg *Register) ReadAllFields() (values map[string]uint64, err error) {
	word, err := reg.Read()
	if err != nil {
		return
	}

	values = reg.extractAll(word)
	return
}

// WriteField updates one field with a single read-modify-write sequence.
func (reg *Register) WriteField(name string, value uint64) (err error) {
	return reg.WriteFields(map[string]uint64{name: value})
}

// WriteFields updates several fields at once: one read, every insertion,
// one write. Write-1-to-clear fields are never echoed back as 1.
//
// When the initial read fails with a bus error the sequence logs the
// failure and continues against an assumed current value of zero; the
// contents of fields outside the update are lost in the following
// write. Any other read error, and any write error, propagates.
func (reg *Register) WriteFields(values map[string]uint64) (err error) {
	err = reg.checkWritable(values)
	if err != nil {
		return
	}

	current, err := reg.Read()
	if err != nil {
		if !IsBusError(err) {
			return
		}
		log.Printf("%v: read %#x failed during read-modify-write: %v; assuming zero", reg.Name, reg.Addr, err)
		current = 0
	}

	return reg.Write(reg.rmw(current, values))
}
