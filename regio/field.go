package regio

import (
	"fmt"
)

const (
	// MAX_REGISTER_WIDTH is the widest register the runtime supports, in bits.
	MAX_REGISTER_WIDTH = 64
)

// Access is a bit field access policy.
type Access int

const (
	ACCESS_RW   = Access(0) // Read-write
	ACCESS_RO   = Access(1) // Read-only
	ACCESS_WO   = Access(2) // Write-only
	ACCESS_RW1C = Access(3) // Read, write-1-to-clear
)

func (access Access) String() (name string) {
	switch access {
	case ACCESS_RW:
		name = "rw"
	case ACCESS_RO:
		name = "ro"
	case ACCESS_WO:
		name = "wo"
	case ACCESS_RW1C:
		name = "rw1c"
	default:
		name = fmt.Sprintf("Access(%d)", int(access))
	}
	return
}

// Readable reports whether the policy permits reading the field.
func (access Access) Readable() bool {
	return access != ACCESS_WO
}

// Writable reports whether the policy permits writing the field.
func (access Access) Writable() bool {
	return access != ACCESS_RO
}

// BitField describes one named bit range within a register.
// Immutable after construction.
type BitField struct {
	Name   string
	Offset uint // Bit position of the field's LSB within the register.
	Width  uint // Width in bits, 1..MAX_REGISTER_WIDTH.
	Access Access
	Reset  uint64 // Reset value of the field.
}

// NewBitField builds a validated bit field descriptor.
func NewBitField(name string, offset uint, width uint, access Access, reset uint64) (field BitField, err error) {
	switch {
	case width < 1 || width > MAX_REGISTER_WIDTH:
		err = fmt.Errorf("%v: %w", name, ErrFieldWidth)
	case offset+width > MAX_REGISTER_WIDTH:
		err = fmt.Errorf("%v: %w", name, ErrFieldBounds)
	case access < ACCESS_RW || access > ACCESS_RW1C:
		err = fmt.Errorf("%v: %w", name, ErrFieldAccess)
	default:
		field = BitField{
			Name:   name,
			Offset: offset,
			Width:  width,
			Access: access,
			Reset:  reset,
		}
	}
	return
}

// Mask returns the field mask in field position, bits [0, Width).
// A 64-bit wide field masks the entire word.
func (field BitField) Mask() uint64 {
	return (uint64(1) << field.Width) - 1
}

// MaxValue returns the largest value the field can hold.
func (field BitField) MaxValue() uint64 {
	return field.Mask()
}

// RegisterMask returns the field mask in register position.
func (field BitField) RegisterMask() uint64 {
	return field.Mask() << field.Offset
}

// Extract returns this field's value from a whole-register value.
func (field BitField) Extract(register uint64) uint64 {
	return (register >> field.Offset) & field.Mask()
}

// Insert returns the register value with this field replaced by value.
// Values wider than the field are silently truncated to the field width.
func (field BitField) Insert(register uint64, value uint64) uint64 {
	register &^= field.RegisterMask()
	return register | ((value & field.Mask()) << field.Offset)
}

// BitRange returns the field position as "[msb:lsb]" notation.
func (field BitField) BitRange() string {
	msb := field.Offset + field.Width - 1
	if msb == field.Offset {
		return fmt.Sprintf("[%d]", field.Offset)
	}
	return fmt.Sprintf("[%d:%d]", msb, field.Offset)
}
