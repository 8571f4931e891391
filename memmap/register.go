package memmap

import (
	"github.com/bleviet/ipcraft/regio"
)

const (
	// DEFAULT_REGISTER_WIDTH applies when a block does not set one.
	DEFAULT_REGISTER_WIDTH = 32

	// WORD_SIZE is the minimum addressable word, in bytes.
	WORD_SIZE = 4
)

// BitFieldDef describes one bit field of a register in a map
// description. Position may be given as an explicit offset and width,
// as "[msb:lsb]" notation, or omitted entirely, in which case fields
// auto-pack from bit 0 upward in declaration order.
type BitFieldDef struct {
	Name        string  `yaml:"name"`
	Offset      *uint   `yaml:"offset"` // Bit position of the LSB.
	Width       *uint   `yaml:"width"`  // Width in bits.
	Bits        string  `yaml:"bits"`   // "[msb:lsb]" shorthand.
	Access      Access  `yaml:"access"`
	Reset       uint64  `yaml:"reset"`
	Description string  `yaml:"description"`
}

// resolve fills the field position and access policy. next is the
// running auto-pack bit position within the register; access is the
// enclosing register's default policy.
func (def *BitFieldDef) resolve(next *uint, access Access) (err error) {
	if (def.Offset == nil || def.Width == nil) && def.Bits != "" {
		offset, width, perr := ParseBitRange(def.Bits)
		if perr != nil {
			err = &ErrResolve{Location: "field:" + def.Name, Err: perr}
			return
		}
		if def.Offset == nil {
			def.Offset = &offset
		}
		if def.Width == nil {
			def.Width = &width
		}
	}

	if def.Width == nil {
		width := uint(1)
		def.Width = &width
	}
	if def.Offset == nil {
		offset := *next
		def.Offset = &offset
	}
	*next = *def.Offset + *def.Width

	if def.Access == "" {
		def.Access = access
	}

	return
}

// BitOffset returns the resolved bit position of the field's LSB.
func (def *BitFieldDef) BitOffset() (offset uint) {
	if def.Offset != nil {
		offset = *def.Offset
	}
	return
}

// BitWidth returns the resolved width in bits.
func (def *BitFieldDef) BitWidth() (width uint) {
	width = 1
	if def.Width != nil {
		width = *def.Width
	}
	return
}

// Runtime converts the resolved definition to a runtime descriptor.
func (def *BitFieldDef) Runtime() (field regio.BitField, err error) {
	return regio.NewBitField(def.Name, def.BitOffset(), def.BitWidth(), def.Access.Runtime(), def.Reset)
}

// RegisterDef describes a register within an address block. With Count
// above one it describes a replicated array instead: either of itself
// (Fields template) or of a register group (Registers template, offsets
// relative to each element base).
type RegisterDef struct {
	Name        string        `yaml:"name"`
	Offset      *uint64       `yaml:"offset"` // Byte offset within the block.
	Size        uint          `yaml:"size"`   // Width in bits.
	Access      Access        `yaml:"access"`
	Reset       uint64        `yaml:"reset"`
	Description string        `yaml:"description"`
	Fields      []BitFieldDef `yaml:"fields"`
	Registers   []RegisterDef `yaml:"registers"` // Group template children.
	Count       uint          `yaml:"count"`
	Stride      uint64        `yaml:"stride"` // Bytes between array elements.
}

// resolve fills offsets, sizes and access defaults. next is the running
// auto-pack byte offset within the enclosing block or group element.
func (def *RegisterDef) resolve(next *uint64, width uint, access Access) (err error) {
	if def.Size == 0 {
		def.Size = width
	}
	if def.Access == "" {
		def.Access = access
	}
	if def.Count == 0 {
		def.Count = 1
	}
	if def.Offset == nil {
		offset := *next
		def.Offset = &offset
	}

	var childNext uint64
	for n := range def.Registers {
		err = def.Registers[n].resolve(&childNext, width, def.Access)
		if err != nil {
			return
		}
	}

	var fieldNext uint
	for n := range def.Fields {
		err = def.Fields[n].resolve(&fieldNext, def.Access)
		if err != nil {
			err = &ErrResolve{Location: "register:" + def.Name, Err: err}
			return
		}
	}

	if def.IsArray() && def.Stride == 0 {
		// Auto stride: element footprint rounded up to the word size.
		size := def.ElementSize()
		def.Stride = (size + WORD_SIZE - 1) &^ uint64(WORD_SIZE-1)
		if def.Stride == 0 {
			def.Stride = WORD_SIZE
		}
	}

	*next = *def.Offset + def.Footprint()
	return
}

// ByteOffset returns the resolved byte offset within the block.
func (def *RegisterDef) ByteOffset() (offset uint64) {
	if def.Offset != nil {
		offset = *def.Offset
	}
	return
}

// IsArray reports whether the definition replicates.
func (def *RegisterDef) IsArray() bool {
	return def.Count > 1
}

// IsGroup reports whether the definition is a register group template.
func (def *RegisterDef) IsGroup() bool {
	return len(def.Registers) > 0
}

// ElementSize returns the byte footprint of a single element: the
// register word for a plain register, or the extent of the template
// children for a group.
func (def *RegisterDef) ElementSize() (size uint64) {
	if !def.IsGroup() {
		size = uint64(def.Size) / 8
		return
	}

	for n := range def.Registers {
		child := &def.Registers[n]
		end := child.ByteOffset() + child.Footprint()
		if end > size {
			size = end
		}
	}
	return
}

// Footprint returns the total byte footprint within the block,
// including every array element.
func (def *RegisterDef) Footprint() (size uint64) {
	if def.IsArray() {
		size = uint64(def.Count) * def.Stride
		return
	}
	return def.ElementSize()
}

// RuntimeFields converts every resolved field to its runtime
// descriptor.
func (def *RegisterDef) RuntimeFields() (fields []regio.BitField, err error) {
	fields = make([]regio.BitField, 0, len(def.Fields))
	for n := range def.Fields {
		var field regio.BitField
		field, err = def.Fields[n].Runtime()
		if err != nil {
			fields = nil
			return
		}
		fields = append(fields, field)
	}
	return
}
