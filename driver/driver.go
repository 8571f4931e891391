package driver

import (
	"fmt"
	"iter"

	"github.com/bleviet/ipcraft/memmap"
	"github.com/bleviet/ipcraft/regio"
)

// Driver gives register level access to one component over a blocking
// bus, following a resolved and validated memory map.
type Driver struct {
	Verbose bool // Propagated to every register constructed.

	mm  *memmap.MemoryMap
	bus regio.Bus
}

// New resolves and validates the map, then binds it to the bus. A map
// with validation errors does not bind; the returned *ErrInvalidMap
// carries every finding. Warnings alone do not prevent binding.
func New(mm *memmap.MemoryMap, bus regio.Bus) (drv *Driver, err error) {
	err = mm.Resolve()
	if err != nil {
		return
	}

	if findings := memmap.Validate(mm); memmap.HasErrors(findings) {
		err = &ErrInvalidMap{Name: mm.Name, Findings: findings}
		return
	}

	drv = &Driver{mm: mm, bus: bus}
	return
}

// Map returns the bound memory map.
func (drv *Driver) Map() *memmap.MemoryMap {
	return drv.mm
}

// Block navigates to a named address block.
func (drv *Driver) Block(name string) (blk *Block, err error) {
	def, ok := drv.mm.Block(name)
	if !ok {
		err = ErrBlockUnknown(name)
		return
	}

	blk = &Block{Name: def.Name, Base: def.BaseAddress, verbose: drv.Verbose, bus: drv.bus, def: def}
	return
}

// Blocks returns an iterator over every address block in map order.
func (drv *Driver) Blocks() iter.Seq[*Block] {
	return func(yield func(*Block) bool) {
		for n := range drv.mm.AddressBlocks {
			def := &drv.mm.AddressBlocks[n]
			blk := &Block{Name: def.Name, Base: def.BaseAddress, verbose: drv.Verbose, bus: drv.bus, def: def}
			if !yield(blk) {
				return
			}
		}
	}
}

// Addresses yields the flattened absolute address of every register in
// the map.
func (drv *Driver) Addresses() iter.Seq2[string, uint64] {
	return drv.mm.Addresses()
}

// Block gives access to the registers of one address block.
type Block struct {
	Name string
	Base uint64

	verbose bool
	bus     regio.Bus
	def     *memmap.AddressBlock
}

func (blk *Block) find(name string) (def *memmap.RegisterDef, err error) {
	for n := range blk.def.Registers {
		if blk.def.Registers[n].Name == name {
			def = &blk.def.Registers[n]
			return
		}
	}

	err = ErrRegisterUnknown(name)
	return
}

// Register constructs the accessor for a plain register. Arrays and
// groups are reached through Array and Group instead.
func (blk *Block) Register(name string) (reg *regio.Register, err error) {
	def, err := blk.find(name)
	if err != nil {
		return
	}
	if def.IsArray() || def.IsGroup() {
		err = ErrNotScalar(name)
		return
	}

	fields, err := def.RuntimeFields()
	if err != nil {
		return
	}

	reg = regio.NewRegister(def.Name, blk.Base+def.ByteOffset(), blk.bus, fields)
	reg.Verbose = blk.verbose
	return
}

// Array constructs the accessor for a replicated plain register.
func (blk *Block) Array(name string) (arr *regio.RegisterArray, err error) {
	def, err := blk.find(name)
	if err != nil {
		return
	}
	if !def.IsArray() || def.IsGroup() {
		err = ErrNotArray(name)
		return
	}

	fields, err := def.RuntimeFields()
	if err != nil {
		return
	}

	arr = regio.NewRegisterArray(def.Name, blk.Base+def.ByteOffset(), int(def.Count), def.Stride, blk.bus, fields)
	return
}

// Group constructs the accessor for a register group. A group with a
// count replicates; a plain group has a single element at index 0.
func (blk *Block) Group(name string) (grp *Group, err error) {
	def, err := blk.find(name)
	if err != nil {
		return
	}
	if !def.IsGroup() {
		err = ErrNotGroup(name)
		return
	}

	grp = &Group{
		Name:    def.Name,
		Base:    blk.Base + def.ByteOffset(),
		Count:   int(def.Count),
		Stride:  def.Stride,
		verbose: blk.verbose,
		bus:     blk.bus,
		def:     def,
	}
	return
}

// Group gives indexed access to a replicated register group. Elements
// are constructed on demand; memory does not grow with Count.
type Group struct {
	Name   string
	Base   uint64 // Absolute byte address of element 0.
	Count  int
	Stride uint64 // Byte distance between elements.

	verbose bool
	bus     regio.Bus
	def     *memmap.RegisterDef
}

// Len returns the number of elements.
func (grp *Group) Len() int {
	return grp.Count
}

// Get binds the element at the index.
func (grp *Group) Get(index int) (elem *GroupElement, err error) {
	if index < 0 || index >= grp.Count {
		err = regio.ErrIndexRange{Index: index, Count: grp.Count}
		return
	}

	name := grp.Name
	if grp.Count > 1 {
		name = fmt.Sprintf("%v[%v]", grp.Name, index)
	}

	elem = &GroupElement{
		Name:    name,
		Base:    grp.Base + uint64(index)*grp.Stride,
		verbose: grp.verbose,
		bus:     grp.bus,
		def:     grp.def,
	}
	return
}

// Elements returns an iterator over all elements, constructing each on
// demand.
func (grp *Group) Elements() iter.Seq2[int, *GroupElement] {
	return func(yield func(int, *GroupElement) bool) {
		for index := range grp.Count {
			elem, err := grp.Get(index)
			if err != nil {
				return
			}
			if !yield(index, elem) {
				return
			}
		}
	}
}

// GroupElement is one element of a register group, holding the child
// registers at the element's base address.
type GroupElement struct {
	Name string
	Base uint64

	verbose bool
	bus     regio.Bus
	def     *memmap.RegisterDef
}

// Register constructs the accessor for a named child register.
func (elem *GroupElement) Register(name string) (reg *regio.Register, err error) {
	for n := range elem.def.Registers {
		child := &elem.def.Registers[n]
		if child.Name != name {
			continue
		}

		var fields []regio.BitField
		fields, err = child.RuntimeFields()
		if err != nil {
			return
		}

		reg = regio.NewRegister(elem.Name+"."+child.Name, elem.Base+child.ByteOffset(), elem.bus, fields)
		reg.Verbose = elem.verbose
		return
	}

	err = ErrRegisterUnknown(name)
	return
}
