package driver

import (
	"fmt"
	"iter"

	"github.com/bleviet/ipcraft/memmap"
	"github.com/bleviet/ipcraft/regio"
)

// CtxDriver is the suspending counterpart of Driver, handing out
// context aware accessors over a regio.CtxBus.
type CtxDriver struct {
	Verbose bool // Propagated to every register constructed.

	mm  *memmap.MemoryMap
	bus regio.CtxBus
}

// NewCtx resolves and validates the map, then binds it to the bus. The
// binding contract matches New.
func NewCtx(mm *memmap.MemoryMap, bus regio.CtxBus) (drv *CtxDriver, err error) {
	err = mm.Resolve()
	if err != nil {
		return
	}

	if findings := memmap.Validate(mm); memmap.HasErrors(findings) {
		err = &ErrInvalidMap{Name: mm.Name, Findings: findings}
		return
	}

	drv = &CtxDriver{mm: mm, bus: bus}
	return
}

// Map returns the bound memory map.
func (drv *CtxDriver) Map() *memmap.MemoryMap {
	return drv.mm
}

// Block navigates to a named address block.
func (drv *CtxDriver) Block(name string) (blk *CtxBlock, err error) {
	def, ok := drv.mm.Block(name)
	if !ok {
		err = ErrBlockUnknown(name)
		return
	}

	blk = &CtxBlock{Name: def.Name, Base: def.BaseAddress, verbose: drv.Verbose, bus: drv.bus, def: def}
	return
}

// Blocks returns an iterator over every address block in map order.
func (drv *CtxDriver) Blocks() iter.Seq[*CtxBlock] {
	return func(yield func(*CtxBlock) bool) {
		for n := range drv.mm.AddressBlocks {
			def := &drv.mm.AddressBlocks[n]
			blk := &CtxBlock{Name: def.Name, Base: def.BaseAddress, verbose: drv.Verbose, bus: drv.bus, def: def}
			if !yield(blk) {
				return
			}
		}
	}
}

// Addresses yields the flattened absolute address of every register in
// the map.
func (drv *CtxDriver) Addresses() iter.Seq2[string, uint64] {
	return drv.mm.Addresses()
}

// CtxBlock gives access to the registers of one address block.
type CtxBlock struct {
	Name string
	Base uint64

	verbose bool
	bus     regio.CtxBus
	def     *memmap.AddressBlock
}

func (blk *CtxBlock) find(name string) (def *memmap.RegisterDef, err error) {
	for n := range blk.def.Registers {
		if blk.def.Registers[n].Name == name {
			def = &blk.def.Registers[n]
			return
		}
	}

	err = ErrRegisterUnknown(name)
	return
}

// Register constructs the accessor for a plain register.
func (blk *CtxBlock) Register(name string) (reg *regio.CtxRegister, err error) {
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

	reg = regio.NewCtxRegister(def.Name, blk.Base+def.ByteOffset(), blk.bus, fields)
	reg.Verbose = blk.verbose
	return
}

// Array constructs the accessor for a replicated plain register.
func (blk *CtxBlock) Array(name string) (arr *regio.CtxRegisterArray, err error) {
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

	arr = regio.NewCtxRegisterArray(def.Name, blk.Base+def.ByteOffset(), int(def.Count), def.Stride, blk.bus, fields)
	return
}

// Group constructs the accessor for a register group.
func (blk *CtxBlock) Group(name string) (grp *CtxGroup, err error) {
	def, err := blk.find(name)
	if err != nil {
		return
	}
	if !def.IsGroup() {
		err = ErrNotGroup(name)
		return
	}

	grp = &CtxGroup{
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

// CtxGroup gives indexed access to a replicated register group.
type CtxGroup struct {
	Name   string
	Base   uint64
	Count  int
	Stride uint64

	verbose bool
	bus     regio.CtxBus
	def     *memmap.RegisterDef
}

// Len returns the number of elements.
func (grp *CtxGroup) Len() int {
	return grp.Count
}

// Get binds the element at the index.
func (grp *CtxGroup) Get(index int) (elem *CtxGroupElement, err error) {
	if index < 0 || index >= grp.Count {
		err = regio.ErrIndexRange{Index: index, Count: grp.Count}
		return
	}

	name := grp.Name
	if grp.Count > 1 {
		name = fmt.Sprintf("%v[%v]", grp.Name, index)
	}

	elem = &CtxGroupElement{
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
func (grp *CtxGroup) Elements() iter.Seq2[int, *CtxGroupElement] {
	return func(yield func(int, *CtxGroupElement) bool) {
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

// CtxGroupElement is one element of a register group.
type CtxGroupElement struct {
	Name string
	Base uint64

	verbose bool
	bus     regio.CtxBus
	def     *memmap.RegisterDef
}

// Register constructs the accessor for a named child register.
func (elem *CtxGroupElement) Register(name string) (reg *regio.CtxRegister, err error) {
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

		reg = regio.NewCtxRegister(elem.Name+"."+child.Name, elem.Base+child.ByteOffset(), elem.bus, fields)
		reg.Verbose = elem.verbose
		return
	}

	err = ErrRegisterUnknown(name)
	return
}
