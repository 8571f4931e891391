package regio

import (
	"fmt"
	"iter"
)

// RegisterArray provides indexed access to a replicated register group
// at a fixed address stride.
//
// The array holds only the template: indexing computes the element
// address and constructs a fresh Register on every access, so memory is
// proportional to the indices actually touched rather than Count. Two
// handles returned for the same index behave identically.
type RegisterArray struct {
	Name   string
	Base   uint64 // Absolute byte address of element 0.
	Count  int
	Stride uint64 // Byte distance between elements.

	bus    Bus
	fields []BitField
}

// NewRegisterArray builds a lazy accessor over count elements.
func NewRegisterArray(name string, base uint64, count int, stride uint64, bus Bus, fields []BitField) (arr *RegisterArray) {
	arr = &RegisterArray{
		Name:   name,
		Base:   base,
		Count:  count,
		Stride: stride,
		bus:    bus,
		fields: fields,
	}

	return
}

// Len returns the number of elements.
func (arr *RegisterArray) Len() int {
	return arr.Count
}

// Get constructs the register bound at the indexed element address.
func (arr *RegisterArray) Get(index int) (reg *Register, err error) {
	if index < 0 || index >= arr.Count {
		err = ErrIndexRange{Index: index, Count: arr.Count}
		return
	}

	addr := arr.Base + uint64(index)*arr.Stride
	reg = NewRegister(fmt.Sprintf("%v[%v]", arr.Name, index), addr, arr.bus, arr.fields)
	return
}

// Registers returns an iterator over all elements, constructing each
// register on demand.
func (arr *RegisterArray) Registers() iter.Seq2[int, *Register] {
	return func(yield func(int, *Register) bool) {
		for index := range arr.Count {
			reg, err := arr.Get(index)
			if err != nil {
				return
			}
			if !yield(index, reg) {
				return
			}
		}
	}
}

// CtxRegisterArray is the suspending counterpart of RegisterArray,
// constructing CtxRegister elements over a CtxBus.
type CtxRegisterArray struct {
	Name   string
	Base   uint64
	Count  int
	Stride uint64

	bus    CtxBus
	fields []BitField
}

// NewCtxRegisterArray builds a lazy accessor over count elements.
func NewCtxRegisterArray(name string, base uint64, count int, stride uint64, bus CtxBus, fields []BitField) (arr *CtxRegisterArray) {
	arr = &CtxRegisterArray{
		Name:   name,
		Base:   base,
		Count:  count,
		Stride: stride,
		bus:    bus,
		fields: fields,
	}

	return
}

// Len returns the number of elements.
func (arr *CtxRegisterArray) Len() int {
	return arr.Count
}

// Get constructs the register bound at the indexed element address.
func (arr *CtxRegisterArray) Get(index int) (reg *CtxRegister, err error) {
	if index < 0 || index >= arr.Count {
		err = ErrIndexRange{Index: index, Count: arr.Count}
		return
	}

	addr := arr.Base + uint64(index)*arr.Stride
	reg = NewCtxRegister(fmt.Sprintf("%v[%v]", arr.Name, index), addr, arr.bus, arr.fields)
	return
}

// Registers returns an iterator over all elements, constructing each
// register on demand.
func (arr *CtxRegisterArray) Registers() iter.Seq2[int, *CtxRegister] {
	return func(yield func(int, *CtxRegister) bool) {
		for index := range arr.Count {
			reg, err := arr.Get(index)
			if err != nil {
				return
			}
			if !yield(index, reg) {
				return
			}
		}
	}
}
