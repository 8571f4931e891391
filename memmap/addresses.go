package memmap

import (
	"fmt"
	"iter"

	"github.com/bleviet/ipcraft/internal"
)

// Addresses yields the absolute byte address of every register in the
// block, in declaration order. Arrays expand to NAME_<i> per element
// and group children to NAME_<i>_CHILD.
func (block *AddressBlock) Addresses() iter.Seq2[string, uint64] {
	return func(yield func(string, uint64) bool) {
		for n := range block.Registers {
			def := &block.Registers[n]
			if !walkAddresses(def, def.Name, block.BaseAddress, yield) {
				return
			}
		}
	}
}

// Addresses yields the flattened absolute address of every register in
// every block.
func (mm *MemoryMap) Addresses() iter.Seq2[string, uint64] {
	seqs := make([]iter.Seq2[string, uint64], 0, len(mm.AddressBlocks))
	for n := range mm.AddressBlocks {
		seqs = append(seqs, mm.AddressBlocks[n].Addresses())
	}

	return internal.IterSeq2Concat(seqs...)
}

func walkAddresses(def *RegisterDef, name string, base uint64, yield func(string, uint64) bool) bool {
	if def.IsArray() {
		for i := range def.Count {
			addr := base + def.ByteOffset() + uint64(i)*def.Stride
			if !walkElement(def, fmt.Sprintf("%v_%v", name, i), addr, yield) {
				return false
			}
		}
		return true
	}

	return walkElement(def, name, base+def.ByteOffset(), yield)
}

func walkElement(def *RegisterDef, name string, addr uint64, yield func(string, uint64) bool) bool {
	if !def.IsGroup() {
		return yield(name, addr)
	}

	for n := range def.Registers {
		child := &def.Registers[n]
		if !walkAddresses(child, name+"_"+child.Name, addr, yield) {
			return false
		}
	}
	return true
}
