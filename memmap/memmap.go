package memmap

import (
	"fmt"
)

// Usage classifies what an address block contains.
type Usage string

const (
	USAGE_REGISTER = Usage("register")
	USAGE_MEMORY   = Usage("memory")
	USAGE_RESERVED = Usage("reserved")
)

// AddressBlock is a named, base-addressed, bounded region of the memory
// map containing registers.
type AddressBlock struct {
	Name            string        `yaml:"name"`
	BaseAddress     uint64        `yaml:"baseAddress"`
	Range           ByteSize      `yaml:"range"`
	Usage           Usage         `yaml:"usage"`
	Access          Access        `yaml:"access"`
	Description     string        `yaml:"description"`
	DefaultRegWidth uint          `yaml:"defaultRegWidth"`
	Registers       []RegisterDef `yaml:"registers"`
}

// EndAddress returns the first byte address past the block.
func (block *AddressBlock) EndAddress() uint64 {
	return block.BaseAddress + uint64(block.Range)
}

// Contains reports whether the byte address falls within the block.
func (block *AddressBlock) Contains(address uint64) bool {
	return address >= block.BaseAddress && address < block.EndAddress()
}

// HexRange returns the block extent as "[0x... : 0x...)".
func (block *AddressBlock) HexRange() string {
	return fmt.Sprintf("[%#x : %#x)", block.BaseAddress, block.EndAddress())
}

// resolve fills defaults and assigns omitted register offsets in
// declaration order.
func (block *AddressBlock) resolve() (err error) {
	if block.Usage == "" {
		block.Usage = USAGE_REGISTER
	}
	if block.Access == "" {
		block.Access = ACCESS_READ_WRITE
	}
	if block.DefaultRegWidth == 0 {
		block.DefaultRegWidth = DEFAULT_REGISTER_WIDTH
	}

	var next uint64
	for n := range block.Registers {
		err = block.Registers[n].resolve(&next, block.DefaultRegWidth, block.Access)
		if err != nil {
			err = &ErrResolve{Location: "block:" + block.Name, Err: err}
			return
		}
	}

	// A missing range defaults to the extent of the registers.
	if block.Range == 0 {
		block.Range = ByteSize(next)
	}

	return
}

// MemoryMap is the complete register interface description of one
// component.
type MemoryMap struct {
	Name          string         `yaml:"name"`
	Description   string         `yaml:"description"`
	AddressBlocks []AddressBlock `yaml:"addressBlocks"`
}

// Resolve assigns omitted offsets, expands bit notation and fills
// defaults across the whole map. It must run once after construction,
// before validation or driver binding; running it again is a no-op.
func (mm *MemoryMap) Resolve() (err error) {
	for n := range mm.AddressBlocks {
		err = mm.AddressBlocks[n].resolve()
		if err != nil {
			return
		}
	}
	return
}

// BlockAt finds the address block containing the byte address.
func (mm *MemoryMap) BlockAt(address uint64) (block *AddressBlock, ok bool) {
	for n := range mm.AddressBlocks {
		if mm.AddressBlocks[n].Contains(address) {
			block = &mm.AddressBlocks[n]
			ok = true
			return
		}
	}
	return
}

// Block finds an address block by name.
func (mm *MemoryMap) Block(name string) (block *AddressBlock, ok bool) {
	for n := range mm.AddressBlocks {
		if mm.AddressBlocks[n].Name == name {
			block = &mm.AddressBlocks[n]
			ok = true
			return
		}
	}
	return
}

// FindRegister finds a register definition by name across all blocks.
func (mm *MemoryMap) FindRegister(name string) (def *RegisterDef, ok bool) {
	for n := range mm.AddressBlocks {
		block := &mm.AddressBlocks[n]
		for r := range block.Registers {
			if block.Registers[r].Name == name {
				def = &block.Registers[r]
				ok = true
				return
			}
		}
	}
	return
}

// TotalRegisters counts register definitions across all blocks.
func (mm *MemoryMap) TotalRegisters() (count int) {
	for n := range mm.AddressBlocks {
		count += len(mm.AddressBlocks[n].Registers)
	}
	return
}

// TotalAddressSpace returns the span from the lowest block base to the
// highest block end.
func (mm *MemoryMap) TotalAddressSpace() (size uint64) {
	if len(mm.AddressBlocks) == 0 {
		return
	}

	low := mm.AddressBlocks[0].BaseAddress
	high := mm.AddressBlocks[0].EndAddress()
	for n := range mm.AddressBlocks {
		block := &mm.AddressBlocks[n]
		if block.BaseAddress < low {
			low = block.BaseAddress
		}
		if block.EndAddress() > high {
			high = block.EndAddress()
		}
	}

	size = high - low
	return
}
