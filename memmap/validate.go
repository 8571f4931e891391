package memmap

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/bleviet/ipcraft/regio"
)

// Severity of a validation finding.
type Severity string

const (
	SEVERITY_ERROR   = Severity("error")
	SEVERITY_WARNING = Severity("warning")
)

// ValidationError is one finding from Validate, with enough context to
// report it standalone. Findings are collected rather than raised so a
// caller can surface every problem in a single pass.
type ValidationError struct {
	Severity   Severity
	Location   string
	Message    string
	Suggestion string
}

func (ve ValidationError) Error() string {
	return fmt.Sprintf("[%v] %v: %v", strings.ToUpper(string(ve.Severity)), ve.Location, ve.Message)
}

// HasErrors reports whether any finding is an error; warnings alone do
// not prevent binding a map.
func HasErrors(findings []ValidationError) bool {
	for _, finding := range findings {
		if finding.Severity == SEVERITY_ERROR {
			return true
		}
	}
	return false
}

// Validate checks the structural invariants of a resolved memory map:
// block and register overlap, footprints within range, bit ranges
// within register width, array strides. Nothing aborts on the first
// problem; the caller receives the complete list.
func Validate(mm *MemoryMap) (findings []ValidationError) {
	findings = append(findings, checkBlockOverlap(mm)...)

	for n := range mm.AddressBlocks {
		block := &mm.AddressBlocks[n]
		location := fmt.Sprintf("map:%v:block:%v", mm.Name, block.Name)
		findings = append(findings, checkBlock(block, location)...)
	}

	return
}

func checkBlockOverlap(mm *MemoryMap) (findings []ValidationError) {
	order := make([]*AddressBlock, 0, len(mm.AddressBlocks))
	for n := range mm.AddressBlocks {
		order = append(order, &mm.AddressBlocks[n])
	}
	slices.SortStableFunc(order, func(a, b *AddressBlock) int {
		return cmp.Compare(a.BaseAddress, b.BaseAddress)
	})

	for i, block := range order {
		for _, other := range order[i+1:] {
			if other.BaseAddress >= block.EndAddress() {
				break
			}
			findings = append(findings, ValidationError{
				Severity: SEVERITY_ERROR,
				Location: fmt.Sprintf("map:%v", mm.Name),
				Message: f("overlapping address blocks: '%v' %v and '%v' %v",
					block.Name, block.HexRange(), other.Name, other.HexRange()),
			})
		}
	}

	return
}

func checkBlock(block *AddressBlock, location string) (findings []ValidationError) {
	findings = append(findings, checkRegisterNames(block.Registers, location)...)
	findings = append(findings, checkRegisterOverlap(block.Registers, location)...)

	for n := range block.Registers {
		def := &block.Registers[n]
		regLocation := fmt.Sprintf("%v:register:%v", location, def.Name)

		end := def.ByteOffset() + def.Footprint()
		if end > uint64(block.Range) {
			findings = append(findings, ValidationError{
				Severity: SEVERITY_ERROR,
				Location: regLocation,
				Message: f("register '%v' extends beyond block '%v' (register end: %#x, block size: %#x)",
					def.Name, block.Name, end, uint64(block.Range)),
			})
		}

		if align := uint64(def.Size / 8); align > 0 && def.ByteOffset()%align != 0 {
			findings = append(findings, ValidationError{
				Severity: SEVERITY_WARNING,
				Location: regLocation,
				Message: f("register '%v' is not aligned to a %v-byte boundary (offset: %#x)",
					def.Name, align, def.ByteOffset()),
				Suggestion: f("align the offset to %#x", (def.ByteOffset()/align+1)*align),
			})
		}

		findings = append(findings, checkRegister(def, regLocation)...)
	}

	return
}

func checkRegisterNames(defs []RegisterDef, location string) (findings []ValidationError) {
	seen := map[string]bool{}
	for n := range defs {
		name := defs[n].Name
		if seen[name] {
			findings = append(findings, ValidationError{
				Severity:   SEVERITY_ERROR,
				Location:   location,
				Message:    f("duplicate register name: '%v'", name),
				Suggestion: f("rename one of the registers named '%v'", name),
			})
		}
		seen[name] = true
	}
	return
}

func checkRegisterOverlap(defs []RegisterDef, location string) (findings []ValidationError) {
	order := make([]*RegisterDef, 0, len(defs))
	for n := range defs {
		order = append(order, &defs[n])
	}
	slices.SortStableFunc(order, func(a, b *RegisterDef) int {
		return cmp.Compare(a.ByteOffset(), b.ByteOffset())
	})

	for i, def := range order {
		end := def.ByteOffset() + def.Footprint()
		for _, other := range order[i+1:] {
			if other.ByteOffset() >= end {
				break
			}
			findings = append(findings, ValidationError{
				Severity: SEVERITY_ERROR,
				Location: location,
				Message: f("overlapping registers: '%v' at %#x and '%v' at %#x",
					def.Name, def.ByteOffset(), other.Name, other.ByteOffset()),
			})
		}
	}

	return
}

func checkRegister(def *RegisterDef, location string) (findings []ValidationError) {
	if def.Size > regio.MAX_REGISTER_WIDTH {
		findings = append(findings, ValidationError{
			Severity: SEVERITY_ERROR,
			Location: location,
			Message: f("register '%v' width %v exceeds the %v-bit maximum",
				def.Name, def.Size, regio.MAX_REGISTER_WIDTH),
		})
	}

	findings = append(findings, checkFields(def, location)...)

	if def.IsArray() {
		findings = append(findings, checkArray(def, location)...)
	}

	if def.IsGroup() {
		findings = append(findings, checkRegisterNames(def.Registers, location)...)
		findings = append(findings, checkRegisterOverlap(def.Registers, location)...)
		for n := range def.Registers {
			child := &def.Registers[n]
			findings = append(findings, checkRegister(child, fmt.Sprintf("%v:register:%v", location, child.Name))...)
		}
	}

	return
}

func checkFields(def *RegisterDef, location string) (findings []ValidationError) {
	seen := map[string]bool{}
	var used uint64

	for n := range def.Fields {
		field := &def.Fields[n]

		if seen[field.Name] {
			findings = append(findings, ValidationError{
				Severity:   SEVERITY_ERROR,
				Location:   location,
				Message:    f("duplicate field name: '%v'", field.Name),
				Suggestion: f("rename one of the fields named '%v'", field.Name),
			})
		}
		seen[field.Name] = true

		// Bit range violations are hard errors, never warnings.
		if field.BitOffset()+field.BitWidth() > def.Size {
			findings = append(findings, ValidationError{
				Severity: SEVERITY_ERROR,
				Location: location,
				Message: f("field '%v' %v extends beyond the %v-bit register",
					field.Name, bitRangeOf(field), def.Size),
			})
			continue
		}

		mask := ((uint64(1) << field.BitWidth()) - 1) << field.BitOffset()
		if used&mask != 0 {
			findings = append(findings, ValidationError{
				Severity: SEVERITY_ERROR,
				Location: location,
				Message:  f("field '%v' %v overlaps a previous field", field.Name, bitRangeOf(field)),
			})
		}
		used |= mask
	}

	return
}

func checkArray(def *RegisterDef, location string) (findings []ValidationError) {
	if def.Stride < WORD_SIZE || def.Stride%WORD_SIZE != 0 {
		findings = append(findings, ValidationError{
			Severity:   SEVERITY_ERROR,
			Location:   location,
			Message:    f("array '%v' stride %v is not a multiple of the %v-byte word", def.Name, def.Stride, WORD_SIZE),
			Suggestion: f("use a stride of at least %v bytes, word aligned", WORD_SIZE),
		})
		return
	}

	if size := def.ElementSize(); size > def.Stride {
		findings = append(findings, ValidationError{
			Severity: SEVERITY_ERROR,
			Location: location,
			Message: f("array '%v' element footprint %#x exceeds stride %#x",
				def.Name, size, def.Stride),
		})
	}

	return
}

func bitRangeOf(field *BitFieldDef) string {
	msb := field.BitOffset() + field.BitWidth() - 1
	if msb == field.BitOffset() {
		return fmt.Sprintf("[%d]", field.BitOffset())
	}
	return fmt.Sprintf("[%d:%d]", msb, field.BitOffset())
}
