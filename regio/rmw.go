package regio

import (
	"iter"
	"slices"
)

// fieldSet is the ordered, immutable field list shared by the blocking
// and suspending register variants. All of the pure bit arithmetic of
// the read-modify-write sequence lives here; the register types only
// differ in how they schedule the two bus transactions around it.
type fieldSet struct {
	fields []BitField
	byName map[string]int
}

func newFieldSet(fields []BitField) (fs fieldSet) {
	fs.fields = slices.Clone(fields)
	fs.byName = make(map[string]int, len(fields))
	for n, field := range fs.fields {
		fs.byName[field.Name] = n
	}
	return
}

func (fs fieldSet) field(name string) (field BitField, err error) {
	n, ok := fs.byName[name]
	if !ok {
		err = ErrFieldUnknown(name)
		return
	}
	field = fs.fields[n]
	return
}

func (fs fieldSet) all() iter.Seq[BitField] {
	return slices.Values(fs.fields)
}

// reset composes the register reset value from the field reset values.
func (fs fieldSet) reset() (value uint64) {
	for _, field := range fs.fields {
		value = field.Insert(value, field.Reset)
	}
	return
}

// extractAll splits a register word into per-field values.
func (fs fieldSet) extractAll(word uint64) (values map[string]uint64) {
	values = make(map[string]uint64, len(fs.fields))
	for _, field := range fs.fields {
		values[field.Name] = field.Extract(word)
	}
	return
}

// checkReadable validates a field read request.
func (fs fieldSet) checkReadable(name string) (field BitField, err error) {
	field, err = fs.field(name)
	if err != nil {
		return
	}
	if !field.Access.Readable() {
		err = ErrFieldWriteOnly(name)
	}
	return
}

// checkWritable validates every field write request in values.
func (fs fieldSet) checkWritable(values map[string]uint64) (err error) {
	for name, value := range values {
		var field BitField
		field, err = fs.field(name)
		if err != nil {
			return
		}
		if !field.Access.Writable() {
			err = ErrFieldReadOnly(name)
			return
		}
		if value > field.MaxValue() {
			err = ErrValueRange{Field: name, Value: value, Max: field.MaxValue()}
			return
		}
	}
	return
}

// rmw computes the word written back by a field update. Every bit
// belonging to a write-1-to-clear field is zeroed regardless of the
// write targets, so the bus write never re-asserts a pending status
// flag that was echoed by the preceding read. Target values are then
// inserted over that base.
func (fs fieldSet) rmw(current uint64, values map[string]uint64) (word uint64) {
	word = current
	for _, field := range fs.fields {
		if field.Access == ACCESS_RW1C {
			word &^= field.RegisterMask()
		}
	}
	for _, field := range fs.fields {
		value, ok := values[field.Name]
		if !ok {
			continue
		}
		word = field.Insert(word, value)
	}
	return
}
