// Package memmap models the memory-mapped register interface of a
// hardware component: address blocks containing registers, registers
// containing bit fields, and replicated register arrays.
//
// Definitions are plain data, normally decoded from a YAML map file but
// equally constructible in code. A map goes through three lifecycle
// steps: Resolve assigns omitted offsets and expands bit notation,
// Validate collects every structural violation, and the driver package
// binds the resolved map to a bus as runtime registers. Definitions are
// immutable once resolved.
package memmap
