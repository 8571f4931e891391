// Package regio implements the runtime register access layer for
// memory-mapped devices.
//
// A Register binds a named, immutable list of bit fields to one absolute
// address on a word-granularity Bus. Whole-register reads and writes pass
// values through untouched; per-field writes are read-modify-write
// sequences that never echo a pending write-1-to-clear status bit back as
// a 1, so unrelated flags are not cleared by accident.
//
// Two capability-equivalent variants exist: Register over the blocking
// Bus interface (hardware-facing backends such as JTAG or UART bridges),
// and CtxRegister over CtxBus for media whose transactions must suspend
// and interleave with other work (simulation harnesses advancing virtual
// time). Both run the same algorithm; neither performs any internal
// locking, so concurrent compound writes to the same physical register
// require external coordination by the caller.
package regio
