package regio

// MemBus is a sparse, word addressed in-memory bus for simulation and
// tests. Absent words read as zero. Transactions never fail.
type MemBus struct {
	Words map[uint64]uint64
}

func NewMemBus() (bus *MemBus) {
	bus = &MemBus{Words: map[uint64]uint64{}}

	return
}

// Reset clears every word.
func (bus *MemBus) Reset() {
	clear(bus.Words)
}

func (bus *MemBus) ReadWord(address uint64) (value uint64, err error) {
	value = bus.Words[address]
	return
}

func (bus *MemBus) WriteWord(address, value uint64) (err error) {
	bus.Words[address] = value
	return
}

var _ Bus = (*MemBus)(nil)
