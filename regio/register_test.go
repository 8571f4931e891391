package regio

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// busMem is an in-memory word store counting transactions.
type busMem struct {
	Memory map[uint64]uint64

	Reads     int
	Writes    int
	LastAddr  uint64
	LastWrite uint64
}

var _ Bus = (*busMem)(nil)

func (bus *busMem) ReadWord(address uint64) (value uint64, err error) {
	bus.Reads++
	value = bus.Memory[address]
	return
}

func (bus *busMem) WriteWord(address uint64, value uint64) (err error) {
	if bus.Memory == nil {
		bus.Memory = map[uint64]uint64{}
	}
	bus.Memory[address] = value
	bus.Writes++
	bus.LastAddr = address
	bus.LastWrite = value
	return
}

// busReadFail reports a bus failure on every read; writes succeed.
type busReadFail struct {
	busMem
}

func (bus *busReadFail) ReadWord(address uint64) (value uint64, err error) {
	bus.Reads++
	err = &BusError{Op: "read", Addr: address, Err: errors.New("timeout")}
	return
}

// busBroken fails reads with a non-bus programming defect.
type busBroken struct {
	busMem
}

var errDefect = errors.New("this is a bug")

func (bus *busBroken) ReadWord(address uint64) (value uint64, err error) {
	err = errDefect
	return
}

func ctrlFields(t *testing.T) (fields []BitField) {
	t.Helper()

	enable, err := NewBitField("ENABLE", 0, 1, ACCESS_RW, 0)
	assert.NoError(t, err)
	irq, err := NewBitField("IRQ_FLAG", 1, 1, ACCESS_RW1C, 0)
	assert.NoError(t, err)

	fields = []BitField{enable, irq}
	return
}

func TestRegister_ReadWrite(t *testing.T) {
	assert := assert.New(t)

	bus := &busMem{Memory: map[uint64]uint64{0x40: 0xdead_beef}}
	reg := NewRegister("CTRL", 0x40, bus, ctrlFields(t))

	value, err := reg.Read()
	assert.NoError(err)
	assert.Equal(uint64(0xdead_beef), value)

	// Whole-register writes pass through unmasked; this is how an
	// explicit write-1-to-clear is performed.
	err = reg.Write(0xffff_ffff_ffff_ffff)
	assert.NoError(err)
	assert.Equal(uint64(0xffff_ffff_ffff_ffff), bus.LastWrite)
	assert.Equal(uint64(0x40), bus.LastAddr)
}

func TestRegister_WriteField_ClearProtect(t *testing.T) {
	assert := assert.New(t)

	// IRQ_FLAG is pending on the device.
	bus := &busMem{Memory: map[uint64]uint64{0x00: 0b10}}
	reg := NewRegister("CTRL", 0x00, bus, ctrlFields(t))

	err := reg.WriteField("ENABLE", 1)
	assert.NoError(err)

	// Exactly one read and one write, and the pending IRQ_FLAG bit is
	// written back as 0, never re-asserted.
	assert.Equal(1, bus.Reads)
	assert.Equal(1, bus.Writes)
	assert.Equal(uint64(0b01), bus.LastWrite)
}

func TestRegister_WriteField_ExplicitClear(t *testing.T) {
	assert := assert.New(t)

	bus := &busMem{Memory: map[uint64]uint64{0x00: 0b11}}
	reg := NewRegister("CTRL", 0x00, bus, ctrlFields(t))

	// Targeting the w1c field itself writes the 1 through.
	err := reg.WriteField("IRQ_FLAG", 1)
	assert.NoError(err)
	assert.Equal(uint64(0b11), bus.LastWrite)
}

func TestRegister_WriteField_PreservesOthers(t *testing.T) {
	assert := assert.New(t)

	mode, err := NewBitField("MODE", 4, 4, ACCESS_RW, 0)
	assert.NoError(err)
	fields := append(ctrlFields(t), mode)

	bus := &busMem{Memory: map[uint64]uint64{0x00: 0xa2}}
	reg := NewRegister("CTRL", 0x00, bus, fields)

	err = reg.WriteField("ENABLE", 1)
	assert.NoError(err)

	// MODE keeps its read value, IRQ_FLAG is zeroed, ENABLE is set.
	assert.Equal(uint64(0xa1), bus.LastWrite)
}

func TestRegister_WriteFields(t *testing.T) {
	assert := assert.New(t)

	mode, err := NewBitField("MODE", 4, 4, ACCESS_RW, 0)
	assert.NoError(err)
	fields := append(ctrlFields(t), mode)

	bus := &busMem{Memory: map[uint64]uint64{0x00: 0b10}}
	reg := NewRegister("CTRL", 0x00, bus, fields)

	err = reg.WriteFields(map[string]uint64{
		"ENABLE": 1,
		"MODE":   0x7,
	})
	assert.NoError(err)

	// One read and one write for the whole update, not one per field.
	assert.Equal(1, bus.Reads)
	assert.Equal(1, bus.Writes)
	assert.Equal(uint64(0x71), bus.LastWrite)
}

func TestRegister_WriteField_BusErrorFallback(t *testing.T) {
	assert := assert.New(t)

	bus := &busReadFail{}
	enable, err := NewBitField("ENABLE", 0, 1, ACCESS_RW, 0)
	assert.NoError(err)
	reg := NewRegister("CTRL", 0x00, bus, []BitField{enable})

	// The failed read is substituted with zero and the write proceeds;
	// the written word is computed against that assumed zero base.
	err = reg.WriteField("ENABLE", 1)
	assert.NoError(err)
	assert.Equal(1, bus.Reads)
	assert.Equal(1, bus.Writes)
	assert.Equal(enable.RegisterMask(), bus.LastWrite)
}

func TestRegister_WriteField_DefectPropagates(t *testing.T) {
	assert := assert.New(t)

	bus := &busBroken{}
	reg := NewRegister("CTRL", 0x00, bus, ctrlFields(t))

	// Only *BusError enters the degraded mode; anything else surfaces.
	err := reg.WriteField("ENABLE", 1)
	assert.ErrorIs(err, errDefect)
	assert.Equal(0, bus.Writes)
}

func TestRegister_Read_BusErrorPropagates(t *testing.T) {
	assert := assert.New(t)

	bus := &busReadFail{}
	reg := NewRegister("CTRL", 0x00, bus, ctrlFields(t))

	// Whole-register reads have no fallback.
	_, err := reg.Read()
	assert.True(IsBusError(err))

	_, err = reg.ReadField("ENABLE")
	assert.True(IsBusError(err))
}

func TestRegister_ReadField(t *testing.T) {
	assert := assert.New(t)

	bus := &busMem{Memory: map[uint64]uint64{0x00: 0b11}}
	reg := NewRegister("CTRL", 0x00, bus, ctrlFields(t))

	value, err := reg.ReadField("IRQ_FLAG")
	assert.NoError(err)
	assert.Equal(uint64(1), value)

	_, err = reg.ReadField("MISSING")
	assert.ErrorIs(err, ErrFieldUnknown("MISSING"))
}

func TestRegister_ReadAllFields(t *testing.T) {
	assert := assert.New(t)

	bus := &busMem{Memory: map[uint64]uint64{0x00: 0b11}}
	reg := NewRegister("CTRL", 0x00, bus, ctrlFields(t))

	values, err := reg.ReadAllFields()
	assert.NoError(err)
	assert.Equal(map[string]uint64{"ENABLE": 1, "IRQ_FLAG": 1}, values)
	assert.Equal(1, bus.Reads)
}

func TestRegister_AccessPolicy(t *testing.T) {
	assert := assert.New(t)

	status, err := NewBitField("STATUS", 0, 4, ACCESS_RO, 0)
	assert.NoError(err)
	key, err := NewBitField("KEY", 8, 8, ACCESS_WO, 0)
	assert.NoError(err)

	bus := &busMem{}
	reg := NewRegister("MIX", 0x00, bus, []BitField{status, key})

	err = reg.WriteField("STATUS", 1)
	assert.ErrorIs(err, ErrFieldReadOnly("STATUS"))

	_, err = reg.ReadField("KEY")
	assert.ErrorIs(err, ErrFieldWriteOnly("KEY"))

	// Policy violations never touch the bus.
	assert.Equal(0, bus.Reads)
	assert.Equal(0, bus.Writes)
}

func TestRegister_ValueRange(t *testing.T) {
	assert := assert.New(t)

	bus := &busMem{}
	reg := NewRegister("CTRL", 0x00, bus, ctrlFields(t))

	err := reg.WriteField("ENABLE", 2)
	assert.ErrorIs(err, ErrValueRange{})
	assert.Equal(0, bus.Writes)
}

func TestRegister_ResetValue(t *testing.T) {
	assert := assert.New(t)

	mode, err := NewBitField("MODE", 4, 4, ACCESS_RW, 0xa)
	assert.NoError(err)
	enable, err := NewBitField("ENABLE", 0, 1, ACCESS_RW, 1)
	assert.NoError(err)

	reg := NewRegister("CTRL", 0x00, &busMem{}, []BitField{enable, mode})
	assert.Equal(uint64(0xa1), reg.ResetValue())
}

func TestRegister_Stateless(t *testing.T) {
	assert := assert.New(t)

	bus := &busMem{Memory: map[uint64]uint64{0x08: 0x5a}}
	fields := ctrlFields(t)

	// Two handles for the same address behave identically.
	one := NewRegister("CTRL", 0x08, bus, fields)
	two := NewRegister("CTRL", 0x08, bus, fields)

	v1, err := one.Read()
	assert.NoError(err)
	v2, err := two.Read()
	assert.NoError(err)
	assert.Equal(v1, v2)
}
