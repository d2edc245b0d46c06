package ports

import "fmt"

type registerKey struct {
	device   byte
	register byte
}

// An I2CPort emulates a register-addressed target bus. Each registered device
// address owns a file of byte registers, addressed 0 to the register count
// minus one.
//
// The read cursor is a single value per port, shared across all device
// addresses on the bus: selecting a register while addressing one device
// moves the cursor used for sequential reads from every device. This mirrors
// the original single-controller bus behavior.
type I2CPort struct {
	registerCount int
	registers     map[registerKey]byte
	cursor        byte
}

// NewI2CPort creates an I2CPort whose devices each expose registerCount byte
// registers. The count must be between 1 and 256.
func NewI2CPort(registerCount int) *I2CPort {
	if registerCount < 1 || registerCount > 256 {
		panic(fmt.Sprintf("invalid register count %d", registerCount))
	}

	return &I2CPort{
		registerCount: registerCount,
		registers:     make(map[registerKey]byte),
	}
}

// RegisterDevice pre-fills the full register range of the device address with
// zero. Registering an address twice re-zeroes its registers.
func (p *I2CPort) RegisterDevice(deviceAddr byte) {
	for i := 0; i < p.registerCount; i++ {
		p.registers[registerKey{deviceAddr, byte(i)}] = 0x00
	}
}

// SelectRegister sets the read cursor without touching register content.
// This is the address-select phase of a write transaction.
func (p *I2CPort) SelectRegister(deviceAddr, regAddr byte) error {
	if int(regAddr) >= p.registerCount {
		return ErrRegisterOutOfRange
	}

	p.cursor = regAddr

	return nil
}

// WriteRegister sets the cursor and stores value at the addressed register.
func (p *I2CPort) WriteRegister(deviceAddr, regAddr, value byte) error {
	if int(regAddr) >= p.registerCount {
		return ErrRegisterOutOfRange
	}

	p.cursor = regAddr
	p.registers[registerKey{deviceAddr, regAddr}] = value

	return nil
}

// ReadRegister returns the byte at the cursor for the device address and
// advances the cursor by one, wrapping to zero at the register count. This
// models the sequential burst reads of register-mapped sensors.
func (p *I2CPort) ReadRegister(deviceAddr byte) byte {
	v := p.registers[registerKey{deviceAddr, p.cursor}]

	p.cursor++
	if int(p.cursor) >= p.registerCount {
		p.cursor = 0
	}

	return v
}

// ReadRegisterAt sets the cursor to the addressed register and returns its
// value without advancing.
func (p *I2CPort) ReadRegisterAt(deviceAddr, regAddr byte) (byte, error) {
	if int(regAddr) >= p.registerCount {
		return 0, ErrRegisterOutOfRange
	}

	p.cursor = regAddr

	return p.registers[registerKey{deviceAddr, regAddr}], nil
}

// RegisterCount returns the number of registers each device exposes.
func (p *I2CPort) RegisterCount() int {
	return p.registerCount
}
