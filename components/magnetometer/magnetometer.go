// Package magnetometer emulates a three-axis magnetometer attached to the
// on-board computer as an i2c target device.
package magnetometer

import (
	"encoding/binary"

	"github.com/orbitkit/fswsim/obc"
	"github.com/orbitkit/fswsim/sim"
)

// Register map of the device. The field components are int16 little endian,
// in nT.
const (
	RegStatus = 0x00
	RegFieldX = 0x01
	RegFieldY = 0x03
	RegFieldZ = 0x05
)

// StatusDataReady is set in RegStatus once a measurement has been latched.
const StatusDataReady = 0x01

// A Magnetometer latches its current field vector into the register file of
// its i2c target address on every eligible tick. The field vector itself is
// supplied by an external environment model through SetField.
type Magnetometer struct {
	*sim.ComponentBase

	computer   *obc.OnBoardComputer
	portID     int
	deviceAddr byte

	field [3]int16
}

// SetField updates the magnetic field vector the device will report, in nT.
func (m *Magnetometer) SetField(x, y, z int16) {
	m.field = [3]int16{x, y, z}
}

// MainRoutine latches the field vector into the device registers.
func (m *Magnetometer) MainRoutine(count sim.TickCount) {
	var buf [6]byte
	binary.LittleEndian.PutUint16(buf[0:2], uint16(m.field[0]))
	binary.LittleEndian.PutUint16(buf[2:4], uint16(m.field[1]))
	binary.LittleEndian.PutUint16(buf[4:6], uint16(m.field[2]))

	for i, b := range buf {
		_ = m.computer.I2CWriteRegister(
			m.portID, m.deviceAddr, RegFieldX+byte(i), b)
	}

	_ = m.computer.I2CWriteRegister(
		m.portID, m.deviceAddr, RegStatus, StatusDataReady)
}

// Builder builds Magnetometers.
type Builder struct {
	clock      *sim.ClockGenerator
	prescaler  int
	powerPort  *sim.PowerPort
	computer   *obc.OnBoardComputer
	portID     int
	deviceAddr byte
}

// MakeBuilder creates a Builder with default parameters.
func MakeBuilder() Builder {
	return Builder{
		prescaler:  1,
		deviceAddr: 0x2E,
	}
}

// WithClock sets the clock generator the device registers with.
func (b Builder) WithClock(clock *sim.ClockGenerator) Builder {
	b.clock = clock
	return b
}

// WithPrescaler sets the rate divisor of the device.
func (b Builder) WithPrescaler(prescaler int) Builder {
	b.prescaler = prescaler
	return b
}

// WithPowerPort sets the power gate of the device.
func (b Builder) WithPowerPort(p *sim.PowerPort) Builder {
	b.powerPort = p
	return b
}

// WithComputer sets the on-board computer the device attaches to.
func (b Builder) WithComputer(c *obc.OnBoardComputer) Builder {
	b.computer = c
	return b
}

// WithPortID sets the i2c port id on the computer.
func (b Builder) WithPortID(id int) Builder {
	b.portID = id
	return b
}

// WithDeviceAddr sets the i2c target address of the device.
func (b Builder) WithDeviceAddr(addr byte) Builder {
	b.deviceAddr = addr
	return b
}

// Build connects the device to its i2c port, registers it with the clock,
// and returns it.
func (b Builder) Build(name string) *Magnetometer {
	m := &Magnetometer{
		ComponentBase: sim.NewComponentBase(name, b.powerPort),
		computer:      b.computer,
		portID:        b.portID,
		deviceAddr:    b.deviceAddr,
	}

	if err := b.computer.ConnectI2C(b.portID, b.deviceAddr); err != nil {
		panic(err)
	}

	b.clock.Register(m, b.prescaler)

	return m
}
