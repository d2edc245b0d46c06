package obc

import (
	"github.com/orbitkit/fswsim/ports"
	"github.com/orbitkit/fswsim/sim"
)

// defaultI2CRegisterCount is the register file size used when the builder is
// not told otherwise.
const defaultI2CRegisterCount = 256

// Builder builds OnBoardComputers.
type Builder struct {
	clock            *sim.ClockGenerator
	prescaler        int
	powerPort        *sim.PowerPort
	i2cRegisterCount int
}

// MakeBuilder creates a Builder with default parameters.
func MakeBuilder() Builder {
	return Builder{
		prescaler:        1,
		i2cRegisterCount: defaultI2CRegisterCount,
	}
}

// WithClock sets the clock generator the OBC registers with.
func (b Builder) WithClock(clock *sim.ClockGenerator) Builder {
	b.clock = clock
	return b
}

// WithPrescaler sets the rate divisor of the OBC main routine.
func (b Builder) WithPrescaler(prescaler int) Builder {
	b.prescaler = prescaler
	return b
}

// WithPowerPort sets the power gate of the OBC.
func (b Builder) WithPowerPort(p *sim.PowerPort) Builder {
	b.powerPort = p
	return b
}

// WithI2CRegisterCount sets the register file size of every i2c port the OBC
// creates.
func (b Builder) WithI2CRegisterCount(count int) Builder {
	b.i2cRegisterCount = count
	return b
}

// Build builds an OnBoardComputer and registers it with the clock, if one was
// provided.
func (b Builder) Build(name string) *OnBoardComputer {
	o := &OnBoardComputer{
		ComponentBase:    sim.NewComponentBase(name, b.powerPort),
		i2cRegisterCount: b.i2cRegisterCount,
		uartPorts:        make(map[int]*ports.UartPort),
		i2cPorts:         make(map[int]*ports.I2CPort),
		gpioPorts:        make(map[int]*ports.GpioPort),
	}

	if b.clock != nil {
		b.clock.Register(o, b.prescaler)
	}

	return o
}
