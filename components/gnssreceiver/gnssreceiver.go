// Package gnssreceiver emulates a GNSS receiver streaming fix sentences to
// the on-board computer over a uart port.
package gnssreceiver

import (
	"fmt"

	"github.com/orbitkit/fswsim/obc"
	"github.com/orbitkit/fswsim/sim"
)

// A GnssReceiver writes one fix sentence into the rx queue of its uart port
// on every eligible tick. The reported position is supplied by an external
// orbit model through SetPosition.
type GnssReceiver struct {
	*sim.ComponentBase

	computer *obc.OnBoardComputer
	portID   int

	latDeg float64
	lonDeg float64
}

// SetPosition updates the position the receiver will report, in degrees.
func (g *GnssReceiver) SetPosition(latDeg, lonDeg float64) {
	g.latDeg = latDeg
	g.lonDeg = lonDeg
}

// MainRoutine emits one fix sentence. If the rx queue saturates, the tail of
// the sentence is dropped, like a real line overrun.
func (g *GnssReceiver) MainRoutine(count sim.TickCount) {
	sentence := fmt.Sprintf("$GNFIX,%d,%.6f,%.6f\r\n",
		count, g.latDeg, g.lonDeg)

	g.computer.SendFromComponent(g.portID, []byte(sentence))
}

// Builder builds GnssReceivers.
type Builder struct {
	clock      *sim.ClockGenerator
	prescaler  int
	powerPort  *sim.PowerPort
	computer   *obc.OnBoardComputer
	portID     int
	txCapacity int
	rxCapacity int
}

// MakeBuilder creates a Builder with default parameters.
func MakeBuilder() Builder {
	return Builder{
		prescaler:  1,
		txCapacity: 256,
		rxCapacity: 1024,
	}
}

// WithClock sets the clock generator the receiver registers with.
func (b Builder) WithClock(clock *sim.ClockGenerator) Builder {
	b.clock = clock
	return b
}

// WithPrescaler sets the rate divisor of the receiver.
func (b Builder) WithPrescaler(prescaler int) Builder {
	b.prescaler = prescaler
	return b
}

// WithPowerPort sets the power gate of the receiver.
func (b Builder) WithPowerPort(p *sim.PowerPort) Builder {
	b.powerPort = p
	return b
}

// WithComputer sets the on-board computer the receiver attaches to.
func (b Builder) WithComputer(c *obc.OnBoardComputer) Builder {
	b.computer = c
	return b
}

// WithPortID sets the uart port id on the computer.
func (b Builder) WithPortID(id int) Builder {
	b.portID = id
	return b
}

// WithQueueCapacities sets the capacities of the tx and rx queues.
func (b Builder) WithQueueCapacities(tx, rx int) Builder {
	b.txCapacity = tx
	b.rxCapacity = rx
	return b
}

// Build connects the receiver to its uart port, registers it with the clock,
// and returns it.
func (b Builder) Build(name string) *GnssReceiver {
	g := &GnssReceiver{
		ComponentBase: sim.NewComponentBase(name, b.powerPort),
		computer:      b.computer,
		portID:        b.portID,
	}

	err := b.computer.ConnectUart(b.portID, b.txCapacity, b.rxCapacity)
	if err != nil {
		panic(err)
	}

	b.clock.Register(g, b.prescaler)

	return g
}
