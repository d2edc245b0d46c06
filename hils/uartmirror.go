package hils

import (
	"github.com/orbitkit/fswsim/obc"
	"github.com/orbitkit/fswsim/sim"
)

// A UartMirror stands in for the component side of one uart port and relays
// its bytes through a bridge, so that a real serial device answers where a
// simulated component normally would.
//
// It runs on the simulation tick like any other component; only the bridge
// touches the wall clock.
type UartMirror struct {
	*sim.ComponentBase

	computer *obc.OnBoardComputer
	bridge   *Bridge
	portID   int
	buf      []byte
}

// NewUartMirror creates a UartMirror and registers it with the clock.
func NewUartMirror(
	name string,
	clock *sim.ClockGenerator,
	prescaler int,
	computer *obc.OnBoardComputer,
	portID int,
	bridge *Bridge,
) *UartMirror {
	m := &UartMirror{
		ComponentBase: sim.NewComponentBase(name, nil),
		computer:      computer,
		bridge:        bridge,
		portID:        portID,
		buf:           make([]byte, 256),
	}

	clock.Register(m, prescaler)

	return m
}

// MainRoutine drains OBC output toward the hardware and feeds hardware
// responses back into the rx queue.
func (m *UartMirror) MainRoutine(count sim.TickCount) {
	for {
		n := m.computer.ReceivedByComponent(m.portID, m.buf)
		if n <= 0 {
			break
		}

		m.bridge.StageOutgoing(m.buf[:n])
	}

	for {
		frame, ok := m.bridge.CollectIncoming()
		if !ok {
			break
		}

		m.computer.SendFromComponent(m.portID, frame)
	}
}
