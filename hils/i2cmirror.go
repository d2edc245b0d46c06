package hils

import (
	"github.com/orbitkit/fswsim/obc"
	"github.com/orbitkit/fswsim/sim"
)

// An I2CTargetMirror mirrors a register window of one i2c target device
// through a bridge. Each eligible tick it snapshots the window for the
// hardware side and applies register writes that arrived from the hardware
// side.
//
// Incoming frames are sequences of (register address, value) byte pairs; a
// trailing odd byte is ignored. Outgoing frames hold the window values in
// register order.
type I2CTargetMirror struct {
	*sim.ComponentBase

	computer      *obc.OnBoardComputer
	bridge        *Bridge
	portID        int
	deviceAddr    byte
	firstRegister byte
	registerSpan  int
}

// NewI2CTargetMirror creates an I2CTargetMirror and registers it with the
// clock.
func NewI2CTargetMirror(
	name string,
	clock *sim.ClockGenerator,
	prescaler int,
	computer *obc.OnBoardComputer,
	portID int,
	deviceAddr byte,
	firstRegister byte,
	registerSpan int,
	bridge *Bridge,
) *I2CTargetMirror {
	m := &I2CTargetMirror{
		ComponentBase: sim.NewComponentBase(name, nil),
		computer:      computer,
		bridge:        bridge,
		portID:        portID,
		deviceAddr:    deviceAddr,
		firstRegister: firstRegister,
		registerSpan:  registerSpan,
	}

	clock.Register(m, prescaler)

	return m
}

// MainRoutine stages the mirrored window outward and applies inbound register
// writes.
func (m *I2CTargetMirror) MainRoutine(count sim.TickCount) {
	frame := make([]byte, 0, m.registerSpan)
	for i := 0; i < m.registerSpan; i++ {
		v, err := m.computer.I2CReadRegisterAt(
			m.portID, m.deviceAddr, m.firstRegister+byte(i))
		if err != nil {
			break
		}

		frame = append(frame, v)
	}

	if len(frame) > 0 {
		m.bridge.StageOutgoing(frame)
	}

	for {
		in, ok := m.bridge.CollectIncoming()
		if !ok {
			break
		}

		for i := 0; i+1 < len(in); i += 2 {
			_ = m.computer.I2CWriteRegister(
				m.portID, m.deviceAddr, in[i], in[i+1])
		}
	}
}
