package sim

// PowerState is the commanded state of a power switch.
type PowerState int

// Possible power states.
const (
	PowerOff PowerState = iota
	PowerOn
)

// A PowerPort gates the execution of one component. The external power
// subsystem commands the switch state and updates the bus voltage; the
// ClockGenerator reads IsPowered once per eligible tick.
type PowerPort struct {
	state          PowerState
	minimumVoltage float64
	assumedCurrent float64
	voltage        float64
}

// NewPowerPort creates a PowerPort. The port starts switched on with zero bus
// voltage, so a component only runs once the power subsystem supplies a
// voltage at or above minimumVoltage.
func NewPowerPort(minimumVoltage, assumedCurrent float64) *PowerPort {
	return &PowerPort{
		state:          PowerOn,
		minimumVoltage: minimumVoltage,
		assumedCurrent: assumedCurrent,
	}
}

// SetState commands the switch on or off.
func (p *PowerPort) SetState(s PowerState) {
	p.state = s
}

// State returns the commanded switch state.
func (p *PowerPort) State() PowerState {
	return p.state
}

// SetVoltage updates the bus voltage seen by the component.
func (p *PowerPort) SetVoltage(v float64) {
	p.voltage = v
}

// Voltage returns the current bus voltage.
func (p *PowerPort) Voltage() float64 {
	return p.voltage
}

// MinimumVoltage returns the voltage below which the component is held off.
func (p *PowerPort) MinimumVoltage() float64 {
	return p.minimumVoltage
}

// AssumedCurrent returns the current draw assumed while the component runs.
func (p *PowerPort) AssumedCurrent() float64 {
	return p.assumedCurrent
}

// IsPowered reports whether the gated component may execute.
func (p *PowerPort) IsPowered() bool {
	return p.state == PowerOn && p.voltage >= p.minimumVoltage
}
