package sim

// A Named object is an object that has a name.
type Named interface {
	Name() string
}

//go:generate mockgen -destination "mock_sim_test.go" -package sim -write_package_comment=false github.com/orbitkit/fswsim/sim Component

// A Component is a simulated hardware element that is dispatched by a
// ClockGenerator. MainRoutine is only ever called from the tick thread.
type Component interface {
	Named

	// MainRoutine updates the component state. The count argument is the
	// value of the global tick counter at the time of dispatch.
	MainRoutine(count TickCount)

	// PowerPort returns the power gate of the component. A nil power port
	// means the component is always powered.
	PowerPort() *PowerPort
}

// ComponentBase provides the name and power-gate plumbing that concrete
// components embed.
type ComponentBase struct {
	name      string
	powerPort *PowerPort
}

// NewComponentBase creates a new ComponentBase. The powerPort argument can be
// nil for components that are not behind a power switch.
func NewComponentBase(name string, powerPort *PowerPort) *ComponentBase {
	return &ComponentBase{
		name:      name,
		powerPort: powerPort,
	}
}

// Name returns the name of the component.
func (c *ComponentBase) Name() string {
	return c.name
}

// PowerPort returns the power gate of the component.
func (c *ComponentBase) PowerPort() *PowerPort {
	return c.powerPort
}
