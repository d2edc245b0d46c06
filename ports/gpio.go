package ports

// A GpioPort emulates one discrete signal line. Either side of the line may
// read or write it.
type GpioPort struct {
	id     int
	isHigh bool
}

// NewGpioPort creates a GpioPort with the line de-asserted.
func NewGpioPort(id int) *GpioPort {
	return &GpioPort{id: id}
}

// ID returns the port id the line was connected with.
func (g *GpioPort) ID() int {
	return g.id
}

// DigitalWrite sets the line level.
func (g *GpioPort) DigitalWrite(isHigh bool) {
	g.isHigh = isHigh
}

// DigitalRead returns the current line level.
func (g *GpioPort) DigitalRead() bool {
	return g.isHigh
}
