// Package simulation assembles and drives one simulator run: the clock, the
// telemetry recorder, the monitor, and the registered components.
package simulation

import (
	"sync"

	"github.com/hashicorp/go-multierror"

	"github.com/orbitkit/fswsim/datarecording"
	"github.com/orbitkit/fswsim/hils"
	"github.com/orbitkit/fswsim/monitoring"
	"github.com/orbitkit/fswsim/obc"
	"github.com/orbitkit/fswsim/sim"
)

// A Simulation provides the services required to define a simulator run.
type Simulation struct {
	id string

	clock    *sim.ClockGenerator
	recorder datarecording.Recorder
	monitor  *monitoring.Monitor

	components    []sim.Component
	compNameIndex map[string]int
	bridges       []*hils.Bridge

	pauseLock    sync.Mutex
	isPaused     bool
	isPausedLock sync.Mutex
}

// ID returns the unique id of the run.
func (s *Simulation) ID() string {
	return s.id
}

// Clock returns the clock generator driving the run.
func (s *Simulation) Clock() *sim.ClockGenerator {
	return s.clock
}

// Recorder returns the telemetry recorder of the run.
func (s *Simulation) Recorder() datarecording.Recorder {
	return s.recorder
}

// Monitor returns the monitor of the run, or nil when monitoring is off.
func (s *Simulation) Monitor() *monitoring.Monitor {
	return s.monitor
}

// RegisterComponent registers a component with the simulation. Component
// names must be unique.
func (s *Simulation) RegisterComponent(c sim.Component) {
	name := c.Name()
	if _, ok := s.compNameIndex[name]; ok {
		panic("component " + name + " already registered")
	}

	s.components = append(s.components, c)
	s.compNameIndex[name] = len(s.components) - 1

	if s.monitor != nil {
		s.monitor.RegisterComponent(c)
	}
}

// RegisterComputer registers an on-board computer, exposes its port
// registries to the monitor, and records its uart traffic.
func (s *Simulation) RegisterComputer(c *obc.OnBoardComputer) {
	s.RegisterComponent(c)

	if s.monitor != nil {
		s.monitor.RegisterComputer(c)
	}

	c.AcceptHook(&uartTrafficRecorder{
		recorder: s.recorder,
		clock:    s.clock,
		computer: c.Name(),
	})
}

// RegisterBridge registers a HILS bridge to be stopped at termination.
func (s *Simulation) RegisterBridge(b *hils.Bridge) {
	s.bridges = append(s.bridges, b)
}

// GetComponentByName returns the component with the given name.
func (s *Simulation) GetComponentByName(name string) sim.Component {
	return s.components[s.compNameIndex[name]]
}

// Run advances the simulation by nTicks scheduling steps.
func (s *Simulation) Run(nTicks int) {
	for i := 0; i < nTicks; i++ {
		s.pauseLock.Lock()
		s.clock.TickOnce()
		s.pauseLock.Unlock()
	}
}

// Pause prevents the run loop from advancing further ticks.
func (s *Simulation) Pause() {
	s.isPausedLock.Lock()
	defer s.isPausedLock.Unlock()

	if s.isPaused {
		return
	}

	s.pauseLock.Lock()
	s.isPaused = true
}

// Continue lets a paused run loop advance again.
func (s *Simulation) Continue() {
	s.isPausedLock.Lock()
	defer s.isPausedLock.Unlock()

	if !s.isPaused {
		return
	}

	s.pauseLock.Unlock()
	s.isPaused = false
}

// Terminate stops every registered bridge and flushes the recorder. Teardown
// errors are aggregated, not short-circuited.
func (s *Simulation) Terminate() error {
	var err *multierror.Error

	for _, b := range s.bridges {
		err = multierror.Append(err, b.Stop())
	}

	s.recorder.Flush()

	return err.ErrorOrNil()
}
