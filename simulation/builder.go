package simulation

import (
	"github.com/rs/xid"

	"github.com/orbitkit/fswsim/datarecording"
	"github.com/orbitkit/fswsim/monitoring"
	"github.com/orbitkit/fswsim/sim"
)

// Builder can be used to build a simulation.
type Builder struct {
	monitorOn      bool
	monitorBrowser bool
	monitorPort    int
	outputFileName string
}

// MakeBuilder creates a new builder.
func MakeBuilder() Builder {
	return Builder{
		monitorOn: true,
	}
}

// WithoutMonitoring sets the simulation to not use monitoring.
func (b Builder) WithoutMonitoring() Builder {
	b.monitorOn = false
	return b
}

// WithMonitorPort sets the port number for the monitoring server.
func (b Builder) WithMonitorPort(port int) Builder {
	b.monitorPort = port
	return b
}

// WithMonitorBrowser makes the monitor open the status page in a browser.
func (b Builder) WithMonitorBrowser() Builder {
	b.monitorBrowser = true
	return b
}

// WithOutputFileName sets a custom output file name for the telemetry
// recorder.
func (b Builder) WithOutputFileName(filename string) Builder {
	b.outputFileName = filename
	return b
}

func (b Builder) parametersMustBeValid() {
	if !b.monitorOn && b.monitorPort != 0 {
		panic("monitor port cannot be set when monitoring is disabled")
	}

	if !b.monitorOn && b.monitorBrowser {
		panic("monitor browser cannot be set when monitoring is disabled")
	}
}

// Build builds the simulation.
func (b Builder) Build() *Simulation {
	b.parametersMustBeValid()

	s := &Simulation{
		compNameIndex: make(map[string]int),
	}

	s.id = xid.New().String()

	outputPath := b.outputFileName
	if outputPath == "" {
		outputPath = "fswsim_" + s.id
	}
	s.recorder = datarecording.New(outputPath)

	s.clock = sim.NewClockGenerator()

	s.recorder.CreateTable(tableComponentTicks, tickSample{})
	s.recorder.CreateTable(tableUartTraffic, uartSample{})
	s.clock.AcceptHook(&executionRecorder{recorder: s.recorder})

	if b.monitorOn {
		s.monitor = monitoring.NewMonitor()
		if b.monitorPort > 0 {
			s.monitor.WithPortNumber(b.monitorPort)
		}
		if b.monitorBrowser {
			s.monitor.WithBrowser()
		}
		s.monitor.RegisterClock(s.clock)
		s.monitor.RegisterRunner(s)
		s.monitor.StartServer()
	}

	return s
}
