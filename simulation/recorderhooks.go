package simulation

import (
	"github.com/orbitkit/fswsim/datarecording"
	"github.com/orbitkit/fswsim/obc"
	"github.com/orbitkit/fswsim/sim"
)

// Telemetry table names.
const (
	tableComponentTicks = "component_ticks"
	tableUartTraffic    = "uart_traffic"
)

type tickSample struct {
	Tick      uint64
	Component string
	Skipped   bool
}

type uartSample struct {
	Tick     uint64
	Computer string
	PortID   int
	FromObc  bool
	Bytes    int
}

// executionRecorder records every dispatch decision of the clock generator.
type executionRecorder struct {
	recorder datarecording.Recorder
}

func (r *executionRecorder) Func(ctx sim.HookCtx) {
	switch ctx.Pos {
	case sim.HookPosComponentDispatched:
		r.insert(ctx, false)
	case sim.HookPosComponentSkipped:
		r.insert(ctx, true)
	}
}

func (r *executionRecorder) insert(ctx sim.HookCtx, skipped bool) {
	r.recorder.InsertData(tableComponentTicks, tickSample{
		Tick:      uint64(ctx.Detail.(sim.TickCount)),
		Component: ctx.Item.(sim.Component).Name(),
		Skipped:   skipped,
	})
}

// uartTrafficRecorder records the uart data operations of one computer.
type uartTrafficRecorder struct {
	recorder datarecording.Recorder
	clock    *sim.ClockGenerator
	computer string
}

func (r *uartTrafficRecorder) Func(ctx sim.HookCtx) {
	if ctx.Pos != obc.HookPosUartTraffic {
		return
	}

	traffic := ctx.Item.(obc.UartTraffic)
	r.recorder.InsertData(tableUartTraffic, uartSample{
		Tick:     uint64(r.clock.Count()),
		Computer: r.computer,
		PortID:   traffic.PortID,
		FromObc:  traffic.FromObc,
		Bytes:    traffic.Bytes,
	})
}
