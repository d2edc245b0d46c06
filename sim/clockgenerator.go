package sim

// TickCount is the value of the global simulation tick counter.
type TickCount uint64

// HookPosTickStart marks the beginning of one scheduling step.
var HookPosTickStart = &HookPos{Name: "Tick Start"}

// HookPosComponentDispatched marks when a component's MainRoutine is invoked.
var HookPosComponentDispatched = &HookPos{Name: "Component Dispatched"}

// HookPosComponentSkipped marks when an eligible component is skipped because
// its power gate is closed.
var HookPosComponentSkipped = &HookPos{Name: "Component Skipped"}

type tickEntry struct {
	component Component
	prescaler TickCount
}

// A ClockGenerator owns the global tick counter and dispatches registered
// components at their configured rate.
//
// Dispatch order is the registration order. For a fixed set of registrations
// and a fixed number of TickOnce calls, the sequence of MainRoutine
// invocations is fully reproducible.
type ClockGenerator struct {
	HookableBase

	count   TickCount
	entries []tickEntry
}

// NewClockGenerator creates a ClockGenerator with the counter at zero.
func NewClockGenerator() *ClockGenerator {
	return &ClockGenerator{}
}

// Register adds a component to be dispatched once every prescaler ticks.
// A prescaler smaller than 1 is clamped to 1.
func (c *ClockGenerator) Register(comp Component, prescaler int) {
	if prescaler < 1 {
		prescaler = 1
	}

	c.entries = append(c.entries, tickEntry{
		component: comp,
		prescaler: TickCount(prescaler),
	})
}

// Count returns the current value of the tick counter.
func (c *ClockGenerator) Count() TickCount {
	return c.count
}

// TickOnce runs one scheduling step. Every registered component whose
// prescaler divides the current counter value and whose power gate is open
// has its MainRoutine invoked with the current count. The counter is
// incremented afterwards, so the first step dispatches at count 0.
func (c *ClockGenerator) TickOnce() {
	if c.NumHooks() > 0 {
		c.InvokeHook(HookCtx{
			Domain: c,
			Pos:    HookPosTickStart,
			Detail: c.count,
		})
	}

	for _, e := range c.entries {
		if c.count%e.prescaler != 0 {
			continue
		}

		if p := e.component.PowerPort(); p != nil && !p.IsPowered() {
			if c.NumHooks() > 0 {
				c.InvokeHook(HookCtx{
					Domain: c,
					Pos:    HookPosComponentSkipped,
					Item:   e.component,
					Detail: c.count,
				})
			}
			continue
		}

		if c.NumHooks() > 0 {
			c.InvokeHook(HookCtx{
				Domain: c,
				Pos:    HookPosComponentDispatched,
				Item:   e.component,
				Detail: c.count,
			})
		}

		e.component.MainRoutine(c.count)
	}

	c.count++
}
