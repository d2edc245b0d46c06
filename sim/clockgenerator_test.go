package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

type recordingComponent struct {
	*ComponentBase
	calls []TickCount
}

func newRecordingComponent(name string, gate *PowerPort) *recordingComponent {
	return &recordingComponent{
		ComponentBase: NewComponentBase(name, gate),
	}
}

func (c *recordingComponent) MainRoutine(count TickCount) {
	c.calls = append(c.calls, count)
}

var _ = Describe("ClockGenerator", func() {
	var (
		mockCtrl *gomock.Controller
		clock    *ClockGenerator
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		clock = NewClockGenerator()
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should dispatch at multiples of the prescaler", func() {
		comp := NewMockComponent(mockCtrl)
		comp.EXPECT().PowerPort().Return(nil).AnyTimes()
		comp.EXPECT().MainRoutine(TickCount(0))
		comp.EXPECT().MainRoutine(TickCount(4))
		comp.EXPECT().MainRoutine(TickCount(8))

		clock.Register(comp, 4)
		for i := 0; i < 9; i++ {
			clock.TickOnce()
		}

		Expect(clock.Count()).To(Equal(TickCount(9)))
	})

	It("should clamp a non-positive prescaler to 1", func() {
		comp := NewMockComponent(mockCtrl)
		comp.EXPECT().PowerPort().Return(nil).AnyTimes()
		comp.EXPECT().MainRoutine(gomock.Any()).Times(3)

		clock.Register(comp, 0)
		for i := 0; i < 3; i++ {
			clock.TickOnce()
		}
	})

	It("should skip a component whose power gate is closed", func() {
		gate := NewPowerPort(3.3, 0.1)
		gate.SetState(PowerOff)

		comp := NewMockComponent(mockCtrl)
		comp.EXPECT().PowerPort().Return(gate).AnyTimes()

		clock.Register(comp, 1)
		for i := 0; i < 5; i++ {
			clock.TickOnce()
		}
	})

	It("should resume dispatch on the next eligible tick after power on", func() {
		gate := NewPowerPort(3.3, 0.1)
		gate.SetState(PowerOff)
		gate.SetVoltage(5.0)

		comp := newRecordingComponent("MTQ", gate)
		clock.Register(comp, 2)

		clock.TickOnce() // tick 0, off
		clock.TickOnce() // tick 1, off
		gate.SetState(PowerOn)
		clock.TickOnce() // tick 2, eligible again
		clock.TickOnce() // tick 3

		Expect(comp.calls).To(Equal([]TickCount{2}))
	})

	It("should hold a component off while the bus voltage is too low", func() {
		gate := NewPowerPort(3.3, 0.1)
		gate.SetVoltage(2.0)

		comp := newRecordingComponent("GYRO", gate)
		clock.Register(comp, 1)

		clock.TickOnce()
		gate.SetVoltage(3.3)
		clock.TickOnce()

		Expect(comp.calls).To(Equal([]TickCount{1}))
	})

	It("should dispatch in registration order, reproducibly", func() {
		run := func() []string {
			c := NewClockGenerator()
			var order []string
			hook := hookFunc(func(ctx HookCtx) {
				if ctx.Pos == HookPosComponentDispatched {
					order = append(order, ctx.Item.(Component).Name())
				}
			})
			c.AcceptHook(hook)

			c.Register(newRecordingComponent("OBC", nil), 1)
			c.Register(newRecordingComponent("STT", nil), 3)
			c.Register(newRecordingComponent("GPS", nil), 2)

			for i := 0; i < 6; i++ {
				c.TickOnce()
			}
			return order
		}

		first := run()
		second := run()

		Expect(first).To(Equal([]string{
			"OBC", "STT", "GPS",
			"OBC",
			"OBC", "GPS",
			"OBC", "STT",
			"OBC", "GPS",
			"OBC",
		}))
		Expect(second).To(Equal(first))
	})
})

type hookFunc func(ctx HookCtx)

func (h hookFunc) Func(ctx HookCtx) {
	h(ctx)
}
