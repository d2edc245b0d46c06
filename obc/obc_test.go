package obc_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/pkg/errors"

	"github.com/orbitkit/fswsim/obc"
	"github.com/orbitkit/fswsim/ports"
	"github.com/orbitkit/fswsim/sim"
)

var _ = Describe("OnBoardComputer", func() {
	var computer *obc.OnBoardComputer

	BeforeEach(func() {
		computer = obc.MakeBuilder().
			WithI2CRegisterCount(16).
			Build("OBC")
	})

	Context("uart lifecycle", func() {
		It("should refuse to connect an id twice", func() {
			Expect(computer.ConnectUart(1, 64, 64)).To(Succeed())

			err := computer.ConnectUart(1, 8, 8)
			Expect(errors.Cause(err)).To(Equal(ports.ErrPortInUse))
		})

		It("should report a missing port on close, every time", func() {
			Expect(computer.ConnectUart(1, 64, 64)).To(Succeed())
			Expect(computer.CloseUart(1)).To(Succeed())

			err := computer.CloseUart(1)
			Expect(errors.Cause(err)).To(Equal(ports.ErrPortNotFound))

			err = computer.CloseUart(1)
			Expect(errors.Cause(err)).To(Equal(ports.ErrPortNotFound))
		})

		It("should allow reconnecting a closed id with new parameters", func() {
			Expect(computer.ConnectUart(1, 4, 4)).To(Succeed())
			Expect(computer.CloseUart(1)).To(Succeed())
			Expect(computer.ConnectUart(1, 128, 32)).To(Succeed())

			Expect(computer.SendFromObc(1, make([]byte, 100))).To(Equal(100))
		})
	})

	Context("uart routing", func() {
		BeforeEach(func() {
			Expect(computer.ConnectUart(2, 8, 8)).To(Succeed())
		})

		It("should route OBC output to the component side", func() {
			Expect(computer.SendFromObc(2, []byte("PING"))).To(Equal(4))

			got := make([]byte, 8)
			Expect(computer.ReceivedByComponent(2, got)).To(Equal(4))
			Expect(got[:4]).To(Equal([]byte("PING")))
		})

		It("should route component output to the OBC side", func() {
			Expect(computer.SendFromComponent(2, []byte("PONG"))).To(Equal(4))

			got := make([]byte, 8)
			Expect(computer.ReceivedByObc(2, got)).To(Equal(4))
			Expect(got[:4]).To(Equal([]byte("PONG")))
		})

		It("should return -1 for operations on a missing port", func() {
			buf := make([]byte, 4)
			Expect(computer.SendFromObc(9, buf)).To(Equal(-1))
			Expect(computer.ReceivedByComponent(9, buf)).To(Equal(-1))
			Expect(computer.SendFromComponent(9, buf)).To(Equal(-1))
			Expect(computer.ReceivedByObc(9, buf)).To(Equal(-1))
		})

		It("should report the accepted count on a saturated write", func() {
			Expect(computer.SendFromObc(2, make([]byte, 10))).To(Equal(8))
		})
	})

	Context("i2c", func() {
		It("should create the port on first connect and add devices after", func() {
			Expect(computer.ConnectI2C(4, 0x10)).To(Succeed())
			Expect(computer.ConnectI2C(4, 0x20)).To(Succeed())

			Expect(computer.I2CWriteRegister(4, 0x20, 1, 0x5A)).To(Succeed())

			v, err := computer.I2CReadRegisterAt(4, 0x20, 1)
			Expect(err).To(BeNil())
			Expect(v).To(Equal(byte(0x5A)))
		})

		It("should re-zero a device that is registered again", func() {
			Expect(computer.ConnectI2C(4, 0x10)).To(Succeed())
			Expect(computer.I2CWriteRegister(4, 0x10, 1, 0x5A)).To(Succeed())

			Expect(computer.ConnectI2C(4, 0x10)).To(Succeed())

			v, err := computer.I2CReadRegisterAt(4, 0x10, 1)
			Expect(err).To(BeNil())
			Expect(v).To(Equal(byte(0)))
		})

		It("should report a missing port on register operations", func() {
			err := computer.I2CWriteRegister(7, 0x10, 0, 1)
			Expect(errors.Cause(err)).To(Equal(ports.ErrPortNotFound))

			Expect(computer.I2CReadRegister(7, 0x10)).To(Equal(byte(0)))

			_, err = computer.I2CReadRegisterAt(7, 0x10, 0)
			Expect(errors.Cause(err)).To(Equal(ports.ErrPortNotFound))
		})

		It("should free the id on close", func() {
			Expect(computer.ConnectI2C(4, 0x10)).To(Succeed())
			Expect(computer.CloseI2C(4)).To(Succeed())

			err := computer.CloseI2C(4)
			Expect(errors.Cause(err)).To(Equal(ports.ErrPortNotFound))

			Expect(computer.ConnectI2C(4, 0x10)).To(Succeed())
		})
	})

	Context("gpio", func() {
		It("should read an unconnected line as de-asserted", func() {
			Expect(computer.GpioRead(5)).To(BeFalse())
		})

		It("should write and read a connected line", func() {
			Expect(computer.ConnectGpio(5)).To(Succeed())
			Expect(computer.GpioWrite(5, true)).To(Equal(0))
			Expect(computer.GpioRead(5)).To(BeTrue())
		})

		It("should return -1 when writing a missing line", func() {
			Expect(computer.GpioWrite(5, true)).To(Equal(-1))
		})

		It("should refuse a duplicate connect", func() {
			Expect(computer.ConnectGpio(5)).To(Succeed())

			err := computer.ConnectGpio(5)
			Expect(errors.Cause(err)).To(Equal(ports.ErrPortInUse))
		})
	})

	It("should report uart buffer levels in id order", func() {
		Expect(computer.ConnectUart(3, 8, 8)).To(Succeed())
		Expect(computer.ConnectUart(1, 4, 4)).To(Succeed())
		computer.SendFromObc(3, []byte{1, 2, 3})

		levels := computer.UartLevels()
		Expect(levels).To(HaveLen(2))
		Expect(levels[0].PortID).To(Equal(1))
		Expect(levels[1].PortID).To(Equal(3))
		Expect(levels[1].TxLevel).To(Equal(3))
		Expect(levels[1].TxCapacity).To(Equal(8))
	})

	It("should invoke traffic hooks on uart writes", func() {
		var seen []obc.UartTraffic
		computer.AcceptHook(trafficHook{&seen})

		Expect(computer.ConnectUart(1, 8, 8)).To(Succeed())
		computer.SendFromObc(1, []byte{1, 2})
		computer.SendFromComponent(1, []byte{3})

		Expect(seen).To(Equal([]obc.UartTraffic{
			{PortID: 1, FromObc: true, Bytes: 2},
			{PortID: 1, FromObc: false, Bytes: 1},
		}))
	})

	It("should register with a clock and be dispatched", func() {
		clock := sim.NewClockGenerator()
		computer = obc.MakeBuilder().
			WithClock(clock).
			WithPrescaler(2).
			Build("OBC2")

		Expect(func() { clock.TickOnce() }).NotTo(Panic())
	})
})

type trafficHook struct {
	seen *[]obc.UartTraffic
}

func (h trafficHook) Func(ctx sim.HookCtx) {
	if ctx.Pos == obc.HookPosUartTraffic {
		*h.seen = append(*h.seen, ctx.Item.(obc.UartTraffic))
	}
}
