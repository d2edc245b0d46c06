// Package obc emulates the on-board computer side of the spacecraft: the hub
// that owns every virtual communication port and routes reads and writes
// between the flight software and the attached components.
package obc

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/orbitkit/fswsim/ports"
	"github.com/orbitkit/fswsim/sim"
)

// HookPosUartTraffic marks when bytes move through a uart port.
var HookPosUartTraffic = &sim.HookPos{Name: "Uart Traffic"}

// UartTraffic describes one uart data operation for hooks.
type UartTraffic struct {
	PortID  int
	FromObc bool
	Bytes   int
}

// UartLevel reports the fill state of one uart port.
type UartLevel struct {
	PortID     int
	TxLevel    int
	TxCapacity int
	RxLevel    int
	RxCapacity int
}

// An OnBoardComputer owns the registries for the three port kinds, keyed
// independently per kind. It is itself a scheduled component; the base
// MainRoutine does nothing and concrete flight software embeds the type to
// override it.
//
// All port state is in-memory and owned exclusively by the registries. A
// closed port id is immediately reusable.
type OnBoardComputer struct {
	*sim.ComponentBase
	sim.HookableBase

	i2cRegisterCount int

	uartPorts map[int]*ports.UartPort
	i2cPorts  map[int]*ports.I2CPort
	gpioPorts map[int]*ports.GpioPort
}

// MainRoutine is the flight-software entry point. The base implementation is
// empty.
func (o *OnBoardComputer) MainRoutine(count sim.TickCount) {
}

// ConnectUart creates a uart port under the given id.
func (o *OnBoardComputer) ConnectUart(portID, txCapacity, rxCapacity int) error {
	if _, ok := o.uartPorts[portID]; ok {
		return errors.Wrapf(ports.ErrPortInUse, "uart %d", portID)
	}

	o.uartPorts[portID] = ports.NewUartPort(txCapacity, rxCapacity)

	return nil
}

// CloseUart destroys the uart port and frees the id for reuse.
func (o *OnBoardComputer) CloseUart(portID int) error {
	if _, ok := o.uartPorts[portID]; !ok {
		return errors.Wrapf(ports.ErrPortNotFound, "uart %d", portID)
	}

	delete(o.uartPorts, portID)

	return nil
}

// SendFromObc writes OBC output into the tx queue. It returns the number of
// bytes accepted, or -1 if the port is not connected.
func (o *OnBoardComputer) SendFromObc(portID int, p []byte) int {
	port, ok := o.uartPorts[portID]
	if !ok {
		return -1
	}

	n := port.WriteTx(p)
	o.invokeUartHook(portID, true, n)

	return n
}

// ReceivedByComponent drains the tx queue on the component side. It returns
// the number of bytes read, or -1 if the port is not connected.
func (o *OnBoardComputer) ReceivedByComponent(portID int, p []byte) int {
	port, ok := o.uartPorts[portID]
	if !ok {
		return -1
	}

	return port.ReadTx(p)
}

// SendFromComponent writes component output into the rx queue. It returns the
// number of bytes accepted, or -1 if the port is not connected.
func (o *OnBoardComputer) SendFromComponent(portID int, p []byte) int {
	port, ok := o.uartPorts[portID]
	if !ok {
		return -1
	}

	n := port.WriteRx(p)
	o.invokeUartHook(portID, false, n)

	return n
}

// ReceivedByObc drains the rx queue on the OBC side. It returns the number of
// bytes read, or -1 if the port is not connected.
func (o *OnBoardComputer) ReceivedByObc(portID int, p []byte) int {
	port, ok := o.uartPorts[portID]
	if !ok {
		return -1
	}

	return port.ReadRx(p)
}

func (o *OnBoardComputer) invokeUartHook(portID int, fromObc bool, n int) {
	if o.NumHooks() == 0 {
		return
	}

	o.InvokeHook(sim.HookCtx{
		Domain: o,
		Pos:    HookPosUartTraffic,
		Item:   UartTraffic{PortID: portID, FromObc: fromObc, Bytes: n},
	})
}

// ConnectI2C creates the i2c port under the given id if it does not exist yet
// and registers the device address on it. Registering an address twice
// re-zeroes its registers.
func (o *OnBoardComputer) ConnectI2C(portID int, deviceAddr byte) error {
	port, ok := o.i2cPorts[portID]
	if !ok {
		port = ports.NewI2CPort(o.i2cRegisterCount)
		o.i2cPorts[portID] = port
	}

	port.RegisterDevice(deviceAddr)

	return nil
}

// CloseI2C destroys the i2c port and frees the id for reuse.
func (o *OnBoardComputer) CloseI2C(portID int) error {
	if _, ok := o.i2cPorts[portID]; !ok {
		return errors.Wrapf(ports.ErrPortNotFound, "i2c %d", portID)
	}

	delete(o.i2cPorts, portID)

	return nil
}

// I2CSelectRegister sets the read cursor of the addressed bus.
func (o *OnBoardComputer) I2CSelectRegister(portID int, deviceAddr, regAddr byte) error {
	port, ok := o.i2cPorts[portID]
	if !ok {
		return errors.Wrapf(ports.ErrPortNotFound, "i2c %d", portID)
	}

	return port.SelectRegister(deviceAddr, regAddr)
}

// I2CWriteRegister stores one byte at the addressed register.
func (o *OnBoardComputer) I2CWriteRegister(portID int, deviceAddr, regAddr, value byte) error {
	port, ok := o.i2cPorts[portID]
	if !ok {
		return errors.Wrapf(ports.ErrPortNotFound, "i2c %d", portID)
	}

	return port.WriteRegister(deviceAddr, regAddr, value)
}

// I2CReadRegister performs a sequential cursor read. A missing port reads as
// zero.
func (o *OnBoardComputer) I2CReadRegister(portID int, deviceAddr byte) byte {
	port, ok := o.i2cPorts[portID]
	if !ok {
		return 0
	}

	return port.ReadRegister(deviceAddr)
}

// I2CReadRegisterAt reads the addressed register without advancing the
// cursor.
func (o *OnBoardComputer) I2CReadRegisterAt(portID int, deviceAddr, regAddr byte) (byte, error) {
	port, ok := o.i2cPorts[portID]
	if !ok {
		return 0, errors.Wrapf(ports.ErrPortNotFound, "i2c %d", portID)
	}

	return port.ReadRegisterAt(deviceAddr, regAddr)
}

// ConnectGpio creates a digital line under the given id.
func (o *OnBoardComputer) ConnectGpio(portID int) error {
	if _, ok := o.gpioPorts[portID]; ok {
		return errors.Wrapf(ports.ErrPortInUse, "gpio %d", portID)
	}

	o.gpioPorts[portID] = ports.NewGpioPort(portID)

	return nil
}

// CloseGpio destroys the digital line and frees the id for reuse.
func (o *OnBoardComputer) CloseGpio(portID int) error {
	if _, ok := o.gpioPorts[portID]; !ok {
		return errors.Wrapf(ports.ErrPortNotFound, "gpio %d", portID)
	}

	delete(o.gpioPorts, portID)

	return nil
}

// GpioWrite sets the line level. It returns 0 on success and -1 if the line
// is not connected.
func (o *OnBoardComputer) GpioWrite(portID int, isHigh bool) int {
	port, ok := o.gpioPorts[portID]
	if !ok {
		return -1
	}

	port.DigitalWrite(isHigh)

	return 0
}

// GpioRead returns the line level. A line that is not connected reads as
// de-asserted, without an error.
func (o *OnBoardComputer) GpioRead(portID int) bool {
	port, ok := o.gpioPorts[portID]
	if !ok {
		return false
	}

	return port.DigitalRead()
}

// UartLevels reports the fill state of every open uart port, ordered by id.
func (o *OnBoardComputer) UartLevels() []UartLevel {
	levels := make([]UartLevel, 0, len(o.uartPorts))
	for id, p := range o.uartPorts {
		levels = append(levels, UartLevel{
			PortID:     id,
			TxLevel:    p.TxLevel(),
			TxCapacity: p.TxCapacity(),
			RxLevel:    p.RxLevel(),
			RxCapacity: p.RxCapacity(),
		})
	}

	sort.Slice(levels, func(i, j int) bool {
		return levels[i].PortID < levels[j].PortID
	})

	return levels
}

// CloseAll destroys every open port of every kind.
func (o *OnBoardComputer) CloseAll() {
	o.uartPorts = make(map[int]*ports.UartPort)
	o.i2cPorts = make(map[int]*ports.I2CPort)
	o.gpioPorts = make(map[int]*ports.GpioPort)
}
