package ports

// A UartPort emulates a duplex byte link between the on-board computer and
// one component. The tx queue carries OBC-to-component bytes and the rx queue
// the reverse; the two queues have independent capacities and offsets.
//
// There is no framing, parity, or baud-rate emulation. Bytes pass through
// unchanged. A write that exceeds the remaining capacity truncates silently
// and reports the number of bytes actually accepted. Reads never block.
type UartPort struct {
	tx *ringBuffer
	rx *ringBuffer
}

// NewUartPort creates a UartPort with the given queue capacities. A capacity
// smaller than 1 is raised to 1.
func NewUartPort(txCapacity, rxCapacity int) *UartPort {
	return &UartPort{
		tx: newRingBuffer(txCapacity),
		rx: newRingBuffer(rxCapacity),
	}
}

// WriteTx appends OBC-side output and returns the number of bytes accepted.
func (u *UartPort) WriteTx(p []byte) int {
	return u.tx.write(p)
}

// ReadTx drains bytes on the component side and returns the number read.
func (u *UartPort) ReadTx(p []byte) int {
	return u.tx.read(p)
}

// WriteRx appends component-side output and returns the number of bytes
// accepted.
func (u *UartPort) WriteRx(p []byte) int {
	return u.rx.write(p)
}

// ReadRx drains bytes on the OBC side and returns the number read.
func (u *UartPort) ReadRx(p []byte) int {
	return u.rx.read(p)
}

// TxLevel returns the number of bytes waiting in the tx queue.
func (u *UartPort) TxLevel() int {
	return u.tx.length()
}

// RxLevel returns the number of bytes waiting in the rx queue.
func (u *UartPort) RxLevel() int {
	return u.rx.length()
}

// TxCapacity returns the capacity of the tx queue.
func (u *UartPort) TxCapacity() int {
	return u.tx.capacity()
}

// RxCapacity returns the capacity of the rx queue.
func (u *UartPort) RxCapacity() int {
	return u.rx.capacity()
}
