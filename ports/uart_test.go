package ports

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("UartPort", func() {
	var port *UartPort

	BeforeEach(func() {
		port = NewUartPort(8, 8)
	})

	It("should pass bytes through unchanged", func() {
		sent := []byte{0xEB, 0x90, 0x01, 0x02}
		Expect(port.WriteTx(sent)).To(Equal(4))

		got := make([]byte, 4)
		Expect(port.ReadTx(got)).To(Equal(4))
		Expect(got).To(Equal(sent))
	})

	It("should truncate a write at the remaining capacity", func() {
		Expect(port.WriteTx(make([]byte, 10))).To(Equal(8))

		got := make([]byte, 10)
		Expect(port.ReadTx(got)).To(Equal(8))
	})

	It("should preserve byte order across a saturated write", func() {
		data := []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
		Expect(port.WriteTx(data)).To(Equal(8))

		got := make([]byte, 8)
		port.ReadTx(got)
		Expect(got).To(Equal(data[:8]))
	})

	It("should return 0 when reading an empty queue", func() {
		got := make([]byte, 4)
		Expect(port.ReadRx(got)).To(Equal(0))
	})

	It("should keep the two directions independent", func() {
		port.WriteTx([]byte{0x10})
		port.WriteRx([]byte{0x20})

		got := make([]byte, 1)
		port.ReadRx(got)
		Expect(got[0]).To(Equal(byte(0x20)))

		port.ReadTx(got)
		Expect(got[0]).To(Equal(byte(0x10)))
	})

	It("should wrap the offsets past the capacity", func() {
		chunk := []byte{1, 2, 3}
		got := make([]byte, 3)

		for i := 0; i < 10; i++ {
			Expect(port.WriteTx(chunk)).To(Equal(3))
			Expect(port.ReadTx(got)).To(Equal(3))
			Expect(got).To(Equal(chunk))
		}
	})

	It("should accept more bytes after a partial drain", func() {
		port.WriteTx(make([]byte, 8))

		got := make([]byte, 3)
		port.ReadTx(got)

		Expect(port.WriteTx(make([]byte, 5))).To(Equal(3))
		Expect(port.TxLevel()).To(Equal(8))
	})

	It("should raise a capacity below 1 to 1", func() {
		small := NewUartPort(0, -3)
		Expect(small.TxCapacity()).To(Equal(1))
		Expect(small.RxCapacity()).To(Equal(1))
	})
})
