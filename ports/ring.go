package ports

// ringBuffer is a fixed-capacity byte queue. The read and write offsets wrap
// modulo the capacity and are independent of any other buffer.
type ringBuffer struct {
	buf  []byte
	head int
	tail int
	size int
}

func newRingBuffer(capacity int) *ringBuffer {
	if capacity < 1 {
		capacity = 1
	}

	return &ringBuffer{buf: make([]byte, capacity)}
}

// write appends bytes up to the free capacity and returns the number
// accepted. Excess bytes are dropped.
func (r *ringBuffer) write(p []byte) int {
	n := 0
	for _, b := range p {
		if r.size == len(r.buf) {
			break
		}

		r.buf[r.tail] = b
		r.tail = (r.tail + 1) % len(r.buf)
		r.size++
		n++
	}

	return n
}

// read drains up to len(p) bytes in FIFO order and returns the number read.
func (r *ringBuffer) read(p []byte) int {
	n := 0
	for n < len(p) && r.size > 0 {
		p[n] = r.buf[r.head]
		r.head = (r.head + 1) % len(r.buf)
		r.size--
		n++
	}

	return n
}

func (r *ringBuffer) length() int {
	return r.size
}

func (r *ringBuffer) capacity() int {
	return len(r.buf)
}
