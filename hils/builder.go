package hils

import (
	"time"

	"go.uber.org/zap"
)

const (
	defaultPollInterval = 10 * time.Millisecond
	defaultBufferDepth  = 64
	defaultRecvBufSize  = 1024
)

// Builder builds Bridges.
type Builder struct {
	transport    Transport
	pollInterval time.Duration
	bufferDepth  int
	recvBufSize  int
	logger       *zap.Logger
}

// MakeBuilder creates a Builder with default parameters.
func MakeBuilder() Builder {
	return Builder{
		pollInterval: defaultPollInterval,
		bufferDepth:  defaultBufferDepth,
		recvBufSize:  defaultRecvBufSize,
	}
}

// WithTransport sets the physical bus controller the bridge drives.
func (b Builder) WithTransport(t Transport) Builder {
	b.transport = t
	return b
}

// WithPollInterval sets the wall-clock period of the polling loop.
func (b Builder) WithPollInterval(d time.Duration) Builder {
	b.pollInterval = d
	return b
}

// WithBufferDepth sets the capacity of each hand-off buffer.
func (b Builder) WithBufferDepth(depth int) Builder {
	b.bufferDepth = depth
	return b
}

// WithRecvBufSize sets the size of the hardware receive buffer, bounding the
// largest frame one poll can collect.
func (b Builder) WithRecvBufSize(size int) Builder {
	b.recvBufSize = size
	return b
}

// WithLogger sets the logger for hardware failures.
func (b Builder) WithLogger(l *zap.Logger) Builder {
	b.logger = l
	return b
}

// Build builds a Bridge. The bridge does not poll until Start is called.
func (b Builder) Build(name string) *Bridge {
	logger := b.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	depth := b.bufferDepth
	if depth < 1 {
		depth = 1
	}

	return &Bridge{
		name:         name,
		transport:    b.transport,
		pollInterval: b.pollInterval,
		logger:       logger,
		outgoing:     make(chan []byte, depth),
		incoming:     make(chan []byte, depth),
		recvBuf:      make([]byte, b.recvBufSize),
	}
}
