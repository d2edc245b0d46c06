// Package hils mirrors virtual ports onto real hardware bus controllers so
// that physical devices can exchange data with the simulation
// (hardware-in-the-loop).
package hils

import (
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// A Transport is the opaque physical bus controller a bridge drives. Send and
// Recv may block on hardware timing. They are only ever called from the
// bridge goroutine.
type Transport interface {
	Send(p []byte) error
	Recv(p []byte) (int, error)
	Close() error
}

// A Bridge mirrors one virtual port onto a Transport. It polls on its own
// wall-clock timing domain, decoupled from the simulation tick.
//
// The tick thread exchanges frames with the bridge goroutine exclusively
// through the bounded StageOutgoing/CollectIncoming hand-off. Neither side
// ever blocks: when a hand-off buffer is full, the oldest frame is dropped.
// Hardware transaction failures are logged and the frame is dropped; the
// bridge keeps polling and never halts the simulation.
type Bridge struct {
	name         string
	transport    Transport
	pollInterval time.Duration
	logger       *zap.Logger

	outgoing chan []byte
	incoming chan []byte
	recvBuf  []byte

	mu      sync.Mutex
	running bool
	stop    chan struct{}
	done    chan struct{}
}

// Name returns the name of the bridge.
func (b *Bridge) Name() string {
	return b.name
}

// Start launches the polling goroutine. It fails if the bridge has no
// transport or is already running.
func (b *Bridge) Start() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.transport == nil {
		return errors.Errorf("bridge %s has no transport attached", b.name)
	}

	if b.running {
		return errors.Errorf("bridge %s is already running", b.name)
	}

	b.stop = make(chan struct{})
	b.done = make(chan struct{})
	b.running = true

	go b.run()

	return nil
}

// Stop signals the polling goroutine and waits for it to exit, which happens
// within one poll cycle. Any in-flight hardware transaction is abandoned, not
// retried. Stopping a bridge that is not running is a no-op.
func (b *Bridge) Stop() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.running {
		return nil
	}

	close(b.stop)
	<-b.done

	b.running = false

	return errors.Wrapf(b.transport.Close(), "bridge %s", b.name)
}

// StageOutgoing hands a frame from the tick thread to the bridge goroutine.
// The frame is copied, so the caller may reuse p.
func (b *Bridge) StageOutgoing(p []byte) {
	frame := make([]byte, len(p))
	copy(frame, p)

	stageDropOldest(b.outgoing, frame)
}

// CollectIncoming retrieves one frame deposited by the bridge goroutine. It
// never blocks; ok is false when nothing is pending.
func (b *Bridge) CollectIncoming() (frame []byte, ok bool) {
	select {
	case frame = <-b.incoming:
		return frame, true
	default:
		return nil, false
	}
}

func (b *Bridge) run() {
	defer close(b.done)

	ticker := time.NewTicker(b.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-b.stop:
			return
		case <-ticker.C:
			b.poll()
		}
	}
}

// poll flushes every staged outgoing frame to the hardware, then stages one
// hardware response for the simulation side.
func (b *Bridge) poll() {
	for {
		var frame []byte
		select {
		case frame = <-b.outgoing:
		default:
			frame = nil
		}

		if frame == nil {
			break
		}

		if err := b.transport.Send(frame); err != nil {
			b.logger.Warn("hardware transaction failed, frame dropped",
				zap.String("bridge", b.name), zap.Error(err))
		}
	}

	n, err := b.transport.Recv(b.recvBuf)
	if err != nil {
		b.logger.Warn("hardware read failed",
			zap.String("bridge", b.name), zap.Error(err))
		return
	}

	if n == 0 {
		return
	}

	frame := make([]byte, n)
	copy(frame, b.recvBuf[:n])
	stageDropOldest(b.incoming, frame)
}

// stageDropOldest pushes a frame into a bounded hand-off channel, dropping
// the oldest staged frame instead of blocking when the channel is full.
func stageDropOldest(ch chan []byte, frame []byte) {
	for {
		select {
		case ch <- frame:
			return
		default:
		}

		select {
		case <-ch:
		default:
		}
	}
}
