// Package ports provides the virtual communication ports that the on-board
// computer multiplexes between itself and its attached components.
package ports

import "github.com/pkg/errors"

// ErrPortInUse is returned when connecting to a port id that already maps to
// a live port of the same kind.
var ErrPortInUse = errors.New("port id already in use")

// ErrPortNotFound is returned when closing or operating on a port id that is
// not connected.
var ErrPortNotFound = errors.New("port not found")

// ErrRegisterOutOfRange is returned when a register address is at or beyond
// the register count of an I2C port. The operation is a no-op.
var ErrRegisterOutOfRange = errors.New("register address out of range")
