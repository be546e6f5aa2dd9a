package sha2

import (
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	stateMagic = "s2s"
	tag224     = 0x02
	tag256     = 0x03
)

// StateSize is the length of a marshaled Context.
const StateSize = len(stateMagic) + 1 + 8*4 + BlockSize + 8

// ErrInvalidState indicates a marshaled Context that cannot be restored.
var ErrInvalidState = errors.New("invalid sha2 state")

// MarshalBinary encodes the in-progress state of c.
// Layout: magic, variant tag, eight big-endian state words, block buffer, big-endian length.
func (c *Context) MarshalBinary() ([]byte, error) {
	if err := c.usable(); err != nil {
		return nil, fmt.Errorf("marshal state: %w", err)
	}
	b := make([]byte, 0, StateSize)
	b = append(b, stateMagic...)
	if c.size == Size224 {
		b = append(b, tag224)
	} else {
		b = append(b, tag256)
	}
	for _, s := range c.h {
		b = binary.BigEndian.AppendUint32(b, s)
	}
	b = append(b, c.buf[:]...)
	b = binary.BigEndian.AppendUint64(b, c.length)
	return b, nil
}

// UnmarshalBinary restores a state produced by MarshalBinary, replacing any state in c.
func (c *Context) UnmarshalBinary(data []byte) error {
	if len(data) != StateSize {
		return fmt.Errorf("state length %d: %w", len(data), ErrInvalidState)
	}
	if string(data[:len(stateMagic)]) != stateMagic {
		return fmt.Errorf("bad state magic: %w", ErrInvalidState)
	}
	var size int
	switch data[len(stateMagic)] {
	case tag224:
		size = Size224
	case tag256:
		size = Size
	default:
		return fmt.Errorf("unknown variant tag %#x: %w", data[len(stateMagic)], ErrInvalidState)
	}

	b := data[len(stateMagic)+1:]
	for i := range c.h {
		c.h[i] = binary.BigEndian.Uint32(b[i*4:])
	}
	b = b[8*4:]
	copy(c.buf[:], b[:BlockSize])
	c.length = binary.BigEndian.Uint64(b[BlockSize:])
	c.size = size
	c.phase = phaseActive
	return nil
}
