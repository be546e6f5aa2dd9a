// Package sha2 implements streaming SHA-256 and SHA-224 digests as defined in FIPS 180-4.
package sha2

import (
	"encoding/binary"
	"errors"
	"fmt"
)

var (
	// ErrInvalidVariant indicates an Init selector other than 224 or 256.
	ErrInvalidVariant = errors.New("invalid sha2 variant")
	// ErrNotInitialized indicates use of a Context that was never initialized.
	ErrNotInitialized = errors.New("sha2 context not initialized")
	// ErrFinalized indicates use of a Context after Finalize.
	ErrFinalized = errors.New("sha2 context already finalized")
)

type phase uint8

const (
	phaseUnset phase = iota
	phaseActive
	phaseFinal
)

// Context is the running state of one hash computation.
// The zero value must be initialized with Init before use.
type Context struct {
	h      [8]uint32
	buf    [BlockSize]byte
	length uint64
	size   int
	phase  phase
}

// New returns a Context computing SHA-256.
func New() *Context {
	c := new(Context)
	c.reset(Bits256)
	return c
}

// New224 returns a Context computing SHA-224.
func New224() *Context {
	c := new(Context)
	c.reset(Bits224)
	return c
}

// VariantOrDefault maps any selector other than 224 to 256.
func VariantOrDefault(bits int) int {
	if bits == Bits224 {
		return Bits224
	}
	return Bits256
}

// Init resets c for the given variant, discarding any previous state.
func (c *Context) Init(bits int) error {
	if bits != Bits224 && bits != Bits256 {
		return fmt.Errorf("init with %d bits: %w", bits, ErrInvalidVariant)
	}
	c.reset(bits)
	return nil
}

func (c *Context) reset(bits int) {
	if bits == Bits224 {
		c.h = iv224
		c.size = Size224
	} else {
		c.h = iv256
		c.size = Size
	}
	c.buf = [BlockSize]byte{}
	c.length = 0
	c.phase = phaseActive
}

func (c *Context) usable() error {
	switch c.phase {
	case phaseUnset:
		return ErrNotInitialized
	case phaseFinal:
		return ErrFinalized
	}
	return nil
}

// Update appends p to the message being hashed.
func (c *Context) Update(p []byte) error {
	if err := c.usable(); err != nil {
		return err
	}
	nx := int(c.length % BlockSize)
	c.length += uint64(len(p))

	if nx > 0 {
		n := copy(c.buf[nx:], p)
		if nx+n < BlockSize {
			return nil
		}
		block(&c.h, c.buf[:])
		p = p[n:]
	}
	if len(p) >= BlockSize {
		n := len(p) &^ (BlockSize - 1)
		block(&c.h, p[:n])
		p = p[n:]
	}
	if len(p) > 0 {
		copy(c.buf[:], p)
	}
	return nil
}

// Write implements io.Writer over Update.
func (c *Context) Write(p []byte) (int, error) {
	if err := c.Update(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Finalize pads the message, runs the last compressions and returns the digest.
// The Context cannot be updated or finalized again until the next Init.
func (c *Context) Finalize() ([]byte, error) {
	if err := c.usable(); err != nil {
		return nil, err
	}
	c.phase = phaseFinal

	nx := int(c.length % BlockSize)
	c.buf[nx] = 0x80
	clear(c.buf[nx+1:])
	if nx >= BlockSize-8 {
		block(&c.h, c.buf[:])
		clear(c.buf[:])
	}
	binary.BigEndian.PutUint64(c.buf[BlockSize-8:], c.length<<3)
	block(&c.h, c.buf[:])

	var out [Size]byte
	for i, s := range c.h {
		binary.BigEndian.PutUint32(out[i*4:], s)
	}
	return append([]byte(nil), out[:c.size]...), nil
}

// Clone returns an independent copy of c.
func (c *Context) Clone() *Context {
	d := *c
	return &d
}

// Size returns the digest length in bytes, or 0 before Init.
func (c *Context) Size() int { return c.size }

// BlockSize returns the compression block length.
func (c *Context) BlockSize() int { return BlockSize }

// Len returns the number of message bytes consumed so far.
func (c *Context) Len() uint64 { return c.length }

// Variant returns 224 or 256, or 0 before Init.
func (c *Context) Variant() int {
	switch c.size {
	case Size224:
		return Bits224
	case Size:
		return Bits256
	}
	return 0
}

// Sum256 returns the SHA-256 digest of data.
func Sum256(data []byte) [Size]byte {
	var out [Size]byte
	c := New()
	_ = c.Update(data)
	sum, _ := c.Finalize()
	copy(out[:], sum)
	return out
}

// Sum224 returns the SHA-224 digest of data.
func Sum224(data []byte) [Size224]byte {
	var out [Size224]byte
	c := New224()
	_ = c.Update(data)
	sum, _ := c.Finalize()
	copy(out[:], sum)
	return out
}
