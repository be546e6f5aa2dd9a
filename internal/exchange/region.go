// Package exchange moves message and digest bytes through a fixed-capacity scratch region.
//
// A Region mirrors a host/guest boundary: the caller fills Buffer, then tells the
// region how many bytes to hash. Final writes the digest back to the front of Buffer.
package exchange

import (
	"context"
	"errors"
	"fmt"
	"io"

	"sha2stream/internal/sha2"
)

// DefaultCapacity is the scratch region size used when none is given.
const DefaultCapacity = 8 * 1024 * 1024

// MinCapacity is the smallest region that can hold a digest.
const MinCapacity = sha2.Size

// ErrInputTooLarge indicates an Update length outside the region capacity.
var ErrInputTooLarge = errors.New("input exceeds transfer capacity")

// Region pairs a sha2 context with the scratch buffer used to feed it.
type Region struct {
	buf []byte
	ctx sha2.Context
}

// New allocates a region. A capacity of zero or less selects DefaultCapacity;
// positive values are raised to MinCapacity.
func New(capacity int) *Region {
	switch {
	case capacity <= 0:
		capacity = DefaultCapacity
	case capacity < MinCapacity:
		capacity = MinCapacity
	}
	return &Region{buf: make([]byte, capacity)}
}

// Buffer returns the scratch slice that Update reads from and Final writes to.
func (r *Region) Buffer() []byte { return r.buf }

// Capacity returns the scratch region size.
func (r *Region) Capacity() int { return len(r.buf) }

// Init starts a new computation. Any selector other than 224 selects SHA-256.
func (r *Region) Init(bits int) {
	_ = r.ctx.Init(sha2.VariantOrDefault(bits))
}

// Update hashes the first n bytes of Buffer.
func (r *Region) Update(n int) error {
	if n < 0 || n > len(r.buf) {
		return fmt.Errorf("update %d bytes with capacity %d: %w", n, len(r.buf), ErrInputTooLarge)
	}
	if err := r.ctx.Update(r.buf[:n]); err != nil {
		return fmt.Errorf("update region: %w", err)
	}
	return nil
}

// Final writes the digest to the front of Buffer and returns its length.
func (r *Region) Final() (int, error) {
	sum, err := r.ctx.Finalize()
	if err != nil {
		return 0, fmt.Errorf("finalize region: %w", err)
	}
	return copy(r.buf, sum), nil
}

// Context returns the hash context fed by the region.
func (r *Region) Context() *sha2.Context { return &r.ctx }

// State returns the marshaled context; its length is sha2.StateSize.
func (r *Region) State() ([]byte, error) { return r.ctx.MarshalBinary() }

// Restore replaces the context with a marshaled state.
func (r *Region) Restore(state []byte) error { return r.ctx.UnmarshalBinary(state) }

// Feed reads src into the region until EOF, hashing each read. step, when
// non-nil, runs after every hashed read and aborts the feed on error.
// ctx is checked before each read.
func (r *Region) Feed(ctx context.Context, src io.Reader, step func() error) (int64, error) {
	var total int64
	for {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		n, err := src.Read(r.buf)
		if n > 0 {
			if uerr := r.Update(n); uerr != nil {
				return total, uerr
			}
			total += int64(n)
			if step != nil {
				if serr := step(); serr != nil {
					return total, serr
				}
			}
		}
		if errors.Is(err, io.EOF) {
			return total, nil
		}
		if err != nil {
			return total, fmt.Errorf("read into region: %w", err)
		}
	}
}
