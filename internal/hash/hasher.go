// Package hash provides hash.Hash-compatible streaming hashers over the sha2 engine.
package hash

import (
	"encoding/hex"
	"fmt"
	stdhash "hash"

	"sha2stream/internal/sha2"
)

var _ stdhash.Hash = (*Hasher)(nil)

// Hasher wraps a sha2 context for incremental hashing with non-terminal Sum.
type Hasher struct {
	ctx  *sha2.Context
	bits int
}

// New creates a hasher for the 224 or 256 bit variant.
func New(bits int) (*Hasher, error) {
	ctx := new(sha2.Context)
	if err := ctx.Init(bits); err != nil {
		return nil, fmt.Errorf("create hasher: %w", err)
	}
	return &Hasher{ctx: ctx, bits: bits}, nil
}

// Write adds data to the hash state.
func (h *Hasher) Write(p []byte) (int, error) { return h.ctx.Write(p) }

// Sum appends the digest of the data written so far to b.
// The underlying state is left untouched so writing may continue.
func (h *Hasher) Sum(b []byte) []byte {
	// ctx is only ever initialized by New or Reset with a valid variant and
	// never finalized in place, so Finalize on a clone cannot fail.
	sum, _ := h.ctx.Clone().Finalize()
	return append(b, sum...)
}

// Digest returns the raw digest.
func (h *Hasher) Digest() []byte { return h.Sum(nil) }

// SumHex returns lowercase hex digest.
func (h *Hasher) SumHex() string { return hex.EncodeToString(h.Digest()) }

// Reset restarts the hasher with its original variant.
func (h *Hasher) Reset() { _ = h.ctx.Init(h.bits) }

// Size returns the digest length in bytes.
func (h *Hasher) Size() int { return h.ctx.Size() }

// BlockSize returns the underlying block length.
func (h *Hasher) BlockSize() int { return sha2.BlockSize }

// Len returns the number of bytes written.
func (h *Hasher) Len() uint64 { return h.ctx.Len() }

// State returns a snapshot of the running state.
func (h *Hasher) State() ([]byte, error) { return h.ctx.MarshalBinary() }
