// Package chunks splits a stream into content-defined chunks and digests each of them.
package chunks

import (
	"errors"
	"fmt"
	"io"

	"github.com/restic/chunker"

	"sha2stream/internal/checksum"
	"sha2stream/internal/hash"
	"sha2stream/internal/progress"
	"sha2stream/internal/sha2"
)

// DefaultPolynomial is the irreducible polynomial used for chunk boundaries.
const DefaultPolynomial = chunker.Pol(0x3DA3358B4DC173)

// Chunk is one content-defined piece of the input.
type Chunk struct {
	Offset uint64
	Length uint64
	Digest []byte
}

// Manifest lists the chunks of a stream and the digest of the whole stream.
type Manifest struct {
	Bits   int
	Chunks []Chunk
	Digest []byte
	Size   uint64
}

// Options bounds chunk sizes. Zero values use the chunker defaults.
type Options struct {
	Bits    int
	MinSize uint
	MaxSize uint
	// Progress receives throughput updates when non-nil; Total is the expected size, 0 if unknown.
	Progress io.Writer
	Total    uint64
}

// Build reads r to EOF. Every chunk is hashed on its own and also fed into a
// running whole-stream hasher.
func Build(r io.Reader, opts Options) (Manifest, error) {
	minSize, maxSize := opts.MinSize, opts.MaxSize
	if minSize == 0 {
		minSize = chunker.MinSize
	}
	if maxSize == 0 {
		maxSize = chunker.MaxSize
	}
	if minSize > maxSize {
		return Manifest{}, fmt.Errorf("chunk min size %d exceeds max size %d", minSize, maxSize)
	}

	whole, err := hash.New(opts.Bits)
	if err != nil {
		return Manifest{}, err
	}
	var counter *progress.Writer
	if opts.Progress != nil {
		counter = progress.NewWriter(progress.NewReporter(opts.Progress, "chunking", opts.Total))
		r = io.TeeReader(r, counter)
	}

	m := Manifest{Bits: opts.Bits}
	c := chunker.NewWithBoundaries(r, DefaultPolynomial, minSize, maxSize)
	buf := make([]byte, maxSize)
	for {
		chunk, err := c.Next(buf)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Manifest{}, fmt.Errorf("next chunk: %w", err)
		}
		piece := new(sha2.Context)
		_ = piece.Init(opts.Bits)
		if err := piece.Update(chunk.Data); err != nil {
			return Manifest{}, err
		}
		sum, err := piece.Finalize()
		if err != nil {
			return Manifest{}, err
		}
		if _, err := whole.Write(chunk.Data); err != nil {
			return Manifest{}, err
		}
		m.Chunks = append(m.Chunks, Chunk{Offset: uint64(chunk.Start), Length: uint64(chunk.Length), Digest: sum})
	}
	m.Size = whole.Len()
	m.Digest = whole.Digest()
	if counter != nil {
		counter.Finish()
	}
	return m, nil
}

// Write prints one "offset length hex" line per chunk followed by a checksum line for the whole stream.
func (m Manifest) Write(w io.Writer, name string) error {
	for _, c := range m.Chunks {
		if _, err := fmt.Fprintf(w, "%d %d %x\n", c.Offset, c.Length, c.Digest); err != nil {
			return fmt.Errorf("write chunk line: %w", err)
		}
	}
	return checksum.Format(w, checksum.Entry{Digest: m.Digest, Name: name, Bits: m.Bits}, false)
}
