package resume

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"sha2stream/internal/sha2"
	"sha2stream/internal/store"
)

// DefaultInterval is the number of hashed bytes between checkpoint saves.
const DefaultInterval = 64 << 20

// Checkpoint tracks resumable progress for one file while it is being hashed.
type Checkpoint struct {
	paths    Paths
	lock     *FileLock
	target   string
	size     int64
	modTime  int64
	bits     int
	interval int64
	saved    int64
	log      zerolog.Logger
}

// Options configures Open.
type Options struct {
	Dir       string
	Target    string
	Info      os.FileInfo
	Bits      int
	Interval  int64
	BreakLock bool
	Log       zerolog.Logger
}

// Open locks the checkpoint for opts.Target. Callers must Close or Complete it.
func Open(opts Options) (*Checkpoint, error) {
	paths, err := ResolvePaths(opts.Dir, opts.Target, opts.Bits)
	if err != nil {
		return nil, err
	}
	if err := store.EnsureDir(filepath.Dir(paths.Lock)); err != nil {
		return nil, err
	}
	lock, err := AcquireLock(paths.Lock, opts.Target, opts.BreakLock)
	if err != nil {
		return nil, err
	}
	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Checkpoint{
		paths:    paths,
		lock:     lock,
		target:   opts.Target,
		size:     opts.Info.Size(),
		modTime:  opts.Info.ModTime().UnixNano(),
		bits:     opts.Bits,
		interval: interval,
		log:      opts.Log.With().Str("target", opts.Target).Logger(),
	}, nil
}

// Restore loads a matching checkpoint into ctx and returns the file offset to continue from.
// It returns 0 and leaves ctx untouched when no usable checkpoint exists.
func (c *Checkpoint) Restore(ctx *sha2.Context) int64 {
	meta, err := LoadMeta(c.paths.Meta)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			c.log.Warn().Err(err).Msg("ignoring unreadable checkpoint")
		}
		return 0
	}
	if meta.Size != c.size || meta.ModTime != c.modTime || meta.Bits != c.bits {
		c.log.Warn().Msg("file changed since checkpoint, starting over")
		return 0
	}
	var restored sha2.Context
	if err := restored.UnmarshalBinary(meta.State); err != nil {
		c.log.Warn().Err(err).Msg("ignoring corrupted checkpoint state")
		return 0
	}
	if restored.Len() != uint64(meta.Offset) || restored.Variant() != c.bits {
		c.log.Warn().Msg("checkpoint state does not match offset, starting over")
		return 0
	}
	*ctx = restored
	c.saved = meta.Offset
	c.log.Debug().Int64("offset", meta.Offset).Msg("resumed from checkpoint")
	return meta.Offset
}

// Maybe saves a checkpoint once at least the configured interval has been hashed since the last save.
func (c *Checkpoint) Maybe(ctx *sha2.Context) error {
	if int64(ctx.Len())-c.saved < c.interval {
		return nil
	}
	return c.Save(ctx)
}

// Save persists the current state of ctx.
func (c *Checkpoint) Save(ctx *sha2.Context) error {
	state, err := ctx.MarshalBinary()
	if err != nil {
		return fmt.Errorf("snapshot hash state: %w", err)
	}
	offset := int64(ctx.Len())
	meta := Meta{
		Path:    c.target,
		Size:    c.size,
		ModTime: c.modTime,
		Bits:    c.bits,
		Offset:  offset,
		State:   state,
	}
	if err := SaveMetaAtomic(c.paths.Meta, meta); err != nil {
		return err
	}
	c.saved = offset
	c.log.Debug().Int64("offset", offset).Msg("checkpoint saved")
	return nil
}

// Complete removes the checkpoint and releases the lock.
func (c *Checkpoint) Complete() error {
	defer c.lock.Release()
	return Clear(c.paths)
}

// Close releases the lock and keeps the checkpoint for a later run.
func (c *Checkpoint) Close() { c.lock.Release() }

// Paths returns the files backing this checkpoint.
func (c *Checkpoint) Paths() Paths { return c.paths }
