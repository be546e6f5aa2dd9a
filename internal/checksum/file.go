package checksum

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"sha2stream/internal/exchange"
	"sha2stream/internal/progress"
	"sha2stream/internal/resume"
)

// StdinName selects standard input instead of a file.
const StdinName = "-"

// Options controls how files are hashed.
type Options struct {
	Bits       int
	BufferSize int
	// CheckpointDir enables resumable hashing when non-empty.
	CheckpointDir      string
	CheckpointInterval int64
	BreakLock          bool
	// Progress receives throughput updates when non-nil.
	Progress io.Writer
	Stdin    io.Reader
	Log      zerolog.Logger
}

// SumFile hashes the file at path, or Options.Stdin when path is StdinName.
func SumFile(ctx context.Context, path string, opts Options) ([]byte, error) {
	region := exchange.New(opts.BufferSize)
	region.Init(opts.Bits)

	if path == StdinName {
		in := opts.Stdin
		if in == nil {
			in = os.Stdin
		}
		if err := feed(ctx, region, in, 0, opts, nil); err != nil {
			return nil, err
		}
		return final(region)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s: is a directory", path)
	}
	log := opts.Log.With().Str("file", path).Logger()

	var cp *resume.Checkpoint
	if opts.CheckpointDir != "" {
		cp, err = resume.Open(resume.Options{
			Dir:       opts.CheckpointDir,
			Target:    path,
			Info:      info,
			Bits:      region.Context().Variant(),
			Interval:  opts.CheckpointInterval,
			BreakLock: opts.BreakLock,
			Log:       opts.Log,
		})
		if err != nil {
			return nil, err
		}
		if offset := cp.Restore(region.Context()); offset > 0 {
			if _, err := f.Seek(offset, io.SeekStart); err != nil {
				cp.Close()
				return nil, fmt.Errorf("seek %s to checkpoint: %w", path, err)
			}
		}
	}

	log.Debug().Int64("size", info.Size()).Uint64("offset", region.Context().Len()).Msg("hashing file")
	if err := feed(ctx, region, f, uint64(info.Size()), opts, cp); err != nil {
		if cp != nil {
			if errors.Is(err, context.Canceled) {
				if serr := cp.Save(region.Context()); serr != nil {
					log.Warn().Err(serr).Msg("save checkpoint on cancel")
				}
			}
			cp.Close()
		}
		return nil, fmt.Errorf("hash %s: %w", path, err)
	}
	if cp != nil {
		if err := cp.Complete(); err != nil {
			log.Warn().Err(err).Msg("remove finished checkpoint")
		}
	}
	return final(region)
}

func feed(ctx context.Context, region *exchange.Region, r io.Reader, total uint64, opts Options, cp *resume.Checkpoint) error {
	var bar *progress.Reporter
	if opts.Progress != nil {
		bar = progress.NewReporter(opts.Progress, "hashing", total)
		bar.Resume(region.Context().Len())
	}
	_, err := region.Feed(ctx, r, func() error {
		if bar != nil {
			bar.Update(region.Context().Len())
		}
		if cp != nil {
			return cp.Maybe(region.Context())
		}
		return nil
	})
	if err != nil {
		return err
	}
	if bar != nil {
		bar.Done(region.Context().Len())
	}
	return nil
}

func final(region *exchange.Region) ([]byte, error) {
	n, err := region.Final()
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), region.Buffer()[:n]...), nil
}
