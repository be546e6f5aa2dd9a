package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"sha2stream/internal/checksum"
	"sha2stream/internal/chunks"
	"sha2stream/internal/config"
	apperrors "sha2stream/internal/errors"
)

func (r *RootCommand) newChunksCommand() *cobra.Command {
	var minSize, maxSize string
	cmd := &cobra.Command{
		Use:   "chunks FILE",
		Short: "Print content-defined chunk digests of a file",
		Long:  "Split FILE into content-defined chunks and print \"offset length hex\" for each,\nfollowed by the checksum of the whole file.",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := chunks.Options{Bits: r.cfg.Bits}
			var err error
			if opts.MinSize, err = parseSize(minSize); err != nil {
				return err
			}
			if opts.MaxSize, err = parseSize(maxSize); err != nil {
				return err
			}

			var src io.Reader = r.in
			if args[0] != checksum.StdinName {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open %s: %w", args[0], err)
				}
				defer func() { _ = f.Close() }()
				if info, err := f.Stat(); err == nil && info.Mode().IsRegular() {
					opts.Total = uint64(info.Size())
				}
				src = f
			}
			if r.cfg.Progress {
				opts.Progress = r.errOut
			}
			m, err := chunks.Build(src, opts)
			if err != nil {
				return fmt.Errorf("chunk %s: %w", args[0], err)
			}
			r.log.Debug().Int("chunks", len(m.Chunks)).Uint64("size", m.Size).Msg("chunked")
			return m.Write(r.out, args[0])
		},
	}
	fs := cmd.Flags()
	bitsFlag(fs)
	fs.Bool(config.KeyProgress, false, "report throughput on stderr")
	fs.StringVar(&minSize, "min-size", "", "minimum chunk size, e.g. 512KiB (default chunker minimum)")
	fs.StringVar(&maxSize, "max-size", "", "maximum chunk size, e.g. 8MiB (default chunker maximum)")
	return cmd
}

func parseSize(s string) (uint, error) {
	if s == "" {
		return 0, nil
	}
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, fmt.Errorf("parse size %q: %w: %w", s, err, apperrors.ErrUsage)
	}
	return uint(n), nil
}
