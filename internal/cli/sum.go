package cli

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"sha2stream/internal/checksum"
	"sha2stream/internal/config"
	"sha2stream/internal/store"
)

func (r *RootCommand) newSumCommand() *cobra.Command {
	var tag, resumable, breakLock bool
	cmd := &cobra.Command{
		Use:   "sum [FILE...]",
		Short: "Print SHA-256 or SHA-224 checksums",
		Long:  "Print SHA-256 or SHA-224 checksums.\n\nWith no FILE, or when FILE is -, read standard input.",
		RunE: func(cmd *cobra.Command, args []string) error {
			paths := args
			if len(paths) == 0 {
				paths = []string{checksum.StdinName}
			}
			opts := r.fileOptions()
			if resumable {
				dir, err := r.checkpointDir()
				if err != nil {
					return err
				}
				opts.CheckpointDir = dir
				opts.BreakLock = breakLock
			}

			var errs *multierror.Error
			for _, res := range checksum.SumAll(cmd.Context(), paths, r.cfg.Jobs, opts) {
				if res.Err != nil {
					errs = multierror.Append(errs, res.Err)
					if _, err := fmt.Fprintf(r.errOut, "sha2stream: %v\n", res.Err); err != nil {
						return fmt.Errorf("write error output: %w", err)
					}
					continue
				}
				entry := checksum.Entry{Digest: res.Digest, Name: res.Path, Bits: r.cfg.Bits}
				if err := checksum.Format(r.out, entry, tag); err != nil {
					return err
				}
			}
			return errs.ErrorOrNil()
		},
	}
	fs := cmd.Flags()
	bitsFlag(fs)
	fs.IntP(config.KeyJobs, "j", 1, "number of files hashed concurrently")
	fs.Bool(config.KeyProgress, false, "report throughput on stderr")
	fs.BoolVar(&tag, "tag", false, "create a BSD-style checksum")
	fs.BoolVar(&resumable, "resume", false, "checkpoint progress and resume interrupted runs")
	fs.BoolVar(&breakLock, "break-lock", false, "remove a stale checkpoint lock before hashing")
	return cmd
}

// checkpointDir returns the configured checkpoint directory or the per-user default.
func (r *RootCommand) checkpointDir() (string, error) {
	if r.cfg.CheckpointDir != "" {
		return r.cfg.CheckpointDir, nil
	}
	dir, err := store.CheckpointDir()
	if err != nil {
		return "", fmt.Errorf("%w; set --%s", err, config.KeyCheckpointDir)
	}
	return dir, nil
}

func (r *RootCommand) fileOptions() checksum.Options {
	opts := checksum.Options{
		Bits:       r.cfg.Bits,
		BufferSize: r.cfg.BufferSize,
		Stdin:      r.in,
		Log:        r.log,
	}
	if r.cfg.Progress {
		opts.Progress = r.errOut
	}
	return opts
}
