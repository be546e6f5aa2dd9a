package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"sha2stream/internal/checksum"
)

func (r *RootCommand) newCheckCommand() *cobra.Command {
	var quiet bool
	cmd := &cobra.Command{
		Use:   "check LIST",
		Short: "Verify files against a checksum list",
		Long:  "Verify files against a checksum list produced by sum.\n\nBoth \"<hex>  <name>\" and BSD-style lines are accepted; the variant is taken from each digest length.",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var list io.Reader = r.in
			if args[0] != checksum.StdinName {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open checksum list: %w", err)
				}
				defer func() { _ = f.Close() }()
				list = f
			}

			opts := r.fileOptions()
			opts.Progress = nil
			report, err := checksum.Verify(cmd.Context(), list, r.out, checksum.VerifyOptions{Options: opts, Quiet: quiet})
			r.log.Debug().Int("ok", report.OK).Int("failed", report.Failed).Int("unreadable", report.Unreadable).Int("malformed", report.Malformed).Msg("check finished")
			if werr := r.warn(report.Malformed, "line is improperly formatted", "lines are improperly formatted"); werr != nil {
				return werr
			}
			if werr := r.warn(report.Unreadable, "listed file could not be read", "listed files could not be read"); werr != nil {
				return werr
			}
			if werr := r.warn(report.Failed, "computed checksum did NOT match", "computed checksums did NOT match"); werr != nil {
				return werr
			}
			return err
		},
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "don't print OK for each successfully verified file")
	return cmd
}

func (r *RootCommand) warn(n int, one, many string) error {
	if n == 0 {
		return nil
	}
	msg := one
	if n > 1 {
		msg = many
	}
	if _, err := fmt.Fprintf(r.errOut, "sha2stream: WARNING: %d %s\n", n, msg); err != nil {
		return fmt.Errorf("write warning: %w", err)
	}
	return nil
}
