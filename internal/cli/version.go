package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"sha2stream/internal/buildinfo"
)

func newVersionCommand(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  noArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if _, err := fmt.Fprintln(out, buildinfo.Get().String()); err != nil {
				return fmt.Errorf("write version output: %w", err)
			}
			return nil
		},
	}
}
