// Package cli implements sha2stream command-line parsing and commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"sha2stream/internal/config"
	apperrors "sha2stream/internal/errors"
	"sha2stream/internal/logging"
)

// RootCommand wires the cobra command tree to process streams.
type RootCommand struct {
	out    io.Writer
	errOut io.Writer
	in     io.Reader
	cmd    *cobra.Command
	cfg    config.Config
	log    zerolog.Logger
}

// NewRootCommand creates the sha2stream root command.
func NewRootCommand(out io.Writer, errOut io.Writer, in io.Reader) *RootCommand {
	r := &RootCommand{out: out, errOut: errOut, in: in, log: zerolog.Nop()}
	root := &cobra.Command{
		Use:               "sha2stream",
		Short:             "sha2stream computes streaming SHA-256 and SHA-224 digests",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: r.setup,
	}
	root.SetOut(out)
	root.SetErr(errOut)
	root.SetIn(in)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", err, apperrors.ErrUsage)
	})

	pf := root.PersistentFlags()
	pf.String(config.KeyConfig, "", "config file (yaml, toml or json)")
	pf.String(config.KeyLogLevel, "warn", "log level: debug, info, warn, error")
	pf.String(config.KeyCheckpointDir, "", "directory for resumable hashing checkpoints")
	pf.String(config.KeyBufferSize, "8MiB", "read buffer size, e.g. 64KiB or 8MiB")

	root.AddCommand(
		r.newSumCommand(),
		r.newCheckCommand(),
		r.newChunksCommand(),
		r.newSelftestCommand(),
		newVersionCommand(out),
	)
	r.cmd = root
	return r
}

// SetArgs sets command arguments.
func (r *RootCommand) SetArgs(args []string) { r.cmd.SetArgs(args) }

// Commands returns configured subcommands.
func (r *RootCommand) Commands() []*cobra.Command { return r.cmd.Commands() }

// Execute parses and runs commands.
func (r *RootCommand) Execute() error { return r.ExecuteContext(context.Background()) }

// ExecuteContext parses and runs commands; ctx cancellation stops hashing between reads.
func (r *RootCommand) ExecuteContext(ctx context.Context) error {
	cmd, err := r.cmd.ExecuteContextC(ctx)
	if err == nil {
		return nil
	}
	if strings.HasPrefix(err.Error(), "unknown command") {
		return fmt.Errorf("%w: %w", err, apperrors.ErrUsage)
	}
	var argErr argError
	if errors.As(err, &argErr) {
		_, _ = fmt.Fprint(r.errOut, cmd.UsageString())
	}
	return err
}

func (r *RootCommand) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}
	log, err := logging.New(r.errOut, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("%w: %w", err, apperrors.ErrUsage)
	}
	r.cfg = cfg
	r.log = log
	r.log.Debug().Str("command", cmd.Name()).Int("buffer", cfg.BufferSize).Msg("configured")
	return nil
}

type argError struct{ msg string }

func (e argError) Error() string { return e.msg }

func (e argError) Unwrap() error { return apperrors.ErrUsage }

func usagef(format string, a ...any) error { return argError{msg: fmt.Sprintf(format, a...)} }

func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return usagef("%s requires exactly %d argument(s), got %d", cmd.Name(), n, len(args))
		}
		return nil
	}
}

func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return usagef("%s accepts no arguments", cmd.Name())
	}
	return nil
}

func bitsFlag(fs *pflag.FlagSet) {
	fs.IntP(config.KeyBits, "a", 256, "digest variant: 224 or 256")
}
