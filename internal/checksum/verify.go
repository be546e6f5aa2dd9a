package checksum

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"

	apperrors "sha2stream/internal/errors"
)

// Report counts the outcome of a Verify run.
type Report struct {
	OK         int
	Failed     int
	Unreadable int
	Malformed  int
}

// VerifyOptions controls Verify.
type VerifyOptions struct {
	Options
	// BaseDir resolves relative names in the list; empty means the working directory.
	BaseDir string
	// Quiet suppresses OK lines.
	Quiet bool
}

// Verify checks every entry of a checksum list read from list and writes one status line per entry to out.
// The returned error aggregates every failed entry.
func Verify(ctx context.Context, list io.Reader, out io.Writer, opts VerifyOptions) (Report, error) {
	var (
		report Report
		result *multierror.Error
	)
	scanner := bufio.NewScanner(list)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entry, err := Parse(line)
		if err != nil {
			report.Malformed++
			result = multierror.Append(result, fmt.Errorf("line %d: %w", lineNo, err))
			continue
		}

		path := entry.Name
		if opts.BaseDir != "" && !filepath.IsAbs(path) {
			path = filepath.Join(opts.BaseDir, path)
		}
		fileOpts := opts.Options
		fileOpts.Bits = entry.Bits
		got, err := SumFile(ctx, path, fileOpts)
		switch {
		case err != nil:
			if ctx.Err() != nil {
				return report, multierror.Append(result, ctx.Err()).ErrorOrNil()
			}
			report.Unreadable++
			result = multierror.Append(result, err)
			if werr := status(out, entry.Name, "FAILED open or read"); werr != nil {
				return report, werr
			}
		case !bytes.Equal(got, entry.Digest):
			report.Failed++
			result = multierror.Append(result, fmt.Errorf("%s: %w", entry.Name, apperrors.ErrChecksumMismatch))
			if werr := status(out, entry.Name, "FAILED"); werr != nil {
				return report, werr
			}
		default:
			report.OK++
			if !opts.Quiet {
				if werr := status(out, entry.Name, "OK"); werr != nil {
					return report, werr
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		result = multierror.Append(result, fmt.Errorf("read checksum list: %w", err))
	}
	return report, result.ErrorOrNil()
}

func status(out io.Writer, name, verdict string) error {
	if _, err := fmt.Fprintf(out, "%s: %s\n", name, verdict); err != nil {
		return fmt.Errorf("write status: %w", err)
	}
	return nil
}
