package checksum

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	apperrors "sha2stream/internal/errors"
)

func TestVerify(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.txt", []byte("abc"))
	writeFile(t, dir, "bad.txt", []byte("abd"))
	writeFile(t, dir, "short.txt", []byte("abc"))

	list := strings.Join([]string{
		"# comment",
		abc256 + "  good.txt",
		abc256 + "  bad.txt",
		"SHA224 (short.txt) = " + abc224,
		abc256 + "  missing.txt",
		"garbage",
		"",
	}, "\n")

	out := &bytes.Buffer{}
	report, err := Verify(context.Background(), strings.NewReader(list), out, VerifyOptions{
		Options: Options{Log: zerolog.Nop()},
		BaseDir: dir,
	})
	require.Error(t, err)
	require.ErrorIs(t, err, apperrors.ErrChecksumMismatch)
	require.ErrorIs(t, err, apperrors.ErrMalformedLine)
	require.Equal(t, Report{OK: 2, Failed: 1, Unreadable: 1, Malformed: 1}, report)
	require.Equal(t, "good.txt: OK\nbad.txt: FAILED\nshort.txt: OK\nmissing.txt: FAILED open or read\n", out.String())
}

func TestVerifyQuietAllGood(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a", []byte("abc"))
	out := &bytes.Buffer{}
	report, err := Verify(context.Background(), strings.NewReader(abc256+"  a\n"), out, VerifyOptions{
		Options: Options{Log: zerolog.Nop()},
		BaseDir: dir,
		Quiet:   true,
	})
	require.NoError(t, err)
	require.Equal(t, 1, report.OK)
	require.Empty(t, out.String())
}
