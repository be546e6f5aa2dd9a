package checksum

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "sha2stream/internal/errors"
)

const abc256 = "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
const abc224 = "23097d223405d8228642a477bda255b32aadbce4bda0b3f7e36c9da7"

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, Format(buf, Entry{Digest: mustHex(t, abc256), Name: "abc.txt", Bits: 256}, false))
	require.NoError(t, Format(buf, Entry{Digest: mustHex(t, abc224), Name: "abc.txt", Bits: 224}, true))
	require.Equal(t, abc256+"  abc.txt\nSHA224 (abc.txt) = "+abc224+"\n", buf.String())
}

func TestParseRoundTrip(t *testing.T) {
	for _, tag := range []bool{false, true} {
		for _, e := range []Entry{
			{Digest: mustHex(t, abc256), Name: "dir/with space.txt", Bits: 256},
			{Digest: mustHex(t, abc224), Name: "x", Bits: 224},
		} {
			buf := &bytes.Buffer{}
			require.NoError(t, Format(buf, e, tag))
			got, err := Parse(buf.String())
			require.NoError(t, err)
			require.Equal(t, e, got)
		}
	}
}

func TestParseBinaryMarker(t *testing.T) {
	e, err := Parse(abc256 + " *image.iso")
	require.NoError(t, err)
	require.Equal(t, "image.iso", e.Name)
	require.Equal(t, 256, e.Bits)
}

func TestParseRejectsMalformed(t *testing.T) {
	for name, line := range map[string]string{
		"no separator":   abc256,
		"single space":   abc256 + " x",
		"bad hex":        "zz" + abc256[2:] + "  x",
		"short digest":   "abcd  x",
		"empty name":     abc256 + "  ",
		"tag mismatch":   "SHA224 (x) = " + abc256,
		"tag no closing": "SHA256 (x = " + abc256,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(line)
			require.ErrorIs(t, err, apperrors.ErrMalformedLine)
		})
	}
}
