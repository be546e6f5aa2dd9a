package selftest

import (
	"bytes"
	"testing"

	simd "github.com/minio/sha256-simd"
	"github.com/stretchr/testify/require"

	"sha2stream/internal/sha2"
)

func TestRunPasses(t *testing.T) {
	res, err := Run(7, 50)
	require.NoError(t, err)
	require.Equal(t, len(Vectors), res.Vectors)
	require.Equal(t, 50, res.Random)
}

func TestEngineMatchesSIMDStreaming(t *testing.T) {
	msg := bytes.Repeat([]byte("The quick brown fox jumps over the lazy dog"), 97)
	ref := simd.New()
	ours := sha2.New()
	for i := 0; i < len(msg); i += 61 {
		end := min(i+61, len(msg))
		_, _ = ref.Write(msg[i:end])
		require.NoError(t, ours.Update(msg[i:end]))
	}
	got, err := ours.Finalize()
	require.NoError(t, err)
	require.Equal(t, ref.Sum(nil), got)
}

func BenchmarkEngine1M(b *testing.B) {
	buf := make([]byte, 1<<20)
	b.SetBytes(int64(len(buf)))
	for i := 0; i < b.N; i++ {
		_ = sha2.Sum256(buf)
	}
}

func BenchmarkSIMD1M(b *testing.B) {
	buf := make([]byte, 1<<20)
	b.SetBytes(int64(len(buf)))
	for i := 0; i < b.N; i++ {
		_ = simd.Sum256(buf)
	}
}
