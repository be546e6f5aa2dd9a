package sha2

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	msg448 = "abcdbcdecdefdefgefghfghighijhijkijkljklmklmnlmnomnopnopq"
	msg896 = "abcdefghbcdefghicdefghijdefghijkefghijklfghijklmghijklmnhijklmnoijklmnopjklmnopqklmnopqrlmnopqrsmnopqrstnopqrstu"
)

func digestHex(t *testing.T, bits int, msg []byte) string {
	t.Helper()
	var c Context
	require.NoError(t, c.Init(bits))
	require.NoError(t, c.Update(msg))
	sum, err := c.Finalize()
	require.NoError(t, err)
	return hex.EncodeToString(sum)
}

func TestKnownVectors(t *testing.T) {
	cases := []struct {
		name string
		bits int
		msg  string
		want string
	}{
		{"sha256 empty", 256, "", "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
		{"sha224 empty", 224, "", "d14a028c2a3a2bc9476102bb288234c415a2b01f828ea62ac5b3e42f"},
		{"sha256 abc", 256, "abc", "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
		{"sha224 abc", 224, "abc", "23097d223405d8228642a477bda255b32aadbce4bda0b3f7e36c9da7"},
		{"sha256 448 bits", 256, msg448, "248d6a61d20638b8e5c026930c3e6039a33ce45964ff2167f6ecedd419db06c1"},
		{"sha224 448 bits", 224, msg448, "75388b16512776cc5dba5da1fd890150b0c6455cb4f58b1952522525"},
		{"sha256 896 bits", 256, msg896, "cf5b16a778af8380036ce59e7b0492370b249b11e8f07a51afac45037afee9d1"},
		{"sha224 896 bits", 224, msg896, "c97ca9a559850ce97a04a96def6d99a9e0e0e2ab14e6b8df265fc0b3"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, digestHex(t, tc.bits, []byte(tc.msg)))
		})
	}
}

func TestMillionA(t *testing.T) {
	chunk := bytes.Repeat([]byte("a"), 1000)
	c256, c224 := New(), New224()
	for i := 0; i < 1000; i++ {
		require.NoError(t, c256.Update(chunk))
		require.NoError(t, c224.Update(chunk))
	}
	sum256, err := c256.Finalize()
	require.NoError(t, err)
	sum224, err := c224.Finalize()
	require.NoError(t, err)
	assert.Equal(t, "cdc76e5c9914fb9281a1c7e284d73e67f1809a48a497200e046d39ccc7112cd0", hex.EncodeToString(sum256))
	assert.Equal(t, "20794655980c91d8bbb4c1ea97618a4bf03f42581948b2ee4ee7ad67", hex.EncodeToString(sum224))
}

func TestBlockBoundaries(t *testing.T) {
	for _, n := range []int{55, 56, 57, 63, 64, 65, 119, 120, 127, 128, 129} {
		msg := bytes.Repeat([]byte{0x5a}, n)
		want256 := sha256.Sum256(msg)
		want224 := sha256.Sum224(msg)
		assert.Equal(t, hex.EncodeToString(want256[:]), digestHex(t, 256, msg), "sha256 len %d", n)
		assert.Equal(t, hex.EncodeToString(want224[:]), digestHex(t, 224, msg), "sha224 len %d", n)
	}
}

func TestOutputLength(t *testing.T) {
	msg := make([]byte, 200)
	for i := range msg {
		msg[i] = byte(i)
	}
	for n := 0; n <= len(msg); n++ {
		c256, c224 := New(), New224()
		require.NoError(t, c256.Update(msg[:n]))
		require.NoError(t, c224.Update(msg[:n]))
		sum256, err := c256.Finalize()
		require.NoError(t, err)
		sum224, err := c224.Finalize()
		require.NoError(t, err)
		require.Len(t, sum256, Size, "len %d", n)
		require.Len(t, sum224, Size224, "len %d", n)
	}
}

func TestChunkInvarianceEverySplit(t *testing.T) {
	msg := []byte(strings.Repeat(msg896, 2))[:200]
	want := Sum256(msg)
	for i := 0; i <= len(msg); i++ {
		for _, j := range []int{i, (i + len(msg)) / 2, len(msg)} {
			c := New()
			require.NoError(t, c.Update(msg[:i]))
			require.NoError(t, c.Update(msg[i:j]))
			require.NoError(t, c.Update(msg[j:]))
			sum, err := c.Finalize()
			require.NoError(t, err)
			require.Equal(t, want[:], sum, "split %d/%d", i, j)
		}
	}
}

func TestChunkInvarianceRandomPartitions(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for iter := 0; iter < 200; iter++ {
		msg := make([]byte, rng.Intn(1024))
		rng.Read(msg)
		want256 := sha256.Sum256(msg)
		want224 := sha256.Sum224(msg)

		c256, c224 := New(), New224()
		for rest := msg; len(rest) > 0; {
			n := 1 + rng.Intn(min(len(rest), 150))
			_, err := c256.Write(rest[:n])
			require.NoError(t, err)
			_, err = c224.Write(rest[:n])
			require.NoError(t, err)
			rest = rest[n:]
		}
		sum256, err := c256.Finalize()
		require.NoError(t, err)
		sum224, err := c224.Finalize()
		require.NoError(t, err)
		require.Equal(t, want256[:], sum256, "iteration %d len %d", iter, len(msg))
		require.Equal(t, want224[:], sum224, "iteration %d len %d", iter, len(msg))
	}
}

func TestEmptyUpdatesAreNoops(t *testing.T) {
	c := New()
	require.NoError(t, c.Update(nil))
	require.NoError(t, c.Update([]byte("ab")))
	require.NoError(t, c.Update([]byte{}))
	require.NoError(t, c.Update([]byte("c")))
	sum, err := c.Finalize()
	require.NoError(t, err)
	want := Sum256([]byte("abc"))
	assert.Equal(t, want[:], sum)
}

func TestResetIsolation(t *testing.T) {
	var c Context
	require.NoError(t, c.Init(256))
	require.NoError(t, c.Update([]byte(msg896)))
	require.NoError(t, c.Init(224))
	require.NoError(t, c.Update([]byte("abc")))
	sum, err := c.Finalize()
	require.NoError(t, err)

	want := Sum224([]byte("abc"))
	assert.Equal(t, want[:], sum)
	assert.Equal(t, uint64(3), c.Len())
	assert.Equal(t, 224, c.Variant())
}

func TestInitRejectsUnknownVariant(t *testing.T) {
	var c Context
	err := c.Init(512)
	require.ErrorIs(t, err, ErrInvalidVariant)
	require.ErrorIs(t, c.Update([]byte("x")), ErrNotInitialized)

	c2 := New224()
	require.ErrorIs(t, c2.Init(0), ErrInvalidVariant)
	assert.Equal(t, 224, c2.Variant(), "failed Init must leave the context untouched")
}

func TestVariantOrDefault(t *testing.T) {
	assert.Equal(t, 224, VariantOrDefault(224))
	assert.Equal(t, 256, VariantOrDefault(256))
	assert.Equal(t, 256, VariantOrDefault(384))
	assert.Equal(t, 256, VariantOrDefault(-1))
}

func TestZeroContextRejected(t *testing.T) {
	var c Context
	require.ErrorIs(t, c.Update([]byte("abc")), ErrNotInitialized)
	_, err := c.Finalize()
	require.ErrorIs(t, err, ErrNotInitialized)
	_, err = c.Write([]byte("abc"))
	require.ErrorIs(t, err, ErrNotInitialized)
	assert.Equal(t, 0, c.Size())
	assert.Equal(t, 0, c.Variant())
}

func TestFinalizeIsTerminal(t *testing.T) {
	c := New()
	require.NoError(t, c.Update([]byte("abc")))
	_, err := c.Finalize()
	require.NoError(t, err)

	_, err = c.Finalize()
	require.ErrorIs(t, err, ErrFinalized)
	require.ErrorIs(t, c.Update([]byte("more")), ErrFinalized)

	require.NoError(t, c.Init(256))
	require.NoError(t, c.Update([]byte("abc")))
	sum, err := c.Finalize()
	require.NoError(t, err)
	want := Sum256([]byte("abc"))
	assert.Equal(t, want[:], sum)
}

func TestCloneIsIndependent(t *testing.T) {
	c := New()
	require.NoError(t, c.Update([]byte("ab")))
	snapshot := c.Clone()
	require.NoError(t, c.Update([]byte("c")))

	first, err := snapshot.Finalize()
	require.NoError(t, err)
	second, err := c.Finalize()
	require.NoError(t, err)

	wantAB, wantABC := Sum256([]byte("ab")), Sum256([]byte("abc"))
	assert.Equal(t, wantAB[:], first)
	assert.Equal(t, wantABC[:], second)
}

func BenchmarkUpdate8K(b *testing.B) {
	buf := make([]byte, 8192)
	c := New()
	b.SetBytes(int64(len(buf)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = c.Update(buf)
	}
}
