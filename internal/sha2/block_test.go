package sha2

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlockSinglePaddedAbc(t *testing.T) {
	var p [BlockSize]byte
	copy(p[:], "abc")
	p[3] = 0x80
	p[63] = 24

	h := iv256
	block(&h, p[:])
	want := [8]uint32{
		0xba7816bf, 0x8f01cfea, 0x414140de, 0x5dae2223,
		0xb00361a3, 0x96177a9c, 0xb410ff61, 0xf20015ad,
	}
	assert.Equal(t, want, h)
}

func TestBlockMultipleEqualsSequential(t *testing.T) {
	p := make([]byte, 3*BlockSize)
	for i := range p {
		p[i] = byte(i * 7)
	}
	all := iv224
	block(&all, p)

	seq := iv224
	for off := 0; off < len(p); off += BlockSize {
		block(&seq, p[off:off+BlockSize])
	}
	assert.Equal(t, seq, all)
}

func TestRoundFunctions(t *testing.T) {
	assert.Equal(t, uint32(0xf00ff00f), ch(0xff00ff00, 0xf0f0f0f0, 0x0f0f0f0f))
	assert.Equal(t, uint32(0x0f0f0f0f), maj(0x0f0f0f0f, 0x0f0f0f0f, 0xf0f0f0f0))
	assert.Equal(t, uint32(0x40080400), bigSigma0(1))
	assert.Equal(t, uint32(0x04200080), bigSigma1(1))
	assert.Equal(t, uint32(0x10020001), smallSigma0(8))
	assert.Equal(t, uint32(0x02800001), smallSigma1(1<<10))
}
