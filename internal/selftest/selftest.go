// Package selftest checks the sha2 engine against published vectors and an independent implementation.
package selftest

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"math/rand"
	"strings"

	"github.com/hashicorp/go-multierror"
	simd "github.com/minio/sha256-simd"

	"sha2stream/internal/sha2"
)

// Vector is a published digest for a message.
type Vector struct {
	Bits int
	Msg  string
	Hex  string
}

// Vectors are FIPS 180-4 example messages and their digests.
var Vectors = []Vector{
	{256, "", "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
	{224, "", "d14a028c2a3a2bc9476102bb288234c415a2b01f828ea62ac5b3e42f"},
	{256, "abc", "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
	{224, "abc", "23097d223405d8228642a477bda255b32aadbce4bda0b3f7e36c9da7"},
	{256, "abcdbcdecdefdefgefghfghighijhijkijkljklmklmnlmnomnopnopq", "248d6a61d20638b8e5c026930c3e6039a33ce45964ff2167f6ecedd419db06c1"},
	{224, "abcdbcdecdefdefgefghfghighijhijkijkljklmklmnlmnomnopnopq", "75388b16512776cc5dba5da1fd890150b0c6455cb4f58b1952522525"},
	{256, strings.Repeat("a", 1000000), "cdc76e5c9914fb9281a1c7e284d73e67f1809a48a497200e046d39ccc7112cd0"},
}

// Result summarises a Run.
type Result struct {
	Vectors int
	Random  int
}

// Run checks every vector, then hashes rounds random messages in random
// pieces and compares each digest with sha256-simd.
func Run(seed int64, rounds int) (Result, error) {
	var (
		res  Result
		errs *multierror.Error
	)
	for _, v := range Vectors {
		c := new(sha2.Context)
		if err := c.Init(v.Bits); err != nil {
			return res, err
		}
		if err := c.Update([]byte(v.Msg)); err != nil {
			return res, err
		}
		sum, err := c.Finalize()
		if err != nil {
			return res, err
		}
		if got := hex.EncodeToString(sum); got != v.Hex {
			errs = multierror.Append(errs, fmt.Errorf("sha%d vector %.16q: got %s want %s", v.Bits, v.Msg, got, v.Hex))
		}
		res.Vectors++
	}

	rng := rand.New(rand.NewSource(seed))
	for i := 0; i < rounds; i++ {
		msg := make([]byte, rng.Intn(4096))
		rng.Read(msg)
		c := sha2.New()
		for rest := msg; len(rest) > 0; {
			n := 1 + rng.Intn(len(rest))
			_ = c.Update(rest[:n])
			rest = rest[n:]
		}
		got, err := c.Finalize()
		if err != nil {
			return res, err
		}
		want := simd.Sum256(msg)
		if !bytes.Equal(got, want[:]) {
			errs = multierror.Append(errs, fmt.Errorf("random message %d (%d bytes): got %x want %x", i, len(msg), got, want))
		}
		res.Random++
	}
	return res, errs.ErrorOrNil()
}
