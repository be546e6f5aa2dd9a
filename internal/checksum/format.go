// Package checksum formats, parses and verifies digest lists and hashes files.
package checksum

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	apperrors "sha2stream/internal/errors"
	"sha2stream/internal/sha2"
)

// Entry is one line of a checksum list.
type Entry struct {
	Digest []byte
	Name   string
	Bits   int
}

// Algorithm returns the tag used in BSD-style lines.
func Algorithm(bits int) string {
	if bits == sha2.Bits224 {
		return "SHA224"
	}
	return "SHA256"
}

// Format writes one list line, either "<hex>  <name>" or "SHA256 (<name>) = <hex>" when tag is set.
func Format(w io.Writer, e Entry, tag bool) error {
	var err error
	if tag {
		_, err = fmt.Fprintf(w, "%s (%s) = %x\n", Algorithm(e.Bits), e.Name, e.Digest)
	} else {
		_, err = fmt.Fprintf(w, "%x  %s\n", e.Digest, e.Name)
	}
	if err != nil {
		return fmt.Errorf("write checksum line: %w", err)
	}
	return nil
}

// Parse decodes a line in either supported format. The variant is inferred from the digest length.
func Parse(line string) (Entry, error) {
	line = strings.TrimRight(line, "\r\n")
	if strings.HasPrefix(line, "SHA256 (") || strings.HasPrefix(line, "SHA224 (") {
		return parseTagged(line)
	}
	hexPart, name, ok := strings.Cut(line, " ")
	if !ok || len(name) < 2 || (name[0] != ' ' && name[0] != '*') {
		return Entry{}, fmt.Errorf("line %q: %w", line, apperrors.ErrMalformedLine)
	}
	return decode(hexPart, name[1:], line)
}

func parseTagged(line string) (Entry, error) {
	alg := line[:6]
	rest := line[len("SHA256 ("):]
	idx := strings.LastIndex(rest, ") = ")
	if idx < 0 {
		return Entry{}, fmt.Errorf("line %q: %w", line, apperrors.ErrMalformedLine)
	}
	e, err := decode(rest[idx+len(") = "):], rest[:idx], line)
	if err != nil {
		return Entry{}, err
	}
	if Algorithm(e.Bits) != alg {
		return Entry{}, fmt.Errorf("line %q: %s digest has wrong length: %w", line, alg, apperrors.ErrMalformedLine)
	}
	return e, nil
}

func decode(hexPart, name, line string) (Entry, error) {
	digest, err := hex.DecodeString(hexPart)
	if err != nil {
		return Entry{}, fmt.Errorf("line %q: bad hex: %w", line, apperrors.ErrMalformedLine)
	}
	var bits int
	switch len(digest) {
	case sha2.Size:
		bits = sha2.Bits256
	case sha2.Size224:
		bits = sha2.Bits224
	default:
		return Entry{}, fmt.Errorf("line %q: digest length %d: %w", line, len(digest), apperrors.ErrMalformedLine)
	}
	if name == "" {
		return Entry{}, fmt.Errorf("line %q: missing file name: %w", line, apperrors.ErrMalformedLine)
	}
	return Entry{Digest: digest, Name: name, Bits: bits}, nil
}
