// Package textread loads source files as text, substituting U+FFFD for byte
// sequences that are not valid UTF-8 instead of failing.
package textread

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var replacement = []byte("\uFFFD")

// Text is the decoded content of one file.
type Text struct {
	Content string
	Size    int64  // bytes on disk
	Hash    string // hex SHA-256 of the bytes on disk

	// Lossy is true when at least one invalid byte sequence was replaced.
	Lossy bool
}

// Read reads path fully and decodes it as UTF-8. A leading UTF-8 byte order
// mark is stripped; no other encoding is inferred. Only I/O failures are
// returned as errors; undecodable content is repaired, never rejected.
func Read(path string) (Text, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Text{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Decode(raw), nil
}

// Decode converts raw bytes to text with the same rules as Read.
func Decode(raw []byte) Text {
	dec := unicode.UTF8BOM.NewDecoder()
	out, _, err := transform.Bytes(dec, raw)
	if err != nil {
		out = bytes.ToValidUTF8(raw, replacement)
	}
	return Text{
		Content: string(out),
		Size:    int64(len(raw)),
		Hash:    contentHash(raw),
		Lossy:   bytes.Count(out, replacement) > bytes.Count(raw, replacement),
	}
}

func contentHash(raw []byte) string {
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
