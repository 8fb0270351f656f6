// Package hasher provides the canonical serialization and content hashing
// used to chain blocks and to test proof of work solutions.
package hasher

import (
	"bytes"
	"crypto/sha256"
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// Size is the number of hex characters in every digest produced.
const Size = sha256.Size * 2

// Hash returns the hex encoded SHA-256 digest of the canonical form of
// the value.
func Hash(value any) (string, error) {
	data, err := Canonical(value)
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256(data)
	return common.Bytes2Hex(sum[:]), nil
}

// Canonical returns the canonical JSON encoding of the value. Object keys are
// emitted in sorted order no matter how the value declares or inserted them,
// and numbers keep their literal text so they are never confused with strings.
func Canonical(value any) ([]byte, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}

	// Round trip through a generic tree. Struct fields become map keys which
	// the encoder always writes in sorted order.
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var tree any
	if err := dec.Decode(&tree); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(tree); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
