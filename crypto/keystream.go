package crypto

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"golang.org/x/crypto/sha3"
)

// keystreamDomain separates the masking keystream from other hash uses.
var keystreamDomain = []byte("omega/masking/keystream/v1")

// Keystream derives n bytes of deterministic pseudo-random stream from the
// masking parameters. The stream is a pure function of (theta, sigma): equal
// parameters yield an identical stream, which is what makes the XOR masking
// self-inverse across sender and receiver.
//
// The stream is drawn from SHAKE256 seeded with theta's bit pattern and
// sigma. SHAKE is an extendable-output function, so the stream length is
// unbounded and messages of any size can be masked.
func Keystream(params MaskingParams, n int) ([]byte, error) {
	var seed [8]byte
	binary.LittleEndian.PutUint64(seed[:], math.Float64bits(params.Theta))

	h := sha3.NewShake256()
	h.Write(keystreamDomain)
	h.Write(seed[:])
	h.Write(params.Sigma[:])

	out := make([]byte, n)
	if _, err := io.ReadFull(h, out); err != nil {
		return nil, fmt.Errorf("draw keystream: %w", err)
	}
	return out, nil
}
