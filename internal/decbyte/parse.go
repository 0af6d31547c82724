package decbyte

import (
	"encoding/binary"
	"fmt"
	"math/bits"
)

// MaxLen is the longest token that can denote a byte.
const MaxLen = 3

// Lanes 0..9 stay below 0x10 after adding digitBias; 10..15 reach it.
// placeWeights holds 100, 10, 1 in lanes 2, 1, 0, so the product's lane 3
// collects hundreds*100 + tens*10 + units. maxDigits is "0,2,5,5" as read
// from the byte-reversed aligned word.
const (
	asciiZeros   = 0x30303030
	digitBias    = 0x06060606
	highNibbles  = 0xF0F0F0F0
	placeWeights = 0x00640A01
	maxDigits    = 0x00020505
)

// Token is any byte sequence Parse accepts.
type Token interface {
	~string | ~[]byte
}

// Parse reports the value of token if it is a 1 to 3 digit decimal literal
// in [0,255]. Any byte value may appear in token.
func Parse[T Token](token T) (uint8, bool) {
	n := len(token)
	if n == 0 || n > MaxLen {
		return 0, false
	}

	w := align(pack(token), n)
	v := accumulate(w)
	if !allDigits(w) || !inRange(w) {
		return 0, false
	}
	return v, true
}

// ParseBytes is Parse for byte slices.
func ParseBytes(b []byte) (uint8, bool) {
	return Parse(b)
}

// ParseString is Parse for strings.
func ParseString(s string) (uint8, bool) {
	return Parse(s)
}

// ParseErr is Parse returning ErrInvalidToken on failure.
func ParseErr[T Token](token T) (uint8, error) {
	v, ok := Parse(token)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidToken, string(token))
	}
	return v, nil
}

// Valid reports whether token denotes a byte.
func Valid[T Token](token T) bool {
	_, ok := Parse(token)
	return ok
}

// pack loads token bytes into lanes 0..n-1 and normalizes them. Unused
// lanes become 0x30 and are shifted out by align.
func pack[T Token](token T) uint32 {
	var lanes [4]byte
	copy(lanes[:], token)
	return binary.LittleEndian.Uint32(lanes[:]) ^ asciiZeros
}

// align moves the last token byte into lane 3. n must be 1..3.
func align(w uint32, n int) uint32 {
	return w << ((4 - n) * 8)
}

// allDigits reports whether every lane of w holds 0..9. The pre-addition
// word is checked too: lanes 0xFA..0xFF wrap to 0x00..0x05 when biased.
func allDigits(w uint32) bool {
	return ((w+digitBias)|w)&highNibbles == 0
}

// accumulate is only meaningful when allDigits(w) holds.
func accumulate(w uint32) uint8 {
	return uint8((w * placeWeights) >> 24)
}

// inRange is only meaningful when allDigits(w) holds.
func inRange(w uint32) bool {
	return bits.ReverseBytes32(w) <= maxDigits
}
