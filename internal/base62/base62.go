// Package base62 implements the fixed-width slug codec.
//
// Slugs are the base-62 representation of a store-assigned record id,
// left-padded with the zero character to a fixed width. The alphabet is
// digits, then lowercase, then uppercase, so slugs stay URL-safe without
// escaping.
package base62

import "errors"

// Alphabet is the fixed symbol table shared by Encode and Decode.
// Index order matters: changing it invalidates every issued slug.
const Alphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

const base = uint64(len(Alphabet))

// DefaultLength is the slug width the service advertises.
const DefaultLength = 6

var (
	// ErrOverflow is returned when an id does not fit in the requested width.
	ErrOverflow = errors.New("base62: id exceeds fixed slug width")

	// ErrInvalidChar is returned when a slug contains a character outside
	// the alphabet.
	ErrInvalidChar = errors.New("base62: invalid character")
)

// charIndex maps an alphabet byte to its value. Entries outside the
// alphabet hold -1 so malformed input fails instead of silently decoding
// to a wrong id.
var charIndex [256]int8

func init() {
	for i := range charIndex {
		charIndex[i] = -1
	}

	for i := 0; i < len(Alphabet); i++ {
		charIndex[Alphabet[i]] = int8(i)
	}
}

// MaxID returns the largest id representable in width characters.
func MaxID(width int) uint64 {
	maxID := uint64(1)
	for i := 0; i < width; i++ {
		maxID *= base
	}

	return maxID - 1
}

// Encode converts id to its base-62 representation, left-padded with '0'
// to exactly width characters. Ids larger than MaxID(width) are rejected
// so that two distinct ids can never map to the same fixed-width slug.
func Encode(id uint64, width int) (string, error) {
	if id > MaxID(width) {
		return "", ErrOverflow
	}

	buf := make([]byte, width)
	for i := width - 1; i >= 0; i-- {
		buf[i] = Alphabet[id%base]
		id /= base
	}

	return string(buf), nil
}

// Decode is the exact inverse of Encode: it accumulates the alphabet
// index of each character. Leading zero characters are ignored by the
// arithmetic, so Decode accepts both padded and minimal representations.
func Decode(slug string) (uint64, error) {
	var id uint64

	for i := 0; i < len(slug); i++ {
		idx := charIndex[slug[i]]
		if idx < 0 {
			return 0, ErrInvalidChar
		}

		id = id*base + uint64(idx)
	}

	return id, nil
}

// IsValid reports whether every character of slug is in the alphabet.
func IsValid(slug string) bool {
	for i := 0; i < len(slug); i++ {
		if charIndex[slug[i]] < 0 {
			return false
		}
	}

	return true
}
