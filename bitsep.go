// Package bitsep renders binary values as underscore separated groups of four
// characters, like 0000_0000_1111_0101. Handy when staring at register dumps.
package bitsep

import (
	"fmt"
	"strings"

	"golang.org/x/exp/constraints"
)

// Width is the number of binary digits integers are rendered as, zero padded
// on the left, most significant bit first.
const Width = 64

// GroupSize is the number of characters between two separators.
const GroupSize = 4

// Separator goes between groups, never first or last.
const Separator = '_'

// FormatBits groups bits into clusters of GroupSize characters joined by
// Separator, left to right. The last group may be shorter. The input is used
// as-is: no padding and no validation, see CheckBits for that.
func FormatBits(bits string) string {
	chars := []rune(bits)

	var result strings.Builder
	result.Grow(len(chars) + len(chars)/GroupSize)
	for i, char := range chars {
		if i > 0 && i%GroupSize == 0 {
			result.WriteRune(Separator)
		}
		result.WriteRune(char)
	}

	return result.String()
}

// FormatUint64 renders value as Width binary digits and groups them.
//
// The result is always 79 characters long.
func FormatUint64(value uint64) string {
	return FormatBits(fmt.Sprintf("%0*b", Width, value))
}

// FormatInt works like FormatUint64 for any integer type. Negative numbers
// come out as their 64 bit two's complement.
func FormatInt[T constraints.Integer](value T) string {
	return FormatUint64(uint64(value))
}

// NotBinaryError is returned by CheckBits for input containing something other
// than '0' and '1'.
type NotBinaryError struct {
	Char rune

	// Zero based, counted in characters, not bytes
	Position int
}

func (e *NotBinaryError) Error() string {
	return fmt.Sprintf("not a binary digit at position %d: %q", e.Position, e.Char)
}

// CheckBits returns a *NotBinaryError for the first character in bits that
// isn't '0' or '1'. The empty string passes.
func CheckBits(bits string) error {
	position := 0
	for _, char := range bits {
		if char != '0' && char != '1' {
			return &NotBinaryError{Char: char, Position: position}
		}
		position++
	}

	return nil
}
