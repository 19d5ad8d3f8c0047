// internal/feedback/codec.go
//
// Feedback codec for guess/target comparisons.
// Responsibilities:
//   - Score a guess against a target with the two-pass Wordle algorithm.
//   - Pack the per-position digits (0 miss, 1 present, 2 hit) into one base-3
//     Code, position 0 being the least significant digit.
//   - Convert codes to and from their digit pattern strings ("02202").
//
// Words are compared byte by byte; callers normalize to lowercase ASCII.
package feedback

import (
	"errors"
	"fmt"
)

// Code is a packed feedback pattern in [0, 3^L-1].
type Code uint16

const (
	// DefaultLength is the classic Wordle word length.
	DefaultLength = 5
	// MaxLength keeps every code of every supported length within a Code.
	MaxLength = 10
)

const (
	Miss    = 0
	Present = 1
	Hit     = 2
)

var (
	ErrLengthMismatch = errors.New("feedback: guess and target lengths differ")
	ErrInvalidLength  = errors.New("feedback: word length out of range")
	ErrInvalidCode    = errors.New("feedback: invalid feedback code")
)

// pow3 holds 3^i for i in [0, MaxLength].
var pow3 = func() [MaxLength + 1]int {
	var p [MaxLength + 1]int
	p[0] = 1
	for i := 1; i <= MaxLength; i++ {
		p[i] = p[i-1] * 3
	}
	return p
}()

// ValidLength reports whether words of length n can be encoded.
func ValidLength(n int) bool { return n >= 1 && n <= MaxLength }

// Space returns the number of distinct codes for words of the given length (3^L).
func Space(length int) int {
	if !ValidLength(length) {
		return 0
	}
	return pow3[length]
}

// Solved returns the all-hit code for the given length (3^L - 1).
func Solved(length int) Code {
	return Code(Space(length) - 1)
}

// Encode compares guess against target and returns the packed feedback.
func Encode(guess, target string) (Code, error) {
	if len(guess) != len(target) {
		return 0, fmt.Errorf("%w: %q (%d) vs %q (%d)", ErrLengthMismatch, guess, len(guess), target, len(target))
	}
	if !ValidLength(len(guess)) {
		return 0, fmt.Errorf("%w: %d", ErrInvalidLength, len(guess))
	}
	return encode(guess, target), nil
}

// encode is the unchecked hot path; both words must share a valid length.
//
// Pass 1 marks exact hits and consumes both letters. Pass 2 walks the
// remaining guess letters and consumes the leftmost unconsumed matching
// target letter, so a repeated guess letter is only credited as often as the
// target actually contains it.
func encode(guess, target string) Code {
	n := len(guess)
	var usedGuess, usedTarget [MaxLength]bool
	code := 0

	for i := 0; i < n; i++ {
		if guess[i] == target[i] {
			code += Hit * pow3[i]
			usedGuess[i] = true
			usedTarget[i] = true
		}
	}

	for i := 0; i < n; i++ {
		if usedGuess[i] {
			continue
		}
		for j := 0; j < n; j++ {
			if !usedTarget[j] && guess[i] == target[j] {
				code += Present * pow3[i]
				usedTarget[j] = true
				break
			}
		}
	}
	return Code(code)
}

// Valid reports whether c is a well-formed code for the given length.
func (c Code) Valid(length int) bool {
	return ValidLength(length) && int(c) < pow3[length]
}

// Pattern renders c as length digits from {'0','1','2'}, position 0 first.
func (c Code) Pattern(length int) (string, error) {
	if !c.Valid(length) {
		return "", fmt.Errorf("%w: %d for length %d", ErrInvalidCode, c, length)
	}
	b := make([]byte, length)
	v := int(c)
	for i := 0; i < length; i++ {
		b[i] = byte('0' + v%3)
		v /= 3
	}
	return string(b), nil
}

// Digits unpacks c into one digit per position.
func (c Code) Digits(length int) ([]int, error) {
	if !c.Valid(length) {
		return nil, fmt.Errorf("%w: %d for length %d", ErrInvalidCode, c, length)
	}
	out := make([]int, length)
	v := int(c)
	for i := range out {
		out[i] = v % 3
		v /= 3
	}
	return out, nil
}

// ParsePattern is the inverse of Pattern.
func ParsePattern(s string) (Code, error) {
	if !ValidLength(len(s)) {
		return 0, fmt.Errorf("%w: pattern %q has length %d", ErrInvalidCode, s, len(s))
	}
	code := 0
	for i := 0; i < len(s); i++ {
		d := s[i]
		if d < '0' || d > '2' {
			return 0, fmt.Errorf("%w: pattern %q has digit %q", ErrInvalidCode, s, d)
		}
		code += int(d-'0') * pow3[i]
	}
	return Code(code), nil
}

// FromDigits packs per-position digits into a Code.
func FromDigits(digits []int) (Code, error) {
	if !ValidLength(len(digits)) {
		return 0, fmt.Errorf("%w: %d digits", ErrInvalidCode, len(digits))
	}
	code := 0
	for i, d := range digits {
		if d < Miss || d > Hit {
			return 0, fmt.Errorf("%w: digit %d at position %d", ErrInvalidCode, d, i)
		}
		code += d * pow3[i]
	}
	return Code(code), nil
}
