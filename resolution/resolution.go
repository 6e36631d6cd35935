package resolution

import (
	"errors"
	"fmt"
	"unicode"
)

// Bucket is a symbolic boundary resolution.
type Bucket int

const (
	Medium Bucket = iota
	Low
	High
)

func (b Bucket) String() string {
	switch b {
	case Low:
		return "low"
	case High:
		return "high"
	}
	return "medium"
}

// NaturalEarth scales, used for coastlines, borders, states, and fills.
const (
	Scale110m = "110m"
	Scale50m  = "50m"
	Scale10m  = "10m"
)

// US county scales.
const (
	Scale20m  = "20m"
	Scale5m   = "5m"
	Scale500k = "500k"
)

var scales = map[Bucket][2]string{
	Low:    {Scale110m, Scale20m},
	Medium: {Scale50m, Scale5m},
	High:   {Scale10m, Scale500k},
}

var ErrUnknownToken = errors.New("unknown resolution token")

// ContainsDigit reports whether any rune of s is a decimal digit.
func ContainsDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// Classify buckets a symbolic token.
// Anything other than "l" or "h" is Medium, including the empty string.
func Classify(token string) Bucket {
	switch token {
	case "l":
		return Low
	case "h":
		return High
	}
	return Medium
}

// Resolve returns the concrete dataset scale for token.
// Tokens containing a digit, eg. "50m" or "500k", are assumed concrete and returned as-is.
// Unrecognized symbolic tokens fall back to the medium scale.
func Resolve(token string, forCounties bool) string {
	if ContainsDigit(token) {
		return token
	}
	return Scale(Classify(token), forCounties)
}

// ResolveStrict is Resolve, but refuses symbolic tokens other than "l", "m", and "h".
func ResolveStrict(token string, forCounties bool) (string, error) {
	if ContainsDigit(token) {
		return token, nil
	}
	switch token {
	case "l", "m", "h":
		return Resolve(token, forCounties), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownToken, token)
}

// Scale returns the scale literal for a bucket.
func Scale(b Bucket, forCounties bool) string {
	s, ok := scales[b]
	if !ok {
		s = scales[Medium]
	}
	if forCounties {
		return s[1]
	}
	return s[0]
}
