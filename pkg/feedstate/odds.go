package feedstate

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidOdds is returned when odds don't start with a number
var ErrInvalidOdds = errors.New("invalid odds value")

// ParseOdds parses decimal odds typed by a user. The first comma is treated as the decimal
// separator, so "2,50" gives 2.5. Only the leading number counts, "1.85 cote" gives 1.85.
// Empty input means zero odds.
func ParseOdds(s string) (float64, error) {
	val := strings.TrimSpace(s)
	if val == "" {
		val = "0"
	}
	val = strings.Replace(val, ",", ".", 1)

	num := decimalPrefix(val)
	if num == "" {
		return 0, fmt.Errorf("%w: %q", ErrInvalidOdds, s)
	}
	res, err := strconv.ParseFloat(num, 64)
	if err != nil || math.IsInf(res, 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidOdds, s)
	}
	return res, nil
}

// decimalPrefix returns the longest leading part of s written as a decimal number:
// optional sign, digits with an optional fraction, optional exponent.
// Returns empty string if s has no digits before anything else.
func decimalPrefix(s string) string {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	intDigits := countDigits(s[i:])
	i += intDigits

	fracDigits := 0
	if i < len(s) && s[i] == '.' {
		fracDigits = countDigits(s[i+1:])
		if intDigits+fracDigits > 0 {
			i += 1 + fracDigits
		}
	}
	if intDigits+fracDigits == 0 {
		return ""
	}

	// exponent is taken only when digits follow, "1e" reads as 1
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if n := countDigits(s[j:]); n > 0 {
			i = j + n
		}
	}
	return s[:i]
}

func countDigits(s string) int {
	n := 0
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	return n
}
