package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidAmount = errors.New("invalid amount")

// maxWholeDigits keeps cents inside int64.
const maxWholeDigits = 15

// ParseCents reads a plain decimal amount such as "19.9" or "20" into cents.
// Signs, exponents and more than two fraction digits are rejected.
func ParseCents(amount string) (int64, error) {
	whole, frac, hasFrac := strings.Cut(amount, ".")
	if !isDigits(whole) || len(whole) > maxWholeDigits {
		return 0, ErrInvalidAmount
	}
	if hasFrac && (!isDigits(frac) || len(frac) > 2) {
		return 0, ErrInvalidAmount
	}

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	cents, _ := strconv.ParseInt((frac + "00")[:2], 10, 64)
	return units*100 + cents, nil
}

func FormatCents(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
