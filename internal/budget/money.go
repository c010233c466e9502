package budget

import (
	"errors"
	"fmt"
	"strconv"
)

// MaxAmount bounds entry and goal amounts, in cents.
const MaxAmount = 100000000

var (
	// ErrAmountSign is returned for amounts missing their +/- prefix.
	ErrAmountSign = errors.New("The amount must start with + or -")
	// ErrAmountInvalid is returned for amounts that are not whole
	// dollars within bounds.
	ErrAmountInvalid = errors.New("Invalid amount.")
)

// ParseAmount converts a signed whole-dollar token like "+300" or "-45"
// into cents. A bare "0" is the one token excused from carrying a sign.
func ParseAmount(token string) (int, error) {
	if token == "0" {
		token = "+0"
	}
	if token == "" || (token[0] != '+' && token[0] != '-') {
		return 0, ErrAmountSign
	}
	digits := token[1:]
	if digits == "" {
		return 0, ErrAmountInvalid
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, ErrAmountInvalid
		}
	}
	dollars, err := strconv.Atoi(digits)
	if err != nil || dollars >= MaxAmount/100 {
		return 0, ErrAmountInvalid
	}
	cents := dollars * 100
	if token[0] == '-' {
		cents = -cents
	}
	return cents, nil
}

// Dollars renders cents as a signed dollar string: +$1234.00. Zero
// renders positive.
func Dollars(cents int) string {
	sign := "+"
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}
