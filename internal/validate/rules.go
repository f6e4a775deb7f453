// Package validate holds the field rules shared by every form. Rules are pure:
// they look at a single value and report whether it is acceptable.
package validate

import (
	"math"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cast"

	"github.com/talkincode/vitrine/pkg/common"
)

const (
	MsgRequired       = "This field is required."
	MsgInvalidCPF     = "Invalid CPF. Use 11 digits or the XXX.XXX.XXX-XX format."
	MsgInvalidPhone   = "Invalid phone. Use (XX) XXXXX-XXXX or digits only."
	MsgInvalidEmail   = "Invalid e-mail."
	MsgShortPassword  = "The password must be at least 6 characters long."
	MsgInvalidURL     = "Invalid URL."
	MsgNotPositive    = "Must be a positive number."
	MsgNotWholeNumber = "Must be a whole number."
	MsgTooLarge       = "Must be at most 2147483647."
	minPasswordLength = 6

	// MaxWholeNumber bounds PositiveInteger so the value fits an int32.
	MaxWholeNumber = math.MaxInt32
)

var (
	cpfGroupedPattern = regexp.MustCompile(`^\d{3}\.\d{3}\.\d{3}-\d{2}$`)
	cpfDigitsPattern  = regexp.MustCompile(`^\d{11}$`)

	phoneFormattedPattern = regexp.MustCompile(`^(\(\d{2}\)\s?)?\d{4,5}-?\d{4}$`)
	phoneDigitsPattern    = regexp.MustCompile(`^\d{8,11}$`)

	// deliberately permissive and unanchored
	emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)
)

// Result is the outcome of one rule. Message is empty when Valid is true.
type Result struct {
	Valid   bool
	Message string
}

// Rule checks one input value.
type Rule func(value string) Result

func pass() Result { return Result{Valid: true} }

func failWith(msg string) Result { return Result{Message: msg} }

// Required accepts any value with a non-blank character.
func Required(value string) Result {
	if common.IsEmpty(value) {
		return failWith(MsgRequired)
	}
	return pass()
}

// CPF accepts XXX.XXX.XXX-XX or exactly 11 digits.
func CPF(value string) Result {
	if r := Required(value); !r.Valid {
		return r
	}
	v := strings.TrimSpace(value)
	if !cpfGroupedPattern.MatchString(v) && !cpfDigitsPattern.MatchString(v) {
		return failWith(MsgInvalidCPF)
	}
	return pass()
}

// Phone accepts "(XX) XXXXX-XXXX" style numbers with an optional area code
// and optional hyphen, or 8 to 11 bare digits.
func Phone(value string) Result {
	if r := Required(value); !r.Valid {
		return r
	}
	v := strings.TrimSpace(value)
	if !phoneFormattedPattern.MatchString(v) && !phoneDigitsPattern.MatchString(v) {
		return failWith(MsgInvalidPhone)
	}
	return pass()
}

// Email only looks for something@something.something.
func Email(value string) Result {
	if r := Required(value); !r.Valid {
		return r
	}
	if !emailPattern.MatchString(strings.TrimSpace(value)) {
		return failWith(MsgInvalidEmail)
	}
	return pass()
}

// Password measures the raw value, surrounding spaces included.
func Password(value string) Result {
	if r := Required(value); !r.Valid {
		return r
	}
	if utf8.RuneCountInString(value) < minPasswordLength {
		return failWith(MsgShortPassword)
	}
	return pass()
}

// URL is optional. A non-empty value must be an absolute URL.
func URL(value string) Result {
	v := strings.TrimSpace(value)
	if v == "" {
		return pass()
	}
	u, err := url.Parse(v)
	if err != nil || u.Scheme == "" || (u.Host == "" && u.Opaque == "" && u.Path == "") {
		return failWith(MsgInvalidURL)
	}
	return pass()
}

// PositiveNumber accepts finite numbers greater than zero.
func PositiveNumber(value string) Result {
	if r := Required(value); !r.Valid {
		return r
	}
	if _, ok := ParsePositive(value); !ok {
		return failWith(MsgNotPositive)
	}
	return pass()
}

// PositiveInteger is PositiveNumber restricted to whole numbers.
func PositiveInteger(value string) Result {
	if r := PositiveNumber(value); !r.Valid {
		return r
	}
	f, _ := ParsePositive(value)
	if f != math.Trunc(f) {
		return failWith(MsgNotWholeNumber)
	}
	if f > MaxWholeNumber {
		return failWith(MsgTooLarge)
	}
	return pass()
}

// ParsePositive parses value as a float and reports whether it is a finite
// number greater than zero.
func ParsePositive(value string) (float64, bool) {
	f, err := cast.ToFloat64E(strings.TrimSpace(value))
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return 0, false
	}
	return f, true
}
