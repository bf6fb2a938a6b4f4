// Package tipping builds PayPal.me deep links for the profile tip button.
package tipping

import (
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/zazjoe90-oss/go-linkbio/pkg/types"
)

// BaseURL is the PayPal.me endpoint tips are sent to.
const BaseURL = "https://www.paypal.com/paypalme/"

// Amount is a tip value held in cents.
type Amount int64

// plainDecimal matches optionally signed digits with an optional fraction.
// Hex floats, exponents and the NaN/Inf spellings do not match.
var plainDecimal = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)$`)

// Presets are the amounts offered as one-tap buttons.
var Presets = []Amount{500, 1000, 2500, 5000}

// DefaultAmount is preselected when no amount is supplied.
const DefaultAmount Amount = 1000

// String renders whole amounts without decimals ("10") and the rest with
// two ("12.50").
func (a Amount) String() string {
	if a%100 == 0 {
		return strconv.FormatInt(int64(a)/100, 10)
	}
	return fmt.Sprintf("%d.%02d", int64(a)/100, int64(a)%100)
}

// ParseAmount accepts plain positive decimal input such as "5", "12.5" or
// "$25". Values are rounded to the nearest cent and must be at least 0.01.
func ParseAmount(raw string) (Amount, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(raw), "$")
	if trimmed == "" {
		return 0, types.NewValidationError("amount", "amount is required", raw)
	}
	if !plainDecimal.MatchString(trimmed) {
		return 0, types.NewValidationError("amount", "amount must be a number", raw)
	}
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsInf(value, 0) {
		return 0, types.NewValidationError("amount", "amount is too large", raw)
	}
	if value <= 0 {
		return 0, types.NewValidationError("amount", "amount must be positive", raw)
	}
	cents := math.Round(value * 100)
	if cents < 1 {
		return 0, types.NewValidationError("amount", "amount must be at least 0.01", raw)
	}
	if cents > math.MaxInt64/2 {
		return 0, types.NewValidationError("amount", "amount is too large", raw)
	}
	return Amount(cents), nil
}

// BuildLink returns the PayPal.me URL for handle and amount.
func BuildLink(handle string, amount Amount) (string, error) {
	handle = strings.TrimSpace(handle)
	if handle == "" {
		return "", types.NewValidationError("tip_handle", "tip handle is required", handle)
	}
	if amount <= 0 {
		return "", types.NewValidationError("amount", "amount must be positive", amount.String())
	}
	return BaseURL + url.PathEscape(handle) + "/" + amount.String(), nil
}
