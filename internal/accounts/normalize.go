package accounts

import (
	"strings"

	"github.com/cleared-dev/moneytrail/internal/model"
)

// Normalize trims raw and blanks placeholder tokens ("N/A", "nan", "None",
// "undefined").
func Normalize(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" || model.IsPlaceholder(s) {
		return ""
	}
	return s
}

// Canonical returns the matching key for an account: the normalized value
// with leading zeros stripped. An all-zero account is "0"; an empty or
// placeholder account is "".
func Canonical(raw string) string {
	s := Normalize(raw)
	if s == "" {
		return ""
	}
	c := strings.TrimLeft(s, "0")
	if c == "" {
		return "0"
	}
	return c
}

// Match reports whether a and b identify the same account. Empty canonical
// forms never match, not even each other.
func Match(a, b string) bool {
	ca, cb := Canonical(a), Canonical(b)
	if ca == "" || cb == "" {
		return false
	}
	return ca == cb
}

// MoreComplete reports whether candidate is a better display form than
// current: strictly longer, or zero-padded where current is not.
func MoreComplete(candidate, current string) bool {
	if candidate == "" {
		return false
	}
	if len(candidate) > len(current) {
		return true
	}
	return strings.HasPrefix(candidate, "0") && !strings.HasPrefix(current, "0")
}
