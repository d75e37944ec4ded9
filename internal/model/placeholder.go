package model

// NotAvailable marks a reference value that could not be resolved.
const NotAvailable = "N/A"

// IsPlaceholder reports whether s is one of the tokens spreadsheet exports
// use for an empty cell. The comparison is exact and case-sensitive.
func IsPlaceholder(s string) bool {
	switch s {
	case "N/A", "nan", "None", "undefined":
		return true
	}
	return false
}
