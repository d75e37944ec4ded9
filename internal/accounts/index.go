package accounts

// Entry is one canonical account and the best display form seen for it.
type Entry struct {
	Canonical string
	Display   string
}

// Index provides in-memory lookup of accounts by canonical id, keeping the
// longest original form seen for each.
type Index struct {
	entries []Entry
	byID    map[string]int
}

// NewIndex creates an empty Index.
func NewIndex() *Index {
	return &Index{byID: make(map[string]int)}
}

// Add records raw. It reports false when raw has no usable canonical form.
func (ix *Index) Add(raw string) bool {
	display := Normalize(raw)
	canonical := Canonical(raw)
	if canonical == "" {
		return false
	}
	if i, ok := ix.byID[canonical]; ok {
		if len(display) > len(ix.entries[i].Display) {
			ix.entries[i].Display = display
		}
		return true
	}
	ix.byID[canonical] = len(ix.entries)
	ix.entries = append(ix.entries, Entry{Canonical: canonical, Display: display})
	return true
}

// Exists reports whether a canonical id has been added.
func (ix *Index) Exists(canonical string) bool {
	_, ok := ix.byID[canonical]
	return ok
}

// All returns the entries in first-seen order.
func (ix *Index) All() []Entry {
	return ix.entries
}

// Len returns the number of distinct canonical accounts.
func (ix *Index) Len() int {
	return len(ix.entries)
}
