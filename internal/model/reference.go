package model

import "strings"

// ReferenceIndex maps a transfer's link (received) reference to the row that
// declared it. Built once per load and read-only afterwards.
type ReferenceIndex map[string]Row

// Lookup returns the row declaring ref as its link reference.
func (ix ReferenceIndex) Lookup(ref string) (Row, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" || IsPlaceholder(ref) {
		return nil, false
	}
	row, ok := ix[ref]
	return row, ok
}

// Layer returns the layer of the transfer row that declared ref. Layers
// below 1 read as 1, the same as on extracted transfers.
func (ix ReferenceIndex) Layer(ref string) (int, bool) {
	row, ok := ix.Lookup(ref)
	if !ok {
		return 0, false
	}
	layer, ok := row.Layer()
	if !ok {
		return 0, false
	}
	return max(layer, 1), true
}
