package id

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// FormatNodeID returns an account node ID like "123_2" (canonical account, layer).
func FormatNodeID(canonical string, layer int) string {
	return fmt.Sprintf("%s_%d", canonical, layer)
}

// FormatWithdrawalNodeID returns a withdrawal node ID like "ATM_123_<uid>".
// The withdrawal's own ID keeps every withdrawal node unique.
func FormatWithdrawalNodeID(category, canonical, withdrawalID string) string {
	return fmt.Sprintf("%s_%s_%s", strings.ToUpper(category), canonical, withdrawalID)
}

// ParseNodeID splits "123_2" into canonical account and layer. The canonical
// part may itself contain underscores; the layer is after the last one.
func ParseNodeID(nodeID string) (canonical string, layer int, err error) {
	i := strings.LastIndexByte(nodeID, '_')
	if i <= 0 || i == len(nodeID)-1 {
		return "", 0, fmt.Errorf("invalid node ID format: %q", nodeID)
	}
	layer, err = strconv.Atoi(nodeID[i+1:])
	if err != nil {
		return "", 0, fmt.Errorf("invalid layer in node ID %q: %w", nodeID, err)
	}
	return nodeID[:i], layer, nil
}

// FormatEdgeID returns an edge ID like "e0001" for the seq'th edge of a build.
func FormatEdgeID(seq int) string {
	return fmt.Sprintf("e%04d", seq)
}

// Sequence hands out edge IDs for a single build.
type Sequence struct {
	n int
}

// Next returns the next edge ID.
func (s *Sequence) Next() string {
	s.n++
	return FormatEdgeID(s.n)
}

// NewOpaque returns a collision-resistant identifier for an extracted record.
func NewOpaque() string {
	return uuid.NewString()
}
