package graph

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrInvalidParams is returned when build parameters are out of range.
var ErrInvalidParams = errors.New("invalid graph parameters")

// DefaultMaxLayer is the layer window used when none is configured.
const DefaultMaxLayer = 4

// Params are the only tunables of a build.
type Params struct {
	MaxLayer  int             // inclusive upper bound on node layers
	MinAmount decimal.Decimal // inclusive lower bound on transfer amounts
}

// DefaultParams returns a window of DefaultMaxLayer layers with no amount floor.
func DefaultParams() Params {
	return Params{MaxLayer: DefaultMaxLayer, MinAmount: decimal.Zero}
}

// Validate checks that MaxLayer is at least 1 and MinAmount is not negative.
func (p Params) Validate() error {
	if p.MaxLayer < 1 {
		return fmt.Errorf("%w: max layer %d must be at least 1", ErrInvalidParams, p.MaxLayer)
	}
	if p.MinAmount.IsNegative() {
		return fmt.Errorf("%w: min amount %s must not be negative", ErrInvalidParams, p.MinAmount)
	}
	return nil
}

func (p Params) admits(layer int, amount decimal.Decimal) bool {
	return layer <= p.MaxLayer && amount.GreaterThanOrEqual(p.MinAmount)
}
