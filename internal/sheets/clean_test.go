package sheets

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCleanAmount(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{"₹1,23,456.50", "123456.5"},
		{"(500)", "500"},
		{"-250", "250"},
		{"$ 1,000", "1000"},
		{"£7", "7"},
		{"abc", "0"},
		{"", "0"},
		{12.5, "12.5"},
		{-3, "3"},
		{int64(9), "9"},
		{decimal.NewFromInt(-4), "4"},
		{nil, "0"},
	}
	for _, tt := range tests {
		got := CleanAmount(tt.in)
		assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "CleanAmount(%v) = %s, want %s", tt.in, got, tt.want)
	}
}

func TestCleanDate(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{time.Date(2024, 3, 9, 18, 30, 0, 0, time.UTC), "2024-03-09"},
		{time.Time{}, ""},
		{45000.0, "2023-03-15"},
		{45000, "2023-03-15"},
		{"2024-01-15", "2024-01-15"},
		{"2024-01-15 10:11:12", "2024-01-15"},
		{"01/15/2024", "2024-01-15"},
		{"02-Jan-2024", "2024-01-02"},
		{" 15/01/2024 ", "15/01/2024"},
		{"   ", ""},
		{nil, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CleanDate(tt.in), "CleanDate(%v)", tt.in)
	}
}

func TestParseLayer(t *testing.T) {
	tests := []struct {
		in   any
		want int
	}{
		{"2", 2},
		{" 3 hops", 3},
		{"", 1},
		{"x", 1},
		{"0", 1},
		{0, 1},
		{4, 4},
		{2.0, 2},
		{nil, 1},
		{"-1", 1},
		{"-7 hops", 1},
		{-3, 1},
		{"+2", 2},
		{"99999999999999999999999", 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLayer(tt.in), "ParseLayer(%v)", tt.in)
	}
}
