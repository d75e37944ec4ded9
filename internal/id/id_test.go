package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatNodeID(t *testing.T) {
	tests := []struct {
		canonical string
		layer     int
		want      string
	}{
		{"123", 1, "123_1"},
		{"120205001778", 4, "120205001778_4"},
		{"0", 2, "0_2"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatNodeID(tt.canonical, tt.layer))
	}
}

func TestFormatWithdrawalNodeID(t *testing.T) {
	assert.Equal(t, "ATM_123_abc", FormatWithdrawalNodeID("atm", "123", "abc"))
	assert.Equal(t, "CHEQUE_9_x", FormatWithdrawalNodeID("cheque", "9", "x"))
}

func TestParseNodeID(t *testing.T) {
	tests := []struct {
		input         string
		wantCanonical string
		wantLayer     int
	}{
		{"123_1", "123", 1},
		{"120205001778_4", "120205001778", 4},
		{"ab_cd_3", "ab_cd", 3},
	}
	for _, tt := range tests {
		canonical, layer, err := ParseNodeID(tt.input)
		require.NoError(t, err, "input: %s", tt.input)
		assert.Equal(t, tt.wantCanonical, canonical)
		assert.Equal(t, tt.wantLayer, layer)
	}
}

func TestParseNodeID_Errors(t *testing.T) {
	badInputs := []string{
		"",
		"123",
		"_1",
		"123_",
		"123_x",
	}
	for _, input := range badInputs {
		_, _, err := ParseNodeID(input)
		assert.Error(t, err, "expected error for input: %s", input)
	}
}

func TestSequence(t *testing.T) {
	var s Sequence
	assert.Equal(t, "e0001", s.Next())
	assert.Equal(t, "e0002", s.Next())

	var other Sequence
	assert.Equal(t, "e0001", other.Next(), "sequences are independent")
}

func TestNewOpaque(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		v := NewOpaque()
		require.NotEmpty(t, v)
		assert.False(t, seen[v], "duplicate opaque id %s", v)
		seen[v] = true
	}
}
