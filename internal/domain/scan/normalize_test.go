//go:build unit

package scan_test

import (
	"testing"

	"cargo-backoffice/internal/domain/scan"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeScanToken(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "space separated IATA", input: "607 12345678", want: "607-12345678"},
		{name: "already hyphenated IATA", input: "607-12345678", want: "607-12345678"},
		{name: "bare 11 digits", input: "60712345678", want: "607-12345678"},
		{name: "underscore separated", input: "607_12345678", want: "607-12345678"},
		{name: "tab and spaces", input: "\t607 1234 5678 ", want: "607-12345678"},
		{name: "lowercase carrier code upper-cased", input: "tac12345678", want: "TAC12345678"},
		{name: "ten digits stay unchanged", input: "6071234567", want: "6071234567"},
		{name: "twelve digits stay unchanged", input: "607123456789", want: "607123456789"},
		{name: "empty", input: "", want: ""},
		{name: "delimiters only", input: " -_ ", want: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, scan.NormalizeScanToken(tc.input))
		})
	}
}

// Normalization is idempotent: a second pass never changes the result.
func TestNormalizeScanToken_Idempotent(t *testing.T) {
	inputs := []string{"607 12345678", "607-12345678", "60712345678", "tac12345678", "random"}
	for _, in := range inputs {
		once := scan.NormalizeScanToken(in)
		assert.Equal(t, once, scan.NormalizeScanToken(once), "input %q", in)
	}
}

func TestIsValidAWBFormat(t *testing.T) {
	assert.True(t, scan.IsValidAWBFormat("607-12345678"))
	assert.True(t, scan.IsValidAWBFormat("607 12345678"))
	assert.True(t, scan.IsValidAWBFormat("60712345678"))
	assert.False(t, scan.IsValidAWBFormat("6071234567"))
	assert.False(t, scan.IsValidAWBFormat("TAC12345678"))
	assert.False(t, scan.IsValidAWBFormat(""))
}
