package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlainSink(t *testing.T) {
	var buf bytes.Buffer
	s := NewPlainSink(&buf)

	s.OnStatus("Preparing: temp")
	s.OnPercent(33.3333)
	s.OnPercent(33.1)
	s.OnPercent(100)

	assert.Equal(t, "Preparing: temp\n[ 33%]\n[100%]\n", buf.String())
}

func TestIsTerminalFalseForBuffer(t *testing.T) {
	assert.False(t, IsTerminal(&bytes.Buffer{}))
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{in: "y\n", want: true},
		{in: "YES\n", want: true},
		{in: " yes ", want: true},
		{in: "n\n", want: false},
		{in: "\n", want: false},
		{in: "", want: false},
		{in: "maybe\n", want: false},
	}
	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.in), func(t *testing.T) {
			var out bytes.Buffer
			got, err := Confirm(strings.NewReader(tt.in), &out, "Continue?")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, "Continue? [y/N]: ", out.String())
		})
	}
}
