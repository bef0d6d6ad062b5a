package logview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tlog/internal/app/errors"
)

func Test_Line_Emphasis(t *testing.T) {
	normal := NewLine("ok", Black, false)
	important := NewLine("FAILED", Red, true)

	assert.Greater(t, important.Size(), normal.Size())
	assert.Equal(t, ImportantSize, important.Size())
	assert.Equal(t, NormalSize, normal.Size())
	assert.True(t, important.Bold())
	assert.False(t, normal.Bold())
}

func Test_ParseColor(t *testing.T) {
	tests := []struct {
		input    string
		expected Color
		err      bool
	}{
		{input: "red", expected: Red},
		{input: "  Green ", expected: Green},
		{input: "grey", expected: Gray},
		{input: "#ff8000", expected: Color{255, 128, 0}},
		{input: "00FF00", expected: Color{0, 255, 0}},
		{input: "#fff", err: true},
		{input: "#gggggg", err: true},
		{input: "mauve", err: true},
		{input: "", err: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			c, err := ParseColor(tt.input)
			if tt.err {
				require.Error(t, err)
				assert.ErrorIs(t, err, errors.ErrInvalidColor)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, c)
		})
	}
}

func Test_Color_String(t *testing.T) {
	assert.Equal(t, "black", Black.String())
	assert.Equal(t, "gray", Gray.String())
	assert.Equal(t, "#010203", Color{1, 2, 3}.String())
	assert.Equal(t, "#dc2626", Red.Hex())
}
