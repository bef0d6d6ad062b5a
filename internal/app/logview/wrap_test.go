package logview

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_wrapText(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		width    int
		expected []string
	}{
		{name: "fits", text: "short", width: 10, expected: []string{"short"}},
		{name: "empty", text: "", width: 10, expected: []string{""}},
		{name: "no limit", text: "anything goes here", width: 0, expected: []string{"anything goes here"}},
		{name: "breaks at spaces", text: "hello world", width: 5, expected: []string{"hello", "world"}},
		{name: "packs words", text: "a b c d e f", width: 5, expected: []string{"a b c", "d e f"}},
		{name: "hard breaks long words", text: "abcdefgh", width: 3, expected: []string{"abc", "def", "gh"}},
		{name: "long word after short", text: "ok abcdefgh", width: 4, expected: []string{"ok", "abcd", "efgh"}},
		{name: "tabs expand", text: "\tx", width: 10, expected: []string{"    x"}},
		{name: "wide runes", text: "日本語テキスト", width: 6, expected: []string{"日本語", "テキス", "ト"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, wrapText(tt.text, tt.width))
		})
	}
}
