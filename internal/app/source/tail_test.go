package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tlog/internal/app/bus"
	"tlog/internal/app/errors"
)

func appendFile(t *testing.T, path, text string) {
	t.Helper()

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0600)
	require.NoError(t, err)

	_, err = f.WriteString(text)
	require.NoError(t, err)
	require.NoError(t, f.Close())
}

func Test_Tail_FollowsAndResets(t *testing.T) {
	cfg, classifier, log := testDeps(t)
	cfg.View.TailLines = 2

	path := filepath.Join(t.TempDir(), "device.log")
	require.NoError(t, os.WriteFile(path, []byte("one\ntwo\nthree\n"), 0600))

	b := bus.New(64, nil)
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := b.Subscribe(ctx)
	sink := &memorySink{}
	src := NewTail(path, cfg, classifier, b, log)

	done := make(chan error, 1)

	go func() {
		done <- src.Run(ctx, sink)
	}()

	waitFor(t, events, bus.EventSourceStarted)
	assert.Equal(t, []string{"two", "three"}, sink.texts())

	appendFile(t, path, "four\npart")

	assert.Eventually(t, func() bool {
		texts := sink.texts()
		return len(texts) == 3 && texts[2] == "four"
	}, 3*time.Second, 20*time.Millisecond)

	appendFile(t, path, "ial\n")

	assert.Eventually(t, func() bool {
		texts := sink.texts()
		return len(texts) == 4 && texts[3] == "partial"
	}, 3*time.Second, 20*time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte("fresh\n"), 0600))

	waitFor(t, events, bus.EventSourceReset)

	assert.Eventually(t, func() bool {
		_, clears := sink.snapshot()
		texts := sink.texts()

		return clears >= 1 && len(texts) == 1 && texts[0] == "fresh"
	}, 3*time.Second, 20*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}

func Test_Tail_MissingFile(t *testing.T) {
	cfg, classifier, log := testDeps(t)

	src := NewTail(filepath.Join(t.TempDir(), "absent.log"), cfg, classifier, bus.NoOp(), log)

	err := src.Run(context.Background(), &memorySink{})
	assert.ErrorIs(t, err, errors.ErrFailedToOpenFile)
}

func Test_Ring(t *testing.T) {
	tests := []struct {
		name     string
		size     int
		added    int
		expected []string
	}{
		{name: "empty", size: 3, added: 0, expected: []string{}},
		{name: "partial", size: 3, added: 2, expected: []string{"0", "1"}},
		{name: "exact", size: 3, added: 3, expected: []string{"0", "1", "2"}},
		{name: "wrapped", size: 3, added: 5, expected: []string{"2", "3", "4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRing(tt.size)
			for i := 0; i < tt.added; i++ {
				r.add(fmt.Sprint(i))
			}

			assert.Equal(t, tt.expected, r.lines())
		})
	}
}

func Test_ReadLines_KeepsPartialLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.log")
	require.NoError(t, os.WriteFile(path, []byte("a\r\nb\nc"), 0600))

	var got []string

	offset, err := readLines(path, 0, func(line string) { got = append(got, line) })
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, got)
	assert.Equal(t, int64(len("a\r\nb\n")), offset)
	assert.False(t, strings.Contains(strings.Join(got, ""), "c"))
}
