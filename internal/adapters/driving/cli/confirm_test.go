package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsYes(t *testing.T) {
	for _, answer := range []string{"y", "Y", "yes", " YES \n"} {
		assert.True(t, isYes(answer), answer)
	}
	for _, answer := range []string{"", "n", "no", "yess", "ok"} {
		assert.False(t, isYes(answer), answer)
	}
}

func TestConsoleConfirmer(t *testing.T) {
	var out bytes.Buffer
	c := newConsoleConfirmer(strings.NewReader("y\nno\n"), &out)

	ok, err := c.Confirm(context.Background(), "Overwrite?")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, out.String(), "Overwrite?\n")
	assert.Contains(t, out.String(), "Are you sure (y/n)?")

	ok, err = c.Confirm(context.Background(), "Again?")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestConsoleConfirmer_EOF(t *testing.T) {
	c := newConsoleConfirmer(strings.NewReader(""), io.Discard)

	ok, err := c.Confirm(context.Background(), "Overwrite?")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestConsoleConfirmer_AnswerWithoutNewline(t *testing.T) {
	c := newConsoleConfirmer(strings.NewReader("yes"), io.Discard)

	ok, err := c.Confirm(context.Background(), "Overwrite?")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestConsoleConfirmer_Canceled(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()
	c := newConsoleConfirmer(r, io.Discard)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ok, err := c.Confirm(ctx, "Overwrite?")
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, ok)
}

func TestConsoleConfirmer_AlreadyCanceledDoesNotPrompt(t *testing.T) {
	var out bytes.Buffer
	c := newConsoleConfirmer(strings.NewReader("y\n"), &out)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ok, err := c.Confirm(ctx, "Overwrite?")
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, ok)
	assert.Empty(t, out.String())
	assert.Nil(t, c.pending)

	ok, err = c.Confirm(context.Background(), "Overwrite?")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestConsoleConfirmer_ReusesReadAfterTimeout(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()
	c := newConsoleConfirmer(r, io.Discard)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	ok, err := c.Confirm(ctx, "Delete obsolete documents?")
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, ok)
	require.NotNil(t, c.pending)

	go func() { _, _ = io.WriteString(w, "yes\n") }()

	ok, err = c.Confirm(context.Background(), "Delete obsolete modules?")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Nil(t, c.pending)
}
