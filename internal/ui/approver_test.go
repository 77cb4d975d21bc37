package ui

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

func TestForcedApprover_ApprovesAfterCountdown(t *testing.T) {
	var output bytes.Buffer
	sleepCalls := 0

	approver := &ForcedApprover{
		output:    &output,
		countdown: 3 * time.Second,
		sleepFn:   func(time.Duration) { sleepCalls++ },
	}

	approved, err := approver.RequestApproval(context.Background(), "sqlite:pokedex.db")
	require.NoError(t, err)
	assert.True(t, approved)
	assert.Equal(t, 3, sleepCalls, "one sleep per second of countdown")
}

func TestForcedApprover_OutputContainsTarget(t *testing.T) {
	var output bytes.Buffer

	approver := &ForcedApprover{
		output:    &output,
		countdown: time.Second,
		sleepFn:   func(time.Duration) {},
	}

	_, _ = approver.RequestApproval(context.Background(), "postgres://dex:xxxxx@db/pokedex")

	out := output.String()
	assert.Contains(t, out, "postgres://dex:xxxxx@db/pokedex")
	assert.Contains(t, out, "DANGER")
	assert.Contains(t, out, "Proceeding with reload")
	assert.NotContains(t, out, "\x1b[", "uncolored output carries no escape codes")
}

func TestForcedApprover_ContextCancellation(t *testing.T) {
	var output bytes.Buffer
	ctx, cancel := context.WithCancel(context.Background())

	sleepCalls := 0
	approver := &ForcedApprover{
		output:    &output,
		countdown: 5 * time.Second,
		sleepFn: func(time.Duration) {
			sleepCalls++
			if sleepCalls >= 2 {
				cancel()
			}
		},
	}

	approved, err := approver.RequestApproval(ctx, "sqlite:pokedex.db")
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, approved)
	assert.Equal(t, 2, sleepCalls)
	assert.NotContains(t, output.String(), "Proceeding")
}

func TestNewForcedApprover(t *testing.T) {
	a, ok := NewForcedApprover(true).(*ForcedApprover)
	require.True(t, ok)
	assert.True(t, a.verbose)
	assert.NotNil(t, a.output)
	assert.NotNil(t, a.sleepFn)
	assert.Greater(t, a.countdown, time.Duration(0))
}

func TestInteractiveApprover(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		approved bool
	}{
		{"matching phrase", "reload\n", true},
		{"surrounding whitespace", "  reload  \n", true},
		{"wrong phrase", "yes\n", false},
		{"empty input", "\n", false},
		{"case differs", "RELOAD\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var output bytes.Buffer
			approver := &InteractiveApprover{input: strings.NewReader(tt.input), output: &output}

			approved, err := approver.RequestApproval(context.Background(), "sqlite:pokedex.db")
			require.NoError(t, err)
			assert.Equal(t, tt.approved, approved)
		})
	}
}

func TestInteractiveApprover_OutputContainsWarning(t *testing.T) {
	var output bytes.Buffer
	approver := &InteractiveApprover{input: strings.NewReader("nope\n"), output: &output}

	_, _ = approver.RequestApproval(context.Background(), "sqlite:pokedex.db")

	out := output.String()
	assert.Contains(t, out, "WARNING")
	assert.Contains(t, out, "sqlite:pokedex.db")
	assert.Contains(t, out, "permanently delete")
	assert.Contains(t, out, "'nope'", "denial echoes the operator input")
}

func TestInteractiveApprover_ReadError(t *testing.T) {
	var output bytes.Buffer
	approver := &InteractiveApprover{input: &errorReader{err: io.ErrUnexpectedEOF}, output: &output}

	approved, err := approver.RequestApproval(context.Background(), "sqlite:pokedex.db")
	require.Error(t, err)
	assert.False(t, approved)
	assert.Contains(t, err.Error(), "failed to read input")
}

func TestInteractiveApprover_ContextCancellation(t *testing.T) {
	var output bytes.Buffer
	input := newBlockingReader()
	t.Cleanup(func() { input.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	approver := &InteractiveApprover{input: input, output: &output}

	approved, err := approver.RequestApproval(ctx, "sqlite:pokedex.db")
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, approved)
}

func TestNewInteractiveApprover(t *testing.T) {
	ia, ok := NewInteractiveApprover(false).(*InteractiveApprover)
	require.True(t, ok)
	assert.False(t, ia.verbose)
	assert.NotNil(t, ia.input)
	assert.NotNil(t, ia.output)
}

func TestDenyingApprover(t *testing.T) {
	var output bytes.Buffer
	approver := &DenyingApprover{output: &output}

	approved, err := approver.RequestApproval(context.Background(), "sqlite:pokedex.db")
	require.NoError(t, err)
	assert.False(t, approved)
	assert.Contains(t, output.String(), "--force")
}

type errorReader struct {
	err error
}

func (r *errorReader) Read([]byte) (int, error) {
	return 0, r.err
}

type blockingReader struct {
	done chan struct{}
}

func newBlockingReader() *blockingReader {
	return &blockingReader{done: make(chan struct{})}
}

func (r *blockingReader) Read([]byte) (int, error) {
	<-r.done
	return 0, io.EOF
}

func (r *blockingReader) Close() error {
	select {
	case <-r.done:
	default:
		close(r.done)
	}
	return nil
}
