package process

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecRunner_Success(t *testing.T) {
	runner := NewExecRunner()

	var mu sync.Mutex
	var streamed []string
	result, err := runner.Run(context.Background(), Command{
		Name: "sh",
		Args: []string{"-c", "echo hello; echo warning >&2"},
		Stream: func(line string, isErr bool) {
			mu.Lock()
			defer mu.Unlock()
			if isErr {
				line = "stderr:" + line
			}
			streamed = append(streamed, line)
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 0, result.ExitCode)
	assert.Equal(t, "hello\n", result.Stdout)
	assert.Equal(t, "warning\n", result.Stderr)
	assert.ElementsMatch(t, []string{"hello", "stderr:warning"}, streamed)
}

func TestExecRunner_NonZeroExit(t *testing.T) {
	runner := NewExecRunner()

	result, err := runner.Run(context.Background(), Command{
		Name: "sh",
		Args: []string{"-c", "echo broken >&2; exit 3"},
	})

	require.Error(t, err)
	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 3, exitErr.ExitCode)
	assert.False(t, exitErr.TimedOut)
	assert.Contains(t, exitErr.Error(), "broken")
	assert.Equal(t, 3, result.ExitCode)
}

func TestExecRunner_Timeout(t *testing.T) {
	runner := NewExecRunner()

	_, err := runner.Run(context.Background(), Command{
		Name:    "sleep",
		Args:    []string{"5"},
		Timeout: 100 * time.Millisecond,
	})

	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.True(t, exitErr.TimedOut)
	assert.Contains(t, exitErr.Error(), "timed out")
}

func TestExecRunner_TimeoutKillsBackgroundChildren(t *testing.T) {
	runner := NewExecRunner()

	started := time.Now()
	_, err := runner.Run(context.Background(), Command{
		Name:    "sh",
		Args:    []string{"-c", "sleep 8 & sleep 8"},
		Timeout: 500 * time.Millisecond,
	})
	elapsed := time.Since(started)

	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.True(t, exitErr.TimedOut)
	assert.Less(t, elapsed, 3*time.Second)
}

func TestExecRunner_DetachedChildDoesNotHoldResult(t *testing.T) {
	runner := NewExecRunner()

	started := time.Now()
	result, err := runner.Run(context.Background(), Command{
		Name: "sh",
		Args: []string{"-c", "echo started; sleep 8 &"},
	})

	require.NoError(t, err)
	assert.Equal(t, "started\n", result.Stdout)
	assert.Less(t, time.Since(started), 5*time.Second)
}

func TestExecRunner_StdinAndEnv(t *testing.T) {
	runner := NewExecRunner()

	result, err := runner.Run(context.Background(), Command{
		Name:  "sh",
		Args:  []string{"-c", "read value; echo \"$PREFIX-$value\""},
		Env:   map[string]string{"PREFIX": "staging"},
		Stdin: "secret\n",
	})

	require.NoError(t, err)
	assert.Equal(t, "staging-secret\n", result.Stdout)
}

func TestExecRunner_MissingBinary(t *testing.T) {
	runner := NewExecRunner()

	_, err := runner.Run(context.Background(), Command{Name: "definitely-not-a-real-binary-xyz"})

	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, -1, exitErr.ExitCode)
}

func TestCommand_String(t *testing.T) {
	assert.Equal(t, "npx vercel --prod --yes", Command{Name: "npx", Args: []string{"vercel", "--prod", "--yes"}}.String())
}
