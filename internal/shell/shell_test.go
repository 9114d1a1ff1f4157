package shell_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pickleRick23/finite-state-machine/internal/shell"
	"github.com/pickleRick23/finite-state-machine/pkg/statemachine"
)

func newShell(t *testing.T) (*shell.Shell, *statemachine.Machine) {
	t.Helper()
	cfg := statemachine.NewConfig("idle").
		AddState("idle", statemachine.Transitions{"start": "running"}).
		AddState("running", statemachine.Transitions{"stop": "idle", "pause": "paused"}).
		AddState("paused", statemachine.Transitions{"resume": "running"})
	m, err := statemachine.New(cfg)
	require.NoError(t, err)
	return shell.New(m, shell.WithDefinition(cfg)), m
}

func TestExec(t *testing.T) {
	t.Parallel()

	t.Run("session", func(t *testing.T) {
		t.Parallel()
		sh, m := newShell(t)

		steps := []struct {
			cmd  string
			want string
		}{
			{cmd: "state", want: "idle"},
			{cmd: "trigger start", want: "running"},
			{cmd: "trigger pause", want: "paused"},
			{cmd: "undo", want: "true running"},
			{cmd: "undo", want: "true idle"},
			{cmd: "undo", want: "false idle"},
			{cmd: "redo", want: "true running"},
			{cmd: "history", want: "idle *running paused"},
			{cmd: "trigger stop", want: "idle"},
			{cmd: "redo", want: "false idle"},
			{cmd: "can start", want: "true"},
			{cmd: "can resume", want: "false"},
			{cmd: "change paused", want: "paused"},
			{cmd: "clear", want: "*paused"},
			{cmd: "reset", want: "idle"},
			{cmd: "history", want: "*idle"},
		}
		for _, step := range steps {
			out, err := sh.Exec(step.cmd)
			require.NoError(t, err, step.cmd)
			assert.Equal(t, step.want, out, step.cmd)
		}
		assert.Equal(t, "idle", m.State())
	})

	t.Run("states queries", func(t *testing.T) {
		t.Parallel()
		sh, _ := newShell(t)

		out, err := sh.Exec("states")
		require.NoError(t, err)
		assert.Equal(t, "idle running paused", out)

		out, err = sh.Exec("states stop")
		require.NoError(t, err)
		assert.Equal(t, "running", out)

		out, err = sh.Exec("states nonexistent")
		require.NoError(t, err)
		assert.Equal(t, "(none)", out)
	})

	t.Run("engine errors", func(t *testing.T) {
		t.Parallel()
		sh, m := newShell(t)

		_, err := sh.Exec("trigger stop")
		assert.True(t, statemachine.IsUnhandledEventError(err))

		_, err = sh.Exec("change flying")
		assert.True(t, statemachine.IsUnknownStateError(err))

		assert.Equal(t, []string{"idle"}, m.History())
	})

	t.Run("usage errors", func(t *testing.T) {
		t.Parallel()
		sh, _ := newShell(t)

		for _, cmd := range []string{"trigger", "change a b", "states a b", "can", "definition yaml json", ""} {
			_, err := sh.Exec(cmd)
			assert.True(t, errors.Is(err, shell.ErrUsage), "%q", cmd)
		}

		_, err := sh.Exec("fly")
		assert.True(t, errors.Is(err, shell.ErrUnknownCommand))

		_, err = sh.Exec("quit")
		assert.True(t, errors.Is(err, shell.ErrQuit))
	})

	t.Run("definition", func(t *testing.T) {
		t.Parallel()
		sh, _ := newShell(t)

		out, err := sh.Exec("definition")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(out, "initial: idle"))
		assert.Less(t, strings.Index(out, "idle:"), strings.Index(out, "running:"))
		assert.Less(t, strings.Index(out, "running:"), strings.Index(out, "paused:"))

		out, err = sh.Exec("definition json")
		require.NoError(t, err)
		assert.Contains(t, out, `"initial": "idle"`)

		_, err = sh.Exec("definition xml")
		assert.True(t, errors.Is(err, statemachine.ErrUnsupportedFormat))

		bare := shell.New(statemachine.MustNew(statemachine.NewConfig("a").AddState("a", nil)))
		_, err = bare.Exec("definition")
		assert.True(t, errors.Is(err, shell.ErrNoDefinition))
	})

	t.Run("help", func(t *testing.T) {
		t.Parallel()
		sh, _ := newShell(t)
		out, err := sh.Exec("help")
		require.NoError(t, err)
		assert.Contains(t, out, "trigger <event>")
	})
}

func TestRun(t *testing.T) {
	t.Parallel()

	t.Run("executes script", func(t *testing.T) {
		t.Parallel()
		sh, m := newShell(t)

		script := strings.Join([]string{
			"# warm up",
			"trigger start",
			"",
			"trigger start",
			"bogus",
			"trigger pause",
			"quit",
			"trigger resume",
		}, "\n")

		var out bytes.Buffer
		require.NoError(t, sh.Run(context.Background(), strings.NewReader(script), &out))

		lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
		require.Len(t, lines, 4)
		assert.Equal(t, "running", lines[0])
		assert.Equal(t, "error: state 'running' has no transition for event 'start'", lines[1])
		assert.True(t, strings.HasPrefix(lines[2], "error: unknown command"))
		assert.Equal(t, "paused", lines[3])
		assert.Equal(t, "paused", m.State())
	})

	t.Run("stops on cancelled context", func(t *testing.T) {
		t.Parallel()
		sh, m := newShell(t)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var out bytes.Buffer
		err := sh.Run(ctx, strings.NewReader("trigger start\n"), &out)
		assert.True(t, errors.Is(err, context.Canceled))
		assert.Empty(t, out.String())
		assert.Equal(t, "idle", m.State())
	})

	t.Run("stops when cancelled while waiting for input", func(t *testing.T) {
		t.Parallel()
		sh, m := newShell(t)

		pr, pw := io.Pipe()
		t.Cleanup(func() { _ = pw.Close() })

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() {
			done <- sh.Run(ctx, pr, io.Discard)
		}()

		_, err := pw.Write([]byte("trigger start\n"))
		require.NoError(t, err)
		cancel()

		select {
		case err := <-done:
			assert.True(t, errors.Is(err, context.Canceled))
		case <-time.After(time.Second):
			t.Fatal("Run did not return after cancellation")
		}
		assert.Contains(t, []string{"idle", "running"}, m.State())
	})
}
