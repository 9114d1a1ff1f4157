package statemachine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pickleRick23/finite-state-machine/pkg/statemachine"
)

func TestBuilder(t *testing.T) {
	t.Parallel()

	t.Run("builds machine", func(t *testing.T) {
		t.Parallel()
		m, err := statemachine.NewBuilder("idle").
			State("idle").On("start", "running").
			State("running").On("stop", "idle").On("pause", "paused").
			State("paused").On("resume", "running").
			WithOptions(statemachine.WithHistoryLimit(10)).
			Build()
		require.NoError(t, err)

		assert.Equal(t, []string{"idle", "running", "paused"}, m.States())
		require.NoError(t, m.Trigger("start"))
		require.NoError(t, m.Trigger("pause"))
		assert.Equal(t, "paused", m.State())
	})

	t.Run("reselecting a state adds transitions", func(t *testing.T) {
		t.Parallel()
		b := statemachine.NewBuilder("a").
			State("a").On("x", "b").
			State("b").
			State("a").On("y", "a")

		def, ok := b.Config().States.Get("a")
		require.True(t, ok)
		assert.Equal(t, statemachine.Transitions{"x": "b", "y": "a"}, def.Transitions)
		assert.Equal(t, []string{"a", "b"}, b.Config().States.Names())
	})

	t.Run("transition before state", func(t *testing.T) {
		t.Parallel()
		_, err := statemachine.NewBuilder("a").On("x", "a").State("a").Build()
		require.Error(t, err)
		assert.True(t, statemachine.IsInvalidConfigurationError(err))
	})

	t.Run("validates on build", func(t *testing.T) {
		t.Parallel()
		_, err := statemachine.NewBuilder("a").State("a").On("x", "missing").Build()
		assert.True(t, statemachine.IsInvalidConfigurationError(err))
	})
}
