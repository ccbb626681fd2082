package powerset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNFA(t *testing.T) {
	t.Run("Structure", func(t *testing.T) {
		a := NewNFA(3)
		a.SetAccept(2, true)
		assert.Nil(t, a.AddTransition(0, "b", 2))
		assert.Nil(t, a.AddTransition(0, "a", 1, 2))
		assert.Nil(t, a.AddTransition(0, "a", 0))
		assert.Nil(t, a.AddEpsilon(1, 2))

		assert.Equal(t, 3, a.GetNumStates())
		assert.Equal(t, 3, a.GetNumTransitions())
		assert.Equal(t, []int{0, 1, 2}, a.Targets(0, "a"))
		assert.Nil(t, a.Targets(2, "a"))
		assert.Equal(t, []Symbol{"a", "b"}, a.Alphabet())
		assert.Equal(t, []Key{{0, "a"}, {0, "b"}, {1, Epsilon}}, a.Keys())
		assert.Equal(t, []int{2}, a.AcceptStates())
		assert.True(t, a.IsAccept(2))
		assert.False(t, a.IsAccept(0))
		assert.Nil(t, a.Validate())
	})

	t.Run("OutOfRange", func(t *testing.T) {
		a := NewNFA(2)
		assert.ErrorIs(t, a.AddTransition(2, "a", 0), ErrStateOutOfRange)
		assert.ErrorIs(t, a.AddTransition(0, "a", 5), ErrStateOutOfRange)
		assert.ErrorIs(t, a.AddTransition(-1, "a", 0), ErrStateOutOfRange)

		a.SetAccept(4, true)
		assert.ErrorIs(t, a.Validate(), ErrStateOutOfRange)
	})

	t.Run("NoStates", func(t *testing.T) {
		assert.ErrorIs(t, NewNFA(0).Validate(), ErrNoStates)
	})

	t.Run("Clone", func(t *testing.T) {
		a := NewNFA(2)
		require.Nil(t, a.AddTransition(0, "a", 1))
		c := a.Clone()
		require.Nil(t, c.AddTransition(0, "a", 0))
		c.SetAccept(1, true)

		assert.Equal(t, []int{1}, a.Targets(0, "a"))
		assert.Equal(t, []int{0, 1}, c.Targets(0, "a"))
		assert.Empty(t, a.AcceptStates())
	})

	t.Run("CreateState", func(t *testing.T) {
		a := NewNFA(1)
		s := a.CreateState()
		assert.Equal(t, 1, s)
		assert.Nil(t, a.AddTransition(0, "x", s))
	})
}

func TestDFA(t *testing.T) {
	t.Run("Structure", func(t *testing.T) {
		d := NewDFA(2)
		d.SetAccept(1, true)
		assert.Nil(t, d.SetTransition(0, "a", 1))
		assert.Nil(t, d.SetTransition(1, "a", 1))
		assert.Nil(t, d.SetTransition(0, "a", 0))

		assert.Equal(t, 0, d.Step(0, "a"))
		assert.Equal(t, -1, d.Step(0, "b"))
		assert.Equal(t, 2, d.GetNumTransitions())
		assert.Equal(t, []Symbol{"a"}, d.Alphabet())
		assert.Equal(t, []Key{{0, "a"}, {1, "a"}}, d.Keys())
		assert.Equal(t, []int{1}, d.AcceptStates())
		assert.True(t, d.IsTotal([]Symbol{"a"}))
		assert.False(t, d.IsTotal([]Symbol{"a", "b"}))
		assert.Nil(t, d.Validate())
	})

	t.Run("Errors", func(t *testing.T) {
		d := NewDFA(1)
		assert.ErrorIs(t, d.SetTransition(0, Epsilon, 0), ErrEpsilonInDFA)
		assert.ErrorIs(t, d.SetTransition(0, "a", 1), ErrStateOutOfRange)
		assert.ErrorIs(t, d.SetTransition(1, "a", 0), ErrStateOutOfRange)
		assert.ErrorIs(t, NewDFA(0).Validate(), ErrNoStates)
	})

	t.Run("Sink", func(t *testing.T) {
		d := NewDFA(3)
		d.SetAccept(1, true)
		require.Nil(t, d.SetTransition(0, "a", 1))
		require.Nil(t, d.SetTransition(1, "a", 1))
		require.Nil(t, d.SetTransition(2, "a", 2))
		// 1 loops but accepts.
		assert.Equal(t, 2, d.Sink())

		assert.Equal(t, -1, NewDFA(1).Sink())
	})

	t.Run("Clone", func(t *testing.T) {
		d := NewDFA(2)
		require.Nil(t, d.SetTransition(0, "a", 1))
		c := d.Clone()
		require.Nil(t, c.SetTransition(0, "a", 0))
		assert.Equal(t, 1, d.Step(0, "a"))
		assert.Equal(t, 0, c.Step(0, "a"))
	})
}
