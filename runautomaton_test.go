package powerset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunAutomaton(t *testing.T) {
	a := Concatenate(MakeString("x"), Repeat(MakeAnyOf("x", "y")))
	d, err := Determinize(a)
	require.Nil(t, err)

	r := NewRunAutomaton(d)
	assert.Equal(t, d.GetNumStates(), r.GetSize())
	assert.Equal(t, []Symbol{"x", "y"}, r.Alphabet())

	for s := 0; s < d.GetNumStates(); s++ {
		assert.Equal(t, d.IsAccept(s), r.IsAccept(s))
		for i, ch := range r.Alphabet() {
			assert.Equal(t, d.Step(s, ch), r.Step(s, ch))
			assert.Equal(t, d.Step(s, ch), r.StepIndex(s, i))
		}
	}

	assert.Equal(t, -1, r.Step(0, "z"))
	assert.True(t, r.Run([]Symbol{"x", "y", "x"}))
	assert.False(t, r.Run([]Symbol{"y", "x"}))
	assert.False(t, r.Run(nil))
}

func TestRunAutomatonPartial(t *testing.T) {
	d := NewDFA(2)
	d.SetAccept(1, true)
	require.Nil(t, d.SetTransition(0, "a", 1))

	r := NewRunAutomaton(d)
	assert.Equal(t, 1, r.Step(0, "a"))
	assert.Equal(t, -1, r.Step(1, "a"))
	assert.True(t, r.Run([]Symbol{"a"}))
	assert.False(t, r.Run([]Symbol{"a", "a"}))
}
