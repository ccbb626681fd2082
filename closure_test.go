package powerset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClosure(t *testing.T) {
	t.Run("NoEpsilon", func(t *testing.T) {
		a := NewNFA(2)
		require.Nil(t, a.AddTransition(0, "a", 1))
		assert.Equal(t, []int{0}, Closure(a, 0).GetArray())
		assert.Equal(t, []int{1}, Closure(a, 1).GetArray())
	})

	t.Run("Chain", func(t *testing.T) {
		a := NewNFA(4)
		require.Nil(t, a.AddEpsilon(0, 1))
		require.Nil(t, a.AddEpsilon(1, 2))
		require.Nil(t, a.AddTransition(2, "a", 3))
		assert.Equal(t, []int{0, 1, 2}, Closure(a, 0).GetArray())
		assert.Equal(t, []int{1, 2}, Closure(a, 1).GetArray())
		assert.Equal(t, []int{3}, Closure(a, 3).GetArray())
	})

	t.Run("Cycle", func(t *testing.T) {
		a := NewNFA(2)
		require.Nil(t, a.AddEpsilon(0, 1))
		require.Nil(t, a.AddEpsilon(1, 0))
		closures := Closures(a)
		assert.Equal(t, []int{0, 1}, closures[0].GetArray())
		assert.Equal(t, []int{0, 1}, closures[1].GetArray())
		assert.True(t, closures[0].Equals(closures[1]))
	})

	t.Run("SelfLoopAndBranches", func(t *testing.T) {
		a := NewNFA(5)
		require.Nil(t, a.AddTransition(0, Epsilon, 0, 1, 3))
		require.Nil(t, a.AddEpsilon(1, 2))
		require.Nil(t, a.AddEpsilon(3, 2))
		require.Nil(t, a.AddEpsilon(2, 0))
		assert.Equal(t, []int{0, 1, 2, 3}, Closure(a, 0).GetArray())
		assert.Equal(t, []int{0, 1, 2, 3}, Closure(a, 2).GetArray())
		assert.Equal(t, []int{4}, Closure(a, 4).GetArray())
	})

	t.Run("LongCycle", func(t *testing.T) {
		const n = 5000
		a := NewNFA(n)
		for i := 0; i < n; i++ {
			require.Nil(t, a.AddEpsilon(i, (i+1)%n))
		}
		assert.Equal(t, n, Closure(a, 1234).Size())
	})
}

func TestClosureIdempotence(t *testing.T) {
	a := Concatenate(Repeat(MakeAnyOf("a", "b")), Optional(MakeString("c")), Repeat(MakeString("d")))
	closures := Closures(a)
	for s, c := range closures {
		again := closureOf(closures, c)
		assert.True(t, again.Equals(c), "state %d: %v != %v", s, again, c)
		assert.True(t, c.Contains(s))
	}
}
