package powerset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	d := NewDFA(3)
	d.SetAccept(2, true)
	require.Nil(t, d.SetTransition(0, "a", 1))
	require.Nil(t, d.SetTransition(1, "b", 2))
	require.Nil(t, d.SetTransition(2, "a", 1))

	type args struct {
		d *DFA
		s []Symbol
	}
	tests := []struct {
		name string
		args args
		want bool
	}{
		{name: "empty input", args: args{d, nil}, want: false},
		{name: "ab", args: args{d, []Symbol{"a", "b"}}, want: true},
		{name: "abab", args: args{d, []Symbol{"a", "b", "a", "b"}}, want: true},
		{name: "aba", args: args{d, []Symbol{"a", "b", "a"}}, want: false},
		{name: "missing transition", args: args{d, []Symbol{"b"}}, want: false},
		{name: "unknown symbol", args: args{d, []Symbol{"z"}}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equalf(t, tt.want, Run(tt.args.d, tt.args.s), "Run(%v)", tt.args.s)
			assert.Equalf(t, tt.want, NewRunAutomaton(tt.args.d).Run(tt.args.s), "RunAutomaton.Run(%v)", tt.args.s)
		})
	}
}

func TestNFAAccepts(t *testing.T) {
	a := NewNFA(3)
	a.SetAccept(2, true)
	require.Nil(t, a.AddTransition(0, "a", 0, 1))
	require.Nil(t, a.AddEpsilon(1, 2))

	assert.False(t, a.Accepts(nil))
	assert.True(t, a.Accepts([]Symbol{"a"}))
	assert.True(t, a.Accepts([]Symbol{"a", "a", "a"}))
	assert.False(t, a.Accepts([]Symbol{"b"}))
}

func TestEquivalent(t *testing.T) {
	a := MakeString("a", "b")

	good := NewDFA(3)
	good.SetAccept(2, true)
	require.Nil(t, good.SetTransition(0, "a", 1))
	require.Nil(t, good.SetTransition(1, "b", 2))

	counter, ok := Equivalent(a, good, 4)
	assert.True(t, ok)
	assert.Nil(t, counter)

	bad := good.Clone()
	require.Nil(t, bad.SetTransition(2, "b", 2))
	counter, ok = Equivalent(a, bad, 4)
	assert.False(t, ok)
	assert.Equal(t, []Symbol{"a", "b", "b"}, counter)

	// Too short to tell them apart.
	_, ok = Equivalent(a, bad, 2)
	assert.True(t, ok)

	extra := good.Clone()
	extra.SetAccept(0, true)
	counter, ok = Equivalent(a, extra, 3)
	assert.False(t, ok)
	assert.Equal(t, []Symbol{}, counter)
}

func TestEquivalentWideAlphabet(t *testing.T) {
	digits := make([]Symbol, 0, 10)
	for c := '0'; c <= '9'; c++ {
		digits = append(digits, string(c))
	}
	a := Repeat(MakeAnyOf(digits...))
	d, err := Determinize(a.Clone())
	require.Nil(t, err)

	counter, ok := Equivalent(a, d, 8)
	assert.True(t, ok)
	assert.Nil(t, counter)

	// Accepts every string shorter than 8 digits.
	short := NewDFA(9)
	for s := 0; s < 9; s++ {
		short.SetAccept(s, s < 8)
		for _, ch := range digits {
			require.Nil(t, short.SetTransition(s, ch, min(s+1, 8)))
		}
	}
	counter, ok = Equivalent(a, short, 8)
	assert.False(t, ok)
	assert.Equal(t, []Symbol{"0", "0", "0", "0", "0", "0", "0", "0"}, counter)

	_, ok = Equivalent(a, short, 7)
	assert.True(t, ok)
}

func TestEquivalentLexicographicCounterexample(t *testing.T) {
	// a accepts "ba" and "ca", d accepts only "ca".
	a := Union(MakeString("b", "a"), MakeString("c", "a"))
	d := NewDFA(4)
	d.SetAccept(2, true)
	require.Nil(t, d.SetTransition(0, "c", 1))
	require.Nil(t, d.SetTransition(1, "a", 2))
	require.Nil(t, d.SetTransition(0, "b", 3))

	counter, ok := Equivalent(a, d, 3)
	assert.False(t, ok)
	assert.Equal(t, []Symbol{"b", "a"}, counter)
}
