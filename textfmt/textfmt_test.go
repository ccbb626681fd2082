package textfmt

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geange/powerset"
)

func TestReadNFA(t *testing.T) {
	src := "3\n2\n0 a 0 1\n0 eps 2\n\n1 b 2\n0 a 2\n"
	a, err := ReadNFA(strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, 3, a.GetNumStates())
	assert.Equal(t, []int{2}, a.AcceptStates())
	assert.Equal(t, []int{0, 1, 2}, a.Targets(0, "a"))
	assert.Equal(t, []int{2}, a.Targets(0, powerset.Epsilon))
	assert.Equal(t, []int{2}, a.Targets(1, "b"))
	assert.Equal(t, []powerset.Symbol{"a", "b"}, a.Alphabet())
}

func TestReadNFAEmptyAcceptLine(t *testing.T) {
	a, err := ReadNFA(strings.NewReader("2\n\n0 a 1\n"))
	require.NoError(t, err)
	assert.Empty(t, a.AcceptStates())

	a, err = ReadNFA(strings.NewReader("1\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, a.GetNumStates())
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		dfa     bool
		line    int
		wantErr error
	}{
		{name: "empty input", src: "", line: 1, wantErr: ErrSyntax},
		{name: "count not an integer", src: "x\n", line: 1, wantErr: ErrSyntax},
		{name: "zero states", src: "0\n\n", line: 1, wantErr: powerset.ErrNoStates},
		{name: "accept not an integer", src: "2\n1 z\n", line: 2, wantErr: ErrSyntax},
		{name: "accept out of range", src: "2\n2\n", line: 2, wantErr: powerset.ErrStateOutOfRange},
		{name: "too few fields", src: "2\n1\n0 a\n", line: 3, wantErr: ErrSyntax},
		{name: "source not an integer", src: "2\n1\nq a 1\n", line: 3, wantErr: ErrSyntax},
		{name: "target out of range", src: "2\n1\n0 a 1\n0 b 7\n", line: 4, wantErr: powerset.ErrStateOutOfRange},
		{name: "negative target", src: "2\n1\n0 a -1\n", line: 3, wantErr: powerset.ErrStateOutOfRange},
		{name: "dfa two targets", src: "2\n1\n0 a 0 1\n", dfa: true, line: 3, wantErr: ErrSyntax},
		{name: "dfa duplicate", src: "2\n1\n0 a 1\n0 a 0\n", dfa: true, line: 4, wantErr: ErrSyntax},
		{name: "dfa epsilon", src: "2\n1\n0 eps 1\n", dfa: true, line: 3, wantErr: powerset.ErrEpsilonInDFA},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error
			if tt.dfa {
				_, err = ReadDFA(strings.NewReader(tt.src))
			} else {
				_, err = ReadNFA(strings.NewReader(tt.src))
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)

			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tt.line, perr.Line)
		})
	}
}

func TestEpsilonToken(t *testing.T) {
	src := "2\n1\n0 ε 1\n"
	a, err := ReadNFA(strings.NewReader(src), WithEpsilon("ε"))
	require.NoError(t, err)
	assert.Equal(t, []int{1}, a.Targets(0, powerset.Epsilon))

	var buf bytes.Buffer
	require.NoError(t, WriteNFA(&buf, a, WithEpsilon("ε")))
	assert.Equal(t, src, buf.String())

	_, err = ReadNFA(strings.NewReader("2\n1\n0 eps 1\n"), WithEpsilon("ε"))
	assert.ErrorIs(t, err, ErrSyntax)
}

func TestWriteNFA(t *testing.T) {
	a := powerset.NewNFA(3)
	a.SetAccept(2, true)
	a.SetAccept(1, true)
	require.NoError(t, a.AddTransition(1, "b", 2))
	require.NoError(t, a.AddTransition(0, "a", 2, 0))
	require.NoError(t, a.AddEpsilon(0, 1))
	require.NoError(t, a.AddTransition(2, "a"))

	var buf bytes.Buffer
	require.NoError(t, WriteNFA(&buf, a))
	assert.Equal(t, "3\n1 2\n0 a 0 2\n0 eps 1\n1 b 2\n", buf.String())

	back, err := ReadNFA(&buf)
	require.NoError(t, err)
	assert.Equal(t, a.Keys()[:3], back.Keys())
}

func TestWriteDFA(t *testing.T) {
	a := powerset.NewNFA(2)
	a.SetAccept(1, true)
	require.NoError(t, a.AddTransition(0, "a", 0, 1))
	require.NoError(t, a.AddTransition(0, "b", 1))
	d, err := powerset.Determinize(a)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteDFA(&buf, d))
	assert.Equal(t, "4\n1 2\n0 a 1\n0 b 2\n1 a 1\n1 b 2\n2 a 3\n2 b 3\n3 a 3\n3 b 3\n", buf.String())

	back, err := ReadDFA(strings.NewReader(buf.String()))
	require.NoError(t, err)
	assert.Equal(t, d.Keys(), back.Keys())
	assert.Equal(t, d.AcceptStates(), back.AcceptStates())
	for _, k := range d.Keys() {
		assert.Equal(t, d.Step(k.State, k.Symbol), back.Step(k.State, k.Symbol))
	}
}

func TestWriteReservedSymbol(t *testing.T) {
	d := powerset.NewDFA(1)
	d.SetAccept(0, true)
	require.NoError(t, d.SetTransition(0, "a", 0))

	var buf bytes.Buffer
	err := WriteDFA(&buf, d, WithEpsilon("a"))
	assert.ErrorIs(t, err, ErrReservedSymbol)
	assert.Zero(t, buf.Len())

	a := powerset.NewNFA(2)
	require.NoError(t, a.AddTransition(0, "a", 1))
	require.NoError(t, a.AddEpsilon(1, 0))
	err = WriteNFA(&buf, a, WithEpsilon("a"))
	assert.ErrorIs(t, err, ErrReservedSymbol)
	assert.Zero(t, buf.Len())

	// The model's own epsilon symbol is fine under any token.
	b := powerset.NewNFA(2)
	require.NoError(t, b.AddEpsilon(0, 1))
	require.NoError(t, WriteNFA(&buf, b, WithEpsilon("a")))
	assert.Equal(t, "2\n\n0 a 1\n", buf.String())

	back, err := ReadNFA(&buf, WithEpsilon("a"))
	require.NoError(t, err)
	assert.Equal(t, []int{1}, back.Targets(0, powerset.Epsilon))
}
