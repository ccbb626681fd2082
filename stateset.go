package powerset

import (
	"strconv"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

var _ Hashable = &StateSet{}

// StateSet is a set of NFA states. It is used both for epsilon closures and for the subsets that
// become DFA states; two StateSets are equal iff they hold the same members.
type StateSet struct {
	bits        *bitset.BitSet
	hashUpdated bool
	hashCode    uint64
}

func NewStateSet(states ...int) *StateSet {
	s := &StateSet{bits: bitset.New(0)}
	for _, state := range states {
		s.Add(state)
	}
	return s
}

// newStateSetFrom wraps b without copying it.
func newStateSetFrom(b *bitset.BitSet) *StateSet {
	return &StateSet{bits: b}
}

func (s *StateSet) Hash() uint64 {
	if s.hashUpdated {
		return s.hashCode
	}
	s.hashCode = uint64(s.bits.Count()) * phiC64
	for k, ok := s.bits.NextSet(0); ok; k, ok = s.bits.NextSet(k + 1) {
		s.hashCode += mix(int(k))
	}
	s.hashUpdated = true
	return s.hashCode
}

func (s *StateSet) Equals(other Hashable) bool {
	o, ok := other.(*StateSet)
	if !ok || o == nil {
		return false
	}
	if s.Hash() != o.Hash() {
		return false
	}
	n := s.bits.Count()
	return n == o.bits.Count() && s.bits.IntersectionCardinality(o.bits) == n
}

// GetArray Returns the members in ascending order.
func (s *StateSet) GetArray() []int {
	states := make([]int, 0, s.bits.Count())
	for k, ok := s.bits.NextSet(0); ok; k, ok = s.bits.NextSet(k + 1) {
		states = append(states, int(k))
	}
	return states
}

func (s *StateSet) Size() int {
	return int(s.bits.Count())
}

func (s *StateSet) IsEmpty() bool {
	return s.bits.None()
}

func (s *StateSet) keyChanged() {
	s.hashUpdated = false
	s.hashCode = 0
}

// Add reports whether state was not already a member.
func (s *StateSet) Add(state int) bool {
	if s.bits.Test(uint(state)) {
		return false
	}
	s.bits.Set(uint(state))
	s.keyChanged()
	return true
}

func (s *StateSet) AddAll(other *StateSet) {
	s.bits.InPlaceUnion(other.bits)
	s.keyChanged()
}

func (s *StateSet) Contains(state int) bool {
	return s.bits.Test(uint(state))
}

// Intersects reports whether s shares a member with b.
func (s *StateSet) Intersects(b *bitset.BitSet) bool {
	return s.bits.IntersectionCardinality(b) > 0
}

func (s *StateSet) Clone() *StateSet {
	return &StateSet{bits: s.bits.Clone(), hashUpdated: s.hashUpdated, hashCode: s.hashCode}
}

func (s *StateSet) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, state := range s.GetArray() {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.Itoa(state))
	}
	sb.WriteByte('}')
	return sb.String()
}
