package token

import "strings"

// Set is a fixed-size set of token types. Sets are values: every operation
// returns a new set, so package-level sets can be shared freely.
type Set struct {
	bits [2]uint64
}

func init() {
	if numTypes > 128 {
		panic("token: Set cannot hold more than 128 token types")
	}
}

func NewSet(types ...Type) Set {
	var s Set
	for _, tt := range types {
		s.bits[tt/64] |= 1 << (uint(tt) % 64)
	}
	return s
}

func (s Set) Contains(tt Type) bool {
	if tt < 0 || tt >= numTypes {
		return false
	}
	return s.bits[tt/64]&(1<<(uint(tt)%64)) != 0
}

// With returns s plus the given types.
func (s Set) With(types ...Type) Set {
	return s.Union(NewSet(types...))
}

// Without returns s minus the given types.
func (s Set) Without(types ...Type) Set {
	o := NewSet(types...)
	s.bits[0] &^= o.bits[0]
	s.bits[1] &^= o.bits[1]
	return s
}

func (s Set) Union(o Set) Set {
	s.bits[0] |= o.bits[0]
	s.bits[1] |= o.bits[1]
	return s
}

func (s Set) IsEmpty() bool {
	return s.bits[0] == 0 && s.bits[1] == 0
}

func (s Set) String() string {
	var names []string
	for tt := Type(0); tt < numTypes; tt++ {
		if s.Contains(tt) {
			names = append(names, tt.String())
		}
	}
	return "{" + strings.Join(names, ", ") + "}"
}
