// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

import (
	"iter"

	"github.com/bits-and-blooms/bitset"
)

// Solutions is a lazy iterator over the minimal solutions of a BDD: one
// assignment for each path leading to True, where the variables that do not
// occur on the path are false. Solutions are produced in ascending
// lexicographic order, with variable 0 the most significant, and are never
// repeated.
//
// The iterator holds a reference on its root until it is exhausted or closed.
// It is not restartable.
type Solutions struct {
	b          *BDD
	root       Node
	path       []Node         // nodes on the current path, from the root
	assignment *bitset.BitSet // current solution
	started    bool
	closed     bool
}

// MinimalSolutions returns an iterator over the minimal solutions of n.
func (b *BDD) MinimalSolutions(n Node) *Solutions {
	b.checkptr(n)
	s := &Solutions{b: b, root: n, assignment: bitset.New(uint(b.varnum))}
	if n == False {
		s.closed = true
		return s
	}
	b.Reference(n)
	return s
}

// Next returns the next solution, or false when there are no more. The
// bitset is owned by the iterator and is modified by the next call; use Clone
// to keep a copy.
func (s *Solutions) Next() (*bitset.BitSet, bool) {
	if s.closed {
		return nil, false
	}
	if !s.started {
		s.started = true
		s.descend(s.root)
		return s.assignment, true
	}
	b := s.b
	// we look for the deepest node where we took the low branch and where the
	// high branch is not dead
	for len(s.path) > 0 {
		n := s.path[len(s.path)-1]
		s.path = s.path[:len(s.path)-1]
		level := uint(b.level(n))
		if !s.assignment.Test(level) && b.high(n) != False {
			s.assignment.Set(level)
			s.path = append(s.path, n)
			s.descend(b.high(n))
			return s.assignment, true
		}
		s.assignment.Clear(level)
	}
	s.Close()
	return nil, false
}

// descend follows the leftmost path to True starting from n.
func (s *Solutions) descend(n Node) {
	b := s.b
	for n >= 2 {
		s.path = append(s.path, n)
		if low := b.low(n); low != False {
			n = low
			continue
		}
		s.assignment.Set(uint(b.level(n)))
		n = b.high(n)
	}
}

// Close releases the reference held on the root. It is called automatically
// when the iterator is exhausted.
func (s *Solutions) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.path = nil
	s.b.Dereference(s.root)
}

// All returns the remaining solutions as a sequence. The iterator is closed
// when the loop ends, even with a break.
func (s *Solutions) All() iter.Seq[*bitset.BitSet] {
	return func(yield func(*bitset.BitSet) bool) {
		defer s.Close()
		for {
			v, ok := s.Next()
			if !ok || !yield(v) {
				return
			}
		}
	}
}

// Allsat calls f on every path of n leading to True. The profile given to f
// has one entry per variable: 0 if the variable is false on the path, 1 if it
// is true, and -1 when it does not occur. Paths are visited with the low branch
// first. The profile is reused between calls, so f must copy it to keep it.
// Allsat stops at the first error returned by f and returns it.
func (b *BDD) Allsat(n Node, f func([]int) error) error {
	b.checkptr(n)
	prof := make([]int, b.varnum)
	for k := range prof {
		prof[k] = -1
	}
	b.Reference(n)
	defer b.Dereference(n)
	return b.allsat(n, prof, f)
}

func (b *BDD) allsat(n Node, prof []int, f func([]int) error) error {
	if n == True {
		return f(prof)
	}
	if n == False {
		return nil
	}
	level := b.level(n)
	for val, succ := range [2]Node{b.low(n), b.high(n)} {
		if succ == False {
			continue
		}
		prof[level] = val
		for v := b.level(succ) - 1; v > level; v-- {
			prof[v] = -1
		}
		if err := b.allsat(succ, prof, f); err != nil {
			return err
		}
	}
	return nil
}
