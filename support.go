// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

import "github.com/bits-and-blooms/bitset"

// Support returns the set of variables that occur in the BDD rooted at n. With
// an optional limit, only variables strictly smaller than limit are reported
// and the traversal stops at the first node with a larger variable.
func (b *BDD) Support(n Node, limit ...int) *bitset.BitSet {
	b.checkptr(n)
	lim := b.varnum
	if len(limit) > 0 && limit[0] < int(lim) {
		lim = int32(max(limit[0], 0))
	}
	res := bitset.New(uint(b.varnum))
	if n < 2 || b.level(n) >= lim {
		return res
	}
	// marked nodes are connected to n, so we can clear them from there
	defer b.unmarkfrom(n)
	b.marknode(n)
	stack := []Node{n}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		res.Set(uint(b.level(n)))
		for _, s := range [2]Node{b.low(n), b.high(n)} {
			if s >= 2 && !b.ismarked(s) && b.level(s) < lim {
				b.marknode(s)
				stack = append(stack, s)
			}
		}
	}
	return res
}

// Evaluate returns the value of the function n for the given assignment. The
// variable i is true in the assignment if bit i is set. A nil assignment sets
// every variable to false.
func (b *BDD) Evaluate(n Node, assignment *bitset.BitSet) bool {
	b.checkptr(n)
	if assignment == nil {
		assignment = &bitset.BitSet{}
	}
	for n >= 2 {
		if assignment.Test(uint(b.level(n))) {
			n = b.high(n)
		} else {
			n = b.low(n)
		}
	}
	return n == True
}

// IsVariable reports whether n is the positive literal of a variable.
func (b *BDD) IsVariable(n Node) bool {
	b.checkptr(n)
	return n >= 2 && b.low(n) == False && b.high(n) == True
}

// IsVariableOrNegated reports whether n is a positive or negative literal.
func (b *BDD) IsVariableOrNegated(n Node) bool {
	b.checkptr(n)
	return n >= 2 && b.low(n) < 2 && b.high(n) < 2
}
