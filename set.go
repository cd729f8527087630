// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

import "github.com/bits-and-blooms/bitset"

// AndAll returns the logical 'and' of a sequence of nodes.
func (b *BDD) AndAll(n ...Node) Node {
	return b.fold(OPand, True, n)
}

// OrAll returns the logical 'or' of a sequence of BDDs.
func (b *BDD) OrAll(n ...Node) Node {
	return b.fold(OPor, False, n)
}

func (b *BDD) fold(op Operator, unit Node, n []Node) Node {
	for _, v := range n {
		b.checkptr(v)
	}
	b.initref()
	for _, v := range n {
		b.pushref(v)
	}
	res := b.pushref(unit)
	for k := len(n) - 1; k >= 0; k-- {
		tmp := b.apply(n[k], res, op)
		b.popref(1)
		res = b.pushref(tmp)
	}
	b.popref(len(n) + 1)
	return res
}

// Makeset returns a node corresponding to the conjunction (the cube) of all the
// variable in varset, in their positive form. It is such that
// Scanset(Makeset(a)) == a, when a is sorted.
func (b *BDD) Makeset(varset []int) Node {
	vars := bitset.New(uint(b.varnum))
	for _, v := range varset {
		b.checkvar(v)
		vars.Set(uint(v))
	}
	b.initref()
	return b.cube(vars)
}

// Scanset returns the set of variables (levels) found when following the high
// branch of node n. This is the dual of function Makeset. The result follows
// the level order.
func (b *BDD) Scanset(n Node) []int {
	b.checkptr(n)
	if n < 2 {
		return nil
	}
	res := []int{}
	for i := n; i > 1; i = b.high(i) {
		res = append(res, int(b.level(i)))
	}
	return res
}

// Hold references n for the duration of the call to f. The reference is
// released when f returns, including when it panics.
func (b *BDD) Hold(n Node, f func(Node)) {
	b.Reference(n)
	defer b.Dereference(n)
	f(n)
}

// Assign references n and stores it in dst, after dereferencing the previous
// value of dst. It is useful for accumulators that are updated in a loop, like
// in:
//
//	acc := b.True()
//	for _, v := range vars {
//		b.Assign(&acc, b.And(acc, v))
//	}
func (b *BDD) Assign(dst *Node, n Node) {
	b.Reference(n)
	b.Dereference(*dst)
	*dst = n
}

// True returns the constant true BDD
func (b *BDD) True() Node {
	return True
}

// False returns the constant false BDD
func (b *BDD) False() Node {
	return False
}

// From returns a (constant) Node from a boolean value.
func (b *BDD) From(v bool) Node {
	if v {
		return True
	}
	return False
}
