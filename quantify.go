// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

import "github.com/bits-and-blooms/bitset"

// Exists returns the existential quantification of n for the variables in
// vars. The algorithm is selected with the Exists field of the configuration;
// both strategies return the same node.
func (b *BDD) Exists(n Node, vars *bitset.BitSet) Node {
	if b.cfg.Exists == SelfSubstitution {
		return b.ExistsSelfSubstitution(n, vars)
	}
	return b.ExistsShannon(n, vars)
}

// ExistsShannon computes the existential quantification of n for the
// variables in vars with a single recursive traversal of n, where each node
// labelled by a quantified variable is replaced by the disjunction of its
// successors.
func (b *BDD) ExistsShannon(n Node, vars *bitset.BitSet) Node {
	b.checkptr(n)
	b.identity(vars)
	b.initref()
	return b.existsShannon(n, vars)
}

func (b *BDD) existsShannon(n Node, vars *bitset.BitSet) Node {
	if n < 2 || vars == nil || vars.None() {
		return n
	}
	b.pushref(n)
	cube := b.pushref(b.cube(vars))
	res := b.quant(n, cube)
	b.popref(2)
	return res
}

// cube returns the conjunction of the variables in vars. We build it bottom
// up, starting from the variable with the highest index.
func (b *BDD) cube(vars *bitset.BitSet) Node {
	res := True
	for k := int(b.varnum) - 1; k >= 0; k-- {
		if vars.Test(uint(k)) {
			res = b.makenode(int32(k), False, res)
		}
	}
	return res
}

func (b *BDD) quant(n, cube Node) Node {
	if n < 2 {
		return n
	}
	level := b.level(n)
	for cube >= 2 && b.level(cube) < level {
		cube = b.high(cube)
	}
	if cube < 2 {
		return n
	}
	key := packpair(n, cube)
	cached, hit, h := b.binarycache.lookup(key, cacheidEXIST)
	if hit {
		return Node(cached)
	}
	low := b.pushref(b.quant(b.low(n), cube))
	var res Node
	switch {
	case b.level(cube) != level:
		high := b.pushref(b.quant(b.high(n), cube))
		res = b.makenode(level, low, high)
		b.popref(1)
	case low == True:
		res = True
	default:
		high := b.pushref(b.quant(b.high(n), cube))
		res = b.apply(low, high, OPor)
		b.popref(1)
	}
	b.popref(1)
	b.binarycache.put(h, key, cacheidEXIST, uint64(res))
	return res
}

// ExistsSelfSubstitution computes the existential quantification of n for the
// variables in vars one variable at a time, using the identity ∃x.f = f[x :=
// f[x := 1]], so that the work is done by Compose.
func (b *BDD) ExistsSelfSubstitution(n Node, vars *bitset.BitSet) Node {
	b.checkptr(n)
	b.initref()
	return b.existsSelfSubstitution(n, vars)
}

func (b *BDD) existsSelfSubstitution(n Node, vars *bitset.BitSet) Node {
	repl := b.identity(vars)
	if len(repl) == 0 {
		return n
	}
	res := b.pushref(n)
	for v, ok := vars.NextSet(0); ok && res >= 2; v, ok = vars.NextSet(v + 1) {
		repl[v] = True
		pos := b.pushref(b.composetop(res, repl))
		repl[v] = pos
		next := b.composetop(res, repl)
		repl[v] = b.varset[v][0]
		b.popref(2)
		res = b.pushref(next)
	}
	b.popref(1)
	return res
}

func (b *BDD) exists(n Node, vars *bitset.BitSet) Node {
	if b.cfg.Exists == SelfSubstitution {
		return b.existsSelfSubstitution(n, vars)
	}
	return b.existsShannon(n, vars)
}

// Forall returns the universal quantification of n for the variables in vars.
func (b *BDD) Forall(n Node, vars *bitset.BitSet) Node {
	b.checkptr(n)
	b.identity(vars)
	b.initref()
	b.pushref(n)
	nn := b.pushref(b.not(n))
	e := b.pushref(b.exists(nn, vars))
	res := b.not(e)
	b.popref(3)
	return res
}

// AndExist returns the "relational composition" of two nodes with respect to
// vars, meaning the result of (Exists vars . left & right). The conjunction
// and the quantification are done in a single traversal, which is much more
// efficient than an And followed by Exists.
func (b *BDD) AndExist(left, right Node, vars *bitset.BitSet) Node {
	b.checkptr(left)
	b.checkptr(right)
	b.identity(vars)
	b.initref()
	b.pushref(left)
	b.pushref(right)
	var res Node
	if vars == nil || vars.None() {
		res = b.apply(left, right, OPand)
	} else {
		cube := b.pushref(b.cube(vars))
		res = b.andexist(left, right, cube)
		b.popref(1)
	}
	b.popref(2)
	return res
}

// cofactors returns the successors of n for variable level, that are n itself
// when n does not depend on level.
func (b *BDD) cofactors(n Node, level int32) (Node, Node) {
	if b.level(n) != level {
		return n, n
	}
	return b.low(n), b.high(n)
}

func (b *BDD) andexist(left, right, cube Node) Node {
	switch {
	case left == False || right == False:
		return False
	case left == True || left == right:
		return b.quant(right, cube)
	case right == True:
		return b.quant(left, cube)
	}
	level := min(b.level(left), b.level(right))
	for cube >= 2 && b.level(cube) < level {
		cube = b.high(cube)
	}
	if cube < 2 {
		return b.apply(left, right, OPand)
	}
	if left > right {
		left, right = right, left
	}
	key := packpair(left, right)
	tag := uint64(uint32(cube))<<8 | cacheidANDEX
	cached, hit, h := b.ternarycache.lookup(key, tag)
	if hit {
		return Node(cached)
	}
	ll, lh := b.cofactors(left, level)
	rl, rh := b.cofactors(right, level)
	low := b.pushref(b.andexist(ll, rl, cube))
	var res Node
	switch {
	case b.level(cube) != level:
		high := b.pushref(b.andexist(lh, rh, cube))
		res = b.makenode(level, low, high)
		b.popref(1)
	case low == True:
		res = True
	default:
		high := b.pushref(b.andexist(lh, rh, cube))
		res = b.apply(low, high, OPor)
		b.popref(1)
	}
	b.popref(1)
	b.ternarycache.put(h, key, tag, uint64(res))
	return res
}
