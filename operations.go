// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

// Not returns the negation of the expression corresponding to node n. It
// negates a BDD by exchanging all references to the zero-terminal with
// references to the one-terminal and vice versa.
func (b *BDD) Not(n Node) Node {
	b.checkptr(n)
	b.initref()
	b.pushref(n)
	res := b.not(n)
	b.popref(1)
	return res
}

func (b *BDD) not(n Node) Node {
	if n == False {
		return True
	}
	if n == True {
		return False
	}
	// The key for a not operation is simply n
	res, hit, h := b.unarycache.lookup(uint64(n), 0)
	if hit {
		return Node(res)
	}
	low := b.pushref(b.not(b.low(n)))
	high := b.pushref(b.not(b.high(n)))
	r := b.makenode(b.level(n), low, high)
	b.popref(2)
	b.unarycache.put(h, uint64(n), 0, uint64(r))
	return r
}

// Apply performs all of the basic bdd operations with two operands, such as
// AND, OR etc. Left and right are the operand and opr is the requested
// operation and must be one of the following:
//
//	Identifier    Description             Truth table
//
//	OPand         logical and             [0,0,0,1]
//	OPxor         logical xor             [0,1,1,0]
//	OPor          logical or              [0,1,1,1]
//	OPnand        logical not-and         [1,1,1,0]
//	OPnor         logical not-or          [1,0,0,0]
//	OPimp         implication             [1,1,0,1]
//	OPbiimp       equivalence             [1,0,0,1]
//	OPdiff        set difference          [0,0,1,0]
//	OPless        less than               [0,1,0,0]
//	OPinvimp      reverse implication     [1,0,1,1]
func (b *BDD) Apply(left Node, right Node, op Operator) Node {
	b.checkptr(left)
	b.checkptr(right)
	if op < OPand || op > OPinvimp {
		b.fail(ErrOperator, "%s in call to Apply", op)
	}
	b.initref()
	b.pushref(left)
	b.pushref(right)
	res := b.apply(left, right, op)
	b.popref(2)
	return res
}

// And returns the conjunction of left and right.
func (b *BDD) And(left, right Node) Node {
	return b.Apply(left, right, OPand)
}

// Or returns the disjunction of left and right.
func (b *BDD) Or(left, right Node) Node {
	return b.Apply(left, right, OPor)
}

// Xor returns the exclusive or of left and right.
func (b *BDD) Xor(left, right Node) Node {
	return b.Apply(left, right, OPxor)
}

// Equivalence returns the bi-implication between left and right.
func (b *BDD) Equivalence(left, right Node) Node {
	return b.Apply(left, right, OPbiimp)
}

// Implication returns the BDD for left => right. See Implies for a test that
// does not build any node.
func (b *BDD) Implication(left, right Node) Node {
	return b.Apply(left, right, OPimp)
}

// NotAnd returns the negation of the conjunction of left and right.
func (b *BDD) NotAnd(left, right Node) Node {
	return b.Apply(left, right, OPnand)
}

func (b *BDD) apply(left Node, right Node, op Operator) Node {
	switch op {
	case OPand:
		if left == right {
			return left
		}
		if (left == False) || (right == False) {
			return False
		}
		if left == True {
			return right
		}
		if right == True {
			return left
		}
	case OPor:
		if left == right {
			return left
		}
		if (left == True) || (right == True) {
			return True
		}
		if left == False {
			return right
		}
		if right == False {
			return left
		}
	case OPxor:
		if left == right {
			return False
		}
		if left == False {
			return right
		}
		if right == False {
			return left
		}
	case OPnand:
		if (left == False) || (right == False) {
			return True
		}
	case OPnor:
		if (left == True) || (right == True) {
			return False
		}
	case OPimp:
		if left == False {
			return True
		}
		if left == True {
			return right
		}
		if right == True {
			return True
		}
		if left == right {
			return True
		}
	case OPbiimp:
		if left == right {
			return True
		}
		if left == True {
			return right
		}
		if right == True {
			return left
		}
	case OPdiff:
		if (left == right) || (right == True) || (left == False) {
			return False
		}
		if right == False {
			return left
		}
	case OPless:
		if (left == right) || (left == True) || (right == False) {
			return False
		}
		if left == False {
			return right
		}
	case OPinvimp:
		if right == False {
			return True
		}
		if right == True {
			return left
		}
		if left == True {
			return True
		}
		if left == right {
			return True
		}
	}

	// we deal with the other cases where the two operands are constants
	if (left < 2) && (right < 2) {
		return opres[op][left][right]
	}
	l, r := left, right
	if op.commutative() && l > r {
		l, r = r, l
	}
	key := packpair(l, r)
	cached, hit, h := b.binarycache.lookup(key, uint64(op))
	if hit {
		return Node(cached)
	}
	leftlvl := b.level(left)
	rightlvl := b.level(right)
	var res Node
	switch {
	case leftlvl == rightlvl:
		low := b.pushref(b.apply(b.low(left), b.low(right), op))
		high := b.pushref(b.apply(b.high(left), b.high(right), op))
		res = b.makenode(leftlvl, low, high)
	case leftlvl < rightlvl:
		low := b.pushref(b.apply(b.low(left), right, op))
		high := b.pushref(b.apply(b.high(left), right, op))
		res = b.makenode(leftlvl, low, high)
	default:
		low := b.pushref(b.apply(left, b.low(right), op))
		high := b.pushref(b.apply(left, b.high(right), op))
		res = b.makenode(rightlvl, low, high)
	}
	b.popref(2)
	b.binarycache.put(h, key, uint64(op), uint64(res))
	return res
}

// Implies reports whether left implies right, that is whether every
// assignment satisfying left also satisfies right. Unlike Implication, it does
// not build any node.
func (b *BDD) Implies(left, right Node) bool {
	b.checkptr(left)
	b.checkptr(right)
	return b.implies(left, right)
}

func (b *BDD) implies(left, right Node) bool {
	switch {
	case left == False || right == True || left == right:
		return true
	case left == True || right == False:
		return false
	}
	key := packpair(left, right)
	cached, hit, h := b.binarycache.lookup(key, cacheidIMPLIES)
	if hit {
		return cached == 1
	}
	leftlvl := b.level(left)
	rightlvl := b.level(right)
	var res bool
	switch {
	case leftlvl == rightlvl:
		res = b.implies(b.low(left), b.low(right)) && b.implies(b.high(left), b.high(right))
	case leftlvl < rightlvl:
		res = b.implies(b.low(left), right) && b.implies(b.high(left), right)
	default:
		res = b.implies(left, b.low(right)) && b.implies(left, b.high(right))
	}
	var v uint64
	if res {
		v = 1
	}
	b.binarycache.put(h, key, cacheidIMPLIES, v)
	return res
}
