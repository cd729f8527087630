// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//********************************************************************************************

func TestMin3(t *testing.T) {
	var minusTests = []struct {
		p, q, r  int32
		expected int32
	}{
		{3, 2, 3, 2},
		{4, 4, 4, 4},
		{2, 3, 3, 2},
		{3, 2, 2, 2},
		{3, 3, 2, 2},
		{1, 2, 3, 1},
	}
	for _, tt := range minusTests {
		assert.Equal(t, tt.expected, min3(tt.p, tt.q, tt.r), "min3(%d, %d, %d)", tt.p, tt.q, tt.r)
	}
}

//********************************************************************************************

func TestIte(t *testing.T) {
	b := newTestBDD(t, 4)
	n1 := b.Reference(b.Makeset([]int{0, 2, 3}))
	n2 := b.Reference(b.Makeset([]int{0, 3}))
	nn2 := b.Reference(b.Not(n2))
	nn1 := b.Reference(b.Not(n1))
	ite := b.Reference(b.IfThenElse(n1, n2, nn2))
	left := b.Reference(b.And(n1, n2))
	right := b.Reference(b.And(nn1, nn2))
	// ite(f,g,h) <=> (f and g) or (-f and h)
	assert.Equal(t, b.Or(left, right), ite)
}

func TestIteShortcuts(t *testing.T) {
	b := newTestBDD(t, 3)
	x, y := b.Ithvar(0), b.Ithvar(1)
	assert.Equal(t, y, b.IfThenElse(True, y, x))
	assert.Equal(t, x, b.IfThenElse(False, y, x))
	assert.Equal(t, y, b.IfThenElse(x, y, y))
	assert.Equal(t, x, b.IfThenElse(x, True, False))
	assert.Equal(t, b.NIthvar(0), b.IfThenElse(x, False, True))
	assert.Equal(t, b.And(x, y), b.IfThenElse(x, y, False))
	assert.Equal(t, b.And(x, y), b.IfThenElse(x, y, x))
	assert.Equal(t, b.Or(x, y), b.IfThenElse(x, True, y))
	assert.Equal(t, b.Or(x, y), b.IfThenElse(x, x, y))
	assert.Equal(t, b.Implication(x, y), b.IfThenElse(x, y, True))
}

// TestApply compares the result of Apply with the truth table of each
// operator, on random functions and with a small node table.
func TestApply(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	b := newTestBDD(t, 5, Nodesize(30), Cachesize(20))
	for i := 0; i < 50; i++ {
		f := randomNode(b, rng, 3)
		g := randomNode(b, rng, 3)
		tf, tg := truthTable(b, f), truthTable(b, g)
		for op := OPand; op <= OPinvimp; op++ {
			r := b.Reference(b.Apply(f, g, op))
			tr := truthTable(b, r)
			for k := range tr {
				expected := opres[op][b.From(tf[k])][b.From(tg[k])] == True
				require.Equal(t, expected, tr[k], "%s on assignment %d", op, k)
			}
			b.Dereference(r)
		}
		b.Dereference(f)
		b.Dereference(g)
	}
}

func TestAlgebraicProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	b := newTestBDD(t, 6, Nodesize(50))
	r := &roots{b: b}
	for i := 0; i < 100; i++ {
		f := randomNode(b, rng, 3)
		g := randomNode(b, rng, 3)
		h := randomNode(b, rng, 2)
		assert.Equal(t, f, b.And(f, f))
		assert.Equal(t, f, b.Or(f, f))
		assert.Equal(t, False, b.Xor(f, f))
		assert.Equal(t, True, b.Equivalence(f, f))
		nf := r.keep(b.Not(f))
		ng := r.keep(b.Not(g))
		assert.Equal(t, f, b.Not(nf))
		assert.Equal(t, False, b.And(f, nf))
		assert.Equal(t, True, b.Or(f, nf))
		// De Morgan
		and := r.keep(b.And(f, g))
		or := r.keep(b.Or(f, g))
		nand := r.keep(b.Not(and))
		nor := r.keep(b.Not(or))
		assert.Equal(t, nand, b.Or(nf, ng))
		assert.Equal(t, nor, b.And(nf, ng))
		assert.Equal(t, nand, b.NotAnd(f, g))
		// commutativity
		assert.Equal(t, and, b.And(g, f))
		assert.Equal(t, or, b.Or(g, f))
		// ite(f, g, h) == (f & g) | (!f & h)
		nfh := r.keep(b.And(nf, h))
		ite := r.keep(b.Or(and, nfh))
		assert.Equal(t, ite, b.IfThenElse(f, g, h))
		// implication
		imp := r.keep(b.Implication(f, g))
		assert.Equal(t, imp == True, b.Implies(f, g))
		assert.True(t, b.Implies(and, f))
		assert.True(t, b.Implies(f, or))
		assert.Equal(t, f == g, b.Implies(f, g) && b.Implies(g, f))
		r.release()
		b.Dereference(f)
		b.Dereference(g)
		b.Dereference(h)
	}
}

// TestCanonicity checks that functions with the same truth table are
// represented by the same node.
func TestCanonicity(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	b := newTestBDD(t, 4, Nodesize(40))
	seen := map[string]Node{}
	r := &roots{b: b}
	for i := 0; i < 300; i++ {
		f := randomNode(b, rng, 3)
		r.nodes = append(r.nodes, f)
		key := ""
		for _, v := range truthTable(b, f) {
			if v {
				key += "1"
			} else {
				key += "0"
			}
		}
		if g, ok := seen[key]; ok {
			require.Equal(t, g, f, "two nodes for %s", key)
		}
		seen[key] = f
	}
	r.release()

	// (x0 & x1) | x2 == !(!x2 & (!x0 | !x1))
	x := b.Reference(b.Or(b.And(b.Ithvar(0), b.Ithvar(1)), b.Ithvar(2)))
	y := b.Reference(b.Or(b.NIthvar(0), b.NIthvar(1)))
	assert.Equal(t, x, b.Not(b.And(b.NIthvar(2), y)))
}

func TestApplyInvalid(t *testing.T) {
	b := newTestBDD(t, 2)
	requirePanicsWith(t, ErrOperator, func() { b.Apply(True, False, Operator(42)) })
	requirePanicsWith(t, ErrInvalidNode, func() { b.And(True, Node(1<<20)) })
	requirePanicsWith(t, ErrInvalidNode, func() { b.Not(Node(-3)) })
	assert.Equal(t, "Operator(42)", Operator(42).String())
	assert.Equal(t, "biimp", OPbiimp.String())
}

func TestMakeNode(t *testing.T) {
	b := newTestBDD(t, 3)
	assert.Equal(t, b.Ithvar(1), b.MakeNode(1, False, True))
	assert.Equal(t, False, b.MakeNode(0, False, False))
	n := b.MakeNode(0, b.Ithvar(2), b.NIthvar(1))
	assert.Equal(t, 0, b.Label(n))
	assert.Equal(t, b.Ithvar(2), b.Low(n))
	assert.Equal(t, b.NIthvar(1), b.High(n))
	requirePanicsWith(t, ErrOrdering, func() { b.MakeNode(1, b.Ithvar(0), True) })
	requirePanicsWith(t, ErrOrdering, func() { b.MakeNode(2, False, b.Ithvar(2)) })
	requirePanicsWith(t, ErrUnknownVariable, func() { b.MakeNode(3, False, True) })
	requirePanicsWith(t, ErrInvalidNode, func() { b.Label(True) })
}
