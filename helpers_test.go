// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/bits-and-blooms/bitset"
	"github.com/stretchr/testify/require"
)

func newTestBDD(t testing.TB, varnum int, options ...Option) *BDD {
	t.Helper()
	b, err := New(varnum, options...)
	require.NoError(t, err)
	return b
}

// roots keeps track of the nodes referenced during a test.
type roots struct {
	b     *BDD
	nodes []Node
}

func (r *roots) keep(n Node) Node {
	r.nodes = append(r.nodes, r.b.Reference(n))
	return n
}

func (r *roots) release() {
	for _, n := range r.nodes {
		r.b.Dereference(n)
	}
	r.nodes = r.nodes[:0]
}

// randomNode returns a random, referenced, function built from the variables
// of b with depth nested binary operations.
func randomNode(b *BDD, rng *rand.Rand, depth int) Node {
	if depth == 0 {
		v := rng.Intn(b.Varnum())
		switch rng.Intn(8) {
		case 0:
			return b.From(rng.Intn(2) == 0)
		case 1, 2, 3:
			return b.NIthvar(v)
		default:
			return b.Ithvar(v)
		}
	}
	left := randomNode(b, rng, depth-1)
	right := randomNode(b, rng, depth-1)
	op := Operator(rng.Intn(int(OPinvimp) + 1))
	res := b.Reference(b.Apply(left, right, op))
	b.Dereference(left)
	b.Dereference(right)
	return res
}

// assignment returns the assignment where variable i is true when bit i of
// mask is set.
func assignment(mask, varnum int) *bitset.BitSet {
	res := bitset.New(uint(varnum))
	for i := 0; i < varnum; i++ {
		if mask&(1<<i) != 0 {
			res.Set(uint(i))
		}
	}
	return res
}

// truthTable returns the value of n for every assignment of the variables of
// b, indexed like in assignment.
func truthTable(b *BDD, n Node) []bool {
	varnum := b.Varnum()
	res := make([]bool, 1<<varnum)
	for mask := range res {
		res[mask] = b.Evaluate(n, assignment(mask, varnum))
	}
	return res
}

// requirePanicsWith checks that f panics with an error wrapping target.
func requirePanicsWith(t *testing.T, target error, f func()) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected a panic wrapping %v", target)
		err, ok := r.(error)
		require.True(t, ok, "panic value %v is not an error", r)
		require.True(t, errors.Is(err, target), "panic %v does not wrap %v", err, target)
	}()
	f()
}
