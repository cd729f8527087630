// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

import (
	"math/rand"
	"testing"

	"github.com/bits-and-blooms/bitset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func varset(vars ...uint) *bitset.BitSet {
	res := bitset.New(0)
	for _, v := range vars {
		res.Set(v)
	}
	return res
}

// bruteExists returns the truth table of the existential quantification of a
// function, given by its truth table, over the variables in vars.
func bruteExists(tf []bool, varnum int, vars *bitset.BitSet) []bool {
	res := make([]bool, len(tf))
	for mask := range tf {
		for other := range tf {
			same := true
			for i := 0; i < varnum; i++ {
				if !vars.Test(uint(i)) && (mask&(1<<i)) != (other&(1<<i)) {
					same = false
					break
				}
			}
			if same && tf[other] {
				res[mask] = true
				break
			}
		}
	}
	return res
}

func TestExistsScenario(t *testing.T) {
	for _, s := range []ExistsStrategy{Shannon, SelfSubstitution} {
		t.Run(s.String(), func(t *testing.T) {
			b := newTestBDD(t, 2, ExistsWith(s))
			a, c := b.Ithvar(0), b.Ithvar(1)
			and := b.Reference(b.And(a, c))
			assert.Equal(t, c, b.Exists(and, varset(0)))
			assert.Equal(t, a, b.Exists(and, varset(1)))
			assert.Equal(t, True, b.Exists(and, varset(0, 1)))
			assert.Equal(t, and, b.Exists(and, nil))
			assert.Equal(t, and, b.Exists(and, bitset.New(0)))
			assert.Equal(t, False, b.Exists(False, varset(0)))
		})
	}
}

func TestRestrictScenario(t *testing.T) {
	b := newTestBDD(t, 2)
	a, c := b.Ithvar(0), b.Ithvar(1)
	or := b.Reference(b.Or(a, c))
	assert.Equal(t, c, b.Restrict(or, varset(0), bitset.New(2)))
	assert.Equal(t, True, b.Restrict(or, varset(0), varset(0)))
	assert.Equal(t, a, b.Restrict(or, varset(1), nil))
	assert.Equal(t, or, b.Restrict(or, nil, nil))
	requirePanicsWith(t, ErrUnknownVariable, func() { b.Restrict(or, varset(2), nil) })
}

// TestExistsStrategies checks that both strategies compute the same node,
// and that it is the expected function.
func TestExistsStrategies(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	const varnum = 6
	b := newTestBDD(t, varnum, Nodesize(60))
	for i := 0; i < 60; i++ {
		f := randomNode(b, rng, 3)
		vars := bitset.New(varnum)
		for v := 0; v < varnum; v++ {
			if rng.Intn(3) == 0 {
				vars.Set(uint(v))
			}
		}
		shannon := b.Reference(b.ExistsShannon(f, vars))
		self := b.Reference(b.ExistsSelfSubstitution(f, vars))
		require.Equal(t, shannon, self, "exists %v", vars)
		require.Equal(t, bruteExists(truthTable(b, f), varnum, vars), truthTable(b, shannon))
		assert.True(t, b.Implies(f, shannon))
		assert.False(t, b.Support(shannon).Intersection(vars).Any())

		// forall is the dual of exists
		all := b.Reference(b.Forall(f, vars))
		nf := b.Reference(b.Not(f))
		ex := b.Reference(b.Exists(nf, vars))
		assert.Equal(t, b.Not(ex), all)
		assert.True(t, b.Implies(all, f))

		for _, n := range []Node{f, shannon, self, all, nf, ex} {
			b.Dereference(n)
		}
	}
}

func TestAndExist(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	const varnum = 6
	b := newTestBDD(t, varnum, Nodesize(60))
	for i := 0; i < 60; i++ {
		f := randomNode(b, rng, 3)
		g := randomNode(b, rng, 3)
		vars := bitset.New(varnum)
		for v := 0; v < varnum; v++ {
			if rng.Intn(2) == 0 {
				vars.Set(uint(v))
			}
		}
		and := b.Reference(b.And(f, g))
		expected := b.Reference(b.Exists(and, vars))
		require.Equal(t, expected, b.AndExist(f, g, vars))
		require.Equal(t, and, b.AndExist(f, g, nil))
		for _, n := range []Node{f, g, and, expected} {
			b.Dereference(n)
		}
	}
}

func TestAndExistExample(t *testing.T) {
	b := newTestBDD(t, 6)
	f := b.Reference(b.OrAll(b.Ithvar(1), b.NIthvar(3), b.Ithvar(4)))
	expected := b.Reference(b.Or(b.Ithvar(1), b.Ithvar(4)))
	res := b.AndExist(f, b.Ithvar(3), varset(2, 3, 5))
	assert.Equal(t, expected, res)
	assert.Equal(t, 48.0, b.SatCount(res))
	res = b.AndExist(f, b.NIthvar(3), varset(2, 3, 5))
	assert.Equal(t, True, res)
}

// TestCompose compares Compose with the expected semantics, f[x := g](v) =
// f(v[x := g(v)]), on random substitutions.
func TestCompose(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	const varnum = 5
	b := newTestBDD(t, varnum, Nodesize(60))
	for i := 0; i < 40; i++ {
		f := randomNode(b, rng, 3)
		repl := make([]Node, 1+rng.Intn(varnum))
		for k := range repl {
			if rng.Intn(2) == 0 {
				repl[k] = b.Ithvar(k)
			} else {
				repl[k] = randomNode(b, rng, 2)
			}
		}
		res := b.Reference(b.Compose(f, repl))
		for mask := 0; mask < 1<<varnum; mask++ {
			v := assignment(mask, varnum)
			w := v.Clone()
			for k, r := range repl {
				w.SetTo(uint(k), b.Evaluate(r, v))
			}
			require.Equal(t, b.Evaluate(f, w), b.Evaluate(res, v))
		}
		// a second call gives the same node
		assert.Equal(t, res, b.Compose(f, repl))
		b.Dereference(res)
		b.Dereference(f)
		for _, r := range repl {
			b.Dereference(r)
		}
	}
}

func TestComposeCache(t *testing.T) {
	b := newTestBDD(t, 4)
	f := b.Reference(b.Or(b.And(b.Ithvar(0), b.Ithvar(1)), b.Ithvar(3)))
	repl := []Node{b.Ithvar(2), b.Ithvar(1), b.Ithvar(0), b.Ithvar(3)}
	g := b.Reference(b.Compose(f, repl))
	hits := b.composecache.hits
	// the vector is copied in the cache; changing it must not change the
	// result of a later call.
	repl[0] = b.Ithvar(0)
	assert.Equal(t, f, b.Compose(f, repl))
	repl[0] = b.Ithvar(2)
	assert.Equal(t, g, b.Compose(f, repl))
	assert.Equal(t, hits+1, b.composecache.hits)
	// trailing identities are not part of the key
	assert.Equal(t, g, b.Compose(f, repl[:3]))
	assert.Equal(t, hits+2, b.composecache.hits)
	requirePanicsWith(t, ErrUnknownVariable, func() { b.Compose(f, make([]Node, 5)) })
	requirePanicsWith(t, ErrInvalidNode, func() { b.Compose(f, []Node{Node(-1)}) })
}

func TestReplace(t *testing.T) {
	b := newTestBDD(t, 4)
	x0, x1, x2 := b.Ithvar(0), b.Ithvar(1), b.Ithvar(2)
	f := b.Reference(b.And(x0, b.NIthvar(1)))

	r, err := b.NewReplacer([]int{0, 1}, []int{2, 3})
	require.NoError(t, err)
	assert.Equal(t, "replacer(last: 1)[0<-2, 1<-3]", r.String())
	expected := b.Reference(b.And(x2, b.NIthvar(3)))
	assert.Equal(t, expected, b.Replace(f, r))

	// renamings are simultaneous, so we can swap variables
	swap, err := b.NewReplacer([]int{0, 1}, []int{1, 0})
	require.NoError(t, err)
	swapped := b.Reference(b.And(x1, b.NIthvar(0)))
	assert.Equal(t, swapped, b.Replace(f, swap))
	assert.Equal(t, f, b.Replace(swapped, swap))

	id, err := b.NewReplacer([]int{2}, []int{2})
	require.NoError(t, err)
	assert.Equal(t, f, b.Replace(f, id))

	_, err = b.NewReplacer([]int{0}, []int{1, 2})
	assert.ErrorIs(t, err, ErrUnknownVariable)
	_, err = b.NewReplacer([]int{0, 0}, []int{1, 2})
	assert.ErrorIs(t, err, ErrUnknownVariable)
	_, err = b.NewReplacer([]int{4}, []int{1})
	assert.ErrorIs(t, err, ErrUnknownVariable)
	_, err = b.NewReplacer([]int{1}, []int{-1})
	assert.ErrorIs(t, err, ErrUnknownVariable)
}
