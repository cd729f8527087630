// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package cnf

import (
	"math/rand"
	"testing"

	"github.com/ltlkit/bdd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	b, err := bdd.New(0)
	require.NoError(t, err)
	// (x0 | x1) & (!x0 | x2) & !x1
	n, err := Build(b, [][]int{{1, 2}, {-1, 3}, {-2}})
	require.NoError(t, err)
	require.Equal(t, 3, b.Varnum())
	assert.Equal(t, float64(1), b.SatCount(n))
	x0x2 := b.And(b.Ithvar(0), b.Ithvar(2))
	assert.Equal(t, b.And(x0x2, b.NIthvar(1)), n)
}

func TestBuildInvalid(t *testing.T) {
	b, err := bdd.New(2)
	require.NoError(t, err)
	_, err = Build(b, [][]int{{1, 0}})
	require.ErrorIs(t, err, ErrLiteral)
	_, err = Satisfiable([][]int{{0}})
	require.ErrorIs(t, err, ErrLiteral)
}

func TestUnsatisfiable(t *testing.T) {
	clauses := [][]int{{1, 2}, {-1, 2}, {1, -2}, {-1, -2}}
	sat, err := Satisfiable(clauses)
	require.NoError(t, err)
	require.False(t, sat)
	b, err := bdd.New(0)
	require.NoError(t, err)
	n, err := Build(b, clauses)
	require.NoError(t, err)
	require.Equal(t, bdd.False, n)
	_, ok, err := Model(clauses, 2)
	require.NoError(t, err)
	require.False(t, ok)
}

// TestAgainstGini checks that the BDD of random 3-SAT formulas is not False
// exactly when gini finds a model, and that the model satisfies the BDD.
func TestAgainstGini(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	const vars = 12
	for i := 0; i < 40; i++ {
		// the ratio clauses/vars goes across the 4.26 threshold
		clauses := Random3SAT(rng, vars, 20+i)
		b, err := bdd.New(vars, bdd.Nodesize(200))
		require.NoError(t, err)
		n, err := Build(b, clauses)
		require.NoError(t, err)
		sat, err := Satisfiable(clauses)
		require.NoError(t, err)
		require.Equal(t, sat, n != bdd.False, "formula %d: %v", i, clauses)
		m, ok, err := Model(clauses, vars)
		require.NoError(t, err)
		require.Equal(t, sat, ok)
		if ok {
			require.True(t, b.Evaluate(n, m), "formula %d: model %v", i, m)
		}
		// every minimal solution is also a model of the formula
		for s := range b.MinimalSolutions(n).All() {
			require.True(t, satisfies(clauses, s.Test))
		}
		b.Dereference(n)
	}
}

func satisfies(clauses [][]int, value func(uint) bool) bool {
	for _, cl := range clauses {
		ok := false
		for _, lit := range cl {
			if value(uint(variable(lit))) == (lit > 0) {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

func TestRandom3SAT(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	clauses := Random3SAT(rng, 5, 100)
	require.Len(t, clauses, 100)
	for _, cl := range clauses {
		require.Len(t, cl, 3)
		for k, lit := range cl {
			require.NotZero(t, lit)
			require.LessOrEqual(t, variable(lit), 4)
			require.False(t, contains(cl[:k], lit))
		}
	}
}
