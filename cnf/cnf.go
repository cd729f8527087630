// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package cnf builds the BDD of formulas in conjunctive normal form and checks
// them against the gini SAT solver.
//
// A formula is a list of clauses and each clause is a list of literals in the
// DIMACS convention: literal v > 0 stands for variable v-1 of the BDD and
// literal -v for its negation.
package cnf

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/bits-and-blooms/bitset"
	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
	"github.com/ltlkit/bdd"
)

// ErrLiteral is returned when a clause contains the literal 0.
var ErrLiteral = errors.New("invalid literal")

// ErrCanceled is returned when the SAT solver gives up.
var ErrCanceled = errors.New("sat solver canceled")

func variable(lit int) int {
	if lit < 0 {
		return -lit - 1
	}
	return lit - 1
}

func check(clauses [][]int) error {
	for k, cl := range clauses {
		for _, lit := range cl {
			if lit == 0 {
				return fmt.Errorf("%w: 0 in clause %d", ErrLiteral, k)
			}
		}
	}
	return nil
}

// Build returns the BDD of the conjunction of clauses. Variables that do not
// exist in b are created. The result is referenced.
func Build(b *bdd.BDD, clauses [][]int) (bdd.Node, error) {
	if err := check(clauses); err != nil {
		return bdd.False, err
	}
	res := b.True()
	for _, cl := range clauses {
		c := b.False()
		for _, lit := range cl {
			v := variable(lit)
			for b.Varnum() <= v {
				b.CreateVariable()
			}
			l := b.Ithvar(v)
			if lit < 0 {
				l = b.NIthvar(v)
			}
			b.Assign(&c, b.Or(c, l))
		}
		b.Assign(&res, b.And(res, c))
		b.Dereference(c)
		if res == bdd.False {
			break
		}
	}
	return res, nil
}

func solver(clauses [][]int) (*gini.Gini, error) {
	if err := check(clauses); err != nil {
		return nil, err
	}
	g := gini.New()
	for _, cl := range clauses {
		for _, lit := range cl {
			g.Add(z.Dimacs2Lit(lit))
		}
		g.Add(0)
	}
	return g, nil
}

// Satisfiable reports whether clauses has a model.
func Satisfiable(clauses [][]int) (bool, error) {
	g, err := solver(clauses)
	if err != nil {
		return false, err
	}
	switch g.Solve() {
	case 1:
		return true, nil
	case -1:
		return false, nil
	}
	return false, ErrCanceled
}

// Model returns a model of clauses over variables [0..varnum), or false if
// there is none. Variable i is true in the model if bit i is set.
func Model(clauses [][]int, varnum int) (*bitset.BitSet, bool, error) {
	g, err := solver(clauses)
	if err != nil {
		return nil, false, err
	}
	switch g.Solve() {
	case -1:
		return nil, false, nil
	case 0:
		return nil, false, ErrCanceled
	}
	m := bitset.New(uint(varnum))
	for _, cl := range clauses {
		for _, lit := range cl {
			if v := variable(lit); v < varnum && g.Value(z.Dimacs2Lit(v+1)) {
				m.Set(uint(v))
			}
		}
	}
	return m, true, nil
}

// Random3SAT returns a random formula with the given number of clauses, each
// with three literals over distinct variables taken in [1..vars].
func Random3SAT(rng *rand.Rand, vars, clauses int) [][]int {
	res := make([][]int, clauses)
	for k := range res {
		cl := make([]int, 0, 3)
		for len(cl) < 3 && len(cl) < vars {
			v := rng.Intn(vars) + 1
			if contains(cl, v) {
				continue
			}
			if rng.Intn(2) == 0 {
				v = -v
			}
			cl = append(cl, v)
		}
		res[k] = cl
	}
	return res
}

func contains(cl []int, v int) bool {
	for _, l := range cl {
		if l == v || l == -v {
			return true
		}
	}
	return false
}
