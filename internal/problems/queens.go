// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package problems builds the BDD of classical benchmark problems, adapted
// from the examples of the BuDDy distribution.
package problems

import "github.com/ltlkit/bdd"

// ensure creates variables in b until there are at least n of them.
func ensure(b *bdd.BDD, n int) {
	for b.Varnum() < n {
		b.CreateVariable()
	}
}

// Queens returns the solutions for the N-Queen chess problem. It uses a BDD
// with NxN variables corresponding to the squares in the chess board like:
//
//	0 4  8 12
//	1 5  9 13
//	2 6 10 14
//	3 7 11 15
//
// One solution is then that 2,4,11,13 should be true, meaning a queen should be
// placed there:
//
//	. X . .
//	. . . X
//	X . . .
//	. . X .
//
// The result is referenced; the number of solutions is b.SatCount(result) when
// b has exactly NxN variables.
func Queens(b *bdd.BDD, n int) bdd.Node {
	ensure(b, n*n)
	X := make([][]bdd.Node, n)
	for i := range X {
		X[i] = make([]bdd.Node, n)
		for j := range X[i] {
			X[i][j] = b.Ithvar(i*n + j)
		}
	}
	queen := b.True()
	// Place a queen in each row
	for i := 0; i < n; i++ {
		e := b.False()
		for j := 0; j < n; j++ {
			b.Assign(&e, b.Or(e, X[i][j]))
		}
		b.Assign(&queen, b.And(queen, e))
		b.Dereference(e)
	}

	// excludes adds the constraint that there is no queen on (k, l) when there
	// is one on (i, j).
	excludes := func(acc *bdd.Node, i, j, k, l int) {
		b.Assign(acc, b.And(*acc, b.NotAnd(X[i][j], X[k][l])))
	}

	// Build requirements for each variable(field)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			cell := b.True()
			for k := 0; k < n; k++ {
				// No one in the same column
				if k != j {
					excludes(&cell, i, j, i, k)
				}
				// No one in the same row
				if k != i {
					excludes(&cell, i, j, k, j)
				}
				// No one in the same up-right diagonal
				if ll := k - i + j; ll >= 0 && ll < n && k != i {
					excludes(&cell, i, j, k, ll)
				}
				// No one in the same down-right diagonal
				if ll := i + j - k; ll >= 0 && ll < n && k != i {
					excludes(&cell, i, j, k, ll)
				}
			}
			b.Assign(&queen, b.And(queen, cell))
			b.Dereference(cell)
		}
	}
	return queen
}
