// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package problems

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/ltlkit/bdd"
)

// Milner computes the reachable states of a system composed of n cyclers,
// using a BDD with 6*n variables. For this system, we have an analytical
// formula for the size of the state space, n * 2^(4n+1). With fast set, the
// image of the transition relation is computed with AndExist, otherwise with
// And followed by Exists. The result is referenced.
func Milner(b *bdd.BDD, n int, fast bool) (bdd.Node, error) {
	ensure(b, 6*n)
	c := make([]bdd.Node, n)
	cp := make([]bdd.Node, n)
	t := make([]bdd.Node, n)
	tp := make([]bdd.Node, n)
	h := make([]bdd.Node, n)
	hp := make([]bdd.Node, n)
	for i := 0; i < n; i++ {
		c[i] = b.Ithvar(i * 6)
		cp[i] = b.Ithvar(i*6 + 1)
		t[i] = b.Ithvar(i*6 + 2)
		tp[i] = b.Ithvar(i*6 + 3)
		h[i] = b.Ithvar(i*6 + 4)
		hp[i] = b.Ithvar(i*6 + 5)
	}

	nvar := make([]int, n*3)
	pvar := make([]int, n*3)
	normvar := bitset.New(uint(6 * n))
	for i := 0; i < n*3; i++ {
		nvar[i] = i * 2   // normal variables
		pvar[i] = i*2 + 1 // primed variables
		normvar.Set(uint(nvar[i]))
	}
	replacer, err := b.NewReplacer(pvar, nvar)
	if err != nil {
		return bdd.False, err
	}

	// We create a BDD for the initial state of Milner's cyclers.
	init := []bdd.Node{c[0], b.NIthvar(4), b.NIthvar(2)}
	for i := 1; i < n; i++ {
		init = append(init, b.NIthvar(i*6), b.NIthvar(i*6+4), b.NIthvar(i*6+2))
	}
	I := b.Reference(b.AndAll(init...))

	// A builds a BDD expressing that all other variables than 'z' is unchanged.
	// The result is referenced.
	A := func(x, y []bdd.Node, z int) bdd.Node {
		res := b.True()
		for i := 0; i < n; i++ {
			if i != z {
				b.Assign(&res, b.And(res, b.Equivalence(x[i], y[i])))
			}
		}
		return res
	}
	// conj returns the conjunction of literals and of the referenced nodes
	// in frame, that are dereferenced.
	conj := func(lits []bdd.Node, frame ...bdd.Node) bdd.Node {
		res := b.Reference(b.AndAll(append(lits, frame...)...))
		for _, f := range frame {
			b.Dereference(f)
		}
		return res
	}

	// Now we compute the transition relation
	T := b.False() // The monolithic transition relation
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		P1 := conj([]bdd.Node{c[i], b.NIthvar(i*6 + 1), tp[i], b.NIthvar(i*6 + 2), hp[i]},
			A(c, cp, i), A(t, tp, i), A(h, hp, i))
		P2 := conj([]bdd.Node{h[i], b.NIthvar(i*6 + 5), cp[j]},
			A(c, cp, j), A(h, hp, i), A(t, tp, n))
		E := conj([]bdd.Node{t[i], b.NIthvar(i*6 + 3)},
			A(t, tp, i), A(h, hp, n), A(c, cp, n))
		b.Assign(&T, b.OrAll(T, P1, P2, E))
		b.Dereference(P1)
		b.Dereference(P2)
		b.Dereference(E)
	}

	// We compute the reachable states.
	R := I // Reachable state space
	for {
		prev := R
		var img bdd.Node
		if fast {
			img = b.Reference(b.AndExist(R, T, normvar))
		} else {
			tmp := b.Reference(b.And(R, T))
			img = b.Reference(b.Exists(tmp, normvar))
			b.Dereference(tmp)
		}
		next := b.Reference(b.Replace(img, replacer))
		b.Dereference(img)
		b.Assign(&R, b.Or(next, R))
		b.Dereference(next)
		if prev == R {
			break
		}
	}
	b.Dereference(T)
	return R, nil
}
