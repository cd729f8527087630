// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

// IfThenElse, short for if-then-else operator, computes the BDD for the
// expression [(f /\ g) \/ (not f /\ h)] more efficiently than doing the three
// operations separately.
func (b *BDD) IfThenElse(f, g, h Node) Node {
	b.checkptr(f)
	b.checkptr(g)
	b.checkptr(h)
	b.initref()
	b.pushref(f)
	b.pushref(g)
	b.pushref(h)
	res := b.ite(f, g, h)
	b.popref(3)
	return res
}

// itelow returns p if p is strictly higher than q or r, otherwise it returns
// p.low. This is used in function ite to know which node to follow: we always
// follow the smallest(s) nodes.
func (b *BDD) itelow(p, q, r int32, n Node) Node {
	if (p > q) || (p > r) {
		return n
	}
	return b.low(n)
}

func (b *BDD) itehigh(p, q, r int32, n Node) Node {
	if (p > q) || (p > r) {
		return n
	}
	return b.high(n)
}

// min3 returns the smallest value between p, q and r. This is used in function
// ite to compute the smallest level.
func min3(p, q, r int32) int32 {
	if p <= q {
		if p <= r { // p <= q && p <= r
			return p
		}
		return r // r < p <= q
	}
	if q <= r { // q < p && q <= r
		return q
	}
	return r // r < q < p
}

func (b *BDD) ite(f, g, h Node) Node {
	switch {
	case f == True:
		return g
	case f == False:
		return h
	case g == h:
		return g
	case (g == True) && (h == False):
		return f
	case (g == False) && (h == True):
		return b.not(f)
	case h == False || f == h:
		return b.apply(f, g, OPand)
	case g == True || f == g:
		return b.apply(f, h, OPor)
	case h == True:
		return b.apply(f, g, OPimp)
	}
	key := packpair(f, g)
	tag := uint64(uint32(h))<<8 | cacheidITE
	cached, hit, hash := b.ternarycache.lookup(key, tag)
	if hit {
		return Node(cached)
	}
	p := b.level(f)
	q := b.level(g)
	r := b.level(h)
	low := b.pushref(b.ite(b.itelow(p, q, r, f), b.itelow(q, p, r, g), b.itelow(r, p, q, h)))
	high := b.pushref(b.ite(b.itehigh(p, q, r, f), b.itehigh(q, p, r, g), b.itehigh(r, p, q, h)))
	res := b.makenode(min3(p, q, r), low, high)
	b.popref(2)
	b.ternarycache.put(hash, key, tag, uint64(res))
	return res
}
