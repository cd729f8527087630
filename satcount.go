// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

import (
	"math"
	"math/big"
)

// SatCount computes the number of satisfying variable assignments for the
// function denoted by n, over all the Varnum variables. The result is a
// floating point number, so it is only an approximation when it exceeds 2^53
// (see SatCountExact).
func (b *BDD) SatCount(n Node) float64 {
	b.checkptr(n)
	return math.Ldexp(b.satcount(n), int(b.level(n)))
}

// satcount returns the number of solutions of n over the variables with a
// level greater or equal to the one of n.
func (b *BDD) satcount(n Node) float64 {
	if n < 2 {
		return float64(n)
	}
	cached, hit, h := b.satcache.lookup(uint64(n), 0)
	if hit {
		return math.Float64frombits(cached)
	}
	level := b.level(n)
	low := b.low(n)
	high := b.high(n)
	res := math.Ldexp(b.satcount(low), int(b.level(low)-level-1)) +
		math.Ldexp(b.satcount(high), int(b.level(high)-level-1))
	b.satcache.put(h, uint64(n), 0, math.Float64bits(res))
	return res
}

// SatCountExact computes the number of satisfying variable assignments for the
// function denoted by n. We return a result using arbitrary-precision
// arithmetic to avoid possible overflows.
func (b *BDD) SatCountExact(n Node) *big.Int {
	b.checkptr(n)
	res := big.NewInt(0)
	// We compute 2^level with a bit shift 1 << level
	res.SetBit(res, int(b.level(n)), 1)
	satc := make(map[Node]*big.Int)
	return res.Mul(res, b.satcountexact(n, satc))
}

func (b *BDD) satcountexact(n Node, satc map[Node]*big.Int) *big.Int {
	if n < 2 {
		return big.NewInt(int64(n))
	}
	// we use satc to memoize the value of satcount for each nodes
	res, ok := satc[n]
	if ok {
		return res
	}
	level := b.level(n)
	low := b.low(n)
	high := b.high(n)

	res = big.NewInt(0)
	two := big.NewInt(0)
	two.SetBit(two, int(b.level(low)-level-1), 1)
	res.Add(res, two.Mul(two, b.satcountexact(low, satc)))
	two = big.NewInt(0)
	two.SetBit(two, int(b.level(high)-level-1), 1)
	res.Add(res, two.Mul(two, b.satcountexact(high, satc)))
	satc[n] = res
	return res
}
