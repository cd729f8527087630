// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

import (
	"fmt"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// Compose returns the result of substituting, in n, every variable i by the
// function repl[i], simultaneously. Variables with an index greater or equal
// to len(repl), and variables i such that repl[i] is Ithvar(i), are left
// unchanged. The length of repl must not exceed Varnum.
func (b *BDD) Compose(n Node, repl []Node) Node {
	b.checkptr(n)
	if len(repl) > int(b.varnum) {
		b.fail(ErrUnknownVariable, "replacement vector of length %d (varnum is %d)", len(repl), b.varnum)
	}
	for _, r := range repl {
		b.checkptr(r)
	}
	b.initref()
	return b.composetop(n, repl)
}

// composetop is the entry point of all substitutions. It normalizes the vector
// and checks the compose cache before starting the recursion.
func (b *BDD) composetop(n Node, repl []Node) Node {
	last := len(repl) - 1
	for last >= 0 && repl[last] == b.varset[last][0] {
		last--
	}
	if last < 0 || n < 2 {
		return n
	}
	repl = repl[:last+1]
	cached, hit, h := b.composecache.lookup(n, repl)
	if hit {
		return cached
	}
	b.pushref(n)
	for _, r := range repl {
		b.pushref(r)
	}
	b.volatilecache.reset()
	res := b.compose(n, repl, int32(last))
	b.popref(len(repl) + 1)
	b.composecache.put(h, n, repl, res)
	return res
}

func (b *BDD) compose(n Node, repl []Node, last int32) Node {
	level := b.level(n)
	if level > last {
		return n
	}
	cached, hit, h := b.volatilecache.lookup(uint64(n), 0)
	if hit {
		return Node(cached)
	}
	var res Node
	switch r := repl[level]; r {
	case True:
		res = b.compose(b.high(n), repl, last)
	case False:
		res = b.compose(b.low(n), repl, last)
	default:
		low := b.pushref(b.compose(b.low(n), repl, last))
		high := b.pushref(b.compose(b.high(n), repl, last))
		if r == b.varset[level][0] && level < b.level(low) && level < b.level(high) {
			res = b.makenode(level, low, high)
		} else {
			res = b.ite(r, high, low)
		}
		b.popref(2)
	}
	b.volatilecache.put(h, uint64(n), 0, uint64(res))
	return res
}

// Restrict returns the cofactor of n where each variable v in vars is replaced
// by the constant values.Test(v).
func (b *BDD) Restrict(n Node, vars, values *bitset.BitSet) Node {
	b.checkptr(n)
	if vars == nil {
		return n
	}
	repl := b.identity(vars)
	for v, ok := vars.NextSet(0); ok; v, ok = vars.NextSet(v + 1) {
		if values != nil && values.Test(v) {
			repl[v] = True
		} else {
			repl[v] = False
		}
	}
	b.initref()
	return b.composetop(n, repl)
}

// identity returns a replacement vector that maps every variable up to the
// last one in vars to itself.
func (b *BDD) identity(vars *bitset.BitSet) []Node {
	size := 0
	if vars != nil {
		for v, ok := vars.NextSet(0); ok; v, ok = vars.NextSet(v + 1) {
			if v >= uint(b.varnum) {
				b.fail(ErrUnknownVariable, "variable %d (varnum is %d)", v, b.varnum)
			}
			size = int(v) + 1
		}
	}
	repl := make([]Node, size)
	for k := range repl {
		repl[k] = b.varset[k][0]
	}
	return repl
}

// ************************************************************

// Replacer is an association list used to rename variables in a BDD node. See
// NewReplacer.
type Replacer struct {
	image []int // map old variables to new variables
	last  int   // last variable that is renamed, -1 if none
}

func (r *Replacer) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "replacer(last: %d)[", r.last)
	first := true
	for k, v := range r.image {
		if k != v {
			if !first {
				sb.WriteString(", ")
			}
			first = false
			fmt.Fprintf(&sb, "%d<-%d", k, v)
		}
	}
	sb.WriteString("]")
	return sb.String()
}

// NewReplacer returns a Replacer for substituting variable oldvars[k] with
// newvars[k]. We return an error if the two slices do not have the same length
// or if we find the same index twice in oldvars. All values must be in
// [0..Varnum). Renamings are simultaneous, so a Replacer can swap two
// variables.
func (b *BDD) NewReplacer(oldvars []int, newvars []int) (*Replacer, error) {
	if len(oldvars) != len(newvars) {
		return nil, fmt.Errorf("%w: unmatched length of slices (%d and %d)", ErrUnknownVariable, len(oldvars), len(newvars))
	}
	varnum := b.Varnum()
	res := &Replacer{image: make([]int, varnum), last: -1}
	for k := range res.image {
		res.image[k] = k
	}
	seen := make([]bool, varnum)
	for k, v := range oldvars {
		if v < 0 || v >= varnum {
			return nil, fmt.Errorf("%w: invalid variable in oldvars (%d)", ErrUnknownVariable, v)
		}
		if newvars[k] < 0 || newvars[k] >= varnum {
			return nil, fmt.Errorf("%w: invalid variable in newvars (%d)", ErrUnknownVariable, newvars[k])
		}
		if seen[v] {
			return nil, fmt.Errorf("%w: duplicate variable (%d) in oldvars", ErrUnknownVariable, v)
		}
		seen[v] = true
		res.image[v] = newvars[k]
		if v > res.last && newvars[k] != v {
			res.last = v
		}
	}
	return res, nil
}

// Replace takes a Replacer and computes the result of n after replacing old
// variables with new ones. See type Replacer.
func (b *BDD) Replace(n Node, r *Replacer) Node {
	b.checkptr(n)
	repl := make([]Node, r.last+1)
	for k := range repl {
		repl[k] = b.varset[r.image[k]][0]
	}
	b.initref()
	return b.composetop(n, repl)
}
