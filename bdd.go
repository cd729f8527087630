// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

import (
	"fmt"

	"go.uber.org/zap"
)

// BDD is the type of Binary Decision Diagrams. It owns a table of nodes,
// shared by all the Boolean functions built with it, together with the
// operation caches used by the algorithms.
//
// Nodes returned by an operation are not protected from garbage collection.
// Callers must use Reference (or Assign and Hold) on the nodes they want to keep
// across calls, and Dereference them when they are not needed anymore. A BDD is
// not safe for concurrent use.
type BDD struct {
	varnum   int32      // number of BDD variables
	varset   [][2]Node  // positive and negative node for each variable
	nodes    []bddNode  // node table; also stores the unique table
	freepos  int32      // first free node, 0 if none
	freenum  int        // number of free nodes
	produced int        // total number of new nodes ever produced
	refstack []Node     // internal node reference stack
	cfg      Config     // configuration of the table and caches
	log      *zap.Logger
	uniqueStat
	gcstat

	unarycache    *opcache
	binarycache   *opcache
	ternarycache  *opcache
	satcache      *opcache
	volatilecache *opcache
	composecache  *composecache
}

type uniqueStat struct {
	uniqueAccess int // accesses to the unique node table
	uniqueChain  int // iterations through the collision chains
	uniqueHit    int // entries actually found in the unique node table
	uniqueMiss   int // entries not found in the unique node table
}

// New returns a new BDD with varnum variables, numbered from 0 to varnum-1,
// configured using the default configuration modified by options. More
// variables can be added later with CreateVariable.
func New(varnum int, options ...Option) (*BDD, error) {
	cfg := DefaultConfig()
	for _, f := range options {
		f(&cfg)
	}
	return NewWithConfig(varnum, cfg)
}

// NewWithConfig returns a new BDD with varnum variables using configuration
// cfg, for instance a configuration obtained from LoadConfigFile.
func NewWithConfig(varnum int, cfg Config) (*BDD, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if varnum < 0 || varnum > int(_MAXVAR) {
		return nil, fmt.Errorf("%w: bad number of variables (%d)", ErrConfig, varnum)
	}
	need := 2*varnum + 2
	limit := _MAXNODESIZE
	if cfg.MaxNodeSize > 0 {
		limit = min(limit, cfg.MaxNodeSize)
	}
	size := primeGte(min(max(cfg.Nodesize, need), limit))
	if size > limit {
		size = primeLte(limit)
		if size < need {
			return nil, fmt.Errorf("%w: maxNodeSize (%d) too small for %d variables", ErrConfig, cfg.MaxNodeSize, varnum)
		}
	}
	b := &BDD{cfg: cfg, log: cfg.Logger}
	if b.log == nil {
		b.log = zap.NewNop()
	}
	b.nodes = make([]bddNode, size)
	for k := range b.nodes {
		b.nodes[k].low = -1
		b.nodes[k].next = int32(k + 1)
	}
	b.nodes[size-1].next = 0
	b.nodes[0] = bddNode{low: 0, high: 0, next: 0}
	b.nodes[1] = bddNode{low: 1, high: 1, next: 0}
	b.setrefcou(0, _MAXREFCOUNT)
	b.setrefcou(1, _MAXREFCOUNT)
	b.freepos = 2
	b.freenum = size - 2
	b.refstack = make([]Node, 0, 2*varnum+4)
	b.cacheinit()
	b.log.Debug("new bdd", zap.Int("nodes", size), zap.Int("varnum", varnum))
	for k := 0; k < varnum; k++ {
		b.createVariable()
	}
	return b, nil
}

// *************************************************************************

// makenode returns the node (level, low, high), building it if it does not
// already exist in the unique table. The reduction rule means that the result
// is low when low and high are equal. A call to makenode may trigger a garbage
// collection, so callers must protect their intermediate results on the
// refstack; low and high are protected by makenode itself.
func (b *BDD) makenode(level int32, low, high Node) Node {
	if _DEBUG {
		if level < 0 || level >= b.varnum {
			b.fail(ErrUnknownVariable, "makenode with level %d", level)
		}
		if b.isfree(low) || b.isfree(high) {
			b.fail(ErrInvalidNode, "makenode(%d, %d, %d) uses a free node", level, low, high)
		}
		if level >= b.level(low) || level >= b.level(high) {
			b.fail(ErrOrdering, "makenode(%d, %d[%d], %d[%d])", level, low, b.level(low), high, b.level(high))
		}
	}
	// check whether children are equal, in which case we can skip the node
	if low == high {
		return low
	}
	b.uniqueAccess++
	// otherwise try to find an existing node using the unique table
	hash := b.nodehash(level, low, high)
	res := Node(b.nodes[hash].hash)
	for res != 0 {
		if b.level(res) == level && b.low(res) == low && b.high(res) == high {
			b.uniqueHit++
			return res
		}
		res = Node(b.nodes[res].next)
		b.uniqueChain++
	}
	b.uniqueMiss++
	// If no existing node, we build one. If there is no available spot
	// (b.freepos == 0), we try garbage collection and, as a last resort,
	// resizing the BDD list.
	if b.freepos == 0 {
		b.pushref(low)
		b.pushref(high)
		b.grow()
		b.popref(2)
		if b.freepos == 0 {
			b.fail(ErrOutOfMemory, "no free node left in a table of %d nodes", len(b.nodes))
		}
		// the table may have been resized, so we recompute the hash
		hash = b.nodehash(level, low, high)
	}
	res = Node(b.freepos)
	b.freepos = b.nodes[res].next
	b.freenum--
	b.produced++
	b.nodes[res].meta = uint32(level)
	b.nodes[res].low = int32(low)
	b.nodes[res].high = int32(high)
	b.nodes[res].next = b.nodes[hash].hash
	b.nodes[hash].hash = int32(res)
	return res
}

// MakeNode returns the node with variable level, false branch low and true
// branch high. It panics with ErrOrdering if level is not strictly smaller
// than the variables of low and high.
func (b *BDD) MakeNode(level int, low, high Node) Node {
	b.checkvar(level)
	b.checkptr(low)
	b.checkptr(high)
	if int32(level) >= b.level(low) || int32(level) >= b.level(high) {
		b.fail(ErrOrdering, "MakeNode(%d, %d, %d)", level, low, high)
	}
	b.initref()
	return b.makenode(int32(level), low, high)
}

// *************************************************************************
// Accessors

// IsValid reports whether n is a node of b that has not been reclaimed.
func (b *BDD) IsValid(n Node) bool {
	if n < 0 || int(n) >= len(b.nodes) {
		return false
	}
	return n < 2 || !b.isfree(n)
}

// IsRoot reports whether n is one of the two constants.
func (b *BDD) IsRoot(n Node) bool {
	return n == False || n == True
}

// Label returns the variable (level) of node n. It panics if n is a
// constant.
func (b *BDD) Label(n Node) int {
	b.checkptr(n)
	if n < 2 {
		b.fail(ErrInvalidNode, "constant %d has no variable", n)
	}
	return int(b.level(n))
}

// Low returns the false branch of node n. It panics if n is a constant.
func (b *BDD) Low(n Node) Node {
	b.checkptr(n)
	if n < 2 {
		b.fail(ErrInvalidNode, "constant %d has no successor", n)
	}
	return b.low(n)
}

// High returns the true branch of node n. It panics if n is a constant.
func (b *BDD) High(n Node) Node {
	b.checkptr(n)
	if n < 2 {
		b.fail(ErrInvalidNode, "constant %d has no successor", n)
	}
	return b.high(n)
}

// Varnum returns the number of defined variables.
func (b *BDD) Varnum() int {
	return int(b.varnum)
}

// NodeCount returns the number of live nodes in the table, including the two
// constants.
func (b *BDD) NodeCount() int {
	return len(b.nodes) - b.freenum
}

// FreeCount returns the number of free slots in the node table.
func (b *BDD) FreeCount() int {
	return b.freenum
}

// Capacity returns the current size of the node table.
func (b *BDD) Capacity() int {
	return len(b.nodes)
}

// Config returns the configuration of b.
func (b *BDD) Config() Config {
	return b.cfg
}
