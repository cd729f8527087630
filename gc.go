// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

import (
	"go.uber.org/zap"
)

// gcstat stores status information about garbage collections. We use a stack
// (slice) of objects to record the sequence of GC during a computation.
type gcstat struct {
	history   []gcpoint // Snapshot of GC stats at each occurrence
	markstack []Node    // scratch stack used when marking nodes
}

type gcpoint struct {
	nodes     int // Total number of allocated nodes in the nodetable
	freenodes int // Number of free nodes in the nodetable before collection
	freed     int // Number of nodes reclaimed by the collection
}

// *************************************************************************

// Reference increases the reference count on node n and returns n so that
// calls can be easily chained together. Referenced nodes, and their
// successors, are never reclaimed by the garbage collector. The counter
// saturates: a node referenced too often stays in the table forever.
func (b *BDD) Reference(n Node) Node {
	b.checkptr(n)
	if n < 2 {
		return n
	}
	if r := b.refcou(n); r < _MAXREFCOUNT {
		b.setrefcou(n, r+1)
	}
	return n
}

// Dereference decreases the reference count on a node and returns n so that
// calls can be easily chained together. It has no effect on saturated nodes.
func (b *BDD) Dereference(n Node) Node {
	b.checkptr(n)
	if n < 2 {
		return n
	}
	r := b.refcou(n)
	if r == _MAXREFCOUNT {
		return n
	}
	if r == 0 {
		if _DEBUG {
			b.fail(ErrInvalidNode, "dereference of unreferenced node %d", n)
		}
		return n
	}
	b.setrefcou(n, r-1)
	return n
}

// ReferenceCount returns the reference count of node n, or -1 if n is
// saturated (this is the case of constants and variables).
func (b *BDD) ReferenceCount(n Node) int {
	b.checkptr(n)
	r := b.refcou(n)
	if r == _MAXREFCOUNT {
		return -1
	}
	return int(r)
}

// *************************************************************************

// GarbageCollect reclaims all the nodes that are not referenced, directly or
// through a referenced node. It returns the number of freed nodes.
func (b *BDD) GarbageCollect() int {
	b.initref()
	before := b.freenum
	b.gbc()
	return b.freenum - before
}

// Grow starts a garbage collection and resizes the node table if there are
// not enough free nodes left afterwards (see option Minfreenodes). It returns
// true if the size of the table changed.
func (b *BDD) Grow() bool {
	b.initref()
	return b.grow()
}

func (b *BDD) grow() bool {
	b.gbc()
	if b.freenum > 0 && (b.freenum*100)/len(b.nodes) > b.cfg.MinFreeNodes {
		return false
	}
	return b.noderesize()
}

// growth returns the percentage of nodes added to a table of the given size.
func (b *BDD) growth(size int) int {
	g := b.cfg.Growth
	switch {
	case size <= g.SmallTable:
		return g.Small
	case size >= g.LargeTable:
		return g.Large
	}
	return g.Small + (g.Large-g.Small)*(size-g.SmallTable)/(g.LargeTable-g.SmallTable)
}

// noderesize is used to extend the size of the node table. Nodes keep their
// index, so the result of ongoing computations stay valid, but we need to
// rehash every node and rebuild the list of free nodes.
func (b *BDD) noderesize() bool {
	oldsize := len(b.nodes)
	limit := _MAXNODESIZE
	if b.cfg.MaxNodeSize > 0 {
		limit = min(limit, b.cfg.MaxNodeSize)
	}
	if oldsize >= limit {
		b.log.Debug("cannot resize node table", zap.Int("size", oldsize), zap.Int("max", limit))
		return false
	}
	inc := max(oldsize*b.growth(oldsize)/100, 1)
	if b.cfg.MaxNodeIncrease > 0 && inc > b.cfg.MaxNodeIncrease {
		inc = b.cfg.MaxNodeIncrease
	}
	nodesize := primeLte(min(oldsize+inc, limit))
	if nodesize <= oldsize {
		// no prime in (oldsize, oldsize+inc], we take the next one
		nodesize = primeGte(oldsize + 1)
		if nodesize > limit {
			b.log.Debug("cannot resize node table", zap.Int("size", oldsize), zap.Int("max", limit))
			return false
		}
	}
	b.nodes = append(b.nodes, make([]bddNode, nodesize-oldsize)...)
	for n := oldsize; n < nodesize; n++ {
		b.nodes[n].low = -1
	}
	for n := range b.nodes {
		b.nodes[n].hash = 0
	}
	b.freepos = 0
	b.freenum = 0
	// we rehash live nodes and thread free ones. After this pass, b.freepos
	// points to the free node with the lowest index.
	for n := nodesize - 1; n > 1; n-- {
		if b.nodes[n].low != -1 {
			hash := b.ptrhash(Node(n))
			b.nodes[n].next = b.nodes[hash].hash
			b.nodes[hash].hash = int32(n)
		} else {
			b.nodes[n].next = b.freepos
			b.freepos = int32(n)
			b.freenum++
		}
	}
	b.log.Debug("node table resized", zap.Int("from", oldsize), zap.Int("to", nodesize), zap.Int("free", b.freenum))
	b.cacheresize()
	return true
}

// *************************************************************************

// gbc is the garbage collector called for reclaiming memory, inside a call to
// makenode, when there are no free positions available. Allocated nodes that
// are not reclaimed do not move.
func (b *BDD) gbc() {
	before := b.freenum
	b.log.Debug("starting GC", zap.Int("nodes", len(b.nodes)), zap.Int("free", b.freenum), zap.Int("refstack", len(b.refstack)))
	if _DEBUG {
		b.logTable()
	}
	// we mark the nodes in the refstack to avoid collecting them
	for _, r := range b.refstack {
		b.markfrom(r)
	}
	// we also protect nodes with a positive refcount (and therefore also the
	// ones with a MAXREFCOUNT, such has variables)
	for k := range b.nodes {
		if b.refcou(Node(k)) > 0 {
			b.markfrom(Node(k))
		}
		b.nodes[k].hash = 0
	}
	b.freepos = 0
	b.freenum = 0
	// we do a pass through the nodes list to update the hash chains and void
	// the unmarked nodes. After finishing this pass, b.freepos points to the
	// first free position in b.nodes, or it is 0 if we found none.
	for n := len(b.nodes) - 1; n > 1; n-- {
		if b.ismarked(Node(n)) && !b.isfree(Node(n)) {
			b.unmarknode(Node(n))
			hash := b.ptrhash(Node(n))
			b.nodes[n].next = b.nodes[hash].hash
			b.nodes[hash].hash = int32(n)
		} else {
			b.nodes[n].meta = 0
			b.nodes[n].low = -1
			b.nodes[n].high = 0
			b.nodes[n].next = b.freepos
			b.freepos = int32(n)
			b.freenum++
		}
	}
	// we also invalidate the caches
	b.cachereset()
	b.history = append(b.history, gcpoint{nodes: len(b.nodes), freenodes: before, freed: b.freenum - before})
	b.log.Debug("end GC", zap.Int("free", b.freenum), zap.Int("freed", b.freenum-before))
}

// *************************************************************************
// MARK / UNMARK

// markfrom marks all the nodes reachable from n. We use an explicit stack
// since BDDs can be deep enough to exhaust the goroutine stack.
func (b *BDD) markfrom(n Node) {
	if n < 2 || b.ismarked(n) || b.isfree(n) {
		return
	}
	b.marknode(n)
	stack := append(b.markstack[:0], n)
	for len(stack) > 0 {
		n = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, s := range [2]Node{b.low(n), b.high(n)} {
			if s >= 2 && !b.ismarked(s) {
				b.marknode(s)
				stack = append(stack, s)
			}
		}
	}
	b.markstack = stack[:0]
}

// unmarkfrom clears the mark bit on all the nodes reachable from n that are
// marked.
func (b *BDD) unmarkfrom(n Node) {
	if n < 2 || !b.ismarked(n) {
		return
	}
	b.unmarknode(n)
	stack := append(b.markstack[:0], n)
	for len(stack) > 0 {
		n = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, s := range [2]Node{b.low(n), b.high(n)} {
			if s >= 2 && b.ismarked(s) {
				b.unmarknode(s)
				stack = append(stack, s)
			}
		}
	}
	b.markstack = stack[:0]
}

// *************************************************************************
// private functions to manipulate the refstack; used to prevent nodes that are
// currently being built (e.g. transient nodes built during an apply) to be
// reclaimed during GC.

func (b *BDD) initref() {
	b.refstack = b.refstack[:0]
}

func (b *BDD) pushref(n Node) Node {
	b.refstack = append(b.refstack, n)
	return n
}

func (b *BDD) popref(a int) {
	b.refstack = b.refstack[:len(b.refstack)-a]
}
