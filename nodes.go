// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

// Node is a reference to an element of a BDD. It is the index of a record in
// the node table of the BDD that created it and has no meaning outside of it.
type Node int32

const (
	// False is the constant function false.
	False Node = 0
	// True is the constant function true.
	True Node = 1
)

// bddNode is the record stored in the node table. The meta field packs the
// level of the node (21 bits), the mark bit used during traversals, and a
// saturating reference counter (10 bits).
//
// When a slot is unused, low is set to -1 and next is the index of the next
// free slot (0 if last). The hash field is not related to the node stored in
// the slot: it is the head of the collision chain of the unique table for the
// bucket with the same index.
type bddNode struct {
	meta uint32 // level | mark | refcou
	low  int32  // Reference to the false branch
	high int32  // Reference to the true branch
	hash int32  // Head of the collision chain for this bucket, 0 if empty
	next int32  // Next node in the collision chain, or next free slot
}

func (b *BDD) level(n Node) int32 {
	return int32(b.nodes[n].meta & uint32(_MAXVAR))
}

func (b *BDD) low(n Node) Node {
	return Node(b.nodes[n].low)
}

func (b *BDD) high(n Node) Node {
	return Node(b.nodes[n].high)
}

func (b *BDD) setlevel(n Node, level int32) {
	b.nodes[n].meta = (b.nodes[n].meta &^ uint32(_MAXVAR)) | uint32(level)
}

func (b *BDD) refcou(n Node) uint32 {
	return b.nodes[n].meta >> _REFSHIFT
}

func (b *BDD) setrefcou(n Node, r uint32) {
	b.nodes[n].meta = (b.nodes[n].meta &^ (_MAXREFCOUNT << _REFSHIFT)) | (r << _REFSHIFT)
}

func (b *BDD) ismarked(n Node) bool {
	return (b.nodes[n].meta & _MARK) != 0
}

func (b *BDD) marknode(n Node) {
	b.nodes[n].meta |= _MARK
}

func (b *BDD) unmarknode(n Node) {
	b.nodes[n].meta &^= _MARK
}

func (b *BDD) isfree(n Node) bool {
	return b.nodes[n].low == -1
}
