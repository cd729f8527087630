// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

import "math"

// _MINFREENODES is the minimal number of nodes (%) that has to be left after a
// garbage collect unless a resize should be done.
const _MINFREENODES int = 20

// _MAXVAR is the maximal number of levels in the BDD. We use only the first 21
// bits of the metadata word of a node for encoding levels (so also the max
// number of variables).
const _MAXVAR int32 = 0x1FFFFF

// _MARK is the bit used to mark nodes during a traversal. It sits just above
// the level bits.
const _MARK uint32 = 0x200000

// _REFSHIFT is the position of the reference counter in the metadata word.
const _REFSHIFT = 22

// _MAXREFCOUNT is the maximal value of the reference counter (10 bits). A node
// that reaches this value is saturated: it is never decremented nor collected.
// We also use it to stick nodes (like constants and variables) in the table.
const _MAXREFCOUNT uint32 = 0x3FF

// _DEFAULTMAXNODEINC is the default value for the maximal increase in the
// number of nodes during a resize. It is approx. one million nodes (1 048 576).
const _DEFAULTMAXNODEINC int = 1 << 20

// _MAXNODESIZE is the largest possible node table, since node indexes are
// stored on 31 bits.
const _MAXNODESIZE int = math.MaxInt32 - 1
