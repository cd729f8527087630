// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

// Hash functions. All of them are deterministic and do not allocate; the
// result is a full 64 bits value that callers reduce modulo the (prime) size
// of their table.

// mix64 is the finalizer of MurmurHash3. Every bit of k affects every bit of
// the result.
func mix64(k uint64) uint64 {
	k ^= k >> 33
	k *= 0xff51afd7ed558ccd
	k ^= k >> 33
	k *= 0xc4ceb9fe1a85ec53
	k ^= k >> 33
	return k
}

// mix32 is the 32 bits finalizer of MurmurHash3.
func mix32(k uint32) uint32 {
	k ^= k >> 16
	k *= 0x85ebca6b
	k ^= k >> 13
	k *= 0xc2b2ae35
	k ^= k >> 16
	return k
}

// _PAIR packs two 32 bits keys in a single word and mixes the result.
func _PAIR(a, b int32) uint64 {
	return mix64(uint64(uint32(a))<<32 | uint64(uint32(b)))
}

// _TRIPLE combines a third key with the hash of the first two.
func _TRIPLE(a, b, c int32) uint64 {
	return mix64(_PAIR(a, b) + uint64(mix32(uint32(c)))*0x9e3779b97f4a7c15)
}

// hashwords is used by the caches, that store their keys as two packed 64 bits
// words.
func hashwords(a, b uint64) uint64 {
	return mix64(a ^ mix64(b+0x9e3779b97f4a7c15))
}

// ************************************************************

// The hash function for nodes is #(level, low, high)

func (b *BDD) ptrhash(n Node) int {
	return b.nodehash(b.level(n), b.low(n), b.high(n))
}

func (b *BDD) nodehash(level int32, low, high Node) int {
	return int(_TRIPLE(level, int32(low), int32(high)) % uint64(len(b.nodes)))
}
