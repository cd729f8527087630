// Copyright 2021. Silvano DAL ZILIO.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy of
// the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations under
// the License.

package bdd

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// ************************************************************

// cacheEntry is a unit of information stored in an operation cache. The key of
// an entry is made of two words, a and b, packing the operands and the kind of
// operation. An entry is empty when a is equal to _EMPTY; since node indexes
// fit in 31 bits this value never occurs in a real key.
type cacheEntry struct {
	a   uint64
	b   uint64
	res uint64
}

const _EMPTY = ^uint64(0)

// opcache is a set-associative cache: the table is divided in buckets of ways
// consecutive entries, ordered from the most to the least recently used one.
type opcache struct {
	name    string
	cfg     CacheConfig
	table   []cacheEntry
	buckets int
	hits    int
	misses  int
}

func newcache(name string, cfg CacheConfig, capacity int) *opcache {
	c := &opcache{name: name, cfg: cfg}
	c.resize(capacity)
	return c
}

// size returns the number of entries needed for a node table with the given
// capacity.
func (c *opcache) size(capacity int) int {
	size := 0
	if c.cfg.Divisor > 0 {
		size = capacity / c.cfg.Divisor
	}
	return max(size, c.cfg.MinSize, 1)
}

// resize adapts the cache to the capacity of the node table. All the entries
// are lost.
func (c *opcache) resize(capacity int) {
	ways := max(c.cfg.Ways, 1)
	buckets := primeGte((c.size(capacity) + ways - 1) / ways)
	if buckets != c.buckets {
		c.buckets = buckets
		c.table = make([]cacheEntry, buckets*ways)
	}
	c.reset()
}

func (c *opcache) reset() {
	for k := range c.table {
		c.table[k].a = _EMPTY
	}
}

// lookup searches for the entry with key (a, b). It returns the hash of the key,
// that should be used in a subsequent call to put when there is a miss. A hit
// moves the entry to the front of its bucket.
func (c *opcache) lookup(a, b uint64) (uint64, bool, uint64) {
	h := hashwords(a, b)
	ways := len(c.table) / c.buckets
	base := int(h%uint64(c.buckets)) * ways
	bucket := c.table[base : base+ways]
	for k := range bucket {
		e := bucket[k]
		if e.a == _EMPTY {
			break
		}
		if e.a == a && e.b == b {
			copy(bucket[1:k+1], bucket[:k])
			bucket[0] = e
			c.hits++
			return e.res, true, h
		}
	}
	c.misses++
	return 0, false, h
}

// put inserts an entry at the front of the bucket for hash h, evicting the
// least recently used entry if the bucket is full. The hash stays valid if the
// cache was resized since the call to lookup.
func (c *opcache) put(h uint64, a, b, res uint64) {
	ways := len(c.table) / c.buckets
	base := int(h%uint64(c.buckets)) * ways
	bucket := c.table[base : base+ways]
	copy(bucket[1:], bucket[:ways-1])
	bucket[0] = cacheEntry{a: a, b: b, res: res}
}

// ************************************************************

// composecache stores the result of top level calls to Compose. The key is the
// root node together with a copy of the replacement vector, truncated after
// the last variable that is not replaced by itself.
type composecache struct {
	cfg     CacheConfig
	table   []composeEntry
	buckets int
	hits    int
	misses  int
}

type composeEntry struct {
	n    Node
	repl []Node
	res  Node
}

func newcomposecache(cfg CacheConfig, capacity int) *composecache {
	c := &composecache{cfg: cfg}
	c.resize(capacity)
	return c
}

func (c *composecache) resize(capacity int) {
	size := max(c.cfg.MinSize, 1)
	if c.cfg.Divisor > 0 {
		size = max(size, capacity/c.cfg.Divisor)
	}
	ways := max(c.cfg.Ways, 1)
	buckets := primeGte((size + ways - 1) / ways)
	if buckets != c.buckets {
		c.buckets = buckets
		c.table = make([]composeEntry, buckets*ways)
	}
	c.reset()
}

func (c *composecache) reset() {
	for k := range c.table {
		c.table[k] = composeEntry{n: -1}
	}
}

func composehash(n Node, repl []Node) uint64 {
	h := mix64(uint64(uint32(n)))
	for _, r := range repl {
		h = mix64(h ^ uint64(uint32(r)))
	}
	return h
}

func (c *composecache) bucket(h uint64) []composeEntry {
	ways := len(c.table) / c.buckets
	base := int(h%uint64(c.buckets)) * ways
	return c.table[base : base+ways]
}

func (c *composecache) lookup(n Node, repl []Node) (Node, bool, uint64) {
	h := composehash(n, repl)
	bucket := c.bucket(h)
	for k := range bucket {
		e := bucket[k]
		if e.n == -1 {
			break
		}
		if e.n == n && equalNodes(e.repl, repl) {
			copy(bucket[1:k+1], bucket[:k])
			bucket[0] = e
			c.hits++
			return e.res, true, h
		}
	}
	c.misses++
	return 0, false, h
}

func (c *composecache) put(h uint64, n Node, repl []Node, res Node) {
	bucket := c.bucket(h)
	copy(bucket[1:], bucket[:len(bucket)-1])
	bucket[0] = composeEntry{n: n, repl: append([]Node(nil), repl...), res: res}
}

func equalNodes(a, b []Node) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if a[k] != b[k] {
			return false
		}
	}
	return true
}

// *************************************************************************
// Setup and shutdown

// Tags used to distinguish between the different operations sharing the binary
// and ternary caches. Binary operators use their Operator value.
const (
	cacheidEXIST   uint64 = 0x10
	cacheidIMPLIES uint64 = 0x11
	cacheidITE     uint64 = 0x0
	cacheidANDEX   uint64 = 0x1
)

func (b *BDD) cacheinit() {
	capacity := len(b.nodes)
	c := b.cfg.Caches
	b.unarycache = newcache("unary", c.Unary, capacity)
	b.binarycache = newcache("binary", c.Binary, capacity)
	b.ternarycache = newcache("ternary", c.Ternary, capacity)
	b.satcache = newcache("satcount", c.SatCount, capacity)
	b.volatilecache = newcache("volatile", c.Volatile, capacity)
	b.composecache = newcomposecache(c.Compose, capacity)
}

func (b *BDD) opcaches() []*opcache {
	return []*opcache{b.unarycache, b.binarycache, b.ternarycache, b.satcache, b.volatilecache}
}

func (b *BDD) cachereset() {
	for _, c := range b.opcaches() {
		c.reset()
	}
	b.composecache.reset()
}

func (b *BDD) cacheresize() {
	for _, c := range b.opcaches() {
		c.resize(len(b.nodes))
	}
	b.composecache.resize(len(b.nodes))
	b.log.Debug("caches resized",
		zap.Int("nodes", len(b.nodes)),
		zap.Int("binary", len(b.binarycache.table)),
		zap.Int("ternary", len(b.ternarycache.table)))
}

// ************************************************************

// packpair packs two nodes in a single cache word.
func packpair(l, r Node) uint64 {
	return uint64(uint32(l))<<32 | uint64(uint32(r))
}

// ************************************************************

// CacheStat stores status information about cache usage.
type CacheStat struct {
	UniqueAccess int // accesses to the unique node table
	UniqueChain  int // iterations through the collision chains in the unique node table
	UniqueHit    int // entries actually found in the unique node table
	UniqueMiss   int // entries not found in the unique node table
	Caches       []CacheKindStat
}

// CacheKindStat gives the size and the number of hits and misses of one
// operation cache.
type CacheKindStat struct {
	Name   string
	Size   int
	Hits   int
	Misses int
}

// CacheStats returns information about the use of the unique table and the
// operation caches since the creation of b.
func (b *BDD) CacheStats() CacheStat {
	res := CacheStat{
		UniqueAccess: b.uniqueAccess,
		UniqueChain:  b.uniqueChain,
		UniqueHit:    b.uniqueHit,
		UniqueMiss:   b.uniqueMiss,
	}
	for _, c := range b.opcaches() {
		res.Caches = append(res.Caches, CacheKindStat{Name: c.name, Size: len(c.table), Hits: c.hits, Misses: c.misses})
	}
	res.Caches = append(res.Caches, CacheKindStat{
		Name:   "compose",
		Size:   len(b.composecache.table),
		Hits:   b.composecache.hits,
		Misses: b.composecache.misses,
	})
	return res
}

// String prints information about the cache performance. The information
// contains the number of accesses to the unique node table, the number of times
// a node was (not) found there and how many times a hash chain had to
// traversed. Hit and miss count is also given for the operator caches.
func (c CacheStat) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Unique Access:  %d\n", c.UniqueAccess)
	fmt.Fprintf(&sb, "Unique Chain:   %d\n", c.UniqueChain)
	fmt.Fprintf(&sb, "Unique Hit:     %d\n", c.UniqueHit)
	fmt.Fprintf(&sb, "Unique Miss:    %d", c.UniqueMiss)
	for _, k := range c.Caches {
		fmt.Fprintf(&sb, "\n%-9s size: %-8d hits: %-10d miss: %d", k.Name, k.Size, k.Hits, k.Misses)
	}
	return sb.String()
}
