// Package pbsl implements a batch-parallel skip list: an ordered set of
// uint32 keys supporting bulk construction from a sorted sequence and bulk
// insertion of another sorted sequence. Insertion exploits fork/join
// parallelism (internal/parallel) so throughput scales with the number of
// worker threads; the hard engineering is the parallel merge algorithm in
// merge.go, which splices a batch of new nodes into an existing skip list
// while preserving every per-level linked-list invariant, without locks,
// in a deterministic number of parallel phases.
//
// No point lookup, deletion, or range query is exposed: the public surface
// is exactly bulk construction and bulk insertion, matching the library
// this package evolved from.
package pbsl

import (
	"log/slog"
	"sync/atomic"
)

// SkipList is an ordered set of Keys represented by two sentinels — left
// (MinKey) and right (MaxKey) — each with a tower as tall as the list's
// current height. See node.go for the per-node invariants.
type SkipList struct {
	left  *Node
	right *Node
	cfg   Config

	// merging implements the QUIESCENT/MERGING state machine of §4.5: a
	// skip list in MERGING state rejects every other public operation.
	merging atomic.Bool
}

// FromOrderedKeys constructs a SkipList from a nonempty, strictly
// increasing sequence of keys, using DefaultConfig's parallelism settings.
func FromOrderedKeys(keys []Key) *SkipList {
	return FromOrderedKeysWithConfig(keys, DefaultConfig())
}

// FromOrderedKeysWithConfig is FromOrderedKeys with explicit worker-count
// and sequential-cutoff tuning — mainly useful for tests that want
// deterministic fan-out on small inputs.
func FromOrderedKeysWithConfig(keys []Key, cfg Config) *SkipList {
	validateKeys(keys)
	all, _ := buildNodes(keys, cfg, true)
	slog.Debug("pbsl: built skip list", "keys", len(keys), "height", all[0].height)
	return &SkipList{left: all[0], right: all[len(all)-1], cfg: cfg}
}

// InsertOrdered merges a nonempty, strictly increasing sequence of keys,
// disjoint from the current set, into sl. See merge.go for the seven-phase
// algorithm.
func (sl *SkipList) InsertOrdered(keys []Key) {
	validateKeys(keys)
	sl.beginMerge()
	defer sl.endMerge()

	batch, batchHeight := buildNodes(keys, sl.cfg, false)
	slog.Debug("pbsl: merging batch", "keys", len(keys), "batchHeight", batchHeight, "targetHeight", sl.left.height)
	sl.merge(batch, batchHeight)
}

// Height returns the list's current height: the maximum tower height of
// any node currently present.
func (sl *SkipList) Height() int {
	sl.checkQuiescent()
	return sl.left.height
}

// IsEmpty reports whether the set contains no keys besides the sentinels.
func (sl *SkipList) IsEmpty() bool {
	sl.checkQuiescent()
	return sl.left.next[0] == sl.right
}

// DebugGetNodes walks level (default 0) from the left sentinel to the
// right sentinel and returns every node visited, sentinels included. It
// exists for tests: verifying DebugGetNodes(level) against GetLayer(level)
// is testable property 7.
func (sl *SkipList) DebugGetNodes(level ...int) []*Node {
	sl.checkQuiescent()
	lvl := 0
	if len(level) > 0 {
		lvl = level[0]
	}
	invariant(lvl >= 0 && lvl < sl.left.height, "DebugGetNodes: level %d out of range [0,%d)", lvl, sl.left.height)

	var nodes []*Node
	for n := sl.left; n != nil; n = n.next[lvl] {
		nodes = append(nodes, n)
	}
	return nodes
}

// Close releases every node reachable from the left sentinel back to the
// size-classed pool, level 0 left-to-right, per §3's destruction contract.
// After Close, sl must not be used again.
func (sl *SkipList) Close() {
	sl.checkQuiescent()
	for n := sl.left; n != nil; {
		next := n.next[0]
		freeNode(n)
		n = next
	}
	sl.left, sl.right = nil, nil
}

func (sl *SkipList) beginMerge() {
	if !sl.merging.CompareAndSwap(false, true) {
		panic(ErrMerging)
	}
}

func (sl *SkipList) endMerge() {
	sl.merging.Store(false)
}

func (sl *SkipList) checkQuiescent() {
	if sl.merging.Load() {
		panic(ErrMerging)
	}
}

// coerceHeightAtLeast raises the list's height to at least minHeight by
// growing both sentinels' towers; no other node is touched. New left
// sentinel levels point directly at the right sentinel (there is nothing
// between them yet at those levels); new right sentinel levels stay nil.
func (sl *SkipList) coerceHeightAtLeast(minHeight int) {
	if sl.left.height >= minHeight {
		return
	}
	growSentinelHeight(sl.left, minHeight, sl.right)
	growSentinelHeight(sl.right, minHeight, nil)
}
