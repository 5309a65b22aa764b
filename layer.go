package pbsl

import "github.com/wizenheimer/pbsl/internal/parallel"

// GetLayer returns, left to right, every node present at level. It never
// walks level's linked list directly — that would serialize an otherwise
// parallel algorithm — and instead uses the two-phase divide-and-conquer of
// §4.4: count each node's descendant span at level first, then copy into a
// contiguous slice using those spans as destination offsets.
//
// GetLayer is a read: calling it concurrently with InsertOrdered is the same
// contract violation as calling any other public method during a merge.
func (sl *SkipList) GetLayer(level int) []*Node {
	sl.checkQuiescent()
	return sl.getLayer(level)
}

// getLayer is GetLayer without the quiescence check, for use by merge
// itself, which legitimately calls it while sl.merging is already held.
func (sl *SkipList) getLayer(level int) []*Node {
	invariant(level >= 0 && level < sl.left.height, "GetLayer: level %d out of range [0,%d)", level, sl.left.height)

	total := countDescendantsAtLevel(sl.left, sl.left.height-1, level, sl.cfg.cutoff())
	out := make([]*Node, total)
	copyLayer(sl.left, sl.left.height-1, 0, level, out, sl.cfg)
	return out
}

// countDescendantsAtLevel walks the skip list's internal tower structure top
// down, counting how many nodes appear at level within the span reachable
// from node at height index k. Reaching a node at level only requires
// descending through each node's own towers, so the traversal is O(S) total
// work across the whole call tree rather than O(S*H) — the same shape the
// layer holds once materialized. It also stamps node.subtreeSize[k] so
// copyLayer can recover identical spans without recomputing them.
//
// The count isn't known in advance the way a slice length is, so there's
// nothing to compare against cutoff directly the way maxNodeHeight does.
// forkBudget stands in for it: it starts at cutoff and halves across every
// fork, so forking stops — falling back to plain sequential recursive calls,
// no goroutine — once the call tree has already fanned out roughly cutoff-many
// ways, bounding the number of goroutines spawned instead of leaving it
// unconditional.
func countDescendantsAtLevel(node *Node, k, level, forkBudget int) int {
	right := node.next[k]
	goRight := right != nil && right.height <= k+1
	goDown := k > level

	here := 0
	if !goDown {
		here = 1
	}

	var rightSize, downSize int
	switch {
	case goRight && goDown && forkBudget > 0:
		half := forkBudget / 2
		parallel.TwoWay(
			func() { rightSize = countDescendantsAtLevel(right, k, level, half) },
			func() { downSize = countDescendantsAtLevel(node, k-1, level, half) },
		)
	case goRight && goDown:
		rightSize = countDescendantsAtLevel(right, k, level, 0)
		downSize = countDescendantsAtLevel(node, k-1, level, 0)
	case goRight:
		rightSize = countDescendantsAtLevel(right, k, level, forkBudget)
	case goDown:
		downSize = countDescendantsAtLevel(node, k-1, level, forkBudget)
	}

	node.subtreeSize[k] = here + rightSize + downSize
	return node.subtreeSize[k]
}

// copyLayer mirrors countDescendantsAtLevel's recursion, writing node into
// out once it reaches level and using the subtreeSize spans stamped by the
// count phase to compute each branch's destination offset with no
// synchronization between them.
//
// Unlike the count phase, copyLayer runs after every node's subtreeSize is
// already known, so it can cut off exactly the way maxNodeHeight does: fork
// only while the remaining span is still bigger than cfg's cutoff.
func copyLayer(node *Node, k, offset, level int, out []*Node, cfg Config) {
	right := node.next[k]
	goRight := right != nil && right.height <= k+1
	goDown := k > level

	if !goDown {
		out[offset] = node
	}

	switch {
	case goRight && goDown && node.subtreeSize[k] > cfg.cutoff():
		parallel.TwoWay(
			func() { copyLayer(right, k, offset+node.subtreeSize[k]-right.subtreeSize[k], level, out, cfg) },
			func() { copyLayer(node, k-1, offset, level, out, cfg) },
		)
	case goRight && goDown:
		copyLayer(right, k, offset+node.subtreeSize[k]-right.subtreeSize[k], level, out, cfg)
		copyLayer(node, k-1, offset, level, out, cfg)
	case goRight:
		copyLayer(right, k, offset+node.subtreeSize[k]-right.subtreeSize[k], level, out, cfg)
	case goDown:
		copyLayer(node, k-1, offset, level, out, cfg)
	}
}
