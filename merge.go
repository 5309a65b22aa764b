package pbsl

import "github.com/wizenheimer/pbsl/internal/parallel"

// merge splices batch, a freshly built but not-yet-linked node sequence of
// height batchHeight, into sl. It implements §4.5's seven phases: height
// coercion, critical-level selection, critical-layer materialization,
// direct parallel merging of every level above the critical one, then
// locating each batch node's predecessor in the critical layer and staging
// + committing its links at every level at or below it.
//
// Every level above the critical level is merged directly because both
// sides already hold every node that will ever appear there; every level at
// or below it is instead filled by having each new node descend from its
// critical-layer predecessor, the same technique a sequential skip list
// insert uses to find per-level predecessors, parallelized across the whole
// batch at once.
func (sl *SkipList) merge(batch []*Node, batchHeight int) {
	sl.coerceHeightAtLeast(batchHeight)
	critLevel := sl.left.height - batchHeight
	critLayer := sl.getLayer(critLevel)

	sl.mergeHigherLevels(critLayer, batch, critLevel)
	sl.mergeLowerLevels(critLayer, batch, critLevel)
}

// mergeHigherLevels walks every level above critLevel, restricting both
// sides to the nodes tall enough to reach it and merging them directly. It
// stops as soon as no batch node reaches a level: everything above that
// point already has no new nodes to insert.
func (sl *SkipList) mergeHigherLevels(left, right []*Node, critLevel int) {
	for level := critLevel + 1; level < sl.left.height; level++ {
		left = filterTallerThan(left, level, sl.cfg)
		right = filterTallerThan(right, level, sl.cfg)
		if len(right) == 0 {
			break
		}
		mergeLayer(left, right, level, sl.cfg)
	}
}

// mergeLayer merges two already-sorted node slices by key and relinks them
// at level.
func mergeLayer(left, right []*Node, level int, cfg Config) {
	order := parallel.Merge(left, right, cfg.popts(), func(a, b *Node) bool { return a.key < b.key })
	fillLinks(order, level, cfg)
}

// mergeLowerLevels fills in every level at or below critLevel: first
// locating, for each batch node, its immediate predecessor in the critical
// layer; then staging new_prev/new_next links by descending from that
// predecessor through every level the batch node occupies; then committing
// every staged link in parallel.
func (sl *SkipList) mergeLowerLevels(critLayer, batch []*Node, critLevel int) {
	starting := findStartingNodesInCritLayer(critLayer, batch, sl.cfg)

	parallel.ForEach(len(batch), sl.cfg.popts(), func(i int) {
		prepareInsert(starting[i], critLevel, batch[i])
	})

	parallel.ForEach(len(batch), sl.cfg.popts(), func(i int) {
		node := batch[i]
		parallel.ForEach(node.height, sl.cfg.popts(), func(level int) {
			if node.newPrev[level] != nil {
				node.newPrev[level].next[level] = node
				node.newPrev[level] = nil
			}
			if node.newNext[level] != nil {
				node.next[level] = node.newNext[level]
				node.newNext[level] = nil
			}
		})
	})
}

// taggedNode labels a node with which side of a merge it came from, so the
// merged order can be told apart afterward without a second pass.
type taggedNode struct {
	node  *Node
	isNew bool
}

// findStartingNodesInCritLayer returns, for each batch node in order, the
// critical-layer node immediately preceding it by key. It works by merging
// both sides tagged with their origin, prefix-summing how many old
// (critical-layer) nodes precede each position, then keeping only the
// counts landing on new (batch) positions — the same count-then-copy shape
// used throughout this package. Every batch node has at least one critical-
// layer predecessor because the left sentinel, with the smallest possible
// key, always belongs to the critical layer.
func findStartingNodesInCritLayer(critLayer, batch []*Node, cfg Config) []*Node {
	opts := cfg.popts()

	old := parallel.Map(critLayer, opts, func(n *Node) taggedNode { return taggedNode{n, false} })
	fresh := parallel.Map(batch, opts, func(n *Node) taggedNode { return taggedNode{n, true} })
	merged := parallel.Merge(old, fresh, opts, func(a, b taggedNode) bool { return a.node.key < b.node.key })

	oldCounts := parallel.Map(merged, opts, func(t taggedNode) int {
		if t.isNew {
			return 0
		}
		return 1
	})
	precedingOldCount, _ := parallel.ScanInts(oldCounts, opts)

	positions := make([]int, len(merged))
	for i := range positions {
		positions[i] = i
	}
	newPositions := parallel.Filter(positions, opts, func(i int) bool { return merged[i].isNew })

	return parallel.Map(newPositions, opts, func(i int) *Node {
		return critLayer[precedingOldCount[i]-1]
	})
}

// prepareInsert stages newNode's links at every level from level down to 0,
// starting the search from node: a node already known to precede newNode at
// that starting level. At each level where newNode's tower reaches,
// newNode's new predecessor is recorded if node's key fits between
// newNode's recorded predecessor key and newNode itself, and likewise for
// its successor; then the search descends one level and advances node
// forward until it again immediately precedes newNode, exactly the way a
// sequential skip list search locates per-level predecessors.
func prepareInsert(node *Node, level int, newNode *Node) {
	for {
		if newNode.height > level {
			if node.key >= newNode.prevKey[level] {
				newNode.newPrev[level] = node
			}
			if newNode.next[level] == nil || newNode.next[level].key > node.next[level].key {
				newNode.newNext[level] = node.next[level]
			}
		}
		if level == 0 {
			break
		}
		level--
		for node.next[level].key < newNode.key {
			node = node.next[level]
		}
	}
}
