package pbsl

import "sync"

// nodePool is size-classed by tower height (1..MaxHeight): a node's scratch
// slices are fixed to its height once allocated, so pooling per size class
// — rather than one shared pool — guarantees Get() always returns a node
// shaped for the request. This mirrors parlay::type_allocator<Node>'s
// size-class pooling without resorting to unsafe/arena tricks, which Go's
// GC-friendly sync.Pool makes unnecessary.
var nodePool [MaxHeight + 1]sync.Pool

func init() {
	for h := 1; h <= MaxHeight; h++ {
		height := h
		nodePool[height].New = func() any {
			return &Node{
				next:        make([]*Node, height),
				prevKey:     make([]Key, height),
				newPrev:     make([]*Node, height),
				newNext:     make([]*Node, height),
				subtreeSize: make([]int, height),
			}
		}
	}
}

// allocNode draws a node of the given height from the pool and resets it
// to represent key. This is the sole allocation path for every node this
// package creates, internal or sentinel.
func allocNode(key Key, height int) *Node {
	invariant(height >= 1 && height <= MaxHeight, "node height %d out of range [1,%d]", height, MaxHeight)
	n := nodePool[height].Get().(*Node)
	n.key = key
	n.height = height
	for i := 0; i < height; i++ {
		n.next[i] = nil
		n.prevKey[i] = 0
		n.newPrev[i] = nil
		n.newNext[i] = nil
		n.subtreeSize[i] = 0
	}
	return n
}

// freeNode returns n to its size class's pool. Called only by
// SkipList.Close, which owns every node reachable from the left sentinel.
func freeNode(n *Node) {
	nodePool[n.height].Put(n)
}

// growSentinelHeight raises a sentinel's tower to newHeight in place. Only
// sentinels are ever resized (§4.3's "Height coercion"); internal nodes are
// fixed-size for life. fillNext is the value every newly-added level's
// Next should hold: the right sentinel for the left sentinel's new levels,
// nil for the right sentinel's.
func growSentinelHeight(n *Node, newHeight int, fillNext *Node) {
	invariant(n.IsSentinel(), "growSentinelHeight called on a non-sentinel node")
	if newHeight <= n.height {
		return
	}
	for len(n.next) < newHeight {
		n.next = append(n.next, fillNext)
		n.prevKey = append(n.prevKey, 0)
		n.newPrev = append(n.newPrev, nil)
		n.newNext = append(n.newNext, nil)
		n.subtreeSize = append(n.subtreeSize, 0)
	}
	n.height = newHeight
}
