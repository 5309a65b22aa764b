package pbsl

import "math"

// MaxHeight bounds the tallest tower any node — including the sentinels —
// may grow to. 32 levels comfortably covers skip lists up to billions of
// elements: under Geometric(1/2), P(height > 32) is astronomically small.
// The teacher's own skip list used the same constant for the same reason.
const MaxHeight = 32

// Key is the type of value this skip list orders. MinKey and MaxKey are
// reserved for the left/right sentinels; user keys must lie strictly
// between them.
type Key = uint32

const (
	MinKey Key = 0
	MaxKey Key = math.MaxUint32
)

// Node is one key present in the set, together with its per-level forward
// links. Next, Height and Key are the only fields meaningful outside a
// merge; prevKey/newPrev/newNext/subtreeSize are scratch used only while a
// merge or layer materialization is in progress. newPrev and newNext are nil
// outside a merge; prevKey and subtreeSize are not cleared afterwards and
// keep whatever the last build, merge or layer materialization wrote.
type Node struct {
	key    Key
	height int
	next   []*Node

	prevKey     []Key
	newPrev     []*Node
	newNext     []*Node
	subtreeSize []int
}

// Key returns the key stored at this node. Immutable after construction.
func (n *Node) Key() Key { return n.key }

// Height returns the number of levels this node's tower occupies.
// Immutable after construction for every node except the sentinels, which
// grow as the list's height is coerced upward (see coerceHeightAtLeast).
func (n *Node) Height() int { return n.height }

// Next returns this node's successor at the given level, or nil only for
// the right sentinel.
func (n *Node) Next(level int) *Node {
	return n.next[level]
}

// IsSentinel reports whether n is the left or right sentinel.
func (n *Node) IsSentinel() bool { return n.isLeftSentinel() || n.isRightSentinel() }

func (n *Node) isLeftSentinel() bool  { return n.key == MinKey }
func (n *Node) isRightSentinel() bool { return n.key == MaxKey }
