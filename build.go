package pbsl

import (
	"fmt"

	"github.com/wizenheimer/pbsl/internal/parallel"
)

// validateKeys checks the input contract shared by FromOrderedKeys and
// InsertOrdered: nonempty, strictly increasing, and disjoint from the
// reserved sentinel values. Per §7, contract violations are programmer
// errors — reported by panicking, never by a returned error.
func validateKeys(keys []Key) {
	assertf(len(keys) > 0, ErrEmptyKeys, "got 0 keys")

	prev := keys[0]
	if prev == MinKey || prev == MaxKey {
		panic(fmt.Errorf("%w: key %d at index 0", ErrReservedKey, prev))
	}
	for i := 1; i < len(keys); i++ {
		k := keys[i]
		if k == MinKey || k == MaxKey {
			panic(fmt.Errorf("%w: key %d at index %d", ErrReservedKey, k, i))
		}
		if k == prev {
			panic(fmt.Errorf("%w: key %d repeated at index %d", ErrDuplicateKey, k, i))
		}
		if k < prev {
			panic(fmt.Errorf("%w: key %d at index %d is not greater than the preceding key %d", ErrUnsortedKeys, k, i, prev))
		}
		prev = k
	}
}

// buildNodes implements §4.3's CreateNodes: it allocates one freshly-heighted
// node per key, computes the resulting height, optionally brackets the
// sequence with left/right sentinels, and wires every level's forward
// links in parallel. It returns the full node sequence (sentinels
// included when bracket is true) and the tallest tower height observed.
func buildNodes(keys []Key, cfg Config, bracket bool) (all []*Node, height int) {
	fresh := parallel.Map(keys, cfg.popts(), func(k Key) *Node {
		return allocNode(k, GenerateHeight())
	})

	height = maxNodeHeight(fresh, cfg)

	if bracket {
		left := allocNode(MinKey, height)
		right := allocNode(MaxKey, height)
		all = make([]*Node, 0, len(fresh)+2)
		all = append(all, left)
		all = append(all, fresh...)
		all = append(all, right)
	} else {
		all = fresh
	}

	wireLevels(all, height, cfg)
	return all, height
}

// maxNodeHeight finds the tallest tower among nodes via parallel
// divide-and-conquer, so this reduction doesn't become the one O(n)-depth
// step in an otherwise O(log n)-depth build.
func maxNodeHeight(nodes []*Node, cfg Config) int {
	n := len(nodes)
	if n <= cfg.cutoff() {
		m := 0
		for _, nd := range nodes {
			if nd.height > m {
				m = nd.height
			}
		}
		return m
	}

	mid := n / 2
	var left, right int
	parallel.TwoWay(
		func() { left = maxNodeHeight(nodes[:mid], cfg) },
		func() { right = maxNodeHeight(nodes[mid:], cfg) },
	)
	if left > right {
		return left
	}
	return right
}

// wireLevels installs level 0 through height-1's forward links across the
// given node sequence, one level at a time: at each level, the live
// sub-sequence is filtered down to nodes whose tower still reaches that
// level, then FillLinks threads them together.
func wireLevels(all []*Node, height int, cfg Config) {
	layer := all
	for level := 0; level < height; level++ {
		fillLinks(layer, level, cfg)
		layer = filterTallerThan(layer, level+1, cfg)
	}
}

// fillLinks sets next[level] and prevKey[level] along ordered so that
// ordered[i] -> ordered[i+1] at that level, in parallel over adjacent
// pairs. The last element's next[level] is left untouched (nil for the
// right sentinel, by construction).
func fillLinks(ordered []*Node, level int, cfg Config) {
	invariant(len(ordered) > 0, "fillLinks called with an empty layer")
	parallel.ForEach(len(ordered)-1, cfg.popts(), func(i int) {
		ordered[i].next[level] = ordered[i+1]
		ordered[i+1].prevKey[level] = ordered[i].key
	})
}

// filterTallerThan returns, in order, the nodes whose height is strictly
// greater than minHeight. Sentinels — whose height equals the list's
// height — automatically survive every call whose result wireLevels goes
// on to link, with no special-casing needed.
func filterTallerThan(nodes []*Node, minHeight int, cfg Config) []*Node {
	return parallel.Filter(nodes, cfg.popts(), func(n *Node) bool { return n.height > minHeight })
}
