package pbsl

import "testing"

func TestNode_IsSentinel(t *testing.T) {
	left := allocNode(MinKey, 3)
	right := allocNode(MaxKey, 3)
	mid := allocNode(42, 3)
	defer freeNode(left)
	defer freeNode(right)
	defer freeNode(mid)

	if !left.IsSentinel() {
		t.Error("left sentinel not recognized")
	}
	if !right.IsSentinel() {
		t.Error("right sentinel not recognized")
	}
	if mid.IsSentinel() {
		t.Error("ordinary node misidentified as sentinel")
	}
}

func TestNode_NextAccessors(t *testing.T) {
	a := allocNode(1, 2)
	b := allocNode(2, 2)
	defer freeNode(a)
	defer freeNode(b)

	a.next[0] = b
	if a.Next(0) != b {
		t.Error("Next(0) did not return the linked node")
	}
	if a.Next(1) != nil {
		t.Error("Next(1) should be nil before linking")
	}
	if a.Height() != 2 {
		t.Errorf("Height() = %d, want 2", a.Height())
	}
	if a.Key() != 1 {
		t.Errorf("Key() = %d, want 1", a.Key())
	}
}
