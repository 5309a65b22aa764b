package pbsl

import "testing"

func TestBuildNodes_Bracketed(t *testing.T) {
	keys := []Key{10, 20, 30}
	all, height := buildNodes(keys, smallCfg(), true)

	if len(all) != len(keys)+2 {
		t.Fatalf("got %d nodes, want %d (keys + 2 sentinels)", len(all), len(keys)+2)
	}
	if !all[0].IsSentinel() || all[0].Key() != MinKey {
		t.Error("first node is not the left sentinel")
	}
	if last := all[len(all)-1]; !last.IsSentinel() || last.Key() != MaxKey {
		t.Error("last node is not the right sentinel")
	}
	if all[0].Height() != height || all[len(all)-1].Height() != height {
		t.Errorf("sentinel heights (%d, %d) don't match reported height %d", all[0].Height(), all[len(all)-1].Height(), height)
	}

	for level := 0; level < height; level++ {
		var seen []Key
		for n := all[0]; n != nil; n = n.Next(level) {
			seen = append(seen, n.Key())
		}
		if seen[0] != MinKey || seen[len(seen)-1] != MaxKey {
			t.Fatalf("level %d walk did not start/end at sentinels: %v", level, seen)
		}
	}
}

func TestBuildNodes_Unbracketed(t *testing.T) {
	keys := []Key{1, 2, 3, 4, 5}
	all, height := buildNodes(keys, smallCfg(), false)

	if len(all) != len(keys) {
		t.Fatalf("got %d nodes, want %d", len(all), len(keys))
	}
	if height < 1 || height > MaxHeight {
		t.Fatalf("height %d out of range", height)
	}
	for i, n := range all {
		if n.Key() != keys[i] {
			t.Errorf("node %d has key %d, want %d", i, n.Key(), keys[i])
		}
	}
}

func TestMaxNodeHeight(t *testing.T) {
	nodes := []*Node{
		allocNode(1, 1),
		allocNode(2, 5),
		allocNode(3, 3),
	}
	defer func() {
		for _, n := range nodes {
			freeNode(n)
		}
	}()

	if got := maxNodeHeight(nodes, smallCfg()); got != 5 {
		t.Errorf("maxNodeHeight() = %d, want 5", got)
	}
}

func TestFilterTallerThan(t *testing.T) {
	nodes := []*Node{
		allocNode(1, 1),
		allocNode(2, 2),
		allocNode(3, 3),
	}
	defer func() {
		for _, n := range nodes {
			freeNode(n)
		}
	}()

	got := filterTallerThan(nodes, 1, smallCfg())
	if len(got) != 2 {
		t.Fatalf("got %d nodes taller than 1, want 2", len(got))
	}
	for _, n := range got {
		if n.Height() <= 1 {
			t.Errorf("node with height %d survived filter for >1", n.Height())
		}
	}
}
