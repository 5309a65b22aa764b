package parallel

import (
	"sort"
	"testing"
)

func TestForEach(t *testing.T) {
	const n = 10_000
	out := make([]int, n)
	ForEach(n, Options{Cutoff: 16}, func(i int) { out[i] = i * i })
	for i, v := range out {
		if v != i*i {
			t.Fatalf("out[%d] = %d, want %d", i, v, i*i)
		}
	}
}

func TestForEachSmallSequential(t *testing.T) {
	out := make([]int, 3)
	ForEach(3, Options{Cutoff: 256}, func(i int) { out[i] = i + 1 })
	if out[0] != 1 || out[1] != 2 || out[2] != 3 {
		t.Fatalf("unexpected out: %v", out)
	}
}

func TestTwoWay(t *testing.T) {
	var a, b int
	TwoWay(func() { a = 1 }, func() { b = 2 })
	if a != 1 || b != 2 {
		t.Fatalf("a=%d b=%d, want 1,2", a, b)
	}
}

func TestMap(t *testing.T) {
	in := []int{1, 2, 3, 4, 5}
	out := Map(in, Options{Cutoff: 1}, func(x int) int { return x * 2 })
	want := []int{2, 4, 6, 8, 10}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("out = %v, want %v", out, want)
		}
	}
}

func TestFilter(t *testing.T) {
	in := make([]int, 1000)
	for i := range in {
		in[i] = i
	}
	out := Filter(in, Options{Cutoff: 32}, func(x int) bool { return x%3 == 0 })
	for _, v := range out {
		if v%3 != 0 {
			t.Fatalf("unexpected element %d survived filter", v)
		}
	}
	count := 0
	for _, x := range in {
		if x%3 == 0 {
			count++
		}
	}
	if len(out) != count {
		t.Fatalf("len(out) = %d, want %d", len(out), count)
	}
	if !sort.IntsAreSorted(out) {
		t.Fatalf("Filter must preserve order: %v", out)
	}
}

func TestScanInts(t *testing.T) {
	xs := []int{1, 2, 3, 4, 5}
	offsets, total := ScanInts(xs, Options{Cutoff: 1})
	want := []int{0, 1, 3, 6, 10}
	for i := range want {
		if offsets[i] != want[i] {
			t.Fatalf("offsets = %v, want %v", offsets, want)
		}
	}
	if total != 15 {
		t.Fatalf("total = %d, want 15", total)
	}
}

func TestScanIntsEmpty(t *testing.T) {
	offsets, total := ScanInts(nil, Options{})
	if len(offsets) != 0 || total != 0 {
		t.Fatalf("expected empty scan, got %v, %d", offsets, total)
	}
}

func TestMerge(t *testing.T) {
	a := []int{1, 3, 5, 7, 9, 11, 13}
	b := []int{2, 4, 6, 8, 10, 12}
	less := func(x, y int) bool { return x < y }
	out := Merge(a, b, Options{Cutoff: 1}, less)
	if !sort.IntsAreSorted(out) {
		t.Fatalf("merge result not sorted: %v", out)
	}
	if len(out) != len(a)+len(b) {
		t.Fatalf("len(out) = %d, want %d", len(out), len(a)+len(b))
	}
}

func TestMergeUnbalanced(t *testing.T) {
	a := []int{50}
	b := make([]int, 2000)
	for i := range b {
		b[i] = i
	}
	less := func(x, y int) bool { return x < y }
	out := Merge(a, b, Options{Cutoff: 8}, less)
	if !sort.IntsAreSorted(out) {
		t.Fatalf("merge result not sorted")
	}
	if len(out) != len(a)+len(b) {
		t.Fatalf("len(out) = %d, want %d", len(out), len(a)+len(b))
	}
}

func TestMergeEmptySides(t *testing.T) {
	less := func(x, y int) bool { return x < y }
	if out := Merge([]int{}, []int{1, 2, 3}, Options{}, less); len(out) != 3 {
		t.Fatalf("merge with empty left failed: %v", out)
	}
	if out := Merge([]int{1, 2, 3}, []int{}, Options{}, less); len(out) != 3 {
		t.Fatalf("merge with empty right failed: %v", out)
	}
}
