// Package parallel provides the fork/join primitives this library's core
// algorithms are built from: a parallel-for over a range, a two-way
// parallel spawn of independent tasks, and parallel filter/map/merge/scan
// over a contiguous sequence. These correspond one-for-one to the required
// collaborator capabilities listed in this library's design (the Go
// analogue of parlay::parallel_for, parlay::par_do, and
// parlay::filter/map/merge/scan).
//
// Every primitive below except TwoWay falls back to sequential execution
// once the input is no larger than Options.Cutoff, matching common fork/join
// practice:
// spawning a goroutine per leaf of a large recursive divide-and-conquer
// (the layer materializer, the batch merge) would be pure overhead.
package parallel

import (
	"sort"

	"golang.org/x/sync/errgroup"
)

// DefaultCutoff is used whenever Options.Cutoff is zero.
const DefaultCutoff = 256

// Options steers how aggressively a primitive parallelizes.
type Options struct {
	// Workers caps how many goroutines a single ForEach call (and so each
	// ForEach pass inside Map, Filter and ScanInts) splits its range into.
	// Zero means one goroutine per Cutoff-sized chunk of the input. Merge
	// and TwoWay do not read Workers.
	Workers int

	// Cutoff is the input size below which a primitive runs inline.
	Cutoff int
}

// cutoff is clamped to at least 2: Merge's divide step picks a pivot from
// the longer side and can hand the shorter side back whole when it can't be
// split further, so a cutoff of 1 would let a 1-vs-1 call recurse into
// itself forever instead of ever reaching the sequential base case.
func (o Options) cutoff() int {
	c := o.Cutoff
	if c <= 0 {
		c = DefaultCutoff
	}
	if c < 2 {
		c = 2
	}
	return c
}

// ForEach executes f(i) for every i in [0, n), in parallel.
func ForEach(n int, opts Options, f func(i int)) {
	if n <= 0 {
		return
	}
	if n <= opts.cutoff() {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	workers := opts.Workers
	if workers < 1 {
		workers = (n + opts.cutoff() - 1) / opts.cutoff()
	}
	chunk := (n + workers - 1) / workers

	var eg errgroup.Group
	for start := 0; start < n; start += chunk {
		end := start + chunk
		if end > n {
			end = n
		}
		start, end := start, end
		eg.Go(func() error {
			for i := start; i < end; i++ {
				f(i)
			}
			return nil
		})
	}
	_ = eg.Wait()
}

// TwoWay runs f and g to completion in parallel, returning once both have
// finished. g runs on a spawned goroutine; f runs on the caller's.
func TwoWay(f, g func()) {
	var eg errgroup.Group
	eg.Go(func() error {
		g()
		return nil
	})
	f()
	_ = eg.Wait()
}

// Map applies f to every element of items in parallel, preserving order.
func Map[T, R any](items []T, opts Options, f func(T) R) []R {
	out := make([]R, len(items))
	ForEach(len(items), opts, func(i int) {
		out[i] = f(items[i])
	})
	return out
}

// Filter returns, in order, the elements of items for which keep returns
// true. It is implemented as a parallel predicate pass followed by a
// parallel prefix-sum to compute each surviving element's destination slot,
// followed by a parallel scatter — the same count-then-copy shape used by
// the layer materializer (§4.4) at a larger scale.
func Filter[T any](items []T, opts Options, keep func(T) bool) []T {
	n := len(items)
	flags := make([]int, n)
	ForEach(n, opts, func(i int) {
		if keep(items[i]) {
			flags[i] = 1
		}
	})
	offsets, total := ScanInts(flags, opts)
	out := make([]T, total)
	ForEach(n, opts, func(i int) {
		if flags[i] == 1 {
			out[offsets[i]] = items[i]
		}
	})
	return out
}

// ScanInts computes the exclusive prefix sum of xs in parallel: offsets[i]
// equals the sum of xs[0:i]. It returns offsets and the total sum. The
// implementation is a textbook work-efficient parallel scan: compute
// per-chunk sums in parallel, scan the (small) chunk-sum sequence
// sequentially, then add each chunk's base offset back in parallel.
func ScanInts(xs []int, opts Options) (offsets []int, total int) {
	n := len(xs)
	offsets = make([]int, n)
	if n == 0 {
		return offsets, 0
	}
	if n <= opts.cutoff() {
		sum := 0
		for i, x := range xs {
			offsets[i] = sum
			sum += x
		}
		return offsets, sum
	}

	workers := opts.Workers
	if workers < 1 {
		workers = (n + opts.cutoff() - 1) / opts.cutoff()
	}
	chunk := (n + workers - 1) / workers
	numChunks := (n + chunk - 1) / chunk

	chunkSum := make([]int, numChunks)
	ForEach(numChunks, opts, func(c int) {
		start := c * chunk
		end := start + chunk
		if end > n {
			end = n
		}
		sum := 0
		for i := start; i < end; i++ {
			sum += xs[i]
		}
		chunkSum[c] = sum
	})

	chunkBase := make([]int, numChunks)
	running := 0
	for c := 0; c < numChunks; c++ {
		chunkBase[c] = running
		running += chunkSum[c]
	}

	ForEach(numChunks, opts, func(c int) {
		start := c * chunk
		end := start + chunk
		if end > n {
			end = n
		}
		sum := chunkBase[c]
		for i := start; i < end; i++ {
			offsets[i] = sum
			sum += xs[i]
		}
	})

	return offsets, running
}

// Merge merges two sequences already sorted by less, in parallel, and
// returns the result. It uses the standard rank-based parallel merge:
// split a at its midpoint, binary-search that pivot's rank in b, and
// recurse on the two independent halves via TwoWay. Depth is
// O(log(len(a)+len(b))) amortized by the binary search at each level.
func Merge[T any](a, b []T, opts Options, less func(x, y T) bool) []T {
	out := make([]T, len(a)+len(b))
	mergeInto(a, b, out, opts, less)
	return out
}

func mergeInto[T any](a, b []T, out []T, opts Options, less func(x, y T) bool) {
	if len(a)+len(b) <= opts.cutoff() {
		sequentialMerge(a, b, out, less)
		return
	}
	if len(a) < len(b) {
		a, b = b, a
		mergeIntoSwapped(a, b, out, opts, less)
		return
	}
	if len(a) == 0 {
		return
	}

	mid := len(a) / 2
	pivot := a[mid]
	bSplit := sort.Search(len(b), func(i int) bool { return !less(b[i], pivot) })

	TwoWay(
		func() { mergeInto(a[:mid], b[:bSplit], out[:mid+bSplit], opts, less) },
		func() { mergeInto(a[mid:], b[bSplit:], out[mid+bSplit:], opts, less) },
	)
}

// mergeIntoSwapped handles the case where b is the longer sequence; it
// mirrors mergeInto with a and b's roles reversed so the midpoint is always
// taken from the longer side (keeps recursion depth logarithmic).
func mergeIntoSwapped[T any](bLonger, aShorter []T, out []T, opts Options, less func(x, y T) bool) {
	if len(bLonger) == 0 {
		return
	}
	mid := len(bLonger) / 2
	pivot := bLonger[mid]
	aSplit := sort.Search(len(aShorter), func(i int) bool { return less(pivot, aShorter[i]) })

	TwoWay(
		func() { mergeInto(aShorter[:aSplit], bLonger[:mid], out[:aSplit+mid], opts, less) },
		func() { mergeInto(aShorter[aSplit:], bLonger[mid:], out[aSplit+mid:], opts, less) },
	)
}

func sequentialMerge[T any](a, b []T, out []T, less func(x, y T) bool) {
	i, j, k := 0, 0, 0
	for i < len(a) && j < len(b) {
		if less(b[j], a[i]) {
			out[k] = b[j]
			j++
		} else {
			out[k] = a[i]
			i++
		}
		k++
	}
	for ; i < len(a); i++ {
		out[k] = a[i]
		k++
	}
	for ; j < len(b); j++ {
		out[k] = b[j]
		k++
	}
}
