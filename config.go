package pbsl

import (
	"os"
	"runtime"
	"strconv"

	"github.com/wizenheimer/pbsl/internal/parallel"
)

// Config holds the tunables that steer how aggressively the fork/join
// algorithms in this package parallelize. It plays the same role here that
// AnalyzerConfig played for the teacher's text pipeline: a small, explicit
// struct with a DefaultConfig constructor, rather than package-level
// globals, so tests can exercise non-default worker counts and cutoffs
// without racing each other.
type Config struct {
	// Workers bounds how many goroutines each parallel-for in
	// internal/parallel splits its range into. Zero means "let the runtime
	// primitives pick", which gives one goroutine per SequentialCutoff-sized
	// chunk of the input. DefaultConfig never leaves it zero.
	Workers int

	// SequentialCutoff is the input size below which a fork/join primitive
	// runs its work inline instead of spawning goroutines. Recursive
	// algorithms like the layer materializer (§4.4) and the batch merge
	// (§4.5) would otherwise spawn a goroutine per leaf node, which is pure
	// overhead for small lists.
	SequentialCutoff int
}

// defaultSequentialCutoff was chosen empirically in the teacher's own
// parallel-traversal cousins (cf. the chunking cutoffs used when dividing
// work across a worker pool): large enough that goroutine spawn overhead is
// amortized, small enough that a single list still parallelizes.
const defaultSequentialCutoff = 1024

// DefaultConfig reads the worker count from PARLAY_NUM_THREADS, the
// environment variable named by this library's required collaborator
// capability table. An unset or malformed value falls back to
// runtime.GOMAXPROCS(0).
func DefaultConfig() Config {
	workers := runtime.GOMAXPROCS(0)
	if raw, ok := os.LookupEnv("PARLAY_NUM_THREADS"); ok {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			workers = n
		}
	}
	return Config{
		Workers:          workers,
		SequentialCutoff: defaultSequentialCutoff,
	}
}

func (c Config) cutoff() int {
	if c.SequentialCutoff > 0 {
		return c.SequentialCutoff
	}
	return defaultSequentialCutoff
}

// popts adapts this Config to the Options type internal/parallel's
// primitives accept.
func (c Config) popts() parallel.Options {
	return parallel.Options{Workers: c.Workers, Cutoff: c.cutoff()}
}
