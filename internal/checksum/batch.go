package checksum

import (
	"context"

	"github.com/gammazero/workerpool"
)

// Result is the outcome of hashing one path.
type Result struct {
	Path   string
	Digest []byte
	Err    error
}

// SumAll hashes paths with up to jobs concurrent workers.
// Each worker owns its own hash state; results keep the order of paths.
func SumAll(ctx context.Context, paths []string, jobs int, opts Options) []Result {
	results := make([]Result, len(paths))
	if jobs < 1 {
		jobs = 1
	}
	if jobs > 1 {
		// Interleaved progress lines from parallel workers are unreadable.
		opts.Progress = nil
	}
	wp := workerpool.New(jobs)
	for i, path := range paths {
		wp.Submit(func() {
			digest, err := SumFile(ctx, path, opts)
			results[i] = Result{Path: path, Digest: digest, Err: err}
		})
	}
	wp.StopWait()
	return results
}
