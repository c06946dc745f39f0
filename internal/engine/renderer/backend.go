package renderer

import (
	"errors"
	"fmt"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/hslcloud/internal/logger"
)

// ErrNoCompute is returned when no worker can be scheduled.
var ErrNoCompute = errors.New("renderer: no compute workers available")

// Backend is the compute capability the rasterizer runs on: a pool of CPU
// workers. It holds no global state; calling Initialize again yields an
// equivalent handle.
type Backend struct {
	workers int
}

// Initialize prepares a backend with the given worker count.
// Zero selects one worker per available CPU.
func Initialize(workers int) (*Backend, error) {
	if workers < 0 {
		return nil, fmt.Errorf("invalid worker count %d: %w", workers, ErrNoCompute)
	}
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers < 1 {
		return nil, ErrNoCompute
	}

	logger.Info("render backend initialized",
		zap.String("kind", "cpu"),
		zap.Int("workers", workers),
	)
	return &Backend{workers: workers}, nil
}

// Workers returns the size of the worker pool.
func (b *Backend) Workers() int {
	return b.workers
}

// parallel splits [0, n) into contiguous chunks and runs fn on each chunk,
// returning when all chunks are done. Chunks never overlap.
func (b *Backend) parallel(n int, fn func(lo, hi int)) {
	if n <= 0 {
		return
	}
	workers := min(b.workers, n)
	if workers <= 1 {
		fn(0, n)
		return
	}

	chunk := (n + workers - 1) / workers
	var g errgroup.Group
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		g.Go(func() error {
			fn(lo, hi)
			return nil
		})
	}
	_ = g.Wait()
}
