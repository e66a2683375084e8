package services

import (
	"context"
	"sync"
)

// latestRunGate lets only the newest run per key publish its result. Starting a run cancels
// the context of the previous run for the same key.
type latestRunGate struct {
	mu   sync.Mutex
	seq  uint64
	runs map[string]gateRun
}

type gateRun struct {
	id     uint64
	cancel context.CancelFunc
}

func newLatestRunGate() *latestRunGate {
	return &latestRunGate{runs: make(map[string]gateRun)}
}

// begin registers a new run for key. The returned context is cancelled when a newer run
// for the same key begins or when done is called.
func (g *latestRunGate) begin(ctx context.Context, key string) (runCtx context.Context, id uint64, done func()) {
	runCtx, cancel := context.WithCancel(ctx)

	g.mu.Lock()
	if prev, ok := g.runs[key]; ok {
		prev.cancel()
	}
	g.seq++
	id = g.seq
	g.runs[key] = gateRun{id: id, cancel: cancel}
	g.mu.Unlock()

	done = func() {
		g.mu.Lock()
		if cur, ok := g.runs[key]; ok && cur.id == id {
			delete(g.runs, key)
		}
		g.mu.Unlock()
		cancel()
	}
	return runCtx, id, done
}

// isCurrent reports whether id is still the newest run for key.
func (g *latestRunGate) isCurrent(key string, id uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	cur, ok := g.runs[key]
	return ok && cur.id == id
}
