package latest

import "sync"

// Guard hands out per-slot sequence numbers so a response can be dropped
// when a newer request for the same slot has already been issued.
type Guard struct {
	mu   sync.Mutex
	seqs map[string]uint64
}

func New() *Guard {
	return &Guard{seqs: map[string]uint64{}}
}

func (g *Guard) Begin(slot string) uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.seqs == nil {
		g.seqs = map[string]uint64{}
	}
	g.seqs[slot]++
	return g.seqs[slot]
}

func (g *Guard) Accept(slot string, seq uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return seq != 0 && g.seqs[slot] == seq
}

// Reset forgets every slot; responses still in flight are rejected.
func (g *Guard) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	for slot := range g.seqs {
		g.seqs[slot]++
	}
}
