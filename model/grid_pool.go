package model

import "sync"

// GridPool recycles discarded generations so stepping a fixed-size board
// does not allocate a fresh grid every tick
type GridPool struct {
	pool sync.Pool
}

func NewGridPool() *GridPool {
	return &GridPool{
		pool: sync.Pool{
			New: func() any {
				return &Grid{}
			},
		},
	}
}

// Get retrieves a cleared grid with the requested dimensions
func (p *GridPool) Get(width, height int) *Grid {
	g := p.pool.Get().(*Grid)
	g.Reset(width, height)
	return g
}

// Put hands a grid back; the caller must not touch it afterwards
func (p *GridPool) Put(g *Grid) {
	if g == nil {
		return
	}
	p.pool.Put(g)
}

// recycle returns g to pool when pooling is enabled
func recycle(pool *GridPool, g *Grid) {
	if pool == nil {
		return
	}
	pool.Put(g)
}
