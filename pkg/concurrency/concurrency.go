package concurrency

import "sync"

const (
	// DefaultMax default max
	DefaultMax = 16
)

// GoLimit bounds the number of running goroutines
type GoLimit struct {
	ch chan struct{}
	wg sync.WaitGroup
}

// NewGoLimit new go limit, max <= 0 uses DefaultMax
func NewGoLimit(max int) *GoLimit {
	if max <= 0 {
		max = DefaultMax
	}

	return &GoLimit{
		ch: make(chan struct{}, max),
	}
}

// Go run fn once a slot is free
func (g *GoLimit) Go(fn func()) {
	g.wg.Add(1)
	g.ch <- struct{}{}
	go func() {
		defer func() {
			<-g.ch
			g.wg.Done()
		}()
		fn()
	}()
}

// Wait block until every started fn returned
func (g *GoLimit) Wait() {
	g.wg.Wait()
}
