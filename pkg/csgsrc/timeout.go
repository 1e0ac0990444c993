package csgsrc

import (
	"fmt"
	"sync"
	"time"

	"github.com/chazu/lignin/pkg/csg"
)

// ParseTimeout bounds a single call to ParseWithTimeout. The grammar has no
// loops or recursion unbounded by the source text's own length, so in
// practice this only guards against pathological inputs.
const ParseTimeout = 5 * time.Second

type parseOutcome struct {
	scene  *csg.Scene
	result ParseResult
}

// ParseWithTimeout runs Parse in a goroutine and returns a fatal error if it
// does not finish within ParseTimeout, using a generation counter so a
// straggling goroutine's eventual result is discarded rather than raced
// against a later call sharing the same Parser value.
type Parser struct {
	mu         sync.Mutex
	generation uint64
}

// NewParser returns a Parser that may be shared between goroutines. Calls
// on the same Parser are not independent: a call that finishes after a
// later call has started returns a "superseded" error instead of its
// result.
func NewParser() *Parser { return &Parser{} }

func (p *Parser) ParseWithTimeout(source string) (*csg.Scene, ParseResult, error) {
	p.mu.Lock()
	p.generation++
	gen := p.generation
	p.mu.Unlock()

	ch := make(chan parseOutcome, 1)

	go func() {
		scene, result := Parse(source)
		ch <- parseOutcome{scene: scene, result: result}
	}()

	timer := time.NewTimer(ParseTimeout)
	defer timer.Stop()

	select {
	case out := <-ch:
		p.mu.Lock()
		current := p.generation
		p.mu.Unlock()
		if gen != current {
			return nil, ParseResult{}, fmt.Errorf("csgsrc: parse superseded by a newer request")
		}
		return out.scene, out.result, nil
	case <-timer.C:
		return nil, ParseResult{}, fmt.Errorf("csgsrc: parse timed out after %s", ParseTimeout)
	}
}
