package capture

import (
	"sync"
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// pendingSet holds the message ids currently being processed in this
// process. Entries expire after ttl so a crashed pipeline cannot pin an id.
//
// Each Acquire stores its own token; a release only frees the slot if it
// still holds that token, so a run that outlived ttl cannot free the slot of
// a later delivery.
type pendingSet struct {
	mu    sync.Mutex
	c     *gocache.Cache
	token atomic.Uint64
}

func newPendingSet(ttl time.Duration) *pendingSet {
	return &pendingSet{c: gocache.New(ttl, 2*ttl)}
}

// Acquire marks id as in flight. It returns false when id is already held.
func (p *pendingSet) Acquire(id string) (release func(), ok bool) {
	token := p.token.Add(1)

	p.mu.Lock()
	err := p.c.Add(id, token, gocache.DefaultExpiration)
	p.mu.Unlock()
	if err != nil {
		return nil, false
	}

	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		if held, ok := p.c.Get(id); ok && held.(uint64) == token {
			p.c.Delete(id)
		}
	}, true
}

// Len reports how many ids are held.
func (p *pendingSet) Len() int {
	return p.c.ItemCount()
}
