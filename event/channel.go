package event

import (
	"sync"
	"sync/atomic"
)

// Token identifies one subscription on a Channel. The zero Token is never
// issued.
type Token uint64

var nextToken atomic.Uint64

type subscriber[T any] struct {
	tok Token
	fn  func(T)
}

// Channel is a set of subscribers for values of type T.
// The zero value is ready to use. A Channel must not be copied after first use.
type Channel[T any] struct {
	mu   sync.Mutex
	subs []subscriber[T]
}

// Subscribe registers fn and returns a token for Revoke.
func (c *Channel[T]) Subscribe(fn func(T)) Token {
	tok := Token(nextToken.Add(1))
	c.mu.Lock()
	c.subs = append(c.subs, subscriber[T]{tok: tok, fn: fn})
	c.mu.Unlock()
	return tok
}

// Revoke removes the subscription identified by tok. It reports whether the
// token was subscribed. Revoking twice is harmless.
func (c *Channel[T]) Revoke(tok Token) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, s := range c.subs {
		if s.tok == tok {
			// Copy so that a Publish iterating the old slice is unaffected.
			subs := make([]subscriber[T], 0, len(c.subs)-1)
			subs = append(subs, c.subs[:i]...)
			c.subs = append(subs, c.subs[i+1:]...)
			return true
		}
	}
	return false
}

// Publish calls every subscriber with v, in subscription order, on the
// calling goroutine. Subscribers added or revoked during Publish take effect
// on the next call.
func (c *Channel[T]) Publish(v T) {
	c.mu.Lock()
	subs := c.subs
	c.mu.Unlock()
	for _, s := range subs {
		s.fn(v)
	}
}

// Len returns the number of active subscriptions.
func (c *Channel[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.subs)
}
