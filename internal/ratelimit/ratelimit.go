// Package ratelimit holds the send-rate check consulted before each send.
package ratelimit

// Limiter decides whether another send is allowed under limit.
type Limiter interface {
	// CheckAndRecord reports whether a send is allowed and, if so, counts it.
	CheckAndRecord(limit uint) bool
}

// Advisory never blocks. The configured rate_limit has no time window yet, so
// it is accepted and ignored.
type Advisory struct{}

// CheckAndRecord always returns true.
func (Advisory) CheckAndRecord(uint) bool {
	return true
}
