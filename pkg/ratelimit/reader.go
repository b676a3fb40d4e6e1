package ratelimit

import (
	"context"
	"io"
	"sync"
	"time"
)

// Reader wraps an io.Reader with bandwidth limiting
type Reader struct {
	reader  io.Reader
	limiter *Limiter
	ctx     context.Context
}

// Limiter controls the read rate shared by any number of readers
// using a token bucket
type Limiter struct {
	bytesPerSecond int64
	mu             sync.Mutex
	tokens         int64     // Available tokens (bytes)
	lastUpdate     time.Time // Last time tokens were refilled
	bucketSize     int64     // Maximum tokens (burst size)
}

// NewLimiter creates a rate limiter capped at bytesPerSecond.
// Returns nil for a non-positive limit, meaning no limiting.
func NewLimiter(bytesPerSecond int64) *Limiter {
	if bytesPerSecond <= 0 {
		return nil
	}

	// One second worth of burst, 64KB minimum for smooth reads
	bucketSize := bytesPerSecond
	if bucketSize < 65536 {
		bucketSize = 65536
	}

	return &Limiter{
		bytesPerSecond: bytesPerSecond,
		tokens:         bucketSize,
		lastUpdate:     time.Now(),
		bucketSize:     bucketSize,
	}
}

// NewReader wraps an io.Reader with rate limiting. A nil limiter
// returns the reader unchanged.
func NewReader(ctx context.Context, reader io.Reader, limiter *Limiter) io.Reader {
	if limiter == nil {
		return reader
	}
	return &Reader{
		reader:  reader,
		limiter: limiter,
		ctx:     ctx,
	}
}

// Read implements io.Reader, blocking until the token bucket allows
// the read
func (r *Reader) Read(p []byte) (int, error) {
	select {
	case <-r.ctx.Done():
		return 0, r.ctx.Err()
	default:
	}

	toRead := len(p)
	if toRead > int(r.limiter.bucketSize) {
		toRead = int(r.limiter.bucketSize)
	}

	r.limiter.waitForTokens(int64(toRead))

	n, err := r.reader.Read(p[:toRead])
	if n > 0 {
		r.limiter.consumeTokens(int64(n))
	}

	return n, err
}

// waitForTokens blocks until enough tokens are available
func (l *Limiter) waitForTokens(needed int64) {
	for {
		l.mu.Lock()
		l.refillTokens()

		if l.tokens >= needed {
			l.mu.Unlock()
			return
		}

		deficit := needed - l.tokens
		waitTime := time.Duration(float64(deficit) / float64(l.bytesPerSecond) * float64(time.Second))
		if waitTime < time.Millisecond {
			waitTime = time.Millisecond
		}
		l.mu.Unlock()

		time.Sleep(waitTime)
	}
}

// refillTokens adds tokens based on elapsed time (lock must be held)
func (l *Limiter) refillTokens() {
	now := time.Now()
	elapsed := now.Sub(l.lastUpdate)

	tokensToAdd := int64(float64(elapsed) / float64(time.Second) * float64(l.bytesPerSecond))
	if tokensToAdd > 0 {
		l.tokens += tokensToAdd
		if l.tokens > l.bucketSize {
			l.tokens = l.bucketSize
		}
		l.lastUpdate = now
	}
}

// consumeTokens removes tokens after a completed read
func (l *Limiter) consumeTokens(n int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.tokens -= n
	if l.tokens < 0 {
		l.tokens = 0
	}
}
