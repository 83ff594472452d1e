package ratelimiter

import (
	"math"
	"sync"
	"time"
)

// Bucket is the token bucket of a single client
type Bucket struct {
	tokens     float64
	capacity   float64
	rate       float64 // tokens per second
	lastRefill time.Time
	mu         sync.Mutex
	timer      *time.Timer
	key        string   // client key, used for cleanup
	parent     *Limiter // owner, used for cleanup
}

// Limiter keeps one bucket per client key. Idle buckets are dropped after expiration.
type Limiter struct {
	buckets    map[string]*Bucket
	mu         sync.RWMutex
	rate       float64
	capacity   float64
	expiration time.Duration
	now        func() time.Time
}

func New(rate float64, capacity float64, expiration time.Duration) *Limiter {
	return &Limiter{
		buckets:    make(map[string]*Bucket),
		rate:       rate,
		capacity:   capacity,
		expiration: expiration,
		now:        time.Now,
	}
}

// PerWindow allows a burst of requests per window and refills continuously,
// so a client that used the whole burst regains it over one window.
func PerWindow(requests int, window time.Duration) *Limiter {
	return New(float64(requests)/window.Seconds(), float64(requests), window)
}

func (l *Limiter) cleanup(key string) {
	l.mu.Lock()
	delete(l.buckets, key)
	l.mu.Unlock()
}

// resetTimer postpones the expiration of an active bucket
func (b *Bucket) resetTimer() {
	if b.timer != nil {
		b.timer.Stop()
	}

	b.timer = time.AfterFunc(b.parent.expiration, func() {
		b.parent.cleanup(b.key)
	})
}

func (l *Limiter) bucket(key string) *Bucket {
	l.mu.RLock()
	b, exists := l.buckets[key]
	l.mu.RUnlock()

	if exists {
		b.mu.Lock()
		b.resetTimer()
		b.mu.Unlock()
		return b
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// double-check after acquiring write lock
	if b, exists = l.buckets[key]; exists {
		b.mu.Lock()
		b.resetTimer()
		b.mu.Unlock()
		return b
	}

	b = &Bucket{
		tokens:     l.capacity,
		capacity:   l.capacity,
		rate:       l.rate,
		lastRefill: l.now(),
		key:        key,
		parent:     l,
	}
	l.buckets[key] = b
	b.resetTimer()

	return b
}

// take refills the bucket up to now and consumes one token if possible.
// It reports the tokens left and, when denied, how long until the next token.
func (b *Bucket) take(now time.Time) (bool, int, time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()

	elapsed := now.Sub(b.lastRefill).Seconds()
	if elapsed > 0 {
		b.tokens = math.Min(b.capacity, b.tokens+elapsed*b.rate)
		b.lastRefill = now
	}

	if b.tokens >= 1 {
		b.tokens--
		return true, int(b.tokens), 0
	}

	if b.rate <= 0 {
		return false, 0, 0
	}
	wait := time.Duration((1 - b.tokens) / b.rate * float64(time.Second))
	return false, 0, wait
}

// Take consumes a token for key. remaining is the number of whole tokens left,
// retryAfter is set only for denied requests.
func (l *Limiter) Take(key string) (allowed bool, remaining int, retryAfter time.Duration) {
	return l.bucket(key).take(l.now())
}

func (l *Limiter) Allow(key string) bool {
	allowed, _, _ := l.Take(key)
	return allowed
}

func (l *Limiter) Capacity() int {
	return int(l.capacity)
}

// Len returns the number of tracked clients
func (l *Limiter) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.buckets)
}

// Stop cancels all expiration timers
func (l *Limiter) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, b := range l.buckets {
		b.mu.Lock()
		if b.timer != nil {
			b.timer.Stop()
		}
		b.mu.Unlock()
	}
}
