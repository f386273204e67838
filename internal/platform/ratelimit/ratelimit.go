package ratelimit

import (
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/juju/ratelimit"
)

// KeyFunc decide a qué bucket pertenece un request (usuario, IP, etc).
type KeyFunc func(r *http.Request) string

// Limiter mantiene un token bucket por key.
type Limiter struct {
	rate     float64
	capacity int64

	mu      sync.RWMutex
	buckets map[string]*ratelimit.Bucket

	// OnReject se llama cada vez que se rechaza un request (métricas).
	OnReject func(key string)
}

// New crea un Limiter: rate tokens/segundo, capacity tokens máx por key.
func New(rate float64, capacity int64) *Limiter {
	if rate <= 0 {
		rate = 1
	}
	if capacity <= 0 {
		capacity = 1
	}
	return &Limiter{
		rate:     rate,
		capacity: capacity,
		buckets:  make(map[string]*ratelimit.Bucket),
	}
}

func (l *Limiter) bucket(key string) *ratelimit.Bucket {
	l.mu.RLock()
	b, ok := l.buckets[key]
	l.mu.RUnlock()
	if ok {
		return b
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if b, ok = l.buckets[key]; !ok {
		b = ratelimit.NewBucketWithRate(l.rate, l.capacity)
		l.buckets[key] = b
	}
	return b
}

// Allow consume un token de key. false => sin tokens.
func (l *Limiter) Allow(key string) bool {
	return l.bucket(key).TakeAvailable(1) == 1
}

// Remaining devuelve los tokens disponibles de key.
func (l *Limiter) Remaining(key string) int64 {
	return l.bucket(key).Available()
}

// Cleanup elimina buckets llenos (clientes inactivos). Devuelve cuántos quedan.
func (l *Limiter) Cleanup() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	for k, b := range l.buckets {
		if b.Available() == b.Capacity() {
			delete(l.buckets, k)
		}
	}
	return len(l.buckets)
}

// Middleware rechaza con 429 cuando la key no tiene tokens.
func (l *Limiter) Middleware(key KeyFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			k := strings.TrimSpace(key(r))
			if k == "" {
				k = r.RemoteAddr
			}

			w.Header().Set("X-RateLimit-Limit", strconv.FormatInt(l.capacity, 10))

			if !l.Allow(k) {
				if l.OnReject != nil {
					l.OnReject(k)
				}
				w.Header().Set("X-RateLimit-Remaining", "0")
				w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds(l.rate)))
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}

			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(l.Remaining(k), 10))
			next.ServeHTTP(w, r)
		})
	}
}

func retryAfterSeconds(rate float64) int {
	s := int(1 / rate)
	if s < 1 {
		return 1
	}
	return s
}
