package mw

import (
	"bytes"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
)

type cachedResponse struct {
	status  int
	headers http.Header
	body    []byte
}

type recordingWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w recordingWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w recordingWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// ResponseCache keeps successful GET responses keyed by request URI until
// the next successful write.
//
// Every invalidation bumps a generation counter. A read only stores its
// response when no invalidation happened while its handler ran, so a body
// computed before a concurrent booking is never kept after that booking.
type ResponseCache struct {
	mu    sync.Mutex
	gen   uint64
	items *cache.Cache
	ttl   time.Duration
}

func NewResponseCache(ttl time.Duration) *ResponseCache {
	return &ResponseCache{
		items: cache.New(ttl, 2*ttl),
		ttl:   ttl,
	}
}

func (rc *ResponseCache) generation() uint64 {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.gen
}

// Invalidate drops every cached response.
func (rc *ResponseCache) Invalidate() {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.gen++
	rc.items.Flush()
}

func (rc *ResponseCache) store(key string, seen uint64, resp cachedResponse) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	if rc.gen != seen {
		return
	}
	rc.items.Set(key, resp, rc.ttl)
}

// Cache serves GET requests from the cache and records 2xx responses.
func (rc *ResponseCache) Cache() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := c.Request.RequestURI
		if v, found := rc.items.Get(key); found {
			cached := v.(cachedResponse)
			for k, vals := range cached.headers {
				c.Writer.Header()[k] = vals
			}
			c.Writer.Header().Set("X-Cache", "HIT")
			c.Writer.WriteHeader(cached.status)
			c.Writer.Write(cached.body)
			c.Abort()
			return
		}

		seen := rc.generation()
		w := &recordingWriter{body: bytes.NewBuffer(nil), ResponseWriter: c.Writer}
		c.Writer = w

		c.Next()

		if status := w.Status(); status >= 200 && status < 300 {
			rc.store(key, seen, cachedResponse{
				status:  status,
				headers: w.Header().Clone(),
				body:    w.body.Bytes(),
			})
		}
	}
}

// InvalidateOnWrite drops the cache after every successful non-GET request.
func (rc *ResponseCache) InvalidateOnWrite() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead {
			return
		}
		if status := c.Writer.Status(); status >= 200 && status < 300 {
			rc.Invalidate()
		}
	}
}
