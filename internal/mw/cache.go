package mw

import (
	"bytes"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
)

// CacheHeader is set to "HIT" on responses served from the cache.
const CacheHeader = "X-Cache"

// perRequestHeaders are never replayed from a cached entry.
var perRequestHeaders = []string{"X-Request-Id", CacheHeader}

type cachedResponse struct {
	status  int
	headers http.Header
	body    []byte
}

// recordingWriter copies everything the handler writes into body.
type recordingWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *recordingWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *recordingWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// ResponseCache keeps GET responses until the next successful write. gen
// advances on every flush; a response rendered across a flush is not stored.
type ResponseCache struct {
	store *cache.Cache
	mu    sync.Mutex
	gen   atomic.Uint64
}

// NewResponseCache wraps store.
func NewResponseCache(store *cache.Cache) *ResponseCache {
	return &ResponseCache{store: store}
}

// Cache serves repeated GET requests for the same URL from the cache for ttl.
// Only 2xx responses are kept.
func (rc *ResponseCache) Cache(ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := c.Request.URL.String()
		if hit, ok := rc.store.Get(key); ok {
			replay(c, hit.(*cachedResponse))
			return
		}

		gen := rc.gen.Load()
		rec := &recordingWriter{ResponseWriter: c.Writer}
		c.Writer = rec
		c.Next()

		status := rec.Status()
		if status < 200 || status >= 300 {
			return
		}
		headers := rec.Header().Clone()
		for _, h := range perRequestHeaders {
			headers.Del(h)
		}
		entry := &cachedResponse{
			status:  status,
			headers: headers,
			body:    bytes.Clone(rec.body.Bytes()),
		}

		rc.mu.Lock()
		defer rc.mu.Unlock()
		if rc.gen.Load() != gen {
			return
		}
		rc.store.Set(key, entry, ttl)
	}
}

func replay(c *gin.Context, resp *cachedResponse) {
	h := c.Writer.Header()
	for k, v := range resp.headers {
		h[k] = v
	}
	h.Set(CacheHeader, "HIT")
	c.Writer.WriteHeader(resp.status)
	_, _ = c.Writer.Write(resp.body)
	c.Abort()
}

// Invalidate flushes the whole cache after every successful write request.
func (rc *ResponseCache) Invalidate() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			return
		}
		if status := c.Writer.Status(); status >= 200 && status < 300 {
			rc.mu.Lock()
			rc.gen.Add(1)
			rc.store.Flush()
			rc.mu.Unlock()
		}
	}
}
