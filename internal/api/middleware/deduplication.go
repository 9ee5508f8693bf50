package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"sync"
	"time"

	"recipe-finder/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const defaultDedupWindow = time.Second

// Deduplicator rejects a mutating request that repeats the previous one from
// the same client within the window, such as a double-clicked favorite toggle.
// A client is its IP plus User-Agent, so different browsers behind one NAT
// are told apart.
type Deduplicator struct {
	mu       sync.Mutex
	window   time.Duration
	requests map[string]time.Time
	now      func() time.Time
}

func NewDeduplicator(window time.Duration) *Deduplicator {
	if window <= 0 {
		window = defaultDedupWindow
	}
	return &Deduplicator{
		window:   window,
		requests: make(map[string]time.Time),
		now:      time.Now,
	}
}

// Handler applies the check to POST, PUT and DELETE requests.
func (d *Deduplicator) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodDelete:
		default:
			c.Next()
			return
		}

		fingerprint := c.ClientIP() + ":" + c.Request.UserAgent() + ":" + c.Request.Method + ":" + c.Request.URL.Path
		if c.Request.Body != nil {
			body, err := io.ReadAll(c.Request.Body)
			if err != nil {
				common.LogWarn("Failed to read request body", zap.Error(err))
				abortWithError(c, common.ErrRequestTooLarge.WithCause(err))
				return
			}
			c.Request.Body = io.NopCloser(bytes.NewReader(body))
			if len(body) > 0 {
				hash := sha256.Sum256(body)
				fingerprint += ":" + hex.EncodeToString(hash[:])
			}
		}

		if d.seen(fingerprint) {
			common.LogInfo("Duplicate request rejected",
				zap.String("path", c.Request.URL.Path),
				zap.String("ip", c.ClientIP()),
			)
			abortWithError(c, common.ErrTooManyRequests.WithMessage("duplicate request"))
			return
		}
		c.Next()
	}
}

// seen records fingerprint and reports whether it was already recorded
// within the window. Expired fingerprints are dropped on the way.
func (d *Deduplicator) seen(fingerprint string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	for k, t := range d.requests {
		if now.Sub(t) > d.window {
			delete(d.requests, k)
		}
	}

	if last, ok := d.requests[fingerprint]; ok && now.Sub(last) <= d.window {
		return true
	}
	d.requests[fingerprint] = now
	return false
}
