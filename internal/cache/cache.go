package cache

import (
	"crypto/sha256"
	"fmt"
	"strings"
	"sync"
	"time"
)

// CachedPage represents a rendered page and its validator
type CachedPage struct {
	Body      []byte
	ETag      string
	Timestamp time.Time
}

// GenerateETag generates a strong entity tag from the rendered body
func GenerateETag(body []byte) string {
	sum := sha256.Sum256(body)
	return fmt.Sprintf(`"%x"`, sum[:16])
}

// Pages caches rendered pages by page ID. Everything is dropped on
// Invalidate, which callers trigger whenever a stored preference changes.
// A render that started before an Invalidate is served once but not cached.
type Pages struct {
	entries sync.Map

	mu         sync.Mutex
	generation uint64
}

// New creates an empty page cache
func New() *Pages {
	return &Pages{}
}

// Load returns the cached page for key
func (p *Pages) Load(key string) (CachedPage, bool) {
	if val, ok := p.entries.Load(key); ok {
		return val.(CachedPage), true
	}
	return CachedPage{}, false
}

// Store caches body under key and returns the entry
func (p *Pages) Store(key string, body []byte) CachedPage {
	page := CachedPage{
		Body:      body,
		ETag:      GenerateETag(body),
		Timestamp: time.Now(),
	}
	p.entries.Store(key, page)
	return page
}

// LoadOrRender returns the cached page, rendering and storing it on a miss
func (p *Pages) LoadOrRender(key string, render func() ([]byte, error)) (CachedPage, bool, error) {
	if page, ok := p.Load(key); ok {
		return page, true, nil
	}
	p.mu.Lock()
	generation := p.generation
	p.mu.Unlock()

	body, err := render()
	if err != nil {
		return CachedPage{}, false, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.generation != generation {
		return CachedPage{Body: body, ETag: GenerateETag(body), Timestamp: time.Now()}, false, nil
	}
	return p.Store(key, body), false, nil
}

// Invalidate drops every cached page
func (p *Pages) Invalidate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.generation++
	p.entries.Range(func(key, _ any) bool {
		p.entries.Delete(key)
		return true
	})
}

// Matches reports whether an If-None-Match header value matches etag.
// Weak comparison is used, as for GET.
func Matches(ifNoneMatch, etag string) bool {
	if ifNoneMatch == "" {
		return false
	}
	for _, candidate := range strings.Split(ifNoneMatch, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" {
			return true
		}
		if strings.TrimPrefix(candidate, "W/") == strings.TrimPrefix(etag, "W/") {
			return true
		}
	}
	return false
}
