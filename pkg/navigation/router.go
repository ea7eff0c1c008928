// Package navigation models the page router the side navigation listens to.
package navigation

import (
	"strings"
	"sync"
)

// RouteChangeHandler receives the full URL (base path plus path) of a
// completed navigation.
type RouteChangeHandler func(url string)

// Router tracks the current path of one navigation session and emits a
// route-change-complete event on every Push.
type Router struct {
	basePath string

	mu       sync.RWMutex
	asPath   string
	handlers map[uint64]RouteChangeHandler
	nextID   uint64
}

// NewRouter returns a router positioned at asPath under basePath.
func NewRouter(basePath, asPath string) *Router {
	return &Router{
		basePath: strings.TrimSuffix(basePath, "/"),
		asPath:   asPath,
		handlers: make(map[uint64]RouteChangeHandler),
	}
}

// BasePath returns the path prefix the site is mounted under.
func (r *Router) BasePath() string {
	return r.basePath
}

// AsPath returns the current path relative to the base path.
func (r *Router) AsPath() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.asPath
}

// URL returns the base path joined with the current path.
func (r *Router) URL() string {
	return r.basePath + r.AsPath()
}

// Push navigates to asPath and notifies route-change subscribers.
func (r *Router) Push(asPath string) {
	r.mu.Lock()
	r.asPath = asPath
	url := r.basePath + asPath
	handlers := make([]RouteChangeHandler, 0, len(r.handlers))
	for _, h := range r.handlers {
		handlers = append(handlers, h)
	}
	r.mu.Unlock()

	for _, h := range handlers {
		h(url)
	}
}

// OnRouteChangeComplete subscribes h to completed navigations.
// The returned function unsubscribes; calling it more than once is a no-op.
func (r *Router) OnRouteChangeComplete(h RouteChangeHandler) (off func()) {
	r.mu.Lock()
	id := r.nextID
	r.nextID++
	r.handlers[id] = h
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		delete(r.handlers, id)
		r.mu.Unlock()
	}
}

// Subscribers returns the number of active route-change subscriptions.
func (r *Router) Subscribers() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.handlers)
}

// Relative strips the base path from an absolute request path.
// Paths outside the base path are returned unchanged.
func Relative(basePath, path string) string {
	base := strings.TrimSuffix(basePath, "/")
	if base == "" {
		return path
	}
	if path == base || strings.HasPrefix(path, base+"/") {
		return strings.TrimPrefix(path, base)
	}
	return path
}
