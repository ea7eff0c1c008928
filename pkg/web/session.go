package web

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/mchmarny/sidenav/pkg/level"
	"github.com/mchmarny/sidenav/pkg/navigation"
	"github.com/mchmarny/sidenav/pkg/sidenav"
)

// SessionCookie names the cookie carrying the navigation session id.
const SessionCookie = "sidenav_session"

// session is one visitor's mounted side navigation.
type session struct {
	nav      *sidenav.SideNav
	router   *navigation.Router
	teardown func()
	once     sync.Once
}

func (s *session) close() {
	s.once.Do(s.teardown)
}

// sessions keeps a bounded set of navigation sessions. Evicted sessions are
// unmounted.
type sessions struct {
	site    *sidenav.Site
	onLevel func(level.Level)
	cache   *lru.Cache[string, *session]
	mu      sync.Mutex
}

func newSessions(site *sidenav.Site, limit int, onLevel func(level.Level)) (*sessions, error) {
	cache, err := lru.NewWithEvict(limit, func(_ string, s *session) {
		s.close()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session cache: %w", err)
	}

	return &sessions{site: site, onLevel: onLevel, cache: cache}, nil
}

// navigate returns the caller's session positioned at asPath. A new session
// is mounted at asPath; an existing one pushes asPath through its router.
func (ss *sessions) navigate(w http.ResponseWriter, r *http.Request, asPath string) *session {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	if c, err := r.Cookie(SessionCookie); err == nil {
		if s, ok := ss.cache.Get(c.Value); ok {
			s.router.Push(asPath)
			return s
		}
	}

	nav, router, store := ss.site.NewSession(asPath)
	unsubscribe := store.Subscribe(ss.onLevel)
	unmount := nav.Mount()

	s := &session{
		nav:    nav,
		router: router,
		teardown: func() {
			unmount()
			unsubscribe()
		},
	}

	id := uuid.NewString()
	ss.cache.Add(id, s)

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return s
}

// len returns the number of live sessions.
func (ss *sessions) len() int {
	return ss.cache.Len()
}

// purge unmounts every session.
func (ss *sessions) purge() {
	ss.cache.Purge()
}
