package session

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"library-desk/internal/models"
)

const (
	// CookieName to nazwa cookie z ID sesji
	CookieName = "session_id"
	// DefaultTTL to domyślny czas życia sesji
	DefaultTTL = 24 * time.Hour
)

// Manager zarządza sesjami użytkowników
type Manager struct {
	sessions map[string]*models.Session
	mu       sync.RWMutex
	ttl      time.Duration
	now      func() time.Time
}

// NewManager tworzy manager sesji
func NewManager(ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{
		sessions: make(map[string]*models.Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// CreateSession tworzy nową sesję dla zalogowanej tożsamości
func (m *Manager) CreateSession(id models.Identity) *models.Session {
	now := m.now()
	sess := &models.Session{
		ID:        uuid.NewString(),
		Username:  id.Username,
		Role:      id.Role,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}

	m.mu.Lock()
	m.sessions[sess.ID] = sess
	m.mu.Unlock()

	return sess
}

// GetSession pobiera sesję po ID
func (m *Manager) GetSession(sessionID string) (*models.Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sess, exists := m.sessions[sessionID]
	if !exists {
		return nil, false
	}

	// Sprawdź czy sesja nie wygasła
	if m.now().After(sess.ExpiresAt) {
		return nil, false
	}

	return sess, true
}

// DeleteSession usuwa sesję
func (m *Manager) DeleteSession(sessionID string) {
	m.mu.Lock()
	delete(m.sessions, sessionID)
	m.mu.Unlock()
}

// Count zwraca liczbę przechowywanych sesji (również wygasłych, jeszcze nie usuniętych)
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// SetCookie ustawia cookie z ID sesji
func (m *Manager) SetCookie(w http.ResponseWriter, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie usuwa cookie z sesją
func ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// FromRequest pobiera sesję na podstawie cookie
func (m *Manager) FromRequest(r *http.Request) (*models.Session, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil, false
	}
	return m.GetSession(cookie.Value)
}

// RunCleanup usuwa wygasłe sesje co interval, aż do anulowania ctx
func (m *Manager) RunCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.removeExpired()
		}
	}
}

func (m *Manager) removeExpired() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for id, sess := range m.sessions {
		if now.After(sess.ExpiresAt) {
			delete(m.sessions, id)
		}
	}
}
