package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"library-desk/internal/library"
	"library-desk/internal/models"
	"library-desk/internal/session"
)

// Klucze do przechowywania wartości w context
type contextKey string

const sessionContextKey contextKey = "session"

// SessionMiddleware dodaje sesję do kontekstu jeśli istnieje
func SessionMiddleware(m *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if sess, exists := m.FromRequest(r); exists {
				r = r.WithContext(WithSession(r.Context(), sess))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth wymaga zalogowania użytkownika
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetSessionFromContext(r.Context()) == nil {
			writeError(w, http.StatusUnauthorized, library.KindForbidden, "wymagane logowanie")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAuthRole wymaga zalogowania i określonej roli
func RequireAuthRole(role models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := GetSessionFromContext(r.Context())
			if sess == nil {
				writeError(w, http.StatusUnauthorized, library.KindForbidden, "wymagane logowanie")
				return
			}

			if sess.Role != role {
				writeError(w, http.StatusForbidden, library.KindForbidden, "brak uprawnień")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireSetup blokuje wszystkie żądania dopóki nie istnieje administrator
func RequireSetup(needsBootstrap func(ctx context.Context) (bool, error), log logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			needed, err := needsBootstrap(r.Context())
			if err != nil {
				log.WithError(err).Error("nie można sprawdzić konfiguracji administratorów")
				writeError(w, http.StatusServiceUnavailable, library.KindStoreUnavailable, "baza danych niedostępna")
				return
			}
			if needed {
				writeError(w, http.StatusConflict, library.KindSetupRequired, "wymagana konfiguracja administratorów (POST /setup)")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WithSession zwraca kontekst z sesją
func WithSession(ctx context.Context, sess *models.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, sess)
}

// GetSessionFromContext pobiera sesję z kontekstu
func GetSessionFromContext(ctx context.Context) *models.Session {
	sess, ok := ctx.Value(sessionContextKey).(*models.Session)
	if !ok {
		return nil
	}
	return sess
}

func writeError(w http.ResponseWriter, status int, kind library.ErrorKind, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"error":   string(kind),
		"message": msg,
	})
}
