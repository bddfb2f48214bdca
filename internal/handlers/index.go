package handlers

import (
	"net/http"

	"library-desk/internal/library"
)

// IndexHandler obsługuje stronę główną i health check
type IndexHandler struct {
	desk *library.Desk
}

// NewIndexHandler tworzy nowy handler strony głównej
func NewIndexHandler(desk *library.Desk) *IndexHandler {
	return &IndexHandler{desk: desk}
}

// ServeHTTP obsługuje żądanie GET / - lista poleceń i stan konfiguracji
func (h *IndexHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	needed, err := h.desk.Accounts.NeedsBootstrap(r.Context())
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, Response{
			Error:   string(library.KindStoreUnavailable),
			Message: "baza danych niedostępna",
		})
		return
	}

	data := map[string]interface{}{
		"commands":       library.Commands(),
		"setup_required": needed,
	}
	if sess := sessionFrom(r); sess != nil {
		data["user"] = sess.Identity()
	}

	writeJSON(w, http.StatusOK, Response{Data: data})
}

// Health zwraca 200 gdy proces działa (GET /health)
func (h *IndexHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Response{Message: "ok"})
}
