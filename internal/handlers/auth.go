package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"library-desk/internal/library"
	"library-desk/internal/models"
	"library-desk/internal/session"
)

// AuthHandler obsługuje konfigurację administratorów, rejestrację i logowanie
type AuthHandler struct {
	desk     *library.Desk
	sessions *session.Manager
	log      logrus.FieldLogger
}

// NewAuthHandler tworzy nowy handler autoryzacji
func NewAuthHandler(desk *library.Desk, sessions *session.Manager, log logrus.FieldLogger) *AuthHandler {
	return &AuthHandler{desk: desk, sessions: sessions, log: log}
}

type credentialsBody struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (b *credentialsBody) fromForm(get func(string) string) {
	b.Username = get("username")
	b.Password = get("password")
}

// HandleSetup tworzy pierwszych administratorów (POST /setup)
func (h *AuthHandler) HandleSetup(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Admins []models.Credentials `json:"admins"`
	}
	err := decodeRequest(r, &body, func(get func(string) string) {
		if u := get("username"); u != "" {
			body.Admins = []models.Credentials{{Username: u, Password: get("password")}}
		}
	})
	if err != nil {
		badRequest(w, library.CmdBootstrap, "nieprawidłowe dane")
		return
	}

	res := h.desk.Execute(r.Context(), nil, library.Request{
		Command: library.CmdBootstrap,
		Admins:  body.Admins,
	})
	writeResult(w, h.log, res, http.StatusCreated, "konfiguracja zakończona")
}

// HandleRegister obsługuje rejestrację (POST /register)
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var body credentialsBody
	if err := decodeRequest(r, &body, body.fromForm); err != nil {
		badRequest(w, library.CmdRegister, "nieprawidłowe dane")
		return
	}

	res := h.desk.Execute(r.Context(), nil, library.Request{
		Command:  library.CmdRegister,
		Username: body.Username,
		Password: body.Password,
	})
	writeResult(w, h.log, res, http.StatusCreated, "konto utworzone")
}

// HandleLogin obsługuje logowanie (POST /login) i ustawia cookie sesji
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var body credentialsBody
	if err := decodeRequest(r, &body, body.fromForm); err != nil {
		badRequest(w, library.CmdLogin, "nieprawidłowe dane")
		return
	}

	res := h.desk.Execute(r.Context(), nil, library.Request{
		Command:  library.CmdLogin,
		Username: body.Username,
		Password: body.Password,
	})
	if res.OK() {
		identity := res.Value.(models.Identity)
		sess := h.sessions.CreateSession(identity)
		h.sessions.SetCookie(w, sess.ID)
		res.Value = sess
	}
	writeResult(w, h.log, res, http.StatusOK, "zalogowano")
}

// HandleLogout obsługuje wylogowanie (POST /logout)
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if sess, exists := h.sessions.FromRequest(r); exists {
		h.sessions.DeleteSession(sess.ID)
	}

	session.ClearCookie(w)
	w.WriteHeader(http.StatusNoContent)
}
