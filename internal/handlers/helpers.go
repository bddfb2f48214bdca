package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"library-desk/internal/library"
	"library-desk/internal/middleware"
	"library-desk/internal/models"
)

// Response to koperta JSON zwracana przez wszystkie endpointy
type Response struct {
	Command library.Command `json:"command,omitempty"`
	Data    interface{}     `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
	Message string          `json:"message,omitempty"`
}

// statusFor mapuje rodzaj błędu na kod HTTP
func statusFor(kind library.ErrorKind) int {
	switch kind {
	case library.KindInvalidInput:
		return http.StatusBadRequest
	case library.KindIncorrectPassword:
		return http.StatusUnauthorized
	case library.KindForbidden:
		return http.StatusForbidden
	case library.KindUserNotFound, library.KindBookNotFound:
		return http.StatusNotFound
	case library.KindDuplicateUsername, library.KindOutOfStock, library.KindSetupRequired:
		return http.StatusConflict
	case library.KindWeakPassword:
		return http.StatusUnprocessableEntity
	case library.KindStoreUnavailable:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, body Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeResult renderuje wynik polecenia; okStatus używany przy sukcesie
func writeResult(w http.ResponseWriter, log logrus.FieldLogger, res library.Result, okStatus int, message string) {
	if !res.OK() {
		if res.Err.Kind == library.KindStoreUnavailable {
			log.WithError(res.Err).WithField("command", res.Command).Error("błąd bazy danych")
		}
		writeJSON(w, statusFor(res.Err.Kind), Response{
			Command: res.Command,
			Error:   string(res.Err.Kind),
			Message: res.Err.Message,
		})
		return
	}

	writeJSON(w, okStatus, Response{
		Command: res.Command,
		Data:    res.Value,
		Message: message,
	})
}

// decodeRequest czyta body jako JSON albo formularz
func decodeRequest(r *http.Request, dst interface{}, form func(get func(string) string)) error {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		dec := json.NewDecoder(r.Body)
		return dec.Decode(dst)
	}
	if err := r.ParseForm(); err != nil {
		return err
	}
	form(r.FormValue)
	return nil
}

func badRequest(w http.ResponseWriter, cmd library.Command, msg string) {
	writeJSON(w, http.StatusBadRequest, Response{
		Command: cmd,
		Error:   string(library.KindInvalidInput),
		Message: msg,
	})
}

func sessionFrom(r *http.Request) *models.Session {
	return middleware.GetSessionFromContext(r.Context())
}
