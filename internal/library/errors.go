package library

import (
	"errors"
	"fmt"
)

// ErrorKind to zamknięty zbiór rodzajów błędów zwracanych przez usługi
type ErrorKind string

const (
	KindDuplicateUsername ErrorKind = "DuplicateUsername"
	KindWeakPassword      ErrorKind = "WeakPassword"
	KindUserNotFound      ErrorKind = "UserNotFound"
	KindIncorrectPassword ErrorKind = "IncorrectPassword"
	KindInvalidInput      ErrorKind = "InvalidInput"
	KindBookNotFound      ErrorKind = "BookNotFound"
	KindOutOfStock        ErrorKind = "OutOfStock"
	KindStoreUnavailable  ErrorKind = "StoreUnavailable"
	KindForbidden         ErrorKind = "Forbidden"
	KindSetupRequired     ErrorKind = "SetupRequired"
)

// Error to błąd usługi z określonym rodzajem
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is pozwala porównywać błędy po rodzaju: errors.Is(err, ErrOutOfStock)
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

// Wartości wzorcowe do użycia z errors.Is
var (
	ErrDuplicateUsername = &Error{Kind: KindDuplicateUsername}
	ErrWeakPassword      = &Error{Kind: KindWeakPassword}
	ErrUserNotFound      = &Error{Kind: KindUserNotFound}
	ErrIncorrectPassword = &Error{Kind: KindIncorrectPassword}
	ErrInvalidInput      = &Error{Kind: KindInvalidInput}
	ErrBookNotFound      = &Error{Kind: KindBookNotFound}
	ErrOutOfStock        = &Error{Kind: KindOutOfStock}
	ErrStoreUnavailable  = &Error{Kind: KindStoreUnavailable}
	ErrForbidden         = &Error{Kind: KindForbidden}
	ErrSetupRequired     = &Error{Kind: KindSetupRequired}
)

func newError(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// storeError opakowuje błąd bazy danych
func storeError(op string, err error) *Error {
	return &Error{Kind: KindStoreUnavailable, Message: "błąd bazy danych (" + op + ")", Err: err}
}

// AsError sprowadza dowolny błąd do *Error. Nieznane błędy traktowane są jak awaria bazy.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return storeError("nieznany błąd", err)
}

// KindOf zwraca rodzaj błędu lub pusty string dla nil
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	return AsError(err).Kind
}
