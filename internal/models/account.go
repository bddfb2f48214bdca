package models

// Role określa rolę konta w systemie
type Role string

const (
	RoleMember        Role = "member"        // Czytelnik - wypożycza, szuka i zwraca książki
	RoleAdministrator Role = "administrator" // Administrator - zarządza katalogiem i widzi zaległości
)

// Account reprezentuje konto czytelnika lub administratora.
// Hasło jest przechowywane jawnie, tak jak w istniejących danych.
type Account struct {
	ID       string `json:"-" firestore:"-"`
	Username string `json:"username" firestore:"username"`
	Password string `json:"-" firestore:"password"`
}

// Credentials to para nazwa użytkownika / hasło podana przez aktora
type Credentials struct {
	Username string `json:"username" yaml:"username"`
	Password string `json:"password" yaml:"password"`
}

// Identity to wynik poprawnego logowania
type Identity struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// IsAdmin sprawdza czy tożsamość należy do administratora
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdministrator
}
