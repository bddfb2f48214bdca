package models

import "time"

// Session reprezentuje zalogowanego aktora. Przekazywana jawnie do każdej operacji.
type Session struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsAdmin sprawdza czy sesja należy do administratora
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdministrator
}

// Identity zwraca tożsamość właściciela sesji
func (s *Session) Identity() Identity {
	return Identity{Username: s.Username, Role: s.Role}
}
