package library

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"library-desk/internal/models"
)

// AccountService obsługuje rejestrację, logowanie i pierwszą konfigurację administratorów
type AccountService struct {
	store CredentialStore
	log   logrus.FieldLogger
}

// NewAccountService tworzy usługę kont
func NewAccountService(store CredentialStore, log logrus.FieldLogger) *AccountService {
	return &AccountService{store: store, log: log}
}

// NeedsBootstrap zwraca true gdy nie istnieje żaden administrator
func (s *AccountService) NeedsBootstrap(ctx context.Context) (bool, error) {
	ok, err := s.store.HasAdmins(ctx)
	if err != nil {
		return false, storeError("sprawdzanie administratorów", err)
	}
	return !ok, nil
}

// BootstrapAdmins tworzy pierwszych administratorów. Dostępne tylko gdy zbiór administratorów jest pusty.
func (s *AccountService) BootstrapAdmins(ctx context.Context, entries []models.Credentials) error {
	if len(entries) == 0 {
		return newError(KindInvalidInput, "dodaj co najmniej jednego administratora")
	}

	needed, err := s.NeedsBootstrap(ctx)
	if err != nil {
		return err
	}
	if !needed {
		return newError(KindInvalidInput, "konfiguracja administratorów została już wykonana")
	}

	seen := make(map[string]bool, len(entries))
	accounts := make([]*models.Account, 0, len(entries))
	for _, e := range entries {
		username := strings.TrimSpace(e.Username)
		if username == "" {
			return newError(KindInvalidInput, "nazwa użytkownika jest wymagana")
		}
		if !IsStrongPassword(e.Password) {
			return newError(KindWeakPassword, "hasło musi mieć min. 8 znaków, litery i cyfry")
		}
		if seen[username] {
			return newError(KindDuplicateUsername, "administrator "+username+" jest już na liście")
		}
		seen[username] = true
		accounts = append(accounts, &models.Account{Username: username, Password: e.Password})
	}

	if err := s.store.InsertAdmins(ctx, accounts); err != nil {
		return storeError("zapis administratorów", err)
	}

	s.log.WithField("count", len(accounts)).Info("utworzono administratorów")
	return nil
}

// Register zakłada konto czytelnika
func (s *AccountService) Register(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return newError(KindInvalidInput, "nazwa użytkownika jest wymagana")
	}

	member, err := s.store.FindMember(ctx, username)
	if err != nil {
		return storeError("wyszukiwanie czytelnika", err)
	}
	if member != nil {
		return newError(KindDuplicateUsername, "nazwa użytkownika jest już zajęta")
	}

	admin, err := s.store.FindAdmin(ctx, username)
	if err != nil {
		return storeError("wyszukiwanie administratora", err)
	}
	if admin != nil {
		return newError(KindDuplicateUsername, "ta nazwa użytkownika jest zarezerwowana")
	}

	if !IsStrongPassword(password) {
		return newError(KindWeakPassword, "hasło musi mieć min. 8 znaków, litery i cyfry")
	}

	if err := s.store.InsertMember(ctx, &models.Account{Username: username, Password: password}); err != nil {
		return storeError("zapis czytelnika", err)
	}

	s.log.WithField("username", username).Info("zarejestrowano czytelnika")
	return nil
}

// Authenticate sprawdza dane logowania. Konto administratora ma pierwszeństwo.
func (s *AccountService) Authenticate(ctx context.Context, username, password string) (models.Identity, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return models.Identity{}, newError(KindInvalidInput, "nazwa użytkownika jest wymagana")
	}

	admin, err := s.store.FindAdmin(ctx, username)
	if err != nil {
		return models.Identity{}, storeError("wyszukiwanie administratora", err)
	}
	member, err := s.store.FindMember(ctx, username)
	if err != nil {
		return models.Identity{}, storeError("wyszukiwanie czytelnika", err)
	}

	if admin == nil && member == nil {
		return models.Identity{}, newError(KindUserNotFound, "użytkownik nie istnieje")
	}

	if admin != nil && admin.Password == password {
		s.log.WithField("username", username).Info("zalogowano administratora")
		return models.Identity{Username: username, Role: models.RoleAdministrator}, nil
	}
	if member != nil && member.Password == password {
		s.log.WithField("username", username).Info("zalogowano czytelnika")
		return models.Identity{Username: username, Role: models.RoleMember}, nil
	}

	return models.Identity{}, newError(KindIncorrectPassword, "nieprawidłowe hasło")
}
