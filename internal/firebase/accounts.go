package firebase

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"library-desk/internal/models"
)

const (
	// MembersCollection to nazwa kolekcji czytelników w Firestore
	MembersCollection = "userinfo"
	// AdminsCollection to nazwa kolekcji administratorów w Firestore
	AdminsCollection = "admin"
)

// FindMember pobiera czytelnika po nazwie użytkownika; nil gdy nie istnieje
func (c *Client) FindMember(ctx context.Context, username string) (*models.Account, error) {
	return c.findAccount(ctx, MembersCollection, username)
}

// FindAdmin pobiera administratora po nazwie użytkownika; nil gdy nie istnieje
func (c *Client) FindAdmin(ctx context.Context, username string) (*models.Account, error) {
	return c.findAccount(ctx, AdminsCollection, username)
}

func (c *Client) findAccount(ctx context.Context, collection, username string) (*models.Account, error) {
	iter := c.Firestore.Collection(collection).
		Where("username", "==", username).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("błąd wyszukiwania konta: %w", err)
	}

	var account models.Account
	if err := doc.DataTo(&account); err != nil {
		return nil, fmt.Errorf("błąd parsowania danych konta: %w", err)
	}
	account.ID = doc.Ref.ID

	return &account, nil
}

// InsertMember tworzy nowego czytelnika
func (c *Client) InsertMember(ctx context.Context, account *models.Account) error {
	if account == nil {
		return fmt.Errorf("konto nie może być nil")
	}

	docRef := c.Firestore.Collection(MembersCollection).NewDoc()
	if _, err := docRef.Create(ctx, account); err != nil {
		return fmt.Errorf("błąd zapisywania czytelnika: %w", err)
	}

	account.ID = docRef.ID
	return nil
}

// InsertAdmins tworzy wszystkich administratorów w jednej transakcji
func (c *Client) InsertAdmins(ctx context.Context, accounts []*models.Account) error {
	if len(accounts) == 0 {
		return nil
	}

	refs := make([]*firestore.DocumentRef, len(accounts))
	for i := range accounts {
		refs[i] = c.Firestore.Collection(AdminsCollection).NewDoc()
	}

	err := c.Firestore.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		for i, a := range accounts {
			if err := tx.Create(refs[i], a); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("błąd zapisywania administratorów: %w", err)
	}

	for i, a := range accounts {
		a.ID = refs[i].ID
	}
	return nil
}

// HasAdmins sprawdza czy kolekcja administratorów nie jest pusta
func (c *Client) HasAdmins(ctx context.Context) (bool, error) {
	iter := c.Firestore.Collection(AdminsCollection).Limit(1).Documents(ctx)
	defer iter.Stop()

	_, err := iter.Next()
	if err == iterator.Done {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("błąd sprawdzania administratorów: %w", err)
	}
	return true, nil
}
