package redisstore

import (
	"context"

	"github.com/pkg/errors"
	redis "github.com/redis/go-redis/v9"

	"library-desk/internal/models"
)

const (
	// MembersCollection i AdminsCollection to hashe username -> hasło
	MembersCollection = "userinfo"
	AdminsCollection  = "admin"
)

// FindMember pobiera konto czytelnika
func (c *Client) FindMember(ctx context.Context, username string) (*models.Account, error) {
	return c.findAccount(ctx, MembersCollection, username)
}

// FindAdmin pobiera konto administratora
func (c *Client) FindAdmin(ctx context.Context, username string) (*models.Account, error) {
	return c.findAccount(ctx, AdminsCollection, username)
}

func (c *Client) findAccount(ctx context.Context, collection, username string) (*models.Account, error) {
	password, err := c.rdb.HGet(ctx, c.key(collection), username).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "odczyt konta z %s", collection)
	}
	return &models.Account{ID: username, Username: username, Password: password}, nil
}

// InsertMember zapisuje konto czytelnika
func (c *Client) InsertMember(ctx context.Context, account *models.Account) error {
	if account == nil {
		return errors.New("konto nie może być nil")
	}
	if err := c.rdb.HSet(ctx, c.key(MembersCollection), account.Username, account.Password).Err(); err != nil {
		return errors.Wrap(err, "zapis czytelnika")
	}
	account.ID = account.Username
	return nil
}

// InsertAdmins zapisuje administratorów w jednej transakcji MULTI/EXEC
func (c *Client) InsertAdmins(ctx context.Context, accounts []*models.Account) error {
	if len(accounts) == 0 {
		return nil
	}

	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, a := range accounts {
			pipe.HSet(ctx, c.key(AdminsCollection), a.Username, a.Password)
		}
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "zapis administratorów")
	}

	for _, a := range accounts {
		a.ID = a.Username
	}
	return nil
}

// HasAdmins sprawdza czy istnieje choć jeden administrator
func (c *Client) HasAdmins(ctx context.Context) (bool, error) {
	n, err := c.rdb.HLen(ctx, c.key(AdminsCollection)).Result()
	if err != nil {
		return false, errors.Wrap(err, "liczenie administratorów")
	}
	return n > 0, nil
}
