package redisstore

import (
	"context"
	"strconv"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	redis "github.com/redis/go-redis/v9"

	"library-desk/internal/models"
)

// BooksCollection to lista identyfikatorów książek w kolejności dodania
const BooksCollection = "books"

func (c *Client) bookKey(id string) string {
	return c.key("book", id)
}

// InsertBook zapisuje nową książkę jako hash i dopisuje jej ID na koniec listy
func (c *Client) InsertBook(ctx context.Context, book *models.Book) error {
	if book == nil {
		return errors.New("książka nie może być nil")
	}

	id := uuid.NewString()
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, c.bookKey(id),
			"name", book.Name,
			"author", book.Author,
			"number", book.AvailableCopies,
		)
		pipe.RPush(ctx, c.key(BooksCollection), id)
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "zapis książki")
	}

	book.ID = id
	return nil
}

// DeleteFirstBookByName usuwa pierwszą (najstarszą) książkę o podanej nazwie
func (c *Client) DeleteFirstBookByName(ctx context.Context, name string) (bool, error) {
	book, err := c.firstBook(ctx, func(b *models.Book) bool { return b.Name == name })
	if err != nil || book == nil {
		return false, err
	}

	_, err = c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, c.bookKey(book.ID))
		pipe.LRem(ctx, c.key(BooksCollection), 1, book.ID)
		return nil
	})
	if err != nil {
		return false, errors.Wrap(err, "usuwanie książki")
	}
	return true, nil
}

// FindBooksByName zwraca wszystkie książki o dokładnie takiej nazwie
func (c *Client) FindBooksByName(ctx context.Context, name string) ([]*models.Book, error) {
	books, err := c.listBooks(ctx)
	if err != nil {
		return nil, err
	}

	var result []*models.Book
	for _, b := range books {
		if b.Name == name {
			result = append(result, b)
		}
	}
	return result, nil
}

// FindBook zwraca pierwszą książkę pasującą do (name, author) albo nil
func (c *Client) FindBook(ctx context.Context, name, author string) (*models.Book, error) {
	return c.firstBook(ctx, func(b *models.Book) bool {
		return b.Name == name && b.Author == author
	})
}

// AdjustCopies zmienia liczbę dostępnych egzemplarzy książki o podanym ID
func (c *Client) AdjustCopies(ctx context.Context, bookID string, delta int) error {
	n, err := c.rdb.Exists(ctx, c.bookKey(bookID)).Result()
	if err != nil {
		return errors.Wrap(err, "sprawdzanie książki")
	}
	if n == 0 {
		return errors.Errorf("książka %s nie istnieje", bookID)
	}

	if err := c.rdb.HIncrBy(ctx, c.bookKey(bookID), "number", int64(delta)).Err(); err != nil {
		return errors.Wrap(err, "aktualizacja stanu książki")
	}
	return nil
}

// AdjustCopiesByTitle zmienia stan pierwszej książki pasującej do (name, author)
func (c *Client) AdjustCopiesByTitle(ctx context.Context, name, author string, delta int) (bool, error) {
	book, err := c.FindBook(ctx, name, author)
	if err != nil || book == nil {
		return false, err
	}
	if err := c.AdjustCopies(ctx, book.ID, delta); err != nil {
		return false, err
	}
	return true, nil
}

func (c *Client) firstBook(ctx context.Context, match func(*models.Book) bool) (*models.Book, error) {
	books, err := c.listBooks(ctx)
	if err != nil {
		return nil, err
	}
	for _, b := range books {
		if match(b) {
			return b, nil
		}
	}
	return nil, nil
}

// listBooks pobiera wszystkie książki w kolejności dodania
func (c *Client) listBooks(ctx context.Context) ([]*models.Book, error) {
	ids, err := c.rdb.LRange(ctx, c.key(BooksCollection), 0, -1).Result()
	if err != nil {
		return nil, errors.Wrap(err, "pobieranie listy książek")
	}
	if len(ids) == 0 {
		return nil, nil
	}

	cmds := make([]*redis.MapStringStringCmd, len(ids))
	_, err = c.rdb.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, id := range ids {
			cmds[i] = pipe.HGetAll(ctx, c.bookKey(id))
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "pobieranie książek")
	}

	books := make([]*models.Book, 0, len(ids))
	for i, cmd := range cmds {
		fields := cmd.Val()
		if len(fields) == 0 {
			continue
		}
		book, err := bookFromHash(ids[i], fields)
		if err != nil {
			return nil, err
		}
		books = append(books, book)
	}
	return books, nil
}

func bookFromHash(id string, fields map[string]string) (*models.Book, error) {
	number, err := strconv.Atoi(fields["number"])
	if err != nil {
		return nil, errors.Wrapf(err, "nieprawidłowy stan książki %s", id)
	}
	return &models.Book{
		ID:              id,
		Name:            fields["name"],
		Author:          fields["author"],
		AvailableCopies: number,
	}, nil
}
