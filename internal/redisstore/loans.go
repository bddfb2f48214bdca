package redisstore

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	redis "github.com/redis/go-redis/v9"

	"library-desk/internal/models"
)

// LoansCollection to zbiór posortowany ID wypożyczeń (score = data wypożyczenia w ms)
const LoansCollection = "borrows"

func (c *Client) loanKey(id string) string {
	return c.key("borrow", id)
}

func (c *Client) userLoansKey(username string) string {
	return c.key(LoansCollection, "user", username)
}

// InsertLoan zapisuje wypożyczenie i dopisuje je do indeksów
func (c *Client) InsertLoan(ctx context.Context, loan *models.Loan) error {
	if loan == nil {
		return errors.New("wypożyczenie nie może być nil")
	}

	id := uuid.NewString()
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, c.loanKey(id),
			"username", loan.Username,
			"name", loan.BookName,
			"author", loan.BookAuthor,
			"date", loan.BorrowedAt.UnixNano(),
		)
		pipe.ZAdd(ctx, c.key(LoansCollection), redis.Z{
			Score:  float64(loan.BorrowedAt.UnixMilli()),
			Member: id,
		})
		pipe.RPush(ctx, c.userLoansKey(loan.Username), id)
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "zapis wypożyczenia")
	}

	loan.ID = id
	return nil
}

// DeleteLoan usuwa najstarsze wypożyczenie pasujące do (username, name, author)
func (c *Client) DeleteLoan(ctx context.Context, username, bookName, bookAuthor string) (bool, error) {
	loans, err := c.ListLoansByUser(ctx, username)
	if err != nil {
		return false, err
	}

	for _, loan := range loans {
		if loan.BookName != bookName || loan.BookAuthor != bookAuthor {
			continue
		}

		_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, c.loanKey(loan.ID))
			pipe.ZRem(ctx, c.key(LoansCollection), loan.ID)
			pipe.LRem(ctx, c.userLoansKey(username), 1, loan.ID)
			return nil
		})
		if err != nil {
			return false, errors.Wrap(err, "usuwanie wypożyczenia")
		}
		return true, nil
	}

	return false, nil
}

// ListLoansByUser zwraca wypożyczenia użytkownika w kolejności wypożyczenia
func (c *Client) ListLoansByUser(ctx context.Context, username string) ([]*models.Loan, error) {
	ids, err := c.rdb.LRange(ctx, c.userLoansKey(username), 0, -1).Result()
	if err != nil {
		return nil, errors.Wrap(err, "pobieranie wypożyczeń użytkownika")
	}
	return c.loadLoans(ctx, ids)
}

// ListLoansBorrowedBefore zwraca wypożyczenia z datą wcześniejszą niż cutoff
func (c *Client) ListLoansBorrowedBefore(ctx context.Context, cutoff time.Time) ([]*models.Loan, error) {
	ids, err := c.rdb.ZRangeByScore(ctx, c.key(LoansCollection), &redis.ZRangeBy{
		Min: "-inf",
		Max: strconv.FormatInt(cutoff.UnixMilli(), 10),
	}).Result()
	if err != nil {
		return nil, errors.Wrap(err, "pobieranie przeterminowanych wypożyczeń")
	}

	loans, err := c.loadLoans(ctx, ids)
	if err != nil {
		return nil, err
	}

	// score ma dokładność milisekund, dokładne porównanie na dacie z dokumentu
	result := loans[:0]
	for _, loan := range loans {
		if loan.BorrowedAt.Before(cutoff) {
			result = append(result, loan)
		}
	}
	return result, nil
}

func (c *Client) loadLoans(ctx context.Context, ids []string) ([]*models.Loan, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	cmds := make([]*redis.MapStringStringCmd, len(ids))
	_, err := c.rdb.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, id := range ids {
			cmds[i] = pipe.HGetAll(ctx, c.loanKey(id))
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "pobieranie wypożyczeń")
	}

	loans := make([]*models.Loan, 0, len(ids))
	for i, cmd := range cmds {
		fields := cmd.Val()
		if len(fields) == 0 {
			continue
		}
		nanos, err := strconv.ParseInt(fields["date"], 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "nieprawidłowa data wypożyczenia %s", ids[i])
		}
		loans = append(loans, &models.Loan{
			ID:         ids[i],
			Username:   fields["username"],
			BookName:   fields["name"],
			BookAuthor: fields["author"],
			BorrowedAt: time.Unix(0, nanos),
		})
	}
	return loans, nil
}
