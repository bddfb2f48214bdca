package library

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorIsMatchesKind(t *testing.T) {
	err := fmt.Errorf("borrow: %w", newError(KindOutOfStock, "brak dostępnych egzemplarzy"))

	assert.True(t, errors.Is(err, ErrOutOfStock))
	assert.False(t, errors.Is(err, ErrBookNotFound))
	assert.True(t, errors.Is(err, &Error{Kind: KindOutOfStock, Message: "brak dostępnych egzemplarzy"}))
	assert.False(t, errors.Is(err, &Error{Kind: KindOutOfStock, Message: "inny komunikat"}))
	assert.Equal(t, KindOutOfStock, KindOf(err))
}

func TestAsErrorWrapsUnknown(t *testing.T) {
	cause := errors.New("connection refused")

	e := AsError(cause)
	assert.Equal(t, KindStoreUnavailable, e.Kind)
	assert.ErrorIs(t, e, cause)
	assert.Contains(t, e.Error(), "connection refused")

	assert.Nil(t, AsError(nil))
	assert.Equal(t, ErrorKind(""), KindOf(nil))
}
