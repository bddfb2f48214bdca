package library_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-desk/internal/library"
)

func TestAddBook(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	admin := env.withAdmin(t)

	book, err := env.desk.Catalog.AddBook(ctx, admin, " Dune ", "Herbert", " 2 ")
	require.NoError(t, err)
	assert.NotEmpty(t, book.ID)
	assert.Equal(t, "Dune", book.Name)
	assert.Equal(t, 2, book.AvailableCopies)

	// ta sama nazwa tworzy osobny rekord
	_, err = env.desk.Catalog.AddBook(ctx, admin, "Dune", "Herbert", "1")
	require.NoError(t, err)

	books, err := env.desk.Catalog.SearchBooks(ctx, "Dune")
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, 2, books[0].AvailableCopies)
	assert.Equal(t, 1, books[1].AvailableCopies)
}

func TestAddBookValidation(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	admin := env.withAdmin(t)

	tests := []struct {
		name, title, author, copies string
	}{
		{"blank name", "  ", "Herbert", "2"},
		{"blank author", "Dune", "", "2"},
		{"blank copies", "Dune", "Herbert", ""},
		{"not a number", "Dune", "Herbert", "two"},
		{"fraction", "Dune", "Herbert", "1.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.desk.Catalog.AddBook(ctx, admin, tt.title, tt.author, tt.copies)
			assert.Equal(t, library.KindInvalidInput, library.KindOf(err))
		})
	}

	books, err := env.desk.Catalog.SearchBooks(ctx, "Dune")
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestCatalogRequiresAdmin(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.withAdmin(t)

	_, err := env.desk.Catalog.AddBook(ctx, memberSession("bob"), "Dune", "Herbert", "2")
	assert.Equal(t, library.KindForbidden, library.KindOf(err))

	_, err = env.desk.Catalog.AddBook(ctx, nil, "Dune", "Herbert", "2")
	assert.Equal(t, library.KindForbidden, library.KindOf(err))

	err = env.desk.Catalog.RemoveBook(ctx, memberSession("bob"), "Dune")
	assert.Equal(t, library.KindForbidden, library.KindOf(err))
}

func TestRemoveBook(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	admin := env.withAdmin(t)

	env.addBook(t, admin, "Dune", "Herbert", "2")
	env.addBook(t, admin, "Dune", "Someone Else", "1")

	require.NoError(t, env.desk.Catalog.RemoveBook(ctx, admin, "Dune"))

	books, err := env.desk.Catalog.SearchBooks(ctx, "Dune")
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Someone Else", books[0].Author)

	require.NoError(t, env.desk.Catalog.RemoveBook(ctx, admin, "Dune"))

	err = env.desk.Catalog.RemoveBook(ctx, admin, "Dune")
	assert.Equal(t, library.KindBookNotFound, library.KindOf(err))

	err = env.desk.Catalog.RemoveBook(ctx, admin, " ")
	assert.Equal(t, library.KindInvalidInput, library.KindOf(err))
}

func TestSearchBooks(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	admin := env.withAdmin(t)
	env.addBook(t, admin, "Dune", "Herbert", "2")

	books, err := env.desk.Catalog.SearchBooks(ctx, "dune")
	require.NoError(t, err)
	assert.Empty(t, books, "wyszukiwanie rozróżnia wielkość liter")

	books, err = env.desk.Catalog.SearchBooks(ctx, " Dune ")
	require.NoError(t, err)
	assert.Len(t, books, 1)

	_, err = env.desk.Catalog.SearchBooks(ctx, "")
	assert.Equal(t, library.KindInvalidInput, library.KindOf(err))
}
