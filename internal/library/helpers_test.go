package library_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"library-desk/internal/library"
	"library-desk/internal/logging"
	"library-desk/internal/models"
	"library-desk/internal/redisstore"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

type testEnv struct {
	desk  *library.Desk
	store *redisstore.Client
	redis *miniredis.Miniredis
	clock *fakeClock
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	mr := miniredis.RunT(t)
	store := redisstore.NewClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "test")
	t.Cleanup(func() { store.Close() })

	clock := &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	desk := library.NewDesk(
		library.Stores{Credentials: store, Catalog: store, Loans: store},
		logging.Discard(),
		library.WithClock(clock.Now),
	)

	return &testEnv{desk: desk, store: store, redis: mr, clock: clock}
}

// withAdmin wykonuje konfigurację z jednym administratorem i zwraca jego sesję
func (e *testEnv) withAdmin(t *testing.T) *models.Session {
	t.Helper()
	err := e.desk.Accounts.BootstrapAdmins(context.Background(), []models.Credentials{
		{Username: "alice", Password: "alice1234"},
	})
	require.NoError(t, err)
	return &models.Session{Username: "alice", Role: models.RoleAdministrator}
}

func memberSession(username string) *models.Session {
	return &models.Session{Username: username, Role: models.RoleMember}
}

func (e *testEnv) addBook(t *testing.T, admin *models.Session, name, author, copies string) *models.Book {
	t.Helper()
	book, err := e.desk.Catalog.AddBook(context.Background(), admin, name, author, copies)
	require.NoError(t, err)
	return book
}

func (e *testEnv) copies(t *testing.T, name, author string) int {
	t.Helper()
	book, err := e.store.FindBook(context.Background(), name, author)
	require.NoError(t, err)
	require.NotNil(t, book)
	return book.AvailableCopies
}
