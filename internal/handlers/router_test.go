package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-desk/internal/library"
	"library-desk/internal/logging"
	"library-desk/internal/redisstore"
	"library-desk/internal/session"
)

type apiResponse struct {
	Command string          `json:"command"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

type testServer struct {
	t       *testing.T
	handler http.Handler
}

func newTestServer(t *testing.T, opts ...library.LoanOption) *testServer {
	t.Helper()
	mr := miniredis.RunT(t)
	store := redisstore.NewClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "")
	t.Cleanup(func() { store.Close() })

	log := logging.Discard()
	desk := library.NewDesk(library.Stores{Credentials: store, Catalog: store, Loans: store}, log, opts...)
	return &testServer{t: t, handler: NewRouter(desk, session.NewManager(0), log)}
}

func (s *testServer) do(method, path, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	s.t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if strings.HasPrefix(body, "{") {
		req.Header.Set("Content-Type", "application/json")
	} else if body != "" {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) login(username, password string) *http.Cookie {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/login", `{"username":"`+username+`","password":"`+password+`"}`, nil)
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	s.t.Fatal("brak cookie sesji")
	return nil
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) apiResponse {
	t.Helper()
	var resp apiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return resp
}

func TestSetupGate(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(http.MethodGet, "/books?name=Dune", "", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, string(library.KindSetupRequired), decode(t, rec).Error)

	rec = srv.do(http.MethodPost, "/setup", `{"admins":[{"username":"alice","password":"short"}]}`, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = srv.do(http.MethodPost, "/setup", `{"admins":[{"username":"alice","password":"alice1234"}]}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = srv.do(http.MethodPost, "/setup", "username=mallory&password=mallory123", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(http.MethodGet, "/", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var index struct {
		Commands      []string `json:"commands"`
		SetupRequired bool     `json:"setup_required"`
	}
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &index))
	assert.Len(t, index.Commands, len(library.Commands()))
	assert.False(t, index.SetupRequired)
}

func TestLibraryFlow(t *testing.T) {
	srv := newTestServer(t)
	rec := srv.do(http.MethodPost, "/setup", "username=alice&password=alice1234", nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	alice := srv.login("alice", "alice1234")

	rec = srv.do(http.MethodPost, "/staff/books", `{"name":"Dune Messiah","author":"Herbert","copies":2}`, alice)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = srv.do(http.MethodPost, "/staff/books", `{"name":"Dune","author":"Herbert","copies":"many"}`, alice)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(http.MethodPost, "/register", "username=bob&password=bobby1234", nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = srv.do(http.MethodPost, "/register", "username=alice&password=bobby1234", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, string(library.KindDuplicateUsername), decode(t, rec).Error)

	rec = srv.do(http.MethodPost, "/login", `{"username":"bob","password":"wrong1234"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = srv.do(http.MethodPost, "/login", `{"username":"nobody","password":"wrong1234"}`, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	bob := srv.login("bob", "bobby1234")

	rec = srv.do(http.MethodPost, "/staff/books", `{"name":"Emma","author":"Austen","copies":1}`, bob)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = srv.do(http.MethodGet, "/loans", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	borrow := `{"name":"Dune Messiah","author":"Herbert"}`
	for i := 0; i < 2; i++ {
		rec = srv.do(http.MethodPost, "/loans", borrow, bob)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}
	rec = srv.do(http.MethodPost, "/loans", borrow, bob)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, string(library.KindOutOfStock), decode(t, rec).Error)

	rec = srv.do(http.MethodGet, "/loans", "", bob)
	require.Equal(t, http.StatusOK, rec.Code)
	var loans []map[string]interface{}
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &loans))
	assert.Len(t, loans, 2)
	assert.Equal(t, false, loans[0]["expired"])

	rec = srv.do(http.MethodGet, "/books?name="+url.QueryEscape("Dune Messiah"), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var books []map[string]interface{}
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &books))
	require.Len(t, books, 1)
	assert.EqualValues(t, 0, books[0]["available_copies"])

	rec = srv.do(http.MethodGet, "/staff/overdue", "", alice)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(http.MethodPost, "/loans/return", "name=Dune+Messiah&author=Herbert", bob)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = srv.do(http.MethodDelete, "/staff/books/Dune%20Messiah", "", alice)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = srv.do(http.MethodDelete, "/staff/books/Dune%20Messiah", "", alice)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = srv.do(http.MethodPost, "/logout", "", bob)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = srv.do(http.MethodGet, "/loans", "", bob)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBorrowMessageUsesLoanPeriod(t *testing.T) {
	srv := newTestServer(t, library.WithLoanPeriod(7*24*time.Hour))
	rec := srv.do(http.MethodPost, "/setup", "username=alice&password=alice1234", nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	alice := srv.login("alice", "alice1234")

	rec = srv.do(http.MethodPost, "/staff/books", `{"name":"Emma","author":"Austen","copies":1}`, alice)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = srv.do(http.MethodPost, "/loans", `{"name":"Emma","author":"Austen"}`, alice)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "zwróć książkę w ciągu 7 dni", decode(t, rec).Message)
}

func TestDeleteBookWithPercentInName(t *testing.T) {
	srv := newTestServer(t)
	rec := srv.do(http.MethodPost, "/setup", "username=alice&password=alice1234", nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	alice := srv.login("alice", "alice1234")

	for _, name := range []string{"50%", "50%25", "AC/DC"} {
		body := `{"name":"` + name + `","author":"Tester","copies":1}`
		rec = srv.do(http.MethodPost, "/staff/books", body, alice)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec = srv.do(http.MethodDelete, "/staff/books/50%2525", "", alice)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = srv.do(http.MethodGet, "/books?name="+url.QueryEscape("50%25"), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var books []map[string]interface{}
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &books))
	assert.Empty(t, books)

	rec = srv.do(http.MethodGet, "/books?name="+url.QueryEscape("50%"), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &books))
	assert.Len(t, books, 1)

	rec = srv.do(http.MethodDelete, "/staff/books/AC%2FDC", "", alice)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusServiceUnavailable, statusFor(library.KindStoreUnavailable))
	assert.Equal(t, http.StatusUnprocessableEntity, statusFor(library.KindWeakPassword))
	assert.Equal(t, http.StatusInternalServerError, statusFor("Unknown"))
}
