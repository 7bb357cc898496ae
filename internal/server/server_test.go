package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libraryapi/internal/api/controller"
	"libraryapi/internal/api/models"
	"libraryapi/internal/api/repository"
	"libraryapi/internal/api/service"
	"libraryapi/internal/config"
)

type fakeBookRepo struct {
	books  map[int64]models.Book
	nextID int64
	err    error
}

func newFakeBookRepo() *fakeBookRepo {
	return &fakeBookRepo{books: map[int64]models.Book{}, nextID: 1}
}

func (f *fakeBookRepo) List(context.Context) ([]models.Book, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []models.Book{}
	for id := int64(1); id < f.nextID; id++ {
		if b, ok := f.books[id]; ok {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookRepo) GetByID(_ context.Context, id int64) (models.Book, bool, error) {
	if f.err != nil {
		return models.Book{}, false, f.err
	}
	b, ok := f.books[id]
	return b, ok, nil
}

func (f *fakeBookRepo) Create(_ context.Context, title, author string) (models.Book, error) {
	if f.err != nil {
		return models.Book{}, f.err
	}
	b := models.Book{ID: f.nextID, Title: title, Author: author}
	f.books[b.ID] = b
	f.nextID++
	return b, nil
}

func (f *fakeBookRepo) Update(_ context.Context, id int64, title, author string) (models.Book, bool, error) {
	b, ok := f.books[id]
	if !ok {
		return models.Book{}, false, nil
	}
	b.Title, b.Author = title, author
	f.books[id] = b
	return b, true, nil
}

func (f *fakeBookRepo) Delete(_ context.Context, id int64) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	if _, ok := f.books[id]; !ok {
		return false, nil
	}
	delete(f.books, id)
	return true, nil
}

func (f *fakeBookRepo) UpdateAvailability(_ context.Context, id int64, available bool) (models.Book, bool, error) {
	b, ok := f.books[id]
	if !ok {
		return models.Book{}, false, nil
	}
	b.Availability = available
	f.books[id] = b
	return b, true, nil
}

type fakeStudentRepo struct {
	repository.StudentRepository
}

type fakeUserRepo struct {
	repository.UserRepository
	accounts map[string]*models.Account
	nextID   int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{accounts: map[string]*models.Account{}, nextID: 1}
}

func (f *fakeUserRepo) GetAccountByUsername(_ context.Context, username string) (*models.Account, error) {
	return f.accounts[username], nil
}

func (f *fakeUserRepo) CreateAccount(_ context.Context, username, passwordHash, role string) (*models.Account, error) {
	account := &models.Account{ID: f.nextID, Username: username, PasswordHash: passwordHash, Role: role}
	f.nextID++
	f.accounts[username] = account
	return account, nil
}

const testSecret = "test-secret"

type fixture struct {
	engine   *gin.Engine
	bookRepo *fakeBookRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		JWT: config.JWT{Secret: testSecret, ExpiresIn: time.Hour},
	}

	bookRepo := newFakeBookRepo()
	userRepo := newFakeUserRepo()
	authService := service.NewAuthService(userRepo, []byte(testSecret), cfg.JWT.ExpiresIn)

	srv := NewServer(cfg,
		controller.NewBookController(bookRepo),
		controller.NewStudentController(&fakeStudentRepo{}),
		controller.NewUserController(userRepo),
		controller.NewAuthController(authService),
	)

	return &fixture{engine: srv.Engine(), bookRepo: bookRepo}
}

func (fx *fixture) do(method, path, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	fx.engine.ServeHTTP(rec, req)
	return rec
}

// register + login through the real endpoints, returning a usable token.
func (fx *fixture) loginAs(t *testing.T, username, role string) string {
	t.Helper()

	rec := fx.do(http.MethodPost, "/register", "",
		fmt.Sprintf(`{"username":%q,"password":"secret1","role":%q}`, username, role))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = fx.do(http.MethodPost, "/login", "",
		fmt.Sprintf(`{"username":%q,"password":"secret1"}`, username))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp models.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestRegisterResponseShape(t *testing.T) {
	fx := newFixture(t)

	rec := fx.do(http.MethodPost, "/register", "", `{"username":"alice","password":"secret1","role":"librarian"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"user_id":1,"username":"alice","role":"librarian"}`, rec.Body.String())
}

func TestRegisterDuplicateUsername(t *testing.T) {
	fx := newFixture(t)

	body := `{"username":"alice","password":"secret1","role":"member"}`
	rec := fx.do(http.MethodPost, "/register", "", body)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = fx.do(http.MethodPost, "/register", "", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"Username already exists"}`, rec.Body.String())
}

func TestLoginWrongPassword(t *testing.T) {
	fx := newFixture(t)
	fx.loginAs(t, "alice", "member")

	rec := fx.do(http.MethodPost, "/login", "", `{"username":"alice","password":"nope"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"Invalid username or password"}`, rec.Body.String())
}

func TestCreateBook(t *testing.T) {
	fx := newFixture(t)
	token := fx.loginAs(t, "lib", "librarian")

	rec := fx.do(http.MethodPost, "/books", token, `{"title":"Dune","author":"Herbert"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var book models.Book
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &book))
	assert.Positive(t, book.ID)
	assert.Equal(t, "Dune", book.Title)
	assert.Equal(t, "Herbert", book.Author)
}

func TestCreateBookValidation(t *testing.T) {
	fx := newFixture(t)
	token := fx.loginAs(t, "lib", "librarian")

	rec := fx.do(http.MethodPost, "/books", token, `{"title":"","author":"Herbert"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Title cannot be empty")
}

func TestGetBookInvalidID(t *testing.T) {
	fx := newFixture(t)
	token := fx.loginAs(t, "m", "member")

	rec := fx.do(http.MethodGet, "/books/abc", token, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid book ID")
}

func TestDeleteMissingBook(t *testing.T) {
	fx := newFixture(t)
	token := fx.loginAs(t, "lib", "librarian")

	rec := fx.do(http.MethodDelete, "/books/999", token, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Book not found"}`, rec.Body.String())
}

func TestDeleteBook(t *testing.T) {
	fx := newFixture(t)
	token := fx.loginAs(t, "lib", "librarian")

	rec := fx.do(http.MethodPost, "/books", token, `{"title":"Dune","author":"Herbert"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = fx.do(http.MethodDelete, "/books/1", token, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestBooksRequireToken(t *testing.T) {
	fx := newFixture(t)

	rec := fx.do(http.MethodGet, "/books", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"Unauthorized"}`, rec.Body.String())
}

func TestMemberCannotWriteBooks(t *testing.T) {
	fx := newFixture(t)
	token := fx.loginAs(t, "m", "member")

	rec := fx.do(http.MethodPost, "/books", token, `{"title":"Dune","author":"Herbert"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"message":"Forbidden"}`, rec.Body.String())
}

func TestUpdateBookAvailability(t *testing.T) {
	fx := newFixture(t)
	token := fx.loginAs(t, "lib", "librarian")

	rec := fx.do(http.MethodPost, "/books", token, `{"title":"Dune","author":"Herbert"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = fx.do(http.MethodPut, "/books/1/availability", token, `{"availability":true}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var book models.Book
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &book))
	assert.True(t, book.Availability)

	// false is a legal value, not a missing field
	rec = fx.do(http.MethodPut, "/books/1/availability", token, `{"availability":false}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBookDataAccessFailureIsGeneric(t *testing.T) {
	fx := newFixture(t)
	token := fx.loginAs(t, "m", "member")

	fx.bookRepo.err = fmt.Errorf("dial tcp: connection refused")

	rec := fx.do(http.MethodGet, "/books", token, "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Error retrieving books"}`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "dial tcp")
}

func TestSearchWithoutTerm(t *testing.T) {
	fx := newFixture(t)

	rec := fx.do(http.MethodGet, "/users/search", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"Search term is required"}`, rec.Body.String())
}

func TestRequestIDHeader(t *testing.T) {
	fx := newFixture(t)

	rec := fx.do(http.MethodPost, "/login", "", `{"username":"x","password":"y"}`)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}
