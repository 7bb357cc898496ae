package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type echoBody struct {
	Title  *string `json:"title" validate:"required,min=1,max=50"`
	Author *string `json:"author" validate:"required,min=1,max=50"`
}

func idRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/books/:id", ValidateIDParam("book"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": ID(c)})
	})
	engine.GET("/users/:id", ValidateUserIDParam(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": ID(c)})
	})
	return engine
}

func TestValidateIDParam(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		wantCode int
		wantBody string
	}{
		{"valid id", "/books/12", http.StatusOK, `{"id":12}`},
		{"non-numeric id", "/books/abc", http.StatusBadRequest, `{"error":"Invalid book ID. ID must be a positive number"}`},
		{"zero id", "/books/0", http.StatusBadRequest, `{"error":"Invalid book ID. ID must be a positive number"}`},
		{"negative id", "/books/-3", http.StatusBadRequest, `{"error":"Invalid book ID. ID must be a positive number"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			idRouter().ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestValidateUserIDParam_SearchTermException(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users/abc?searchTerm=ali", nil)
	idRouter().ServeHTTP(rec, req)

	// An unusable id is tolerated when a search term is supplied instead.
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/users/abc", nil)
	idRouter().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid user ID. ID must be a positive number"}`, rec.Body.String())
}

func TestValidateBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.POST("/books", ValidateBody[echoBody](), func(c *gin.Context) {
		body := Body[echoBody](c)
		c.JSON(http.StatusOK, gin.H{"title": *body.Title, "author": *body.Author})
	})

	t.Run("valid body reaches the handler", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/books", strings.NewReader(`{"title":"Dune","author":"Herbert"}`))
		engine.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"title":"Dune","author":"Herbert"}`, rec.Body.String())
	})

	t.Run("all violations are aggregated", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/books", strings.NewReader(`{"title":""}`))
		engine.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"Title cannot be empty, Author is required"}`, rec.Body.String())
	})

	t.Run("unknown extra fields are tolerated", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/books", strings.NewReader(`{"title":"Dune","author":"Herbert","genre":"sf"}`))
		engine.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("malformed json is rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/books", strings.NewReader(`{`))
		engine.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
