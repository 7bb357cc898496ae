package controller

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"libraryapi/internal/api/middleware"
	"libraryapi/internal/api/response"
)

// Store is the slice of a repository the generic controller needs. The
// values for Create and Update are produced by the controller's args
// function from the validated request body.
type Store[T any] interface {
	List(ctx context.Context) ([]T, error)
	GetByID(ctx context.Context, id int64) (T, bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// CRUD maps the five standard operations of one entity onto HTTP. T is the
// entity, B the validated request body.
type CRUD[T, B any] struct {
	store  Store[T]
	create func(ctx context.Context, body *B) (T, error)
	update func(ctx context.Context, id int64, body *B) (T, bool, error)

	// name is the capitalized entity name used in client-facing messages,
	// e.g. "Book" -> "Book not found", "Error retrieving books".
	name string
}

func NewCRUD[T, B any](
	store Store[T],
	create func(ctx context.Context, body *B) (T, error),
	update func(ctx context.Context, id int64, body *B) (T, bool, error),
	name string,
) *CRUD[T, B] {
	return &CRUD[T, B]{store: store, create: create, update: update, name: name}
}

func (ct *CRUD[T, B]) lower() string  { return strings.ToLower(ct.name) }
func (ct *CRUD[T, B]) plural() string { return ct.lower() + "s" }

// fail logs the internal detail and answers with a generic message; driver
// and schema details never reach the client.
func (ct *CRUD[T, B]) fail(c *gin.Context, verb, subject string, err error) {
	slog.ErrorContext(c.Request.Context(), "controller error", "entity", ct.lower(), "verb", verb, "error", err)
	response.Error(c, http.StatusInternalServerError, fmt.Sprintf("Error %s %s", verb, subject))
}

func (ct *CRUD[T, B]) notFound(c *gin.Context) {
	response.Error(c, http.StatusNotFound, fmt.Sprintf("%s not found", ct.name))
}

func (ct *CRUD[T, B]) List(c *gin.Context) {
	items, err := ct.store.List(c.Request.Context())
	if err != nil {
		ct.fail(c, "retrieving", ct.plural(), err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (ct *CRUD[T, B]) Get(c *gin.Context) {
	item, found, err := ct.store.GetByID(c.Request.Context(), middleware.ID(c))
	if err != nil {
		ct.fail(c, "retrieving", ct.lower(), err)
		return
	}
	if !found {
		ct.notFound(c)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (ct *CRUD[T, B]) Create(c *gin.Context) {
	item, err := ct.create(c.Request.Context(), middleware.Body[B](c))
	if err != nil {
		ct.fail(c, "creating", ct.lower(), err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (ct *CRUD[T, B]) Update(c *gin.Context) {
	item, found, err := ct.update(c.Request.Context(), middleware.ID(c), middleware.Body[B](c))
	if err != nil {
		ct.fail(c, "updating", ct.lower(), err)
		return
	}
	if !found {
		ct.notFound(c)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (ct *CRUD[T, B]) Delete(c *gin.Context) {
	found, err := ct.store.Delete(c.Request.Context(), middleware.ID(c))
	if err != nil {
		ct.fail(c, "deleting", ct.lower(), err)
		return
	}
	if !found {
		ct.notFound(c)
		return
	}
	c.Status(http.StatusNoContent)
}
