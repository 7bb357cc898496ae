package controller

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"libraryapi/internal/api/middleware"
	"libraryapi/internal/api/models"
	"libraryapi/internal/api/repository"
	"libraryapi/internal/api/response"
)

// BookController handles book-related HTTP requests.
type BookController struct {
	*CRUD[models.Book, models.BookRequest]
	repo repository.BookRepository
}

// NewBookController creates a new BookController.
func NewBookController(repo repository.BookRepository) *BookController {
	return &BookController{
		CRUD: NewCRUD(
			Store[models.Book](repo),
			func(ctx context.Context, body *models.BookRequest) (models.Book, error) {
				return repo.Create(ctx, *body.Title, *body.Author)
			},
			func(ctx context.Context, id int64, body *models.BookRequest) (models.Book, bool, error) {
				return repo.Update(ctx, id, *body.Title, *body.Author)
			},
			"Book",
		),
		repo: repo,
	}
}

// UpdateAvailability handles the availability toggle endpoint.
func (bc *BookController) UpdateAvailability(c *gin.Context) {
	body := middleware.Body[models.AvailabilityRequest](c)

	book, found, err := bc.repo.UpdateAvailability(c.Request.Context(), middleware.ID(c), *body.Availability)
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "controller error", "entity", "book", "verb", "updating availability", "error", err)
		response.Error(c, http.StatusInternalServerError, "Error updating book availability")
		return
	}
	if !found {
		response.Error(c, http.StatusNotFound, "Book not found")
		return
	}
	c.JSON(http.StatusOK, book)
}
