package controller

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"libraryapi/internal/api/models"
	"libraryapi/internal/api/repository"
	"libraryapi/internal/api/response"
)

// UserController handles user-related HTTP requests.
type UserController struct {
	*CRUD[models.User, models.UserRequest]
	repo repository.UserRepository
}

// NewUserController creates a new UserController.
func NewUserController(repo repository.UserRepository) *UserController {
	return &UserController{
		CRUD: NewCRUD(
			Store[models.User](repo),
			func(ctx context.Context, body *models.UserRequest) (models.User, error) {
				return repo.Create(ctx, *body.Username, *body.Email)
			},
			func(ctx context.Context, id int64, body *models.UserRequest) (models.User, bool, error) {
				return repo.Update(ctx, id, *body.Username, *body.Email)
			},
			"User",
		),
		repo: repo,
	}
}

// Search handles the substring search endpoint. The term is required; an
// empty one never reaches the repository.
func (uc *UserController) Search(c *gin.Context) {
	term := c.Query("searchTerm")
	if term == "" {
		response.Message(c, http.StatusBadRequest, "Search term is required")
		return
	}

	users, err := uc.repo.Search(c.Request.Context(), term)
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "controller error", "entity", "user", "verb", "searching", "error", err)
		response.Message(c, http.StatusInternalServerError, "Error searching users")
		return
	}
	c.JSON(http.StatusOK, users)
}

// WithBooks handles the joined users-and-books listing.
func (uc *UserController) WithBooks(c *gin.Context) {
	users, err := uc.repo.WithBooks(c.Request.Context())
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "controller error", "entity", "user", "verb", "fetching with books", "error", err)
		response.Message(c, http.StatusInternalServerError, "Error fetching users with books")
		return
	}
	c.JSON(http.StatusOK, users)
}
