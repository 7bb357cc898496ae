package repository

import (
	"context"

	"libraryapi/internal/api/models"
	"libraryapi/internal/db"
)

// BookRepository defines the data operations for books.
type BookRepository interface {
	List(ctx context.Context) ([]models.Book, error)
	GetByID(ctx context.Context, id int64) (models.Book, bool, error)
	Create(ctx context.Context, title, author string) (models.Book, error)
	Update(ctx context.Context, id int64, title, author string) (models.Book, bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	UpdateAvailability(ctx context.Context, id int64, available bool) (models.Book, bool, error)
}

type bookRepository struct {
	*CRUD[models.Book]
	gw *db.Gateway
}

// NewBookRepository creates a MySQL-backed BookRepository.
func NewBookRepository(gw *db.Gateway) BookRepository {
	return &bookRepository{
		CRUD: NewCRUD[models.Book](gw, "books", Schema{
			Table:    "books",
			IDColumn: "book_id",
			Columns:  []string{"book_id", "title", "author", "availability"},
			Writable: []string{"title", "author"},
		}),
		gw: gw,
	}
}

func (r *bookRepository) Create(ctx context.Context, title, author string) (models.Book, error) {
	return r.CRUD.Create(ctx, title, author)
}

func (r *bookRepository) Update(ctx context.Context, id int64, title, author string) (models.Book, bool, error) {
	return r.CRUD.Update(ctx, id, title, author)
}

// UpdateAvailability flips only the availability column, then re-reads the
// row. Zero matched rows means the book does not exist.
func (r *bookRepository) UpdateAvailability(ctx context.Context, id int64, available bool) (models.Book, bool, error) {
	var zero models.Book

	res, err := r.gw.Exec(ctx, "books.update_availability",
		`UPDATE books SET availability = ? WHERE book_id = ?`, available, id)
	if err != nil {
		return zero, false, err
	}
	matched, err := res.RowsAffected()
	if err != nil {
		return zero, false, err
	}
	if matched == 0 {
		return zero, false, nil
	}

	return r.GetByID(ctx, id)
}
