package repository

import (
	"context"

	"libraryapi/internal/api/models"
	"libraryapi/internal/db"
)

// StudentRepository defines the data operations for students.
type StudentRepository interface {
	List(ctx context.Context) ([]models.Student, error)
	GetByID(ctx context.Context, id int64) (models.Student, bool, error)
	Create(ctx context.Context, name, address string) (models.Student, error)
	Update(ctx context.Context, id int64, name, address string) (models.Student, bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type studentRepository struct {
	*CRUD[models.Student]
}

// NewStudentRepository creates a MySQL-backed StudentRepository.
func NewStudentRepository(gw *db.Gateway) StudentRepository {
	return &studentRepository{
		CRUD: NewCRUD[models.Student](gw, "students", Schema{
			Table:    "students",
			IDColumn: "student_id",
			Columns:  []string{"student_id", "name", "address"},
			Writable: []string{"name", "address"},
		}),
	}
}

func (r *studentRepository) Create(ctx context.Context, name, address string) (models.Student, error) {
	return r.CRUD.Create(ctx, name, address)
}

func (r *studentRepository) Update(ctx context.Context, id int64, name, address string) (models.Student, bool, error) {
	return r.CRUD.Update(ctx, id, name, address)
}
