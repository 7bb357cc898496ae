package controller

import (
	"context"

	"libraryapi/internal/api/models"
	"libraryapi/internal/api/repository"
)

// StudentController handles student-related HTTP requests. Students have no
// operations beyond the standard five.
type StudentController struct {
	*CRUD[models.Student, models.StudentRequest]
}

// NewStudentController creates a new StudentController.
func NewStudentController(repo repository.StudentRepository) *StudentController {
	return &StudentController{
		CRUD: NewCRUD(
			Store[models.Student](repo),
			func(ctx context.Context, body *models.StudentRequest) (models.Student, error) {
				return repo.Create(ctx, *body.Name, *body.Address)
			},
			func(ctx context.Context, id int64, body *models.StudentRequest) (models.Student, bool, error) {
				return repo.Update(ctx, id, *body.Name, *body.Address)
			},
			"Student",
		),
	}
}
