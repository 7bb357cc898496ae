package models

// Student represents a student row.
type Student struct {
	ID      int64  `db:"student_id" json:"id"`
	Name    string `db:"name" json:"name"`
	Address string `db:"address" json:"address"`
}

// StudentRequest is the body for creating or updating a student.
type StudentRequest struct {
	Name    *string `json:"name" validate:"required,min=1,max=50"`
	Address *string `json:"address" validate:"required,min=1,max=100"`
}
